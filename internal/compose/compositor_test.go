package compose

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/propozzals/proposal-backend/internal/document"
	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/template"
)

func buildTestSections(raw models.RawDocument) []template.Section {
	desc := template.Resolve(template.DefaultTemplateID)
	rc := template.NewRenderContext(time.Now())
	return desc.BuildSections(document.Normalize(raw), rc)
}

func TestCompose_FiltersEmptySections(t *testing.T) {
	sections := []template.Section{
		template.NewSection("full", template.Text("p", "", "content")),
		template.NewSection("blank", template.Text("p", "", "  ")),
		template.NewSection("sentinel", template.Text("p", "", "—")),
	}

	page := Compose(sections, Options{})

	assert.False(t, page.EmptyState)
	assert.Len(t, page.Sections, 1)
	assert.Equal(t, "full", page.Sections[0].Key)
}

func TestCompose_DefaultsGeometry(t *testing.T) {
	page := Compose(buildTestSections(models.RawDocument{}), Options{})

	assert.Equal(t, DefaultPageWidthPx, page.WidthPx)
	assert.Equal(t, DefaultPagePaddingPx, page.PaddingPx)
}

func TestCompose_AllEmptyYieldsPlaceholderPage(t *testing.T) {
	sections := []template.Section{
		template.NewSection("a", template.Text("p", "", "")),
		template.NewSection("b", template.Text("p", "", "—")),
	}

	page := Compose(sections, Options{})

	assert.True(t, page.EmptyState)
	assert.Len(t, page.Sections, 1)
	assert.Equal(t, "empty-state", page.Sections[0].Key)
	assert.False(t, page.Sections[0].IsEmpty())
}

func TestCompose_EmptyDocumentStillRendersHeader(t *testing.T) {
	// Пустой документ получает дефолты нормализатора, поэтому страница
	// не схлопывается в заглушку: header и pricing всегда содержательны.
	page := Compose(buildTestSections(models.RawDocument{}), Options{})

	assert.False(t, page.EmptyState)
	assert.Equal(t, "header", page.Sections[0].Key)
}

func TestCompose_WatermarkFlag(t *testing.T) {
	sections := buildTestSections(models.RawDocument{})

	assert.True(t, Compose(sections, Options{Watermark: true}).Watermark)
	assert.False(t, Compose(sections, Options{}).Watermark)
}
