package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/template"
)

func TestRenderStandalone_Structure(t *testing.T) {
	page := Compose(buildTestSections(models.RawDocument{}), Options{FontFamily: "Arial, sans-serif"})

	html, err := RenderStandalone(page)
	assert.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<meta charset="UTF-8">`)
	assert.Contains(t, html, "width:794px;padding:36px")
	assert.Contains(t, html, "font-family:Arial, sans-serif")
	assert.Contains(t, html, `class="ppz-section ppz-section-last"`)
	assert.NotContains(t, html, "ppz-watermark")
}

func TestRenderStandalone_Watermark(t *testing.T) {
	page := Compose(buildTestSections(models.RawDocument{}), Options{Watermark: true})

	html, err := RenderStandalone(page)
	assert.NoError(t, err)
	assert.Contains(t, html, `<div class="ppz-watermark">PROPOZZALS</div>`)
}

func TestRenderStandalone_EscapesUserText(t *testing.T) {
	raw := models.RawDocument{}
	raw.Company.Name = `<script>alert("x")</script>`
	page := Compose(buildTestSections(raw), Options{})

	html, err := RenderStandalone(page)
	assert.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderStandalone_Deterministic(t *testing.T) {
	// Предпросмотр и экспорт строятся из одного Page: одинаковый вход
	// обязан давать идентичную разметку.
	sections := []template.Section{
		template.NewSection("only", template.Text("p", "paragraph", "content")),
	}
	page := Compose(sections, Options{Watermark: true})

	first, err := RenderStandalone(page)
	assert.NoError(t, err)
	second, err := RenderStandalone(page)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderNode_VoidTags(t *testing.T) {
	var b strings.Builder
	renderNode(template.Node{Tag: "img", Class: "logo", Src: "https://example.com/logo.png"}, &b)

	assert.Equal(t, `<img class="logo" src="https://example.com/logo.png">`, b.String())
}
