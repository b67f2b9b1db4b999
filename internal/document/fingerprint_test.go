package document

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/propozzals/proposal-backend/internal/models"
)

func TestFingerprint_Deterministic(t *testing.T) {
	raw := models.RawDocument{}
	raw.Company.Name = "Acme"
	view := Normalize(raw)

	first, err := Fingerprint("proposal-modern-01", view)
	assert.NoError(t, err)
	second, err := Fingerprint("proposal-modern-01", view)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestFingerprint_SensitiveToTemplateAndData(t *testing.T) {
	view := Normalize(models.RawDocument{})

	modern, err := Fingerprint("proposal-modern-01", view)
	assert.NoError(t, err)
	minimal, err := Fingerprint("proposal-minimal-01", view)
	assert.NoError(t, err)
	assert.NotEqual(t, modern, minimal)

	raw := models.RawDocument{}
	raw.Client.Name = "Bob"
	changed, err := Fingerprint("proposal-modern-01", Normalize(raw))
	assert.NoError(t, err)
	assert.NotEqual(t, modern, changed)
}
