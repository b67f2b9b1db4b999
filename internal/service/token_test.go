package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	exportID := uuid.New()

	token, expiresAt, err := m.IssueDownloadToken(exportID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	parsed, err := m.ParseDownloadToken(token)
	assert.NoError(t, err)
	assert.Equal(t, exportID, parsed)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", time.Hour).IssueDownloadToken(uuid.New())
	assert.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).ParseDownloadToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)

	token, _, err := m.IssueDownloadToken(uuid.New())
	assert.NoError(t, err)

	_, err = m.ParseDownloadToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", time.Hour).ParseDownloadToken("not.a.jwt")
	assert.Error(t, err)
}
