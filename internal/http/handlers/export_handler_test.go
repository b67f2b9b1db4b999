package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/propozzals/proposal-backend/internal/service"
)

func newExportRouter(tokens *service.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewExportHandler(nil, tokens, nil)

	r := gin.New()
	r.GET("/api/exports/:id/download", handler.Download)
	return r
}

func TestExportHandler_Download_InvalidID(t *testing.T) {
	tokens := service.NewTokenManager("download-secret", time.Hour)
	r := newExportRouter(tokens)

	req, _ := http.NewRequest("GET", "/api/exports/not-a-uuid/download?token=abc", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandler_Download_MissingToken(t *testing.T) {
	tokens := service.NewTokenManager("download-secret", time.Hour)
	r := newExportRouter(tokens)

	req, _ := http.NewRequest("GET", "/api/exports/"+uuid.NewString()+"/download", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportHandler_Download_TokenForOtherExport(t *testing.T) {
	tokens := service.NewTokenManager("download-secret", time.Hour)
	r := newExportRouter(tokens)

	token, _, err := tokens.IssueDownloadToken(uuid.New())
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/api/exports/"+uuid.NewString()+"/download?token="+token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportHandler_Download_ForeignSecret(t *testing.T) {
	tokens := service.NewTokenManager("download-secret", time.Hour)
	foreign := service.NewTokenManager("other-secret", time.Hour)
	r := newExportRouter(tokens)

	exportID := uuid.New()
	token, _, err := foreign.IssueDownloadToken(exportID)
	assert.NoError(t, err)

	req, _ := http.NewRequest("GET", "/api/exports/"+exportID.String()+"/download?token="+token, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
