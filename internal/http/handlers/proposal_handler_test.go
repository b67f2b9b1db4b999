package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/propozzals/proposal-backend/internal/service"
)

func newProposalRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewProposalHandler(service.NewProposalService())
	r.POST("/api/proposals/preview", handler.Preview)
	r.POST("/api/proposals/markup", handler.Markup)
	return r
}

func TestProposalHandler_Preview_EmptyDocument(t *testing.T) {
	r := newProposalRouter()

	req, _ := http.NewRequest("POST", "/api/proposals/preview", strings.NewReader(`{"templateId":"","data":{}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TemplateID  string `json:"templateId"`
		Fingerprint string `json:"fingerprint"`
		Page        struct {
			WidthPx  int `json:"widthPx"`
			Sections []struct {
				Key string `json:"key"`
			} `json:"sections"`
		} `json:"page"`
		Validation struct {
			IsValid bool `json:"isValid"`
		} `json:"validation"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "proposal-modern-01", resp.TemplateID)
	assert.Len(t, resp.Fingerprint, 64)
	assert.Equal(t, 794, resp.Page.WidthPx)
	assert.NotEmpty(t, resp.Page.Sections)
	assert.False(t, resp.Validation.IsValid)
}

func TestProposalHandler_Preview_MalformedJSON(t *testing.T) {
	r := newProposalRouter()

	req, _ := http.NewRequest("POST", "/api/proposals/preview", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProposalHandler_Markup_WatermarkedHTML(t *testing.T) {
	r := newProposalRouter()

	body := `{"templateId":"proposal-modern-01","data":{"company":{"name":"Acme"}},"watermark":true}`
	req, _ := http.NewRequest("POST", "/api/proposals/markup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		HTML        string `json:"html"`
		Fingerprint string `json:"fingerprint"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.HTML, "<!DOCTYPE html>")
	assert.Contains(t, resp.HTML, "ppz-watermark")
	assert.Contains(t, resp.HTML, "Acme")
	assert.Len(t, resp.Fingerprint, 64)
}

func TestProposalHandler_PreviewAndMarkupAgreeOnFingerprint(t *testing.T) {
	r := newProposalRouter()
	body := `{"templateId":"proposal-elegant-01","data":{"client":{"name":"Bob"}}}`

	fingerprints := make([]string, 0, 2)
	for _, path := range []string{"/api/proposals/preview", "/api/proposals/markup"} {
		req, _ := http.NewRequest("POST", path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Fingerprint string `json:"fingerprint"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		fingerprints = append(fingerprints, resp.Fingerprint)
	}

	assert.Equal(t, fingerprints[0], fingerprints[1])
}
