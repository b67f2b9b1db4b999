package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/propozzals/proposal-backend/internal/template"
)

func TestTemplateHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/templates", NewTemplateHandler().List)

	req, _ := http.NewRequest("GET", "/api/templates", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Templates []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"templates"`
		Default string `json:"default"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Templates, 6)
	assert.Equal(t, template.DefaultTemplateID, resp.Default)
	assert.Equal(t, template.DefaultTemplateID, resp.Templates[0].ID)
}

func TestTemplateHandler_Get_UnknownResolvesToDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/templates/:id", NewTemplateHandler().Get)

	req, _ := http.NewRequest("GET", "/api/templates/not-a-real-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resolved":"`+template.DefaultTemplateID+`"`)
}

func TestTemplateHandler_Get_Known(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/templates/:id", NewTemplateHandler().Get)

	req, _ := http.NewRequest("GET", "/api/templates/proposal-luxury-01", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Luxury Premium")
	assert.Contains(t, w.Body.String(), `"resolved":"proposal-luxury-01"`)
}
