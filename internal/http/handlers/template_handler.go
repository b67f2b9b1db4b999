package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propozzals/proposal-backend/internal/http/handlers/common"
	"github.com/propozzals/proposal-backend/internal/template"
)

// TemplateHandler отдаёт реестр шаблонов предложения.
type TemplateHandler struct{}

// NewTemplateHandler создаёт новый хэндлер.
func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// List обрабатывает GET /api/templates.
func (h *TemplateHandler) List(c *gin.Context) {
	descriptors := template.List()

	items := make([]gin.H, 0, len(descriptors))
	for _, d := range descriptors {
		items = append(items, gin.H{
			"id":    d.ID,
			"title": d.Title,
			"theme": d.Theme,
		})
	}

	common.RespondJSON(c, http.StatusOK, gin.H{
		"templates": items,
		"default":   template.DefaultTemplateID,
	})
}

// Get обрабатывает GET /api/templates/:id. Неизвестный идентификатор
// откатывается на дефолт; поле resolved подсказывает клиенту канонический id.
func (h *TemplateHandler) Get(c *gin.Context) {
	desc := template.Resolve(c.Param("id"))
	common.RespondJSON(c, http.StatusOK, gin.H{
		"template": desc,
		"resolved": desc.ID,
	})
}
