package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propozzals/proposal-backend/internal/http/handlers/common"
	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/service"
)

// ProposalHandler собирает предпросмотр и разметку документа.
type ProposalHandler struct {
	proposals *service.ProposalService
}

// NewProposalHandler создаёт новый хэндлер.
func NewProposalHandler(proposals *service.ProposalService) *ProposalHandler {
	return &ProposalHandler{proposals: proposals}
}

type proposalRequest struct {
	TemplateID string             `json:"templateId"`
	Data       models.RawDocument `json:"data"`
	Watermark  bool               `json:"watermark"`
}

// Preview обрабатывает POST /api/proposals/preview.
func (h *ProposalHandler) Preview(c *gin.Context) {
	var req proposalRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.proposals.Preview(req.Data, req.TemplateID, req.Watermark)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, result)
}

// Markup обрабатывает POST /api/proposals/markup и возвращает автономный
// HTML-документ, идентичный тому, что уходит в сервис рендеринга PDF.
func (h *ProposalHandler) Markup(c *gin.Context) {
	var req proposalRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	html, fingerprint, err := h.proposals.Markup(req.Data, req.TemplateID, req.Watermark)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, gin.H{
		"html":        html,
		"fingerprint": fingerprint,
	})
}
