package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propozzals/proposal-backend/internal/http/handlers/common"
	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/service"
)

// SignatureHeader — заголовок подписи webhook платёжного провайдера.
const SignatureHeader = "X-Webhook-Signature"

// PaymentHandler управляет оплатой чистого экспорта.
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler создаёт новый хэндлер.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Config обрабатывает GET /api/payment/config.
func (h *PaymentHandler) Config(c *gin.Context) {
	common.RespondJSON(c, http.StatusOK, h.payments.Pricing())
}

type intentRequest struct {
	SessionID  string             `json:"sessionId" binding:"required"`
	TemplateID string             `json:"templateId"`
	Email      string             `json:"email" binding:"omitempty,email"`
	Data       models.RawDocument `json:"data"`
}

// CreateIntent обрабатывает POST /api/payment/intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req intentRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	intent, err := h.payments.CreateIntent(c.Request.Context(), req.SessionID, req.TemplateID, req.Email, req.Data)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusCreated, intent)
}

// Webhook обрабатывает POST /api/payment/webhook. Тело читается целиком:
// подпись считается по сырым байтам.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		common.RespondBadRequest(c, "не удалось прочитать тело запроса")
		return
	}

	if err := h.payments.HandleWebhook(c.Request.Context(), body, c.GetHeader(SignatureHeader)); err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, gin.H{"received": true})
}
