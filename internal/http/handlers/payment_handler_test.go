package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/propozzals/proposal-backend/internal/http/middleware"
	"github.com/propozzals/proposal-backend/internal/service"
)

func newPaymentRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	pricing := service.PricingConfig{AmountCents: 499, Currency: "eur", PublishableKey: "pk_test_123"}
	payments := service.NewPaymentService(nil, nil, nil, nil, nil, nil, nil, pricing, "whsec_test", "http://localhost:8080")
	handler := NewPaymentHandler(payments)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.GET("/api/payment/config", handler.Config)
	r.POST("/api/payment/intent", handler.CreateIntent)
	r.POST("/api/payment/webhook", handler.Webhook)
	return r
}

func TestPaymentHandler_Config(t *testing.T) {
	r := newPaymentRouter()

	req, _ := http.NewRequest("GET", "/api/payment/config", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"amount_cents":499`)
	assert.Contains(t, w.Body.String(), "pk_test_123")
}

func TestPaymentHandler_CreateIntent_MalformedBody(t *testing.T) {
	r := newPaymentRouter()

	req, _ := http.NewRequest("POST", "/api/payment/intent", strings.NewReader(`{"sessionId":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_CreateIntent_MissingSessionID(t *testing.T) {
	r := newPaymentRouter()

	req, _ := http.NewRequest("POST", "/api/payment/intent", strings.NewReader(`{"data":{}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_Webhook_BadSignature(t *testing.T) {
	r := newPaymentRouter()

	req, _ := http.NewRequest("POST", "/api/payment/webhook", strings.NewReader(`{"type":"payment_intent.succeeded"}`))
	req.Header.Set(SignatureHeader, "t=1,v1=deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "PAYMENT_ERROR")
}
