package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propozzals/proposal-backend/internal/config"
	"github.com/propozzals/proposal-backend/internal/http/handlers"
	"github.com/propozzals/proposal-backend/internal/http/middleware"
)

func SetupRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	templateHandler *handlers.TemplateHandler,
	draftHandler *handlers.DraftHandler,
	proposalHandler *handlers.ProposalHandler,
	exportHandler *handlers.ExportHandler,
	paymentHandler *handlers.PaymentHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	r.GET("/ws/documents/:sessionId", wsHandler.Handle)

	api := r.Group("/api")

	// Публичный реестр шаблонов и конфигурация оплаты
	api.GET("/templates", templateHandler.List)
	api.GET("/templates/:id", templateHandler.Get)
	api.GET("/payment/config", paymentHandler.Config)
	api.GET("/config", paymentHandler.Config)

	// Черновики документа
	drafts := api.Group("/drafts")
	{
		drafts.GET("/:sessionId", draftHandler.Get)
		drafts.PUT("/:sessionId", draftHandler.Put)
		drafts.DELETE("/:sessionId", draftHandler.Delete)
		drafts.GET("/:sessionId/banner", draftHandler.GetBanner)
		drafts.POST("/:sessionId/banner/dismiss", draftHandler.DismissBanner)
	}

	// Сборка предпросмотра и разметки
	api.POST("/proposals/preview", proposalHandler.Preview)
	api.POST("/proposals/markup", proposalHandler.Markup)

	// Генерация PDF и платежи ограничены по частоте
	pdfRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.POST("/pdf/generate", pdfRateLimit, exportHandler.Generate)

	payments := api.Group("/payment")
	payments.Use(pdfRateLimit)
	{
		payments.POST("/intent", paymentHandler.CreateIntent)
		payments.POST("/webhook", paymentHandler.Webhook)
	}

	// Экспорты
	api.GET("/exports/:id/download", exportHandler.Download)
	api.GET("/sessions/:sessionId/exports", exportHandler.List)

	// Логотипы
	api.POST("/media/logo", mediaHandler.UploadLogo)

	return r
}
