package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/propozzals/proposal-backend/internal/config"
	"github.com/propozzals/proposal-backend/internal/db"
	httpHandlers "github.com/propozzals/proposal-backend/internal/http/handlers"
	httpRouter "github.com/propozzals/proposal-backend/internal/http/router"
	"github.com/propozzals/proposal-backend/internal/logger"
	"github.com/propozzals/proposal-backend/internal/mail"
	"github.com/propozzals/proposal-backend/internal/payment"
	"github.com/propozzals/proposal-backend/internal/pdfclient"
	"github.com/propozzals/proposal-backend/internal/repository"
	"github.com/propozzals/proposal-backend/internal/service"
	"github.com/propozzals/proposal-backend/internal/storage"
	"github.com/propozzals/proposal-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Redis хранит черновики документов.
	rdb, err := db.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("main: ошибка подключения к redis: %v", err)
	}
	defer rdb.Close()

	// Файловые хранилища.
	logoStorage, err := storage.NewLogoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить хранилище логотипов: %v", err)
	}
	exportStorage, err := storage.NewExportStorage(cfg.ExportStorageDir)
	if err != nil {
		log.Fatalf("main: не удалось подготовить хранилище экспортов: %v", err)
	}

	// Репозитории.
	draftRepo := repository.NewDraftRepository(rdb, cfg.DraftTTL)
	exportRepo := repository.NewExportRepository(dbConn)
	paymentRepo := repository.NewPaymentRepository(dbConn)

	// Вебсокеты: события сохранения, экспорта и оплаты.
	hub := ws.NewHub()
	go hub.Run()

	// Внешние клиенты.
	pdfClient := pdfclient.NewClient(cfg.PDFServiceURL, cfg.PDFServiceTimeout)
	paymentClient := payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentSecretKey)

	var mailer service.ReceiptSender
	if cfg.MailEnabled {
		sender, err := mail.NewSender(ctx, cfg.SESRegion, cfg.MailFrom)
		if err != nil {
			log.Fatalf("main: не удалось инициализировать почтовый сервис: %v", err)
		}
		mailer = sender
	}

	// Сервисы.
	tokenManager := service.NewTokenManager(cfg.DownloadTokenSecret, cfg.DownloadTokenTTL)
	draftService := service.NewDraftService(draftRepo, hub, cfg.AutosaveDebounce, cfg.SavedStatusReset, cfg.ErrorStatusReset)
	proposalService := service.NewProposalService()
	exportService := service.NewExportService(proposalService, exportRepo, pdfClient, exportStorage, hub)
	paymentService := service.NewPaymentService(
		paymentClient, paymentRepo, exportService, draftService, tokenManager, mailer, hub,
		service.PricingConfig{
			AmountCents:    cfg.PriceAmountCents,
			Currency:       cfg.PriceCurrency,
			PublishableKey: cfg.PaymentPublishableKey,
		},
		cfg.PaymentWebhookSecret, cfg.PublicBaseURL,
	)

	// HTTP хэндлеры.
	healthHandler := httpHandlers.NewHealthHandler(dbConn, rdb)
	templateHandler := httpHandlers.NewTemplateHandler()
	draftHandler := httpHandlers.NewDraftHandler(draftService)
	proposalHandler := httpHandlers.NewProposalHandler(proposalService)
	exportHandler := httpHandlers.NewExportHandler(exportService, tokenManager, exportStorage)
	paymentHandler := httpHandlers.NewPaymentHandler(paymentService)
	mediaHandler := httpHandlers.NewMediaHandler(logoStorage)
	wsHandler := httpHandlers.NewWSHandler(hub)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, healthHandler, templateHandler, draftHandler, proposalHandler, exportHandler, paymentHandler, mediaHandler, wsHandler)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
