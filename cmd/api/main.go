package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"smartbot/career-matcher/internal/config"
	"smartbot/career-matcher/internal/handlers"
	"smartbot/career-matcher/internal/logger"
	"smartbot/career-matcher/internal/repositories"
	"smartbot/career-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository()

	// Initialize services
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize Gemini AI", zap.Error(err))
	}

	promptBuilder := services.NewPromptBuilder(cfg.Gateway.MaxDocumentChars)
	analyzerService := services.NewAnalyzerService(
		geminiService,
		promptBuilder,
		cfg.Gateway.RetryMaxAttempts,
		cfg.Gateway.RetryInitialDelay,
		zlog,
	)
	ingestService := services.NewIngestService(cfg.Upload.MaxFileSize, zlog)
	wizardService := services.NewWizardService(analyzerService, zlog)
	sessionService := services.NewSessionService(
		sessionRepo,
		cfg.Session.TTL,
		cfg.Session.CleanupInterval,
		zlog,
	)
	sessionService.Start(ctx)
	zlog.Info("services initialized", zap.String("model", cfg.Gemini.Model))

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessionService, wizardService)
	wizardHandler := handlers.NewWizardHandler(sessionService, wizardService)
	uploadHandler := handlers.NewUploadHandler(sessionService, wizardService, ingestService)
	chatHandler := handlers.NewChatHandler(sessionService, wizardService)
	resultHandler := handlers.NewResultHandler(sessionService)

	// Create Fiber app. BodyLimit leaves headroom above the document
	// cap for the multipart envelope.
	app := fiber.New(fiber.Config{
		AppName:      "SmartBot Career Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize) + 64*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	sessions := api.Group("/sessions")
	sessions.Post("/", sessionHandler.HandleCreate)
	sessions.Get("/:id", sessionHandler.HandleGet)
	sessions.Post("/:id/reset", sessionHandler.HandleReset)
	sessions.Post("/:id/role", wizardHandler.HandleSelectRole)
	sessions.Get("/:id/questions", wizardHandler.HandleQuestions)
	sessions.Post("/:id/answers", wizardHandler.HandleAnswers)
	sessions.Post("/:id/advance", wizardHandler.HandleAdvance)
	sessions.Post("/:id/back", wizardHandler.HandleBack)
	sessions.Post("/:id/document", uploadHandler.HandleUpload)
	sessions.Post("/:id/chat", chatHandler.HandleMessage)
	sessions.Post("/:id/finalize", chatHandler.HandleFinalize)
	sessions.Get("/:id/result", resultHandler.HandleGetResult)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "SmartBot Career Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/sessions",
				"GET /api/v1/sessions/:id",
				"POST /api/v1/sessions/:id/role",
				"POST /api/v1/sessions/:id/advance",
				"POST /api/v1/sessions/:id/document",
				"POST /api/v1/sessions/:id/chat",
				"GET /api/v1/sessions/:id/result",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		sessionService.Stop()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
