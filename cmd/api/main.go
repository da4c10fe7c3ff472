package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"hiringlab/ats-analyzer/internal/config"
	"hiringlab/ats-analyzer/internal/handlers"
	"hiringlab/ats-analyzer/internal/repositories"
	"hiringlab/ats-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Logger
	zlog, err := newLogger(cfg.Server.Env)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	slog := zlog.Sugar()
	slog.Infow("✅ Config loaded", "env", cfg.Server.Env)

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		slog.Fatalf("❌ Failed to initialize database: %v", err)
	}
	docRepo := repositories.NewDocumentRepository(db)
	slog.Info("✅ Database connected, document registry ready")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		slog.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewExtractorService(slog)
	normalizer := services.NewNormalizerService(slog)

	// Initialize Gemini AI. The client handle is immutable after this point
	// and shared read-only across concurrent requests.
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, slog)
	if err != nil {
		slog.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	slog.Infow("✅ Gemini AI initialized", "model", cfg.Gemini.Model)

	analyzer := services.NewAnalyzerService(extractor, geminiService, normalizer, slog)

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		docRepo,
		storageService,
		analyzer,
		cfg.Storage.MaxFileSize,
		slog,
	)
	slog.Info("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Entry-Level ATS Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/analyze", analyzeHandler.HandleAnalyze)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Entry-Level ATS Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"GET /api/v1/health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		slog.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			slog.Errorf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	slog.Infof("🚀 Server starting on %s", addr)

	if err := app.Listen(addr); err != nil {
		slog.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
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
