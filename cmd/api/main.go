package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/handlers"
	"alfredoptarigan/resume-ranker/internal/logger"
	"alfredoptarigan/resume-ranker/internal/middleware"
	"alfredoptarigan/resume-ranker/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	defer zlog.Sync()
	zlog.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	mode, err := services.ParseExtractionMode(cfg.Extraction.Mode)
	if err != nil {
		zlog.Fatal("❌ Invalid extraction mode", zap.Error(err))
	}

	// Initialize services
	pdfParser := services.NewPDFParserService(mode)
	ranker := services.NewRankerService(zlog.Named("ranker"))
	rankingService := services.NewRankingService(pdfParser, ranker, cfg.Storage.MaxFileSize, zlog.Named("ranking"))
	zlog.Info("✅ Services initialized successfully", zap.Stringer("extraction_mode", mode))

	// Initialize handlers
	httpLog := logger.WithFields(zlog, zap.String("component", "http"))
	rankHandler := handlers.NewRankHandler(rankingService, httpLog)
	formHandler := handlers.NewFormHandler(rankingService, httpLog)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Ranker",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(httpLog),
	})

	// Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !cfg.IsProduction(),
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	// Ranking endpoints share one limiter per client
	limit := middleware.RateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Expiration)

	// Routes
	app.Get("/", formHandler.HandleIndex)
	app.Post("/rank", limit, formHandler.HandleSubmit)

	api := app.Group("/api/v1")
	api.Get("/health", handlers.HandleHealth)
	api.Post("/rank", limit, rankHandler.HandleRank)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zlog.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("❌ Failed to start server", zap.Error(err))
	}
}
