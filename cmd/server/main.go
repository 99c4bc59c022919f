package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/movieapp/internal/config"
	"github.com/localnerve/movieapp/internal/database"
	"github.com/localnerve/movieapp/internal/handlers"
	"github.com/localnerve/movieapp/internal/middleware"
	"github.com/localnerve/movieapp/internal/seed"
	"github.com/localnerve/movieapp/internal/services"
	"github.com/localnerve/movieapp/internal/tmdb"

	_ "github.com/localnerve/movieapp/docs/api" // Swagger docs
)

// @title MovieApp API
// @version 1.0.0
// @description Show, binge and tag tracking service with JWT auth and TMDB lookup
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/movieapp
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// "server seeddata" loads the demo data before serving
	if len(os.Args) == 2 && strings.EqualFold(os.Args[1], "seeddata") {
		if _, err := seed.Run(db, cfg.ShowIDPolicy); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
	}

	// Token revocation store, shared through Redis when configured
	var revoker services.TokenRevoker = services.NewMemoryTokenRevoker()
	if cfg.RedisURL != "" {
		redisRevoker, err := services.NewRedisTokenRevoker(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to configure Redis: %v", err)
		}
		defer redisRevoker.Close()
		revoker = redisRevoker
		log.Printf("Token revocations are stored in Redis")
	}
	tokens := services.NewTokenService(cfg, revoker)

	movies := tmdb.NewClient(tmdb.NewConfig(cfg.TMDBAPIKey, cfg.TMDBBaseURL))
	if !movies.Enabled() {
		log.Printf("TMDB_API_KEY is not set, movie lookup is disabled")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins(), ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Api-Version",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("movieapp")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	handlers.RegisterRoutes(api, handlers.Dependencies{
		Config:  cfg,
		DB:      db,
		Tokens:  tokens,
		Revoker: revoker,
		TMDB:    movies,
	})

	// 404 handler
	app.Use(handlers.NotFound)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
