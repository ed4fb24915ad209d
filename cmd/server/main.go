package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/book-swap-exchange/internal/config"     // Internal config loader
	"github.com/iliyamo/book-swap-exchange/internal/database"   // MySQL connection helper
	"github.com/iliyamo/book-swap-exchange/internal/handler"    // HTTP handlers
	"github.com/iliyamo/book-swap-exchange/internal/middleware" // cache + rate limit middleware
	"github.com/iliyamo/book-swap-exchange/internal/queue"      // swap.accepted consumer
	"github.com/iliyamo/book-swap-exchange/internal/repository" // data access layer
	"github.com/iliyamo/book-swap-exchange/internal/router"     // route registration
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	bookRepo := repository.NewBookRepo(db)
	swapRepo := repository.NewSwapRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	bookHandler := handler.NewBookHandler(bookRepo)
	swapHandler := handler.NewSwapHandler(swapRepo, bookRepo)

	// Redis is optional: without it the rate limiter and the public
	// catalog cache become pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterBooks(e, bookHandler, cfg.JWTSecret, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterSwaps(e, swapHandler, cfg.JWTSecret)

	// Background consumer appends accepted swaps to logs/swap.log. It
	// reconnects on its own; a missing broker never blocks the API.
	go func() {
		if err := queue.StartSwapConsumer(); err != nil {
			log.Printf("swap consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
