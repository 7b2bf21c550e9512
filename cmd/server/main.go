package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/duarteurbanismo/sgci-recibos/internal/api"
	"github.com/duarteurbanismo/sgci-recibos/internal/config"
	"github.com/duarteurbanismo/sgci-recibos/internal/repository"
	"github.com/duarteurbanismo/sgci-recibos/internal/service"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize store
	store, err := repository.NewReciboRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	// Initialize services
	hashService := service.NewHashService(cfg.HashSecret)
	reciboService := service.NewReciboService(store, hashService, service.ReciboOptions{
		Origin:    cfg.Origin,
		Emitente:  cfg.Emitente,
		ChavePix:  cfg.ChavePix,
		CidadePix: cfg.CidadePix,
	})

	var rateLimitService *service.RateLimitService
	if cfg.RedisURL != "" {
		rateLimitService, err = service.NewRateLimitService(cfg.RedisURL, cfg.RateLimitDaily)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rateLimitService.Close()
	} else {
		log.Println("REDIS_URL not set, rate limiting disabled")
	}

	// Set up router
	router := api.NewRouter(reciboService, rateLimitService, cfg.APIKey)

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting SGCI recibos server on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
