package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"weatherdash/internal/airquality"
	"weatherdash/internal/api"
	"weatherdash/internal/config"
	"weatherdash/internal/dashboard"
	"weatherdash/internal/fetcher"
	"weatherdash/internal/render"
	"weatherdash/internal/server"
	"weatherdash/internal/snapshot"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	configPath := flag.String("config", "./config.yaml", "path to the YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	if _, err := config.Load(*configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.Get()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to resolve timezone: %v", err)
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis at %s: %v", cfg.Redis.Addr, err)
	}

	client := api.NewOpenWeatherMapClient(api.ClientParams{
		BaseURL:           cfg.OpenWeatherMap.BaseURL,
		APIKey:            cfg.OpenWeatherMap.APIKey,
		RequestsPerSecond: cfg.OpenWeatherMap.RequestsPerSecond,
		Burst:             cfg.OpenWeatherMap.Burst,
		HTTPClient:        &http.Client{Timeout: 10 * time.Second},
	})
	builder := snapshot.NewBuilder(airquality.NewEstimator(nil), snapshot.WithLocation(loc))

	renderer := render.Multi{
		render.NewStreamRenderer(redisClient, cfg.Redis.Stream),
		render.NewTextRenderer(os.Stdout),
	}
	dash := dashboard.NewDashboard(fetcher.NewFetcher(client, builder), renderer, cfg.Dashboard.EffectInterval)
	defer dash.Close()

	// The dashboard opens on the default city
	go func() {
		if _, err := dash.Search(context.Background(), cfg.Dashboard.DefaultCity); err != nil {
			log.Printf("Initial search for %s failed: %v", cfg.Dashboard.DefaultCity, err)
		}
	}()

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.NewServer(dash).Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("✓ Server stopped")
}
