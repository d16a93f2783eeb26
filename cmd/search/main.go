package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"weatherdash/internal/airquality"
	"weatherdash/internal/api"
	"weatherdash/internal/config"
	"weatherdash/internal/dashboard"
	"weatherdash/internal/fetcher"
	"weatherdash/internal/models"
	"weatherdash/internal/render"
	"weatherdash/internal/snapshot"
)

type searcher interface {
	Search(ctx context.Context, input string) (*models.WeatherSnapshot, error)
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "./config.yaml", "path to the YAML config file")
	publish := flag.Bool("publish", false, "also publish dashboard events to the Redis stream")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	if _, err := config.Load(*configPath); err != nil {
		log.Printf("Failed to load config: %v", err)
		return 2
	}
	cfg := config.Get()

	loc, err := cfg.Location()
	if err != nil {
		log.Printf("Failed to resolve timezone: %v", err)
		return 2
	}

	var renderer dashboard.Renderer = render.NewTextRenderer(os.Stdout)
	if *publish {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		renderer = render.Multi{renderer, render.NewStreamRenderer(redisClient, cfg.Redis.Stream)}
	}

	client := api.NewOpenWeatherMapClient(api.ClientParams{
		BaseURL:           cfg.OpenWeatherMap.BaseURL,
		APIKey:            cfg.OpenWeatherMap.APIKey,
		RequestsPerSecond: cfg.OpenWeatherMap.RequestsPerSecond,
		Burst:             cfg.OpenWeatherMap.Burst,
		HTTPClient:        &http.Client{Timeout: 10 * time.Second},
	})
	builder := snapshot.NewBuilder(airquality.NewEstimator(nil), snapshot.WithLocation(loc))

	dash := dashboard.NewDashboard(fetcher.NewFetcher(client, builder), renderer, cfg.Dashboard.EffectInterval)
	defer dash.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cities := citiesFromArgs(flag.Args(), cfg.Dashboard.DefaultCity)
	if failed := runSearches(ctx, dash, cities); failed > 0 {
		log.Printf("%d of %d searches failed", failed, len(cities))
		return 1
	}

	log.Printf("Search completed. Exiting")
	return 0
}

// citiesFromArgs treats each argument as one city, falling back to the default
func citiesFromArgs(args []string, defaultCity string) []string {
	var cities []string
	for _, arg := range args {
		if city := strings.TrimSpace(arg); city != "" {
			cities = append(cities, city)
		}
	}
	if len(cities) == 0 {
		return []string{defaultCity}
	}
	return cities
}

// runSearches searches every city concurrently and returns the number of failures
func runSearches(ctx context.Context, s searcher, cities []string) int {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)

	for _, city := range cities {
		wg.Add(1)
		go func(city string) {
			defer wg.Done()

			if _, err := s.Search(ctx, city); err != nil {
				log.Printf("Failed to search %s: %v", city, err)
				mu.Lock()
				failed++
				mu.Unlock()
			}
		}(city)
	}

	wg.Wait()
	return failed
}
