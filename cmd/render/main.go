package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"weatherdash/internal/config"
	"weatherdash/internal/render"
)

func main() {
	consumer := flag.String("consumer", defaultConsumerName(), "consumer name within the group")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	redisCfg := config.GetRedisConfig()

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	defer redisClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Rendering events from stream %s as %s/%s. Press Ctrl+C to stop...",
		redisCfg.Stream, redisCfg.Group, *consumer)

	err := render.Consume(ctx, redisClient, render.ConsumerParams{
		Stream:   redisCfg.Stream,
		Group:    redisCfg.Group,
		Consumer: *consumer,
	}, render.NewTextRenderer(os.Stdout))
	if err != nil {
		log.Fatalf("Renderer stopped: %v", err)
	}

	log.Println("Renderer stopped")
}

func defaultConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "renderer-1"
	}
	return host
}
