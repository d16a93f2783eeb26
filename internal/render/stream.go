package render

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"weatherdash/internal/dashboard"
	"weatherdash/internal/models"
)

// maxStreamLen caps the stream so effect frames cannot grow it without bound
const maxStreamLen = 1000

// StreamRenderer publishes renderer calls to a Redis stream
type StreamRenderer struct {
	client *redis.Client
	stream string
}

// NewStreamRenderer creates a renderer that writes to the given stream
func NewStreamRenderer(client *redis.Client, stream string) *StreamRenderer {
	return &StreamRenderer{
		client: client,
		stream: stream,
	}
}

func (s *StreamRenderer) RenderSnapshot(ctx context.Context, snap *models.WeatherSnapshot) error {
	return s.publish(ctx, Event{Kind: KindSnapshot, Snapshot: snap})
}

func (s *StreamRenderer) Notify(ctx context.Context, n models.Notification) error {
	return s.publish(ctx, Event{Kind: KindNotification, Notification: &n})
}

func (s *StreamRenderer) RenderEffect(ctx context.Context, effect string, frame int) error {
	return s.publish(ctx, Event{Kind: KindEffect, Effect: effect, Frame: frame})
}

func (s *StreamRenderer) ClearEffects(ctx context.Context) error {
	return s.publish(ctx, Event{Kind: KindClear})
}

// publish serializes the event and appends it to the stream
func (s *StreamRenderer) publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to serialize %s event: %w", e.Kind, err)
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]interface{}{"kind": e.Kind, "data": string(data)},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish %s event to %s: %w", e.Kind, s.stream, err)
	}

	return nil
}

var _ dashboard.Renderer = (*StreamRenderer)(nil)

// ConsumerParams identifies a consumer within a stream consumer group
type ConsumerParams struct {
	Stream   string
	Group    string
	Consumer string
	Block    time.Duration
}

// Consume reads events from the stream with a consumer group and replays them
// against r until ctx is canceled. Malformed messages are logged and acknowledged.
func Consume(ctx context.Context, client *redis.Client, params ConsumerParams, r dashboard.Renderer) error {
	if params.Block <= 0 {
		params.Block = 5 * time.Second
	}

	err := client.XGroupCreateMkStream(ctx, params.Stream, params.Group, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		streams, err := client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    params.Group,
			Consumer: params.Consumer,
			Streams:  []string{params.Stream, ">"},
			Count:    10,
			Block:    params.Block,
		}).Result()

		if ctx.Err() != nil {
			return nil
		}

		if err != nil && err != redis.Nil {
			log.Printf("Error reading from Redis: %v", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				if err := handleMessage(ctx, msg, r); err != nil {
					log.Printf("Failed to handle message %s: %v", msg.ID, err)
				}
				client.XAck(ctx, params.Stream, params.Group, msg.ID)
			}
		}
	}
}

func handleMessage(ctx context.Context, msg redis.XMessage, r dashboard.Renderer) error {
	raw, ok := msg.Values["data"].(string)
	if !ok {
		return fmt.Errorf("message has no data field")
	}

	var e Event
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return e.Apply(ctx, r)
}
