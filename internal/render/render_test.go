package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"weatherdash/internal/models"
)

func sampleSnapshot() *models.WeatherSnapshot {
	return &models.WeatherSnapshot{
		City:           "Surat",
		CurrentTemp:    31,
		TempMin:        20,
		TempMax:        32,
		FeelsLike:      33,
		Condition:      "fog",
		Category:       "fog",
		IsDay:          true,
		Humidity:       31,
		Pressure:       1013,
		WindSpeed:      14,
		WindDirection:  "E",
		Visibility:     4,
		Cloudiness:     20,
		Sunrise:        "6:58 AM",
		Sunset:         "5:55 PM",
		AQI:            208,
		AQIStatus:      "Very Poor",
		AQIDescription: "Everyone may experience health effects.",
		Hourly: []models.HourlyPoint{
			{Label: "Now", Icon: "foggy", Temperature: 31},
			{Label: "2:00 PM", Icon: "cloudy", Temperature: 31},
		},
		Daily: []models.DailyPoint{
			{Date: "Nov 29", Day: "Today", Icon: "cloudy", TempMin: 20, TempMax: 32},
			{Date: "Nov 30", Day: "Tomorrow", Icon: "sun", TempMin: 19, TempMax: 32},
		},
		Icon:  "foggy",
		Theme: "foggy",
	}
}

func TestFormatSnapshot(t *testing.T) {
	out := FormatSnapshot(sampleSnapshot())

	wants := []string{
		"== Surat ==",
		"31°  fog   20° / 32°   Air quality: 208 – Very Poor",
		"E wind 14 km/h",
		"Sunrise 6:58 AM  Sunset 5:55 PM",
		"Hourly: Now foggy 31° | 2:00 PM cloudy 31°",
		"Today",
		"Tomorrow",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("FormatSnapshot() missing %q in:\n%s", want, out)
		}
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextRenderer(&buf)
	ctx := context.Background()

	r.Notify(ctx, models.Notification{Kind: models.NotifyError, Message: "City not found. Please try again."})
	r.RenderEffect(ctx, "rain", 0)
	r.RenderEffect(ctx, "rain", 1)
	r.ClearEffects(ctx)
	r.RenderEffect(ctx, "rain", 0)

	out := buf.String()
	if !strings.Contains(out, "[error] City not found. Please try again.") {
		t.Errorf("missing notification in %q", out)
	}
	if got := strings.Count(out, "~ rain effect"); got != 2 {
		t.Errorf("effect announced %d times, want 2", got)
	}
}

type countingRenderer struct {
	mu        sync.Mutex
	snapshots []*models.WeatherSnapshot
	notes     []models.Notification
	effects   []string
	clears    int
	err       error
}

func (c *countingRenderer) RenderSnapshot(_ context.Context, snap *models.WeatherSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots = append(c.snapshots, snap)
	return c.err
}

func (c *countingRenderer) Notify(_ context.Context, n models.Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append(c.notes, n)
	return c.err
}

func (c *countingRenderer) RenderEffect(_ context.Context, effect string, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.effects = append(c.effects, effect)
	return c.err
}

func (c *countingRenderer) ClearEffects(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clears++
	return c.err
}

func (c *countingRenderer) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.snapshots) + len(c.notes) + len(c.effects) + c.clears
}

func TestMulti(t *testing.T) {
	a := &countingRenderer{}
	b := &countingRenderer{err: errors.New("boom")}
	m := Multi{a, b}
	ctx := context.Background()

	if err := m.RenderSnapshot(ctx, sampleSnapshot()); err == nil {
		t.Error("Multi should surface errors from any renderer")
	}
	m.Notify(ctx, models.Notification{Message: "hi"})
	m.RenderEffect(ctx, "rain", 0)
	m.ClearEffects(ctx)

	if a.total() != 4 || b.total() != 4 {
		t.Errorf("calls = %d/%d, want 4/4", a.total(), b.total())
	}
}

func TestEventApply_UnknownKind(t *testing.T) {
	err := Event{Kind: "bogus"}.Apply(context.Background(), &countingRenderer{})
	if err == nil {
		t.Error("Apply() expected error for unknown kind")
	}

	err = Event{Kind: KindSnapshot}.Apply(context.Background(), &countingRenderer{})
	if err == nil {
		t.Error("Apply() expected error for snapshot event without payload")
	}
}

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestStreamRenderer_Publish(t *testing.T) {
	client := newRedis(t)
	r := NewStreamRenderer(client, "weather_snapshots")
	ctx := context.Background()

	if err := r.RenderSnapshot(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("RenderSnapshot() error = %v", err)
	}
	if err := r.Notify(ctx, models.Notification{Kind: models.NotifySuccess, Message: "Weather updated for Surat"}); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	msgs, err := client.XRange(ctx, "weather_snapshots", "-", "+").Result()
	if err != nil {
		t.Fatalf("XRange() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("stream has %d messages, want 2", len(msgs))
	}

	if msgs[0].Values["kind"] != KindSnapshot {
		t.Errorf("first kind = %v, want snapshot", msgs[0].Values["kind"])
	}

	var e Event
	if err := json.Unmarshal([]byte(msgs[0].Values["data"].(string)), &e); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if e.Snapshot == nil || e.Snapshot.City != "Surat" || e.Snapshot.AQI != 208 {
		t.Errorf("decoded snapshot = %+v", e.Snapshot)
	}
}

func TestConsume_ReplaysEvents(t *testing.T) {
	client := newRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	target := &countingRenderer{}
	params := ConsumerParams{Stream: "weather_snapshots", Group: "renderers", Consumer: "test", Block: 50 * time.Millisecond}

	done := make(chan error, 1)
	go func() { done <- Consume(ctx, client, params, target) }()

	// let the group be created before publishing
	time.Sleep(100 * time.Millisecond)

	pub := NewStreamRenderer(client, "weather_snapshots")
	pub.RenderSnapshot(ctx, sampleSnapshot())
	pub.Notify(ctx, models.Notification{Kind: models.NotifyInfo, Message: "Fetching weather data..."})
	pub.RenderEffect(ctx, "drift", 0)
	pub.ClearEffects(ctx)
	client.XAdd(ctx, &redis.XAddArgs{Stream: "weather_snapshots", Values: map[string]interface{}{"data": "not json"}})

	deadline := time.Now().Add(2 * time.Second)
	for target.total() < 4 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Consume() error = %v", err)
	}

	target.mu.Lock()
	defer target.mu.Unlock()
	if len(target.snapshots) != 1 || target.snapshots[0].City != "Surat" {
		t.Errorf("snapshots = %+v, want one Surat snapshot", target.snapshots)
	}
	if len(target.notes) != 1 || len(target.effects) != 1 || target.clears != 1 {
		t.Errorf("notes/effects/clears = %d/%d/%d, want 1/1/1", len(target.notes), len(target.effects), target.clears)
	}
}
