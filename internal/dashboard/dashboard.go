package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"weatherdash/internal/api"
	"weatherdash/internal/classify"
	"weatherdash/internal/fetcher"
	"weatherdash/internal/metrics"
	"weatherdash/internal/models"
)

// User-facing notification messages
const (
	MsgEmptyCity = "Please enter a city name"
	MsgFetching  = "Fetching weather data..."
	MsgNotFound  = "City not found. Please try again."
	MsgUpstream  = "Failed to fetch weather data"
	MsgNetwork   = "Network error. Please check your connection."
	MsgUpdated   = "Weather updated for %s"
)

// SnapshotFetcher produces a fresh snapshot for a city
type SnapshotFetcher interface {
	Fetch(ctx context.Context, city string) (*models.WeatherSnapshot, error)
}

// Dashboard holds the displayed snapshot and drives the renderer
type Dashboard struct {
	fetcher  SnapshotFetcher
	renderer Renderer
	effects  *EffectSlot
	now      func() time.Time

	mu      sync.RWMutex
	current *models.WeatherSnapshot
}

// NewDashboard creates a dashboard with no snapshot displayed
func NewDashboard(f SnapshotFetcher, r Renderer, effectInterval time.Duration) *Dashboard {
	return &Dashboard{
		fetcher:  f,
		renderer: r,
		effects:  NewEffectSlot(r, effectInterval),
		now:      time.Now,
	}
}

// Current returns the displayed snapshot, or nil before the first successful search
func (d *Dashboard) Current() *models.WeatherSnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current
}

// ActiveEffect returns the running theme effect, if any
func (d *Dashboard) ActiveEffect() string {
	return d.effects.Active()
}

// Search fetches the city and, on success, replaces the displayed snapshot.
// On failure the previous snapshot stays and exactly one error notification is sent.
func (d *Dashboard) Search(ctx context.Context, input string) (*models.WeatherSnapshot, error) {
	searchID := uuid.NewString()
	city := strings.TrimSpace(input)

	if city == "" {
		metrics.RecordSearch(metrics.OutcomeRejected)
		d.notify(ctx, searchID, models.NotifyError, MsgEmptyCity, "empty_city")
		return nil, fetcher.ErrEmptyCity
	}

	log.Printf("[%s] Searching weather for %q", searchID, city)
	d.notify(ctx, searchID, models.NotifyInfo, MsgFetching, "")

	snap, err := d.fetcher.Fetch(ctx, city)
	if err != nil {
		msg, reason := FailureMessage(err)
		log.Printf("[%s] Search for %q failed: %v", searchID, city, err)
		d.notify(ctx, searchID, models.NotifyError, msg, reason)
		return nil, err
	}

	d.display(ctx, snap)
	d.notify(ctx, searchID, models.NotifySuccess, fmt.Sprintf(MsgUpdated, snap.City), "")

	return snap, nil
}

// Close stops any running effect
func (d *Dashboard) Close() {
	d.effects.Release()
}

// display swaps in the snapshot and renders it. The lock spans both steps so
// the rendered snapshot always matches Current.
func (d *Dashboard) display(ctx context.Context, snap *models.WeatherSnapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.current = snap
	if err := d.renderer.RenderSnapshot(ctx, snap); err != nil {
		log.Printf("Failed to render snapshot for %s: %v", snap.City, err)
	}
	d.effects.Acquire(classify.ThemeKey(snap.Theme))
}

func (d *Dashboard) notify(ctx context.Context, searchID string, kind models.NotificationKind, msg, reason string) {
	n := models.Notification{
		SearchID:  searchID,
		Kind:      kind,
		Message:   msg,
		Reason:    reason,
		Timestamp: d.now(),
	}
	if err := d.renderer.Notify(ctx, n); err != nil {
		log.Printf("[%s] Failed to send notification: %v", searchID, err)
	}
}

// FailureMessage maps a search error to the message shown to the user and
// its notification reason. The error text itself is never shown.
func FailureMessage(err error) (msg, reason string) {
	switch {
	case errors.Is(err, fetcher.ErrEmptyCity):
		return MsgEmptyCity, "empty_city"
	case errors.Is(err, api.ErrCityNotFound):
		return MsgNotFound, "not_found"
	case errors.Is(err, api.ErrNetwork):
		return MsgNetwork, "network"
	default:
		return MsgUpstream, "upstream"
	}
}
