package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"weatherdash/internal/api"
	"weatherdash/internal/metrics"
	"weatherdash/internal/models"
	"weatherdash/internal/snapshot"
)

// ErrEmptyCity is returned before any network call when the input is blank
var ErrEmptyCity = errors.New("city name is empty")

// WeatherSource is the upstream weather API
type WeatherSource interface {
	GetCurrentConditions(ctx context.Context, city string) (*models.CurrentConditions, error)
	GetForecast(ctx context.Context, city string) (*models.Forecast, error)
}

// Fetcher runs one fetch cycle: current conditions, then forecast, then build
type Fetcher struct {
	source  WeatherSource
	builder *snapshot.Builder
}

// NewFetcher creates a new fetcher
func NewFetcher(source WeatherSource, builder *snapshot.Builder) *Fetcher {
	return &Fetcher{
		source:  source,
		builder: builder,
	}
}

// Fetch returns a fresh snapshot for the city. The forecast is requested only
// after current conditions succeed. Errors wrap ErrEmptyCity or one of the
// api failure kinds.
func (f *Fetcher) Fetch(ctx context.Context, city string) (*models.WeatherSnapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		metrics.RecordSearch(metrics.OutcomeRejected)
		return nil, ErrEmptyCity
	}

	current, err := f.source.GetCurrentConditions(ctx, city)
	if err != nil {
		metrics.RecordSearch(Outcome(err))
		return nil, fmt.Errorf("current conditions for %q: %w", city, err)
	}

	forecast, err := f.source.GetForecast(ctx, city)
	if err != nil {
		metrics.RecordSearch(Outcome(err))
		return nil, fmt.Errorf("forecast for %q: %w", city, err)
	}

	snap := f.builder.Build(current, forecast.List)
	metrics.RecordSearch(metrics.OutcomeSuccess)
	log.Printf("✓ Built snapshot for %s (%s, %d°, AQI %d)", snap.City, snap.Category, snap.CurrentTemp, snap.AQI)

	return snap, nil
}

// Outcome maps a fetch error to its metrics outcome label
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrEmptyCity):
		return metrics.OutcomeRejected
	case errors.Is(err, api.ErrCityNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, api.ErrUpstream):
		return metrics.OutcomeUpstreamFailure
	case errors.Is(err, api.ErrNetwork):
		return metrics.OutcomeNetworkFailure
	default:
		return metrics.OutcomeError
	}
}
