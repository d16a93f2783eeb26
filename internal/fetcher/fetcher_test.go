package fetcher

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"weatherdash/internal/airquality"
	"weatherdash/internal/api"
	"weatherdash/internal/metrics"
	"weatherdash/internal/models"
	"weatherdash/internal/snapshot"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

type fakeSource struct {
	current       *models.CurrentConditions
	forecast      *models.Forecast
	currentErr    error
	forecastErr   error
	currentCalls  []string
	forecastCalls []string
}

func (f *fakeSource) GetCurrentConditions(_ context.Context, city string) (*models.CurrentConditions, error) {
	f.currentCalls = append(f.currentCalls, city)
	return f.current, f.currentErr
}

func (f *fakeSource) GetForecast(_ context.Context, city string) (*models.Forecast, error) {
	f.forecastCalls = append(f.forecastCalls, city)
	return f.forecast, f.forecastErr
}

func newFetcher(src WeatherSource) *Fetcher {
	noon := time.Date(2025, 11, 29, 12, 0, 0, 0, time.UTC)
	b := snapshot.NewBuilder(
		airquality.NewEstimator(fixedSource(0)),
		snapshot.WithClock(func() time.Time { return noon }),
		snapshot.WithLocation(time.UTC),
	)
	return NewFetcher(src, b)
}

func okSource() *fakeSource {
	day := time.Date(2025, 11, 29, 0, 0, 0, 0, time.UTC)
	return &fakeSource{
		current: &models.CurrentConditions{
			Name:    "Surat",
			Weather: []models.Condition{{Main: "Clouds", Description: "broken clouds"}},
			Main:    models.CurrentMain{Temp: 30, Humidity: 70},
			Sys:     models.Sys{Sunrise: day.Add(6 * time.Hour).Unix(), Sunset: day.Add(18 * time.Hour).Unix()},
		},
		forecast: &models.Forecast{List: []models.ForecastSlot{
			{Dt: day.Add(15 * time.Hour).Unix(), Weather: []models.Condition{{Main: "Rain"}}},
		}},
	}
}

func TestFetch_Success(t *testing.T) {
	src := okSource()
	f := newFetcher(src)

	snap, err := f.Fetch(context.Background(), "  Surat  ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if snap.City != "Surat" || snap.Icon != "cloudy" || snap.Theme != "cloudy" || !snap.IsDay {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.AQI != 210 {
		t.Errorf("AQI = %d, want 210", snap.AQI)
	}
	if len(src.currentCalls) != 1 || src.currentCalls[0] != "Surat" {
		t.Errorf("current calls = %v, want [Surat] (trimmed)", src.currentCalls)
	}
	if len(src.forecastCalls) != 1 {
		t.Errorf("forecast calls = %v, want 1 call", src.forecastCalls)
	}
	if len(snap.Hourly) != 1 || snap.Hourly[0].Icon != "rainy" {
		t.Errorf("Hourly = %+v, want one rainy point", snap.Hourly)
	}
}

func TestFetch_EmptyCityMakesNoCalls(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		src := okSource()
		f := newFetcher(src)

		_, err := f.Fetch(context.Background(), input)
		if !errors.Is(err, ErrEmptyCity) {
			t.Errorf("Fetch(%q) error = %v, want ErrEmptyCity", input, err)
		}
		if len(src.currentCalls)+len(src.forecastCalls) != 0 {
			t.Errorf("Fetch(%q) made upstream calls", input)
		}
	}
}

func TestFetch_CurrentFailureSkipsForecast(t *testing.T) {
	kinds := []error{api.ErrCityNotFound, api.ErrUpstream, api.ErrNetwork}

	for _, kind := range kinds {
		t.Run(kind.Error(), func(t *testing.T) {
			src := okSource()
			src.currentErr = fmt.Errorf("%w: detail", kind)
			f := newFetcher(src)

			snap, err := f.Fetch(context.Background(), "Atlantis")
			if snap != nil {
				t.Error("Fetch() should not return a snapshot on failure")
			}
			if !errors.Is(err, kind) {
				t.Errorf("error = %v, want %v", err, kind)
			}
			if len(src.forecastCalls) != 0 {
				t.Errorf("forecast was requested after current failed")
			}
		})
	}
}

func TestFetch_ForecastFailure(t *testing.T) {
	src := okSource()
	src.forecastErr = fmt.Errorf("%w: status 500", api.ErrUpstream)
	f := newFetcher(src)

	snap, err := f.Fetch(context.Background(), "Surat")
	if snap != nil {
		t.Error("Fetch() should not return a partial snapshot")
	}
	if !errors.Is(err, api.ErrUpstream) {
		t.Errorf("error = %v, want ErrUpstream", err)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, metrics.OutcomeSuccess},
		{ErrEmptyCity, metrics.OutcomeRejected},
		{fmt.Errorf("x: %w", api.ErrCityNotFound), metrics.OutcomeNotFound},
		{fmt.Errorf("x: %w", api.ErrUpstream), metrics.OutcomeUpstreamFailure},
		{fmt.Errorf("x: %w", api.ErrNetwork), metrics.OutcomeNetworkFailure},
		{errors.New("decode"), metrics.OutcomeError},
	}

	for _, tt := range tests {
		if got := Outcome(tt.err); got != tt.want {
			t.Errorf("Outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
