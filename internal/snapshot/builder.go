package snapshot

import (
	"strings"
	"time"

	"weatherdash/internal/airquality"
	"weatherdash/internal/classify"
	"weatherdash/internal/forecast"
	"weatherdash/internal/models"
)

var compass = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Builder assembles WeatherSnapshots from raw upstream payloads
type Builder struct {
	estimator *airquality.Estimator
	location  *time.Location
	now       func() time.Time
}

// Option configures a Builder
type Option func(*Builder)

// WithClock overrides the fetch-time clock
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithLocation sets the zone used for time and date labels
func WithLocation(loc *time.Location) Option {
	return func(b *Builder) { b.location = loc }
}

// NewBuilder creates a snapshot builder
func NewBuilder(estimator *airquality.Estimator, opts ...Option) *Builder {
	b := &Builder{
		estimator: estimator,
		location:  time.Local,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.estimator == nil {
		b.estimator = airquality.NewEstimator(nil)
	}
	return b
}

// Build normalizes current conditions and forecast slots into a snapshot.
// Payloads are assumed well-formed; Build does not validate them.
func (b *Builder) Build(current *models.CurrentConditions, slots []models.ForecastSlot) *models.WeatherSnapshot {
	now := b.now()
	sunrise := time.Unix(current.Sys.Sunrise, 0).In(b.location)
	sunset := time.Unix(current.Sys.Sunset, 0).In(b.location)
	isDay := !now.Before(sunrise) && now.Before(sunset)

	category := current.Category()
	aqi := b.estimator.Estimate(float64(current.Main.Humidity))
	band := airquality.Classify(aqi)

	return &models.WeatherSnapshot{
		City:           current.Name,
		CurrentTemp:    forecast.Round(current.Main.Temp),
		TempMin:        forecast.Round(current.Main.TempMin),
		TempMax:        forecast.Round(current.Main.TempMax),
		FeelsLike:      forecast.Round(current.Main.FeelsLike),
		Condition:      current.Description(),
		Category:       strings.ToLower(category),
		IsDay:          isDay,
		Humidity:       current.Main.Humidity,
		Pressure:       current.Main.Pressure,
		WindSpeed:      forecast.Round(current.Wind.Speed * 3.6),
		WindDirection:  WindDirection(current.Wind.Deg),
		Visibility:     forecast.Round(current.Visibility / 1000),
		Cloudiness:     current.Clouds.All,
		Sunrise:        sunrise.Format(forecast.TimeLayout),
		Sunset:         sunset.Format(forecast.TimeLayout),
		AQI:            aqi,
		AQIStatus:      band.Label,
		AQIDescription: band.Description,
		AQIColor:       band.Color,
		Hourly:         forecast.SampleHourly(slots, b.location),
		Daily:          forecast.SampleDaily(slots, b.location),
		Icon:           string(classify.ClassifyIcon(category, !isDay)),
		Theme:          string(classify.ClassifyTheme(category, isDay)),
		FetchedAt:      now,
	}
}

// WindDirection converts degrees to an 8-point compass abbreviation
func WindDirection(deg float64) string {
	i := forecast.Round(deg/45) % len(compass)
	if i < 0 {
		i += len(compass)
	}
	return compass[i]
}
