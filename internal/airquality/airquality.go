// Package airquality derives a synthetic air-quality index from humidity.
// The index is an estimate, not a pollutant measurement.
package airquality

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	// MaxAQI is the top of the index scale
	MaxAQI = 500

	humidityWeight = 3
	maxJitter      = 50
)

// Source supplies uniformly distributed floats in [0, 1).
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Estimator turns a humidity reading into an AQI value
type Estimator struct {
	mu     sync.Mutex
	source Source
}

// NewEstimator creates an estimator backed by the given source.
// A nil source gets a time-seeded math/rand generator.
func NewEstimator(source Source) *Estimator {
	if source == nil {
		source = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Estimator{source: source}
}

// Estimate returns round(humidity*3 + jitter) clamped to [0, MaxAQI],
// where jitter is drawn from [0, 50).
func (e *Estimator) Estimate(humidity float64) int {
	e.mu.Lock()
	draw := e.source.Float64()
	e.mu.Unlock()

	aqi := int(math.Floor(humidity*humidityWeight + draw*maxJitter + 0.5))
	if aqi > MaxAQI {
		return MaxAQI
	}
	if aqi < 0 {
		return 0
	}
	return aqi
}
