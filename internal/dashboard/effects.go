package dashboard

import (
	"context"
	"log"
	"sync"
	"time"

	"weatherdash/internal/classify"
	"weatherdash/internal/metrics"
)

// DefaultEffectInterval is how often an effect frame is drawn
const DefaultEffectInterval = 300 * time.Millisecond

// EffectSlot owns the single running theme effect. Acquiring a new effect
// stops the previous one and clears its artifacts first.
type EffectSlot struct {
	mu       sync.Mutex
	renderer Renderer
	interval time.Duration
	effect   string
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewEffectSlot creates an empty effect slot
func NewEffectSlot(renderer Renderer, interval time.Duration) *EffectSlot {
	if interval <= 0 {
		interval = DefaultEffectInterval
	}
	return &EffectSlot{
		renderer: renderer,
		interval: interval,
	}
}

// Acquire releases any running effect and starts the one for theme, if it has one
func (s *EffectSlot) Acquire(theme classify.ThemeKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()

	effect := theme.Effect()
	if effect == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.effect = effect
	s.cancel = cancel
	s.done = done
	metrics.ActiveEffects.Set(1)

	go s.run(ctx, done, effect)
}

// Release stops the running effect, if any, and clears its artifacts
func (s *EffectSlot) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.releaseLocked()
}

// Active returns the running effect name, or "" when the slot is empty
func (s *EffectSlot) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.effect
}

func (s *EffectSlot) releaseLocked() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
		s.cancel = nil
		s.done = nil
		s.effect = ""
		metrics.ActiveEffects.Set(0)
	}

	if err := s.renderer.ClearEffects(context.Background()); err != nil {
		log.Printf("Failed to clear effects: %v", err)
	}
}

func (s *EffectSlot) run(ctx context.Context, done chan struct{}, effect string) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.renderer.RenderEffect(ctx, effect, frame); err != nil && ctx.Err() == nil {
				log.Printf("Failed to render %s effect frame %d: %v", effect, frame, err)
			}
		}
	}
}
