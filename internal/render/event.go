package render

import (
	"context"
	"fmt"

	"weatherdash/internal/dashboard"
	"weatherdash/internal/models"
)

// Event kinds carried on the stream
const (
	KindSnapshot     = "snapshot"
	KindNotification = "notification"
	KindEffect       = "effect"
	KindClear        = "clear"
)

// Event is one renderer call, serialized for transport
type Event struct {
	Kind         string                  `json:"kind"`
	Snapshot     *models.WeatherSnapshot `json:"snapshot,omitempty"`
	Notification *models.Notification    `json:"notification,omitempty"`
	Effect       string                  `json:"effect,omitempty"`
	Frame        int                     `json:"frame,omitempty"`
}

// Apply replays the event against a renderer
func (e Event) Apply(ctx context.Context, r dashboard.Renderer) error {
	switch e.Kind {
	case KindSnapshot:
		if e.Snapshot == nil {
			return fmt.Errorf("snapshot event without snapshot")
		}
		return r.RenderSnapshot(ctx, e.Snapshot)
	case KindNotification:
		if e.Notification == nil {
			return fmt.Errorf("notification event without notification")
		}
		return r.Notify(ctx, *e.Notification)
	case KindEffect:
		return r.RenderEffect(ctx, e.Effect, e.Frame)
	case KindClear:
		return r.ClearEffects(ctx)
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
}
