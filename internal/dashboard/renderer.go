package dashboard

import (
	"context"

	"weatherdash/internal/models"
)

// Renderer presents snapshots, notifications and theme effects to the user
type Renderer interface {
	RenderSnapshot(ctx context.Context, snap *models.WeatherSnapshot) error
	Notify(ctx context.Context, n models.Notification) error
	// RenderEffect draws one frame of a recurring theme effect
	RenderEffect(ctx context.Context, effect string, frame int) error
	// ClearEffects removes any artifacts left by previous effect frames
	ClearEffects(ctx context.Context) error
}
