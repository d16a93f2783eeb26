package render

import (
	"context"
	"errors"

	"weatherdash/internal/dashboard"
	"weatherdash/internal/models"
)

// Multi fans every call out to several renderers
type Multi []dashboard.Renderer

func (m Multi) RenderSnapshot(ctx context.Context, snap *models.WeatherSnapshot) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.RenderSnapshot(ctx, snap))
	}
	return errors.Join(errs...)
}

func (m Multi) Notify(ctx context.Context, n models.Notification) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.Notify(ctx, n))
	}
	return errors.Join(errs...)
}

func (m Multi) RenderEffect(ctx context.Context, effect string, frame int) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.RenderEffect(ctx, effect, frame))
	}
	return errors.Join(errs...)
}

func (m Multi) ClearEffects(ctx context.Context) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.ClearEffects(ctx))
	}
	return errors.Join(errs...)
}

var _ dashboard.Renderer = Multi(nil)
