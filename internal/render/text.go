package render

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"weatherdash/internal/dashboard"
	"weatherdash/internal/models"
)

// TextRenderer writes a plain-text dashboard to an io.Writer
type TextRenderer struct {
	mu     sync.Mutex
	w      io.Writer
	effect string
}

// NewTextRenderer creates a renderer writing to w
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (t *TextRenderer) RenderSnapshot(_ context.Context, snap *models.WeatherSnapshot) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := io.WriteString(t.w, FormatSnapshot(snap))
	return err
}

func (t *TextRenderer) Notify(_ context.Context, n models.Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := fmt.Fprintf(t.w, "[%s] %s\n", n.Kind, n.Message)
	return err
}

// RenderEffect announces an effect once; a terminal has nothing to animate
func (t *TextRenderer) RenderEffect(_ context.Context, effect string, _ int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.effect == effect {
		return nil
	}
	t.effect = effect
	_, err := fmt.Fprintf(t.w, "~ %s effect\n", effect)
	return err
}

func (t *TextRenderer) ClearEffects(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.effect = ""
	return nil
}

var _ dashboard.Renderer = (*TextRenderer)(nil)

// FormatSnapshot lays a snapshot out as text
func FormatSnapshot(snap *models.WeatherSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "== %s ==\n", snap.City)
	fmt.Fprintf(&b, "%d°  %s   %d° / %d°   Air quality: %d – %s\n",
		snap.CurrentTemp, snap.Condition, snap.TempMin, snap.TempMax, snap.AQI, snap.AQIStatus)
	fmt.Fprintf(&b, "%s\n", snap.AQIDescription)
	fmt.Fprintf(&b, "Feels like %d°  Humidity %d%%  %s wind %d km/h  Pressure %d hPa  Visibility %d km  Clouds %d%%\n",
		snap.FeelsLike, snap.Humidity, snap.WindDirection, snap.WindSpeed, snap.Pressure, snap.Visibility, snap.Cloudiness)
	fmt.Fprintf(&b, "Sunrise %s  Sunset %s  Icon %s  Theme %s\n", snap.Sunrise, snap.Sunset, snap.Icon, snap.Theme)

	hourly := make([]string, 0, len(snap.Hourly))
	for _, h := range snap.Hourly {
		hourly = append(hourly, fmt.Sprintf("%s %s %d°", h.Label, h.Icon, h.Temperature))
	}
	fmt.Fprintf(&b, "Hourly: %s\n", strings.Join(hourly, " | "))

	b.WriteString("Forecast:\n")
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	for _, d := range snap.Daily {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d° / %d°\n", d.Date, d.Day, d.Icon, d.TempMin, d.TempMax)
	}
	tw.Flush()

	return b.String()
}
