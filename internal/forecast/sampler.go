package forecast

import (
	"math"
	"time"

	"weatherdash/internal/classify"
	"weatherdash/internal/models"
)

const (
	MaxHourly = 6
	MaxDaily  = 5

	// TimeLayout renders clock times the way the dashboard shows them (e.g. "2:00 PM")
	TimeLayout = "3:04 PM"
	// DateLayout renders day labels (e.g. "Nov 29")
	DateLayout = "Jan 2"
)

// SampleHourly takes the first MaxHourly slots. The first point is always
// labelled "Now"; the rest carry their local clock time.
func SampleHourly(slots []models.ForecastSlot, loc *time.Location) []models.HourlyPoint {
	if loc == nil {
		loc = time.Local
	}

	n := len(slots)
	if n > MaxHourly {
		n = MaxHourly
	}

	points := make([]models.HourlyPoint, 0, n)
	for i, slot := range slots[:n] {
		label := "Now"
		if i > 0 {
			label = slot.Time().In(loc).Format(TimeLayout)
		}

		points = append(points, models.HourlyPoint{
			Label:       label,
			Icon:        string(classify.ClassifyIcon(slot.Category(), false)),
			Temperature: Round(slot.Main.Temp),
		})
	}

	return points
}

// SampleDaily keeps the first slot seen for each local calendar date, up to
// MaxDaily dates. Min/max come from that single slot, not the whole day.
func SampleDaily(slots []models.ForecastSlot, loc *time.Location) []models.DailyPoint {
	if loc == nil {
		loc = time.Local
	}

	type dateKey struct {
		year int
		day  int
	}

	seen := make(map[dateKey]bool, MaxDaily)
	points := make([]models.DailyPoint, 0, MaxDaily)

	for _, slot := range slots {
		if len(points) == MaxDaily {
			break
		}

		t := slot.Time().In(loc)
		key := dateKey{year: t.Year(), day: t.YearDay()}
		if seen[key] {
			continue
		}
		seen[key] = true

		points = append(points, models.DailyPoint{
			Date:    t.Format(DateLayout),
			Day:     dayLabel(len(points), t),
			Icon:    string(classify.ClassifyIcon(slot.Category(), false)),
			TempMin: Round(slot.Main.TempMin),
			TempMax: Round(slot.Main.TempMax),
		})
	}

	return points
}

func dayLabel(index int, t time.Time) string {
	switch index {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return t.Format("Mon")
	}
}

// Round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}
