package classify

import "strings"

// IconKey names a presentation icon
type IconKey string

const (
	IconSun          IconKey = "sun"
	IconMoon         IconKey = "moon"
	IconCloudy       IconKey = "cloudy"
	IconRainy        IconKey = "rainy"
	IconDrizzle      IconKey = "drizzle"
	IconThunderstorm IconKey = "thunderstorm"
	IconSnowy        IconKey = "snowy"
	IconMisty        IconKey = "misty"
	IconFoggy        IconKey = "foggy"
	IconHazy         IconKey = "hazy"
)

// iconTable maps lowercased OpenWeatherMap categories to icons.
// Treat as read-only.
var iconTable = map[string]IconKey{
	"clear":        IconSun,
	"clouds":       IconCloudy,
	"rain":         IconRainy,
	"drizzle":      IconDrizzle,
	"thunderstorm": IconThunderstorm,
	"snow":         IconSnowy,
	"mist":         IconMisty,
	"fog":          IconFoggy,
	"haze":         IconHazy,
}

// ClassifyIcon maps a condition category to an icon key. Unknown categories
// fall back to IconSun, and a clear sky at night becomes IconMoon.
func ClassifyIcon(category string, isNight bool) IconKey {
	main := strings.ToLower(category)

	if main == "clear" && isNight {
		return IconMoon
	}

	if icon, ok := iconTable[main]; ok {
		return icon
	}
	return IconSun
}
