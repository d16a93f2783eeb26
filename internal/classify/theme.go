package classify

import "strings"

// ThemeKey selects the ambient visual presentation
type ThemeKey string

const (
	ThemeClearDay   ThemeKey = "clear-day"
	ThemeClearNight ThemeKey = "clear-night"
	ThemeCloudy     ThemeKey = "cloudy"
	ThemeRainy      ThemeKey = "rainy"
	ThemeFoggy      ThemeKey = "foggy"
)

// themeRule matches when the category contains any of its needles
type themeRule struct {
	needles []string
	day     ThemeKey
	night   ThemeKey
}

// themeRules are evaluated in order; rain beats cloud beats fog/mist beats clear.
var themeRules = []themeRule{
	{needles: []string{"rain"}, day: ThemeRainy, night: ThemeRainy},
	{needles: []string{"cloud"}, day: ThemeCloudy, night: ThemeCloudy},
	{needles: []string{"fog", "mist"}, day: ThemeFoggy, night: ThemeFoggy},
	{needles: []string{"clear"}, day: ThemeClearDay, night: ThemeClearNight},
}

// ClassifyTheme picks the theme for a condition category
func ClassifyTheme(category string, isDay bool) ThemeKey {
	main := strings.ToLower(category)

	for _, rule := range themeRules {
		for _, needle := range rule.needles {
			if !strings.Contains(main, needle) {
				continue
			}
			if isDay {
				return rule.day
			}
			return rule.night
		}
	}

	return ThemeClearDay
}

// Effect names the recurring visual effect that accompanies a theme.
// An empty string means the theme is static.
func (t ThemeKey) Effect() string {
	switch t {
	case ThemeRainy:
		return "rain"
	case ThemeFoggy:
		return "drift"
	case ThemeClearNight:
		return "stars"
	default:
		return ""
	}
}
