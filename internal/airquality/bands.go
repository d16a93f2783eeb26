package airquality

// Band is one severity bucket of the index
type Band struct {
	Max         int
	Label       string
	Description string
	Color       string
}

// bands are ordered by inclusive upper bound. The last band catches everything above 300.
var bands = []Band{
	{Max: 50, Label: "Good", Color: "#4ade80",
		Description: "Air quality is satisfactory, and air pollution poses little or no risk."},
	{Max: 100, Label: "Moderate", Color: "#fbbf24",
		Description: "Air quality is acceptable for most people."},
	{Max: 150, Label: "Unhealthy", Color: "#fb923c",
		Description: "Members of sensitive groups may experience health effects."},
	{Max: 200, Label: "Poor", Color: "#f87171",
		Description: "May cause breathing discomfort for people with prolonged exposure."},
	{Max: 300, Label: "Very Poor", Color: "#dc2626",
		Description: "Everyone may experience health effects; members of sensitive groups may experience more serious effects."},
	{Max: MaxAQI, Label: "Severe", Color: "#991b1b",
		Description: "Health alert: everyone may experience more serious health effects."},
}

// Classify returns the band an index value falls into
func Classify(aqi int) Band {
	for _, b := range bands[:len(bands)-1] {
		if aqi <= b.Max {
			return b
		}
	}
	return bands[len(bands)-1]
}
