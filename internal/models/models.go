package models

import "time"

// Condition is one entry of the OpenWeatherMap "weather" array
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// CurrentConditions represents the /weather response from OpenWeatherMap
type CurrentConditions struct {
	Name       string      `json:"name"`
	Weather    []Condition `json:"weather"`
	Main       CurrentMain `json:"main"`
	Visibility float64     `json:"visibility"`
	Wind       Wind        `json:"wind"`
	Clouds     Clouds      `json:"clouds"`
	Sys        Sys         `json:"sys"`
	Dt         int64       `json:"dt"`
}

type CurrentMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

type Wind struct {
	Speed float64 `json:"speed"` // m/s with units=metric
	Deg   float64 `json:"deg"`
}

type Clouds struct {
	All int `json:"all"`
}

type Sys struct {
	Country string `json:"country"`
	Sunrise int64  `json:"sunrise"`
	Sunset  int64  `json:"sunset"`
}

// Category returns the primary condition category, e.g. "Rain"
func (c *CurrentConditions) Category() string {
	if len(c.Weather) == 0 {
		return ""
	}
	return c.Weather[0].Main
}

// Description returns the free-text condition description
func (c *CurrentConditions) Description() string {
	if len(c.Weather) == 0 {
		return ""
	}
	return c.Weather[0].Description
}

// Forecast represents the /forecast response (3-hour slots over five days)
type Forecast struct {
	List []ForecastSlot `json:"list"`
	City struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

// ForecastSlot is a single 3-hour forecast entry
type ForecastSlot struct {
	Dt      int64       `json:"dt"`
	Main    SlotMain    `json:"main"`
	Weather []Condition `json:"weather"`
}

type SlotMain struct {
	Temp    float64 `json:"temp"`
	TempMin float64 `json:"temp_min"`
	TempMax float64 `json:"temp_max"`
}

// Time returns the slot timestamp
func (s ForecastSlot) Time() time.Time {
	return time.Unix(s.Dt, 0)
}

// Category returns the slot's primary condition category
func (s ForecastSlot) Category() string {
	if len(s.Weather) == 0 {
		return ""
	}
	return s.Weather[0].Main
}

// HourlyPoint is one entry of the near-term hourly strip
type HourlyPoint struct {
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	Temperature int    `json:"temperature"`
}

// DailyPoint is one entry of the five-day forecast
type DailyPoint struct {
	Date    string `json:"date"`
	Day     string `json:"day"`
	Icon    string `json:"icon"`
	TempMin int    `json:"temp_min"`
	TempMax int    `json:"temp_max"`
}

// WeatherSnapshot is the render-ready weather state for one city
type WeatherSnapshot struct {
	City           string        `json:"city"`
	CurrentTemp    int           `json:"current_temp"`
	TempMin        int           `json:"temp_min"`
	TempMax        int           `json:"temp_max"`
	FeelsLike      int           `json:"feels_like"`
	Condition      string        `json:"condition"`
	Category       string        `json:"category"`
	IsDay          bool          `json:"is_day"`
	Humidity       int           `json:"humidity"`
	Pressure       int           `json:"pressure"`
	WindSpeed      int           `json:"wind_speed"` // km/h
	WindDirection  string        `json:"wind_direction"`
	Visibility     int           `json:"visibility"` // km
	Cloudiness     int           `json:"cloudiness"`
	Sunrise        string        `json:"sunrise"`
	Sunset         string        `json:"sunset"`
	AQI            int           `json:"aqi"`
	AQIStatus      string        `json:"aqi_status"`
	AQIDescription string        `json:"aqi_description"`
	AQIColor       string        `json:"aqi_color"`
	Hourly         []HourlyPoint `json:"hourly"`
	Daily          []DailyPoint  `json:"daily"`
	Icon           string        `json:"icon"`
	Theme          string        `json:"theme"`
	FetchedAt      time.Time     `json:"fetched_at"`
}

// NotificationKind mirrors the dashboard toast styles
type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is a transient message for the user
type Notification struct {
	SearchID  string           `json:"search_id"`
	Kind      NotificationKind `json:"kind"`
	Message   string           `json:"message"`
	Reason    string           `json:"reason,omitempty"` // "not_found", "upstream", "network", "empty_city"
	Timestamp time.Time        `json:"timestamp"`
}
