package domain

import "time"

// WeatherSnapshot is the current conditions plus a short forecast near the
// user.
type WeatherSnapshot struct {
	Current  CurrentWeather  `json:"current"`
	Forecast []ForecastEntry `json:"forecast"`
}

type CurrentWeather struct {
	TemperatureC float64 `json:"temperature_c"`
	Condition    string  `json:"condition"`
	Description  string  `json:"description"`
	WindSpeedMS  float64 `json:"wind_speed_ms"`
	Humidity     int     `json:"humidity"`
}

type ForecastEntry struct {
	Time              time.Time `json:"time"`
	TemperatureC      float64   `json:"temperature_c"`
	Condition         string    `json:"condition"`
	PrecipProbability float64   `json:"precip_probability"`
}
