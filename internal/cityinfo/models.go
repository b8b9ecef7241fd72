package cityinfo

import (
	"time"
)

// Recipe is a user-contributed text entry attached to a city.
type Recipe struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Coordinates is a [latitude, longitude] pair.
type Coordinates [2]float64

// CityDetails is the normalized view of the upstream city payload.
type CityDetails struct {
	Coordinates Coordinates `json:"coordinates"`
	Population  int64       `json:"population"`
	KnownFor    []string    `json:"knownFor"`
}

// WeatherPrediction is a single forecast entry. When is either a date or a
// label such as "today".
type WeatherPrediction struct {
	When string  `json:"when"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// CityInfo is the aggregated response for a city.
type CityInfo struct {
	CityDetails
	WeatherPredictions []WeatherPrediction `json:"weatherPredictions"`
	Recipes            []Recipe            `json:"recipes"`
}

// UpstreamStatus is the outcome of the most recent reachability probe.
type UpstreamStatus struct {
	Checked   bool      `json:"checked"`
	Reachable bool      `json:"reachable"`
	CheckedAt time.Time `json:"checkedAt,omitempty"`
	Error     string    `json:"error,omitempty"`
}
