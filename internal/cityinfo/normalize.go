package cityinfo

import "math"

// maxPopulation is the largest float64 that converts to int64 without overflow.
const maxPopulation = 1 << 62

// PlaceholderPredictions returns the forecast used when upstream weather data
// is unavailable or malformed.
func PlaceholderPredictions() []WeatherPrediction {
	return []WeatherPrediction{
		{When: "today", Min: 0, Max: 0},
		{When: "tomorrow", Min: 0, Max: 0},
	}
}

// NormalizeCity coerces a decoded upstream city payload into CityDetails.
// Each field falls back to its default independently of the others.
func NormalizeCity(raw any) CityDetails {
	details := CityDetails{
		KnownFor: []string{},
	}

	obj, ok := asObject(raw)
	if !ok {
		return details
	}

	details.Coordinates = normalizeCoordinates(obj["coordinates"])
	details.Population = normalizePopulation(obj["population"])
	details.KnownFor = normalizeKnownFor(obj["knownFor"])
	return details
}

// NormalizeWeather extracts the first two predictions from a decoded upstream
// forecast payload. It reports false when the payload does not carry at least
// two well-formed leading entries, in which case callers use
// PlaceholderPredictions.
func NormalizeWeather(raw any) ([]WeatherPrediction, bool) {
	entries, ok := predictionEntries(raw)
	if !ok || len(entries) < 2 {
		return nil, false
	}

	out := make([]WeatherPrediction, 0, 2)
	for _, e := range entries[:2] {
		p, ok := parsePrediction(e)
		if !ok {
			return nil, false
		}
		out = append(out, p)
	}
	return out, true
}

// asObject accepts an object or a single-object array.
func asObject(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case []any:
		if len(v) == 1 {
			obj, ok := v[0].(map[string]any)
			return obj, ok
		}
	}
	return nil, false
}

func normalizeCoordinates(raw any) Coordinates {
	switch v := raw.(type) {
	case []any:
		if len(v) != 2 {
			return Coordinates{}
		}
		lat, okLat := v[0].(float64)
		lon, okLon := v[1].(float64)
		if okLat && okLon {
			return Coordinates{lat, lon}
		}
	case map[string]any:
		if lat, lon, ok := numberPair(v, "latitude", "longitude"); ok {
			return Coordinates{lat, lon}
		}
		if lat, lon, ok := numberPair(v, "lat", "lon"); ok {
			return Coordinates{lat, lon}
		}
	}
	return Coordinates{}
}

func numberPair(obj map[string]any, a, b string) (float64, float64, bool) {
	x, okA := obj[a].(float64)
	y, okB := obj[b].(float64)
	return x, y, okA && okB
}

func normalizePopulation(raw any) int64 {
	n, ok := raw.(float64)
	if !ok || n < 0 || n > maxPopulation || n != math.Trunc(n) {
		return 0
	}
	return int64(n)
}

func normalizeKnownFor(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return []string{}
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

// predictionEntries unwraps the forecast shapes seen upstream:
// {predictions: [...]}, [{predictions: [...]}, ...] and a bare array.
func predictionEntries(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		p, ok := v["predictions"].([]any)
		return p, ok
	case []any:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]any); ok {
				if _, wrapped := first["predictions"]; wrapped {
					p, ok := first["predictions"].([]any)
					return p, ok
				}
			}
		}
		return v, true
	}
	return nil, false
}

func parsePrediction(raw any) (WeatherPrediction, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return WeatherPrediction{}, false
	}
	when, okWhen := obj["when"].(string)
	lo, okMin := obj["min"].(float64)
	hi, okMax := obj["max"].(float64)
	if !okWhen || !okMin || !okMax {
		return WeatherPrediction{}, false
	}
	return WeatherPrediction{When: when, Min: lo, Max: hi}, true
}
