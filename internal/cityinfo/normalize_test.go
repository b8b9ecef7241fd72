package cityinfo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestNormalizeCityMalformedFields(t *testing.T) {
	raw := decode(t, `{"coordinates":"bad","population":"12","knownFor":null}`)

	got := NormalizeCity(raw)

	assert.Equal(t, CityDetails{
		Coordinates: Coordinates{0, 0},
		Population:  0,
		KnownFor:    []string{},
	}, got)
}

func TestNormalizeCityFieldsAreIndependent(t *testing.T) {
	raw := decode(t, `{"coordinates":[48.85,2.35],"population":"many","knownFor":["Art","Cuisine"]}`)

	got := NormalizeCity(raw)

	assert.Equal(t, Coordinates{48.85, 2.35}, got.Coordinates)
	assert.Equal(t, int64(0), got.Population)
	assert.Equal(t, []string{"Art", "Cuisine"}, got.KnownFor)
}

func TestNormalizeCityCoordinates(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Coordinates
	}{
		{"pair", `{"coordinates":[1.5,-2.5]}`, Coordinates{1.5, -2.5}},
		{"latitude/longitude object", `{"coordinates":{"latitude":10,"longitude":20}}`, Coordinates{10, 20}},
		{"lat/lon object", `{"coordinates":{"lat":3,"lon":4}}`, Coordinates{3, 4}},
		{"three elements", `{"coordinates":[1,2,3]}`, Coordinates{}},
		{"string elements", `{"coordinates":["1","2"]}`, Coordinates{}},
		{"partial object", `{"coordinates":{"latitude":10}}`, Coordinates{}},
		{"missing", `{}`, Coordinates{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCity(decode(t, tt.json)).Coordinates)
		})
	}
}

func TestNormalizeCityPopulation(t *testing.T) {
	tests := []struct {
		json string
		want int64
	}{
		{`{"population":2161000}`, 2161000},
		{`{"population":0}`, 0},
		{`{"population":-5}`, 0},
		{`{"population":12.5}`, 0},
		{`{"population":"12"}`, 0},
		{`{"population":true}`, 0},
		{`{"population":1e300}`, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCity(decode(t, tt.json)).Population, tt.json)
	}
}

func TestNormalizeCityKnownForDropsNonStrings(t *testing.T) {
	got := NormalizeCity(decode(t, `{"knownFor":["History",3,null,"Art"]}`))
	assert.Equal(t, []string{"History", "Art"}, got.KnownFor)

	got = NormalizeCity(decode(t, `{"knownFor":"Art"}`))
	assert.Equal(t, []string{}, got.KnownFor)
}

func TestNormalizeCityPayloadShapes(t *testing.T) {
	wrapped := NormalizeCity(decode(t, `[{"population":7}]`))
	assert.Equal(t, int64(7), wrapped.Population)

	for _, raw := range []any{nil, "text", 42.0, decode(t, `[{"population":1},{"population":2}]`)} {
		got := NormalizeCity(raw)
		assert.Equal(t, Coordinates{}, got.Coordinates)
		assert.Zero(t, got.Population)
		assert.NotNil(t, got.KnownFor)
		assert.Empty(t, got.KnownFor)
	}
}

func TestNormalizeWeatherShapes(t *testing.T) {
	want := []WeatherPrediction{
		{When: "2025-06-01", Min: 10, Max: 21},
		{When: "2025-06-02", Min: 11, Max: 22},
	}
	entries := `[{"when":"2025-06-01","min":10,"max":21},{"when":"2025-06-02","min":11,"max":22},{"when":"2025-06-03","min":12,"max":23}]`

	tests := []struct {
		name string
		json string
	}{
		{"object", `{"predictions":` + entries + `}`},
		{"array wrapped", `[{"cityId":"1","cityName":"Paris","predictions":` + entries + `}]`},
		{"bare array", entries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeWeather(decode(t, tt.json))
			require.True(t, ok)
			assert.Equal(t, want, got)
		})
	}
}

func TestNormalizeWeatherRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"null", `null`},
		{"empty object", `{}`},
		{"predictions not array", `{"predictions":"soon"}`},
		{"single entry", `{"predictions":[{"when":"today","min":1,"max":2}]}`},
		{"second entry malformed", `{"predictions":[{"when":"today","min":1,"max":2},{"when":"tomorrow","min":"1","max":2}]}`},
		{"missing when", `{"predictions":[{"min":1,"max":2},{"when":"tomorrow","min":1,"max":2}]}`},
		{"non-object entries", `[1,2,3]`},
		{"wrapped without array", `[{"predictions":null}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeWeather(decode(t, tt.json))
			assert.False(t, ok)
			assert.Nil(t, got)
		})
	}
}

func TestPlaceholderPredictions(t *testing.T) {
	assert.Equal(t, []WeatherPrediction{
		{When: "today"},
		{When: "tomorrow"},
	}, PlaceholderPredictions())
}
