package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func russianPlace(address map[string]string) Place {
	return Place{
		Lat:         "56.7928003",
		Lon:         "60.6165292",
		DisplayName: "Родонитовая улица, Екатеринбург, Россия",
		Address:     address,
	}
}

func TestExtractAddress_FullResult(t *testing.T) {
	place := russianPlace(map[string]string{
		"state":        "Свердловская область",
		"city":         "Екатеринбург",
		"road":         "Родонитовая улица",
		"house_number": "1",
		"postcode":     "620089",
		"country":      "Россия",
	})

	result, err := ExtractAddress(place)
	require.NoError(t, err)

	assert.Equal(t, "Свердловская область, Екатеринбург, 1 Родонитовая улица, 620089", result.FullAddress)
	assert.Equal(t, 56.7928003, result.Lat)
	assert.Equal(t, 60.6165292, result.Lon)
}

func TestExtractAddress_AliasPriority(t *testing.T) {
	tests := []struct {
		name     string
		address  map[string]string
		expected string
	}{
		{"state beats region", map[string]string{"state": "Область А", "region": "Область Б"}, "Область А"},
		{"region when no state", map[string]string{"region": "Область Б"}, "Область Б"},
		{"city beats town", map[string]string{"city": "Город", "town": "Городок"}, "Город"},
		{"town beats village", map[string]string{"town": "Городок", "village": "Село"}, "Городок"},
		{"village beats municipality", map[string]string{"village": "Село", "municipality": "Округ"}, "Село"},
		{"road beats pedestrian", map[string]string{"road": "Улица", "pedestrian": "Аллея"}, "Улица"},
		{"pedestrian beats footway", map[string]string{"pedestrian": "Аллея", "footway": "Тропа"}, "Аллея"},
		{"house_number beats building", map[string]string{"house_number": "1", "building": "2"}, "1"},
		{"empty value falls through", map[string]string{"state": "", "region": "Область Б"}, "Область Б"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.address["country"] = "Россия"
			result, err := ExtractAddress(russianPlace(tt.address))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.FullAddress)
		})
	}
}

func TestExtractAddress_StreetAndHouse(t *testing.T) {
	tests := []struct {
		name     string
		address  map[string]string
		expected string
	}{
		{"both present", map[string]string{"road": "Тверская улица", "house_number": "10"}, "10 Тверская улица"},
		{"street only", map[string]string{"road": "Тверская улица"}, "Тверская улица"},
		{"house only", map[string]string{"house_number": "10"}, "10"},
		{"neither, component omitted", map[string]string{"postcode": "101000"}, "101000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.address["country"] = "Россия"
			result, err := ExtractAddress(russianPlace(tt.address))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.FullAddress)
		})
	}
}

func TestExtractAddress_MissingCoordinates(t *testing.T) {
	complete := map[string]string{
		"state": "Свердловская область", "city": "Екатеринбург", "country": "Россия",
	}

	tests := []struct {
		name string
		lat  string
		lon  string
	}{
		{"no latitude", "", "60.61"},
		{"no longitude", "56.79", ""},
		{"both missing", "", ""},
		{"non-numeric latitude", "north", "60.61"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractAddress(Place{Lat: tt.lat, Lon: tt.lon, Address: complete})
			assert.ErrorIs(t, err, ErrMissingCoordinates)
		})
	}
}

func TestExtractAddress_CountryFilter(t *testing.T) {
	tests := []struct {
		name        string
		country     string
		displayName string
		wantErr     error
	}{
		{"country matches", "Россия", "", nil},
		{"country matches case-insensitively", "РОССИЯ", "", nil},
		{"no country, display label matches", "", "Екатеринбург, Россия", nil},
		{"foreign country", "France", "Paris, France", ErrOutOfRegion},
		{"no country, foreign display label", "", "Paris, France", ErrOutOfRegion},
		{"no country, empty display label", "", "", ErrOutOfRegion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			place := Place{
				Lat:         "56.79",
				Lon:         "60.61",
				DisplayName: tt.displayName,
				Address:     map[string]string{"city": "Екатеринбург"},
			}
			if tt.country != "" {
				place.Address["country"] = tt.country
			}

			_, err := ExtractAddress(place)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestExtractAddress_MissingCoordinatesBeatsEverything(t *testing.T) {
	// Even a fully populated foreign address fails on coordinates first.
	_, err := ExtractAddress(Place{
		DisplayName: "Paris, France",
		Address: map[string]string{
			"state": "Île-de-France", "city": "Paris", "country": "France",
		},
	})
	assert.ErrorIs(t, err, ErrMissingCoordinates)
}
