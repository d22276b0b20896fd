package nominatim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"disasterhub/provider/nominatim"

	"github.com/stretchr/testify/assert"
)

func TestGeocodeMatch(t *testing.T) {
	var gotUA, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"40.6782","lon":"-73.9442"}]`))
	}))
	defer srv.Close()

	client := nominatim.NewClient(nominatim.Config{BaseURL: srv.URL, UserAgent: "test-agent"}, nil)

	result, err := client.Geocode(context.Background(), "Brooklyn, NYC")
	assert.NoError(t, err)
	assert.Equal(t, "Brooklyn, NYC", result.Location)
	assert.Equal(t, "test-agent", gotUA)
	assert.Equal(t, "Brooklyn, NYC", gotQuery)
	if assert.NotNil(t, result.Lat) {
		assert.InDelta(t, 40.6782, *result.Lat, 1e-9)
	}
	if assert.NotNil(t, result.Lon) {
		assert.InDelta(t, -73.9442, *result.Lon, 1e-9)
	}
}

func TestGeocodeNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := nominatim.NewClient(nominatim.Config{BaseURL: srv.URL, UserAgent: "test-agent"}, nil)

	// No match is a valid outcome, not an error.
	result, err := client.Geocode(context.Background(), "Atlantis")
	assert.NoError(t, err)
	assert.Equal(t, "Atlantis", result.Location)
	assert.Nil(t, result.Lat)
	assert.Nil(t, result.Lon)
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := nominatim.NewClient(nominatim.Config{BaseURL: srv.URL, UserAgent: "test-agent"}, nil)

	_, err := client.Geocode(context.Background(), "Brooklyn")
	assert.Error(t, err)
}

func TestGeocodeMalformedCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"not-a-number","lon":"-73.9"}]`))
	}))
	defer srv.Close()

	client := nominatim.NewClient(nominatim.Config{BaseURL: srv.URL, UserAgent: "test-agent"}, nil)

	_, err := client.Geocode(context.Background(), "Brooklyn")
	assert.Error(t, err)
}
