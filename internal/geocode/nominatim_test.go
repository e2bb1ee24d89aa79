package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverse_ParsesAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "10", r.URL.Query().Get("zoom"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
		assert.Equal(t, "en", r.URL.Query().Get("accept-language"))

		w.Write([]byte(`{"address":{"country":"Fiji","town":"Nadi","bay":"Nadi Bay"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	place, err := c.Reverse(context.Background(), -17.8527, 177.18138)

	require.NoError(t, err)
	assert.Equal(t, "Fiji", place.Country)
	assert.Equal(t, "Nadi", place.Location)
	assert.Equal(t, "Nadi Bay", place.Water)
}

func TestReverse_LocationFallbackOrder(t *testing.T) {
	// city beats town beats village and so on down to state.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"country":"Fiji","state":"Western","island":"Viti Levu"}}`))
	}))
	defer srv.Close()

	place, err := New(srv.URL).Reverse(context.Background(), -17.8527, 177.18138)

	require.NoError(t, err)
	assert.Equal(t, "Viti Levu", place.Location)
}

func TestReverse_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Reverse(context.Background(), -17.8527, 177.18138)
	assert.Error(t, err)
}

func TestReverse_EmptyAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{}}`))
	}))
	defer srv.Close()

	place, err := New(srv.URL).Reverse(context.Background(), 0.0, -160.0)

	require.NoError(t, err)
	assert.True(t, place.Empty())
}

func TestCacheKey_RoundsCoordinates(t *testing.T) {
	assert.Equal(t, cacheKey(-17.85271, 177.18139), cacheKey(-17.85274, 177.18141))
	assert.NotEqual(t, cacheKey(-17.8527, 177.1814), cacheKey(-17.8530, 177.1814))
}
