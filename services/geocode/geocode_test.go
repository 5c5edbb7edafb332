package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`[{"lat":"23.8103","lon":"90.4125"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	lat, lng, err := client.Lookup(context.Background(), "1 Main St,  Springfield,\tIL, 62701")
	require.NoError(t, err)
	assert.Equal(t, 23.8103, lat)
	assert.Equal(t, 90.4125, lng)
	// Runs of whitespace collapse before the address is sent.
	assert.Equal(t, "1 Main St, Springfield, IL, 62701", gotQuery)
}

func TestLookupNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, _, err := client.Lookup(context.Background(), "nowhere at all")
	assert.Error(t, err)
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, _, err := client.Lookup(context.Background(), "1 Main St")
	assert.Error(t, err)
}

func TestLookupBadCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"90.4125"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, _, err := client.Lookup(context.Background(), "1 Main St")
	assert.Error(t, err)
}

func TestLookupRejectsEmptyInput(t *testing.T) {
	client := NewClient("http://geocoder.invalid", nil)
	_, _, err := client.Lookup(context.Background(), "   ")
	assert.Error(t, err)

	unconfigured := NewClient("", nil)
	_, _, err = unconfigured.Lookup(context.Background(), "1 Main St")
	assert.Error(t, err)
}

func TestCacheRoundTrip(t *testing.T) {
	lat, lng, err := parseCached(formatCached(23.8103, 90.4125))
	require.NoError(t, err)
	assert.Equal(t, 23.8103, lat)
	assert.Equal(t, 90.4125, lng)

	_, _, err = parseCached("garbage")
	assert.Error(t, err)
}
