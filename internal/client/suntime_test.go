package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSunClient_FetchSunTimes(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"results": {
				"sunrise": "2023-01-15T12:15:00+00:00",
				"sunset": "2023-01-15T22:45:00+00:00"
			},
			"status": "OK"
		}`))
	}))
	defer server.Close()

	c := NewSunClient(server.URL, time.Millisecond, 5*time.Second)
	times, err := c.FetchSunTimes(context.Background(), 42.3662, -71.0621, "2023-01-15")
	require.NoError(t, err)

	assert.Equal(t, []string{"42.3662"}, gotQuery["lat"])
	assert.Equal(t, []string{"-71.0621"}, gotQuery["lng"])
	assert.Equal(t, []string{"0"}, gotQuery["formatted"])
	assert.Equal(t, []string{"2023-01-15"}, gotQuery["date"])

	assert.Equal(t, "2023-01-15T12:15:00+00:00", times.Sunrise)
	assert.Equal(t, "2023-01-15T22:45:00+00:00", times.Sunset)
}

func TestSunClient_OmitsEmptyDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("date"))
		w.Write([]byte(`{"results": {"sunrise": "a", "sunset": "b"}, "status": "OK"}`))
	}))
	defer server.Close()

	c := NewSunClient(server.URL, time.Millisecond, 5*time.Second)
	_, err := c.FetchSunTimes(context.Background(), 1, 2, "")
	require.NoError(t, err)
}

func TestSunClient_StatusNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": {}, "status": "INVALID_REQUEST"}`))
	}))
	defer server.Close()

	c := NewSunClient(server.URL, time.Millisecond, 5*time.Second)
	_, err := c.FetchSunTimes(context.Background(), 1, 2, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_REQUEST")
}

func TestSunClient_PacesCalls(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Write([]byte(`{"results": {"sunrise": "a", "sunset": "b"}, "status": "OK"}`))
	}))
	defer server.Close()

	delay := 50 * time.Millisecond
	c := NewSunClient(server.URL, delay, 5*time.Second)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.FetchSunTimes(context.Background(), 1, 2, "")
		require.NoError(t, err)
	}

	// One token is available immediately; the other two calls wait for the
	// limiter.
	assert.GreaterOrEqual(t, time.Since(start), 2*delay)
	assert.EqualValues(t, 3, atomic.LoadInt64(&calls))
}
