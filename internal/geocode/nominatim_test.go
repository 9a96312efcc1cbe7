package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shenikar/atx_traffic/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeocoder(t *testing.T, status int, body string, delay time.Duration) *Nominatim {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.URL.Query().Get("q"))
		time.Sleep(delay)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewNominatim(srv.URL, 100*time.Millisecond)
}

func TestGeocode_Success(t *testing.T) {
	g := newTestGeocoder(t, http.StatusOK, `[{"lat":"30.286020","lon":"-97.738037","display_name":"UT Tower"}]`, 0)

	point, err := g.Geocode(context.Background(), "110 Inner Campus Drive, Austin, TX")

	require.NoError(t, err)
	assert.InDelta(t, 30.286020, point.Latitude, 1e-9)
	assert.InDelta(t, -97.738037, point.Longitude, 1e-9)
}

func TestGeocode_NoMatch(t *testing.T) {
	g := newTestGeocoder(t, http.StatusOK, `[]`, 0)

	_, err := g.Geocode(context.Background(), "nowhere")

	assert.True(t, models.IsValidation(err))
}

func TestGeocode_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		delay  time.Duration
	}{
		{name: "unavailable", status: http.StatusServiceUnavailable, body: `Service Unavailable`},
		{name: "malformed body", status: http.StatusOK, body: `{`},
		{name: "timeout", status: http.StatusOK, body: `[]`, delay: 300 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGeocoder(t, tt.status, tt.body, tt.delay)

			_, err := g.Geocode(context.Background(), "Congress Ave")

			assert.ErrorIs(t, err, models.ErrUpstream)
		})
	}
}

func TestGeocode_CanceledContext(t *testing.T) {
	g := newTestGeocoder(t, http.StatusOK, `[{"lat":"30.2","lon":"-97.7"}]`, 300*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Geocode(ctx, "Congress Ave")

	assert.ErrorIs(t, err, models.ErrUpstream)
	assert.ErrorIs(t, err, context.Canceled)
}
