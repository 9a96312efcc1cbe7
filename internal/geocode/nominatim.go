package geocode

import (
	"context"
	"fmt"
	"strings"
	"time"

	geo "github.com/codingsince1985/geo-golang"
	"github.com/codingsince1985/geo-golang/openstreetmap"
	"github.com/shenikar/atx_traffic/internal/models"
)

// Nominatim разрешает адреса через API поиска OpenStreetMap Nominatim
type Nominatim struct {
	geocoder geo.Geocoder
	timeout  time.Duration
}

// NewNominatim создает геокодер для сервиса по адресу baseURL
func NewNominatim(baseURL string, timeout time.Duration) *Nominatim {
	return &Nominatim{
		geocoder: openstreetmap.GeocoderWithURL(strings.TrimRight(baseURL, "/") + "/"),
		timeout:  timeout,
	}
}

type lookup struct {
	location *geo.Location
	err      error
}

// Geocode возвращает координаты первого найденного места
func (n *Nominatim) Geocode(ctx context.Context, address string) (models.Point, error) {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	// клиент geo-golang не принимает контекст
	done := make(chan lookup, 1)
	go func() {
		location, err := n.geocoder.Geocode(address)
		done <- lookup{location: location, err: err}
	}()

	select {
	case <-ctx.Done():
		return models.Point{}, fmt.Errorf("geocode request aborted: %w: %w", models.ErrUpstream, ctx.Err())
	case res := <-done:
		if res.err != nil {
			return models.Point{}, fmt.Errorf("failed to geocode address: %w: %w", models.ErrUpstream, res.err)
		}
		if res.location == nil {
			return models.Point{}, models.NewValidationError("address", "no location found for %q", address)
		}
		return models.Point{Latitude: res.location.Lat, Longitude: res.location.Lng}, nil
	}
}
