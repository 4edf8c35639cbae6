// Package geo validates and formats device-reported coordinates.
package geo

import (
	"errors"
	"fmt"
	"math"

	"donorly/internal/domain"
	"donorly/internal/infra/geoip"
)

var (
	ErrLatitudeRange  = errors.New("latitude must be between -90 and 90")
	ErrLongitudeRange = errors.New("longitude must be between -180 and 180")
)

// Validate checks that c lies on the globe.
func Validate(c domain.Coordinates) error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return ErrLatitudeRange
	}
	if math.IsNaN(c.Lng) || c.Lng < -180 || c.Lng > 180 {
		return ErrLongitudeRange
	}
	return nil
}

// Round6 rounds both components to six decimal places, the precision kept in
// storage.
func Round6(c domain.Coordinates) domain.Coordinates {
	return domain.Coordinates{Lat: round(c.Lat, 6), Lng: round(c.Lng, 6)}
}

// FormatDisplay renders c as "lat, lng" with four decimals.
func FormatDisplay(c domain.Coordinates) string {
	return fmt.Sprintf("%.4f, %.4f", c.Lat, c.Lng)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Hint is an approximate location suggested from the caller's IP address.
type Hint struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Display string  `json:"display"`
}

// HintFor resolves a location suggestion for ip. The locator may be nil, in
// which case geoip.ErrUnavailable is returned.
func HintFor(locator geoip.Locator, ip string) (*Hint, error) {
	if locator == nil {
		return nil, geoip.ErrUnavailable
	}
	place, err := locator.Locate(ip)
	if err != nil {
		return nil, err
	}
	c := Round6(domain.Coordinates{Lat: place.Latitude, Lng: place.Longitude})
	return &Hint{
		City:    place.City,
		Country: place.Country,
		Lat:     c.Lat,
		Lng:     c.Lng,
		Display: FormatDisplay(c),
	}, nil
}
