package geoip

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
)

// ErrUnavailable is returned when the resolver is not initialized.
var ErrUnavailable = errors.New("geoip resolver unavailable")

// Place is a coarse position derived from an IP address.
type Place struct {
	City      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Locator resolves approximate positions and countries from IP addresses.
type Locator interface {
	CountryCode(ip string) (string, error)
	Locate(ip string) (*Place, error)
}

// Resolver is backed by a MaxMind GeoIP2/GeoLite2 City database.
type Resolver struct {
	reader *geoip2.Reader
}

// NewResolver opens the database at path. An empty path yields a nil resolver
// whose methods report ErrUnavailable.
func NewResolver(path string) (*Resolver, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("geoip: open database: %w", err)
	}
	return &Resolver{reader: reader}, nil
}

// CountryCode returns the ISO country code for the provided IP.
func (r *Resolver) CountryCode(ip string) (string, error) {
	if r == nil || r.reader == nil {
		return "", ErrUnavailable
	}
	parsed, err := parseIP(ip)
	if err != nil {
		return "", err
	}
	record, err := r.reader.Country(parsed)
	if err != nil {
		return "", fmt.Errorf("geoip: lookup country: %w", err)
	}
	if record == nil {
		return "", nil
	}
	return record.Country.IsoCode, nil
}

// Locate returns the city-level position for the provided IP.
func (r *Resolver) Locate(ip string) (*Place, error) {
	if r == nil || r.reader == nil {
		return nil, ErrUnavailable
	}
	parsed, err := parseIP(ip)
	if err != nil {
		return nil, err
	}
	record, err := r.reader.City(parsed)
	if err != nil {
		return nil, fmt.Errorf("geoip: lookup city: %w", err)
	}
	if record == nil || (record.Location.Latitude == 0 && record.Location.Longitude == 0) {
		return nil, fmt.Errorf("geoip: no position for %s", ip)
	}
	return &Place{
		City:      record.City.Names["en"],
		Country:   record.Country.IsoCode,
		Latitude:  record.Location.Latitude,
		Longitude: record.Location.Longitude,
	}, nil
}

// Close closes the underlying database reader.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}

func parseIP(ip string) (net.IP, error) {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return nil, fmt.Errorf("geoip: invalid ip %q", ip)
	}
	return parsed, nil
}

var _ Locator = (*Resolver)(nil)
