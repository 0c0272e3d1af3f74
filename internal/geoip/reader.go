package geoip

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/oschwald/geoip2-golang"
	"github.com/rs/zerolog/log"
)

// Provider resolves IP addresses to country codes. The database can be
// swapped at runtime with Reload; it is safe for concurrent use.
type Provider struct {
	mu   sync.RWMutex
	db   *geoip2.Reader
	path string
}

// Open initializes the GeoIP database reader from a specific file path.
func Open(path string) (*Provider, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}

	return &Provider{db: db, path: path}, nil
}

// Close closes the underlying GeoIP database reader.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	err := p.db.Close()
	p.db = nil

	return err
}

// Reload reopens the database file. The current reader is kept when the new
// file cannot be opened.
func (p *Provider) Reload() error {
	db, err := geoip2.Open(p.path)
	if err != nil {
		return err
	}

	p.mu.Lock()
	old := p.db
	p.db = db
	p.mu.Unlock()

	if old != nil {
		return old.Close()
	}

	return nil
}

// Refresh downloads a newer database from url every interval and reloads it.
// It blocks until ctx is done.
func (p *Provider) Refresh(ctx context.Context, url string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := EnsureDB(ctx, p.path, url, interval); err != nil {
				log.Error().Err(err).Msg("Failed to update GeoIP database")
				continue
			}
			if err := p.Reload(); err != nil {
				log.Error().Err(err).Msg("Failed to reload GeoIP database")
			}
		}
	}
}

// GetCountryCode looks up the ISO country code (e.g. "US", "DE") of an IP address.
// Private, invalid or unknown addresses yield an empty string.
func (p *Provider) GetCountryCode(ipStr string) string {
	ip := net.ParseIP(ipStr)
	if ip == nil || ip.IsLoopback() || ip.IsPrivate() {
		return ""
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.db == nil {
		return ""
	}

	record, err := p.db.Country(ip)
	if err != nil {
		return ""
	}

	return record.Country.IsoCode
}
