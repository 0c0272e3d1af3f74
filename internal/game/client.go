// Package game queries Minecraft Java edition servers with the Server List Ping protocol.
package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Tnze/go-mc/bot"
	"github.com/Tnze/go-mc/chat"
	"github.com/google/uuid"
	"github.com/woozymasta/mcwho/internal/models"
)

// ErrInvalidAddress reports an address that cannot be split into host and port.
var ErrInvalidAddress = errors.New("invalid server address")

// CountryResolver maps an IP address to an ISO country code.
type CountryResolver interface {
	GetCountryCode(ip string) string
}

// Endpoint is a looked up server address ready to be queried.
type Endpoint struct {
	// Address is the host:port sent in the protocol handshake.
	Address string
	Host    string
	IPs     []net.IP
	Port    uint16
}

// Client performs the two query phases. It holds no per-query state and is
// safe for concurrent use.
type Client struct {
	resolver *net.Resolver
	geo      CountryResolver
}

// NewClient creates a status client. geo may be nil to skip country lookup.
func NewClient(geo CountryResolver) *Client {
	return &Client{
		resolver: net.DefaultResolver,
		geo:      geo,
	}
}

// Lookup splits a host:port address and resolves the host.
// Name resolution failures are returned as *net.DNSError.
func (c *Client) Lookup(ctx context.Context, address string) (Endpoint, error) {
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if host == "" {
		return Endpoint{}, fmt.Errorf("%w: missing host in %q", ErrInvalidAddress, address)
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port == 0 {
		return Endpoint{}, fmt.Errorf("%w: bad port %q", ErrInvalidAddress, portStr)
	}

	addrs, err := c.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return Endpoint{}, err
	}
	if len(addrs) == 0 {
		return Endpoint{}, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
	}

	ips := make([]net.IP, 0, len(addrs))
	for _, a := range addrs {
		ips = append(ips, a.IP)
	}

	return Endpoint{
		Address: address,
		Host:    host,
		IPs:     ips,
		Port:    uint16(port),
	}, nil
}

// Status runs the handshake, status request and ping against the endpoint.
// The context deadline bounds the whole exchange.
func (c *Client) Status(ctx context.Context, ep Endpoint) (*models.ServerStatus, error) {
	data, delay, err := bot.PingAndListContext(ctx, ep.Address)
	if err != nil {
		return nil, err
	}

	status, err := ParseStatus(data)
	if err != nil {
		return nil, err
	}

	status.LatencyMS = float64(delay) / float64(time.Millisecond)
	if len(ep.IPs) > 0 {
		status.IP = ep.IPs[0].String()
		if c.geo != nil {
			status.CountryCode = c.geo.GetCountryCode(status.IP)
		}
	}

	return status, nil
}

// statusResponse is the JSON document of the status response packet.
type statusResponse struct {
	Description chat.Message `json:"description"`
	Version     struct {
		Name     string `json:"name"`
		Protocol int    `json:"protocol"`
	} `json:"version"`
	Players struct {
		Sample []struct {
			Name string `json:"name"`
			ID   string `json:"id"`
		} `json:"sample"`
		Max    int `json:"max"`
		Online int `json:"online"`
	} `json:"players"`
}

// ParseStatus decodes a status response document. Latency and endpoint
// fields are left for the caller.
func ParseStatus(data []byte) (*models.ServerStatus, error) {
	var resp statusResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}

	status := &models.ServerStatus{
		Description: stripFormatting(resp.Description.ClearString()),
		Version:     resp.Version.Name,
		Protocol:    resp.Version.Protocol,
		Players: models.Players{
			Online: resp.Players.Online,
			Max:    resp.Players.Max,
		},
	}

	if resp.Players.Sample != nil {
		status.Players.Sample = make([]models.PlayerSample, 0, len(resp.Players.Sample))
		for _, p := range resp.Players.Sample {
			// servers put arbitrary text into the sample, keep the name anyway
			id, _ := uuid.Parse(p.ID)
			status.Players.Sample = append(status.Players.Sample, models.PlayerSample{
				Name: stripFormatting(p.Name),
				ID:   id,
			})
		}
	}

	return status, nil
}

// stripFormatting removes legacy section-sign formatting codes.
func stripFormatting(s string) string {
	if !strings.ContainsRune(s, '§') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	skip := false
	for _, r := range s {
		switch {
		case skip:
			skip = false
		case r == '§':
			skip = true
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
