package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woozymasta/mcwho/internal/fake"
	"github.com/woozymasta/mcwho/internal/game"
	"github.com/woozymasta/mcwho/internal/models"
)

type staticCountry string

func (c staticCountry) GetCountryCode(string) string { return string(c) }

func TestParseStatus(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected *models.ServerStatus
	}{
		{
			name:  "Plain string description without sample",
			input: `{"description":"A Minecraft Server","version":{"name":"1.21.4","protocol":769},"players":{"max":20,"online":0}}`,
			expected: &models.ServerStatus{
				Description: "A Minecraft Server",
				Version:     "1.21.4",
				Protocol:    769,
				Players:     models.Players{Max: 20},
			},
		},
		{
			name:  "Component description with empty sample",
			input: `{"description":{"text":"Hello","extra":[{"text":" world","bold":true}]},"version":{"name":"Paper 1.21.4","protocol":769},"players":{"max":20,"online":0,"sample":[]}}`,
			expected: &models.ServerStatus{
				Description: "Hello world",
				Version:     "Paper 1.21.4",
				Protocol:    769,
				Players:     models.Players{Max: 20, Sample: []models.PlayerSample{}},
			},
		},
		{
			name:  "Legacy formatting codes and sample",
			input: `{"description":"§aGreen §lSMP","version":{"name":"Purpur","protocol":767},"players":{"max":50,"online":2,"sample":[{"name":"Alex","id":"ec561538-f3fd-461d-aff5-086b22154bce"},{"name":"§7Steve","id":"not-a-uuid"}]}}`,
			expected: &models.ServerStatus{
				Description: "Green SMP",
				Version:     "Purpur",
				Protocol:    767,
				Players: models.Players{
					Max:    50,
					Online: 2,
					Sample: []models.PlayerSample{
						{Name: "Alex", ID: uuid.MustParse("ec561538-f3fd-461d-aff5-086b22154bce")},
						{Name: "Steve", ID: uuid.Nil},
					},
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, err := game.ParseStatus([]byte(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, status)
		})
	}
}

func TestParseStatus_Malformed(t *testing.T) {
	_, err := game.ParseStatus([]byte(`{"players":`))
	assert.ErrorContains(t, err, "decode status response")
}

func TestClient_LookupInvalidAddress(t *testing.T) {
	client := game.NewClient(nil)

	for _, address := range []string{"play.example.com", "play.example.com:abc", ":25565", "host:0", "host:70000", "::1"} {
		t.Run(address, func(t *testing.T) {
			_, err := client.Lookup(context.Background(), address)
			assert.ErrorIs(t, err, game.ErrInvalidAddress)
		})
	}
}

func TestClient_LookupLiteralIP(t *testing.T) {
	ep, err := game.NewClient(nil).Lookup(context.Background(), "127.0.0.1:25565")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:25565", ep.Address)
	assert.Equal(t, "127.0.0.1", ep.Host)
	assert.Equal(t, uint16(25565), ep.Port)
	require.Len(t, ep.IPs, 1)
	assert.Equal(t, "127.0.0.1", ep.IPs[0].String())
}

func TestClient_StatusAgainstFakeServer(t *testing.T) {
	srv, err := fake.Listen("127.0.0.1:0", fake.Status{
		Description: "Stub server",
		Version:     "Paper 1.21.4",
		Protocol:    769,
		Players:     []string{"Alex", "Steve", "Notch"},
		Online:      3,
		Max:         20,
	})
	require.NoError(t, err)
	go srv.Serve()
	defer func() { _ = srv.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := game.NewClient(staticCountry("DE"))
	ep, err := client.Lookup(ctx, srv.Addr())
	require.NoError(t, err)

	status, err := client.Status(ctx, ep)
	require.NoError(t, err)

	assert.Equal(t, "Stub server", status.Description)
	assert.Equal(t, "Paper 1.21.4", status.Version)
	assert.Equal(t, 769, status.Protocol)
	assert.Equal(t, 3, status.Players.Online)
	assert.Equal(t, 20, status.Players.Max)
	require.Len(t, status.Players.Sample, 3)
	assert.Equal(t, "Alex", status.Players.Sample[0].Name)
	assert.NotEqual(t, uuid.Nil, status.Players.Sample[0].ID)
	assert.Equal(t, "127.0.0.1", status.IP)
	assert.Equal(t, "DE", status.CountryCode)
	assert.GreaterOrEqual(t, status.LatencyMS, 0.0)
}
