package reply

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/woozymasta/mcwho/internal/checker"
	"github.com/woozymasta/mcwho/internal/models"
	"github.com/woozymasta/mcwho/internal/storage"
)

func TestStatus(t *testing.T) {
	testCases := []struct {
		name          string
		players       models.Players
		country       string
		expectedField Field
		fieldCount    int
	}{
		{
			name:          "Empty sample renders none marker",
			players:       models.Players{Online: 0, Max: 20, Sample: []models.PlayerSample{}},
			expectedField: Field{Name: "Players (0/20)", Value: "(None)"},
			fieldCount:    2,
		},
		{
			name:          "Absent sample renders none marker",
			players:       models.Players{Online: 0, Max: 10},
			expectedField: Field{Name: "Players (0/10)", Value: "(None)"},
			fieldCount:    2,
		},
		{
			name: "Sampled players are listed in order",
			players: models.Players{Online: 3, Max: 20, Sample: []models.PlayerSample{
				{Name: "Alex"}, {Name: "Steve"}, {Name: "Notch"},
			}},
			country:       "DE",
			expectedField: Field{Name: "Players (3/20)", Value: "- Alex\n- Steve\n- Notch"},
			fieldCount:    3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg := Status("play.example.com", &models.ServerStatus{
				Description: "A Minecraft Server",
				Version:     "Paper 1.21.4",
				CountryCode: tc.country,
				Players:     tc.players,
				LatencyMS:   42.12345,
			})

			assert.Equal(t, "play.example.com", msg.Title)
			assert.Equal(t, "A Minecraft Server", msg.Description)
			assert.Equal(t, "Ping: 42.123ms", msg.Footer)
			assert.Equal(t, ColorStatus, msg.Color)
			assert.False(t, msg.Ephemeral)
			assert.Len(t, msg.Fields, tc.fieldCount)
			assert.Equal(t, Field{Name: "Software", Value: "Paper 1.21.4"}, msg.Fields[0])
			assert.Equal(t, tc.expectedField, msg.Fields[1])
		})
	}
}

func TestCheckFailure(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "No default", err: checker.ErrNoDefaultConfigured, expected: "This Discord server does not have a default Minecraft server; you must specify one."},
		{name: "Invalid", err: &checker.QueryError{Kind: checker.InvalidAddress}, expected: "That is not a valid address."},
		{name: "Offline", err: &checker.QueryError{Kind: checker.Offline}, expected: "This server is offline."},
		{name: "Refused", err: &checker.QueryError{Kind: checker.ConnectionRefused}, expected: "The connection was refused."},
		{name: "Unknown", err: &checker.QueryError{Kind: checker.Unknown, Err: errors.New("boom")}, expected: "Failed to ping server."},
		{name: "Storage", err: fmt.Errorf("load default server: %w", storage.ErrUnavailable), expected: "Failed to ping server."},
		{name: "Cancelled", err: context.Canceled, expected: "Failed to ping server."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg := CheckFailure(tc.err)
			assert.Equal(t, tc.expected, msg.Description)
			assert.Equal(t, ColorError, msg.Color)
			assert.True(t, msg.Ephemeral)
		})
	}
}

func TestSetDefaultMessages(t *testing.T) {
	ok := DefaultUpdated("mc.example.com:19132")
	assert.Equal(t, "Successfully updated default server to `mc.example.com:19132`", ok.Description)
	assert.Equal(t, ColorSuccess, ok.Color)
	assert.True(t, ok.Ephemeral)

	testCases := map[checker.FailureKind]string{
		checker.InvalidAddress:    "**Not updated:** That is not a valid address.",
		checker.Offline:           "**Not updated:** Server must be online.",
		checker.ConnectionRefused: "**Not updated:** Connection refused.",
		checker.Unknown:           "Failed to update default server.",
	}
	for kind, expected := range testCases {
		msg := SetDefaultFailure(&checker.QueryError{Kind: kind})
		assert.Equal(t, expected, msg.Description, kind.String())
		assert.True(t, msg.Ephemeral)
	}

	assert.Equal(t, "Failed to update default server.",
		SetDefaultFailure(fmt.Errorf("save default server: %w", storage.ErrUnavailable)).Description)
}
