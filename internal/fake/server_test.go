package fake

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomStatus(t *testing.T) {
	for range 50 {
		st := RandomStatus(5)

		assert.Equal(t, 5, st.Max)
		assert.LessOrEqual(t, st.Online, 5)
		assert.Len(t, st.Players, st.Online)
		assert.NotEmpty(t, st.Version)
		assert.NotEmpty(t, st.Description)
	}

	assert.Zero(t, RandomStatus(0).Online)
}

func TestEncodeStatus_Sample(t *testing.T) {
	testCases := []struct {
		name       string
		players    []string
		wantSample bool
		wantLen    int
	}{
		{name: "Absent", players: nil, wantSample: false},
		{name: "Empty", players: []string{}, wantSample: true, wantLen: 0},
		{name: "Filled", players: []string{"Alex", "Steve"}, wantSample: true, wantLen: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := encodeStatus(Status{Description: "motd", Max: 20, Players: tc.players})
			require.NoError(t, err)

			var doc struct {
				Players map[string]json.RawMessage `json:"players"`
			}
			require.NoError(t, json.Unmarshal(data, &doc))

			raw, ok := doc.Players["sample"]
			assert.Equal(t, tc.wantSample, ok)
			if ok {
				var sample []map[string]string
				require.NoError(t, json.Unmarshal(raw, &sample))
				assert.Len(t, sample, tc.wantLen)
			}
		})
	}
}
