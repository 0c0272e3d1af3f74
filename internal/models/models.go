// Package models defines the data structures shared by the query, storage and transport layers.
package models

import "github.com/google/uuid"

// DefaultServer maps an organizational unit (guild) to the server address
// its members check when they give none. Address is kept as typed.
type DefaultServer struct {
	UnitID  string `json:"unit_id"`
	Address string `json:"address"`
}

// ServerStatus is a live snapshot returned by a Minecraft server status query.
type ServerStatus struct {
	Description string  `json:"description"`
	Version     string  `json:"version"`
	IP          string  `json:"ip,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	Players     Players `json:"players"`
	Protocol    int     `json:"protocol"`
	LatencyMS   float64 `json:"latency_ms"`
}

// Players holds the player counters and the sample reported by the server.
// Sample is nil when the server omitted it and empty when it reported none.
type Players struct {
	Sample []PlayerSample `json:"sample"`
	Online int            `json:"online"`
	Max    int            `json:"max"`
}

// PlayerSample is a single entry of the server-reported player sample.
type PlayerSample struct {
	Name string    `json:"name"`
	ID   uuid.UUID `json:"id"`
}
