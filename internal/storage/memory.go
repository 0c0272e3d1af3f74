package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/woozymasta/mcwho/internal/models"
)

// Memory is a process-local store with the same contract as Repository.
// Records are lost on restart.
type Memory struct {
	servers map[string]string
	mu      sync.RWMutex
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{servers: make(map[string]string)}
}

// GetDefaultServer returns the address stored for the unit.
func (m *Memory) GetDefaultServer(_ context.Context, unitID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	address, ok := m.servers[unitID]
	return address, ok, nil
}

// SetDefaultServer inserts or replaces the record of the unit.
func (m *Memory) SetDefaultServer(_ context.Context, unitID, address string) error {
	m.mu.Lock()
	m.servers[unitID] = address
	m.mu.Unlock()

	return nil
}

// ListDefaultServers returns all records ordered by unit identifier.
func (m *Memory) ListDefaultServers(_ context.Context) ([]models.DefaultServer, error) {
	m.mu.RLock()
	servers := make([]models.DefaultServer, 0, len(m.servers))
	for unit, address := range m.servers {
		servers = append(servers, models.DefaultServer{UnitID: unit, Address: address})
	}
	m.mu.RUnlock()

	sort.Slice(servers, func(i, j int) bool { return servers[i].UnitID < servers[j].UnitID })
	return servers, nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
