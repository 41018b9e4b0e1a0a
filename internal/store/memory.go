package store

import (
	"context"
	"encoding/json"
	"sync"

	"hsho_live_api/internal/domain"
)

// Memory is the in-process store used when no database is configured. It
// keeps the auth -> player/get contract working within a single process
// lifetime and forgets everything on restart.
type Memory struct {
	mu        sync.RWMutex
	players   map[string]domain.Player
	sessions  map[string]domain.Session
	profiles  map[string]domain.Profile
	inventory map[string][]domain.InventoryItem
	products  []domain.Product
	logs      []domain.LogEntry
	cache     map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{
		players:   make(map[string]domain.Player),
		sessions:  make(map[string]domain.Session),
		profiles:  make(map[string]domain.Profile),
		inventory: make(map[string][]domain.InventoryItem),
		cache:     make(map[string]json.RawMessage),
	}
}

func (m *Memory) UpsertPlayer(_ context.Context, p *domain.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.players[p.ID]; ok {
		existing.DisplayName = p.DisplayName
		existing.UpdatedAt = p.UpdatedAt
		m.players[p.ID] = existing
		return nil
	}
	m.players[p.ID] = *p
	return nil
}

func (m *Memory) UpsertSession(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = *s
	return nil
}

func (m *Memory) EnsureProfile(_ context.Context, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[playerID]; !ok {
		m.profiles[playerID] = domain.DefaultProfile()
	}
	return nil
}

func (m *Memory) ReadProfile(_ context.Context, playerID string) (*domain.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[playerID]
	if !ok {
		p = domain.DefaultProfile()
	}
	return &p, nil
}

func (m *Memory) SessionByToken(_ context.Context, token string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *Memory) AppendLog(_ context.Context, entry *domain.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, *entry)
	return nil
}

// Logs returns all appended entries; used by tests only, mirroring the
// append-only table's lack of a read path.
func (m *Memory) Logs() []domain.LogEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.LogEntry, len(m.logs))
	copy(out, m.logs)
	return out
}

func (m *Memory) ReadInventory(_ context.Context, playerID string) ([]domain.InventoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.InventoryItem(nil), m.inventory[playerID]...), nil
}

func (m *Memory) ListProducts(_ context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Product(nil), m.products...), nil
}

// SetProducts replaces the product listing; used by tests.
func (m *Memory) SetProducts(products []domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products
}

func (m *Memory) Ping(_ context.Context) error {
	return nil
}

func (m *Memory) Get(_ context.Context, name string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payload, ok := m.cache[name]
	if !ok {
		return nil, ErrNotFound
	}
	return payload, nil
}

func (m *Memory) Put(_ context.Context, name string, payload json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[name] = append(json.RawMessage(nil), payload...)
	return nil
}
