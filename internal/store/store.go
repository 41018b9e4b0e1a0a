// Package store holds the optional persistence adapters. Handlers treat
// every method as best-effort: a failure degrades to defaults and the HTTP
// response is built regardless.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"hsho_live_api/internal/domain"
)

var ErrNotFound = errors.New("not found")

// Store is the session/profile persistence contract. Memory is the always-on
// fallback; Postgres is used when DATABASE_URL is configured.
type Store interface {
	UpsertPlayer(ctx context.Context, p *domain.Player) error
	UpsertSession(ctx context.Context, s *domain.Session) error
	EnsureProfile(ctx context.Context, playerID string) error
	ReadProfile(ctx context.Context, playerID string) (*domain.Profile, error)
	SessionByToken(ctx context.Context, token string) (*domain.Session, error)
	AppendLog(ctx context.Context, entry *domain.LogEntry) error
	ReadInventory(ctx context.Context, playerID string) ([]domain.InventoryItem, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	Ping(ctx context.Context) error
}

// Cache is the generic name -> JSON payload table behind the catch-all named
// API endpoints.
type Cache interface {
	Get(ctx context.Context, name string) (json.RawMessage, error)
	Put(ctx context.Context, name string, payload json.RawMessage) error
}
