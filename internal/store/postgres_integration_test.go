package store

import (
	"context"
	"os"
	"testing"
	"time"

	"hsho_live_api/internal/domain"
)

// Integration-style tests: run only when TEST_DATABASE_URL points at a
// disposable Postgres.
func testPostgres(t *testing.T) *Postgres {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p, err := NewPostgres(ctx, dsn, false)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	p := testPostgres(t)
	ctx := context.Background()

	if err := p.EnsureSchema(ctx); err != nil {
		t.Fatalf("first EnsureSchema: %v", err)
	}
	if err := p.EnsureSchema(ctx); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
}

func TestPostgresPlayerSessionProfileFlow(t *testing.T) {
	p := testPostgres(t)
	ctx := context.Background()

	if err := p.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	playerID := "76561197960265728"
	now := time.Now().UTC().Truncate(time.Second)

	player := &domain.Player{ID: playerID, DisplayName: domain.DisplayNameFor(playerID)}
	if err := p.UpsertPlayer(ctx, player); err != nil {
		t.Fatalf("UpsertPlayer: %v", err)
	}
	if err := p.UpsertPlayer(ctx, player); err != nil {
		t.Fatalf("UpsertPlayer again: %v", err)
	}

	session := &domain.Session{Token: "itest-token", PlayerID: playerID, CreatedAt: now, ExpiresAt: now.Add(domain.SessionTTL)}
	if err := p.UpsertSession(ctx, session); err != nil {
		t.Fatalf("UpsertSession: %v", err)
	}
	got, err := p.SessionByToken(ctx, "itest-token")
	if err != nil {
		t.Fatalf("SessionByToken: %v", err)
	}
	if got.PlayerID != playerID {
		t.Errorf("session player = %s", got.PlayerID)
	}

	if err := p.EnsureProfile(ctx, playerID); err != nil {
		t.Fatalf("EnsureProfile: %v", err)
	}
	profile, err := p.ReadProfile(ctx, playerID)
	if err != nil {
		t.Fatalf("ReadProfile: %v", err)
	}
	if profile.Level != 1 || profile.Rank.Name != "Bronze" {
		t.Errorf("profile defaults wrong: %+v", profile)
	}
}

func TestPostgresReadProfileMissingRowsFallsBack(t *testing.T) {
	p := testPostgres(t)
	ctx := context.Background()

	if err := p.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}

	profile, err := p.ReadProfile(ctx, "never-seen-player")
	if err != nil {
		t.Fatalf("ReadProfile: %v", err)
	}
	if profile.Level != 1 || profile.Role != "Survivor" {
		t.Errorf("expected defaults, got %+v", profile)
	}
}
