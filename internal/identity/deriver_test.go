package identity

import (
	"strings"
	"testing"
	"time"

	"hsho_live_api/internal/config"
)

func deterministicDeriver() *Deriver {
	return NewDeriver(&config.Config{
		IDMode:    config.IDModeDeterministic,
		TokenMode: config.TokenModeHash,
	})
}

func TestPlayerIDDeterministic(t *testing.T) {
	d := deterministicDeriver()

	a := d.PlayerID("abc123")
	b := d.PlayerID("abc123")
	if a != b {
		t.Fatalf("same ticket produced different ids: %s vs %s", a, b)
	}

	other := d.PlayerID("different-ticket")
	if other == a {
		t.Fatalf("distinct tickets collided on id %s", a)
	}
}

func TestPlayerIDShape(t *testing.T) {
	d := deterministicDeriver()

	for _, ticket := range []string{"", "abc123", "a-long-opaque-platform-ticket"} {
		id := d.PlayerID(ticket)
		if len(id) != 17 {
			t.Fatalf("id %q for ticket %q is not 17 digits", id, ticket)
		}
		if !strings.HasPrefix(id, "7656") {
			t.Fatalf("id %q does not sit in the steam64 range", id)
		}
	}
}

func TestPlayerIDRandomMode(t *testing.T) {
	d := NewDeriver(&config.Config{IDMode: config.IDModeRandom, TokenMode: config.TokenModeHash})

	a := d.PlayerID("same-ticket")
	b := d.PlayerID("same-ticket")
	if a == b {
		t.Fatalf("random mode repeated id %s", a)
	}
	if len(a) != 17 || len(b) != 17 {
		t.Fatalf("random ids lost the platform shape: %s, %s", a, b)
	}
}

func TestHashTokenIsStablePerSecond(t *testing.T) {
	d := deterministicDeriver()
	now := time.Unix(1700000000, 0)

	tok, err := d.Token("76561197960265728", now)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if len(tok) != 64 {
		t.Fatalf("expected hex sha256 token, got %q", tok)
	}

	again, _ := d.Token("76561197960265728", now)
	if tok != again {
		t.Fatalf("token not stable for identical inputs")
	}

	later, _ := d.Token("76561197960265728", now.Add(time.Second))
	if tok == later {
		t.Fatalf("token did not change with issue time")
	}
}

func TestSignedTokenRoundTrip(t *testing.T) {
	d := NewDeriver(&config.Config{
		IDMode:        config.IDModeDeterministic,
		TokenMode:     config.TokenModeJWT,
		SessionSecret: "test-secret",
	})

	id := d.PlayerID("abc123")
	tok, err := d.Token(id, time.Now())
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	got, err := d.PlayerIDFromToken(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != id {
		t.Fatalf("expected %s from token, got %s", id, got)
	}
}

func TestSignedTokenRejectsTampering(t *testing.T) {
	d := NewDeriver(&config.Config{
		IDMode:        config.IDModeDeterministic,
		TokenMode:     config.TokenModeJWT,
		SessionSecret: "test-secret",
	})

	tok, _ := d.Token("76561197960265728", time.Now())
	if _, err := d.PlayerIDFromToken(tok + "x"); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}

	other := NewDeriver(&config.Config{
		IDMode:        config.IDModeDeterministic,
		TokenMode:     config.TokenModeJWT,
		SessionSecret: "other-secret",
	})
	if _, err := other.PlayerIDFromToken(tok); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestHashModeTokensCarryNoIdentity(t *testing.T) {
	d := deterministicDeriver()
	tok, _ := d.Token("76561197960265728", time.Now())
	if _, err := d.PlayerIDFromToken(tok); err == nil {
		t.Fatalf("hash tokens must not resolve to a player id")
	}
}
