package domain

import "time"

// Player is the canonical identity record. The wire format repeats the id
// under many alias keys; internally there is exactly one.
type Player struct {
	ID          string    `db:"player_id" json:"playerId"`
	DisplayName string    `db:"display_name" json:"displayName"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// DisplayNameFor derives the default display name from a player id.
func DisplayNameFor(playerID string) string {
	tail := playerID
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}
	return "Player_" + tail
}

// SessionTTL is fixed; expiry is advisory and never enforced by any handler.
const SessionTTL = 24 * time.Hour

type Session struct {
	Token     string    `db:"token" json:"token"`
	PlayerID  string    `db:"player_id" json:"playerId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
}
