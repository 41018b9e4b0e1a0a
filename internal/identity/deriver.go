package identity

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"hsho_live_api/internal/config"
	"hsho_live_api/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// steamBase is the start of the 64-bit individual-account id range; derived
// ids land in [steamBase, steamBase+1e10) so they look like real platform ids.
const steamBase uint64 = 76561197960265728

const offsetRange uint64 = 10_000_000_000

// Deriver turns an opaque client ticket into a pseudo player id and a session
// token. It is a labeling function, not an authentication mechanism: nothing
// about the ticket is ever verified here.
type Deriver struct {
	idMode    string
	tokenMode string
	secret    []byte
}

func NewDeriver(cfg *config.Config) *Deriver {
	return &Deriver{
		idMode:    cfg.IDMode,
		tokenMode: cfg.TokenMode,
		secret:    []byte(cfg.SessionSecret),
	}
}

// PlayerID derives a steam64-shaped decimal id from the ticket. In
// deterministic mode the same ticket always maps to the same id; in random
// mode every call mints a fresh id regardless of the ticket.
func (d *Deriver) PlayerID(ticket string) string {
	var offset uint64
	if d.idMode == config.IDModeRandom {
		u := uuid.New()
		offset = binary.BigEndian.Uint64(u[:8]) % offsetRange
	} else {
		sum := sha256.Sum256([]byte(ticket))
		offset = binary.BigEndian.Uint64(sum[:8]) % offsetRange
	}
	return strconv.FormatUint(steamBase+offset, 10)
}

// Token issues the session token for a player id. Hash mode is the historical
// behavior: hex sha256 over "<id>:<unix>", unique per second per player. JWT
// mode signs the player id so /live/player/get can resolve it without a
// session row.
func (d *Deriver) Token(playerID string, now time.Time) (string, error) {
	if d.tokenMode == config.TokenModeJWT {
		return d.signedToken(playerID, now)
	}
	sum := sha256.Sum256([]byte(playerID + ":" + strconv.FormatInt(now.Unix(), 10)))
	return hex.EncodeToString(sum[:]), nil
}

func (d *Deriver) signedToken(playerID string, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"player_id": playerID,
		"iat":       now.Unix(),
		"nbf":       now.Unix(),
		"exp":       now.Add(domain.SessionTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(d.secret)
}

var errNotSigned = errors.New("token is not a signed session token")

// PlayerIDFromToken recovers the player id embedded in a signed token.
// Hash-mode tokens carry no identity and always fail here; callers fall back
// to the session store.
func (d *Deriver) PlayerIDFromToken(token string) (string, error) {
	if d.tokenMode != config.TokenModeJWT {
		return "", errNotSigned
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return d.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.New("invalid token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	playerID, ok := claims["player_id"].(string)
	if !ok || playerID == "" {
		return "", errors.New("player_id not found")
	}
	return playerID, nil
}
