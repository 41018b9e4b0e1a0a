// Package envelope turns canonical domain values into the oversized,
// redundantly-keyed JSON bodies the game client expects. Internal code works
// with single canonical names; the alias fan-out happens only here, at the
// serialization boundary.
package envelope

import (
	"time"

	"hsho_live_api/internal/domain"
)

// Envelope is a ready-to-serialize response body.
type Envelope map[string]any

// flags returns the full set of success markers. The client is undocumented
// and different builds read different conventions, so every spelling that any
// known build checks must be present on every success body.
func flags() Envelope {
	return Envelope{
		"error": 0, "code": 0, "err": 0, "errno": 0, "Error": 0, "ErrorCode": 0,
		"rc": 0, "ret": 0,
		"error_str": "0", "code_str": "0",
		"statusCode": 0, "status_code": 0, "ResponseCode": 0, "resultCode": 0,
		"result": true, "success": true, "ok": true,
		"status": "OK", "httpCode": 200,
		"message": "OK", "Message": "OK", "msg": "OK",
	}
}

// Endpoints is the discovery block embedded in auth responses so the client
// can find the rest of the surface without hardcoding paths.
func Endpoints() map[string]string {
	return map[string]string{
		"getPlayer":    "/live/player/get",
		"playerGet":    "/live/player/get",
		"player":       "/live/player/get",
		"storeList":    "/live/store/list",
		"store_list":   "/live/store/list",
		"lootbox":      "/live/lootbox/balance",
		"ranked":       "/live/ranked/info",
		"mailbox":      "/live/mail/get",
		"announcement": "/live/announcement",
		"version":      "/live/version",
	}
}

// Builder assembles envelopes for one deployment (base URL and region are
// baked into every body).
type Builder struct {
	BaseURL string
	Region  string
}

// enrich layers the flag set under base, mirrors the whole thing into a
// "data" object, and adds a Steam-like "response" wrapper.
func (b *Builder) enrich(base Envelope) Envelope {
	full := flags()
	data := flags()
	for k, v := range base {
		full[k] = v
		data[k] = v
	}
	full["data"] = data

	params := map[string]any{"result": "OK"}
	if v, ok := base["steamId"]; ok {
		params["steamid"] = v
	}
	if v, ok := base["playerId"]; ok {
		params["playerid"] = v
	}
	if v, ok := base["token"]; ok {
		params["token"] = v
	}
	full["response"] = map[string]any{"params": params, "error": nil}
	return full
}

// Identity binds the alias sets for one resolved session.
type Identity struct {
	PlayerID string
	Token    string
}

// base expands an identity into every id and token alias the client might
// read, plus the base-URL aliases. Anonymous requests (zero Identity) carry
// no identity keys at all rather than empty strings.
func (b *Builder) base(id Identity, now time.Time) Envelope {
	e := Envelope{
		"serverTime": now.Unix(),

		"baseUrl": b.BaseURL, "base_url": b.BaseURL, "api_base": b.BaseURL,
		"server_url": b.BaseURL, "host": b.BaseURL,
	}
	if id.PlayerID != "" {
		for _, k := range []string{"playerId", "uid", "userId", "id", "steamId", "player_id", "steam_id"} {
			e[k] = id.PlayerID
		}
	}
	if id.Token != "" {
		for _, k := range []string{
			"token", "access_token", "accessToken", "access-token",
			"sessionKey", "session_token", "sessionId", "session_id", "session", "sid",
		} {
			e[k] = id.Token
		}
	}
	return e
}

func (b *Builder) serverBlock(now time.Time) map[string]any {
	return map[string]any{
		"api":    b.BaseURL,
		"base":   b.BaseURL,
		"time":   now.Unix(),
		"region": b.Region,
	}
}

func profileMap(p domain.Profile) map[string]any {
	return map[string]any{
		"level": p.Level,
		"exp":   p.Exp,
		"role":  p.Role,
		"rank": map[string]any{
			"name":  p.Rank.Name,
			"point": p.Rank.Point,
			"mmr":   p.Rank.MMR,
		},
		"balance": map[string]any{"coin": p.Balance.Coin, "gem": p.Balance.Gem},
		"lootbox": map[string]any{"balance": p.Lootbox.Balance},
	}
}

// AuthInput carries everything the auth envelope echoes back.
type AuthInput struct {
	Identity      Identity
	Profile       domain.Profile
	Ticket        string
	AuthType      string
	ClientVersion string
	Now           time.Time
}

// Auth builds the full authentication success body.
func (b *Builder) Auth(in AuthInput) Envelope {
	now := in.Now
	base := b.base(in.Identity, now)

	base["ticket"] = in.Ticket
	base["authType"] = in.AuthType
	base["clientversion"] = in.ClientVersion
	base["clientVersion"] = in.ClientVersion
	base["version"] = in.ClientVersion

	base["expires"] = now.Add(domain.SessionTTL).Unix()
	base["expiresIn"] = int64(domain.SessionTTL / time.Second)

	base["server"] = b.serverBlock(now)
	eps := Endpoints()
	base["endpoints"] = eps
	base["endpoint"] = eps
	base["api"] = eps
	base["next"] = "/live/player/get"
	base["redirect"] = "/live/player/get"

	base["user"] = map[string]any{
		"id": in.Identity.PlayerID, "uid": in.Identity.PlayerID,
		"userId": in.Identity.PlayerID, "playerId": in.Identity.PlayerID,
		"steamId": in.Identity.PlayerID,
		"name":    domain.DisplayNameFor(in.Identity.PlayerID),
		"token":   in.Identity.Token, "access_token": in.Identity.Token,
		"sessionKey": in.Identity.Token, "session_token": in.Identity.Token,
		"sessionId": in.Identity.Token, "session_id": in.Identity.Token,
	}
	base["profile"] = profileMap(in.Profile)

	return b.enrich(base)
}

// Player builds the /live/player/get body: the auth aliases plus profile and
// empty-but-present inventory containers.
func (b *Builder) Player(id Identity, profile domain.Profile, inv []domain.InventoryItem, now time.Time) Envelope {
	base := b.base(id, now)
	base["message"] = "player loaded"
	base["user"] = map[string]any{
		"id": id.PlayerID, "playerId": id.PlayerID, "steamId": id.PlayerID,
		"name":  domain.DisplayNameFor(id.PlayerID),
		"token": id.Token,
	}
	base["profile"] = profileMap(profile)
	base["inventory"] = inventoryContainers(inv)
	base["characters"] = map[string]any{
		"survivors": []string{"sv_001"},
		"specters":  []string{"sp_001"},
	}
	base["balance"] = map[string]any{"coin": profile.Balance.Coin, "gem": profile.Balance.Gem}
	base["lootbox"] = map[string]any{"balance": profile.Lootbox.Balance}
	base["settings"] = map[string]any{"language": "en", "region": b.Region}
	base["next"] = "/live/store/list"
	return b.enrich(base)
}

func inventoryContainers(inv []domain.InventoryItem) map[string]any {
	containers := map[string]any{
		"items": []any{}, "skins": []any{}, "emotes": []any{},
		"charms": []any{}, "perks": []any{}, "characters": []any{},
	}
	items := []any{}
	skins := []any{}
	for _, it := range inv {
		entry := map[string]any{"shortCode": it.ShortCode, "quantity": it.Quantity}
		switch it.Type {
		case "skin":
			skins = append(skins, entry)
		default:
			items = append(items, entry)
		}
	}
	containers["items"] = items
	containers["skins"] = skins
	return containers
}

// StoreList builds the store body. Products come from the store when one is
// configured; the fallback is the static starter listing.
func (b *Builder) StoreList(id Identity, products []domain.Product, now time.Time) Envelope {
	base := b.base(id, now)
	base["message"] = "store list"

	listing := []any{}
	if len(products) == 0 {
		listing = []any{
			map[string]any{"id": "pack_starter", "type": "bundle", "price": map[string]any{"gem": 0, "coin": 0}, "items": []any{}},
			map[string]any{"id": "cos_basic", "type": "cosmetic", "price": map[string]any{"gem": 0, "coin": 0}, "items": []any{}},
		}
	} else {
		for _, p := range products {
			listing = append(listing, map[string]any{
				"id":    p.ShortCode,
				"name":  p.Name,
				"type":  "product",
				"price": map[string]any{"base": p.PriceBase, "currency": p.Currency},
				"tags":  p.Tags,
				"items": []any{},
			})
		}
	}
	base["store"] = listing
	base["next"] = "/live/lootbox/balance"
	return b.enrich(base)
}

// LootboxBalance builds the lootbox body.
func (b *Builder) LootboxBalance(id Identity, balance int64, now time.Time) Envelope {
	base := b.base(id, now)
	base["message"] = "lootbox balance"
	base["lootbox"] = map[string]any{"balance": balance}
	return b.enrich(base)
}

// Ranked builds the ranked-info body.
func (b *Builder) Ranked(id Identity, rank domain.Rank, now time.Time) Envelope {
	base := b.base(id, now)
	base["message"] = "ranked info"
	base["ranked"] = map[string]any{
		"tier": rank.Name, "mmr": rank.MMR,
		"win": 0, "lose": 0, "draw": 0,
	}
	return b.enrich(base)
}

// Mail builds the (always empty) mailbox body.
func (b *Builder) Mail(id Identity, now time.Time) Envelope {
	base := b.base(id, now)
	base["message"] = "mailbox"
	base["mailbox"] = []any{}
	return b.enrich(base)
}

// Announcement builds the (always empty) announcement body.
func (b *Builder) Announcement(id Identity, now time.Time) Envelope {
	base := b.base(id, now)
	base["message"] = "announcement"
	base["announcement"] = []any{}
	return b.enrich(base)
}

// Version builds the version body. The client treats force/maintenance as
// kill switches, so they are always false here.
func (b *Builder) Version(id Identity, version string, now time.Time) Envelope {
	base := b.base(id, now)
	base["message"] = "version"
	base["version"] = version
	base["force"] = false
	base["maintenance"] = false
	return b.enrich(base)
}

// Generic answers any unhandled /live path with a success body echoing the
// request, so a probing client never sees a hard failure.
func (b *Builder) Generic(method, path string, query map[string]string, body any, now time.Time) Envelope {
	base := Envelope{
		"message":    "OK",
		"method":     method,
		"path":       path,
		"query":      query,
		"echo":       body,
		"serverTime": now.Unix(),
		"baseUrl":    b.BaseURL,
	}
	return b.enrich(base)
}

// Failure is the only failure shape the live surface produces: still HTTP
// 200, flagged inside the body. msg must be a fixed human-readable string,
// never raw internal error text.
func Failure(msg string) Envelope {
	e := flags()
	e["result"] = false
	e["success"] = false
	e["ok"] = false
	e["error"] = 1
	e["code"] = 1
	e["message"] = msg
	e["Message"] = msg
	e["msg"] = msg
	return e
}
