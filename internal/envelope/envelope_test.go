package envelope

import (
	"testing"
	"time"

	"hsho_live_api/internal/domain"
)

var testNow = time.Unix(1700000000, 0)

func testBuilder() *Builder {
	return &Builder{BaseURL: "https://live.example.com", Region: "sg"}
}

func authEnvelope() Envelope {
	return testBuilder().Auth(AuthInput{
		Identity:      Identity{PlayerID: "X", Token: "Y"},
		Profile:       domain.DefaultProfile(),
		Ticket:        "abc123",
		AuthType:      "steam",
		ClientVersion: "1.0.6.0",
		Now:           testNow,
	})
}

func TestAuthCarriesAllIDAliases(t *testing.T) {
	env := authEnvelope()

	for _, key := range []string{"playerId", "uid", "userId", "id", "steamId", "player_id", "steam_id"} {
		if env[key] != "X" {
			t.Errorf("expected id alias %q = X, got %v", key, env[key])
		}
	}
	for _, key := range []string{"token", "access_token", "accessToken", "sessionKey", "session_token", "sessionId", "session_id", "session", "sid"} {
		if env[key] != "Y" {
			t.Errorf("expected token alias %q = Y, got %v", key, env[key])
		}
	}
}

func TestSuccessFlags(t *testing.T) {
	envs := map[string]Envelope{
		"auth":    authEnvelope(),
		"player":  testBuilder().Player(Identity{PlayerID: "X", Token: "Y"}, domain.DefaultProfile(), nil, testNow),
		"store":   testBuilder().StoreList(Identity{}, nil, testNow),
		"generic": testBuilder().Generic("GET", "/live/whatever", nil, nil, testNow),
	}

	for name, env := range envs {
		if env["error"] != 0 {
			t.Errorf("%s: error != 0: %v", name, env["error"])
		}
		if env["success"] != true {
			t.Errorf("%s: success != true: %v", name, env["success"])
		}
		if env["status"] != "OK" {
			t.Errorf("%s: status != OK: %v", name, env["status"])
		}
		if env["httpCode"] != 200 {
			t.Errorf("%s: httpCode != 200: %v", name, env["httpCode"])
		}
	}
}

func TestAuthTimeFields(t *testing.T) {
	env := authEnvelope()

	if env["serverTime"] != testNow.Unix() {
		t.Errorf("serverTime = %v", env["serverTime"])
	}
	if env["expires"] != testNow.Unix()+86400 {
		t.Errorf("expires = %v", env["expires"])
	}
	if env["expiresIn"] != int64(86400) {
		t.Errorf("expiresIn = %v", env["expiresIn"])
	}
}

func TestAuthDiscoveryBlock(t *testing.T) {
	env := authEnvelope()

	eps, ok := env["endpoints"].(map[string]string)
	if !ok {
		t.Fatalf("endpoints block missing: %T", env["endpoints"])
	}
	if eps["playerGet"] != "/live/player/get" {
		t.Errorf("playerGet endpoint = %q", eps["playerGet"])
	}
	for _, key := range []string{"baseUrl", "base_url", "api_base", "server_url", "host"} {
		if env[key] != "https://live.example.com" {
			t.Errorf("base url alias %q = %v", key, env[key])
		}
	}
}

func TestAuthNestedUserAndProfile(t *testing.T) {
	env := authEnvelope()

	user, ok := env["user"].(map[string]any)
	if !ok {
		t.Fatalf("user block missing")
	}
	if user["playerId"] != "X" || user["token"] != "Y" {
		t.Errorf("user block lost identity: %v", user)
	}
	if user["name"] != "Player_X" {
		t.Errorf("user name = %v", user["name"])
	}

	profile, ok := env["profile"].(map[string]any)
	if !ok {
		t.Fatalf("profile block missing")
	}
	if profile["level"] != 1 || profile["role"] != "Survivor" {
		t.Errorf("profile defaults wrong: %v", profile)
	}
}

func TestEnrichMirrorsDataAndResponse(t *testing.T) {
	env := authEnvelope()

	data, ok := env["data"].(Envelope)
	if !ok {
		t.Fatalf("data mirror missing: %T", env["data"])
	}
	if data["playerId"] != "X" || data["success"] != true {
		t.Errorf("data mirror incomplete: %v", data["playerId"])
	}

	resp, ok := env["response"].(map[string]any)
	if !ok {
		t.Fatalf("response wrapper missing")
	}
	params := resp["params"].(map[string]any)
	if params["steamid"] != "X" || params["token"] != "Y" || params["result"] != "OK" {
		t.Errorf("response params wrong: %v", params)
	}
}

func TestStoreListUsesStoredProducts(t *testing.T) {
	env := testBuilder().StoreList(Identity{PlayerID: "X", Token: "Y"}, []domain.Product{
		{ShortCode: "pack_1", Name: "Starter Pack", PriceBase: 0, Currency: "cash"},
	}, testNow)

	listing, ok := env["store"].([]any)
	if !ok || len(listing) != 1 {
		t.Fatalf("store listing = %v", env["store"])
	}
	first := listing[0].(map[string]any)
	if first["id"] != "pack_1" || first["name"] != "Starter Pack" {
		t.Errorf("product entry wrong: %v", first)
	}
}

func TestStoreListFallsBackToStarterListing(t *testing.T) {
	env := testBuilder().StoreList(Identity{}, nil, testNow)
	listing := env["store"].([]any)
	if len(listing) != 2 {
		t.Fatalf("expected 2 fallback products, got %d", len(listing))
	}
}

func TestFailureShape(t *testing.T) {
	env := Failure("no session")

	if env["success"] != false || env["result"] != false {
		t.Errorf("failure not flagged: %v", env)
	}
	if env["error"] != 1 || env["code"] != 1 {
		t.Errorf("failure codes wrong: error=%v code=%v", env["error"], env["code"])
	}
	if env["message"] != "no session" {
		t.Errorf("message = %v", env["message"])
	}
}
