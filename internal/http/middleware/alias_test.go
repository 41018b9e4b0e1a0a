package middleware

import "testing"

func TestAPITokenMatchesAtAnyDepth(t *testing.T) {
	cases := map[string]string{
		"/GetPlayerAPI":                  "GetPlayerAPI",
		"/api/GetPlayerAPI":              "GetPlayerAPI",
		"/prod/v2/something/LogReport":   "LogReport",
		"/MailBoxClaim":                  "MailBoxClaim",
		"/deeply/nested/GetServerVersion": "GetServerVersion",
	}
	for path, want := range cases {
		got, ok := APIToken(path)
		if !ok || got != want {
			t.Errorf("APIToken(%q) = %q, %v; want %q", path, got, ok, want)
		}
	}
}

func TestAPITokenRejectsNonTokens(t *testing.T) {
	for _, path := range []string{
		"/live/player/get",
		"/GetPlayerAPIextra",
		"/GetPlayerAPI/trailing",
		"/",
		"",
	} {
		if tok, ok := APIToken(path); ok {
			t.Errorf("APIToken(%q) unexpectedly matched %q", path, tok)
		}
	}
}
