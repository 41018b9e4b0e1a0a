package middleware

import "regexp"

// apiTokens are the named-API spellings game clients embed at arbitrary path
// depths (e.g. /prod/v2/GetPlayerAPI). Any unmatched path ending in one of
// them is re-dispatched to /YGG/<token>.
var apiTokens = []string{
	"GetPlayerAPI", "GetStoreAPI", "GetLootboxAPI", "GetRankedAPI",
	"GetQuestSkinAPI", "GetCurseRelicAPI",
	"MailBoxGet", "MailBoxRead", "MailBoxClaim", "MailBoxRemove",
	"Announcement", "GetServerVersion",
	"LogReport", "LogTransaction", "LogStore", "LogGetPlayerData",
}

var tokenRe = func() *regexp.Regexp {
	pattern := "(?:^|/)("
	for i, t := range apiTokens {
		if i > 0 {
			pattern += "|"
		}
		pattern += t
	}
	pattern += ")$"
	return regexp.MustCompile(pattern)
}()

// APIToken returns the named-API token a path ends with, if any.
func APIToken(path string) (string, bool) {
	m := tokenRe.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	return m[1], true
}
