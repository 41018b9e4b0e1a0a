package domain

type Rank struct {
	Name  string `db:"rank_name" json:"name"`
	Point int    `db:"rank_point" json:"point"`
	MMR   int    `db:"mmr" json:"mmr"`
}

type Balance struct {
	Coin int64 `db:"coin" json:"coin"`
	Gem  int64 `db:"gem" json:"gem"`
}

type Lootbox struct {
	Balance int64 `db:"balance" json:"balance"`
}

// Profile holds the per-player state the client reads back. Nothing in this
// system mutates it past creation; values are the hard-coded defaults unless
// a store row says otherwise.
type Profile struct {
	Level   int     `db:"level" json:"level"`
	Exp     int64   `db:"exp" json:"exp"`
	Role    string  `db:"role" json:"role"`
	Rank    Rank    `json:"rank"`
	Balance Balance `json:"balance"`
	Lootbox Lootbox `json:"lootbox"`
}

// DefaultProfile returns the profile every new player starts with.
func DefaultProfile() Profile {
	return Profile{
		Level: 1,
		Exp:   0,
		Role:  "Survivor",
		Rank:  Rank{Name: "Bronze", Point: 0, MMR: 0},
	}
}
