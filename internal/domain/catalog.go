package domain

import "time"

// InventoryItem is one owned item row; Type partitions the inventory into the
// containers the client expects (item, skin, sticker).
type InventoryItem struct {
	Type      string `db:"item_type" json:"type"`
	ShortCode string `db:"short_code" json:"shortCode"`
	Quantity  int    `db:"quantity" json:"quantity"`
}

// Product is one store listing.
type Product struct {
	ShortCode string   `db:"short_code" json:"short_code"`
	Name      string   `db:"name" json:"name"`
	PriceBase int64    `db:"price_base" json:"priceBase"`
	Currency  string   `db:"currency" json:"currency"`
	Tags      []string `db:"tags" json:"tags"`
}

// LogEntry is an append-only sink record. There is no read path beyond raw
// storage.
type LogEntry struct {
	Type      string         `db:"type" json:"type"`
	PlayerID  string         `db:"player_id" json:"playerId"`
	Payload   map[string]any `db:"payload" json:"payload"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}
