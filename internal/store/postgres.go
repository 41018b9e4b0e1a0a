package store

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"time"

	"hsho_live_api/internal/domain"
	"hsho_live_api/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the full DDL, intentionally guarded by IF NOT EXISTS so it can
// run on every process start.
const schema = `
CREATE TABLE IF NOT EXISTS players (
	player_id    TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sessions (
	token      TEXT PRIMARY KEY,
	player_id  TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS profiles (
	player_id TEXT PRIMARY KEY,
	level     INT NOT NULL DEFAULT 1,
	exp       BIGINT NOT NULL DEFAULT 0,
	role      TEXT NOT NULL DEFAULT 'Survivor'
);

CREATE TABLE IF NOT EXISTS balances (
	player_id TEXT PRIMARY KEY,
	coin      BIGINT NOT NULL DEFAULT 0,
	gem       BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS lootbox_balances (
	player_id TEXT PRIMARY KEY,
	balance   BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS ranked_stats (
	player_id  TEXT PRIMARY KEY,
	rank_name  TEXT NOT NULL DEFAULT 'Bronze',
	rank_point INT NOT NULL DEFAULT 0,
	mmr        INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS inventory_items (
	id         BIGSERIAL PRIMARY KEY,
	player_id  TEXT NOT NULL,
	item_type  TEXT NOT NULL,
	short_code TEXT NOT NULL,
	quantity   INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS store_products (
	short_code TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	price_base BIGINT NOT NULL DEFAULT 0,
	currency   TEXT NOT NULL DEFAULT 'cash',
	tags       TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS logs (
	id         BIGSERIAL PRIMARY KEY,
	type       TEXT NOT NULL,
	player_id  TEXT,
	payload    JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS api_cache (
	name       TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Postgres implements Store and Cache over a pgx pool.
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres opens a pool. strictSSL=false downgrades certificate
// verification, matching the hosted-Postgres setups this mock usually runs
// against (self-signed chains).
func NewPostgres(ctx context.Context, dsn string, strictSSL bool) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if !strictSSL && cfg.ConnConfig.TLSConfig != nil {
		cfg.ConnConfig.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	db, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Close() {
	p.db.Close()
}

// EnsureSchema applies the DDL and seeds the product listing when empty.
// Safe to call on every start; callers log and continue on error.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schema); err != nil {
		return err
	}

	var n int
	if err := p.db.QueryRow(ctx, `SELECT COUNT(*)::int FROM store_products`).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		_, err := p.db.Exec(ctx, `
			INSERT INTO store_products (short_code, name, price_base, currency, tags)
			VALUES ('pack_starter', 'Starter Pack', 0, 'cash', '{bundle}'),
			       ('cos_basic', 'Basic Cosmetic', 0, 'coin', '{cosmetic}')
			ON CONFLICT (short_code) DO NOTHING`)
		if err != nil {
			return err
		}
		logger.Info("store seed inserted")
	}
	return nil
}

func (p *Postgres) UpsertPlayer(ctx context.Context, pl *domain.Player) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO players (player_id, display_name, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (player_id) DO UPDATE
		SET display_name = EXCLUDED.display_name, updated_at = now()`,
		pl.ID, pl.DisplayName)
	return err
}

func (p *Postgres) UpsertSession(ctx context.Context, s *domain.Session) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO sessions (token, player_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token) DO UPDATE
		SET player_id = EXCLUDED.player_id, expires_at = EXCLUDED.expires_at`,
		s.Token, s.PlayerID, s.CreatedAt, s.ExpiresAt)
	return err
}

func (p *Postgres) EnsureProfile(ctx context.Context, playerID string) error {
	batch := &pgx.Batch{}
	batch.Queue(`INSERT INTO profiles (player_id) VALUES ($1) ON CONFLICT (player_id) DO NOTHING`, playerID)
	batch.Queue(`INSERT INTO balances (player_id) VALUES ($1) ON CONFLICT (player_id) DO NOTHING`, playerID)
	batch.Queue(`INSERT INTO lootbox_balances (player_id) VALUES ($1) ON CONFLICT (player_id) DO NOTHING`, playerID)
	batch.Queue(`INSERT INTO ranked_stats (player_id) VALUES ($1) ON CONFLICT (player_id) DO NOTHING`, playerID)

	br := p.db.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < 4; i++ {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// ReadProfile merges stored rows over hard-coded defaults; a missing row in
// any side table falls back to that table's defaults.
func (p *Postgres) ReadProfile(ctx context.Context, playerID string) (*domain.Profile, error) {
	profile := domain.DefaultProfile()
	err := p.db.QueryRow(ctx, `
		SELECT COALESCE(pr.level, 1),
		       COALESCE(pr.exp, 0),
		       COALESCE(pr.role, 'Survivor'),
		       COALESCE(r.rank_name, 'Bronze'),
		       COALESCE(r.rank_point, 0),
		       COALESCE(r.mmr, 0),
		       COALESCE(b.coin, 0),
		       COALESCE(b.gem, 0),
		       COALESCE(l.balance, 0)
		FROM (SELECT $1::text AS player_id) ids
		LEFT JOIN profiles pr ON pr.player_id = ids.player_id
		LEFT JOIN ranked_stats r ON r.player_id = ids.player_id
		LEFT JOIN balances b ON b.player_id = ids.player_id
		LEFT JOIN lootbox_balances l ON l.player_id = ids.player_id`,
		playerID,
	).Scan(
		&profile.Level, &profile.Exp, &profile.Role,
		&profile.Rank.Name, &profile.Rank.Point, &profile.Rank.MMR,
		&profile.Balance.Coin, &profile.Balance.Gem,
		&profile.Lootbox.Balance,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (p *Postgres) SessionByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := p.db.QueryRow(ctx, `
		SELECT token, player_id, created_at, expires_at
		FROM sessions WHERE token = $1`, token,
	).Scan(&s.Token, &s.PlayerID, &s.CreatedAt, &s.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *Postgres) AppendLog(ctx context.Context, entry *domain.LogEntry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		payload = []byte("{}")
	}
	_, err = p.db.Exec(ctx, `
		INSERT INTO logs (type, player_id, payload) VALUES ($1, NULLIF($2, ''), $3)`,
		entry.Type, entry.PlayerID, payload)
	return err
}

func (p *Postgres) ReadInventory(ctx context.Context, playerID string) ([]domain.InventoryItem, error) {
	rows, err := p.db.Query(ctx, `
		SELECT item_type, short_code, quantity
		FROM inventory_items WHERE player_id = $1 ORDER BY id`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.Type, &it.ShortCode, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (p *Postgres) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := p.db.Query(ctx, `
		SELECT short_code, name, price_base, currency, COALESCE(tags, '{}')
		FROM store_products ORDER BY short_code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var pr domain.Product
		if err := rows.Scan(&pr.ShortCode, &pr.Name, &pr.PriceBase, &pr.Currency, &pr.Tags); err != nil {
			return nil, err
		}
		products = append(products, pr)
	}
	return products, rows.Err()
}

func (p *Postgres) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return p.db.Ping(ctx)
}

func (p *Postgres) Get(ctx context.Context, name string) (json.RawMessage, error) {
	var payload json.RawMessage
	err := p.db.QueryRow(ctx, `SELECT payload FROM api_cache WHERE name = $1`, name).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (p *Postgres) Put(ctx context.Context, name string, payload json.RawMessage) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO api_cache (name, payload, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		name, payload)
	return err
}
