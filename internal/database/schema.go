package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema creates the promos and menu tables. Every statement is idempotent.
// menu.id_menu has no default: identifiers are always supplied by the application.
const Schema = `
	CREATE TABLE IF NOT EXISTS promos (
		id BIGSERIAL PRIMARY KEY,
		judul TEXT NOT NULL,
		harga NUMERIC(12, 2) NOT NULL,
		deskripsi_1 TEXT NOT NULL,
		deskripsi_2 TEXT NOT NULL,
		kelebihan_1 TEXT NOT NULL,
		kelebihan_2 TEXT NOT NULL,
		kelebihan_3 TEXT NOT NULL,
		image TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_promos_created_at ON promos(created_at);

	CREATE TABLE IF NOT EXISTS menu (
		id_menu UUID PRIMARY KEY,
		nama_menu TEXT NOT NULL,
		foto_menu TEXT NOT NULL DEFAULT '',
		deskripsi_menu TEXT NOT NULL DEFAULT '',
		harga_menu NUMERIC(12, 2) NOT NULL DEFAULT 0 CHECK (harga_menu >= 0),
		kategori TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_menu_kategori ON menu(kategori);
`

// Migrate applies Schema to the database behind pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		logger.Error().Err(err).Msg("failed to apply database schema")
		return fmt.Errorf("failed to apply database schema: %w", err)
	}

	logger.Info().Msg("database schema is up to date")

	return nil
}
