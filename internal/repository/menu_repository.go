package repository

import (
	"context"
	"errors"
	"fmt"

	"promo-admin/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

const menuColumns = `id_menu, nama_menu, foto_menu, deskripsi_menu, harga_menu, kategori, created_at, updated_at`

// menuRepository implements the MenuRepository interface using PostgreSQL.
type menuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuRepository creates a new PostgreSQL-backed menu repository.
func NewMenuRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

func scanMenu(row pgx.Row, m *model.Menu) error {
	return row.Scan(
		&m.IDMenu,
		&m.NamaMenu,
		&m.FotoMenu,
		&m.DeskripsiMenu,
		&m.HargaMenu,
		&m.Kategori,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
}

// List retrieves all menu items ordered by creation time, oldest first.
func (r *menuRepository) List(ctx context.Context) ([]model.Menu, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menu
		ORDER BY created_at ASC, nama_menu ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menu")
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer rows.Close()

	items := []model.Menu{}
	for rows.Next() {
		var m model.Menu
		if err := scanMenu(rows, &m); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu row")
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu rows")
		return nil, fmt.Errorf("error iterating menu: %w", err)
	}

	return items, nil
}

// GetByID retrieves a single menu item by its UUID.
func (r *menuRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Menu, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menu
		WHERE id_menu = $1
	`

	var m model.Menu
	if err := scanMenu(r.pool.QueryRow(ctx, query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("id_menu", id.String()).Msg("menu not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("id_menu", id.String()).Msg("failed to query menu")
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}

	return &m, nil
}

// Create inserts a menu item under its caller-supplied id_menu.
// Returns model.ErrMenuExists if the id is already taken.
func (r *menuRepository) Create(ctx context.Context, menu *model.Menu) error {
	query := `
		INSERT INTO menu (id_menu, nama_menu, foto_menu, deskripsi_menu, harga_menu, kategori)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		menu.IDMenu,
		menu.NamaMenu,
		menu.FotoMenu,
		menu.DeskripsiMenu,
		menu.HargaMenu,
		menu.Kategori,
	).Scan(&menu.CreatedAt, &menu.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Warn().Str("id_menu", menu.IDMenu.String()).Msg("duplicate menu id")
			return model.ErrMenuExists
		}
		r.logger.Error().Err(err).Str("id_menu", menu.IDMenu.String()).Msg("failed to create menu")
		return fmt.Errorf("failed to create menu: %w", err)
	}

	r.logger.Debug().Str("id_menu", menu.IDMenu.String()).Msg("menu created successfully")

	return nil
}

// Update overwrites the fillable fields of an existing menu item.
// Returns model.ErrMenuNotFound if no row matches.
func (r *menuRepository) Update(ctx context.Context, menu *model.Menu) error {
	query := `
		UPDATE menu
		SET nama_menu = $2, foto_menu = $3, deskripsi_menu = $4, harga_menu = $5, kategori = $6,
			updated_at = NOW()
		WHERE id_menu = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		menu.IDMenu,
		menu.NamaMenu,
		menu.FotoMenu,
		menu.DeskripsiMenu,
		menu.HargaMenu,
		menu.Kategori,
	).Scan(&menu.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrMenuNotFound
		}
		r.logger.Error().Err(err).Str("id_menu", menu.IDMenu.String()).Msg("failed to update menu")
		return fmt.Errorf("failed to update menu: %w", err)
	}

	return nil
}

// Delete removes a menu item by its UUID.
// Returns model.ErrMenuNotFound if no row matches.
func (r *menuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu WHERE id_menu = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("id_menu", id.String()).Msg("failed to delete menu")
		return fmt.Errorf("failed to delete menu: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrMenuNotFound
	}

	return nil
}
