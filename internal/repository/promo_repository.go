package repository

import (
	"context"
	"errors"
	"fmt"

	"promo-admin/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const promoColumns = `id, judul, harga, deskripsi_1, deskripsi_2, kelebihan_1, kelebihan_2, kelebihan_3, image, created_at, updated_at`

// promoRepository implements the PromoRepository interface using PostgreSQL.
type promoRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromoRepository creates a new PostgreSQL-backed promo repository.
func NewPromoRepository(pool *pgxpool.Pool, logger zerolog.Logger) PromoRepository {
	return &promoRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promo").Logger(),
	}
}

func scanPromo(row pgx.Row, p *model.Promo) error {
	return row.Scan(
		&p.ID,
		&p.Judul,
		&p.Harga,
		&p.Deskripsi1,
		&p.Deskripsi2,
		&p.Kelebihan1,
		&p.Kelebihan2,
		&p.Kelebihan3,
		&p.Image,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// List retrieves all promos ordered by creation time, oldest first.
func (r *promoRepository) List(ctx context.Context) ([]model.Promo, error) {
	query := `
		SELECT ` + promoColumns + `
		FROM promos
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query promos")
		return nil, fmt.Errorf("failed to query promos: %w", err)
	}
	defer rows.Close()

	promos := []model.Promo{}
	for rows.Next() {
		var p model.Promo
		if err := scanPromo(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan promo row")
			return nil, fmt.Errorf("failed to scan promo: %w", err)
		}
		promos = append(promos, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating promo rows")
		return nil, fmt.Errorf("error iterating promos: %w", err)
	}

	return promos, nil
}

// GetByID retrieves a single promo by its ID.
func (r *promoRepository) GetByID(ctx context.Context, id int64) (*model.Promo, error) {
	query := `
		SELECT ` + promoColumns + `
		FROM promos
		WHERE id = $1
	`

	var p model.Promo
	if err := scanPromo(r.pool.QueryRow(ctx, query, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("promo_id", id).Msg("promo not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("promo_id", id).Msg("failed to query promo")
		return nil, fmt.Errorf("failed to query promo: %w", err)
	}

	return &p, nil
}

// Create inserts a promo and fills in its ID and timestamps.
func (r *promoRepository) Create(ctx context.Context, promo *model.Promo) error {
	query := `
		INSERT INTO promos (judul, harga, deskripsi_1, deskripsi_2, kelebihan_1, kelebihan_2, kelebihan_3, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		promo.Judul,
		promo.Harga,
		promo.Deskripsi1,
		promo.Deskripsi2,
		promo.Kelebihan1,
		promo.Kelebihan2,
		promo.Kelebihan3,
		promo.Image,
	).Scan(&promo.ID, &promo.CreatedAt, &promo.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("judul", promo.Judul).Msg("failed to create promo")
		return fmt.Errorf("failed to create promo: %w", err)
	}

	r.logger.Debug().Int64("promo_id", promo.ID).Msg("promo created successfully")

	return nil
}

// Update overwrites the stored fields of an existing promo.
// Returns model.ErrPromoNotFound if no row matches.
func (r *promoRepository) Update(ctx context.Context, promo *model.Promo) error {
	query := `
		UPDATE promos
		SET judul = $2, harga = $3, deskripsi_1 = $4, deskripsi_2 = $5,
			kelebihan_1 = $6, kelebihan_2 = $7, kelebihan_3 = $8, image = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		promo.ID,
		promo.Judul,
		promo.Harga,
		promo.Deskripsi1,
		promo.Deskripsi2,
		promo.Kelebihan1,
		promo.Kelebihan2,
		promo.Kelebihan3,
		promo.Image,
	).Scan(&promo.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("promo_id", promo.ID).Msg("promo not found for update")
			return model.ErrPromoNotFound
		}
		r.logger.Error().Err(err).Int64("promo_id", promo.ID).Msg("failed to update promo")
		return fmt.Errorf("failed to update promo: %w", err)
	}

	r.logger.Debug().Int64("promo_id", promo.ID).Msg("promo updated successfully")

	return nil
}

// Delete removes a promo by its ID.
// Returns model.ErrPromoNotFound if no row matches.
func (r *promoRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM promos WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("promo_id", id).Msg("failed to delete promo")
		return fmt.Errorf("failed to delete promo: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPromoNotFound
	}

	r.logger.Debug().Int64("promo_id", id).Msg("promo deleted successfully")

	return nil
}
