package repository

import (
	"context"

	"promo-admin/internal/model"

	"github.com/google/uuid"
)

// PromoRepository defines the interface for promo data access operations.
type PromoRepository interface {
	// List retrieves all promos ordered by creation time, oldest first.
	List(ctx context.Context) ([]model.Promo, error)

	// GetByID retrieves a single promo by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Promo, error)

	// Create inserts a promo and fills in its ID and timestamps.
	Create(ctx context.Context, promo *model.Promo) error

	// Update overwrites the stored fields of an existing promo.
	Update(ctx context.Context, promo *model.Promo) error

	// Delete removes a promo by its ID.
	Delete(ctx context.Context, id int64) error
}

// MenuRepository defines the interface for menu data access operations.
type MenuRepository interface {
	// List retrieves all menu items ordered by creation time, oldest first.
	List(ctx context.Context) ([]model.Menu, error)

	// GetByID retrieves a single menu item by its UUID. Returns nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Menu, error)

	// Create inserts a menu item under its caller-supplied id_menu.
	Create(ctx context.Context, menu *model.Menu) error

	// Update overwrites the fillable fields of an existing menu item.
	Update(ctx context.Context, menu *model.Menu) error

	// Delete removes a menu item by its UUID.
	Delete(ctx context.Context, id uuid.UUID) error
}
