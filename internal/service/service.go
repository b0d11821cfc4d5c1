package service

import (
	"context"

	"promo-admin/internal/model"

	"github.com/google/uuid"
)

// PromoService defines operations for promo management.
type PromoService interface {
	// List retrieves all promos, oldest first.
	List(ctx context.Context) ([]model.Promo, error)

	// Get retrieves a single promo, or model.ErrPromoNotFound.
	Get(ctx context.Context, id int64) (*model.Promo, error)

	// Create validates the form and the required image, stores the image and inserts the promo.
	Create(ctx context.Context, form model.PromoForm, image *model.ImageUpload) (*model.Promo, error)

	// Update validates the form, stores the image if one was supplied and saves the promo.
	Update(ctx context.Context, id int64, form model.PromoForm, image *model.ImageUpload) (*model.Promo, error)

	// Delete removes a promo.
	Delete(ctx context.Context, id int64) error
}

// MenuService defines operations for menu management.
type MenuService interface {
	// List retrieves all menu items.
	List(ctx context.Context) ([]model.Menu, error)

	// Get retrieves a single menu item, or model.ErrMenuNotFound.
	Get(ctx context.Context, id uuid.UUID) (*model.Menu, error)

	// Create inserts a menu item under rawID, or under a freshly generated UUID when rawID is empty.
	// Only fillable keys of input are assigned.
	Create(ctx context.Context, rawID string, input map[string]string) (*model.Menu, error)

	// Update assigns the fillable keys present in input onto an existing menu item.
	Update(ctx context.Context, id uuid.UUID, input map[string]string) (*model.Menu, error)

	// Delete removes a menu item.
	Delete(ctx context.Context, id uuid.UUID) error
}
