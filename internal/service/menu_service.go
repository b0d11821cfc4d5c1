package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"promo-admin/internal/model"
	"promo-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// menuService implements MenuService.
type menuService struct {
	menuRepo repository.MenuRepository
	logger   zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(menuRepo repository.MenuRepository, logger zerolog.Logger) MenuService {
	return &menuService{
		menuRepo: menuRepo,
		logger:   logger.With().Str("service", "menu").Logger(),
	}
}

// List retrieves all menu items.
func (s *menuService) List(ctx context.Context) ([]model.Menu, error) {
	menus, err := s.menuRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list menu")
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}

	s.logger.Debug().Int("count", len(menus)).Msg("retrieved menu")

	return menus, nil
}

// Get retrieves a single menu item, or model.ErrMenuNotFound.
func (s *menuService) Get(ctx context.Context, id uuid.UUID) (*model.Menu, error) {
	menu, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("id_menu", id.String()).Msg("failed to get menu")
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}

	if menu == nil {
		return nil, model.ErrMenuNotFound
	}

	return menu, nil
}

// Create inserts a menu item. An empty rawID gets a new random UUID.
func (s *menuService) Create(ctx context.Context, rawID string, input map[string]string) (*model.Menu, error) {
	id := uuid.New()
	if strings.TrimSpace(rawID) != "" {
		parsed, err := model.ParseMenuID(rawID)
		if err != nil {
			return nil, err
		}
		id = parsed
	}

	menu := &model.Menu{IDMenu: id}
	if err := s.fill(menu, input, true); err != nil {
		return nil, err
	}

	if err := s.menuRepo.Create(ctx, menu); err != nil {
		if errors.Is(err, model.ErrMenuExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("id_menu", id.String()).Msg("failed to create menu")
		return nil, fmt.Errorf("failed to create menu: %w", err)
	}

	s.logger.Info().Str("id_menu", id.String()).Msg("menu created")

	return menu, nil
}

// Update assigns the fillable keys present in input onto an existing item.
func (s *menuService) Update(ctx context.Context, id uuid.UUID, input map[string]string) (*model.Menu, error) {
	menu, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.fill(menu, input, false); err != nil {
		return nil, err
	}

	if err := s.menuRepo.Update(ctx, menu); err != nil {
		if errors.Is(err, model.ErrMenuNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("id_menu", id.String()).Msg("failed to update menu")
		return nil, fmt.Errorf("failed to update menu: %w", err)
	}

	s.logger.Info().Str("id_menu", id.String()).Msg("menu updated")

	return menu, nil
}

// Delete removes a menu item.
func (s *menuService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrMenuNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("id_menu", id.String()).Msg("failed to delete menu")
		return fmt.Errorf("failed to delete menu: %w", err)
	}

	s.logger.Info().Str("id_menu", id.String()).Msg("menu deleted")

	return nil
}

// fill mass-assigns input onto menu and validates the result. A new record
// must carry harga_menu since its zero value would pass validation.
func (s *menuService) fill(menu *model.Menu, input map[string]string, creating bool) error {
	verr := &model.ValidationError{}
	if _, ok := input["harga_menu"]; creating && !ok {
		verr.Add("harga_menu", "Kolom harga_menu wajib diisi.")
	}

	ignored, fillErr := menu.Fill(input)
	if len(ignored) > 0 {
		s.logger.Warn().
			Str("id_menu", menu.IDMenu.String()).
			Strs("ignored", ignored).
			Msg("ignored non-fillable menu attributes")
	}

	verr.Merge(fillErr)
	verr.Merge(menu.Validate())
	if !verr.Empty() {
		return verr
	}

	return nil
}
