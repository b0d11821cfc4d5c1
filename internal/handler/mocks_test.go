package handler

import (
	"context"
	"io"

	"promo-admin/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPromoService is a mock implementation of PromoService.
type MockPromoService struct {
	mock.Mock
	uploaded []byte
}

func (m *MockPromoService) List(ctx context.Context) ([]model.Promo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Promo), args.Error(1)
}

func (m *MockPromoService) Get(ctx context.Context, id int64) (*model.Promo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Promo), args.Error(1)
}

func (m *MockPromoService) Create(ctx context.Context, form model.PromoForm, image *model.ImageUpload) (*model.Promo, error) {
	m.readUpload(image)
	args := m.Called(ctx, form, uploadName(image))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Promo), args.Error(1)
}

func (m *MockPromoService) Update(ctx context.Context, id int64, form model.PromoForm, image *model.ImageUpload) (*model.Promo, error) {
	m.readUpload(image)
	args := m.Called(ctx, id, form, uploadName(image))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Promo), args.Error(1)
}

func (m *MockPromoService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPromoService) readUpload(image *model.ImageUpload) {
	if image != nil {
		m.uploaded, _ = io.ReadAll(image.Body)
	}
}

// uploadName lets expectations match on the file name only; "" means no upload.
func uploadName(image *model.ImageUpload) string {
	if image == nil {
		return ""
	}
	return image.Filename
}

// MockMenuService is a mock implementation of MenuService.
type MockMenuService struct {
	mock.Mock
}

func (m *MockMenuService) List(ctx context.Context) ([]model.Menu, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Menu), args.Error(1)
}

func (m *MockMenuService) Get(ctx context.Context, id uuid.UUID) (*model.Menu, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Menu), args.Error(1)
}

func (m *MockMenuService) Create(ctx context.Context, rawID string, input map[string]string) (*model.Menu, error) {
	args := m.Called(ctx, rawID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Menu), args.Error(1)
}

func (m *MockMenuService) Update(ctx context.Context, id uuid.UUID, input map[string]string) (*model.Menu, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Menu), args.Error(1)
}

func (m *MockMenuService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
