package service

import (
	"context"
	"io"

	"promo-admin/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPromoRepository is a mock implementation of PromoRepository.
type MockPromoRepository struct {
	mock.Mock
}

func (m *MockPromoRepository) List(ctx context.Context) ([]model.Promo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Promo), args.Error(1)
}

func (m *MockPromoRepository) GetByID(ctx context.Context, id int64) (*model.Promo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Promo), args.Error(1)
}

func (m *MockPromoRepository) Create(ctx context.Context, promo *model.Promo) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}

func (m *MockPromoRepository) Update(ctx context.Context, promo *model.Promo) error {
	args := m.Called(ctx, promo)
	return args.Error(0)
}

func (m *MockPromoRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMenuRepository is a mock implementation of MenuRepository.
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) List(ctx context.Context) ([]model.Menu, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Menu), args.Error(1)
}

func (m *MockMenuRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Menu, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Menu), args.Error(1)
}

func (m *MockMenuRepository) Create(ctx context.Context, menu *model.Menu) error {
	args := m.Called(ctx, menu)
	return args.Error(0)
}

func (m *MockMenuRepository) Update(ctx context.Context, menu *model.Menu) error {
	args := m.Called(ctx, menu)
	return args.Error(0)
}

func (m *MockMenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStore is a mock implementation of storage.Store that records the bytes it was given.
type MockStore struct {
	mock.Mock
	received []byte
}

func (m *MockStore) Put(ctx context.Context, name string, body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.received = data
	args := m.Called(ctx, name, contentType)
	return args.String(0), args.Error(1)
}
