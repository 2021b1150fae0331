package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"laundryhub/internal/domain"
)

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) CreateGarmentType(ctx context.Context, g *domain.GarmentType) error {
	return m.Called(ctx, g).Error(0)
}

func (m *mockCatalogRepo) GetGarmentType(ctx context.Context, id int64) (*domain.GarmentType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GarmentType), args.Error(1)
}

func (m *mockCatalogRepo) ListGarmentTypes(ctx context.Context) ([]domain.GarmentType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.GarmentType), args.Error(1)
}

func (m *mockCatalogRepo) UpdateGarmentType(ctx context.Context, g *domain.GarmentType) error {
	return m.Called(ctx, g).Error(0)
}

func (m *mockCatalogRepo) DeleteGarmentType(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCatalogRepo) CreateServiceType(ctx context.Context, s *domain.ServiceType) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockCatalogRepo) GetServiceType(ctx context.Context, id int64) (*domain.ServiceType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceType), args.Error(1)
}

func (m *mockCatalogRepo) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ServiceType), args.Error(1)
}

func (m *mockCatalogRepo) UpdateServiceType(ctx context.Context, s *domain.ServiceType) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockCatalogRepo) DeleteServiceType(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestCreateGarmentType_RoundsPrice(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewService(repo)

	repo.On("CreateGarmentType", mock.Anything, mock.MatchedBy(func(g *domain.GarmentType) bool {
		return g.BasePrice.Equal(decimal.RequireFromString("1000.00")) && g.BasePrice.Exponent() == -2
	})).Return(nil)

	g, err := svc.CreateGarmentType(context.Background(), CreateGarmentTypeRequest{
		Name:      "native_wear",
		BasePrice: decimal.RequireFromString("1000"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "native_wear", g.Name)
	repo.AssertExpectations(t)
}

func TestCreateGarmentType_NegativePrice(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewService(repo)

	_, err := svc.CreateGarmentType(context.Background(), CreateGarmentTypeRequest{
		Name:      "native_wear",
		BasePrice: decimal.RequireFromString("-1"),
	})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "CreateGarmentType")
}

func TestCreateServiceType_RejectsNonPositiveMultiplier(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewService(repo)

	_, err := svc.CreateServiceType(context.Background(), CreateServiceTypeRequest{
		Name:            "express",
		PriceMultiplier: decimal.Zero,
	})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "CreateServiceType")
}

func TestUpdateServiceType_PartialUpdate(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewService(repo)

	existing := &domain.ServiceType{
		ID:              2,
		Name:            "express",
		PriceMultiplier: decimal.RequireFromString("2.0"),
		Description:     "same day",
	}
	repo.On("GetServiceType", mock.Anything, int64(2)).Return(existing, nil)
	repo.On("UpdateServiceType", mock.Anything, mock.MatchedBy(func(s *domain.ServiceType) bool {
		return s.PriceMultiplier.Equal(decimal.RequireFromString("2.5")) && s.Name == "express"
	})).Return(nil)

	mult := decimal.RequireFromString("2.5")
	got, err := svc.UpdateServiceType(context.Background(), 2, UpdateServiceTypeRequest{PriceMultiplier: &mult})

	assert.NoError(t, err)
	assert.Equal(t, "same day", got.Description)
	repo.AssertExpectations(t)
}

func TestUpdateGarmentType_NotFound(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewService(repo)

	repo.On("GetGarmentType", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	name := "agbada"
	_, err := svc.UpdateGarmentType(context.Background(), 99, UpdateGarmentTypeRequest{Name: &name})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteGarmentType_InUse(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewService(repo)

	repo.On("DeleteGarmentType", mock.Anything, int64(1)).Return(gorm.ErrForeignKeyViolated)

	err := svc.DeleteGarmentType(context.Background(), 1)

	assert.ErrorIs(t, err, ErrInUse)
}

func TestDeleteServiceType_NotFound(t *testing.T) {
	repo := new(mockCatalogRepo)
	svc := NewService(repo)

	repo.On("DeleteServiceType", mock.Anything, int64(7)).Return(gorm.ErrRecordNotFound)

	err := svc.DeleteServiceType(context.Background(), 7)

	assert.ErrorIs(t, err, ErrNotFound)
}
