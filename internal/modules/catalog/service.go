package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"laundryhub/internal/domain"
)

// CatalogRepository is the persistence surface for garment and service
// types.
type CatalogRepository interface {
	CreateGarmentType(ctx context.Context, g *domain.GarmentType) error
	GetGarmentType(ctx context.Context, id int64) (*domain.GarmentType, error)
	ListGarmentTypes(ctx context.Context) ([]domain.GarmentType, error)
	UpdateGarmentType(ctx context.Context, g *domain.GarmentType) error
	DeleteGarmentType(ctx context.Context, id int64) error

	CreateServiceType(ctx context.Context, s *domain.ServiceType) error
	GetServiceType(ctx context.Context, id int64) (*domain.ServiceType, error)
	ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error)
	UpdateServiceType(ctx context.Context, s *domain.ServiceType) error
	DeleteServiceType(ctx context.Context, id int64) error
}

type Service struct {
	repo CatalogRepository
}

func NewService(repo CatalogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateGarmentType(ctx context.Context, req CreateGarmentTypeRequest) (*domain.GarmentType, error) {
	if req.BasePrice.IsNegative() {
		return nil, fmt.Errorf("%w: base_price must not be negative", ErrValidation)
	}
	g := &domain.GarmentType{
		Name:        req.Name,
		BasePrice:   req.BasePrice.Round(2),
		Description: req.Description,
	}
	if err := s.repo.CreateGarmentType(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) GetGarmentType(ctx context.Context, id int64) (*domain.GarmentType, error) {
	g, err := s.repo.GetGarmentType(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return g, nil
}

func (s *Service) ListGarmentTypes(ctx context.Context) ([]domain.GarmentType, error) {
	return s.repo.ListGarmentTypes(ctx)
}

// UpdateGarmentType changes the catalog entry only. Prices already frozen
// into order items are not touched.
func (s *Service) UpdateGarmentType(ctx context.Context, id int64, req UpdateGarmentTypeRequest) (*domain.GarmentType, error) {
	g, err := s.repo.GetGarmentType(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.BasePrice != nil {
		if req.BasePrice.IsNegative() {
			return nil, fmt.Errorf("%w: base_price must not be negative", ErrValidation)
		}
		g.BasePrice = req.BasePrice.Round(2)
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if err := s.repo.UpdateGarmentType(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) DeleteGarmentType(ctx context.Context, id int64) error {
	return mapDeleteErr(s.repo.DeleteGarmentType(ctx, id))
}

func (s *Service) CreateServiceType(ctx context.Context, req CreateServiceTypeRequest) (*domain.ServiceType, error) {
	if err := validateMultiplier(req.PriceMultiplier); err != nil {
		return nil, err
	}
	t := &domain.ServiceType{
		Name:            req.Name,
		PriceMultiplier: req.PriceMultiplier,
		Description:     req.Description,
	}
	if err := s.repo.CreateServiceType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) GetServiceType(ctx context.Context, id int64) (*domain.ServiceType, error) {
	t, err := s.repo.GetServiceType(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return t, nil
}

func (s *Service) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	return s.repo.ListServiceTypes(ctx)
}

func (s *Service) UpdateServiceType(ctx context.Context, id int64, req UpdateServiceTypeRequest) (*domain.ServiceType, error) {
	t, err := s.repo.GetServiceType(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.PriceMultiplier != nil {
		if err := validateMultiplier(*req.PriceMultiplier); err != nil {
			return nil, err
		}
		t.PriceMultiplier = *req.PriceMultiplier
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if err := s.repo.UpdateServiceType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteServiceType(ctx context.Context, id int64) error {
	return mapDeleteErr(s.repo.DeleteServiceType(ctx, id))
}

func validateMultiplier(m decimal.Decimal) error {
	if m.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: price_multiplier must be positive", ErrValidation)
	}
	return nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func mapDeleteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInUse
	default:
		return err
	}
}
