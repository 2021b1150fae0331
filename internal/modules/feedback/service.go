package feedback

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"laundryhub/internal/domain"
	"laundryhub/internal/repository"
)

type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) error
	List(ctx context.Context) ([]domain.Feedback, error)
	ListByOrder(ctx context.Context, orderID int64) ([]domain.Feedback, error)
	Statistics(ctx context.Context) (*repository.FeedbackStats, error)
}

type OrderReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}

type Service struct {
	repo   FeedbackRepository
	orders OrderReader
}

func NewService(repo FeedbackRepository, orders OrderReader) *Service {
	return &Service{repo: repo, orders: orders}
}

// Create records feedback from the calling customer on one of their own
// orders.
func (s *Service) Create(ctx context.Context, caller domain.Capability, req CreateFeedbackRequest) (*domain.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	if caller.Profile != domain.ProfileCustomer {
		return nil, ErrForbidden
	}

	order, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if order.CustomerID != caller.ProfileID {
		return nil, ErrForbidden
	}

	f := &domain.Feedback{
		CustomerID: caller.ProfileID,
		OrderID:    order.ID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Feedback, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByOrder(ctx context.Context, orderID int64) ([]domain.Feedback, error) {
	return s.repo.ListByOrder(ctx, orderID)
}

func (s *Service) Statistics(ctx context.Context) (*repository.FeedbackStats, error) {
	return s.repo.Statistics(ctx)
}
