package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"laundryhub/internal/domain"
)

// CustomerRepository covers walk-in customer records as well as those
// linked to user accounts.
type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	UpdateContact(ctx context.Context, id int64, name, phone, address string) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo CustomerRepository
}

func NewService(repo CustomerRepository) *Service {
	return &Service{repo: repo}
}

// Create registers a walk-in customer with no user account. Customers
// who sign up themselves come through the auth module instead.
func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error) {
	c := &domain.Customer{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: time.Now().UTC(),
	}
	if c.Name == "" {
		return nil, ErrValidation
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*domain.Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if err := s.repo.UpdateContact(ctx, c.ID, c.Name, c.Phone, c.Address); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the customer together with their orders and billing
// history.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
