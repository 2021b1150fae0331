package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"laundryhub/internal/domain"
)

type StaffRepository interface {
	Create(ctx context.Context, s *domain.Staff) error
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	List(ctx context.Context) ([]domain.Staff, error)
	Update(ctx context.Context, s *domain.Staff) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo StaffRepository
}

func NewService(repo StaffRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateStaffRequest) (*domain.Staff, error) {
	role := domain.StaffRole(req.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}
	st := &domain.Staff{
		Name:          strings.TrimSpace(req.Name),
		Role:          role,
		Phone:         req.Phone,
		AccountNumber: req.AccountNumber,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	}
	if st.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Staff, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return st, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Staff, error) {
	return s.repo.List(ctx)
}

// Update applies the mutable fields. The role a staff member was created
// with cannot change.
func (s *Service) Update(ctx context.Context, id int64, req UpdateStaffRequest) (*domain.Staff, error) {
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Phone != nil {
		st.Phone = *req.Phone
	}
	if req.AccountNumber != nil {
		st.AccountNumber = req.AccountNumber
	}
	if req.IsActive != nil {
		st.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Delete removes the staff member. Orders that referenced them keep
// running with the assignment slot cleared.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
