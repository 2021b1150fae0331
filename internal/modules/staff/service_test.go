package staff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"laundryhub/internal/domain"
)

type mockStaffRepo struct {
	mock.Mock
}

func (m *mockStaffRepo) Create(ctx context.Context, s *domain.Staff) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStaffRepo) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *mockStaffRepo) List(ctx context.Context) ([]domain.Staff, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Staff), args.Error(1)
}

func (m *mockStaffRepo) Update(ctx context.Context, s *domain.Staff) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockStaffRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestCreateStaff_Valid(t *testing.T) {
	repo := new(mockStaffRepo)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Staff) bool {
		return s.Role == domain.RoleWasher && s.IsActive
	})).Return(nil)

	st, err := svc.Create(context.Background(), CreateStaffRequest{Name: "  Ada  ", Role: "washer"})

	assert.NoError(t, err)
	assert.Equal(t, "Ada", st.Name)
	repo.AssertExpectations(t)
}

func TestCreateStaff_UnknownRole(t *testing.T) {
	repo := new(mockStaffRepo)
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateStaffRequest{Name: "Ada", Role: "janitor"})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Create")
}

func TestUpdateStaff_RoleStaysFixed(t *testing.T) {
	repo := new(mockStaffRepo)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, int64(4)).
		Return(&domain.Staff{ID: 4, Name: "Ada", Role: domain.RoleWasher, IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.Staff) bool {
		return s.Role == domain.RoleWasher && s.Phone == "0801" && !s.IsActive
	})).Return(nil)

	phone := "0801"
	active := false
	got, err := svc.Update(context.Background(), 4, UpdateStaffRequest{Phone: &phone, IsActive: &active})

	assert.NoError(t, err)
	assert.Equal(t, domain.RoleWasher, got.Role)
	repo.AssertExpectations(t)
}

func TestUpdateStaff_NotFound(t *testing.T) {
	repo := new(mockStaffRepo)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	name := "Ada"
	_, err := svc.Update(context.Background(), 9, UpdateStaffRequest{Name: &name})

	assert.ErrorIs(t, err, ErrNotFound)
}
