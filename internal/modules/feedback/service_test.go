package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"laundryhub/internal/domain"
	"laundryhub/internal/repository"
)

type mockFeedbackRepo struct {
	mock.Mock
}

func (m *mockFeedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	return m.Called(ctx, f).Error(0)
}

func (m *mockFeedbackRepo) List(ctx context.Context) ([]domain.Feedback, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

func (m *mockFeedbackRepo) ListByOrder(ctx context.Context, orderID int64) ([]domain.Feedback, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]domain.Feedback), args.Error(1)
}

func (m *mockFeedbackRepo) Statistics(ctx context.Context) (*repository.FeedbackStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(*repository.FeedbackStats), args.Error(1)
}

type mockOrderReader struct {
	mock.Mock
}

func (m *mockOrderReader) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func customerCaller(profileID int64) domain.Capability {
	return domain.Capability{UserID: 10, Profile: domain.ProfileCustomer, ProfileID: profileID}
}

func TestCreateFeedback_OwnOrder(t *testing.T) {
	repo := new(mockFeedbackRepo)
	orders := new(mockOrderReader)
	svc := NewService(repo, orders)

	orders.On("GetByID", mock.Anything, int64(5)).Return(&domain.Order{ID: 5, CustomerID: 3}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(f *domain.Feedback) bool {
		return f.CustomerID == 3 && f.OrderID == 5 && f.Rating == 4
	})).Return(nil)

	f, err := svc.Create(context.Background(), customerCaller(3), CreateFeedbackRequest{
		OrderID: 5,
		Rating:  4,
		Comment: "quick turnaround",
	})

	assert.NoError(t, err)
	assert.Equal(t, "quick turnaround", f.Comment)
	repo.AssertExpectations(t)
}

func TestCreateFeedback_RatingOutOfRange(t *testing.T) {
	svc := NewService(new(mockFeedbackRepo), new(mockOrderReader))

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), customerCaller(3), CreateFeedbackRequest{OrderID: 5, Rating: rating})
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestCreateFeedback_StaffCannotPost(t *testing.T) {
	svc := NewService(new(mockFeedbackRepo), new(mockOrderReader))

	caller := domain.Capability{UserID: 2, Profile: domain.ProfileStaff, ProfileID: 1}
	_, err := svc.Create(context.Background(), caller, CreateFeedbackRequest{OrderID: 5, Rating: 5})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateFeedback_OtherCustomersOrder(t *testing.T) {
	repo := new(mockFeedbackRepo)
	orders := new(mockOrderReader)
	svc := NewService(repo, orders)

	orders.On("GetByID", mock.Anything, int64(5)).Return(&domain.Order{ID: 5, CustomerID: 99}, nil)

	_, err := svc.Create(context.Background(), customerCaller(3), CreateFeedbackRequest{OrderID: 5, Rating: 5})

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Create")
}

func TestCreateFeedback_OrderNotFound(t *testing.T) {
	orders := new(mockOrderReader)
	svc := NewService(new(mockFeedbackRepo), orders)

	orders.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), customerCaller(3), CreateFeedbackRequest{OrderID: 5, Rating: 5})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatistics_PassesThrough(t *testing.T) {
	repo := new(mockFeedbackRepo)
	svc := NewService(repo, new(mockOrderReader))

	stats := &repository.FeedbackStats{AverageRating: 4.5, TotalFeedbacks: 2, Distribution: map[int]int64{4: 1, 5: 1}}
	repo.On("Statistics", mock.Anything).Return(stats, nil)

	got, err := svc.Statistics(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 4.5, got.AverageRating)
}
