package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"laundryhub/internal/domain"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

type feedbackModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	CustomerID int64     `gorm:"column:customer_id;index"`
	OrderID    int64     `gorm:"column:order_id;index"`
	Rating     int       `gorm:"column:rating"`
	Comment    string    `gorm:"column:comment"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (feedbackModel) TableName() string { return "feedback" }

func toDomainFeedback(m feedbackModel) *domain.Feedback {
	return &domain.Feedback{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		OrderID:    m.OrderID,
		Rating:     m.Rating,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	m := feedbackModel{
		CustomerID: f.CustomerID,
		OrderID:    f.OrderID,
		Rating:     f.Rating,
		Comment:    f.Comment,
		CreatedAt:  time.Now().UTC(),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*f = *toDomainFeedback(m)
	return nil
}

func (r *FeedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	var ms []feedbackModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Feedback, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainFeedback(m))
	}
	return out, nil
}

func (r *FeedbackRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.Feedback, error) {
	var ms []feedbackModel
	tx := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Feedback, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainFeedback(m))
	}
	return out, nil
}

type FeedbackStats struct {
	AverageRating  float64       `json:"average_rating"`
	TotalFeedbacks int64         `json:"total_feedbacks"`
	Distribution   map[int]int64 `json:"rating_distribution"`
}

func (r *FeedbackRepository) Statistics(ctx context.Context) (*FeedbackStats, error) {
	stats := &FeedbackStats{Distribution: make(map[int]int64)}
	db := r.db.WithContext(ctx)

	if err := db.Model(&feedbackModel{}).Count(&stats.TotalFeedbacks).Error; err != nil {
		return nil, err
	}
	if stats.TotalFeedbacks == 0 {
		return stats, nil
	}

	if err := db.Model(&feedbackModel{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&stats.AverageRating).Error; err != nil {
		return nil, err
	}

	type ratingCount struct {
		Rating int   `gorm:"column:rating"`
		Count  int64 `gorm:"column:count"`
	}
	var rows []ratingCount
	if err := db.Model(&feedbackModel{}).
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.Distribution[row.Rating] = row.Count
	}
	return stats, nil
}
