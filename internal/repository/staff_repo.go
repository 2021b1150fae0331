package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"laundryhub/internal/domain"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

type staffModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	UserID        *int64    `gorm:"column:user_id;index"`
	Name          string    `gorm:"column:name"`
	Role          string    `gorm:"column:role;size:20;index"`
	Phone         string    `gorm:"column:phone;size:20"`
	AccountNumber *string   `gorm:"column:account_number;size:20"`
	IsActive      bool      `gorm:"column:is_active"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (staffModel) TableName() string { return "staff" }

func toDomainStaff(m staffModel) *domain.Staff {
	return &domain.Staff{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Role:          domain.StaffRole(m.Role),
		Phone:         m.Phone,
		AccountNumber: m.AccountNumber,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
	}
}

func toStaffModel(s *domain.Staff) staffModel {
	return staffModel{
		ID:            s.ID,
		UserID:        s.UserID,
		Name:          s.Name,
		Role:          string(s.Role),
		Phone:         s.Phone,
		AccountNumber: s.AccountNumber,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
	}
}

func (r *StaffRepository) Create(ctx context.Context, s *domain.Staff) error {
	m := toStaffModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainStaff(m)
	return nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	var m staffModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainStaff(m), nil
}

func (r *StaffRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Staff, error) {
	var m staffModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainStaff(m), nil
}

// GetActiveByIDAndRole resolves a staff member only when the role matches
// and the member is active; assignment depends on this exact lookup.
func (r *StaffRepository) GetActiveByIDAndRole(ctx context.Context, id int64, role domain.StaffRole) (*domain.Staff, error) {
	var m staffModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND role = ? AND is_active = ?", id, string(role), true).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainStaff(m), nil
}

func (r *StaffRepository) List(ctx context.Context) ([]domain.Staff, error) {
	var ms []staffModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Staff, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainStaff(m))
	}
	return out, nil
}

func (r *StaffRepository) Update(ctx context.Context, s *domain.Staff) error {
	return r.db.WithContext(ctx).Model(&staffModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":           s.Name,
			"phone":          s.Phone,
			"account_number": s.AccountNumber,
			"is_active":      s.IsActive,
		}).Error
}

// Delete removes a staff member and clears any washer/ironer slots that
// pointed at them (SET NULL semantics).
func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&orderModel{}).
			Where("assigned_washer_id = ?", id).
			Update("assigned_washer_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&orderModel{}).
			Where("assigned_ironer_id = ?", id).
			Update("assigned_ironer_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&staffModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
