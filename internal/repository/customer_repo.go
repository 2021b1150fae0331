package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"laundryhub/internal/domain"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

type customerModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    *int64    `gorm:"column:user_id;index"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email;uniqueIndex;size:254"`
	Phone     string    `gorm:"column:phone;size:20"`
	Address   string    `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (customerModel) TableName() string { return "customers" }

func toDomainCustomer(m customerModel) *domain.Customer {
	return &domain.Customer{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
	}
}

func toCustomerModel(c *domain.Customer) customerModel {
	return customerModel{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	m := toCustomerModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCustomer(m)
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var m customerModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCustomer(m), nil
}

func (r *CustomerRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error) {
	var m customerModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCustomer(m), nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	var ms []customerModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Customer, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainCustomer(m))
	}
	return out, nil
}

// UpdateContact changes contact info only; identity fields stay as
// created.
func (r *CustomerRepository) UpdateContact(ctx context.Context, id int64, name, phone, address string) error {
	return r.db.WithContext(ctx).Model(&customerModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "phone": phone, "address": address}).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	// orders (and through them items, invoices, payments, receipts)
	// cascade with their owner
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orderIDs []int64
		if err := tx.Model(&orderModel{}).Where("customer_id = ?", id).Pluck("id", &orderIDs).Error; err != nil {
			return err
		}
		for _, oid := range orderIDs {
			if err := deleteOrderCascade(tx, oid); err != nil {
				return err
			}
		}
		if err := tx.Where("customer_id = ?", id).Delete(&feedbackModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&customerModel{}, id).Error
	})
}
