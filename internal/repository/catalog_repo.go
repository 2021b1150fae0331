package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"laundryhub/internal/domain"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type garmentTypeModel struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	Name        string          `gorm:"column:name;uniqueIndex;size:50"`
	BasePrice   decimal.Decimal `gorm:"column:base_price;type:decimal(10,2)"`
	Description string          `gorm:"column:description"`
}

func (garmentTypeModel) TableName() string { return "garment_types" }

type serviceTypeModel struct {
	ID              int64           `gorm:"column:id;primaryKey"`
	Name            string          `gorm:"column:name;uniqueIndex;size:20"`
	PriceMultiplier decimal.Decimal `gorm:"column:price_multiplier;type:decimal(4,2)"`
	Description     string          `gorm:"column:description"`
}

func (serviceTypeModel) TableName() string { return "service_types" }

func toDomainGarmentType(m garmentTypeModel) *domain.GarmentType {
	return &domain.GarmentType{
		ID:          m.ID,
		Name:        m.Name,
		BasePrice:   m.BasePrice,
		Description: m.Description,
	}
}

func toDomainServiceType(m serviceTypeModel) *domain.ServiceType {
	return &domain.ServiceType{
		ID:              m.ID,
		Name:            m.Name,
		PriceMultiplier: m.PriceMultiplier,
		Description:     m.Description,
	}
}

func (r *CatalogRepository) CreateGarmentType(ctx context.Context, g *domain.GarmentType) error {
	m := garmentTypeModel{Name: g.Name, BasePrice: g.BasePrice, Description: g.Description}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*g = *toDomainGarmentType(m)
	return nil
}

func (r *CatalogRepository) GetGarmentType(ctx context.Context, id int64) (*domain.GarmentType, error) {
	var m garmentTypeModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainGarmentType(m), nil
}

func (r *CatalogRepository) ListGarmentTypes(ctx context.Context) ([]domain.GarmentType, error) {
	var ms []garmentTypeModel
	tx := r.db.WithContext(ctx).Order("name").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.GarmentType, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainGarmentType(m))
	}
	return out, nil
}

func (r *CatalogRepository) UpdateGarmentType(ctx context.Context, g *domain.GarmentType) error {
	return r.db.WithContext(ctx).Model(&garmentTypeModel{}).
		Where("id = ?", g.ID).
		Updates(map[string]any{
			"name":        g.Name,
			"base_price":  g.BasePrice,
			"description": g.Description,
		}).Error
}

// DeleteGarmentType refuses to remove a garment type that is still
// referenced by order items (protected reference).
func (r *CatalogRepository) DeleteGarmentType(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&orderItemModel{}).Where("garment_type_id = ?", id).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return gorm.ErrForeignKeyViolated
		}
		res := tx.Delete(&garmentTypeModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *CatalogRepository) CreateServiceType(ctx context.Context, s *domain.ServiceType) error {
	m := serviceTypeModel{Name: s.Name, PriceMultiplier: s.PriceMultiplier, Description: s.Description}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainServiceType(m)
	return nil
}

func (r *CatalogRepository) GetServiceType(ctx context.Context, id int64) (*domain.ServiceType, error) {
	var m serviceTypeModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainServiceType(m), nil
}

func (r *CatalogRepository) ListServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	var ms []serviceTypeModel
	tx := r.db.WithContext(ctx).Order("name").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.ServiceType, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainServiceType(m))
	}
	return out, nil
}

func (r *CatalogRepository) UpdateServiceType(ctx context.Context, s *domain.ServiceType) error {
	return r.db.WithContext(ctx).Model(&serviceTypeModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":             s.Name,
			"price_multiplier": s.PriceMultiplier,
			"description":      s.Description,
		}).Error
}

// DeleteServiceType is protected the same way: orders keep their service
// type for the life of the order.
func (r *CatalogRepository) DeleteServiceType(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&orderModel{}).Where("service_type_id = ?", id).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return gorm.ErrForeignKeyViolated
		}
		res := tx.Delete(&serviceTypeModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
