package repository

import (
	"gorm.io/gorm"

	"laundryhub/internal/domain"
)

// Migrate creates or updates the schema for every table the repositories
// touch. Called from cmd/seed and from test setup; production postgres is
// expected to be migrated the same way before first boot.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&domain.RefreshToken{},
		&customerModel{},
		&staffModel{},
		&garmentTypeModel{},
		&serviceTypeModel{},
		&orderModel{},
		&orderItemModel{},
		&invoiceModel{},
		&paymentModel{},
		&receiptModel{},
		&feedbackModel{},
	)
}
