package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"laundryhub/internal/domain"
)

// RefreshTokenRepository provides DB access for refresh tokens. Only
// SHA-256 hashes are ever stored or looked up.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Revoke marks a single token revoked, recording which token replaced it
// when this is a rotation.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id int64, replacedByID *int64) error {
	updates := map[string]any{"revoked_at": time.Now().UTC()}
	if replacedByID != nil {
		updates["replaced_by_id"] = *replacedByID
	}
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Updates(updates).Error
}

// PurgeExpired deletes tokens past their expiry and returns how many rows
// went away.
func (r *RefreshTokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now().UTC()).
		Delete(&domain.RefreshToken{})
	return tx.RowsAffected, tx.Error
}
