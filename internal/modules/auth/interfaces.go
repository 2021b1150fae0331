package auth

import (
	"context"

	"laundryhub/internal/domain"
)

// UserRepository covers only the methods the auth service needs.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	EmailExists(ctx context.Context, email string) (bool, error)
	RegisterCustomer(ctx context.Context, u *domain.User, c *domain.Customer) error
}

type CustomerRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Customer, error)
	UpdateContact(ctx context.Context, id int64, name, phone, address string) error
}

type StaffRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Staff, error)
	Update(ctx context.Context, s *domain.Staff) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id int64, replacedByID *int64) error
}

type tokenIssuer interface {
	GenerateToken(userID int64, profile string, profileID int64, staffRole string, isManager bool) (string, error)
}
