package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"laundryhub/internal/domain"
)

type Service struct {
	users      UserRepository
	customers  CustomerRepository
	staff      StaffRepository
	tokens     RefreshTokenRepository
	jwt        tokenIssuer
	pepper     string
	refreshTTL time.Duration
}

func NewService(
	users UserRepository,
	customers CustomerRepository,
	staff StaffRepository,
	tokens RefreshTokenRepository,
	jwt tokenIssuer,
	pepper string,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:      users,
		customers:  customers,
		staff:      staff,
		tokens:     tokens,
		jwt:        jwt,
		pepper:     pepper,
		refreshTTL: refreshTTL,
	}
}

// Register creates a user account with its customer profile and logs the
// new user straight in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         req.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	customer := &domain.Customer{
		Name:      req.Name,
		Email:     email,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: now,
	}

	if err := s.users.RegisterCustomer(ctx, user, customer); err != nil {
		return nil, err
	}

	profile := domain.AccountProfile{Kind: domain.ProfileCustomer, Customer: customer}
	return s.issueTokens(ctx, user, profile)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.ResolveProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user, profile)
}

// Refresh rotates the refresh token: the presented token is revoked and
// replaced, and a fresh access token is minted against the account's
// current profile.
func (s *Service) Refresh(ctx context.Context, rawToken string) (*AuthResponse, error) {
	t, err := s.tokens.GetByHash(ctx, s.hashToken(rawToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if t.IsRevoked() || t.IsExpired(time.Now().UTC()) {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, t.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	profile, err := s.ResolveProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp, newID, err := s.issueTokensWithID(ctx, user, profile)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Revoke(ctx, t.ID, &newID); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	t, err := s.tokens.GetByHash(ctx, s.hashToken(rawToken))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return s.tokens.Revoke(ctx, t.ID, nil)
}

// ResolveProfile decides once which kind of account this is: a customer,
// a staff member, or a bare user (admin accounts).
func (s *Service) ResolveProfile(ctx context.Context, userID int64) (domain.AccountProfile, error) {
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err == nil {
		return domain.AccountProfile{Kind: domain.ProfileCustomer, Customer: customer}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AccountProfile{}, err
	}

	staff, err := s.staff.GetByUserID(ctx, userID)
	if err == nil {
		return domain.AccountProfile{Kind: domain.ProfileStaff, Staff: staff}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AccountProfile{}, err
	}

	return domain.AccountProfile{Kind: domain.ProfileNone}, nil
}

func (s *Service) Profile(ctx context.Context, userID int64) (*domain.User, domain.AccountProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.AccountProfile{}, ErrNotFound
		}
		return nil, domain.AccountProfile{}, err
	}
	profile, err := s.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, domain.AccountProfile{}, err
	}
	user.PasswordHash = ""
	return user, profile, nil
}

// UpdateProfile changes contact info on the account and its profile.
// Identity fields beyond name/email are immutable.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, domain.AccountProfile, error) {
	user, profile, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, domain.AccountProfile{}, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, domain.AccountProfile{}, err
	}

	switch profile.Kind {
	case domain.ProfileCustomer:
		c := profile.Customer
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Phone != nil {
			c.Phone = *req.Phone
		}
		if req.Address != nil {
			c.Address = *req.Address
		}
		if err := s.customers.UpdateContact(ctx, c.ID, c.Name, c.Phone, c.Address); err != nil {
			return nil, domain.AccountProfile{}, err
		}
	case domain.ProfileStaff:
		st := profile.Staff
		if req.Name != nil {
			st.Name = *req.Name
		}
		if req.Phone != nil {
			st.Phone = *req.Phone
		}
		if err := s.staff.Update(ctx, st); err != nil {
			return nil, domain.AccountProfile{}, err
		}
	}

	return user, profile, nil
}

func (s *Service) issueTokens(ctx context.Context, user *domain.User, profile domain.AccountProfile) (*AuthResponse, error) {
	resp, _, err := s.issueTokensWithID(ctx, user, profile)
	return resp, err
}

func (s *Service) issueTokensWithID(ctx context.Context, user *domain.User, profile domain.AccountProfile) (*AuthResponse, int64, error) {
	profileID, staffRole := int64(0), ""
	isManager := user.IsSuperuser
	switch profile.Kind {
	case domain.ProfileCustomer:
		profileID = profile.Customer.ID
	case domain.ProfileStaff:
		profileID = profile.Staff.ID
		staffRole = string(profile.Staff.Role)
		isManager = isManager || profile.Staff.Role == domain.RoleManager
	}

	access, err := s.jwt.GenerateToken(user.ID, string(profile.Kind), profileID, staffRole, isManager)
	if err != nil {
		return nil, 0, err
	}

	raw, err := s.newRawToken()
	if err != nil {
		return nil, 0, err
	}
	rt := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: s.hashToken(raw),
		JTI:       uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(s.refreshTTL),
	}
	if err := s.tokens.Create(ctx, rt); err != nil {
		return nil, 0, err
	}

	out := *user
	out.PasswordHash = ""
	return &AuthResponse{
		User:    out,
		Profile: profile,
		Tokens:  TokenPair{Access: access, Refresh: raw},
	}, rt.ID, nil
}

func (s *Service) newRawToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *Service) hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw + s.pepper))
	return hex.EncodeToString(sum[:])
}
