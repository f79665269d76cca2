package service

import (
	"comply/media-api/internal/errs"
	"comply/media-api/internal/model"
	"comply/media-api/internal/repository"
	"comply/media-api/pkg/security"
	"comply/media-api/pkg/validators"
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Session is what login and register hand back to the client
type Session struct {
	AccessToken string           `json:"access_token"`
	User        model.PublicUser `json:"user"`
}

type AuthService struct {
	users   *repository.UserRepository
	revoked *repository.RevocationRepository
	hasher  *security.Hasher
	tokens  *security.TokenIssuer

	dummyOnce sync.Once
	dummy     string
}

func NewAuthService(
	users *repository.UserRepository,
	revoked *repository.RevocationRepository,
	hasher *security.Hasher,
	tokens *security.TokenIssuer,
) *AuthService {
	return &AuthService{
		users:   users,
		revoked: revoked,
		hasher:  hasher,
		tokens:  tokens,
	}
}

// Login never tells an unknown email apart from a wrong password. An inactive
// account is only reported once the password matched.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			// Burn a verification so unknown emails take as long as known ones
			s.hasher.Verify(password, s.dummyDigest())
			return nil, errs.ErrInvalidCredentials
		}

		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, errs.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, errs.ErrInactiveAccount
	}

	return s.session(user)
}

// Register creates an active account with the user role and logs it in.
// Input is expected to be checked by validators.RegisterValidator.
func (s *AuthService) Register(ctx context.Context, in *validators.RegisterInput) (*Session, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	user := &model.User{
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         model.RoleUser,
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	zap.L().Debug("Registered new user", zap.String("userID", user.ID))

	return s.session(user)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*model.PublicUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pub := model.ToPublicView(user)
	return &pub, nil
}

// Logout puts the token on the revocation list until it would have expired
func (s *AuthService) Logout(ctx context.Context, claims *security.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return errs.ErrUnauthenticated
	}

	return s.revoked.Revoke(ctx, &model.RevokedToken{
		TokenID:   claims.ID,
		UserID:    claims.UserID(),
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

func (s *AuthService) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.revoked.IsRevoked(ctx, tokenID)
}

func (s *AuthService) session(user *model.User) (*Session, error) {
	token, _, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token, %w", err)
	}

	return &Session{
		AccessToken: token,
		User:        model.ToPublicView(user),
	}, nil
}

func (s *AuthService) dummyDigest() string {
	s.dummyOnce.Do(func() {
		d, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			zap.L().Warn("Failed to prepare dummy digest", zap.Error(err))
		}
		s.dummy = d
	})

	return s.dummy
}
