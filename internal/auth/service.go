package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/kelleauto/dealership-backend/internal/pkg/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid password")
	ErrTokenIssue         = apperror.New(http.StatusInternalServerError, "failed to generate token")
	ErrLogout             = apperror.New(http.StatusServiceUnavailable, "failed to end session")
)

// Session is the result of a successful admin login.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Service exchanges the shared admin password for session tokens and ends sessions.
type Service interface {
	Login(ctx context.Context, password string) (*Session, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type service struct {
	hasher       PasswordHasher
	passwordHash string
	jwt          *JWTManager
	revoker      Revoker
}

func NewService(hasher PasswordHasher, passwordHash string, jwtManager *JWTManager, revoker Revoker) Service {
	return &service{
		hasher:       hasher,
		passwordHash: passwordHash,
		jwt:          jwtManager,
		revoker:      revoker,
	}
}

func (s *service) Login(ctx context.Context, password string) (*Session, error) {
	if password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(s.passwordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.jwt.GenerateAdminToken()
	if err != nil {
		return nil, ErrTokenIssue.WithCause(err)
	}

	return &Session{
		AccessToken: token,
		ExpiresAt:   claims.Expiry(),
	}, nil
}

func (s *service) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, tokenID, expiresAt); err != nil {
		return ErrLogout.WithCause(err)
	}
	return nil
}
