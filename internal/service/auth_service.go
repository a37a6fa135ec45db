package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/issue-board/internal/auth"
	"github.com/spec-kit/issue-board/internal/config"
	"github.com/spec-kit/issue-board/internal/domain"
	"github.com/spec-kit/issue-board/internal/repository"
	"github.com/spec-kit/issue-board/internal/session"
	apperrors "github.com/spec-kit/issue-board/pkg/util/errorutil"
)

// AuthService coordinates registration and login flows. A login opens a
// session owning the caller's working-set stores; logout revokes the token
// and clears them.
type AuthService struct {
	users      repository.UserRepository
	sessions   *session.Manager
	tokenMgr   *auth.TokenManager
	revoked    *auth.RevocationList
	bcryptCost int
}

// AuthDependencies bundles collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Sessions   *session.Manager
	Revocation *auth.RevocationList
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		revoked:    deps.Revocation,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the configured manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates a new account with the given role and logs it in.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, time.Time, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("name, email, password required", nil)
	}
	if !role.Known() {
		return nil, "", time.Time{}, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return s.openSession(*user)
}

// Login authenticates a user and opens a fresh session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.openSession(*user)
}

// Logout revokes the presented token and ends its session, clearing the
// session's stores.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) {
	if claims == nil {
		return
	}
	if claims.ExpiresAt != nil {
		s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
	}
	s.sessions.End(claims.SessionID)
}

func (s *AuthService) openSession(user domain.User) (*domain.User, string, time.Time, error) {
	sess := s.sessions.Create(user)
	token, exp, err := s.tokenMgr.GenerateToken(user, sess.ID)
	if err != nil {
		s.sessions.End(sess.ID)
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return &user, token, exp, nil
}
