package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"library-catalog/internal/domains/user"
	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/shared/auth"
	"library-catalog/pkg/cache"
	"library-catalog/pkg/jwt"
)

const (
	sessionStore      = "session store"
	revokedKeyPrefix  = "session:revoked:"
	defaultBcryptCost = 12
)

// localProvider implement user.IdentityProvider:
// bcrypt hash trong bảng users, session là JWT, sign-out lưu jti trong Redis
type localProvider struct {
	repo    user.Repository
	tokens  *jwt.Manager
	revoked cache.Cache
	cost    int
}

// NewLocalProvider tạo identity provider instance
func NewLocalProvider(repo user.Repository, tokens *jwt.Manager, revoked cache.Cache) user.IdentityProvider {
	return &localProvider{
		repo:    repo,
		tokens:  tokens,
		revoked: revoked,
		cost:    defaultBcryptCost,
	}
}

func (p *localProvider) SignUp(ctx context.Context, email, password string) (*user.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// bcrypt cost = 12: balance giữa security và performance
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := p.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Msg("user registered")
	return u.Account(), nil
}

func (p *localProvider) SignIn(ctx context.Context, email, password string) (*user.Session, error) {
	u, err := p.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	// CompareHashAndPassword is constant-time
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	token, claims, err := p.tokens.GenerateSessionToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, err
	}

	return &user.Session{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		Account:   u.Account(),
	}, nil
}

func (p *localProvider) Verify(ctx context.Context, token string) (*auth.Caller, error) {
	claims, err := p.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil, user.ErrInvalidToken
	}

	revoked, err := p.revoked.Exists(ctx, revokedKeyPrefix+claims.ID)
	if err != nil {
		log.Error().Err(err).Msg("session revocation lookup failed")
		return nil, apperror.External(sessionStore, "exists", err)
	}
	if revoked {
		return nil, user.ErrSessionRevoked
	}

	return &auth.Caller{
		UserID:       claims.UserID,
		Email:        claims.Email,
		SessionToken: token,
	}, nil
}

// SignOut: token đã invalid thì coi như đã sign-out
func (p *localProvider) SignOut(ctx context.Context, token string) error {
	claims, err := p.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := p.revoked.Set(ctx, revokedKeyPrefix+claims.ID, true, ttl); err != nil {
		log.Error().Err(err).Msg("session revocation write failed")
		return apperror.External(sessionStore, "set", err)
	}

	log.Info().Str("user_id", claims.UserID).Msg("user signed out")
	return nil
}

func (p *localProvider) DeleteAccount(ctx context.Context, accountID string) error {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return user.ErrUserNotFound
	}
	if err := p.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("user_id", accountID).Msg("user account deleted")
	return nil
}
