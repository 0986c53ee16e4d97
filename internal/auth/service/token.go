package service

import (
	"context"
	"errors"
	"time"

	"github.com/hibritu/hirehub/internal/auth/domain"
	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/pkg/jwtx"
	"github.com/hibritu/hirehub/pkg/slogx"
)

// TokenService mints access/refresh pairs and exchanges refresh tokens.
type TokenService struct {
	Signer          jwtx.Signer
	RefreshVerifier jwtx.Verifier // must only accept typ=refresh
	Store           store.Store
	Issuer          string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	Clock           Clock
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL <= 0 {
		return jwtx.DefaultAccessTokenTTL
	}
	return s.AccessTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL <= 0 {
		return jwtx.DefaultRefreshTokenTTL
	}
	return s.RefreshTTL
}

// Issue signs a fresh pair for id. The claims carry the role and the email
// verification state as of now.
func (s *TokenService) Issue(id domain.Identity) (domain.TokenPair, error) {
	now := s.Clock.now()
	sub := jwtx.Subject{
		ID:            id.ID,
		Role:          id.Role,
		Email:         id.Email,
		EmailVerified: id.IsVerified(),
	}

	access, err := s.Signer.Sign(jwtx.NewClaims(sub, jwtx.TypeAccess, s.Issuer, s.accessTTL(), now))
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.Signer.Sign(jwtx.NewClaims(sub, jwtx.TypeRefresh, s.Issuer, s.refreshTTL(), now))
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL() / time.Second),
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair. The identity is
// re-read so a verification that happened since login shows up in the new
// claims. Any problem with the token is ErrInvalidRefresh.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, domain.Identity, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.RefreshVerifier.Verify(refreshToken)
	if err != nil {
		l.Info("refresh token rejected", "err", err)
		return domain.TokenPair{}, domain.Identity{}, ErrInvalidRefresh
	}

	id, err := s.Store.Identities().GetIdentityByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, domain.Identity{}, ErrInvalidRefresh
		}
		return domain.TokenPair{}, domain.Identity{}, err
	}

	pair, err := s.Issue(id)
	if err != nil {
		return domain.TokenPair{}, domain.Identity{}, err
	}
	return pair, id, nil
}
