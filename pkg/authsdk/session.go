package authsdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// refreshBuffer is how long before expiry a session refreshes its token.
const refreshBuffer = 30 * time.Second

// ErrNoRefreshToken is returned when the access token has expired and the
// session cannot renew it.
var ErrNoRefreshToken = errors.New("authsdk: access token expired and no refresh token available")

// Session represents an authenticated session with automatic token refresh.
// All Session methods automatically handle token expiration and refresh when needed.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	user         UserInfo
}

func expiry(expiresIn int) time.Time {
	return time.Now().Add(time.Duration(expiresIn)*time.Second - refreshBuffer)
}

// newSession creates a new authenticated session from a login response.
func newSession(client *SDKClient, resp *LoginResponse) *Session {
	return &Session{
		client:       client,
		accessToken:  resp.AccessToken,
		refreshToken: resp.RefreshToken,
		expiresAt:    expiry(resp.ExpiresIn),
		user:         resp.User,
	}
}

// getValidToken returns a valid access token, automatically refreshing if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine may have refreshed)
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	if s.refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	resp, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = resp.AccessToken
	s.refreshToken = resp.RefreshToken
	s.expiresAt = expiry(resp.ExpiresIn)
	s.user = resp.User

	return s.accessToken, nil
}

// Me returns the identity of the session, fresh from the service.
func (s *Session) Me(ctx context.Context) (*UserInfo, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.Me(ctx, token)
}

// Handoff returns the application URL for the session's role, carrying
// the current access token.
func (s *Session) Handoff(ctx context.Context) (*HandoffResponse, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.Handoff(ctx, token)
}

// AccessToken returns the current access token without checking expiration.
// For most use cases, prefer using the Session methods which handle refresh automatically.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// User returns the identity as of the last login or refresh. It is empty
// for sessions built with NewSessionFromTokens until the first refresh.
func (s *Session) User() UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}
