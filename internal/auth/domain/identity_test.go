package domain_test

import (
	"testing"
	"time"

	"github.com/hibritu/hirehub/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestPendingSecretExpired(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	var none *domain.PendingSecret
	require.True(t, none.Expired(now))

	p := &domain.PendingSecret{Hash: "h", ExpiresAt: now}
	require.False(t, p.Expired(now), "expiry instant itself is still valid")
	require.True(t, p.Expired(now.Add(time.Nanosecond)))
}

func TestMarkVerifiedIsMonotonic(t *testing.T) {
	first := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	id := domain.Identity{PendingOTP: &domain.PendingSecret{Hash: "h", ExpiresAt: first}}

	require.False(t, id.IsVerified())
	id.MarkVerified(first)
	require.True(t, id.IsVerified())
	require.Nil(t, id.PendingOTP)

	id.MarkVerified(first.Add(time.Hour))
	require.Equal(t, first, *id.VerifiedAt)
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "alice@x.com", domain.NormalizeEmail("  Alice@X.COM "))
}
