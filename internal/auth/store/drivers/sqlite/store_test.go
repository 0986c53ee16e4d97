package sqlite_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hibritu/hirehub/internal/auth/domain"
	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/internal/auth/store/drivers/sqlite"
	"github.com/hibritu/hirehub/pkg/idx"
	"github.com/hibritu/hirehub/pkg/role"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var now = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func newIdentity(email string, r role.Role) domain.Identity {
	return domain.Identity{
		ID:           idx.New().String(),
		Email:        email,
		Name:         "Test",
		PasswordHash: "$argon2id$dummy",
		Role:         r,
		PendingOTP:   &domain.PendingSecret{Hash: "otp-" + email, ExpiresAt: now.Add(30 * time.Minute)},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestCreateAndGetIdentity(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	in := newIdentity("alice@x.com", role.JobSeeker)
	require.NoError(t, s.Identities().CreateIdentity(ctx, in))

	byID, err := s.Identities().GetIdentityByID(ctx, in.ID)
	require.NoError(t, err)
	require.Equal(t, in.Email, byID.Email)
	require.Equal(t, role.JobSeeker, byID.Role)
	require.False(t, byID.IsVerified())
	require.NotNil(t, byID.PendingOTP)
	require.Equal(t, "otp-alice@x.com", byID.PendingOTP.Hash)
	require.True(t, in.PendingOTP.ExpiresAt.Equal(byID.PendingOTP.ExpiresAt))
	require.Nil(t, byID.PendingReset)

	byEmail, err := s.Identities().GetIdentityByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Equal(t, in.ID, byEmail.ID)

	_, err = s.Identities().GetIdentityByEmail(ctx, "bob@x.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateIdentityDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Identities().CreateIdentity(ctx, newIdentity("alice@x.com", role.JobSeeker)))
	err := s.Identities().CreateIdentity(ctx, newIdentity("alice@x.com", role.Employer))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestSaveIdentity(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	id := newIdentity("alice@x.com", role.JobSeeker)
	require.NoError(t, s.Identities().CreateIdentity(ctx, id))

	t.Run("verification and reset", func(t *testing.T) {
		id.MarkVerified(now.Add(time.Minute))
		id.PendingReset = &domain.PendingSecret{Hash: "reset-fp", ExpiresAt: now.Add(time.Hour)}
		id.UpdatedAt = now.Add(time.Minute)
		require.NoError(t, s.Identities().SaveIdentity(ctx, id))

		got, err := s.Identities().GetIdentityByResetTokenHash(ctx, "reset-fp")
		require.NoError(t, err)
		require.Equal(t, id.ID, got.ID)
		require.True(t, got.IsVerified())
		require.Nil(t, got.PendingOTP)
	})

	t.Run("verified_at is never cleared", func(t *testing.T) {
		stale := id
		stale.VerifiedAt = nil
		require.NoError(t, s.Identities().SaveIdentity(ctx, stale))

		got, err := s.Identities().GetIdentityByID(ctx, id.ID)
		require.NoError(t, err)
		require.True(t, got.IsVerified())
	})

	t.Run("clearing reset", func(t *testing.T) {
		id.PendingReset = nil
		require.NoError(t, s.Identities().SaveIdentity(ctx, id))

		_, err := s.Identities().GetIdentityByResetTokenHash(ctx, "reset-fp")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		ghost := newIdentity("ghost@x.com", role.JobSeeker)
		require.ErrorIs(t, s.Identities().SaveIdentity(ctx, ghost), store.ErrNotFound)
	})
}

func TestCountByRole(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	n, err := s.Identities().CountByRole(ctx, role.Admin)
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, s.Identities().CreateIdentity(ctx, newIdentity("root@x.com", role.Admin)))
	require.NoError(t, s.Identities().CreateIdentity(ctx, newIdentity("a@x.com", role.JobSeeker)))

	n, err = s.Identities().CountByRole(ctx, role.Admin)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestSecondAdminIsRejected(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Identities().CreateIdentity(ctx, newIdentity("root@x.com", role.Admin)))
	err := s.Identities().CreateIdentity(ctx, newIdentity("root2@x.com", role.Admin))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	n, err := s.Identities().CountByRole(ctx, role.Admin)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestClearExpiredPending(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	old := newIdentity("old@x.com", role.JobSeeker)
	old.PendingOTP.ExpiresAt = now.Add(-48 * time.Hour)
	old.PendingReset = &domain.PendingSecret{Hash: "old-reset", ExpiresAt: now.Add(-48 * time.Hour)}
	fresh := newIdentity("fresh@x.com", role.JobSeeker)

	require.NoError(t, s.Identities().CreateIdentity(ctx, old))
	require.NoError(t, s.Identities().CreateIdentity(ctx, fresh))

	otps, resets, err := s.Identities().ClearExpiredPending(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 1, otps)
	require.EqualValues(t, 1, resets)

	got, err := s.Identities().GetIdentityByID(ctx, old.ID)
	require.NoError(t, err)
	require.Nil(t, got.PendingOTP)
	require.Nil(t, got.PendingReset)

	got, err = s.Identities().GetIdentityByID(ctx, fresh.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PendingOTP)
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	t.Run("rollback on error", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			require.NoError(t, tx.Identities().CreateIdentity(ctx, newIdentity("tmp@x.com", role.JobSeeker)))
			return store.ErrNotFound
		})
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.Identities().GetIdentityByEmail(ctx, "tmp@x.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("commit", func(t *testing.T) {
		require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Identities().CreateIdentity(ctx, newIdentity("kept@x.com", role.JobSeeker))
		}))

		_, err := s.Identities().GetIdentityByEmail(ctx, "kept@x.com")
		require.NoError(t, err)
	})

	t.Run("nested tx refused", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.WithTx(ctx, func(store.Tx) error { return nil })
		})
		require.ErrorIs(t, err, store.ErrNestedTx)
	})
}

func TestConcurrentSavesLeaveConsistentPair(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	id := newIdentity("race@x.com", role.JobSeeker)
	require.NoError(t, s.Identities().CreateIdentity(ctx, id))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WithTx(ctx, func(tx store.Tx) error {
				cur, err := tx.Identities().GetIdentityByID(ctx, id.ID)
				if err != nil {
					return err
				}
				cur.PendingOTP = &domain.PendingSecret{
					Hash:      "otp-" + string(rune('a'+i)),
					ExpiresAt: now.Add(time.Duration(i) * time.Minute),
				}
				return tx.Identities().SaveIdentity(ctx, cur)
			})
		}()
	}
	wg.Wait()

	got, err := s.Identities().GetIdentityByID(ctx, id.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PendingOTP)

	i := int(got.PendingOTP.Hash[len(got.PendingOTP.Hash)-1] - 'a')
	require.True(t, now.Add(time.Duration(i)*time.Minute).Equal(got.PendingOTP.ExpiresAt),
		"code and expiry come from the same writer")
}
