package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"))

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.NotEmpty(t, parts[4], "salt")
			require.NotEmpty(t, parts[5], "key")

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	hash1, err := HashPassword("samepassword")
	require.NoError(t, err)
	hash2, err := HashPassword("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2)
	require.NoError(t, VerifyPassword("samepassword", hash1))
	require.NoError(t, VerifyPassword("samepassword", hash2))
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{
		"wrong-password",
		"Correct-Password",
		"correct-password ",
		"",
		strings.Repeat("x", 10000),
	} {
		require.ErrorIs(t, VerifyPassword(wrong, hash), ErrPasswordMismatch, "password %q", wrong)
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, VerifyPassword("test-password", tt.hash), ErrInvalidHash)
		})
	}
}

func TestVerifyPassword_HonoursEncodedParams(t *testing.T) {
	cheap := Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}

	hash, err := cheap.Hash("legacy")
	require.NoError(t, err)
	require.Contains(t, hash, "m=8192,t=1,p=1")

	require.NoError(t, VerifyPassword("legacy", hash))
	require.ErrorIs(t, VerifyPassword("other", hash), ErrPasswordMismatch)
}

func TestVerifyPassword_PepperChangeBreaksHash(t *testing.T) {
	hash, err := HashPassword("peppered")
	require.NoError(t, err)

	orig, err := Pepper()
	require.NoError(t, err)
	t.Cleanup(func() { SetPepper(orig) })

	SetPepper("a-different-pepper")
	require.ErrorIs(t, VerifyPassword("peppered", hash), ErrPasswordMismatch)
}

func TestPepper_PersistsToFile(t *testing.T) {
	orig, err := Pepper()
	require.NoError(t, err)
	t.Cleanup(func() { SetPepper(orig) })

	path := filepath.Join(t.TempDir(), "nested", "pepper")
	SetPepperPath(path)

	first, err := Pepper()
	require.NoError(t, err)
	require.NotEmpty(t, first)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, first, string(raw))

	SetPepperPath(path)
	second, err := Pepper()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestBurnPasswordCheck(t *testing.T) {
	require.NotPanics(t, func() { BurnPasswordCheck("anything") })
}
