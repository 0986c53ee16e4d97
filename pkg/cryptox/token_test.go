package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{"128-bit token", TokenSize128, 22},
		{"256-bit token", TokenSize256, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.wantLen)

			other, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, other)
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestFingerprintToken(t *testing.T) {
	fp := FingerprintToken("123456")
	require.Len(t, fp, 43)
	require.Equal(t, fp, FingerprintToken("123456"))
	require.NotEqual(t, fp, FingerprintToken("123457"))
}

func TestMatchFingerprint(t *testing.T) {
	fp := FingerprintToken("reset-token")

	require.True(t, MatchFingerprint("reset-token", fp))
	require.False(t, MatchFingerprint("reset-tokem", fp))
	require.False(t, MatchFingerprint("", fp))
	require.False(t, MatchFingerprint("reset-token", ""))
}
