package app

import (
	"fmt"
	"log/slog"

	"github.com/hibritu/hirehub/pkg/cryptox"
	"github.com/hibritu/hirehub/pkg/jwtx"
)

// InitTokenKeys builds the HS256 signer and the access and refresh
// verifiers from AUTH_JWT_SECRET.
//
// In dev an unset secret is replaced by a random one. Tokens issued by a
// previous process then stop verifying, which is fine locally and never
// acceptable elsewhere; Config.Validate refuses that outside dev.
func InitTokenKeys(cfg Config, logger *slog.Logger) (*jwtx.HS256Signer, *jwtx.HS256Verifier, error) {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		generated, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return nil, nil, fmt.Errorf("generate jwt secret: %w", err)
		}
		secret = []byte(generated)
		logger.Warn("AUTH_JWT_SECRET not set, using a per-process secret; tokens will not survive a restart")
	}

	signer, err := jwtx.NewHS256Signer(secret)
	if err != nil {
		return nil, nil, fmt.Errorf("create signer: %w", err)
	}
	verifier, err := jwtx.NewHS256Verifier(secret, jwtx.VerifyOptions{Issuer: cfg.Issuer})
	if err != nil {
		return nil, nil, fmt.Errorf("create verifier: %w", err)
	}

	logger.Info("token signer ready", "alg", signer.Alg(), "issuer", cfg.Issuer)
	return signer, verifier, nil
}
