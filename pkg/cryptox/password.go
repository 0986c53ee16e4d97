package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

var (
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
	ErrInvalidHash      = errors.New("cryptox: invalid hash format")
)

// Params are the argon2id cost parameters encoded into every hash.
type Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams follows the OWASP minimum for argon2id (19 MiB, t=2, p=1).
var DefaultParams = Params{
	Memory:      19 * 1024,
	Iterations:  2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// HashPassword hashes a password with DefaultParams and returns a PHC string:
//
//	$argon2id$v=19$m=19456,t=2,p=1$<salt>$<hash>
func HashPassword(password string) (string, error) {
	return DefaultParams.Hash(password)
}

// Hash hashes a password with p. A fresh random salt is drawn on every call.
func (p Params) Hash(password string) (string, error) {
	pep, err := Pepper()
	if err != nil {
		return "", err
	}

	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password+pep), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.Memory,
		p.Iterations,
		p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword reports whether password matches encodedHash. It returns nil
// on a match, ErrPasswordMismatch on a mismatch and ErrInvalidHash when the
// stored hash cannot be parsed. The comparison is constant time.
func VerifyPassword(password, encodedHash string) error {
	p, salt, want, err := decodeHash(encodedHash)
	if err != nil {
		return err
	}

	pep, err := Pepper()
	if err != nil {
		return err
	}

	got := argon2.IDKey([]byte(password+pep), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	if subtle.ConstantTimeCompare(got, want) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}

var dummyHash = sync.OnceValues(func() (string, error) {
	return HashPassword("hirehub-dummy-password")
})

// BurnPasswordCheck runs a full verification against a throwaway hash. Call it
// when the account being logged into does not exist so the response takes as
// long as a real password check.
func BurnPasswordCheck(password string) {
	h, err := dummyHash()
	if err != nil {
		return
	}
	_ = VerifyPassword(password, h)
}

func decodeHash(encoded string) (Params, []byte, []byte, error) {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", salt, hash]
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, ErrInvalidHash
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return Params{}, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return Params{}, nil, nil, ErrInvalidHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Params{}, nil, nil, ErrInvalidHash
	}

	p.SaltLength = uint32(len(salt)) // #nosec G115 - bounded by the decoded hash
	p.KeyLength = uint32(len(key))   // #nosec G115
	return p, salt, key, nil
}
