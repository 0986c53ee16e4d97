package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// pepperLength is the number of random bytes in a generated pepper.
const pepperLength = 32

var (
	pepperMu   sync.Mutex
	pepper     string
	pepperFile string
)

// SetPepperPath sets the file the pepper is read from (or written to on first
// use). Changing the path drops any pepper already loaded.
func SetPepperPath(file string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	pepperFile = file
	pepper = ""
}

// SetPepper installs a pepper directly, bypassing the file. Tests use this.
func SetPepper(p string) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	pepper = p
}

// Pepper returns the server-wide secret appended to every password before
// hashing. It is loaded lazily from the pepper file, which is created with a
// fresh random value when missing.
func Pepper() (string, error) {
	pepperMu.Lock()
	defer pepperMu.Unlock()

	if pepper != "" {
		return pepper, nil
	}

	p, err := loadOrGeneratePepper(pepperFile)
	if err != nil {
		return "", fmt.Errorf("cryptox: pepper: %w", err)
	}
	pepper = p
	return pepper, nil
}

func loadOrGeneratePepper(file string) (string, error) {
	if file == "" {
		return "", errors.New("no pepper file configured")
	}

	file = filepath.Clean(file)
	if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
		return "", err
	}

	raw, err := os.ReadFile(file)
	switch {
	case err == nil:
		if len(raw) == 0 {
			return "", fmt.Errorf("pepper file %s is empty", file)
		}
		return string(raw), nil
	case !os.IsNotExist(err):
		return "", err
	}

	buf := make([]byte, pepperLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	p := base64.RawURLEncoding.EncodeToString(buf)

	if err := os.WriteFile(file, []byte(p), 0600); err != nil {
		return "", err
	}
	return p, nil
}
