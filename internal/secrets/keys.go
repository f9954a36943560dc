package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "jobspy"

// Known credential names. Env wins over keychain so .env files and CI keep
// working; the keychain is there for desktop installs that never see a
// .env.
const (
	AdzunaAppID  = "ADZUNA_APP_ID"
	AdzunaAppKey = "ADZUNA_APP_KEY"
	JSearchKey   = "JSEARCH_APP_KEY"
)

func Get(name string) (string, error) {
	if !isKnown(name) {
		return "", fmt.Errorf("unknown secret %q", name)
	}

	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v, nil
	}

	v, err := keyring.Get(KeyringService, name)
	if err == nil && strings.TrimSpace(v) != "" {
		return v, nil
	}
	return "", fmt.Errorf("secret %s not found (set env var or store it via the secrets API)", name)
}

// GetOptional is Get without the error; some sources work keyless.
func GetOptional(name string) string {
	v, _ := Get(name)
	return v
}

func Set(name, value string) error {
	if !isKnown(name) {
		return fmt.Errorf("unknown secret %q", name)
	}
	if strings.TrimSpace(value) == "" {
		return errors.New("secret value is empty")
	}
	return keyring.Set(KeyringService, name, value)
}

func Delete(name string) error {
	if !isKnown(name) {
		return fmt.Errorf("unknown secret %q", name)
	}
	return keyring.Delete(KeyringService, name)
}

func isKnown(name string) bool {
	switch name {
	case AdzunaAppID, AdzunaAppKey, JSearchKey:
		return true
	}
	return false
}
