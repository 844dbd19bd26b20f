package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// “Service” groups the app’s secrets in the OS keychain.
	KeyringService = "careers"

	PasswordEnv = "CAREERS_SFTP_PASSWORD"
)

var ErrNoPassword = errors.New("sftp password not found (set CAREERS_SFTP_PASSWORD or run `careers secret set`)")

// SFTPAccount is the keyring account for user@host.
func SFTPAccount(user, host string) string {
	return fmt.Sprintf("careers:sftp:%s@%s", user, host)
}

// GetSFTPPassword looks in the environment first, then the keyring.
func GetSFTPPassword(account string) (string, error) {
	if pw := os.Getenv(PasswordEnv); strings.TrimSpace(pw) != "" {
		return pw, nil
	}
	if strings.TrimSpace(account) != "" {
		pw, err := keyring.Get(KeyringService, account)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("keyring: %w", err)
		}
	}
	return "", ErrNoPassword
}

func SetSFTPPassword(account, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

func DeleteSFTPPassword(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
