package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/timelex/timelex-cli/internal/constants"
)

var (
	// ErrNoToken is returned when no session token is stored in the keyring
	ErrNoToken = errors.New("no session token stored")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// LoadToken retrieves the persisted session token from the OS keyring.
func LoadToken() (string, error) {
	tok, err := keyring.Get(constants.AppName, constants.DefaultKeyringKey)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return tok, nil
}

// StoreToken persists the session token in the OS keyring.
func StoreToken(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringKey, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// DeleteToken removes the persisted session token from the OS keyring.
func DeleteToken() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringKey); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNoToken
		}
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}
