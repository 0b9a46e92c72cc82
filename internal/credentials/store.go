// Package credentials keeps the CLI's catalog credential in the OS keyring.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
)

const (
	service = "cadence"
	account = "spotify"
)

var (
	// ErrNotFound is returned when no credential is stored.
	ErrNotFound = errors.New("credentials: not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
	ErrKeyringUnavailable = errors.New("credentials: OS keyring is not available")
)

// Save stores cred, replacing any previous credential.
func Save(cred domain.Credential) error {
	if cred.AccessToken == "" {
		return fmt.Errorf("%w: access token is empty", domain.ErrInvalidCredential)
	}
	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("credentials: encode: %w", err)
	}
	if err := keyring.Set(service, account, string(raw)); err != nil {
		return fmt.Errorf("credentials: failed to store in keyring: %w", err)
	}
	return nil
}

// Load returns the stored credential. It is not validated.
func Load() (domain.Credential, error) {
	raw, err := keyring.Get(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return domain.Credential{}, ErrNotFound
		}
		return domain.Credential{}, fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}

	var cred domain.Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		return domain.Credential{}, fmt.Errorf("credentials: decode: %w", err)
	}
	return cred, nil
}

// Clear removes the stored credential. Clearing an empty keyring is not an error.
func Clear() error {
	err := keyring.Delete(service, account)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("credentials: failed to delete from keyring: %w", err)
	}
	return nil
}
