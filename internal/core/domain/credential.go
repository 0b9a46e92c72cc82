package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/oauth2"
)

var ErrInvalidCredential = errors.New("domain: invalid credential")

// Credential is the session credential handed over by the identity layer.
// ExpiresAt is optional; a zero value means the expiry is unknown.
type Credential struct {
	AccessToken  string    `json:"access_token" validate:"required"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

// Validate checks the credential is usable at now. It is never refreshed.
func (c Credential) Validate(now time.Time) error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	if !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt) {
		return fmt.Errorf("%w: token expired at %s", ErrInvalidCredential, c.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

// Token converts the credential into a bearer token.
func (c Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       c.ExpiresAt,
	}
}
