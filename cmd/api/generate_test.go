package main

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/credentials"
)

func TestResolveCredential(t *testing.T) {
	tests := []struct {
		name      string
		flag      string
		env       map[string]string
		stored    string
		wantToken string
		wantErr   error
	}{
		{name: "flag wins", flag: "from-flag", env: map[string]string{"SPOTIFY_ACCESS_TOKEN": "from-env"}, stored: "from-keyring", wantToken: "from-flag"},
		{name: "environment before keyring", env: map[string]string{"SPOTIFY_ACCESS_TOKEN": " from-env "}, stored: "from-keyring", wantToken: "from-env"},
		{name: "keyring last", stored: "from-keyring", wantToken: "from-keyring"},
		{name: "nothing available", wantErr: domain.ErrInvalidCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gokeyring.MockInit()
			if tt.stored != "" {
				if err := credentials.Save(domain.Credential{AccessToken: tt.stored}); err != nil {
					t.Fatalf("seed keyring: %v", err)
				}
			}
			lookup := func(k string) (string, bool) {
				v, ok := tt.env[k]
				return v, ok
			}

			cred, err := resolveCredential(tt.flag, lookup)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cred.AccessToken != tt.wantToken {
				t.Errorf("token = %q, want %q", cred.AccessToken, tt.wantToken)
			}
		})
	}
}
