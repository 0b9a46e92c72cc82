package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/core/services"
	"github.com/ewilliams-labs/cadence/backend/internal/credentials"
)

var (
	generateWorkout string
	generateToken   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a playlist for a stored workout",
	Long: `Generate a Spotify playlist for a stored workout.

The access token is taken from --token, then SPOTIFY_ACCESS_TOKEN, then the
OS keyring (see "cadence token set").`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateWorkout, "workout", "", "Workout ID (required)")
	generateCmd.Flags().StringVar(&generateToken, "token", "", "Spotify access token")
	_ = generateCmd.MarkFlagRequired("workout")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cred, err := resolveCredential(generateToken, os.LookupEnv)
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	ref, err := a.generator.GeneratePlaylist(cmd.Context(), generateWorkout, cred)
	if err != nil {
		if kind, ok := services.KindOf(err); ok {
			return fmt.Errorf("generate (%s): %w", kind, err)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Playlist %s\n%s\n", ref.ID, ref.URL)
	return nil
}

// resolveCredential picks the credential from the flag, the environment
// or the keyring, in that order.
func resolveCredential(flagToken string, lookupEnv func(string) (string, bool)) (domain.Credential, error) {
	if t := strings.TrimSpace(flagToken); t != "" {
		return domain.Credential{AccessToken: t}, nil
	}
	if t, ok := lookupEnv("SPOTIFY_ACCESS_TOKEN"); ok && strings.TrimSpace(t) != "" {
		return domain.Credential{AccessToken: strings.TrimSpace(t)}, nil
	}

	cred, err := credentials.Load()
	if errors.Is(err, credentials.ErrNotFound) {
		return domain.Credential{}, fmt.Errorf("%w: pass --token, set SPOTIFY_ACCESS_TOKEN or run \"cadence token set\"", domain.ErrInvalidCredential)
	}
	return cred, err
}
