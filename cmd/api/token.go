package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/credentials"
)

var tokenExpiresIn time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the Spotify access token stored in the OS keyring",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [access-token]",
	Short: "Store an access token (read from stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenSet,
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := credentials.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Token cleared")
		return nil
	},
}

func init() {
	tokenSetCmd.Flags().DurationVar(&tokenExpiresIn, "expires-in", 0, "Token lifetime, e.g. 1h (unknown when zero)")
	tokenCmd.AddCommand(tokenSetCmd, tokenClearCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("read token: %w", err)
		}
		token = line
	}

	cred := domain.Credential{AccessToken: strings.TrimSpace(token)}
	if tokenExpiresIn > 0 {
		cred.ExpiresAt = time.Now().Add(tokenExpiresIn)
	}
	if err := cred.Validate(time.Now()); err != nil {
		return err
	}
	if err := credentials.Save(cred); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Token stored")
	return nil
}
