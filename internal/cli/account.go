package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management commands",
	}

	cmd.AddCommand(newAccountLoginCmd())
	cmd.AddCommand(newAccountMeCmd())
	cmd.AddCommand(newAccountLogoutCmd())
	cmd.AddCommand(newAccountDeleteCmd())

	return cmd
}

func newAccountLoginCmd() *cobra.Command {
	var name, pass, nickname, team string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login or create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"real_name": name,
				"password":  pass,
				"nickname":  nickname,
				"team":      team,
			}
			var result LoginResult

			if err := client.Post("/api/v1/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Real name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&nickname, "nickname", "", "Display nickname (required)")
	cmd.Flags().StringVar(&team, "team", "", "Team (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("pass")
	_ = cmd.MarkFlagRequired("nickname")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func newAccountMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show current session info",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LoginResult

			if err := client.Get("/api/v1/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newAccountLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Invalidate the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/logout", nil, nil); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newAccountDeleteCmd() *cobra.Command {
	var name, pass string
	var confirm bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Permanently erase an account and all its entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("--confirm is required to erase an account")
			}

			req := map[string]any{
				"real_name": name,
				"password":  pass,
				"confirmed": true,
			}

			if err := client.Delete("/api/v1/account", req); err != nil {
				return err
			}

			// Local token is stale after erasure
			_ = cfg.ClearToken()

			out := NewOutput(cfg.Output)
			out.PrintMessage("Account erased")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Real name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Confirm permanent erasure")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}
