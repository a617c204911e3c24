package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newEntryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Daily entry commands",
	}

	cmd.AddCommand(newEntrySubmitCmd())

	return cmd
}

func newEntrySubmitCmd() *cobra.Command {
	var date string
	var assets, liabilities, bonuses []string
	var confess bool
	var name, pass, nickname, team string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit or overwrite a daily entry",
		Long: `Submit a daily entry for the given date.

With an active session token only --date and the item flags are needed.
Without a session, pass --name/--pass/--nickname/--team to authenticate
inline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}

			req := map[string]any{
				"date": date,
				"selections": map[string][]string{
					"assets":      assets,
					"liabilities": liabilities,
					"bonuses":     bonuses,
				},
				"confess": confess,
			}
			if name != "" {
				req["real_name"] = name
				req["password"] = pass
				req["nickname"] = nickname
				req["team"] = team
			}

			var result SubmitResult

			if err := client.Post("/api/v1/entries", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Target date YYYY-MM-DD (default: today)")
	cmd.Flags().StringSliceVar(&assets, "asset", nil, "Asset item (repeatable)")
	cmd.Flags().StringSliceVar(&liabilities, "liability", nil, "Liability item (repeatable)")
	cmd.Flags().StringSliceVar(&bonuses, "bonus", nil, "Bonus item (repeatable)")
	cmd.Flags().BoolVar(&confess, "confess", false, "Confess liabilities for halved penalty")
	cmd.Flags().StringVar(&name, "name", "", "Real name (when not using a session)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (when not using a session)")
	cmd.Flags().StringVar(&nickname, "nickname", "", "Nickname (when not using a session)")
	cmd.Flags().StringVar(&team, "team", "", "Team (when not using a session)")

	return cmd
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the scoring catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Catalog

			if err := client.Get("/api/v1/catalog", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
