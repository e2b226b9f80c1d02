package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/internal/report"
)

func newStatsCmd(app *App) *cobra.Command {
	var from, to, account string
	var asJSON bool

	c := &cobra.Command{
		Use:   "stats",
		Short: "Show performance statistics",
		Long: `Compute performance statistics over the journal.

With --account the per-account view is shown, including break-even rate,
average R-multiple, Sortino, MAR and Calmar ratios and take-profit hits.

Examples:
  tradejournal stats
  tradejournal stats --from 2024-05-01 --to 2024-05-31
  tradejournal stats --account ACC-1 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := app.OpenStore()
			if err != nil {
				return err
			}
			defer j.Close()

			engine, err := app.Engine()
			if err != nil {
				return err
			}

			account, err = resolveAccount(cmd, app, j, account)
			if err != nil {
				return err
			}
			trades, err := loadTrades(cmd, j, from, to, account)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if account != "" {
				m, err := engine.AccountMetrics(account, trades)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, m)
				}
				report.PrintAccountMetrics(out, m)
				return nil
			}

			s, err := engine.Stats(trades)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, s)
			}
			report.PrintStats(out, "All trades", s)
			return nil
		},
	}

	addWindowFlags(c, &from, &to)
	c.Flags().StringVarP(&account, "account", "a", "", "per-account metrics for this account")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
