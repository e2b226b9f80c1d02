package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/internal/report"
)

func newDemonsCmd(app *App) *cobra.Command {
	var from, to, account string
	var asJSON bool

	c := &cobra.Command{
		Use:   "demons",
		Short: "Detect oversizing and revenge trading",
		Args:  cobra.NoArgs,
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

			demons, level, err := engine.Demons(trades)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, map[string]any{
					"psychLevel": level,
					"demons":     demons,
				})
			}
			report.PrintDemons(cmd.OutOrStdout(), demons, level)
			return nil
		},
	}

	addWindowFlags(c, &from, &to)
	c.Flags().StringVarP(&account, "account", "a", "", "only trades for this account")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}
