package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type seriesExporter interface {
	ToCSV() string
	ToJSON() (string, error)
}

func newEquityCmd(app *App) *cobra.Command {
	var from, to, account, format string
	var daily bool

	c := &cobra.Command{
		Use:   "equity",
		Short: "Print the cumulative P/L curve or daily P/L series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("format must be csv or json")
			}

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

			var series seriesExporter
			if daily {
				series, err = engine.DailyPnL(trades)
			} else {
				series, err = engine.EquityCurve(trades)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "csv" {
				_, err = io.WriteString(out, series.ToCSV())
				return err
			}
			data, err := series.ToJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, data)
			return err
		},
	}

	addWindowFlags(c, &from, &to)
	c.Flags().StringVarP(&account, "account", "a", "", "only trades for this account")
	c.Flags().StringVarP(&format, "format", "f", "csv", "csv or json")
	c.Flags().BoolVar(&daily, "daily", false, "daily P/L instead of per-trade equity")
	return c
}
