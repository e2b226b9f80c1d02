package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/trade"
)

func newTradeCmd(app *App) *cobra.Command {
	tradeCmd := &cobra.Command{
		Use:   "trade",
		Short: "Record and query trades",
		Long: `Record and query trades in the SQLite journal.

Examples:
  tradejournal trade add --instrument ES --direction long --pnl 250 --rr 2
  tradejournal trade list --from 2024-05-01 --to 2024-05-31
  tradejournal trade get <trade-id>
  tradejournal trade import trades.csv
  tradejournal trade export -o trades.csv`,
	}

	tradeCmd.AddCommand(
		newTradeAddCmd(app),
		newTradeListCmd(app),
		newTradeGetCmd(app),
		newTradeDeleteCmd(app),
		newTradeImportCmd(app),
		newTradeExportCmd(app),
	)
	return tradeCmd
}

type tradeAddOptions struct {
	date, clock, instrument, session, direction, account, notes string
	pnl, rr, takeProfit, exitPrice                                float64
}

func newTradeAddCmd(app *App) *cobra.Command {
	var o tradeAddOptions

	c := &cobra.Command{
		Use:   "add",
		Short: "Record a closed trade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := trade.ParseDirection(o.direction)
			if err != nil {
				return err
			}
			now := time.Now()
			t := trade.Trade{
				Date:       o.date,
				Time:       o.clock,
				Instrument: o.instrument,
				Session:    o.session,
				Direction:  dir,
				PnL:        o.pnl,
				Notes:      o.notes,
			}
			if t.Date == "" {
				t.Date = now.Format(trade.DateLayout)
			}
			if t.Time == "" {
				t.Time = now.Format("15:04")
			}
			flags := cmd.Flags()
			if flags.Changed("rr") {
				t.RiskReward = trade.Float(o.rr)
			}
			if flags.Changed("tp") {
				t.TakeProfit = trade.Float(o.takeProfit)
			}
			if flags.Changed("exit") {
				t.ExitPrice = trade.Float(o.exitPrice)
			}

			j, err := app.OpenStore()
			if err != nil {
				return err
			}
			defer j.Close()

			if t.AccountID, err = resolveAccount(cmd, app, j, o.account); err != nil {
				return err
			}
			stored, err := j.AddTrade(cmd.Context(), t)
			if err != nil {
				return fmt.Errorf("add trade: %w", err)
			}
			app.Log.WithField("trade_id", stored.ID).Info("recorded trade")
			fmt.Fprintln(cmd.OutOrStdout(), stored.ID)
			return nil
		},
	}

	f := c.Flags()
	f.StringVar(&o.date, "date", "", "trade date YYYY-MM-DD (default today)")
	f.StringVar(&o.clock, "time", "", "time of day HH:MM (default now)")
	f.StringVarP(&o.instrument, "instrument", "i", "", "instrument traded")
	f.StringVar(&o.session, "session", "", "session label, e.g. London")
	f.StringVar(&o.direction, "direction", "long", "long or short")
	f.Float64Var(&o.pnl, "pnl", 0, "realized profit/loss")
	f.Float64Var(&o.rr, "rr", 0, "realized R-multiple")
	f.Float64Var(&o.takeProfit, "tp", 0, "take-profit price")
	f.Float64Var(&o.exitPrice, "exit", 0, "exit price")
	f.StringVarP(&o.account, "account", "a", "", "account id")
	f.StringVar(&o.notes, "notes", "", "free-text notes")
	c.MarkFlagRequired("instrument")
	c.MarkFlagRequired("pnl")
	return c
}

func newTradeListCmd(app *App) *cobra.Command {
	var from, to, account string
	var org bool

	c := &cobra.Command{
		Use:   "list",
		Short: "List trades in chronological order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := app.OpenStore()
			if err != nil {
				return err
			}
			defer j.Close()

			account, err = resolveAccount(cmd, app, j, account)
			if err != nil {
				return err
			}
			trades, err := loadTrades(cmd, j, from, to, account)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if org {
				fmt.Fprintln(out, journal.FormatTradesOrg(trades))
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tTIME\tINSTRUMENT\tDIR\tPNL\tACCOUNT")
			for _, t := range trades {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\t%s\n",
					t.ID, t.Date, t.Time, t.Instrument, t.Direction, t.PnL, t.AccountID)
			}
			return tw.Flush()
		},
	}

	addWindowFlags(c, &from, &to)
	c.Flags().StringVarP(&account, "account", "a", "", "only trades for this account")
	c.Flags().BoolVar(&org, "org", false, "render as Org-mode journal entries")
	return c
}

func newTradeGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <trade-id>",
		Short: "Show a single trade as an Org entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := app.OpenStore()
			if err != nil {
				return err
			}
			defer j.Close()

			rec, err := j.GetTrade(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get trade: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
			return nil
		},
	}
}

func newTradeDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trade-id>",
		Short: "Delete a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := app.OpenStore()
			if err != nil {
				return err
			}
			defer j.Close()

			if err := j.DeleteTrade(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete trade: %w", err)
			}
			app.Log.WithField("trade_id", args[0]).Info("deleted trade")
			return nil
		},
	}
}

func newTradeImportCmd(app *App) *cobra.Command {
	var account string

	c := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import trades from CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			trades, err := journal.ReadTradesCSV(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			j, err := app.OpenStore()
			if err != nil {
				return err
			}
			defer j.Close()

			account, err = resolveAccount(cmd, app, j, account)
			if err != nil {
				return err
			}
			for _, t := range trades {
				if t.AccountID == "" {
					t.AccountID = account
				}
				if _, err := j.AddTrade(cmd.Context(), t); err != nil {
					return fmt.Errorf("import: %w", err)
				}
			}
			app.Log.WithFields(logrus.Fields{"file": args[0], "trades": len(trades)}).Info("imported trades")
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d trades\n", len(trades))
			return nil
		},
	}
	c.Flags().StringVarP(&account, "account", "a", "", "account id for rows without one")
	return c
}

func newTradeExportCmd(app *App) *cobra.Command {
	var from, to, account, output string

	c := &cobra.Command{
		Use:   "export",
		Short: "Export trades as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := app.OpenStore()
			if err != nil {
				return err
			}
			defer j.Close()

			account, err = resolveAccount(cmd, app, j, account)
			if err != nil {
				return err
			}
			trades, err := loadTrades(cmd, j, from, to, account)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return journal.WriteTradesCSV(cmd.OutOrStdout(), trades)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := journal.WriteTradesCSV(f, trades); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	addWindowFlags(c, &from, &to)
	c.Flags().StringVarP(&account, "account", "a", "", "only trades for this account")
	c.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")
	return c
}

func addWindowFlags(c *cobra.Command, from, to *string) {
	c.Flags().StringVar(from, "from", "", "first trade date to include, YYYY-MM-DD")
	c.Flags().StringVar(to, "to", "", "last trade date to include, YYYY-MM-DD")
}

// loadTrades applies the date window and account filter in the store query.
// Analytics never filter by date themselves.
func loadTrades(cmd *cobra.Command, j journal.Store, from, to, account string) ([]trade.Trade, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(trade.DateLayout, d); err != nil {
			return nil, fmt.Errorf("date %q: want YYYY-MM-DD", d)
		}
	}

	var (
		trades []trade.Trade
		err    error
	)
	switch {
	case from != "" || to != "":
		trades, err = j.ListTradesBetween(cmd.Context(), from, to)
		if err == nil && account != "" {
			trades = trade.FilterByAccount(trades, account)
		}
	case account != "":
		trades, err = j.ListTradesByAccount(cmd.Context(), account)
	default:
		trades, err = j.ListTrades(cmd.Context())
	}
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	return trades, nil
}

func accountOrDefault(app *App, account string) string {
	if strings.TrimSpace(account) != "" {
		return account
	}
	return app.Config.Journal.DefaultAccount
}

// resolveAccount applies the configured default and checks that the account
// exists, so a mistyped id fails with journal.ErrNotFound instead of
// matching no trades. An empty result means all accounts.
func resolveAccount(cmd *cobra.Command, app *App, j journal.Store, account string) (string, error) {
	account = accountOrDefault(app, account)
	if account == "" {
		return "", nil
	}
	if _, err := j.GetAccount(cmd.Context(), account); err != nil {
		return "", err
	}
	return account, nil
}
