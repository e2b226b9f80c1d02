package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/internal/report"
)

func newReviewCmd(app *App) *cobra.Command {
	var from, to, account, title, output string
	var notes, next []string

	c := &cobra.Command{
		Use:   "review",
		Short: "Write an Org-mode performance review",
		Long: `Write a periodic review as an Org-mode entry: headline statistics,
per-account ratios when --account is given, detected demons and the
psychological level, plus free-form notes and next actions.

Examples:
  tradejournal review --from 2024-05-01 --to 2024-05-31 --title "May"
  tradejournal review --account ACC-1 --note "cut size after losses" -o review.org`,
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

			r := report.Review{
				Title:       title,
				Created:     time.Now(),
				From:        from,
				To:          to,
				Notes:       notes,
				NextActions: next,
			}
			if r.Stats, err = engine.Stats(trades); err != nil {
				return err
			}
			if account != "" {
				m, err := engine.AccountMetrics(account, trades)
				if err != nil {
					return err
				}
				r.Account = &m
			}
			if r.Demons, r.Level, err = engine.Demons(trades); err != nil {
				return err
			}

			if output == "" || output == "-" {
				return writeReview(cmd.OutOrStdout(), r)
			}
			return appendReview(output, r)
		},
	}

	addWindowFlags(c, &from, &to)
	f := c.Flags()
	f.StringVarP(&account, "account", "a", "", "account to review")
	f.StringVarP(&title, "title", "t", "", "review headline")
	f.StringVarP(&output, "output", "o", "-", "org file to append to (- for stdout)")
	f.StringArrayVar(&notes, "note", nil, "observation to record (repeatable)")
	f.StringArrayVar(&next, "next", nil, "next action to record (repeatable)")
	return c
}

func writeReview(w io.Writer, r report.Review) error {
	if err := report.WriteReviewOrg(w, r); err != nil {
		return fmt.Errorf("write review: %w", err)
	}
	return nil
}

// appendReview adds r to the end of the org file at path, creating it if
// needed. A failed close is reported since it can lose the appended entry.
func appendReview(path string, r report.Review) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := writeReview(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
