package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

func newAccountCmd(app *App) *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage trading accounts",
	}

	var a journal.Account
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Name = args[0]

			j, err := app.OpenStore()
			if err != nil {
				return err
			}
			defer j.Close()

			stored, err := j.AddAccount(cmd.Context(), a)
			if err != nil {
				return fmt.Errorf("add account: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), stored.ID)
			return nil
		},
	}
	addCmd.Flags().StringVar(&a.ID, "id", "", "account id (default generated)")
	addCmd.Flags().StringVar(&a.Broker, "broker", "", "broker name")
	addCmd.Flags().Float64Var(&a.InitialBalance, "balance", 0, "starting balance")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := app.OpenStore()
			if err != nil {
				return err
			}
			defer j.Close()

			accounts, err := j.ListAccounts(cmd.Context())
			if err != nil {
				return fmt.Errorf("list accounts: %w", err)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tBROKER\tBALANCE")
			for _, acct := range accounts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", acct.ID, acct.Name, acct.Broker, acct.InitialBalance)
			}
			return tw.Flush()
		},
	}

	accountCmd.AddCommand(addCmd, listCmd)
	return accountCmd
}
