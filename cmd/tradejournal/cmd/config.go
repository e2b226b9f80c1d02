package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the config file",
		// These commands operate on the config file itself, so skip loading it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := app.cfgFile
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}
			cfg := config.Default()
			if app.dbPath != "" {
				cfg.Journal.DBPath = app.dbPath
			}
			if err := cfg.SaveToFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadFromFile(app.cfgFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", app.cfgFile)
			return nil
		},
	}

	configCmd.AddCommand(initCmd, validateCmd)
	return configCmd
}
