package main

import (
	"fmt"
	"os"

	"github.com/gdrive-tools/gsync/internal/auth"
	"github.com/gdrive-tools/gsync/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(newLoginCmd())
}

func newLoginCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authorize gsync against Google Drive",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd.Root())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromViper()
			if err := cfg.Validate(); err != nil {
				return err
			}
			cmd.SilenceUsage = true

			if utils.FileExists(cfg.TokenPath) && !force {
				fmt.Printf("%s token cache exists at %s (use --force to reauthorize)\n", green("Already authorized."), cfg.TokenPath)
				return nil
			}
			if force {
				os.Remove(cfg.TokenPath)
			}

			provider, err := auth.NewProvider(cfg.CredentialsPath, cfg.TokenPath)
			if err != nil {
				return err
			}
			if _, err := provider.TokenSource(cmd.Context()); err != nil {
				return err
			}

			// Persist resolved paths so plain `gsync` runs pick them up.
			if !utils.FileExists(viper.ConfigFileUsed()) {
				if err := cfg.Save(viper.ConfigFileUsed()); err != nil {
					return err
				}
			}

			fmt.Printf("%s token cached at %s\n", green("Authorized."), cfg.TokenPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "discard the cached token and reauthorize")
	return cmd
}
