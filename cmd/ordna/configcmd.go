package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mlunden/ordna/pkg/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the ordna configuration file",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Init writes the built-in defaults to the user config path so you can
edit provider credentials and exclusions. An existing file is never
overwritten unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault(config.DefaultPath(), force)
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %s", path)
			pterm.Info.Println("Set an API key under [providers] to enable a provider.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			pterm.Println(config.DefaultPath())
		},
	}
}
