package main

import (
	"github.com/spf13/cobra"

	"github.com/mlunden/ordna/pkg/config"
	"github.com/mlunden/ordna/pkg/filesystem"
	"github.com/mlunden/ordna/pkg/logging"
	"github.com/mlunden/ordna/pkg/paths"
	"github.com/mlunden/ordna/pkg/scanner"
)

func newScanCmd(configPath *string) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Show what ordna sees in a directory",
		Long: `Scan lists the files ordna would hand to the model, without
contacting it. Useful to check exclusions and the recursive flag
before running organize.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.scan")
			logger.Info().Str("directory", args[0]).Bool("recursive", recursive).Msg("Starting scan")

			settings, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			guard, err := paths.NewGuard(args[0], settings.ExcludedPaths)
			if err != nil {
				return err
			}

			inventory, err := scanner.New(filesystem.NewOS(), guard, scanner.Options{
				Recursive:  recursive,
				MaxEntries: settings.MaxFiles,
			}).Scan()
			if err != nil {
				return err
			}

			renderInventory(guard.Base(), inventory, scanner.Summarize(inventory))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Include subdirectories in the scan")

	return cmd
}
