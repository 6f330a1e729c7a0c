package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/mlunden/ordna/pkg/config"
	"github.com/mlunden/ordna/pkg/executor"
	"github.com/mlunden/ordna/pkg/filesystem"
	"github.com/mlunden/ordna/pkg/logging"
	"github.com/mlunden/ordna/pkg/paths"
	"github.com/mlunden/ordna/pkg/planner"
	"github.com/mlunden/ordna/pkg/scanner"
)

func newOrganizeCmd(configPath *string) *cobra.Command {
	var (
		recursive bool
		dryRun    bool
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "organize <directory> <instruction>",
		Short: "Plan and execute a file organization",
		Long: `Organize scans the directory, sends the file listing and your
instruction to the configured language model, and shows the resulting
plan. Nothing is moved until you confirm.

Example:
  ordna organize ~/Downloads "sort my images and PDFs into folders"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.organize")
			directory, instruction := args[0], args[1]
			logger.Info().
				Str("directory", directory).
				Bool("recursive", recursive).
				Bool("dryRun", dryRun).
				Msg("Starting organize")

			settings, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			guard, err := paths.NewGuard(directory, settings.ExcludedPaths)
			if err != nil {
				return err
			}

			fsys := filesystem.NewOS()
			inventory, err := scanner.New(fsys, guard, scanner.Options{
				Recursive:  recursive,
				MaxEntries: settings.MaxFiles,
			}).Scan()
			if err != nil {
				return err
			}
			if len(inventory) == 0 {
				pterm.Info.Println("No files to organize.")
				return nil
			}
			pterm.Info.Printfln("Found %d files in %s", len(inventory), guard.Base())

			provider, err := planner.NewProviderFromSettings(settings)
			if err != nil {
				return err
			}
			allowed, err := settings.AllowedActionTypes()
			if err != nil {
				return err
			}

			spinner, _ := pterm.DefaultSpinner.Start("Asking the model for a plan...")
			plan, err := planner.New(provider, allowed).Plan(cmd.Context(), instruction, inventory)
			if err != nil {
				if spinner != nil {
					spinner.Fail("Plan generation failed")
				}
				return err
			}
			if spinner != nil {
				spinner.Success("Plan ready")
			}

			if len(plan.Actions) == 0 {
				pterm.Info.Println("The model proposed no actions.")
				return nil
			}

			if err := renderPlan(plan); err != nil {
				return err
			}

			if dryRun {
				pterm.Info.Println("Dry run, nothing was moved.")
				return nil
			}

			if !yes {
				confirmed, err := pterm.DefaultInteractiveConfirm.
					WithDefaultText(fmt.Sprintf("Execute %d actions?", len(plan.Actions))).
					Show()
				if err != nil {
					return err
				}
				if !confirmed {
					pterm.Info.Println("Aborted, nothing was moved.")
					return nil
				}
			}

			results, summary := executor.New(fsys, guard, executor.Config{
				AllowedActions: allowed,
			}).Execute(plan.Actions, inventory)

			renderResults(results, summary)
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d actions failed", summary.Failed, summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Include subdirectories in the scan")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the plan without executing it")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Execute without asking for confirmation")

	return cmd
}
