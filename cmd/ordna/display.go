package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/mlunden/ordna/pkg/scanner"
	"github.com/mlunden/ordna/pkg/types"
)

func init() {
	// Plain output when piped
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
	}
}

func renderPlan(plan types.Plan) error {
	data := pterm.TableData{{"#", "Action", "Source", "Destination", "Reason"}}
	for i, action := range plan.Actions {
		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			action.Type.String(),
			action.Source,
			action.Destination,
			action.Reason,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderResults(results []types.ActionResult, summary types.ExecutionSummary) {
	for _, result := range results {
		switch {
		case result.Success && result.Warning != "":
			pterm.Warning.Printfln("%s -> %s (%s)", result.Source, result.Destination, result.Warning)
		case result.Success:
			pterm.Success.Printfln("%s -> %s", result.Source, result.Destination)
		default:
			pterm.Error.Printfln("%s: %v", result.Source, result.Err)
		}
	}

	pterm.Println()
	if summary.Failed == 0 {
		pterm.Success.Printfln("Done: %d of %d actions succeeded", summary.Succeeded, summary.Total)
	} else {
		pterm.Warning.Printfln("Done: %d succeeded, %d failed of %d actions",
			summary.Succeeded, summary.Failed, summary.Total)
	}
}

func renderInventory(base string, entries []types.FileEntry, summary scanner.Summary) {
	pterm.DefaultSection.Printfln("%s", base)

	data := pterm.TableData{{"Path", "Size", "Modified"}}
	for _, entry := range entries {
		data = append(data, []string{
			entry.RelativePath,
			humanSize(entry.SizeBytes),
			entry.ModifiedAt.Format("2006-01-02 15:04"),
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	pterm.Println()
	pterm.Info.Printfln("%d files, %s total", summary.TotalFiles, humanSize(summary.TotalSize))
	if len(summary.Extensions) > 0 {
		exts := make([]string, 0, len(summary.Extensions))
		for ext := range summary.Extensions {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		// Summarize already groups extensionless files under "none"
		for _, ext := range exts {
			pterm.Printfln("  %-10s %d", ext, summary.Extensions[ext])
		}
	}
}

func humanSize(size uint64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", value)
}
