package scanner

import (
	"strings"

	"github.com/mlunden/ordna/pkg/types"
)

// Summary aggregates an inventory snapshot for display.
type Summary struct {
	TotalFiles int
	TotalSize  uint64
	Extensions map[string]int
}

// Summarize computes totals and a per-extension histogram for a snapshot.
// Files without an extension are grouped under "none".
func Summarize(entries []types.FileEntry) Summary {
	summary := Summary{Extensions: make(map[string]int)}
	for _, entry := range entries {
		summary.TotalFiles++
		summary.TotalSize += entry.SizeBytes
		ext := entry.Extension
		if ext == "" {
			ext = "none"
		}
		summary.Extensions[ext]++
	}
	return summary
}

// FilterOptions narrows a snapshot. Zero values leave a dimension
// unconstrained; MaxSize of zero means no upper bound.
type FilterOptions struct {
	Extensions []string
	MinSize    uint64
	MaxSize    uint64
}

// Filter returns the entries matching the options, preserving order.
func Filter(entries []types.FileEntry, opts FilterOptions) []types.FileEntry {
	wanted := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		wanted[strings.ToLower(ext)] = true
	}

	var filtered []types.FileEntry
	for _, entry := range entries {
		if len(wanted) > 0 && !wanted[entry.Extension] {
			continue
		}
		if entry.SizeBytes < opts.MinSize {
			continue
		}
		if opts.MaxSize > 0 && entry.SizeBytes > opts.MaxSize {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}
