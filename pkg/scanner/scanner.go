package scanner

import (
	"path/filepath"
	"strings"

	"github.com/mlunden/ordna/pkg/errors"
	"github.com/mlunden/ordna/pkg/logging"
	"github.com/mlunden/ordna/pkg/paths"
	"github.com/mlunden/ordna/pkg/types"
)

// DefaultMaxEntries caps how many files a single scan may collect when the
// caller does not set a limit of its own.
const DefaultMaxEntries = 10000

// Options configures a scan.
type Options struct {
	// Recursive descends into subdirectories. When false only the base
	// directory itself is listed.
	Recursive bool

	// MaxEntries caps the snapshot size; the remainder of the tree is
	// discarded once reached. Zero means DefaultMaxEntries.
	MaxEntries int
}

// Scanner produces the inventory snapshot a plan is generated against.
// It lists regular files under a base directory, skipping hidden files,
// anything the guard rejects, and everything past the entry cap.
type Scanner struct {
	base  string
	fs    types.FS
	guard *paths.Guard
	opts  Options
}

// New creates a Scanner rooted at the guard's base directory.
func New(fs types.FS, guard *paths.Guard, opts Options) *Scanner {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultMaxEntries
	}
	return &Scanner{
		base:  guard.Base(),
		fs:    fs,
		guard: guard,
		opts:  opts,
	}
}

// errLimitReached stops the walk once the entry cap is hit. It never leaves
// Scan; hitting the cap is not a failure.
var errLimitReached = errors.New(errors.ErrScanRead, "entry limit reached")

// Scan walks the base directory and returns the snapshot. The snapshot is
// point-in-time: callers must not assume the files still exist by the time a
// plan executes.
func (s *Scanner) Scan() ([]types.FileEntry, error) {
	logger := logging.GetLogger("scanner")
	logger.Info().Str("base", s.base).Bool("recursive", s.opts.Recursive).Msg("Scanning directory")

	info, err := s.fs.Stat(s.base)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScanRoot, "cannot stat base directory %s", s.base)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrScanRoot, "base path is not a directory: %s", s.base)
	}

	var entries []types.FileEntry
	if err := s.walk(s.base, &entries); err != nil {
		if err == errLimitReached {
			logger.Warn().Int("limit", s.opts.MaxEntries).Msg("Entry limit reached, discarding remainder")
		} else {
			return nil, err
		}
	}

	logger.Info().Int("count", len(entries)).Msg("Scan complete")
	return entries, nil
}

func (s *Scanner) walk(dir string, out *[]types.FileEntry) error {
	logger := logging.GetLogger("scanner")

	infos, err := s.fs.ReadDir(dir)
	if err != nil {
		if dir == s.base {
			return errors.Wrapf(err, errors.ErrScanRead, "cannot read base directory %s", dir)
		}
		// Unreadable subdirectories are skipped, not fatal
		logger.Debug().Str("dir", dir).Err(err).Msg("Skipping unreadable directory")
		return nil
	}

	for _, info := range infos {
		if len(*out) >= s.opts.MaxEntries {
			return errLimitReached
		}

		name := info.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		full := filepath.Join(dir, name)
		if !s.guard.IsSafe(full) {
			continue
		}

		if info.IsDir() {
			if !s.opts.Recursive {
				continue
			}
			if err := s.walk(full, out); err != nil {
				return err
			}
			continue
		}

		rel, err := filepath.Rel(s.base, full)
		if err != nil {
			logger.Debug().Str("path", full).Err(err).Msg("Skipping file outside base")
			continue
		}

		*out = append(*out, types.FileEntry{
			Name:         name,
			RelativePath: rel,
			Extension:    strings.ToLower(filepath.Ext(name)),
			SizeBytes:    uint64(info.Size()),
			ModifiedAt:   info.ModTime(),
			IsDirectory:  false,
		})
	}

	return nil
}
