package paths

import (
	"path/filepath"

	"github.com/mlunden/ordna/pkg/errors"
	"github.com/mlunden/ordna/pkg/logging"
)

// Guard decides whether a candidate path is acceptable to write to. It is
// constructed once per executor with a base directory and a fixed exclusion
// list, and holds no mutable state.
type Guard struct {
	base     string
	excluded []string
}

// NewGuard creates a Guard confined to baseDir. Exclusion entries are
// home-expanded and canonicalized up front; entries that cannot be resolved
// at all are kept in cleaned lexical form so they still match lexically.
func NewGuard(baseDir string, excluded []string) (*Guard, error) {
	base, err := Canonicalize(ExpandHome(baseDir))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve base directory %s", baseDir)
	}

	g := &Guard{base: base}
	for _, entry := range excluded {
		expanded := ExpandHome(entry)
		canonical, err := Canonicalize(expanded)
		if err != nil {
			canonical = filepath.Clean(expanded)
		}
		g.excluded = append(g.excluded, canonical)
	}
	return g, nil
}

// Base returns the canonical base directory the guard is confined to.
func (g *Guard) Base() string {
	return g.base
}

// IsSafe reports whether candidate may be written to. A relative candidate is
// resolved against the base directory. Any resolution failure means "not
// safe", never a panic or an error.
func (g *Guard) IsSafe(candidate string) bool {
	logger := logging.GetLogger("paths.guard")

	if err := ValidatePath(candidate); err != nil {
		logger.Debug().Str("path", candidate).Err(err).Msg("Rejecting invalid path")
		return false
	}

	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(g.base, candidate)
	}

	canonical, err := Canonicalize(candidate)
	if err != nil {
		logger.Debug().Str("path", candidate).Err(err).Msg("Rejecting unresolvable path")
		return false
	}

	if !IsWithin(g.base, canonical) {
		logger.Warn().Str("path", canonical).Str("base", g.base).Msg("Path escapes base directory")
		return false
	}

	for _, excluded := range g.excluded {
		if IsWithin(excluded, canonical) {
			logger.Warn().Str("path", canonical).Str("excluded", excluded).Msg("Path is under an excluded root")
			return false
		}
	}

	return true
}
