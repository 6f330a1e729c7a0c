package executor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mlunden/ordna/pkg/errors"
	"github.com/mlunden/ordna/pkg/types"
)

// maxNameAttempts bounds how many alternate names collision resolution will
// try before giving up.
const maxNameAttempts = 999

// UniqueDestination returns desired unchanged if nothing exists there,
// otherwise the first of stem_1.ext, stem_2.ext, ... that does not exist.
// The stem and extension are split at the last dot of the filename.
//
// Existence is checked here and the write happens later; another writer can
// claim the name in between. That window is accepted for a single-user local
// tool.
func UniqueDestination(fsys types.FS, desired string) (string, error) {
	if !exists(fsys, desired) {
		return desired, nil
	}

	dir := filepath.Dir(desired)
	base := filepath.Base(desired)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 1; i <= maxNameAttempts; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if !exists(fsys, candidate) {
			return candidate, nil
		}
	}

	return "", errors.Newf(errors.ErrNameSpaceExhausted,
		"no free name for %s within %d attempts", desired, maxNameAttempts)
}

func exists(fsys types.FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}
