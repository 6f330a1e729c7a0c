package scanner_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/mlunden/ordna/pkg/errors"
	"github.com/mlunden/ordna/pkg/filesystem"
	"github.com/mlunden/ordna/pkg/paths"
	"github.com/mlunden/ordna/pkg/scanner"
	"github.com/mlunden/ordna/pkg/testutil"
	"github.com/mlunden/ordna/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relPaths(entries []types.FileEntry) []string {
	var rels []string
	for _, e := range entries {
		rels = append(rels, e.RelativePath)
	}
	return rels
}

func TestScanFlat(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.CreateFile(t, "a.txt", "hello")
	env.CreateFile(t, "b.jpg", "image")
	env.CreateFile(t, ".hidden", "secret")
	env.CreateDir(t, "sub")
	env.CreateFile(t, "sub/nested.txt", "nested")

	s := scanner.New(env.FS, env.Guard, scanner.Options{Recursive: false})
	entries, err := s.Scan()
	require.NoError(t, err)

	rels := relPaths(entries)
	assert.ElementsMatch(t, []string{"a.txt", "b.jpg"}, rels)
}

func TestScanRecursive(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.CreateFile(t, "a.txt", "hello")
	env.CreateDir(t, "sub/deep")
	env.CreateFile(t, "sub/b.txt", "b")
	env.CreateFile(t, "sub/deep/c.txt", "c")
	env.CreateDir(t, ".git")
	env.CreateFile(t, ".git/config", "ignored")

	s := scanner.New(env.FS, env.Guard, scanner.Options{Recursive: true})
	entries, err := s.Scan()
	require.NoError(t, err)

	rels := relPaths(entries)
	assert.ElementsMatch(t, []string{
		"a.txt",
		filepath.Join("sub", "b.txt"),
		filepath.Join("sub", "deep", "c.txt"),
	}, rels)
}

func TestScanSkipsExcludedPaths(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.CreateDir(t, "protected")
	env.CreateFile(t, "protected/key.pem", "key")
	env.CreateFile(t, "a.txt", "hello")

	guard, err := paths.NewGuard(env.BaseDir, []string{filepath.Join(env.BaseDir, "protected")})
	require.NoError(t, err)

	s := scanner.New(env.FS, guard, scanner.Options{Recursive: true})
	entries, err := s.Scan()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.txt"}, relPaths(entries))
}

func TestScanEntryCap(t *testing.T) {
	memfs := afero.NewMemMapFs()
	fs := filesystem.NewAferoFS(memfs)
	base := "/inbox"
	require.NoError(t, memfs.MkdirAll(base, 0755))
	for i := 0; i < 50; i++ {
		require.NoError(t, afero.WriteFile(memfs,
			filepath.Join(base, fmt.Sprintf("file_%02d.txt", i)), []byte("x"), 0644))
	}

	guard, err := paths.NewGuard(base, nil)
	require.NoError(t, err)

	s := scanner.New(fs, guard, scanner.Options{Recursive: false, MaxEntries: 10})
	entries, err := s.Scan()
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}

func TestScanMissingBase(t *testing.T) {
	memfs := afero.NewMemMapFs()
	fs := filesystem.NewAferoFS(memfs)

	guard, err := paths.NewGuard("/nope", nil)
	require.NoError(t, err)

	s := scanner.New(fs, guard, scanner.Options{})
	_, err = s.Scan()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScanRoot))
}

func TestScanEntryMetadata(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.CreateFile(t, "photo.JPG", "12345")

	s := scanner.New(env.FS, env.Guard, scanner.Options{})
	entries, err := s.Scan()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "photo.JPG", entry.Name)
	assert.Equal(t, "photo.JPG", entry.RelativePath)
	assert.Equal(t, ".jpg", entry.Extension)
	assert.Equal(t, uint64(5), entry.SizeBytes)
	assert.WithinDuration(t, time.Now(), entry.ModifiedAt, time.Minute)
	assert.False(t, entry.IsDirectory)
}

func TestSummarize(t *testing.T) {
	entries := []types.FileEntry{
		{RelativePath: "a.txt", Extension: ".txt", SizeBytes: 10},
		{RelativePath: "b.txt", Extension: ".txt", SizeBytes: 20},
		{RelativePath: "c.jpg", Extension: ".jpg", SizeBytes: 5},
		{RelativePath: "Makefile", Extension: "", SizeBytes: 1},
	}

	summary := scanner.Summarize(entries)
	assert.Equal(t, 4, summary.TotalFiles)
	assert.Equal(t, uint64(36), summary.TotalSize)
	assert.Equal(t, map[string]int{".txt": 2, ".jpg": 1, "none": 1}, summary.Extensions)
}

func TestFilter(t *testing.T) {
	entries := []types.FileEntry{
		{RelativePath: "a.txt", Extension: ".txt", SizeBytes: 10},
		{RelativePath: "b.jpg", Extension: ".jpg", SizeBytes: 100},
		{RelativePath: "c.jpg", Extension: ".jpg", SizeBytes: 5},
	}

	tests := []struct {
		name string
		opts scanner.FilterOptions
		want []string
	}{
		{
			name: "by extension, case insensitive",
			opts: scanner.FilterOptions{Extensions: []string{".JPG"}},
			want: []string{"b.jpg", "c.jpg"},
		},
		{
			name: "by minimum size",
			opts: scanner.FilterOptions{MinSize: 10},
			want: []string{"a.txt", "b.jpg"},
		},
		{
			name: "by maximum size",
			opts: scanner.FilterOptions{MaxSize: 10},
			want: []string{"a.txt", "c.jpg"},
		},
		{
			name: "combined",
			opts: scanner.FilterOptions{Extensions: []string{".jpg"}, MinSize: 50},
			want: []string{"b.jpg"},
		},
		{
			name: "no constraints keeps everything",
			opts: scanner.FilterOptions{},
			want: []string{"a.txt", "b.jpg", "c.jpg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanner.Filter(entries, tt.opts)
			assert.Equal(t, tt.want, relPaths(got))
		})
	}
}
