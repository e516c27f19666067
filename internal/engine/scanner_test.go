package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcopy-dev/pcopy/internal/event"
	"github.com/pcopy-dev/pcopy/internal/stats"
)

func relPaths(files []SourceFile) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.RelPath)
	}
	sort.Strings(paths)
	return paths
}

func TestScanner_Tree(t *testing.T) {
	src := t.TempDir()
	createTestTree(t, src)

	collector := stats.NewCollector()
	s := NewScanner(ScannerConfig{Root: src, Workers: 2, Stats: collector})
	files, err := s.Scan(context.Background())
	require.NoError(t, err)

	want := append([]string(nil), testTreeFiles...)
	sort.Strings(want)
	assert.Equal(t, want, relPaths(files))

	for _, f := range files {
		assert.True(t, filepath.IsAbs(f.Path))
		assert.True(t, f.HasModTime())
		assert.Equal(t, os.FileMode(0o644), f.Mode)
	}

	snap := collector.Snapshot()
	assert.Equal(t, int64(len(testTreeFiles)), snap.FilesTotal)
	assert.Equal(t, int64(testTreeBytes), snap.BytesTotal)
	assert.Equal(t, int64(3), snap.DirsScanned)
}

func TestScanner_SizesAndTimes(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "a"), make([]byte, 1234))
	info, err := os.Stat(filepath.Join(src, "a"))
	require.NoError(t, err)

	files, err := NewScanner(ScannerConfig{Root: src}).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, int64(1234), files[0].Size)
	assert.True(t, files[0].ModTime.Equal(info.ModTime()))
}

func TestScanner_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "only.txt")
	writeFile(t, path, []byte("hello"))

	files, err := NewScanner(ScannerConfig{Root: path}).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "", files[0].RelPath)
	assert.Equal(t, path, files[0].Path)
	assert.Equal(t, int64(5), files[0].Size)
}

func TestScanner_MissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	files, err := NewScanner(ScannerConfig{Root: missing}).Scan(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDirectoryUnreadable)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, files)
}

func TestScanner_EmptyDirectory(t *testing.T) {
	src := t.TempDir()

	files, err := NewScanner(ScannerConfig{Root: src}).Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestScanner_EmptySubdirectoriesYieldNothing(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "a", "b", "c"), 0o755))

	collector := stats.NewCollector()
	files, err := NewScanner(ScannerConfig{Root: src, Stats: collector}).Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Equal(t, int64(4), collector.Snapshot().DirsScanned)
}

func TestScanner_UnreadableSubdirSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "ok.txt"), []byte("ok"))
	locked := filepath.Join(src, "locked")
	require.NoError(t, os.Mkdir(locked, 0o755))
	writeFile(t, filepath.Join(locked, "hidden.txt"), []byte("hidden"))
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	files, err := NewScanner(ScannerConfig{Root: src}).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.txt"}, relPaths(files))
}

func TestScanner_UnstatableEntriesSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "ok.txt"), []byte("ok"))
	require.NoError(t, os.Mkdir(filepath.Join(src, "z"), 0o755))
	writeFile(t, filepath.Join(src, "z", "last.txt"), []byte("last"))
	listOnly := filepath.Join(src, "listonly")
	require.NoError(t, os.Mkdir(listOnly, 0o755))
	writeFile(t, filepath.Join(listOnly, "a.txt"), []byte("a"))
	writeFile(t, filepath.Join(listOnly, "b.txt"), []byte("b"))
	// Readable but not searchable: names can be listed, children cannot be stat'ed.
	require.NoError(t, os.Chmod(listOnly, 0o644))
	t.Cleanup(func() { _ = os.Chmod(listOnly, 0o755) })

	files, err := NewScanner(ScannerConfig{Root: src}).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.txt", filepath.Join("z", "last.txt")}, relPaths(files))
}

func TestScanner_PartialDirectoryListing(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "ok.txt"), []byte("ok"))
	part := filepath.Join(src, "part")
	require.NoError(t, os.Mkdir(part, 0o755))
	writeFile(t, filepath.Join(part, "a.txt"), []byte("a"))
	writeFile(t, filepath.Join(part, "b.txt"), []byte("b"))

	s := NewScanner(ScannerConfig{Root: src})
	s.readDir = func(dir string) ([]os.DirEntry, error) {
		entries, err := os.ReadDir(dir)
		if err != nil || dir != part {
			return entries, err
		}
		return entries[:1], errors.New("readdirent: input/output error")
	}

	files, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.txt", filepath.Join("part", "a.txt")}, relPaths(files))
}

func TestScanner_EmptyFailedListingSkipped(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "ok.txt"), []byte("ok"))
	bad := filepath.Join(src, "bad")
	require.NoError(t, os.Mkdir(bad, 0o755))
	writeFile(t, filepath.Join(bad, "hidden.txt"), []byte("hidden"))

	s := NewScanner(ScannerConfig{Root: src})
	s.readDir = func(dir string) ([]os.DirEntry, error) {
		if dir == bad {
			return nil, errors.New("open: permission denied")
		}
		return os.ReadDir(dir)
	}

	files, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.txt"}, relPaths(files))
}

func TestScanner_UnreadableRootFails(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	src := t.TempDir()
	require.NoError(t, os.Chmod(src, 0o000))
	t.Cleanup(func() { _ = os.Chmod(src, 0o755) })

	_, err := NewScanner(ScannerConfig{Root: src}).Scan(context.Background())
	assert.ErrorIs(t, err, ErrDirectoryUnreadable)
}

func TestScanner_ManyDirectories(t *testing.T) {
	src := t.TempDir()
	var want []string
	for i := range 40 {
		dir := filepath.Join(src, "d"+string(rune('a'+i%26)), "n"+string(rune('a'+i/26)))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		rel, err := filepath.Rel(src, filepath.Join(dir, "f.txt"))
		require.NoError(t, err)
		writeFile(t, filepath.Join(dir, "f.txt"), []byte("x"))
		want = append(want, rel)
	}
	sort.Strings(want)

	files, err := NewScanner(ScannerConfig{Root: src, Workers: 1}).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, relPaths(files))
}

func TestScanner_Events(t *testing.T) {
	src := t.TempDir()
	createTestTree(t, src)

	events := make(chan event.Event, 64)
	_, err := NewScanner(ScannerConfig{Root: src, Events: events}).Scan(context.Background())
	require.NoError(t, err)
	close(events)

	var started, dirs int
	for ev := range events {
		switch ev.Type {
		case event.ScanStarted:
			started++
		case event.ScanDir:
			dirs++
		}
	}
	assert.Equal(t, 1, started)
	assert.Equal(t, 3, dirs)
}

func TestScanner_CancelledContext(t *testing.T) {
	src := t.TempDir()
	createTestTree(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner(ScannerConfig{Root: src}).Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
