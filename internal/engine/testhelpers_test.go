package engine

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// createTestTree populates root with a standard test tree:
//
//	root.txt          (17 bytes)
//	big.bin           (320KB)
//	sub/mid.txt       (19 bytes)
//	sub/deep/leaf.txt (17 bytes)
//	link.txt          -> root.txt (symlink, never copied)
func createTestTree(t *testing.T, root string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deep"), 0o755))
	writeFile(t, filepath.Join(root, "root.txt"), []byte("root file content"))
	writeFile(t, filepath.Join(root, "big.bin"), bytes.Repeat([]byte("ABCDEFGHIJKLMNOP"), 20000))
	writeFile(t, filepath.Join(root, "sub", "mid.txt"), []byte("middle file content"))
	writeFile(t, filepath.Join(root, "sub", "deep", "leaf.txt"), []byte("leaf file content"))
	require.NoError(t, os.Symlink("root.txt", filepath.Join(root, "link.txt")))
}

var testTreeFiles = []string{
	"root.txt",
	"big.bin",
	filepath.Join("sub", "mid.txt"),
	filepath.Join("sub", "deep", "leaf.txt"),
}

const testTreeBytes = 17 + 320000 + 19 + 17

// verifyTreeCopy checks that dstRoot holds a byte-exact, time-stamped copy
// of every regular file in the test tree and no symlink.
func verifyTreeCopy(t *testing.T, srcRoot, dstRoot string) {
	t.Helper()

	for _, rel := range testTreeFiles {
		verifyFileCopy(t, filepath.Join(srcRoot, rel), filepath.Join(dstRoot, rel))
	}

	_, err := os.Lstat(filepath.Join(dstRoot, "link.txt"))
	require.ErrorIs(t, err, os.ErrNotExist, "symlinks are not copied")
}

func verifyFileCopy(t *testing.T, src, dst string) {
	t.Helper()

	srcData, err := os.ReadFile(src)
	require.NoError(t, err, "read src %s", src)
	dstData, err := os.ReadFile(dst)
	require.NoError(t, err, "read dst %s", dst)
	require.True(t, bytes.Equal(srcData, dstData), "content mismatch for %s", dst)

	srcInfo, err := os.Stat(src)
	require.NoError(t, err)
	dstInfo, err := os.Stat(dst)
	require.NoError(t, err)
	require.True(t, srcInfo.ModTime().Equal(dstInfo.ModTime()),
		"mtime mismatch for %s: %v != %v", dst, srcInfo.ModTime(), dstInfo.ModTime())
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// setMtime pins path to a fixed, sub-second modification time.
func setMtime(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func sourceFileFor(t *testing.T, root, rel string) SourceFile {
	t.Helper()
	path := filepath.Join(root, rel)
	info, err := os.Stat(path)
	require.NoError(t, err)
	if root == path {
		rel = ""
	}
	return newSourceFile(path, rel, info)
}
