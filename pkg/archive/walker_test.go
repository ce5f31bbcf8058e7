package archive

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWalkSource(t *testing.T) {
	sourceDir := t.TempDir()
	for _, name := range []string{"a.txt", "sub/b.txt", "sub/deep/c.bin"} {
		p := filepath.Join(sourceDir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(name), 0644))
	}

	staging := &StagingList{}
	require.NoError(t, WalkSource(sourceDir, staging))
	require.Equal(t, 3, staging.Len())

	names := make(map[string]string)
	for _, e := range staging.Entries() {
		names[e.Name] = e.SourcePath
	}
	require.Contains(t, names, "a.txt")
	require.Contains(t, names, "sub/b.txt")
	require.Contains(t, names, "sub/deep/c.bin")
	require.Equal(t, filepath.Join(sourceDir, "sub", "b.txt"), names["sub/b.txt"])
}

func TestWalkSourceNameLengthBoundary(t *testing.T) {
	sourceDir := t.TempDir()

	// 63 significant bytes fits the slot, 64 does not.
	fits := strings.Repeat("f", NameSlotLength-1)
	tooLong := strings.Repeat("g", NameSlotLength)
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, fits), []byte("ok"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, tooLong), []byte("no"), 0644))

	staging := &StagingList{}
	require.NoError(t, WalkSource(sourceDir, staging))

	require.Equal(t, 1, staging.Len())
	require.Equal(t, fits, staging.Entries()[0].Name)
}

func TestWalkSourceSkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation is unreliable on windows")
	}

	sourceDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "real.txt"), []byte("x"), 0644))
	require.NoError(t, os.Symlink(
		filepath.Join(sourceDir, "real.txt"),
		filepath.Join(sourceDir, "link.txt")))

	staging := &StagingList{}
	require.NoError(t, WalkSource(sourceDir, staging))

	require.Equal(t, 1, staging.Len())
	require.Equal(t, "real.txt", staging.Entries()[0].Name)
}
