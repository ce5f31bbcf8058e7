package bale

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/balekit/bale/pkg/common"
)

func TestCreateAndLookup(t *testing.T) {
	sourceDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "hello.txt"), []byte("hello"), 0644))

	outputPath := filepath.Join(t.TempDir(), "out.bale")
	require.NoError(t, CreateArchive(CreateOptions{
		InputPath:  sourceDir,
		OutputPath: outputPath,
		Force:      true,
	}))

	data, err := Lookup(outputPath, "hello.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)

	ok, err := Exists(outputPath, "hello.txt")
	require.NoError(t, err)
	require.True(t, ok)

	entries, err := List(outputPath)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	info, err := Stat(outputPath, "hello.txt")
	require.NoError(t, err)
	require.Equal(t, common.CompressionNone, info.Compression)
}

func TestCreateFirstPackWithoutForce(t *testing.T) {
	sourceDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "a.txt"), []byte("a"), 0644))

	// No archive exists yet; the staleness gate must not swallow the
	// very first pack.
	outputPath := filepath.Join(t.TempDir(), "out.bale")
	require.NoError(t, CreateArchive(CreateOptions{InputPath: sourceDir, OutputPath: outputPath}))

	_, err := os.Stat(outputPath)
	require.NoError(t, err, "first create must write the bale")

	data, err := Lookup(outputPath, "a.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("a"), data)
}

func TestCreateSkipsUpToDateArchive(t *testing.T) {
	sourceDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "a.txt"), []byte("a"), 0644))

	outputPath := filepath.Join(t.TempDir(), "out.bale")
	require.NoError(t, CreateArchive(CreateOptions{InputPath: sourceDir, OutputPath: outputPath, Force: true}))

	// Make the archive strictly newer than the directory.
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(outputPath, future, future))
	packedInfo, err := os.Stat(outputPath)
	require.NoError(t, err)

	require.NoError(t, CreateArchive(CreateOptions{InputPath: sourceDir, OutputPath: outputPath}))

	skippedInfo, err := os.Stat(outputPath)
	require.NoError(t, err)
	require.Equal(t, packedInfo.ModTime(), skippedInfo.ModTime(), "up-to-date bale must not be rewritten")
}

func TestCreateRepacksStaleArchive(t *testing.T) {
	sourceDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "a.txt"), []byte("v1"), 0644))

	outputPath := filepath.Join(t.TempDir(), "out.bale")
	require.NoError(t, CreateArchive(CreateOptions{InputPath: sourceDir, OutputPath: outputPath, Force: true}))

	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "a.txt"), []byte("v2"), 0644))

	// Make the directory strictly newer than the archive.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(outputPath, past, past))

	require.NoError(t, CreateArchive(CreateOptions{InputPath: sourceDir, OutputPath: outputPath}))

	data, err := Lookup(outputPath, "a.txt")
	require.NoError(t, err)
	require.Equal(t, []byte("v2"), data)
}

func TestExtractArchive(t *testing.T) {
	sourceDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(sourceDir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "sub", "b.txt"), []byte("nested"), 0644))

	outputPath := filepath.Join(t.TempDir(), "out.bale")
	require.NoError(t, CreateArchive(CreateOptions{InputPath: sourceDir, OutputPath: outputPath, Force: true}))

	extractDir := t.TempDir()
	require.NoError(t, ExtractArchive(ExtractOptions{InputFile: outputPath, OutputPath: extractDir}))

	data, err := os.ReadFile(filepath.Join(extractDir, "sub", "b.txt"))
	require.NoError(t, err)
	require.Equal(t, []byte("nested"), data)
}

func TestSetLogLevel(t *testing.T) {
	require.NoError(t, SetLogLevel("debug"))
	require.NoError(t, SetLogLevel("WARN"))
	require.Error(t, SetLogLevel("loud"))
	require.NoError(t, SetLogLevel("info"))
}
