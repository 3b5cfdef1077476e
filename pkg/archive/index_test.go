package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "file.csv", NormalizeKey("File.CSV"))
	assert.Equal(t, "file.csv", NormalizeKey("file.csv"))
	assert.Equal(t, NormalizeKey("File.CSV"), NormalizeKey("FILE.csv"))
}

func TestIndexSeed(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "G1.CSV"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "g2.csv"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "duplicates"), 0755))

	idx := NewIndex()
	idx.Seed(ctx, dir)

	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Has("g1.csv"))
	assert.True(t, idx.Has("G1.csv"))
	assert.True(t, idx.Has("g2.CSV"))
	assert.False(t, idx.Has("duplicates"))
	assert.False(t, idx.Has("g3.csv"))
}

func TestIndexSeedMissingDir(t *testing.T) {
	ctx := testContext(t)

	idx := NewIndex()
	idx.Seed(ctx, filepath.Join(t.TempDir(), "nope"))
	assert.Zero(t, idx.Len())
}

func TestIndexAddOnce(t *testing.T) {
	idx := NewIndex()

	assert.True(t, idx.Add("Report.csv"))
	assert.False(t, idx.Add("report.CSV"), "case-insensitive duplicate add")
	assert.Equal(t, 1, idx.Len())
	assert.True(t, idx.Has("REPORT.CSV"))
}
