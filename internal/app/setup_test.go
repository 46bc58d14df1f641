package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms2csv/internal/metastock"
)

func TestLocateIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Master"), nil, 0o644))

	path, err := LocateIndex(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Master"), path)

	// The extended index wins over the original one.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "emaster"), nil, 0o644))
	path, err = LocateIndex(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "emaster"), path)
}

func TestLocateIndexExplicit(t *testing.T) {
	path, err := LocateIndex(t.TempDir(), "/feeds/XMASTER")
	require.NoError(t, err)
	assert.Equal(t, "/feeds/XMASTER", path)
}

func TestLocateIndexMissing(t *testing.T) {
	_, err := LocateIndex(t.TempDir(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no index file")
}

func TestOpenIndex(t *testing.T) {
	dir := t.TempDir()
	// A header-only index parses to zero records.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "EMASTER"), make([]byte, 192), 0o644))

	idx, err := OpenIndex(&Config{Dir: dir, Charset: "cp437"})
	require.NoError(t, err)
	assert.Equal(t, metastock.FormatEMaster, idx.Format)
	assert.Empty(t, idx.Records)

	_, err = OpenIndex(&Config{Dir: dir, Charset: "utf-9"})
	assert.Error(t, err)
}
