package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
	"github.com/tendant/simple-pitch/pkg/simplepitch/storage/fs"
	"github.com/tendant/simple-pitch/pkg/simplepitch/storage/storagetest"
)

func TestFSBackend(t *testing.T) {
	b, err := fs.New(fs.Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	storagetest.Run(t, b)
}

func TestFSBackendLayout(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "state")
	b, err := fs.New(fs.Config{BaseDir: dir})
	require.NoError(t, err)

	require.NoError(t, b.Put(ctx, simplepitch.KeyBrands, []byte(`[]`)))

	data, err := os.ReadFile(filepath.Join(dir, "pharma_brands.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFSBackendRejectsBadKeys(t *testing.T) {
	ctx := context.Background()
	b, err := fs.New(fs.Config{BaseDir: t.TempDir()})
	require.NoError(t, err)

	assert.Error(t, b.Put(ctx, "../escape", []byte(`[]`)))
	_, err = b.Get(ctx, "")
	assert.Error(t, err)
}

func TestFSBackendRequiresDir(t *testing.T) {
	_, err := fs.New(fs.Config{})
	assert.Error(t, err)
}
