// Package storagetest checks the behavior every simplepitch.Backend shares.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// Run exercises b with the two record keys. The backend must start empty.
func Run(t *testing.T, b simplepitch.Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("name", func(t *testing.T) {
		assert.NotEmpty(t, b.Name())
	})

	t.Run("absent key", func(t *testing.T) {
		_, err := b.Get(ctx, simplepitch.KeyBrands)
		assert.ErrorIs(t, err, simplepitch.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		data := []byte(`[{"id":"b1","name":"Cardiomax","description":"","slides":[],"createdAt":1700000000000}]`)
		require.NoError(t, b.Put(ctx, simplepitch.KeyBrands, data))

		got, err := b.Get(ctx, simplepitch.KeyBrands)
		require.NoError(t, err)
		assert.Equal(t, data, got)

		_, err = b.Get(ctx, simplepitch.KeyDoctors)
		assert.ErrorIs(t, err, simplepitch.ErrNotFound)
	})

	t.Run("put replaces", func(t *testing.T) {
		require.NoError(t, b.Put(ctx, simplepitch.KeyBrands, []byte(`[]`)))
		got, err := b.Get(ctx, simplepitch.KeyBrands)
		require.NoError(t, err)
		assert.Equal(t, []byte(`[]`), got)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, b.Put(ctx, simplepitch.KeyDoctors, []byte(`[]`)))
		require.NoError(t, b.Delete(ctx, simplepitch.KeyBrands))
		require.NoError(t, b.Delete(ctx, simplepitch.KeyDoctors))

		_, err := b.Get(ctx, simplepitch.KeyBrands)
		assert.ErrorIs(t, err, simplepitch.ErrNotFound)
		_, err = b.Get(ctx, simplepitch.KeyDoctors)
		assert.ErrorIs(t, err, simplepitch.ErrNotFound)
	})

	t.Run("delete absent key", func(t *testing.T) {
		assert.NoError(t, b.Delete(ctx, simplepitch.KeyBrands))
	})
}
