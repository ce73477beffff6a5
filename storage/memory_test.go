package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	t.Run("missing key returns ErrNoRecord", func(t *testing.T) {
		store := NewMemoryStorage()

		_, err := store.Get("posts")
		assert.ErrorIs(t, err, ErrNoRecord)
	})

	t.Run("set then get round trips", func(t *testing.T) {
		store := NewMemoryStorage()

		require.NoError(t, store.Set("posts", `[{"id":"1"}]`))

		value, err := store.Get("posts")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"1"}]`, value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		store := NewMemoryStorage()

		require.NoError(t, store.Set("posts", "old"))
		require.NoError(t, store.Set("posts", "new"))

		value, err := store.Get("posts")
		require.NoError(t, err)
		assert.Equal(t, "new", value)
	})

	t.Run("keys are independent", func(t *testing.T) {
		store := NewMemoryStorage()

		require.NoError(t, store.Set("posts", "p"))
		require.NoError(t, store.Set("tags", "t"))

		posts, err := store.Get("posts")
		require.NoError(t, err)
		tags, err := store.Get("tags")
		require.NoError(t, err)
		assert.Equal(t, "p", posts)
		assert.Equal(t, "t", tags)
	})
}
