package ports

import (
	"context"
	"testing"
	"time"

	"github.com/clarita-pm/clarita/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		sess := domain.NewSession(sessionID, "parse", "add a save button to the dashboard page")
		sess.Fields.TargetPage = "dashboard"
		sess.Questions = []string{"Which page?"}

		err := store.Save(ctx, sess)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sess.ID, loaded.ID)
		assert.Equal(t, sess.Cursor, loaded.Cursor)
		assert.Equal(t, "dashboard", loaded.Fields.TargetPage)
		assert.Equal(t, []string{"Which page?"}, loaded.Questions)
	})

	t.Run("Load Isolation", func(t *testing.T) {
		sess := domain.NewSession(sessionID+"-iso", "parse", "add a button")
		require.NoError(t, store.Save(ctx, sess))

		loaded, err := store.Load(ctx, sess.ID)
		require.NoError(t, err)

		// Mutating the loaded copy must not leak back into the store.
		loaded.Fields.TargetPage = "mutated"
		again, err := store.Load(ctx, sess.ID)
		require.NoError(t, err)
		assert.Empty(t, again.Fields.TargetPage)

		_ = store.Delete(ctx, sess.ID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewSession(sessionID, "parse", "x")))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, domain.NewSession(id1, "parse", "x"))
		_ = store.Save(ctx, domain.NewSession(id2, "parse", "y"))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
