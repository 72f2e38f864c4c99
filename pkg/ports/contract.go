package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/todolists/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState()
		groceries := state.AddList("Groceries")
		list, _ := state.FindList(groceries.ID)
		list.AddTodo("Milk")
		list.AddTodo("Eggs")
		list.Todos[0].Completed = true
		state.SetFlash(domain.FlashSuccess, "The list has been added successfully.")

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		require.Len(t, loaded.Lists, 1)
		assert.Equal(t, "Groceries", loaded.Lists[0].Name)
		assert.Equal(t, state.Lists[0].Todos, loaded.Lists[0].Todos)
		require.NotNil(t, loaded.Flash)
		assert.Equal(t, domain.FlashSuccess, loaded.Flash.Kind)
	})

	t.Run("Load is isolated from later mutation", func(t *testing.T) {
		state := domain.NewState()
		state.AddList("Original")
		require.NoError(t, store.Save(ctx, sessionID, state))

		state.Lists[0].Name = "Mutated after save"

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Original", loaded.Lists[0].Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewState())
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState())
		_ = store.Save(ctx, id2, domain.NewState())

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
