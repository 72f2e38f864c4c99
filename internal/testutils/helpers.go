// Package testutils holds helpers shared by tests across packages.
package testutils

import (
	"context"
	"testing"

	"github.com/aretw0/todolists/pkg/domain"
	"github.com/aretw0/todolists/pkg/ports"
	"github.com/stretchr/testify/require"
)

// SeedSession saves a state holding one empty list per name under sessionID.
// It fails the test immediately on error.
func SeedSession(t *testing.T, store ports.StateStore, sessionID string, listNames ...string) *domain.State {
	t.Helper()

	st := domain.NewState()
	for _, name := range listNames {
		st.AddList(name)
	}
	require.NoError(t, store.Save(context.Background(), sessionID, st), "Failed to seed session %s", sessionID)
	return st
}
