package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/todolists/pkg/adapters/memory"
	"github.com/aretw0/todolists/pkg/domain"
	"github.com/aretw0/todolists/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStateStoreContract(t, store)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s-%d", i)
			state := domain.NewState()
			state.AddList(id)
			_ = store.Save(ctx, id, state)
			_, _ = store.Load(ctx, id)
		}(i)
	}
	wg.Wait()

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 50)
}
