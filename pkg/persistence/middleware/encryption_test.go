package middleware_test

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/todolists/pkg/adapters/memory"
	"github.com/aretw0/todolists/pkg/domain"
	"github.com/aretw0/todolists/pkg/persistence/middleware"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, middleware.KeySize)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func mustMiddleware(t *testing.T, cfg middleware.EncryptionConfig) middleware.Middleware {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	if err != nil {
		t.Fatalf("NewEncryptionMiddleware: %v", err)
	}
	return mw
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := memory.NewStore()
	secureStore := mustMiddleware(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)

	ctx := context.Background()
	sessionID := "test-session"
	originalState := domain.NewState()
	originalState.AddList("my-secret-list")

	if err := secureStore.Save(ctx, sessionID, originalState); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// The underlying store must only see the envelope.
	storedState, err := underlyingStore.Load(ctx, sessionID)
	if err != nil {
		t.Fatalf("Underlying load failed: %v", err)
	}
	if len(storedState.Lists) != 0 {
		t.Fatalf("Expected lists to be hidden, found: %+v", storedState.Lists)
	}
	sealed := storedState.Meta[middleware.SealedKey]
	if sealed == "" || strings.Contains(sealed, "my-secret-list") {
		t.Fatal("Expected sealed ciphertext in envelope")
	}

	loadedState, err := secureStore.Load(ctx, sessionID)
	if err != nil {
		t.Fatalf("Load via middleware failed: %v", err)
	}
	if len(loadedState.Lists) != 1 || loadedState.Lists[0].Name != "my-secret-list" {
		t.Errorf("Expected decrypted list, got %+v", loadedState.Lists)
	}
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	secureStoreOld := mustMiddleware(t, middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)

	ctx := context.Background()
	sessionID := "rotation-session"
	originalState := domain.NewState()
	originalState.AddList("encrypted-with-old-key")

	if err := secureStoreOld.Save(ctx, sessionID, originalState); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	secureStoreNew := mustMiddleware(t, middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	loadedState, err := secureStoreNew.Load(ctx, sessionID)
	if err != nil {
		t.Fatalf("Load with rotated key failed: %v", err)
	}
	if loadedState.Lists[0].Name != "encrypted-with-old-key" {
		t.Errorf("Decryption with fallback key failed")
	}

	loadedState.Lists[0].Name = "encrypted-with-new-key"
	if err := secureStoreNew.Save(ctx, sessionID, loadedState); err != nil {
		t.Fatalf("Save with new key failed: %v", err)
	}

	if _, err := secureStoreOld.Load(ctx, sessionID); err == nil {
		t.Error("Expected failure when loading new-key encryption with old-key middleware")
	}
}

func TestEncryptionMiddleware_RejectsPlainState(t *testing.T) {
	underlyingStore := memory.NewStore()
	ctx := context.Background()
	_ = underlyingStore.Save(ctx, "plain", domain.NewState())

	secureStore := mustMiddleware(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)

	_, err := secureStore.Load(ctx, "plain")
	if !errors.Is(err, middleware.ErrNotSealed) {
		t.Errorf("Expected ErrNotSealed, got %v", err)
	}
}

func TestEncryptionMiddleware_KeepsIDHighWater(t *testing.T) {
	secureStore := mustMiddleware(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(memory.NewStore())
	ctx := context.Background()

	state := domain.NewState()
	state.AddList("a")
	state.AddList("b")
	if err := state.DeleteList(2); err != nil {
		t.Fatal(err)
	}
	if err := secureStore.Save(ctx, "s", state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := secureStore.Load(ctx, "s")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if l := loaded.AddList("c"); l.ID != 3 {
		t.Errorf("Expected id 3 after reload, got %d", l.ID)
	}
	if loaded.Meta != nil {
		t.Errorf("Expected decrypted state to carry no envelope meta, got %v", loaded.Meta)
	}
}

func TestEncryptionMiddleware_PassesNotFound(t *testing.T) {
	secureStore := mustMiddleware(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)})(memory.NewStore())

	_, err := secureStore.Load(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	if _, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")}); err == nil {
		t.Error("Expected error for invalid active key size")
	}
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	if err == nil {
		t.Error("Expected error for invalid fallback key size")
	}
}

func TestChain_Order(t *testing.T) {
	underlyingStore := memory.NewStore()
	key := generateKey(t)
	store := middleware.Chain(underlyingStore, mustMiddleware(t, middleware.EncryptionConfig{ActiveKey: key}))

	ctx := context.Background()
	state := domain.NewState()
	state.AddList("chained")
	if err := store.Save(ctx, "s", state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	raw, _ := underlyingStore.Load(ctx, "s")
	if raw.Meta[middleware.SealedKey] == "" {
		t.Error("Expected chained store to encrypt")
	}
}
