package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/todolists/pkg/domain"
	"github.com/aretw0/todolists/pkg/ports"
)

// KeySize is the required key length (AES-256).
const KeySize = 32

// ErrNotSealed is returned when a stored state carries no encrypted payload.
var ErrNotSealed = errors.New("state is missing encrypted data envelope")

// SealedKey is the State.Meta entry holding the base64 ciphertext.
const SealedKey = "sealed"

// envelope is what the wrapped store persists in place of the real state.
type envelope struct {
	ciphertext []byte
}

func (e envelope) state() *domain.State {
	return &domain.State{
		Lists: []domain.List{},
		Meta:  map[string]string{SealedKey: base64.StdEncoding.EncodeToString(e.ciphertext)},
	}
}

// openEnvelope extracts the ciphertext, rejecting plain states.
func openEnvelope(st *domain.State) (envelope, error) {
	sealed := st.Meta[SealedKey]
	if sealed == "" || len(st.Lists) > 0 {
		return envelope{}, ErrNotSealed
	}
	ciphertext, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return envelope{}, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}
	return envelope{ciphertext: ciphertext}, nil
}

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new data.
	ActiveKey []byte

	// FallbackKeys are tried in order when the active key fails to decrypt.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.StateStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that seals the whole session state with AES-GCM.
// The underlying store only ever sees an envelope carrying the ciphertext in its Meta.
func NewEncryptionMiddleware(config EncryptionConfig) (Middleware, error) {
	if len(config.ActiveKey) != KeySize {
		return nil, fmt.Errorf("active key must be %d bytes, got %d", KeySize, len(config.ActiveKey))
	}
	for i, k := range config.FallbackKeys {
		if len(k) != KeySize {
			return nil, fmt.Errorf("fallback key %d must be %d bytes, got %d", i, KeySize, len(k))
		}
	}
	return func(next ports.StateStore) ports.StateStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, sessionID string, state *domain.State) error {
	plainText, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt state: %w", err)
	}

	return m.next.Save(ctx, sessionID, envelope{ciphertext: ciphertext}.state())
}

func (m *encryptionMiddleware) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	stored, err := m.next.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Fail secure: a plain state under an encrypting store is rejected.
	env, err := openEnvelope(stored)
	if err != nil {
		return nil, err
	}

	plainText, err := decryptWithRotation(env.ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt state: %w", err)
	}

	var realState domain.State
	if err := json.Unmarshal(plainText, &realState); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted state: %w", err)
	}
	if realState.Lists == nil {
		realState.Lists = []domain.List{}
	}
	return &realState, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// Helpers

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}
	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}
	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, body := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
