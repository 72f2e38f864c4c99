package todolists_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/todolists"
	"github.com/aretw0/todolists/internal/config"
	"github.com/aretw0/todolists/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func baseConfig() *config.Config {
	return &config.Config{
		Addr:          ":0",
		Store:         config.StoreMemory,
		SessionSecret: "test-secret",
		RedisPrefix:   "todolists:session:",
	}
}

func createList(t *testing.T, h http.Handler, name string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/lists", strings.NewReader(url.Values{"list_name": {name}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
}

func onlyState(t *testing.T, app *todolists.App) *domain.State {
	t.Helper()
	ctx := context.Background()
	ids, err := app.Sessions().List(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	st, err := app.Sessions().Load(ctx, ids[0])
	require.NoError(t, err)
	return st
}

func TestNew_Stores(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := map[string]func(*config.Config){
		"Memory": func(c *config.Config) {},
		"File": func(c *config.Config) {
			c.Store = config.StoreFile
			c.StorePath = t.TempDir()
		},
		"Redis": func(c *config.Config) {
			c.Store = config.StoreRedis
			c.RedisAddr = mr.Addr()
		},
		"Encrypted Memory": func(c *config.Config) {
			c.EncryptionKey = testKey
		},
	}
	for name, configure := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := baseConfig()
			configure(cfg)

			app, err := todolists.New(cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = app.Close() })

			createList(t, app.Handler(), "Groceries")

			st := onlyState(t, app)
			require.Len(t, st.Lists, 1)
			assert.Equal(t, "Groceries", st.Lists[0].Name)
			mr.FlushAll()
		})
	}
}

func TestNew_UnknownStore(t *testing.T) {
	cfg := baseConfig()
	cfg.Store = "etcd"

	_, err := todolists.New(cfg)
	assert.Error(t, err)
}

func TestNew_Metrics(t *testing.T) {
	app, err := todolists.New(baseConfig(), todolists.WithRegistry(prometheus.NewRegistry()))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenStore_SeesServedSessions(t *testing.T) {
	cfg := baseConfig()
	cfg.Store = config.StoreFile
	cfg.StorePath = t.TempDir()
	cfg.EncryptionKey = testKey

	app, err := todolists.New(cfg)
	require.NoError(t, err)
	createList(t, app.Handler(), "Chores")

	store, closeStore, err := todolists.OpenStore(cfg)
	require.NoError(t, err)
	defer closeStore()

	ids, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, ids, 1)

	st, err := store.Load(context.Background(), ids[0])
	require.NoError(t, err)
	require.Len(t, st.Lists, 1)
	assert.Equal(t, "Chores", st.Lists[0].Name)
}

func TestNew_SessionTTLAppliesToFileStore(t *testing.T) {
	cfg := baseConfig()
	cfg.Store = config.StoreFile
	cfg.StorePath = t.TempDir()
	cfg.SessionTTL = time.Hour

	app, err := todolists.New(cfg)
	require.NoError(t, err)
	createList(t, app.Handler(), "Abandoned")

	ids, err := app.Sessions().List(context.Background())
	require.NoError(t, err)
	require.Len(t, ids, 1)

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(cfg.StorePath, ids[0]+".json"), old, old))

	ids, err = app.Sessions().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids, "sessions idle past session_ttl are gone")
}
