package kv

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeProxy(t *testing.T) *httptest.Server {
	t.Helper()
	values := map[string]string{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/kv/get", func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		if key == "" {
			http.Error(w, `{"error":"key required"}`, http.StatusBadRequest)
			return
		}
		value, ok := values[key]
		if !ok {
			io.WriteString(w, `{"result":null}`)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"result": value})
	})
	mux.HandleFunc("/api/kv/set", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Key, Value string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		values[req.Key] = req.Value
		io.WriteString(w, `{"result":"OK"}`)
	})
	mux.HandleFunc("/api/kv/del", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Key string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		deleted := int64(0)
		if _, ok := values[req.Key]; ok {
			delete(values, req.Key)
			deleted = 1
		}
		json.NewEncoder(w).Encode(map[string]int64{"result": deleted})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestProxyClientRoundTrip(t *testing.T) {
	server := newFakeProxy(t)
	client := NewProxyClient(server.URL)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "room:PARTY:slight", "You ruined a surprise party."))

	value, err := client.Get(ctx, "room:PARTY:slight")
	require.NoError(t, err)
	assert.Equal(t, "You ruined a surprise party.", value)

	deleted, err := client.Delete(ctx, "room:PARTY:slight")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = client.Get(ctx, "room:PARTY:slight")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProxyClientAbsentKey(t *testing.T) {
	server := newFakeProxy(t)
	client := NewProxyClient(server.URL)

	_, err := client.Get(context.Background(), "room:NOPE:round")
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := client.Delete(context.Background(), "room:NOPE:round")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestMemoryStoreContract(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", "v1"))
	require.NoError(t, store.Set(ctx, "k", "v2"))

	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)

	deleted, err := store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}
