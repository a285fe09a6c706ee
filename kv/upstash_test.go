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

func newFakeUpstash(t *testing.T, token string) *httptest.Server {
	t.Helper()
	values := map[string]string{}

	mux := http.NewServeMux()
	mux.HandleFunc("/get/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		key := r.URL.Path[len("/get/"):]
		value, ok := values[key]
		if !ok {
			io.WriteString(w, `{"result":null}`)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"result": value})
	})
	mux.HandleFunc("/set/", func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path[len("/set/"):]
		body, _ := io.ReadAll(r.Body)
		values[key] = string(body)
		io.WriteString(w, `{"result":"OK"}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		var command []string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&command))
		require.Len(t, command, 2)
		require.Equal(t, "DEL", command[0])

		deleted := int64(0)
		if _, ok := values[command[1]]; ok {
			delete(values, command[1])
			deleted = 1
		}
		json.NewEncoder(w).Encode(map[string]int64{"result": deleted})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestUpstashStoreRoundTrip(t *testing.T) {
	server := newFakeUpstash(t, "token123")
	store := NewUpstashStore(server.URL, "token123")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "room:PARTY:judge", "Amy"))

	value, err := store.Get(ctx, "room:PARTY:judge")
	require.NoError(t, err)
	assert.Equal(t, "Amy", value)

	deleted, err := store.Delete(ctx, "room:PARTY:judge")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = store.Get(ctx, "room:PARTY:judge")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpstashStoreMissingKey(t *testing.T) {
	server := newFakeUpstash(t, "token123")
	store := NewUpstashStore(server.URL, "token123")

	_, err := store.Get(context.Background(), "room:NOPE:judge")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpstashStoreDeleteAbsentKey(t *testing.T) {
	server := newFakeUpstash(t, "token123")
	store := NewUpstashStore(server.URL, "token123")

	deleted, err := store.Delete(context.Background(), "room:NOPE:lastWinner")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestUpstashStoreBadToken(t *testing.T) {
	server := newFakeUpstash(t, "token123")
	store := NewUpstashStore(server.URL, "wrong")

	_, err := store.Get(context.Background(), "room:PARTY:judge")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
