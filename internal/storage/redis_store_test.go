package storage

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisStorePutGet(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := OpenRedis(t.Context(), RedisOptions{Addr: mr.Addr(), Prefix: "test:"})
	if err != nil {
		t.Fatalf("open redis: %v", err)
	}
	defer store.Close()

	if _, err := store.Get(t.Context(), "tasks"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Put(t.Context(), "tasks", `["a"]`); err != nil {
		t.Fatalf("put: %v", err)
	}
	raw, err := mr.Get("test:tasks")
	if err != nil || raw != `["a"]` {
		t.Fatalf("expected prefixed key in redis, got %q %v", raw, err)
	}
	got, err := store.Get(t.Context(), "tasks")
	if err != nil || got != `["a"]` {
		t.Fatalf("unexpected get %q %v", got, err)
	}
}

func TestOpenRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	if _, err := OpenRedis(t.Context(), RedisOptions{Addr: addr}); err == nil {
		t.Fatal("expected connection error")
	}
}
