package redis

import (
	"context"
	"encoding/json"
	"testing"
)

func TestFlowStoreSaveAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewFlowStore(client)
	ctx := context.Background()

	doc := json.RawMessage(`{"rules":[{"operator":"AND"}]}`)
	if err := store.Save(ctx, "flow-1", doc); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Get(ctx, "flow-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != string(doc) {
		t.Fatalf("expected %s, got %s", doc, got)
	}
}

func TestFlowStoreOverwrite(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewFlowStore(client)
	ctx := context.Background()

	if err := store.Save(ctx, "flow-1", json.RawMessage(`{"v":1}`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save(ctx, "flow-1", json.RawMessage(`{"v":2}`)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Get(ctx, "flow-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != `{"v":2}` {
		t.Fatalf("expected latest document, got %s", got)
	}
}

func TestFlowStoreUnknownIDReturnsEmptyDocument(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	store := NewFlowStore(client)

	got, err := store.Get(context.Background(), "never-saved")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != "{}" {
		t.Fatalf("expected empty document, got %s", got)
	}
}
