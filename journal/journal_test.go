package journal_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/holiman/uint256"
	"github.com/pflow-xyz/go-token/event"
	"github.com/pflow-xyz/go-token/journal"
	"github.com/rs/zerolog"
)

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func() journal.Store {
		return journal.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func() journal.Store {
		store, err := journal.NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("failed to create sqlite store: %v", err)
		}
		return store
	})
}

func runStoreTests(t *testing.T, newStore func() journal.Store) {
	t.Run("AppendAssignsSequence", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		first := &journal.Entry{Type: "transfer-occurred", Payload: []byte(`{"from":"alice"}`)}
		second := &journal.Entry{Type: "access-granted", Payload: []byte(`{"granter":"alice"}`)}

		if err := store.Append(ctx, first); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if err := store.Append(ctx, second); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		if first.Seq != 1 || second.Seq != 2 {
			t.Errorf("expected sequences 1,2, got %d,%d", first.Seq, second.Seq)
		}
		if first.ID == "" || second.ID == "" {
			t.Error("expected IDs to be assigned")
		}
	})

	t.Run("ReadFromSequence", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			e := &journal.Entry{Type: "transfer-occurred", Payload: []byte(`{}`)}
			if err := store.Append(ctx, e); err != nil {
				t.Fatalf("append %d failed: %v", i, err)
			}
		}

		entries, err := store.Read(ctx, 3)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[0].Seq != 3 {
			t.Errorf("expected first seq 3, got %d", entries[0].Seq)
		}
	})

	t.Run("ReadPastEndIsEmpty", func(t *testing.T) {
		store := newStore()
		defer store.Close()

		entries, err := store.Read(context.Background(), 100)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %d", len(entries))
		}
	})

	t.Run("PayloadRoundTrip", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		payload := []byte(`{"from":"alice","to":"bob","amount":"0xc8"}`)
		if err := store.Append(ctx, &journal.Entry{Type: "transfer-occurred", Payload: payload}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		entries, err := store.Read(ctx, 1)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(entries[0].Payload) != string(payload) {
			t.Errorf("payload mismatch: %s", entries[0].Payload)
		}
	})
}

func TestRecorder(t *testing.T) {
	store := journal.NewMemoryStore()
	bus := event.NewBus()
	journal.NewRecorder(store, zerolog.Nop()).Attach(bus)

	bus.Publish(event.TransferOccurred, event.Transfer{
		From: "alice", To: "bob", Amount: uint256.NewInt(200),
	})
	bus.Publish(event.AccessRevoked, event.Access{Granter: "alice", Grantee: "bob"})
	bus.Drain()

	entries, err := store.Read(context.Background(), 1)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Type != string(event.TransferOccurred) {
		t.Errorf("expected transfer-occurred, got %s", entries[0].Type)
	}

	var payload map[string]any
	if err := json.Unmarshal(entries[0].Payload, &payload); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if payload["from"] != "alice" || payload["to"] != "bob" {
		t.Errorf("unexpected payload: %v", payload)
	}
}
