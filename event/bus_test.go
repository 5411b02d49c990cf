package event_test

import (
	"sync"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/pflow-xyz/go-token/event"
	"github.com/pflow-xyz/go-token/ledger"
)

func TestSubscribeAndDrain(t *testing.T) {
	bus := event.NewBus()

	var transfers, all int
	bus.Subscribe(event.TransferOccurred, func(s *event.Signal) { transfers++ })
	bus.SubscribeAll(func(s *event.Signal) { all++ })

	bus.Publish(event.TransferOccurred, event.Transfer{
		From: "alice", To: "bob", Amount: uint256.NewInt(1),
	})
	bus.Publish(event.AccessGranted, event.Access{Granter: "alice", Grantee: "bob"})
	bus.Drain()

	if transfers != 1 {
		t.Errorf("expected 1 transfer signal, got %d", transfers)
	}
	if all != 2 {
		t.Errorf("expected 2 signals on wildcard subscriber, got %d", all)
	}
}

func TestSignalsCarryIDAndTimestamp(t *testing.T) {
	bus := event.NewBus()

	var got *event.Signal
	bus.SubscribeAll(func(s *event.Signal) { got = s })
	bus.Publish(event.AllowanceChanged, event.Allowance{
		Owner: "alice", Spender: "bob", Amount: uint256.NewInt(5),
	})
	bus.Drain()

	if got == nil {
		t.Fatal("signal not delivered")
	}
	if got.ID == "" {
		t.Error("expected signal ID to be assigned")
	}
	if got.Timestamp.IsZero() {
		t.Error("expected signal timestamp to be assigned")
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	bus := event.NewBus()

	// No dispatcher is running and nothing drains the queue; publishing
	// past capacity must drop rather than block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 5000; i++ {
			bus.Publish(event.TransferOccurred, event.Transfer{From: "a", To: "b"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("publish blocked on a full queue")
	}

	stats := bus.Stats()
	if stats.Dropped == 0 {
		t.Error("expected dropped signals on a full queue")
	}
	if stats.Published+stats.Dropped != 5000 {
		t.Errorf("published %d + dropped %d != 5000", stats.Published, stats.Dropped)
	}
}

func TestStartStopDispatch(t *testing.T) {
	bus := event.NewBus()

	var mu sync.Mutex
	var got []ledger.Address
	bus.Subscribe(event.TransferOccurred, func(s *event.Signal) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, s.Payload.(event.Transfer).To)
	})

	bus.Start()
	defer bus.Stop()

	bus.Publish(event.TransferOccurred, event.Transfer{From: "alice", To: "bob"})

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("signal not dispatched by background loop")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if got[0] != "bob" {
		t.Errorf("expected payload to=bob, got %s", got[0])
	}
}
