package journal

import (
	"context"
	"encoding/json"

	"github.com/pflow-xyz/go-token/event"
	"github.com/rs/zerolog"
)

// Recorder subscribes to a bus and appends every signal to a store.
// Append failures are logged and dropped; the journal is a best-effort
// consumer of a fire-and-forget channel, so a failed write never
// propagates back to the publisher.
type Recorder struct {
	store  Store
	logger zerolog.Logger
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store Store, logger zerolog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Attach subscribes the recorder to every signal type on the bus.
func (r *Recorder) Attach(bus *event.Bus) {
	bus.SubscribeAll(r.record)
}

func (r *Recorder) record(s *event.Signal) {
	payload, err := json.Marshal(s.Payload)
	if err != nil {
		r.logger.Error().Err(err).Str("type", string(s.Type)).Msg("encode signal payload")
		return
	}

	e := &Entry{
		ID:      s.ID,
		Type:    string(s.Type),
		Payload: payload,
		At:      s.Timestamp,
	}
	if err := r.store.Append(context.Background(), e); err != nil {
		r.logger.Error().Err(err).Str("type", string(s.Type)).Msg("append journal entry")
	}
}
