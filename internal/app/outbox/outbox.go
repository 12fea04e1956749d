package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"camperhub/internal/domain/shared/events"
)

// EventRecord is the storage-agnostic shape of one undelivered event. The
// infra store decides how to persist it; the relay decides how to ship it.
type EventRecord struct {
	ID         string
	Name       string
	Payload    []byte
	OccurredAt time.Time
	Aggregate  string
	Headers    map[string]string
}

type Outbox interface {
	Add(ctx context.Context, record EventRecord) error
}

type EventEncoder interface {
	Encode(ev events.DomainEvent) (EventRecord, error)
}

// JSONEventEncoder serializes the event struct itself as the payload.
// IDGenerator exists so tests can force deterministic record ids.
type JSONEventEncoder struct {
	IDGenerator func() string
}

func (e JSONEventEncoder) Encode(ev events.DomainEvent) (EventRecord, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return EventRecord{}, err
	}
	id := ""
	if e.IDGenerator != nil {
		id = e.IDGenerator()
	}
	if id == "" {
		id = uuid.NewString()
	}
	return EventRecord{
		ID:         id,
		Name:       ev.EventName(),
		Payload:    payload,
		OccurredAt: ev.OccurredAt(),
		Aggregate:  ev.AggregateID(),
	}, nil
}

// RecordDomainEvents encodes and stores every pending aggregate event.
// Services call it right after a successful save. A nil outbox is a no-op
// so the in-memory wiring can run without a broker.
func RecordDomainEvents(ctx context.Context, box Outbox, encoder EventEncoder, evs []events.DomainEvent) error {
	if box == nil || len(evs) == 0 {
		return nil
	}
	if encoder == nil {
		encoder = JSONEventEncoder{}
	}
	for _, ev := range evs {
		rec, err := encoder.Encode(ev)
		if err != nil {
			return err
		}
		if err := box.Add(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
