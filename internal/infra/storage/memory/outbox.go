package memory

import (
	"context"
	"sync"

	appoutbox "camperhub/internal/app/outbox"
)

// Outbox collects event records in memory for runs without a broker.
// Nothing drains it; tests read it back through Records.
type Outbox struct {
	mu      sync.RWMutex
	records []appoutbox.EventRecord
}

var _ appoutbox.Outbox = (*Outbox)(nil)

func NewOutbox() *Outbox {
	return &Outbox{}
}

func (o *Outbox) Add(_ context.Context, record appoutbox.EventRecord) error {
	o.mu.Lock()
	o.records = append(o.records, record)
	o.mu.Unlock()
	return nil
}

// Records snapshots everything added so far, in insertion order.
func (o *Outbox) Records() []appoutbox.EventRecord {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]appoutbox.EventRecord(nil), o.records...)
}
