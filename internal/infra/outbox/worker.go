package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrWorkerNotConfigured = errors.New("outbox: worker missing dependencies")

type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Worker drains the outbox store and relays each claimed record to the
// broker wrapped in a CloudEvents envelope. A record that cannot be
// delivered is pushed back with a retry time taken from the Backoff ladder.
type Worker struct {
	Store       *Store
	Producer    Producer
	Logger      *slog.Logger
	Interval    time.Duration
	TopicPrefix string
	Source      string
	ID          string
	Backoff     []time.Duration
}

func (w *Worker) Run(ctx context.Context) error {
	if w.Store == nil || w.Producer == nil {
		return ErrWorkerNotConfigured
	}
	interval := w.Interval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	workerID := w.ID
	if workerID == "" {
		workerID = uuid.NewString()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.drain(ctx, workerID); err != nil {
				return err
			}
		}
	}
}

// drain keeps claiming until the store has nothing ready, so a burst of
// events does not wait one tick per record.
func (w *Worker) drain(ctx context.Context, workerID string) error {
	for {
		doc, err := w.Store.Claim(ctx, workerID)
		if err != nil {
			return err
		}
		if doc == nil {
			return nil
		}
		if err := w.deliver(ctx, doc); err != nil {
			if w.Logger != nil {
				w.Logger.Warn("outbox delivery failed",
					"event", doc.Name, "id", doc.ID, "attempts", doc.Attempts, "error", err)
			}
			if markErr := w.Store.MarkFailed(ctx, doc.ID, w.retryAt(doc.Attempts), err.Error()); markErr != nil {
				return markErr
			}
			continue
		}
		if err := w.Store.MarkSent(ctx, doc.ID); err != nil {
			return err
		}
	}
}

func (w *Worker) deliver(ctx context.Context, doc *EventDocument) error {
	payload, err := w.envelope(doc)
	if err != nil {
		return err
	}
	headers := map[string]string{"content-type": "application/cloudevents+json"}
	for k, v := range doc.Headers {
		headers[k] = v
	}
	return w.Producer.Publish(ctx, w.topicFor(doc.Name), doc.Aggregate, payload, headers)
}

func (w *Worker) envelope(doc *EventDocument) ([]byte, error) {
	var data map[string]any
	if err := json.Unmarshal(doc.Payload, &data); err != nil {
		return nil, err
	}
	source := w.Source
	if source == "" {
		source = "app://camperhub"
	}
	return json.Marshal(map[string]any{
		"specversion":     "1.0",
		"id":              uuid.NewString(),
		"type":            doc.Name + ".v1",
		"source":          source,
		"time":            doc.OccurredAt,
		"datacontenttype": "application/json",
		"data":            data,
	})
}

// topicFor maps "camper.created" to "camper.events.v1": one topic per
// aggregate, versioned independently of the event names inside it.
func (w *Worker) topicFor(name string) string {
	base := name
	if idx := strings.IndexRune(name, '.'); idx > 0 {
		base = name[:idx]
	}
	return w.TopicPrefix + base + ".events.v1"
}

func (w *Worker) retryAt(attempts int) time.Time {
	if len(w.Backoff) == 0 {
		return time.Now().Add(5 * time.Second)
	}
	if attempts >= len(w.Backoff) {
		attempts = len(w.Backoff) - 1
	}
	return time.Now().Add(w.Backoff[attempts])
}
