package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"flashcarder/internal/domain"

	"go.uber.org/zap"
)

// Dispatcher posts deck requests to user-supplied endpoints in the background.
// Callers only learn whether a request was handed off; responses are drained and dropped.
type Dispatcher struct {
	pool   *WorkerPool
	client *http.Client
	origin string
	logger *zap.Logger
	now    func() time.Time
}

// NewDispatcher creates a dispatcher. Call Start before Dispatch.
func NewDispatcher(client *http.Client, origin string, workers, queue int, logger *zap.Logger) *Dispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	d := &Dispatcher{
		client: client,
		origin: origin,
		logger: logger,
		now:    time.Now,
	}
	d.pool = NewWorkerPool(workers, queue, func(err error) {
		logger.Warn("Webhook request failed", zap.Error(err))
	})
	return d
}

// Start launches the dispatch workers
func (d *Dispatcher) Start(ctx context.Context) {
	d.pool.Start(ctx)
}

// Close stops accepting requests and waits for in-flight ones
func (d *Dispatcher) Close() {
	d.pool.Close()
}

// Dispatch builds the request for sub and queues it
func (d *Dispatcher) Dispatch(sub domain.Submission) error {
	payload := domain.NewWebhookPayload(sub, d.origin, d.now())

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, sub.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	topic := sub.Topic
	target := req.URL.Host

	return d.pool.Submit(func(ctx context.Context) error {
		resp, err := d.client.Do(req.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("post to %s: %w", target, err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		d.logger.Debug("Webhook request delivered",
			zap.String("host", target),
			zap.String("topic", topic),
			zap.Int("status", resp.StatusCode),
		)
		return nil
	})
}
