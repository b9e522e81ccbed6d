// Package outbox delivers best-effort side effects (buyer/seller
// notifications) without blocking or failing the webhook path. Tasks go
// through a buffered channel to worker goroutines; failures are logged
// and dropped, the gateway's retry covers nothing here on purpose.
package outbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/and161185/paygate/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dispatchTimeout = 20 * time.Second

type Task struct {
	ID      string            `json:"id"`
	Kind    string            `json:"kind"`
	URL     string            `json:"-"`
	Payload map[string]string `json:"payload"`
}

type Outbox struct {
	logger *zap.SugaredLogger
	client *http.Client
	ch     chan Task
}

func New(logger *zap.SugaredLogger, buffer int) *Outbox {
	return &Outbox{
		logger: logger,
		client: &http.Client{Timeout: dispatchTimeout},
		ch:     make(chan Task, buffer),
	}
}

// Run starts the worker pool and blocks until ctx is cancelled.
func (o *Outbox) Run(ctx context.Context, workerCount int) {
	for i := 0; i < workerCount; i++ {
		go o.worker(ctx)
	}
	<-ctx.Done()
}

// Enqueue never blocks. A full queue drops the task with a warning;
// side effects are not worth stalling the primary state transition.
func (o *Outbox) Enqueue(kind, url string, payload map[string]string) {
	if url == "" {
		return
	}

	task := Task{ID: uuid.NewString(), Kind: kind, URL: url, Payload: payload}
	select {
	case o.ch <- task:
	default:
		o.logger.Warnf("outbox full, dropped %s task %s", task.Kind, task.ID)
		metrics.OutboxDispatches.WithLabelValues(task.Kind, "dropped").Inc()
	}
}

func (o *Outbox) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case task := <-o.ch:
			if err := o.dispatch(ctx, task); err != nil {
				o.logger.Errorf("dispatch %s task %s: %v", task.Kind, task.ID, err)
				metrics.OutboxDispatches.WithLabelValues(task.Kind, "failed").Inc()
				continue
			}
			metrics.OutboxDispatches.WithLabelValues(task.Kind, "ok").Inc()
		}
	}
}

func (o *Outbox) dispatch(ctx context.Context, task Task) error {
	body, err := json.Marshal(task)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, dispatchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, task.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}
