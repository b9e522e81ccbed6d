package outbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestOutboxDelivers(t *testing.T) {
	received := make(chan Task, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var task Task
		if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
			t.Errorf("decode task: %v", err)
		}
		received <- task
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	o := New(zaptest.NewLogger(t).Sugar(), 10)
	go o.Run(ctx, 2)

	o.Enqueue("seller_paid", ts.URL, map[string]string{"order_id": "ORD-1", "net": "25.00"})

	select {
	case task := <-received:
		if task.Kind != "seller_paid" {
			t.Errorf("unexpected kind %s", task.Kind)
		}
		if task.Payload["order_id"] != "ORD-1" {
			t.Errorf("unexpected payload %v", task.Payload)
		}
		if task.ID == "" {
			t.Error("task id not set")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("task was not delivered")
	}
}

func TestOutboxFailureDoesNotBlock(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	o := New(zaptest.NewLogger(t).Sugar(), 2)
	go o.Run(ctx, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			o.Enqueue("buyer_paid", ts.URL, map[string]string{"n": "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a failing dispatcher")
	}
}

func TestOutboxSkipsEmptyURL(t *testing.T) {
	o := New(zaptest.NewLogger(t).Sugar(), 1)

	// no workers running; an enqueued task would stay in the channel
	o.Enqueue("seller_paid", "", map[string]string{"order_id": "ORD-1"})

	if len(o.ch) != 0 {
		t.Errorf("expected no task for empty URL, queue holds %d", len(o.ch))
	}
}
