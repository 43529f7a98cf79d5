package mailer

import (
	"context"
	"sync"
	"time"

	"atelier/internal/middleware"
	"atelier/internal/observability"
)

const sendTimeout = 30 * time.Second

// Dispatcher delivers queued messages on a single background worker.
// Enqueue never blocks: when the queue is full the message is dropped and
// the drop is logged and counted.
type Dispatcher struct {
	sender Sender
	queue  chan Message
	done   chan struct{}
	once   sync.Once
}

// NewDispatcher starts the worker goroutine. A nil sender means mail is not
// configured; messages are still accepted and logged as skipped so the rest
// of the app doesn't have to care.
func NewDispatcher(sender Sender, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, queueSize),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue queues a message for delivery. Returns false when the queue is
// full and the message was dropped.
func (d *Dispatcher) Enqueue(msg Message) bool {
	select {
	case d.queue <- msg:
		return true
	default:
		middleware.Logger.Warn("mail queue full, dropping message",
			"to", msg.To, "subject", msg.Subject)
		observability.MailDeliveries.WithLabelValues("dropped").Inc()
		return false
	}
}

// Shutdown stops accepting new messages and drains the queue until it is
// empty or ctx expires.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	d.once.Do(func() { close(d.queue) })
	select {
	case <-d.done:
	case <-ctx.Done():
		middleware.Logger.Warn("mail dispatcher shutdown timed out with messages pending")
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	if d.sender == nil {
		middleware.Logger.Info("mail not configured, skipping delivery",
			"to", msg.To, "subject", msg.Subject)
		observability.MailDeliveries.WithLabelValues("skipped").Inc()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.sender.Send(ctx, msg); err != nil {
		middleware.Logger.Error("mail delivery failed",
			"to", msg.To, "subject", msg.Subject, "error", err)
		observability.MailDeliveries.WithLabelValues("failure").Inc()
		return
	}
	middleware.Logger.Info("mail delivered", "to", msg.To, "subject", msg.Subject)
	observability.MailDeliveries.WithLabelValues("success").Inc()
}
