package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edulane/enrollment-api/pkg/jobs"
	"github.com/edulane/enrollment-api/pkg/mail"
)

// Notifier dispatches templated emails. Implementations must not block the
// calling request on delivery: a persisted write is never reverted or failed
// because its notification could not be sent.
type Notifier interface {
	Notify(ctx context.Context, msg mail.Message)
}

// QueueNotifier enqueues messages on a worker queue backed by a Mailer.
// Failed deliveries are retried by the queue and dropped with an error log
// once retries are exhausted.
type QueueNotifier struct {
	queue   *jobs.Queue
	metrics *MetricsService
	logger  *zap.Logger
}

// NewQueueNotifier builds the notifier and its underlying queue. Metrics may
// be nil. Call Start before use and Stop on shutdown.
func NewQueueNotifier(mailer mail.Mailer, cfg jobs.QueueConfig, metrics *MetricsService, logger *zap.Logger) *QueueNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &QueueNotifier{metrics: metrics, logger: logger}
	n.queue = jobs.NewQueue("mail", func(ctx context.Context, job jobs.Job) error {
		msg, ok := job.Payload.(mail.Message)
		if !ok {
			return fmt.Errorf("unexpected mail payload %T", job.Payload)
		}
		return mailer.Send(ctx, msg)
	}, cfg)
	return n
}

// Start launches the queue workers.
func (n *QueueNotifier) Start(ctx context.Context) {
	n.queue.Start(ctx)
}

// Stop drains the workers.
func (n *QueueNotifier) Stop() {
	n.queue.Stop()
}

// Notify enqueues the message. Enqueue failures are logged and swallowed.
func (n *QueueNotifier) Notify(ctx context.Context, msg mail.Message) {
	job := jobs.Job{ID: uuid.NewString(), Type: "email", Payload: msg}
	if err := n.queue.Enqueue(job); err != nil {
		n.logger.Sugar().Errorw("failed to enqueue notification", "to", msg.To, "subject", msg.Subject, "error", err)
		return
	}
	n.metrics.RecordNotificationEnqueued()
}
