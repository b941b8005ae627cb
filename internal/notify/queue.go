// Package notify dispatches payment outcome emails off the request path.
// The orchestrator enqueues a job and returns immediately; a fixed worker
// pool consumes a bounded channel. When the queue is full the job is
// dropped and counted, never blocking a request.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/4shenafi/alx-travel-app-0x02/internal/mailer"
	"github.com/4shenafi/alx-travel-app-0x02/internal/metrics"
)

type Job struct {
	PaymentReference string
	Outcome          string // payments.OutcomeConfirmation | payments.OutcomeFailure
}

type Queue struct {
	jobs     chan Job
	workers  int
	source   Source
	mail     mailer.Service
	from     string
	fromName string
	logger   *slog.Logger

	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewQueue(size, workers int, source Source, mail mailer.Service, from, fromName string, logger *slog.Logger) *Queue {
	if size < 1 {
		size = 1
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		jobs:     make(chan Job, size),
		workers:  workers,
		source:   source,
		mail:     mail,
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

// EnqueuePaymentResult offers a job without blocking. It reports false when
// the queue is full; the caller logs and moves on.
func (q *Queue) EnqueuePaymentResult(paymentReference, outcome string) bool {
	select {
	case q.jobs <- Job{PaymentReference: paymentReference, Outcome: outcome}:
		metrics.NotifyEnqueued.Inc()
		return true
	default:
		metrics.NotifyDropped.Inc()
		return false
	}
}

func (q *Queue) Start(ctx context.Context) {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx)
	}
	q.logger.Info("notification workers started", "workers", q.workers, "queue_size", cap(q.jobs))
}

// Stop closes the queue and waits for the workers to drain what was already
// accepted. Call only after request traffic has stopped.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() {
		close(q.jobs)
	})
	q.wg.Wait()
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for job := range q.jobs {
		q.deliver(ctx, job)
	}
}

func (q *Queue) deliver(ctx context.Context, job Job) {
	details, err := q.source.PaymentDetails(ctx, job.PaymentReference)
	if err != nil {
		metrics.NotifyFailed.Inc()
		q.logger.ErrorContext(ctx, "notification payment lookup failed",
			"payment_reference", job.PaymentReference, "err", err)
		return
	}

	email := composeEmail(details, job.Outcome, q.from, q.fromName)

	// Single attempt; a dead relay loses the email and is only logged.
	if err := q.mail.Send(ctx, email); err != nil {
		metrics.NotifyFailed.Inc()
		q.logger.ErrorContext(ctx, "notification delivery failed",
			"payment_reference", job.PaymentReference, "outcome", job.Outcome, "err", err)
		return
	}

	metrics.NotifySent.Inc()
	q.logger.InfoContext(ctx, "notification sent",
		"payment_reference", job.PaymentReference, "outcome", job.Outcome, "to", details.UserEmail)
}
