package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/service-center/internal/models"
)

type Options struct {
	PollInterval time.Duration
	MaxAttempts  int
	BatchSize    int

	// How long a claimed message stays with one worker before another may
	// take it over.
	ClaimLease time.Duration

	// Optional collaborators.
	Archive  Archive
	Payments PaymentLinker
}

type Worker struct {
	store    Store
	notifier Notifier
	renderer Renderer
	opts     Options
	kick     chan struct{}
}

func NewWorker(store Store, notifier Notifier, renderer Renderer, opts Options) *Worker {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 5
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 20
	}
	if opts.ClaimLease <= 0 {
		opts.ClaimLease = 5 * time.Minute
	}

	return &Worker{
		store:    store,
		notifier: notifier,
		renderer: renderer,
		opts:     opts,
		kick:     make(chan struct{}, 1),
	}
}

// Kick schedules a drain without blocking the caller.
func (w *Worker) Kick() {
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// Run drains the outbox on every kick and poll tick until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		w.Drain(ctx)

		select {
		case <-ctx.Done():
			return
		case <-w.kick:
		case <-ticker.C:
		}
	}
}

// Drain claims one batch of messages, delivers it and reports how many were
// sent.
func (w *Worker) Drain(ctx context.Context) int {
	msgs, err := w.store.Claim(ctx, w.opts.BatchSize, w.opts.ClaimLease)
	if err != nil {
		if ctx.Err() == nil {
			logrus.WithError(err).Error("outbox: claim messages")
		}
		return 0
	}

	sent := 0
	for i := range msgs {
		if ctx.Err() != nil {
			return sent
		}

		msg := &msgs[i]
		log := logrus.WithFields(logrus.Fields{
			"message_id": msg.ID.String(),
			"kind":       msg.Kind,
			"attempt":    msg.Attempts + 1,
		})

		artifact, err := w.deliver(ctx, msg)
		if err != nil {
			log.WithError(err).Warn("outbox: delivery failed")
			if err := w.store.MarkAttempt(ctx, msg.ID, err.Error(), w.opts.MaxAttempts); err != nil {
				log.WithError(err).Error("outbox: record failed attempt")
			}
			if msg.Attempts+1 >= w.opts.MaxAttempts {
				log.Error("outbox: giving up on message")
			}
			continue
		}

		if err := w.store.MarkSent(ctx, msg.ID, artifact); err != nil {
			log.WithError(err).Error("outbox: mark sent")
			continue
		}
		sent++
	}

	return sent
}

func (w *Worker) deliver(ctx context.Context, msg *models.OutboxMessage) (*string, error) {
	n := Notification{
		ID:        msg.ID.String(),
		Kind:      msg.Kind,
		Recipient: msg.Recipient,
		Subject:   msg.Subject,
		Body:      msg.Body,
	}

	var artifact *string

	if msg.Kind == models.MessageInvoice {
		if msg.AppointmentID == nil {
			return nil, fmt.Errorf("invoice message without appointment")
		}

		ap, err := w.store.LoadAppointment(ctx, *msg.AppointmentID)
		if err != nil {
			return nil, fmt.Errorf("load appointment %d: %w", *msg.AppointmentID, err)
		}

		doc, err := w.renderer.RenderInvoice(ap)
		if err != nil {
			return nil, fmt.Errorf("render invoice: %w", err)
		}
		n.AttachmentName = fmt.Sprintf("invoice-%d.txt", ap.ID)
		n.Attachment = doc

		if w.opts.Archive != nil {
			loc, err := w.opts.Archive.Put(ctx, "invoices/"+n.AttachmentName, doc, "text/plain; charset=utf-8")
			if err != nil {
				logrus.WithError(err).WithField("appointment_id", ap.ID).Warn("outbox: archive invoice")
			} else {
				artifact = &loc
			}
		}

		if w.opts.Payments != nil {
			url, err := w.opts.Payments.PaymentLink(ctx, ap)
			if err != nil {
				logrus.WithError(err).WithField("appointment_id", ap.ID).Warn("outbox: create payment link")
			} else {
				n.PaymentURL = url
			}
		}
	}

	if err := w.notifier.Notify(ctx, n); err != nil {
		return nil, fmt.Errorf("notify %s: %w", msg.Recipient, err)
	}
	return artifact, nil
}

var _ Kicker = (*Worker)(nil)
