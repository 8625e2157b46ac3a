package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/service-center/internal/outbox"
)

// LogNotifier writes notifications to the log. It is used when no broker is
// configured.
type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(_ context.Context, n outbox.Notification) error {
	l.log.WithFields(logrus.Fields{
		"notification_id": n.ID,
		"kind":            n.Kind,
		"recipient":       n.Recipient,
		"subject":         n.Subject,
		"attachment":      n.AttachmentName,
		"attachment_size": len(n.Attachment),
		"payment_url":     n.PaymentURL,
	}).Info("notification")
	return nil
}

var _ outbox.Notifier = (*LogNotifier)(nil)
