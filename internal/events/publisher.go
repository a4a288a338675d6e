package events

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultPublishTimeout = 2 * time.Second

// Publisher is what services call once a mutation has committed. Delivery
// problems are logged and never returned.
type Publisher struct {
	notifier Notifier
	logger   logrus.FieldLogger
	timeout  time.Duration
}

func NewPublisher(notifier Notifier, logger logrus.FieldLogger) *Publisher {
	return &Publisher{notifier: notifier, logger: logger, timeout: defaultPublishTimeout}
}

func (p *Publisher) Publish(ctx context.Context, userID string, name Name, data any) {
	if p == nil || p.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	log := p.logger.WithFields(logrus.Fields{"event": name, "user_id": userID})
	if err := p.notifier.Notify(ctx, userID, New(name, data)); err != nil {
		log.WithError(err).Warn("event delivery failed")
		return
	}
	log.Debug("event published")
}
