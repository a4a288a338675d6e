package events

import (
	"context"
	"encoding/json"

	"github.com/redis/rueidis"
	"github.com/sirupsen/logrus"
)

type envelope struct {
	UserID string `json:"userId"`
	Event  Event  `json:"event"`
}

// RedisRelay fans events out across instances: Notify publishes to a redis
// channel and Run feeds every message on that channel into the local hub.
type RedisRelay struct {
	client  rueidis.Client
	channel string
	local   Notifier
	logger  logrus.FieldLogger
}

func NewRedisRelay(client rueidis.Client, channel string, local Notifier, logger logrus.FieldLogger) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: channel,
		local:   local,
		logger:  logger,
	}
}

func (r *RedisRelay) Notify(ctx context.Context, userID string, event Event) error {
	payload, err := json.Marshal(envelope{UserID: userID, Event: event})
	if err != nil {
		return err
	}

	cmd := r.client.B().Publish().Channel(r.channel).Message(string(payload)).Build()
	return r.client.Do(ctx, cmd).Error()
}

// Run blocks until ctx is cancelled or the subscription fails.
func (r *RedisRelay) Run(ctx context.Context) error {
	cmd := r.client.B().Subscribe().Channel(r.channel).Build()
	err := r.client.Receive(ctx, cmd, func(msg rueidis.PubSubMessage) {
		r.dispatch(ctx, msg.Message)
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (r *RedisRelay) dispatch(ctx context.Context, raw string) {
	var msg envelope
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		r.logger.WithError(err).Warn("dropping malformed relay message")
		return
	}
	if msg.UserID == "" {
		r.logger.Warn("dropping relay message without user")
		return
	}

	if err := r.local.Notify(ctx, msg.UserID, msg.Event); err != nil {
		r.logger.WithError(err).WithField("user_id", msg.UserID).Warn("relay delivery failed")
	}
}
