package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
	deadline bool
}

type fakeChannel struct {
	published []published
	err       error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	_, hasDeadline := ctx.Deadline()
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg, deadline: hasDeadline})
	return nil
}

func TestNotify(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, "waitlist_notifications", time.Second, logger.Nop())
	p.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

	require.NoError(t, p.Notify(context.Background(), "p1@example.com", "slot is free"))
	require.Len(t, ch.published, 1)

	got := ch.published[0]
	assert.Equal(t, "", got.exchange)
	assert.Equal(t, "waitlist_notifications", got.key)
	assert.True(t, got.deadline)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "application/json", got.msg.ContentType)

	var body Message
	require.NoError(t, json.Unmarshal(got.msg.Body, &body))
	assert.Equal(t, "p1@example.com", body.Contact)
	assert.Equal(t, "slot is free", body.Text)
	assert.Equal(t, got.msg.MessageId, body.ID)
	_, err := uuid.Parse(body.ID)
	assert.NoError(t, err)
}

func TestNotifyEmptyContact(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, "q", time.Second, logger.Nop())

	assert.ErrorIs(t, p.Notify(context.Background(), "", "hello"), ErrEmptyContact)
	assert.Empty(t, ch.published)
}

func TestNotifyPublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := NewPublisher(ch, "q", 0, logger.Nop())

	assert.ErrorIs(t, p.Notify(context.Background(), "p1", "hello"), ErrPublish)
}
