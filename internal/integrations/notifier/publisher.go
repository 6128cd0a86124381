package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher отправляет уведомления пациентам через очередь RabbitMQ.
// Доставку выполняет отдельный воркер, здесь только публикация
type Publisher struct {
	ch             Channel
	queue          string
	publishTimeout time.Duration
	log            Logger
	now            func() time.Time
}

// NewPublisher создает публикатора для очереди queue
func NewPublisher(ch Channel, queue string, publishTimeout time.Duration, log Logger) *Publisher {
	return &Publisher{
		ch:             ch,
		queue:          queue,
		publishTimeout: publishTimeout,
		log:            log,
		now:            time.Now,
	}
}

// Notify публикует сообщение для контакта
func (p *Publisher) Notify(ctx context.Context, contact, message string) error {
	if contact == "" {
		return ErrEmptyContact
	}

	msg := Message{
		ID:        uuid.NewString(),
		Contact:   contact,
		Text:      message,
		CreatedAt: p.now().UTC(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrPublish, err)
	}

	if p.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.publishTimeout)
		defer cancel()
	}

	err = p.ch.PublishWithContext(
		ctx,
		"",
		p.queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    msg.ID,
			Timestamp:    msg.CreatedAt,
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("Notify: publish to %s failed: %v", p.queue, err)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Info("Notify: message %s queued for %s", msg.ID, contact)
	return nil
}
