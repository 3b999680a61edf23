package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saltandserenity/booking/internal/infra/mail"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, msg)
	return args.Error(0)
}

type MockDeliverer struct {
	mock.Mock
}

func (m *MockDeliverer) Notify(ctx context.Context, to, templateName string, data mail.TemplateData) error {
	args := m.Called(to, templateName, data)
	return args.Error(0)
}

type fakeAck struct {
	acked, nacked, requeued bool
}

func (f *fakeAck) Ack(tag uint64, multiple bool) error { f.acked = true; return nil }
func (f *fakeAck) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}
func (f *fakeAck) Reject(tag uint64, requeue bool) error { f.nacked = true; return nil }

type fakeConsumer struct {
	ch chan amqp.Delivery
}

func (f *fakeConsumer) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	return f.ch, nil
}

func TestProducerPublishesPersistentJob(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishWithContext", ExchangeName, RoutingKey, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var job NotificationJob
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			return false
		}
		return msg.DeliveryMode == amqp.Persistent &&
			job.To == "kai@example.com" &&
			job.Template == mail.TemplateReferrerSignup &&
			job.Data.ReferralLink == "https://salt-and-serenity.com/contact?ref=recR"
	})).Return(nil)

	err := NewProducer(pub).Notify(context.Background(), "kai@example.com", mail.TemplateReferrerSignup,
		mail.TemplateData{Name: "Kai", ReferralLink: "https://salt-and-serenity.com/contact?ref=recR"})

	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestProducerReturnsPublishError(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	err := NewProducer(pub).Notify(context.Background(), "kai@example.com", mail.TemplateReferrerSignup, mail.TemplateData{})

	assert.ErrorContains(t, err, "channel closed")
}

func TestWorkerAcksDeliveredJob(t *testing.T) {
	d := new(MockDeliverer)
	d.On("Notify", "noa@example.com", mail.TemplateContactNoReferral, mail.TemplateData{Name: "Noa"}).Return(nil)
	w := NewWorker(nil, d, zerolog.Nop())

	body, _ := json.Marshal(NotificationJob{To: "noa@example.com", Template: mail.TemplateContactNoReferral, Data: mail.TemplateData{Name: "Noa"}})
	ack := &fakeAck{}
	w.handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: body})

	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	d.AssertExpectations(t)
}

func TestWorkerDeadLettersFailures(t *testing.T) {
	d := new(MockDeliverer)
	d.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	w := NewWorker(nil, d, zerolog.Nop())

	body, _ := json.Marshal(NotificationJob{To: "noa@example.com", Template: mail.TemplateContactNoReferral})
	failed := &fakeAck{}
	w.handle(context.Background(), amqp.Delivery{Acknowledger: failed, Body: body})

	malformed := &fakeAck{}
	w.handle(context.Background(), amqp.Delivery{Acknowledger: malformed, Body: []byte("{")})

	assert.True(t, failed.nacked)
	assert.False(t, failed.requeued)
	assert.True(t, malformed.nacked)
	d.AssertNumberOfCalls(t, "Notify", 1)
}

func TestWorkerStopsOnContextCancel(t *testing.T) {
	w := NewWorker(&fakeConsumer{ch: make(chan amqp.Delivery)}, new(MockDeliverer), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- w.Start(ctx, QueueName) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
