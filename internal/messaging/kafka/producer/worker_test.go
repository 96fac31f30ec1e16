package producer

import (
	"context"
	"errors"
	"testing"

	"go-hrm/internal/messaging/kafka"
	kafkamock "go-hrm/internal/messaging/kafka/mock"
	producermock "go-hrm/internal/messaging/kafka/producer/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type tally struct {
	relayed  []string
	failures []string
}

func (t *tally) RecordEventRelayed(eventType string) { t.relayed = append(t.relayed, eventType) }
func (t *tally) RecordRelayFailure(eventType string) { t.failures = append(t.failures, eventType) }

func setupRelayTest(t *testing.T) (*Relay, *kafkamock.MockOutboxRepository, *producermock.MockMessageWriter, *tally) {
	ctrl := gomock.NewController(t)
	repo := kafkamock.NewMockOutboxRepository(ctrl)
	writer := producermock.NewMockMessageWriter(ctrl)
	rec := &tally{}
	return NewRelay(repo, writer, rec, zap.NewNop()), repo, writer, rec
}

func outboxEvent(id, eventType string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		RequestID:     "req-" + id,
		AggregateType: "employee",
		AggregateID:   "7",
		EventType:     eventType,
		Topic:         "hrm.employee.lifecycle.v1",
		Payload:       []byte(`{"event_type":"` + eventType + `"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestRelay_ProcessPending(t *testing.T) {
	ctx := context.Background()

	t.Run("sends every event and marks it sent", func(t *testing.T) {
		relay, repo, writer, rec := setupRelayTest(t)
		first, second := outboxEvent("1", "employee_created"), outboxEvent("2", "job_changed")

		gomock.InOrder(
			repo.EXPECT().ListPending(ctx, DefaultBatchSize).Return([]kafka.OutboxEvent{first, second}, nil),
			writer.EXPECT().WriteMessages(ctx, toMessage(first)).Return(nil),
			repo.EXPECT().MarkSent(ctx, "1").Return(nil),
			writer.EXPECT().WriteMessages(ctx, toMessage(second)).Return(nil),
			repo.EXPECT().MarkSent(ctx, "2").Return(nil),
		)

		sent, err := relay.ProcessPending(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 2, sent)
		assert.Equal(t, []string{"employee_created", "job_changed"}, rec.relayed)
		assert.Empty(t, rec.failures)
	})

	t.Run("publish failure schedules retry and continues", func(t *testing.T) {
		relay, repo, writer, rec := setupRelayTest(t)
		first, second := outboxEvent("1", "employee_created"), outboxEvent("2", "employee_updated")

		repo.EXPECT().ListPending(ctx, DefaultBatchSize).Return([]kafka.OutboxEvent{first, second}, nil)
		writer.EXPECT().WriteMessages(ctx, toMessage(first)).Return(errors.New("leader not available"))
		repo.EXPECT().MarkFailed(ctx, "1", "leader not available").Return(nil)
		writer.EXPECT().WriteMessages(ctx, toMessage(second)).Return(nil)
		repo.EXPECT().MarkSent(ctx, "2").Return(nil)

		sent, err := relay.ProcessPending(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Equal(t, []string{"employee_created"}, rec.failures)
		assert.Equal(t, []string{"employee_updated"}, rec.relayed)
	})

	t.Run("mark sent failure is not counted", func(t *testing.T) {
		relay, repo, writer, rec := setupRelayTest(t)
		event := outboxEvent("1", "employee_deleted")

		repo.EXPECT().ListPending(ctx, DefaultBatchSize).Return([]kafka.OutboxEvent{event}, nil)
		writer.EXPECT().WriteMessages(ctx, toMessage(event)).Return(nil)
		repo.EXPECT().MarkSent(ctx, "1").Return(errors.New("conn reset"))

		sent, err := relay.ProcessPending(ctx)

		assert.NoError(t, err)
		assert.Zero(t, sent)
		assert.Empty(t, rec.relayed)
	})

	t.Run("empty outbox", func(t *testing.T) {
		relay, repo, _, _ := setupRelayTest(t)
		repo.EXPECT().ListPending(ctx, DefaultBatchSize).Return(nil, nil)

		sent, err := relay.ProcessPending(ctx)

		assert.NoError(t, err)
		assert.Zero(t, sent)
	})

	t.Run("list failure", func(t *testing.T) {
		relay, repo, _, _ := setupRelayTest(t)
		repo.EXPECT().ListPending(ctx, DefaultBatchSize).Return(nil, errors.New("db down"))

		_, err := relay.ProcessPending(ctx)

		assert.EqualError(t, err, "db down")
	})
}

func TestToMessage(t *testing.T) {
	msg := toMessage(outboxEvent("9", "employee_created"))

	assert.Equal(t, "hrm.employee.lifecycle.v1", msg.Topic)
	assert.Equal(t, []byte("7"), msg.Key)
	assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("req-9")})

	bare := outboxEvent("9", "employee_created")
	bare.RequestID = ""
	assert.Len(t, toMessage(bare).Headers, 2)
}

func TestRelay_RunStopsOnCancel(t *testing.T) {
	relay, _, _, _ := setupRelayTest(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		relay.Run(ctx, 0)
		close(done)
	}()
	<-done
}
