package producer

import (
	"context"
	"time"

	"go-hrm/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	DefaultPollInterval = 3 * time.Second
	DefaultBatchSize    = 50
)

// Recorder receives relay outcomes. *metrics.Collector satisfies it.
type Recorder interface {
	RecordEventRelayed(eventType string)
	RecordRelayFailure(eventType string)
}

type nopRecorder struct{}

func (nopRecorder) RecordEventRelayed(string) {}
func (nopRecorder) RecordRelayFailure(string) {}

type Relay struct {
	repo      kafka.OutboxRepository
	writer    MessageWriter
	rec       Recorder
	batchSize int
	logger    *zap.Logger
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, rec Recorder, logger ...*zap.Logger) *Relay {
	l := zap.L().Named("kafka.producer.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.relay")
	}
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Relay{
		repo:      repo,
		writer:    writer,
		rec:       rec,
		batchSize: DefaultBatchSize,
		logger:    l,
	}
}

// Run polls the outbox until ctx is cancelled.
func (r *Relay) Run(ctx context.Context, pollInterval time.Duration) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.ProcessPending(ctx); err != nil {
				r.logger.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// ProcessPending relays one batch and returns how many events were sent.
// A failed publish marks the event for retry and moves on to the next one.
func (r *Relay) ProcessPending(ctx context.Context) (int, error) {
	events, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}

	if len(events) == 0 {
		return 0, nil
	}

	r.logger.Debug("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		log := r.logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)

		if err := publishEvent(ctx, r.writer, event); err != nil {
			log.Error("publish outbox event failed", zap.Error(err))
			r.rec.RecordRelayFailure(event.EventType)
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				log.Error("mark outbox failed failed", zap.Error(markErr))
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			log.Error("mark outbox sent failed", zap.Error(err))
			continue
		}

		r.rec.RecordEventRelayed(event.EventType)
		sent++
		log.Info("outbox event sent")
	}

	return sent, nil
}
