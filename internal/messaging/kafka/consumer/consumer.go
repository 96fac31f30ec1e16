package consumer

import (
	"context"
	"encoding/json"

	"go-hrm/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
//
//go:generate mockgen -source=consumer.go -destination=mock/consumer_mock.go -package=mock
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// DirectoryBuster drops a company's cached employee listing.
type DirectoryBuster interface {
	Bust(ctx context.Context, companyID int64) error
}

// ConsumeEmployeeLifecycle keeps the directory cache in step with membership
// changes published by other processes. It returns when ctx is cancelled.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader MessageReader,
	directory DirectoryBuster,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		if !handleMessage(ctx, msg, directory, log) {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
		}
	}
}

// handleMessage reports whether msg may be committed. Undecodable payloads are
// committed so a poison message cannot stall the partition.
func handleMessage(ctx context.Context, msg kafkago.Message, directory DirectoryBuster, log *zap.Logger) bool {
	var event events.EmployeeEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode employee lifecycle event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		return true
	}

	if !event.AffectsMembership() || event.CompanyID == 0 {
		return true
	}

	if err := directory.Bust(ctx, event.CompanyID); err != nil {
		log.Error("bust directory cache failed",
			zap.String("event_type", event.EventType),
			zap.Int64("employee_id", event.EmployeeID),
			zap.Int64("company_id", event.CompanyID),
			zap.Error(err),
		)
		return false
	}

	log.Info("directory cache busted",
		zap.String("event_type", event.EventType),
		zap.Int64("employee_id", event.EmployeeID),
		zap.Int64("company_id", event.CompanyID),
	)
	return true
}
