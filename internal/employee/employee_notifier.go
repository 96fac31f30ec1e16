package employee

import (
	"context"
	"encoding/json"
	"strconv"

	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier emits lifecycle events. It is fire-and-forget: implementations log
// their own failures and never block the change that triggered them.
//
//go:generate mockgen -source=employee_notifier.go -destination=mock/employee_notifier_mock.go -package=mock
type Notifier interface {
	Notify(ctx context.Context, event events.EmployeeEvent)
}

type noopNotifier struct{}

func NoopNotifier() Notifier { return noopNotifier{} }

func (noopNotifier) Notify(context.Context, events.EmployeeEvent) {}

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier writes every event to an audit logger.
func NewLogNotifier(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.L()
	}
	return &logNotifier{logger: logger.Named("employee.audit")}
}

func (n *logNotifier) Notify(ctx context.Context, event events.EmployeeEvent) {
	fields := append(contextutil.ExtractMetadata(ctx).Fields(),
		zap.String("event_type", event.EventType),
		zap.Int64("employee_id", event.EmployeeID),
		zap.Int64("company_id", event.CompanyID),
		zap.Time("occurred_at", event.OccurredAt),
	)
	for k, v := range event.Detail {
		fields = append(fields, zap.String("detail."+k, v))
	}
	n.logger.Info("employee event", fields...)
}

type outboxNotifier struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

// NewOutboxNotifier queues events in the outbox table; the worker relays them
// to kafka.
func NewOutboxNotifier(outbox kafka.OutboxRepository, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("employee.notifier")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.notifier")
	}
	return &outboxNotifier{outbox: outbox, logger: l}
}

func (n *outboxNotifier) Notify(ctx context.Context, event events.EmployeeEvent) {
	rid := contextutil.GetRequestID(ctx)

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("marshal employee event failed",
			zap.String("request_id", rid),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   strconv.FormatInt(event.EmployeeID, 10),
		EventType:     event.EventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := n.outbox.Create(ctx, outboxEvent); err != nil {
		n.logger.Error("employee event outbox persist failed",
			zap.String("request_id", rid),
			zap.String("event_type", event.EventType),
			zap.Int64("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return
	}

	n.logger.Debug("employee event queued",
		zap.String("request_id", rid),
		zap.String("outbox_id", outboxEvent.ID),
		zap.String("event_type", event.EventType),
	)
}
