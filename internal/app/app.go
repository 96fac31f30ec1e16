package app

import (
	"database/sql"
	"fmt"

	"go-hrm/internal/attribute"
	"go-hrm/internal/config"
	"go-hrm/internal/employee"
	"go-hrm/internal/enum"
	"go-hrm/internal/history"
	"go-hrm/internal/identity"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/metrics"
	"go-hrm/internal/shared/cache"
	"go-hrm/internal/shared/connection"
	"go-hrm/internal/shared/counter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services is the employee subsystem wired against live infrastructure.
type Services struct {
	DB        *gorm.DB
	SQL       *sql.DB
	Redis     *redis.Client
	Outbox    kafka.OutboxRepository
	Registry  *prometheus.Registry
	Metrics   *metrics.Collector
	Employees *employee.Service
	Directory *employee.Directory
}

// BuildServices connects to postgres and redis and assembles the employee
// service and directory. See NewNotifier for where changes are published.
func BuildServices(cfg *config.Config, logger *zap.Logger) (_ *Services, err error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, cfg.ConnectRetries)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	s := &Services{DB: gormDB, SQL: sqlDB}
	defer func() {
		if err != nil {
			s.Close()
		}
	}()

	if s.Redis, err = connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.ConnectRetries); err != nil {
		return nil, err
	}

	labels := enum.NewRegistry()
	if cfg.LabelsFile != "" {
		if err = labels.LoadFile(cfg.LabelsFile); err != nil {
			return nil, fmt.Errorf("load labels: %w", err)
		}
	}

	s.Registry = prometheus.NewRegistry()
	s.Metrics = metrics.NewCollector(s.Registry)

	var base cache.Cache = cache.Noop()
	if s.Redis != nil {
		base = cache.NewRedis(s.Redis, cfg.CacheTTL)
	}

	s.Outbox = kafka.NewOutboxRepository(sqlDB)

	attrs := attribute.NewStore(gormDB, cache.Instrument(base, "attribute", s.Metrics), logger)
	hist := history.NewLog(gormDB, history.WithRecorder(s.Metrics), history.WithLogger(logger))
	s.Employees = employee.NewService(
		identity.NewRepository(gormDB),
		attrs,
		hist,
		labels,
		employee.WithNotifier(NewNotifier(cfg, s.Outbox, logger)),
		employee.WithDateFormat(cfg.DateFormat),
		employee.WithLogger(logger),
	)
	s.Directory = employee.NewDirectory(
		s.Employees,
		cache.Instrument(base, "directory", s.Metrics),
		counter.NewRepository(gormDB),
		logger,
	)

	return s, nil
}

// NewNotifier queues lifecycle events in the outbox when a kafka broker is
// configured. Without one nothing would relay the outbox, so events go to the
// audit log instead.
func NewNotifier(cfg *config.Config, outbox kafka.OutboxRepository, logger *zap.Logger) employee.Notifier {
	if cfg.Kafka.Broker == "" {
		return employee.NewLogNotifier(logger)
	}
	return employee.NewOutboxNotifier(outbox, logger)
}

func (s *Services) Close() {
	if s.Redis != nil {
		_ = s.Redis.Close()
	}
	if s.SQL != nil {
		_ = s.SQL.Close()
	}
}
