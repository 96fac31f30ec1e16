package history

import (
	"context"
	"time"

	"go-hrm/internal/shared/contextutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder is notified of every stored entry.
type Recorder interface {
	RecordHistoryAppend(module string)
}

//go:generate mockgen -source=history_repo.go -destination=mock/history_repo_mock.go -package=mock
type Log interface {
	Append(ctx context.Context, e Entry) (Entry, error)
	ListFor(ctx context.Context, employeeID int64) ([]Entry, error)
}

type log struct {
	db     *gorm.DB
	rec    Recorder
	now    func() time.Time
	logger *zap.Logger
}

type Option func(*log)

func WithRecorder(rec Recorder) Option {
	return func(l *log) { l.rec = rec }
}

func WithClock(now func() time.Time) Option {
	return func(l *log) { l.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *log) {
		if logger != nil {
			l.logger = logger.Named("history.log")
		}
	}
}

func NewLog(db *gorm.DB, opts ...Option) Log {
	l := &log{
		db:     db,
		now:    func() time.Time { return time.Now().UTC() },
		logger: zap.L().Named("history.log"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *log) Append(ctx context.Context, e Entry) (Entry, error) {
	e.ID = 0
	if e.Date.IsZero() {
		e.Date = l.now()
	}

	if err := l.db.WithContext(ctx).Create(&e).Error; err != nil {
		l.logger.Error("history append failed",
			append(contextutil.ExtractMetadata(ctx).Fields(),
				zap.Int64("employee_id", e.EmployeeID),
				zap.String("module", e.Module),
				zap.Error(err),
			)...,
		)
		return Entry{}, err
	}

	if l.rec != nil {
		l.rec.RecordHistoryAppend(e.Module)
	}
	return e, nil
}

func (l *log) ListFor(ctx context.Context, employeeID int64) ([]Entry, error) {
	entries := make([]Entry, 0)
	if employeeID == 0 {
		return entries, nil
	}

	err := l.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("id DESC").
		Find(&entries).Error
	return entries, err
}
