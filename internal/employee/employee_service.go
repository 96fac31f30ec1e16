package employee

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go-hrm/internal/attribute"
	"go-hrm/internal/enum"
	"go-hrm/internal/events"
	"go-hrm/internal/history"
	"go-hrm/internal/identity"
	identityerrors "go-hrm/internal/identity/errors"
	"go-hrm/internal/shared/contextutil"

	"go.uber.org/zap"
)

const DefaultDateFormat = "2006-01-02"

// RecordHook post-processes a FlatRecord after the default fields are filled.
// user is nil for an unresolved employee.
type RecordHook func(rec *FlatRecord, employeeID int64, user *identity.User)

// Ref identifies an employee by id, by email or by an identity already in hand.
type Ref struct {
	id    int64
	email string
	user  *identity.User
}

func ByID(id int64) Ref { return Ref{id: id} }

func ByEmail(email string) Ref { return Ref{email: email} }

func ByIdentity(u *identity.User) Ref { return Ref{user: u} }

// Service resolves employees and owns the collaborators every Employee uses.
type Service struct {
	identities identity.Repository
	attrs      attribute.Store
	history    history.Log
	labels     *enum.Registry
	notifier   Notifier
	dateFormat string
	now        func() time.Time
	logger     *zap.Logger

	hooksMu sync.RWMutex
	hooks   []RecordHook
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithDateFormat sets the layout used by JoinedDate and Birthday.
func WithDateFormat(layout string) Option {
	return func(s *Service) {
		if layout != "" {
			s.dateFormat = layout
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger.Named("employee.service")
		}
	}
}

func NewService(
	identities identity.Repository,
	attrs attribute.Store,
	hist history.Log,
	labels *enum.Registry,
	opts ...Option,
) *Service {
	if labels == nil {
		labels = enum.NewRegistry()
	}
	s := &Service{
		identities: identities,
		attrs:      attrs,
		history:    hist,
		labels:     labels,
		notifier:   NoopNotifier(),
		dateFormat: DefaultDateFormat,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     zap.L().Named("employee.service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddRecordHook registers h to run on every FlatRecord, in registration order.
func (s *Service) AddRecordHook(h RecordHook) {
	if h == nil {
		return
	}
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.hooks = append(s.hooks, h)
}

func (s *Service) recordHooks() []RecordHook {
	s.hooksMu.RLock()
	defer s.hooksMu.RUnlock()
	return append([]RecordHook(nil), s.hooks...)
}

// Labels exposes the registry used for status, type and the other label lookups.
func (s *Service) Labels() *enum.Registry {
	return s.labels
}

// Resolve looks up the identity behind ref. A reference that matches nothing
// yields the null Employee (ID 0) and a nil error; only storage failures are
// returned as errors.
func (s *Service) Resolve(ctx context.Context, ref Ref) (*Employee, error) {
	var (
		user *identity.User
		err  error
	)

	switch {
	case ref.user != nil:
		user = ref.user
	case ref.id != 0:
		user, err = s.identities.FindByID(ctx, ref.id)
	case strings.TrimSpace(ref.email) != "":
		user, err = s.identities.FindByEmail(ctx, strings.TrimSpace(ref.email))
	default:
		return s.null(), nil
	}

	if errors.Is(err, identityerrors.ErrUserNotFound) {
		return s.null(), nil
	}
	if err != nil {
		s.logger.Error("resolve employee identity failed",
			append(contextutil.ExtractMetadata(ctx).Fields(),
				zap.Int64("employee_id", ref.id),
				zap.Error(err),
			)...,
		)
		return nil, err
	}
	if user == nil || user.ID == 0 {
		return s.null(), nil
	}

	return &Employee{ID: user.ID, user: user, svc: s}, nil
}

func (s *Service) null() *Employee {
	return &Employee{svc: s}
}

func (s *Service) notify(ctx context.Context, event events.EmployeeEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}
	s.notifier.Notify(ctx, event)
}
