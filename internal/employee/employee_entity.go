package employee

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go-hrm/internal/attribute"
	"go-hrm/internal/enum"
	"go-hrm/internal/identity"
	"go-hrm/internal/shared/sanitize"

	"go.uber.org/zap"
)

// DefaultChainDepth caps ReportingChain when the caller passes no limit.
const DefaultChainDepth = 32

// Employee is an identity record plus lazily loaded employment attributes.
// The zero-ID Employee is the null object: every accessor returns an empty
// value and nothing touches storage.
type Employee struct {
	ID int64

	user  *identity.User
	attrs attribute.Attributes
	svc   *Service
}

func (e *Employee) Exists() bool {
	return e != nil && e.ID != 0
}

// Identity returns a copy of the identity record, or nil for the null object.
func (e *Employee) Identity() *identity.User {
	if !e.Exists() || e.user == nil {
		return nil
	}
	u := *e.user
	return &u
}

// Loaded reports whether the attribute row has been fetched.
func (e *Employee) Loaded() bool {
	return e != nil && e.attrs.IsResolved()
}

// Load fetches the attribute row unless it is already held. force re-reads it
// from the database and refreshes the cache.
func (e *Employee) Load(ctx context.Context, force bool) error {
	if !e.Exists() {
		return nil
	}
	if e.attrs.IsResolved() && !force {
		return nil
	}

	row, found, err := e.svc.attrs.Get(ctx, e.ID, force)
	if err != nil {
		return err
	}
	if !found {
		e.svc.logger.Warn("employee has no attribute row", zap.Int64("employee_id", e.ID))
	}
	e.attrs = attribute.Resolved(row, found)
	return nil
}

func (e *Employee) row(ctx context.Context) (attribute.Row, error) {
	if !e.Exists() {
		return attribute.Row{}, nil
	}
	if err := e.Load(ctx, false); err != nil {
		return attribute.Row{}, err
	}
	return e.attrs.Row(), nil
}

// Attribute returns a field by name. Attribute-table fields load the row on
// first use; anything else is read from the identity record. Unknown names
// yield "".
func (e *Employee) Attribute(ctx context.Context, name string) (string, error) {
	if !e.Exists() {
		return "", nil
	}

	if attribute.IsField(name) {
		row, err := e.row(ctx)
		if err != nil {
			return "", err
		}
		v, _ := row.Field(name)
		return sanitize.Unslash(v), nil
	}

	if name == "id" {
		return strconv.FormatInt(e.ID, 10), nil
	}
	v, _ := e.user.Field(name)
	return sanitize.Unslash(v), nil
}

func (e *Employee) CompanyID(ctx context.Context) (int64, error) {
	if !e.Exists() {
		return 0, nil
	}
	row, err := e.row(ctx)
	return row.CompanyID, err
}

func (e *Employee) FullName() string {
	if !e.Exists() {
		return ""
	}
	return joinName(
		sanitize.Unslash(e.user.FirstName),
		sanitize.Unslash(e.user.MiddleName),
		sanitize.Unslash(e.user.LastName),
	)
}

func joinName(parts ...string) string {
	name := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			name = append(name, p)
		}
	}
	return strings.Join(name, " ")
}

func (e *Employee) Email() string {
	if !e.Exists() {
		return ""
	}
	return e.user.Email
}

func (e *Employee) JobTitle(ctx context.Context) (string, error) {
	return e.Attribute(ctx, "designation_title")
}

func (e *Employee) DepartmentTitle(ctx context.Context) (string, error) {
	return e.Attribute(ctx, "department_title")
}

// WorkLocation returns the location id as a string, "" when unset.
func (e *Employee) WorkLocation(ctx context.Context) (string, error) {
	return e.Attribute(ctx, "location")
}

func (e *Employee) Status(ctx context.Context) (string, error) {
	return e.attributeLabel(ctx, enum.KindStatus, "status")
}

func (e *Employee) Type(ctx context.Context) (string, error) {
	return e.attributeLabel(ctx, enum.KindType, "type")
}

func (e *Employee) HiringSource(ctx context.Context) (string, error) {
	return e.attributeLabel(ctx, enum.KindSource, "hiring_source")
}

func (e *Employee) attributeLabel(ctx context.Context, kind enum.Kind, field string) (string, error) {
	code, err := e.Attribute(ctx, field)
	if err != nil || code == "" {
		return "", err
	}
	return e.label(kind, code), nil
}

func (e *Employee) Gender() string {
	return e.identityLabel(enum.KindGender, "gender")
}

func (e *Employee) MaritalStatus() string {
	return e.identityLabel(enum.KindMaritalStatus, "marital_status")
}

// Nationality returns the country name for the stored country code.
func (e *Employee) Nationality() string {
	return e.identityLabel(enum.KindCountry, "nationality")
}

func (e *Employee) identityLabel(kind enum.Kind, field string) string {
	if !e.Exists() {
		return ""
	}
	code, _ := e.user.Field(field)
	return e.label(kind, code)
}

func (e *Employee) label(kind enum.Kind, code string) string {
	l, _ := e.svc.labels.Label(kind, code)
	return l
}

func (e *Employee) JoinedDate(ctx context.Context) (string, error) {
	row, err := e.row(ctx)
	if err != nil {
		return "", err
	}
	return e.formatDate(row.HiringDate), nil
}

func (e *Employee) Birthday(ctx context.Context) (string, error) {
	row, err := e.row(ctx)
	if err != nil {
		return "", err
	}
	return e.formatDate(row.DateOfBirth), nil
}

func (e *Employee) formatDate(t *time.Time) string {
	if !e.Exists() || t == nil || t.IsZero() {
		return ""
	}
	return t.Format(e.svc.dateFormat)
}

// Phone returns the "mobile", "phone" or "work" number. Any other value
// selects mobile.
func (e *Employee) Phone(which string) string {
	if !e.Exists() {
		return ""
	}
	switch which {
	case "phone":
		return e.user.Phone
	case "work":
		return e.user.WorkPhone
	default:
		return e.user.Mobile
	}
}

// ReportingTo resolves the employee's manager one level up. An unset
// reference, a reference to the employee itself or one that no longer exists
// yields the null Employee.
func (e *Employee) ReportingTo(ctx context.Context) (*Employee, error) {
	if !e.Exists() {
		return &Employee{}, nil
	}

	row, err := e.row(ctx)
	if err != nil {
		return nil, err
	}
	if row.ReportingTo == 0 || row.ReportingTo == e.ID {
		return e.svc.null(), nil
	}
	return e.svc.Resolve(ctx, ByID(row.ReportingTo))
}

// ReportingChain walks the management line upward, nearest manager first. It
// stops at the first broken link, at maxDepth entries, or when an employee
// would appear twice.
func (e *Employee) ReportingChain(ctx context.Context, maxDepth int) ([]*Employee, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultChainDepth
	}

	chain := make([]*Employee, 0)
	if !e.Exists() {
		return chain, nil
	}

	visited := map[int64]struct{}{e.ID: {}}
	cur := e
	for len(chain) < maxDepth {
		mgr, err := cur.ReportingTo(ctx)
		if err != nil {
			return nil, err
		}
		if !mgr.Exists() {
			break
		}
		if _, seen := visited[mgr.ID]; seen {
			e.svc.logger.Warn("reporting cycle detected",
				zap.Int64("employee_id", e.ID),
				zap.Int64("repeated_id", mgr.ID),
			)
			break
		}
		visited[mgr.ID] = struct{}{}
		chain = append(chain, mgr)
		cur = mgr
	}
	return chain, nil
}
