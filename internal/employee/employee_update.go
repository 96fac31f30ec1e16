package employee

import (
	"context"
	"strconv"
	"time"

	"go-hrm/internal/attribute"
	"go-hrm/internal/events"
	"go-hrm/internal/history"
	"go-hrm/internal/shared/contextutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Every update persists, re-reads the attribute row past the cache, then
// appends a history entry. The null Employee ignores updates.

// UpdateEmploymentStatus stores status as the employment type. A zero date
// records the current time.
func (e *Employee) UpdateEmploymentStatus(ctx context.Context, status string, date time.Time, comment string) error {
	if !e.Exists() {
		return nil
	}

	log := e.logger(ctx)
	log.Debug("update employment status requested", zap.String("type", status))

	if err := e.persist(ctx, attribute.Patch{Type: &status}); err != nil {
		log.Error("update employment status persist failed", zap.Error(err))
		return err
	}

	if _, err := e.svc.history.Append(ctx, history.Entry{
		EmployeeID: e.ID,
		Module:     history.ModuleEmployment,
		Type:       status,
		Comment:    comment,
		Date:       date,
	}); err != nil {
		log.Error("update employment status history failed", zap.Error(err))
		return err
	}

	e.notifyChange(ctx, events.EmployeeStatusChanged, map[string]string{"type": status})
	log.Info("update employment status success", zap.String("type", status))
	return nil
}

// UpdateCompensation stores the pay rate and pay type. reason is kept in the
// history entry's data column.
func (e *Employee) UpdateCompensation(
	ctx context.Context,
	rate decimal.Decimal,
	payType string,
	reason string,
	date time.Time,
	comment string,
) error {
	if !e.Exists() {
		return nil
	}

	log := e.logger(ctx)
	log.Debug("update compensation requested",
		zap.String("pay_rate", rate.String()),
		zap.String("pay_type", payType),
	)

	if err := e.persist(ctx, attribute.Patch{PayRate: &rate, PayType: &payType}); err != nil {
		log.Error("update compensation persist failed", zap.Error(err))
		return err
	}

	if _, err := e.svc.history.Append(ctx, history.Entry{
		EmployeeID: e.ID,
		Module:     history.ModuleCompensation,
		Category:   payType,
		Type:       rate.String(),
		Comment:    comment,
		Data:       reason,
		Date:       date,
	}); err != nil {
		log.Error("update compensation history failed", zap.Error(err))
		return err
	}

	e.notifyChange(ctx, events.EmployeeCompensationChanged, map[string]string{
		"pay_rate": rate.String(),
		"pay_type": payType,
		"reason":   reason,
	})
	log.Info("update compensation success")
	return nil
}

// UpdateJobInfo stores the four job fields. The history entry is built from
// the refreshed row so it carries the new department and designation titles.
func (e *Employee) UpdateJobInfo(ctx context.Context, job JobInfo) error {
	if !e.Exists() {
		return nil
	}

	log := e.logger(ctx)
	log.Debug("update job info requested",
		zap.Int64("department", job.Department),
		zap.Int64("designation", job.Designation),
		zap.Int64("reporting_to", job.ReportingTo),
		zap.Int64("location", job.Location),
	)

	if err := e.persist(ctx, attribute.Patch{
		Department:  &job.Department,
		Designation: &job.Designation,
		ReportingTo: &job.ReportingTo,
		Location:    &job.Location,
	}); err != nil {
		log.Error("update job info persist failed", zap.Error(err))
		return err
	}

	row := e.attrs.Row()
	location, _ := row.Field("location")
	if _, err := e.svc.history.Append(ctx, history.Entry{
		EmployeeID: e.ID,
		Module:     history.ModuleJob,
		Category:   row.DepartmentTitle,
		Type:       location,
		Comment:    row.DesignationTitle,
		Data:       strconv.FormatInt(job.ReportingTo, 10),
	}); err != nil {
		log.Error("update job info history failed", zap.Error(err))
		return err
	}

	e.notifyChange(ctx, events.EmployeeJobChanged, map[string]string{
		"department":   strconv.FormatInt(job.Department, 10),
		"designation":  strconv.FormatInt(job.Designation, 10),
		"reporting_to": strconv.FormatInt(job.ReportingTo, 10),
		"location":     strconv.FormatInt(job.Location, 10),
	})
	log.Info("update job info success")
	return nil
}

// History returns the employee's entries grouped by module. A known module
// narrows the result to that group; "" or an unknown module returns all three.
func (e *Employee) History(ctx context.Context, module string) (history.Groups, error) {
	if !e.Exists() {
		return history.Group(nil).Select(module), nil
	}

	entries, err := e.svc.history.ListFor(ctx, e.ID)
	if err != nil {
		e.logger(ctx).Error("list history failed", zap.Error(err))
		return nil, err
	}
	return history.Group(entries).Select(module), nil
}

func (e *Employee) persist(ctx context.Context, p attribute.Patch) error {
	if err := e.svc.attrs.Update(ctx, e.ID, p); err != nil {
		return mapRepositoryError(err)
	}
	return e.Load(ctx, true)
}

func (e *Employee) notifyChange(ctx context.Context, eventType string, detail map[string]string) {
	e.svc.notify(ctx, events.EmployeeEvent{
		EventType:  eventType,
		EmployeeID: e.ID,
		CompanyID:  e.attrs.Row().CompanyID,
		Detail:     detail,
	})
}

func (e *Employee) logger(ctx context.Context) *zap.Logger {
	return e.svc.logger.With(
		append(contextutil.ExtractMetadata(ctx).Fields(), zap.Int64("employee_id", e.ID))...,
	)
}
