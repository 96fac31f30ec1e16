package employee

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go-hrm/internal/attribute"
	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/identity"
	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/cache"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/shared/sanitize"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DirectoryKeyPrefix = "hrm:employees:company:"
	DefaultPayType     = "monthly"
	DefaultStatus      = "active"
)

func DirectoryKey(companyID int64) string {
	return DirectoryKeyPrefix + strconv.FormatInt(companyID, 10)
}

// Directory lists a company's employees and runs the account lifecycle:
// create or update, registration and removal.
type Directory struct {
	svc      *Service
	cache    cache.Cache
	counter  counter.Repository
	validate *validator.Validate
	sf       singleflight.Group
	logger   *zap.Logger
}

// NewDirectory wires a directory over svc. A nil cache disables caching and a
// nil counter disables employee number generation.
func NewDirectory(svc *Service, c cache.Cache, counterRepo counter.Repository, logger ...*zap.Logger) *Directory {
	l := zap.L().Named("employee.directory")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.directory")
	}
	if c == nil {
		c = cache.Noop()
	}
	return &Directory{
		svc:      svc,
		cache:    c,
		counter:  counterRepo,
		validate: apperror.NewValidator(),
		logger:   l,
	}
}

// List returns the company's employees in creation order with attributes not
// yet loaded. Ids whose identity no longer exists are skipped.
func (d *Directory) List(ctx context.Context, companyID int64) ([]*Employee, error) {
	ids, err := d.employeeIDs(ctx, companyID)
	if err != nil {
		return nil, err
	}

	list := make([]*Employee, 0, len(ids))
	for _, id := range ids {
		emp, err := d.svc.Resolve(ctx, ByID(id))
		if err != nil {
			return nil, err
		}
		if !emp.Exists() {
			d.logger.Warn("directory entry without identity",
				zap.Int64("company_id", companyID),
				zap.Int64("employee_id", id),
			)
			continue
		}
		list = append(list, emp)
	}
	return list, nil
}

func (d *Directory) employeeIDs(ctx context.Context, companyID int64) ([]int64, error) {
	key := DirectoryKey(companyID)

	var cached []int64
	ok, err := d.cache.Get(ctx, key, &cached)
	if err != nil {
		d.logger.Warn("directory cache read failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
	if ok {
		return cached, nil
	}

	v, err, _ := d.sf.Do(key, func() (interface{}, error) {
		ids, err := d.svc.attrs.EmployeeIDsByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if err := d.cache.Set(ctx, key, ids); err != nil {
			d.logger.Warn("directory cache write failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return ids, nil
	})
	if err != nil {
		d.logger.Error("list employee ids failed",
			zap.Int64("company_id", companyID),
			zap.Error(err),
		)
		return nil, err
	}
	return v.([]int64), nil
}

// Options returns id and full name pairs for an employee picker.
func (d *Directory) Options(ctx context.Context, companyID int64) ([]OptionItem, error) {
	list, err := d.List(ctx, companyID)
	if err != nil {
		return nil, err
	}

	opts := make([]OptionItem, len(list))
	for i, emp := range list {
		opts[i] = OptionItem{ID: emp.ID, FullName: emp.FullName()}
	}
	return opts, nil
}

// Bust drops the cached listing of a company.
func (d *Directory) Bust(ctx context.Context, companyID int64) error {
	return d.cache.Delete(ctx, DirectoryKey(companyID))
}

// Register creates the empty attribute row for a newly registered account.
// Accounts without the employee role are ignored.
func (d *Directory) Register(ctx context.Context, user *identity.User, companyID int64) error {
	if user == nil || user.ID == 0 || user.Role != identity.RoleEmployee {
		return nil
	}

	err := d.svc.attrs.Create(ctx, &attribute.Row{
		EmployeeID: user.ID,
		CompanyID:  companyID,
		Status:     DefaultStatus,
	})
	if err != nil {
		d.logger.Error("register employee failed",
			zap.Int64("employee_id", user.ID),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	return nil
}

// Remove announces the deletion and drops the attribute row of an account
// being deleted.
func (d *Directory) Remove(ctx context.Context, employeeID int64) error {
	if employeeID == 0 {
		return nil
	}

	row, _, err := d.svc.attrs.Get(ctx, employeeID, true)
	if err != nil {
		return err
	}

	d.svc.notify(ctx, events.EmployeeEvent{
		EventType:  events.EmployeeDeleted,
		EmployeeID: employeeID,
		CompanyID:  row.CompanyID,
	})

	if err := d.svc.attrs.Delete(ctx, employeeID); err != nil {
		d.logger.Error("remove employee failed",
			zap.Int64("employee_id", employeeID),
			zap.Error(err),
		)
		return err
	}
	d.logger.Info("remove employee success", zap.Int64("employee_id", employeeID))
	return nil
}

// Create validates req and creates the account with its employment record, or
// updates the account named by req.UserID. Only the create path initialises
// status, compensation and job info. The company listing cache is left as is.
//
// A failure after the account is written leaves the account in place.
func (d *Directory) Create(ctx context.Context, req CreateEmployeeRequest) (int64, error) {
	rid := contextutil.GetRequestID(ctx)
	req.clean()

	d.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.Int64("company_id", req.CompanyID),
		zap.Int64("user_id", req.UserID),
		zap.String("email", req.UserEmail),
	)

	if err := d.validate.Struct(req); err != nil {
		d.logger.Warn("create employee validation failed", zap.String("request_id", rid), zap.Error(err))
		return 0, apperror.MapValidationError(err)
	}

	hiringDate, err := parseDate(req.Work.HiringDate)
	if err != nil {
		return 0, err
	}
	birthDate, err := parseDate(req.Work.DateOfBirth)
	if err != nil {
		return 0, err
	}
	payRate := decimal.Zero
	if req.Work.PayRate != "" {
		if payRate, err = decimal.NewFromString(req.Work.PayRate); err != nil {
			return 0, employeeerrors.ErrInvalidPayRate
		}
	}

	update := req.UserID != 0
	var user *identity.User
	if update {
		user, err = d.updateIdentity(ctx, req)
	} else {
		user, err = d.createIdentity(ctx, req)
	}
	if err != nil {
		d.logger.Error("create employee identity failed", zap.String("request_id", rid), zap.Error(err))
		return 0, mapRepositoryError(err)
	}

	emp := &Employee{ID: user.ID, user: user, svc: d.svc}

	if !update {
		if err := d.initialise(ctx, emp, req.Work, payRate); err != nil {
			d.logger.Error("create employee initialisation failed",
				zap.String("request_id", rid),
				zap.Int64("employee_id", user.ID),
				zap.Error(err),
			)
			return 0, err
		}
	}

	if err := d.svc.attrs.Update(ctx, user.ID, attribute.Patch{
		CompanyID:    &req.CompanyID,
		HiringSource: &req.Work.HiringSource,
		HiringDate:   &hiringDate,
		DateOfBirth:  &birthDate,
	}); err != nil {
		d.logger.Error("create employee hiring fields failed",
			zap.String("request_id", rid),
			zap.Int64("employee_id", user.ID),
			zap.Error(err),
		)
		return 0, mapRepositoryError(err)
	}
	if _, _, err := d.svc.attrs.Get(ctx, user.ID, true); err != nil {
		d.logger.Error("create employee refresh failed",
			zap.String("request_id", rid),
			zap.Int64("employee_id", user.ID),
			zap.Error(err),
		)
		return 0, mapRepositoryError(err)
	}

	eventType := events.EmployeeCreated
	if update {
		eventType = events.EmployeeUpdated
	}
	d.svc.notify(ctx, events.EmployeeEvent{
		EventType:  eventType,
		EmployeeID: user.ID,
		CompanyID:  req.CompanyID,
	})

	d.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Int64("employee_id", user.ID),
		zap.Bool("update", update),
	)
	return user.ID, nil
}

func (d *Directory) createIdentity(ctx context.Context, req CreateEmployeeRequest) (*identity.User, error) {
	if req.Personal.EmployeeID == "" && d.counter != nil {
		next, err := d.counter.GetNextValue(ctx, req.CompanyID, counter.EmployeeNumber)
		if err != nil {
			return nil, err
		}
		req.Personal.EmployeeID = fmt.Sprintf("EMP-%06d", next)
	}

	plain, err := identity.GeneratePassword()
	if err != nil {
		return nil, err
	}
	hashed, err := identity.HashPassword(plain)
	if err != nil {
		return nil, err
	}

	user := &identity.User{
		Login:    req.UserEmail,
		Email:    req.UserEmail,
		Password: hashed,
		Role:     identity.RoleEmployee,
	}
	applyPersonal(user, req.Personal)

	if err := d.svc.identities.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := d.Register(ctx, user, req.CompanyID); err != nil {
		return nil, err
	}
	return user, nil
}

func (d *Directory) updateIdentity(ctx context.Context, req CreateEmployeeRequest) (*identity.User, error) {
	user, err := d.svc.identities.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	user.Email = req.UserEmail
	user.Login = req.UserEmail
	if req.Personal.EmployeeID == "" {
		req.Personal.EmployeeID = user.EmployeeNumber
	}
	applyPersonal(user, req.Personal)

	if err := d.svc.identities.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (d *Directory) initialise(ctx context.Context, emp *Employee, work WorkFields, payRate decimal.Decimal) error {
	if work.Type != "" {
		if err := emp.UpdateEmploymentStatus(ctx, work.Type, time.Time{}, ""); err != nil {
			return err
		}
	}

	if !payRate.IsZero() {
		payType := work.PayType
		if payType == "" {
			payType = DefaultPayType
		}
		if err := emp.UpdateCompensation(ctx, payRate, payType, "", time.Time{}, ""); err != nil {
			return err
		}
	}

	return emp.UpdateJobInfo(ctx, JobInfo{
		Department:  work.Department,
		Designation: work.Designation,
		ReportingTo: work.ReportingTo,
		Location:    work.Location,
	})
}

func applyPersonal(u *identity.User, p PersonalFields) {
	u.PhotoID = p.PhotoID
	u.EmployeeNumber = p.EmployeeID
	u.FirstName = p.FirstName
	u.MiddleName = p.MiddleName
	u.LastName = p.LastName
	u.OtherEmail = p.OtherEmail
	u.Phone = p.Phone
	u.WorkPhone = p.WorkPhone
	u.Mobile = p.Mobile
	u.Address = p.Address
	u.Gender = p.Gender
	u.MaritalStatus = p.MaritalStatus
	u.Nationality = p.Nationality
	u.DrivingLicense = p.DrivingLicense
	u.Hobbies = p.Hobbies
	u.UserURL = p.UserURL
	u.Description = p.Description
}

func (r *CreateEmployeeRequest) clean() {
	for _, s := range []*string{
		&r.UserEmail,
		&r.Work.HiringSource,
		&r.Work.HiringDate,
		&r.Work.DateOfBirth,
		&r.Work.PayRate,
		&r.Work.PayType,
		&r.Work.Type,
		&r.Work.Status,
		&r.Personal.EmployeeID,
		&r.Personal.FirstName,
		&r.Personal.MiddleName,
		&r.Personal.LastName,
		&r.Personal.OtherEmail,
		&r.Personal.Phone,
		&r.Personal.WorkPhone,
		&r.Personal.Mobile,
		&r.Personal.Address,
		&r.Personal.Gender,
		&r.Personal.MaritalStatus,
		&r.Personal.Nationality,
		&r.Personal.DrivingLicense,
		&r.Personal.Hobbies,
		&r.Personal.UserURL,
		&r.Personal.Description,
	} {
		*s = sanitize.Text(*s)
	}
}

// parseDate accepts "" as no date.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DefaultDateFormat, s)
	if err != nil {
		return time.Time{}, employeeerrors.ErrInvalidDate
	}
	return t, nil
}
