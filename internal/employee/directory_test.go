package employee_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go-hrm/internal/attribute"
	"go-hrm/internal/employee"
	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/events"
	"go-hrm/internal/history"
	"go-hrm/internal/identity"
	identityerrors "go-hrm/internal/identity/errors"
	"go-hrm/internal/shared/apperror"
	cacheMock "go-hrm/internal/shared/cache/mock"
	counterMock "go-hrm/internal/shared/counter/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type directoryDeps struct {
	*serviceDeps
	directory *employee.Directory
	cache     *cacheMock.MockCache
	counter   *counterMock.MockRepository
}

func setupDirectoryTest(t *testing.T) *directoryDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := setupServiceTest(t)
	c := cacheMock.NewMockCache(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)

	return &directoryDeps{
		serviceDeps: deps,
		directory:   employee.NewDirectory(deps.service, c, counterRepo),
		cache:       c,
		counter:     counterRepo,
	}
}

func TestDirectory_List(t *testing.T) {
	ctx := context.Background()
	key := employee.DirectoryKey(1)

	t.Run("cache hit resolves each id and skips orphans", func(t *testing.T) {
		deps := setupDirectoryTest(t)

		deps.cache.EXPECT().Get(ctx, key, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dst any) (bool, error) {
				*(dst.(*[]int64)) = []int64{7, 8}
				return true, nil
			})
		deps.identities.EXPECT().FindByID(ctx, int64(7)).Return(jane(), nil)
		deps.identities.EXPECT().FindByID(ctx, int64(8)).Return(nil, identityerrors.ErrUserNotFound)

		list, err := deps.directory.List(ctx, 1)

		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, int64(7), list[0].ID)
		assert.False(t, list[0].Loaded())
	})

	t.Run("cache miss queries and stores ids", func(t *testing.T) {
		deps := setupDirectoryTest(t)

		deps.cache.EXPECT().Get(ctx, key, gomock.Any()).Return(false, nil)
		deps.attrs.EXPECT().EmployeeIDsByCompany(ctx, int64(1)).Return([]int64{7}, nil)
		deps.cache.EXPECT().Set(ctx, key, []int64{7}).Return(nil)
		deps.identities.EXPECT().FindByID(ctx, int64(7)).Return(jane(), nil)

		list, err := deps.directory.List(ctx, 1)

		assert.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("cache failure still lists", func(t *testing.T) {
		deps := setupDirectoryTest(t)

		deps.cache.EXPECT().Get(ctx, key, gomock.Any()).Return(false, errors.New("redis down"))
		deps.attrs.EXPECT().EmployeeIDsByCompany(ctx, int64(1)).Return([]int64{}, nil)
		deps.cache.EXPECT().Set(ctx, key, []int64{}).Return(errors.New("redis down"))

		list, err := deps.directory.List(ctx, 1)

		assert.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("query failure is returned", func(t *testing.T) {
		deps := setupDirectoryTest(t)

		deps.cache.EXPECT().Get(ctx, key, gomock.Any()).Return(false, nil)
		deps.attrs.EXPECT().EmployeeIDsByCompany(ctx, int64(1)).Return(nil, errors.New("db down"))

		_, err := deps.directory.List(ctx, 1)

		assert.Error(t, err)
	})
}

func TestDirectory_OptionsAndBust(t *testing.T) {
	ctx := context.Background()
	deps := setupDirectoryTest(t)
	key := employee.DirectoryKey(1)

	deps.cache.EXPECT().Get(ctx, key, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, dst any) (bool, error) {
			*(dst.(*[]int64)) = []int64{7}
			return true, nil
		})
	deps.identities.EXPECT().FindByID(ctx, int64(7)).Return(jane(), nil)
	deps.cache.EXPECT().Delete(ctx, key).Return(nil)

	opts, err := deps.directory.Options(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, []employee.OptionItem{{ID: 7, FullName: "Jane O'Neil"}}, opts)
	assert.NoError(t, deps.directory.Bust(ctx, 1))
}

func validRequest() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		CompanyID: 1,
		UserEmail: " jane@example.com ",
		Work: employee.WorkFields{
			Department:   2,
			Designation:  3,
			HiringSource: "referral",
			HiringDate:   "2024-03-01",
			PayRate:      "1500",
			Type:         "permanent",
		},
		Personal: employee.PersonalFields{
			FirstName: "<b>Jane</b>",
			LastName:  "O'Neil",
			Mobile:    "0812",
			Address:   "<script>x</script>Jl. Sudirman 1",
			Gender:    "female",
		},
	}
}

func TestDirectory_Create_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*employee.CreateEmployeeRequest)
	}{
		{"empty first name", func(r *employee.CreateEmployeeRequest) { r.Personal.FirstName = "" }},
		{"tags only first name", func(r *employee.CreateEmployeeRequest) { r.Personal.FirstName = "<i></i>" }},
		{"empty last name", func(r *employee.CreateEmployeeRequest) { r.Personal.LastName = "  " }},
		{"malformed email", func(r *employee.CreateEmployeeRequest) { r.UserEmail = "not-an-email" }},
		{"malformed hiring date", func(r *employee.CreateEmployeeRequest) { r.Work.HiringDate = "01/03/2024" }},
		{"non numeric pay rate", func(r *employee.CreateEmployeeRequest) { r.Work.PayRate = "lots" }},
		{"hiring source too long", func(r *employee.CreateEmployeeRequest) { r.Work.HiringSource = strings.Repeat("r", 21) }},
		{"nationality too long", func(r *employee.CreateEmployeeRequest) { r.Personal.Nationality = "Indonesian-born" }},
		{"first name too long", func(r *employee.CreateEmployeeRequest) { r.Personal.FirstName = strings.Repeat("J", 121) }},
		{"malformed other email", func(r *employee.CreateEmployeeRequest) { r.Personal.OtherEmail = "jane-at-home" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No expectations: validation must fail before any persistence.
			deps := setupDirectoryTest(t)
			req := validRequest()
			tt.mutate(&req)

			id, err := deps.directory.Create(ctx, req)

			assert.Zero(t, id)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		})
	}
}

func TestDirectory_Create_NewEmployee(t *testing.T) {
	ctx := context.Background()
	deps := setupDirectoryTest(t)

	var created *identity.User
	var patches []attribute.Patch
	var notified []events.EmployeeEvent
	row := janeRow()

	deps.counter.EXPECT().GetNextValue(ctx, int64(1), "employee_number").Return(int64(5), nil)
	deps.identities.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u *identity.User) error {
			u.ID = 7
			created = u
			return nil
		})
	deps.attrs.EXPECT().Create(ctx, &attribute.Row{EmployeeID: 7, CompanyID: 1, Status: "active"}).Return(nil)
	var attrCalls []string
	deps.attrs.EXPECT().Update(ctx, int64(7), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, p attribute.Patch) error {
			patches = append(patches, p)
			attrCalls = append(attrCalls, "update")
			return nil
		}).Times(4)
	deps.attrs.EXPECT().Get(ctx, int64(7), true).
		DoAndReturn(func(context.Context, int64, bool) (attribute.Row, bool, error) {
			attrCalls = append(attrCalls, "refresh")
			return row, true, nil
		}).Times(4)
	deps.history.EXPECT().Append(ctx, gomock.Any()).Return(history.Entry{}, nil).Times(3)
	deps.notifier.EXPECT().Notify(ctx, gomock.Any()).
		Do(func(_ context.Context, ev events.EmployeeEvent) { notified = append(notified, ev) }).
		Times(4)

	id, err := deps.directory.Create(ctx, validRequest())

	assert.NoError(t, err)
	assert.Equal(t, int64(7), id)

	assert.Equal(t, "jane@example.com", created.Email)
	assert.Equal(t, "Jane", created.FirstName)
	assert.Equal(t, "O'Neil", created.LastName)
	assert.Equal(t, "Jl. Sudirman 1", created.Address)
	assert.Equal(t, "EMP-000005", created.EmployeeNumber)
	assert.Equal(t, identity.RoleEmployee, created.Role)
	assert.NotEmpty(t, created.Password)
	assert.Equal(t, bcrypt.ErrMismatchedHashAndPassword,
		bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("")))

	assert.Equal(t, "permanent", *patches[0].Type)
	assert.Equal(t, "monthly", *patches[1].PayType)
	assert.Equal(t, "1500", patches[1].PayRate.String())
	assert.Equal(t, int64(2), *patches[2].Department)
	// The hiring fields are written last and the cached row is refreshed after them.
	assert.Equal(t, []string{"update", "refresh"}, attrCalls[len(attrCalls)-2:])
	hiring := patches[3]
	assert.Equal(t, int64(1), *hiring.CompanyID)
	assert.Equal(t, "referral", *hiring.HiringSource)
	assert.True(t, hiring.HiringDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, hiring.DateOfBirth.IsZero())

	assert.Equal(t, []string{
		events.EmployeeStatusChanged,
		events.EmployeeCompensationChanged,
		events.EmployeeJobChanged,
		events.EmployeeCreated,
	}, eventTypes(notified))
	assert.Equal(t, int64(1), notified[3].CompanyID)

	// Round trip: the created identity reads back with the sanitized fields.
	deps.identities.EXPECT().FindByID(ctx, int64(7)).Return(created, nil)
	deps.attrs.EXPECT().Get(ctx, int64(7), false).Return(row, true, nil)

	emp, err := deps.service.Resolve(ctx, employee.ByID(id))
	assert.NoError(t, err)
	rec, err := emp.FlatRecord(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Jane", rec.Name.FirstName)
	assert.Equal(t, "O'Neil", rec.Name.LastName)
	assert.Equal(t, "jane@example.com", rec.UserEmail)
	assert.Equal(t, "0812", rec.Personal.Mobile)
	assert.Equal(t, "female", rec.Personal.Gender)
	assert.Equal(t, "Jl. Sudirman 1", rec.Personal.Address)
}

func TestDirectory_Create_SkipsOptionalInitialisation(t *testing.T) {
	ctx := context.Background()
	deps := setupDirectoryTest(t)

	req := validRequest()
	req.Work.Type = ""
	req.Work.PayRate = "0"
	req.Personal.EmployeeID = "HR-1"

	deps.identities.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u *identity.User) error {
			assert.Equal(t, "HR-1", u.EmployeeNumber)
			u.ID = 7
			return nil
		})
	deps.attrs.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	deps.attrs.EXPECT().Update(ctx, int64(7), gomock.Any()).Return(nil).Times(2)
	deps.attrs.EXPECT().Get(ctx, int64(7), true).Return(janeRow(), true, nil).Times(2)
	deps.history.EXPECT().Append(ctx, gomock.Any()).Return(history.Entry{}, nil)
	deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Times(2)

	id, err := deps.directory.Create(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestDirectory_Create_UpdateExisting(t *testing.T) {
	ctx := context.Background()

	t.Run("updates identity without initialisation", func(t *testing.T) {
		deps := setupDirectoryTest(t)
		req := validRequest()
		req.UserID = 7

		deps.identities.EXPECT().FindByID(ctx, int64(7)).Return(jane(), nil)
		deps.identities.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *identity.User) error {
				assert.Equal(t, "EMP-000007", u.EmployeeNumber)
				assert.Equal(t, "Jane", u.FirstName)
				return nil
			})
		gomock.InOrder(
			deps.attrs.EXPECT().Update(ctx, int64(7), gomock.Any()).Return(nil),
			deps.attrs.EXPECT().Get(ctx, int64(7), true).Return(janeRow(), true, nil),
		)
		deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Do(func(_ context.Context, ev events.EmployeeEvent) {
			assert.Equal(t, events.EmployeeUpdated, ev.EventType)
		})

		id, err := deps.directory.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("refresh failure is returned", func(t *testing.T) {
		deps := setupDirectoryTest(t)
		req := validRequest()
		req.UserID = 7

		deps.identities.EXPECT().FindByID(ctx, int64(7)).Return(jane(), nil)
		deps.identities.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.attrs.EXPECT().Update(ctx, int64(7), gomock.Any()).Return(nil)
		deps.attrs.EXPECT().Get(ctx, int64(7), true).Return(attribute.Row{}, false, errors.New("db down"))

		_, err := deps.directory.Create(ctx, req)

		assert.EqualError(t, err, "db down")
	})

	t.Run("unknown account", func(t *testing.T) {
		deps := setupDirectoryTest(t)
		req := validRequest()
		req.UserID = 404

		deps.identities.EXPECT().FindByID(ctx, int64(404)).Return(nil, identityerrors.ErrUserNotFound)

		_, err := deps.directory.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestDirectory_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	deps := setupDirectoryTest(t)

	deps.counter.EXPECT().GetNextValue(ctx, int64(1), "employee_number").Return(int64(6), nil)
	deps.identities.EXPECT().Create(ctx, gomock.Any()).Return(identityerrors.ErrUserAlreadyExists)

	_, err := deps.directory.Create(ctx, validRequest())

	assert.Equal(t, employeeerrors.ErrEmployeeAlreadyExists, err)
}

func TestDirectory_RegisterAndRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("register ignores other roles", func(t *testing.T) {
		deps := setupDirectoryTest(t)

		err := deps.directory.Register(ctx, &identity.User{ID: 3, Role: "administrator"}, 1)

		assert.NoError(t, err)
	})

	t.Run("remove announces then deletes", func(t *testing.T) {
		deps := setupDirectoryTest(t)

		gomock.InOrder(
			deps.attrs.EXPECT().Get(ctx, int64(7), true).Return(janeRow(), true, nil),
			deps.notifier.EXPECT().Notify(ctx, gomock.Any()).Do(func(_ context.Context, ev events.EmployeeEvent) {
				assert.Equal(t, events.EmployeeDeleted, ev.EventType)
				assert.Equal(t, int64(1), ev.CompanyID)
			}),
			deps.attrs.EXPECT().Delete(ctx, int64(7)).Return(nil),
		)

		assert.NoError(t, deps.directory.Remove(ctx, 7))
	})
}

func eventTypes(evs []events.EmployeeEvent) []string {
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = ev.EventType
	}
	return out
}
