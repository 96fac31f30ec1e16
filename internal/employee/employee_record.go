package employee

import (
	"context"

	"go-hrm/internal/attribute"
	"go-hrm/internal/shared/sanitize"
)

// FlatRecord builds the full snapshot of the employee and runs the registered
// hooks over it. The null Employee produces the all-empty record without any
// storage access.
func (e *Employee) FlatRecord(ctx context.Context) (FlatRecord, error) {
	var rec FlatRecord

	if e.Exists() {
		row, err := e.row(ctx)
		if err != nil {
			return FlatRecord{}, err
		}
		fillIdentity(&rec, e)
		fillWork(&rec, row)
	}

	if e != nil && e.svc != nil {
		for _, h := range e.svc.recordHooks() {
			h(&rec, e.ID, e.Identity())
		}
	}
	return rec, nil
}

func fillIdentity(rec *FlatRecord, e *Employee) {
	u := e.user
	un := sanitize.Unslash

	rec.ID = e.ID
	rec.EmployeeID = un(u.EmployeeNumber)
	rec.UserEmail = u.Email
	rec.Name = NameBlock{
		FirstName:  un(u.FirstName),
		MiddleName: un(u.MiddleName),
		LastName:   un(u.LastName),
		FullName:   e.FullName(),
	}
	rec.Avatar = AvatarBlock{ID: u.PhotoID, URL: u.PhotoURL}
	rec.Personal = PersonalBlock{
		OtherEmail:     un(u.OtherEmail),
		Phone:          un(u.Phone),
		WorkPhone:      un(u.WorkPhone),
		Mobile:         un(u.Mobile),
		Address:        un(u.Address),
		Gender:         un(u.Gender),
		MaritalStatus:  un(u.MaritalStatus),
		Nationality:    un(u.Nationality),
		DrivingLicense: un(u.DrivingLicense),
		Hobbies:        un(u.Hobbies),
		UserURL:        un(u.UserURL),
		Description:    un(u.Description),
	}
}

func fillWork(rec *FlatRecord, row attribute.Row) {
	field := func(name string) string {
		v, _ := row.Field(name)
		return sanitize.Unslash(v)
	}

	rec.Work = WorkBlock{
		Designation:  row.Designation,
		Department:   row.Department,
		Location:     row.Location,
		HiringSource: field("hiring_source"),
		HiringDate:   field("hiring_date"),
		DateOfBirth:  field("date_of_birth"),
		ReportingTo:  row.ReportingTo,
		PayRate:      field("pay_rate"),
		PayType:      field("pay_type"),
		Type:         field("type"),
		Status:       field("status"),
	}
}
