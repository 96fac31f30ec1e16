package attribute

import (
	"time"

	"github.com/shopspring/decimal"
)

// Patch is a partial update: only non-nil fields are written.
type Patch struct {
	CompanyID    *int64
	Designation  *int64
	Department   *int64
	Location     *int64
	ReportingTo  *int64
	HiringSource *string
	HiringDate   *time.Time
	DateOfBirth  *time.Time
	PayRate      *decimal.Decimal
	PayType      *string
	Type         *string
	Status       *string
}

// Columns maps the set fields to their column names.
func (p Patch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.CompanyID != nil {
		cols["company_id"] = *p.CompanyID
	}
	if p.Designation != nil {
		cols["designation"] = *p.Designation
	}
	if p.Department != nil {
		cols["department"] = *p.Department
	}
	if p.Location != nil {
		cols["location"] = *p.Location
	}
	if p.ReportingTo != nil {
		cols["reporting_to"] = *p.ReportingTo
	}
	if p.HiringSource != nil {
		cols["hiring_source"] = *p.HiringSource
	}
	if p.HiringDate != nil {
		cols["hiring_date"] = dateOrNil(*p.HiringDate)
	}
	if p.DateOfBirth != nil {
		cols["date_of_birth"] = dateOrNil(*p.DateOfBirth)
	}
	if p.PayRate != nil {
		cols["pay_rate"] = *p.PayRate
	}
	if p.PayType != nil {
		cols["pay_type"] = *p.PayType
	}
	if p.Type != nil {
		cols["type"] = *p.Type
	}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	return cols
}

func (p Patch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// A zero time in a patch clears the date column.
func dateOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
