package attribute

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Row is an employee's employment attributes joined with the titles of the
// designation and department it points at.
type Row struct {
	ID               int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EmployeeID       int64           `gorm:"column:employee_id;not null;uniqueIndex:uq_hr_employees_employee" json:"employee_id"`
	CompanyID        int64           `gorm:"column:company_id;not null;index" json:"company_id"`
	Designation      int64           `gorm:"column:designation;not null;default:0" json:"designation"`
	DesignationTitle string          `gorm:"->;column:designation_title;-:migration" json:"designation_title"`
	Department       int64           `gorm:"column:department;not null;default:0" json:"department"`
	DepartmentTitle  string          `gorm:"->;column:department_title;-:migration" json:"department_title"`
	Location         int64           `gorm:"column:location;not null;default:0" json:"location"`
	HiringSource     string          `gorm:"column:hiring_source;type:varchar(20)" json:"hiring_source"`
	HiringDate       *time.Time      `gorm:"column:hiring_date;type:date" json:"hiring_date"`
	DateOfBirth      *time.Time      `gorm:"column:date_of_birth;type:date" json:"date_of_birth"`
	ReportingTo      int64           `gorm:"column:reporting_to;not null;default:0" json:"reporting_to"`
	PayRate          decimal.Decimal `gorm:"column:pay_rate;type:numeric(12,2);not null;default:0" json:"pay_rate"`
	PayType          string          `gorm:"column:pay_type;type:varchar(20)" json:"pay_type"`
	Type             string          `gorm:"column:type;type:varchar(20)" json:"type"`
	Status           string          `gorm:"column:status;type:varchar(20)" json:"status"`
}

func (Row) TableName() string {
	return "hr_employees"
}

// Fields lists the names served from the attribute row rather than the
// identity record.
var Fields = []string{
	"designation",
	"designation_title",
	"department",
	"department_title",
	"location",
	"hiring_source",
	"hiring_date",
	"date_of_birth",
	"reporting_to",
	"pay_rate",
	"pay_type",
	"type",
	"status",
}

// IsField reports whether name is one of Fields.
func IsField(name string) bool {
	for _, f := range Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Field returns the string form of the named attribute.
func (r Row) Field(name string) (string, bool) {
	switch name {
	case "designation":
		return formatID(r.Designation), true
	case "designation_title":
		return r.DesignationTitle, true
	case "department":
		return formatID(r.Department), true
	case "department_title":
		return r.DepartmentTitle, true
	case "location":
		return formatID(r.Location), true
	case "hiring_source":
		return r.HiringSource, true
	case "hiring_date":
		return formatDate(r.HiringDate), true
	case "date_of_birth":
		return formatDate(r.DateOfBirth), true
	case "reporting_to":
		return formatID(r.ReportingTo), true
	case "pay_rate":
		if r.PayRate.IsZero() {
			return "", true
		}
		return r.PayRate.String(), true
	case "pay_type":
		return r.PayType, true
	case "type":
		return r.Type, true
	case "status":
		return r.Status, true
	}
	return "", false
}

// Attributes is the lazily loaded attribute snapshot held by an employee.
// The zero value is unresolved.
type Attributes struct {
	row      Row
	resolved bool
	found    bool
}

// Resolved wraps a fetch result.
func Resolved(row Row, found bool) Attributes {
	if !found {
		row = Row{}
	}
	return Attributes{row: row, resolved: true, found: found}
}

func (a Attributes) IsResolved() bool { return a.resolved }

// Found is false when the employee has no attribute row.
func (a Attributes) Found() bool { return a.found }

func (a Attributes) Row() Row { return a.row }

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
