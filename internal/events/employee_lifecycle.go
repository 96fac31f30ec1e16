package events

import "time"

const EmployeeLifecycleTopic = "hrm.employee.lifecycle.v1"

const (
	EmployeeCreated             = "employee_created"
	EmployeeUpdated             = "employee_updated"
	EmployeeDeleted             = "employee_deleted"
	EmployeeStatusChanged       = "employee_status_changed"
	EmployeeCompensationChanged = "employee_compensation_changed"
	EmployeeJobChanged          = "employee_job_changed"
)

// EmployeeEvent is the payload published for every lifecycle change. Detail
// carries the event specific values (new status, rate, department, ...).
type EmployeeEvent struct {
	EventType  string            `json:"event_type"`
	EmployeeID int64             `json:"employee_id"`
	CompanyID  int64             `json:"company_id"`
	Detail     map[string]string `json:"detail,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// AffectsMembership reports whether the event changes which employees a
// company lists.
func (e EmployeeEvent) AffectsMembership() bool {
	switch e.EventType {
	case EmployeeCreated, EmployeeUpdated, EmployeeDeleted:
		return true
	}
	return false
}
