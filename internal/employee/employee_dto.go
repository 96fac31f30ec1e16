package employee

// JobInfo is the argument of UpdateJobInfo. Zero ids clear the field.
type JobInfo struct {
	Department  int64
	Designation int64
	ReportingTo int64
	Location    int64
}

type CreateEmployeeRequest struct {
	// UserID selects the update path when non-zero.
	UserID    int64          `json:"user_id"`
	CompanyID int64          `json:"company_id"`
	UserEmail string         `json:"user_email" validate:"required,email,max=255"`
	Work      WorkFields     `json:"work"`
	Personal  PersonalFields `json:"personal"`
}

type WorkFields struct {
	Designation  int64  `json:"designation"`
	Department   int64  `json:"department"`
	Location     int64  `json:"location"`
	HiringSource string `json:"hiring_source" validate:"max=20"`
	HiringDate   string `json:"hiring_date" validate:"omitempty,datetime=2006-01-02"`
	DateOfBirth  string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	ReportingTo  int64  `json:"reporting_to"`
	PayRate      string `json:"pay_rate" validate:"omitempty,numeric"`
	PayType      string `json:"pay_type" validate:"max=20"`
	Type         string `json:"type" validate:"max=20"`
	Status       string `json:"status" validate:"max=20"`
}

type PersonalFields struct {
	PhotoID        int64  `json:"photo_id"`
	EmployeeID     string `json:"employee_id" validate:"max=50"`
	FirstName      string `json:"first_name" validate:"required,max=120"`
	MiddleName     string `json:"middle_name" validate:"max=120"`
	LastName       string `json:"last_name" validate:"required,max=120"`
	OtherEmail     string `json:"other_email" validate:"omitempty,email,max=255"`
	Phone          string `json:"phone" validate:"max=50"`
	WorkPhone      string `json:"work_phone" validate:"max=50"`
	Mobile         string `json:"mobile" validate:"max=50"`
	Address        string `json:"address"`
	Gender         string `json:"gender" validate:"max=20"`
	MaritalStatus  string `json:"marital_status" validate:"max=20"`
	Nationality    string `json:"nationality" validate:"max=10"`
	DrivingLicense string `json:"driving_license" validate:"max=100"`
	Hobbies        string `json:"hobbies"`
	UserURL        string `json:"user_url"`
	Description    string `json:"description"`
}

// FlatRecord is the complete serializable view of an employee.
type FlatRecord struct {
	ID         int64          `json:"id"`
	EmployeeID string         `json:"employee_id"`
	Name       NameBlock      `json:"name"`
	Avatar     AvatarBlock    `json:"avatar"`
	UserEmail  string         `json:"user_email"`
	Work       WorkBlock      `json:"work"`
	Personal   PersonalBlock  `json:"personal"`
	Extra      map[string]any `json:"extra,omitempty"`
}

type NameBlock struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	FullName   string `json:"full_name"`
}

type AvatarBlock struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type WorkBlock struct {
	Designation  int64  `json:"designation"`
	Department   int64  `json:"department"`
	Location     int64  `json:"location"`
	HiringSource string `json:"hiring_source"`
	HiringDate   string `json:"hiring_date"`
	DateOfBirth  string `json:"date_of_birth"`
	ReportingTo  int64  `json:"reporting_to"`
	PayRate      string `json:"pay_rate"`
	PayType      string `json:"pay_type"`
	Type         string `json:"type"`
	Status       string `json:"status"`
}

type PersonalBlock struct {
	OtherEmail     string `json:"other_email"`
	Phone          string `json:"phone"`
	WorkPhone      string `json:"work_phone"`
	Mobile         string `json:"mobile"`
	Address        string `json:"address"`
	Gender         string `json:"gender"`
	MaritalStatus  string `json:"marital_status"`
	Nationality    string `json:"nationality"`
	DrivingLicense string `json:"driving_license"`
	Hobbies        string `json:"hobbies"`
	UserURL        string `json:"user_url"`
	Description    string `json:"description"`
}

// OptionItem is one entry of a company's employee picker.
type OptionItem struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}
