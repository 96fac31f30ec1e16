package identity

import "time"

const RoleEmployee = "employee"

// User is the account record the employee subsystem reads names, email and
// personal details from. It is owned by the account system; this package only
// exposes the operations the employee directory delegates to it.
type User struct {
	ID         int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Login      string `gorm:"column:user_login;type:varchar(255);not null" json:"user_login"`
	Email      string `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex:uq_hr_users_email" json:"user_email"`
	Password   string `gorm:"column:user_pass;type:text;not null" json:"-"`
	Role       string `gorm:"column:role;type:varchar(50);default:employee" json:"role"`
	FirstName  string `gorm:"column:first_name;type:varchar(120)" json:"first_name"`
	MiddleName string `gorm:"column:middle_name;type:varchar(120)" json:"middle_name"`
	LastName   string `gorm:"column:last_name;type:varchar(120)" json:"last_name"`

	EmployeeNumber string `gorm:"column:employee_number;type:varchar(50)" json:"employee_id"`
	PhotoID        int64  `gorm:"column:photo_id" json:"photo_id"`
	PhotoURL       string `gorm:"column:photo_url;type:text" json:"photo_url"`

	OtherEmail     string `gorm:"column:other_email;type:varchar(255)" json:"other_email"`
	Phone          string `gorm:"column:phone;type:varchar(50)" json:"phone"`
	WorkPhone      string `gorm:"column:work_phone;type:varchar(50)" json:"work_phone"`
	Mobile         string `gorm:"column:mobile;type:varchar(50)" json:"mobile"`
	Address        string `gorm:"column:address;type:text" json:"address"`
	Gender         string `gorm:"column:gender;type:varchar(20)" json:"gender"`
	MaritalStatus  string `gorm:"column:marital_status;type:varchar(20)" json:"marital_status"`
	Nationality    string `gorm:"column:nationality;type:varchar(10)" json:"nationality"`
	DrivingLicense string `gorm:"column:driving_license;type:varchar(100)" json:"driving_license"`
	Hobbies        string `gorm:"column:hobbies;type:text" json:"hobbies"`
	UserURL        string `gorm:"column:user_url;type:text" json:"user_url"`
	Description    string `gorm:"column:description;type:text" json:"description"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (User) TableName() string {
	return "hr_users"
}

// Field returns the value of a profile field by its column name. The second
// result is false for names that are not profile fields.
func (u *User) Field(name string) (string, bool) {
	if u == nil {
		return "", false
	}
	switch name {
	case "user_login":
		return u.Login, true
	case "user_email":
		return u.Email, true
	case "role":
		return u.Role, true
	case "first_name":
		return u.FirstName, true
	case "middle_name":
		return u.MiddleName, true
	case "last_name":
		return u.LastName, true
	case "employee_id", "employee_number":
		return u.EmployeeNumber, true
	case "photo_url":
		return u.PhotoURL, true
	case "other_email":
		return u.OtherEmail, true
	case "phone":
		return u.Phone, true
	case "work_phone":
		return u.WorkPhone, true
	case "mobile":
		return u.Mobile, true
	case "address":
		return u.Address, true
	case "gender":
		return u.Gender, true
	case "marital_status":
		return u.MaritalStatus, true
	case "nationality":
		return u.Nationality, true
	case "driving_license":
		return u.DrivingLicense, true
	case "hobbies":
		return u.Hobbies, true
	case "user_url":
		return u.UserURL, true
	case "description":
		return u.Description, true
	}
	return "", false
}
