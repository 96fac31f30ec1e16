package tenant

import "gorm.io/gorm"

// Scope restricts a query to one organizational unit (company).
func Scope(companyID int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}
