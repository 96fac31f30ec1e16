package history

import "time"

const (
	ModuleJob          = "job"
	ModuleCompensation = "compensation"
	ModuleEmployment   = "employment"
)

// Modules is the fixed set of groups History exposes, in display order.
var Modules = []string{ModuleJob, ModuleCompensation, ModuleEmployment}

func IsModule(name string) bool {
	switch name {
	case ModuleJob, ModuleCompensation, ModuleEmployment:
		return true
	}
	return false
}

type Entry struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EmployeeID int64     `gorm:"column:employee_id;not null;index" json:"employee_id"`
	Module     string    `gorm:"column:module;type:varchar(20);not null" json:"module"`
	Category   string    `gorm:"column:category;not null" json:"category"`
	Type       string    `gorm:"column:type;not null" json:"type"`
	Comment    string    `gorm:"column:comment;not null" json:"comment"`
	Data       string    `gorm:"column:data;not null" json:"data"`
	Date       time.Time `gorm:"column:date;not null" json:"date"`
}

func (Entry) TableName() string {
	return "hr_employee_history"
}

// Groups holds entries keyed by module.
type Groups map[string][]Entry

// Group buckets entries by module, preserving order. Entries whose module is
// not one of Modules are left out.
func Group(entries []Entry) Groups {
	g := make(Groups, len(Modules))
	for _, m := range Modules {
		g[m] = []Entry{}
	}
	for _, e := range entries {
		if !IsModule(e.Module) {
			continue
		}
		g[e.Module] = append(g[e.Module], e)
	}
	return g
}

// Select narrows g to a single module. An empty or unknown module keeps all
// groups.
func (g Groups) Select(module string) Groups {
	if !IsModule(module) {
		return g
	}
	list := g[module]
	if list == nil {
		list = []Entry{}
	}
	return Groups{module: list}
}
