package attribute_test

import (
	"testing"
	"time"

	"go-hrm/internal/attribute"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRow_Field(t *testing.T) {
	hired := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	row := attribute.Row{
		Designation:     3,
		DepartmentTitle: "Research",
		HiringDate:      &hired,
		PayRate:         decimal.RequireFromString("1500.50"),
		Type:            "permanent",
	}

	tests := []struct {
		name string
		want string
	}{
		{"designation", "3"},
		{"department", ""},
		{"department_title", "Research"},
		{"hiring_date", "2024-03-01"},
		{"date_of_birth", ""},
		{"pay_rate", "1500.5"},
		{"type", "permanent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := row.Field(tt.name)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := row.Field("first_name")
	assert.False(t, ok)
}

func TestIsField(t *testing.T) {
	assert.True(t, attribute.IsField("department_title"))
	assert.True(t, attribute.IsField("status"))
	assert.False(t, attribute.IsField("first_name"))
}

func TestPatch_Columns(t *testing.T) {
	dept := int64(4)
	status := "terminated"
	var zero time.Time

	cols := attribute.Patch{Department: &dept, Status: &status, DateOfBirth: &zero}.Columns()

	assert.Equal(t, map[string]any{
		"department":    int64(4),
		"status":        "terminated",
		"date_of_birth": nil,
	}, cols)
	assert.True(t, attribute.Patch{}.IsEmpty())
}

func TestAttributes(t *testing.T) {
	var a attribute.Attributes
	assert.False(t, a.IsResolved())

	a = attribute.Resolved(attribute.Row{EmployeeID: 7}, false)
	assert.True(t, a.IsResolved())
	assert.False(t, a.Found())
	assert.Equal(t, attribute.Row{}, a.Row())

	a = attribute.Resolved(attribute.Row{EmployeeID: 7}, true)
	assert.True(t, a.Found())
	assert.Equal(t, int64(7), a.Row().EmployeeID)
}
