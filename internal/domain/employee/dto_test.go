package employee

import (
	"testing"

	"github.com/emp-proj/employee-register-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(t *testing.T, err error) []string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, e.Field)
	}
	return out
}

func TestCreateEmployeeRequest_Validate(t *testing.T) {
	t.Run("defaults status to active", func(t *testing.T) {
		req := CreateEmployeeRequest{Name: "Asha Rao", JoinDate: "2024-01-15", BaseSalary: decimal.NewFromInt(1000)}
		require.NoError(t, req.Validate())
		assert.Equal(t, StatusActive, req.Status)
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		req := CreateEmployeeRequest{
			Name:       "  ",
			PhoneNo:    "12ab",
			JoinDate:   "15/01/2024",
			BaseSalary: decimal.NewFromInt(-1),
			Status:     "retired",
		}
		assert.ElementsMatch(t,
			[]string{"name", "phone_no", "join_date", "base_salary", "status"},
			fields(t, req.Validate()))
	})

	t.Run("accepts formatted phone numbers", func(t *testing.T) {
		req := CreateEmployeeRequest{Name: "Asha Rao", PhoneNo: "+91 98450-12345"}
		assert.NoError(t, req.Validate())
	})
}

func TestUpdateEmployeeRequest_Validate(t *testing.T) {
	req := UpdateEmployeeRequest{Name: "Asha Rao"}
	assert.ElementsMatch(t, []string{"id", "status"}, fields(t, req.Validate()))

	req = UpdateEmployeeRequest{ID: 3, Name: "Asha Rao", Status: StatusInactive}
	assert.NoError(t, req.Validate())
}

func TestEmployeeFilter_Validate(t *testing.T) {
	assert.NoError(t, (&EmployeeFilter{}).Validate())
	assert.NoError(t, (&EmployeeFilter{Status: "inactive"}).Validate())
	assert.Equal(t, []string{"status"}, fields(t, (&EmployeeFilter{Status: "gone"}).Validate()))
}

func TestDirectory(t *testing.T) {
	employees := []Employee{
		{ID: 1, Name: "Asha Rao", Status: StatusActive},
		{ID: 2, Name: "Ben Ode", Status: StatusInactive},
		{ID: 3, Name: "Chen Li", Status: StatusActive},
	}

	dir := NewDirectory(employees)
	name, ok := dir.NameOf(2)
	assert.True(t, ok)
	assert.Equal(t, "Ben Ode", name)

	_, ok = dir.NameOf(9)
	assert.False(t, ok)

	assert.Equal(t, []int64{1, 3}, ActiveIDs(employees))
}
