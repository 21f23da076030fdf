package employee

import (
	"github.com/emp-proj/employee-register-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	Name       string          `json:"name"`
	PhoneNo    string          `json:"phone_no"`
	Address    string          `json:"address"`
	Role       string          `json:"role"`
	JoinDate   string          `json:"join_date"` // YYYY-MM-DD
	BaseSalary decimal.Decimal `json:"base_salary"`
	Status     Status          `json:"status"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validateEmployeeFields(r.Name, r.PhoneNo, r.JoinDate, r.BaseSalary)

	if r.Status == "" {
		r.Status = StatusActive
	} else if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be either 'active' or 'inactive'",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID         int64           `json:"-"`
	Name       string          `json:"name"`
	PhoneNo    string          `json:"phone_no"`
	Address    string          `json:"address"`
	Role       string          `json:"role"`
	JoinDate   string          `json:"join_date,omitempty"` // kept as is when empty
	BaseSalary decimal.Decimal `json:"base_salary"`
	Status     Status          `json:"status"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validateEmployeeFields(r.Name, r.PhoneNo, r.JoinDate, r.BaseSalary)

	if r.ID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be either 'active' or 'inactive'",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateEmployeeFields(name, phone, joinDate string, baseSalary decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "Employee name cannot be empty",
		})
	}

	if phone != "" && !validator.IsValidPhoneNumber(phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone_no",
			Message: "phone_no must be 7-15 digits",
		})
	}

	if joinDate != "" {
		if _, valid := validator.IsValidDate(joinDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be in YYYY-MM-DD format",
			})
		}
	}

	if baseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}

	return errs
}

type EmployeeFilter struct {
	Status string `json:"status,omitempty"`
	Role   string `json:"role,omitempty"`
	Search string `json:"search,omitempty"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != "" && !Status(f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be either 'active' or 'inactive'",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	PhoneNo    string          `json:"phone_no"`
	Address    string          `json:"address"`
	Role       string          `json:"role"`
	JoinDate   string          `json:"join_date"`
	BaseSalary decimal.Decimal `json:"base_salary"`
	Status     Status          `json:"status"`
	CreatedAt  string          `json:"created_at,omitempty"`
	UpdatedAt  string          `json:"updated_at,omitempty"`
}

// DirectoryEntry is the slim view used for name resolution and bulk actions.
type DirectoryEntry struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status Status `json:"status"`
}
