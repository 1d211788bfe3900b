package employee

import (
	"mime/multipart"

	"github.com/shopspring/decimal"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

const (
	MaxPhotoSizeBytes = 2 << 20 // 2MB
)

var AllowedPhotoTypes = []string{"image/jpeg", "image/png", "image/gif"}

type CreateEmployeeRequest struct {
	EmployeeCode string
	Name         string
	Position     string
	Department   string
	Address      string
	Email        string
	Salary       decimal.Decimal
	SSS          decimal.Decimal
	PagIbig      decimal.Decimal
	PhilHealth   decimal.Decimal
	HireDate     string

	Photo       multipart.File
	PhotoHeader *multipart.FileHeader
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee_code is required"})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee_code may only contain uppercase letters, numbers and dashes"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.Position) {
		errs = append(errs, validator.ValidationError{Field: "position", Message: "position is required"})
	}
	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}
	if validator.IsEmpty(r.Address) {
		errs = append(errs, validator.ValidationError{Field: "address", Message: "address is required"})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must be non-negative"})
	}
	if r.SSS.IsNegative() || r.PagIbig.IsNegative() || r.PhilHealth.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deductions", Message: "deduction amounts must be non-negative"})
	}
	if validator.IsEmpty(r.HireDate) {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date is required"})
	} else if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be in YYYY-MM-DD format"})
	}

	if r.PhotoHeader != nil {
		if r.PhotoHeader.Size > MaxPhotoSizeBytes {
			errs = append(errs, validator.ValidationError{Field: "photo", Message: "photo must not exceed 2MB"})
		}
		if !validator.IsInSlice(r.PhotoHeader.Header.Get("Content-Type"), AllowedPhotoTypes) {
			errs = append(errs, validator.ValidationError{Field: "photo", Message: "photo must be a jpeg, png or gif image"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID         string
	Name       *string          `json:"name,omitempty"`
	Position   *string          `json:"position,omitempty"`
	Department *string          `json:"department,omitempty"`
	Address    *string          `json:"address,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Salary     *decimal.Decimal `json:"salary,omitempty"`
	SSS        *decimal.Decimal `json:"sss,omitempty"`
	PagIbig    *decimal.Decimal `json:"pag_ibig,omitempty"`
	PhilHealth *decimal.Decimal `json:"phil_health,omitempty"`
	HireDate   *string          `json:"hire_date,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary must be non-negative"})
	}
	for field, v := range map[string]*decimal.Decimal{"sss": r.SSS, "pag_ibig": r.PagIbig, "phil_health": r.PhilHealth} {
		if v != nil && v.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	Department    string
	SortBy        string
	SortDirection string
	Page          int
	Limit         int
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employee_code"`
	Name         string          `json:"name"`
	Position     string          `json:"position"`
	Department   string          `json:"department"`
	Address      string          `json:"address"`
	Email        string          `json:"email"`
	Salary       decimal.Decimal `json:"salary"`
	SSS          decimal.Decimal `json:"sss"`
	PagIbig      decimal.Decimal `json:"pag_ibig"`
	PhilHealth   decimal.Decimal `json:"phil_health"`
	HireDate     string          `json:"hire_date"`
	PhotoURL     *string         `json:"photo_url,omitempty"`
}

type ListEmployeesResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

type DepartmentCountsResponse struct {
	Total       int64            `json:"total"`
	Departments map[string]int64 `json:"departments"`
}
