package employee

import (
	"strings"

	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/validator"
)

const DefaultPageSize = 10

type CreateEmployeeRequest struct {
	Name string `json:"name" validate:"required,max=120"`
	PIN  string `json:"pin" validate:"required,pin"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.Struct(r)
}

type UpdateEmployeeRequest struct {
	ID   string  `json:"-"`
	Name *string `json:"name,omitempty" validate:"omitempty,max=120"`
	PIN  *string `json:"pin,omitempty" validate:"omitempty,pin"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			return validator.ValidationErrors{{
				Field:   "name",
				Message: "name must not be empty",
			}}
		}
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}

	if err := validator.Struct(r); err != nil {
		return err
	}

	if r.Name == nil && r.PIN == nil {
		return validator.ValidationErrors{{
			Field:   "name",
			Message: "at least one of name or pin is required",
		}}
	}
	return nil
}

type EmployeeFilter struct {
	Search string `json:"search,omitempty"`
	All    bool   `json:"all"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	f.Search = strings.TrimSpace(f.Search)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Pagination is sent as the response meta of a paged listing.
type Pagination struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
}

type ListEmployeeResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	Pagination *Pagination        `json:"-"`
}

// DirectoryEntry is what the check-in page needs to render its name picker.
type DirectoryEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
