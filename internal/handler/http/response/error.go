package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/session"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Check-in errors
	case errors.Is(err, geo.ErrLocationRequired):
		BadRequest(w, "Location is required to check in", nil)
	case errors.Is(err, geo.ErrTooFar):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidPIN):
		Unauthorized(w, "Incorrect PIN")
	case errors.Is(err, session.ErrInvalidToken):
		Forbidden(w, "Invalid session, reload the page")
	case errors.Is(err, session.ErrExpiredToken):
		RequestTimeout(w, "Session expired, reload the page")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminDisabled):
		Forbidden(w, "Admin access is not configured")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
