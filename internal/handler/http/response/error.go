package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/auth"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/leave"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/org"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrNotLoggedIn),
		errors.Is(err, auth.ErrWrongPassword):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrNotJoinedYet),
		errors.Is(err, auth.ErrUserDeleted):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrSessionLimit):
		Conflict(w, err.Error())

	// Users
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, user.ErrManagerNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrPhoneExists),
		errors.Is(err, user.ErrAlreadyDeleted):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrAdminOnboardsHROnly),
		errors.Is(err, user.ErrHRDepartmentRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrUserDeleted),
		errors.Is(err, user.ErrTopTierGrade),
		errors.Is(err, user.ErrDepartmentMismatch),
		errors.Is(err, user.ErrManagerCycle),
		errors.Is(err, user.ErrGradeChangeCooldown),
		errors.Is(err, user.ErrNoFurtherPromotion),
		errors.Is(err, user.ErrNoFurtherDemotion):
		BadRequest(w, err.Error(), nil)

	// Organization master data
	case errors.Is(err, org.ErrDepartmentNotFound),
		errors.Is(err, org.ErrCategoryNotFound),
		errors.Is(err, org.ErrGradeNotFound),
		errors.Is(err, org.ErrDesignationNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, org.ErrDepartmentExists),
		errors.Is(err, org.ErrGradeExists),
		errors.Is(err, org.ErrDesignationExists),
		errors.Is(err, org.ErrDepartmentInUse),
		errors.Is(err, org.ErrGradeInUse),
		errors.Is(err, org.ErrDesignationInUse),
		errors.Is(err, org.ErrDepartmentDeleted),
		errors.Is(err, org.ErrGradeDeleted),
		errors.Is(err, org.ErrDesignationDeleted):
		Conflict(w, err.Error())
	case errors.Is(err, org.ErrInvalidHierarchy),
		errors.Is(err, org.ErrSubordinateHierarchy):
		BadRequest(w, err.Error(), nil)

	// Leave
	case errors.Is(err, leave.ErrLedgerNotFound),
		errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrAlreadyApproved),
		errors.Is(err, leave.ErrAlreadyRejected),
		errors.Is(err, leave.ErrAlreadyActioned),
		errors.Is(err, leave.ErrRequestExpired):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, leave.ErrProbation),
		errors.Is(err, leave.ErrNotJoined),
		errors.Is(err, leave.ErrManagerNotAssigned):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrNotRequestManager),
		errors.Is(err, leave.ErrManagerChanged),
		errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, err.Error())

	default:
		slog.Error("unhandled service error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
