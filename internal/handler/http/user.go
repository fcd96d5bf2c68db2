package http

import (
	"encoding/json"
	"net/http"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/handler/http/middleware"
	"github.com/arcadia-hr/hrm-backend-go/internal/handler/http/response"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/validator"
	gradeservice "github.com/arcadia-hr/hrm-backend-go/internal/service/grade"
	userservice "github.com/arcadia-hr/hrm-backend-go/internal/service/user"
	"github.com/go-chi/chi/v5"
)

type UserHandler interface {
	Onboard(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Subordinates(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	SetManager(w http.ResponseWriter, r *http.Request)
	ChangeGrade(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService  *userservice.ServiceImpl
	gradeService *gradeservice.ServiceImpl
}

func NewUserHandler(userService *userservice.ServiceImpl, gradeService *gradeservice.ServiceImpl) UserHandler {
	return &UserHandlerImpl{userService: userService, gradeService: gradeService}
}

// Onboard implements UserHandler.
func (h *UserHandlerImpl) Onboard(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "access denied")
		return
	}

	var req user.OnboardUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.userService.Onboard(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User onboarded successfully", user.ToResponse(created))
}

// Me implements UserHandler.
func (h *UserHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "access denied")
		return
	}

	u, err := h.userService.GetByEmail(r.Context(), identity.Email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.ToResponse(u))
}

// Get implements UserHandler.
func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	u, err := h.userService.GetByEmail(r.Context(), email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.ToResponse(u))
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := user.Filter{}
	if v := r.URL.Query().Get("department"); v != "" {
		filter.Department = &v
	}
	if v := r.URL.Query().Get("grade"); v != "" {
		filter.Grade = &v
	}
	if v := r.URL.Query().Get("designation"); v != "" {
		filter.Designation = &v
	}
	if v := r.URL.Query().Get("manager"); v != "" {
		filter.Manager = &v
	}

	users, err := h.userService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.ToResponses(users))
}

// Subordinates implements UserHandler.
func (h *UserHandlerImpl) Subordinates(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "access denied")
		return
	}

	subs, err := h.userService.ListSubordinates(r.Context(), identity.Email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, user.ToResponses(subs))
}

// Update implements UserHandler.
func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.userService.Update(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", nil)
}

// Delete implements UserHandler.
func (h *UserHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := h.userService.Delete(r.Context(), email); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deleted successfully", nil)
}

type setManagerRequest struct {
	Employee string `json:"employee"`
	Manager  string `json:"manager"`
}

// SetManager implements UserHandler.
func (h *UserHandlerImpl) SetManager(w http.ResponseWriter, r *http.Request) {
	var req setManagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.userService.SetManager(r.Context(), req.Employee, req.Manager); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Manager assigned successfully", nil)
}

type changeGradeRequest struct {
	Email   string           `json:"email"`
	Action  user.GradeAction `json:"action"`
	Manager *string          `json:"manager,omitempty"`
}

// ChangeGrade implements UserHandler.
func (h *UserHandlerImpl) ChangeGrade(w http.ResponseWriter, r *http.Request) {
	var req changeGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if !req.Action.Valid() {
		response.HandleError(w, validator.ValidationErrors{{Field: "action", Message: "action must be promotion or demotion"}})
		return
	}

	change, err := h.gradeService.Change(r.Context(), req.Email, req.Action, req.Manager)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Grade changed successfully", change)
}
