package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/org"
	"github.com/arcadia-hr/hrm-backend-go/internal/handler/http/response"
	orgservice "github.com/arcadia-hr/hrm-backend-go/internal/service/org"
	"github.com/go-chi/chi/v5"
)

type OrgHandler interface {
	CreateDepartment(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
	UpdateDepartment(w http.ResponseWriter, r *http.Request)
	DeleteDepartment(w http.ResponseWriter, r *http.Request)

	ListGradeCategories(w http.ResponseWriter, r *http.Request)

	CreateGrade(w http.ResponseWriter, r *http.Request)
	ListGrades(w http.ResponseWriter, r *http.Request)
	UpdateGrade(w http.ResponseWriter, r *http.Request)
	DeleteGrade(w http.ResponseWriter, r *http.Request)

	CreateDesignation(w http.ResponseWriter, r *http.Request)
	ListDesignations(w http.ResponseWriter, r *http.Request)
	RenameDesignation(w http.ResponseWriter, r *http.Request)
	DeleteDesignation(w http.ResponseWriter, r *http.Request)
}

type OrgHandlerImpl struct {
	orgService *orgservice.ServiceImpl
}

func NewOrgHandler(orgService *orgservice.ServiceImpl) OrgHandler {
	return &OrgHandlerImpl{orgService: orgService}
}

// CreateDepartment implements OrgHandler.
func (h *OrgHandlerImpl) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req org.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	d, err := h.orgService.CreateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Department created successfully", d)
}

// ListDepartments implements OrgHandler.
func (h *OrgHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.orgService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, departments)
}

type updateDescriptionRequest struct {
	Description string `json:"description"`
}

// UpdateDepartment implements OrgHandler.
func (h *OrgHandlerImpl) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var req updateDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.orgService.UpdateDepartmentDescription(r.Context(), chi.URLParam(r, "id"), req.Description); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department updated successfully", nil)
}

// DeleteDepartment implements OrgHandler.
func (h *OrgHandlerImpl) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.orgService.DeleteDepartment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Department deleted successfully", nil)
}

// ListGradeCategories implements OrgHandler.
func (h *OrgHandlerImpl) ListGradeCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.orgService.ListGradeCategories(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, categories)
}

// CreateGrade implements OrgHandler.
func (h *OrgHandlerImpl) CreateGrade(w http.ResponseWriter, r *http.Request) {
	var req org.CreateGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	g, err := h.orgService.CreateGrade(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Grade created successfully", g)
}

// ListGrades implements OrgHandler.
func (h *OrgHandlerImpl) ListGrades(w http.ResponseWriter, r *http.Request) {
	filter := org.GradeFilter{}
	if v := r.URL.Query().Get("category"); v != "" {
		filter.Category = &v
	}
	if v := r.URL.Query().Get("level"); v != "" {
		if level, err := strconv.Atoi(v); err == nil {
			filter.Level = &level
		}
	}
	if v := r.URL.Query().Get("active"); v != "" {
		active := v == "true"
		filter.Active = &active
	}

	grades, err := h.orgService.ListGrades(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, grades)
}

// UpdateGrade implements OrgHandler.
func (h *OrgHandlerImpl) UpdateGrade(w http.ResponseWriter, r *http.Request) {
	var req updateDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.orgService.UpdateGradeDescription(r.Context(), chi.URLParam(r, "id"), req.Description); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Grade updated successfully", nil)
}

// DeleteGrade implements OrgHandler.
func (h *OrgHandlerImpl) DeleteGrade(w http.ResponseWriter, r *http.Request) {
	if err := h.orgService.DeleteGrade(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Grade deleted successfully", nil)
}

// CreateDesignation implements OrgHandler.
func (h *OrgHandlerImpl) CreateDesignation(w http.ResponseWriter, r *http.Request) {
	var req org.CreateDesignationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	d, err := h.orgService.CreateDesignation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Designation created successfully", d)
}

// ListDesignations implements OrgHandler.
func (h *OrgHandlerImpl) ListDesignations(w http.ResponseWriter, r *http.Request) {
	filter := org.DesignationFilter{}
	if v := r.URL.Query().Get("name"); v != "" {
		filter.Name = &v
	}
	if v := r.URL.Query().Get("department"); v != "" {
		filter.Department = &v
	}
	if v := r.URL.Query().Get("grade"); v != "" {
		filter.Grade = &v
	}

	designations, err := h.orgService.ListDesignations(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, designations)
}

type renameDesignationRequest struct {
	Name string `json:"name"`
}

// RenameDesignation implements OrgHandler.
func (h *OrgHandlerImpl) RenameDesignation(w http.ResponseWriter, r *http.Request) {
	var req renameDesignationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.orgService.RenameDesignation(r.Context(), chi.URLParam(r, "id"), req.Name); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Designation renamed successfully", nil)
}

// DeleteDesignation implements OrgHandler.
func (h *OrgHandlerImpl) DeleteDesignation(w http.ResponseWriter, r *http.Request) {
	if err := h.orgService.DeleteDesignation(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Designation deleted successfully", nil)
}
