package http

import (
	"encoding/json"
	"net/http"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/leave"
	"github.com/arcadia-hr/hrm-backend-go/internal/handler/http/middleware"
	"github.com/arcadia-hr/hrm-backend-go/internal/handler/http/response"
	leaveservice "github.com/arcadia-hr/hrm-backend-go/internal/service/leave"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	MyLedger(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	ManagedRequests(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leaveservice.ServiceImpl
}

func NewLeaveHandler(leaveService *leaveservice.ServiceImpl) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// MyLedger implements LeaveHandler.
func (h *LeaveHandlerImpl) MyLedger(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "access denied")
		return
	}

	ledger, err := h.leaveService.GetLedger(r.Context(), identity.Email)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, ledger)
}

// Create implements LeaveHandler.
func (h *LeaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "access denied")
		return
	}

	var req leave.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.CreateRequest(r.Context(), identity, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", created)
}

// MyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "access denied")
		return
	}

	requests, err := h.leaveService.ListMyRequests(r.Context(), identity)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ManagedRequests implements LeaveHandler. The optional status query
// narrows to pending, approved or rejected.
func (h *LeaveHandlerImpl) ManagedRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "access denied")
		return
	}

	var action *leave.Action
	pendingOnly := false
	switch r.URL.Query().Get("status") {
	case "pending":
		pendingOnly = true
	case "approved":
		a := leave.ActionApproved
		action = &a
	case "rejected":
		a := leave.ActionRejected
		action = &a
	}

	requests, err := h.leaveService.ListManagedRequests(r.Context(), identity, action, pendingOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Approve implements LeaveHandler.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, leave.ActionApproved, "Leave request approved")
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.action(w, r, leave.ActionRejected, "Leave request rejected")
}

func (h *LeaveHandlerImpl) action(w http.ResponseWriter, r *http.Request, action leave.Action, message string) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "access denied")
		return
	}

	if err := h.leaveService.Action(r.Context(), identity, chi.URLParam(r, "id"), action); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, nil)
}

// Delete implements LeaveHandler.
func (h *LeaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "access denied")
		return
	}

	if err := h.leaveService.DeleteRequest(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}
