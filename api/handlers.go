/*
handlers.go - HTTP API handlers for the lease management system

PURPOSE:
  Exposes the lease engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Leases:
    GET    /api/leases                   List leases (reconciled views)
    POST   /api/leases                   Create lease + schedule
    GET    /api/leases/{id}              Get one lease
    PUT    /api/leases/{id}              Edit lease
    DELETE /api/leases/{id}              Delete lease (guarded)
    POST   /api/leases/{id}/terminate    Staff-initiated termination

  Schedule:
    GET    /api/leases/{id}/periods      List payment periods (deduplicated)
    POST   /api/leases/{id}/periods/regenerate  Rebuild schedule (keeps paid)
    GET    /api/leases/{id}/next-payment Next due date
    POST   /api/periods/{id}/paid        Mark period paid
    POST   /api/periods/{id}/overdue     Mark period overdue

  Attachments:
    GET    /api/leases/{id}/charges      List charges
    GET    /api/leases/{id}/documents    List document records

ORG SCOPING:
  Every request carries the organization in the X-Org-Id header (falling
  back to the org_id query parameter) and the acting user in X-User-Id.
  A missing org is a 400 - there is no default organization.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors (with per-field messages), invalid input
  - 404: Lease or period not found
  - 409: Deletion blocked by dependent records
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - engine/engine.go: The domain logic these handlers delegate to
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propease/lease-engine/calendar"
	"github.com/propease/lease-engine/engine"
	"github.com/propease/lease-engine/lease"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *engine.Engine
}

// NewHandler creates a new handler over the given engine.
func NewHandler(eng *engine.Engine) *Handler {
	return &Handler{Engine: eng}
}

// orgFrom extracts the organization context from a request. The org id
// comes from the X-Org-Id header or the org_id query parameter.
func orgFrom(r *http.Request) (engine.OrgContext, bool) {
	orgID := r.Header.Get("X-Org-Id")
	if orgID == "" {
		orgID = r.URL.Query().Get("org_id")
	}
	if orgID == "" {
		return engine.OrgContext{}, false
	}
	return engine.OrgContext{
		OrganizationID: lease.OrgID(orgID),
		ActorID:        lease.UserID(r.Header.Get("X-User-Id")),
	}, true
}

// =============================================================================
// LEASE HANDLERS
// =============================================================================

// ListLeases returns all leases of the organization as reconciled views.
func (h *Handler) ListLeases(w http.ResponseWriter, r *http.Request) {
	org, ok := orgFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing organization (X-Org-Id header or org_id)", nil)
		return
	}

	views, err := h.Engine.ListLeaseViews(r.Context(), org)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list leases", err)
		return
	}

	dtos := make([]LeaseDTO, len(views))
	for i, v := range views {
		dtos[i] = toLeaseDTO(v)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetLease returns a single lease.
func (h *Handler) GetLease(w http.ResponseWriter, r *http.Request) {
	org, ok := orgFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing organization (X-Org-Id header or org_id)", nil)
		return
	}
	id := lease.LeaseID(chi.URLParam(r, "id"))

	view, err := h.Engine.GetLeaseView(r.Context(), org, id)
	if err != nil {
		writeDomainError(w, "Failed to get lease", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaseDTO(*view))
}

// CreateLease creates a lease with its payment schedule, documents and
// charges.
func (h *Handler) CreateLease(w http.ResponseWriter, r *http.Request) {
	org, ok := orgFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing organization (X-Org-Id header or org_id)", nil)
		return
	}

	var req CreateLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out, err := h.Engine.CreateLease(r.Context(), org, req.toLeaseInput())
	if err != nil {
		writeDomainError(w, "Failed to create lease", err)
		return
	}

	writeJSON(w, http.StatusCreated, h.leaseResponse(r, org, out))
}

// EditLease applies lease field changes, replaces the charge set and
// applies document deltas. The payment schedule is left untouched.
func (h *Handler) EditLease(w http.ResponseWriter, r *http.Request) {
	org, ok := orgFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing organization (X-Org-Id header or org_id)", nil)
		return
	}
	id := lease.LeaseID(chi.URLParam(r, "id"))

	var req EditLeaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	out, err := h.Engine.EditLease(r.Context(), org, id, req.toEditInput())
	if err != nil {
		writeDomainError(w, "Failed to edit lease", err)
		return
	}

	writeJSON(w, http.StatusOK, h.leaseResponse(r, org, out))
}

// TerminateLease applies the explicit termination override.
func (h *Handler) TerminateLease(w http.ResponseWriter, r *http.Request) {
	org, ok := orgFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing organization (X-Org-Id header or org_id)", nil)
		return
	}
	id := lease.LeaseID(chi.URLParam(r, "id"))

	if _, err := h.Engine.TerminateLease(r.Context(), org, id); err != nil {
		writeDomainError(w, "Failed to terminate lease", err)
		return
	}

	view, err := h.Engine.GetLeaseView(r.Context(), org, id)
	if err != nil {
		writeDomainError(w, "Failed to load terminated lease", err)
		return
	}
	writeJSON(w, http.StatusOK, toLeaseDTO(*view))
}

// DeleteLease removes a lease with no periods or charges left.
func (h *Handler) DeleteLease(w http.ResponseWriter, r *http.Request) {
	org, ok := orgFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing organization (X-Org-Id header or org_id)", nil)
		return
	}
	id := lease.LeaseID(chi.URLParam(r, "id"))

	warnings, err := h.Engine.DeleteLease(r.Context(), org, id)
	if err != nil {
		writeDomainError(w, "Failed to delete lease", err)
		return
	}
	if len(warnings) > 0 {
		writeJSON(w, http.StatusOK, map[string]any{"warnings": toWarningDTOs(warnings)})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// ListPeriods returns the deduplicated payment schedule of a lease.
func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	org, ok := orgFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing organization (X-Org-Id header or org_id)", nil)
		return
	}
	id := lease.LeaseID(chi.URLParam(r, "id"))

	periods, warnings, err := h.Engine.Periods(r.Context(), org, id)
	if err != nil {
		writeDomainError(w, "Failed to list periods", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"periods":  toPeriodDTOs(periods),
		"warnings": toWarningDTOs(warnings),
	})
}

// RegenerateSchedule rebuilds the payment schedule from the lease's
// current terms, preserving paid periods.
func (h *Handler) RegenerateSchedule(w http.ResponseWriter, r *http.Request) {
	org, ok := orgFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing organization (X-Org-Id header or org_id)", nil)
		return
	}
	id := lease.LeaseID(chi.URLParam(r, "id"))

	out, err := h.Engine.RegenerateSchedule(r.Context(), org, id)
	if err != nil {
		writeDomainError(w, "Failed to regenerate schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, h.leaseResponse(r, org, out))
}

// NextPayment returns the next due date of a lease.
func (h *Handler) NextPayment(w http.ResponseWriter, r *http.Request) {
	org, ok := orgFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing organization (X-Org-Id header or org_id)", nil)
		return
	}
	id := lease.LeaseID(chi.URLParam(r, "id"))

	next, err := h.Engine.NextPayment(r.Context(), org, id)
	if err != nil {
		writeDomainError(w, "Failed to resolve next payment", err)
		return
	}
	writeJSON(w, http.StatusOK, NextPaymentDTO{LeaseID: string(id), NextDueDate: next})
}

// MarkPeriodPaid records a payment on one period.
func (h *Handler) MarkPeriodPaid(w http.ResponseWriter, r *http.Request) {
	h.setPeriodStatus(w, r, h.Engine.MarkPeriodPaid)
}

// MarkPeriodOverdue flags one period as overdue.
func (h *Handler) MarkPeriodOverdue(w http.ResponseWriter, r *http.Request) {
	h.setPeriodStatus(w, r, h.Engine.MarkPeriodOverdue)
}

func (h *Handler) setPeriodStatus(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, org engine.OrgContext, id lease.PeriodID) error) {
	org, ok := orgFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing organization (X-Org-Id header or org_id)", nil)
		return
	}
	id := lease.PeriodID(chi.URLParam(r, "id"))

	if err := apply(r.Context(), org, id); err != nil {
		writeDomainError(w, "Failed to update period", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ATTACHMENT HANDLERS
// =============================================================================

// ListCharges returns all charges of a lease.
func (h *Handler) ListCharges(w http.ResponseWriter, r *http.Request) {
	org, ok := orgFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing organization (X-Org-Id header or org_id)", nil)
		return
	}
	id := lease.LeaseID(chi.URLParam(r, "id"))

	charges, err := h.Engine.Charges(r.Context(), org, id)
	if err != nil {
		writeDomainError(w, "Failed to list charges", err)
		return
	}
	writeJSON(w, http.StatusOK, toChargeDTOs(charges))
}

// ListDocuments returns all document records of a lease.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	org, ok := orgFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing organization (X-Org-Id header or org_id)", nil)
		return
	}
	id := lease.LeaseID(chi.URLParam(r, "id"))

	docs, err := h.Engine.Documents(r.Context(), org, id)
	if err != nil {
		writeDomainError(w, "Failed to list documents", err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentDTOs(docs))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

// leaseResponse assembles the write-path response: the reconciled lease
// view plus the periods and warnings of the outcome.
func (h *Handler) leaseResponse(r *http.Request, org engine.OrgContext, out *engine.Outcome) LeaseResponse {
	resp := LeaseResponse{
		Periods:  toPeriodDTOs(out.Periods),
		Warnings: toWarningDTOs(out.Warnings),
	}
	if view, err := h.Engine.GetLeaseView(r.Context(), org, out.Lease.ID); err == nil {
		resp.Lease = toLeaseDTO(*view)
	} else {
		kind := lease.ResolveTermKind(out.Lease.LeaseTerms, out.Lease.EndDate)
		resp.Lease = toLeaseDTO(engine.LeaseView{
			Lease:          *out.Lease,
			TermKind:       kind,
			DisplayEndDate: lease.DisplayEndDate(kind, out.Lease.StartDate, out.Lease.EndDate, calendar.Today()),
			Status:         out.Lease.Status,
		})
	}
	return resp
}

// writeDomainError maps domain errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	var verr *lease.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  message,
			Fields: verr.Fields,
		})
	case lease.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, lease.ErrLeaseHasDependents):
		writeError(w, http.StatusConflict, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
