/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Lease:
    LeaseDTO, CreateLeaseRequest, EditLeaseRequest, LeaseResponse

  Schedule:
    PeriodDTO, NextPaymentDTO

  Attachments:
    ChargeDTO, ChargeInputDTO, DocumentDTO, DocumentUploadDTO

  Errors:
    ErrorResponse (with per-field validation messages), WarningDTO

ENCODING:
  Dates travel as "YYYY-MM-DD" strings. Money travels as decimal strings
  or JSON numbers - never floats on our side. Document content is
  base64-encoded in JSON ([]byte).

SEE ALSO:
  - handlers.go: Uses these types
  - engine/outcome.go: Warning source
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/propease/lease-engine/calendar"
	"github.com/propease/lease-engine/engine"
	"github.com/propease/lease-engine/lease"
)

// =============================================================================
// LEASE TYPES
// =============================================================================

// LeaseDTO represents a lease in API responses. displayEndDate is always
// populated; endDate is null for month-to-month leases.
type LeaseDTO struct {
	ID                string         `json:"id"`
	UnitID            string         `json:"unitId"`
	TenantID          string         `json:"tenantId"`
	LeaseType         string         `json:"leaseType"`
	LeaseTerms        string         `json:"leaseTerms"`
	StartDate         calendar.Date  `json:"startDate"`
	EndDate           *calendar.Date `json:"endDate"`
	DisplayEndDate    calendar.Date  `json:"displayEndDate"`
	RentAmount        string         `json:"rentAmount"`
	SecurityDeposit   string         `json:"securityDeposit"`
	DepositStatus     string         `json:"depositStatus"`
	PaymentFrequency  string         `json:"paymentFrequency"`
	PaymentDay        int            `json:"paymentDay"`
	Status            string         `json:"status"`
	RentPaymentStatus string         `json:"rentPaymentStatus"`
	DocumentStatus    string         `json:"documentStatus"`
	NextPaymentDate   *calendar.Date `json:"nextPaymentDate"`
	LastPaymentDate   *calendar.Date `json:"lastPaymentDate"`
	LateFeeAmount     string         `json:"lateFeeAmount"`
	LateFeeDays       int            `json:"lateFeeDays"`
	AutoRenew         bool           `json:"autoRenew"`
	NoticePeriodDays  int            `json:"noticePeriodDays"`
}

// CreateLeaseRequest is the request to create a lease.
type CreateLeaseRequest struct {
	UnitID           string              `json:"unitId"`
	TenantID         string              `json:"tenantId"`
	LeaseType        string              `json:"leaseType"`
	StartDate        calendar.Date       `json:"startDate"`
	EndDate          *calendar.Date      `json:"endDate"`
	RentAmount       decimal.Decimal     `json:"rentAmount"`
	SecurityDeposit  decimal.Decimal     `json:"securityDeposit"`
	DepositStatus    string              `json:"depositStatus"`
	PaymentFrequency string              `json:"paymentFrequency"`
	PaymentDay       int                 `json:"paymentDay"`
	LateFeeAmount    decimal.Decimal     `json:"lateFeeAmount"`
	LateFeeDays      int                 `json:"lateFeeDays"`
	AutoRenew        bool                `json:"autoRenew"`
	NoticePeriodDays int                 `json:"noticePeriodDays"`
	Charges          []ChargeInputDTO    `json:"charges"`
	Documents        []DocumentUploadDTO `json:"documents"`
}

// EditLeaseRequest is the request to edit a lease. Documents listed in
// removeDocumentIds are detached; documentStatusUpdates re-labels
// signature status by document id.
type EditLeaseRequest struct {
	CreateLeaseRequest
	RemoveDocumentIDs     []string          `json:"removeDocumentIds"`
	DocumentStatusUpdates map[string]string `json:"documentStatusUpdates"`
}

// LeaseResponse wraps a lease with its schedule and any partial-success
// warnings from the write path.
type LeaseResponse struct {
	Lease    LeaseDTO     `json:"lease"`
	Periods  []PeriodDTO  `json:"periods,omitempty"`
	Warnings []WarningDTO `json:"warnings,omitempty"`
}

// =============================================================================
// SCHEDULE TYPES
// =============================================================================

// PeriodDTO represents a payment period in API responses.
type PeriodDTO struct {
	ID          string        `json:"id"`
	LeaseID     string        `json:"leaseId"`
	PeriodStart calendar.Date `json:"periodStart"`
	DueDate     calendar.Date `json:"dueDate"`
	TotalAmount string        `json:"totalAmount"`
	Status      string        `json:"status"`
}

// NextPaymentDTO carries the next due date of a lease, null when the
// schedule is exhausted or fully paid.
type NextPaymentDTO struct {
	LeaseID     string         `json:"leaseId"`
	NextDueDate *calendar.Date `json:"nextDueDate"`
}

// =============================================================================
// ATTACHMENT TYPES
// =============================================================================

// ChargeInputDTO is a recurring charge submitted with a lease.
type ChargeInputDTO struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ChargeDTO represents a stored charge in API responses.
type ChargeDTO struct {
	ID          string        `json:"id"`
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Amount      string        `json:"amount"`
	Status      string        `json:"status"`
	AppliesFrom calendar.Date `json:"appliesFrom"`
}

// DocumentUploadDTO is a document submitted with a lease. Content is
// base64 in JSON.
type DocumentUploadDTO struct {
	FileName string `json:"fileName"`
	Content  []byte `json:"content"`
	Status   string `json:"status"`
}

// DocumentDTO represents a stored document record.
type DocumentDTO struct {
	ID       string `json:"id"`
	FileName string `json:"fileName"`
	URL      string `json:"url"`
	Status   string `json:"status"`
}

// =============================================================================
// ERRORS AND WARNINGS
// =============================================================================

// ErrorResponse is the JSON error envelope. Fields is populated for
// validation failures, keyed by input field name.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WarningDTO reports a best-effort step that failed after the lease row
// was committed.
type WarningDTO struct {
	Stage  string `json:"stage"`
	Detail string `json:"detail"`
}

// =============================================================================
// MAPPERS
// =============================================================================

func toLeaseDTO(v engine.LeaseView) LeaseDTO {
	l := v.Lease
	return LeaseDTO{
		ID:                string(l.ID),
		UnitID:            string(l.UnitID),
		TenantID:          string(l.TenantID),
		LeaseType:         string(v.TermKind),
		LeaseTerms:        l.LeaseTerms,
		StartDate:         l.StartDate,
		EndDate:           l.EndDate,
		DisplayEndDate:    v.DisplayEndDate,
		RentAmount:        l.RentAmount.String(),
		SecurityDeposit:   l.SecurityDeposit.String(),
		DepositStatus:     string(l.DepositStatus),
		PaymentFrequency:  string(l.Frequency),
		PaymentDay:        l.PaymentDay,
		Status:            string(v.Status),
		RentPaymentStatus: string(l.RentPaymentStatus),
		DocumentStatus:    string(l.DocumentStatus),
		NextPaymentDate:   l.NextPaymentDate,
		LastPaymentDate:   l.LastPaymentDate,
		LateFeeAmount:     l.LateFeeAmount.String(),
		LateFeeDays:       l.LateFeeDays,
		AutoRenew:         l.AutoRenew,
		NoticePeriodDays:  l.NoticePeriodDays,
	}
}

func toPeriodDTOs(periods []lease.PaymentPeriod) []PeriodDTO {
	dtos := make([]PeriodDTO, len(periods))
	for i, p := range periods {
		dtos[i] = PeriodDTO{
			ID:          string(p.ID),
			LeaseID:     string(p.LeaseID),
			PeriodStart: p.PeriodStart,
			DueDate:     p.DueDate,
			TotalAmount: p.TotalAmount.String(),
			Status:      string(p.Status),
		}
	}
	return dtos
}

func toWarningDTOs(warnings []engine.Warning) []WarningDTO {
	if len(warnings) == 0 {
		return nil
	}
	dtos := make([]WarningDTO, len(warnings))
	for i, w := range warnings {
		dtos[i] = WarningDTO{Stage: string(w.Stage), Detail: w.Detail}
	}
	return dtos
}

func toChargeDTOs(charges []lease.Charge) []ChargeDTO {
	dtos := make([]ChargeDTO, len(charges))
	for i, c := range charges {
		dtos[i] = ChargeDTO{
			ID:          string(c.ID),
			Type:        string(c.Type),
			Description: c.Description,
			Amount:      c.Amount.String(),
			Status:      string(c.Status),
			AppliesFrom: c.AppliesFrom,
		}
	}
	return dtos
}

func toDocumentDTOs(docs []lease.Document) []DocumentDTO {
	dtos := make([]DocumentDTO, len(docs))
	for i, d := range docs {
		dtos[i] = DocumentDTO{
			ID:       string(d.ID),
			FileName: d.DisplayName(),
			URL:      d.StorageURL,
			Status:   string(d.Status),
		}
	}
	return dtos
}

// toLeaseInput maps a request body onto the engine's input type.
func (req CreateLeaseRequest) toLeaseInput() lease.LeaseInput {
	charges := make([]lease.ChargeInput, len(req.Charges))
	for i, c := range req.Charges {
		charges[i] = lease.ChargeInput{
			Type:        lease.ChargeType(c.Type),
			Description: c.Description,
			Amount:      c.Amount,
		}
	}
	docs := make([]lease.DocumentUpload, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = lease.DocumentUpload{
			FileName: d.FileName,
			Content:  d.Content,
			Status:   lease.DocumentStatus(d.Status),
		}
	}
	return lease.LeaseInput{
		UnitID:           lease.UnitID(req.UnitID),
		TenantID:         lease.TenantID(req.TenantID),
		TermKind:         lease.TermKind(req.LeaseType),
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		RentAmount:       req.RentAmount,
		SecurityDeposit:  req.SecurityDeposit,
		DepositStatus:    lease.NormalizePaymentStatus(req.DepositStatus),
		Frequency:        lease.ParseFrequency(req.PaymentFrequency),
		PaymentDay:       req.PaymentDay,
		LateFeeAmount:    req.LateFeeAmount,
		LateFeeDays:      req.LateFeeDays,
		AutoRenew:        req.AutoRenew,
		NoticePeriodDays: req.NoticePeriodDays,
		Charges:          charges,
		Documents:        docs,
	}
}

func (req EditLeaseRequest) toEditInput() engine.EditInput {
	in := engine.EditInput{LeaseInput: req.toLeaseInput()}
	for _, id := range req.RemoveDocumentIDs {
		in.RemoveDocumentIDs = append(in.RemoveDocumentIDs, lease.DocumentID(id))
	}
	if len(req.DocumentStatusUpdates) > 0 {
		in.DocumentStatusUpdates = make(map[lease.DocumentID]lease.DocumentStatus, len(req.DocumentStatusUpdates))
		for id, status := range req.DocumentStatusUpdates {
			in.DocumentStatusUpdates[lease.DocumentID(id)] = lease.DocumentStatus(status)
		}
	}
	return in
}
