/*
Package lease defines the lease domain model and its derivation rules.

PURPOSE:
  This package contains the types and pure functions that decide what a
  lease IS: its term kind (fixed vs month-to-month), its lifecycle status,
  and the end date shown for it. Nothing here touches storage or I/O —
  the engine package orchestrates persistence around these rules.

KEY CONCEPTS IN THIS FILE (types.go):
  - Lease: The persisted record, fully typed (no free-form status strings)
  - LeaseInput: What a caller submits to create or edit a lease
  - PaymentPeriod / Charge / Document: Records that hang off a lease
  - Closed enumerations for every status, normalized once at the storage
    boundary so internal code never re-parses case

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for money, never float64
  2. Two shapes, one mapping: LeaseInput vs Lease are distinct structs with
     an explicit, total derivation between them (engine.CreateLease)
  3. Type safety: typed string IDs prevent mixing lease/unit/tenant ids

SEE ALSO:
  - frequency.go: Billing frequencies and their calendar stepping
  - status.go:    Lifecycle status resolution
  - reconcile.go: Term-kind classification and display end dates
  - errors.go:    Validation and integrity error types
*/
package lease

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/propease/lease-engine/calendar"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type LeaseID string
type UnitID string
type TenantID string
type UserID string
type OrgID string
type PeriodID string
type ChargeID string
type DocumentID string

// =============================================================================
// ENUMERATIONS
// =============================================================================

// Status is a lease's lifecycle status.
// Pending, Active and Ended are time-derived (see ResolveStatus).
// Terminated is an explicit staff action and persists until changed.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusActive     Status = "Active"
	StatusEnded      Status = "Ended"
	StatusTerminated Status = "Terminated"
)

// TermKind classifies a lease as fixed-term or month-to-month.
type TermKind string

const (
	TermFixed        TermKind = "fixed"
	TermMonthToMonth TermKind = "month-to-month"
)

// Stored lease_terms labels. Historical data may carry other spellings;
// ResolveTermKind classifies by substring, these are what we write.
const (
	TermLabelFixed        = "Fixed Term"
	TermLabelMonthToMonth = "Month-to-Month"
)

// PaymentStatus tracks a payment obligation (period, deposit, rent overall).
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentOverdue PaymentStatus = "overdue"
)

// DocumentStatus is the signature state of an uploaded lease document.
// The database constraint requires these exact strings.
type DocumentStatus string

const (
	DocSigned      DocumentStatus = "Signed"
	DocNotSigned   DocumentStatus = "Not Signed"
	DocNoSignature DocumentStatus = "No signature required"
)

// ChargeType categorizes a recurring charge layered onto a lease.
type ChargeType string

const (
	ChargeUtility     ChargeType = "utility"
	ChargeFee         ChargeType = "fee"
	ChargeMaintenance ChargeType = "maintenance"
	ChargeParking     ChargeType = "parking"
	ChargeOther       ChargeType = "other"
)

// =============================================================================
// LEASE - Persisted record
// =============================================================================

type Lease struct {
	ID       LeaseID
	OrgID    OrgID
	UnitID   UnitID
	TenantID TenantID
	IssuerID UserID

	StartDate calendar.Date
	// EndDate is nil for month-to-month leases: there is no contractual end.
	// Display code synthesizes a nominal horizon instead (DisplayEndDate).
	EndDate    *calendar.Date
	LeaseTerms string // stored label, see TermLabel* constants

	RentAmount      decimal.Decimal
	SecurityDeposit decimal.Decimal
	DepositStatus   PaymentStatus

	Frequency  Frequency
	PaymentDay int // 1-31, clamped per month at schedule time

	Status            Status
	RentPaymentStatus PaymentStatus
	DocumentStatus    DocumentStatus

	NextPaymentDate *calendar.Date
	LastPaymentDate *calendar.Date

	// Stored bookkeeping attributes carried through untouched.
	LateFeeAmount    decimal.Decimal
	LateFeeDays      int
	AutoRenew        bool
	NoticePeriodDays int
}

// TermKind classifies the lease from its persisted fields.
func (l *Lease) TermKind() TermKind {
	return ResolveTermKind(l.LeaseTerms, l.EndDate)
}

// =============================================================================
// LEASE INPUT - What callers submit
// =============================================================================

// LeaseInput is the validated shape for lease creation and editing.
// Validation tags cover per-field rules; cross-field rules (fixed end
// after start, month-to-month forcing Monthly) live in engine validation.
type LeaseInput struct {
	UnitID   UnitID   `validate:"required"`
	TenantID TenantID `validate:"required"`

	TermKind  TermKind       `validate:"required,oneof=fixed month-to-month"`
	StartDate calendar.Date  `validate:"required"`
	EndDate   *calendar.Date // required iff TermKind == TermFixed

	RentAmount      decimal.Decimal
	SecurityDeposit decimal.Decimal
	DepositStatus   PaymentStatus `validate:"omitempty,oneof=pending paid overdue"`

	Frequency  Frequency
	PaymentDay int `validate:"required,min=1,max=31"`

	Charges   []ChargeInput
	Documents []DocumentUpload

	LateFeeAmount    decimal.Decimal
	LateFeeDays      int
	AutoRenew        bool
	NoticePeriodDays int
}

// ChargeInput is a submitted recurring charge. Type, description and a
// positive amount are required; checked by engine validation.
type ChargeInput struct {
	Type        ChargeType
	Description string
	Amount      decimal.Decimal
}

// DocumentUpload is a file submitted alongside lease creation or edit.
type DocumentUpload struct {
	FileName string
	Content  []byte
	Status   DocumentStatus
}

// =============================================================================
// DEPENDENT RECORDS
// =============================================================================

// PaymentPeriod is one scheduled obligation to pay rent for a lease.
//
// PeriodStart is a deliberate denormalization: every period generated in
// one batch records the FIRST period's start date, which downstream
// consistency checks rely on. See schedule.Generate.
type PaymentPeriod struct {
	ID          PeriodID
	LeaseID     LeaseID
	PeriodStart calendar.Date
	DueDate     calendar.Date
	TotalAmount decimal.Decimal
	Status      PaymentStatus
	CreatedAt   calendar.Date
}

// Charge is a persisted recurring charge. Charges attach to the lease as
// a whole, anchored at the first payment period's start date.
type Charge struct {
	ID          ChargeID
	LeaseID     LeaseID
	Type        ChargeType
	Description string
	Amount      decimal.Decimal
	Status      PaymentStatus
	AppliesFrom calendar.Date
}

// Document is a persisted lease document record.
type Document struct {
	ID         DocumentID
	LeaseID    LeaseID
	StorageURL string
	FileName   string
	Status     DocumentStatus
	UploadedBy UserID
}

// DisplayName returns the human-readable document name, stripping the
// "<millis>_" upload prefix if the stored file name carries one.
func (d Document) DisplayName() string {
	name := d.FileName
	if i := strings.IndexByte(name, '_'); i > 0 {
		allDigits := true
		for _, r := range name[:i] {
			if !unicode.IsDigit(r) {
				allDigits = false
				break
			}
		}
		if allDigits && i >= 10 {
			return name[i+1:]
		}
	}
	return name
}

// =============================================================================
// STORAGE-BOUNDARY NORMALIZATION
// =============================================================================
// Historical rows were written by UI code that compared statuses
// case-insensitively in many places. Normalize exactly once, on read.

// NormalizeDocumentStatus maps free-form stored values onto the closed
// DocumentStatus enumeration. Unknown values default to Not Signed.
func NormalizeDocumentStatus(s string) DocumentStatus {
	switch v := strings.TrimSpace(s); v {
	case string(DocSigned), string(DocNotSigned), string(DocNoSignature):
		return DocumentStatus(v)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "signed":
		return DocSigned
	case "not_signed", "not signed":
		return DocNotSigned
	case "no_signature_required", "no signature required":
		return DocNoSignature
	}
	return DocNotSigned
}

// NormalizePaymentStatus maps a stored value onto PaymentStatus.
// Unknown values default to pending.
func NormalizePaymentStatus(s string) PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid":
		return PaymentPaid
	case "overdue":
		return PaymentOverdue
	default:
		return PaymentPending
	}
}

// NormalizeStatus maps a stored lifecycle value onto Status.
// Unknown values default to Pending.
func NormalizeStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive
	case "ended":
		return StatusEnded
	case "terminated":
		return StatusTerminated
	default:
		return StatusPending
	}
}
