/*
store.go - Collaborator contracts the engine consumes

PURPOSE:
  Defines the interfaces between the orchestration logic and its external
  collaborators: the record store (leases, periods, charges, documents)
  and the file store (document blobs). Implementations live in
  store/memory, store/sqlite and filestore.

ORG SCOPING:
  Every operation takes an explicit OrgContext carrying the organization
  and acting user. There is no ambient session state — scoping is a
  parameter, never a module-level singleton.

QUERY SURFACE:
  The record store supports exactly the filters the engine needs: by
  lease id, by unit id, by due-date range, by status. Nothing more.

SEE ALSO:
  - engine.go: The orchestrator built on these interfaces
  - store/memory, store/sqlite: Record store implementations
  - filestore: File store implementations
*/
package engine

import (
	"context"

	"github.com/propease/lease-engine/calendar"
	"github.com/propease/lease-engine/lease"
)

// OrgContext identifies the organization and actor a call runs on behalf
// of. Threaded explicitly into every orchestrator and store call.
type OrgContext struct {
	OrganizationID lease.OrgID
	ActorID        lease.UserID
}

// =============================================================================
// RECORD STORE
// =============================================================================

// LeaseStore persists lease rows. ListOrganizations enumerates every
// organization holding at least one lease; background sweeps iterate it.
type LeaseStore interface {
	InsertLease(ctx context.Context, org OrgContext, l *lease.Lease) error
	UpdateLease(ctx context.Context, org OrgContext, l *lease.Lease) error
	GetLease(ctx context.Context, org OrgContext, id lease.LeaseID) (*lease.Lease, error)
	ListLeases(ctx context.Context, org OrgContext) ([]lease.Lease, error)
	ListLeasesByUnit(ctx context.Context, org OrgContext, unitID lease.UnitID) ([]lease.Lease, error)
	ListOrganizations(ctx context.Context) ([]lease.OrgID, error)
	DeleteLease(ctx context.Context, org OrgContext, id lease.LeaseID) error
}

// PeriodStore persists payment periods.
type PeriodStore interface {
	InsertPeriods(ctx context.Context, org OrgContext, periods []lease.PaymentPeriod) error
	ListPeriods(ctx context.Context, org OrgContext, leaseID lease.LeaseID) ([]lease.PaymentPeriod, error)
	ListPeriodsDueBetween(ctx context.Context, org OrgContext, from, to calendar.Date) ([]lease.PaymentPeriod, error)
	GetPeriod(ctx context.Context, org OrgContext, id lease.PeriodID) (*lease.PaymentPeriod, error)
	UpdatePeriodStatus(ctx context.Context, org OrgContext, id lease.PeriodID, status lease.PaymentStatus) error
	DeletePeriod(ctx context.Context, org OrgContext, id lease.PeriodID) error
}

// ChargeStore persists recurring lease charges.
type ChargeStore interface {
	InsertCharges(ctx context.Context, org OrgContext, charges []lease.Charge) error
	ListCharges(ctx context.Context, org OrgContext, leaseID lease.LeaseID) ([]lease.Charge, error)
	DeleteCharges(ctx context.Context, org OrgContext, leaseID lease.LeaseID) error
}

// DocumentStore persists lease document records (not the blobs themselves).
type DocumentStore interface {
	InsertDocument(ctx context.Context, org OrgContext, doc *lease.Document) error
	ListDocuments(ctx context.Context, org OrgContext, leaseID lease.LeaseID) ([]lease.Document, error)
	UpdateDocumentStatus(ctx context.Context, org OrgContext, id lease.DocumentID, status lease.DocumentStatus) error
	DeleteDocument(ctx context.Context, org OrgContext, id lease.DocumentID) error
}

// Store is the full record-store surface the engine needs.
type Store interface {
	LeaseStore
	PeriodStore
	ChargeStore
	DocumentStore
}

// =============================================================================
// FILE STORE
// =============================================================================

// FileStore holds document blobs. Paths are opaque slash-separated keys.
// Upload returns the public URL of the stored object.
type FileStore interface {
	Upload(ctx context.Context, path string, content []byte) (string, error)
	PublicURL(path string) string
	Remove(ctx context.Context, path string) error
	Copy(ctx context.Context, src, dst string) error
}
