// Package memory provides an in-memory record store for tests and dev.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/propease/lease-engine/calendar"
	"github.com/propease/lease-engine/engine"
	"github.com/propease/lease-engine/lease"
)

// =============================================================================
// MEMORY STORE - In-memory implementation of engine.Store
// =============================================================================

type Store struct {
	mu        sync.RWMutex
	leases    map[lease.LeaseID]lease.Lease
	periods   map[lease.PeriodID]ownedPeriod
	charges   map[lease.ChargeID]ownedCharge
	documents map[lease.DocumentID]ownedDocument
	seq       int
}

type ownedPeriod struct {
	org    lease.OrgID
	period lease.PaymentPeriod
	seq    int
}

type ownedCharge struct {
	org    lease.OrgID
	charge lease.Charge
}

type ownedDocument struct {
	org lease.OrgID
	doc lease.Document
}

func New() *Store {
	return &Store{
		leases:    make(map[lease.LeaseID]lease.Lease),
		periods:   make(map[lease.PeriodID]ownedPeriod),
		charges:   make(map[lease.ChargeID]ownedCharge),
		documents: make(map[lease.DocumentID]ownedDocument),
	}
}

// =============================================================================
// LEASES
// =============================================================================

func (s *Store) InsertLease(_ context.Context, org engine.OrgContext, l *lease.Lease) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *l
	stored.OrgID = org.OrganizationID
	s.leases[l.ID] = stored
	return nil
}

func (s *Store) UpdateLease(_ context.Context, org engine.OrgContext, l *lease.Lease) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.leases[l.ID]; !ok || existing.OrgID != org.OrganizationID {
		return lease.ErrLeaseNotFound
	}
	stored := *l
	stored.OrgID = org.OrganizationID
	s.leases[l.ID] = stored
	return nil
}

func (s *Store) GetLease(_ context.Context, org engine.OrgContext, id lease.LeaseID) (*lease.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.leases[id]
	if !ok || l.OrgID != org.OrganizationID {
		return nil, nil
	}
	out := l
	return &out, nil
}

func (s *Store) ListLeases(_ context.Context, org engine.OrgContext) ([]lease.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []lease.Lease
	for _, l := range s.leases {
		if l.OrgID == org.OrganizationID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListLeasesByUnit(_ context.Context, org engine.OrgContext, unitID lease.UnitID) ([]lease.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []lease.Lease
	for _, l := range s.leases {
		if l.OrgID == org.OrganizationID && l.UnitID == unitID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListOrganizations(_ context.Context) ([]lease.OrgID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[lease.OrgID]bool)
	var out []lease.OrgID
	for _, l := range s.leases {
		if !seen[l.OrgID] {
			seen[l.OrgID] = true
			out = append(out, l.OrgID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (s *Store) DeleteLease(_ context.Context, org engine.OrgContext, id lease.LeaseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.leases[id]; !ok || existing.OrgID != org.OrganizationID {
		return lease.ErrLeaseNotFound
	}
	delete(s.leases, id)
	return nil
}

// =============================================================================
// PAYMENT PERIODS
// =============================================================================

func (s *Store) InsertPeriods(_ context.Context, org engine.OrgContext, periods []lease.PaymentPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range periods {
		s.seq++
		s.periods[p.ID] = ownedPeriod{org: org.OrganizationID, period: p, seq: s.seq}
	}
	return nil
}

func (s *Store) ListPeriods(_ context.Context, org engine.OrgContext, leaseID lease.LeaseID) ([]lease.PaymentPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type seqPeriod struct {
		p   lease.PaymentPeriod
		seq int
	}
	var rows []seqPeriod
	for _, op := range s.periods {
		if op.org == org.OrganizationID && op.period.LeaseID == leaseID {
			rows = append(rows, seqPeriod{p: op.period, seq: op.seq})
		}
	}
	// Insertion order, then due date: stable like a rowid scan.
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]lease.PaymentPeriod, len(rows))
	for i, r := range rows {
		out[i] = r.p
	}
	return out, nil
}

func (s *Store) ListPeriodsDueBetween(_ context.Context, org engine.OrgContext, from, to calendar.Date) ([]lease.PaymentPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []lease.PaymentPeriod
	for _, op := range s.periods {
		if op.org != org.OrganizationID {
			continue
		}
		if op.period.DueDate.AfterOrEqual(from) && op.period.DueDate.BeforeOrEqual(to) {
			out = append(out, op.period)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (s *Store) GetPeriod(_ context.Context, org engine.OrgContext, id lease.PeriodID) (*lease.PaymentPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	op, ok := s.periods[id]
	if !ok || op.org != org.OrganizationID {
		return nil, nil
	}
	out := op.period
	return &out, nil
}

func (s *Store) UpdatePeriodStatus(_ context.Context, org engine.OrgContext, id lease.PeriodID, status lease.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.periods[id]
	if !ok || op.org != org.OrganizationID {
		return lease.ErrPeriodNotFound
	}
	op.period.Status = status
	s.periods[id] = op
	return nil
}

func (s *Store) DeletePeriod(_ context.Context, org engine.OrgContext, id lease.PeriodID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.periods[id]
	if !ok || op.org != org.OrganizationID {
		return lease.ErrPeriodNotFound
	}
	delete(s.periods, id)
	return nil
}

// =============================================================================
// CHARGES
// =============================================================================

func (s *Store) InsertCharges(_ context.Context, org engine.OrgContext, charges []lease.Charge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range charges {
		s.charges[c.ID] = ownedCharge{org: org.OrganizationID, charge: c}
	}
	return nil
}

func (s *Store) ListCharges(_ context.Context, org engine.OrgContext, leaseID lease.LeaseID) ([]lease.Charge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []lease.Charge
	for _, oc := range s.charges {
		if oc.org == org.OrganizationID && oc.charge.LeaseID == leaseID {
			out = append(out, oc.charge)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) DeleteCharges(_ context.Context, org engine.OrgContext, leaseID lease.LeaseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, oc := range s.charges {
		if oc.org == org.OrganizationID && oc.charge.LeaseID == leaseID {
			delete(s.charges, id)
		}
	}
	return nil
}

// =============================================================================
// DOCUMENTS
// =============================================================================

func (s *Store) InsertDocument(_ context.Context, org engine.OrgContext, doc *lease.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = ownedDocument{org: org.OrganizationID, doc: *doc}
	return nil
}

func (s *Store) ListDocuments(_ context.Context, org engine.OrgContext, leaseID lease.LeaseID) ([]lease.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []lease.Document
	for _, od := range s.documents {
		if od.org == org.OrganizationID && od.doc.LeaseID == leaseID {
			out = append(out, od.doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateDocumentStatus(_ context.Context, org engine.OrgContext, id lease.DocumentID, status lease.DocumentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	od, ok := s.documents[id]
	if !ok || od.org != org.OrganizationID {
		return lease.ErrLeaseNotFound
	}
	od.doc.Status = status
	s.documents[id] = od
	return nil
}

func (s *Store) DeleteDocument(_ context.Context, org engine.OrgContext, id lease.DocumentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	od, ok := s.documents[id]
	if !ok || od.org != org.OrganizationID {
		return nil
	}
	delete(s.documents, id)
	return nil
}
