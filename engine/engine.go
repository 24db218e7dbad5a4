/*
engine.go - Lease mutation orchestrator

PURPOSE:
  The write path of the lease system. Given validated input, computes
  derived fields (term label, end date, lifecycle status, next payment
  date), persists the lease, generates its payment-period schedule and
  persists dependent records — transactionally in spirit.

FAILURE SEMANTICS:
  Steps up to and including the lease insert are fail-fast: any failure
  aborts the whole operation and compensating deletes remove files that
  were already uploaded. Once the lease row exists, the remaining steps
  (periods, charges, document attachment) are best-effort: failures are
  reported as warnings on the Outcome, never by un-creating the lease.
  Nothing is silently swallowed — every failure path logs or returns.

ORDERING GUARANTEES:
  1. Document upload completes (or fully rolls back) before the lease row
     is inserted. Documents are mandatory at creation.
  2. The lease row exists before payment periods are inserted (periods
     reference the lease id). An aborted caller leaves at most an orphaned
     lease row with a logged warning, never orphaned periods.

SEE ALSO:
  - store.go:   Collaborator interfaces
  - outcome.go: The Outcome/Warning result shape
  - validate.go: Input validation
*/
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/propease/lease-engine/calendar"
	"github.com/propease/lease-engine/lease"
	"github.com/propease/lease-engine/schedule"
)

// Engine orchestrates lease mutations over the record and file stores.
type Engine struct {
	store Store
	files FileStore
	log   *slog.Logger
	now   func() calendar.Date
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the source of "today". Tests pin it.
func WithClock(now func() calendar.Date) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger replaces the default slog logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine over the given collaborators.
func New(store Store, files FileStore, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		files: files,
		log:   slog.Default(),
		now:   calendar.Today,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// =============================================================================
// CREATE
// =============================================================================

// CreateLease validates input, computes derived fields, uploads documents,
// persists the lease and bulk-creates its payment schedule.
func (e *Engine) CreateLease(ctx context.Context, org OrgContext, input lease.LeaseInput) (*Outcome, error) {
	today := e.now()

	if err := validateInput(input, true); err != nil {
		return nil, err
	}

	l := e.deriveLease(org, input)
	l.Status = deriveStatus(input.TermKind, input.StartDate, l.EndDate, today)

	// The schedule is pure; compute it up front so next_payment_date is
	// known before the lease row is written.
	periods := schedule.Generate(l.ID, l.StartDate, l.Frequency, l.PaymentDay, l.EndDate, l.RentAmount)
	l.NextPaymentDate = schedule.NextDueDate(periods, today)

	// Upload every document before creating any database rows. Documents
	// are mandatory; a single failed upload aborts the whole operation.
	staged, err := e.stageDocuments(ctx, org, input.Documents)
	if err != nil {
		return nil, err
	}

	if err := e.store.InsertLease(ctx, org, l); err != nil {
		e.removeFiles(ctx, stagedPaths(staged))
		return nil, fmt.Errorf("inserting lease: %w", err)
	}

	// The lease row is committed. Everything below is best-effort.
	out := &Outcome{Lease: l}

	if len(periods) == 0 {
		out.warnf(StageSchedule, lease.ErrEmptySchedule, "no payment periods for lease %s", l.ID)
		e.log.Warn("schedule generation produced no periods", "lease", l.ID)
	} else {
		for i := range periods {
			periods[i].ID = lease.PeriodID(uuid.NewString())
			periods[i].CreatedAt = today
		}
		if err := e.store.InsertPeriods(ctx, org, periods); err != nil {
			out.warnf(StageSchedule, err, "persisting %d payment periods", len(periods))
			e.log.Warn("failed to persist payment periods", "lease", l.ID, "error", err)
		} else {
			out.Periods = periods
		}
	}

	e.attachStagedDocuments(ctx, org, l.ID, staged, out)
	e.insertCharges(ctx, org, l, input.Charges, periods, out)

	return out, nil
}

// deriveLease maps validated input onto a new lease record. The mapping is
// total: every persisted field is assigned here or in CreateLease.
func (e *Engine) deriveLease(org OrgContext, input lease.LeaseInput) *lease.Lease {
	freq := input.Frequency
	if !freq.Valid() {
		freq = lease.ParseFrequency(string(freq))
	}

	l := &lease.Lease{
		ID:                lease.LeaseID(uuid.NewString()),
		OrgID:             org.OrganizationID,
		UnitID:            input.UnitID,
		TenantID:          input.TenantID,
		IssuerID:          org.ActorID,
		StartDate:         input.StartDate,
		RentAmount:        input.RentAmount,
		SecurityDeposit:   input.SecurityDeposit,
		DepositStatus:     input.DepositStatus,
		Frequency:         freq,
		PaymentDay:        input.PaymentDay,
		RentPaymentStatus: lease.PaymentPending,
		DocumentStatus:    aggregateDocumentStatus(input.Documents),
		LateFeeAmount:     input.LateFeeAmount,
		LateFeeDays:       input.LateFeeDays,
		AutoRenew:         input.AutoRenew,
		NoticePeriodDays:  input.NoticePeriodDays,
	}
	if l.DepositStatus == "" {
		l.DepositStatus = lease.PaymentPending
	}

	switch input.TermKind {
	case lease.TermMonthToMonth:
		// Month-to-month: no contractual end is persisted, and billing is
		// always monthly regardless of what was submitted.
		l.LeaseTerms = lease.TermLabelMonthToMonth
		l.EndDate = nil
		l.Frequency = lease.Monthly
	default:
		l.LeaseTerms = lease.TermLabelFixed
		l.EndDate = input.EndDate
	}
	return l
}

// deriveStatus resolves lifecycle status for a lease being written.
// Month-to-month status is gated by a freshly computed nominal horizon,
// start-date-relative, so the resolver never sees a nil end.
func deriveStatus(kind lease.TermKind, start calendar.Date, end *calendar.Date, today calendar.Date) lease.Status {
	if kind == lease.TermMonthToMonth || end == nil {
		horizon := lease.NominalHorizon(start)
		return lease.ResolveStatus(start, &horizon, today)
	}
	return lease.ResolveStatus(start, end, today)
}

func aggregateDocumentStatus(docs []lease.DocumentUpload) lease.DocumentStatus {
	if len(docs) == 0 {
		return lease.DocNotSigned
	}
	for _, d := range docs {
		if lease.NormalizeDocumentStatus(string(d.Status)) != lease.DocSigned {
			return lease.DocNotSigned
		}
	}
	return lease.DocSigned
}

// =============================================================================
// EDIT
// =============================================================================

// EditInput carries lease-edit fields plus document deltas.
type EditInput struct {
	lease.LeaseInput
	RemoveDocumentIDs     []lease.DocumentID
	DocumentStatusUpdates map[lease.DocumentID]lease.DocumentStatus
}

// EditLease recomputes derived fields exactly as creation does, persists
// the lease changes, fully replaces the charge set, and applies document
// add/remove/status-update deltas.
//
// Payment periods are NOT regenerated on edit; create-time generation is
// the only guaranteed schedule behavior. Callers that change dates or
// frequency and want the schedule to follow opt in via RegenerateSchedule.
func (e *Engine) EditLease(ctx context.Context, org OrgContext, id lease.LeaseID, input EditInput) (*Outcome, error) {
	today := e.now()

	existing, err := e.store.GetLease(ctx, org, id)
	if err != nil {
		return nil, fmt.Errorf("loading lease: %w", err)
	}
	if existing == nil {
		return nil, lease.ErrLeaseNotFound
	}

	if err := validateInput(input.LeaseInput, false); err != nil {
		return nil, err
	}

	updated := e.deriveLease(org, input.LeaseInput)
	updated.ID = existing.ID
	updated.IssuerID = existing.IssuerID
	updated.RentPaymentStatus = existing.RentPaymentStatus
	updated.NextPaymentDate = existing.NextPaymentDate
	updated.LastPaymentDate = existing.LastPaymentDate
	updated.DocumentStatus = existing.DocumentStatus

	// A staff-initiated termination persists until explicitly changed.
	if existing.Status == lease.StatusTerminated {
		updated.Status = lease.StatusTerminated
	} else {
		updated.Status = deriveStatus(input.TermKind, input.StartDate, updated.EndDate, today)
	}

	if err := e.store.UpdateLease(ctx, org, updated); err != nil {
		return nil, fmt.Errorf("updating lease: %w", err)
	}

	out := &Outcome{Lease: updated}

	// Charges are replaced wholesale: delete all, reinsert the submitted set.
	if err := e.store.DeleteCharges(ctx, org, id); err != nil {
		out.warnf(StageCharges, err, "clearing charges for lease %s", id)
	} else {
		e.insertCharges(ctx, org, updated, input.Charges, nil, out)
	}

	e.applyDocumentDeltas(ctx, org, id, input, out)

	return out, nil
}

// TerminateLease applies the explicit staff-initiated status override.
func (e *Engine) TerminateLease(ctx context.Context, org OrgContext, id lease.LeaseID) (*lease.Lease, error) {
	l, err := e.store.GetLease(ctx, org, id)
	if err != nil {
		return nil, fmt.Errorf("loading lease: %w", err)
	}
	if l == nil {
		return nil, lease.ErrLeaseNotFound
	}
	l.Status = lease.StatusTerminated
	if err := e.store.UpdateLease(ctx, org, l); err != nil {
		return nil, fmt.Errorf("updating lease: %w", err)
	}
	return l, nil
}

// DeleteLease removes a lease that has no payment periods or charges left.
// Document blobs are removed best-effort: a storage failure is reported as
// a warning and the record deletion still proceeds.
func (e *Engine) DeleteLease(ctx context.Context, org OrgContext, id lease.LeaseID) ([]Warning, error) {
	l, err := e.store.GetLease(ctx, org, id)
	if err != nil {
		return nil, fmt.Errorf("loading lease: %w", err)
	}
	if l == nil {
		return nil, lease.ErrLeaseNotFound
	}

	periods, err := e.store.ListPeriods(ctx, org, id)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}
	charges, err := e.store.ListCharges(ctx, org, id)
	if err != nil {
		return nil, fmt.Errorf("listing charges: %w", err)
	}
	if len(periods) > 0 || len(charges) > 0 {
		return nil, fmt.Errorf("lease %s: %w", id, lease.ErrLeaseHasDependents)
	}

	var warnings []Warning
	docs, err := e.store.ListDocuments(ctx, org, id)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	for _, doc := range docs {
		if err := e.files.Remove(ctx, leaseDocumentPath(id, doc.FileName)); err != nil {
			warnings = append(warnings, Warning{Stage: StageCleanup, Detail: "removing blob for " + doc.FileName, Err: err})
			e.log.Warn("failed to remove document blob", "lease", id, "file", doc.FileName, "error", err)
		}
		if err := e.store.DeleteDocument(ctx, org, doc.ID); err != nil {
			return warnings, fmt.Errorf("deleting document record %s: %w", doc.ID, err)
		}
	}

	if err := e.store.DeleteLease(ctx, org, id); err != nil {
		return warnings, fmt.Errorf("deleting lease: %w", err)
	}
	return warnings, nil
}

// =============================================================================
// SCHEDULE MAINTENANCE
// =============================================================================

// RegenerateSchedule rebuilds a lease's payment periods from its current
// dates, frequency and payment day. Regeneration is dedup-safe rather than
// delete-then-insert: paid periods are kept, and freshly generated periods
// whose due date collides with a kept paid period are skipped, so in-flight
// payments are never silently lost.
func (e *Engine) RegenerateSchedule(ctx context.Context, org OrgContext, id lease.LeaseID) (*Outcome, error) {
	today := e.now()

	l, err := e.store.GetLease(ctx, org, id)
	if err != nil {
		return nil, fmt.Errorf("loading lease: %w", err)
	}
	if l == nil {
		return nil, lease.ErrLeaseNotFound
	}

	existing, err := e.store.ListPeriods(ctx, org, id)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}

	paidDue := make(map[string]bool)
	var kept []lease.PaymentPeriod
	for _, p := range existing {
		if p.Status == lease.PaymentPaid {
			paidDue[p.DueDate.String()] = true
			kept = append(kept, p)
			continue
		}
		if err := e.store.DeletePeriod(ctx, org, p.ID); err != nil {
			return nil, fmt.Errorf("removing period %s: %w", p.ID, err)
		}
	}

	fresh := schedule.Generate(l.ID, l.StartDate, l.Frequency, l.PaymentDay, l.EndDate, l.RentAmount)
	var insert []lease.PaymentPeriod
	for _, p := range fresh {
		if paidDue[p.DueDate.String()] {
			continue
		}
		p.ID = lease.PeriodID(uuid.NewString())
		p.CreatedAt = today
		insert = append(insert, p)
	}

	out := &Outcome{Lease: l}
	if len(insert) == 0 && len(kept) == 0 {
		out.warnf(StageSchedule, lease.ErrEmptySchedule, "regeneration produced no periods for lease %s", id)
	}
	if len(insert) > 0 {
		if err := e.store.InsertPeriods(ctx, org, insert); err != nil {
			return nil, fmt.Errorf("inserting regenerated periods: %w", err)
		}
	}
	out.Periods = append(kept, insert...)

	l.NextPaymentDate = schedule.NextDueDate(unpaidOf(out.Periods), today)
	if err := e.store.UpdateLease(ctx, org, l); err != nil {
		out.warnf(StageSchedule, err, "updating next payment date for lease %s", id)
	}
	return out, nil
}

// SweepOverdue marks every unpaid period in the organization whose due
// date has passed as overdue, honoring each lease's late-fee grace days.
// Returns the number of periods flagged. Individual failures are logged
// and skipped so one bad row never stalls the sweep.
func (e *Engine) SweepOverdue(ctx context.Context, org OrgContext) (int, error) {
	today := e.now()

	due, err := e.store.ListPeriodsDueBetween(ctx, org, calendar.NewDate(1970, time.January, 1), today)
	if err != nil {
		return 0, fmt.Errorf("listing due periods: %w", err)
	}

	graceByLease := make(map[lease.LeaseID]int)
	flagged := 0
	for _, p := range due {
		if p.Status != lease.PaymentPending {
			continue
		}
		grace, ok := graceByLease[p.LeaseID]
		if !ok {
			l, err := e.store.GetLease(ctx, org, p.LeaseID)
			if err != nil || l == nil {
				e.log.Warn("skipping orphaned period in overdue sweep", "period", p.ID, "lease", p.LeaseID, "error", err)
				continue
			}
			grace = l.LateFeeDays
			graceByLease[p.LeaseID] = grace
		}
		if !p.DueDate.AddDays(grace).Before(today) {
			continue
		}
		if err := e.setPeriodStatus(ctx, org, p.ID, lease.PaymentOverdue); err != nil {
			e.log.Warn("failed to flag overdue period", "period", p.ID, "error", err)
			continue
		}
		flagged++
	}
	return flagged, nil
}

// Organizations enumerates every organization with stored leases.
func (e *Engine) Organizations(ctx context.Context) ([]lease.OrgID, error) {
	return e.store.ListOrganizations(ctx)
}

// MarkPeriodPaid records a staff-applied payment on one period and
// refreshes the lease's payment markers.
func (e *Engine) MarkPeriodPaid(ctx context.Context, org OrgContext, id lease.PeriodID) error {
	return e.setPeriodStatus(ctx, org, id, lease.PaymentPaid)
}

// MarkPeriodOverdue flags one period as overdue and the lease with it.
func (e *Engine) MarkPeriodOverdue(ctx context.Context, org OrgContext, id lease.PeriodID) error {
	return e.setPeriodStatus(ctx, org, id, lease.PaymentOverdue)
}

func (e *Engine) setPeriodStatus(ctx context.Context, org OrgContext, id lease.PeriodID, status lease.PaymentStatus) error {
	today := e.now()

	p, err := e.store.GetPeriod(ctx, org, id)
	if err != nil {
		return fmt.Errorf("loading period: %w", err)
	}
	if p == nil {
		return lease.ErrPeriodNotFound
	}
	if err := e.store.UpdatePeriodStatus(ctx, org, id, status); err != nil {
		return fmt.Errorf("updating period status: %w", err)
	}

	l, err := e.store.GetLease(ctx, org, p.LeaseID)
	if err != nil || l == nil {
		e.log.Warn("period updated but lease markers not refreshed", "period", id, "error", err)
		return nil
	}

	periods, err := e.store.ListPeriods(ctx, org, p.LeaseID)
	if err != nil {
		e.log.Warn("period updated but lease markers not refreshed", "period", id, "error", err)
		return nil
	}

	if status == lease.PaymentPaid {
		l.LastPaymentDate = &today
	}
	l.NextPaymentDate = schedule.NextDueDate(unpaidOf(periods), today)
	l.RentPaymentStatus = overallPaymentStatus(periods)
	if err := e.store.UpdateLease(ctx, org, l); err != nil {
		e.log.Warn("failed to refresh lease payment markers", "lease", l.ID, "error", err)
	}
	return nil
}

func unpaidOf(periods []lease.PaymentPeriod) []lease.PaymentPeriod {
	var out []lease.PaymentPeriod
	for _, p := range periods {
		if p.Status != lease.PaymentPaid {
			out = append(out, p)
		}
	}
	return out
}

func overallPaymentStatus(periods []lease.PaymentPeriod) lease.PaymentStatus {
	allPaid := len(periods) > 0
	for _, p := range periods {
		switch p.Status {
		case lease.PaymentOverdue:
			return lease.PaymentOverdue
		case lease.PaymentPaid:
		default:
			allPaid = false
		}
	}
	if allPaid {
		return lease.PaymentPaid
	}
	return lease.PaymentPending
}

// =============================================================================
// READ PATH
// =============================================================================

// LeaseView is a lease normalized for display: term kind classified from
// stored fields, a display end date that is never empty, and a lifecycle
// status re-derived for "today" (except Terminated, which sticks).
type LeaseView struct {
	Lease          lease.Lease
	TermKind       lease.TermKind
	DisplayEndDate calendar.Date
	Status         lease.Status
}

// GetLeaseView loads one lease and reconciles it for display.
func (e *Engine) GetLeaseView(ctx context.Context, org OrgContext, id lease.LeaseID) (*LeaseView, error) {
	l, err := e.store.GetLease(ctx, org, id)
	if err != nil {
		return nil, fmt.Errorf("loading lease: %w", err)
	}
	if l == nil {
		return nil, lease.ErrLeaseNotFound
	}
	v := e.reconcile(*l)
	return &v, nil
}

// ListLeaseViews loads all of an organization's leases, reconciled.
func (e *Engine) ListLeaseViews(ctx context.Context, org OrgContext) ([]LeaseView, error) {
	leases, err := e.store.ListLeases(ctx, org)
	if err != nil {
		return nil, fmt.Errorf("listing leases: %w", err)
	}
	views := make([]LeaseView, len(leases))
	for i, l := range leases {
		views[i] = e.reconcile(l)
	}
	return views, nil
}

func (e *Engine) reconcile(l lease.Lease) LeaseView {
	today := e.now()
	kind := lease.ResolveTermKind(l.LeaseTerms, l.EndDate)

	status := l.Status
	if status != lease.StatusTerminated {
		status = deriveStatus(kind, l.StartDate, l.EndDate, today)
	}

	return LeaseView{
		Lease:          l,
		TermKind:       kind,
		DisplayEndDate: lease.DisplayEndDate(kind, l.StartDate, l.EndDate, today),
		Status:         status,
	}
}

// Periods returns a lease's payment periods, deduplicated per the
// due-date-uniqueness invariant. Repairs surface as integrity warnings.
func (e *Engine) Periods(ctx context.Context, org OrgContext, id lease.LeaseID) ([]lease.PaymentPeriod, []Warning, error) {
	raw, err := e.store.ListPeriods(ctx, org, id)
	if err != nil {
		return nil, nil, fmt.Errorf("listing periods: %w", err)
	}
	deduped, integrity := schedule.Deduplicate(id, raw)

	var warnings []Warning
	for i := range integrity {
		w := integrity[i]
		warnings = append(warnings, Warning{Stage: StageIntegrity, Detail: w.Detail, Err: &w})
		e.log.Warn("payment period integrity repair", "lease", id, "detail", w.Detail)
	}
	return deduped, warnings, nil
}

// NextPayment returns the lease's next unpaid due date, or nil when the
// schedule is exhausted.
func (e *Engine) NextPayment(ctx context.Context, org OrgContext, id lease.LeaseID) (*calendar.Date, error) {
	periods, _, err := e.Periods(ctx, org, id)
	if err != nil {
		return nil, err
	}
	return schedule.NextDueDate(unpaidOf(periods), e.now()), nil
}

// Charges returns a lease's recurring charges.
func (e *Engine) Charges(ctx context.Context, org OrgContext, id lease.LeaseID) ([]lease.Charge, error) {
	if err := e.requireLease(ctx, org, id); err != nil {
		return nil, err
	}
	charges, err := e.store.ListCharges(ctx, org, id)
	if err != nil {
		return nil, fmt.Errorf("listing charges: %w", err)
	}
	return charges, nil
}

// Documents returns a lease's document records.
func (e *Engine) Documents(ctx context.Context, org OrgContext, id lease.LeaseID) ([]lease.Document, error) {
	if err := e.requireLease(ctx, org, id); err != nil {
		return nil, err
	}
	docs, err := e.store.ListDocuments(ctx, org, id)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return docs, nil
}

func (e *Engine) requireLease(ctx context.Context, org OrgContext, id lease.LeaseID) error {
	l, err := e.store.GetLease(ctx, org, id)
	if err != nil {
		return fmt.Errorf("loading lease: %w", err)
	}
	if l == nil {
		return lease.ErrLeaseNotFound
	}
	return nil
}

// =============================================================================
// DOCUMENT PLUMBING
// =============================================================================

type stagedDocument struct {
	upload lease.DocumentUpload
	path   string
	url    string
}

// stageDocuments uploads every submitted document to a staging location.
// All-or-nothing: the first failure removes whatever was already uploaded
// and aborts.
func (e *Engine) stageDocuments(ctx context.Context, org OrgContext, docs []lease.DocumentUpload) ([]stagedDocument, error) {
	staged := make([]stagedDocument, 0, len(docs))
	for _, doc := range docs {
		name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), doc.FileName)
		p := path.Join("staging", string(org.OrganizationID), name)
		url, err := e.files.Upload(ctx, p, doc.Content)
		if err != nil {
			e.removeFiles(ctx, stagedPaths(staged))
			return nil, fmt.Errorf("uploading document %q: %w", doc.FileName, err)
		}
		staged = append(staged, stagedDocument{upload: doc, path: p, url: url})
	}
	return staged, nil
}

// attachStagedDocuments relocates staged blobs to the lease-scoped
// location and inserts the document records. Individual failures are
// tolerated and reported; a document whose relocation fails keeps its
// staging URL rather than being dropped.
func (e *Engine) attachStagedDocuments(ctx context.Context, org OrgContext, id lease.LeaseID, staged []stagedDocument, out *Outcome) {
	for _, s := range staged {
		url := s.url
		fileName := path.Base(s.path)
		dst := leaseDocumentPath(id, fileName)

		if err := e.files.Copy(ctx, s.path, dst); err != nil {
			out.warnf(StageDocuments, err, "relocating %s to lease storage", s.upload.FileName)
			e.log.Warn("document left in staging location", "lease", id, "file", s.upload.FileName, "error", err)
		} else {
			url = e.files.PublicURL(dst)
			if err := e.files.Remove(ctx, s.path); err != nil {
				e.log.Warn("failed to remove staged copy", "path", s.path, "error", err)
			}
		}

		doc := &lease.Document{
			ID:         lease.DocumentID(uuid.NewString()),
			LeaseID:    id,
			StorageURL: url,
			FileName:   fileName,
			Status:     lease.NormalizeDocumentStatus(string(s.upload.Status)),
			UploadedBy: org.ActorID,
		}
		if err := e.store.InsertDocument(ctx, org, doc); err != nil {
			out.warnf(StageDocuments, err, "recording document %s", s.upload.FileName)
			e.log.Warn("failed to record document", "lease", id, "file", s.upload.FileName, "error", err)
		}
	}
}

// applyDocumentDeltas handles edit-time document changes: removals,
// status updates, then additions. All best-effort once the lease row is
// updated.
func (e *Engine) applyDocumentDeltas(ctx context.Context, org OrgContext, id lease.LeaseID, input EditInput, out *Outcome) {
	for _, docID := range input.RemoveDocumentIDs {
		docs, err := e.store.ListDocuments(ctx, org, id)
		if err != nil {
			out.warnf(StageDocuments, err, "listing documents for removal")
			break
		}
		for _, doc := range docs {
			if doc.ID != docID {
				continue
			}
			// Storage removal failure does not block record deletion.
			if err := e.files.Remove(ctx, leaseDocumentPath(id, doc.FileName)); err != nil {
				out.warnf(StageDocuments, err, "removing blob for %s", doc.FileName)
			}
			if err := e.store.DeleteDocument(ctx, org, doc.ID); err != nil {
				out.warnf(StageDocuments, err, "deleting document record %s", doc.ID)
			}
		}
	}

	for docID, status := range input.DocumentStatusUpdates {
		normalized := lease.NormalizeDocumentStatus(string(status))
		if err := e.store.UpdateDocumentStatus(ctx, org, docID, normalized); err != nil {
			out.warnf(StageDocuments, err, "updating status of document %s", docID)
		}
	}

	for _, doc := range input.Documents {
		name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), doc.FileName)
		dst := leaseDocumentPath(id, name)
		url, err := e.files.Upload(ctx, dst, doc.Content)
		if err != nil {
			out.warnf(StageDocuments, err, "uploading document %s", doc.FileName)
			continue
		}
		rec := &lease.Document{
			ID:         lease.DocumentID(uuid.NewString()),
			LeaseID:    id,
			StorageURL: url,
			FileName:   name,
			Status:     lease.NormalizeDocumentStatus(string(doc.Status)),
			UploadedBy: org.ActorID,
		}
		if err := e.store.InsertDocument(ctx, org, rec); err != nil {
			out.warnf(StageDocuments, err, "recording document %s", doc.FileName)
		}
	}
}

func (e *Engine) insertCharges(ctx context.Context, org OrgContext, l *lease.Lease, inputs []lease.ChargeInput, periods []lease.PaymentPeriod, out *Outcome) {
	if len(inputs) == 0 {
		return
	}

	// Charges anchor at the first payment period's start date. With no
	// periods generated, the lease start stands in.
	appliesFrom := l.StartDate
	if len(periods) > 0 {
		appliesFrom = periods[0].PeriodStart
	}

	charges := make([]lease.Charge, len(inputs))
	for i, in := range inputs {
		charges[i] = lease.Charge{
			ID:          lease.ChargeID(uuid.NewString()),
			LeaseID:     l.ID,
			Type:        in.Type,
			Description: in.Description,
			Amount:      in.Amount,
			Status:      lease.PaymentPending,
			AppliesFrom: appliesFrom,
		}
	}
	if err := e.store.InsertCharges(ctx, org, charges); err != nil {
		out.warnf(StageCharges, err, "persisting %d charges", len(charges))
		e.log.Warn("failed to persist charges", "lease", l.ID, "error", err)
	}
}

func (e *Engine) removeFiles(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := e.files.Remove(ctx, p); err != nil {
			e.log.Warn("failed to clean up uploaded file", "path", p, "error", err)
		}
	}
}

func stagedPaths(staged []stagedDocument) []string {
	paths := make([]string, len(staged))
	for i, s := range staged {
		paths[i] = s.path
	}
	return paths
}

func leaseDocumentPath(id lease.LeaseID, fileName string) string {
	return path.Join("leases", string(id), fileName)
}
