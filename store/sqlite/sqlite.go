/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements engine.Store (leases, payment periods, charges, document
  records) using SQLite. In production, the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

ORG SCOPING:
  Every row carries an org_id column and every query filters on it. A
  lookup for a row belonging to another organization behaves exactly
  like a lookup for a missing row: (nil, nil).

KEY TABLES:
  leases:           One row per lease, all derived fields denormalized
  payment_periods:  The generated schedule, one row per period
  lease_charges:    Recurring charges attached to a lease
  lease_documents:  Document records (blobs live in the file store)

DATE AND MONEY ENCODING:
  Dates are stored as ISO "2006-01-02" strings (day granularity, no
  timezone). Money is stored as decimal strings - never floats.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/propease.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  eng := engine.New(store, files)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/store.go: Interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/propease/lease-engine/calendar"
	"github.com/propease/lease-engine/engine"
	"github.com/propease/lease-engine/lease"
)

// Store implements engine.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ engine.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS leases (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		unit_id TEXT NOT NULL,
		tenant_id TEXT NOT NULL,
		issuer_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		lease_terms TEXT NOT NULL,
		rent_amount TEXT NOT NULL,
		security_deposit TEXT NOT NULL,
		deposit_status TEXT NOT NULL,
		frequency TEXT NOT NULL,
		payment_day INTEGER NOT NULL,
		status TEXT NOT NULL,
		rent_payment_status TEXT NOT NULL,
		document_status TEXT NOT NULL,
		next_payment_date TEXT,
		last_payment_date TEXT,
		late_fee_amount TEXT NOT NULL,
		late_fee_days INTEGER NOT NULL DEFAULT 0,
		auto_renew BOOLEAN NOT NULL DEFAULT FALSE,
		notice_period_days INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_leases_org
		ON leases(org_id);
	CREATE INDEX IF NOT EXISTS idx_leases_org_unit
		ON leases(org_id, unit_id);
	CREATE INDEX IF NOT EXISTS idx_leases_org_status
		ON leases(org_id, status);

	CREATE TABLE IF NOT EXISTS payment_periods (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		lease_id TEXT NOT NULL REFERENCES leases(id),
		period_start TEXT NOT NULL,
		due_date TEXT NOT NULL,
		total_amount TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_periods_org_lease
		ON payment_periods(org_id, lease_id);

	-- Hot path for due-date sweeps (overdue detection, next payment).
	CREATE INDEX IF NOT EXISTS idx_periods_org_due
		ON payment_periods(org_id, due_date);
	CREATE INDEX IF NOT EXISTS idx_periods_status
		ON payment_periods(status);

	CREATE TABLE IF NOT EXISTS lease_charges (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		lease_id TEXT NOT NULL REFERENCES leases(id),
		charge_type TEXT NOT NULL,
		description TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL,
		applies_from TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_charges_org_lease
		ON lease_charges(org_id, lease_id);

	CREATE TABLE IF NOT EXISTS lease_documents (
		id TEXT PRIMARY KEY,
		org_id TEXT NOT NULL,
		lease_id TEXT NOT NULL REFERENCES leases(id),
		storage_url TEXT NOT NULL,
		file_name TEXT NOT NULL,
		status TEXT NOT NULL,
		uploaded_by TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_org_lease
		ON lease_documents(org_id, lease_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// LEASE STORE
// =============================================================================

const leaseColumns = `id, org_id, unit_id, tenant_id, issuer_id, start_date, end_date,
	lease_terms, rent_amount, security_deposit, deposit_status, frequency, payment_day,
	status, rent_payment_status, document_status, next_payment_date, last_payment_date,
	late_fee_amount, late_fee_days, auto_renew, notice_period_days`

// InsertLease writes a new lease row.
func (s *Store) InsertLease(ctx context.Context, org engine.OrgContext, l *lease.Lease) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO leases (` + leaseColumns + `, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		l.ID, org.OrganizationID, l.UnitID, l.TenantID, l.IssuerID,
		l.StartDate.String(), nullDate(l.EndDate),
		l.LeaseTerms, l.RentAmount.String(), l.SecurityDeposit.String(),
		l.DepositStatus, l.Frequency, l.PaymentDay,
		l.Status, l.RentPaymentStatus, l.DocumentStatus,
		nullDate(l.NextPaymentDate), nullDate(l.LastPaymentDate),
		l.LateFeeAmount.String(), l.LateFeeDays, l.AutoRenew, l.NoticePeriodDays,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert lease: %w", err)
	}
	return nil
}

// UpdateLease overwrites every mutable column of an existing lease row.
func (s *Store) UpdateLease(ctx context.Context, org engine.OrgContext, l *lease.Lease) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		UPDATE leases SET
			unit_id = ?, tenant_id = ?, start_date = ?, end_date = ?,
			lease_terms = ?, rent_amount = ?, security_deposit = ?, deposit_status = ?,
			frequency = ?, payment_day = ?, status = ?, rent_payment_status = ?,
			document_status = ?, next_payment_date = ?, last_payment_date = ?,
			late_fee_amount = ?, late_fee_days = ?, auto_renew = ?, notice_period_days = ?
		WHERE id = ? AND org_id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		l.UnitID, l.TenantID, l.StartDate.String(), nullDate(l.EndDate),
		l.LeaseTerms, l.RentAmount.String(), l.SecurityDeposit.String(), l.DepositStatus,
		l.Frequency, l.PaymentDay, l.Status, l.RentPaymentStatus,
		l.DocumentStatus, nullDate(l.NextPaymentDate), nullDate(l.LastPaymentDate),
		l.LateFeeAmount.String(), l.LateFeeDays, l.AutoRenew, l.NoticePeriodDays,
		l.ID, org.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lease: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return lease.ErrLeaseNotFound
	}
	return nil
}

// GetLease returns a lease by id, or (nil, nil) when it does not exist
// in this organization.
func (s *Store) GetLease(ctx context.Context, org engine.OrgContext, id lease.LeaseID) (*lease.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+leaseColumns+" FROM leases WHERE id = ? AND org_id = ?",
		id, org.OrganizationID,
	)
	l, err := scanLease(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListLeases returns all leases in the organization, newest first.
func (s *Store) ListLeases(ctx context.Context, org engine.OrgContext) ([]lease.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + leaseColumns + " FROM leases WHERE org_id = ? ORDER BY created_at DESC, id"
	return s.queryLeases(ctx, query, org.OrganizationID)
}

// ListLeasesByUnit returns every lease attached to one unit.
func (s *Store) ListLeasesByUnit(ctx context.Context, org engine.OrgContext, unitID lease.UnitID) ([]lease.Lease, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + leaseColumns + " FROM leases WHERE org_id = ? AND unit_id = ? ORDER BY start_date DESC, id"
	return s.queryLeases(ctx, query, org.OrganizationID, unitID)
}

// ListOrganizations returns every organization with at least one lease.
func (s *Store) ListOrganizations(ctx context.Context) ([]lease.OrgID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT org_id FROM leases ORDER BY org_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations: %w", err)
	}
	defer rows.Close()

	var orgs []lease.OrgID
	for rows.Next() {
		var id lease.OrgID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		orgs = append(orgs, id)
	}
	return orgs, rows.Err()
}

// DeleteLease removes a lease row.
func (s *Store) DeleteLease(ctx context.Context, org engine.OrgContext, id lease.LeaseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"DELETE FROM leases WHERE id = ? AND org_id = ?", id, org.OrganizationID)
	return err
}

func (s *Store) queryLeases(ctx context.Context, query string, args ...any) ([]lease.Lease, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leases: %w", err)
	}
	defer rows.Close()

	var leases []lease.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		leases = append(leases, *l)
	}
	return leases, rows.Err()
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLease(row scanner) (*lease.Lease, error) {
	var (
		l                        lease.Lease
		startDate                string
		endDate                  sql.NullString
		rentAmount               string
		securityDeposit          string
		lateFeeAmount            string
		nextPayment, lastPayment sql.NullString
	)

	err := row.Scan(
		&l.ID, &l.OrgID, &l.UnitID, &l.TenantID, &l.IssuerID,
		&startDate, &endDate,
		&l.LeaseTerms, &rentAmount, &securityDeposit, &l.DepositStatus,
		&l.Frequency, &l.PaymentDay,
		&l.Status, &l.RentPaymentStatus, &l.DocumentStatus,
		&nextPayment, &lastPayment,
		&lateFeeAmount, &l.LateFeeDays, &l.AutoRenew, &l.NoticePeriodDays,
	)
	if err != nil {
		return nil, err
	}

	if l.StartDate, err = calendar.Parse(startDate); err != nil {
		return nil, fmt.Errorf("failed to parse start date: %w", err)
	}
	if l.EndDate, err = parseNullDate(endDate); err != nil {
		return nil, fmt.Errorf("failed to parse end date: %w", err)
	}
	if l.NextPaymentDate, err = parseNullDate(nextPayment); err != nil {
		return nil, fmt.Errorf("failed to parse next payment date: %w", err)
	}
	if l.LastPaymentDate, err = parseNullDate(lastPayment); err != nil {
		return nil, fmt.Errorf("failed to parse last payment date: %w", err)
	}

	l.RentAmount = mustDecimal(rentAmount)
	l.SecurityDeposit = mustDecimal(securityDeposit)
	l.LateFeeAmount = mustDecimal(lateFeeAmount)
	return &l, nil
}

// =============================================================================
// PERIOD STORE
// =============================================================================

const periodColumns = `id, lease_id, period_start, due_date, total_amount, status, created_at`

// InsertPeriods bulk-inserts a batch of payment periods atomically.
func (s *Store) InsertPeriods(ctx context.Context, org engine.OrgContext, periods []lease.PaymentPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO payment_periods (id, org_id, lease_id, period_start, due_date, total_amount, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, p := range periods {
		if _, err := tx.ExecContext(ctx, query,
			p.ID, org.OrganizationID, p.LeaseID,
			p.PeriodStart.String(), p.DueDate.String(),
			p.TotalAmount.String(), p.Status, p.CreatedAt.String(),
		); err != nil {
			return fmt.Errorf("failed to insert period: %w", err)
		}
	}

	return tx.Commit()
}

// ListPeriods returns every period of a lease ordered by period start.
func (s *Store) ListPeriods(ctx context.Context, org engine.OrgContext, leaseID lease.LeaseID) ([]lease.PaymentPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + periodColumns + `
		FROM payment_periods
		WHERE org_id = ? AND lease_id = ?
		ORDER BY period_start ASC, created_at ASC
	`
	return s.queryPeriods(ctx, query, org.OrganizationID, leaseID)
}

// ListPeriodsDueBetween returns all periods in the organization whose due
// date falls inside [from, to]. Used for overdue sweeps.
func (s *Store) ListPeriodsDueBetween(ctx context.Context, org engine.OrgContext, from, to calendar.Date) ([]lease.PaymentPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + periodColumns + `
		FROM payment_periods
		WHERE org_id = ? AND due_date >= ? AND due_date <= ?
		ORDER BY due_date ASC, lease_id
	`
	return s.queryPeriods(ctx, query, org.OrganizationID, from.String(), to.String())
}

// GetPeriod returns one period by id, or (nil, nil) when missing.
func (s *Store) GetPeriod(ctx context.Context, org engine.OrgContext, id lease.PeriodID) (*lease.PaymentPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+periodColumns+" FROM payment_periods WHERE id = ? AND org_id = ?",
		id, org.OrganizationID,
	)
	p, err := scanPeriod(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePeriodStatus sets the payment status of one period.
func (s *Store) UpdatePeriodStatus(ctx context.Context, org engine.OrgContext, id lease.PeriodID, status lease.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE payment_periods SET status = ? WHERE id = ? AND org_id = ?",
		status, id, org.OrganizationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update period status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return lease.ErrPeriodNotFound
	}
	return nil
}

// DeletePeriod removes one period row.
func (s *Store) DeletePeriod(ctx context.Context, org engine.OrgContext, id lease.PeriodID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"DELETE FROM payment_periods WHERE id = ? AND org_id = ?", id, org.OrganizationID)
	return err
}

func (s *Store) queryPeriods(ctx context.Context, query string, args ...any) ([]lease.PaymentPeriod, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer rows.Close()

	var periods []lease.PaymentPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, *p)
	}
	return periods, rows.Err()
}

func scanPeriod(row scanner) (*lease.PaymentPeriod, error) {
	var (
		p                               lease.PaymentPeriod
		periodStart, dueDate, createdAt string
		totalAmount                     string
	)

	err := row.Scan(&p.ID, &p.LeaseID, &periodStart, &dueDate, &totalAmount, &p.Status, &createdAt)
	if err != nil {
		return nil, err
	}

	if p.PeriodStart, err = calendar.Parse(periodStart); err != nil {
		return nil, fmt.Errorf("failed to parse period start: %w", err)
	}
	if p.DueDate, err = calendar.Parse(dueDate); err != nil {
		return nil, fmt.Errorf("failed to parse due date: %w", err)
	}
	if p.CreatedAt, err = calendar.Parse(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created at: %w", err)
	}
	p.TotalAmount = mustDecimal(totalAmount)
	return &p, nil
}

// =============================================================================
// CHARGE STORE
// =============================================================================

// InsertCharges bulk-inserts charges atomically.
func (s *Store) InsertCharges(ctx context.Context, org engine.OrgContext, charges []lease.Charge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO lease_charges (id, org_id, lease_id, charge_type, description, amount, status, applies_from, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now().UTC().Format(time.RFC3339)
	for _, c := range charges {
		if _, err := tx.ExecContext(ctx, query,
			c.ID, org.OrganizationID, c.LeaseID, c.Type, c.Description,
			c.Amount.String(), c.Status, c.AppliesFrom.String(), now,
		); err != nil {
			return fmt.Errorf("failed to insert charge: %w", err)
		}
	}

	return tx.Commit()
}

// ListCharges returns all charges of a lease in insertion order.
func (s *Store) ListCharges(ctx context.Context, org engine.OrgContext, leaseID lease.LeaseID) ([]lease.Charge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, lease_id, charge_type, description, amount, status, applies_from
		FROM lease_charges
		WHERE org_id = ? AND lease_id = ?
		ORDER BY created_at ASC, id
	`
	rows, err := s.db.QueryContext(ctx, query, org.OrganizationID, leaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query charges: %w", err)
	}
	defer rows.Close()

	var charges []lease.Charge
	for rows.Next() {
		var (
			c           lease.Charge
			amount      string
			appliesFrom string
		)
		if err := rows.Scan(&c.ID, &c.LeaseID, &c.Type, &c.Description, &amount, &c.Status, &appliesFrom); err != nil {
			return nil, err
		}
		if c.AppliesFrom, err = calendar.Parse(appliesFrom); err != nil {
			return nil, fmt.Errorf("failed to parse applies from: %w", err)
		}
		c.Amount = mustDecimal(amount)
		charges = append(charges, c)
	}
	return charges, rows.Err()
}

// DeleteCharges removes every charge of a lease.
func (s *Store) DeleteCharges(ctx context.Context, org engine.OrgContext, leaseID lease.LeaseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"DELETE FROM lease_charges WHERE org_id = ? AND lease_id = ?",
		org.OrganizationID, leaseID)
	return err
}

// =============================================================================
// DOCUMENT STORE
// =============================================================================

// InsertDocument writes one document record.
func (s *Store) InsertDocument(ctx context.Context, org engine.OrgContext, doc *lease.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO lease_documents (id, org_id, lease_id, storage_url, file_name, status, uploaded_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		doc.ID, org.OrganizationID, doc.LeaseID, doc.StorageURL,
		doc.FileName, doc.Status, doc.UploadedBy,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// ListDocuments returns all document records of a lease, oldest first.
func (s *Store) ListDocuments(ctx context.Context, org engine.OrgContext, leaseID lease.LeaseID) ([]lease.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, lease_id, storage_url, file_name, status, uploaded_by
		FROM lease_documents
		WHERE org_id = ? AND lease_id = ?
		ORDER BY created_at ASC, id
	`
	rows, err := s.db.QueryContext(ctx, query, org.OrganizationID, leaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []lease.Document
	for rows.Next() {
		var d lease.Document
		if err := rows.Scan(&d.ID, &d.LeaseID, &d.StorageURL, &d.FileName, &d.Status, &d.UploadedBy); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// UpdateDocumentStatus sets the signature status of one document.
func (s *Store) UpdateDocumentStatus(ctx context.Context, org engine.OrgContext, id lease.DocumentID, status lease.DocumentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"UPDATE lease_documents SET status = ? WHERE id = ? AND org_id = ?",
		status, id, org.OrganizationID)
	return err
}

// DeleteDocument removes one document record.
func (s *Store) DeleteDocument(ctx context.Context, org engine.OrgContext, id lease.DocumentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"DELETE FROM lease_documents WHERE id = ? AND org_id = ?", id, org.OrganizationID)
	return err
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"payment_periods", "lease_charges", "lease_documents", "leases"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

func nullDate(d *calendar.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func parseNullDate(ns sql.NullString) (*calendar.Date, error) {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil, nil
	}
	d, err := calendar.Parse(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// mustDecimal parses a decimal column written by this store. Values only
// ever round-trip through decimal.String, so a parse failure indicates
// external corruption; zero is returned rather than panicking.
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
