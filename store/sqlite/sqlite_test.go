package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propease/lease-engine/calendar"
	"github.com/propease/lease-engine/engine"
	"github.com/propease/lease-engine/lease"
)

var org = engine.OrgContext{OrganizationID: "org-1", ActorID: "user-1"}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleLease(id lease.LeaseID) *lease.Lease {
	end := calendar.NewDate(2025, time.May, 31)
	next := calendar.NewDate(2024, time.June, 1)
	return &lease.Lease{
		ID:                id,
		OrgID:             org.OrganizationID,
		UnitID:            "unit-1",
		TenantID:          "tenant-1",
		IssuerID:          org.ActorID,
		StartDate:         calendar.NewDate(2024, time.June, 1),
		EndDate:           &end,
		LeaseTerms:        lease.TermLabelFixed,
		RentAmount:        decimal.NewFromInt(1500),
		SecurityDeposit:   decimal.NewFromInt(3000),
		DepositStatus:     lease.PaymentPending,
		Frequency:         lease.Monthly,
		PaymentDay:        1,
		Status:            lease.StatusActive,
		RentPaymentStatus: lease.PaymentPending,
		DocumentStatus:    lease.DocSigned,
		NextPaymentDate:   &next,
		LateFeeAmount:     decimal.NewFromInt(50),
		LateFeeDays:       5,
	}
}

func TestLeaseRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := sampleLease("lease-1")
	require.NoError(t, s.InsertLease(ctx, org, want))

	got, err := s.GetLease(ctx, org, "lease-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, want.ID, got.ID)
	assert.True(t, got.StartDate.Equal(want.StartDate))
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(*want.EndDate))
	assert.True(t, got.RentAmount.Equal(want.RentAmount))
	assert.Equal(t, lease.TermLabelFixed, got.LeaseTerms)
	assert.Equal(t, lease.Monthly, got.Frequency)
	require.NotNil(t, got.NextPaymentDate)
	assert.True(t, got.NextPaymentDate.Equal(*want.NextPaymentDate))
	assert.Nil(t, got.LastPaymentDate)
	assert.Equal(t, 5, got.LateFeeDays)
}

func TestNullEndDatePersists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	l := sampleLease("lease-m2m")
	l.EndDate = nil
	l.LeaseTerms = lease.TermLabelMonthToMonth
	require.NoError(t, s.InsertLease(ctx, org, l))

	got, err := s.GetLease(ctx, org, "lease-m2m")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.EndDate)
	assert.Equal(t, lease.TermLabelMonthToMonth, got.LeaseTerms)
}

func TestGetLeaseIsOrgScoped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertLease(ctx, org, sampleLease("lease-1")))

	other := engine.OrgContext{OrganizationID: "org-2", ActorID: "user-2"}
	got, err := s.GetLease(ctx, other, "lease-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateMissingLease(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateLease(context.Background(), org, sampleLease("ghost"))
	assert.ErrorIs(t, err, lease.ErrLeaseNotFound)
}

func TestPeriodLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertLease(ctx, org, sampleLease("lease-1")))

	periods := []lease.PaymentPeriod{
		{
			ID: "p-1", LeaseID: "lease-1",
			PeriodStart: calendar.NewDate(2024, time.June, 1),
			DueDate:     calendar.NewDate(2024, time.June, 1),
			TotalAmount: decimal.NewFromInt(1500),
			Status:      lease.PaymentPending,
			CreatedAt:   calendar.NewDate(2024, time.May, 15),
		},
		{
			ID: "p-2", LeaseID: "lease-1",
			PeriodStart: calendar.NewDate(2024, time.July, 1),
			DueDate:     calendar.NewDate(2024, time.July, 1),
			TotalAmount: decimal.NewFromInt(1500),
			Status:      lease.PaymentPending,
			CreatedAt:   calendar.NewDate(2024, time.May, 15),
		},
	}
	require.NoError(t, s.InsertPeriods(ctx, org, periods))

	listed, err := s.ListPeriods(ctx, org, "lease-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, lease.PeriodID("p-1"), listed[0].ID)

	require.NoError(t, s.UpdatePeriodStatus(ctx, org, "p-1", lease.PaymentPaid))
	got, err := s.GetPeriod(ctx, org, "p-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, lease.PaymentPaid, got.Status)

	due, err := s.ListPeriodsDueBetween(ctx, org,
		calendar.NewDate(2024, time.June, 15), calendar.NewDate(2024, time.July, 15))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, lease.PeriodID("p-2"), due[0].ID)

	require.NoError(t, s.DeletePeriod(ctx, org, "p-2"))
	listed, err = s.ListPeriods(ctx, org, "lease-1")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestChargeReplaceCycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertLease(ctx, org, sampleLease("lease-1")))

	charges := []lease.Charge{
		{ID: "c-1", LeaseID: "lease-1", Type: lease.ChargeUtility, Description: "water",
			Amount: decimal.NewFromInt(40), Status: lease.PaymentPending,
			AppliesFrom: calendar.NewDate(2024, time.June, 1)},
	}
	require.NoError(t, s.InsertCharges(ctx, org, charges))

	listed, err := s.ListCharges(ctx, org, "lease-1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "water", listed[0].Description)
	assert.True(t, listed[0].Amount.Equal(decimal.NewFromInt(40)))

	require.NoError(t, s.DeleteCharges(ctx, org, "lease-1"))
	listed, err = s.ListCharges(ctx, org, "lease-1")
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestDocumentLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.InsertLease(ctx, org, sampleLease("lease-1")))

	doc := &lease.Document{
		ID: "d-1", LeaseID: "lease-1",
		StorageURL: "file://leases/lease-1/1718000000000_agreement.pdf",
		FileName:   "1718000000000_agreement.pdf",
		Status:     lease.DocNotSigned,
		UploadedBy: org.ActorID,
	}
	require.NoError(t, s.InsertDocument(ctx, org, doc))

	require.NoError(t, s.UpdateDocumentStatus(ctx, org, "d-1", lease.DocSigned))
	docs, err := s.ListDocuments(ctx, org, "lease-1")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, lease.DocSigned, docs[0].Status)
	assert.Equal(t, "agreement.pdf", docs[0].DisplayName())

	require.NoError(t, s.DeleteDocument(ctx, org, "d-1"))
	docs, err = s.ListDocuments(ctx, org, "lease-1")
	require.NoError(t, err)
	assert.Empty(t, docs)
}
