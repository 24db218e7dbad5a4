package api

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propease/lease-engine/calendar"
	"github.com/propease/lease-engine/engine"
	"github.com/propease/lease-engine/filestore"
	"github.com/propease/lease-engine/lease"
	"github.com/propease/lease-engine/store/memory"
)

func TestOverdueSweep(t *testing.T) {
	today := calendar.NewDate(2024, time.August, 15)
	eng := engine.New(memory.New(), filestore.NewMemory(),
		engine.WithClock(func() calendar.Date { return today }))

	org := engine.OrgContext{OrganizationID: "org-1", ActorID: "user-1"}
	end := calendar.NewDate(2025, time.May, 31)
	out, err := eng.CreateLease(context.Background(), org, lease.LeaseInput{
		UnitID:     "unit-1",
		TenantID:   "tenant-1",
		TermKind:   lease.TermFixed,
		StartDate:  calendar.NewDate(2024, time.June, 1),
		EndDate:    &end,
		RentAmount: decimal.NewFromInt(1500),
		Frequency:  lease.Monthly,
		PaymentDay: 1,
		Documents: []lease.DocumentUpload{
			{FileName: "agreement.pdf", Content: []byte("pdf")},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Periods, 12)

	sch := NewOverdueScheduler(eng)
	sch.RunNow()

	// June, July and August due dates have passed unpaid.
	periods, _, err := eng.Periods(context.Background(), org, out.Lease.ID)
	require.NoError(t, err)

	overdue := 0
	for _, p := range periods {
		if p.Status == lease.PaymentOverdue {
			overdue++
			assert.True(t, p.DueDate.Before(today))
		}
	}
	assert.Equal(t, 3, overdue)

	// The lease itself is flagged too.
	view, err := eng.GetLeaseView(context.Background(), org, out.Lease.ID)
	require.NoError(t, err)
	assert.Equal(t, lease.PaymentOverdue, view.Lease.RentPaymentStatus)
}

func TestOverdueSweepHonorsGraceDays(t *testing.T) {
	today := calendar.NewDate(2024, time.June, 4)
	eng := engine.New(memory.New(), filestore.NewMemory(),
		engine.WithClock(func() calendar.Date { return today }))

	org := engine.OrgContext{OrganizationID: "org-1", ActorID: "user-1"}
	end := calendar.NewDate(2025, time.May, 31)
	out, err := eng.CreateLease(context.Background(), org, lease.LeaseInput{
		UnitID:      "unit-1",
		TenantID:    "tenant-1",
		TermKind:    lease.TermFixed,
		StartDate:   calendar.NewDate(2024, time.June, 1),
		EndDate:     &end,
		RentAmount:  decimal.NewFromInt(1500),
		Frequency:   lease.Monthly,
		PaymentDay:  1,
		LateFeeDays: 5,
		Documents: []lease.DocumentUpload{
			{FileName: "agreement.pdf", Content: []byte("pdf")},
		},
	})
	require.NoError(t, err)

	// Due June 1 with 5 grace days: June 4 is still inside the window.
	flagged, err := eng.SweepOverdue(context.Background(), org)
	require.NoError(t, err)
	assert.Zero(t, flagged)

	periods, _, err := eng.Periods(context.Background(), org, out.Lease.ID)
	require.NoError(t, err)
	for _, p := range periods {
		assert.NotEqual(t, lease.PaymentOverdue, p.Status)
	}
}
