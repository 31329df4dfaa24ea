package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func seed(t *testing.T, s *Store, tenantID string) (domain.Project, domain.Unit, domain.Lead) {
	t.Helper()
	ctx := context.Background()
	project := domain.Project{ProjectID: tenantID + "-p", TenantID: tenantID, Name: "Greenwood", AuditFields: domain.NewAuditFields("u", t0)}
	unit := domain.Unit{UnitID: tenantID + "-u", TenantID: tenantID, ProjectID: project.ProjectID, UnitNumber: "A-101", Status: domain.UnitAvailable}
	lead := domain.Lead{LeadID: tenantID + "-l", TenantID: tenantID, Name: "Asha", Status: domain.LeadNew, AuditFields: domain.NewAuditFields("u", t0)}
	require.NoError(t, s.SaveProject(ctx, project))
	require.NoError(t, s.SaveUnit(ctx, unit))
	require.NoError(t, s.SaveLead(ctx, lead))
	return project, unit, lead
}

func TestStore_TenantIsolation(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	projectA, unitA, leadA := seed(t, s, "A")
	seed(t, s, "B")

	_, err := s.FindProjectByID(ctx, "B", projectA.ProjectID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = s.FindUnitByID(ctx, "B", unitA.UnitID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = s.FindLeadByID(ctx, "B", leadA.LeadID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, s.MarkUnitSold(ctx, "B", unitA.UnitID, "u", t0), apperrors.ErrNotFound)
	assert.ErrorIs(t, s.UpdateLeadStatus(ctx, "B", leadA.LeadID, domain.LeadLost, "u", t0), apperrors.ErrNotFound)

	projects, err := s.ListProjects(ctx, "B")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "B", projects[0].TenantID)

	ledger, err := s.LoadLedger(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, ledger.Projects, 1)
	assert.Len(t, ledger.Units, 1)
	assert.Len(t, ledger.Leads, 1)
	assert.Equal(t, "A", ledger.Units[0].TenantID)
}

func TestStore_UnitNumberUniquePerProject(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	project, _, _ := seed(t, s, "A")

	dup := domain.Unit{UnitID: "dup", TenantID: "A", ProjectID: project.ProjectID, UnitNumber: "A-101", Status: domain.UnitAvailable}
	assert.ErrorIs(t, s.SaveUnit(ctx, dup), apperrors.ErrConflict)

	other := domain.Project{ProjectID: "p2", TenantID: "A", AuditFields: domain.NewAuditFields("u", t0)}
	require.NoError(t, s.SaveProject(ctx, other))
	dup.ProjectID = other.ProjectID
	assert.NoError(t, s.SaveUnit(ctx, dup), "same number in a different project is allowed")
}

func TestStore_UnitStatusCompareAndSet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, unit, _ := seed(t, s, "A")

	held, err := s.SetUnitStatus(ctx, "A", unit.UnitID, domain.UnitHold, "u", t0)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitHold, held.Status)

	require.NoError(t, s.MarkUnitSold(ctx, "A", unit.UnitID, "u", t0))
	assert.ErrorIs(t, s.MarkUnitSold(ctx, "A", unit.UnitID, "u", t0), apperrors.ErrConflict)
	_, err = s.SetUnitStatus(ctx, "A", unit.UnitID, domain.UnitAvailable, "u", t0)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, s.ReleaseUnit(ctx, "A", unit.UnitID, "u", t0))
	assert.ErrorIs(t, s.ReleaseUnit(ctx, "A", unit.UnitID, "u", t0), apperrors.ErrConflict)

	got, err := s.FindUnitByID(ctx, "A", unit.UnitID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitAvailable, got.Status)
}

func TestStore_WithinTransactionRollsBack(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, unit, lead := seed(t, s, "A")
	boom := errors.New("boom")

	err := s.WithinTransaction(ctx, func(txCtx context.Context) error {
		require.NoError(t, s.MarkUnitSold(txCtx, "A", unit.UnitID, "u", t0))
		require.NoError(t, s.SaveBooking(txCtx, domain.Booking{BookingID: "b1", TenantID: "A", LeadID: lead.LeadID, UnitID: unit.UnitID, Status: domain.BookingBooked}))
		require.NoError(t, s.AppendLeadNote(txCtx, "A", lead.LeadID, domain.LeadNote{Note: "x", Date: t0}, "u"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.FindUnitByID(ctx, "A", unit.UnitID)
	require.NoError(t, err)
	assert.Equal(t, domain.UnitAvailable, got.Status)
	_, err = s.FindBookingByID(ctx, "A", "b1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	gotLead, err := s.FindLeadByID(ctx, "A", lead.LeadID)
	require.NoError(t, err)
	assert.Empty(t, gotLead.Notes)
}

func TestStore_OneActiveBookingPerUnit(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, unit, lead := seed(t, s, "A")

	first := domain.Booking{BookingID: "b1", TenantID: "A", LeadID: lead.LeadID, UnitID: unit.UnitID, SellingPrice: decimal.NewFromInt(10), Status: domain.BookingBooked}
	require.NoError(t, s.SaveBooking(ctx, first))

	second := first
	second.BookingID = "b2"
	assert.ErrorIs(t, s.SaveBooking(ctx, second), apperrors.ErrConflict)

	require.NoError(t, s.CancelBooking(ctx, "A", "b1", "u", t0))
	assert.ErrorIs(t, s.CancelBooking(ctx, "A", "b1", "u", t0), apperrors.ErrConflict)
	assert.NoError(t, s.SaveBooking(ctx, second), "a cancelled booking frees the unit")
}

func TestStore_ListLeadsPaginates(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveLead(ctx, domain.Lead{
			LeadID:      fmt.Sprintf("l%d", i),
			TenantID:    "A",
			AuditFields: domain.NewAuditFields("u", t0.Add(time.Duration(i/2)*time.Minute)),
		}))
	}

	var seen []string
	var token *string
	for pages := 0; pages < 5; pages++ {
		leads, next, err := s.ListLeads(ctx, "A", 2, token)
		require.NoError(t, err)
		for _, l := range leads {
			seen = append(seen, l.LeadID)
		}
		if next == nil {
			break
		}
		token = next
	}
	assert.Equal(t, []string{"l4", "l3", "l2", "l1", "l0"}, seen)

	bad := "%%%"
	_, _, err := s.ListLeads(ctx, "A", 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStore_FollowupCandidates(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	past, future := t0.Add(-time.Hour), t0.Add(48*time.Hour)
	require.NoError(t, s.SaveLead(ctx, domain.Lead{LeadID: "due", TenantID: "A", Status: domain.LeadFollowUp, FollowUpDate: &past}))
	require.NoError(t, s.SaveLead(ctx, domain.Lead{LeadID: "lost", TenantID: "A", Status: domain.LeadLost, FollowUpDate: &past}))
	require.NoError(t, s.SaveLead(ctx, domain.Lead{LeadID: "later", TenantID: "A", Status: domain.LeadNew, FollowUpDate: &future}))
	require.NoError(t, s.SaveLead(ctx, domain.Lead{LeadID: "none", TenantID: "A", Status: domain.LeadNew}))
	require.NoError(t, s.SaveLead(ctx, domain.Lead{LeadID: "other", TenantID: "B", Status: domain.LeadNew, FollowUpDate: &past}))

	leads, err := s.ListFollowupCandidates(ctx, "A", t0)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "due", leads[0].LeadID)
}

func TestStore_CancelledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.LoadLedger(ctx, "A")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.SaveProject(ctx, domain.Project{ProjectID: "p"}), context.Canceled)
}

func TestStore_LeadNotesAreNotAliased(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, _, lead := seed(t, s, "A")
	require.NoError(t, s.AppendLeadNote(ctx, "A", lead.LeadID, domain.LeadNote{Note: "first", Date: t0}, "u"))

	got, err := s.FindLeadByID(ctx, "A", lead.LeadID)
	require.NoError(t, err)
	got.Notes[0].Note = "mutated"

	again, err := s.FindLeadByID(ctx, "A", lead.LeadID)
	require.NoError(t, err)
	assert.Equal(t, "first", again.Notes[0].Note)
}
