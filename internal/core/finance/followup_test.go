package finance_test

import (
	"testing"
	"time"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/SscSPs/builder_crm/internal/core/finance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leadAt(id string, status domain.LeadStatus, at *time.Time) domain.Lead {
	return domain.Lead{LeadID: id, TenantID: tenantA, Status: status, FollowUpDate: at, AuditFields: audit(0)}
}

func ptr(t time.Time) *time.Time { return &t }

func ids(leads []domain.Lead) []string {
	out := make([]string, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.LeadID)
	}
	return out
}

func TestDayWindow(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, 3, 10, 15, 4, 5, 0, loc)

	start, end := finance.DayWindow(now)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 10, 23, 59, 59, 999999999, loc), end)
}

func TestFollowupAlerts(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	start, end := finance.DayWindow(now)

	leads := []domain.Lead{
		leadAt("yesterday", domain.LeadFollowUp, ptr(now.AddDate(0, 0, -1))),
		leadAt("last-week", domain.LeadSiteVisit, ptr(now.AddDate(0, 0, -7))),
		leadAt("today-late", domain.LeadNew, ptr(end)),
		leadAt("today-early", domain.LeadFollowUp, ptr(start)),
		leadAt("tomorrow", domain.LeadFollowUp, ptr(end.Add(time.Nanosecond))),
		leadAt("just-before-today", domain.LeadFollowUp, ptr(start.Add(-time.Nanosecond))),
		leadAt("lost-today", domain.LeadLost, ptr(now)),
		leadAt("lost-overdue", domain.LeadLost, ptr(now.AddDate(0, 0, -2))),
		leadAt("no-date", domain.LeadFollowUp, nil),
	}

	got := finance.FollowupAlerts(leads, now)

	assert.Equal(t, []string{"today-early", "today-late"}, ids(got.TodayFollowups))
	assert.Equal(t, []string{"last-week", "yesterday", "just-before-today"}, ids(got.OverdueFollowups))
	assert.Equal(t, 2, got.TodayCount)
	assert.Equal(t, 3, got.OverdueCount)
}

func TestFollowupAlerts_YesterdayIsOverdueNotToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 30, 0, 0, time.UTC)
	l2 := leadAt("l2", domain.LeadFollowUp, ptr(now.AddDate(0, 0, -1)))

	got := finance.FollowupAlerts([]domain.Lead{l2}, now)
	assert.Empty(t, got.TodayFollowups)
	require.Len(t, got.OverdueFollowups, 1)
	assert.Equal(t, "l2", got.OverdueFollowups[0].LeadID)
}

func TestFollowupAlerts_UsesNowLocation(t *testing.T) {
	// 20:00 UTC on the 9th is already the 10th in IST.
	ist := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC)
	lead := leadAt("l", domain.LeadNew, &at)

	inUTC := finance.FollowupAlerts([]domain.Lead{lead}, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, inUTC.OverdueCount)

	inIST := finance.FollowupAlerts([]domain.Lead{lead}, time.Date(2026, 3, 10, 9, 0, 0, 0, ist))
	assert.Equal(t, 1, inIST.TodayCount)
}

func TestFollowupAlerts_TiesOrderedByCreationThenID(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	at := now.Add(-time.Hour)
	b := leadAt("b", domain.LeadNew, &at)
	a := leadAt("a", domain.LeadNew, &at)
	older := leadAt("z", domain.LeadNew, &at)
	older.CreatedAt = base.Add(-time.Hour)

	got := finance.FollowupAlerts([]domain.Lead{b, a, older}, now)
	assert.Equal(t, []string{"z", "a", "b"}, ids(got.TodayFollowups))
}

func TestFollowupAlerts_EmptyListsAreNotNil(t *testing.T) {
	got := finance.FollowupAlerts(nil, time.Now())
	assert.NotNil(t, got.TodayFollowups)
	assert.NotNil(t, got.OverdueFollowups)
	assert.Zero(t, got.TodayCount)
}
