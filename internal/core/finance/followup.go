package finance

import (
	"sort"
	"time"

	"github.com/SscSPs/builder_crm/internal/core/domain"
)

// DayWindow returns the first and last instant of now's calendar day in now's location.
func DayWindow(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end = start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}

// FollowupAlerts splits leads into those due today and those overdue as of now.
//
// Both ends of today's window are inclusive. Leads without a follow-up date,
// Lost leads and leads dated after today appear in neither list.
func FollowupAlerts(leads []domain.Lead, now time.Time) domain.FollowupAlerts {
	start, end := DayWindow(now)

	out := domain.FollowupAlerts{
		TodayFollowups:   []domain.Lead{},
		OverdueFollowups: []domain.Lead{},
	}
	for _, lead := range leads {
		if !lead.NeedsFollowUp() {
			continue
		}
		at := *lead.FollowUpDate
		switch {
		case at.Before(start):
			out.OverdueFollowups = append(out.OverdueFollowups, lead)
		case !at.After(end):
			out.TodayFollowups = append(out.TodayFollowups, lead)
		}
	}
	sortByFollowUp(out.TodayFollowups)
	sortByFollowUp(out.OverdueFollowups)
	out.TodayCount = len(out.TodayFollowups)
	out.OverdueCount = len(out.OverdueFollowups)
	return out
}

func sortByFollowUp(leads []domain.Lead) {
	sort.SliceStable(leads, func(i, j int) bool {
		a, b := leads[i], leads[j]
		if !a.FollowUpDate.Equal(*b.FollowUpDate) {
			return a.FollowUpDate.Before(*b.FollowUpDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.LeadID < b.LeadID
	})
}
