package workspace

import (
	"sort"
	"time"

	"github.com/tekguyz/myplace/internal/model"
)

// Stats is the dashboard's headline numbers.
type Stats struct {
	TotalNotes      int `json:"totalNotes"`
	TotalTasks      int `json:"totalTasks"`
	CompletedTasks  int `json:"completedTasks"`
	TotalRecordings int `json:"totalRecordings"`
	TotalProjects   int `json:"totalProjects"`
}

// DashboardStats counts the workspace contents.
func (w *Workspace) DashboardStats() Stats {
	s := Stats{
		TotalNotes:      len(w.Notes()),
		TotalRecordings: len(w.Recordings()),
		TotalProjects:   len(w.Projects()),
	}
	for _, t := range w.Tasks() {
		s.TotalTasks++
		if t.Status == model.StatusDone {
			s.CompletedTasks++
		}
	}
	return s
}

// UpcomingNotes returns up to five notes due after now, soonest first.
// Notes with malformed due dates are skipped.
func (w *Workspace) UpcomingNotes(now time.Time) []model.Note {
	type dated struct {
		note model.Note
		due  time.Time
	}

	var upcoming []dated
	for _, n := range w.Notes() {
		if n.DueDate == "" {
			continue
		}
		due, err := parseDueDate(n.DueDate)
		if err != nil || !due.After(now) {
			continue
		}
		upcoming = append(upcoming, dated{note: n, due: due})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].due.Before(upcoming[j].due)
	})

	notes := make([]model.Note, 0, 5)
	for i := 0; i < len(upcoming) && i < 5; i++ {
		notes = append(notes, upcoming[i].note)
	}
	return notes
}

// RecentNotes returns up to five notes by creation time, newest first.
func (w *Workspace) RecentNotes() []model.Note {
	notes := append([]model.Note(nil), w.Notes()...)
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt > notes[j].CreatedAt
	})
	if len(notes) > 5 {
		notes = notes[:5]
	}
	return notes
}

// parseDueDate accepts the formats due dates get written in: full RFC 3339
// and the scheduler's minute-precision "2006-01-02T15:04".
func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04", s, time.Local)
}
