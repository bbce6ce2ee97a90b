// Package model defines the My Place domain entities. They are plain
// JSON-serializable records; field names match the persisted-state layout
// so data written by earlier versions of the app keeps loading.
package model

import (
	"time"

	"github.com/google/uuid"
)

// KanbanStatus is the board column a task lives in.
type KanbanStatus string

const (
	StatusToDo       KanbanStatus = "To Do"
	StatusInProgress KanbanStatus = "In Progress"
	StatusDone       KanbanStatus = "Done"
)

// KanbanStatuses lists the board columns in display order.
var KanbanStatuses = []KanbanStatus{StatusToDo, StatusInProgress, StatusDone}

// Valid reports whether s is a known board column.
func (s KanbanStatus) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Theme is the user's light/dark preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// AccentColor is the single color choice the palette is derived from.
type AccentColor string

const (
	AccentDefault AccentColor = "Default"
	AccentBlue    AccentColor = "Blue"
	AccentGreen   AccentColor = "Green"
	AccentYellow  AccentColor = "Yellow"
	AccentPink    AccentColor = "Pink"
	AccentOrange  AccentColor = "Orange"
)

// Page names the application views.
type Page string

const (
	PageDashboard       Page = "Dashboard"
	PageNotes           Page = "Notes"
	PageVoiceRecorder   Page = "Voice Recorder"
	PageKanban          Page = "Kanban Board"
	PageDocumentation   Page = "Documentation"
	PageCalendar        Page = "Calendar"
	PageSettings        Page = "Settings"
	PagePersonalization Page = "Personalization"
)

// User is the current session principal. IsGuest marks a feature-limited
// visitor browsing the demo workspace.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsGuest bool   `json:"isGuest"`
}

// Note is a free-form text note. DueDate, when set, is an ISO-8601 string;
// CreatedAt is epoch milliseconds.
type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	DueDate   string `json:"dueDate,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// Task is a kanban card.
type Task struct {
	ID      string       `json:"id"`
	Content string       `json:"content"`
	Status  KanbanStatus `json:"status"`
}

// Recording is a captured voice memo. AudioURL is an opaque reference
// (typically a data URL); the transcript is filled in by a one-shot AI call.
type Recording struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AudioURL   string `json:"audioUrl"`
	Transcript string `json:"transcript,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
}

// Project groups notes, tasks and recordings by id. The id lists are weak,
// non-owning references: a listed entity may have been deleted, and lookups
// must treat a miss as absent rather than fail.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	NoteIDs      []string `json:"noteIds"`
	TaskIDs      []string `json:"taskIds"`
	RecordingIDs []string `json:"recordingIds"`
	CreatedAt    int64    `json:"createdAt"`
}

// NewID returns a collision-resistant entity id with a readable prefix,
// e.g. "note-1b4e28ba-2fa1-11d2-883f-0016d3cca427".
func NewID(prefix string) string {
	return prefix + "-" + uuid.New().String()
}

// NowMillis returns the current time as epoch milliseconds, the unit
// CreatedAt fields are stored in.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
