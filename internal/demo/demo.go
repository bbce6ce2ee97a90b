// Package demo provides the fixture workspace shown to visitors exploring
// without an account. The snapshot is internally consistent: every id the
// demo project references exists in the companion fixture lists.
package demo

import (
	"fmt"
	"time"

	"github.com/tekguyz/myplace/internal/model"
	"github.com/tekguyz/myplace/internal/store"
)

const day = 24 * time.Hour

// A short, silent WAV so the play button works in the demo.
const silentWAV = "data:audio/wav;base64,UklGRiQAAABXQVZFZm10IBAAAAABAAEARKwAAIhYAQACABAAZGF0YQAAAAA="

// Notes returns the demo notes, with due dates relative to now.
func Notes(now time.Time) []model.Note {
	return []model.Note{
		{
			ID:    "demo-note-1",
			Title: "Project Phoenix Kick-off",
			Content: "Initial meeting notes for Project Phoenix. Key discussion points:\n" +
				"- Define Q3 goals.\n- Finalize budget allocation.\n- Assign team leads for frontend and backend.",
			DueDate:   now.Add(3 * day).Format(time.RFC3339),
			CreatedAt: now.Add(-2 * day).UnixMilli(),
		},
		{
			ID:        "demo-note-2",
			Title:     "Marketing Slogans Brainstorm",
			Content:   "- My Place: Your Second Brain.\n- All your work, in one place.\n- Productivity, Simplified.",
			CreatedAt: now.Add(-5 * day).UnixMilli(),
		},
		{
			ID:    "demo-note-3",
			Title: "Weekly Sync Summary",
			Content: "Team sync highlights: UI components are 80% complete. API integration is next on the list. " +
				"Blocked by design approval for the new dashboard layout.",
			CreatedAt: now.Add(-1 * day).UnixMilli(),
		},
	}
}

// Tasks returns the demo kanban board.
func Tasks() []model.Task {
	return []model.Task{
		{ID: "demo-task-1", Content: "Design the new dashboard layout", Status: model.StatusDone},
		{ID: "demo-task-2", Content: "Develop authentication flow", Status: model.StatusDone},
		{ID: "demo-task-3", Content: "Build the note-taking component", Status: model.StatusInProgress},
		{ID: "demo-task-4", Content: "Integrate Gemini API for summarization", Status: model.StatusInProgress},
		{ID: "demo-task-5", Content: "Set up CI/CD pipeline", Status: model.StatusToDo},
		{ID: "demo-task-6", Content: "Write end-to-end tests for the Kanban board", Status: model.StatusToDo},
	}
}

// Recordings returns the demo voice memos.
func Recordings(now time.Time) []model.Recording {
	return []model.Recording{
		{
			ID:       "demo-rec-1",
			Name:     "Voice Memo on New Feature Idea",
			AudioURL: silentWAV,
			Transcript: "Okay, here is a quick thought for the next sprint: what if we add a project management " +
				"layer on top of everything? We could link notes, tasks, and even these recordings to a specific " +
				"project. This would be a game-changer for organization.",
			CreatedAt: now.Add(-4 * day).UnixMilli(),
		},
	}
}

// Projects returns the demo project grouping every other fixture.
func Projects(now time.Time) []model.Project {
	return []model.Project{
		{
			ID:   "demo-proj-1",
			Name: "Q3 Product Launch",
			Description: "All activities related to the main product launch in Q3. This includes development, " +
				"marketing, and final testing.",
			NoteIDs:      []string{"demo-note-1", "demo-note-2", "demo-note-3"},
			TaskIDs:      []string{"demo-task-1", "demo-task-2", "demo-task-3", "demo-task-4", "demo-task-5", "demo-task-6"},
			RecordingIDs: []string{"demo-rec-1"},
			CreatedAt:    now.Add(-10 * day).UnixMilli(),
		},
	}
}

// Seed writes the full fixture snapshot into the four domain collections,
// replacing whatever was stored before.
func Seed(s *store.Store, now time.Time) error {
	if err := store.Put(s, store.KeyNotes, Notes(now)); err != nil {
		return fmt.Errorf("seeding notes: %w", err)
	}
	if err := store.Put(s, store.KeyTasks, Tasks()); err != nil {
		return fmt.Errorf("seeding tasks: %w", err)
	}
	if err := store.Put(s, store.KeyRecordings, Recordings(now)); err != nil {
		return fmt.Errorf("seeding recordings: %w", err)
	}
	if err := store.Put(s, store.KeyProjects, Projects(now)); err != nil {
		return fmt.Errorf("seeding projects: %w", err)
	}
	return nil
}
