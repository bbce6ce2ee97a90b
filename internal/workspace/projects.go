package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/tekguyz/myplace/internal/model"
	"github.com/tekguyz/myplace/internal/store"
)

// ProjectItems holds the entities a project's id lists resolve to. Dangling
// references (ids whose entity was deleted) are silently skipped.
type ProjectItems struct {
	Notes      []model.Note      `json:"notes"`
	Tasks      []model.Task      `json:"tasks"`
	Recordings []model.Recording `json:"recordings"`
}

// Projects returns all projects, newest first.
func (w *Workspace) Projects() []model.Project {
	return store.Load(w.store, store.KeyProjects, []model.Project{})
}

// Project looks up a single project by id.
func (w *Workspace) Project(id string) (model.Project, error) {
	for _, p := range w.Projects() {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Project{}, store.ErrNotFound
}

// CreateProject prepends a new project with empty id lists.
func (w *Workspace) CreateProject(name, description string) (model.Project, error) {
	p := model.Project{
		ID:           model.NewID("proj"),
		Name:         name,
		Description:  description,
		NoteIDs:      []string{},
		TaskIDs:      []string{},
		RecordingIDs: []string{},
		CreatedAt:    model.NowMillis(),
	}
	projects := append([]model.Project{p}, w.Projects()...)
	return p, store.Put(w.store, store.KeyProjects, projects)
}

// DeleteProject removes a project. The referenced notes, tasks and
// recordings are left untouched: the id lists never own their targets.
func (w *Workspace) DeleteProject(id string) error {
	projects := w.Projects()
	kept := projects[:0]
	found := false
	for _, p := range projects {
		if p.ID == id {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return store.ErrNotFound
	}
	return store.Put(w.store, store.KeyProjects, kept)
}

// AssignItems replaces a project's id lists wholesale.
func (w *Workspace) AssignItems(id string, noteIDs, taskIDs, recordingIDs []string) (model.Project, error) {
	projects := w.Projects()
	for i := range projects {
		if projects[i].ID == id {
			projects[i].NoteIDs = orEmpty(noteIDs)
			projects[i].TaskIDs = orEmpty(taskIDs)
			projects[i].RecordingIDs = orEmpty(recordingIDs)
			return projects[i], store.Put(w.store, store.KeyProjects, projects)
		}
	}
	return model.Project{}, store.ErrNotFound
}

// ResolveProject looks up the entities a project references, dropping
// dangling ids.
func (w *Workspace) ResolveProject(id string) (model.Project, ProjectItems, error) {
	p, err := w.Project(id)
	if err != nil {
		return model.Project{}, ProjectItems{}, err
	}

	items := ProjectItems{
		Notes:      []model.Note{},
		Tasks:      []model.Task{},
		Recordings: []model.Recording{},
	}

	noteIDs := toSet(p.NoteIDs)
	for _, n := range w.Notes() {
		if noteIDs[n.ID] {
			items.Notes = append(items.Notes, n)
		}
	}
	taskIDs := toSet(p.TaskIDs)
	for _, t := range w.Tasks() {
		if taskIDs[t.ID] {
			items.Tasks = append(items.Tasks, t)
		}
	}
	recIDs := toSet(p.RecordingIDs)
	for _, r := range w.Recordings() {
		if recIDs[r.ID] {
			items.Recordings = append(items.Recordings, r)
		}
	}
	return p, items, nil
}

// Unassigned returns the entities no project references, the pool offered
// when assigning items to a project.
func (w *Workspace) Unassigned() ProjectItems {
	assignedNotes := map[string]bool{}
	assignedTasks := map[string]bool{}
	assignedRecs := map[string]bool{}
	for _, p := range w.Projects() {
		for _, id := range p.NoteIDs {
			assignedNotes[id] = true
		}
		for _, id := range p.TaskIDs {
			assignedTasks[id] = true
		}
		for _, id := range p.RecordingIDs {
			assignedRecs[id] = true
		}
	}

	items := ProjectItems{
		Notes:      []model.Note{},
		Tasks:      []model.Task{},
		Recordings: []model.Recording{},
	}
	for _, n := range w.Notes() {
		if !assignedNotes[n.ID] {
			items.Notes = append(items.Notes, n)
		}
	}
	for _, t := range w.Tasks() {
		if !assignedTasks[t.ID] {
			items.Tasks = append(items.Tasks, t)
		}
	}
	for _, r := range w.Recordings() {
		if !assignedRecs[r.ID] {
			items.Recordings = append(items.Recordings, r)
		}
	}
	return items
}

// GenerateProjectDocs aggregates a project's material and asks the AI
// gateway for a document of the requested type. The result is also saved as
// a new note titled "<project> - <docType>".
func (w *Workspace) GenerateProjectDocs(ctx context.Context, id, docType string) (model.Note, error) {
	p, items, err := w.ResolveProject(id)
	if err != nil {
		return model.Note{}, err
	}

	var b strings.Builder
	if len(items.Notes) > 0 {
		b.WriteString("## Notes\n")
		for _, n := range items.Notes {
			fmt.Fprintf(&b, "### %s\n%s\n\n", n.Title, n.Content)
		}
	}
	if len(items.Tasks) > 0 {
		b.WriteString("## Tasks\n")
		for _, t := range items.Tasks {
			fmt.Fprintf(&b, "- [%s] %s\n", t.Status, t.Content)
		}
		b.WriteString("\n")
	}
	if len(items.Recordings) > 0 {
		b.WriteString("## Recording transcripts\n")
		for _, r := range items.Recordings {
			if r.Transcript != "" {
				fmt.Fprintf(&b, "### %s\n%s\n\n", r.Name, r.Transcript)
			}
		}
	}

	doc, err := w.ai.GenerateDocumentation(ctx, p.Name, b.String(), docType)
	if err != nil {
		return model.Note{}, fmt.Errorf("generating docs for project %s: %w", id, err)
	}

	return w.CreateNote(fmt.Sprintf("%s - %s", p.Name, docType), doc, "")
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
