// Package workspace implements the domain operations over the four
// collections: notes, tasks, recordings and projects. Every mutation is a
// whole-collection read-modify-write against the store, which is safe under
// the single-process execution model; concurrent writers are last-write-wins
// at the storage layer.
package workspace

import (
	"context"

	"github.com/tekguyz/myplace/internal/gemini"
	"github.com/tekguyz/myplace/internal/store"
)

// AIGateway is the slice of the Gemini client the workspace consumes.
type AIGateway interface {
	Summarize(ctx context.Context, text string) (string, error)
	ScheduleTask(ctx context.Context, prompt string) (*gemini.ScheduledTask, error)
	GenerateDocumentation(ctx context.Context, projectName, material, docType string) (string, error)
}

// Workspace reads and writes the domain collections.
type Workspace struct {
	store *store.Store
	ai    AIGateway
}

// New creates a Workspace. ai may be nil when AI operations are unused
// (some tests); calling an AI-backed operation with a nil gateway panics.
func New(s *store.Store, ai AIGateway) *Workspace {
	return &Workspace{store: s, ai: ai}
}
