package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ScheduledTask is the structured result of parsing a natural-language
// scheduling prompt.
type ScheduledTask struct {
	Task    string `json:"task"`
	DueDate string `json:"dueDate"` // YYYY-MM-DDTHH:mm
}

// Summarize condenses text into a few key points. Without an API key it
// returns DisabledMessage and no error.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if !c.Enabled() {
		return DisabledMessage, nil
	}

	prompt := fmt.Sprintf("Summarize the following text in a few key points:\n\n---\n%s", text)
	out, err := c.generate(ctx, prompt, nil)
	if err != nil {
		return "", fmt.Errorf("summarizing: %w", err)
	}
	return out, nil
}

// ScheduleTask parses free-form text into a task description and due date.
// Without an API key it returns ErrDisabled.
func (c *Client) ScheduleTask(ctx context.Context, prompt string) (*ScheduledTask, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	full := fmt.Sprintf("Parse the following text and extract a concise task description and a due date. "+
		"The due date must be in YYYY-MM-DDTHH:mm format. If no specific time is mentioned, default to 12:00. "+
		"If no date is mentioned, use today's date. Text: %q", prompt)

	schema := &Schema{
		Type: "object",
		Properties: map[string]SchemaProperty{
			"task":    {Type: "string", Description: "The description of the task."},
			"dueDate": {Type: "string", Description: "The due date in YYYY-MM-DDTHH:mm format."},
		},
		Required: []string{"task", "dueDate"},
	}

	out, err := c.generate(ctx, full, schema)
	if err != nil {
		return nil, fmt.Errorf("scheduling: %w", err)
	}

	var st ScheduledTask
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &st); err != nil {
		return nil, fmt.Errorf("parsing scheduler response: %w", err)
	}
	if st.Task == "" {
		return nil, fmt.Errorf("scheduler returned no task")
	}
	return &st, nil
}

// placeholderTranscript stands in until the API supports audio transcription.
const placeholderTranscript = "Audio transcription feature is not yet available with this model. " +
	"This is a placeholder transcript showing a user's voice note about planning a new project and " +
	"outlining the first few steps."

// Transcribe produces a transcript for the given audio reference. The
// Gemini API does not support audio transcription through this surface yet,
// so this returns a canned transcript after a short delay.
func (c *Client) Transcribe(ctx context.Context, audioRef string) (string, error) {
	if !c.Enabled() {
		return "AI features are disabled.", nil
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(1500 * time.Millisecond):
	}
	return placeholderTranscript, nil
}

// GenerateDocumentation produces a markdown document of the requested type
// from a project's aggregated notes, tasks and transcripts.
func (c *Client) GenerateDocumentation(ctx context.Context, projectName, material, docType string) (string, error) {
	if !c.Enabled() {
		return DisabledMessage, nil
	}

	prompt := fmt.Sprintf("You are a technical writer. Using the project material below, write a %s for the "+
		"project %q in well-structured markdown. Be concise and factual; do not invent details.\n\n---\n%s",
		docType, projectName, material)
	out, err := c.generate(ctx, prompt, nil)
	if err != nil {
		return "", fmt.Errorf("generating documentation: %w", err)
	}
	return out, nil
}
