package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tekguyz/myplace/internal/model"
	"github.com/tekguyz/myplace/internal/workspace"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Workspace *workspace.Workspace
}

// NewMCPServer creates an MCP server exposing the workspace to agent
// clients over stdio.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"myplace",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("My Place: a local workspace with notes, a kanban board, voice recordings and projects."),
		server.WithRecovery(),
	)

	// Tools
	s.AddTool(
		mcp.NewTool("add_note",
			mcp.WithDescription("Create a note in the workspace."),
			mcp.WithString("title", mcp.Description("Note title"), mcp.Required()),
			mcp.WithString("content", mcp.Description("Note body"), mcp.Required()),
			mcp.WithString("due_date", mcp.Description("Optional due date, RFC 3339")),
		),
		mcpAddNote(deps),
	)

	s.AddTool(
		mcp.NewTool("list_notes",
			mcp.WithDescription("List all notes, newest first."),
		),
		mcpListNotes(deps),
	)

	s.AddTool(
		mcp.NewTool("summarize_note",
			mcp.WithDescription("Summarize a note's content in a few key points."),
			mcp.WithString("id", mcp.Description("Note id"), mcp.Required()),
		),
		mcpSummarizeNote(deps),
	)

	s.AddTool(
		mcp.NewTool("add_task",
			mcp.WithDescription("Add a task to the kanban board's To Do column."),
			mcp.WithString("content", mcp.Description("Task description"), mcp.Required()),
		),
		mcpAddTask(deps),
	)

	s.AddTool(
		mcp.NewTool("move_task",
			mcp.WithDescription("Move a task to a new kanban column."),
			mcp.WithString("id", mcp.Description("Task id"), mcp.Required()),
			mcp.WithString("status", mcp.Description(`New column: "To Do", "In Progress" or "Done"`), mcp.Required()),
		),
		mcpMoveTask(deps),
	)

	s.AddTool(
		mcp.NewTool("schedule_task",
			mcp.WithDescription("Parse a natural-language prompt into a task and add it to the board."),
			mcp.WithString("prompt", mcp.Description("Free-form scheduling request, e.g. \"review the launch plan next Tuesday\""), mcp.Required()),
		),
		mcpScheduleTask(deps),
	)

	s.AddTool(
		mcp.NewTool("project_overview",
			mcp.WithDescription("Return a project with the notes, tasks and recordings it references."),
			mcp.WithString("id", mcp.Description("Project id"), mcp.Required()),
		),
		mcpProjectOverview(deps),
	)

	// Resources
	s.AddResource(
		mcp.NewResource(
			"workspace://dashboard",
			"Workspace Dashboard",
			mcp.WithResourceDescription("Headline counts and upcoming notes as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceDashboard(deps),
	)

	return s
}

func mcpAddNote(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := req.RequireString("title")
		if err != nil {
			return mcpError("title is required"), nil
		}
		content, err := req.RequireString("content")
		if err != nil {
			return mcpError("content is required"), nil
		}
		dueDate := req.GetString("due_date", "")

		n, err := deps.Workspace.CreateNote(title, content, dueDate)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to save note: %v", err)), nil
		}
		return mcpText(fmt.Sprintf("Created note %s", n.ID)), nil
	}
}

func mcpListNotes(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		b, err := json.Marshal(deps.Workspace.Notes())
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal notes: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpSummarizeNote(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}

		summary, err := deps.Workspace.SummarizeNote(ctx, id)
		if err != nil {
			return mcpError(fmt.Sprintf("summarization failed: %v", err)), nil
		}
		return mcpText(summary), nil
	}
}

func mcpAddTask(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := req.RequireString("content")
		if err != nil {
			return mcpError("content is required"), nil
		}

		t, err := deps.Workspace.AddTask(content)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to save task: %v", err)), nil
		}
		return mcpText(fmt.Sprintf("Added task %s to %q", t.ID, t.Status)), nil
	}
}

func mcpMoveTask(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}
		status, err := req.RequireString("status")
		if err != nil {
			return mcpError("status is required"), nil
		}

		t, err := deps.Workspace.MoveTask(id, model.KanbanStatus(status))
		if err != nil {
			return mcpError(fmt.Sprintf("failed to move task: %v", err)), nil
		}
		return mcpText(fmt.Sprintf("Moved task %s to %q", t.ID, t.Status)), nil
	}
}

func mcpScheduleTask(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		prompt, err := req.RequireString("prompt")
		if err != nil {
			return mcpError("prompt is required"), nil
		}

		parsed, t, err := deps.Workspace.ScheduleTaskWithAI(ctx, prompt)
		if err != nil {
			return mcpError(fmt.Sprintf("scheduling failed: %v", err)), nil
		}
		return mcpText(fmt.Sprintf("Scheduled task %s (%s), due %s", t.ID, parsed.Task, parsed.DueDate)), nil
	}
}

func mcpProjectOverview(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpError("id is required"), nil
		}

		p, items, err := deps.Workspace.ResolveProject(id)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to resolve project: %v", err)), nil
		}

		b, err := json.Marshal(map[string]any{"project": p, "items": items})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal project: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpResourceDashboard(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(map[string]any{
			"stats":         deps.Workspace.DashboardStats(),
			"upcomingNotes": deps.Workspace.UpcomingNotes(time.Now()),
			"recentNotes":   deps.Workspace.RecentNotes(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal dashboard: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
