package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tekguyz/myplace/internal/config"
)

// --- auth ---

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the workspace session",
}

var authGoogleCmd = &cobra.Command{
	Use:   "google",
	Short: "Sign in with the Google account",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/auth/google", nil)
		if err != nil {
			return err
		}

		var result struct {
			State string `json:"state"`
			User  struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"user"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Signed in as %s <%s>", result.User.Name, result.User.Email)
		return nil
	},
}

var authSignupCmd = &cobra.Command{
	Use:   "signup <name> <email>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/auth/signup", map[string]string{
			"name":  args[0],
			"email": args[1],
		})
		if err != nil {
			return err
		}

		var result struct {
			User struct {
				Name string `json:"name"`
			} `json:"user"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Account created for %s", result.User.Name)
		return nil
	},
}

var authSigninCmd = &cobra.Command{
	Use:   "signin <email>",
	Short: "Sign in with an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/auth/signin", map[string]string{
			"email": args[0],
		})
		if err != nil {
			return err
		}

		var result struct {
			User struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"user"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printSuccess("Signed in as %s <%s>", result.User.Name, result.User.Email)
		return nil
	},
}

var authSignoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Sign out and clear workspace data",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/auth/signout", nil)
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, nil); err != nil {
			return err
		}

		printSuccess("Signed out")
		return nil
	},
}

var authDemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Start a guest session with demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/auth/demo", nil)
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, nil); err != nil {
			return err
		}

		printSuccess("Demo workspace loaded")
		return nil
	},
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/auth/me")
		if err != nil {
			return err
		}

		var result struct {
			State string `json:"state"`
			User  *struct {
				Name    string `json:"name"`
				Email   string `json:"email"`
				IsGuest bool   `json:"isGuest"`
			} `json:"user"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		printStatus("State", "%s", result.State)
		if result.User != nil {
			printStatus("Name", "%s", result.User.Name)
			printStatus("Email", "%s", result.User.Email)
			if result.User.IsGuest {
				printStatus("Guest", "yes")
			}
		}
		return nil
	},
}

func init() {
	authCmd.AddCommand(authGoogleCmd)
	authCmd.AddCommand(authSignupCmd)
	authCmd.AddCommand(authSigninCmd)
	authCmd.AddCommand(authSignoutCmd)
	authCmd.AddCommand(authDemoCmd)
	authCmd.AddCommand(authWhoamiCmd)
}

// --- notes ---

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage notes",
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/notes")
		if err != nil {
			return err
		}

		var notes []struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			Content   string `json:"content"`
			DueDate   string `json:"dueDate"`
			CreatedAt int64  `json:"createdAt"`
		}
		if err := decodeJSON(resp, &notes); err != nil {
			return err
		}

		if len(notes) == 0 {
			fmt.Println("No notes found.")
			return nil
		}

		for _, n := range notes {
			created := time.UnixMilli(n.CreatedAt).Format("2006-01-02 15:04")
			fmt.Printf("%s  %s  %s\n", colorize(colorCyan, n.ID), created, colorize(colorBold, n.Title))
			if n.DueDate != "" {
				fmt.Printf("  Due: %s\n", n.DueDate)
			}
			content := n.Content
			if len(content) > 120 {
				content = content[:120] + "..."
			}
			if content != "" {
				fmt.Printf("  %s\n", content)
			}
		}
		return nil
	},
}

var notesAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, _ := cmd.Flags().GetString("content")
		due, _ := cmd.Flags().GetString("due")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/notes", map[string]string{
			"title":   args[0],
			"content": content,
			"dueDate": due,
		})
		if err != nil {
			return err
		}

		var note struct {
			ID string `json:"id"`
		}
		if err := decodeJSON(resp, &note); err != nil {
			return err
		}

		printSuccess("Created note %s", note.ID)
		return nil
	},
}

var notesImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a note from a PDF, a URL or a text file",
	Long: `Import external content as a note.

Examples:
  myplace notes import --url https://example.com/article
  myplace notes import --pdf ./paper.pdf --title "Research paper"
  myplace notes import --file ./meeting.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		pdfPath, _ := cmd.Flags().GetString("pdf")
		filePath, _ := cmd.Flags().GetString("file")
		title, _ := cmd.Flags().GetString("title")

		if url == "" && pdfPath == "" && filePath == "" {
			return fmt.Errorf("one of --url, --pdf, or --file is required")
		}

		req := map[string]string{"title": title}
		switch {
		case url != "":
			req["type"] = "url"
			req["url"] = url
		case pdfPath != "":
			data, err := os.ReadFile(pdfPath)
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}
			req["type"] = "pdf"
			req["content"] = base64.StdEncoding.EncodeToString(data)
			if title == "" {
				req["title"] = pdfPath
			}
		case filePath != "":
			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}
			req["type"] = "text"
			req["content"] = string(data)
			if title == "" {
				req["title"] = filePath
			}
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/notes/import", req)
		if err != nil {
			return err
		}

		var note struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		}
		if err := decodeJSON(resp, &note); err != nil {
			return err
		}

		printSuccess("Imported %q as note %s", note.Title, note.ID)
		return nil
	},
}

var notesSummarizeCmd = &cobra.Command{
	Use:   "summarize <id>",
	Short: "Summarize a note with AI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/notes/"+args[0]+"/summarize", nil)
		if err != nil {
			return err
		}

		var result struct {
			Summary string `json:"summary"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		fmt.Println(result.Summary)
		return nil
	},
}

var notesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), "/notes/"+args[0])
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, nil); err != nil {
			return err
		}

		printSuccess("Deleted note %s", args[0])
		return nil
	},
}

func init() {
	notesAddCmd.Flags().String("content", "", "note body")
	notesAddCmd.Flags().String("due", "", "due date (RFC 3339 or YYYY-MM-DDTHH:MM)")
	notesImportCmd.Flags().String("url", "", "URL to fetch and import")
	notesImportCmd.Flags().String("pdf", "", "PDF file to import")
	notesImportCmd.Flags().String("file", "", "text file to import")
	notesImportCmd.Flags().String("title", "", "title for the note")
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesImportCmd)
	notesCmd.AddCommand(notesSummarizeCmd)
	notesCmd.AddCommand(notesDeleteCmd)
}

// --- tasks ---

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage the kanban board",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks grouped by column",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/tasks")
		if err != nil {
			return err
		}

		var tasks []struct {
			ID      string `json:"id"`
			Content string `json:"content"`
			Status  string `json:"status"`
		}
		if err := decodeJSON(resp, &tasks); err != nil {
			return err
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		for _, column := range []string{"To Do", "In Progress", "Done"} {
			fmt.Printf("\n%s\n", colorize(colorBold, column))
			for _, t := range tasks {
				if t.Status != column {
					continue
				}
				fmt.Printf("  %s  %s\n", colorize(colorCyan, t.ID), t.Content)
			}
		}
		return nil
	},
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Add a task to the To Do column",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/tasks", map[string]string{
			"content": strings.Join(args, " "),
		})
		if err != nil {
			return err
		}

		var task struct {
			ID string `json:"id"`
		}
		if err := decodeJSON(resp, &task); err != nil {
			return err
		}

		printSuccess("Added task %s", task.ID)
		return nil
	},
}

var tasksMoveCmd = &cobra.Command{
	Use:   "move <id> <status>",
	Short: `Move a task to a column ("To Do", "In Progress", "Done")`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/tasks/"+args[0]+"/move", map[string]string{
			"status": args[1],
		})
		if err != nil {
			return err
		}

		var task struct {
			Status string `json:"status"`
		}
		if err := decodeJSON(resp, &task); err != nil {
			return err
		}

		printSuccess("Moved task %s to %s", args[0], task.Status)
		return nil
	},
}

var tasksScheduleCmd = &cobra.Command{
	Use:   "schedule <prompt>",
	Short: "Create a task from natural language using AI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/tasks/schedule", map[string]string{
			"prompt": strings.Join(args, " "),
		})
		if err != nil {
			return err
		}

		var result struct {
			Message string `json:"message"`
			Task    *struct {
				ID      string `json:"id"`
				Content string `json:"content"`
			} `json:"task"`
			DueDate string `json:"dueDate"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		if result.Task == nil {
			printWarning("%s", result.Message)
			return nil
		}
		printSuccess("Scheduled %q (task %s)", result.Task.Content, result.Task.ID)
		if result.DueDate != "" {
			printStatus("Due", "%s", result.DueDate)
		}
		return nil
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.delete(cmd.Context(), "/tasks/"+args[0])
		if err != nil {
			return err
		}
		if err := decodeJSON(resp, nil); err != nil {
			return err
		}

		printSuccess("Deleted task %s", args[0])
		return nil
	},
}

func init() {
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksAddCmd)
	tasksCmd.AddCommand(tasksMoveCmd)
	tasksCmd.AddCommand(tasksScheduleCmd)
	tasksCmd.AddCommand(tasksDeleteCmd)
}

// --- projects ---

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/projects")
		if err != nil {
			return err
		}

		var projects []struct {
			ID           string   `json:"id"`
			Name         string   `json:"name"`
			Description  string   `json:"description"`
			NoteIDs      []string `json:"noteIds"`
			TaskIDs      []string `json:"taskIds"`
			RecordingIDs []string `json:"recordingIds"`
		}
		if err := decodeJSON(resp, &projects); err != nil {
			return err
		}

		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return nil
		}

		for _, p := range projects {
			fmt.Printf("%s  %s\n", colorize(colorCyan, p.ID), colorize(colorBold, p.Name))
			if p.Description != "" {
				fmt.Printf("  %s\n", p.Description)
			}
			fmt.Printf("  %d notes, %d tasks, %d recordings\n",
				len(p.NoteIDs), len(p.TaskIDs), len(p.RecordingIDs))
		}
		return nil
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project with its items resolved",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.get(cmd.Context(), "/projects/"+args[0]+"/resolved")
		if err != nil {
			return err
		}

		var resolved any
		if err := decodeJSON(resp, &resolved); err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resolved)
	},
}

var projectsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description, _ := cmd.Flags().GetString("description")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/projects", map[string]string{
			"name":        args[0],
			"description": description,
		})
		if err != nil {
			return err
		}

		var project struct {
			ID string `json:"id"`
		}
		if err := decodeJSON(resp, &project); err != nil {
			return err
		}

		printSuccess("Created project %s", project.ID)
		return nil
	},
}

var projectsDocsCmd = &cobra.Command{
	Use:   "docs <id>",
	Short: "Generate project documentation with AI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docType, _ := cmd.Flags().GetString("type")

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		resp, err := client.post(cmd.Context(), "/projects/"+args[0]+"/docs", map[string]string{
			"docType": docType,
		})
		if err != nil {
			return err
		}

		var result struct {
			Message string `json:"message"`
			Note    *struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"note"`
		}
		if err := decodeJSON(resp, &result); err != nil {
			return err
		}

		if result.Note == nil {
			printWarning("%s", result.Message)
			return nil
		}
		printSuccess("Saved %q as note %s", result.Note.Title, result.Note.ID)
		return nil
	},
}

func init() {
	projectsAddCmd.Flags().String("description", "", "project description")
	projectsDocsCmd.Flags().String("type", "", `document type (default "Project Summary")`)
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsShowCmd)
	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsDocsCmd)
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or update configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		keys := config.ShowAll(cfg)
		for _, k := range keys {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		if err := config.SetKey(key, value); err != nil {
			return err
		}

		printSuccess("Set %s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
