// Package trajectory reads the append-only JSON-Lines event logs written by
// the editor hooks and assembles them into per-category sequences.
package trajectory

// Entry is one event from a trajectory log. The four categories share the
// same wire shape; which variant fields are populated depends on the file
// the line came from.
type Entry struct {
	ConversationID string   `json:"conversation_id"`
	GenerationID   string   `json:"generation_id"`
	Model          string   `json:"model,omitempty"`
	HookEventName  string   `json:"hook_event_name,omitempty"`
	CursorVersion  string   `json:"cursor_version,omitempty"`
	WorkspaceRoots []string `json:"workspace_roots,omitempty"`
	UserEmail      string   `json:"user_email,omitempty"`

	// MCP tool call fields.
	ToolName   string `json:"tool_name,omitempty"`
	ToolInput  string `json:"tool_input,omitempty"` // JSON-encoded payload
	ResultJSON string `json:"result_json,omitempty"`

	// Shell command fields.
	Command  string  `json:"command,omitempty"`
	Output   string  `json:"output,omitempty"`
	Duration float64 `json:"duration,omitempty"` // milliseconds
	Sandbox  *bool   `json:"sandbox,omitempty"`

	// File edit fields.
	FilePath string `json:"file_path,omitempty"`
	Edits    []Edit `json:"edits,omitempty"`

	// Response fields.
	Text string `json:"text,omitempty"`
}

// Edit is a single old-string/new-string replacement within an edit event.
type Edit struct {
	OldString string `json:"old_string"`
	NewString string `json:"new_string"`
}

// Valid reports whether the entry carries the minimum required identity
// fields. Lines that fail this check are dropped by the reader.
func (e *Entry) Valid() bool {
	return e.ConversationID != "" && e.GenerationID != ""
}

// AllTrajectories holds the parsed contents of the four category files, each
// in file order (chronological within a session, since writers append-only).
type AllTrajectories struct {
	Mcp      []Entry
	Shell    []Entry
	Edit     []Entry
	Response []Entry
}

// Category names the four trajectory log categories.
type Category string

const (
	CategoryMcp      Category = "mcp"
	CategoryShell    Category = "shell"
	CategoryEdit     Category = "edit"
	CategoryResponse Category = "response"
)

// Categories lists all categories in their canonical order.
var Categories = []Category{CategoryMcp, CategoryShell, CategoryEdit, CategoryResponse}

// FileName returns the log file name for a category, e.g. "mcp_trajectory.jsonl".
func (c Category) FileName() string {
	return string(c) + "_trajectory.jsonl"
}
