// Package summary folds parsed trajectories into the record sent to the
// pattern-learning backend.
package summary

import (
	"github.com/ce-dot-net/acetrail/internal/gitctx"
)

// Summary is the derived, immutable snapshot of one session's trajectory.
// Optional fields are omitted entirely when empty rather than serialized as
// empty containers; consumers rely on absence meaning "nothing recorded".
//
// Field naming is part of the wire contract with the backend; the mixed
// camelCase/snake_case is deliberate.
type Summary struct {
	McpCount      int    `json:"mcpCount"`
	ShellCount    int    `json:"shellCount"`
	EditCount     int    `json:"editCount"`
	ResponseCount int    `json:"responseCount"`
	Digest        string `json:"digest"`

	ToolCalls     map[string]int `json:"toolCalls,omitempty"`
	EditedFiles   []string       `json:"editedFiles,omitempty"`
	ShellCommands []string       `json:"shellCommands,omitempty"`
	Steps         []string       `json:"steps,omitempty"`

	Git          *gitctx.Context `json:"git,omitempty"`
	PlaybookUsed []string        `json:"playbook_used,omitempty"`
}
