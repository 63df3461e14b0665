package summary

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Renderer serializes a Summary to bytes.
type Renderer interface {
	Render(s *Summary) ([]byte, error)
}

// JSONRenderer renders a Summary as indented JSON, the interchange format
// for `view` and the learn payload.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(s *Summary) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// MarkdownRenderer renders a Summary as human-readable Markdown.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(s *Summary) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Session Summary\n\n%s\n\n", s.Digest)

	sb.WriteString("## Activity\n\n")
	fmt.Fprintf(&sb, "- MCP calls: %d\n", s.McpCount)
	fmt.Fprintf(&sb, "- Shell commands: %d\n", s.ShellCount)
	fmt.Fprintf(&sb, "- File edits: %d\n", s.EditCount)
	fmt.Fprintf(&sb, "- Responses: %d\n", s.ResponseCount)
	sb.WriteString("\n")

	sb.WriteString("## Tool Calls\n\n")
	if len(s.ToolCalls) == 0 {
		sb.WriteString("_No tool calls recorded._\n")
	} else {
		sb.WriteString("| Tool | Calls |\n")
		sb.WriteString("|------|-------|\n")
		names := make([]string, 0, len(s.ToolCalls))
		for name := range s.ToolCalls {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "| %s | %d |\n", name, s.ToolCalls[name])
		}
	}
	sb.WriteString("\n")

	sb.WriteString("## Steps\n\n")
	if len(s.Steps) == 0 {
		sb.WriteString("_No steps recorded._\n")
	} else {
		for i, step := range s.Steps {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
		}
	}
	sb.WriteString("\n")

	sb.WriteString("## Edited Files\n\n")
	if len(s.EditedFiles) == 0 {
		sb.WriteString("_No files edited._\n")
	} else {
		for _, f := range s.EditedFiles {
			fmt.Fprintf(&sb, "- %s\n", f)
		}
	}
	sb.WriteString("\n")

	sb.WriteString("## Shell Commands\n\n")
	if len(s.ShellCommands) == 0 {
		sb.WriteString("_No shell commands recorded._\n")
	} else {
		for i, c := range s.ShellCommands {
			fmt.Fprintf(&sb, "%d. `%s`\n", i+1, c)
		}
	}
	sb.WriteString("\n")

	sb.WriteString("## Git\n\n")
	if s.Git == nil || !s.Git.IsRepo {
		sb.WriteString("_Not a git repository or git data unavailable._\n")
	} else {
		fmt.Fprintf(&sb, "- Branch: %s\n", s.Git.Branch)
		fmt.Fprintf(&sb, "- Commit: %s\n", s.Git.Hash)
		if len(s.Git.SessionCommits) > 0 {
			sb.WriteString("- Commits this session:\n")
			for _, c := range s.Git.SessionCommits {
				fmt.Fprintf(&sb, "  - %s\n", c)
			}
		}
	}
	sb.WriteString("\n")

	if len(s.PlaybookUsed) > 0 {
		sb.WriteString("## Patterns Consulted\n\n")
		for _, id := range s.PlaybookUsed {
			fmt.Fprintf(&sb, "- %s\n", id)
		}
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}
