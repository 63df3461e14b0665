package summary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ce-dot-net/acetrail/internal/gitctx"
	"github.com/ce-dot-net/acetrail/internal/trajectory"
)

// Build folds trajectories into a Summary. The fold is deterministic: the
// same trajectories always produce the same summary.
func Build(all trajectory.AllTrajectories) Summary {
	s := Summary{
		McpCount:      len(all.Mcp),
		ShellCount:    len(all.Shell),
		EditCount:     len(all.Edit),
		ResponseCount: len(all.Response),
	}
	s.Digest = fmt.Sprintf("MCP:%d Shell:%d Edits:%d Responses:%d",
		s.McpCount, s.ShellCount, s.EditCount, s.ResponseCount)

	if len(all.Mcp) > 0 {
		s.ToolCalls = make(map[string]int, len(all.Mcp))
		for _, e := range all.Mcp {
			s.ToolCalls[e.ToolName]++
		}
	}

	s.EditedFiles = dedupe(all.Edit, func(e trajectory.Entry) string { return e.FilePath })
	s.ShellCommands = dedupe(all.Shell, func(e trajectory.Entry) string { return e.Command })
	s.Steps = buildSteps(all)

	return s
}

// BuildEnriched is Build plus git context and pattern attribution — a strict
// superset of the base summary, never a replacement.
func BuildEnriched(all trajectory.AllTrajectories, git *gitctx.Context, playbookUsed []string) Summary {
	s := Build(all)
	s.Git = git
	if len(playbookUsed) > 0 {
		s.PlaybookUsed = playbookUsed
	}
	return s
}

// dedupe collects distinct non-empty keys in order of first occurrence.
// Returns nil when empty so the field is omitted from JSON.
func dedupe(entries []trajectory.Entry, key func(trajectory.Entry) string) []string {
	var out []string
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		k := key(e)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// buildSteps renders one human-readable line per MCP call, shell command,
// and edit. Categories are walked in fixed order (MCP, shell, edit) with
// file order inside each; responses produce no steps.
func buildSteps(all trajectory.AllTrajectories) []string {
	var steps []string
	for _, e := range all.Mcp {
		steps = append(steps, mcpStep(e))
	}
	for _, e := range all.Shell {
		steps = append(steps, shellStep(e))
	}
	for _, e := range all.Edit {
		steps = append(steps, editStep(e))
	}
	return steps
}

func mcpStep(e trajectory.Entry) string {
	step := "Called tool: " + e.ToolName

	// tool_input is itself JSON-encoded; if it doesn't parse, the step just
	// has no suffix.
	var input map[string]any
	if err := json.Unmarshal([]byte(e.ToolInput), &input); err == nil {
		if q, ok := input["query"]; ok {
			step += fmt.Sprintf(" with query: %q", fmt.Sprint(q))
		} else if p, ok := input["path"]; ok {
			step += fmt.Sprintf(" on path: %v", p)
		}
	}
	return step
}

func shellStep(e trajectory.Entry) string {
	step := "Ran command: " + e.Command
	if strings.Contains(strings.ToLower(e.Output), "error") {
		step += " (with errors)"
	}
	return step
}

func editStep(e trajectory.Entry) string {
	n := len(e.Edits)
	noun := "changes"
	if n == 1 {
		noun = "change"
	}
	return fmt.Sprintf("Edited file: %s (%d %s)", e.FilePath, n, noun)
}
