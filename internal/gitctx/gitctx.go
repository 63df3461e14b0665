// Package gitctx captures best-effort git state for a session summary.
// Nothing here returns an error to callers: when git is unavailable or the
// directory is not a repository, fields fall back to sentinel values so the
// summary still ships.
package gitctx

import (
	"context"
	"os/exec"
	"strings"
)

// Unknown is the fallback for git fields that could not be determined.
const Unknown = "unknown"

// Context is the git state attached to an enriched summary.
type Context struct {
	Branch         string   `json:"branch"`
	Hash           string   `json:"hash"`
	IsRepo         bool     `json:"isRepo"`
	SessionCommits []string `json:"sessionCommits,omitempty"`
}

// Runner executes a git command and returns its output.
// This abstraction allows mocking in tests.
type Runner func(ctx context.Context, workDir string, args ...string) (string, error)

// defaultRunner runs git as a real subprocess.
func defaultRunner(ctx context.Context, workDir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = workDir
	out, err := cmd.Output()
	return string(out), err
}

// Probe queries git state for a working directory.
type Probe struct {
	WorkDir string
	Runner  Runner // if nil, uses the real git subprocess
}

// Collect runs the is-repo check, branch query, and short-hash query. Each
// query is independent: a failed branch or hash query falls back to Unknown
// without aborting the others. If the is-repo check itself fails, the whole
// result is the sentinel Context with IsRepo false.
//
// Git subprocesses carry no timeout of their own; callers impose a budget
// through ctx.
func (p *Probe) Collect(ctx context.Context) Context {
	runner := p.Runner
	if runner == nil {
		runner = defaultRunner
	}

	out, err := runner(ctx, p.WorkDir, "rev-parse", "--is-inside-work-tree")
	if err != nil || strings.TrimSpace(out) != "true" {
		return Context{Branch: Unknown, Hash: Unknown, IsRepo: false}
	}

	result := Context{Branch: Unknown, Hash: Unknown, IsRepo: true}

	if out, err := runner(ctx, p.WorkDir, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		if branch := strings.TrimSpace(out); branch != "" {
			result.Branch = branch
		}
	}
	if out, err := runner(ctx, p.WorkDir, "rev-parse", "--short", "HEAD"); err == nil {
		if hash := strings.TrimSpace(out); hash != "" {
			result.Hash = hash
		}
	}
	return result
}
