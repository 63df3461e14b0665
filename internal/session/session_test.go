package session_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ce-dot-net/acetrail/internal/domain"
	"github.com/ce-dot-net/acetrail/internal/session"
)

func activate(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.Activate(session.Options{WorkDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	t.Cleanup(func() { sess.Close() })
	return sess
}

func writeTrajectory(t *testing.T, sess *session.Session, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(sess.StateDir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestActivateCreatesStateDir(t *testing.T) {
	sess := activate(t)
	info, err := os.Stat(sess.StateDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("state dir not created: %v", err)
	}
	if sess.ID == "" {
		t.Error("expected a generated session ID")
	}
}

func TestActivateRequiresWorkDir(t *testing.T) {
	if _, err := session.Activate(session.Options{}); err == nil {
		t.Error("expected error for empty WorkDir")
	}
}

func TestClassifyRecordsShifts(t *testing.T) {
	sess := activate(t)

	if got := sess.Classify("/src/auth/login.ts"); got != "auth" {
		t.Fatalf("Classify = %q, want auth", got)
	}
	// Same domain: no shift recorded.
	sess.Classify("/src/auth/token.ts")
	// Transition: auth -> api.
	if got := sess.Classify("/src/api/routes/orders.ts"); got != "api" {
		t.Fatalf("Classify = %q, want api", got)
	}

	f, err := os.Open(filepath.Join(sess.StateDir, "domain_shifts.log"))
	if err != nil {
		t.Fatalf("open shift log: %v", err)
	}
	defer f.Close()

	var shifts []domain.Shift
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var s domain.Shift
		if err := json.Unmarshal(scanner.Bytes(), &s); err != nil {
			t.Fatalf("unmarshal shift: %v", err)
		}
		shifts = append(shifts, s)
	}

	if len(shifts) != 1 {
		t.Fatalf("expected 1 shift, got %d: %+v", len(shifts), shifts)
	}
	if shifts[0].From != "auth" || shifts[0].To != "api" || shifts[0].File != "/src/api/routes/orders.ts" {
		t.Errorf("unexpected shift: %+v", shifts[0])
	}
}

func TestSummarizeEmptyWorkspace(t *testing.T) {
	sess := activate(t)

	sum, load, err := sess.Summarize()
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.Digest != "MCP:0 Shell:0 Edits:0 Responses:0" {
		t.Errorf("Digest = %q", sum.Digest)
	}
	if len(load.Dropped) != 0 {
		t.Errorf("unexpected drops: %v", load.Dropped)
	}
}

func TestSummarizeResolvesSessionID(t *testing.T) {
	sess := activate(t)
	writeTrajectory(t, sess, "mcp_trajectory.jsonl",
		`{"conversation_id":"conv-42","generation_id":"g1","tool_name":"ace_search"}`+"\n")

	if _, _, err := sess.Summarize(); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sess.ID != "conv-42" {
		t.Errorf("session ID = %q, want conv-42", sess.ID)
	}
}

func TestSummarizeExplicitIDWins(t *testing.T) {
	sess, err := session.Activate(session.Options{WorkDir: t.TempDir(), ID: "given"})
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	defer sess.Close()
	writeTrajectory(t, sess, "mcp_trajectory.jsonl",
		`{"conversation_id":"conv-42","generation_id":"g1"}`+"\n")

	if _, _, err := sess.Summarize(); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sess.ID != "given" {
		t.Errorf("session ID = %q, want given", sess.ID)
	}
}

func TestSummarizeCachesUntilInvalidated(t *testing.T) {
	sess := activate(t)
	writeTrajectory(t, sess, "shell_trajectory.jsonl",
		`{"conversation_id":"c","generation_id":"g1","command":"ls","output":""}`+"\n")

	first, _, err := sess.Summarize()
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if first.ShellCount != 1 {
		t.Fatalf("ShellCount = %d", first.ShellCount)
	}

	// More activity lands; the cached summary is served within the TTL.
	writeTrajectory(t, sess, "shell_trajectory.jsonl",
		`{"conversation_id":"c","generation_id":"g1","command":"ls","output":""}`+"\n"+
			`{"conversation_id":"c","generation_id":"g2","command":"pwd","output":""}`+"\n")

	cached, _, err := sess.Summarize()
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if cached.ShellCount != 1 {
		t.Errorf("expected cached ShellCount 1, got %d", cached.ShellCount)
	}

	sess.Invalidate()
	fresh, _, err := sess.Summarize()
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if fresh.ShellCount != 2 {
		t.Errorf("expected fresh ShellCount 2, got %d", fresh.ShellCount)
	}
}

func TestSummarizeEnriched(t *testing.T) {
	sess := activate(t)
	writeTrajectory(t, sess, "mcp_trajectory.jsonl",
		`{"conversation_id":"conv-9","generation_id":"g1","tool_name":"ace_search"}`+"\n")
	writeTrajectory(t, sess, "shell_trajectory.jsonl",
		`{"conversation_id":"conv-9","generation_id":"g2","command":"git commit -m 'fix'","output":"[main a1b2c3d] fix"}`+"\n")
	if err := sess.Patterns().Append("conv-9", "pat-1"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	sum, _, err := sess.SummarizeEnriched(context.Background())
	if err != nil {
		t.Fatalf("SummarizeEnriched: %v", err)
	}
	if sum.Git == nil {
		t.Fatal("expected git context")
	}
	// The temp workspace is not a repository; the probe degrades, the
	// summary still ships.
	if sum.Git.IsRepo {
		t.Errorf("expected IsRepo false, got %+v", sum.Git)
	}
	if len(sum.Git.SessionCommits) != 1 || sum.Git.SessionCommits[0] != "a1b2c3d" {
		t.Errorf("SessionCommits = %v", sum.Git.SessionCommits)
	}
	if len(sum.PlaybookUsed) != 1 || sum.PlaybookUsed[0] != "pat-1" {
		t.Errorf("PlaybookUsed = %v (session ID should resolve to conv-9)", sum.PlaybookUsed)
	}
}

func TestPatternsRoundTripThroughSession(t *testing.T) {
	sess, err := session.Activate(session.Options{WorkDir: t.TempDir(), ID: "sess-1"})
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	defer sess.Close()

	if err := sess.Patterns().Append("sess-1", "pat-1"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := sess.Patterns().Append("sess-1", "pat-1"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	ids := sess.Patterns().Load("sess-1")
	if len(ids) != 1 || ids[0] != "pat-1" {
		t.Errorf("Load = %v, want [pat-1]", ids)
	}
}
