package trajectory_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ce-dot-net/acetrail/internal/trajectory"
)

func appendTo(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append: %v", err)
	}
}

func TestTailReadsOnlyAppendedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shell_trajectory.jsonl")
	tail := &trajectory.Tail{Path: path}

	// Missing file: nothing yet.
	entries, err := tail.ReadNew()
	if err != nil {
		t.Fatalf("ReadNew on missing file: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}

	appendTo(t, path, `{"conversation_id":"c","generation_id":"g1","command":"ls"}`+"\n")
	appendTo(t, path, `{"conversation_id":"c","generation_id":"g2","command":"pwd"}`+"\n")

	entries, err = tail.ReadNew()
	if err != nil {
		t.Fatalf("ReadNew: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Nothing new: second read is empty.
	entries, err = tail.ReadNew()
	if err != nil {
		t.Fatalf("ReadNew: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no new entries, got %d", len(entries))
	}

	appendTo(t, path, `{"conversation_id":"c","generation_id":"g3","command":"make"}`+"\n")
	entries, err = tail.ReadNew()
	if err != nil {
		t.Fatalf("ReadNew: %v", err)
	}
	if len(entries) != 1 || entries[0].GenerationID != "g3" {
		t.Fatalf("expected only the appended entry, got %+v", entries)
	}
}

func TestTailDefersPartialLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcp_trajectory.jsonl")
	tail := &trajectory.Tail{Path: path}

	// A hook process mid-append: no trailing newline yet.
	appendTo(t, path, `{"conversation_id":"c","generation_id":"g1"`)

	entries, err := tail.ReadNew()
	if err != nil {
		t.Fatalf("ReadNew: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("partial line must not produce entries, got %+v", entries)
	}

	// The append completes; the whole line is now readable.
	appendTo(t, path, `,"tool_name":"ace_search"}`+"\n")
	entries, err = tail.ReadNew()
	if err != nil {
		t.Fatalf("ReadNew: %v", err)
	}
	if len(entries) != 1 || entries[0].ToolName != "ace_search" {
		t.Fatalf("expected the completed entry, got %+v", entries)
	}
}

func TestTailRestartsAfterTruncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edit_trajectory.jsonl")
	tail := &trajectory.Tail{Path: path}

	appendTo(t, path, `{"conversation_id":"c","generation_id":"g1","file_path":"a.ts"}`+"\n")
	if _, err := tail.ReadNew(); err != nil {
		t.Fatalf("ReadNew: %v", err)
	}

	// Rotation: the replacement file is shorter than the consumed offset.
	if err := os.WriteFile(path, []byte(`{"conversation_id":"c","generation_id":"g2"}`+"\n"), 0o644); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	entries, err := tail.ReadNew()
	if err != nil {
		t.Fatalf("ReadNew: %v", err)
	}
	if len(entries) != 1 || entries[0].GenerationID != "g2" {
		t.Fatalf("expected tail to restart from the top, got %+v", entries)
	}
}
