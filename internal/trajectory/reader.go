package trajectory

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LineError records one dropped line and why it was dropped. Dropped lines
// never fail a read; they are reported so callers (and tests) can tell an
// empty result apart from a corrupt one.
type LineError struct {
	Line int   // 1-based line number in the file
	Err  error // parse error, or ErrMissingIdentity
}

func (le LineError) Error() string {
	return fmt.Sprintf("line %d: %v", le.Line, le.Err)
}

// ErrMissingIdentity marks a line that parsed as JSON but lacks
// conversation_id or generation_id.
var ErrMissingIdentity = errors.New("missing conversation_id or generation_id")

// FileResult is the outcome of reading one trajectory file.
type FileResult struct {
	Entries []Entry
	Missing bool        // file did not exist; Entries is empty
	Dropped []LineError // blank lines are not counted here
}

// ReadFile reads a JSON-Lines trajectory file. Malformed and identity-less
// lines are dropped, never fatal; a missing file yields an empty result with
// Missing set. The returned error covers only genuine I/O failures
// (permission errors, read errors mid-file).
func ReadFile(path string) (FileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return FileResult{Missing: true}, nil
		}
		return FileResult{}, fmt.Errorf("open trajectory file: %w", err)
	}
	defer f.Close()

	var res FileResult
	scanner := bufio.NewScanner(f)
	// Tool outputs and edit payloads can make for long lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			res.Dropped = append(res.Dropped, LineError{Line: lineNo, Err: err})
			continue
		}
		if !e.Valid() {
			res.Dropped = append(res.Dropped, LineError{Line: lineNo, Err: ErrMissingIdentity})
			continue
		}
		res.Entries = append(res.Entries, e)
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read trajectory file: %w", err)
	}
	return res, nil
}

// LoadResult is the outcome of loading a full trajectory directory.
type LoadResult struct {
	Trajectories AllTrajectories
	Dropped      map[Category][]LineError // only categories with drops appear
}

// LoadAll reads the four category files under dir and assembles them into
// AllTrajectories. Each file is independent; any subset may be empty or
// absent. Only genuine I/O failures are returned as errors.
func LoadAll(dir string) (LoadResult, error) {
	res := LoadResult{Dropped: make(map[Category][]LineError)}

	for _, cat := range Categories {
		fr, err := ReadFile(filepath.Join(dir, cat.FileName()))
		if err != nil {
			return res, fmt.Errorf("load %s trajectory: %w", cat, err)
		}
		if len(fr.Dropped) > 0 {
			res.Dropped[cat] = fr.Dropped
		}
		switch cat {
		case CategoryMcp:
			res.Trajectories.Mcp = fr.Entries
		case CategoryShell:
			res.Trajectories.Shell = fr.Entries
		case CategoryEdit:
			res.Trajectories.Edit = fr.Entries
		case CategoryResponse:
			res.Trajectories.Response = fr.Entries
		}
	}
	return res, nil
}
