package trajectory

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Tail incrementally reads a trajectory file, remembering the byte offset of
// the last fully-consumed line so repeated reads only parse appended data.
type Tail struct {
	Path   string
	offset int64
}

// ReadNew returns entries appended since the previous call. A missing file
// returns no entries; if the file shrank (rotated or truncated externally),
// the tail restarts from the beginning.
func (t *Tail) ReadNew() ([]Entry, error) {
	f, err := os.Open(t.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			t.offset = 0
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() < t.offset {
		t.offset = 0
	}
	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return nil, err
	}

	var entries []Entry
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return entries, err
		}
		complete := strings.HasSuffix(line, "\n")
		if complete {
			// Only advance past whole lines; a partial tail line is an
			// in-progress append and will be re-read next time.
			t.offset += int64(len(line))
			trimmed := strings.TrimSpace(line)
			if trimmed != "" {
				var e Entry
				if jsonErr := json.Unmarshal([]byte(trimmed), &e); jsonErr == nil && e.Valid() {
					entries = append(entries, e)
				}
			}
		}
		if err == io.EOF {
			return entries, nil
		}
	}
}

// ChangeHandler is invoked by Watch after a debounced burst of appends.
// fresh maps each category to the entries appended since the last call.
type ChangeHandler func(fresh map[Category][]Entry)

// Watch follows the trajectory files under dir until ctx is cancelled,
// invoking handler after writes have been quiet for the debounce window.
// Hook processes append in short bursts, so a small window batches one
// editor action into one callback.
func Watch(ctx context.Context, dir string, debounce time.Duration, handler ChangeHandler) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}

	tails := make(map[Category]*Tail, len(Categories))
	watched := make(map[string]Category, len(Categories))
	for _, cat := range Categories {
		path := filepath.Join(dir, cat.FileName())
		tails[cat] = &Tail{Path: path}
		watched[path] = cat
	}

	// Consume anything already on disk so the first callback only carries
	// entries appended after Watch started.
	for _, t := range tails {
		_, _ = t.ReadNew()
	}

	var timer *time.Timer
	var timerC <-chan time.Time
	pending := make(map[Category]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			cat, tracked := watched[event.Name]
			if !tracked {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending[cat] = true
				if timer == nil {
					timer = time.NewTimer(debounce)
					timerC = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(debounce)
				}
			}

		case <-timerC:
			fresh := make(map[Category][]Entry)
			for cat := range pending {
				entries, err := tails[cat].ReadNew()
				if err != nil {
					continue // transient read failure; retry on next burst
				}
				if len(entries) > 0 {
					fresh[cat] = entries
				}
			}
			pending = make(map[Category]bool)
			timer = nil
			timerC = nil
			if len(fresh) > 0 {
				handler(fresh)
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Watcher errors are non-fatal; keep following.
		}
	}
}
