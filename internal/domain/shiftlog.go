package domain

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Shift records one domain transition: the user moved from working on one
// category of file to another.
type Shift struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	File      string    `json:"file"`
	Timestamp time.Time `json:"timestamp"`
}

// ShiftLog appends domain transitions to a JSON-Lines log file. The
// classifier itself stays pure; recording transitions is the caller's job.
type ShiftLog struct {
	Path string
	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

// Record appends a {from, to, file, timestamp} line. Timestamps are RFC 3339
// in UTC.
func (l *ShiftLog) Record(from, to, file string) error {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	shift := Shift{From: from, To: to, File: file, Timestamp: now().UTC()}

	data, err := json.Marshal(shift)
	if err != nil {
		return fmt.Errorf("marshal domain shift: %w", err)
	}

	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open domain shift log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append domain shift: %w", err)
	}
	return nil
}
