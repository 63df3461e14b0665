package gitctx

import (
	"reflect"
	"testing"

	"github.com/ce-dot-net/acetrail/internal/trajectory"
)

func shellEntry(command, output string) trajectory.Entry {
	return trajectory.Entry{
		ConversationID: "c",
		GenerationID:   "g",
		Command:        command,
		Output:         output,
	}
}

func TestDetectCommits(t *testing.T) {
	tests := []struct {
		name    string
		entries []trajectory.Entry
		want    []string
	}{
		{
			name: "single commit",
			entries: []trajectory.Entry{
				shellEntry("git commit -m 'fix'", "[main a1b2c3d] fix"),
			},
			want: []string{"a1b2c3d"},
		},
		{
			name: "non-commit commands ignored",
			entries: []trajectory.Entry{
				shellEntry("git status", "clean"),
				shellEntry("npm test", "5 passing"),
			},
			want: nil,
		},
		{
			name: "commit without recognizable sha contributes nothing",
			entries: []trajectory.Entry{
				shellEntry("git commit -m 'wip'", "error: nothing to commit"),
			},
			want: nil,
		},
		{
			name: "order preserved, duplicates kept",
			entries: []trajectory.Entry{
				shellEntry("git commit -m 'one'", "[main a1b2c3d] one"),
				shellEntry("git commit --amend", "[main a1b2c3d] one amended"),
				shellEntry("git commit -m 'two'", "[feature/x deadbeef] two"),
			},
			want: []string{"a1b2c3d", "a1b2c3d", "deadbeef"},
		},
		{
			name: "full-length sha",
			entries: []trajectory.Entry{
				shellEntry("git commit -m 'big'",
					"[trunk 0123456789abcdef0123456789abcdef01234567] big"),
			},
			want: []string{"0123456789abcdef0123456789abcdef01234567"},
		},
		{
			name: "detached head style branch token",
			entries: []trajectory.Entry{
				shellEntry("git commit -m 'x'", "[detached-head f00dcafe] x"),
			},
			want: []string{"f00dcafe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCommits(tt.entries)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DetectCommits = %v, want %v", got, tt.want)
			}
		})
	}
}
