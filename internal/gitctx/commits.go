package gitctx

import (
	"regexp"
	"strings"

	"github.com/ce-dot-net/acetrail/internal/trajectory"
)

// commitConfirmation matches git's commit confirmation line,
// e.g. "[main a1b2c3d] fix the thing". The first capture is the SHA.
var commitConfirmation = regexp.MustCompile(`\[[^\s\]]+ ([0-9a-f]{7,40})\]`)

// DetectCommits scans shell entries for "git commit" invocations and pulls
// commit SHAs out of their recorded output. Entries without a recognizable
// SHA contribute nothing. Output order matches input order and duplicates
// across multiple commit commands are preserved.
func DetectCommits(shellEntries []trajectory.Entry) []string {
	var commits []string
	for _, e := range shellEntries {
		if !strings.Contains(e.Command, "git commit") {
			continue
		}
		if m := commitConfirmation.FindStringSubmatch(e.Output); m != nil {
			commits = append(commits, m[1])
		}
	}
	return commits
}
