// Package session owns the per-workspace lifecycle state: where trajectory
// logs live, which session is active, and the small caches the original
// system kept as ambient module-level variables. All of that state lives on
// an explicit Session created at activation and discarded at deactivation.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ce-dot-net/acetrail/internal/domain"
	"github.com/ce-dot-net/acetrail/internal/gitctx"
	"github.com/ce-dot-net/acetrail/internal/patterns"
	"github.com/ce-dot-net/acetrail/internal/summary"
	"github.com/ce-dot-net/acetrail/internal/trajectory"
)

// StateDirName is the default per-workspace state directory.
const StateDirName = ".acetrail"

// summaryTTL bounds how long a cached summary is served before the
// trajectory files are re-read.
const summaryTTL = 5 * time.Second

// Options configures a Session.
type Options struct {
	WorkDir   string        // workspace root; required
	StateDir  string        // override; empty means WorkDir/.acetrail
	RulesPath string        // override; empty means StateDir/domains.yaml
	ID        string        // session ID; empty generates a uuid
	GitBudget time.Duration // timeout over git subprocess calls; 0 disables
}

// Session is the explicit context object for one activation in one
// workspace.
type Session struct {
	ID       string
	WorkDir  string
	StateDir string

	classifier *domain.Classifier
	shiftLog   *domain.ShiftLog
	store      *patterns.Store
	gitBudget  time.Duration
	idExplicit bool

	mu         sync.Mutex
	lastDomain string
	cached     *summary.Summary
	cachedAt   time.Time
}

// Activate builds a Session: resolves the state directory, loads classifier
// rules (falling back to the built-in table), and opens the attribution
// store.
func Activate(opts Options) (*Session, error) {
	if opts.WorkDir == "" {
		return nil, fmt.Errorf("session: workspace directory is required")
	}
	stateDir := opts.StateDir
	if stateDir == "" {
		stateDir = filepath.Join(opts.WorkDir, StateDirName)
	}
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("session: create state dir: %w", err)
	}

	rulesPath := opts.RulesPath
	if rulesPath == "" {
		rulesPath = filepath.Join(stateDir, "domains.yaml")
	}
	rules, err := domain.LoadRules(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	store, err := patterns.NewStore(stateDir)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	id := opts.ID
	idExplicit := id != ""
	if id == "" {
		id = uuid.New().String()
	}

	return &Session{
		ID:         id,
		idExplicit: idExplicit,
		WorkDir:    opts.WorkDir,
		StateDir:   stateDir,
		classifier: domain.NewClassifier(rules),
		shiftLog:   &domain.ShiftLog{Path: filepath.Join(stateDir, "domain_shifts.log")},
		store:      store,
		gitBudget:  opts.GitBudget,
	}, nil
}

// Classify labels a path and records a transition in the shift log when the
// label differs from the previous one. The shift log write is best-effort;
// classification itself never fails.
func (s *Session) Classify(path string) string {
	label := s.classifier.Classify(path)

	s.mu.Lock()
	prev := s.lastDomain
	s.lastDomain = label
	s.mu.Unlock()

	if prev != "" && prev != label {
		_ = s.shiftLog.Record(prev, label, path)
	}
	return label
}

// Patterns exposes the attribution store for this workspace.
func (s *Session) Patterns() *patterns.Store {
	return s.store
}

// Summarize loads the trajectory files and builds the base summary, serving
// a cached copy while the files have not been re-read within the TTL window.
func (s *Session) Summarize() (summary.Summary, trajectory.LoadResult, error) {
	s.mu.Lock()
	if s.cached != nil && time.Since(s.cachedAt) < summaryTTL {
		cached := *s.cached
		s.mu.Unlock()
		return cached, trajectory.LoadResult{}, nil
	}
	s.mu.Unlock()

	load, err := trajectory.LoadAll(s.StateDir)
	if err != nil {
		return summary.Summary{}, load, err
	}
	s.resolveID(load.Trajectories)
	sum := summary.Build(load.Trajectories)

	s.mu.Lock()
	s.cached = &sum
	s.cachedAt = time.Now()
	s.mu.Unlock()

	return sum, load, nil
}

// SummarizeEnriched builds the learn payload: the base fold plus git context,
// session commits, and pattern attribution. Git probing is best-effort and
// bounded by the session's git budget.
func (s *Session) SummarizeEnriched(ctx context.Context) (summary.Summary, trajectory.LoadResult, error) {
	load, err := trajectory.LoadAll(s.StateDir)
	if err != nil {
		return summary.Summary{}, load, err
	}
	s.resolveID(load.Trajectories)

	if s.gitBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.gitBudget)
		defer cancel()
	}
	probe := &gitctx.Probe{WorkDir: s.WorkDir}
	git := probe.Collect(ctx)
	git.SessionCommits = gitctx.DetectCommits(load.Trajectories.Shell)

	used := s.store.Load(s.ID)
	return summary.BuildEnriched(load.Trajectories, &git, used), load, nil
}

// resolveID replaces a generated session ID with the conversation ID the
// editor hooks were actually writing under, taken from the most recently
// appended entry. An explicitly supplied ID always wins.
func (s *Session) resolveID(all trajectory.AllTrajectories) {
	if s.idExplicit {
		return
	}
	for _, entries := range [][]trajectory.Entry{all.Response, all.Edit, all.Shell, all.Mcp} {
		if n := len(entries); n > 0 {
			s.ID = entries[n-1].ConversationID
			s.idExplicit = true
			return
		}
	}
}

// Invalidate drops the cached summary so the next Summarize re-reads disk.
// Called by the watcher when trajectory files change.
func (s *Session) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// Close releases the session. Nothing is persisted here today; the method
// anchors the deactivation side of the lifecycle so callers pair it with
// Activate.
func (s *Session) Close() error {
	s.Invalidate()
	return nil
}
