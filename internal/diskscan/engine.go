// Package diskscan measures disk usage per top-level directory of a target
// path on a background goroutine, streaming partial results into shared
// state the UI reads on every redraw.
package diskscan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/ferromon/ferro/internal/logger"
)

// Scan limits. Fixed on purpose: the scan is a quick heuristic over a live
// filesystem, not an accounting tool.
const (
	maxResults      = 25
	maxDepth        = 12
	perChildFileCap = 50_000
	totalFileCap    = 300_000
)

// capReachedProgress is published when the cumulative file cap stops a
// scan early. The truncated result is still valid, not an error.
const capReachedProgress = "Reached scan cap (kept it lightweight)."

// Entry is one measured child directory.
type Entry struct {
	Path  string
	Bytes uint64
}

// State is the scan engine's shared state. The worker mutates it under the
// engine lock; the UI receives clones from ReadState.
type State struct {
	Running        bool
	LastTarget     string
	LastStartedAt  time.Time
	LastFinishedAt time.Time
	Progress       string
	Results        []Entry
	Error          string
}

// clone deep-copies the state so readers never alias worker-owned slices.
func (s State) clone() State {
	cp := s
	cp.Results = make([]Entry, len(s.Results))
	copy(cp.Results, s.Results)
	return cp
}

// Engine runs at most one scan at a time per process.
type Engine struct {
	fsys FS
	log  logger.Logger

	mu    sync.Mutex
	state State
	done  chan struct{} // closed when the current worker exits
}

// New creates an engine that scans the host filesystem.
func New(log logger.Logger) *Engine {
	return NewWithFS(OS(), log)
}

// NewWithFS creates an engine over an arbitrary filesystem.
func NewWithFS(fsys FS, log logger.Logger) *Engine {
	if log == nil {
		log = logger.Noop()
	}
	return &Engine{fsys: fsys, log: log}
}

// StartScan begins a background scan of target. If a scan is already
// running the call is a no-op and returns false; the running check and the
// state reset happen under one lock acquisition.
func (e *Engine) StartScan(target string) bool {
	e.mu.Lock()
	if e.state.Running {
		e.mu.Unlock()
		return false
	}
	e.state = State{
		Running:       true,
		LastTarget:    target,
		LastStartedAt: time.Now(),
	}
	done := make(chan struct{})
	e.done = done
	e.mu.Unlock()

	e.log.Debug("scan started: %s", target)
	go e.run(target, done)
	return true
}

// ReadState returns a snapshot of the current scan state.
func (e *Engine) ReadState() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Wait blocks until the most recently started scan finishes. Used by tests
// and shutdown; safe to call when no scan has run.
func (e *Engine) Wait() {
	e.mu.Lock()
	done := e.done
	e.mu.Unlock()
	if done != nil {
		<-done
	}
}

// run is the worker. It always clears Running and stamps the finish time,
// even when the walk fails or panics; a worker fault surfaces through the
// Error field, never as a crash of the UI goroutine.
func (e *Engine) run(target string, done chan struct{}) {
	defer close(done)

	var scanErr error
	defer func() {
		if r := recover(); r != nil {
			scanErr = fmt.Errorf("scan worker panic: %v", r)
			e.log.Error("scan panic: %v", r)
		}
		e.mu.Lock()
		e.state.Running = false
		e.state.LastFinishedAt = time.Now()
		if scanErr != nil {
			e.state.Error = scanErr.Error()
		}
		e.mu.Unlock()
	}()

	scanErr = e.scan(target)
}

// scan walks the immediate children of target and publishes incremental
// top-N results. Only a missing target or a childless target is fatal;
// unreadable subpaths degrade to best-effort sizes.
func (e *Engine) scan(target string) error {
	if _, err := e.fsys.Stat(target); err != nil {
		return fmt.Errorf("Target does not exist: %s", target)
	}

	// An existing but unreadable target counts as childless, not missing.
	entries, err := e.fsys.ReadDir(target)
	if err != nil {
		e.log.Debug("scan target unreadable: %v", err)
		entries = nil
	}

	var children []string
	for _, entry := range entries {
		if entry.IsDir() {
			children = append(children, filepath.Join(target, entry.Name()))
		}
	}
	if len(children) == 0 {
		return fmt.Errorf("No child directories found to scan")
	}

	var results []Entry
	var totalSeen uint64

	for idx, child := range children {
		e.setProgress(fmt.Sprintf("%d/%d: %s", idx+1, len(children), child))

		var seen uint64
		size := e.sizeDir(child, 0, &seen, &totalSeen)

		results = mergeTopN(results, Entry{Path: child, Bytes: size})
		e.publishResults(results)

		if totalSeen >= totalFileCap {
			e.setProgress(capReachedProgress)
			break
		}
	}

	return nil
}

// sizeDir sums file sizes under path, not following symlinks, limited by
// the depth ceiling and the per-child and cumulative file caps. Errors on
// individual entries are skipped.
func (e *Engine) sizeDir(path string, depth int, seen, total *uint64) uint64 {
	entries, err := e.fsys.ReadDir(path)
	if err != nil {
		return 0
	}

	var size uint64
	for _, entry := range entries {
		if *seen >= perChildFileCap || *total >= totalFileCap {
			break
		}

		// Symlinks are neither followed nor counted (cycle and
		// double-count protection).
		if entry.Type()&fs.ModeSymlink != 0 {
			continue
		}

		if entry.IsDir() {
			if depth+1 < maxDepth {
				size += e.sizeDir(filepath.Join(path, entry.Name()), depth+1, seen, total)
			}
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() > 0 {
			size += uint64(info.Size())
		}
		*seen++
		*total++
	}

	return size
}

// mergeTopN inserts an entry, re-sorts descending by size, and truncates
// to the display cap. Order ties keep insertion order.
func mergeTopN(results []Entry, entry Entry) []Entry {
	results = append(results, entry)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Bytes > results[j].Bytes
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

func (e *Engine) setProgress(progress string) {
	e.mu.Lock()
	e.state.Progress = progress
	e.mu.Unlock()
}

func (e *Engine) publishResults(results []Entry) {
	cp := make([]Entry, len(results))
	copy(cp, results)
	e.mu.Lock()
	e.state.Results = cp
	e.mu.Unlock()
}
