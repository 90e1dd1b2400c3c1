package state

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Transform mutates a private copy of the aggregate and returns the audit
// entry describing the change. A nil entry commits without an audit record
// (reserved for non-domain mutations like session bookkeeping).
type Transform func(st *HRMState) (*AuditLogEntry, error)

// CommitHook observes a committed state. Hooks run after the pointer swap
// on the caller's goroutine; anything slow (store push, event publish)
// must go async inside the hook. Hook failures never roll the commit back.
type CommitHook func(snapshot *HRMState, entry *AuditLogEntry)

// Engine is the single writer over the aggregate. Every mutating
// operation funnels through Update, which clones the current state, runs
// the transform, appends the audit entry and swaps the pointer under the
// lock. State change and audit entry therefore commit together or not at
// all.
type Engine struct {
	mu     sync.RWMutex
	st     *HRMState
	gen    uint64
	closed bool
	hooks  []CommitHook
	logger *zap.Logger
}

func NewEngine(initial *HRMState, logger ...*zap.Logger) *Engine {
	l := zap.L().Named("state.engine")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("state.engine")
	}
	if initial == nil {
		initial = NewState()
	}
	return &Engine{st: initial, logger: l}
}

// OnCommit registers a hook. Must be called during wiring, before the
// engine starts taking updates.
func (e *Engine) OnCommit(h CommitHook) {
	e.hooks = append(e.hooks, h)
}

func (e *Engine) Update(ctx context.Context, fn Transform) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	next := e.st.Clone()
	entry, err := fn(next)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if entry != nil {
		if entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		if entry.Timestamp.IsZero() {
			entry.Timestamp = time.Now().UTC()
		}
		next.AuditLog = append(next.AuditLog, *entry)
	}
	e.st = next
	e.gen++
	hooks := e.hooks
	snapshot := next.Clone()
	e.mu.Unlock()

	for _, h := range hooks {
		h(snapshot, entry)
	}
	return nil
}

// View runs fn against the current state under a read lock. fn must not
// retain or mutate the state.
func (e *Engine) View(fn func(st *HRMState) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.st)
}

// Snapshot returns an isolated copy of the current state.
func (e *Engine) Snapshot() *HRMState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.st.Clone()
}

// Generation increments on every committed change, local or replaced.
func (e *Engine) Generation() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gen
}

// Replace swaps in a remotely fetched document, last-writer-wins at whole
// document granularity. sinceGen is the generation observed before the
// fetch started: if local writes landed in between, or the engine was
// closed, the stale document is ignored and Replace reports false.
func (e *Engine) Replace(st *HRMState, sinceGen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.gen != sinceGen {
		e.logger.Debug("stale replace ignored",
			zap.Uint64("since_gen", sinceGen),
			zap.Uint64("current_gen", e.gen),
			zap.Bool("closed", e.closed),
		)
		return false
	}
	e.st = st.Clone()
	e.gen++
	return true
}

// Close stops the engine from accepting remote replacements. Local reads
// keep working so an in-flight request can still finish.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}
