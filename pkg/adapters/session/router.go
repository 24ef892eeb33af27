// Package session implements the router over a session file: the navigation
// history of a browsing context, persisted so short-lived processes share one
// back/forward stack and deep-linkable current route.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/jot/internal/fsutil"
	"github.com/aretw0/jot/pkg/core"
)

const sessionFile = "session.json"

// sessionState is the on-disk shape: a fragment per history entry plus the
// cursor of the current one.
type sessionState struct {
	History []string `json:"history"`
	Cursor  int      `json:"cursor"`
}

// Config holds the configuration for the session router.
type Config struct {
	// Path is the state directory the session file lives in.
	Path   string
	Logger *slog.Logger
}

// Router implements core.Router and core.Navigator over the session file.
// Subscribe watches the file with fsnotify and delivers routes changed by
// other processes or manual edits; this instance's own writes are suppressed
// by content comparison.
type Router struct {
	mu        sync.Mutex // guards file access and lastWrite
	path      string
	logger    *slog.Logger
	lastWrite []byte

	subMu   sync.Mutex
	nextSub int
	subs    map[int]func(core.Route)
	watcher *fsnotify.Watcher
	stop    context.CancelFunc
}

// New creates a session router storing its state under the configured path.
func New(config Config) *Router {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		path:   filepath.Join(config.Path, sessionFile),
		logger: logger,
		subs:   make(map[int]func(core.Route)),
	}
}

// Read returns the current route.
func (r *Router) Read() (core.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.load()
	return core.ParseFragment(st.History[st.Cursor]), nil
}

// WriteReplace rewrites the current history entry in place.
func (r *Router) WriteReplace(route core.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.load()
	st.History[st.Cursor] = route.Fragment()
	return r.save(st)
}

// WritePush drops any forward history, appends the route and moves the
// cursor to it.
func (r *Router) WritePush(route core.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.load()
	st.History = append(st.History[:st.Cursor+1], route.Fragment())
	st.Cursor = len(st.History) - 1
	return r.save(st)
}

// Back moves the cursor one entry backwards and notifies subscribers, the
// analog of a hashchange fired by history navigation.
func (r *Router) Back() error {
	return r.navigate(-1)
}

// Forward moves the cursor one entry forwards and notifies subscribers.
func (r *Router) Forward() error {
	return r.navigate(+1)
}

func (r *Router) navigate(delta int) error {
	r.mu.Lock()
	st := r.load()
	next := st.Cursor + delta
	if next < 0 || next >= len(st.History) {
		r.mu.Unlock()
		return core.ErrNoHistory
	}
	st.Cursor = next
	if err := r.save(st); err != nil {
		r.mu.Unlock()
		return err
	}
	route := core.ParseFragment(st.History[st.Cursor])
	r.mu.Unlock()

	r.notify(route)
	return nil
}

// Subscribe registers a change listener and starts the file watcher if it is
// not already running. The returned function unsubscribes the listener and
// stops the watcher once the last one is gone.
func (r *Router) Subscribe(onChange func(core.Route)) (func(), error) {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	if r.watcher == nil {
		if err := r.startWatcher(); err != nil {
			return nil, err
		}
	}

	id := r.nextSub
	r.nextSub++
	r.subs[id] = onChange

	return func() {
		r.subMu.Lock()
		defer r.subMu.Unlock()
		delete(r.subs, id)
		if len(r.subs) == 0 && r.watcher != nil {
			r.stop()
			_ = r.watcher.Close()
			r.watcher = nil
		}
	}, nil
}

// startWatcher must be called with subMu held.
func (r *Router) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory, not the file: atomic replace-by-rename would
	// silently detach a file watch.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch session directory: %w", err)
	}

	r.watcher = watcher
	runCtx, cancel := context.WithCancel(context.Background())
	r.stop = cancel

	lifecycle.Go(runCtx, func(ctx context.Context) error {
		r.run(ctx, watcher)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		r.logger.Error("session watcher panic", "error", err)
	}))
	return nil
}

func (r *Router) run(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != sessionFile {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			route, external := r.externalChange()
			if external {
				r.notify(route)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Error("session watcher error", "error", err)
		}
	}
}

// externalChange reads the session file and reports whether its content
// differs from this instance's last write.
func (r *Router) externalChange() (core.Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		return core.Route{}, false
	}
	if bytes.Equal(data, r.lastWrite) {
		return core.Route{}, false
	}
	r.lastWrite = append([]byte(nil), data...)

	var st sessionState
	if err := json.Unmarshal(data, &st); err != nil {
		return core.Route{}, false
	}
	clamp(&st)
	return core.ParseFragment(st.History[st.Cursor]), true
}

func (r *Router) notify(route core.Route) {
	r.subMu.Lock()
	fns := make([]func(core.Route), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.subMu.Unlock()

	for _, fn := range fns {
		fn(route)
	}
}

// load must be called with mu held. Missing or malformed files fail open to
// a single cleared entry.
func (r *Router) load() sessionState {
	st := sessionState{History: []string{"#"}}
	data, err := os.ReadFile(r.path)
	if err != nil {
		return st
	}
	var parsed sessionState
	if err := json.Unmarshal(data, &parsed); err != nil || len(parsed.History) == 0 {
		return st
	}
	clamp(&parsed)
	return parsed
}

// save must be called with mu held.
func (r *Router) save(st sessionState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := fsutil.WriteFileAtomic(r.path, data, 0644); err != nil {
		return err
	}
	r.lastWrite = data
	return nil
}

func clamp(st *sessionState) {
	if st.Cursor < 0 {
		st.Cursor = 0
	}
	if st.Cursor >= len(st.History) {
		st.Cursor = len(st.History) - 1
	}
}

var _ core.Router = (*Router)(nil)
var _ core.Navigator = (*Router)(nil)
