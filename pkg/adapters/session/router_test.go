package session_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/adapters/session"
	"github.com/aretw0/jot/pkg/core"
)

func newRouter(t *testing.T) (*session.Router, string) {
	t.Helper()
	dir := t.TempDir()
	router := session.New(session.Config{
		Path:   dir,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return router, dir
}

func readSession(t *testing.T, dir string) (history []string, cursor int) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "session.json"))
	require.NoError(t, err)
	var st struct {
		History []string `json:"history"`
		Cursor  int      `json:"cursor"`
	}
	require.NoError(t, json.Unmarshal(data, &st))
	return st.History, st.Cursor
}

func TestRead_MissingFileFailsOpen(t *testing.T) {
	router, _ := newRouter(t)
	route, err := router.Read()
	require.NoError(t, err)
	assert.True(t, route.IsZero())
}

func TestRead_MalformedFileFailsOpen(t *testing.T) {
	router, dir := newRouter(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{oops"), 0644))

	route, err := router.Read()
	require.NoError(t, err)
	assert.True(t, route.IsZero())
}

func TestWriteReplace_RewritesInPlace(t *testing.T) {
	router, dir := newRouter(t)

	require.NoError(t, router.WritePush(core.Route{ID: "n1"}))
	require.NoError(t, router.WriteReplace(core.Route{ID: "n2"}))

	history, cursor := readSession(t, dir)
	assert.Equal(t, []string{"#", "#/note/n2"}, history, "replace must not grow the history")
	assert.Equal(t, 1, cursor)
}

func TestWritePush_AppendsAndMovesCursor(t *testing.T) {
	router, dir := newRouter(t)

	require.NoError(t, router.WritePush(core.Route{ID: "n1"}))
	require.NoError(t, router.WritePush(core.Route{ID: "n2"}))

	history, cursor := readSession(t, dir)
	assert.Equal(t, []string{"#", "#/note/n1", "#/note/n2"}, history)
	assert.Equal(t, 2, cursor)
}

func TestWritePush_TruncatesForwardHistory(t *testing.T) {
	router, dir := newRouter(t)

	require.NoError(t, router.WritePush(core.Route{ID: "n1"}))
	require.NoError(t, router.WritePush(core.Route{ID: "n2"}))
	require.NoError(t, router.Back())
	require.NoError(t, router.WritePush(core.Route{ID: "n3"}))

	history, cursor := readSession(t, dir)
	assert.Equal(t, []string{"#", "#/note/n1", "#/note/n3"}, history,
		"pushing from the middle of the stack drops the forward entries")
	assert.Equal(t, 2, cursor)
}

func TestBackForward(t *testing.T) {
	router, _ := newRouter(t)
	require.NoError(t, router.WritePush(core.Route{ID: "n1"}))
	require.NoError(t, router.WritePush(core.Route{ID: "n2"}))

	require.NoError(t, router.Back())
	route, err := router.Read()
	require.NoError(t, err)
	assert.Equal(t, core.Route{ID: "n1"}, route)

	require.NoError(t, router.Forward())
	route, err = router.Read()
	require.NoError(t, err)
	assert.Equal(t, core.Route{ID: "n2"}, route)
}

func TestNavigate_BeyondTheStack(t *testing.T) {
	router, _ := newRouter(t)
	require.NoError(t, router.WritePush(core.Route{ID: "n1"}))

	assert.ErrorIs(t, router.Forward(), core.ErrNoHistory)

	require.NoError(t, router.Back())
	assert.ErrorIs(t, router.Back(), core.ErrNoHistory)
}

func TestNavigate_NotifiesSubscribers(t *testing.T) {
	router, _ := newRouter(t)
	require.NoError(t, router.WritePush(core.Route{ID: "n1"}))

	var seen []core.Route
	unsubscribe, err := router.Subscribe(func(route core.Route) {
		seen = append(seen, route)
	})
	require.NoError(t, err)
	defer unsubscribe()

	// navigate delivers synchronously; no watcher round-trip involved.
	require.NoError(t, router.Back())
	require.NoError(t, router.Forward())

	assert.Equal(t, []core.Route{{}, {ID: "n1"}}, seen)
}

func TestSubscribe_UnsubscribeStopsDelivery(t *testing.T) {
	router, _ := newRouter(t)
	require.NoError(t, router.WritePush(core.Route{ID: "n1"}))

	calls := 0
	unsubscribe, err := router.Subscribe(func(core.Route) { calls++ })
	require.NoError(t, err)
	unsubscribe()

	require.NoError(t, router.Back())
	assert.Zero(t, calls)
}

func TestLoad_CursorOutOfRangeIsClamped(t *testing.T) {
	router, dir := newRouter(t)
	raw := `{"history": ["#", "#/note/n1"], "cursor": 9}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte(raw), 0644))

	route, err := router.Read()
	require.NoError(t, err)
	assert.Equal(t, core.Route{ID: "n1"}, route)
}
