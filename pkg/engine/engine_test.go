package engine_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/engine"
	"github.com/aretw0/jot/pkg/persist"
)

type fakeBackend struct {
	mu    sync.Mutex
	notes []core.Note
	theme core.Theme
	saves [][]core.Note
}

func (b *fakeBackend) LoadNotes() []core.Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.notes
}

func (b *fakeBackend) SaveNotes(notes []core.Note) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saves = append(b.saves, notes)
	return nil
}

func (b *fakeBackend) LoadTheme() core.Theme {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.theme == "" {
		return core.DefaultTheme
	}
	return b.theme
}

func (b *fakeBackend) SaveTheme(theme core.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("invalid theme %q", theme)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.theme = theme
	return nil
}

func (b *fakeBackend) saveCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.saves)
}

func (b *fakeBackend) lastSave() []core.Note {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.saves) == 0 {
		return nil
	}
	return b.saves[len(b.saves)-1]
}

type fakeRouter struct {
	current core.Route
	trace   []string
	subs    []func(core.Route)
}

func (f *fakeRouter) Read() (core.Route, error) {
	return f.current, nil
}

func (f *fakeRouter) WriteReplace(route core.Route) error {
	f.current = route
	f.trace = append(f.trace, "replace "+route.Fragment())
	return nil
}

func (f *fakeRouter) WritePush(route core.Route) error {
	f.current = route
	f.trace = append(f.trace, "push "+route.Fragment())
	return nil
}

func (f *fakeRouter) Subscribe(onChange func(core.Route)) (func(), error) {
	f.subs = append(f.subs, onChange)
	return func() {}, nil
}

// navigate simulates history navigation landing on route, as the session
// router does for back/forward.
func (f *fakeRouter) navigate(route core.Route) {
	f.current = route
	for _, fn := range f.subs {
		fn(route)
	}
}

type fixture struct {
	engine    *engine.Engine
	backend   *fakeBackend
	router    *fakeRouter
	scheduler *persist.ManualScheduler
}

func newFixture(t *testing.T, notes []core.Note, fragment string, selectFirst bool) *fixture {
	t.Helper()

	backend := &fakeBackend{notes: notes}
	router := &fakeRouter{current: core.ParseFragment(fragment)}
	scheduler := persist.NewManualScheduler()

	n := 0
	ids := core.IDGeneratorFunc(func() string {
		n++
		return fmt.Sprintf("gen%d", n)
	})
	var tick int64
	clock := core.Clock(func() int64 {
		tick++
		return tick * 1000
	})

	eng, err := engine.New(engine.Config{
		Backend:     backend,
		Router:      router,
		IDs:         ids,
		Clock:       clock,
		Scheduler:   scheduler,
		SelectFirst: selectFirst,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	require.NoError(t, eng.Start(context.Background()))
	t.Cleanup(func() { _ = eng.Close() })

	return &fixture{engine: eng, backend: backend, router: router, scheduler: scheduler}
}

func TestStart_AdoptsDeepLink(t *testing.T) {
	notes := []core.Note{{ID: "n1", UpdatedAt: 200}, {ID: "n2", UpdatedAt: 100}}
	f := newFixture(t, notes, "#/note/n2", false)

	selected := f.engine.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "n2", selected.ID)
	assert.Equal(t, []string{"replace #/note/n2"}, f.router.trace)
}

func TestStart_SelectFirstLandsOnNewestNote(t *testing.T) {
	notes := []core.Note{{ID: "n1", UpdatedAt: 200}, {ID: "n2", UpdatedAt: 100}}
	f := newFixture(t, notes, "#", true)

	selected := f.engine.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "n1", selected.ID)
	assert.Equal(t, []string{"replace #/note/n1"}, f.router.trace)
}

func TestStart_EmptyEverything(t *testing.T) {
	f := newFixture(t, nil, "#", true)

	assert.Nil(t, f.engine.Selected())
	assert.Empty(t, f.engine.Notes())
	assert.Equal(t, []string{"replace #"}, f.router.trace)
}

func TestAdd_PersistsAfterDebounceAndPushesRoute(t *testing.T) {
	f := newFixture(t, nil, "#", false)

	id := f.engine.Add()
	assert.Equal(t, "gen1", id)

	// Inside the debounce window nothing has been written yet.
	assert.Zero(t, f.backend.saveCount())
	assert.Equal(t, []string{"replace #", "push #/note/gen1"}, f.router.trace)

	f.scheduler.Advance(persist.DefaultDebounce)
	require.Equal(t, 1, f.backend.saveCount())
	saved := f.backend.lastSave()
	require.Len(t, saved, 1)
	assert.Equal(t, "gen1", saved[0].ID)
}

func TestRapidEditsCoalesceIntoOneSave(t *testing.T) {
	f := newFixture(t, []core.Note{{ID: "n1"}}, "#", false)

	title := "draft"
	for i := 0; i < 5; i++ {
		f.engine.Update("n1", core.Patch{Title: &title})
		f.scheduler.Advance(persist.DefaultDebounce / 2)
	}
	f.scheduler.Advance(persist.DefaultDebounce)

	assert.Equal(t, 1, f.backend.saveCount(), "each edit restarts the window; only the trailing edge writes")
	saved := f.backend.lastSave()
	require.Len(t, saved, 1)
	assert.Equal(t, "draft", saved[0].Title)
}

func TestDelete_SelectedNoteRewritesRouteInPlace(t *testing.T) {
	f := newFixture(t, []core.Note{{ID: "n1"}}, "#/note/n1", false)

	f.engine.Delete("n1")

	assert.Nil(t, f.engine.Selected())
	assert.Equal(t, []string{"replace #/note/n1", "replace #"}, f.router.trace,
		"removing the routed note must not add a history entry")

	f.scheduler.Advance(persist.DefaultDebounce)
	require.Equal(t, 1, f.backend.saveCount())
	assert.Empty(t, f.backend.lastSave())
}

func TestSelect_PushesOnce(t *testing.T) {
	f := newFixture(t, []core.Note{{ID: "n1"}, {ID: "n2"}}, "#", false)

	f.engine.Select("n2")
	f.engine.Select("n2")

	assert.Equal(t, []string{"replace #", "push #/note/n2"}, f.router.trace)
	assert.Zero(t, f.backend.saveCount(), "selection is ephemeral and never persisted")
}

func TestRouterNavigation_AppliesSynchronously(t *testing.T) {
	f := newFixture(t, []core.Note{{ID: "n1"}, {ID: "n2"}}, "#/note/n2", false)

	f.router.navigate(core.Route{ID: "n1"})

	selected := f.engine.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "n1", selected.ID)
	assert.Equal(t, []string{"replace #/note/n2"}, f.router.trace,
		"a router-originated selection must not echo back as a push")
}

func TestRouterNavigation_EmptyRouteKeepsSelection(t *testing.T) {
	f := newFixture(t, []core.Note{{ID: "n1"}}, "#/note/n1", false)

	f.router.navigate(core.Route{})

	selected := f.engine.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "n1", selected.ID)
}

func TestClose_CancelsPendingWrite(t *testing.T) {
	f := newFixture(t, nil, "#", false)

	f.engine.Add()
	require.NoError(t, f.engine.Close())

	f.scheduler.Advance(persist.DefaultDebounce)
	assert.Zero(t, f.backend.saveCount())
}

func TestFlush_WritesImmediately(t *testing.T) {
	f := newFixture(t, nil, "#", false)

	f.engine.Add()
	f.engine.Flush()

	assert.Equal(t, 1, f.backend.saveCount())
	assert.Zero(t, f.scheduler.Armed())
}

func TestTheme(t *testing.T) {
	f := newFixture(t, nil, "#", false)

	assert.Equal(t, core.ThemeLight, f.engine.Theme())
	require.NoError(t, f.engine.SetTheme(core.ThemeDark))
	assert.Equal(t, core.ThemeDark, f.engine.Theme())
	assert.Error(t, f.engine.SetTheme(core.Theme("sepia")))
}

func TestBack_WithoutHistorySupport(t *testing.T) {
	f := newFixture(t, nil, "#", false)

	assert.ErrorIs(t, f.engine.Back(), core.ErrNoHistory)
	assert.ErrorIs(t, f.engine.Forward(), core.ErrNoHistory)
}

func TestStart_Twice(t *testing.T) {
	f := newFixture(t, nil, "#", false)
	assert.Error(t, f.engine.Start(context.Background()))
}

func TestUpdate_RefreshesTimestamp(t *testing.T) {
	f := newFixture(t, []core.Note{{ID: "n1", UpdatedAt: 500_000}}, "#", false)

	title := "same"
	f.engine.Update("n1", core.Patch{Title: &title})

	note, ok := f.engine.Get("n1")
	require.True(t, ok)
	assert.GreaterOrEqual(t, note.UpdatedAt, int64(500_000),
		"timestamps never move backwards, even against a lagging clock")

	// The write is still owed regardless of how the clock compares.
	assert.Equal(t, 1, f.scheduler.Armed())
	f.scheduler.Advance(persist.DefaultDebounce)
	assert.Equal(t, 1, f.backend.saveCount())
}

func TestSearchThroughEngine(t *testing.T) {
	notes := []core.Note{
		{ID: "n1", Title: "Groceries", Content: "milk"},
		{ID: "n2", Title: "Work", Content: "standup at 10"},
	}
	f := newFixture(t, notes, "#", false)

	f.engine.SetQuery("GROC")
	filtered := f.engine.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "n1", filtered[0].ID)

	assert.Zero(t, f.backend.saveCount(), "queries never touch the backend")
	assert.Zero(t, f.scheduler.Armed())
}
