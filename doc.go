// Package jot is a local-first note-taking engine: an in-memory note store
// with CRUD and search semantics, a debounced write-through to a file-backed
// persistence layer, and a bidirectional synchronization protocol between the
// current selection and a URL-fragment route with real back/forward history.
//
// The engine is the only stateful surface; persistence and routing follow the
// store by observing its change events, never the other way around. A typical
// embedding:
//
//	eng, err := jot.Open(ctx, dir)
//	if err != nil {
//		return err
//	}
//	defer eng.Close()
//
//	id := eng.Add()
//	eng.Update(id, jot.Patch{Title: &title})
//	eng.Flush() // force the debounced write before a short-lived process exits
//
// Storage lives under <dir>/.jot: the note collection, the theme preference
// and the navigation session. All of it degrades gracefully; corrupt state is
// treated as absent, never fatal.
package jot
