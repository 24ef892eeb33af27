package core

import (
	"net/url"
	"strings"
)

// routePrefix is the fragment prefix naming a selected note.
const routePrefix = "#/note/"

// Route is the fragment encoding of the current selection. The zero value
// means "no selection" and encodes as "#".
type Route struct {
	ID string
}

// IsZero reports whether the route names no note.
func (r Route) IsZero() bool {
	return r.ID == ""
}

// Fragment encodes the route in its wire format: "#/note/<escaped id>" for a
// selected note, "#" otherwise.
func (r Route) Fragment() string {
	if r.ID == "" {
		return "#"
	}
	return routePrefix + url.PathEscape(r.ID)
}

// ParseFragment decodes a fragment into a Route. Any shape other than the two
// canonical forms, including an undecodable percent escape, fails open to the
// zero Route rather than erroring.
func ParseFragment(fragment string) Route {
	rest, ok := strings.CutPrefix(fragment, routePrefix)
	if !ok || rest == "" {
		return Route{}
	}
	id, err := url.PathUnescape(rest)
	if err != nil {
		return Route{}
	}
	return Route{ID: id}
}
