// Package routing maps a location path onto the draft session and builds
// share links for published events.
package routing

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

var eventPath = regexp.MustCompile(`^/event/([^/]+)/?$`)

// Session is the part of the draft controller driven by routing.
type Session interface {
	LoadByID(ctx context.Context, id string) (bool, error)
	Reset(ctx context.Context)
}

// EventID extracts the event id from an /event/{id} path.
func EventID(path string) (string, bool) {
	m := eventPath.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	id, err := url.PathUnescape(m[1])
	if err != nil {
		return m[1], true
	}
	return id, true
}

// Outcome describes what Route did.
type Outcome struct {
	EventID string
	// Loaded is false both for non-event paths and for unknown ids.
	Loaded bool
}

// Route loads the event named by path, or resets the session for any
// other path. An unknown event id leaves the session untouched.
func Route(ctx context.Context, s Session, path string) (Outcome, error) {
	if u, err := url.Parse(path); err == nil && u.Path != "" {
		path = u.EscapedPath()
	}
	id, ok := EventID(path)
	if !ok {
		s.Reset(ctx)
		return Outcome{}, nil
	}
	loaded, err := s.LoadByID(ctx, id)
	if err != nil {
		return Outcome{EventID: id}, err
	}
	return Outcome{EventID: id, Loaded: loaded}, nil
}

// ShareLink returns {origin}/event/{id}.
func ShareLink(origin, id string) string {
	return strings.TrimRight(origin, "/") + "/event/" + url.PathEscape(id)
}
