package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	known   map[string]bool
	loadErr error
	loaded  []string
	resets  int
}

func (f *fakeSession) LoadByID(_ context.Context, id string) (bool, error) {
	f.loaded = append(f.loaded, id)
	if f.loadErr != nil {
		return false, f.loadErr
	}
	return f.known[id], nil
}

func (f *fakeSession) Reset(context.Context) { f.resets++ }

func TestEventID(t *testing.T) {
	tests := []struct {
		path string
		id   string
		ok   bool
	}{
		{"/event/abc", "abc", true},
		{"/event/abc/", "abc", true},
		{"/event/", "", false},
		{"/event/abc/edit", "", false},
		{"/events/abc", "", false},
		{"/", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			id, ok := EventID(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("known event loads", func(t *testing.T) {
		s := &fakeSession{known: map[string]bool{"e1": true}}
		out, err := Route(ctx, s, "/event/e1")
		require.NoError(t, err)
		assert.Equal(t, Outcome{EventID: "e1", Loaded: true}, out)
		assert.Zero(t, s.resets)
	})

	t.Run("unknown event leaves session alone", func(t *testing.T) {
		s := &fakeSession{}
		out, err := Route(ctx, s, "/event/nope/")
		require.NoError(t, err)
		assert.False(t, out.Loaded)
		assert.Equal(t, []string{"nope"}, s.loaded)
		assert.Zero(t, s.resets)
	})

	t.Run("other path resets", func(t *testing.T) {
		s := &fakeSession{}
		out, err := Route(ctx, s, "/")
		require.NoError(t, err)
		assert.Equal(t, Outcome{}, out)
		assert.Equal(t, 1, s.resets)
		assert.Empty(t, s.loaded)
	})

	t.Run("full share link is accepted", func(t *testing.T) {
		s := &fakeSession{known: map[string]bool{"e2": true}}
		out, err := Route(ctx, s, "http://localhost:8080/event/e2")
		require.NoError(t, err)
		assert.True(t, out.Loaded)
	})

	t.Run("escaped slash stays in the id", func(t *testing.T) {
		s := &fakeSession{known: map[string]bool{"a/b": true}}
		out, err := Route(ctx, s, "/event/a%2Fb")
		require.NoError(t, err)
		assert.Equal(t, Outcome{EventID: "a/b", Loaded: true}, out)
		assert.Zero(t, s.resets)

		out, err = Route(ctx, s, ShareLink("http://localhost:8080", "a/b"))
		require.NoError(t, err)
		assert.True(t, out.Loaded)
	})

	t.Run("load error is returned", func(t *testing.T) {
		s := &fakeSession{loadErr: errors.New("disk on fire")}
		_, err := Route(ctx, s, "/event/e1")
		require.Error(t, err)
	})
}

func TestShareLink(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/event/abc", ShareLink("http://localhost:8080", "abc"))
	assert.Equal(t, "http://localhost:8080/event/abc", ShareLink("http://localhost:8080/", "abc"))

	id, ok := EventID("/event/" + "abc")
	require.True(t, ok)
	assert.Equal(t, "abc", id)
}
