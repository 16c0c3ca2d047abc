package objecturl

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/google/uuid"
)

// BlobPath is the route prefix under which registry handles are served.
const BlobPath = "/blob/"

// Handle is what a minted token points at.
type Handle struct {
	Keyspace models.Keyspace
	ID       string
}

// Registry mints {origin}/blob/{token} URLs backed by an in-memory table.
// A revoked token no longer resolves.
type Registry struct {
	origin string

	mu      sync.RWMutex
	handles map[string]Handle
}

func NewRegistry(origin string) *Registry {
	return &Registry{
		origin:  strings.TrimRight(origin, "/"),
		handles: make(map[string]Handle),
	}
}

func (r *Registry) Mint(_ context.Context, keyspace models.Keyspace, id string) (string, error) {
	token := uuid.NewString()

	r.mu.Lock()
	r.handles[token] = Handle{Keyspace: keyspace, ID: id}
	r.mu.Unlock()

	return r.origin + BlobPath + token, nil
}

// Revoke accepts either a full URL minted by this registry or a bare token.
func (r *Registry) Revoke(url string) {
	token := url
	if i := strings.LastIndex(url, BlobPath); i >= 0 {
		token = url[i+len(BlobPath):]
	}

	r.mu.Lock()
	delete(r.handles, token)
	r.mu.Unlock()
}

// Lookup returns the handle behind a live token.
func (r *Registry) Lookup(token string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handles[token]
	return h, ok
}

// Len reports the number of live handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}
