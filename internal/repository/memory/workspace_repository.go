package memory

import (
	"time"

	"cim-memo-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// WorkspaceRepository keeps live workspaces in memory. Entries expire with the
// session: the TTL matches the session-token lifetime and expired workspaces
// are purged together with their turn logs and file records.
type WorkspaceRepository struct {
	cache *cache.Cache
}

func NewWorkspaceRepository(ttl time.Duration) *WorkspaceRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &WorkspaceRepository{
		cache: c,
	}
}

func (r *WorkspaceRepository) Save(workspace *store.Workspace) {
	r.cache.Set(workspace.ID, workspace, cache.DefaultExpiration)
}

func (r *WorkspaceRepository) Get(workspaceID string) (*store.Workspace, bool) {
	if x, found := r.cache.Get(workspaceID); found {
		return x.(*store.Workspace), true
	}
	return nil, false
}

func (r *WorkspaceRepository) Delete(workspaceID string) {
	r.cache.Delete(workspaceID)
}
