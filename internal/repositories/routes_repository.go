package repositories

import (
	"context"
	"slices"
	"sync"

	"bdvail/internal/api"
	"bdvail/internal/domain/models"
)

// RoutesRepository wraps the route listing call with a single-slot cache
// that lives as long as the repository. There is no TTL: the slot is only
// replaced by a successful fetch, so a failed refresh keeps the old list.
type RoutesRepository struct {
	api api.Transport

	mu     sync.RWMutex
	cached []models.Route
	loaded bool
}

func NewRoutesRepository(t api.Transport) *RoutesRepository {
	return &RoutesRepository{api: t}
}

// GetRoutes returns the cached routes, fetching them when nothing is cached
// yet or forceRefresh is set. Fetch errors are returned unchanged.
func (r *RoutesRepository) GetRoutes(ctx context.Context, forceRefresh bool) ([]models.Route, error) {
	if !forceRefresh {
		r.mu.RLock()
		if r.loaded {
			out := slices.Clone(r.cached)
			r.mu.RUnlock()
			return out, nil
		}
		r.mu.RUnlock()
	}

	routes, err := r.api.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}
	if routes == nil {
		routes = []models.Route{}
	}

	r.mu.Lock()
	r.cached = routes
	r.loaded = true
	r.mu.Unlock()

	return slices.Clone(routes), nil
}

// GetRouteByID looks the id up in whatever is cached. It never calls the
// network.
func (r *RoutesRepository) GetRouteByID(id int64) (models.Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rt := range r.cached {
		if rt.ID == id {
			return rt, true
		}
	}
	return models.Route{}, false
}
