package projectors

import (
	"context"

	"bdvail/internal/domain/models"
)

const (
	msgNoRoutes        = "No routes available yet."
	msgRoutesTransport = "Failed to load routes."
)

type RouteSource interface {
	GetRoutes(ctx context.Context, forceRefresh bool) ([]models.Route, error)
	GetRouteByID(id int64) (models.Route, bool)
}

type RoutesState = State[[]models.Route]

// RoutesProjector drives every screen that lists routes.
type RoutesProjector struct {
	repo  RouteSource
	store *Store[RoutesState]
}

func NewRoutesProjector(repo RouteSource) *RoutesProjector {
	return &RoutesProjector{repo: repo, store: NewStore(RoutesState{})}
}

func (p *RoutesProjector) State() RoutesState { return p.store.Get() }

func (p *RoutesProjector) Subscribe() (<-chan RoutesState, func()) { return p.store.Subscribe() }

// Load reads routes through the cache; forceRefresh bypasses it. An empty
// list is reported as a failure.
func (p *RoutesProjector) Load(ctx context.Context, forceRefresh bool) RoutesState {
	return run(ctx, p.store, attempt[[]models.Route]{
		name: "list routes",
		call: func(ctx context.Context) ([]models.Route, error) {
			return p.repo.GetRoutes(ctx, forceRefresh)
		},
		project: func(routes []models.Route) Result[[]models.Route] {
			if len(routes) == 0 {
				return Result[[]models.Route]{Outcome: Failure, Message: msgNoRoutes}
			}
			return succeeded(routes)
		},
		transportFallback: msgRoutesTransport,
	})
}

// GetRouteByID is a cache lookup; it never calls the network.
func (p *RoutesProjector) GetRouteByID(id int64) (models.Route, bool) {
	return p.repo.GetRouteByID(id)
}

func (p *RoutesProjector) Reset() {
	p.store.Supersede(RoutesState{})
}
