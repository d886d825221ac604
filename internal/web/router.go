package web

import (
	"context"

	"github.com/cloudwego/hertz/pkg/route"

	"github.com/charu0811/dashboard/internal/market"
	"github.com/charu0811/dashboard/internal/store"
)

// Quotes is the slice of the acquisition service the handlers need.
type Quotes interface {
	Acquire(ctx context.Context) (market.Snapshot, error)
	Invalidate()
}

// Register wires the dashboard page and the JSON API onto the engine.
func Register(r *route.Engine, quotes Quotes, st *store.Store) {
	r.GET("/", dashboardHandler(quotes))
	r.POST("/refresh", refreshHandler(quotes))

	r.GET("/healthz", healthHandler())
	r.GET("/api/v1/quotes", quotesHandler(quotes))
	r.POST("/api/v1/refresh", apiRefreshHandler(quotes))
	r.GET("/api/v1/fetches", fetchesHandler(st))
}
