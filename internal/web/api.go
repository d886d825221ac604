package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/charu0811/dashboard/internal/store"
)

func healthHandler() app.HandlerFunc {
	return func(_ context.Context, c *app.RequestContext) {
		c.JSON(200, map[string]bool{"ok": true})
	}
}

func quotesHandler(q Quotes) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if q == nil {
			c.JSON(http.StatusInternalServerError, map[string]any{
				"ok":    false,
				"error": "quote service not configured",
			})
			return
		}
		snap, err := q.Acquire(ctx)
		if err != nil && snap.Empty() {
			c.JSON(http.StatusBadGateway, map[string]any{
				"ok":      false,
				"error":   err.Error(),
				"source":  snap.Source,
				"cached":  snap.Cached,
				"notices": snap.Notices,
			})
			return
		}
		c.JSON(http.StatusOK, map[string]any{
			"ok":         true,
			"source":     snap.Source,
			"cached":     snap.Cached,
			"fetched_at": snap.FetchedAt.Unix(),
			"notices":    snap.Notices,
			"quotes":     snap.Rows,
		})
	}
}

func apiRefreshHandler(q Quotes) app.HandlerFunc {
	return func(_ context.Context, c *app.RequestContext) {
		if q == nil {
			c.JSON(http.StatusInternalServerError, map[string]any{
				"ok":    false,
				"error": "quote service not configured",
			})
			return
		}
		q.Invalidate()
		c.JSON(http.StatusOK, map[string]any{"ok": true})
	}
}

func fetchesHandler(st *store.Store) app.HandlerFunc {
	return func(_ context.Context, c *app.RequestContext) {
		if st == nil {
			c.JSON(http.StatusInternalServerError, map[string]any{
				"ok":    false,
				"error": "store not configured",
			})
			return
		}
		limit, err := parseLimit(string(c.Query("limit")))
		if err != nil {
			c.JSON(http.StatusBadRequest, map[string]any{
				"ok":    false,
				"error": err.Error(),
			})
			return
		}
		items, err := st.RecentFetches(limit)
		if err != nil {
			c.JSON(http.StatusBadRequest, map[string]any{
				"ok":    false,
				"error": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, map[string]any{
			"ok":    true,
			"items": items,
		})
	}
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 200, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid limit")
	}
	if v > 1000 {
		return 1000, nil
	}
	return v, nil
}
