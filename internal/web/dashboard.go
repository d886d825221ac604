package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"github.com/charu0811/dashboard/internal/logx"
	"github.com/charu0811/dashboard/internal/market"
)

//go:embed templates/dashboard.gohtml
var templateFS embed.FS

var dashboardTmpl = template.Must(
	template.New("dashboard.gohtml").Funcs(template.FuncMap{
		"price": formatPrice,
		"vwap":  formatVWAP,
		"qty":   formatQty,
	}).ParseFS(templateFS, "templates/dashboard.gohtml"),
)

// dashboardView is everything the page template needs, precomputed so the
// template stays free of source and formatting logic.
type dashboardView struct {
	Columns      [8]string
	Rows         []market.Quote
	FromSnapshot bool
	Empty        bool
	Notices      []string
	Refreshed    bool
	RenderedAt   string
}

func dashboardHandler(q Quotes) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if q == nil {
			c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("quote service not configured"))
			return
		}
		// the page renders whatever came back, failures ride in the notices
		snap, _ := q.Acquire(ctx)

		view := dashboardView{
			Columns:      market.Columns,
			Rows:         snap.Rows,
			FromSnapshot: snap.Source == market.OriginSnapshot,
			Empty:        snap.Empty(),
			Notices:      snap.Notices,
			Refreshed:    string(c.Query("refreshed")) == "1",
			RenderedAt:   time.Now().Format("15:04:05"),
		}

		var buf bytes.Buffer
		if err := dashboardTmpl.Execute(&buf, view); err != nil {
			logx.Error("render dashboard failed", zap.Error(err))
			c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("template error"))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	}
}

func refreshHandler(q Quotes) app.HandlerFunc {
	return func(_ context.Context, c *app.RequestContext) {
		if q == nil {
			c.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("quote service not configured"))
			return
		}
		q.Invalidate()
		c.Redirect(http.StatusSeeOther, []byte("/?refreshed=1"))
	}
}

func formatPrice(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}

func formatVWAP(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

// formatQty prints quantities without forcing decimals onto whole lots.
func formatQty(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
