package market

import (
	"context"
	"time"
)

// Columns is the display schema, in order. Sources project onto exactly
// these columns no matter how the sheet lays its table out.
var Columns = [8]string{"Outrights", "Last", "Settle", "BidQty", "Bid", "Ask", "AskQty", "VWAP"}

// Quote is one row of the market table, keyed by the Outrights contract
// identifier. Numeric fields are nil when the source cell was blank or not
// a number.
type Quote struct {
	Outrights string   `json:"outrights"`
	Last      *float64 `json:"last"`
	Settle    *float64 `json:"settle"`
	BidQty    *float64 `json:"bid_qty"`
	Bid       *float64 `json:"bid"`
	Ask       *float64 `json:"ask"`
	AskQty    *float64 `json:"ask_qty"`
	VWAP      *float64 `json:"vwap"`
}

// Origin tags where a snapshot's rows came from.
type Origin string

const (
	OriginLive     Origin = "live"
	OriginSnapshot Origin = "snapshot"
	OriginNone     Origin = "none"
)

// Snapshot is one acquisition outcome: the cleaned row-set plus the source
// that produced it and whatever went wrong on the way there.
type Snapshot struct {
	Rows      []Quote   `json:"rows"`
	Source    Origin    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
	Cached    bool      `json:"cached"`
	Notices   []string  `json:"notices,omitempty"`
}

func (s Snapshot) Empty() bool { return len(s.Rows) == 0 }

type Source interface {
	Origin() Origin
	Fetch(ctx context.Context) ([]Quote, error)
}
