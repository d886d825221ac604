package market

import (
	"strings"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestProjectTable(t *testing.T) {
	rows := [][]string{
		{"Outrights", "Last", "Settle", "BidQty", "Bid", "Ask", "AskQty", "VWAP"},
		{"DAP_F26", "101.25", "100.5", "25", "101", "101.5", "30", "101.1234"},
		{"DAP_G26", "", "99.75", "10", "99.5", "100.25", "15", "n/a"},
	}
	got, err := projectTable(rows)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 rows, got %d", len(got))
	}
	q := got[0]
	if q.Outrights != "DAP_F26" {
		t.Fatalf("outrights = %q", q.Outrights)
	}
	if q.Last == nil || *q.Last != 101.25 {
		t.Fatalf("last = %v", q.Last)
	}
	if q.VWAP == nil || *q.VWAP != 101.1234 {
		t.Fatalf("vwap = %v", q.VWAP)
	}
	// blank and malformed cells both come back nil
	if got[1].Last != nil {
		t.Fatalf("blank last = %v", *got[1].Last)
	}
	if got[1].VWAP != nil {
		t.Fatalf("malformed vwap = %v", *got[1].VWAP)
	}
}

func TestProjectTableReorderedAndExtraColumns(t *testing.T) {
	rows := [][]string{
		{"Venue", "VWAP", "Outrights", "AskQty", "Ask", "Bid", "BidQty", "Settle", "Last", "Comment"},
		{"X", "7.7777", "DAP_F26", "6", "5.5", "4.4", "3", "2.2", "1.1", "ignore me"},
	}
	got, err := projectTable(rows)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 row, got %d", len(got))
	}
	q := got[0]
	if q.Outrights != "DAP_F26" {
		t.Fatalf("outrights = %q", q.Outrights)
	}
	if *q.Last != 1.1 || *q.Settle != 2.2 || *q.BidQty != 3 || *q.Bid != 4.4 {
		t.Fatalf("bad mapping: %+v", q)
	}
	if *q.Ask != 5.5 || *q.AskQty != 6 || *q.VWAP != 7.7777 {
		t.Fatalf("bad mapping: %+v", q)
	}
}

func TestProjectTableDropsBlankOutrights(t *testing.T) {
	rows := [][]string{
		{"Outrights", "Last", "Settle", "BidQty", "Bid", "Ask", "AskQty", "VWAP"},
		{"", "1", "1", "1", "1", "1", "1", "1"},
		{"   ", "2", "2", "2", "2", "2", "2", "2"},
		{"DAP_F26", "3", "3", "3", "3", "3", "3", "3"},
	}
	got, err := projectTable(rows)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(got) != 1 || got[0].Outrights != "DAP_F26" {
		t.Fatalf("want only DAP_F26, got %+v", got)
	}
}

func TestProjectTableRaggedRows(t *testing.T) {
	rows := [][]string{
		{"Outrights", "Last", "Settle", "BidQty", "Bid", "Ask", "AskQty", "VWAP"},
		{"DAP_F26", "101.25"},
	}
	got, err := projectTable(rows)
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("want 1 row, got %d", len(got))
	}
	if got[0].Last == nil || *got[0].Last != 101.25 {
		t.Fatalf("last = %v", got[0].Last)
	}
	if got[0].Settle != nil || got[0].VWAP != nil {
		t.Fatalf("missing cells should be nil: %+v", got[0])
	}
}

func TestProjectTableMissingColumn(t *testing.T) {
	rows := [][]string{
		{"Outrights", "Last", "Settle", "BidQty", "Bid", "Ask", "AskQty"},
		{"DAP_F26", "1", "2", "3", "4", "5", "6"},
	}
	_, err := projectTable(rows)
	if err == nil {
		t.Fatalf("expected missing column error")
	}
	if !strings.Contains(err.Error(), "VWAP") {
		t.Fatalf("error should name the column: %v", err)
	}
}

func TestProjectTableEmpty(t *testing.T) {
	if _, err := projectTable(nil); err == nil {
		t.Fatalf("expected error for empty table")
	}
	// header only is a valid, empty table
	got, err := projectTable([][]string{{"Outrights", "Last", "Settle", "BidQty", "Bid", "Ask", "AskQty", "VWAP"}})
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want 0 rows, got %d", len(got))
	}
}

func TestParseCell(t *testing.T) {
	cases := []struct {
		in   string
		want *float64
	}{
		{"", nil},
		{"  ", nil},
		{"abc", nil},
		{"101.25", f64(101.25)},
		{" 7 ", f64(7)},
		{"1,234.5", f64(1234.5)},
		{"-0.125", f64(-0.125)},
	}
	for _, c := range cases {
		got := parseCell(c.in)
		switch {
		case c.want == nil && got != nil:
			t.Fatalf("%q: want nil, got %v", c.in, *got)
		case c.want != nil && got == nil:
			t.Fatalf("%q: want %v, got nil", c.in, *c.want)
		case c.want != nil && *got != *c.want:
			t.Fatalf("%q: want %v, got %v", c.in, *c.want, *got)
		}
	}
}
