package market

import (
	"fmt"
	"strconv"
	"strings"
)

// projectTable turns a raw header-plus-data block into cleaned quote rows.
// Schema columns are located by header name so the sheet may reorder them or
// carry extras; rows without an Outrights value are dropped; numeric cells
// that are blank or malformed come back nil.
func projectTable(rows [][]string) ([]Quote, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("table is empty")
	}
	idx, err := columnIndex(rows[0])
	if err != nil {
		return nil, err
	}
	out := make([]Quote, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, idx[0]))
		if name == "" {
			continue
		}
		out = append(out, Quote{
			Outrights: name,
			Last:      parseCell(cell(row, idx[1])),
			Settle:    parseCell(cell(row, idx[2])),
			BidQty:    parseCell(cell(row, idx[3])),
			Bid:       parseCell(cell(row, idx[4])),
			Ask:       parseCell(cell(row, idx[5])),
			AskQty:    parseCell(cell(row, idx[6])),
			VWAP:      parseCell(cell(row, idx[7])),
		})
	}
	return out, nil
}

// columnIndex maps each schema column to its position in the header row,
// first occurrence wins.
func columnIndex(header []string) ([8]int, error) {
	var idx [8]int
	for i := range idx {
		idx[i] = -1
	}
	for col, name := range header {
		name = strings.TrimSpace(name)
		for i, want := range Columns {
			if name == want && idx[i] == -1 {
				idx[i] = col
			}
		}
	}
	for i, col := range idx {
		if col == -1 {
			return idx, fmt.Errorf("column %q not found in header", Columns[i])
		}
	}
	return idx, nil
}

// cell tolerates ragged rows; spreadsheet readers trim trailing empty cells.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseCell(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	// formatted sheets render thousands separators into the cell text
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
