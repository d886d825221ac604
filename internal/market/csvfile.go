package market

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVSource reads the static snapshot exported next to the workbook. The
// exporter writes the header line twice, so the first line is discarded and
// the second is treated as the header.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource { return &CSVSource{path: path} }

func (s *CSVSource) Origin() Origin { return OriginSnapshot }

func (s *CSVSource) Fetch(ctx context.Context) ([]Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// discard the duplicated header line
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", s.path, err)
	}
	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read snapshot %s: %w", s.path, err)
		}
		rows = append(rows, rec)
	}
	quotes, err := projectTable(rows)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", s.path, err)
	}
	return quotes, nil
}
