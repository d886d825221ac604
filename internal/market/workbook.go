package market

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource reads the live workbook straight from disk. Formula cells
// come back as their last calculated values, so the table reflects whatever
// the sheet held when it was last saved.
type WorkbookSource struct {
	path  string
	sheet string
}

func NewWorkbookSource(path, sheet string) *WorkbookSource {
	return &WorkbookSource{path: path, sheet: sheet}
}

func (s *WorkbookSource) Origin() Origin { return OriginLive }

func (s *WorkbookSource) Fetch(ctx context.Context) ([]Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", s.sheet, err)
	}
	quotes, err := projectTable(rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", s.sheet, err)
	}
	return quotes, nil
}
