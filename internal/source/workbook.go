package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mgleavitt/lockquests/internal/models"
)

// WorkbookConfig points at a local .xlsx export of the master sheet.
type WorkbookConfig struct {
	Path  string
	Sheet string // worksheet name; e.g. "Master List"
}

// WorkbookSource reads the room table from an exported spreadsheet file.
// It exists for offline development and for deployments that prefer a
// checked-in export over live API access; the produced table is identical
// in shape to the sheets source.
type WorkbookSource struct {
	cfg WorkbookConfig
}

// NewWorkbookSource builds a file-backed table source.
func NewWorkbookSource(cfg WorkbookConfig) *WorkbookSource {
	return &WorkbookSource{cfg: cfg}
}

// Fetch opens the workbook and reads all rows of the configured worksheet.
func (s *WorkbookSource) Fetch(ctx context.Context) (*models.Table, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	f, err := excelize.OpenFile(s.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("workbook open: %w", err)
	}
	defer f.Close()

	sheet := s.cfg.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("workbook read %q: %w", sheet, err)
	}

	return splitTable(rows)
}
