package source

import (
	"context"
	"errors"

	"github.com/mgleavitt/lockquests/internal/models"
)

// ErrNoData indicates the upstream responded but carried no usable table,
// for example a sheet response without a values array. Callers treat it the
// same as a transport failure: the load failed, the record set is unknown.
var ErrNoData = errors.New("source: response contained no table data")

// TableSource fetches the raw room table. Row 0 of the upstream data is the
// header row; the source splits it off so downstream code never has to.
type TableSource interface {
	Fetch(ctx context.Context) (*models.Table, error)
}

// splitTable separates the header row from the data rows, guarding against
// empty responses.
func splitTable(values [][]string) (*models.Table, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrNoData
	}

	return &models.Table{
		Headers: values[0],
		Rows:    values[1:],
	}, nil
}
