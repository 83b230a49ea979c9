package carecontext

import (
	"context"

	"github.com/carenote/carenote/internal/aggregate"
)

// DatasetRepository loads one patient's full clinical dataset snapshot.
type DatasetRepository interface {
	// Dataset materializes every stored resource for the patient into the
	// collections the aggregation engine reads. A patient with no rows
	// yields an empty dataset, not an error.
	Dataset(ctx context.Context, patientID string) (*aggregate.Dataset, error)
}
