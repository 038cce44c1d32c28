package aggregator

import (
	"errors"
	"fmt"

	"github.com/pable/go-shotcharts/internal/model"
)

// ErrMissingBaseline matches any *MissingBaselineError via errors.Is.
var ErrMissingBaseline = errors.New("missing league average")

// ErrDegenerateDataset is returned when every occupied cell is dominated by
// the restricted area, leaving no volume to scale markers against.
var ErrDegenerateDataset = errors.New("degenerate dataset: no cell outside the restricted area")

// MissingBaselineError reports a zone that has shots but no league average.
type MissingBaselineError struct {
	Zone model.ZoneKey
}

func (e *MissingBaselineError) Error() string {
	return fmt.Sprintf("missing league average for zone %s", e.Zone)
}

// Is makes errors.Is(err, ErrMissingBaseline) true.
func (e *MissingBaselineError) Is(target error) bool {
	return target == ErrMissingBaseline
}
