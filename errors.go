package discrust

import (
	"fmt"

	stderrors "errors"
)

// ErrNotFitted is returned by the predict operations when they are called
// on a Discretizer that has not completed a successful Fit.
var ErrNotFitted = stderrors.New("discrust: discretizer has not been fit")

// ErrPrediction is returned by PredictIdx when a value falls in no bin of
// the splits list. With a well-formed splits list (always bracketed by
// +/-Inf) this happens only for a NaN that is not an exception value.
var ErrPrediction = stderrors.New("discrust: failed to locate a bin for the given value")

// ContainsNaNError reports a NaN found in a column where it is disallowed.
type ContainsNaNError struct {
	Column string
}

func (e *ContainsNaNError) Error() string {
	return fmt.Sprintf("discrust: NaN found in %s", e.Column)
}
