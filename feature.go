package discrust

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// ExceptionValues holds the per-sentinel aggregate statistics for the
// values of x that are withheld from the continuous discretization and
// reported as their own categorical slot instead. vals is sorted and
// deduplicated under the NaN-safe total order; the parallel count arrays
// are populated during Feature construction and the WoE/IV arrays are
// filled exactly once, at the end of it.
type ExceptionValues struct {
	Vals     []float64
	OnesCt   []float64
	ZeroCt   []float64
	TotalsCt []float64
	IV       []float64
	WoE      []float64
}

func newExceptionValues(vals []float64) *ExceptionValues {
	v := append([]float64(nil), vals...)
	sort.Slice(v, func(i, j int) bool { return lessNaN(v[i], v[j]) })

	deduped := v[:0]
	for i, x := range v {
		if i == 0 || !equalNaN(deduped[len(deduped)-1], x) {
			deduped = append(deduped, x)
		}
	}

	n := len(deduped)
	return &ExceptionValues{
		Vals:     deduped,
		OnesCt:   make([]float64, n),
		ZeroCt:   make([]float64, n),
		TotalsCt: make([]float64, n),
		IV:       make([]float64, n),
		WoE:      make([]float64, n),
	}
}

// indexOf returns the slot index of v under NaN-safe equality, and whether
// v is an exception value at all. The exception list is expected to be
// small, so a linear scan over the (already sorted) slice is used rather
// than a binary search.
func (e *ExceptionValues) indexOf(v float64) (int, bool) {
	for i, val := range e.Vals {
		if equalNaN(val, v) {
			return i, true
		}
	}
	return -1, false
}

func (e *ExceptionValues) add(idx int, w, y float64) {
	e.TotalsCt[idx] += w
	e.OnesCt[idx] += w * y
	if y < 1 {
		e.ZeroCt[idx] += w
	}
}

func (e *ExceptionValues) finalize(totalOnes, totalZero float64) {
	for i := range e.Vals {
		onesDist := e.OnesCt[i] / totalOnes
		zeroDist := e.ZeroCt[i] / totalZero
		woe := math.Log(onesDist / zeroDist)
		e.WoE[i] = woe
		e.IV[i] = (onesDist - zeroDist) * woe
	}
}

// Feature is the sorted, cumulative-statistic aggregation of a single
// numeric column x against a binary target y, built once and never
// mutated thereafter. vals holds the strictly increasing distinct
// non-exception values observed; the cuml* slices are prefix sums, in
// weighted counts, aligned with vals, so that the statistics for any
// contiguous range of distinct values can be recovered in O(1).
type Feature struct {
	Vals         []float64
	CumlOnesCt   []float64
	CumlZeroCt   []float64
	CumlTotalsCt []float64
	TotalOnes    float64
	TotalZero    float64
	Exceptions   *ExceptionValues
}

// newFeature builds a Feature from parallel columns x, y, w (all the same
// length) and a set of exception values to withhold from the continuous
// aggregation. y values less than 1 count as the negative class.
func newFeature(x, y, w []float64, exceptions []float64) (*Feature, error) {
	if len(x) != len(y) || len(y) != len(w) {
		return nil, errors.Errorf("discrust: x, y, and w must have equal length, got %d, %d, %d", len(x), len(y), len(w))
	}

	exceptionValues := newExceptionValues(exceptions)

	perm := make([]int, len(x))
	for i := range perm {
		perm[i] = i
	}
	sort.Slice(perm, func(a, b int) bool { return lessNaN(x[perm[a]], x[perm[b]]) })

	f := &Feature{Exceptions: exceptionValues}

	totalsIdx := -1
	var xHat float64
	seeded := false

	for _, i := range perm {
		if math.IsNaN(y[i]) {
			return nil, &ContainsNaNError{Column: "y column"}
		}
		if math.IsNaN(w[i]) {
			return nil, &ContainsNaNError{Column: "weight column"}
		}

		xi := x[i]
		ones := w[i] * y[i]
		var zero float64
		if y[i] < 1 {
			zero = w[i]
		}

		if idx, ok := exceptionValues.indexOf(xi); ok {
			exceptionValues.add(idx, w[i], y[i])
			f.TotalOnes += ones
			f.TotalZero += zero
			continue
		}

		if math.IsNaN(xi) {
			return nil, &ContainsNaNError{Column: "x column, but NaN is not an exception value"}
		}

		f.TotalOnes += ones
		f.TotalZero += zero

		switch {
		case !seeded:
			f.Vals = append(f.Vals, xi)
			f.CumlOnesCt = append(f.CumlOnesCt, ones)
			f.CumlZeroCt = append(f.CumlZeroCt, zero)
			f.CumlTotalsCt = append(f.CumlTotalsCt, w[i])
			totalsIdx = 0
			xHat = xi
			seeded = true
		case xHat < xi:
			f.Vals = append(f.Vals, xi)
			f.CumlOnesCt = append(f.CumlOnesCt, f.CumlOnesCt[totalsIdx]+ones)
			f.CumlZeroCt = append(f.CumlZeroCt, f.CumlZeroCt[totalsIdx]+zero)
			f.CumlTotalsCt = append(f.CumlTotalsCt, f.CumlTotalsCt[totalsIdx]+w[i])
			totalsIdx++
			xHat = xi
		default:
			f.CumlOnesCt[totalsIdx] += ones
			f.CumlZeroCt[totalsIdx] += zero
			f.CumlTotalsCt[totalsIdx] += w[i]
		}
	}

	exceptionValues.finalize(f.TotalOnes, f.TotalZero)

	return f, nil
}

// prefixOnes, prefixZero, and prefixTotals return the cumulative weighted
// count through index i, inclusive, treating i < 0 as the empty prefix.
func (f *Feature) prefixOnes(i int) float64 {
	if i < 0 {
		return 0
	}
	return f.CumlOnesCt[i]
}

func (f *Feature) prefixZero(i int) float64 {
	if i < 0 {
		return 0
	}
	return f.CumlZeroCt[i]
}

func (f *Feature) prefixTotals(i int) float64 {
	if i < 0 {
		return 0
	}
	return f.CumlTotalsCt[i]
}

// splitIVWoe computes the IV and WoE for the left half [start, start+splitIdx]
// and right half [start+splitIdx+1, stop) of the distinct-value range
// [start, stop), in O(1) via the prefix sums.
func (f *Feature) splitIVWoe(splitIdx, start, stop int) (lhsIV, lhsWoe, rhsIV, rhsWoe float64) {
	k := start + splitIdx

	lhsOnes := f.prefixOnes(k) - f.prefixOnes(start-1)
	lhsZero := f.prefixZero(k) - f.prefixZero(start-1)
	rhsOnes := f.prefixOnes(stop-1) - f.prefixOnes(k)
	rhsZero := f.prefixZero(stop-1) - f.prefixZero(k)

	lhsOnesDist := lhsOnes / f.TotalOnes
	lhsZeroDist := lhsZero / f.TotalZero
	lhsWoe = math.Log(lhsOnesDist / lhsZeroDist)
	lhsIV = (lhsOnesDist - lhsZeroDist) * lhsWoe

	rhsOnesDist := rhsOnes / f.TotalOnes
	rhsZeroDist := rhsZero / f.TotalZero
	rhsWoe = math.Log(rhsOnesDist / rhsZeroDist)
	rhsIV = (rhsOnesDist - rhsZeroDist) * rhsWoe

	return lhsIV, lhsWoe, rhsIV, rhsWoe
}

// splitTotalsCtOnesCt returns the absolute weighted (total, ones) counts
// for the same left/right split boundary as splitIVWoe.
func (f *Feature) splitTotalsCtOnesCt(splitIdx, start, stop int) (lhsTotal, lhsOnes, rhsTotal, rhsOnes float64) {
	k := start + splitIdx

	lhsTotal = f.prefixTotals(k) - f.prefixTotals(start-1)
	lhsOnes = f.prefixOnes(k) - f.prefixOnes(start-1)
	rhsTotal = f.prefixTotals(stop-1) - f.prefixTotals(k)
	rhsOnes = f.prefixOnes(stop-1) - f.prefixOnes(k)

	return lhsTotal, lhsOnes, rhsTotal, rhsOnes
}
