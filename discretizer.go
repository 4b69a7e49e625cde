package discrust

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// discretizerConfiger is the private setter interface used by the
// package-level functional options below.
type discretizerConfiger interface {
	setMinObs(float64)
	setMaxBins(int)
	setMinIV(float64)
	setMinPos(float64)
	setMono(Mono)
}

func (d *Discretizer) setMinObs(v float64) { d.MinObs = v }
func (d *Discretizer) setMaxBins(n int)    { d.MaxBins = n }
func (d *Discretizer) setMinIV(v float64)  { d.MinIV = v }
func (d *Discretizer) setMinPos(v float64) { d.MinPos = v }
func (d *Discretizer) setMono(m Mono)      { d.Mono = m }

// MinObs sets the minimum weighted observation count required on each side
// of a candidate split.
func MinObs(v float64) func(discretizerConfiger) {
	return func(c discretizerConfiger) { c.setMinObs(v) }
}

// MaxBins caps the total number of bins the fitted tree may produce.
func MaxBins(n int) func(discretizerConfiger) {
	return func(c discretizerConfiger) { c.setMaxBins(n) }
}

// MinIV sets the minimum combined information value a candidate split must
// contribute to be considered.
func MinIV(v float64) func(discretizerConfiger) {
	return func(c discretizerConfiger) { c.setMinIV(v) }
}

// MinPos sets the minimum weighted positive count required on each side of
// a candidate split.
func MinPos(v float64) func(discretizerConfiger) {
	return func(c discretizerConfiger) { c.setMinPos(v) }
}

// WithMono sets the monotonicity constraint. MonoUnset (the default) elects
// the sign of the first accepted split.
func WithMono(m Mono) func(discretizerConfiger) {
	return func(c discretizerConfiger) { c.setMono(m) }
}

// Discretizer fits a monotonic binary-target discretizer for a single
// numeric feature and predicts bin index or WoE for new values. It should
// be constructed with NewDiscretizer.
type Discretizer struct {
	MinObs  float64
	MaxBins int
	MinIV   float64
	MinPos  float64
	Mono    Mono

	feature *Feature
	root    *Node
	splits  []float64
}

// NewDiscretizer returns a configured Discretizer. If no options are
// passed, the returned value is equivalent to:
//
//	NewDiscretizer(MinObs(5.0), MaxBins(10), MinIV(0.001), MinPos(5.0), WithMono(MonoUnset))
func NewDiscretizer(options ...func(discretizerConfiger)) *Discretizer {
	d := &Discretizer{
		MinObs:  5.0,
		MaxBins: 10,
		MinIV:   0.001,
		MinPos:  5.0,
		Mono:    MonoUnset,
	}

	for _, opt := range options {
		opt(d)
	}

	return d
}

// Fit builds the Feature aggregation for x, y, w (and the optional
// exception values) and grows the split tree, returning a copy of the
// sorted cut-point list. A failed fit resets the splits list to empty and
// leaves the Discretizer unfit, so subsequent predict calls report
// ErrNotFitted.
func (d *Discretizer) Fit(x, y, w, exceptions []float64) ([]float64, error) {
	d.splits = nil
	d.feature = nil
	d.root = nil

	feature, err := newFeature(x, y, w, exceptions)
	if err != nil {
		return nil, errors.Wrap(err, "fit: building feature aggregator")
	}

	root := &Node{
		minObs: d.MinObs,
		minIV:  d.MinIV,
		minPos: d.MinPos,
		mono:   d.Mono,
		Start:  0,
		Stop:   len(feature.Vals),
	}

	queue := nodeQueue{}
	queue.pushFront(root)
	nBins := 1

	for !queue.empty() {
		node := queue.popBack()

		info := node.findBestSplit(feature)
		if !info.Present {
			continue
		}

		nBins++
		if nBins > d.MaxBins {
			break
		}

		if d.Mono == MonoUnset {
			if info.LHSWoe < info.RHSWoe {
				d.Mono = MonoIncreasing
			} else {
				d.Mono = MonoDecreasing
			}
		}

		splitIdx := sort.Search(len(feature.Vals), func(i int) bool {
			return feature.Vals[i] > info.SplitValue
		})

		left := &Node{
			minObs: d.MinObs, minIV: d.MinIV, minPos: d.MinPos, mono: d.Mono,
			Woe: info.LHSWoe, IV: info.LHSIV, Start: node.Start, Stop: splitIdx,
		}
		right := &Node{
			minObs: d.MinObs, minIV: d.MinIV, minPos: d.MinPos, mono: d.Mono,
			Woe: info.RHSWoe, IV: info.RHSIV, Start: splitIdx, Stop: node.Stop,
		}

		node.Split = info
		node.Left = left
		node.Right = right

		queue.pushFront(left)
		queue.pushFront(right)

		d.splits = append(d.splits, info.SplitValue)
	}

	d.feature = feature
	d.root = root

	d.splits = append(d.splits, math.Inf(-1), math.Inf(1))
	sort.Float64s(d.splits)

	out := make([]float64, len(d.splits))
	copy(out, d.splits)
	return out, nil
}

// Splits returns a copy of the sorted cut-point list produced by the last
// successful Fit, or nil if the Discretizer has not been fit.
func (d *Discretizer) Splits() []float64 {
	if d.splits == nil {
		return nil
	}
	out := make([]float64, len(d.splits))
	copy(out, d.splits)
	return out
}

// ExceptionValues returns the fitted exception-value summary, or nil if
// the Discretizer has not been fit.
func (d *Discretizer) ExceptionValues() *ExceptionValues {
	if d.feature == nil {
		return nil
	}
	return d.feature.Exceptions
}

// PredictIdx maps each value of x either to its bin index (>= 0) or, for a
// value matching an exception value, to a negative 1-based exception slot
// index (-1 for the first exception value in sorted order, -2 for the
// second, and so on).
func (d *Discretizer) PredictIdx(x []float64) ([]int64, error) {
	if d.feature == nil {
		return nil, ErrNotFitted
	}

	out := make([]int64, len(x))
	for i, v := range x {
		if k, ok := d.feature.Exceptions.indexOf(v); ok {
			out[i] = -(int64(k) + 1)
			continue
		}

		n := len(d.splits) - 1
		j := sort.Search(n, func(j int) bool { return d.splits[1+j] >= v })
		if j >= n {
			return nil, ErrPrediction
		}
		out[i] = int64(j)
	}

	return out, nil
}

// PredictWoe maps each value of x to the WoE of the bin or exception slot
// it falls into. An exception slot with zero observed total reports a WoE
// of 0 rather than the NaN/Inf that a zero-denominator log would produce.
func (d *Discretizer) PredictWoe(x []float64) ([]float64, error) {
	if d.feature == nil {
		return nil, ErrNotFitted
	}

	out := make([]float64, len(x))
	for i, v := range x {
		if k, ok := d.feature.Exceptions.indexOf(v); ok {
			if d.feature.Exceptions.TotalsCt[k] == 0 {
				out[i] = 0
			} else {
				out[i] = d.feature.Exceptions.WoE[k]
			}
			continue
		}

		node := d.root
		for !node.isTerminal() {
			if v > node.Split.SplitValue {
				node = node.Right
			} else {
				node = node.Left
			}
		}
		out[i] = node.Woe
	}

	return out, nil
}

// nodeQueue is the expansion queue for Discretizer.Fit: pushFront followed
// by popBack yields FIFO best-first expansion by insertion order.
type nodeQueue struct {
	items []*Node
}

func (q *nodeQueue) empty() bool { return len(q.items) == 0 }

func (q *nodeQueue) pushFront(n *Node) {
	q.items = append([]*Node{n}, q.items...)
}

func (q *nodeQueue) popBack() *Node {
	n := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return n
}
