package discrust

import (
	"math"
	"testing"
)

func TestFindBestSplit(t *testing.T) {
	x, y, w := smallTable()
	f, err := newFeature(x, y, w, nil)
	if err != nil {
		t.Fatalf("newFeature returned error: %v", err)
	}

	n := &Node{minObs: 1, minIV: 0.001, minPos: 0, mono: MonoIncreasing, Start: 0, Stop: len(f.Vals)}
	info := n.findBestSplit(f)

	if !info.Present {
		t.Fatal("expected a split to be found")
	}

	const tol = 1e-9
	if info.SplitValue != 6.2375 {
		t.Errorf("SplitValue = %v, want 6.2375", info.SplitValue)
	}
	if math.Abs(info.LHSIV-0.22001303079783097) > tol {
		t.Errorf("LHSIV = %v, want 0.22001303079783097", info.LHSIV)
	}
	if math.Abs(info.LHSWoe-(-0.6286086594223742)) > tol {
		t.Errorf("LHSWoe = %v, want -0.6286086594223742", info.LHSWoe)
	}
	if math.Abs(info.RHSIV-0.3064140580738651) > tol {
		t.Errorf("RHSIV = %v, want 0.3064140580738651", info.RHSIV)
	}
	if math.Abs(info.RHSWoe-0.8754687373539001) > tol {
		t.Errorf("RHSWoe = %v, want 0.8754687373539001", info.RHSWoe)
	}
}

func TestFindBestSplitNoCandidateSurvives(t *testing.T) {
	x, y, w := smallTable()
	f, err := newFeature(x, y, w, nil)
	if err != nil {
		t.Fatalf("newFeature returned error: %v", err)
	}

	// an unreachable min-positives gate forces every candidate to be skipped
	n := &Node{minObs: 1, minIV: 0.001, minPos: 1000, mono: MonoUnset, Start: 0, Stop: len(f.Vals)}
	info := n.findBestSplit(f)
	if info.Present {
		t.Fatalf("expected no split, got %+v", info)
	}
}

func TestFindBestSplitMonotonicityGate(t *testing.T) {
	x, y, w := smallTable()
	f, err := newFeature(x, y, w, nil)
	if err != nil {
		t.Fatalf("newFeature returned error: %v", err)
	}

	increasing := &Node{minObs: 1, minIV: 0.001, minPos: 0, mono: MonoIncreasing, Start: 0, Stop: len(f.Vals)}
	decreasing := &Node{minObs: 1, minIV: 0.001, minPos: 0, mono: MonoDecreasing, Start: 0, Stop: len(f.Vals)}

	incInfo := increasing.findBestSplit(f)
	decInfo := decreasing.findBestSplit(f)

	if !incInfo.Present || !decInfo.Present {
		t.Fatalf("expected both constrained searches to find a split: inc=%+v dec=%+v", incInfo, decInfo)
	}
	if incInfo.LHSWoe >= incInfo.RHSWoe {
		t.Errorf("MonoIncreasing split should have lhs woe < rhs woe, got lhs=%v rhs=%v", incInfo.LHSWoe, incInfo.RHSWoe)
	}
	if decInfo.LHSWoe < decInfo.RHSWoe {
		t.Errorf("MonoDecreasing split should have lhs woe >= rhs woe, got lhs=%v rhs=%v", decInfo.LHSWoe, decInfo.RHSWoe)
	}
}
