package discrust

import (
	"math"
	"sort"
	"testing"
)

func TestCompareNaN(t *testing.T) {
	nan := math.NaN()

	cases := []struct {
		a, b float64
		want int
	}{
		{1.0, 2.0, -1},
		{2.0, 1.0, 1},
		{1.0, 1.0, 0},
		{nan, nan, 0},
		{nan, 1.0, -1},
		{1.0, nan, 1},
	}

	for _, c := range cases {
		if got := compareNaN(c.a, c.b); got != c.want {
			t.Errorf("compareNaN(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSortNaNSafe(t *testing.T) {
	v := []float64{0.0, 100.0, 1.1, math.NaN(), 2.2, math.NaN()}
	sort.Slice(v, func(i, j int) bool { return lessNaN(v[i], v[j]) })

	if !math.IsNaN(v[0]) || !math.IsNaN(v[1]) {
		t.Fatalf("expected the two NaNs to sort first, got %v", v)
	}

	want := []float64{0.0, 1.1, 2.2, 100.0}
	for i, w := range want {
		if v[i+2] != w {
			t.Errorf("v[%d] = %v, want %v", i+2, v[i+2], w)
		}
	}
}
