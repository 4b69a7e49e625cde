// Package discrust implements a supervised monotonic discretizer for a
// single real-valued feature against a binary target. Given a numeric
// column x, a binary label y, per-row weights w, and an optional set of
// exception values to treat categorically, Discretizer.Fit produces a
// sorted list of cut points partitioning the real line into bins, along
// with a per-bin weight-of-evidence (WoE) and information value (IV).
// Discretizer.PredictIdx and Discretizer.PredictWoe then map new values to
// their bin index or WoE.
//
// Splits are chosen greedily by a best-first binary tree whose objective
// is maximum IV, subject to a minimum observation count, a minimum count
// of positives, a minimum IV contribution, a monotonicity constraint on
// WoE across the resulting bin sequence, and a global cap on the number of
// bins.
package discrust
