package model

import "math"

// CategoryStats is the per-category rollup updated when a buyer rates a
// seller. Accumulation saturates instead of failing: a rollup counter at its
// ceiling keeps its value rather than blocking the rating that triggered it.
type CategoryStats struct {
	Category    string
	Sales       uint32
	RatingSum   uint64
	RatingCount uint32
}

// Accumulate folds one completed, rated sale into the rollup.
func (s *CategoryStats) Accumulate(score uint8) {
	if s.Sales < math.MaxUint32 {
		s.Sales++
	}
	if s.RatingSum <= math.MaxUint64-uint64(score) {
		s.RatingSum += uint64(score)
	}
	if s.RatingCount < math.MaxUint32 {
		s.RatingCount++
	}
}

// AverageRating returns the integer average, absent when nothing was rated.
func (s *CategoryStats) AverageRating() (uint64, bool) {
	if s.RatingCount == 0 {
		return 0, false
	}
	return s.RatingSum / uint64(s.RatingCount), true
}
