package aggregator

import "sort"

// Ranking describes how to threshold and order one cohort.
type Ranking[T any] struct {
	MinSample int
	Sample    func(T) int
	Metric    func(T) float64
	Key       func(T) string
	Limit     int
}

// Apply drops records below MinSample, sorts the rest by Metric descending
// and truncates to Limit (no cap when Limit <= 0). Equal metrics fall back to
// Key ascending. The input slice is not modified.
func (r Ranking[T]) Apply(records []T) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if r.Sample(rec) >= r.MinSample {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		mi, mj := r.Metric(out[i]), r.Metric(out[j])
		if mi != mj {
			return mi > mj
		}
		return r.Key(out[i]) < r.Key(out[j])
	})
	if r.Limit > 0 && len(out) > r.Limit {
		out = out[:r.Limit]
	}
	return out
}
