package aggregate

// Measure is the per-group accumulation: plain order-independent sums.
type Measure struct {
	Sum   float64
	Count int
}

// Key2 is a two-dimensional group key, e.g. (month bucket, category).
type Key2 struct {
	A string
	B string
}

// GroupSum accumulates value sums and row counts per single key.
func GroupSum[T any](items []T, key func(T) string, value func(T) float64) map[string]Measure {
	out := make(map[string]Measure, 16)
	for _, item := range items {
		k := key(item)
		m := out[k]
		m.Sum += value(item)
		m.Count++
		out[k] = m
	}
	return out
}

// GroupSum2 accumulates value sums and row counts per key pair.
func GroupSum2[T any](items []T, key func(T) Key2, value func(T) float64) map[Key2]Measure {
	out := make(map[Key2]Measure, 32)
	for _, item := range items {
		k := key(item)
		m := out[k]
		m.Sum += value(item)
		m.Count++
		out[k] = m
	}
	return out
}
