package metrics

import (
	"fmt"
	"io"
	"sort"
)

// Histogram tallies, per distinct key, how many times a base was sampled
// and how many of those samples were corrected (an "error"). Write sorts
// by key so output is stable regardless of map iteration order.
type Histogram struct {
	samples map[string]int
	errors  map[string]int
}

func newHistogram() *Histogram {
	return &Histogram{
		samples: make(map[string]int),
		errors:  make(map[string]int),
	}
}

// IncrementSample records one observation of key.
func (h *Histogram) IncrementSample(key string) {
	h.samples[key]++
}

// IncrementError records one corrected observation of key. IncrementSample
// must have been called for key first.
func (h *Histogram) IncrementError(key string) {
	h.errors[key]++
}

// Write renders the histogram as a small table: header, then one line per
// key with its sample count, error count and error rate.
func (h *Histogram) Write(w io.Writer, header, label string) {
	fmt.Fprint(w, header)
	fmt.Fprintf(w, "%s\tsamples\terrors\trate\n", label)

	keys := make([]string, 0, len(h.samples))
	for k := range h.samples {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		n := h.samples[k]
		e := h.errors[k]
		var rate float64
		if n > 0 {
			rate = float64(e) / float64(n)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.4f\n", k, n, e, rate)
	}
}
