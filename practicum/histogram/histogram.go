package histogram

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
)

// Reference configuration for frame rates around 60 Hz.
const (
	DefaultBuckets = 50
	DefaultMin     = 58.0
	DefaultMax     = 62.0
)

// Histogram counts samples in uniform buckets over [min, max).
type Histogram struct {
	ranges  []float64 // len(counts)+1 bucket edges
	counts  []uint64
	outside uint64
}

// NewUniform creates n equal-width buckets spanning [min, max).
func NewUniform(n int, min, max float64) (*Histogram, error) {
	if n <= 0 {
		return nil, fmt.Errorf("histogram needs at least one bucket, got %d", n)
	}
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil, errors.New("histogram range must be finite")
	}
	if min >= max {
		return nil, fmt.Errorf("histogram range is empty: [%g, %g)", min, max)
	}

	h := &Histogram{
		ranges: make([]float64, n+1),
		counts: make([]uint64, n),
	}
	for i := 0; i <= n; i++ {
		// edges computed from the ends rather than accumulated, so the
		// last edge is exactly max
		f := float64(i) / float64(n)
		h.ranges[i] = (1-f)*min + f*max
	}

	return h, nil
}

// Record adds v to its bucket and reports whether it was in range.
// Out of range values, NaN and infinities only bump the outside counter.
func (h *Histogram) Record(v float64) bool {
	n := len(h.counts)
	if math.IsNaN(v) || v < h.ranges[0] || v >= h.ranges[n] {
		h.outside++
		return false
	}

	// first edge strictly above v, minus one
	i := sort.SearchFloat64s(h.ranges, v)
	if i == len(h.ranges) || h.ranges[i] != v {
		i--
	}
	if i >= n {
		i = n - 1
	}

	h.counts[i]++
	return true
}

// Len returns the number of buckets.
func (h *Histogram) Len() int {
	return len(h.counts)
}

// Bucket returns the edges and count of bucket i.
func (h *Histogram) Bucket(i int) (lower, upper float64, count uint64) {
	return h.ranges[i], h.ranges[i+1], h.counts[i]
}

// Sum returns the number of in-range samples.
func (h *Histogram) Sum() uint64 {
	var total uint64
	for _, c := range h.counts {
		total += c
	}
	return total
}

// Outside returns the number of samples that fell outside the range.
func (h *Histogram) Outside() uint64 {
	return h.outside
}

// WriteTo writes one "lower upper count" line per non-empty bucket.
func (h *Histogram) WriteTo(w io.Writer) (int64, error) {
	var written int64
	for i, c := range h.counts {
		if c == 0 {
			continue
		}
		n, err := fmt.Fprintf(w, "%g %g %g\n", h.ranges[i], h.ranges[i+1], float64(c))
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// Save writes the histogram to path, replacing any existing file.
func (h *Histogram) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create histogram file: %w", err)
	}

	buf := bufio.NewWriter(file)
	if _, err := h.WriteTo(buf); err != nil {
		file.Close()
		return fmt.Errorf("failed to write histogram: %w", err)
	}
	if err := buf.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to write histogram: %w", err)
	}

	return file.Close()
}
