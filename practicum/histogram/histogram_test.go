package histogram_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/practicum/practicum/histogram"
)

func TestNewUniform(t *testing.T) {
	h, err := histogram.NewUniform(histogram.DefaultBuckets, histogram.DefaultMin, histogram.DefaultMax)
	require.NoError(t, err)
	require.Equal(t, 50, h.Len())

	for i := 0; i < h.Len(); i++ {
		lower, upper, count := h.Bucket(i)
		assert.InDelta(t, 0.08, upper-lower, 1e-9)
		assert.Zero(t, count)
	}

	lower, _, _ := h.Bucket(0)
	_, upper, _ := h.Bucket(h.Len() - 1)
	assert.Equal(t, 58.0, lower)
	assert.Equal(t, 62.0, upper)
}

func TestNewUniformErrors(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		min, max float64
	}{
		{name: "no buckets", n: 0, min: 0, max: 1},
		{name: "empty range", n: 10, min: 5, max: 5},
		{name: "inverted range", n: 10, min: 6, max: 5},
		{name: "nan bound", n: 10, min: math.NaN(), max: 5},
		{name: "infinite bound", n: 10, min: 0, max: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := histogram.NewUniform(tt.n, tt.min, tt.max)
			assert.Error(t, err)
		})
	}
}

func TestRecord(t *testing.T) {
	h, err := histogram.NewUniform(histogram.DefaultBuckets, histogram.DefaultMin, histogram.DefaultMax)
	require.NoError(t, err)

	tests := []struct {
		name    string
		value   float64
		inRange bool
		bucket  int
	}{
		{name: "lower edge", value: 58.0, inRange: true, bucket: 0},
		{name: "inside first bucket", value: 58.05, inRange: true, bucket: 0},
		{name: "middle", value: 60.01, inRange: true, bucket: 25},
		{name: "just below max", value: 61.99, inRange: true, bucket: 49},
		{name: "upper edge is exclusive", value: 62.0, inRange: false},
		{name: "below range", value: 30, inRange: false},
		{name: "nan", value: math.NaN(), inRange: false},
		{name: "infinity", value: math.Inf(1), inRange: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, before := bucketCount(h, tt.bucket)
			outside := h.Outside()

			assert.Equal(t, tt.inRange, h.Record(tt.value))
			if tt.inRange {
				_, _, after := bucketCount(h, tt.bucket)
				assert.Equal(t, before+1, after)
				assert.Equal(t, outside, h.Outside())
			} else {
				assert.Equal(t, outside+1, h.Outside())
			}
		})
	}
}

func bucketCount(h *histogram.Histogram, i int) (float64, float64, uint64) {
	return h.Bucket(i)
}

func TestSumOfUniformSamples(t *testing.T) {
	h, err := histogram.NewUniform(histogram.DefaultBuckets, histogram.DefaultMin, histogram.DefaultMax)
	require.NoError(t, err)

	const n = 1000
	// offset so no sample lands on a bucket edge
	for i := 0; i < n; i++ {
		h.Record(58 + 4*(float64(i)+0.5)/n)
	}

	assert.Equal(t, uint64(n), h.Sum())
	assert.Zero(t, h.Outside())
	for i := 0; i < h.Len(); i++ {
		_, _, count := h.Bucket(i)
		assert.Equal(t, uint64(n/50), count, "bucket %d", i)
	}
}

func TestWriteTo(t *testing.T) {
	h, err := histogram.NewUniform(4, 0, 4)
	require.NoError(t, err)

	h.Record(0.5)
	h.Record(0.7)
	h.Record(3.2)
	h.Record(10)

	var buf bytes.Buffer
	_, err = h.WriteTo(&buf)
	require.NoError(t, err)

	assert.Equal(t, "0 1 2\n3 4 1\n", buf.String(), "empty buckets are omitted")
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame_histogram.dat")
	require.NoError(t, os.WriteFile(path, []byte("stale contents\n"), 0o644))

	h, err := histogram.NewUniform(2, 0, 2)
	require.NoError(t, err)
	h.Record(1.5)

	require.NoError(t, h.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1 2 1\n", string(data))
}

func TestSaveEmptyHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame_histogram.dat")

	h, err := histogram.NewUniform(2, 0, 2)
	require.NoError(t, err)
	require.NoError(t, h.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSaveBadPath(t *testing.T) {
	h, err := histogram.NewUniform(2, 0, 2)
	require.NoError(t, err)

	err = h.Save(filepath.Join(t.TempDir(), "missing", "frame_histogram.dat"))
	assert.ErrorContains(t, err, "failed to create histogram file")
}
