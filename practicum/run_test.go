package practicum_test

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/practicum/practicum"
	"github.com/valerio/practicum/practicum/backend"
	"github.com/valerio/practicum/practicum/backend/headless"
	"github.com/valerio/practicum/practicum/config"
	"github.com/valerio/practicum/practicum/loop"
)

func testConfig(t *testing.T, model loop.Model) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Backend = config.BackendHeadless
	cfg.MaxDelay = time.Millisecond
	cfg.Refresh = time.Millisecond
	cfg.HistogramPath = filepath.Join(t.TempDir(), config.DefaultHistogramPath)
	cfg.Model = model
	return cfg
}

// readHistogram returns the number of lines and the sum of the counts
func readHistogram(t *testing.T, path string) (int, float64) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	lines := 0
	sum := 0.0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		require.Len(t, fields, 3)

		lower, err := strconv.ParseFloat(fields[0], 64)
		require.NoError(t, err)
		upper, err := strconv.ParseFloat(fields[1], 64)
		require.NoError(t, err)
		count, err := strconv.ParseFloat(fields[2], 64)
		require.NoError(t, err)

		assert.Less(t, lower, upper)
		assert.Positive(t, count)
		lines++
		sum += count
	}
	require.NoError(t, scanner.Err())
	return lines, sum
}

func TestRunBlocking(t *testing.T) {
	cfg := testConfig(t, loop.ModelBlocking)
	host := headless.New(headless.Options{MaxFrames: 10})

	require.NoError(t, practicum.Run(host, cfg))
	assert.Equal(t, 10, host.Swaps())

	lines, sum := readHistogram(t, cfg.HistogramPath)
	assert.LessOrEqual(t, lines, 50)
	assert.LessOrEqual(t, sum, 10.0)
}

func TestRunWithoutStats(t *testing.T) {
	cfg := testConfig(t, loop.ModelBlocking)
	cfg.Stats = false
	host := headless.New(headless.Options{MaxFrames: 3})

	require.NoError(t, practicum.Run(host, cfg))
	assert.Equal(t, 3, host.Swaps())
	assert.NoFileExists(t, cfg.HistogramPath)
}

func TestRunCallback(t *testing.T) {
	cfg := testConfig(t, loop.ModelCallback)
	host := headless.New(headless.Options{MaxFrames: 5})

	require.NoError(t, practicum.Run(host, cfg))
	assert.Equal(t, 5, host.Swaps())
	assert.NoFileExists(t, cfg.HistogramPath, "histogram is never written in the callback model")
}

func TestRunHistogramWriteFailure(t *testing.T) {
	cfg := testConfig(t, loop.ModelBlocking)
	cfg.HistogramPath = filepath.Join(t.TempDir(), "missing", "frame_histogram.dat")
	host := headless.New(headless.Options{MaxFrames: 1})

	err := practicum.Run(host, cfg)
	assert.ErrorContains(t, err, "failed to create histogram file")
}

// failingHost cannot open a window
type failingHost struct {
	*headless.Backend
}

var errNoWindow = errors.New("no window")

func (failingHost) Init(backend.Config) error {
	return errNoWindow
}

func TestRunInitFailure(t *testing.T) {
	cfg := testConfig(t, loop.ModelBlocking)

	err := practicum.Run(failingHost{headless.New(headless.Options{})}, cfg)
	assert.ErrorIs(t, err, errNoWindow)
	assert.ErrorContains(t, err, "failed to initialize headless backend")
	assert.NoFileExists(t, cfg.HistogramPath)
}
