package integration

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/practicum/practicum"
	"github.com/valerio/practicum/practicum/backend/headless"
	"github.com/valerio/practicum/practicum/config"
	"github.com/valerio/practicum/practicum/loop"
)

type IntegrationTestCase struct {
	ConfigPath      string
	Model           loop.Model
	ExpectedDisplay int
	ExpectHistogram bool
	Name            string
}

func GetIntegrationTests() []IntegrationTestCase {
	return []IntegrationTestCase{
		{
			ConfigPath:      filepath.Join("testdata", "single_display.yaml"),
			ExpectHistogram: true,
			Name:            "single display",
		},
		{
			ConfigPath:      filepath.Join("testdata", "dual_display.yaml"),
			ExpectedDisplay: 1,
			ExpectHistogram: true,
			Name:            "dual display",
		},
		{
			ConfigPath: filepath.Join("testdata", "no_stats.yaml"),
			Name:       "no stats",
		},
		{
			ConfigPath:      filepath.Join("testdata", "wide_histogram.yaml"),
			ExpectHistogram: true,
			Name:            "wide histogram",
		},
		{
			ConfigPath: filepath.Join("testdata", "single_display.yaml"),
			Model:      loop.ModelCallback,
			Name:       "callback model",
		},
	}
}

type histogramLine struct {
	lower, upper, count float64
}

func readHistogram(t *testing.T, path string) []histogramLine {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []histogramLine
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		require.Len(t, fields, 3, "malformed line %q", scanner.Text())

		var line histogramLine
		for i, dst := range []*float64{&line.lower, &line.upper, &line.count} {
			*dst, err = strconv.ParseFloat(fields[i], 64)
			require.NoError(t, err)
		}
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func runIntegrationTest(t *testing.T, testCase IntegrationTestCase) {
	t.Logf("Running integration test: %s (%s)", testCase.Name, testCase.ConfigPath)

	cfg, err := config.Load(testCase.ConfigPath, config.Default())
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	cfg.Model = testCase.Model
	cfg.Refresh = 0
	cfg.HistogramPath = filepath.Join(t.TempDir(), config.DefaultHistogramPath)

	host := headless.New(headless.Options{
		MaxFrames: cfg.Frames,
		Displays:  cfg.Displays,
		CursorX:   cfg.CursorX,
		CursorY:   cfg.CursorY,
	})

	require.NoError(t, practicum.Run(host, cfg))

	assert.Equal(t, cfg.Frames, host.Swaps())
	assert.Equal(t, testCase.ExpectedDisplay, host.Display())

	if !testCase.ExpectHistogram {
		assert.NoFileExists(t, cfg.HistogramPath)
		return
	}

	lines := readHistogram(t, cfg.HistogramPath)
	assert.LessOrEqual(t, len(lines), cfg.HistogramBuckets)

	sum := 0.0
	for _, line := range lines {
		assert.GreaterOrEqual(t, line.lower, cfg.HistogramMin)
		assert.LessOrEqual(t, line.upper, cfg.HistogramMax)
		assert.Less(t, line.lower, line.upper)
		assert.Positive(t, line.count)
		sum += line.count
	}
	assert.LessOrEqual(t, sum, float64(cfg.Frames))
}

func TestIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	for _, testCase := range GetIntegrationTests() {
		t.Run(testCase.Name, func(t *testing.T) {
			runIntegrationTest(t, testCase)
		})
	}
}
