package memory

import (
	"math"
	"os"
	"runtime/debug"
	"strconv"

	"media-gallery/internal/logging"
)

// DefaultMemoryRatio is the share of the container limit given to the Go heap.
// The remainder covers goroutine stacks and decode buffers in flight.
const DefaultMemoryRatio = 0.85

// Source values reported in ConfigResult.
const (
	SourceGOMEMLIMIT  = "GOMEMLIMIT"
	SourceMemoryLimit = "MEMORY_LIMIT"
	SourceNone        = "none"
)

// ConfigResult holds the result of memory configuration
type ConfigResult struct {
	Configured     bool
	Source         string
	ContainerLimit int64   // bytes, 0 if unknown
	GoMemLimit     int64   // bytes, 0 if not set
	Ratio          float64 // 0 unless derived from MEMORY_LIMIT
}

// setMemoryLimit is swapped out in tests.
var setMemoryLimit = debug.SetMemoryLimit

// ConfigureFromEnv sets the Go soft memory limit from the container limit.
// Call it early in main, before the first large allocation.
//
//   - GOMEMLIMIT, when set, is left to the runtime and only reported.
//   - MEMORY_LIMIT is the container limit in bytes (Kubernetes Downward API).
//   - MEMORY_RATIO is the heap share of MEMORY_LIMIT, in (0, 1].
func ConfigureFromEnv() ConfigResult {
	return configure(os.Getenv)
}

func configure(getenv func(string) string) ConfigResult {
	if v := getenv("GOMEMLIMIT"); v != "" {
		result := ConfigResult{Source: SourceGOMEMLIMIT}
		if limit := setMemoryLimit(-1); limit > 0 && limit < math.MaxInt64 {
			result.Configured = true
			result.GoMemLimit = limit
		}
		logging.Info("GOMEMLIMIT set via environment: %s", v)
		return result
	}

	memLimitStr := getenv("MEMORY_LIMIT")
	if memLimitStr == "" {
		logging.Debug("MEMORY_LIMIT not set, GOMEMLIMIT will not be configured automatically")
		return ConfigResult{Source: SourceNone}
	}

	memLimit, err := strconv.ParseInt(memLimitStr, 10, 64)
	if err != nil || memLimit <= 0 {
		logging.Warn("Ignoring invalid MEMORY_LIMIT %q", memLimitStr)
		return ConfigResult{Source: SourceNone}
	}

	ratio := parseRatio(getenv("MEMORY_RATIO"))
	goMemLimit := int64(float64(memLimit) * ratio)
	setMemoryLimit(goMemLimit)

	logging.Info("Configured GOMEMLIMIT: %s (%.1f%% of %s container limit)",
		FormatBytes(goMemLimit), ratio*100, FormatBytes(memLimit))

	return ConfigResult{
		Configured:     true,
		Source:         SourceMemoryLimit,
		ContainerLimit: memLimit,
		GoMemLimit:     goMemLimit,
		Ratio:          ratio,
	}
}

func parseRatio(s string) float64 {
	if s == "" {
		return DefaultMemoryRatio
	}
	ratio, err := strconv.ParseFloat(s, 64)
	if err != nil || ratio <= 0 || ratio > 1.0 {
		logging.Warn("MEMORY_RATIO %q invalid or out of range (0.0-1.0], using default %.2f", s, DefaultMemoryRatio)
		return DefaultMemoryRatio
	}
	return ratio
}

// FormatBytes formats bytes into a human-readable IEC string.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return strconv.FormatInt(b, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(b)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
