package csvprobe

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/docker/go-units"
)

// Memory limit constants
const (
	// defaultMemoryLimitMB applies when no explicit limit is given
	defaultMemoryLimitMB = 512
	// maxReasonableMemoryLimitMB caps configured limits at 64GB
	maxReasonableMemoryLimitMB = 64 * 1024
	// defaultWarningThreshold is the usage fraction that triggers chunk shrinking
	defaultWarningThreshold = 0.8
)

// MemoryLimit bounds heap usage during chunk iteration with graceful
// degradation. Iteration over a large dataset never needs the whole
// dataset resident, but a consumer that holds onto emitted chunks can
// still push the heap toward the limit; when that happens the iterator
// shrinks subsequent chunks instead of failing outright.
//
// The limit has three states:
//   - OK: heap usage is within acceptable bounds
//   - WARNING: usage approaches the limit, chunk sizes should shrink
//   - EXCEEDED: usage passed the limit, iteration should stop
//
// Performance note: CheckMemoryUsage calls runtime.ReadMemStats, which
// can pause for milliseconds. The iterator checks once per chunk, not
// per row.
//
// All methods are safe for concurrent use.
type MemoryLimit struct {
	maxMemoryMB      int64
	warningThreshold float64
	enabled          atomic.Bool
}

// NewMemoryLimit creates a memory limit of maxMemoryMB megabytes.
// Non-positive values fall back to a 512MB default and values above
// 64GB are clamped.
func NewMemoryLimit(maxMemoryMB int64) *MemoryLimit {
	if maxMemoryMB <= 0 {
		maxMemoryMB = defaultMemoryLimitMB
	}
	if maxMemoryMB > maxReasonableMemoryLimitMB {
		maxMemoryMB = maxReasonableMemoryLimitMB
	}

	ml := &MemoryLimit{
		maxMemoryMB:      maxMemoryMB,
		warningThreshold: defaultWarningThreshold,
	}
	ml.enabled.Store(true)
	return ml
}

// IsEnabled returns whether memory limit checking is enabled
func (ml *MemoryLimit) IsEnabled() bool {
	return ml.enabled.Load()
}

// Enable enables memory limit checking
func (ml *MemoryLimit) Enable() {
	ml.enabled.Store(true)
}

// Disable disables memory limit checking
func (ml *MemoryLimit) Disable() {
	ml.enabled.Store(false)
}

// SetWarningThreshold sets the warning threshold (0.0-1.0)
func (ml *MemoryLimit) SetWarningThreshold(threshold float64) {
	if threshold > 0.0 && threshold <= 1.0 {
		ml.warningThreshold = threshold
	}
}

// CheckMemoryUsage compares current heap usage against the limit
func (ml *MemoryLimit) CheckMemoryUsage() MemoryStatus {
	if !ml.IsEnabled() {
		return MemoryStatusOK
	}

	currentMB := heapAllocMB()
	if currentMB >= ml.maxMemoryMB {
		return MemoryStatusExceeded
	}
	if float64(currentMB)/float64(ml.maxMemoryMB) >= ml.warningThreshold {
		return MemoryStatusWarning
	}
	return MemoryStatusOK
}

// GetMemoryInfo returns a snapshot of current memory usage
func (ml *MemoryLimit) GetMemoryInfo() MemoryInfo {
	currentMB := heapAllocMB()
	return MemoryInfo{
		CurrentMB: currentMB,
		LimitMB:   ml.maxMemoryMB,
		Usage:     float64(currentMB) / float64(ml.maxMemoryMB),
		Status:    ml.CheckMemoryUsage(),
	}
}

// ShouldReduceChunkSize reports whether the next chunk should shrink
// and by how much. A warning halves the chunk, an exceeded limit
// quarters it.
func (ml *MemoryLimit) ShouldReduceChunkSize(chunkSize int) (bool, int) {
	switch ml.CheckMemoryUsage() {
	case MemoryStatusWarning:
		return true, chunkSize / 2
	case MemoryStatusExceeded:
		return true, chunkSize / 4
	default:
		return false, chunkSize
	}
}

// CreateMemoryError creates a memory limit error with usage context
func (ml *MemoryLimit) CreateMemoryError(operation string) error {
	info := ml.GetMemoryInfo()
	return fmt.Errorf(
		"%w during %s: using %d MB / %d MB (%.1f%%)",
		ErrMemoryLimit, operation, info.CurrentMB, info.LimitMB, info.Usage*100,
	)
}

func heapAllocMB() int64 {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	mb := memStats.HeapAlloc / units.MiB
	return int64(min(mb, uint64(1)<<62)) //nolint:gosec // bounded above
}

// MemoryStatus represents the current memory status
type MemoryStatus int

// Memory status constants
const (
	// MemoryStatusOK indicates memory usage is within acceptable limits
	MemoryStatusOK MemoryStatus = iota
	// MemoryStatusWarning indicates memory usage is approaching the limit
	MemoryStatusWarning
	// MemoryStatusExceeded indicates memory usage has exceeded the limit
	MemoryStatusExceeded
)

// String returns string representation of memory status
func (ms MemoryStatus) String() string {
	switch ms {
	case MemoryStatusOK:
		return "OK"
	case MemoryStatusWarning:
		return "WARNING"
	case MemoryStatusExceeded:
		return "EXCEEDED"
	default:
		return "UNKNOWN"
	}
}

// MemoryInfo contains detailed memory usage information
type MemoryInfo struct {
	CurrentMB int64        // Current heap usage in MB
	LimitMB   int64        // Configured limit in MB
	Usage     float64      // Usage fraction (0.0-1.0)
	Status    MemoryStatus // Current status
}
