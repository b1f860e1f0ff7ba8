package md2blog

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one worker is available.
	MinWorkers = 1

	// MaxWorkers caps concurrent conversions.
	MaxWorkers = 32
)

// ResolveWorkers determines the number of conversion workers.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// The result is clamped to [MinWorkers, MaxWorkers] and never exceeds jobs
// when jobs > 0. Exported for use by CLIs.
func ResolveWorkers(workers, jobs int) int {
	n := workers
	if n <= 0 {
		// GOMAXPROCS is adjusted by automaxprocs for containers.
		n = runtime.GOMAXPROCS(0)
	}

	if jobs > 0 && n > jobs {
		n = jobs
	}
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
