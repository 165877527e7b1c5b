//go:build !linux && !darwin

package scryptauth

import "fmt"

// totalMemory is unavailable on this platform.  Callers can still hash by
// injecting a [FixedEstimator] with an externally-known memory figure.
func totalMemory() (uint64, error) {
	return 0, fmt.Errorf("%w: no memory query on this platform", ErrResourceQuery)
}
