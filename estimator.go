package scryptauth

import (
	"fmt"
	"time"

	"golang.org/x/crypto/scrypt"
)

// HostEstimator supplies the two host capacity figures that parameter tuning
// needs: total usable memory and KDF throughput.
//
// [SystemEstimator] measures the running host.  Tests and callers with
// externally-known budgets can inject a [FixedEstimator] instead, which makes
// [Tune] fully deterministic.
type HostEstimator interface {
	// MemoryLimit returns the total usable memory of the host in bytes.
	MemoryLimit() (uint64, error)

	// OpsPerSecond estimates how many salsa20/8 core operations per second
	// the host can execute.  One scrypt derivation costs about 4*N*r*p such
	// operations.
	OpsPerSecond() (float64, error)
}

// SystemEstimator measures the current host.  MemoryLimit queries the
// operating system; OpsPerSecond benchmarks the scrypt core.
//
// The zero value is ready to use.
type SystemEstimator struct{}

// MemoryLimit returns the total physical memory of the host.  It fails with
// an error wrapping [ErrResourceQuery] on platforms where no query is
// implemented.
func (SystemEstimator) MemoryLimit() (uint64, error) {
	return totalMemory()
}

// Benchmark shape: N=128, r=1, p=1 costs exactly 4*128*1*1 = 512 salsa20/8
// core operations and completes in microseconds, so many iterations fit in
// the sample window.
const (
	benchCoresPerCall = 512
	benchSampleWindow = 50 * time.Millisecond
)

// OpsPerSecond times repeated minimal scrypt derivations for a short window
// and extrapolates the host's salsa20/8 core throughput.
func (SystemEstimator) OpsPerSecond() (float64, error) {
	password := []byte("scryptauth-calibration")
	salt := make([]byte, 16)

	calls := 0
	start := time.Now()
	for time.Since(start) < benchSampleWindow {
		if _, err := scrypt.Key(password, salt, 128, 1, 1, 64); err != nil {
			return 0, fmt.Errorf("%w: benchmark derivation: %v", ErrResourceQuery, err)
		}
		calls++
	}
	elapsed := time.Since(start).Seconds()

	return float64(calls) * benchCoresPerCall / elapsed, nil
}

// FixedEstimator reports constant figures.  Use it to pin tuning to known
// budgets, or in tests where derivations must stay small and deterministic.
type FixedEstimator struct {
	Mem uint64  // total memory, bytes
	Ops float64 // salsa20/8 core operations per second
}

// MemoryLimit returns e.Mem.
func (e FixedEstimator) MemoryLimit() (uint64, error) { return e.Mem, nil }

// OpsPerSecond returns e.Ops.
func (e FixedEstimator) OpsPerSecond() (float64, error) { return e.Ops, nil }
