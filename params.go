package scryptauth

import "fmt"

const (
	// minMemLimit is the floor applied to the memory budget: tuning never
	// selects a configuration using less than 1 MiB.
	minMemLimit = 1 << 20

	// minOpsLimit is the floor applied to the CPU budget: a minimum of 2^15
	// salsa20/8 core operations regardless of how fast the host appears.
	minOpsLimit = 32768

	// fixedR is the scrypt block-size parameter. It is not tuned; 8 matches
	// the value fixed by the reference parameter-selection algorithm and by
	// essentially every deployed scrypt record format.
	fixedR = 8

	// maxRP bounds r*p, per the scrypt specification (r*p < 2^30).
	maxRP = 0x3fffffff
)

// Params holds the scrypt cost parameters embedded in a hash record.
//
// LogN is stored instead of N because it is compact (one byte in the record)
// and converts to N with a single shift.  Memory use of a derivation is
// about 128*N*r bytes; CPU cost is proportional to 4*N*r*p.
type Params struct {
	LogN int    // CPU/memory scale; N = 2^LogN, valid range [1, 62]
	R    uint32 // block size multiplier
	P    uint32 // parallelisation factor
}

// N returns the scrypt N parameter, 2^LogN.
func (p Params) N() uint64 { return uint64(1) << p.LogN }

// String renders the parameters in logN/r/p form, e.g. "logN=14,r=8,p=1".
func (p Params) String() string {
	return fmt.Sprintf("logN=%d,r=%d,p=%d", p.LogN, p.R, p.P)
}

// Tune selects scrypt cost parameters for the host described by est.
//
// maxMemFrac is the fraction of total memory the derivation may use; values
// outside (0, 0.5] fall back to 0.5, and the resulting budget is floored at
// 1 MiB.  maxTime is the wall-clock budget in seconds, converted to an
// operation budget using the estimator's throughput figure and floored at
// 2^15 operations.
//
// The algorithm follows Colin Percival's scrypt reference implementation:
// r is fixed at 8; when the CPU budget is the binding constraint (fewer than
// memLimit/32 operations available) p is 1 and N is chosen from the CPU
// budget, otherwise N is chosen from the memory budget and the remaining CPU
// budget is spent on p.
//
// Tune fails with an error wrapping [ErrResourceQuery] when the estimator
// cannot supply either figure.
func Tune(est HostEstimator, maxMemFrac, maxTime float64) (Params, error) {
	totalMem, err := est.MemoryLimit()
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrResourceQuery, err)
	}

	if maxMemFrac <= 0 || maxMemFrac > 0.5 {
		maxMemFrac = 0.5
	}
	memLimit := uint64(float64(totalMem) * maxMemFrac)
	if memLimit < minMemLimit {
		memLimit = minMemLimit
	}

	opsPerSec, err := est.OpsPerSecond()
	if err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrResourceQuery, err)
	}
	opsLimit := opsPerSec * maxTime
	if opsLimit < minOpsLimit {
		opsLimit = minOpsLimit
	}

	// The memory limit requires 128*N*r <= memLimit, while the CPU limit
	// requires 4*N*r*p <= opsLimit.  If opsLimit < memLimit/32 the CPU
	// budget imposes the stronger limit on N.
	var logN int
	var p uint32
	if opsLimit < float64(memLimit/32) {
		// Set p = 1 and choose N from the CPU budget.
		p = 1
		maxN := opsLimit / (fixedR * 4)
		for logN = 1; logN < 63; logN++ {
			if float64(uint64(1)<<logN) > maxN/2 {
				break
			}
		}
	} else {
		// Choose N from the memory budget.
		maxN := float64(memLimit / (fixedR * 128))
		for logN = 1; logN < 63; logN++ {
			if float64(uint64(1)<<logN) > maxN/2 {
				break
			}
		}

		// Spend the remaining CPU budget on p.
		maxrp := (opsLimit / 4) / float64(uint64(1)<<logN)
		if maxrp > maxRP {
			maxrp = maxRP
		}
		p = uint32(maxrp) / fixedR
	}

	return Params{LogN: logN, R: fixedR, P: p}, nil
}
