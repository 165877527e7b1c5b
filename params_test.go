package scryptauth_test

import (
	"errors"
	"testing"

	"github.com/passkit/scryptauth"
)

// failingEstimator simulates a host whose capacity cannot be measured.
type failingEstimator struct {
	memErr error
	opsErr error
}

func (e failingEstimator) MemoryLimit() (uint64, error) {
	if e.memErr != nil {
		return 0, e.memErr
	}
	return 1 << 30, nil
}

func (e failingEstimator) OpsPerSecond() (float64, error) {
	if e.opsErr != nil {
		return 0, e.opsErr
	}
	return 1e8, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Parameter selection
// ──────────────────────────────────────────────────────────────────────────────

func TestTune_SelectedParams(t *testing.T) {
	tests := []struct {
		name    string
		mem     uint64
		ops     float64
		frac    float64
		seconds float64
		want    scryptauth.Params
	}{
		{
			// opsLimit (32768) < memLimit/32, so the CPU budget binds:
			// p = 1 and N = 1024 from maxN = 32768/32.
			name: "cpu bound",
			mem:  1 << 34, ops: 32768, frac: 0.1, seconds: 1,
			want: scryptauth.Params{LogN: 10, R: 8, P: 1},
		},
		{
			// Memory binds: maxN = 2^29/1024 = 2^19, then
			// p = floor(min(maxRP, (1e8/4)/2^19) / 8) = floor(47.68)/8 = 5.
			name: "memory bound",
			mem:  1 << 30, ops: 1e8, frac: 0.5, seconds: 1,
			want: scryptauth.Params{LogN: 19, R: 8, P: 5},
		},
		{
			// A tiny host still gets the 1 MiB memory floor: N = 1024.
			name: "memory floor",
			mem:  1024, ops: 1e9, frac: 0.5, seconds: 1,
			want: scryptauth.Params{LogN: 10, R: 8, P: 30517},
		},
		{
			// A tiny time budget still gets the 2^15 operation floor.
			name: "ops floor",
			mem:  1 << 34, ops: 100, frac: 0.1, seconds: 0.1,
			want: scryptauth.Params{LogN: 10, R: 8, P: 1},
		},
		{
			// An absurdly fast host runs into the r*p < 2^30 cap.
			name: "rp cap",
			mem:  1 << 20, ops: 1e13, frac: 0.5, seconds: 1,
			want: scryptauth.Params{LogN: 10, R: 8, P: 134217727},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := scryptauth.FixedEstimator{Mem: tt.mem, Ops: tt.ops}
			got, err := scryptauth.Tune(est, tt.frac, tt.seconds)
			if err != nil {
				t.Fatalf("Tune: %v", err)
			}
			if got != tt.want {
				t.Errorf("Tune = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTune_ZeroFracEqualsHalf(t *testing.T) {
	est := scryptauth.FixedEstimator{Mem: 1 << 32, Ops: 1e8}

	zero, err := scryptauth.Tune(est, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	half, err := scryptauth.Tune(est, 0.5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if zero != half {
		t.Errorf("frac=0 selected %+v, frac=0.5 selected %+v; want identical", zero, half)
	}
}

func TestTune_OversizedFracFallsBackToHalf(t *testing.T) {
	est := scryptauth.FixedEstimator{Mem: 1 << 32, Ops: 1e8}

	over, err := scryptauth.Tune(est, 0.9, 1)
	if err != nil {
		t.Fatal(err)
	}
	half, _ := scryptauth.Tune(est, 0.5, 1)
	if over != half {
		t.Errorf("frac=0.9 selected %+v, frac=0.5 selected %+v; want identical", over, half)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Monotonicity
// ──────────────────────────────────────────────────────────────────────────────

func TestTune_LogNMonotonicInMemFrac(t *testing.T) {
	est := scryptauth.FixedEstimator{Mem: 1 << 32, Ops: 1e8}

	prev := 0
	for _, frac := range []float64{0.05, 0.1, 0.2, 0.3, 0.4, 0.5} {
		params, err := scryptauth.Tune(est, frac, 1)
		if err != nil {
			t.Fatalf("Tune(frac=%v): %v", frac, err)
		}
		if params.LogN < prev {
			t.Errorf("frac=%v: logN decreased from %d to %d", frac, prev, params.LogN)
		}
		prev = params.LogN
	}
}

func TestTune_PMonotonicInTime(t *testing.T) {
	// Memory-bound fixture: the operation budget exceeds memLimit/32 at
	// every time budget below, so only p varies with time.
	est := scryptauth.FixedEstimator{Mem: 1 << 32, Ops: 1e8}

	var prev uint32
	for _, seconds := range []float64{0.5, 1, 2, 4, 8} {
		params, err := scryptauth.Tune(est, 0.25, seconds)
		if err != nil {
			t.Fatalf("Tune(t=%v): %v", seconds, err)
		}
		if params.P < prev {
			t.Errorf("t=%v: p decreased from %d to %d", seconds, prev, params.P)
		}
		prev = params.P
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Failure propagation
// ──────────────────────────────────────────────────────────────────────────────

func TestTune_EstimatorFailures(t *testing.T) {
	tests := []struct {
		name string
		est  scryptauth.HostEstimator
	}{
		{"memory query fails", failingEstimator{memErr: errors.New("no sysinfo")}},
		{"ops query fails", failingEstimator{opsErr: errors.New("no benchmark")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scryptauth.Tune(tt.est, 0.1, 1)
			if !errors.Is(err, scryptauth.ErrResourceQuery) {
				t.Errorf("expected ErrResourceQuery, got %v", err)
			}
		})
	}
}

func TestParams_N(t *testing.T) {
	p := scryptauth.Params{LogN: 14, R: 8, P: 1}
	if got := p.N(); got != 16384 {
		t.Errorf("N() = %d, want 16384", got)
	}
}

func TestParams_String(t *testing.T) {
	p := scryptauth.Params{LogN: 14, R: 8, P: 1}
	if got := p.String(); got != "logN=14,r=8,p=1" {
		t.Errorf("String() = %q", got)
	}
}
