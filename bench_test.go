package scryptauth_test

import (
	"testing"

	"github.com/passkit/scryptauth"
)

// Note: production derivations are intentionally slow.  The fixed-estimator
// benchmarks measure framework overhead with a 1 MiB derivation; the
// interactive benchmark measures a realistic N=2^15 login-scale cost.

func BenchmarkHash_TestParams(b *testing.B) {
	h, _ := scryptauth.NewHasher(scryptauth.Options{
		MaxMemFrac: 0.5,
		MaxTime:    1,
		Estimator:  scryptauth.FixedEstimator{Mem: 1 << 20, Ops: 32768},
	})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Hash([]byte("bench-password"))
	}
}

func BenchmarkVerify_TestParams(b *testing.B) {
	h, _ := scryptauth.NewHasher(scryptauth.Options{
		MaxMemFrac: 0.5,
		MaxTime:    1,
		Estimator:  scryptauth.FixedEstimator{Mem: 1 << 20, Ops: 32768},
	})
	record, _ := h.Hash([]byte("bench-password"))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = scryptauth.Verify(record, []byte("bench-password"))
	}
}

func BenchmarkKey_Interactive(b *testing.B) {
	salt := make([]byte, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = scryptauth.Key([]byte("bench-password"), salt, 1<<15, 8, 1, 64)
	}
}

func BenchmarkTune(b *testing.B) {
	est := scryptauth.FixedEstimator{Mem: 1 << 32, Ops: 1e8}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = scryptauth.Tune(est, 0.1, 1)
	}
}
