package scryptauth_test

import (
	"testing"

	"github.com/passkit/scryptauth"
)

// fuzzSeeds returns a corpus of valid, truncated, and junk records.
func fuzzSeeds(tb testing.TB) [][]byte {
	tb.Helper()
	h, err := scryptauth.NewHasher(scryptauth.Options{
		MaxMemFrac: 0.5,
		MaxTime:    1,
		Estimator:  testEstimator,
	})
	if err != nil {
		tb.Fatalf("NewHasher: %v", err)
	}
	valid, err := h.Hash([]byte("fuzz"))
	if err != nil {
		tb.Fatalf("Hash: %v", err)
	}
	return [][]byte{
		{},
		[]byte("scrypt"),
		[]byte("not a record at all"),
		valid,
		valid[:95],
		valid[:48],
	}
}

// FuzzVerify ensures Verify never panics on arbitrary record bytes and
// always returns either a boolean or a well-typed error.
//
// Run with: go test -fuzz=FuzzVerify .
func FuzzVerify(f *testing.F) {
	for _, s := range fuzzSeeds(f) {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, record []byte) {
		// Must not panic; false or error is acceptable.
		_, _ = scryptauth.Verify(record, []byte("fuzz"))
	})
}

// FuzzInfo ensures record inspection never panics on arbitrary input.
func FuzzInfo(f *testing.F) {
	for _, s := range fuzzSeeds(f) {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, record []byte) {
		_, _ = scryptauth.Info(record)
	})
}
