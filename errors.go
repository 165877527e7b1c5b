package scryptauth

import "errors"

// Sentinel errors returned by scryptauth operations.
//
// Use [errors.Is] for comparisons:
//
//	_, err := h.Hash(password)
//	if errors.Is(err, scryptauth.ErrResourceQuery) {
//	    // host memory or CPU throughput could not be determined
//	}
var (
	// ErrResourceQuery is returned when the total host memory or the CPU
	// throughput estimate cannot be obtained, so cost parameters cannot be
	// tuned.  Hashing fails outright; there is nothing to retry.
	ErrResourceQuery = errors.New("scryptauth: unable to determine host resources")

	// ErrEntropy is returned when the secure random source cannot supply
	// salt bytes.  Treat this as fatal; never substitute a weaker source.
	ErrEntropy = errors.New("scryptauth: unable to read random salt")

	// ErrDerivation is returned when the key derivation function rejects the
	// supplied parameters — for example N is not a power of two, r*p is out
	// of range, or the parameter combination needs more memory than the
	// platform can address.
	ErrDerivation = errors.New("scryptauth: key derivation failed")

	// ErrInvalidRecord is returned when a hash record cannot be parsed:
	// it is shorter than 96 bytes, carries an unknown magic or version, has
	// a checksum that does not match its header, or (for the string forms)
	// is not valid base64.
	ErrInvalidRecord = errors.New("scryptauth: invalid hash record")

	// ErrInvalidOption is returned by [NewHasher] when an option value falls
	// outside the allowed range (e.g., a negative time budget).
	ErrInvalidOption = errors.New("scryptauth: invalid option value")
)
