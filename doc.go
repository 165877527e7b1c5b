// Package scryptauth provides password hashing and verification built on the
// scrypt memory-hard key derivation function, with cost parameters that are
// tuned automatically to the memory and CPU budget of the host.
//
// # Architecture
//
// Three layers ship with this package:
//
//   - [Tune] converts a memory fraction and a time budget into the scrypt cost
//     parameters (logN, r, p) using Colin Percival's parameter-selection
//     algorithm.  Host capacity is supplied by a [HostEstimator]; the default
//     [SystemEstimator] reads total memory from the operating system and
//     benchmarks the KDF to estimate CPU throughput.
//   - [Hasher] produces self-describing 96-byte hash records: a header
//     carrying the cost parameters and a fresh 32-byte salt, a SHA-256
//     checksum guarding the header against corruption, and an HMAC-SHA256
//     signature keyed with material derived from the password.
//   - [Verify] parses an untrusted record, validates the checksum, re-derives
//     the key material from the candidate password, and compares signatures
//     in constant time.
//
// [Key] exposes the raw KDF for callers that manage their own salts and
// parameters; it performs no tuning and no record framing.
//
// # Quick start
//
//	h, err := scryptauth.NewHasher(scryptauth.Options{})
//	if err != nil { log.Fatal(err) }
//
//	record, _ := h.HashString("my-secret-password")
//	ok, _     := scryptauth.VerifyString(record, "my-secret-password")
//
// # Record format
//
// A record is exactly 96 bytes:
//
//	[0:6)    magic "scrypt"
//	[6]      format version (0)
//	[7]      logN
//	[8:12)   r, big-endian
//	[12:16)  p, big-endian
//	[16:48)  salt
//	[48:64)  SHA-256 of bytes [0:48), truncated to 16 bytes
//	[64:96)  HMAC-SHA256 of bytes [0:64), keyed with the upper half of the
//	         64-byte derived key
//
// The layout is compatible with the header used by Tarsnap's scrypt utility
// and the R scrypt package, so records are portable across implementations.
// Records are raw bytes; [Hasher.HashString] and [VerifyString] apply
// standard base64 framing for storage in text columns.
//
// # Security notes
//
//   - The signature comparison is constant time ([crypto/subtle]), so
//     verification does not leak how much of the derived key matched.
//   - Verification collapses malformed input, checksum mismatch, and
//     signature mismatch into a single boolean so callers cannot be used as
//     an oracle for which check failed.
//   - Salts are 32 bytes from [crypto/rand] and never reused.
//
// # Thread safety
//
// A [Hasher] is immutable after construction and safe for concurrent use.
// Package-level functions are stateless.
package scryptauth
