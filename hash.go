package scryptauth

import (
	"bytes"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/scrypt"
)

const (
	// DefaultMaxMemFrac is the default fraction of total host memory a
	// single derivation may use.
	DefaultMaxMemFrac = 0.1

	// DefaultMaxTime is the default wall-clock budget for a single
	// derivation, in seconds.
	DefaultMaxTime = 1.0
)

// Options configures a [Hasher].  The zero value selects the defaults:
// 10% of host memory, a one-second time budget, the [SystemEstimator], and
// the process's secure random source.
type Options struct {
	// MaxMemFrac is the fraction of total host memory a derivation may use.
	// Values outside (0, 0.5] are treated as 0.5 by the tuner.
	// Default: [DefaultMaxMemFrac].
	MaxMemFrac float64

	// MaxTime is the wall-clock budget per derivation in seconds.
	// Default: [DefaultMaxTime].
	MaxTime float64

	// Estimator supplies the host capacity figures used for tuning.
	// Default: [SystemEstimator].
	Estimator HostEstimator

	// Rand is the salt source.  It must be cryptographically secure and
	// safe for concurrent use.  Default: [crypto/rand.Reader].
	Rand io.Reader
}

// Hasher produces auto-tuned scrypt hash records.
//
// Cost parameters are tuned once per Hash call, so a long-lived Hasher tracks
// changes in host load-independent capacity only through its estimator.
// Hasher is immutable after construction and safe for concurrent use provided
// its Rand source is.
type Hasher struct {
	maxMemFrac float64
	maxTime    float64
	est        HostEstimator
	rand       io.Reader
}

// NewHasher constructs a Hasher.  Zero-value fields in opts are replaced with
// their documented defaults.  Returns an error wrapping [ErrInvalidOption]
// when a value is out of range.
func NewHasher(opts Options) (*Hasher, error) {
	if math.IsNaN(opts.MaxMemFrac) || math.IsInf(opts.MaxMemFrac, 0) || opts.MaxMemFrac < 0 {
		return nil, fmt.Errorf("%w: max memory fraction %v", ErrInvalidOption, opts.MaxMemFrac)
	}
	if math.IsNaN(opts.MaxTime) || math.IsInf(opts.MaxTime, 0) || opts.MaxTime < 0 {
		return nil, fmt.Errorf("%w: max time %v", ErrInvalidOption, opts.MaxTime)
	}
	h := &Hasher{
		maxMemFrac: opts.MaxMemFrac,
		maxTime:    opts.MaxTime,
		est:        opts.Estimator,
		rand:       opts.Rand,
	}
	if h.maxMemFrac == 0 {
		h.maxMemFrac = DefaultMaxMemFrac
	}
	if h.maxTime == 0 {
		h.maxTime = DefaultMaxTime
	}
	if h.est == nil {
		h.est = SystemEstimator{}
	}
	if h.rand == nil {
		h.rand = rand.Reader
	}
	return h, nil
}

// Hash derives a hash record for password and returns its 96-byte encoding.
//
// It tunes cost parameters for the configured budgets, draws a fresh 32-byte
// salt, derives 64 bytes of key material, and seals the record with its
// checksum and signature.  Store the returned bytes (or the base64 form from
// [Hasher.HashString]) and pass them to [Verify] later.
//
// Errors wrap [ErrResourceQuery] when tuning fails, [ErrEntropy] when the
// salt source fails, and [ErrDerivation] when the KDF rejects the tuned
// parameters on this platform.
func (h *Hasher) Hash(password []byte) ([]byte, error) {
	params, err := Tune(h.est, h.maxMemFrac, h.maxTime)
	if err != nil {
		return nil, err
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntropy, err)
	}

	key, err := deriveKey(password, salt, params)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		LogN: byte(params.LogN),
		R:    params.R,
		P:    params.P,
	}
	copy(rec.Salt[:], salt)
	rec.seal(key[keySize/2:])

	return rec.Encode(), nil
}

// HashString hashes password and returns the record in standard base64, the
// framing used when records live in text columns or config files.
func (h *Hasher) HashString(password string) (string, error) {
	record, err := h.Hash([]byte(password))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(record), nil
}

// Verify reports whether password produced the given hash record.
//
// Malformed records, checksum mismatches, and signature mismatches all yield
// (false, nil): collapsing the three rejection reasons into one boolean keeps
// Verify from acting as an oracle for which check failed.  The only error
// case is a structurally valid record whose embedded parameters the KDF
// cannot compute on this host, which yields (false, err) with err wrapping
// [ErrDerivation].
//
// The signature comparison is constant time with respect to the derived
// material; the checksum comparison guards against corruption, not forgery,
// and is not.
func Verify(record, password []byte) (bool, error) {
	rec, err := DecodeRecord(record)
	if err != nil {
		return false, nil
	}

	// The checksum and signature cover the raw input bytes, not a
	// re-encoding, so a record is rejected byte-exactly as stored.
	sum := headerChecksum(record[:offChecksum])
	if !bytes.Equal(sum[:], rec.Checksum[:]) {
		return false, nil
	}

	key, err := deriveKey(password, rec.Salt[:], rec.Params())
	if err != nil {
		return false, err
	}

	sig := signRecord(key[keySize/2:], record[:offSig])
	return subtle.ConstantTimeCompare(sig, rec.Signature[:]) == 1, nil
}

// VerifyString base64-decodes encoded and verifies it against password.
// A record that is not valid base64 fails with an error wrapping
// [ErrInvalidRecord]; everything past decoding behaves like [Verify].
func VerifyString(encoded, password string) (bool, error) {
	record, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false, fmt.Errorf("%w: base64: %v", ErrInvalidRecord, err)
	}
	return Verify(record, []byte(password))
}

// deriveKey runs the KDF for the record workflows: 64 bytes of key material
// from password, salt, and the given cost parameters.
func deriveKey(password, salt []byte, params Params) ([]byte, error) {
	// scrypt.Key takes int; LogN at 63 or above would overflow the shift
	// (and exceed the format's valid range) before scrypt could reject it.
	if params.LogN < 1 || params.LogN > 62 {
		return nil, fmt.Errorf("%w: logN %d out of range [1, 62]", ErrDerivation, params.LogN)
	}
	// scrypt.Key divides by p while validating, so zero values must be
	// rejected here rather than passed through.
	if params.R < 1 || params.P < 1 {
		return nil, fmt.Errorf("%w: r=%d p=%d, both must be positive", ErrDerivation, params.R, params.P)
	}
	key, err := scrypt.Key(password, salt, int(params.N()), int(params.R), int(params.P), keySize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDerivation, err)
	}
	return key, nil
}

// Key is the raw KDF entry point: it derives keyLen bytes from password and
// salt using the caller's own cost parameters, with no tuning and no record
// framing.  n must be a power of two greater than 1.  Callers that want key
// material shaped like the record workflows' should pass keyLen 64.
//
// Parameter combinations rejected by the KDF fail with an error wrapping
// [ErrDerivation].  Key is a pure function: identical inputs always produce
// identical output.
func Key(password, salt []byte, n, r, p, keyLen int) ([]byte, error) {
	if r < 1 || p < 1 {
		return nil, fmt.Errorf("%w: r=%d p=%d, both must be positive", ErrDerivation, r, p)
	}
	key, err := scrypt.Key(password, salt, n, r, p, keyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDerivation, err)
	}
	return key, nil
}
