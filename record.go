package scryptauth

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Record layout constants.  Offsets are part of the on-disk format and must
// never change; see the package documentation for the full layout.
const (
	// RecordSize is the exact size of an encoded hash record in bytes.
	RecordSize = 96

	// SaltSize is the size of the per-hash random salt in bytes.
	SaltSize = 32

	// recordVersion is the format version written into byte 6.
	recordVersion = 0

	// keySize is the amount of key material derived during hashing and
	// verification.  The lower half is reserved for encryption use by
	// record-compatible tools; the upper half keys the signature.
	keySize = 64

	// Field offsets within the 96-byte record.
	offMagic    = 0
	offVersion  = 6
	offLogN     = 7
	offR        = 8
	offP        = 12
	offSalt     = 16
	offChecksum = 48
	offSig      = 64

	// checksumSize is the truncated SHA-256 length stored at offChecksum.
	checksumSize = 16
)

// recordMagic identifies the record format; shared with Tarsnap's scrypt
// utility and the R scrypt package.
var recordMagic = [6]byte{'s', 'c', 'r', 'y', 'p', 't'}

// Record is the decoded form of a 96-byte hash record.
//
// A Record is constructed once by [Hasher.Hash] and is immutable thereafter;
// [DecodeRecord] reconstructs one from untrusted bytes for inspection.
// Decoding is purely structural — it bounds-checks and extracts fields but
// does not validate the checksum or signature.  [Verify] owns validation so
// that all rejection paths collapse into a single boolean.
type Record struct {
	LogN      byte
	R         uint32
	P         uint32
	Salt      [SaltSize]byte
	Checksum  [checksumSize]byte
	Signature [32]byte
}

// Params returns the cost parameters carried in the record header.
func (rec *Record) Params() Params {
	return Params{LogN: int(rec.LogN), R: rec.R, P: rec.P}
}

// Encode serialises the record into a fresh 96-byte buffer.
func (rec *Record) Encode() []byte {
	buf := make([]byte, RecordSize)
	rec.encodeHeader(buf)
	copy(buf[offChecksum:offSig], rec.Checksum[:])
	copy(buf[offSig:RecordSize], rec.Signature[:])
	return buf
}

// encodeHeader writes the magic, version, cost parameters, and salt into
// buf[0:48].  buf must be at least offChecksum bytes long.
func (rec *Record) encodeHeader(buf []byte) {
	copy(buf[offMagic:offVersion], recordMagic[:])
	buf[offVersion] = recordVersion
	buf[offLogN] = rec.LogN
	binary.BigEndian.PutUint32(buf[offR:offP], rec.R)
	binary.BigEndian.PutUint32(buf[offP:offSalt], rec.P)
	copy(buf[offSalt:offChecksum], rec.Salt[:])
}

// seal computes the record's checksum and signature.  sigKey is the 32-byte
// signature key, i.e. the upper half of the derived key material.
func (rec *Record) seal(sigKey []byte) {
	buf := make([]byte, offSig)
	rec.encodeHeader(buf)

	rec.Checksum = headerChecksum(buf[:offChecksum])
	copy(buf[offChecksum:offSig], rec.Checksum[:])

	sig := signRecord(sigKey, buf)
	copy(rec.Signature[:], sig)
}

// headerChecksum returns SHA-256 over the header bytes, truncated to 16
// bytes.  The checksum detects corruption and foreign formats; it provides
// no authentication.
func headerChecksum(header []byte) [checksumSize]byte {
	sum := sha256.Sum256(header)
	var out [checksumSize]byte
	copy(out[:], sum[:checksumSize])
	return out
}

// signRecord returns HMAC-SHA256 over data using sigKey.
func signRecord(sigKey, data []byte) []byte {
	mac := hmac.New(sha256.New, sigKey)
	mac.Write(data)
	return mac.Sum(nil)
}

// DecodeRecord parses an encoded hash record.  Input longer than 96 bytes is
// accepted and the excess ignored; input shorter than 96 bytes fails with an
// error wrapping [ErrInvalidRecord].
func DecodeRecord(encoded []byte) (*Record, error) {
	if len(encoded) < RecordSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrInvalidRecord, len(encoded), RecordSize)
	}
	rec := &Record{
		LogN: encoded[offLogN],
		R:    binary.BigEndian.Uint32(encoded[offR:offP]),
		P:    binary.BigEndian.Uint32(encoded[offP:offSalt]),
	}
	copy(rec.Salt[:], encoded[offSalt:offChecksum])
	copy(rec.Checksum[:], encoded[offChecksum:offSig])
	copy(rec.Signature[:], encoded[offSig:RecordSize])
	return rec, nil
}

// RecordInfo carries metadata extracted from an encoded hash record.
type RecordInfo struct {
	// Params are the scrypt cost parameters the record was produced with.
	Params Params

	// Salt is the 32-byte public salt stored in the record.
	Salt []byte
}

// Info inspects an encoded record and returns its cost parameters and salt
// without deriving anything.  Useful for auditing stored hashes or deciding
// whether a record should be re-hashed under stronger parameters.
//
// Unlike [Verify], Info is a diagnostic entry point: it reports what is wrong
// with a record, failing with an error wrapping [ErrInvalidRecord] when the
// record is short, carries an unknown magic or version, or has a checksum
// that does not match its header.
func Info(encoded []byte) (RecordInfo, error) {
	rec, err := DecodeRecord(encoded)
	if err != nil {
		return RecordInfo{}, err
	}
	if !bytes.Equal(encoded[offMagic:offVersion], recordMagic[:]) {
		return RecordInfo{}, fmt.Errorf("%w: bad magic", ErrInvalidRecord)
	}
	if encoded[offVersion] != recordVersion {
		return RecordInfo{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidRecord, encoded[offVersion])
	}
	sum := headerChecksum(encoded[:offChecksum])
	if !bytes.Equal(sum[:], rec.Checksum[:]) {
		return RecordInfo{}, fmt.Errorf("%w: checksum mismatch", ErrInvalidRecord)
	}
	return RecordInfo{
		Params: rec.Params(),
		Salt:   append([]byte(nil), rec.Salt[:]...),
	}, nil
}
