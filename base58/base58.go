// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package base58 implements the base58-check codec: the Bitcoin-style
// alphabet, a 4-byte double-SHA256 checksum, and leading-zero-byte
// preservation. Raw alphabet encode/decode is delegated to
// github.com/decred/base58; this package adds the checksum framing and
// distinct decode error kinds.
package base58

import (
	"crypto/sha256"
	"errors"

	"github.com/decred/base58"
)

// ErrKind enumerates the distinct base58check failure modes. Callers
// compare with errors.Is, not by message string.
type ErrKind int

const (
	ErrMalformedDigit ErrKind = iota
	ErrLengthOverflow
	ErrBadChecksum
	ErrLeadingZeroMismatch
	ErrShortPrefix
)

func (k ErrKind) String() string {
	switch k {
	case ErrMalformedDigit:
		return "malformed base58 digit"
	case ErrLengthOverflow:
		return "decoded length overflow"
	case ErrBadChecksum:
		return "checksum mismatch"
	case ErrLeadingZeroMismatch:
		return "leading zero byte mismatch"
	case ErrShortPrefix:
		return "payload shorter than checksum"
	default:
		return "unknown base58 error"
	}
}

// Error wraps an ErrKind so callers can use errors.Is/As while still
// getting a readable message.
type Error struct {
	Kind ErrKind
}

func (e *Error) Error() string { return "base58check: " + e.Kind.String() }

func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

const checksumLen = 4

// CheckEncode base58check-encodes payload. It adds no version byte of
// its own; callers prepend any version byte(s) to payload first, as the
// WIF, address, and extended-key layouts all do.
func CheckEncode(payload []byte) string {
	b := make([]byte, 0, len(payload)+checksumLen)
	b = append(b, payload...)
	cksum := doubleSHA256(payload)
	b = append(b, cksum[:checksumLen]...)
	return base58.Encode(b)
}

// CheckDecode reverses CheckEncode, verifying the checksum and returning
// the original payload (without the checksum suffix).
func CheckDecode(s string) ([]byte, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 && s != "" {
		return nil, &Error{Kind: ErrMalformedDigit}
	}
	if len(decoded) < checksumLen {
		return nil, &Error{Kind: ErrShortPrefix}
	}
	payload := decoded[:len(decoded)-checksumLen]
	cksum := decoded[len(decoded)-checksumLen:]
	expected := doubleSHA256(payload)
	for i := 0; i < checksumLen; i++ {
		if cksum[i] != expected[i] {
			return nil, &Error{Kind: ErrBadChecksum}
		}
	}
	if err := checkLeadingZeros(s, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// checkLeadingZeros verifies that the count of leading '1' characters
// in the encoded string matches the count of leading zero bytes in the
// decoded payload.
func checkLeadingZeros(s string, payload []byte) error {
	var leadingOnes int
	for leadingOnes < len(s) && s[leadingOnes] == '1' {
		leadingOnes++
	}
	var leadingZeros int
	for leadingZeros < len(payload) && payload[leadingZeros] == 0 {
		leadingZeros++
	}
	if leadingOnes != leadingZeros {
		return &Error{Kind: ErrLeadingZeroMismatch}
	}
	return nil
}

// Encode and Decode expose the raw (non-checksummed) base58 alphabet for
// callers that only need the alphabet, e.g. auxiliary tooling.
func Encode(b []byte) string { return base58.Encode(b) }
func Decode(s string) []byte { return base58.Decode(s) }

func doubleSHA256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}
