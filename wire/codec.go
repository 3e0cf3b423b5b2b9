// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the byte codec shared by every serialized
// type in this module (CompactSize varints, fixed-width little-endian
// integers, length-prefixed byte strings) together with the wire-level
// data types built on top of it: transactions and block headers.
package wire

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"
)

// ErrDeser describes any deserialization failure: truncated input, a
// bad varint, or a value that overflows its field.
var ErrDeser = errors.New("wire: deserialization error")

const HashSize = 32

// Hash is a double-SHA256 digest, stored internally in the natural
// little-endian byte order produced by the hash function. String/FromHex
// flip to the reversed big-endian display convention Bitcoin-family
// block explorers use.
type Hash [HashSize]byte

func (h Hash) String() string {
	var rev [HashSize]byte
	for i := 0; i < HashSize; i++ {
		rev[i] = h[HashSize-1-i]
	}
	return hex.EncodeToString(rev[:])
}

// HashFromHex parses a display-order (reversed) hex hash string.
func HashFromHex(s string) (Hash, error) {
	var h Hash
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != HashSize {
		return h, ErrDeser
	}
	for i := 0; i < HashSize; i++ {
		h[i] = b[HashSize-1-i]
	}
	return h, nil
}

// DoubleHashH computes double-SHA256 over b.
func DoubleHashH(b []byte) Hash {
	first := sha256.Sum256(b)
	return Hash(sha256.Sum256(first[:]))
}

// WriteVarInt writes n using Bitcoin's CompactSize encoding: values
// below 0xFD encode as a single byte, otherwise a marker byte
// (0xFD/0xFE/0xFF) is followed by a fixed-width little-endian integer.
func WriteVarInt(w io.Writer, n uint64) error {
	switch {
	case n < 0xfd:
		_, err := w.Write([]byte{byte(n)})
		return err
	case n <= 0xffff:
		buf := make([]byte, 3)
		buf[0] = 0xfd
		binary.LittleEndian.PutUint16(buf[1:], uint16(n))
		_, err := w.Write(buf)
		return err
	case n <= 0xffffffff:
		buf := make([]byte, 5)
		buf[0] = 0xfe
		binary.LittleEndian.PutUint32(buf[1:], uint32(n))
		_, err := w.Write(buf)
		return err
	default:
		buf := make([]byte, 9)
		buf[0] = 0xff
		binary.LittleEndian.PutUint64(buf[1:], n)
		_, err := w.Write(buf)
		return err
	}
}

// ReadVarInt reads a CompactSize-encoded integer.
func ReadVarInt(r io.Reader) (uint64, error) {
	var prefix [1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return 0, ErrDeser
	}
	switch prefix[0] {
	case 0xfd:
		var buf [2]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, ErrDeser
		}
		return uint64(binary.LittleEndian.Uint16(buf[:])), nil
	case 0xfe:
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, ErrDeser
		}
		return uint64(binary.LittleEndian.Uint32(buf[:])), nil
	case 0xff:
		var buf [8]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, ErrDeser
		}
		return binary.LittleEndian.Uint64(buf[:]), nil
	default:
		return uint64(prefix[0]), nil
	}
}

// VarIntSerializeSize returns the number of bytes WriteVarInt would emit
// for n.
func VarIntSerializeSize(n uint64) int {
	switch {
	case n < 0xfd:
		return 1
	case n <= 0xffff:
		return 3
	case n <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// WriteVarBytes writes a CompactSize length prefix followed by b.
func WriteVarBytes(w io.Writer, b []byte) error {
	if err := WriteVarInt(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// ReadVarBytes reads a length-prefixed byte string, rejecting a declared
// length above maxAllowed to guard against a hostile truncated-length
// amplification.
func ReadVarBytes(r io.Reader, maxAllowed uint64) ([]byte, error) {
	n, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if n > maxAllowed {
		return nil, ErrDeser
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, ErrDeser
	}
	return b, nil
}

// WriteVarString writes a CompactSize length prefix followed by the
// raw bytes of s.
func WriteVarString(w io.Writer, s string) error {
	return WriteVarBytes(w, []byte(s))
}

// ReadVarString reads a length-prefixed string of at most maxAllowed
// bytes, rejecting any byte outside the printable ASCII range.
func ReadVarString(r io.Reader, maxAllowed uint64) (string, error) {
	b, err := ReadVarBytes(r, maxAllowed)
	if err != nil {
		return "", err
	}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return "", ErrDeser
		}
	}
	return string(b), nil
}

func writeUint32LE(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ErrDeser
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeInt32LE(w io.Writer, v int32) error { return writeUint32LE(w, uint32(v)) }

func readInt32LE(r io.Reader) (int32, error) {
	u, err := readUint32LE(r)
	return int32(u), err
}

func writeUint64LE(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint64LE(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ErrDeser
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func writeInt64LE(w io.Writer, v int64) error { return writeUint64LE(w, uint64(v)) }

func readInt64LE(r io.Reader) (int64, error) {
	u, err := readUint64LE(r)
	return int64(u), err
}

func writeHash(w io.Writer, h Hash) error {
	_, err := w.Write(h[:])
	return err
}

func readHash(r io.Reader) (Hash, error) {
	var h Hash
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return h, ErrDeser
	}
	return h, nil
}
