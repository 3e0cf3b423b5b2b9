// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
)

// BlockHeaderLen is the fixed 80-byte size of a serialized header,
// excluding any trailing AuxPoW payload.
const BlockHeaderLen = 80

// auxPowVersionBit marks a header as carrying an AuxPoW payload.
const auxPowVersionBit = 1 << 8

// chainIDShift places a 16-bit merged-mining chain id in the upper
// bits of the header version field.
const chainIDShift = 16

// BlockHeader is the 80-byte Dogecoin block header.
type BlockHeader struct {
	Version    int32
	PrevBlock  Hash
	MerkleRoot Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// HasAuxPow reports whether the version field's AuxPoW bit is set.
func (h *BlockHeader) HasAuxPow() bool {
	return uint32(h.Version)&auxPowVersionBit != 0
}

// ChainID extracts the 16-bit merged-mining chain id from the upper
// bits of Version.
func (h *BlockHeader) ChainID() uint32 {
	return uint32(h.Version) >> chainIDShift
}

// Serialize writes the canonical 80-byte header encoding.
func (h *BlockHeader) Serialize(w io.Writer) error {
	if err := writeInt32LE(w, h.Version); err != nil {
		return err
	}
	if err := writeHash(w, h.PrevBlock); err != nil {
		return err
	}
	if err := writeHash(w, h.MerkleRoot); err != nil {
		return err
	}
	if err := writeUint32LE(w, h.Timestamp); err != nil {
		return err
	}
	if err := writeUint32LE(w, h.Bits); err != nil {
		return err
	}
	return writeUint32LE(w, h.Nonce)
}

// Deserialize parses the 80-byte header encoding.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	version, err := readInt32LE(r)
	if err != nil {
		return err
	}
	prev, err := readHash(r)
	if err != nil {
		return err
	}
	merkle, err := readHash(r)
	if err != nil {
		return err
	}
	ts, err := readUint32LE(r)
	if err != nil {
		return err
	}
	bits, err := readUint32LE(r)
	if err != nil {
		return err
	}
	nonce, err := readUint32LE(r)
	if err != nil {
		return err
	}
	h.Version, h.PrevBlock, h.MerkleRoot = version, prev, merkle
	h.Timestamp, h.Bits, h.Nonce = ts, bits, nonce
	return nil
}

// Bytes returns the canonical 80-byte encoding.
func (h *BlockHeader) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(BlockHeaderLen)
	_ = h.Serialize(&buf)
	return buf.Bytes()
}

// BlockHash returns the double-SHA256 header hash: the block's
// identity hash, distinct from its Scrypt PoW hash.
func (h *BlockHeader) BlockHash() Hash {
	return DoubleHashH(h.Bytes())
}
