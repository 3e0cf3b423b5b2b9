// Copyright (c) 2009-2010 Satoshi Nakamoto
// Copyright (c) 2009-2016 The Bitcoin Core developers
// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pow implements the Dogecoin proof-of-work check: Scrypt
// header hashing, compact-target expansion, and chainwork accumulation.
package pow

import (
	"errors"

	"github.com/dogeorg/dogecore/arith256"
	"github.com/dogeorg/dogecore/chaincfg"
	"github.com/dogeorg/dogecore/wire"
	"golang.org/x/crypto/scrypt"
)

// ErrPowFailed describes a header whose Scrypt hash does not satisfy
// its claimed target, or a target that is itself invalid.
var ErrPowFailed = errors.New("pow: proof of work check failed")

const (
	scryptN      = 1024
	scryptR      = 1
	scryptP      = 1
	scryptKeyLen = 32
)

// ScryptHash computes the Scrypt(1024,1,1,32) proof-of-work hash over
// the 80-byte canonical header encoding.
func ScryptHash(h *wire.BlockHeader) (wire.Hash, error) {
	raw := h.Bytes()
	digest, err := scrypt.Key(raw, raw, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return wire.Hash{}, err
	}
	var out wire.Hash
	copy(out[:], digest)
	return out, nil
}

// ExpandTarget expands a compact nBits field into a 256-bit target,
// rejecting a negative, overflowed, or above-pow_limit result.
func ExpandTarget(bits uint32, params chaincfg.Params) (*arith256.Uint256, error) {
	target, negative, overflow := arith256.SetCompact(bits)
	if negative || overflow {
		return nil, ErrPowFailed
	}
	var limitArr [32]byte
	params.PowLimit.FillBytes(limitArr[:])
	var limit arith256.Uint256
	limit.SetBytesBE(limitArr)
	if target.Cmp(&limit) > 0 {
		return nil, ErrPowFailed
	}
	return target, nil
}

// CheckProofOfWork verifies that a header's Scrypt hash satisfies its
// declared compact target, and returns this header's chainwork
// contribution.
func CheckProofOfWork(h *wire.BlockHeader, params chaincfg.Params) (work *arith256.Uint256, err error) {
	return CheckProofOfWorkAgainstBits(h, h.Bits, params)
}

// CheckProofOfWorkAgainstBits verifies Scrypt(h) against the target
// encoded by bits rather than h.Bits. AuxPoW acceptance needs this
// split: the parent header's bytes are hashed, but the target comes
// from the child header's bits.
func CheckProofOfWorkAgainstBits(h *wire.BlockHeader, bits uint32, params chaincfg.Params) (work *arith256.Uint256, err error) {
	target, err := ExpandTarget(bits, params)
	if err != nil {
		return nil, err
	}
	hash, err := ScryptHash(h)
	if err != nil {
		return nil, err
	}
	var hashVal arith256.Uint256
	hashVal.SetBytesBE(reverse32(hash))
	if hashVal.Cmp(target) > 0 {
		return nil, ErrPowFailed
	}
	return arith256.CountWork(target), nil
}

// reverse32 flips the hash function's natural little-endian digest
// into the big-endian order arith256 compares against.
func reverse32(h wire.Hash) [32]byte {
	var out [32]byte
	for i := 0; i < 32; i++ {
		out[i] = h[31-i]
	}
	return out
}
