// Copyright (c) 2009-2010 Satoshi Nakamoto
// Copyright (c) 2014 Daniel Kraft
// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package auxpow implements merged-mining (AuxPoW) payloads and their
// acceptance rules: a child header's commitment inside a parent chain's
// coinbase, the merkle branches linking the two, and the parent-header
// proof-of-work check against the child's target.
package auxpow

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/dogeorg/dogecore/chaincfg"
	"github.com/dogeorg/dogecore/pow"
	"github.com/dogeorg/dogecore/wire"
)

// ErrAuxpowFailed describes any AuxPoW acceptance-rule violation.
var ErrAuxpowFailed = errors.New("auxpow: verification failed")

// PchMergedMiningHeader is the magic preceding the committed chain
// merkle root inside the parent coinbase scriptSig.
var PchMergedMiningHeader = []byte{0xfa, 0xbe, 'm', 'm'}

const maxChainBranchHashes = 30

// MerkleBranch is an authentication path proving a leaf hash's
// membership in a merkle tree, plus the bitmask of left/right turns.
type MerkleBranch struct {
	Hashes   []wire.Hash
	SideMask uint32
}

func (mb *MerkleBranch) Size() int { return len(mb.Hashes) }

// DetermineRoot recomputes the merkle root obtained by walking
// component up through the branch.
func (mb *MerkleBranch) DetermineRoot(component wire.Hash) wire.Hash {
	h := component
	mask := mb.SideMask
	buf := make([]byte, wire.HashSize*2)
	for _, branchHash := range mb.Hashes {
		if mask&1 != 0 {
			copy(buf[:wire.HashSize], branchHash[:])
			copy(buf[wire.HashSize:], h[:])
		} else {
			copy(buf[:wire.HashSize], h[:])
			copy(buf[wire.HashSize:], branchHash[:])
		}
		h = wire.DoubleHashH(buf)
		mask >>= 1
	}
	return h
}

func (mb *MerkleBranch) HasRoot(component, root wire.Hash) bool {
	return mb.DetermineRoot(component) == root
}

func (mb *MerkleBranch) serialize(w io.Writer) error {
	if err := wire.WriteVarInt(w, uint64(len(mb.Hashes))); err != nil {
		return err
	}
	for _, h := range mb.Hashes {
		if _, err := w.Write(h[:]); err != nil {
			return err
		}
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], mb.SideMask)
	_, err := w.Write(buf[:])
	return err
}

func (mb *MerkleBranch) deserialize(r io.Reader) error {
	n, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if n > maxChainBranchHashes {
		return ErrAuxpowFailed
	}
	mb.Hashes = make([]wire.Hash, n)
	for i := range mb.Hashes {
		if _, err := io.ReadFull(r, mb.Hashes[i][:]); err != nil {
			return wire.ErrDeser
		}
	}
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return wire.ErrDeser
	}
	mb.SideMask = binary.LittleEndian.Uint32(buf[:])
	return nil
}

// AuxPow is the payload trailing a header whose version has the AuxPoW
// bit set: the parent chain's coinbase transaction proving commitment
// to this child header, the two merkle branches linking it, and the
// parent block header itself.
type AuxPow struct {
	CoinbaseTx       wire.MsgTx
	CoinbaseBranch   MerkleBranch
	BlockChainBranch MerkleBranch
	ParentBlock      wire.BlockHeader
}

// Serialize writes the AuxPoW payload trailing the 80-byte header.
func (ap *AuxPow) Serialize(w io.Writer) error {
	if err := ap.CoinbaseTx.Serialize(w); err != nil {
		return err
	}
	if err := ap.CoinbaseBranch.serialize(w); err != nil {
		return err
	}
	if err := ap.BlockChainBranch.serialize(w); err != nil {
		return err
	}
	return ap.ParentBlock.Serialize(w)
}

// Deserialize parses an AuxPoW payload.
func (ap *AuxPow) Deserialize(r io.Reader) error {
	if err := ap.CoinbaseTx.Deserialize(r); err != nil {
		return err
	}
	if err := ap.CoinbaseBranch.deserialize(r); err != nil {
		return err
	}
	if err := ap.BlockChainBranch.deserialize(r); err != nil {
		return err
	}
	return ap.ParentBlock.Deserialize(r)
}

// getExpectedIndex reproduces the deterministic pseudo-random chain
// merkle slot selection used so the same merged-mining work cannot be
// replayed across chain ids.
func getExpectedIndex(nonce, chainID uint32, h int) uint32 {
	r := nonce
	r = r*1103515245 + 12345
	r += chainID
	r = r*1103515245 + 12345
	return r % (1 << uint(h))
}

// Check verifies an AuxPoW payload against the child header it trails:
// the chain-id gate, the chain merkle commitment inside the parent
// coinbase, the coinbase's membership in the parent merkle tree, and
// the parent header's work against the child's target.
func Check(ap *AuxPow, childHeader *wire.BlockHeader, params chaincfg.Params) error {
	// The coinbase transaction must be the merkle tree's leftmost leaf;
	// a nonzero side mask means some other transaction was substituted
	// in its place ("auxpow is not a generate").
	if ap.CoinbaseBranch.SideMask != 0 {
		return ErrAuxpowFailed
	}

	childHash := childHeader.BlockHash()
	chainID := childHeader.ChainID()

	if params.StrictChainID && chainID != params.AuxPowChainID {
		legacy := childHeader.Version == 1 || (childHeader.Version == 2 && chainID == 0)
		if !legacy {
			return ErrAuxpowFailed
		}
	}

	if ap.BlockChainBranch.Size() > maxChainBranchHashes {
		return ErrAuxpowFailed
	}

	rootHash := ap.BlockChainBranch.DetermineRoot(childHash)
	revRoot := reverseHash(rootHash)

	coinbaseHash := ap.CoinbaseTx.TxHash()
	if !ap.CoinbaseBranch.HasRoot(coinbaseHash, ap.ParentBlock.MerkleRoot) {
		return ErrAuxpowFailed
	}

	if len(ap.CoinbaseTx.TxIn) == 0 {
		return ErrAuxpowFailed
	}
	script := ap.CoinbaseTx.TxIn[0].SignatureScript
	hashPos := bytes.Index(script, revRoot[:])
	if hashPos < 0 {
		return ErrAuxpowFailed
	}
	headerPos := bytes.Index(script, PchMergedMiningHeader)
	if headerPos >= 0 {
		if bytes.Index(script[headerPos+1:], PchMergedMiningHeader) >= 0 {
			return ErrAuxpowFailed
		}
		if headerPos+len(PchMergedMiningHeader) != hashPos {
			return ErrAuxpowFailed
		}
	} else if hashPos > 20 {
		return ErrAuxpowFailed
	}

	paramsPos := hashPos + wire.HashSize
	if len(script)-paramsPos < 8 {
		return ErrAuxpowFailed
	}
	mSize := binary.LittleEndian.Uint32(script[paramsPos : paramsPos+4])
	if mSize != uint32(1<<uint(ap.BlockChainBranch.Size())) {
		return ErrAuxpowFailed
	}
	mNonce := binary.LittleEndian.Uint32(script[paramsPos+4 : paramsPos+8])
	expected := getExpectedIndex(mNonce, chainID, ap.BlockChainBranch.Size())
	if ap.BlockChainBranch.SideMask != expected {
		return ErrAuxpowFailed
	}

	// The parent's bytes must satisfy the target implied by the
	// *child's* bits, not the parent's own.
	if _, err := pow.CheckProofOfWorkAgainstBits(&ap.ParentBlock, childHeader.Bits, params); err != nil {
		return ErrAuxpowFailed
	}

	return nil
}

func reverseHash(h wire.Hash) wire.Hash {
	var out wire.Hash
	for i := 0; i < wire.HashSize; i++ {
		out[i] = h[wire.HashSize-1-i]
	}
	return out
}
