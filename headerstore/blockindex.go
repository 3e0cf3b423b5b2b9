// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerstore

import (
	"github.com/dogeorg/dogecore/arith256"
	"github.com/dogeorg/dogecore/wire"
)

// BlockIndexNode is one linked, hash-indexed entry in the header tree.
// InMainChain distinguishes best-chain nodes from superseded fork
// nodes, which stay resident (and findable) after a reorg until pruned.
type BlockIndexNode struct {
	Hash        wire.Hash
	Header      wire.BlockHeader
	Height      int32
	ChainWork   *arith256.Uint256
	Parent      *BlockIndexNode
	InMainChain bool
}

// genesisWireHash converts a chaincfg genesis hash (stored in reversed
// display order, like every hex-formatted hash in this module) into the
// little-endian wire.Hash representation the header tree is keyed by.
func genesisWireHash(genesisHash [32]byte) wire.Hash {
	var h wire.Hash
	for i := 0; i < wire.HashSize; i++ {
		h[i] = genesisHash[wire.HashSize-1-i]
	}
	return h
}
