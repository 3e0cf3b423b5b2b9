// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package headerstore implements a hash-indexed block header tree:
// journal persistence, PoW/AuxPoW-gated connection, chainwork-driven
// reorg, bounded in-memory retention, and a getheaders-style block
// locator.
package headerstore

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/dogeorg/dogecore/arith256"
	"github.com/dogeorg/dogecore/auxpow"
	"github.com/dogeorg/dogecore/chaincfg"
	"github.com/dogeorg/dogecore/pow"
	"github.com/dogeorg/dogecore/wire"
	"github.com/syndtr/goleveldb/leveldb"
)

// Failure kinds reported by this package.
var (
	ErrFileMagicMismatch  = errors.New("headerstore: journal file magic mismatch")
	ErrUnsupportedVersion = errors.New("headerstore: unsupported journal version")
	ErrRecordTruncated    = errors.New("headerstore: truncated journal record")
	ErrPowFailed          = pow.ErrPowFailed
	ErrAuxpowFailed       = auxpow.ErrAuxpowFailed
	// ErrOrphanHeader is returned by ConnectHdr when a header's parent
	// is not present in the store.
	ErrOrphanHeader = errors.New("headerstore: header's parent is not known to the store")
	// ErrDisconnected is returned by DisconnectTip when the tip is
	// already the genesis node and cannot be unwound further.
	ErrDisconnected = errors.New("headerstore: cannot disconnect past genesis")
)

// Store holds the in-memory block header tree plus its optional
// on-disk journal and leveldb accelerant.
type Store struct {
	mu          sync.Mutex
	params      chaincfg.Params
	maxHdrInMem int

	nodes   map[wire.Hash]*BlockIndexNode
	genesis *BlockIndexNode
	tip     *BlockIndexNode
	bottom  *BlockIndexNode

	file  *os.File
	accel *leveldb.DB
}

// New returns a Store seeded with params' genesis hash as its sole
// node. maxHdrInMem bounds how many ancestors of the tip are kept
// linked in memory; zero or negative disables pruning.
func New(params chaincfg.Params, maxHdrInMem int) *Store {
	genesisHash := genesisWireHash(params.GenesisHash)
	genesis := &BlockIndexNode{Hash: genesisHash, ChainWork: &arith256.Uint256{}, InMainChain: true}
	return &Store{
		params:      params,
		maxHdrInMem: maxHdrInMem,
		nodes:       map[wire.Hash]*BlockIndexNode{genesisHash: genesis},
		genesis:     genesis,
		tip:         genesis,
		bottom:      genesis,
	}
}

// Tip returns the current best-chain node.
func (s *Store) Tip() *BlockIndexNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tip
}

// Genesis returns the store's genesis node.
func (s *Store) Genesis() *BlockIndexNode {
	return s.genesis
}

// Find returns the in-memory node for hash, or nil if it is unknown
// or has been pruned.
func (s *Store) Find(hash wire.Hash) *BlockIndexNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nodes[hash]
}

// Load opens or creates the journal file at path. With overwrite set,
// or when no file exists yet, a fresh journal is created with the magic
// header and nothing else. Otherwise the existing file is validated and
// its records streamed through the connection logic to rebuild the
// in-memory tree.
func (s *Store) Load(path string, overwrite bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, statErr := os.Stat(path)
	exists := statErr == nil

	if overwrite || !exists {
		f, err := openTruncated(path)
		if err != nil {
			return err
		}
		if err := writeJournalHeader(f); err != nil {
			f.Close()
			return err
		}
		s.file = f
		return nil
	}

	f, err := openExisting(path)
	if err != nil {
		return err
	}
	if err := readJournalHeader(f); err != nil {
		f.Close()
		return err
	}

	count := 0
	for {
		header, err := readRecord(f)
		if err == io.EOF {
			break
		}
		if err != nil {
			f.Close()
			return err
		}
		if _, err := s.replayLocked(&header); err != nil {
			f.Close()
			return err
		}
		count++
	}
	s.file = f
	log.Infof("headerstore: replayed %d records from %s, tip height %d", count, path, s.tip.Height)
	return nil
}

// Close releases the journal file and accelerant, if open.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	if s.file != nil {
		if err := s.file.Close(); err != nil {
			firstErr = err
		}
		s.file = nil
	}
	if s.accel != nil {
		if err := s.accel.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.accel = nil
	}
	return firstErr
}

// OpenAccelerant opens (or creates) a goleveldb hash-to-height side
// index next to the journal. The journal remains the source of truth;
// the accelerant is a lookup cache a caller may choose to maintain.
func (s *Store) OpenAccelerant(path string) error {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.accel = db
	s.mu.Unlock()
	return nil
}

// ConnectHdr validates header against its parent, runs the PoW or
// AuxPoW check, extends the chain, and triggers a reorg if the new node
// now has more chainwork than the current tip. ap must be supplied when
// header.HasAuxPow() is set and is ignored otherwise.
func (s *Store) ConnectHdr(header *wire.BlockHeader, ap *auxpow.AuxPow) (*BlockIndexNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	work, err := s.checkProofOfWork(header, ap)
	if err != nil {
		return nil, err
	}
	node, err := s.linkLocked(header, work)
	if err != nil {
		return nil, err
	}
	if s.file != nil {
		if err := appendRecord(s.file, node); err != nil {
			return nil, err
		}
	}
	if s.accel != nil {
		_ = s.accel.Put(node.Hash[:], heightBytes(node.Height), nil)
	}
	return node, nil
}

// replayLocked links a header read back from the journal without
// re-running its PoW/AuxPoW check (already verified once when the
// record was first appended) and without re-appending it.
func (s *Store) replayLocked(header *wire.BlockHeader) (*BlockIndexNode, error) {
	target, err := pow.ExpandTarget(header.Bits, s.params)
	if err != nil {
		return nil, err
	}
	return s.linkLocked(header, arith256.CountWork(target))
}

func (s *Store) checkProofOfWork(header *wire.BlockHeader, ap *auxpow.AuxPow) (*arith256.Uint256, error) {
	target, err := pow.ExpandTarget(header.Bits, s.params)
	if err != nil {
		return nil, err
	}
	if header.HasAuxPow() {
		if ap == nil {
			return nil, ErrAuxpowFailed
		}
		if err := auxpow.Check(ap, header, s.params); err != nil {
			return nil, err
		}
	} else if _, err := pow.CheckProofOfWork(header, s.params); err != nil {
		return nil, err
	}
	return arith256.CountWork(target), nil
}

// linkLocked attaches header to its parent in the tree, updating tip
// and triggering a reorg if the new chain now outweighs it, then
// enforces the in-memory retention bound. Callers must hold s.mu.
func (s *Store) linkLocked(header *wire.BlockHeader, work *arith256.Uint256) (*BlockIndexNode, error) {
	hash := header.BlockHash()
	if existing, ok := s.nodes[hash]; ok {
		return existing, nil
	}
	parent, ok := s.nodes[header.PrevBlock]
	if !ok {
		return nil, ErrOrphanHeader
	}

	node := &BlockIndexNode{
		Hash:      hash,
		Header:    *header,
		Height:    parent.Height + 1,
		ChainWork: arith256.Add(parent.ChainWork, work),
		Parent:    parent,
	}
	s.nodes[hash] = node

	if node.ChainWork.Cmp(s.tip.ChainWork) > 0 {
		s.reorganize(node)
	}

	s.prune()
	return node, nil
}

// reorganize walks both the current tip's chain and the new node's
// chain back to their common ancestor, marks the superseded branch
// disconnected, flags the new branch as the best chain, and adopts the
// new tip.
func (s *Store) reorganize(newTip *BlockIndexNode) {
	oldTip := s.tip
	a, b := oldTip, newTip
	for a != b {
		if a.Height >= b.Height {
			a.InMainChain = false
			a = a.Parent
		} else {
			b = b.Parent
		}
	}
	for n := newTip; n != a; n = n.Parent {
		n.InMainChain = true
	}
	log.Debugf("headerstore: reorg from %s (height %d) to %s (height %d), common ancestor %s (height %d)",
		oldTip.Hash, oldTip.Height, newTip.Hash, newTip.Height, a.Hash, a.Height)
	s.tip = newTip
}

// DisconnectTip pops and forgets the current tip node, making its
// parent the new tip.
func (s *Store) DisconnectTip() (*BlockIndexNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tip == s.genesis {
		return nil, ErrDisconnected
	}
	popped := s.tip
	popped.InMainChain = false
	s.tip = popped.Parent
	delete(s.nodes, popped.Hash)
	if s.bottom == popped {
		s.bottom = s.tip
	}
	return popped, nil
}

// prune drops hash-map entries below the retention bound: at most
// maxHdrInMem ancestors of the tip stay resident (the journal, if open,
// still has the rest on disk). Callers must hold s.mu.
func (s *Store) prune() {
	if s.maxHdrInMem <= 0 {
		return
	}
	cur := s.tip
	newBottom := cur
	for i := 1; i < s.maxHdrInMem && cur.Parent != nil; i++ {
		cur = cur.Parent
		newBottom = cur
	}
	if newBottom == s.bottom {
		return
	}
	for hash, n := range s.nodes {
		if n.Height < newBottom.Height {
			delete(s.nodes, hash)
		}
	}
	s.bottom = newBottom
}

// FillBlockLocator builds a getheaders-style locator: the 10 most
// recent ancestors directly, then an exponentially doubling step back
// through older history, always ending at genesis.
func (s *Store) FillBlockLocator() []wire.Hash {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []wire.Hash
	step := 1
	node := s.tip
	for node != nil {
		out = append(out, node.Hash)
		if node == s.genesis {
			break
		}
		if len(out) >= 10 {
			step *= 2
		}
		for i := 0; i < step && node != nil; i++ {
			node = node.Parent
		}
	}
	if len(out) == 0 || out[len(out)-1] != s.genesis.Hash {
		out = append(out, s.genesis.Hash)
	}
	return out
}

func heightBytes(height int32) []byte {
	b := make([]byte, 4)
	b[0] = byte(height)
	b[1] = byte(height >> 8)
	b[2] = byte(height >> 16)
	b[3] = byte(height >> 24)
	return b
}
