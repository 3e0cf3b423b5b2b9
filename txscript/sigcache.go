// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/dchest/siphash"
	"github.com/dogeorg/dogecore/wire"
)

// SigCache remembers (sighash, signature, pubkey) triples that have
// already verified, so a caller re-checking the same signed input skips
// the ECDSA work. Entries are keyed by a SipHash-2-4 digest of the
// triple under a per-cache random key; with the key secret an attacker
// cannot construct triples that collide, so lookups stay honest without
// storing the full triple in the map key. Only triples that verified
// successfully are ever stored.
type SigCache struct {
	mu         sync.RWMutex
	valid      map[uint64]sigCacheEntry
	maxEntries uint
	k0, k1     uint64
}

// sigCacheEntry retains the full triple so a SipHash key collision is
// detected by comparison rather than answered with a false positive.
type sigCacheEntry struct {
	sigHash wire.Hash
	sig     []byte
	pubKey  []byte
}

// NewSigCache returns an empty cache bounded at maxEntries; once full,
// Add evicts an arbitrary existing entry to make room for each new one.
func NewSigCache(maxEntries uint) (*SigCache, error) {
	var key [16]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, err
	}
	return &SigCache{
		valid:      make(map[uint64]sigCacheEntry, maxEntries),
		maxEntries: maxEntries,
		k0:         binary.LittleEndian.Uint64(key[0:8]),
		k1:         binary.LittleEndian.Uint64(key[8:16]),
	}, nil
}

func (s *SigCache) entryKey(sigHash wire.Hash, sig, pubKey []byte) uint64 {
	buf := make([]byte, 0, wire.HashSize+len(sig)+len(pubKey))
	buf = append(buf, sigHash[:]...)
	buf = append(buf, sig...)
	buf = append(buf, pubKey...)
	return siphash.Hash(s.k0, s.k1, buf)
}

// Exists reports whether sig over sigHash by pubKey is already cached
// as valid. Safe for concurrent use.
func (s *SigCache) Exists(sigHash wire.Hash, sig, pubKey []byte) bool {
	key := s.entryKey(sigHash, sig, pubKey)
	s.mu.RLock()
	entry, ok := s.valid[key]
	s.mu.RUnlock()
	return ok && entry.sigHash == sigHash &&
		bytes.Equal(entry.sig, sig) && bytes.Equal(entry.pubKey, pubKey)
}

// Add records sig over sigHash by pubKey as verified, evicting an
// arbitrary entry first if the cache is already at maxEntries. Safe for
// concurrent use.
func (s *SigCache) Add(sigHash wire.Hash, sig, pubKey []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maxEntries == 0 {
		return
	}
	if uint(len(s.valid)+1) > s.maxEntries {
		// Map iteration order is unspecified, which is all the
		// randomness eviction needs here: the SipHash key is secret,
		// so an adversary cannot steer which entry comes up first.
		for key := range s.valid {
			delete(s.valid, key)
			break
		}
	}
	entry := sigCacheEntry{
		sigHash: sigHash,
		sig:     append([]byte(nil), sig...),
		pubKey:  append([]byte(nil), pubKey...),
	}
	s.valid[s.entryKey(sigHash, sig, pubKey)] = entry
}
