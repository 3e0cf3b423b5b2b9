// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dogeec implements private/public key primitives: generation,
// Hash160, WIF encoding, and the ECDSA sign/verify/recover wrappers used
// by every higher-level package (HD keys, transaction signing, message
// signing).
package dogeec

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"hash"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/ripemd160"
)

// ErrInvalidKey describes a scalar outside [1, n-1] or a public key
// point not on the curve.
var ErrInvalidKey = errors.New("dogeec: invalid key")

// ErrSignFailed covers a bounded-retry signing failure.
var ErrSignFailed = errors.New("dogeec: signing failed")

const PrivKeyBytesLen = 32

// PrivKey is a 32-byte secp256k1 scalar, 0 < K < n.
type PrivKey struct {
	key *secp256k1.PrivateKey
}

// GeneratePrivKey samples uniformly from [1, n-1], retrying internally
// on the vanishingly unlikely invalid draw.
func GeneratePrivKey() (*PrivKey, error) {
	const maxAttempts = 16
	for i := 0; i < maxAttempts; i++ {
		var buf [PrivKeyBytesLen]byte
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, err
		}
		k, err := NewPrivKey(buf[:])
		if err == nil {
			return k, nil
		}
	}
	return nil, ErrSignFailed
}

// NewPrivKey constructs a PrivKey from 32 raw bytes, rejecting a scalar
// of zero or ≥ the group order.
func NewPrivKey(b []byte) (*PrivKey, error) {
	if len(b) != PrivKeyBytesLen {
		return nil, ErrInvalidKey
	}
	var scalar secp256k1.ModNScalar
	overflow := scalar.SetByteSlice(b)
	if overflow || scalar.IsZero() {
		return nil, ErrInvalidKey
	}
	return &PrivKey{key: secp256k1.NewPrivateKey(&scalar)}, nil
}

// Serialize returns the 32-byte big-endian scalar.
func (k *PrivKey) Serialize() []byte {
	return k.key.Serialize()
}

// Zero overwrites the backing scalar with zeroes. Callers must not use
// the key afterwards.
func (k *PrivKey) Zero() {
	k.key.Zero()
}

// PubKey derives the associated public key by scalar multiplication of
// the curve generator.
func (k *PrivKey) PubKey() *PubKey {
	return &PubKey{key: k.key.PubKey()}
}

// PubKey wraps a secp256k1 curve point.
type PubKey struct {
	key *secp256k1.PublicKey
}

// ParsePubKey accepts either a 33-byte compressed or 65-byte uncompressed
// serialized point.
func ParsePubKey(b []byte) (*PubKey, error) {
	k, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, ErrInvalidKey
	}
	return &PubKey{key: k}, nil
}

// SerializeCompressed returns the 33-byte tagged-X encoding.
func (p *PubKey) SerializeCompressed() []byte {
	return p.key.SerializeCompressed()
}

// SerializeUncompressed returns the 65-byte tagged-X-Y encoding.
func (p *PubKey) SerializeUncompressed() []byte {
	return p.key.SerializeUncompressed()
}

// Hash160 computes ripemd160(sha256(buf)), the key-identity hash used
// throughout P2PKH construction.
func Hash160(buf []byte) []byte {
	sum := sha256.Sum256(buf)
	return calcHash(sum[:], ripemd160.New())
}

func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// Sign produces a deterministic (RFC 6979) DER-encoded, low-S canonical
// ECDSA signature over a 32-byte digest.
func Sign(k *PrivKey, hash32 []byte) ([]byte, error) {
	if len(hash32) != 32 {
		return nil, ErrInvalidKey
	}
	sig := ecdsa.Sign(k.key, hash32)
	return sig.Serialize(), nil
}

// Verify checks a DER signature against a public key and digest.
func Verify(p *PubKey, hash32, sig []byte) bool {
	s, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return false
	}
	return s.Verify(hash32, p.key)
}

// SignCompact produces the 64-byte raw (r||s) compact signature. The
// underlying RFC 6979 nonce and low-S normalization are handled by the
// secp256k1 library itself, so callers never observe a high-S value.
func SignCompact(k *PrivKey, hash32 []byte) ([64]byte, error) {
	if len(hash32) != 32 {
		return [64]byte{}, ErrInvalidKey
	}
	var out [64]byte
	compact := ecdsa.SignCompact(k.key, hash32, false)
	copy(out[:], compact[1:])
	return out, nil
}

// SignRecoverable returns the 64-byte compact signature plus a recovery
// id in [0,3] sufficient to recover the public key from (sig, digest)
// alone; used by message signing.
func SignRecoverable(k *PrivKey, hash32 []byte) (sig64 [64]byte, recid byte, err error) {
	if len(hash32) != 32 {
		return sig64, 0, ErrInvalidKey
	}
	compact := ecdsa.SignCompact(k.key, hash32, true)
	// ecdsa.SignCompact returns [header(1) | r(32) | s(32)] with
	// header = 27 + recid + (4 if compressed); unpack back to the raw
	// recid + 64-byte signature this package's callers expect.
	header := compact[0]
	recid = (header - 27) & 3
	copy(sig64[:], compact[1:])
	return sig64, recid, nil
}

// AddPubKeys returns the curve-point sum a+b, used by BIP32 public-only
// child key derivation to combine the parent point with IL·G without
// ever touching a private scalar.
func AddPubKeys(a, b *PubKey) *PubKey {
	var aJ, bJ, sumJ secp256k1.JacobianPoint
	a.key.AsJacobian(&aJ)
	b.key.AsJacobian(&bJ)
	secp256k1.AddNonConst(&aJ, &bJ, &sumJ)
	sumJ.ToAffine()
	return &PubKey{key: secp256k1.NewPublicKey(&sumJ.X, &sumJ.Y)}
}

// PubKeyFromScalar derives the public key G·s for a raw 32-byte scalar,
// used to turn a BIP32 IL tweak into a curve point for public-only
// derivation.
func PubKeyFromScalar(scalar []byte) (*PubKey, error) {
	priv, err := NewPrivKey(scalar)
	if err != nil {
		return nil, err
	}
	return priv.PubKey(), nil
}

// RecoverPubKey recovers the signer's public key from a compact
// signature, recovery id, and digest.
func RecoverPubKey(sig64 [64]byte, recid byte, hash32 []byte) (*PubKey, error) {
	if recid > 3 {
		return nil, ErrInvalidKey
	}
	header := byte(27 + 4 + recid) // assume compressed; caller normalizes display separately
	compact := make([]byte, 65)
	compact[0] = header
	copy(compact[1:], sig64[:])
	pub, _, err := ecdsa.RecoverCompact(compact, hash32)
	if err != nil {
		return nil, ErrInvalidKey
	}
	return &PubKey{key: pub}, nil
}
