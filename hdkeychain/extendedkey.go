// Copyright (c) 2014-2021 The btcsuite/Decred developers
// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hdkeychain implements BIP32 hierarchical-deterministic
// extended keys for Dogecoin: seed to master, child-key derivation
// (both private and public), base58check (de)serialization, and
// derivation-path parsing including the BIP44 account layout.
package hdkeychain

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"strconv"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/dogeorg/dogecore/base58"
	"github.com/dogeorg/dogecore/chaincfg"
	"github.com/dogeorg/dogecore/dogeec"
)

// hmacKey is the fixed HMAC-SHA512 key used to derive the master node
// from a seed. Dogecoin inherited this literal unchanged from Bitcoin's
// BIP32; deployed wallets depend on it, so it is not re-keyed per chain.
var hmacKey = []byte("Bitcoin seed")

const (
	serializedKeyLen = 78
	pubKeyLen        = 33
	hardenedBit      = uint32(1) << 31
)

// Failure kinds reported by this package.
var (
	ErrInvalidHdKey    = errors.New("hdkeychain: invalid extended key")
	ErrDeriveHardened  = errors.New("hdkeychain: cannot derive a hardened child from a public-only node")
	ErrInvalidSeedLen  = errors.New("hdkeychain: seed length out of range")
	ErrInvalidPath     = errors.New("hdkeychain: invalid derivation path")
	ErrIndexOutOfRange = errors.New("hdkeychain: child index exceeds 2^31-1")
)

const (
	minSeedBytes = 16
	maxSeedBytes = 64
)

// ExtendedKey is a BIP32 node: depth, parent fingerprint, child index,
// chain code, and either a private or public-only key payload.
type ExtendedKey struct {
	params     chaincfg.Params
	depth      byte
	parentFP   [4]byte
	childIndex uint32
	chainCode  [32]byte
	privKey    *dogeec.PrivKey // nil for public-only nodes
	pubKey     *dogeec.PubKey
	isPrivate  bool
}

// NewMaster derives the root extended private key from a seed:
// I = HMAC-SHA512(hmacKey, seed); IL is the private key, IR the chain
// code.
func NewMaster(seed []byte, params chaincfg.Params) (*ExtendedKey, error) {
	if len(seed) < minSeedBytes || len(seed) > maxSeedBytes {
		return nil, ErrInvalidSeedLen
	}
	mac := hmac.New(sha512.New, hmacKey)
	mac.Write(seed)
	i := mac.Sum(nil)
	il, ir := i[:32], i[32:]

	priv, err := dogeec.NewPrivKey(il)
	if err != nil {
		return nil, ErrInvalidHdKey
	}
	k := &ExtendedKey{
		params:    params,
		depth:     0,
		isPrivate: true,
		privKey:   priv,
	}
	copy(k.chainCode[:], ir)
	return k, nil
}

// IsPrivate reports whether the node carries a private key.
func (k *ExtendedKey) IsPrivate() bool { return k.isPrivate }

// Depth returns the node's depth from the master (0 at root).
func (k *ExtendedKey) Depth() byte { return k.depth }

// ChildIndex returns the index used to derive this node.
func (k *ExtendedKey) ChildIndex() uint32 { return k.childIndex }

// PrivKey returns the node's private key, or nil for a public-only node.
func (k *ExtendedKey) PrivKey() *dogeec.PrivKey { return k.privKey }

// PubKey returns the node's public key, deriving it from the private
// key on first access for private-bearing nodes.
func (k *ExtendedKey) PubKey() *dogeec.PubKey {
	if k.pubKey != nil {
		return k.pubKey
	}
	if k.privKey != nil {
		k.pubKey = k.privKey.PubKey()
	}
	return k.pubKey
}

// IsHardened reports whether index i encodes a hardened child.
func IsHardened(i uint32) bool { return i&hardenedBit != 0 }

// Child derives child index i from k, dispatching to private or
// public CKD according to the node's key payload.
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	if k.isPrivate {
		return k.privateChild(i)
	}
	return k.publicChild(i)
}

func (k *ExtendedKey) privateChild(i uint32) (*ExtendedKey, error) {
	var data []byte
	if IsHardened(i) {
		data = make([]byte, 0, 1+32+4)
		data = append(data, 0x00)
		data = append(data, k.privKey.Serialize()...)
	} else {
		data = make([]byte, 0, pubKeyLen+4)
		data = append(data, k.PubKey().SerializeCompressed()...)
	}
	data = appendUint32BE(data, i)

	mac := hmac.New(sha512.New, k.chainCode[:])
	mac.Write(data)
	sum := mac.Sum(nil)
	il, ir := sum[:32], sum[32:]

	var ilScalar, parentScalar secp256k1.ModNScalar
	if ilScalar.SetByteSlice(il) {
		return nil, ErrInvalidHdKey // IL >= n
	}
	if parentScalar.SetByteSlice(k.privKey.Serialize()) {
		return nil, ErrInvalidHdKey
	}
	childScalar := new(secp256k1.ModNScalar).Add2(&parentScalar, &ilScalar)
	if childScalar.IsZero() {
		return nil, ErrInvalidHdKey
	}
	childScalarBytes := childScalar.Bytes()
	childPriv, err := dogeec.NewPrivKey(childScalarBytes[:])
	if err != nil {
		return nil, ErrInvalidHdKey
	}

	child := &ExtendedKey{
		params:     k.params,
		depth:      k.depth + 1,
		childIndex: i,
		isPrivate:  true,
		privKey:    childPriv,
	}
	copy(child.chainCode[:], ir)
	copy(child.parentFP[:], fingerprint(k.PubKey()))
	return child, nil
}

func (k *ExtendedKey) publicChild(i uint32) (*ExtendedKey, error) {
	if IsHardened(i) {
		return nil, ErrDeriveHardened
	}
	data := make([]byte, 0, pubKeyLen+4)
	data = append(data, k.PubKey().SerializeCompressed()...)
	data = appendUint32BE(data, i)

	mac := hmac.New(sha512.New, k.chainCode[:])
	mac.Write(data)
	sum := mac.Sum(nil)
	il, ir := sum[:32], sum[32:]

	ilPub, err := dogeec.PubKeyFromScalar(il)
	if err != nil {
		return nil, ErrInvalidHdKey
	}
	childPub := dogeec.AddPubKeys(k.PubKey(), ilPub)

	child := &ExtendedKey{
		params:     k.params,
		depth:      k.depth + 1,
		childIndex: i,
		isPrivate:  false,
		pubKey:     childPub,
	}
	copy(child.chainCode[:], ir)
	copy(child.parentFP[:], fingerprint(k.PubKey()))
	return child, nil
}

// Neuter returns a public-only copy of k, used to share a watch-only
// branch of the tree.
func (k *ExtendedKey) Neuter() *ExtendedKey {
	return &ExtendedKey{
		params:     k.params,
		depth:      k.depth,
		parentFP:   k.parentFP,
		childIndex: k.childIndex,
		chainCode:  k.chainCode,
		isPrivate:  false,
		pubKey:     k.PubKey(),
	}
}

func fingerprint(pub *dogeec.PubKey) []byte {
	return dogeec.Hash160(pub.SerializeCompressed())[:4]
}

func appendUint32BE(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// Serialize produces the base58check encoding of the 78-byte extended
// key layout: version, depth, parent fingerprint, child index, chain
// code, key material.
func (k *ExtendedKey) Serialize() string {
	buf := make([]byte, 0, serializedKeyLen)
	if k.isPrivate {
		buf = append(buf, k.params.HDPrivateKeyID[:]...)
	} else {
		buf = append(buf, k.params.HDPublicKeyID[:]...)
	}
	buf = append(buf, k.depth)
	buf = append(buf, k.parentFP[:]...)
	buf = appendUint32BE(buf, k.childIndex)
	buf = append(buf, k.chainCode[:]...)
	if k.isPrivate {
		buf = append(buf, 0x00)
		buf = append(buf, k.privKey.Serialize()...)
	} else {
		buf = append(buf, k.PubKey().SerializeCompressed()...)
	}
	return base58.CheckEncode(buf)
}

// Parse decodes a base58check extended key string against params,
// rejecting a private-tagged blob whose key-prefix byte is not 0x00.
func Parse(s string, params chaincfg.Params) (*ExtendedKey, error) {
	decoded, err := base58.CheckDecode(s)
	if err != nil {
		return nil, err
	}
	if len(decoded) != serializedKeyLen {
		return nil, ErrInvalidHdKey
	}
	var version [4]byte
	copy(version[:], decoded[:4])

	k := &ExtendedKey{params: params}
	k.depth = decoded[4]
	copy(k.parentFP[:], decoded[5:9])
	k.childIndex = binary.BigEndian.Uint32(decoded[9:13])
	copy(k.chainCode[:], decoded[13:45])
	keyData := decoded[45:78]

	switch version {
	case params.HDPrivateKeyID:
		if keyData[0] != 0x00 {
			return nil, ErrInvalidHdKey
		}
		priv, err := dogeec.NewPrivKey(keyData[1:])
		if err != nil {
			return nil, ErrInvalidHdKey
		}
		k.isPrivate = true
		k.privKey = priv
	case params.HDPublicKeyID:
		pub, err := dogeec.ParsePubKey(keyData)
		if err != nil {
			return nil, ErrInvalidHdKey
		}
		k.isPrivate = false
		k.pubKey = pub
	default:
		return nil, ErrInvalidHdKey
	}
	return k, nil
}

// ParsePath parses "m/a/b'/c/..." into a slice of BIP32 indices, with
// '/h/H/p all marking the preceding index hardened.
func ParsePath(path string) ([]uint32, error) {
	segments := strings.Split(path, "/")
	if len(segments) == 0 || segments[0] != "m" {
		return nil, ErrInvalidPath
	}
	segments = segments[1:]
	out := make([]uint32, 0, len(segments))
	for _, seg := range segments {
		if seg == "" {
			return nil, ErrInvalidPath
		}
		hardened := false
		last := seg[len(seg)-1]
		if last == '\'' || last == 'h' || last == 'H' || last == 'p' {
			hardened = true
			seg = seg[:len(seg)-1]
		}
		n, err := strconv.ParseUint(seg, 10, 32)
		if err != nil || n > 0x7fffffff {
			return nil, ErrIndexOutOfRange
		}
		idx := uint32(n)
		if hardened {
			idx |= hardenedBit
		}
		out = append(out, idx)
	}
	return out, nil
}

// DerivePath walks k through every index in path in order.
func (k *ExtendedKey) DerivePath(path []uint32) (*ExtendedKey, error) {
	cur := k
	for _, idx := range path {
		next, err := cur.Child(idx)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// BIP44Path constructs the index sequence for
// m/44'/coin_type'/account'/change/index.
func BIP44Path(params chaincfg.Params, account uint32, change bool, index uint32) []uint32 {
	changeIdx := uint32(0)
	if change {
		changeIdx = 1
	}
	return []uint32{
		44 | hardenedBit,
		params.HDCoinType | hardenedBit,
		account | hardenedBit,
		changeIdx,
		index,
	}
}
