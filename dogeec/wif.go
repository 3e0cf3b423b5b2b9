// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dogeec

import (
	"crypto/subtle"
	"errors"

	"github.com/dogeorg/dogecore/base58"
	"github.com/dogeorg/dogecore/chaincfg"
)

// ErrMalformedPrivateKey describes a WIF payload whose length or
// compressed-key marker is wrong.
var ErrMalformedPrivateKey = errors.New("dogeec: malformed WIF")

// ErrWrongNetwork is returned by DecodeWIF when the decoded version byte
// does not match the requested chain's WIF prefix.
var ErrWrongNetwork = errors.New("dogeec: WIF network mismatch")

const compressMagic = 0x01

// WIF holds the components of a Wallet Import Format string: a private
// key, whether its paired public key is serialized compressed, and the
// network it targets.
type WIF struct {
	PrivKey        *PrivKey
	CompressPubKey bool
	netID          byte
}

// NewWIF builds a WIF wrapper for a freshly generated or derived key.
func NewWIF(priv *PrivKey, params chaincfg.Params, compressed bool) *WIF {
	return &WIF{PrivKey: priv, CompressPubKey: compressed, netID: params.PrivateKeyID}
}

// String encodes the WIF as base58check(version || 32-byte key ||
// optional 0x01 compressed marker).
func (w *WIF) String() string {
	buf := make([]byte, 0, 1+PrivKeyBytesLen+1)
	buf = append(buf, w.netID)
	buf = append(buf, w.PrivKey.Serialize()...)
	if w.CompressPubKey {
		buf = append(buf, compressMagic)
	}
	return base58.CheckEncode(buf)
}

// IsForNet reports whether w targets params.
func (w *WIF) IsForNet(params chaincfg.Params) bool {
	return w.netID == params.PrivateKeyID
}

// DecodeWIF parses and validates a WIF string against params, requiring
// the decoded version byte to equal params.PrivateKeyID exactly.
func DecodeWIF(wif string, params chaincfg.Params) (*WIF, error) {
	decoded, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, err
	}

	var compressed bool
	switch len(decoded) {
	case 1 + PrivKeyBytesLen + 1:
		if decoded[1+PrivKeyBytesLen] != compressMagic {
			return nil, ErrMalformedPrivateKey
		}
		compressed = true
	case 1 + PrivKeyBytesLen:
		compressed = false
	default:
		return nil, ErrMalformedPrivateKey
	}

	if decoded[0] != params.PrivateKeyID {
		return nil, ErrWrongNetwork
	}

	priv, err := NewPrivKey(decoded[1 : 1+PrivKeyBytesLen])
	if err != nil {
		return nil, err
	}
	return &WIF{PrivKey: priv, CompressPubKey: compressed, netID: decoded[0]}, nil
}

// SerializePubKey returns the WIF's associated public key, serialized
// compressed or uncompressed per w.CompressPubKey.
func (w *WIF) SerializePubKey() []byte {
	pub := w.PrivKey.PubKey()
	if w.CompressPubKey {
		return pub.SerializeCompressed()
	}
	return pub.SerializeUncompressed()
}

// Equal reports whether two private keys are identical. The comparison
// is constant time in the key material.
func Equal(a, b *PrivKey) bool {
	return subtle.ConstantTimeCompare(a.Serialize(), b.Serialize()) == 1
}
