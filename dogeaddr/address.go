// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dogeaddr implements P2PKH/P2SH address encoding and the
// single-call helpers that produce WIF + P2PKH addresses for a fresh
// key, an HD root, or a derived path.
package dogeaddr

import (
	"errors"

	"github.com/dogeorg/dogecore/base58"
	"github.com/dogeorg/dogecore/chaincfg"
	"github.com/dogeorg/dogecore/dogeec"
)

// ErrWrongAddressType is returned when a caller asks for the
// P2SH-specific decode of a P2PKH address or vice versa.
var ErrWrongAddressType = errors.New("dogeaddr: address version byte does not match requested type")

// EncodeP2PKH base58check-encodes a P2PKH address for the given
// 20-byte hash160 under params.
func EncodeP2PKH(hash160 []byte, params chaincfg.Params) (string, error) {
	if len(hash160) != 20 {
		return "", dogeec.ErrInvalidKey
	}
	buf := make([]byte, 0, 21)
	buf = append(buf, params.PubKeyHashAddrID)
	buf = append(buf, hash160...)
	return base58.CheckEncode(buf), nil
}

// EncodeP2SH base58check-encodes a P2SH address for the given 20-byte
// script hash160 under params.
func EncodeP2SH(hash160 []byte, params chaincfg.Params) (string, error) {
	if len(hash160) != 20 {
		return "", dogeec.ErrInvalidKey
	}
	buf := make([]byte, 0, 21)
	buf = append(buf, params.ScriptHashAddrID)
	buf = append(buf, hash160...)
	return base58.CheckEncode(buf), nil
}

// P2PKHFromPubKey derives the P2PKH address directly from a public key.
func P2PKHFromPubKey(pub *dogeec.PubKey, params chaincfg.Params) (string, error) {
	return EncodeP2PKH(dogeec.Hash160(pub.SerializeCompressed()), params)
}

// AddrKind distinguishes a decoded address's output template.
type AddrKind int

const (
	AddrUnknown AddrKind = iota
	AddrP2PKH
	AddrP2SH
)

// Decode base58check-decodes addr against the candidate chain
// parameter sets, returning its hash160 payload, which params it
// matched, and whether it is a P2PKH or P2SH address. Testnet and
// regtest share the P2SH version byte; candidates are tried in the
// given order and the first structural match wins.
func Decode(addr string, candidates ...chaincfg.Params) ([]byte, chaincfg.Params, AddrKind, error) {
	decoded, err := base58.CheckDecode(addr)
	if err != nil {
		return nil, chaincfg.Params{}, AddrUnknown, err
	}
	if len(decoded) != 21 {
		return nil, chaincfg.Params{}, AddrUnknown, ErrWrongAddressType
	}
	version, hash := decoded[0], decoded[1:]
	for _, p := range candidates {
		switch version {
		case p.PubKeyHashAddrID:
			return hash, p, AddrP2PKH, nil
		case p.ScriptHashAddrID:
			return hash, p, AddrP2SH, nil
		}
	}
	return nil, chaincfg.Params{}, AddrUnknown, ErrWrongAddressType
}

// defaultCandidates is the fixed search order used by callers that
// have not been told which network an address should belong to.
var defaultCandidates = []chaincfg.Params{
	chaincfg.MainNetParams,
	chaincfg.TestNet3Params,
	chaincfg.RegressionNetParams,
}

// DecodeAny decodes addr against all three built-in network variants,
// in main/testnet/regtest order.
func DecodeAny(addr string) ([]byte, chaincfg.Params, AddrKind, error) {
	return Decode(addr, defaultCandidates...)
}
