// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the chain parameter variants (main, testnet,
// regtest) that every other dogecore package accepts as a configuration
// value rather than a compiled-in constant.
package chaincfg

import "math/big"

// Net identifies one of the three built-in Dogecoin network variants.
type Net uint8

const (
	MainNet Net = iota
	TestNet3
	RegTest
)

func (n Net) String() string {
	switch n {
	case MainNet:
		return "mainnet"
	case TestNet3:
		return "testnet3"
	case RegTest:
		return "regtest"
	default:
		return "unknown"
	}
}

// Params groups the network-specific constants a caller must supply to
// every key-derivation, address, and header-validation routine in this
// module. Nothing is read from a config file; callers own parameter
// selection.
type Params struct {
	Name Net

	// NetMagic is the 4-byte network magic prefixed to wire messages by
	// consumers of this library; the core itself does no framing.
	NetMagic uint32

	// GenesisHash is the 32-byte (big-endian display order) hash of the
	// network's genesis block.
	GenesisHash [32]byte

	DefaultPort string

	// Base58check version bytes.
	PubKeyHashAddrID byte // P2PKH
	ScriptHashAddrID byte // P2SH
	PrivateKeyID     byte // WIF

	// BIP32 extended-key version prefixes.
	HDPrivateKeyID [4]byte
	HDPublicKeyID  [4]byte

	// HDCoinType is the BIP44 coin_type used when constructing
	// m/44'/coin_type'/... paths.
	HDCoinType uint32

	// PowLimit is the highest (easiest) proof-of-work target permitted
	// on this network, checked during header validation.
	PowLimit *big.Int

	// StrictChainID enables the version-encoded chain-id gate during
	// AuxPoW acceptance.
	StrictChainID bool
	AuxPowChainID uint32
}

var bigOne = big.NewInt(1)

// MainNetParams defines the Dogecoin main network.
var MainNetParams = Params{
	Name:             MainNet,
	NetMagic:         0xc0c0c0c0,
	GenesisHash:      mustHash("1a91e3dace36e2be3bf030a65679fe821aa1d6ef92e7c9902eb318182c355691"),
	DefaultPort:      "22556",
	PubKeyHashAddrID: 0x1e, // D
	ScriptHashAddrID: 0x16,
	PrivateKeyID:     0x9e,
	HDPrivateKeyID:   [4]byte{0x02, 0xfa, 0xc3, 0x98},
	HDPublicKeyID:    [4]byte{0x02, 0xfa, 0xca, 0xfd},
	HDCoinType:       3,
	PowLimit:         new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne),
	StrictChainID:    true,
	AuxPowChainID:    0x0062,
}

// TestNet3Params defines the Dogecoin public test network.
var TestNet3Params = Params{
	Name:             TestNet3,
	NetMagic:         0xfcc1b7dc,
	GenesisHash:      mustHash("bb0a78264637406b6360aad926284d544d7049f45189db5664f3c4d07350559e"),
	DefaultPort:      "44556",
	PubKeyHashAddrID: 0x71, // n
	ScriptHashAddrID: 0xc4,
	PrivateKeyID:     0xf1,
	HDPrivateKeyID:   [4]byte{0x04, 0x35, 0x83, 0x94},
	HDPublicKeyID:    [4]byte{0x04, 0x35, 0x87, 0xcf},
	HDCoinType:       1,
	PowLimit:         new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne),
	StrictChainID:    false,
	AuxPowChainID:    0x0062,
}

// RegressionNetParams defines a local regression-test network. It
// shares its BIP32 prefixes with TestNet3Params, so an extended key
// alone cannot disambiguate the two; callers must
// pass the intended Params explicitly rather than rely on inference
// from a decoded prefix.
var RegressionNetParams = Params{
	Name:             RegTest,
	NetMagic:         0xdab5bffa,
	GenesisHash:      mustHash("3d2160a3b5dc4a9d62e7404bb5aa85b0183cd8db1d244508f6003d23713e8819"),
	DefaultPort:      "18444",
	PubKeyHashAddrID: 0x6f,
	ScriptHashAddrID: 0xc4,
	PrivateKeyID:     0xef,
	HDPrivateKeyID:   [4]byte{0x04, 0x35, 0x83, 0x94},
	HDPublicKeyID:    [4]byte{0x04, 0x35, 0x87, 0xcf},
	HDCoinType:       1,
	PowLimit:         new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne),
	StrictChainID:    false,
	AuxPowChainID:    0x0062,
}

func mustHash(hexStr string) [32]byte {
	var out [32]byte
	b, err := decodeHex(hexStr)
	if err != nil || len(b) != 32 {
		panic("chaincfg: bad genesis hash constant " + hexStr)
	}
	copy(out[:], b)
	return out
}

func decodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, errOddHex
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, err := hexNibble(s[i*2])
		if err != nil {
			return nil, err
		}
		lo, err := hexNibble(s[i*2+1])
		if err != nil {
			return nil, err
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

var errOddHex = hexErr("odd-length hex string")

type hexErr string

func (e hexErr) Error() string { return string(e) }

func hexNibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, hexErr("invalid hex digit")
	}
}

// ByPrefix returns the chain parameters whose P2PKH version byte
// matches the leading decoded byte of a base58check-encoded address.
// Only the mainnet and testnet P2PKH bytes are recognised; any other
// byte, including regtest's 0x6f, reports false, so ByPrefix never
// returns RegTest and regtest must always be selected explicitly by the
// caller.
func ByPrefix(versionByte byte) (Params, bool) {
	switch versionByte {
	case MainNetParams.PubKeyHashAddrID:
		return MainNetParams, true
	case TestNet3Params.PubKeyHashAddrID:
		return TestNet3Params, true
	default:
		return Params{}, false
	}
}
