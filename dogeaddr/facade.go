// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dogeaddr

import (
	"crypto/rand"

	"github.com/dogeorg/dogecore/chaincfg"
	"github.com/dogeorg/dogecore/dogeec"
	"github.com/dogeorg/dogecore/hdkeychain"
	"github.com/dogeorg/dogecore/mnemonic"
)

func netParams(isTestnet bool) chaincfg.Params {
	if isTestnet {
		return chaincfg.TestNet3Params
	}
	return chaincfg.MainNetParams
}

// GenPrivPubKeypair returns a fresh random private key as its WIF and
// P2PKH encodings.
func GenPrivPubKeypair(isTestnet bool) (wif, p2pkh string, err error) {
	priv, err := dogeec.GeneratePrivKey()
	if err != nil {
		return "", "", err
	}
	params := netParams(isTestnet)
	w := dogeec.NewWIF(priv, params, true)
	addr, err := P2PKHFromPubKey(priv.PubKey(), params)
	if err != nil {
		return "", "", err
	}
	return w.String(), addr, nil
}

// GenHDMaster generates a fresh random BIP32 seed and returns its
// extended private key and the P2PKH address of the root key.
func GenHDMaster(isTestnet bool) (xpriv, p2pkh string, err error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return "", "", err
	}
	params := netParams(isTestnet)
	root, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return "", "", err
	}
	addr, err := P2PKHFromPubKey(root.PubKey(), params)
	if err != nil {
		return "", "", err
	}
	return root.Serialize(), addr, nil
}

// DeriveFromXpriv parses an extended private key and walks childPath,
// returning the P2PKH address of the resulting node.
func DeriveFromXpriv(xpriv string, childPath []uint32, isTestnet bool) (string, error) {
	params := netParams(isTestnet)
	root, err := hdkeychain.Parse(xpriv, params)
	if err != nil {
		return "", err
	}
	child, err := root.DerivePath(childPath)
	if err != nil {
		return "", err
	}
	return P2PKHFromPubKey(child.PubKey(), params)
}

// GenFromMnemonic derives a BIP32 seed from a mnemonic/passphrase
// pair, then the BIP44 m/44'/coin_type'/account'/change/index node,
// returning its extended private key and P2PKH address.
func GenFromMnemonic(mnemonicWords, passphrase string, account uint32, change bool, index uint32, isTestnet bool) (xpriv, p2pkh string, err error) {
	if err := mnemonic.ValidateMnemonic(mnemonicWords); err != nil {
		return "", "", err
	}
	seed := mnemonic.SeedFromMnemonic(mnemonicWords, passphrase)
	params := netParams(isTestnet)
	root, err := hdkeychain.NewMaster(seed, params)
	if err != nil {
		return "", "", err
	}
	child, err := root.DerivePath(hdkeychain.BIP44Path(params, account, change, index))
	if err != nil {
		return "", "", err
	}
	addr, err := P2PKHFromPubKey(child.PubKey(), params)
	if err != nil {
		return "", "", err
	}
	return child.Serialize(), addr, nil
}

// VerifyPrivPub reports whether wif's public key encodes to the given
// P2PKH address.
func VerifyPrivPub(wif, p2pkhAddr string, isTestnet bool) bool {
	params := netParams(isTestnet)
	w, err := dogeec.DecodeWIF(wif, params)
	if err != nil {
		return false
	}
	addr, err := P2PKHFromPubKey(w.PrivKey.PubKey(), params)
	if err != nil {
		return false
	}
	return addr == p2pkhAddr
}

// VerifyP2PKH reports whether addr base58check-decodes to a
// structurally valid P2PKH address under any of the three built-in
// networks; the chain is resolved from the address's own version byte.
func VerifyP2PKH(addr string) bool {
	_, _, kind, err := DecodeAny(addr)
	return err == nil && kind == AddrP2PKH
}
