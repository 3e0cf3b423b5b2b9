// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dogeec

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/dogeorg/dogecore/chaincfg"
)

// TestWIFAndAddressVector checks the private key of 32 0x11 bytes
// against its known mainnet WIF and compressed pubkey.
func TestWIFAndAddressVector(t *testing.T) {
	keyHex := strings.Repeat("11", 32)
	kb, err := hex.DecodeString(keyHex)
	if err != nil {
		t.Fatal(err)
	}
	priv, err := NewPrivKey(kb)
	if err != nil {
		t.Fatalf("NewPrivKey: %v", err)
	}
	wif := NewWIF(priv, chaincfg.MainNetParams, true)
	const wantWIF = "QUaohmokNWroj71dRtmPSses5eRw5SGLKsYSRSVisJHyZdxhdDCZ"
	if got := wif.String(); got != wantWIF {
		t.Fatalf("WIF mismatch: got %s want %s", got, wantWIF)
	}

	const wantPub = "024c33fbb2f6accde1db907e88ebf5dd1693e31433c62aaeef42f7640974f602ba"
	if got := hex.EncodeToString(wif.SerializePubKey()); got != wantPub {
		t.Fatalf("pubkey mismatch: got %s want %s", got, wantPub)
	}
}

// TestWIFRoundTrip checks that decoding an encoded WIF reproduces the
// private key.
func TestWIFRoundTrip(t *testing.T) {
	priv, err := GeneratePrivKey()
	if err != nil {
		t.Fatal(err)
	}
	wif := NewWIF(priv, chaincfg.MainNetParams, true)
	decoded, err := DecodeWIF(wif.String(), chaincfg.MainNetParams)
	if err != nil {
		t.Fatalf("DecodeWIF: %v", err)
	}
	if !Equal(priv, decoded.PrivKey) {
		t.Fatal("round-tripped private key differs")
	}
}

func TestDecodeWIFWrongNetwork(t *testing.T) {
	priv, err := GeneratePrivKey()
	if err != nil {
		t.Fatal(err)
	}
	wif := NewWIF(priv, chaincfg.MainNetParams, true)
	if _, err := DecodeWIF(wif.String(), chaincfg.TestNet3Params); err != ErrWrongNetwork {
		t.Fatalf("expected ErrWrongNetwork, got %v", err)
	}
}
