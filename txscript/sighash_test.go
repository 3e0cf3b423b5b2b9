// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/dogeorg/dogecore/dogeec"
	"github.com/dogeorg/dogecore/wire"
)

func twoInTx() *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 1}, Sequence: 0xffffffff})
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 2}, Sequence: 0xffffffff})
	tx.AddTxOut(&wire.TxOut{Value: 100, PkScript: mustHex("76a914" + "0000000000000000000000000000000000000000" + "88ac")})
	tx.AddTxOut(&wire.TxOut{Value: 200, PkScript: mustHex("76a914" + "1111111111111111111111111111111111111111" + "88ac")})
	return tx
}

// TestCalcSignatureHashVectors pins the sighash construction for every
// mode to fixed digests computed with an independent implementation of
// the legacy rules, so any change to the consensus-critical byte layout
// is caught even when both sides of a differential test drift together.
func TestCalcSignatureHashVectors(t *testing.T) {
	script := mustHex("76a914d8c43e6f68ca4ea1e9b93da2d1e3a95118fa4a7c88ac")
	tests := []struct {
		name     string
		hashType SigHashType
		idx      int
		want     string
	}{
		{"ALL", SigHashAll, 0,
			"24ee42c75cf1e7fb50c5ea49e150ebabe55bbcc6900da94b7d53e5b1b15dd3bc"},
		{"NONE", SigHashNone, 0,
			"804e7aaa209ee15a3ed2adaea99b0731830ce6fb853a9625bf80705cb3faaff5"},
		{"SINGLE", SigHashSingle, 0,
			"474ba463f30dcfd304d9f31309c41933c67afe4bc46df6af093de1a92a5379e7"},
		{"SINGLE input 1", SigHashSingle, 1,
			"cec14ddd4402a9d717d66e330c9d902ec757a897ebdb61937bb7612f7e52e86b"},
		{"ALL|ANYONECANPAY", SigHashAll | SigHashAnyOneCanPay, 0,
			"80d9f3d79205b432814efe77bdc180ceb9f720853560ccea8559023e703f60cd"},
		{"NONE|ANYONECANPAY", SigHashNone | SigHashAnyOneCanPay, 0,
			"3ccaa3140d2c930cda364041e0250ed4197b4f39b451b14b0230f98d457f07c2"},
		{"SINGLE|ANYONECANPAY", SigHashSingle | SigHashAnyOneCanPay, 0,
			"45d1200031bd4ee1c282ac0a60d294070c4919196a2e7b2d17626ebcd1f02ed1"},
	}
	for _, test := range tests {
		got, err := CalcSignatureHash(script, test.hashType, twoInTx(), test.idx)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if gotHex := hex.EncodeToString(got[:]); gotHex != test.want {
			t.Fatalf("%s: got %s want %s", test.name, gotHex, test.want)
		}
	}
}

func TestSigHashSingleOutOfRangeSentinel(t *testing.T) {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{Sequence: 0xffffffff})
	tx.AddTxIn(&wire.TxIn{Sequence: 0xffffffff})
	tx.AddTxIn(&wire.TxIn{Sequence: 0xffffffff})
	tx.AddTxOut(&wire.TxOut{Value: 1})
	script := mustHex("76a914d8c43e6f68ca4ea1e9b93da2d1e3a95118fa4a7c88ac")

	// idx=2 has no matching output (only one vout): the historical
	// quirk requires the sentinel sighash 1, not an error.
	got, err := CalcSignatureHash(script, SigHashSingle, tx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := wire.Hash{1}
	if got != want {
		t.Fatalf("got %x want %x", got, want)
	}
}

func TestSigHashNoneZeroesOutputsAndOtherSequences(t *testing.T) {
	tx := twoInTx()
	script := mustHex("76a914d8c43e6f68ca4ea1e9b93da2d1e3a95118fa4a7c88ac")

	h1, err := CalcSignatureHash(script, SigHashNone, tx, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Mutating vout must not change a NONE-mode hash, since vout is
	// truncated to empty before hashing.
	tx2 := twoInTx()
	tx2.TxOut[0].Value = 999999
	h2, err := CalcSignatureHash(script, SigHashNone, tx2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatal("SIGHASH_NONE must be independent of output values")
	}
}

func TestSigHashSingleLeavesMatchingOutputSensitive(t *testing.T) {
	tx := twoInTx()
	script := mustHex("76a914d8c43e6f68ca4ea1e9b93da2d1e3a95118fa4a7c88ac")
	h1, err := CalcSignatureHash(script, SigHashSingle, tx, 0)
	if err != nil {
		t.Fatal(err)
	}
	tx2 := twoInTx()
	tx2.TxOut[0].Value = 999999
	h2, err := CalcSignatureHash(script, SigHashSingle, tx2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Fatal("SIGHASH_SINGLE must be sensitive to its own matching output")
	}
}

func TestSigHashAnyOneCanPayDropsOtherInputs(t *testing.T) {
	tx := twoInTx()
	script := mustHex("76a914d8c43e6f68ca4ea1e9b93da2d1e3a95118fa4a7c88ac")
	h1, err := CalcSignatureHash(script, SigHashAll|SigHashAnyOneCanPay, tx, 0)
	if err != nil {
		t.Fatal(err)
	}
	tx2 := twoInTx()
	tx2.TxIn[1].PreviousOutPoint.Index = 77 // a different second input
	h2, err := CalcSignatureHash(script, SigHashAll|SigHashAnyOneCanPay, tx2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Fatal("ANYONECANPAY must be independent of every input but the signed one")
	}
}

func TestSignAndVerifyP2PKHInput(t *testing.T) {
	tx := wire.NewMsgTx(1)
	var prevHash wire.Hash
	copy(prevHash[:], []byte{0xb4, 0x45, 0x5e, 0x7b})
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Hash: prevHash, Index: 1}, Sequence: 0xffffffff})
	tx.AddTxOut(&wire.TxOut{Value: 500000000})

	prevScript := mustHex("76a914d8c43e6f68ca4ea1e9b93da2d1e3a95118fa4a7c88ac")

	privBytes := bytes.Repeat([]byte{0x01}, 32)
	priv, err := dogeec.NewPrivKey(privBytes)
	if err != nil {
		t.Fatal(err)
	}

	scriptSig, err := SignTxInputP2PKH(tx, 0, prevScript, SigHashAll, priv)
	if err != nil {
		t.Fatal(err)
	}
	tx.TxIn[0].SignatureScript = scriptSig

	ops, err := Parse(scriptSig)
	if err != nil || len(ops) != 2 {
		t.Fatalf("expected a 2-push scriptSig, got %v err %v", ops, err)
	}
	sigWithType := ops[0].Data
	hashType := SigHashType(sigWithType[len(sigWithType)-1])
	if hashType != SigHashAll {
		t.Fatalf("unexpected embedded hashtype %v", hashType)
	}

	hash, err := CalcSignatureHash(prevScript, SigHashAll, tx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !dogeec.Verify(priv.PubKey(), hash[:], sigWithType[:len(sigWithType)-1]) {
		t.Fatal("signature over the input's sighash must verify")
	}
}

func TestVerifyP2PKHInput(t *testing.T) {
	privBytes := bytes.Repeat([]byte{0x01}, 32)
	priv, err := dogeec.NewPrivKey(privBytes)
	if err != nil {
		t.Fatal(err)
	}
	pub := priv.PubKey().SerializeCompressed()
	prevScript, err := BuildP2PKH(dogeec.Hash160(pub))
	if err != nil {
		t.Fatal(err)
	}

	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 0}, Sequence: 0xffffffff})
	tx.AddTxOut(&wire.TxOut{Value: 100, PkScript: prevScript})

	sigScript, err := SignTxInputP2PKH(tx, 0, prevScript, SigHashAll, priv)
	if err != nil {
		t.Fatal(err)
	}
	tx.TxIn[0].SignatureScript = sigScript

	cache, err := NewSigCache(8)
	if err != nil {
		t.Fatal(err)
	}
	for pass := 0; pass < 2; pass++ { // second pass hits the cache
		ok, err := VerifyP2PKHInput(cache, tx, 0, prevScript)
		if err != nil {
			t.Fatalf("pass %d: %v", pass, err)
		}
		if !ok {
			t.Fatalf("pass %d: expected the signed input to verify", pass)
		}
	}

	otherScript, err := BuildP2PKH(bytes.Repeat([]byte{0xab}, 20))
	if err != nil {
		t.Fatal(err)
	}
	ok, err := VerifyP2PKHInput(cache, tx, 0, otherScript)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected verification against an unrelated script to fail")
	}
}
