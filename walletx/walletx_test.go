// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package walletx

import (
	"encoding/hex"
	"testing"

	"github.com/dogeorg/dogecore/txscript"
)

// TestBuildAndSignEndToEnd drives the public API through a full build:
// two UTXOs, one payment output, a change output computed by Finalize,
// and a signature over every input that Parse can recover a well-formed
// two-push scriptSig from.
func TestBuildAndSignEndToEnd(t *testing.T) {
	idx := Start()
	defer Close(idx)

	if err := AddUTXO(idx, "b4455e7b00000000000000000000000000000000000000000000000000000000", 1); err != nil {
		t.Fatalf("AddUTXO 1: %v", err)
	}
	if err := AddUTXO(idx, "42113bdc00000000000000000000000000000000000000000000000000000000", 1); err != nil {
		t.Fatalf("AddUTXO 2: %v", err)
	}

	if err := AddOutput(idx, "nbGfXLskPh7eM1iG5zz5EfDkkNTo9TRmde", "5"); err != nil {
		t.Fatalf("AddOutput: %v", err)
	}

	rawHex, err := Finalize(idx, "nbGfXLskPh7eM1iG5zz5EfDkkNTo9TRmde", "0.00226", "12", "noxKJyGPugPRN4wqvrwsrtYXuQCk7yQEsy")
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if _, err := hex.DecodeString(rawHex); err != nil {
		t.Fatalf("Finalize did not return valid hex: %v", err)
	}

	const prevScriptHex = "76a914d8c43e6f68ca4ea1e9b93da2d1e3a95118fa4a7c88ac"
	const wif = "ci5prbqz7jXyFPVWKkHhPq4a9N8Dag3TpeRfuqqC2Nfr7gSqx1fy"
	amounts := []uint64{200000000, 1000000000}
	prevScripts := []string{prevScriptHex, prevScriptHex}

	if err := SignAllInputs(idx, prevScripts, txscript.SigHashAll, amounts, wif); err != nil {
		t.Fatalf("SignAllInputs: %v", err)
	}

	w, ok := table.Find(idx)
	if !ok {
		t.Fatal("working tx vanished")
	}
	if len(w.tx.TxOut) != 2 {
		t.Fatalf("expected payment + change output, got %d outputs", len(w.tx.TxOut))
	}
	const wantChange = 699774000 // 12 - 5 - 0.00226 coin, in koinu
	if w.tx.TxOut[1].Value != wantChange {
		t.Fatalf("change value mismatch: got %d want %d", w.tx.TxOut[1].Value, wantChange)
	}

	for i, in := range w.tx.TxIn {
		ops, err := txscript.Parse(in.SignatureScript)
		if err != nil || len(ops) != 2 {
			t.Fatalf("input %d: expected a well-formed 2-push scriptSig, got %v err %v", i, ops, err)
		}
	}
}

func TestAddUTXOUnknownTx(t *testing.T) {
	if err := AddUTXO(999999, "00", 0); err != ErrUnknownTx {
		t.Fatalf("expected ErrUnknownTx, got %v", err)
	}
}

func TestFinalizeRejectsOverspend(t *testing.T) {
	idx := Start()
	defer Close(idx)
	if err := AddUTXO(idx, "b4455e7b00000000000000000000000000000000000000000000000000000000", 0); err != nil {
		t.Fatal(err)
	}
	if err := AddOutput(idx, "nbGfXLskPh7eM1iG5zz5EfDkkNTo9TRmde", "100"); err != nil {
		t.Fatal(err)
	}
	if _, err := Finalize(idx, "nbGfXLskPh7eM1iG5zz5EfDkkNTo9TRmde", "0", "5", "noxKJyGPugPRN4wqvrwsrtYXuQCk7yQEsy"); err != ErrBalanceMismatch {
		t.Fatalf("expected ErrBalanceMismatch, got %v", err)
	}
}

func TestSignInputRejectsOutOfRangeIndex(t *testing.T) {
	idx := Start()
	defer Close(idx)
	if err := AddUTXO(idx, "b4455e7b00000000000000000000000000000000000000000000000000000000", 0); err != nil {
		t.Fatal(err)
	}
	const wif = "ci5prbqz7jXyFPVWKkHhPq4a9N8Dag3TpeRfuqqC2Nfr7gSqx1fy"
	err := SignInput(idx, 5, "76a914d8c43e6f68ca4ea1e9b93da2d1e3a95118fa4a7c88ac", txscript.SigHashAll, 0, wif)
	if err != ErrInputIndexOutOfRange {
		t.Fatalf("expected ErrInputIndexOutOfRange, got %v", err)
	}
}

func TestStartHandlesNeverReused(t *testing.T) {
	a := Start()
	Close(a)
	b := Start()
	defer Close(b)
	if a == b {
		t.Fatal("expected a fresh handle index after Close")
	}
}
