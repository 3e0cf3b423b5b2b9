// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestTxSerializeDeserializeRoundTrip(t *testing.T) {
	tx := NewMsgTx(1)
	tx.AddTxIn(&TxIn{
		PreviousOutPoint: OutPoint{Hash: Hash{0x01}, Index: 1},
		SignatureScript:  []byte{0x01, 0x02, 0x03},
		Sequence:         0xffffffff,
	})
	tx.AddTxOut(&TxOut{Value: 500000000, PkScript: []byte{0x76, 0xa9, 0x14}})
	tx.LockTime = 0

	encoded := tx.Bytes()
	if len(encoded) != tx.SerializeSize() {
		t.Fatalf("SerializeSize mismatch: got %d want %d", tx.SerializeSize(), len(encoded))
	}

	var decoded MsgTx
	if err := decoded.Deserialize(bytes.NewReader(encoded)); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), encoded) {
		t.Fatalf("round trip mismatch\ngot: %s\nwant: %s",
			spew.Sdump(decoded), spew.Sdump(tx))
	}
}

func TestIsCoinBase(t *testing.T) {
	tx := NewMsgTx(1)
	tx.AddTxIn(&TxIn{PreviousOutPoint: OutPoint{Index: 0xffffffff}})
	if !tx.IsCoinBase() {
		t.Fatal("expected coinbase tx to be recognized")
	}
	tx.TxIn[0].PreviousOutPoint.Hash[0] = 0x01
	if tx.IsCoinBase() {
		t.Fatal("non-zero prevout hash must not be coinbase")
	}
}
