// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"math"
)

// maxScriptSize bounds a single TxIn/TxOut script read against a
// truncated-length amplification attack; far above any script this
// library itself constructs.
const maxScriptSize = 10_000_000

// OutPoint identifies a single previous output being spent.
type OutPoint struct {
	Hash  Hash
	Index uint32
}

// TxIn is one transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Sequence         uint32
}

// TxOut is one transaction output. Value is denominated in koinu, the
// integer 1e-8 coin subunit.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// MsgTx is a legacy (pre-segwit) transaction.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// NewMsgTx returns an empty transaction of the given version.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{Version: version}
}

// AddTxIn appends an input.
func (tx *MsgTx) AddTxIn(ti *TxIn) { tx.TxIn = append(tx.TxIn, ti) }

// AddTxOut appends an output.
func (tx *MsgTx) AddTxOut(to *TxOut) { tx.TxOut = append(tx.TxOut, to) }

// IsCoinBase reports whether tx is a coinbase transaction: exactly one
// input whose previous outpoint is the all-zero hash at index
// 0xFFFFFFFF.
func (tx *MsgTx) IsCoinBase() bool {
	if len(tx.TxIn) != 1 {
		return false
	}
	prevOut := &tx.TxIn[0].PreviousOutPoint
	return prevOut.Index == math.MaxUint32 && prevOut.Hash == Hash{}
}

// Serialize writes the canonical legacy encoding: version, varint(len
// vin), vin*, varint(len vout), vout*, locktime.
func (tx *MsgTx) Serialize(w io.Writer) error {
	if err := writeInt32LE(w, tx.Version); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(tx.TxIn))); err != nil {
		return err
	}
	for _, in := range tx.TxIn {
		if err := writeTxIn(w, in); err != nil {
			return err
		}
	}
	if err := WriteVarInt(w, uint64(len(tx.TxOut))); err != nil {
		return err
	}
	for _, out := range tx.TxOut {
		if err := writeTxOut(w, out); err != nil {
			return err
		}
	}
	return writeUint32LE(w, tx.LockTime)
}

// Deserialize parses the encoding Serialize produces.
func (tx *MsgTx) Deserialize(r io.Reader) error {
	version, err := readInt32LE(r)
	if err != nil {
		return err
	}
	nIn, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	txIn := make([]*TxIn, nIn)
	for i := range txIn {
		in, err := readTxIn(r)
		if err != nil {
			return err
		}
		txIn[i] = in
	}
	nOut, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	txOut := make([]*TxOut, nOut)
	for i := range txOut {
		out, err := readTxOut(r)
		if err != nil {
			return err
		}
		txOut[i] = out
	}
	lockTime, err := readUint32LE(r)
	if err != nil {
		return err
	}
	tx.Version = version
	tx.TxIn = txIn
	tx.TxOut = txOut
	tx.LockTime = lockTime
	return nil
}

func writeTxIn(w io.Writer, in *TxIn) error {
	if err := writeHash(w, in.PreviousOutPoint.Hash); err != nil {
		return err
	}
	if err := writeUint32LE(w, in.PreviousOutPoint.Index); err != nil {
		return err
	}
	if err := WriteVarBytes(w, in.SignatureScript); err != nil {
		return err
	}
	return writeUint32LE(w, in.Sequence)
}

func readTxIn(r io.Reader) (*TxIn, error) {
	hash, err := readHash(r)
	if err != nil {
		return nil, err
	}
	index, err := readUint32LE(r)
	if err != nil {
		return nil, err
	}
	sigScript, err := ReadVarBytes(r, maxScriptSize)
	if err != nil {
		return nil, err
	}
	seq, err := readUint32LE(r)
	if err != nil {
		return nil, err
	}
	return &TxIn{
		PreviousOutPoint: OutPoint{Hash: hash, Index: index},
		SignatureScript:  sigScript,
		Sequence:         seq,
	}, nil
}

func writeTxOut(w io.Writer, out *TxOut) error {
	if err := writeInt64LE(w, out.Value); err != nil {
		return err
	}
	return WriteVarBytes(w, out.PkScript)
}

func readTxOut(r io.Reader) (*TxOut, error) {
	value, err := readInt64LE(r)
	if err != nil {
		return nil, err
	}
	pkScript, err := ReadVarBytes(r, maxScriptSize)
	if err != nil {
		return nil, err
	}
	return &TxOut{Value: value, PkScript: pkScript}, nil
}

// SerializeSize returns the byte length of tx's canonical encoding.
func (tx *MsgTx) SerializeSize() int {
	n := 4 + VarIntSerializeSize(uint64(len(tx.TxIn))) + VarIntSerializeSize(uint64(len(tx.TxOut))) + 4
	for _, in := range tx.TxIn {
		n += HashSize + 4 + VarIntSerializeSize(uint64(len(in.SignatureScript))) + len(in.SignatureScript) + 4
	}
	for _, out := range tx.TxOut {
		n += 8 + VarIntSerializeSize(uint64(len(out.PkScript))) + len(out.PkScript)
	}
	return n
}

// Bytes returns the canonical serialization.
func (tx *MsgTx) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	_ = tx.Serialize(&buf)
	return buf.Bytes()
}

// TxHash returns the double-SHA256 transaction id over the legacy
// serialization.
func (tx *MsgTx) TxHash() Hash {
	return DoubleHashH(tx.Bytes())
}

// Copy returns a deep copy of tx, used by the sighash algorithm which
// mutates a scratch copy of the transaction.
func (tx *MsgTx) Copy() *MsgTx {
	out := &MsgTx{
		Version:  tx.Version,
		LockTime: tx.LockTime,
		TxIn:     make([]*TxIn, len(tx.TxIn)),
		TxOut:    make([]*TxOut, len(tx.TxOut)),
	}
	for i, in := range tx.TxIn {
		sig := make([]byte, len(in.SignatureScript))
		copy(sig, in.SignatureScript)
		out.TxIn[i] = &TxIn{
			PreviousOutPoint: in.PreviousOutPoint,
			SignatureScript:  sig,
			Sequence:         in.Sequence,
		}
	}
	for i, o := range tx.TxOut {
		script := make([]byte, len(o.PkScript))
		copy(script, o.PkScript)
		out.TxOut[i] = &TxOut{Value: o.Value, PkScript: script}
	}
	return out
}
