// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/binary"
	"errors"

	"github.com/dogeorg/dogecore/dogeec"
	"github.com/dogeorg/dogecore/wire"
)

// SigHashType enumerates the legacy sighash modes and the
// ANYONECANPAY modifier flag.
type SigHashType uint32

const (
	SigHashAll          SigHashType = 0x1
	SigHashNone         SigHashType = 0x2
	SigHashSingle       SigHashType = 0x3
	SigHashAnyOneCanPay SigHashType = 0x80

	sigHashMask = 0x1f
)

// ErrInputIndexOutOfRange is returned by CalcSignatureHash when idx
// exceeds the input count.
var ErrInputIndexOutOfRange = errors.New("txscript: input index out of range")

// oneHash is the historical Bitcoin SIGHASH_SINGLE quirk sentinel:
// uint256(1) in the hash's natural little-endian byte order.
var oneHash = wire.Hash{1}

// CalcSignatureHash computes the legacy sighash for input idx of tx
// against subScript, the previous output's pkScript (OP_CODESEPARATOR
// is stripped here if the caller has not already done so). It
// reproduces Bitcoin's pre-segwit rules, including the historical
// SIGHASH_SINGLE quirk, which is consensus critical.
func CalcSignatureHash(subScript []byte, hashType SigHashType, tx *wire.MsgTx, idx int) (wire.Hash, error) {
	if idx < 0 || idx >= len(tx.TxIn) {
		return wire.Hash{}, ErrInputIndexOutOfRange
	}

	if hashType&sigHashMask == SigHashSingle && idx >= len(tx.TxOut) {
		// The historically broken no-matching-output case returns the
		// sentinel sighash 1, never an error.
		return oneHash, nil
	}

	txCopy := tx.Copy()
	subscript := CopyWithoutOpCodeseparator(subScript)

	for i := range txCopy.TxIn {
		if i == idx {
			txCopy.TxIn[i].SignatureScript = subscript
		} else {
			txCopy.TxIn[i].SignatureScript = nil
		}
	}

	switch hashType & sigHashMask {
	case SigHashNone:
		txCopy.TxOut = nil
		for i := range txCopy.TxIn {
			if i != idx {
				txCopy.TxIn[i].Sequence = 0
			}
		}
	case SigHashSingle:
		txCopy.TxOut = txCopy.TxOut[:idx+1]
		for i := 0; i < idx; i++ {
			txCopy.TxOut[i].Value = -1
			txCopy.TxOut[i].PkScript = nil
		}
		for i := range txCopy.TxIn {
			if i != idx {
				txCopy.TxIn[i].Sequence = 0
			}
		}
	}

	if hashType&SigHashAnyOneCanPay != 0 {
		txCopy.TxIn = []*wire.TxIn{txCopy.TxIn[idx]}
	}

	buf := txCopy.Bytes()
	var typeBuf [4]byte
	binary.LittleEndian.PutUint32(typeBuf[:], uint32(hashType))
	buf = append(buf, typeBuf[:]...)
	return wire.DoubleHashH(buf), nil
}

// SignTxInputP2PKH signs input idx of tx against a P2PKH prevScript,
// returning the completed scriptSig: <push DER||hashtype> <push
// compressed pubkey>.
func SignTxInputP2PKH(tx *wire.MsgTx, idx int, prevScript []byte, hashType SigHashType, priv *dogeec.PrivKey) ([]byte, error) {
	hash, err := CalcSignatureHash(prevScript, hashType, tx, idx)
	if err != nil {
		return nil, err
	}
	der, err := dogeec.Sign(priv, hash[:])
	if err != nil {
		return nil, err
	}
	sigWithType := append(append([]byte(nil), der...), byte(hashType))
	pub := priv.PubKey().SerializeCompressed()

	out := make([]byte, 0, len(sigWithType)+len(pub)+6)
	out = append(out, pushData(sigWithType)...)
	out = append(out, pushData(pub)...)
	return out, nil
}

// SignTxInputRaw returns the raw DER||hashtype signature for input
// idx, for callers assembling a multisig or P2SH scriptSig themselves.
func SignTxInputRaw(tx *wire.MsgTx, idx int, subScript []byte, hashType SigHashType, priv *dogeec.PrivKey) ([]byte, error) {
	hash, err := CalcSignatureHash(subScript, hashType, tx, idx)
	if err != nil {
		return nil, err
	}
	der, err := dogeec.Sign(priv, hash[:])
	if err != nil {
		return nil, err
	}
	return append(der, byte(hashType)), nil
}
