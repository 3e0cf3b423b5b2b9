// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package walletx implements the working-transaction builder: a
// handle-indexed API for assembling, balancing, and signing a legacy
// transaction across several calls. Handles come from
// github.com/dogeorg/dogecore/handles; the transaction types underneath
// are ordinary values from wire and txscript.
package walletx

import (
	"encoding/hex"
	"errors"

	"github.com/dogeorg/dogecore/chaincfg"
	"github.com/dogeorg/dogecore/dogeaddr"
	"github.com/dogeorg/dogecore/dogeec"
	"github.com/dogeorg/dogecore/handles"
	"github.com/dogeorg/dogecore/koinu"
	"github.com/dogeorg/dogecore/txscript"
	"github.com/dogeorg/dogecore/wire"
)

// ErrUnknownTx is returned when a handle names no live working
// transaction.
var ErrUnknownTx = errors.New("walletx: unknown working transaction")

// ErrUnknownAddressType covers an output or change address that
// decodes to neither a P2PKH nor a P2SH version byte.
var ErrUnknownAddressType = errors.New("walletx: unrecognised address type")

// ErrBalanceMismatch is returned by Finalize when inputs minus fee
// minus already-added outputs does not balance.
var ErrBalanceMismatch = errors.New("walletx: transaction does not balance")

// ErrInputIndexOutOfRange is returned by SignInput for an input that
// does not exist.
var ErrInputIndexOutOfRange = errors.New("walletx: input index out of range")

// ErrAmountCountMismatch is returned by SignAllInputs when the caller's
// per-input amount slice does not match the number of inputs.
var ErrAmountCountMismatch = errors.New("walletx: amount count does not match input count")

// ErrVerifyFailed is returned by SignInput when the freshly installed
// scriptSig does not verify back against prevScript.
var ErrVerifyFailed = errors.New("walletx: signed input failed verification")

// verifyCache memoizes the post-sign verification of inputs so that
// re-signing flows (a caller retrying SignAllInputs after correcting one
// bad prevScript) do not redo the ECDSA work for inputs that already
// checked out. A nil cache only costs speed, so the error is dropped.
var verifyCache, _ = txscript.NewSigCache(512)

// workingTx is the builder state behind one opaque handle.
type workingTx struct {
	tx *wire.MsgTx
}

var table = handles.NewTable[*workingTx]()

// Start allocates a fresh empty transaction and returns its opaque
// handle.
func Start() int {
	return table.Start(&workingTx{tx: wire.NewMsgTx(1)})
}

// Close discards a working transaction's handle.
func Close(txIndex int) {
	table.Remove(txIndex)
}

// AddUTXO appends an input spending prevTxidHex:voutN, with an empty
// scriptSig and sequence 0xFFFFFFFF.
func AddUTXO(txIndex int, prevTxidHex string, voutN uint32) error {
	w, ok := table.Find(txIndex)
	if !ok {
		return ErrUnknownTx
	}
	hash, err := wire.HashFromHex(prevTxidHex)
	if err != nil {
		return err
	}
	w.tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: hash, Index: voutN},
		Sequence:         0xFFFFFFFF,
	})
	return nil
}

// AddOutput decodes address via base58check, selects a P2PKH or P2SH
// template based on its version byte, converts coinDecimal to koinu,
// and appends the output.
func AddOutput(txIndex int, address, coinDecimal string) error {
	w, ok := table.Find(txIndex)
	if !ok {
		return ErrUnknownTx
	}
	pkScript, err := outputScriptFor(address)
	if err != nil {
		return err
	}
	value, err := koinu.FromCoinStr(coinDecimal)
	if err != nil {
		return err
	}
	w.tx.AddTxOut(&wire.TxOut{Value: int64(value), PkScript: pkScript})
	return nil
}

func outputScriptFor(address string) ([]byte, error) {
	hash160, _, kind, err := dogeaddr.DecodeAny(address)
	if err != nil {
		return nil, err
	}
	switch kind {
	case dogeaddr.AddrP2PKH:
		return txscript.BuildP2PKH(hash160)
	case dogeaddr.AddrP2SH:
		return txscript.BuildP2SH(hash160)
	default:
		return nil, ErrUnknownAddressType
	}
}

// Finalize balances and serializes the transaction. destAddr is
// validated as a sanity check on the caller's intended network;
// totalCoinExpected is the total value of every UTXO added via AddUTXO,
// echoed back by the caller since this library has no chain access to
// look amounts up itself. The residual after feeCoin and every output
// already added via AddOutput is sent to changeAddr; the call fails
// with ErrBalanceMismatch if that residual would be negative.
func Finalize(txIndex int, destAddr, feeCoin, totalCoinExpected, changeAddr string) (string, error) {
	w, ok := table.Find(txIndex)
	if !ok {
		return "", ErrUnknownTx
	}
	if _, _, _, err := dogeaddr.DecodeAny(destAddr); err != nil {
		return "", err
	}
	fee, err := koinu.FromCoinStr(feeCoin)
	if err != nil {
		return "", err
	}
	total, err := koinu.FromCoinStr(totalCoinExpected)
	if err != nil {
		return "", err
	}
	if fee > total {
		return "", ErrBalanceMismatch
	}
	available := total - fee

	var spent uint64
	for _, out := range w.tx.TxOut {
		spent += uint64(out.Value)
	}
	if spent > available {
		return "", ErrBalanceMismatch
	}
	change := available - spent

	if change > 0 {
		changeScript, err := outputScriptFor(changeAddr)
		if err != nil {
			return "", err
		}
		w.tx.AddTxOut(&wire.TxOut{Value: int64(change), PkScript: changeScript})
	}

	return hex.EncodeToString(w.tx.Bytes()), nil
}

// SignInput applies the legacy sighash+sign algorithm to a single
// input, installs the resulting scriptSig, and verifies it back against
// prevScript before returning. amount is accepted for API symmetry with
// a segwit-capable sighash but is not consulted by the legacy
// algorithm, which has no amount commitment.
func SignInput(txIndex, inputIndex int, prevScriptHex string, hashType txscript.SigHashType, amount uint64, wif string) error {
	w, ok := table.Find(txIndex)
	if !ok {
		return ErrUnknownTx
	}
	if inputIndex < 0 || inputIndex >= len(w.tx.TxIn) {
		return ErrInputIndexOutOfRange
	}
	prevScript, err := hex.DecodeString(prevScriptHex)
	if err != nil {
		return err
	}
	priv, err := decodeWIFAny(wif)
	if err != nil {
		return err
	}
	sigScript, err := txscript.SignTxInputP2PKH(w.tx, inputIndex, prevScript, hashType, priv)
	if err != nil {
		return err
	}
	w.tx.TxIn[inputIndex].SignatureScript = sigScript

	verifyOk, err := txscript.VerifyP2PKHInput(verifyCache, w.tx, inputIndex, prevScript)
	if err != nil {
		return err
	}
	if !verifyOk {
		w.tx.TxIn[inputIndex].SignatureScript = nil
		return ErrVerifyFailed
	}
	return nil
}

// SignAllInputs signs every input in order, one prevScriptHex/amount
// pair per input.
func SignAllInputs(txIndex int, prevScriptsHex []string, hashType txscript.SigHashType, amounts []uint64, wif string) error {
	w, ok := table.Find(txIndex)
	if !ok {
		return ErrUnknownTx
	}
	if len(prevScriptsHex) != len(w.tx.TxIn) || len(amounts) != len(w.tx.TxIn) {
		return ErrAmountCountMismatch
	}
	for i := range w.tx.TxIn {
		if err := SignInput(txIndex, i, prevScriptsHex[i], hashType, amounts[i], wif); err != nil {
			return err
		}
	}
	return nil
}

// decodeWIFAny tries every built-in network's WIF prefix in turn, since
// the working-tx API is not otherwise told which chain signs the input.
func decodeWIFAny(wif string) (*dogeec.PrivKey, error) {
	var lastErr error = dogeec.ErrMalformedPrivateKey
	for _, params := range []chaincfg.Params{
		chaincfg.MainNetParams,
		chaincfg.TestNet3Params,
		chaincfg.RegressionNetParams,
	} {
		w, err := dogeec.DecodeWIF(wif, params)
		if err == nil {
			return w.PrivKey, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
