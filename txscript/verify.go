// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/dogeorg/dogecore/dogeec"
	"github.com/dogeorg/dogecore/wire"
)

// ErrInvalidScriptSig is the sentinel returned when a scriptSig does not
// have the <signature> <pubkey> shape VerifyP2PKHInput expects.
var ErrInvalidScriptSig = errors.New("txscript: scriptSig is not a standard P2PKH push-push script")

// VerifyP2PKHInput checks that tx's input idx correctly spends prevScript
// (a standard P2PKH pkScript), recomputing the legacy sighash and checking
// the ECDSA signature against the pubkey carried in the scriptSig. cache
// may be nil, in which case every call does a full verification; when
// supplied, a prior Exists hit skips the pubkey/DER parsing and
// ecdsa.Verify work (the sighash is still computed, as it is part of the
// cache key) for an input already seen, the way a wallet re-checking a batch
// of freshly signed inputs would.
func VerifyP2PKHInput(cache *SigCache, tx *wire.MsgTx, idx int, prevScript []byte) (bool, error) {
	if idx < 0 || idx >= len(tx.TxIn) {
		return false, ErrInputIndexOutOfRange
	}
	ops, err := Parse(tx.TxIn[idx].SignatureScript)
	if err != nil {
		return false, err
	}
	if len(ops) != 2 || len(ops[0].Data) == 0 {
		return false, ErrInvalidScriptSig
	}

	sigWithType := ops[0].Data
	hashType := SigHashType(sigWithType[len(sigWithType)-1])
	derSig := sigWithType[:len(sigWithType)-1]
	pubKeyBytes := ops[1].Data

	prevOps, err := Parse(prevScript)
	if err != nil {
		return false, err
	}
	if !isPubKeyHash(prevOps) {
		return false, ErrInvalidScript
	}
	if !bytes.Equal(prevOps[2].Data, dogeec.Hash160(pubKeyBytes)) {
		return false, nil
	}

	sigHash, err := CalcSignatureHash(prevScript, hashType, tx, idx)
	if err != nil {
		return false, err
	}

	if cache != nil && cache.Exists(sigHash, derSig, pubKeyBytes) {
		return true, nil
	}

	pubKey, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false, err
	}
	sig, err := ecdsa.ParseDERSignature(derSig)
	if err != nil {
		return false, err
	}

	ok := sig.Verify(sigHash[:], pubKey)
	if ok && cache != nil {
		cache.Add(sigHash, derSig, pubKeyBytes)
	}
	return ok, nil
}
