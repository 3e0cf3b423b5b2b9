// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dogemsg implements signed messages: a framed, length-prefixed
// digest of a human-readable message, a base64-encoded recoverable
// ECDSA signature over it, and verification back to a P2PKH address.
package dogemsg

import (
	"bytes"
	"encoding/base64"

	"github.com/dogeorg/dogecore/dogeaddr"
	"github.com/dogeorg/dogecore/dogeec"
	"github.com/dogeorg/dogecore/wire"
)

// magic is the fixed preamble framed ahead of every signed message,
// length-prefixed like the message itself.
const magic = "Dogecoin Signed Message:\n"

// Digest computes the framed digest of message:
// double-SHA256(varint(len(magic)) || magic || varint(len(message)) || message).
func Digest(message string) wire.Hash {
	var buf bytes.Buffer
	_ = wire.WriteVarBytes(&buf, []byte(magic))
	_ = wire.WriteVarBytes(&buf, []byte(message))
	return wire.DoubleHashH(buf.Bytes())
}

// Sign produces the 88-character base64 signature envelope: header
// byte 27+recid+(4 if compressed) followed by the 64-byte compact
// signature, base64-encoded.
func Sign(priv *dogeec.PrivKey, message string, compressed bool) (string, error) {
	digest := Digest(message)
	sig64, recid, err := dogeec.SignRecoverable(priv, digest[:])
	if err != nil {
		return "", err
	}
	header := byte(27 + recid)
	if compressed {
		header += 4
	}
	out := make([]byte, 0, 65)
	out = append(out, header)
	out = append(out, sig64[:]...)
	return base64.StdEncoding.EncodeToString(out), nil
}

// Verify decodes the envelope, recovers the signer's public key,
// derives its P2PKH address under the chain implied by addr's own
// version byte, and compares.
func Verify(sigB64, message, addr string) bool {
	raw, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil || len(raw) != 65 {
		return false
	}
	header := raw[0]
	if header < 27 || header > 42 {
		return false
	}
	recid := (header - 27) % 4
	compressed := header >= 31

	digest := Digest(message)
	var sig64 [64]byte
	copy(sig64[:], raw[1:])
	pub, err := dogeec.RecoverPubKey(sig64, recid, digest[:])
	if err != nil {
		return false
	}

	_, params, kind, err := dogeaddr.DecodeAny(addr)
	if err != nil || kind != dogeaddr.AddrP2PKH {
		return false
	}
	serialized := pub.SerializeCompressed()
	if !compressed {
		serialized = pub.SerializeUncompressed()
	}
	computed, err := dogeaddr.EncodeP2PKH(dogeec.Hash160(serialized), params)
	if err != nil {
		return false
	}
	return computed == addr
}
