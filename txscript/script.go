// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import "errors"

// ErrInvalidScript is returned by the builders when their arguments
// cannot form a well-formed script: a multisig m/n outside 1 <= m <=
// n <= 16, a hash160 of the wrong length, and so on.
var ErrInvalidScript = errors.New("txscript: invalid script arguments")

// ParsedOp is one opcode of a parsed script, together with any push
// data it carries. Raw holds the exact encoded bytes of the token
// (opcode plus any length prefix and payload), so a caller that
// reassembles a script from a filtered set of ops reproduces the
// original encoding rather than a reminimized one.
type ParsedOp struct {
	Opcode byte
	Data   []byte // nil for a non-push opcode
	Raw    []byte
}

// Parse tokenizes a raw script into its opcode sequence. A truncated
// push length is an error rather than a panic; parsing never executes
// the script.
func Parse(script []byte) ([]ParsedOp, error) {
	var ops []ParsedOp
	i := 0
	for i < len(script) {
		start := i
		op := script[i]
		switch {
		case op >= 0x01 && op <= 0x4b:
			n := int(op)
			if i+1+n > len(script) {
				return nil, ErrInvalidScript
			}
			i += 1 + n
			ops = append(ops, ParsedOp{Opcode: op, Data: script[start+1 : i], Raw: script[start:i]})
		case op == OP_PUSHDATA1:
			if i+2 > len(script) {
				return nil, ErrInvalidScript
			}
			n := int(script[i+1])
			if i+2+n > len(script) {
				return nil, ErrInvalidScript
			}
			i += 2 + n
			ops = append(ops, ParsedOp{Opcode: op, Data: script[start+2 : i], Raw: script[start:i]})
		case op == OP_PUSHDATA2:
			if i+3 > len(script) {
				return nil, ErrInvalidScript
			}
			n := int(script[i+1]) | int(script[i+2])<<8
			if i+3+n > len(script) {
				return nil, ErrInvalidScript
			}
			i += 3 + n
			ops = append(ops, ParsedOp{Opcode: op, Data: script[start+3 : i], Raw: script[start:i]})
		case op == OP_PUSHDATA4:
			if i+5 > len(script) {
				return nil, ErrInvalidScript
			}
			n := int(script[i+1]) | int(script[i+2])<<8 | int(script[i+3])<<16 | int(script[i+4])<<24
			if i+5+n > len(script) || n < 0 {
				return nil, ErrInvalidScript
			}
			i += 5 + n
			ops = append(ops, ParsedOp{Opcode: op, Data: script[start+5 : i], Raw: script[start:i]})
		default:
			i++
			ops = append(ops, ParsedOp{Opcode: op, Raw: script[start:i]})
		}
	}
	return ops, nil
}

// pushData encodes a single data push using the shortest legal
// encoding for len(data).
func pushData(data []byte) []byte {
	n := len(data)
	switch {
	case n <= 0x4b:
		out := make([]byte, 0, 1+n)
		out = append(out, byte(n))
		return append(out, data...)
	case n <= 0xff:
		out := make([]byte, 0, 2+n)
		out = append(out, OP_PUSHDATA1, byte(n))
		return append(out, data...)
	case n <= 0xffff:
		out := make([]byte, 0, 3+n)
		out = append(out, OP_PUSHDATA2, byte(n), byte(n>>8))
		return append(out, data...)
	default:
		out := make([]byte, 0, 5+n)
		out = append(out, OP_PUSHDATA4, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
		return append(out, data...)
	}
}

// ScriptClass names the recognized output template a script matches.
type ScriptClass int

const (
	NonStandardTy ScriptClass = iota
	PubKeyHashTy
	ScriptHashTy
	PubKeyTy
	MultiSigTy
)

func (c ScriptClass) String() string {
	switch c {
	case PubKeyHashTy:
		return "pubkeyhash"
	case ScriptHashTy:
		return "scripthash"
	case PubKeyTy:
		return "pubkey"
	case MultiSigTy:
		return "multisig"
	default:
		return "nonstandard"
	}
}

// GetScriptClass pattern-matches a parsed opcode stream against the
// four recognized output templates, falling back to NonStandardTy.
// Classification always parses first; a malformed script is
// NonStandardTy rather than an error.
func GetScriptClass(script []byte) ScriptClass {
	ops, err := Parse(script)
	if err != nil {
		return NonStandardTy
	}
	switch {
	case isPubKeyHash(ops):
		return PubKeyHashTy
	case isScriptHash(ops):
		return ScriptHashTy
	case isPubKey(ops):
		return PubKeyTy
	case isMultiSig(ops):
		return MultiSigTy
	default:
		return NonStandardTy
	}
}

// isPubKeyHash matches OP_DUP OP_HASH160 <20-byte push> OP_EQUALVERIFY
// OP_CHECKSIG.
func isPubKeyHash(ops []ParsedOp) bool {
	return len(ops) == 5 &&
		ops[0].Opcode == OP_DUP &&
		ops[1].Opcode == OP_HASH160 &&
		len(ops[2].Data) == 20 &&
		ops[3].Opcode == OP_EQUALVERIFY &&
		ops[4].Opcode == OP_CHECKSIG
}

// isScriptHash matches OP_HASH160 <20-byte push> OP_EQUAL.
func isScriptHash(ops []ParsedOp) bool {
	return len(ops) == 3 &&
		ops[0].Opcode == OP_HASH160 &&
		len(ops[1].Data) == 20 &&
		ops[2].Opcode == OP_EQUAL
}

// isPubKey matches <33 or 65-byte push> OP_CHECKSIG.
func isPubKey(ops []ParsedOp) bool {
	return len(ops) == 2 &&
		(len(ops[0].Data) == 33 || len(ops[0].Data) == 65) &&
		ops[1].Opcode == OP_CHECKSIG
}

// isMultiSig matches <small_int m> <k pubkey pushes> <small_int n>
// OP_CHECKMULTISIG with m <= n. The classifier only requires each
// pushed key to be 3..17 bytes; it does not validate curve points.
func isMultiSig(ops []ParsedOp) bool {
	if len(ops) < 4 {
		return false
	}
	if !isSmallInt(ops[0].Opcode) || ops[len(ops)-1].Opcode != OP_CHECKMULTISIG {
		return false
	}
	nOp := ops[len(ops)-2]
	if !isSmallInt(nOp.Opcode) {
		return false
	}
	m := smallIntValue(ops[0].Opcode)
	n := smallIntValue(nOp.Opcode)
	keyOps := ops[1 : len(ops)-2]
	if len(keyOps) != n || m > n || m < 1 || n > 16 {
		return false
	}
	for _, op := range keyOps {
		if len(op.Data) < 3 || len(op.Data) > 17 {
			return false
		}
	}
	return true
}

// BuildP2PKH constructs a pay-to-pubkey-hash output script:
// OP_DUP OP_HASH160 <hash160> OP_EQUALVERIFY OP_CHECKSIG.
func BuildP2PKH(hash160 []byte) ([]byte, error) {
	if len(hash160) != 20 {
		return nil, ErrInvalidScript
	}
	out := make([]byte, 0, 25)
	out = append(out, OP_DUP, OP_HASH160)
	out = append(out, pushData(hash160)...)
	out = append(out, OP_EQUALVERIFY, OP_CHECKSIG)
	return out, nil
}

// BuildP2SH constructs a pay-to-script-hash output script:
// OP_HASH160 <hash160> OP_EQUAL.
func BuildP2SH(hash160 []byte) ([]byte, error) {
	if len(hash160) != 20 {
		return nil, ErrInvalidScript
	}
	out := make([]byte, 0, 23)
	out = append(out, OP_HASH160)
	out = append(out, pushData(hash160)...)
	out = append(out, OP_EQUAL)
	return out, nil
}

// BuildMultiSig constructs an m-of-n bare multisig script, requiring
// 1 <= m <= n <= 16.
func BuildMultiSig(m int, pubkeys [][]byte) ([]byte, error) {
	n := len(pubkeys)
	if m < 1 || n > 16 || m > n {
		return nil, ErrInvalidScript
	}
	var out []byte
	out = append(out, EncodeOpN(m))
	for _, pk := range pubkeys {
		if len(pk) != 33 && len(pk) != 65 {
			return nil, ErrInvalidScript
		}
		out = append(out, pushData(pk)...)
	}
	out = append(out, EncodeOpN(n))
	out = append(out, OP_CHECKMULTISIG)
	return out, nil
}

// CopyWithoutOpCodeseparator drops every OP_CODESEPARATOR opcode from
// src while preserving every other byte exactly, including push-data
// bytes that happen to equal the OP_CODESEPARATOR value. Used by the
// sighash algorithm when forming an input's subscript.
func CopyWithoutOpCodeseparator(src []byte) []byte {
	ops, err := Parse(src)
	if err != nil {
		// An unparsable subscript is passed through unchanged; the
		// sighash algorithm operates on whatever bytes the previous
		// output script contained, valid or not.
		return append([]byte(nil), src...)
	}
	var out []byte
	for _, op := range ops {
		if op.Opcode == OP_CODESEPARATOR {
			continue
		}
		out = append(out, op.Raw...)
	}
	return out
}
