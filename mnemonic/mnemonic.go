// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mnemonic implements BIP39: entropy to mnemonic sentence and
// back, checksum validation, and PBKDF2-HMAC-SHA512 seed derivation.
// The English wordlist comes from github.com/tyler-smith/go-bip39.
package mnemonic

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// Failure kinds reported by this package.
var (
	ErrUnknownWord            = errors.New("mnemonic: unknown word")
	ErrBadChecksum            = errors.New("mnemonic: checksum mismatch")
	ErrUnsupportedEntropySize = errors.New("mnemonic: unsupported entropy size")
	ErrWordlistMissing        = errors.New("mnemonic: wordlist unavailable")
)

const (
	pbkdf2Iterations = 2048
	seedLen          = 64
	bitsPerWord      = 11
)

var validEntropyBits = map[int]bool{128: true, 160: true, 192: true, 224: true, 256: true}

func wordlist() []string {
	wl := bip39.GetWordList()
	if len(wl) != 2048 {
		return nil
	}
	return wl
}

func wordIndex(words []string) map[string]int {
	idx := make(map[string]int, len(words))
	for i, w := range words {
		idx[w] = i
	}
	return idx
}

// NewMnemonic converts raw entropy (16/20/24/28/32 bytes) into its
// English mnemonic sentence: the entropy bits followed by the leading
// ent/32 checksum bits of sha256(entropy), read out in 11-bit groups.
func NewMnemonic(entropy []byte) (string, error) {
	entBits := len(entropy) * 8
	if !validEntropyBits[entBits] {
		return "", ErrUnsupportedEntropySize
	}
	wl := wordlist()
	if wl == nil {
		return "", ErrWordlistMissing
	}

	checksumBits := entBits / 32
	sum := sha256.Sum256(entropy)

	// Concatenate entropy bits with the leading checksumBits bits of
	// sum, then slice into 11-bit groups.
	bitLen := entBits + checksumBits
	bits := make([]bool, 0, bitLen)
	for _, b := range entropy {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1 == 1)
		}
	}
	for i := 0; i < checksumBits; i++ {
		byteIdx := i / 8
		bitIdx := 7 - i%8
		bits = append(bits, (sum[byteIdx]>>uint(bitIdx))&1 == 1)
	}

	numWords := bitLen / bitsPerWord
	words := make([]string, numWords)
	for w := 0; w < numWords; w++ {
		idx := 0
		for b := 0; b < bitsPerWord; b++ {
			idx <<= 1
			if bits[w*bitsPerWord+b] {
				idx |= 1
			}
		}
		words[w] = wl[idx]
	}
	return strings.Join(words, " "), nil
}

// ValidateMnemonic recomputes the checksum of a mnemonic sentence and
// compares it against the trailing checksum bits.
func ValidateMnemonic(m string) error {
	wl := wordlist()
	if wl == nil {
		return ErrWordlistMissing
	}
	idx := wordIndex(wl)
	words := strings.Fields(m)
	bitLen := len(words) * bitsPerWord
	entBits := (bitLen / 33) * 32
	if !validEntropyBits[entBits] {
		return ErrUnsupportedEntropySize
	}
	checksumBits := entBits / 32
	if entBits+checksumBits != bitLen {
		return ErrUnsupportedEntropySize
	}

	bits := make([]bool, 0, bitLen)
	for _, w := range words {
		wi, ok := idx[w]
		if !ok {
			return ErrUnknownWord
		}
		for b := bitsPerWord - 1; b >= 0; b-- {
			bits = append(bits, (wi>>uint(b))&1 == 1)
		}
	}

	entropy := make([]byte, entBits/8)
	for i := range entropy {
		var v byte
		for b := 0; b < 8; b++ {
			v <<= 1
			if bits[i*8+b] {
				v |= 1
			}
		}
		entropy[i] = v
	}
	sum := sha256.Sum256(entropy)
	for i := 0; i < checksumBits; i++ {
		byteIdx := i / 8
		bitIdx := 7 - i%8
		want := (sum[byteIdx] >> uint(bitIdx)) & 1
		got := byte(0)
		if bits[entBits+i] {
			got = 1
		}
		if want != got {
			return ErrBadChecksum
		}
	}
	return nil
}

// SeedFromMnemonic derives the 64-byte BIP32 seed from a mnemonic and
// optional passphrase via PBKDF2-HMAC-SHA512 (2048 iterations), NFKD
// normalizing both inputs as the standard requires.
func SeedFromMnemonic(m, passphrase string) []byte {
	password := norm.NFKD.String(m)
	salt := "mnemonic" + norm.NFKD.String(passphrase)
	return pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, seedLen, sha512.New)
}
