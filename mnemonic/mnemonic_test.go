// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnemonic

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestNewMnemonicValidatesItself(t *testing.T) {
	entropy, err := hex.DecodeString(strings.Repeat("00", 16))
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewMnemonic(entropy)
	if err != nil {
		t.Fatalf("NewMnemonic: %v", err)
	}
	if err := ValidateMnemonic(m); err != nil {
		t.Fatalf("generated mnemonic failed to validate: %v", err)
	}
}

func TestZooVoteMnemonicValidates(t *testing.T) {
	m := "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo vote"
	if err := ValidateMnemonic(m); err != nil {
		t.Fatalf("known-good mnemonic failed to validate: %v", err)
	}
}

func TestValidateMnemonicUnknownWord(t *testing.T) {
	m := "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo doge"
	err := ValidateMnemonic(m)
	if err != ErrUnknownWord {
		t.Fatalf("expected ErrUnknownWord for a non-wordlist token, got %v", err)
	}
}

func TestValidateMnemonicBadChecksum(t *testing.T) {
	m := "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo"
	err := ValidateMnemonic(m)
	if err != ErrBadChecksum {
		t.Fatalf("expected ErrBadChecksum, got %v", err)
	}
}

func TestSeedFromMnemonicIsDeterministic(t *testing.T) {
	m := "zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo vote"
	a := SeedFromMnemonic(m, "")
	b := SeedFromMnemonic(m, "")
	if hex.EncodeToString(a) != hex.EncodeToString(b) {
		t.Fatal("seed derivation must be deterministic")
	}
	if len(a) != 64 {
		t.Fatalf("expected 64-byte seed, got %d", len(a))
	}
}
