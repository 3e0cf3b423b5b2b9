// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package arith256

import "testing"

func TestSetCompactSmallExponent(t *testing.T) {
	// size <= 3: mantissa is shifted right, producing a small integer.
	target, negative, overflow := SetCompact(0x01003456)
	if negative || overflow {
		t.Fatalf("unexpected flags: negative=%v overflow=%v", negative, overflow)
	}
	want := &Uint256{}
	want.Words[numWords-1] = 0x00 // mantissa 0x003456 shifted right 16 bits == 0x00
	if target.Cmp(want) != 0 {
		t.Fatalf("got %+v want %+v", target.Words, want.Words)
	}
}

func TestSetCompactLargeExponent(t *testing.T) {
	target, negative, overflow := SetCompact(0x1d00ffff)
	if negative || overflow {
		t.Fatalf("unexpected flags: negative=%v overflow=%v", negative, overflow)
	}
	// 0x1d00ffff is Bitcoin's genesis difficulty-1 target:
	// 0x00000000ffff0000000000000000000000000000000000000000000000000000
	be := target.BytesBE()
	if be[4] != 0xff || be[5] != 0xff {
		t.Fatalf("unexpected target bytes: %x", be)
	}
}

func TestAddSubRoundTrip(t *testing.T) {
	a := &Uint256{}
	a.Words[numWords-1] = 100
	b := &Uint256{}
	b.Words[numWords-1] = 42
	sum := Add(a, b)
	back := Sub(sum, b)
	if back.Cmp(a) != 0 {
		t.Fatalf("sub(add(a,b),b) != a: got %+v want %+v", back.Words, a.Words)
	}
}

func TestCountWorkMonotonic(t *testing.T) {
	easy, _, _ := SetCompact(0x1d00ffff)
	hard, _, _ := SetCompact(0x1c00ffff)
	workEasy := CountWork(easy)
	workHard := CountWork(hard)
	if workHard.Cmp(workEasy) <= 0 {
		t.Fatal("a lower (harder) target must require strictly more expected work")
	}
}
