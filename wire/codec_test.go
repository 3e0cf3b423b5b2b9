// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"strings"
	"testing"
)

func TestVarIntRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000, 1 << 63}
	for _, v := range values {
		var buf bytes.Buffer
		if err := WriteVarInt(&buf, v); err != nil {
			t.Fatalf("write %d: %v", v, err)
		}
		if buf.Len() != VarIntSerializeSize(v) {
			t.Fatalf("size mismatch for %d: wrote %d want %d", v, buf.Len(), VarIntSerializeSize(v))
		}
		got, err := ReadVarInt(&buf)
		if err != nil {
			t.Fatalf("read %d: %v", v, err)
		}
		if got != v {
			t.Fatalf("round trip mismatch: got %d want %d", got, v)
		}
	}
}

func TestVarBytesRoundTrip(t *testing.T) {
	data := []byte("the quick brown fox")
	var buf bytes.Buffer
	if err := WriteVarBytes(&buf, data); err != nil {
		t.Fatal(err)
	}
	got, err := ReadVarBytes(&buf, 1024)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch: got %q want %q", got, data)
	}
}

func TestVarStringRejectsNonASCII(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteVarBytes(&buf, []byte{0x68, 0x69, 0x00}); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadVarString(&buf, 16); err != ErrDeser {
		t.Fatalf("expected ErrDeser for a control byte, got %v", err)
	}
	buf.Reset()
	if err := WriteVarString(&buf, "hello"); err != nil {
		t.Fatal(err)
	}
	got, err := ReadVarString(&buf, 16)
	if err != nil || got != "hello" {
		t.Fatalf("round trip mismatch: got %q err %v", got, err)
	}
}

func TestHashHexDisplayOrderIsReversed(t *testing.T) {
	if _, err := HashFromHex("01" + strings.Repeat("00", 32)); err == nil {
		t.Fatal("expected error for oversized hex string")
	}
	h, err := HashFromHex("01" + strings.Repeat("00", 31))
	if err != nil {
		t.Fatal(err)
	}
	if h[HashSize-1] != 0x01 {
		t.Fatalf("expected last internal byte to be 0x01, got %x", h[HashSize-1])
	}
	if got := h.String()[:2]; got != "01" {
		t.Fatalf("expected display string to start with 01, got %s", got)
	}
}
