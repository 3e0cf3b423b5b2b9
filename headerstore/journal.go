// Copyright (c) 2024 The dogecore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerstore

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/dogeorg/dogecore/wire"
)

// journalMagic is the fixed 4-byte preamble of every header journal
// file.
var journalMagic = [4]byte{0xa8, 0xf0, 0x11, 0xc5}

const journalVersion uint32 = 2

// recordSize is one journal record: the block hash, its height, and
// the 80-byte canonical header, in that order. AuxPoW payloads are not
// persisted; they are re-verified only when a header is connected live
// (see ConnectHdr), not on journal replay (see Store.Load).
const recordSize = wire.HashSize + 4 + wire.BlockHeaderLen

func writeJournalHeader(w io.Writer) error {
	if _, err := w.Write(journalMagic[:]); err != nil {
		return err
	}
	var versionBuf [4]byte
	binary.LittleEndian.PutUint32(versionBuf[:], journalVersion)
	_, err := w.Write(versionBuf[:])
	return err
}

func readJournalHeader(r io.Reader) error {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	if !bytes.Equal(buf[:4], journalMagic[:]) {
		return ErrFileMagicMismatch
	}
	if binary.LittleEndian.Uint32(buf[4:]) != journalVersion {
		return ErrUnsupportedVersion
	}
	return nil
}

// appendRecord writes node's journal record to w: hash(32) ||
// height(u32 LE) || header(80).
func appendRecord(w io.Writer, node *BlockIndexNode) error {
	var buf bytes.Buffer
	buf.Grow(recordSize)
	buf.Write(node.Hash[:])
	var heightBuf [4]byte
	binary.LittleEndian.PutUint32(heightBuf[:], uint32(node.Height))
	buf.Write(heightBuf[:])
	if err := node.Header.Serialize(&buf); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// readRecord reads one fixed-size journal record, returning its header.
// The stored hash/height are informational only; linkLocked recomputes
// both from the header itself.
func readRecord(r io.Reader) (wire.BlockHeader, error) {
	buf := make([]byte, recordSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			return wire.BlockHeader{}, ErrRecordTruncated
		}
		return wire.BlockHeader{}, err
	}
	var header wire.BlockHeader
	if err := header.Deserialize(bytes.NewReader(buf[wire.HashSize+4:])); err != nil {
		return wire.BlockHeader{}, err
	}
	return header, nil
}

func openTruncated(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
}

func openExisting(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR, 0o644)
}
