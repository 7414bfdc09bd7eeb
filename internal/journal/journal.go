// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package journal decodes the bincode-encoded vote payload a guest program
// emits as its journal ABI, and carries the (unused-by-the-core, listed for
// completeness) encrypted-data-integrity check from the original service.
package journal

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"unicode/utf8"

	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/vcerr"
)

// VoteResponse is the typed result of decoding a journal ABI payload. Its
// lifetime is per-request; nothing here is retained across calls.
type VoteResponse struct {
	Nullifier string
	Age       uint32
	IsStudent bool
	PollID    uint64
	OptionA   uint64
	OptionB   uint64
}

// minEncodedLen is the smallest a valid payload can be: an empty nullifier
// (8-byte zero length) plus age(4) + is_student(1) + poll_id(8) +
// option_a(8) + option_b(8).
const minEncodedLen = 8 + 4 + 1 + 8 + 8 + 8

// Decode parses a bincode "fixint" little-endian VoteResponse. Trailing
// bytes beyond the six required fields are permitted and ignored.
func Decode(data []byte) (VoteResponse, error) {
	if len(data) < 8 {
		return VoteResponse{}, vcerr.New(vcerr.JournalMalformed, "journal ABI truncated before nullifier length")
	}
	strLen := binary.LittleEndian.Uint64(data[0:8])
	offset := uint64(8)

	if strLen > uint64(len(data))-offset {
		return VoteResponse{}, vcerr.New(vcerr.JournalMalformed, "journal ABI truncated inside nullifier bytes")
	}
	nullifierBytes := data[offset : offset+strLen]
	if !utf8.Valid(nullifierBytes) {
		return VoteResponse{}, vcerr.New(vcerr.JournalMalformed, "nullifier is not valid UTF-8")
	}
	nullifier := string(nullifierBytes)
	offset += strLen

	const tailLen = 4 + 1 + 8 + 8 + 8
	if uint64(len(data))-offset < tailLen {
		return VoteResponse{}, vcerr.New(vcerr.JournalMalformed, "journal ABI truncated after nullifier")
	}

	age := binary.LittleEndian.Uint32(data[offset : offset+4])
	offset += 4

	isStudent := data[offset] != 0
	offset++

	pollID := binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	optionA := binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	optionB := binary.LittleEndian.Uint64(data[offset : offset+8])

	return VoteResponse{
		Nullifier: nullifier,
		Age:       age,
		IsStudent: isStudent,
		PollID:    pollID,
		OptionA:   optionA,
		OptionB:   optionB,
	}, nil
}

// Encode is the inverse of Decode, used by tests and by any caller that
// needs to build a journal ABI payload rather than parse one.
func Encode(v VoteResponse) []byte {
	out := make([]byte, 0, minEncodedLen+len(v.Nullifier))

	var lenBuf [8]byte
	binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(v.Nullifier)))
	out = append(out, lenBuf[:]...)
	out = append(out, v.Nullifier...)

	var ageBuf [4]byte
	binary.LittleEndian.PutUint32(ageBuf[:], v.Age)
	out = append(out, ageBuf[:]...)

	if v.IsStudent {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}

	var u64Buf [8]byte
	binary.LittleEndian.PutUint64(u64Buf[:], v.PollID)
	out = append(out, u64Buf[:]...)
	binary.LittleEndian.PutUint64(u64Buf[:], v.OptionA)
	out = append(out, u64Buf[:]...)
	binary.LittleEndian.PutUint64(u64Buf[:], v.OptionB)
	out = append(out, u64Buf[:]...)

	return out
}

// VerifyEncryptedDataIntegrity is unused by CheckVote — it is listed in the
// original service as dead code from the HTTP surface's point of view, kept
// here for parity. journal is hex-encoded and ends with a 32-byte (64 hex
// char) cipher-hash suffix; ciphertext is hex-encoded; aad is appended
// before ciphertext when recomputing the hash.
func VerifyEncryptedDataIntegrity(journalHex, ciphertextHex, aad string) (bool, error) {
	if len(journalHex) < 64 {
		return false, vcerr.New(vcerr.LengthMismatch, "journal hex too short to contain a cipher hash suffix")
	}
	cipherHashHex := journalHex[len(journalHex)-64:]

	wantHash, err := hex.DecodeString(cipherHashHex)
	if err != nil {
		return false, vcerr.Wrap(vcerr.HexDecode, "decoding cipher hash suffix", err)
	}

	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return false, vcerr.Wrap(vcerr.HexDecode, "decoding ciphertext", err)
	}

	gotHash := sha256.Sum256(append([]byte(aad), ciphertext...))
	if len(wantHash) != len(gotHash) {
		return false, nil
	}
	for i := range gotHash {
		if wantHash[i] != gotHash[i] {
			return false, nil
		}
	}
	return true, nil
}
