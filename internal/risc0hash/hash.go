// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package risc0hash implements RISC Zero's domain-separated hashing
// primitives: plain SHA-256 plus the tagged-struct / tagged-list
// constructions used throughout the receipt-claim and verifying-key
// digests. Any deviation here (omitting the length suffix, folding the
// wrong direction, flipping endianness) breaks interop with proofs
// produced by the upstream RISC Zero toolchain.
package risc0hash

import (
	"crypto/sha256"
	"encoding/binary"
)

// Size is the length in bytes of every digest this package produces.
const Size = sha256.Size

// SHA256 returns the SHA-256 digest of data.
func SHA256(data []byte) [Size]byte {
	return sha256.Sum256(data)
}

// SHA256Concat hashes the concatenation of items in order.
func SHA256Concat(items ...[]byte) [Size]byte {
	h := sha256.New()
	for _, it := range items {
		h.Write(it)
	}
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// TaggedStruct computes SHA256(tag || children[0] || ... || children[n-1] || u16_LE(n)).
// The two-byte little-endian child count is mandatory domain separation; it
// is never omitted, never big-endian.
func TaggedStruct(tag [Size]byte, children ...[]byte) [Size]byte {
	h := sha256.New()
	h.Write(tag[:])
	for _, c := range children {
		h.Write(c)
	}
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(children)))
	h.Write(lenBuf[:])
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// TaggedList right-folds items into a cons-list digest: curr starts at the
// all-zero digest and, walking items from the last to the first,
// curr = TaggedStruct(tag, items[i], curr). An empty list hashes to the
// all-zero digest.
func TaggedList(tag [Size]byte, items ...[]byte) [Size]byte {
	var curr [Size]byte
	for i := len(items) - 1; i >= 0; i-- {
		curr = TaggedStruct(tag, items[i], curr[:])
	}
	return curr
}
