// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package risc0hash

import (
	"bytes"
	"testing"
)

func TestSHA256ConcatMatchesDirectHash(t *testing.T) {
	a := []byte("hello ")
	b := []byte("world")
	got := SHA256Concat(a, b)
	want := SHA256(append(append([]byte{}, a...), b...))
	if got != want {
		t.Fatalf("SHA256Concat = %x, want %x", got, want)
	}
}

func TestTaggedStructIsSensitiveToChildOrder(t *testing.T) {
	tag := SHA256([]byte("test.tag"))
	a := []byte("alpha")
	b := []byte("beta")

	ab := TaggedStruct(tag, a, b)
	ba := TaggedStruct(tag, b, a)
	if ab == ba {
		t.Fatalf("TaggedStruct(tag, a, b) == TaggedStruct(tag, b, a), want distinct digests")
	}
}

func TestTaggedStructEncodesChildCount(t *testing.T) {
	tag := SHA256([]byte("test.tag"))
	one := TaggedStruct(tag, []byte("x"))
	two := TaggedStruct(tag, []byte("x"), []byte{})
	if one == two {
		t.Fatalf("TaggedStruct with 1 child collided with 2 children, want the length suffix to disambiguate")
	}
}

func TestTaggedListEmptyIsZero(t *testing.T) {
	tag := SHA256([]byte("test.tag"))
	got := TaggedList(tag)
	var zero [Size]byte
	if got != zero {
		t.Fatalf("TaggedList() with no items = %x, want the all-zero digest", got)
	}
}

func TestTaggedListFoldsRightToLeft(t *testing.T) {
	tag := SHA256([]byte("test.tag"))
	items := [][]byte{[]byte("a"), []byte("b"), []byte("c")}

	want := TaggedStruct(tag, items[0], mustTaggedStruct(tag, items[1], mustTaggedStruct(tag, items[2], zeroSlice())))
	got := TaggedList(tag, items...)
	if !bytes.Equal(got[:], want[:]) {
		t.Fatalf("TaggedList did not fold right-to-left as expected")
	}
}

func mustTaggedStruct(tag [Size]byte, item, curr []byte) []byte {
	d := TaggedStruct(tag, item, curr)
	return d[:]
}

func zeroSlice() []byte {
	return make([]byte, Size)
}
