// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package groth16vk

import "testing"

func TestNewReturnsPointsOnCurve(t *testing.T) {
	vk := New()
	if !vk.Alpha.IsOnCurve() {
		t.Fatalf("Alpha is not on the G1 curve")
	}
	for i, ic := range vk.IC {
		if !ic.IsOnCurve() {
			t.Fatalf("IC[%d] is not on the G1 curve", i)
		}
	}
}

func TestNewIsMemoized(t *testing.T) {
	a := New()
	b := New()
	if a != b {
		t.Fatalf("New() returned distinct pointers, want the cached singleton")
	}
}

func TestDigestIsDeterministic(t *testing.T) {
	d1 := Digest()
	d2 := Digest()
	if d1 != d2 {
		t.Fatalf("Digest() is not deterministic")
	}
}

func TestDigestIsNotZero(t *testing.T) {
	// Sanity check that the digest isn't the zero value, which an
	// empty/omitted IC list collapsing the computation could produce.
	d := Digest()
	var zero [32]byte
	if d == zero {
		t.Fatalf("Digest() returned the all-zero digest, want a real hash")
	}
}
