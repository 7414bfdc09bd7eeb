// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package seal

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/vcerr"
)

func TestDecodeRejectsWrongLength(t *testing.T) {
	_, err := Decode(make([]byte, Size-1))
	if err == nil {
		t.Fatalf("Decode accepted a short proof, want SealMalformed")
	}
	if kind, ok := vcerr.KindOf(err); !ok || kind != vcerr.SealMalformed {
		t.Fatalf("Decode error kind = %v, want SealMalformed", kind)
	}
}

func TestDecodeRejectsOffCurveA(t *testing.T) {
	b := make([]byte, Size)
	// All-zero A is (0, 0), not on y^2 = x^3 + 3, so it must be rejected.
	_, err := Decode(b)
	if err == nil {
		t.Fatalf("Decode accepted an all-zero A, want PointNotOnCurve")
	}
	if kind, ok := vcerr.KindOf(err); !ok || kind != vcerr.PointNotOnCurve {
		t.Fatalf("Decode error kind = %v, want PointNotOnCurve", kind)
	}
}

// TestDecodeRoundTripsKnownGenerators builds 256 wire bytes from the BN254
// G1/G2 generators via Encode and asserts Decode recovers the exact same
// points, exercising the Fp2 (imag, real) wire swap end to end (spec §8
// property 4).
func TestDecodeRoundTripsKnownGenerators(t *testing.T) {
	_, _, g1Gen, g2Gen := bn254.Generators()

	want := ProofPairingData{A: g1Gen, B: g2Gen, C: g1Gen}
	wire := Encode(want)
	if len(wire) != Size {
		t.Fatalf("Encode produced %d bytes, want %d", len(wire), Size)
	}

	got, err := Decode(wire)
	if err != nil {
		t.Fatalf("Decode of an encoded generator-based proof failed: %v", err)
	}

	if !got.A.Equal(&want.A) {
		t.Fatalf("Decode A = %v, want %v", got.A, want.A)
	}
	if !got.B.Equal(&want.B) {
		t.Fatalf("Decode B = %v, want %v", got.B, want.B)
	}
	if !got.C.Equal(&want.C) {
		t.Fatalf("Decode C = %v, want %v", got.C, want.C)
	}
}

// TestEncodeSwapsFp2CoefficientOrder pins the (imag, real) wire order for
// G2 coordinates directly: a B with distinct A0/A1 must serialize with the
// imaginary half first, matching the §4.3 layout table.
func TestEncodeSwapsFp2CoefficientOrder(t *testing.T) {
	_, _, g1Gen, g2Gen := bn254.Generators()
	pd := ProofPairingData{A: g1Gen, B: g2Gen, C: g1Gen}
	wire := Encode(pd)

	wantXIm := pd.B.X.A1.Bytes()
	wantXRe := pd.B.X.A0.Bytes()
	if string(wire[64:96]) != string(wantXIm[:]) {
		t.Fatalf("wire[64:96] (B.X first chunk) does not match B.X.A1 (imag); wire order is wrong")
	}
	if string(wire[96:128]) != string(wantXRe[:]) {
		t.Fatalf("wire[96:128] (B.X second chunk) does not match B.X.A0 (real); wire order is wrong")
	}
}
