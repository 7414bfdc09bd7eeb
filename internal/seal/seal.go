// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package seal decodes a 256-byte Groth16 proof seal into curve points.
//
// The wire layout is the one produced by Go's bn256.Marshal: big-endian
// field elements, G1 as (x, y), G2 as four chunks ordered
// (x.c1 imag, x.c0 real, y.c1 imag, y.c0 real). That Fp2 ordering is the
// single largest interop hazard in this codebase — gnark-crypto's internal
// E2 representation is (real, imag), so every G2 coordinate read off the
// wire gets its two halves swapped right here, in one place, and nowhere
// else.
package seal

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"

	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/vcerr"
)

// Size is the expected length of proof bytes after the 4-byte selector
// prefix has been stripped off a seal.
const Size = 256

// ProofPairingData is the decoded Groth16 proof: A and C in G1, B in G2.
type ProofPairingData struct {
	A bn254.G1Affine
	B bn254.G2Affine
	C bn254.G1Affine
}

// Decode parses 256 bytes of proof data into a ProofPairingData, checking
// that A and C lie on the G1 curve. B is not validated here;
// groth16verify.Verify checks that it is on the curve and in the subgroup
// before pairing, since gnark-crypto's pairing does not.
func Decode(proofBytes []byte) (ProofPairingData, error) {
	if len(proofBytes) != Size {
		return ProofPairingData{}, vcerr.New(vcerr.SealMalformed, "seal must be 256 bytes after the selector prefix").
			WithField("len", len(proofBytes))
	}

	var pd ProofPairingData

	pd.A = bn254.G1Affine{
		X: fpFromBE(proofBytes[0:32]),
		Y: fpFromBE(proofBytes[32:64]),
	}
	// gnark-crypto reads (0, 0) as the point at infinity and reports it on
	// the curve, but (0, 0) does not satisfy y^2 = x^3 + 3.
	if pd.A.IsInfinity() || !pd.A.IsOnCurve() {
		return ProofPairingData{}, vcerr.New(vcerr.PointNotOnCurve, "A is not a valid G1 point")
	}

	// B: wire order is (x.c1, x.c0, y.c1, y.c0) == (imag, real, imag, real).
	bxIm := fpFromBE(proofBytes[64:96])
	bxRe := fpFromBE(proofBytes[96:128])
	byIm := fpFromBE(proofBytes[128:160])
	byRe := fpFromBE(proofBytes[160:192])
	pd.B = bn254.G2Affine{
		X: bn254.E2{A0: bxRe, A1: bxIm},
		Y: bn254.E2{A0: byRe, A1: byIm},
	}

	pd.C = bn254.G1Affine{
		X: fpFromBE(proofBytes[192:224]),
		Y: fpFromBE(proofBytes[224:256]),
	}
	if pd.C.IsInfinity() || !pd.C.IsOnCurve() {
		return ProofPairingData{}, vcerr.New(vcerr.PointNotOnCurve, "C is not a valid G1 point")
	}

	return pd, nil
}

func fpFromBE(chunk []byte) fp.Element {
	var e fp.Element
	e.SetBytes(chunk)
	return e
}

// Encode is the inverse of Decode: it serializes a ProofPairingData back
// into the 256-byte §4.3 wire layout, swapping each G2 coordinate's (real,
// imag) internal representation back to the wire's (imag, real) order.
// Used by tests to build known-point fixtures; Decode is the only direction
// exercised by CheckVote.
func Encode(pd ProofPairingData) []byte {
	out := make([]byte, Size)

	ax, ay := pd.A.X.Bytes(), pd.A.Y.Bytes()
	copy(out[0:32], ax[:])
	copy(out[32:64], ay[:])

	bxRe, bxIm := pd.B.X.A0.Bytes(), pd.B.X.A1.Bytes()
	byRe, byIm := pd.B.Y.A0.Bytes(), pd.B.Y.A1.Bytes()
	copy(out[64:96], bxIm[:])
	copy(out[96:128], bxRe[:])
	copy(out[128:160], byIm[:])
	copy(out[160:192], byRe[:])

	cx, cy := pd.C.X.Bytes(), pd.C.Y.Bytes()
	copy(out[192:224], cx[:])
	copy(out[224:256], cy[:])

	return out
}
