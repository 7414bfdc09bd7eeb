// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package groth16verify performs the Groth16 pairing check: a G1
// multi-scalar-multiplication for the public-input linear combination,
// followed by a four-pairing product check against the GT identity.
package groth16verify

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/groth16vk"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/pubsignal"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/seal"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/vcerr"
)

// Verify checks that proof attests to the statement encoded by signals
// under vk:
//
//	e(A, B) = e(Alpha, Beta) . e(vkX, Gamma) . e(C, Delta)
//
// equivalently e(A,B) . e(-Alpha,Beta) . e(-vkX,Gamma) . e(-C,Delta) = 1,
// which is what bn254.PairingCheck evaluates in one call.
func Verify(vk *groth16vk.VerifyingKey, proof seal.ProofPairingData, signals [pubsignal.Count]*big.Int) error {
	if len(signals)+1 != len(vk.IC) {
		return vcerr.New(vcerr.ProofInvalid, "public signal count does not match the verifying key's IC length")
	}

	// bn254.PairingCheck does not validate its G2 inputs.
	if !proof.B.IsOnCurve() || !proof.B.IsInSubGroup() {
		return vcerr.New(vcerr.ProofInvalid, "B is not a valid G2 subgroup point")
	}

	vkX := vk.IC[0]
	for i, s := range signals {
		var term bn254.G1Affine
		term.ScalarMultiplication(&vk.IC[i+1], s)
		vkX.Add(&vkX, &term)
	}

	var negAlpha, negVkX, negC bn254.G1Affine
	negAlpha.Neg(&vk.Alpha)
	negVkX.Neg(&vkX)
	negC.Neg(&proof.C)

	g1 := []bn254.G1Affine{proof.A, negAlpha, negVkX, negC}
	g2 := []bn254.G2Affine{proof.B, vk.Beta, vk.Gamma, vk.Delta}

	for _, p := range g1 {
		if p.IsInfinity() {
			return vcerr.New(vcerr.ProofInvalid, "point at infinity is not a valid pairing input")
		}
	}

	ok, err := bn254.PairingCheck(g1, g2)
	if err != nil {
		return vcerr.Wrap(vcerr.ProofInvalid, "pairing computation failed", err)
	}
	if !ok {
		return vcerr.New(vcerr.ProofInvalid, "pairing product is not the GT identity")
	}
	return nil
}
