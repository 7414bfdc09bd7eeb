// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package pubsignal assembles the five BN254 scalar-field public signals a
// Groth16 verification is checked against, from a protocol version's
// control root and a receipt-claim digest.
package pubsignal

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/params"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/vcerr"
)

// Count is the number of public signals a verification is checked against.
const Count = 5

// SplitDigest reverses the byte order of a 32-byte digest and splits the
// result into (upper128, lower128) halves, each interpreted big-endian.
func SplitDigest(digest [32]byte) (upper, lower *big.Int) {
	var reversed [32]byte
	for i := range digest {
		reversed[i] = digest[31-i]
	}
	upper = new(big.Int).SetBytes(reversed[16:32])
	lower = new(big.Int).SetBytes(reversed[0:16])
	return
}

// reverseBytes32 returns digest with its byte order reversed.
func reverseBytes32(digest [32]byte) [32]byte {
	var out [32]byte
	for i := range digest {
		out[i] = digest[31-i]
	}
	return out
}

// fieldOrder is the BN254 scalar field order r, used to bound-check every
// assembled signal.
func fieldOrder() *big.Int {
	return fr.Modulus()
}

// Assemble builds the five public signals s0..s4 from a protocol version's
// control root/bn254_control_id and a receipt-claim digest:
//
//	s0, s1 = split_digest(control_root)
//	s2, s3 = split_digest(claim_digest)
//	s4     = be_int(reverse_bytes(bn254_control_id))
//
// Every signal must be strictly less than the scalar field order.
func Assemble(p params.VerifierParameters, claimDigest [32]byte) ([Count]*big.Int, error) {
	var signals [Count]*big.Int

	s0, s1 := SplitDigest(p.ControlRoot)
	s2, s3 := SplitDigest(claimDigest)
	reversedControlID := reverseBytes32(p.BN254ControlID)
	s4 := new(big.Int).SetBytes(reversedControlID[:])

	signals[0], signals[1], signals[2], signals[3], signals[4] = s0, s1, s2, s3, s4

	r := fieldOrder()
	for i, s := range signals {
		if s.Cmp(r) >= 0 {
			return signals, vcerr.New(vcerr.PublicInputOutOfField, "public signal exceeds the scalar field order").
				WithField("index", i)
		}
	}
	return signals, nil
}
