// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package groth16vk holds the fixed BN254 Groth16 verifying key this system
// checks every vote receipt against. The coordinates come from the trusted
// setup used by the upstream RISC Zero Groth16 verifier and cannot be
// recomputed — they are embedded verbatim.
package groth16vk

import (
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"

	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/risc0hash"
)

// VerifyingKey is the fixed Groth16 VK: one G1 offset point (Alpha), three
// G2 points (Beta, Gamma, Delta), and six G1 "input commitment" points
// (IC) — one constant term plus one per of the five public signals.
type VerifyingKey struct {
	Alpha bn254.G1Affine
	Beta  bn254.G2Affine
	Gamma bn254.G2Affine
	Delta bn254.G2Affine
	IC    [6]bn254.G1Affine
}

// decimal constants, verbatim from the trusted setup.
var (
	alphaDec = [2]string{
		"20491192805390485299153009773594534940189261866228447918068658471970481763042",
		"9383485363053290200918347156157836566562967994039712273449902621266178545958",
	}
	betaDec = [4]string{
		"4252822878758300859123897981450591353533073413197771768651442665752259397132",
		"6375614351688725206403948262868962793625744043794305715222011528459656738731",
		"21847035105528745403288232691147584728191162732299865338377159692350059136679",
		"10505242626370262277552901082094356697409835680220590971873171140371331206856",
	}
	gammaDec = [4]string{
		"11559732032986387107991004021392285783925812861821192530917403151452391805634",
		"10857046999023057135944570762232829481370756359578518086990519993285655852781",
		"4082367875863433681332203403145435568316851327593401208105741076214120093531",
		"8495653923123431417604973247489272438418190587263600148770280649306958101930",
	}
	deltaDec = [4]string{
		"1668323501672964604911431804142266013250380587483576094566949227275849579036",
		"12043754404802191763554326994664886008979042643626290185762540825416902247219",
		"7710631539206257456743780535472368339139328733484942210876916214502466455394",
		"13740680757317479711909903993315946540841369848973133181051452051592786724563",
	}
	icDec = [6][2]string{
		{
			"8446592859352799428420270221449902464741693648963397251242447530457567083492",
			"1064796367193003797175961162477173481551615790032213185848276823815288302804",
		},
		{
			"3179835575189816632597428042194253779818690147323192973511715175294048485951",
			"20895841676865356752879376687052266198216014795822152491318012491767775979074",
		},
		{
			"5332723250224941161709478398807683311971555792614491788690328996478511465287",
			"21199491073419440416471372042641226693637837098357067793586556692319371762571",
		},
		{
			"12457994489566736295787256452575216703923664299075106359829199968023158780583",
			"19706766271952591897761291684837117091856807401404423804318744964752784280790",
		},
		{
			"19617808913178163826953378459323299110911217259216006187355745713323154132237",
			"21663537384585072695701846972542344484111393047775983928357046779215877070466",
		},
		{
			"6834578911681792552110317589222010969491336870276623105249474534788043166867",
			"15060583660288623605191393599883223885678013570733629274538391874953353488393",
		},
	}
)

func fpFromDec(s string) fp.Element {
	var e fp.Element
	bi, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("groth16vk: invalid decimal constant " + s)
	}
	e.SetBigInt(bi)
	return e
}

// e2FromWireChunks builds a G2 coefficient pair from four consecutive
// decimal constants laid out on the wire as [x.c1 (imag), x.c0 (real),
// y.c1 (imag), y.c0 (real)] and returns the (X, Y) E2 elements with the
// (real, imag) ordering gnark-crypto expects internally.
func e2FromWireChunks(chunks [4]string) (x, y bn254.E2) {
	xIm := fpFromDec(chunks[0])
	xRe := fpFromDec(chunks[1])
	yIm := fpFromDec(chunks[2])
	yRe := fpFromDec(chunks[3])
	x = bn254.E2{A0: xRe, A1: xIm}
	y = bn254.E2{A0: yRe, A1: yIm}
	return
}

var (
	cached     *VerifyingKey
	cachedOnce sync.Once
)

// New builds the embedded VerifyingKey, reconstructing every point from its
// decimal wire constants. Cheap enough (a dozen field reductions) to not
// need caching, but memoized anyway behind a sync.Once since it's
// process-wide and immutable.
func New() *VerifyingKey {
	cachedOnce.Do(func() {
		vk := &VerifyingKey{
			Alpha: bn254.G1Affine{X: fpFromDec(alphaDec[0]), Y: fpFromDec(alphaDec[1])},
		}
		vk.Beta.X, vk.Beta.Y = e2FromWireChunks(betaDec)
		vk.Gamma.X, vk.Gamma.Y = e2FromWireChunks(gammaDec)
		vk.Delta.X, vk.Delta.Y = e2FromWireChunks(deltaDec)
		for i, ic := range icDec {
			vk.IC[i] = bn254.G1Affine{X: fpFromDec(ic[0]), Y: fpFromDec(ic[1])}
		}
		cached = vk
	})
	return cached
}

var (
	vkTag   = risc0hash.SHA256([]byte("risc0_groth16.VerifyingKey"))
	icTag   = risc0hash.SHA256([]byte("risc0_groth16.VerifyingKey.IC"))
)

// digestOfDecPair returns SHA256 over the 32-byte BE encodings of its
// decimal constants, concatenated in order: two for a G1 point, four for a
// G2 point, matching the Python verifier_key_digest's
// sha256_items(alphas[0], alphas[1]) idiom.
func digestOfDecPair(parts ...string) [32]byte {
	bufs := make([][]byte, len(parts))
	for i, p := range parts {
		bi, ok := new(big.Int).SetString(p, 10)
		if !ok {
			panic("groth16vk: invalid decimal constant " + p)
		}
		buf := make([]byte, 32)
		bi.FillBytes(buf)
		bufs[i] = buf
	}
	return risc0hash.SHA256Concat(bufs...)
}

// Digest computes the verifying-key digest used in selector derivation
// (internal/params). It is defined over the same decimal constants New()
// uses, not over the reconstructed curve points, mirroring the Python
// source's byte-level recipe exactly.
func Digest() [32]byte {
	icDigests := make([][]byte, len(icDec))
	for i, ic := range icDec {
		d := digestOfDecPair(ic[0], ic[1])
		b := make([]byte, 32)
		copy(b, d[:])
		icDigests[i] = b
	}

	alphaD := digestOfDecPair(alphaDec[0], alphaDec[1])
	betaD := digestOfDecPair(betaDec[0], betaDec[1], betaDec[2], betaDec[3])
	gammaD := digestOfDecPair(gammaDec[0], gammaDec[1], gammaDec[2], gammaDec[3])
	deltaD := digestOfDecPair(deltaDec[0], deltaDec[1], deltaDec[2], deltaDec[3])
	icListDigest := risc0hash.TaggedList(icTag, icDigests...)

	return risc0hash.TaggedStruct(vkTag, alphaD[:], betaD[:], gammaD[:], deltaD[:], icListDigest[:])
}
