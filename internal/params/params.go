// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package params holds the per-protocol-version RISC Zero Groth16 verifier
// parameters and the selector → parameters registry built from them. The
// registry is built once, lazily, behind a sync.Once single-writer barrier;
// after that first build it is read-only and safe for concurrent lookups.
package params

import (
	"encoding/hex"
	"sort"
	"sync"

	"github.com/blang/semver/v4"

	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/groth16vk"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/risc0hash"
)

// VerifierParameters is the per-version material a selector resolves to.
type VerifierParameters struct {
	Version        semver.Version
	ControlRoot    [32]byte
	BN254ControlID [32]byte
}

// SelectorSize is the length, in bytes, of a selector.
const SelectorSize = 4

// Selector is the 4-byte registry lookup key prepended to every seal.
type Selector [SelectorSize]byte

type versionEntry struct {
	version     string
	controlRoot string
	controlID   string
}

// versionTable is the hard-coded version -> parameters mapping (spec §6).
// Must be embedded verbatim; it is never recomputed.
var versionTable = []versionEntry{
	{"1.0", "a516a057c9fbf5629106300934d48e0e775d4230e41e503347cad96fcbde7e2e", "51b54a62f2aa599aef768744c95de8c7d89bf716e11b1179f05d6cf0bcfeb60e"},
	{"1.1", "8b6dcf11d463ac455361b41fb3ed053febb817491bdea00fdb340e45013b852e", "4e160df1e119ac0e3d658755a9edf38c8feb307b34bc10b57f4538dbe122a005"},
	{"1.2", "8cdad9242664be3112aba377c5425a4df735eb1c6966472b561d2855932c0469", "c07a65145c3cb48b6101962ea607a4dd93c753bb26975cb47feb00d3666e4404"},
	{"1.3", "6fcbfc564e08874a235c181e75bb53547402b116957f700497bf482e08060a15", "c07a65145c3cb48b6101962ea607a4dd93c753bb26975cb47feb00d3666e4404"},
	{"2.0", "539032186827b06719244873b17b2d4c122e2d02cfb1994fe958b2523b844576", "c07a65145c3cb48b6101962ea607a4dd93c753bb26975cb47feb00d3666e4404"},
	{"2.1", "884389273e128b32475b334dec75ee619b77cb33d41c332021fe7e44c746ee60", "c07a65145c3cb48b6101962ea607a4dd93c753bb26975cb47feb00d3666e4404"},
	{"2.2", "ce52bf56033842021af3cf6db8a50d1b7535c125a34f1a22c6fdcf002c5a1529", "c07a65145c3cb48b6101962ea607a4dd93c753bb26975cb47feb00d3666e4404"},
	{"2.3", "ce52bf56033842021af3cf6db8a50d1b7535c125a34f1a22c6fdcf002c5a1529", "c07a65145c3cb48b6101962ea607a4dd93c753bb26975cb47feb00d3666e4404"},
	{"3.0", "a54dc85ac99f851c92d7c96d7318af41dbe7c0194edfcc37eb4d422a998c1f56", "c07a65145c3cb48b6101962ea607a4dd93c753bb26975cb47feb00d3666e4404"},
}

func mustHex32(s string) [32]byte {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 32 {
		panic("params: invalid embedded hex constant " + s)
	}
	var out [32]byte
	copy(out[:], b)
	return out
}

func mustSemver(s string) semver.Version {
	// The table uses bare "major.minor" tags; semver requires a patch.
	v, err := semver.Parse(s + ".0")
	if err != nil {
		panic("params: invalid version tag " + s)
	}
	return v
}

// CalculateSelector computes the 4-byte selector for a set of verifier parameters,
// derived from the control root, the bn254 control id, and the embedded
// verifying key's digest:
//
//	SHA256( SHA256("risc0.Groth16ReceiptVerifierParameters")
//	     || control_root || bn254_control_id || vk_digest || u16_LE(3) )[:4]
func CalculateSelector(p VerifierParameters) Selector {
	tag := risc0hash.SHA256([]byte("risc0.Groth16ReceiptVerifierParameters"))
	vkDigest := groth16vk.Digest()
	full := risc0hash.TaggedStruct(tag, p.ControlRoot[:], p.BN254ControlID[:], vkDigest[:])
	var sel Selector
	copy(sel[:], full[:SelectorSize])
	return sel
}

// Registry is the immutable, process-wide selector -> parameters mapping.
type Registry struct {
	bySelector map[Selector]VerifierParameters
	versions   []semver.Version
}

var (
	registry     *Registry
	registryOnce sync.Once
)

func build() *Registry {
	r := &Registry{bySelector: make(map[Selector]VerifierParameters, len(versionTable))}
	for _, e := range versionTable {
		p := VerifierParameters{
			Version:        mustSemver(e.version),
			ControlRoot:    mustHex32(e.controlRoot),
			BN254ControlID: mustHex32(e.controlID),
		}
		sel := CalculateSelector(p)
		r.bySelector[sel] = p
		r.versions = append(r.versions, p.Version)
	}
	sort.Slice(r.versions, func(i, j int) bool { return r.versions[i].LT(r.versions[j]) })
	return r
}

// Get returns the process-wide registry, building it on first call. Safe
// under concurrent first-callers: sync.Once guarantees build() runs exactly
// once and every caller observes the fully-built result.
func Get() *Registry {
	registryOnce.Do(func() {
		registry = build()
	})
	return registry
}

// Lookup resolves a selector to its verifier parameters. Inputs longer than
// SelectorSize are truncated; inputs shorter than SelectorSize never match.
func (r *Registry) Lookup(selector []byte) (VerifierParameters, bool) {
	if len(selector) < SelectorSize {
		return VerifierParameters{}, false
	}
	var sel Selector
	copy(sel[:], selector[:SelectorSize])
	p, ok := r.bySelector[sel]
	return p, ok
}

// Versions returns every known protocol version, sorted ascending.
func (r *Registry) Versions() []semver.Version {
	out := make([]semver.Version, len(r.versions))
	copy(out, r.versions)
	return out
}
