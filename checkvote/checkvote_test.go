// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package checkvote

import (
	"context"
	"strings"
	"testing"

	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/params"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/vcerr"
)

func validHexImageID() string {
	return strings.Repeat("ab", 32)
}

func TestCheckVoteRejectsBadImageIDHex(t *testing.T) {
	req := VoteRequest{ImageID: "not-hex", Journal: "00", Seal: "00000000"}
	_, err := CheckVote(req)
	if kind, ok := vcerr.KindOf(err); !ok || kind != vcerr.HexDecode {
		t.Fatalf("CheckVote error kind = %v, want HexDecode", kind)
	}
}

func TestCheckVoteRejectsWrongLengthImageID(t *testing.T) {
	req := VoteRequest{ImageID: "aabb", Journal: "00", Seal: "00000000"}
	_, err := CheckVote(req)
	if kind, ok := vcerr.KindOf(err); !ok || kind != vcerr.LengthMismatch {
		t.Fatalf("CheckVote error kind = %v, want LengthMismatch", kind)
	}
}

func TestCheckVoteRejectsSealShorterThanSelector(t *testing.T) {
	req := VoteRequest{ImageID: validHexImageID(), Journal: "00", Seal: "0102"}
	_, err := CheckVote(req)
	if kind, ok := vcerr.KindOf(err); !ok || kind != vcerr.LengthMismatch {
		t.Fatalf("CheckVote error kind = %v, want LengthMismatch", kind)
	}
}

func TestCheckVoteRejectsUnknownSelector(t *testing.T) {
	// An all-zero selector is never a real registry entry (spec §6), so this
	// exercises the unknown-selector rejection path without needing a valid
	// proof body.
	seal := strings.Repeat("00", params.SelectorSize+256)
	req := VoteRequest{ImageID: validHexImageID(), Journal: "00", Seal: seal}
	_, err := CheckVote(req)
	if kind, ok := vcerr.KindOf(err); !ok || kind != vcerr.UnknownSelector {
		t.Fatalf("CheckVote error kind = %v, want UnknownSelector", kind)
	}
}

// SealMalformed (truncated proof bytes past a known selector) and
// JournalMalformed (truncated journal_abi past a successful pairing check)
// both require a real RISC Zero Groth16 proof fixture to reach from
// CheckVote; those contracts are exercised directly against the codecs in
// internal/seal and internal/journal instead.

func TestCheckVoteBatchPreservesOrderAndIndependence(t *testing.T) {
	reqs := []VoteRequest{
		{ImageID: "not-hex", Journal: "00", Seal: "00000000"},
		{ImageID: "also-not-hex", Journal: "00", Seal: "00000000"},
	}
	results := CheckVoteBatch(context.Background(), reqs)
	if len(results) != len(reqs) {
		t.Fatalf("CheckVoteBatch returned %d results, want %d", len(results), len(reqs))
	}
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("results[%d].Index = %d, want %d", i, r.Index, i)
		}
		if kind, ok := vcerr.KindOf(r.Err); !ok || kind != vcerr.HexDecode {
			t.Fatalf("results[%d] kind = %v, want HexDecode", i, kind)
		}
	}
}
