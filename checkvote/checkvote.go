// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package checkvote is the C9 orchestrator: it glues the hashing, claim,
// parameter-registry, seal-codec, public-signal, Groth16-verifier, and
// journal-codec components into the end-to-end vote-receipt check.
package checkvote

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/claim"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/groth16verify"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/groth16vk"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/journal"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/obslog"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/params"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/pubsignal"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/seal"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/vcerr"
)

// VoteRequest is what a caller submits to CheckVote. The core only ever
// reads seal, journal, journal_abi, and image_id; the remaining fields
// mirror the 6-field VoteRequest/VoteResponse schema the outer HTTP layer
// uses (spec §9 open question) and are passed through untouched — the core
// never inspects them to decide anything.
type VoteRequest struct {
	Seal       string
	Journal    string
	JournalABI string
	ImageID    string

	Nullifier string
	Age       uint32
	IsStudent bool
	PollID    uint64
	OptionA   uint64
	OptionB   uint64
}

// VoteResponse is the parsed journal payload returned on success.
type VoteResponse = journal.VoteResponse

// CheckVote runs the end-to-end check described in spec §4.8:
//
//  1. hex-decode image_id (32 bytes), journal, seal
//  2. claim_digest = CalculateClaimDigest(image_id, SHA256(journal))
//  3. split the seal into selector || proof_bytes
//  4. resolve verifier parameters for the selector
//  5. decode the seal's proof bytes
//  6. assemble the five public signals
//  7. run the Groth16 pairing check
//  8. on success, decode journal_abi into a typed VoteResponse
//
// journal and journal_abi are independent inputs; CheckVote never
// cross-checks them against each other (spec §4.8, §9).
func CheckVote(req VoteRequest) (VoteResponse, error) {
	imageIDBytes, err := hex.DecodeString(req.ImageID)
	if err != nil {
		return VoteResponse{}, vcerr.Wrap(vcerr.HexDecode, "decoding image_id", err)
	}
	if len(imageIDBytes) != 32 {
		return VoteResponse{}, vcerr.New(vcerr.LengthMismatch, "image_id must decode to 32 bytes").
			WithField("len", len(imageIDBytes))
	}
	var imageID [32]byte
	copy(imageID[:], imageIDBytes)

	journalBytes, err := hex.DecodeString(req.Journal)
	if err != nil {
		return VoteResponse{}, vcerr.Wrap(vcerr.HexDecode, "decoding journal", err)
	}
	journalDigest := sha256.Sum256(journalBytes)

	claimDigest := claim.CalculateClaimDigest(imageID, journalDigest)

	sealBytes, err := hex.DecodeString(req.Seal)
	if err != nil {
		return VoteResponse{}, vcerr.Wrap(vcerr.HexDecode, "decoding seal", err)
	}
	if len(sealBytes) < params.SelectorSize {
		return VoteResponse{}, vcerr.New(vcerr.LengthMismatch, "seal shorter than the selector prefix").
			WithField("len", len(sealBytes))
	}
	selector := sealBytes[:params.SelectorSize]
	proofBytes := sealBytes[params.SelectorSize:]

	reg := params.Get()
	p, ok := reg.Lookup(selector)
	if !ok {
		return VoteResponse{}, vcerr.New(vcerr.UnknownSelector, "no registered verifier parameters for this selector").
			WithField("selector", hex.EncodeToString(selector))
	}

	proof, err := seal.Decode(proofBytes)
	if err != nil {
		return VoteResponse{}, err
	}

	signals, err := pubsignal.Assemble(p, claimDigest)
	if err != nil {
		return VoteResponse{}, err
	}

	if obslog.DebugEnabled() {
		signalStrs := make([]string, len(signals))
		for i, s := range signals {
			signalStrs[i] = s.String()
		}
		obslog.Logger.Debug().
			Str("claim_digest", hex.EncodeToString(claimDigest[:])).
			Str("selector", hex.EncodeToString(selector)).
			Str("version", p.Version.String()).
			Strs("public_signals", signalStrs).
			Msg("assembled public signals")
	}

	if err := groth16verify.Verify(groth16vk.New(), proof, signals); err != nil {
		kind, _ := vcerr.KindOf(err)
		obslog.Logger.Warn().Str("kind", kind.String()).Msg("vote receipt rejected")
		return VoteResponse{}, err
	}

	journalABIBytes, err := hex.DecodeString(req.JournalABI)
	if err != nil {
		return VoteResponse{}, vcerr.Wrap(vcerr.HexDecode, "decoding journal_abi", err)
	}

	vote, err := journal.Decode(journalABIBytes)
	if err != nil {
		return VoteResponse{}, err
	}

	obslog.Logger.Info().Uint64("poll_id", vote.PollID).Str("version", p.Version.String()).Msg("vote receipt verified")
	return vote, nil
}

// CheckVoteResult pairs a request's outcome with its index, for
// CheckVoteBatch callers that need to correlate results back to requests.
type CheckVoteResult struct {
	Index    int
	Response VoteResponse
	Err      error
}

// CheckVoteBatch verifies many requests concurrently. Verifications are
// embarrassingly parallel (spec §5: no shared mutable state besides the
// read-only parameter registry), so this fans them out with a bounded
// worker count instead of one goroutine per request; one request's failure
// never cancels its siblings.
func CheckVoteBatch(ctx context.Context, reqs []VoteRequest) []CheckVoteResult {
	results := make([]CheckVoteResult, len(reqs))

	limit := runtime.GOMAXPROCS(0)
	if limit < 1 {
		limit = 1
	}
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			resp, err := CheckVote(req)
			results[i] = CheckVoteResult{Index: i, Response: resp, Err: err}
			return nil
		})
	}
	_ = g.Wait() // CheckVote never returns a non-nil error from g.Go itself

	return results
}
