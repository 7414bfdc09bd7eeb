// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package claim builds the RISC Zero receipt-claim digest that a Groth16
// seal attests to: a guest program with a given image id halted
// successfully and produced a given journal.
package claim

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/risc0hash"
)

// SystemStateZeroHex is the fixed post-state digest of a halted guest with
// an empty system-state commitment.
const SystemStateZeroHex = "a3acc27117418996340b84e5a90f3ef4c49d22c79e44aad822ec9c313e1eb8e2"

// SystemStateZero is SystemStateZeroHex decoded to bytes, computed at
// package init so a malformed constant fails fast instead of silently
// verifying against a zero digest.
var SystemStateZero [32]byte

func init() {
	b, err := hex.DecodeString(SystemStateZeroHex)
	if err != nil || len(b) != 32 {
		panic("claim: invalid embedded hex constant SystemStateZeroHex")
	}
	copy(SystemStateZero[:], b)
}

// SystemExitCode enumerates RISC Zero's guest exit conditions.
type SystemExitCode uint8

const (
	Halted SystemExitCode = 0
	Paused SystemExitCode = 1
	Split  SystemExitCode = 2
)

// ExitCode is the two-byte (system, user) exit code pair in a ReceiptClaim.
type ExitCode struct {
	System SystemExitCode
	User   uint8
}

// Output is the guest's public output: its journal digest plus the digest
// of any assumptions it relied on (zero for a proof with no assumptions).
type Output struct {
	JournalDigest     [32]byte
	AssumptionsDigest [32]byte
}

// ReceiptClaim is the full claim a Groth16 seal attests to.
type ReceiptClaim struct {
	PreState  [32]byte
	PostState [32]byte
	Exit      ExitCode
	Input     [32]byte
	Output    [32]byte // digest of an Output, not the Output itself
}

var outputTag = risc0hash.SHA256([]byte("risc0.Output"))
var receiptClaimTag = risc0hash.SHA256([]byte("risc0.ReceiptClaim"))

// OutputDigest computes SHA256(T || journal_digest || assumptions_digest || u16_LE(2))
// where T = SHA256("risc0.Output").
func OutputDigest(o Output) [32]byte {
	return risc0hash.TaggedStruct(outputTag, o.JournalDigest[:], o.AssumptionsDigest[:])
}

// ReceiptClaimDigest computes the claim digest. Field order on the wire is
// input, pre_state, post_state, output — deliberately not the struct's
// declaration order.
//
// The two exit-code words are appended as raw bytes, not as counted
// children: the trailing length suffix is always u16_LE(4), one per
// 32-byte digest (input, pre_state, post_state, output), regardless of the
// exit-code bytes tacked on after them. Using risc0hash.TaggedStruct's
// generic per-argument counting here would miscount them as 6 children and
// produce a non-interoperable digest, so the six pieces are concatenated
// directly instead.
func ReceiptClaimDigest(rc ReceiptClaim) [32]byte {
	sysCode := exitCodeWord(rc.Exit.System)
	userCode := exitCodeWord(SystemExitCode(rc.Exit.User))
	var lenSuffix [2]byte
	binary.LittleEndian.PutUint16(lenSuffix[:], 4)
	tag := receiptClaimTag
	return risc0hash.SHA256Concat(
		tag[:],
		rc.Input[:],
		rc.PreState[:],
		rc.PostState[:],
		rc.Output[:],
		sysCode[:],
		userCode[:],
		lenSuffix[:],
	)
}

func exitCodeWord(code SystemExitCode) [4]byte {
	var w [4]byte
	binary.BigEndian.PutUint32(w[:], uint32(code)<<24)
	return w
}

// OKReceiptClaim builds the claim for a guest that halted successfully with
// imageID as its pre-state and journalDigest as its public output, with no
// assumptions and an empty input commitment.
func OKReceiptClaim(imageID, journalDigest [32]byte) ReceiptClaim {
	out := OutputDigest(Output{JournalDigest: journalDigest})
	return ReceiptClaim{
		PreState:  imageID,
		PostState: SystemStateZero,
		Exit:      ExitCode{System: Halted, User: 0},
		Input:     [32]byte{},
		Output:    out,
	}
}

// CalculateClaimDigest is the C2 entry point: the digest of the OK claim for
// a guest with the given image id whose journal hashes to journalDigest.
func CalculateClaimDigest(imageID, journalDigest [32]byte) [32]byte {
	return ReceiptClaimDigest(OKReceiptClaim(imageID, journalDigest))
}
