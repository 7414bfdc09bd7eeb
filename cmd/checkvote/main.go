// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// main.go
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/ttdung/zk-castvote-verify-groth16-proof/checkvote"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/groth16vk"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/obslog"
	"github.com/ttdung/zk-castvote-verify-groth16-proof/internal/params"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	wireConsoleLogger(stderr)

	if len(args) < 1 {
		return 2
	}

	switch args[0] {
	case "verify":
		return runVerify(args[1:], stdout, stderr)
	case "selector":
		return runSelector(args[1:], stdout, stderr)
	case "vk-digest":
		return runVKDigest(args[1:], stdout, stderr)
	default:
		return 2
	}
}

// wireConsoleLogger swaps obslog's writer for a colorized console writer
// when stderr is a terminal, the way an operator running this by hand would
// want it; piped/redirected output keeps the plain JSON lines.
func wireConsoleLogger(stderr io.Writer) {
	if f, ok := stderr.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		level := obslog.Logger.GetLevel()
		obslog.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger().Level(level)
	}
}

func runVerify(args []string, stdout, stderr io.Writer) int {
	verifyCmd := flag.NewFlagSet("verify", flag.ContinueOnError)
	verifyCmd.SetOutput(stderr)

	var inPath string
	verifyCmd.StringVar(&inPath, "in", "", "path to a JSON-encoded vote request (default: read from stdin)")
	if err := verifyCmd.Parse(args); err != nil {
		return 2
	}

	var raw []byte
	var err error
	if inPath == "" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(inPath)
	}
	if err != nil {
		fmt.Fprintln(stderr, "error: reading request:", err)
		return 1
	}

	var wire voteRequestWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		fmt.Fprintln(stderr, "error: decoding request JSON:", err)
		return 2
	}

	resp, err := checkvote.CheckVote(wire.toDomain())
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	out, err := json.Marshal(voteResponseWire{
		Nullifier: resp.Nullifier,
		Age:       resp.Age,
		IsStudent: resp.IsStudent,
		PollID:    resp.PollID,
		OptionA:   resp.OptionA,
		OptionB:   resp.OptionB,
	})
	if err != nil {
		fmt.Fprintln(stderr, "error: encoding response JSON:", err)
		return 1
	}

	fmt.Fprintln(stdout, string(out))
	return 0
}

// runSelector computes the 4-byte selector for a given control_root /
// bn254_control_id pair against the embedded verifying key, the way the
// teacher's "hash" subcommand turns a flag-supplied input into a printed
// digest.
func runSelector(args []string, stdout, stderr io.Writer) int {
	selectorCmd := flag.NewFlagSet("selector", flag.ContinueOnError)
	selectorCmd.SetOutput(stderr)

	var controlRootHex, controlIDHex string
	selectorCmd.StringVar(&controlRootHex, "control-root", "", "32-byte control root, hex-encoded")
	selectorCmd.StringVar(&controlIDHex, "bn254-control-id", "", "32-byte bn254 control id, hex-encoded")
	if err := selectorCmd.Parse(args); err != nil {
		return 2
	}
	if controlRootHex == "" || controlIDHex == "" {
		fmt.Fprintln(stderr, "error: -control-root and -bn254-control-id are required")
		return 2
	}

	controlRoot, err := decodeHex32(controlRootHex)
	if err != nil {
		fmt.Fprintln(stderr, "error: decoding -control-root:", err)
		return 1
	}
	controlID, err := decodeHex32(controlIDHex)
	if err != nil {
		fmt.Fprintln(stderr, "error: decoding -bn254-control-id:", err)
		return 1
	}

	sel := params.CalculateSelector(params.VerifierParameters{
		ControlRoot:    controlRoot,
		BN254ControlID: controlID,
	})
	fmt.Fprintln(stdout, hex.EncodeToString(sel[:]))
	return 0
}

func decodeHex32(s string) ([32]byte, error) {
	var out [32]byte
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, err
	}
	if len(b) != 32 {
		return out, fmt.Errorf("want 32 bytes, got %d", len(b))
	}
	copy(out[:], b)
	return out, nil
}

func runVKDigest(args []string, stdout, stderr io.Writer) int {
	vkCmd := flag.NewFlagSet("vk-digest", flag.ContinueOnError)
	vkCmd.SetOutput(stderr)
	if err := vkCmd.Parse(args); err != nil {
		return 2
	}

	digest := groth16vk.Digest()
	fmt.Fprintln(stdout, hex.EncodeToString(digest[:]))
	return 0
}

// voteRequestWire mirrors the outer HTTP schema (spec §9's 6-field
// VoteRequest): proof material as hex strings, the pass-through fields as
// plain JSON strings, numbers and booleans.
type voteRequestWire struct {
	Seal       string `json:"seal"`
	Journal    string `json:"journal"`
	JournalABI string `json:"journal_abi"`
	ImageID    string `json:"image_id"`

	Nullifier string `json:"nullifier"`
	Age       uint32 `json:"age"`
	IsStudent bool   `json:"is_student"`
	PollID    uint64 `json:"poll_id"`
	OptionA   uint64 `json:"option_a"`
	OptionB   uint64 `json:"option_b"`
}

func (w voteRequestWire) toDomain() checkvote.VoteRequest {
	return checkvote.VoteRequest{
		Seal:       w.Seal,
		Journal:    w.Journal,
		JournalABI: w.JournalABI,
		ImageID:    w.ImageID,
		Nullifier:  w.Nullifier,
		Age:        w.Age,
		IsStudent:  w.IsStudent,
		PollID:     w.PollID,
		OptionA:    w.OptionA,
		OptionB:    w.OptionB,
	}
}

type voteResponseWire struct {
	Nullifier string `json:"nullifier"`
	Age       uint32 `json:"age"`
	IsStudent bool   `json:"is_student"`
	PollID    uint64 `json:"poll_id"`
	OptionA   uint64 `json:"option_a"`
	OptionB   uint64 `json:"option_b"`
}
