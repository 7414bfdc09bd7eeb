// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// main_test.go
package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"
)

// withStdin temporarily replaces os.Stdin with a pipe fed by body, for
// exercising the "read from stdin" branch of the verify subcommand.
func withStdin(t *testing.T, body io.Reader, fn func()) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe failed: %v", err)
	}

	old := os.Stdin
	os.Stdin = r
	t.Cleanup(func() { os.Stdin = old })

	go func() {
		_, _ = io.Copy(w, body)
		w.Close()
	}()

	fn()
}

func TestRun_NoArgs(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{}, &out, &errOut)
	if code != 2 {
		t.Fatalf("want 2 got %d", code)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"wat"}, &out, &errOut)
	if code != 2 {
		t.Fatalf("want 2 got %d", code)
	}
}

func TestRun_VKDigest_Success(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"vk-digest"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("want 0 got %d stderr=%q", code, errOut.String())
	}
	got := strings.TrimSpace(out.String())
	if len(got) != 64 {
		t.Fatalf("vk-digest output %q, want 64 hex chars", got)
	}
}

func TestRun_Selector_ComputesSelectorForFlags(t *testing.T) {
	controlRoot := strings.Repeat("ab", 32)
	controlID := strings.Repeat("cd", 32)

	var out, errOut bytes.Buffer
	code := run([]string{"selector", "-control-root", controlRoot, "-bn254-control-id", controlID}, &out, &errOut)
	if code != 0 {
		t.Fatalf("want 0 got %d stderr=%q", code, errOut.String())
	}
	got := strings.TrimSpace(out.String())
	if len(got) != 8 {
		t.Fatalf("selector output %q, want 8 hex chars (4 bytes)", got)
	}
}

func TestRun_Selector_RejectsMissingFlags(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"selector"}, &out, &errOut)
	if code != 2 {
		t.Fatalf("want 2 got %d stdout=%q stderr=%q", code, out.String(), errOut.String())
	}
}

func TestRun_Selector_RejectsBadHex(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"selector", "-control-root", "not-hex", "-bn254-control-id", strings.Repeat("00", 32)}, &out, &errOut)
	if code != 1 {
		t.Fatalf("want 1 got %d stdout=%q stderr=%q", code, out.String(), errOut.String())
	}
}

func TestRun_Verify_BadRequestJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	in := strings.NewReader("not json")
	withStdin(t, in, func() {
		code := run([]string{"verify"}, &out, &errOut)
		if code != 2 {
			t.Fatalf("want 2 got %d stderr=%q", code, errOut.String())
		}
	})
}

func TestRun_Verify_RejectsBadImageIDHex(t *testing.T) {
	req := voteRequestWire{ImageID: "not-hex", Journal: "00", Seal: "00000000"}
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	var out, errOut bytes.Buffer
	withStdin(t, strings.NewReader(string(body)), func() {
		code := run([]string{"verify"}, &out, &errOut)
		if code != 1 {
			t.Fatalf("want 1 got %d stdout=%q stderr=%q", code, out.String(), errOut.String())
		}
	})
}
