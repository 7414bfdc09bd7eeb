// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package obslog is the structured logger the orchestrator uses. It never
// prints proof material at Info level or above; the GROTH16_DEBUG escape
// hatch (spec §9) is the only thing that turns on signal-level tracing, and
// even then only at Debug.
package obslog

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-wide structured logger, mirroring the way
// kysee-zk-chains wires a single zerolog.Logger for its gnark-adjacent
// circuit code.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// DebugEnabled reports whether GROTH16_DEBUG=1 is set, the cosmetic
// diagnostic escape hatch from spec §6/§9. It is never consulted to decide
// whether to verify a proof — only whether to log public signals at Debug.
func DebugEnabled() bool {
	return os.Getenv("GROTH16_DEBUG") == "1"
}

func init() {
	level := zerolog.InfoLevel
	if DebugEnabled() {
		level = zerolog.DebugLevel
	}
	Logger = Logger.Level(level)
}
