// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package vcerr defines the closed error taxonomy for vote-receipt
// verification. Every rejection reaching a caller of checkvote.CheckVote is
// one of these Kinds; none of them are retried, none fall back to a
// different selector or VK.
package vcerr

import (
	"errors"
	"fmt"
)

// Kind categorizes why a verification was rejected.
type Kind int

const (
	// HexDecode means one of the hex-encoded request fields was not valid hex.
	HexDecode Kind = iota
	// LengthMismatch means a decoded field had the wrong fixed length
	// (image_id != 32 bytes, seal shorter than the selector prefix).
	LengthMismatch
	// UnknownSelector means the seal's 4-byte selector isn't in the registry.
	UnknownSelector
	// SealMalformed means the proof bytes after the selector aren't 256 bytes.
	SealMalformed
	// PointNotOnCurve means a decoded G1 point (A or C) fails the curve equation.
	PointNotOnCurve
	// PublicInputOutOfField means an assembled public signal is >= the scalar field order.
	PublicInputOutOfField
	// ProofInvalid means the pairing product did not equal the GT identity.
	ProofInvalid
	// JournalMalformed means the bincode journal payload was truncated or had bad UTF-8.
	JournalMalformed
)

func (k Kind) String() string {
	switch k {
	case HexDecode:
		return "HexDecode"
	case LengthMismatch:
		return "LengthMismatch"
	case UnknownSelector:
		return "UnknownSelector"
	case SealMalformed:
		return "SealMalformed"
	case PointNotOnCurve:
		return "PointNotOnCurve"
	case PublicInputOutOfField:
		return "PublicInputOutOfField"
	case ProofInvalid:
		return "ProofInvalid"
	case JournalMalformed:
		return "JournalMalformed"
	default:
		return "Unknown"
	}
}

// Error is the typed rejection returned by every core verification step.
// Cause is preserved for %w-style unwrapping; Fields carries debug-only
// context (never logged at Info level or above by internal/obslog).
type Error struct {
	Kind   Kind
	Msg    string
	Cause  error
	Fields map[string]any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is lets errors.Is(err, vcerr.New(kind, "")) match on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an *Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an *Error wrapping cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// WithField attaches a debug field and returns the receiver for chaining.
func (e *Error) WithField(key string, value any) *Error {
	if e.Fields == nil {
		e.Fields = make(map[string]any, 1)
	}
	e.Fields[key] = value
	return e
}

// KindOf extracts the Kind from err if it (or something it wraps) is a
// *vcerr.Error; ok is false otherwise.
func KindOf(err error) (kind Kind, ok bool) {
	var e *Error
	if ok = errors.As(err, &e); ok {
		kind = e.Kind
	}
	return
}
