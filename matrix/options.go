// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for matrix creation.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Options fields are unexported; public APIs consume ...Option.
//
// Notes:
//   - The numeric policy is a per-matrix flag captured at creation. Clone
//     preserves it; changing options later never affects existing matrices.
//   - The multiplication kernel writes the flat buffer directly and is NOT
//     subject to the policy: NaN/Inf produced by arithmetic propagate.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

// DefaultValidateNaNInf toggles strict finite-value validation on Set and Apply.
const DefaultValidateNaNInf = true

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
}

// ValidateNaNInf reports whether Set/Apply reject non-finite values.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// WithValidateNaNInf enables strict finite-value validation (the default).
// Complexity: O(1).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation on newly created matrices.
//
// Behavior highlights:
//   - Allows ±Inf/NaN to pass through Set, which mirrors what a float parser
//     accepts ("nan", "inf") when values come from user input.
//
// Complexity: O(1).
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// NewMatrixOptions resolves opts over the documented defaults.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// gatherOptions applies user setters in order over the defaults
// (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := Options{
		validateNaNInf: DefaultValidateNaNInf,
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
