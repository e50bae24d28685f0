/**
 * Copyright (c) 2020, The Lattice Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package diagnostic defines the closed catalogue of codes the toolchain can
// emit, generalizing botobag/artemis's graphql.Error (an Op/ErrKind pair
// plus ad hoc message string) into a typed, compile-time-enumerable Code so
// downstream tooling can list every diagnosable condition without running
// the toolchain.
package diagnostic

import "github.com/latticeql/lattice/source"

// Code is one member of the closed E#### catalogue (§4.3).
type Code string

// Severity classifies how a diagnostic should be treated by a caller.
type Severity uint8

const (
	// SeverityError marks a diagnostic that makes the affected definition invalid.
	SeverityError Severity = iota
	// SeverityWarning marks an advisory diagnostic (e.g. unused fragment in an imported document).
	SeverityWarning
)

// Label attaches a secondary message to a span, used for the dual-anchor
// unclosed-delimiter diagnostics and for "previous definition here" style notes.
type Label struct {
	Span    source.Span
	Message string
}

// Diagnostic is a single reported problem: a code, a primary span/message, and zero or more labels.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Span     source.Span
	Message  string
	Labels   []Label
}

// New builds a Diagnostic with no labels.
func New(code Code, span source.Span, message string) Diagnostic {
	return Diagnostic{Code: code, Severity: SeverityError, Span: span, Message: message}
}

// WithLabel returns a copy of d with an additional label.
func (d Diagnostic) WithLabel(span source.Span, message string) Diagnostic {
	d.Labels = append(append([]Label(nil), d.Labels...), Label{Span: span, Message: message})
	return d
}

// AsWarning returns a copy of d with Severity set to SeverityWarning.
func (d Diagnostic) AsWarning() Diagnostic {
	d.Severity = SeverityWarning
	return d
}

// Error implements the error interface so a Diagnostic can be returned/wrapped like any Go error.
func (d Diagnostic) Error() string {
	return string(d.Code) + ": " + d.Message
}
