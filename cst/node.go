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

// Package cst implements the concrete syntax tree (§3.3): a tree matching
// the GraphQL grammar where every required child is wrapped in a
// Recoverable[T], either present or carrying the diagnostic that explains
// why it's missing. This generalizes botobag/artemis's graphql/ast package
// (whose nodes are strict — a parse failure there aborts with an error,
// see graphql/parser/parser.go) into a tree that a fault-tolerant parser
// can always finish building, which is the core structural departure this
// toolchain makes from its teacher.
package cst

import "github.com/latticeql/lattice/source"

// Node is implemented by every CST node, executable or type-system.
type Node interface {
	Span() source.Span
}

// DefinitionID stably identifies a top-level Definition for the life of
// the CST node it was assigned to; the compiler shell and dependency graph
// key everything off of it (§3.3).
type DefinitionID uint64

// MissingInfo explains why a Recoverable slot has no value: the span of
// the gap where the parser expected something, and the diagnostic code it
// already reported (or will report) at that gap.
type MissingInfo struct {
	At     source.Span
	Reason string
	Code   string
}

// Recoverable wraps a required grammar slot that the parser may have been
// unable to fill. Span is always set — even a Missing slot has a location,
// namely the gap where the parser gave up looking.
type Recoverable[T any] struct {
	span  source.Span
	value T
	lost  *MissingInfo
}

// Present builds a filled Recoverable slot.
func Present[T any](span source.Span, value T) Recoverable[T] {
	return Recoverable[T]{span: span, value: value}
}

// Missing builds an empty Recoverable slot carrying the reason it's empty.
func Missing[T any](span source.Span, reason string, code string) Recoverable[T] {
	return Recoverable[T]{span: span, lost: &MissingInfo{At: span, Reason: reason, Code: code}}
}

// OK reports whether the slot was filled.
func (r Recoverable[T]) OK() bool { return r.lost == nil }

// Get returns the slot's value and whether it was present. Callers that
// don't check the bool get T's zero value on a Missing slot, never a nil
// panic — this is the invariant §3.3 calls "a Missing never introduces
// unsynthesized children".
func (r Recoverable[T]) Get() (T, bool) { return r.value, r.lost == nil }

// MustGet returns the value, ignoring presence — only safe after a caller
// has already checked OK(), for call sites where threading the bool
// through would be noise (e.g. chained field access after a guard).
func (r Recoverable[T]) MustGet() T { return r.value }

// Span returns the slot's span: the child's own span if present, or the
// gap's span if missing.
func (r Recoverable[T]) Span() source.Span { return r.span }

// Lost returns the missing-slot diagnostic info, or nil if the slot is present.
func (r Recoverable[T]) Lost() *MissingInfo { return r.lost }
