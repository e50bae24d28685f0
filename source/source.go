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

// Package source models the unit a GraphQL document is read from: a stable
// ID plus the bytes the lexer and parser walk. Unlike the linked-token,
// unsafe-pointer-recovered Source that botobag/artemis's graphql/token
// package builds (where a Token can recover its owning Source via an
// sofToken sentinel), every node here carries its ID explicitly in its
// Span. That trades one machine word per span for not needing unsafe.Pointer
// games, which matters once CST nodes start living inside a long-lived,
// incrementally-rebuilt Database (see package db) rather than being thrown
// away after a single parse.
package source

import "github.com/google/uuid"

// ID identifies a source file for the lifetime of a compiler session.
type ID string

// NewID mints a fresh, session-unique source ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Source is a named, addressable body of GraphQL text.
type Source struct {
	id   ID
	name string
	body []byte
}

// Option configures a Source at construction, mirroring the functional-options
// shape botobag/artemis uses for its own token.Source (SourceName, SourceLineOffset, ...).
type Option func(*Source)

// WithName sets the human-readable name reported in diagnostics (e.g. a file path).
func WithName(name string) Option {
	return func(s *Source) { s.name = name }
}

// WithID pins the source to a caller-supplied ID instead of minting one.
func WithID(id ID) Option {
	return func(s *Source) { s.id = id }
}

// New builds a Source from body text, applying any options.
func New(body string, opts ...Option) *Source {
	s := &Source{
		id:   NewID(),
		name: "<graphql>",
		body: []byte(body),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the source's stable identifier.
func (s *Source) ID() ID { return s.id }

// Name returns the source's display name.
func (s *Source) Name() string { return s.name }

// Body returns the underlying bytes. Callers must not mutate the slice.
func (s *Source) Body() []byte { return s.body }

// Text is a convenience accessor returning the body as a string.
func (s *Source) Text() string { return string(s.body) }

// Slice returns the text between two byte offsets, clamped to the body bounds.
func (s *Source) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(s.body) {
		end = len(s.body)
	}
	if start > end {
		return ""
	}
	return string(s.body[start:end])
}

// Position is a 1-indexed line/column pair, matching how editors report cursor positions.
type Position struct {
	Line   int
	Column int
}

// PositionOf computes the line/column of a byte offset by scanning from the start of the body.
// This is O(n) like botobag/artemis's LocationInfoOf; a production incremental compiler would
// cache line-start offsets per Source, but the core's data model (§3.1) does not require it.
func (s *Source) PositionOf(offset int) Position {
	if offset > len(s.body) {
		offset = len(s.body)
	}

	line, col := 1, 1
	for i := 0; i < offset; i++ {
		switch s.body[i] {
		case '\n':
			line++
			col = 1
		case '\r':
			if i+1 < len(s.body) && s.body[i+1] == '\n' {
				continue
			}
			line++
			col = 1
		default:
			col++
		}
	}
	return Position{Line: line, Column: col}
}
