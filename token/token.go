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

// Package token defines the GraphQL lexical token kinds (§3.2), grounded on
// botobag/artemis's graphql/token package but trimmed of its doubly-linked
// Prev/Next chain: the recoverable parser (package parser) needs random
// lookahead and backtracking over a skip-scan, for which a plain slice
// with an index is the simpler idiomatic fit than a linked list built for
// single-direction streaming.
package token

import "github.com/latticeql/lattice/source"

// Kind identifies the lexical category of a Token.
type Kind uint8

const (
	// SOF marks the start of a token stream; lexer.Lex does not emit it.
	SOF Kind = iota
	// EOF is the synthetic token at the end of every token stream.
	EOF
	Name
	IntValue
	FloatValue
	StringValue
	// Punctuator covers the fixed set `! $ & ( ) ... : = @ [ ] { | }`.
	Punctuator
	// Error marks an unrecognized run of input; the parser turns it into a diagnostic.
	Error
)

func (k Kind) String() string {
	switch k {
	case SOF:
		return "<SOF>"
	case EOF:
		return "<EOF>"
	case Name:
		return "Name"
	case IntValue:
		return "Int"
	case FloatValue:
		return "Float"
	case StringValue:
		return "String"
	case Punctuator:
		return "Punctuator"
	case Error:
		return "Error"
	}
	return "Unknown"
}

// Token is one lexical unit. Value holds the decoded literal payload for
// Name/Int/Float/String tokens and the raw punctuator text for Punctuator
// tokens ("{", "...", etc).
type Token struct {
	Kind  Kind
	Span  source.Span
	Value string

	// BlockString is set when a StringValue token was written with the
	// triple-quote block form; the validator/printer treat it the same as
	// any other string, but tooling that round-trips source text needs it.
	BlockString bool
}

// IsPunctuator reports whether the token is the given punctuator text, e.g. tok.IsPunctuator("{").
func (t Token) IsPunctuator(text string) bool {
	return t.Kind == Punctuator && t.Value == text
}

// IsName reports whether the token is a Name with the given literal text — used to match
// keywords, which in GraphQL are not reserved words but ordinary names (§4.2).
func (t Token) IsName(text string) bool {
	return t.Kind == Name && t.Value == text
}
