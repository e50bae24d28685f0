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

package parser

import (
	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/diagnostic"
	"github.com/latticeql/lattice/source"
	"github.com/latticeql/lattice/token"
)

// parseType parses a type reference: Name, [Type], or either suffixed `!`.
func (p *parser) parseType() cst.Recoverable[cst.Type] {
	start := p.here()
	switch {
	case p.peek().Kind == token.Name:
		return p.parseTrailingBang(p.parseNamedType())
	case p.atPunct("["):
		return p.parseTrailingBang(p.parseListType())
	}
	p.errorAt(start, diagnostic.CodeMissingType, "expected a type")
	return cst.Missing[cst.Type](start, "expected a type", string(diagnostic.CodeMissingType))
}

func (p *parser) parseNamedType() *cst.NamedType {
	name := p.parseName(diagnostic.CodeMissingName, "expected a type name")
	return &cst.NamedType{NodeSpan: name.Span(), Name: name}
}

func (p *parser) parseListType() *cst.ListType {
	open := p.advance() // `[`
	elem := p.parseType()
	closeSpan, ok := p.expectPunct("]", diagnostic.CodeUnclosedBracket)
	if !ok {
		closeSpan = p.here()
	}
	return &cst.ListType{
		NodeSpan:     source.Join(open.Span, closeSpan),
		OpenBracket:  open.Span,
		CloseBracket: closeSpan,
		ElemType:     elem,
	}
}

// parseTrailingBang wraps base in a NonNullType if a `!` follows.
func (p *parser) parseTrailingBang(base cst.NonNullableType) cst.Recoverable[cst.Type] {
	if bang, isBang := p.tryPunct("!"); isBang {
		span := source.Join(base.Span(), bang)
		return cst.Present[cst.Type](span, &cst.NonNullType{NodeSpan: span, Bang: bang, Inner: base})
	}
	return cst.Present[cst.Type](base.Span(), base)
}
