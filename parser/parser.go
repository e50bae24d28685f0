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

// Package parser implements the recoverable recursive-descent parser (§4.2)
// that turns a token.Token stream into a cst.Document. Unlike
// botobag/artemis's graphql/parser (which returns the first syntax error it
// hits and gives up, see parser.go's unexpected()), every parse method here
// except parseDefinition (which reports and skips a token that cannot start
// any definition, returning nil) always returns a node — on a grammar violation it records a diagnostic
// and fills the offending slot with cst.Missing, then resynchronizes at the
// nearest safe token instead of aborting the whole document.
package parser

import (
	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/diagnostic"
	"github.com/latticeql/lattice/source"
	"github.com/latticeql/lattice/token"
)

// parser holds the mutable state threaded through every parseX method.
type parser struct {
	src       source.ID
	tokens    []token.Token
	pos       int
	nextDefID cst.DefinitionID
	diags     []diagnostic.Diagnostic
}

// ParseExecutable parses tok as an executable document: only operations and
// fragments are accepted; a type-system definition is reported as unexpected
// but otherwise consumed so that the rest of the document still parses.
func ParseExecutable(id source.ID, tokens []token.Token) (*cst.Document, []diagnostic.Diagnostic) {
	p := &parser{src: id, tokens: tokens}
	return p.parseDocument(executableOnly), p.diags
}

// ParseTypeSystem parses tok as a type-system document: only schema,
// type, and directive definitions/extensions are accepted.
func ParseTypeSystem(id source.ID, tokens []token.Token) (*cst.Document, []diagnostic.Diagnostic) {
	p := &parser{src: id, tokens: tokens}
	return p.parseDocument(typeSystemOnly), p.diags
}

// ParseAny parses tok as a mixed document, accepting any definition kind —
// the permissive entry point a schema-and-query-in-one-file tool would use.
func ParseAny(id source.ID, tokens []token.Token) (*cst.Document, []diagnostic.Diagnostic) {
	p := &parser{src: id, tokens: tokens}
	return p.parseDocument(anyDefinition), p.diags
}

// documentMode restricts which definition kinds parseDefinition accepts
// before reporting CodeUnexpectedToken on the rest.
type documentMode uint8

const (
	anyDefinition documentMode = iota
	executableOnly
	typeSystemOnly
)

func (p *parser) parseDocument(mode documentMode) *cst.Document {
	start := p.pos
	doc := &cst.Document{}
	for !p.eof() {
		before := p.pos
		def := p.parseDefinition(mode)
		if def != nil {
			doc.Definitions = append(doc.Definitions, def)
		}
		if p.pos == before {
			// No production matched and nothing was consumed; force progress.
			p.errorAt(p.peek().Span, diagnostic.CodeUnexpectedToken, "unexpected token while looking for a definition")
			p.advance()
		}
	}
	doc.NodeSpan = p.spanFrom(start)
	return doc
}

func (p *parser) spanFrom(start int) source.Span {
	if len(p.tokens) == 0 {
		return source.NoSpan
	}
	startSpan := p.tokens[start].Span
	end := p.pos
	if end > 0 {
		end--
	}
	return source.Join(startSpan, p.tokens[end].Span)
}

// --- token stream primitives ---

func (p *parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *parser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.tokens)-1 || t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *parser) eof() bool {
	return p.peek().Kind == token.EOF
}

func (p *parser) atPunct(text string) bool {
	return p.peek().IsPunctuator(text)
}

func (p *parser) atName(text string) bool {
	return p.peek().IsName(text)
}

func (p *parser) here() source.Span {
	return p.peek().Span
}

func (p *parser) errorAt(span source.Span, code diagnostic.Code, message string) {
	p.diags = append(p.diags, diagnostic.New(code, span, message))
}

// expectPunct consumes the given punctuator or reports code at the current
// position without consuming anything, returning ok=false.
func (p *parser) expectPunct(text string, code diagnostic.Code) (source.Span, bool) {
	if p.atPunct(text) {
		t := p.advance()
		return t.Span, true
	}
	p.errorAt(p.here(), code, "expected `"+text+"`")
	return p.here(), false
}

// tryPunct consumes the given punctuator if present, reporting nothing otherwise.
func (p *parser) tryPunct(text string) (source.Span, bool) {
	if p.atPunct(text) {
		t := p.advance()
		return t.Span, true
	}
	return source.NoSpan, false
}

// parseName consumes a Name token, or records a Missing slot with reason.
// On failure it also consumes the offending token, the same way every other
// mandatory production here guarantees forward progress, so a caller whose
// own loop checks "did parseSelection/parseDefinition consume anything" never
// sees a false no-progress reading and double-reports the same token.
func (p *parser) parseName(code diagnostic.Code, why string) cst.Recoverable[*cst.Name] {
	if p.peek().Kind == token.Name {
		t := p.advance()
		return cst.Present(t.Span, &cst.Name{NodeSpan: t.Span, Value: t.Value})
	}
	p.errorAt(p.here(), code, why)
	missing := cst.Missing[*cst.Name](p.here(), why, string(code))
	p.advance()
	return missing
}

// syncTo advances until the current token is one of the given punctuators,
// a name in names, or EOF — the resynchronization point after a production
// gives up partway through (§4.2).
func (p *parser) syncTo(puncts []string, names []string) {
	for !p.eof() {
		for _, s := range puncts {
			if p.atPunct(s) {
				return
			}
		}
		for _, n := range names {
			if p.atName(n) {
				return
			}
		}
		p.advance()
	}
}
