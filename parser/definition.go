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
	"github.com/latticeql/lattice/token"
)

// parseDefinition dispatches on the lookahead keyword and always parses a
// complete definition when one of the recognized leading keywords (or a
// leading string/`{`) is seen — mode only controls whether a diagnostic is
// attached for being the wrong kind of definition for this document, not
// whether the definition gets parsed at all.
func (p *parser) parseDefinition(mode documentMode) *cst.Definition {
	var description *cst.StringValue
	if p.peek().Kind == token.StringValue {
		description = p.parseStringLiteral()
	}

	switch {
	case description == nil && p.atPunct("{"):
		return p.finishExecutable(mode, &cst.Definition{Operation: p.parseOperationDefinition(false)})

	case description == nil && (p.atName("query") || p.atName("mutation") || p.atName("subscription")):
		return p.finishExecutable(mode, &cst.Definition{Operation: p.parseOperationDefinition(true)})

	case description == nil && p.atName("fragment"):
		return p.finishExecutable(mode, &cst.Definition{Fragment: p.parseFragmentDefinition()})

	case p.atName("extend"):
		return p.finishTypeSystem(mode, p.parseExtension())

	case p.atName("schema"):
		return p.finishTypeSystem(mode, &cst.Definition{Schema: p.parseSchemaDefinition(description)})

	case p.atName("scalar"), p.atName("type"), p.atName("interface"),
		p.atName("union"), p.atName("enum"), p.atName("input"):
		return p.finishTypeSystem(mode, &cst.Definition{TypeDef: p.parseTypeDefinition(description)})

	case p.atName("directive"):
		return p.finishTypeSystem(mode, &cst.Definition{DirectiveDef: p.parseDirectiveDefinition(description)})

	default:
		p.errorAt(p.here(), diagnostic.CodeUnexpectedToken, "expected a definition")
		p.advance()
		return nil
	}
}

func (p *parser) finishExecutable(mode documentMode, def *cst.Definition) *cst.Definition {
	p.assignID(def)
	if mode == typeSystemOnly {
		p.errorAt(def.Span(), diagnostic.CodeUnexpectedToken, "executable definitions are not allowed in a type-system document")
	}
	return def
}

func (p *parser) finishTypeSystem(mode documentMode, def *cst.Definition) *cst.Definition {
	p.assignID(def)
	if mode == executableOnly {
		p.errorAt(def.Span(), diagnostic.CodeUnexpectedToken, "type-system definitions are not allowed in an executable document")
	}
	return def
}

func (p *parser) assignID(def *cst.Definition) {
	def.ID = p.nextDefID
	p.nextDefID++
}

// parseExtension dispatches on the keyword following `extend`.
func (p *parser) parseExtension() *cst.Definition {
	if p.peekAt(1).IsName("schema") {
		return &cst.Definition{SchemaExt: p.parseSchemaExtension()}
	}
	return &cst.Definition{TypeExt: p.parseTypeExtension()}
}
