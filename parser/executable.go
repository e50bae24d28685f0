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

// parseOperationDefinition parses a query/mutation/subscription, or the
// shorthand anonymous-query form when explicitType is false.
func (p *parser) parseOperationDefinition(explicitType bool) *cst.OperationDefinition {
	start := p.here()
	opType := cst.OperationTypeQuery
	if explicitType {
		switch {
		case p.atName("query"):
			opType = cst.OperationTypeQuery
		case p.atName("mutation"):
			opType = cst.OperationTypeMutation
		case p.atName("subscription"):
			opType = cst.OperationTypeSubscription
		default:
			p.errorAt(start, diagnostic.CodeMissingOperationType, "expected one of `query`, `mutation` or `subscription`")
		}
		p.advance()
	}

	var name *cst.Name
	if p.peekIsName() {
		n := p.parseName(diagnostic.CodeMissingName, "")
		name, _ = n.Get()
	}

	var varDefs []*cst.VariableDefinition
	if p.atPunct("(") {
		varDefs = p.parseVariableDefinitions()
	}

	directives := p.parseDirectives(false)
	selSet := p.parseSelectionSetSlot()

	return &cst.OperationDefinition{
		NodeSpan:            source.Join(start, selSet.Span()),
		OperationType:       opType,
		ExplicitType:        explicitType,
		Name:                name,
		VariableDefinitions: varDefs,
		Directives:          directives,
		SelectionSet:        selSet,
	}
}

// peekIsName reports whether the current token could be an operation/fragment
// name — any Name that isn't immediately a `{` or `(` continuing the grammar.
// GraphQL names are not reserved, so this is a plain Name-kind check; the
// caller already consumed the operation-type keyword, if any.
func (p *parser) peekIsName() bool {
	return p.peek().Kind == token.Name
}

func (p *parser) parseVariableDefinitions() []*cst.VariableDefinition {
	p.advance() // `(`
	var defs []*cst.VariableDefinition
	for !p.eof() && !p.atPunct(")") {
		defs = append(defs, p.parseVariableDefinition())
	}
	p.expectPunct(")", diagnostic.CodeUnclosedParen)
	return defs
}

func (p *parser) parseVariableDefinition() *cst.VariableDefinition {
	start := p.here()
	var varName cst.Recoverable[*cst.Name]
	if _, ok := p.tryPunct("$"); ok {
		varName = p.parseName(diagnostic.CodeMissingName, "expected a variable name")
	} else {
		p.errorAt(start, diagnostic.CodeMissingName, "expected `$` to start a variable definition")
		varName = cst.Missing[*cst.Name](start, "expected `$`", string(diagnostic.CodeMissingName))
		p.syncTo([]string{":", ")"}, nil)
	}
	p.expectPunct(":", diagnostic.CodeMissingColon)
	typ := p.parseType()

	var def cst.Value
	if _, ok := p.tryPunct("="); ok {
		v := p.parseValue(true)
		def, _ = v.Get()
	}
	directives := p.parseDirectives(true)

	return &cst.VariableDefinition{
		NodeSpan:     source.Join(start, typ.Span()),
		Variable:     varName,
		Type:         typ,
		DefaultValue: def,
		Directives:   directives,
	}
}

// parseSelectionSetSlot parses a required SelectionSet, recording a Missing
// slot (instead of aborting) if `{` never shows up.
func (p *parser) parseSelectionSetSlot() cst.Recoverable[*cst.SelectionSet] {
	if p.atPunct("{") {
		ss := p.parseSelectionSet()
		return cst.Present(ss.Span(), ss)
	}
	p.errorAt(p.here(), diagnostic.CodeMissingSelectionSet, "expected a selection set")
	return cst.Missing[*cst.SelectionSet](p.here(), "expected a selection set", string(diagnostic.CodeMissingSelectionSet))
}

func (p *parser) parseSelectionSet() *cst.SelectionSet {
	open := p.advance() // `{`
	var sels []cst.Selection
	for !p.eof() && !p.atPunct("}") {
		before := p.pos
		sels = append(sels, p.parseSelection())
		if p.pos == before {
			p.errorAt(p.here(), diagnostic.CodeUnexpectedToken, "expected a field, `...` fragment spread, or `}`")
			p.advance()
		}
	}
	closeSpan, ok := p.expectPunct("}", diagnostic.CodeUnclosedBrace)
	if !ok {
		closeSpan = p.here()
	}
	return &cst.SelectionSet{
		NodeSpan:   source.Join(open.Span, closeSpan),
		OpenBrace:  open.Span,
		CloseBrace: closeSpan,
		Selections: sels,
	}
}

func (p *parser) parseSelection() cst.Selection {
	if p.atPunct("...") {
		return p.parseFragmentSpreadOrInlineFragment()
	}
	return p.parseField()
}

func (p *parser) parseField() *cst.Field {
	start := p.here()
	first := p.parseName(diagnostic.CodeMissingName, "expected a field name")

	var alias *cst.Name
	var name cst.Recoverable[*cst.Name]
	if _, ok := p.tryPunct(":"); ok {
		alias, _ = first.Get()
		name = p.parseName(diagnostic.CodeMissingName, "expected a field name after alias")
	} else {
		name = first
	}

	args := p.parseArguments(false)
	directives := p.parseDirectives(false)

	var selSet *cst.SelectionSet
	if p.atPunct("{") {
		selSet = p.parseSelectionSet()
	}

	end := name.Span()
	switch {
	case selSet != nil:
		end = selSet.Span()
	case len(directives) > 0:
		end = directives[len(directives)-1].Span()
	case len(args) > 0:
		end = args[len(args)-1].Span()
	}

	return &cst.Field{
		NodeSpan:     source.Join(start, end),
		Alias:        alias,
		Name:         name,
		Arguments:    args,
		Directives:   directives,
		SelectionSet: selSet,
	}
}

func (p *parser) parseFragmentSpreadOrInlineFragment() cst.Selection {
	dots := p.advance() // `...`

	if p.atName("on") || p.atPunct("{") || p.atPunct("@") {
		var typeCond *cst.NamedType
		if p.atName("on") {
			p.advance()
			typeCond = p.parseNamedType()
		}
		directives := p.parseDirectives(false)
		selSet := p.parseSelectionSetSlot()
		return &cst.InlineFragment{
			NodeSpan:      source.Join(dots.Span, selSet.Span()),
			TypeCondition: typeCond,
			Directives:    directives,
			SelectionSet:  selSet,
		}
	}

	name := p.parseName(diagnostic.CodeMissingName, "expected a fragment name")
	directives := p.parseDirectives(false)
	end := name.Span()
	if len(directives) > 0 {
		end = directives[len(directives)-1].Span()
	}
	return &cst.FragmentSpread{
		NodeSpan:     source.Join(dots.Span, end),
		FragmentName: name,
		Directives:   directives,
	}
}

func (p *parser) parseFragmentDefinition() *cst.FragmentDefinition {
	start := p.here()
	p.advance() // `fragment`
	name := p.parseName(diagnostic.CodeMissingName, "expected a fragment name")

	var typeCond cst.Recoverable[*cst.NamedType]
	if p.atName("on") {
		p.advance()
		nt := p.parseNamedType()
		typeCond = cst.Present(nt.Span(), nt)
	} else {
		p.errorAt(p.here(), diagnostic.CodeMissingOn, "expected keyword `on`")
		typeCond = cst.Missing[*cst.NamedType](p.here(), "expected `on`", string(diagnostic.CodeMissingOn))
	}

	directives := p.parseDirectives(false)
	selSet := p.parseSelectionSetSlot()

	return &cst.FragmentDefinition{
		NodeSpan:      source.Join(start, selSet.Span()),
		FragmentName:  name,
		TypeCondition: typeCond,
		Directives:    directives,
		SelectionSet:  selSet,
	}
}
