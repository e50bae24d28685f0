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

func (p *parser) parseStringLiteral() *cst.StringValue {
	t := p.advance()
	return &cst.StringValue{NodeSpan: t.Span, Value: t.Value, Block: t.BlockString}
}

// parseValue parses a Value; constOnly forbids VariableValue, used wherever
// the grammar requires a "const value" (default values, directive/type
// definition arguments — §3.3).
func (p *parser) parseValue(constOnly bool) cst.Recoverable[cst.Value] {
	start := p.here()
	switch p.peek().Kind {
	case token.IntValue:
		t := p.advance()
		return cst.Present[cst.Value](t.Span, &cst.IntValue{NodeSpan: t.Span, Raw: t.Value})
	case token.FloatValue:
		t := p.advance()
		return cst.Present[cst.Value](t.Span, &cst.FloatValue{NodeSpan: t.Span, Raw: t.Value})
	case token.StringValue:
		t := p.advance()
		return cst.Present[cst.Value](t.Span, &cst.StringValue{NodeSpan: t.Span, Value: t.Value, Block: t.BlockString})
	case token.Name:
		switch p.peek().Value {
		case "true":
			t := p.advance()
			return cst.Present[cst.Value](t.Span, &cst.BooleanValue{NodeSpan: t.Span, Value: true})
		case "false":
			t := p.advance()
			return cst.Present[cst.Value](t.Span, &cst.BooleanValue{NodeSpan: t.Span, Value: false})
		case "null":
			t := p.advance()
			return cst.Present[cst.Value](t.Span, &cst.NullValue{NodeSpan: t.Span})
		default:
			t := p.advance()
			return cst.Present[cst.Value](t.Span, &cst.EnumValue{NodeSpan: t.Span, Name: t.Value})
		}
	case token.Punctuator:
		switch p.peek().Value {
		case "$":
			if constOnly {
				p.errorAt(start, diagnostic.CodeMissingValue, "a variable is not allowed here, a const value is expected")
				return cst.Missing[cst.Value](start, "variable not allowed in const context", string(diagnostic.CodeMissingValue))
			}
			return cst.Present[cst.Value](p.here(), p.parseVariableValue())
		case "[":
			return cst.Present[cst.Value](p.here(), p.parseListValue(constOnly))
		case "{":
			return cst.Present[cst.Value](p.here(), p.parseObjectValue(constOnly))
		}
	}
	p.errorAt(start, diagnostic.CodeMissingValue, "expected a value")
	return cst.Missing[cst.Value](start, "expected a value", string(diagnostic.CodeMissingValue))
}

func (p *parser) parseVariableValue() *cst.VariableValue {
	dollar := p.advance() // `$`
	name := p.parseName(diagnostic.CodeMissingName, "expected a variable name after `$`")
	if n, ok := name.Get(); ok {
		return &cst.VariableValue{NodeSpan: source.Join(dollar.Span, n.Span()), Name: n.Value}
	}
	return &cst.VariableValue{NodeSpan: dollar.Span}
}

func (p *parser) parseListValue(constOnly bool) *cst.ListValue {
	open := p.advance() // `[`
	var values []cst.Value
	for !p.eof() && !p.atPunct("]") {
		v := p.parseValue(constOnly)
		if val, ok := v.Get(); ok {
			values = append(values, val)
		} else {
			break
		}
	}
	close, ok := p.expectPunct("]", diagnostic.CodeUnclosedBracket)
	if !ok {
		close = p.here()
	}
	return &cst.ListValue{NodeSpan: source.Join(open.Span, close), Values: values}
}

func (p *parser) parseObjectValue(constOnly bool) *cst.ObjectValue {
	open := p.advance() // `{`
	var fields []*cst.ObjectField
	for !p.eof() && !p.atPunct("}") {
		fields = append(fields, p.parseObjectField(constOnly))
	}
	close, ok := p.expectPunct("}", diagnostic.CodeUnclosedBrace)
	if !ok {
		close = p.here()
	}
	return &cst.ObjectValue{NodeSpan: source.Join(open.Span, close), Fields: fields}
}

func (p *parser) parseObjectField(constOnly bool) *cst.ObjectField {
	start := p.here()
	name := p.parseName(diagnostic.CodeMissingName, "expected an object field name")
	if _, ok := name.Get(); !ok {
		p.syncTo([]string{"}", ":"}, nil)
	}
	p.expectPunct(":", diagnostic.CodeMissingColon)
	value := p.parseValue(constOnly)
	return &cst.ObjectField{NodeSpan: source.Join(start, value.Span()), Name: name, Value: value}
}

// parseArguments parses an optional `(name: value, ...)` list.
func (p *parser) parseArguments(constOnly bool) []*cst.Argument {
	if !p.atPunct("(") {
		return nil
	}
	p.advance()
	var args []*cst.Argument
	for !p.eof() && !p.atPunct(")") {
		args = append(args, p.parseArgument(constOnly))
	}
	p.expectPunct(")", diagnostic.CodeUnclosedParen)
	return args
}

func (p *parser) parseArgument(constOnly bool) *cst.Argument {
	start := p.here()
	name := p.parseName(diagnostic.CodeMissingName, "expected an argument name")
	if _, ok := name.Get(); !ok {
		p.syncTo([]string{")", ":"}, nil)
	}
	p.expectPunct(":", diagnostic.CodeMissingColon)
	value := p.parseValue(constOnly)
	return &cst.Argument{NodeSpan: source.Join(start, value.Span()), Name: name, Value: value}
}

// parseDirectives parses a possibly-empty run of `@name(args)` applications.
func (p *parser) parseDirectives(constOnly bool) []*cst.Directive {
	var dirs []*cst.Directive
	for p.atPunct("@") {
		dirs = append(dirs, p.parseDirective(constOnly))
	}
	return dirs
}

func (p *parser) parseDirective(constOnly bool) *cst.Directive {
	at := p.advance() // `@`
	name := p.parseName(diagnostic.CodeMissingName, "expected a directive name after `@`")
	args := p.parseArguments(constOnly)
	end := name.Span()
	if len(args) > 0 {
		end = args[len(args)-1].Span()
	}
	return &cst.Directive{NodeSpan: source.Join(at.Span, end), Name: name, Arguments: args}
}
