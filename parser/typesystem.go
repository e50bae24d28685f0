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

func (p *parser) parseSchemaDefinition(desc *cst.StringValue) *cst.SchemaDefinition {
	start := p.here()
	if desc != nil {
		start = desc.Span()
	}
	p.advance() // `schema`
	directives := p.parseDirectives(true)
	roots, closeSpan := p.parseRootOperationTypes()
	return &cst.SchemaDefinition{
		NodeSpan:           source.Join(start, closeSpan),
		Directives:         directives,
		RootOperationTypes: roots,
	}
}

func (p *parser) parseSchemaExtension() *cst.SchemaExtension {
	start := p.here()
	p.advance() // `extend`
	p.advance() // `schema`
	directives := p.parseDirectives(true)
	var roots []*cst.RootOperationTypeDefinition
	closeSpan := start
	if p.atPunct("{") {
		roots, closeSpan = p.parseRootOperationTypes()
	} else if len(directives) == 0 {
		p.errorAt(p.here(), diagnostic.CodeUnexpectedToken, "expected `{` or a directive after `extend schema`")
	}
	return &cst.SchemaExtension{
		NodeSpan:           source.Join(start, closeSpan),
		Directives:         directives,
		RootOperationTypes: roots,
	}
}

func (p *parser) parseRootOperationTypes() ([]*cst.RootOperationTypeDefinition, source.Span) {
	open, ok := p.expectPunct("{", diagnostic.CodeUnclosedBrace)
	if !ok {
		return nil, open
	}
	var roots []*cst.RootOperationTypeDefinition
	for !p.eof() && !p.atPunct("}") {
		rstart := p.here()
		opType := cst.OperationTypeQuery
		switch {
		case p.atName("query"):
			opType = cst.OperationTypeQuery
		case p.atName("mutation"):
			opType = cst.OperationTypeMutation
		case p.atName("subscription"):
			opType = cst.OperationTypeSubscription
		default:
			p.errorAt(rstart, diagnostic.CodeMissingOperationType, "expected one of `query`, `mutation` or `subscription`")
			p.syncTo([]string{"}", ":"}, nil)
		}
		p.advance()
		p.expectPunct(":", diagnostic.CodeMissingColon)
		nt := p.parseNamedType()
		roots = append(roots, &cst.RootOperationTypeDefinition{
			NodeSpan:      source.Join(rstart, nt.Span()),
			OperationType: opType,
			Type:          cst.Present(nt.Span(), nt),
		})
	}
	closeSpan, ok := p.expectPunct("}", diagnostic.CodeUnclosedBrace)
	if !ok {
		closeSpan = p.here()
	}
	return roots, closeSpan
}

func (p *parser) parseTypeDefinition(desc *cst.StringValue) cst.TypeDefinition {
	start := p.here()
	if desc != nil {
		start = desc.Span()
	}
	switch {
	case p.atName("scalar"):
		p.advance()
		name := p.parseName(diagnostic.CodeMissingName, "expected a scalar type name")
		directives := p.parseDirectives(true)
		end := name.Span()
		if len(directives) > 0 {
			end = directives[len(directives)-1].Span()
		}
		return &cst.ScalarTypeDefinition{NodeSpan: source.Join(start, end), Description: desc, Name: name, Directives: directives}

	case p.atName("type"):
		p.advance()
		name := p.parseName(diagnostic.CodeMissingName, "expected an object type name")
		implements := p.parseImplementsInterfaces()
		directives := p.parseDirectives(true)
		fields, fieldsEnd := p.parseFieldsDefinition()
		end := name.Span()
		switch {
		case fieldsEnd != source.NoSpan:
			end = fieldsEnd
		case len(directives) > 0:
			end = directives[len(directives)-1].Span()
		case len(implements) > 0:
			end = implements[len(implements)-1].Span()
		}
		return &cst.ObjectTypeDefinition{NodeSpan: source.Join(start, end), Description: desc, Name: name, Implements: implements, Directives: directives, Fields: fields}

	case p.atName("interface"):
		p.advance()
		name := p.parseName(diagnostic.CodeMissingName, "expected an interface type name")
		implements := p.parseImplementsInterfaces()
		directives := p.parseDirectives(true)
		fields, fieldsEnd := p.parseFieldsDefinition()
		end := name.Span()
		if fieldsEnd != source.NoSpan {
			end = fieldsEnd
		}
		return &cst.InterfaceTypeDefinition{NodeSpan: source.Join(start, end), Description: desc, Name: name, Implements: implements, Directives: directives, Fields: fields}

	case p.atName("union"):
		p.advance()
		name := p.parseName(diagnostic.CodeMissingName, "expected a union type name")
		directives := p.parseDirectives(true)
		members, membersEnd := p.parseUnionMemberTypes()
		end := name.Span()
		if membersEnd != source.NoSpan {
			end = membersEnd
		}
		return &cst.UnionTypeDefinition{NodeSpan: source.Join(start, end), Description: desc, Name: name, Directives: directives, Members: members}

	case p.atName("enum"):
		p.advance()
		name := p.parseName(diagnostic.CodeMissingName, "expected an enum type name")
		directives := p.parseDirectives(true)
		values, valuesEnd := p.parseEnumValuesDefinition()
		end := name.Span()
		if valuesEnd != source.NoSpan {
			end = valuesEnd
		}
		return &cst.EnumTypeDefinition{NodeSpan: source.Join(start, end), Description: desc, Name: name, Directives: directives, Values: values}

	default: // "input"
		p.advance()
		name := p.parseName(diagnostic.CodeMissingName, "expected an input object type name")
		directives := p.parseDirectives(true)
		fields, fieldsEnd := p.parseInputFieldsDefinition()
		end := name.Span()
		if fieldsEnd != source.NoSpan {
			end = fieldsEnd
		}
		return &cst.InputObjectTypeDefinition{NodeSpan: source.Join(start, end), Description: desc, Name: name, Directives: directives, Fields: fields}
	}
}

func (p *parser) parseTypeExtension() cst.TypeExtension {
	start := p.here()
	p.advance() // `extend`
	switch {
	case p.atName("scalar"):
		p.advance()
		name := p.parseExtendedName()
		directives := p.parseDirectives(true)
		return &cst.ScalarTypeExtension{Extension: cst.Extension{NodeSpan: source.Join(start, p.lastSpan()), Name: name, Directives: directives}}

	case p.atName("type"):
		p.advance()
		name := p.parseExtendedName()
		implements := p.parseImplementsInterfaces()
		directives := p.parseDirectives(true)
		fields, _ := p.parseFieldsDefinition()
		return &cst.ObjectTypeExtension{Extension: cst.Extension{NodeSpan: source.Join(start, p.lastSpan()), Name: name, Directives: directives}, Implements: implements, Fields: fields}

	case p.atName("interface"):
		p.advance()
		name := p.parseExtendedName()
		implements := p.parseImplementsInterfaces()
		directives := p.parseDirectives(true)
		fields, _ := p.parseFieldsDefinition()
		return &cst.InterfaceTypeExtension{Extension: cst.Extension{NodeSpan: source.Join(start, p.lastSpan()), Name: name, Directives: directives}, Implements: implements, Fields: fields}

	case p.atName("union"):
		p.advance()
		name := p.parseExtendedName()
		directives := p.parseDirectives(true)
		members, _ := p.parseUnionMemberTypes()
		return &cst.UnionTypeExtension{Extension: cst.Extension{NodeSpan: source.Join(start, p.lastSpan()), Name: name, Directives: directives}, Members: members}

	case p.atName("enum"):
		p.advance()
		name := p.parseExtendedName()
		directives := p.parseDirectives(true)
		values, _ := p.parseEnumValuesDefinition()
		return &cst.EnumTypeExtension{Extension: cst.Extension{NodeSpan: source.Join(start, p.lastSpan()), Name: name, Directives: directives}, Values: values}

	default: // "input"
		p.advance()
		name := p.parseExtendedName()
		directives := p.parseDirectives(true)
		fields, _ := p.parseInputFieldsDefinition()
		return &cst.InputObjectTypeExtension{Extension: cst.Extension{NodeSpan: source.Join(start, p.lastSpan()), Name: name, Directives: directives}, Fields: fields}
	}
}

// parseExtendedName parses the type name following `extend <kind>`, as a
// plain string rather than a Recoverable slot: a malformed extension target
// still needs a best-effort name for the dependency graph to key on.
func (p *parser) parseExtendedName() string {
	n := p.parseName(diagnostic.CodeMissingName, "expected the name of the type being extended")
	if name, ok := n.Get(); ok {
		return name.Value
	}
	return ""
}

// lastSpan returns the span of the most recently consumed token, used to
// close off a node whose end depends on which optional trailing clauses matched.
func (p *parser) lastSpan() source.Span {
	idx := p.pos
	if idx > 0 {
		idx--
	}
	if idx >= len(p.tokens) {
		idx = len(p.tokens) - 1
	}
	return p.tokens[idx].Span
}

func (p *parser) parseImplementsInterfaces() []*cst.NamedType {
	if !p.atName("implements") {
		return nil
	}
	p.advance()
	p.tryPunct("&")
	var ifaces []*cst.NamedType
	ifaces = append(ifaces, p.parseNamedType())
	for {
		if _, ok := p.tryPunct("&"); ok {
			ifaces = append(ifaces, p.parseNamedType())
			continue
		}
		break
	}
	return ifaces
}

func (p *parser) parseFieldsDefinition() ([]*cst.FieldDefinition, source.Span) {
	if !p.atPunct("{") {
		return nil, source.NoSpan
	}
	p.advance()
	var fields []*cst.FieldDefinition
	for !p.eof() && !p.atPunct("}") {
		fields = append(fields, p.parseFieldDefinition())
	}
	closeSpan, ok := p.expectPunct("}", diagnostic.CodeUnclosedBrace)
	if !ok {
		closeSpan = p.here()
	}
	return fields, closeSpan
}

func (p *parser) parseFieldDefinition() *cst.FieldDefinition {
	start := p.here()
	var desc *cst.StringValue
	if p.peek().Kind == token.StringValue {
		desc = p.parseStringLiteral()
		start = desc.Span()
	}
	name := p.parseName(diagnostic.CodeMissingName, "expected a field name")
	args, _ := p.parseArgumentsDefinition()
	p.expectPunct(":", diagnostic.CodeMissingColon)
	typ := p.parseType()
	directives := p.parseDirectives(true)
	end := typ.Span()
	if len(directives) > 0 {
		end = directives[len(directives)-1].Span()
	}
	return &cst.FieldDefinition{
		NodeSpan:    source.Join(start, end),
		Description: desc,
		Name:        name,
		Arguments:   args,
		Type:        typ,
		Directives:  directives,
	}
}

func (p *parser) parseArgumentsDefinition() ([]*cst.InputValueDefinition, source.Span) {
	if !p.atPunct("(") {
		return nil, source.NoSpan
	}
	p.advance()
	var args []*cst.InputValueDefinition
	for !p.eof() && !p.atPunct(")") {
		args = append(args, p.parseInputValueDefinition())
	}
	closeSpan, ok := p.expectPunct(")", diagnostic.CodeUnclosedParen)
	if !ok {
		closeSpan = p.here()
	}
	return args, closeSpan
}

func (p *parser) parseInputFieldsDefinition() ([]*cst.InputValueDefinition, source.Span) {
	if !p.atPunct("{") {
		return nil, source.NoSpan
	}
	p.advance()
	var fields []*cst.InputValueDefinition
	for !p.eof() && !p.atPunct("}") {
		fields = append(fields, p.parseInputValueDefinition())
	}
	closeSpan, ok := p.expectPunct("}", diagnostic.CodeUnclosedBrace)
	if !ok {
		closeSpan = p.here()
	}
	return fields, closeSpan
}

func (p *parser) parseInputValueDefinition() *cst.InputValueDefinition {
	start := p.here()
	var desc *cst.StringValue
	if p.peek().Kind == token.StringValue {
		desc = p.parseStringLiteral()
		start = desc.Span()
	}
	name := p.parseName(diagnostic.CodeMissingName, "expected an input value name")
	p.expectPunct(":", diagnostic.CodeMissingColon)
	typ := p.parseType()
	var def cst.Value
	if _, ok := p.tryPunct("="); ok {
		v := p.parseValue(true)
		def, _ = v.Get()
	}
	directives := p.parseDirectives(true)
	end := typ.Span()
	if len(directives) > 0 {
		end = directives[len(directives)-1].Span()
	}
	return &cst.InputValueDefinition{
		NodeSpan:     source.Join(start, end),
		Description:  desc,
		Name:         name,
		Type:         typ,
		DefaultValue: def,
		Directives:   directives,
	}
}

func (p *parser) parseUnionMemberTypes() ([]*cst.NamedType, source.Span) {
	if _, ok := p.tryPunct("="); !ok {
		return nil, source.NoSpan
	}
	p.tryPunct("|")
	var members []*cst.NamedType
	members = append(members, p.parseNamedType())
	for {
		if _, ok := p.tryPunct("|"); ok {
			members = append(members, p.parseNamedType())
			continue
		}
		break
	}
	return members, members[len(members)-1].Span()
}

func (p *parser) parseEnumValuesDefinition() ([]*cst.EnumValueDefinition, source.Span) {
	if !p.atPunct("{") {
		return nil, source.NoSpan
	}
	p.advance()
	var values []*cst.EnumValueDefinition
	for !p.eof() && !p.atPunct("}") {
		values = append(values, p.parseEnumValueDefinition())
	}
	closeSpan, ok := p.expectPunct("}", diagnostic.CodeUnclosedBrace)
	if !ok {
		closeSpan = p.here()
	}
	return values, closeSpan
}

func (p *parser) parseEnumValueDefinition() *cst.EnumValueDefinition {
	start := p.here()
	var desc *cst.StringValue
	if p.peek().Kind == token.StringValue {
		desc = p.parseStringLiteral()
		start = desc.Span()
	}
	name := p.parseName(diagnostic.CodeMissingName, "expected an enum value")
	directives := p.parseDirectives(true)
	end := name.Span()
	if len(directives) > 0 {
		end = directives[len(directives)-1].Span()
	}
	return &cst.EnumValueDefinition{NodeSpan: source.Join(start, end), Description: desc, Name: name, Directives: directives}
}

func (p *parser) parseDirectiveDefinition(desc *cst.StringValue) *cst.DirectiveDefinition {
	start := p.here()
	if desc != nil {
		start = desc.Span()
	}
	p.advance() // `directive`
	p.expectPunct("@", diagnostic.CodeMissingName)
	name := p.parseName(diagnostic.CodeMissingName, "expected a directive name")
	args, _ := p.parseArgumentsDefinition()

	repeatable := false
	if p.atName("repeatable") {
		p.advance()
		repeatable = true
	}

	p.expectName("on", diagnostic.CodeMissingOn)
	p.tryPunct("|")
	var locs []cst.DirectiveLocation
	locs = append(locs, p.parseDirectiveLocation())
	for {
		if _, ok := p.tryPunct("|"); ok {
			locs = append(locs, p.parseDirectiveLocation())
			continue
		}
		break
	}

	return &cst.DirectiveDefinition{
		NodeSpan:    source.Join(start, p.lastSpan()),
		Description: desc,
		Name:        name,
		Arguments:   args,
		Repeatable:  repeatable,
		Locations:   locs,
	}
}

// expectName consumes a Name token matching text, or reports code.
func (p *parser) expectName(text string, code diagnostic.Code) {
	if p.atName(text) {
		p.advance()
		return
	}
	p.errorAt(p.here(), code, "expected keyword `"+text+"`")
}

func (p *parser) parseDirectiveLocation() cst.DirectiveLocation {
	t := p.peek()
	loc := cst.DirectiveLocation(t.Value)
	switch loc {
	case cst.LocationQuery, cst.LocationMutation, cst.LocationSubscription, cst.LocationField,
		cst.LocationFragmentDefinition, cst.LocationFragmentSpread, cst.LocationInlineFragment,
		cst.LocationVariableDefinition, cst.LocationSchema, cst.LocationScalar, cst.LocationObject,
		cst.LocationFieldDefinition, cst.LocationArgumentDefinition, cst.LocationInterface,
		cst.LocationUnion, cst.LocationEnum, cst.LocationEnumValue, cst.LocationInputObject,
		cst.LocationInputFieldDef:
		p.advance()
		return loc
	}
	p.errorAt(p.here(), diagnostic.CodeUnexpectedToken, "expected a directive location")
	p.advance()
	return ""
}
