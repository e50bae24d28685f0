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

package cst

import "github.com/latticeql/lattice/source"

// Name is a bare identifier, the leaf every other node's "name" slot wraps in a Recoverable.
type Name struct {
	NodeSpan source.Span
	Value    string
}

// Span implements Node.
func (n *Name) Span() source.Span { return n.NodeSpan }

// Document is the root of a parsed source file: an ordered list of
// definitions, executable and/or type-system, in source order (§3.3).
type Document struct {
	NodeSpan    source.Span
	Definitions []*Definition
}

// Span implements Node.
func (d *Document) Span() source.Span { return d.NodeSpan }

// Definition is exactly one of: an operation, a fragment, a type
// definition/extension, a schema definition/extension, or a directive
// definition — modeled as a flat struct of optional pointers (idiomatic
// Go's answer to a tagged union) rather than botobag/artemis's
// interface-plus-marker-method Definition, since the dependency graph and
// compiler shell both need to switch on "which kind is this" far more than
// they need polymorphic dispatch on it.
type Definition struct {
	ID DefinitionID

	Operation    *OperationDefinition
	Fragment     *FragmentDefinition
	Schema       *SchemaDefinition
	SchemaExt    *SchemaExtension
	TypeDef      TypeDefinition
	TypeExt      TypeExtension
	DirectiveDef *DirectiveDefinition
}

// Span implements Node.
func (d *Definition) Span() source.Span {
	switch {
	case d.Operation != nil:
		return d.Operation.Span()
	case d.Fragment != nil:
		return d.Fragment.Span()
	case d.Schema != nil:
		return d.Schema.Span()
	case d.SchemaExt != nil:
		return d.SchemaExt.Span()
	case d.TypeDef != nil:
		return d.TypeDef.Span()
	case d.TypeExt != nil:
		return d.TypeExt.Span()
	case d.DirectiveDef != nil:
		return d.DirectiveDef.Span()
	}
	return source.NoSpan
}

// IsExecutable reports whether this definition is an operation or fragment.
func (d *Definition) IsExecutable() bool {
	return d.Operation != nil || d.Fragment != nil
}

// Directive is a single `@name(args...)` application.
type Directive struct {
	NodeSpan  source.Span
	Name      Recoverable[*Name]
	Arguments []*Argument
}

// Span implements Node.
func (d *Directive) Span() source.Span { return d.NodeSpan }

// Argument is one `name: value` pair inside a field's or directive's argument list.
type Argument struct {
	NodeSpan source.Span
	Name     Recoverable[*Name]
	Value    Recoverable[Value]
}

// Span implements Node.
func (a *Argument) Span() source.Span { return a.NodeSpan }

// NamedType is a bare type reference by name (as opposed to a list or non-null wrapper).
type NamedType struct {
	NodeSpan source.Span
	Name     Recoverable[*Name]
}

// Span implements Node.
func (t *NamedType) Span() source.Span { return t.NodeSpan }

func (*NamedType) isType() {}
