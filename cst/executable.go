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

// OperationType distinguishes query/mutation/subscription (§3.3). An
// operation with no explicit operation-type keyword is parsed as
// OperationTypeQuery ("query { ... }" == "{ ... }").
type OperationType string

const (
	OperationTypeQuery        OperationType = "query"
	OperationTypeMutation     OperationType = "mutation"
	OperationTypeSubscription OperationType = "subscription"
)

// OperationDefinition is a query/mutation/subscription, named or anonymous.
type OperationDefinition struct {
	NodeSpan            source.Span
	OperationType       OperationType
	ExplicitType        bool // false for the shorthand `{ ... }` form
	Name                *Name
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        Recoverable[*SelectionSet]
}

func (o *OperationDefinition) Span() source.Span { return o.NodeSpan }

// VariableDefinition is `$name: Type = default`.
type VariableDefinition struct {
	NodeSpan     source.Span
	Variable     Recoverable[*Name] // name without the leading `$`
	Type         Recoverable[Type]
	DefaultValue Value // nil if absent
	Directives   []*Directive
}

func (v *VariableDefinition) Span() source.Span { return v.NodeSpan }

// SelectionSet is `{ selection... }`; OpenBrace/CloseBrace let an unclosed
// selection set be reported with both anchors (§4.2).
type SelectionSet struct {
	NodeSpan   source.Span
	OpenBrace  source.Span
	CloseBrace source.Span
	Selections []Selection
}

func (s *SelectionSet) Span() source.Span { return s.NodeSpan }

// Selection is a Field, FragmentSpread, or InlineFragment.
type Selection interface {
	Node
	isSelection()
}

// Field is `alias: name(args) directives { selectionSet }`.
type Field struct {
	NodeSpan     source.Span
	Alias        *Name // nil if no alias
	Name         Recoverable[*Name]
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet // nil for leaf fields
}

func (f *Field) Span() source.Span { return f.NodeSpan }
func (*Field) isSelection()        {}

// ResponseKey is the alias if present, else the field name — the key §4.7
// groups same-key selections under.
func (f *Field) ResponseKey() string {
	if f.Alias != nil {
		return f.Alias.Value
	}
	if name, ok := f.Name.Get(); ok {
		return name.Value
	}
	return ""
}

// FragmentSpread is `...name directives`.
type FragmentSpread struct {
	NodeSpan     source.Span
	FragmentName Recoverable[*Name]
	Directives   []*Directive
}

func (s *FragmentSpread) Span() source.Span { return s.NodeSpan }
func (*FragmentSpread) isSelection()        {}

// InlineFragment is `... on TypeCondition directives { selectionSet }`, with
// an optional type condition.
type InlineFragment struct {
	NodeSpan      source.Span
	TypeCondition *NamedType // nil if omitted
	Directives    []*Directive
	SelectionSet  Recoverable[*SelectionSet]
}

func (f *InlineFragment) Span() source.Span { return f.NodeSpan }
func (*InlineFragment) isSelection()        {}

// FragmentDefinition is `fragment Name on TypeCondition directives { selectionSet }`.
type FragmentDefinition struct {
	NodeSpan      source.Span
	FragmentName  Recoverable[*Name]
	TypeCondition Recoverable[*NamedType]
	Directives    []*Directive
	SelectionSet  Recoverable[*SelectionSet]
}

func (f *FragmentDefinition) Span() source.Span { return f.NodeSpan }
