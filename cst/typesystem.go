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

// DirectiveLocation is one of the fixed syntactic locations a directive
// definition may permit (§4.6.2).
type DirectiveLocation string

const (
	LocationQuery              DirectiveLocation = "QUERY"
	LocationMutation           DirectiveLocation = "MUTATION"
	LocationSubscription       DirectiveLocation = "SUBSCRIPTION"
	LocationField              DirectiveLocation = "FIELD"
	LocationFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	LocationFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	LocationInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"
	LocationVariableDefinition DirectiveLocation = "VARIABLE_DEFINITION"
	LocationSchema             DirectiveLocation = "SCHEMA"
	LocationScalar             DirectiveLocation = "SCALAR"
	LocationObject             DirectiveLocation = "OBJECT"
	LocationFieldDefinition    DirectiveLocation = "FIELD_DEFINITION"
	LocationArgumentDefinition DirectiveLocation = "ARGUMENT_DEFINITION"
	LocationInterface          DirectiveLocation = "INTERFACE"
	LocationUnion              DirectiveLocation = "UNION"
	LocationEnum               DirectiveLocation = "ENUM"
	LocationEnumValue          DirectiveLocation = "ENUM_VALUE"
	LocationInputObject        DirectiveLocation = "INPUT_OBJECT"
	LocationInputFieldDef      DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

// RootOperationTypeDefinition binds one operation type to an object type name
// inside a schema definition/extension, e.g. `query: Query`.
type RootOperationTypeDefinition struct {
	NodeSpan      source.Span
	OperationType OperationType
	Type          Recoverable[*NamedType]
}

func (r *RootOperationTypeDefinition) Span() source.Span { return r.NodeSpan }

// SchemaDefinition is `schema { query: Query, ... }`.
type SchemaDefinition struct {
	NodeSpan            source.Span
	Directives          []*Directive
	RootOperationTypes  []*RootOperationTypeDefinition
}

func (s *SchemaDefinition) Span() source.Span { return s.NodeSpan }

// SchemaExtension is `extend schema { ... }`.
type SchemaExtension struct {
	NodeSpan           source.Span
	Directives         []*Directive
	RootOperationTypes []*RootOperationTypeDefinition
}

func (s *SchemaExtension) Span() source.Span { return s.NodeSpan }

// FieldDefinition is a field inside an object/interface type's body.
type FieldDefinition struct {
	NodeSpan    source.Span
	Description *StringValue
	Name        Recoverable[*Name]
	Arguments   []*InputValueDefinition
	Type        Recoverable[Type]
	Directives  []*Directive
}

func (f *FieldDefinition) Span() source.Span { return f.NodeSpan }

// InputValueDefinition is an argument or input-object field: `name: Type = default`.
type InputValueDefinition struct {
	NodeSpan     source.Span
	Description  *StringValue
	Name         Recoverable[*Name]
	Type         Recoverable[Type]
	DefaultValue Value
	Directives   []*Directive
}

func (v *InputValueDefinition) Span() source.Span { return v.NodeSpan }

// EnumValueDefinition is one member of an enum type's body.
type EnumValueDefinition struct {
	NodeSpan    source.Span
	Description *StringValue
	Name        Recoverable[*Name]
	Directives  []*Directive
}

func (v *EnumValueDefinition) Span() source.Span { return v.NodeSpan }

// TypeDefKind distinguishes the six type-system definition kinds so rules
// can check "is this the same kind" without a type switch at every call site.
type TypeDefKind uint8

const (
	KindScalar TypeDefKind = iota
	KindObject
	KindInterface
	KindUnion
	KindEnum
	KindInputObject
)

// TypeDefinition is implemented by every *TypeDefinition variant.
type TypeDefinition interface {
	Node
	TypeName() Recoverable[*Name]
	DefKind() TypeDefKind
	GetDirectives() []*Directive
}

// TypeExtension is implemented by every *TypeExtension variant. Unlike a
// TypeDefinition, extensions don't carry a Description and the name is a
// required grammar slot rather than wrapped in Recoverable — the parser
// can always at least decide which kind of extension it's looking at from
// the keyword alone, so there is less to fail on than with a fresh definition.
type TypeExtension interface {
	Node
	ExtendedTypeName() string
	DefKind() TypeDefKind
	GetDirectives() []*Directive
}

// ScalarTypeDefinition is `scalar Name`.
type ScalarTypeDefinition struct {
	NodeSpan    source.Span
	Description *StringValue
	Name        Recoverable[*Name]
	Directives  []*Directive
}

func (d *ScalarTypeDefinition) Span() source.Span         { return d.NodeSpan }
func (d *ScalarTypeDefinition) TypeName() Recoverable[*Name] { return d.Name }
func (d *ScalarTypeDefinition) DefKind() TypeDefKind       { return KindScalar }
func (d *ScalarTypeDefinition) GetDirectives() []*Directive { return d.Directives }

// ObjectTypeDefinition is `type Name implements I & J { fields }`.
type ObjectTypeDefinition struct {
	NodeSpan    source.Span
	Description *StringValue
	Name        Recoverable[*Name]
	Implements  []*NamedType
	Directives  []*Directive
	Fields      []*FieldDefinition
}

func (d *ObjectTypeDefinition) Span() source.Span         { return d.NodeSpan }
func (d *ObjectTypeDefinition) TypeName() Recoverable[*Name] { return d.Name }
func (d *ObjectTypeDefinition) DefKind() TypeDefKind       { return KindObject }
func (d *ObjectTypeDefinition) GetDirectives() []*Directive { return d.Directives }

// InterfaceTypeDefinition is `interface Name implements I { fields }`.
type InterfaceTypeDefinition struct {
	NodeSpan    source.Span
	Description *StringValue
	Name        Recoverable[*Name]
	Implements  []*NamedType
	Directives  []*Directive
	Fields      []*FieldDefinition
}

func (d *InterfaceTypeDefinition) Span() source.Span         { return d.NodeSpan }
func (d *InterfaceTypeDefinition) TypeName() Recoverable[*Name] { return d.Name }
func (d *InterfaceTypeDefinition) DefKind() TypeDefKind       { return KindInterface }
func (d *InterfaceTypeDefinition) GetDirectives() []*Directive { return d.Directives }

// UnionTypeDefinition is `union Name = A | B`.
type UnionTypeDefinition struct {
	NodeSpan    source.Span
	Description *StringValue
	Name        Recoverable[*Name]
	Directives  []*Directive
	Members     []*NamedType
}

func (d *UnionTypeDefinition) Span() source.Span         { return d.NodeSpan }
func (d *UnionTypeDefinition) TypeName() Recoverable[*Name] { return d.Name }
func (d *UnionTypeDefinition) DefKind() TypeDefKind       { return KindUnion }
func (d *UnionTypeDefinition) GetDirectives() []*Directive { return d.Directives }

// EnumTypeDefinition is `enum Name { A B C }`.
type EnumTypeDefinition struct {
	NodeSpan    source.Span
	Description *StringValue
	Name        Recoverable[*Name]
	Directives  []*Directive
	Values      []*EnumValueDefinition
}

func (d *EnumTypeDefinition) Span() source.Span         { return d.NodeSpan }
func (d *EnumTypeDefinition) TypeName() Recoverable[*Name] { return d.Name }
func (d *EnumTypeDefinition) DefKind() TypeDefKind       { return KindEnum }
func (d *EnumTypeDefinition) GetDirectives() []*Directive { return d.Directives }

// InputObjectTypeDefinition is `input Name { fields }`.
type InputObjectTypeDefinition struct {
	NodeSpan    source.Span
	Description *StringValue
	Name        Recoverable[*Name]
	Directives  []*Directive
	Fields      []*InputValueDefinition
}

func (d *InputObjectTypeDefinition) Span() source.Span         { return d.NodeSpan }
func (d *InputObjectTypeDefinition) TypeName() Recoverable[*Name] { return d.Name }
func (d *InputObjectTypeDefinition) DefKind() TypeDefKind       { return KindInputObject }
func (d *InputObjectTypeDefinition) GetDirectives() []*Directive { return d.Directives }

// --- Extensions ---

// Extension holds the fields common to every TypeExtension variant.
type Extension struct {
	NodeSpan   source.Span
	Name       string
	Directives []*Directive
}

func (e *Extension) Span() source.Span          { return e.NodeSpan }
func (e *Extension) ExtendedTypeName() string    { return e.Name }
func (e *Extension) GetDirectives() []*Directive { return e.Directives }

// ScalarTypeExtension is `extend scalar Name directives`.
type ScalarTypeExtension struct {
	Extension
}

func (*ScalarTypeExtension) DefKind() TypeDefKind { return KindScalar }

// ObjectTypeExtension is `extend type Name implements I { fields }`.
type ObjectTypeExtension struct {
	Extension
	Implements []*NamedType
	Fields     []*FieldDefinition
}

func (*ObjectTypeExtension) DefKind() TypeDefKind { return KindObject }

// InterfaceTypeExtension is `extend interface Name implements I { fields }`.
type InterfaceTypeExtension struct {
	Extension
	Implements []*NamedType
	Fields     []*FieldDefinition
}

func (*InterfaceTypeExtension) DefKind() TypeDefKind { return KindInterface }

// UnionTypeExtension is `extend union Name = A | B`.
type UnionTypeExtension struct {
	Extension
	Members []*NamedType
}

func (*UnionTypeExtension) DefKind() TypeDefKind { return KindUnion }

// EnumTypeExtension is `extend enum Name { A B }`.
type EnumTypeExtension struct {
	Extension
	Values []*EnumValueDefinition
}

func (*EnumTypeExtension) DefKind() TypeDefKind { return KindEnum }

// InputObjectTypeExtension is `extend input Name { fields }`.
type InputObjectTypeExtension struct {
	Extension
	Fields []*InputValueDefinition
}

func (*InputObjectTypeExtension) DefKind() TypeDefKind { return KindInputObject }

// DirectiveDefinition is `directive @name(args) on LOCATION | LOCATION`.
type DirectiveDefinition struct {
	NodeSpan    source.Span
	Description *StringValue
	Name        Recoverable[*Name]
	Arguments   []*InputValueDefinition
	Repeatable  bool
	Locations   []DirectiveLocation
}

func (d *DirectiveDefinition) Span() source.Span { return d.NodeSpan }
