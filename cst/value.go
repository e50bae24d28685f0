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

// Value is a literal or variable reference appearing as an argument,
// default value, or input-object field value (§3.3).
type Value interface {
	Node
	isValue()
}

// IntValue is an integer literal, kept as its raw decimal text (coercion to
// a machine int happens in package executor, not here).
type IntValue struct {
	NodeSpan source.Span
	Raw      string
}

func (v *IntValue) Span() source.Span { return v.NodeSpan }
func (*IntValue) isValue()            {}

// FloatValue is a floating-point literal, kept as raw text.
type FloatValue struct {
	NodeSpan source.Span
	Raw      string
}

func (v *FloatValue) Span() source.Span { return v.NodeSpan }
func (*FloatValue) isValue()            {}

// StringValue is a quoted or block-quoted string literal.
type StringValue struct {
	NodeSpan source.Span
	Value    string
	Block    bool
}

func (v *StringValue) Span() source.Span { return v.NodeSpan }
func (*StringValue) isValue()            {}

// BooleanValue is `true` or `false`.
type BooleanValue struct {
	NodeSpan source.Span
	Value    bool
}

func (v *BooleanValue) Span() source.Span { return v.NodeSpan }
func (*BooleanValue) isValue()            {}

// NullValue is the literal `null`.
type NullValue struct {
	NodeSpan source.Span
}

func (v *NullValue) Span() source.Span { return v.NodeSpan }
func (*NullValue) isValue()            {}

// EnumValue is a bare name used as an enum member literal.
type EnumValue struct {
	NodeSpan source.Span
	Name     string
}

func (v *EnumValue) Span() source.Span { return v.NodeSpan }
func (*EnumValue) isValue()            {}

// VariableValue is a `$name` reference.
type VariableValue struct {
	NodeSpan source.Span
	Name     string
}

func (v *VariableValue) Span() source.Span { return v.NodeSpan }
func (*VariableValue) isValue()            {}

// ListValue is `[v1, v2, ...]`.
type ListValue struct {
	NodeSpan source.Span
	Values   []Value
}

func (v *ListValue) Span() source.Span { return v.NodeSpan }
func (*ListValue) isValue()            {}

// ObjectField is one `name: value` pair inside an ObjectValue.
type ObjectField struct {
	NodeSpan source.Span
	Name     Recoverable[*Name]
	Value    Recoverable[Value]
}

func (f *ObjectField) Span() source.Span { return f.NodeSpan }

// ObjectValue is `{ field: value, ... }`.
type ObjectValue struct {
	NodeSpan source.Span
	Fields   []*ObjectField
}

func (v *ObjectValue) Span() source.Span { return v.NodeSpan }
func (*ObjectValue) isValue()            {}
