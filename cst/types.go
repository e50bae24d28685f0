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

// Type is a type reference: NamedType, ListType, or NonNullType (§3.3).
// A NonNullType wrapping another NonNullType is syntactically unrepresentable
// here because NonNullType.Inner's static type excludes *NonNullType.
type Type interface {
	Node
	isType()
}

// ListType is `[ElemType]`.
type ListType struct {
	NodeSpan             source.Span
	OpenBracket          source.Span
	CloseBracket         source.Span
	ElemType             Recoverable[Type]
}

// Span implements Node.
func (t *ListType) Span() source.Span { return t.NodeSpan }
func (*ListType) isType()             {}

// NonNullableType is any Type legal as the inner type of a NonNullType: a
// NamedType or a ListType, never another NonNullType.
type NonNullableType interface {
	Type
	isNonNullable()
}

func (*NamedType) isNonNullable() {}
func (*ListType) isNonNullable()  {}

// NonNullType is `Inner!`.
type NonNullType struct {
	NodeSpan source.Span
	Bang     source.Span
	Inner    NonNullableType
}

// Span implements Node.
func (t *NonNullType) Span() source.Span { return t.NodeSpan }
func (*NonNullType) isType()             {}

// TypeName returns the leaf name a (possibly wrapped) type reference resolves to,
// or "" if the leaf NamedType's name is itself missing.
func TypeName(t Type) string {
	switch n := t.(type) {
	case *NamedType:
		if name, ok := n.Name.Get(); ok {
			return name.Value
		}
		return ""
	case *ListType:
		if elem, ok := n.ElemType.Get(); ok {
			return TypeName(elem)
		}
		return ""
	case *NonNullType:
		return TypeName(n.Inner)
	}
	return ""
}

// IsNonNull reports whether t is a NonNullType.
func IsNonNull(t Type) bool {
	_, ok := t.(*NonNullType)
	return ok
}

// Nullable strips one NonNullType wrapper, returning t unchanged if it isn't one.
func Nullable(t Type) Type {
	if nn, ok := t.(*NonNullType); ok {
		return nn.Inner
	}
	return t
}
