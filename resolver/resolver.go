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

// Package resolver defines the capability contract package executor drives
// (§4.7, §6.3): a thin interface over an application's data layer, kept
// deliberately small enough that graphql/object.go's Fields()/Resolver()
// richer type-system surface isn't needed at all — the database already
// carries the schema shape, so the only thing the executor needs from the
// application is "given a value and a field name, produce the next value".
package resolver

import "context"

// Kind tags which of the three shapes an Intermediate holds.
type Kind uint8

const (
	// KindValue holds an already-JSON-shaped leaf value (scalar, enum,
	// list of leaves, or nil).
	KindValue Kind = iota
	// KindObject holds an opaque runtime value representing a single
	// composite-typed result, to be completed by recursing into its
	// sub-selection.
	KindObject
	// KindCollection holds an ordered list of further Intermediate values,
	// each completed independently (e.g. a list of objects).
	KindCollection
)

// Intermediate is a resolver's result for one field, before the executor's
// CompleteValue step recurses into any sub-selection (§4.7 step 3.4).
type Intermediate struct {
	Kind       Kind
	Value      interface{}    // valid when Kind == KindValue
	Object     interface{}    // valid when Kind == KindObject
	Collection []Intermediate // valid when Kind == KindCollection
}

// Value wraps an already-complete leaf result.
func Value(v interface{}) Intermediate { return Intermediate{Kind: KindValue, Value: v} }

// Object wraps a runtime value to be completed against a sub-selection.
func Object(v interface{}) Intermediate { return Intermediate{Kind: KindObject, Object: v} }

// Collection wraps an ordered list of further intermediates.
func Collection(items []Intermediate) Intermediate {
	return Intermediate{Kind: KindCollection, Collection: items}
}

// Null is the leaf null result.
func Null() Intermediate { return Intermediate{Kind: KindValue, Value: nil} }

// Resolver is the capability package executor needs from an application
// (§4.7). A single Resolver value is shared by every sibling-field goroutine
// spawned for one request, so implementations must be safe for concurrent
// use during query/subscription execution (§5).
type Resolver interface {
	// CanResolve reports whether fieldName is resolvable against value at
	// all, distinguishing "the field doesn't exist here" (unknown_field)
	// from "it resolved to null".
	CanResolve(ctx context.Context, value interface{}, fieldName string) bool

	// Resolve produces the next Intermediate for fieldName on value, given
	// the field's coerced argument map.
	Resolve(ctx context.Context, value interface{}, fieldName string, args map[string]interface{}) (Intermediate, error)
}

// Root is implemented by a Resolver that can hand back the three possible
// root values an operation may execute against.
type Root interface {
	Query() interface{}
	Mutation() interface{}
	Subscription() interface{}
}

// Typename is implemented by a Resolver that can name the concrete object
// type behind a runtime value, used for `__typename` and for resolving
// abstract (interface/union) selections against the database's
// possible-types relation.
type Typename interface {
	Typename(ctx context.Context, value interface{}) string
}
