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

// Package pagination drives a Relay-style connection over any cursor-walkable
// data source (§4.9, §6.5). It has no dependency on the rest of the module —
// a resolver calls Paginate directly with whatever Source it has on hand.
package pagination

// Source is a cursor-walkable sequence a resolver adapts its storage to.
// Both directions are separate methods, rather than a single "give me the
// next item in direction D" call, because a real backing store (a SQL
// OFFSET/cursor query, a sorted index scan) usually has genuinely different
// query shapes for "after" and "before".
type Source[T any] interface {
	// Next returns the item immediately following cursor ("" means the
	// start of the sequence), the cursor identifying that item, and false
	// once the sequence is exhausted in the forward direction.
	Next(cursor string) (item T, itemCursor string, ok bool)

	// Prev returns the item immediately preceding cursor ("" means the end
	// of the sequence), the cursor identifying that item, and false once
	// the sequence is exhausted in the backward direction.
	Prev(cursor string) (item T, itemCursor string, ok bool)
}

// Kind distinguishes a forward from a backward page request.
type Kind uint8

const (
	kindForward Kind = iota
	kindBackward
)

// Pagination is the tagged `{ Forward{First, After}, Backward{Last, Before} }`
// variant (§6.5), built via the Forward or Backward constructor.
type Pagination struct {
	kind   Kind
	count  int
	cursor string // After for Forward, Before for Backward
}

// Forward requests up to first items strictly after the item named by after
// (after == "" starts from the beginning of the sequence).
func Forward(first int, after string) Pagination {
	return Pagination{kind: kindForward, count: first, cursor: after}
}

// Backward requests up to last items strictly before the item named by before
// (before == "" starts from the end of the sequence).
func Backward(last int, before string) Pagination {
	return Pagination{kind: kindBackward, count: last, cursor: before}
}

// Edge pairs a node with the cursor identifying its position.
type Edge[T any] struct {
	Node   T
	Cursor string
}

// PageInfo reports where the returned page sits within the full sequence.
type PageInfo struct {
	HasPreviousPage bool
	HasNextPage     bool
	StartCursor     string
	EndCursor       string
}

// Connection is a page of T, Relay-shaped.
type Connection[T any] struct {
	Edges    []Edge[T]
	PageInfo PageInfo
}

// Paginate drives source according to p, fetching one extra item past the
// requested count so the flag for the direction of travel (HasNextPage going
// forward, HasPreviousPage going backward) is known without a second round
// trip; the opposite flag is true exactly when p starts from a cursor (§6.5).
func Paginate[T any](source Source[T], p Pagination) Connection[T] {
	if p.kind == kindBackward {
		return paginateBackward(source, p)
	}
	return paginateForward(source, p)
}

func paginateForward[T any](source Source[T], p Pagination) Connection[T] {
	var edges []Edge[T]
	cursor := p.cursor
	hasNext := false

	for len(edges) < p.count {
		item, next, ok := source.Next(cursor)
		if !ok {
			break
		}
		edges = append(edges, Edge[T]{Node: item, Cursor: next})
		cursor = next
	}
	if _, _, ok := source.Next(cursor); ok {
		hasNext = true
	}

	info := PageInfo{HasPreviousPage: p.cursor != "", HasNextPage: hasNext}
	if len(edges) > 0 {
		info.StartCursor = edges[0].Cursor
		info.EndCursor = edges[len(edges)-1].Cursor
	}
	return Connection[T]{Edges: edges, PageInfo: info}
}

func paginateBackward[T any](source Source[T], p Pagination) Connection[T] {
	var reversed []Edge[T]
	cursor := p.cursor

	for len(reversed) < p.count {
		item, prev, ok := source.Prev(cursor)
		if !ok {
			break
		}
		reversed = append(reversed, Edge[T]{Node: item, Cursor: prev})
		cursor = prev
	}
	hasPrev := false
	if _, _, ok := source.Prev(cursor); ok {
		hasPrev = true
	}

	edges := make([]Edge[T], len(reversed))
	for i, e := range reversed {
		edges[len(reversed)-1-i] = e
	}

	info := PageInfo{HasPreviousPage: hasPrev, HasNextPage: p.cursor != ""}
	if len(edges) > 0 {
		info.StartCursor = edges[0].Cursor
		info.EndCursor = edges[len(edges)-1].Cursor
	}
	return Connection[T]{Edges: edges, PageInfo: info}
}
