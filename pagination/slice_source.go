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

package pagination

// sliceSource adapts an in-memory slice into a Source, used by the
// package's tests. Cursors are produced by cursorOf applied to
// each element; they are assumed unique within the slice.
type sliceSource[T any] struct {
	items    []T
	cursorOf func(T) string
}

// FromSlice builds a Source walking items in order, identifying each element
// by cursorOf(item).
func FromSlice[T any](items []T, cursorOf func(T) string) Source[T] {
	return &sliceSource[T]{items: items, cursorOf: cursorOf}
}

func (s *sliceSource[T]) indexOf(cursor string) int {
	for i, item := range s.items {
		if s.cursorOf(item) == cursor {
			return i
		}
	}
	return -1
}

func (s *sliceSource[T]) Next(cursor string) (item T, itemCursor string, ok bool) {
	var next int
	if cursor == "" {
		next = 0
	} else if idx := s.indexOf(cursor); idx >= 0 {
		next = idx + 1
	} else {
		return item, "", false
	}
	if next >= len(s.items) {
		return item, "", false
	}
	return s.items[next], s.cursorOf(s.items[next]), true
}

func (s *sliceSource[T]) Prev(cursor string) (item T, itemCursor string, ok bool) {
	var prev int
	if cursor == "" {
		prev = len(s.items) - 1
	} else if idx := s.indexOf(cursor); idx >= 0 {
		prev = idx - 1
	} else {
		return item, "", false
	}
	if prev < 0 {
		return item, "", false
	}
	return s.items[prev], s.cursorOf(s.items[prev]), true
}
