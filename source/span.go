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

package source

// Span is a half-open byte range `[Start, End)` within a single Source.
// Every CST node and every diagnostic label carries one.
type Span struct {
	SourceID ID
	Start    int
	End      int
}

// NoSpan is the zero Span, used for synthesized nodes with no source location.
var NoSpan = Span{}

// Join returns the smallest Span covering both a and b. Both must share a SourceID;
// if either is the zero Span the other is returned unchanged.
func Join(a, b Span) Span {
	if a == NoSpan {
		return b
	}
	if b == NoSpan {
		return a
	}
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return Span{SourceID: a.SourceID, Start: start, End: end}
}

// Len returns the number of bytes the span covers.
func (sp Span) Len() int {
	if sp.End < sp.Start {
		return 0
	}
	return sp.End - sp.Start
}
