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

package executor

import (
	"io"

	"github.com/latticeql/lattice/jsonwriter"
)

// WriteTo writes resp's wire encoding (§6.4) using jsonwriter rather than
// encoding/json, mirroring how the teacher's ExecutionResult prefers
// jsonwriter.Stream over the stdlib marshaler for the hot response path.
func (resp *Response) WriteTo(w io.Writer) error {
	stream := jsonwriter.NewStream(w)
	stream.WriteValue(resp)
	return stream.Flush()
}

// MarshalJSONTo implements jsonwriter.ValueMarshaler.
func (resp *Response) MarshalJSONTo(stream *jsonwriter.Stream) error {
	stream.WriteObjectStart()
	wrote := false
	if resp.Data != nil {
		stream.WriteObjectField("data")
		stream.WriteValue(resp.Data)
		wrote = true
	}
	if wrote {
		stream.WriteMore()
	}
	stream.WriteObjectField("errors")
	if len(resp.Errors) == 0 {
		stream.WriteEmptyArray()
	} else {
		stream.WriteArrayStart()
		for i, e := range resp.Errors {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteValue(responseErrorMarshaler{e})
		}
		stream.WriteArrayEnd()
	}
	stream.WriteObjectEnd()
	return stream.Error()
}

// MarshalJSONTo implements jsonwriter.ValueMarshaler for *OrderedMap.
func (m *OrderedMap) MarshalJSONTo(stream *jsonwriter.Stream) error {
	if m == nil {
		stream.WriteNil()
		return stream.Error()
	}
	if len(m.keys) == 0 {
		stream.WriteEmptyObject()
		return stream.Error()
	}
	stream.WriteObjectStart()
	for i, k := range m.keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(k)
		stream.WriteInterface(m.values[k])
	}
	stream.WriteObjectEnd()
	return stream.Error()
}

type responseErrorMarshaler struct{ e ResponseError }

// MarshalJSONTo implements jsonwriter.ValueMarshaler.
func (r responseErrorMarshaler) MarshalJSONTo(stream *jsonwriter.Stream) error {
	stream.WriteObjectStart()
	stream.WriteObjectField("message")
	stream.WriteString(r.e.Message)
	if len(r.e.Path) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("path")
		stream.WriteArrayStart()
		for i, p := range r.e.Path {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteInterface(p)
		}
		stream.WriteArrayEnd()
	}
	stream.WriteObjectEnd()
	return stream.Error()
}
