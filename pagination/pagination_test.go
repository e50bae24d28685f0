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

package pagination_test

import (
	"testing"

	"github.com/latticeql/lattice/pagination"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestPagination(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pagination Suite")
}

var letters = []string{"a", "b", "c", "d", "e", "f", "g"}

func identity(s string) string { return s }

var _ = Describe("Paginate", func() {
	It("returns the first page in forward mode", func() {
		source := pagination.FromSlice(letters, identity)
		conn := pagination.Paginate[string](source, pagination.Forward(3, ""))

		Expect(conn.Edges).Should(HaveLen(3))
		Expect(conn.Edges[0].Node).Should(Equal("a"))
		Expect(conn.Edges[2].Node).Should(Equal("c"))
		Expect(conn.PageInfo.HasPreviousPage).Should(BeFalse())
		Expect(conn.PageInfo.HasNextPage).Should(BeTrue())
		Expect(conn.PageInfo.StartCursor).Should(Equal("a"))
		Expect(conn.PageInfo.EndCursor).Should(Equal("c"))
	})

	It("walks forward from a middle cursor", func() {
		source := pagination.FromSlice(letters, identity)
		conn := pagination.Paginate[string](source, pagination.Forward(3, "c"))

		Expect(conn.Edges).Should(HaveLen(3))
		Expect(conn.Edges[0].Node).Should(Equal("d"))
		Expect(conn.Edges[2].Node).Should(Equal("f"))
		Expect(conn.PageInfo.HasPreviousPage).Should(BeTrue())
		Expect(conn.PageInfo.HasNextPage).Should(BeTrue())
	})

	It("reports no next page once the source is exhausted", func() {
		source := pagination.FromSlice(letters, identity)
		conn := pagination.Paginate[string](source, pagination.Forward(10, ""))

		Expect(conn.Edges).Should(HaveLen(7))
		Expect(conn.PageInfo.HasNextPage).Should(BeFalse())
		Expect(conn.PageInfo.EndCursor).Should(Equal("g"))
	})

	It("returns the last page in backward mode", func() {
		source := pagination.FromSlice(letters, identity)
		conn := pagination.Paginate[string](source, pagination.Backward(3, ""))

		Expect(conn.Edges).Should(HaveLen(3))
		Expect(conn.Edges[0].Node).Should(Equal("e"))
		Expect(conn.Edges[2].Node).Should(Equal("g"))
		Expect(conn.PageInfo.HasNextPage).Should(BeFalse())
		Expect(conn.PageInfo.HasPreviousPage).Should(BeTrue())
	})

	It("walks backward from a middle cursor", func() {
		source := pagination.FromSlice(letters, identity)
		conn := pagination.Paginate[string](source, pagination.Backward(2, "e"))

		Expect(conn.Edges).Should(HaveLen(2))
		Expect(conn.Edges[0].Node).Should(Equal("c"))
		Expect(conn.Edges[1].Node).Should(Equal("d"))
		Expect(conn.PageInfo.HasNextPage).Should(BeTrue())
	})
})
