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

package compiler_test

import (
	"testing"

	"github.com/latticeql/lattice/compiler"
	"github.com/latticeql/lattice/source"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestCompiler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Compiler Suite")
}

var _ = Describe("Shell", func() {
	It("reports no diagnostics for a document that type-checks", func() {
		s := compiler.New()
		idA := source.NewID()
		idB := source.NewID()

		s.AddDocument(idA, "type T { x: Int }", false)
		s.AddDocument(idB, "type Q { t: T }", false)
		s.Rebuild()

		Expect(s.Diagnostics(idA)).Should(BeEmpty())
		Expect(s.Diagnostics(idB)).Should(BeEmpty())
	})

	It("invalidates B's cache entry (but not its diagnostics) when A changes in a way B depends on", func() {
		s := compiler.New()
		idA := source.NewID()
		idB := source.NewID()

		s.AddDocument(idA, "type T { x: Int }", false)
		s.AddDocument(idB, "type Q { t: T }", false)
		s.Rebuild()
		Expect(s.Diagnostics(idB)).Should(BeEmpty())

		s.ReplaceDocument(idA, "type T { x: Int x: Int }", false)
		s.Rebuild()

		Expect(s.Diagnostics(idA)).ShouldNot(BeEmpty())
		Expect(s.Diagnostics(idB)).Should(BeEmpty())
	})

	It("drops a document's contributions on RemoveDocument", func() {
		s := compiler.New()
		id := source.NewID()
		s.AddDocument(id, "type T { x: Int }", false)
		s.Rebuild()

		_, ok := s.Document(id)
		Expect(ok).Should(BeTrue())

		s.RemoveDocument(id)
		_, ok = s.Document(id)
		Expect(ok).Should(BeFalse())
		entry := s.Database().Type("T")
		if entry != nil {
			Expect(entry.Def).Should(BeNil())
		}
	})
})
