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

package cst_test

import (
	"testing"

	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/source"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestCST(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CST Suite")
}

var _ = Describe("Recoverable", func() {
	It("reports a present slot's value and OK status", func() {
		r := cst.Present(source.NoSpan, &cst.Name{Value: "x"})
		v, ok := r.Get()
		Expect(ok).Should(BeTrue())
		Expect(r.OK()).Should(BeTrue())
		Expect(v.Value).Should(Equal("x"))
	})

	It("returns the zero value, not a panic, from Get on a missing slot", func() {
		r := cst.Missing[*cst.Name](source.NoSpan, "expected a name", "E0003")
		v, ok := r.Get()
		Expect(ok).Should(BeFalse())
		Expect(r.OK()).Should(BeFalse())
		Expect(v).Should(BeNil())
	})
})

var _ = Describe("TypeName / IsNonNull / Nullable", func() {
	It("unwraps a named type's name", func() {
		named := &cst.NamedType{Name: cst.Present(source.NoSpan, &cst.Name{Value: "Int"})}
		Expect(cst.TypeName(named)).Should(Equal("Int"))
	})

	It("is nil-safe", func() {
		Expect(cst.TypeName(nil)).Should(Equal(""))
	})

	It("reports a non-null wrapper as non-null and unwraps it via Nullable", func() {
		named := &cst.NamedType{Name: cst.Present(source.NoSpan, &cst.Name{Value: "ID"})}
		nonNull := &cst.NonNullType{Inner: named}

		Expect(cst.IsNonNull(nonNull)).Should(BeTrue())
		Expect(cst.IsNonNull(named)).Should(BeFalse())
		Expect(cst.Nullable(nonNull)).Should(Equal(cst.Type(named)))
	})
})

var _ = Describe("Definition", func() {
	It("reports IsExecutable for an operation but not for a type definition", func() {
		opDef := &cst.Definition{Operation: &cst.OperationDefinition{}}
		Expect(opDef.IsExecutable()).Should(BeTrue())

		typeDef := &cst.Definition{TypeDef: &cst.ScalarTypeDefinition{}}
		Expect(typeDef.IsExecutable()).Should(BeFalse())
	})
})
