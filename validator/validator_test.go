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

package validator_test

import (
	"testing"

	"github.com/latticeql/lattice/db"
	"github.com/latticeql/lattice/diagnostic"
	"github.com/latticeql/lattice/validator"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestValidator(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validator Suite")
}

var _ = Describe("Validate", func() {
	It("does not crash on a self-referential fragment spread, and NoFragmentCycles reports it", func() {
		database := db.New()
		indexText(database, "type Query { name: String }")
		doc := indexText(database, "{ ...Self }\nfragment Self on Query { name ...Self }")

		var diags []diagnostic.Diagnostic
		Expect(func() {
			diags = validator.Validate(database, doc, validator.DefaultRules())
		}).ShouldNot(Panic())
		Expect(codesOf(diags)).Should(ContainElement(diagnostic.CodeFragmentCycle))
	})

	It("does not crash on a pair of mutually recursive fragments", func() {
		database := db.New()
		indexText(database, "type Query { name: String }")
		doc := indexText(database,
			"{ ...A }\nfragment A on Query { name ...B }\nfragment B on Query { name ...A }")

		Expect(func() {
			validator.Validate(database, doc, validator.DefaultRules())
		}).ShouldNot(Panic())
	})

	It("flags two sibling fields at the same response key naming different fields", func() {
		database := db.New()
		indexText(database, "type Query { a: String b: String }")
		doc := indexText(database, "{ x: a x: b }")

		diags := validator.Validate(database, doc, validator.DefaultRules())
		Expect(codesOf(diags)).Should(ContainElement(diagnostic.CodeFieldMergeConflict))
	})

	It("flags the same field requested twice with different arguments under one alias", func() {
		database := db.New()
		indexText(database, "type Query { a(n: Int): String }")
		doc := indexText(database, "{ x: a(n: 1) x: a(n: 2) }")

		diags := validator.Validate(database, doc, validator.DefaultRules())
		Expect(codesOf(diags)).Should(ContainElement(diagnostic.CodeFieldMergeConflict))
	})

	It("does not flag two identical field selections under the same alias", func() {
		database := db.New()
		indexText(database, "type Query { a(n: Int): String }")
		doc := indexText(database, "{ x: a(n: 1) x: a(n: 1) }")

		diags := validator.Validate(database, doc, validator.DefaultRules())
		Expect(codesOf(diags)).ShouldNot(ContainElement(diagnostic.CodeFieldMergeConflict))
	})

	It("flags a fragment spread whose type condition can never overlap the enclosing type", func() {
		database := db.New()
		indexText(database, "type Query { author: Person }\ntype Person { name: String }\ntype Product { title: String }")
		doc := indexText(database, "{ author { ... on Product { title } } }")

		diags := validator.Validate(database, doc, validator.DefaultRules())
		Expect(codesOf(diags)).Should(ContainElement(diagnostic.CodeFragmentSpreadImpossible))
	})

	It("flags a non-null variable used where a nullable argument expects a different type", func() {
		database := db.New()
		indexText(database, "type Query { a(n: Int): String }")
		doc := indexText(database, "query Q($n: String!) { a(n: $n) }")

		diags := validator.Validate(database, doc, validator.DefaultRules())
		Expect(codesOf(diags)).Should(ContainElement(diagnostic.CodeVariableTypeMismatch))
	})

	It("allows a nullable variable with a non-null default where a non-null argument is expected", func() {
		database := db.New()
		indexText(database, "type Query { a(n: Int!): String }")
		doc := indexText(database, "query Q($n: Int = 1) { a(n: $n) }")

		diags := validator.Validate(database, doc, validator.DefaultRules())
		Expect(codesOf(diags)).ShouldNot(ContainElement(diagnostic.CodeVariableTypeMismatch))
	})
})
