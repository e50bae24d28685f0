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

package db_test

import (
	"testing"

	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/db"
	"github.com/latticeql/lattice/lexer"
	"github.com/latticeql/lattice/parser"
	"github.com/latticeql/lattice/source"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestDatabase(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Database Suite")
}

func parseDoc(text string) *cst.Document {
	src := source.New(text)
	tokens, _ := lexer.Lex(src)
	doc, _ := parser.ParseAny(src.ID(), tokens)
	return doc
}

var _ = Describe("Database", func() {
	It("indexes a type definition and returns its merged field list", func() {
		database := db.New()
		doc := parseDoc("type T { x: Int  y: String }")
		diags := database.Index(doc)
		Expect(diags).Should(BeEmpty())

		entry := database.Type("T")
		Expect(entry).ShouldNot(BeNil())
		Expect(entry.Fields()).Should(HaveLen(2))
	})

	It("merges an extension's fields into the base definition's entry", func() {
		database := db.New()
		database.Index(parseDoc("type T { x: Int }"))
		database.Index(parseDoc("extend type T { y: Int }"))

		entry := database.Type("T")
		Expect(entry.Fields()).Should(HaveLen(2))
	})

	It("reports a diagnostic, not a panic, on a duplicate type name", func() {
		database := db.New()
		database.Index(parseDoc("type T { x: Int }"))
		diags := database.Index(parseDoc("type T { y: Int }"))

		Expect(diags).ShouldNot(BeEmpty())
	})

	It("falls back to conventional root operation type names absent a schema definition", func() {
		database := db.New()
		Expect(database.RootOperationType(cst.OperationTypeQuery)).Should(Equal("Query"))
		Expect(database.RootOperationType(cst.OperationTypeMutation)).Should(Equal("Mutation"))
	})

	It("reports interface implementation through the merged Implements view", func() {
		database := db.New()
		database.Index(parseDoc("interface Node { id: ID! }"))
		database.Index(parseDoc("type User implements Node { id: ID! }"))

		Expect(database.ImplementsInterface("User", "Node")).Should(BeTrue())
		Expect(database.ImplementsInterface("User", "Other")).Should(BeFalse())
	})

	It("forgets a type's own definition on Remove while leaving extensions", func() {
		database := db.New()
		doc := parseDoc("type T { x: Int }")
		database.Index(doc)
		database.Index(parseDoc("extend type T { y: Int }"))

		database.Remove(doc)

		entry := database.Type("T")
		Expect(entry).ShouldNot(BeNil())
		Expect(entry.Def).Should(BeNil())
		Expect(entry.Fields()).Should(HaveLen(1))
	})

	It("lists every type name seen, including extension-only contributions", func() {
		database := db.New()
		database.Index(parseDoc("type T { x: Int }"))
		database.Index(parseDoc("extend type Ghost { y: Int }"))

		Expect(database.TypeNames()).Should(ConsistOf("T", "Ghost"))
	})
})
