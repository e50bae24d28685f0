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

	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/db"
	"github.com/latticeql/lattice/diagnostic"
	"github.com/latticeql/lattice/lexer"
	"github.com/latticeql/lattice/parser"
	"github.com/latticeql/lattice/source"
	"github.com/latticeql/lattice/validator"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestValidatorTypeRules(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validator TypeRules Suite")
}

func indexText(database *db.Database, text string) *cst.Document {
	src := source.New(text)
	tokens, _ := lexer.Lex(src)
	doc, _ := parser.ParseAny(src.ID(), tokens)
	database.Index(doc)
	return doc
}

func codesOf(diags []diagnostic.Diagnostic) []diagnostic.Code {
	out := make([]diagnostic.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

var _ = Describe("ValidateTypeSystem", func() {
	It("flags a field name repeated across a type's own definition and its extension", func() {
		database := db.New()
		indexText(database, "type T { x: Int }")
		indexText(database, "extend type T { x: String }")

		diags := validator.ValidateTypeSystem(database, validator.DefaultTypeRules())
		Expect(codesOf(diags)).Should(ContainElement(diagnostic.CodeDuplicateFieldName))
	})

	It("flags a union with no members", func() {
		database := db.New()
		indexText(database, "union U")

		diags := validator.ValidateTypeSystem(database, validator.DefaultTypeRules())
		Expect(codesOf(diags)).Should(ContainElement(diagnostic.CodeUnionNoMembers))
	})

	It("flags an enum with no values", func() {
		database := db.New()
		indexText(database, "enum E")

		diags := validator.ValidateTypeSystem(database, validator.DefaultTypeRules())
		Expect(codesOf(diags)).Should(ContainElement(diagnostic.CodeEnumNoValues))
	})

	It("accepts a covariant interface implementation (nullable tightened to non-null)", func() {
		database := db.New()
		indexText(database, "interface Named { name: String }")
		indexText(database, "type User implements Named { name: String! }")

		diags := validator.ValidateTypeSystem(database, validator.DefaultTypeRules())
		Expect(diags).Should(BeEmpty())
	})

	It("flags a missing interface field", func() {
		database := db.New()
		indexText(database, "interface Node { id: ID! }")
		indexText(database, "type Widget implements Node { name: String }")

		diags := validator.ValidateTypeSystem(database, validator.DefaultTypeRules())
		Expect(codesOf(diags)).Should(ContainElement(diagnostic.CodeMissingInterfaceField))
	})

	It("flags an implementing field narrowing the interface's argument type", func() {
		database := db.New()
		indexText(database, "interface Searchable { find(term: String!): Boolean! }")
		indexText(database, "type Catalog implements Searchable { find(term: Int!): Boolean! }")

		diags := validator.ValidateTypeSystem(database, validator.DefaultTypeRules())
		Expect(codesOf(diags)).Should(ContainElement(diagnostic.CodeArgumentTypeMismatch))
	})

})
