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

package lexer_test

import (
	"testing"

	"github.com/latticeql/lattice/diagnostic"
	"github.com/latticeql/lattice/lexer"
	"github.com/latticeql/lattice/source"
	"github.com/latticeql/lattice/token"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestLexer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Lexer Suite")
}

func kindsOf(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

var _ = Describe("Lex", func() {
	It("tokenizes a field selection into the expected kind sequence, ending with EOF", func() {
		tokens, diags := lexer.Lex(source.New(`user(id: 1) { name }`))
		Expect(diags).Should(BeEmpty())
		Expect(kindsOf(tokens)).Should(Equal([]token.Kind{
			token.Name,       // user
			token.Punctuator, // (
			token.Name,       // id
			token.Punctuator, // :
			token.IntValue,   // 1
			token.Punctuator, // )
			token.Punctuator, // {
			token.Name,       // name
			token.Punctuator, // }
			token.EOF,
		}))
	})

	It("always terminates with a synthetic EOF token even for empty input", func() {
		tokens, diags := lexer.Lex(source.New(""))
		Expect(diags).Should(BeEmpty())
		Expect(tokens).Should(HaveLen(1))
		Expect(tokens[0].Kind).Should(Equal(token.EOF))
	})

	It("discards whitespace, commas, and comments rather than tokenizing them", func() {
		tokens, diags := lexer.Lex(source.New("# a comment\nfoo, ,\tbar\n"))
		Expect(diags).Should(BeEmpty())
		Expect(kindsOf(tokens)).Should(Equal([]token.Kind{token.Name, token.Name, token.EOF}))
	})

	It("lexes float values with an exponent", func() {
		tokens, _ := lexer.Lex(source.New("1.5e10"))
		Expect(tokens[0].Kind).Should(Equal(token.FloatValue))
		Expect(tokens[0].Value).Should(Equal("1.5e10"))
	})

	It("reports an unterminated string as a diagnostic rather than panicking", func() {
		Expect(func() {
			tokens, diags := lexer.Lex(source.New(`"open forever`))
			Expect(diags).ShouldNot(BeEmpty())
			Expect(diags[0].Code).Should(Equal(diagnostic.CodeUnterminatedString))
			Expect(tokens[len(tokens)-1].Kind).Should(Equal(token.EOF))
		}).ShouldNot(Panic())
	})

	It("reports a string that runs into a line terminator as unterminated", func() {
		_, diags := lexer.Lex(source.New("\"broken\nstring\""))
		Expect(diags).ShouldNot(BeEmpty())
		Expect(diags[0].Code).Should(Equal(diagnostic.CodeUnterminatedString))
	})

	It("lexes an ordinary string value, unescaping simple escapes", func() {
		tokens, diags := lexer.Lex(source.New(`"a\nb"`))
		Expect(diags).Should(BeEmpty())
		Expect(tokens[0].Kind).Should(Equal(token.StringValue))
		Expect(tokens[0].Value).Should(Equal("a\nb"))
	})

	It("never panics on a lone byte that starts no valid token", func() {
		Expect(func() {
			lexer.Lex(source.New("`"))
		}).ShouldNot(Panic())
	})
})
