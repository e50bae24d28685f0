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

// Package lexer implements the GraphQL lexical grammar (§4.1), adapted from
// botobag/artemis's graphql/lexer. The teacher's Lexer is pull-based
// (Advance/Lookahead, one token buffered ahead) because its parser consumes
// tokens through a single forward cursor; the recoverable parser (§4.2)
// needs to skip arbitrary spans during error recovery and rewind, so this
// port lexes the whole input up front into a slice (Lex) rather than
// threading a stateful cursor through both packages.
package lexer

import (
	"strings"

	"github.com/latticeql/lattice/diagnostic"
	"github.com/latticeql/lattice/source"
	"github.com/latticeql/lattice/token"
)

type lexer struct {
	src    *source.Source
	body   []byte
	pos    int
	tokens []token.Token
	diags  []diagnostic.Diagnostic
}

// Lex tokenizes src in full, per §4.1: whitespace, commas, line terminators,
// the UTF-8 BOM, and `#`-comments are discarded. The returned slice always
// ends with a synthetic token.EOF so the parser never needs a separate
// "ran out of tokens" check.
func Lex(src *source.Source) ([]token.Token, []diagnostic.Diagnostic) {
	l := &lexer{src: src, body: src.Body()}
	for {
		l.skipIgnored()
		if l.pos >= len(l.body) {
			break
		}
		l.lexOne()
	}
	l.tokens = append(l.tokens, token.Token{
		Kind: token.EOF,
		Span: source.Span{SourceID: src.ID(), Start: l.pos, End: l.pos},
	})
	return l.tokens, l.diags
}

func (l *lexer) span(start int) source.Span {
	return source.Span{SourceID: l.src.ID(), Start: start, End: l.pos}
}

func (l *lexer) emit(kind token.Kind, start int, value string) {
	l.tokens = append(l.tokens, token.Token{Kind: kind, Span: l.span(start), Value: value})
}

func (l *lexer) skipIgnored() {
	for l.pos < len(l.body) {
		c := l.body[l.pos]
		switch {
		case c == 0xEF && l.pos+2 < len(l.body) && l.body[l.pos+1] == 0xBB && l.body[l.pos+2] == 0xBF:
			// UTF-8 BOM.
			l.pos += 3
		case c == ' ' || c == '\t' || c == ',':
			l.pos++
		case c == '\n':
			l.pos++
		case c == '\r':
			l.pos++
			if l.pos < len(l.body) && l.body[l.pos] == '\n' {
				l.pos++
			}
		case c == '#':
			for l.pos < len(l.body) && l.body[l.pos] != '\n' && l.body[l.pos] != '\r' {
				l.pos++
			}
		default:
			return
		}
	}
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameContinue(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (l *lexer) lexOne() {
	start := l.pos
	c := l.body[l.pos]

	switch {
	case c == '!' || c == '$' || c == '&' || c == '(' || c == ')' || c == ':' ||
		c == '=' || c == '@' || c == '[' || c == ']' || c == '{' || c == '|' || c == '}':
		l.pos++
		l.emit(token.Punctuator, start, string(c))

	case c == '.':
		if l.pos+2 < len(l.body) && l.body[l.pos+1] == '.' && l.body[l.pos+2] == '.' {
			l.pos += 3
			l.emit(token.Punctuator, start, "...")
			return
		}
		l.pos++
		l.errorToken(start, "unexpected character `.`")

	case isNameStart(c):
		l.lexName(start)

	case isDigit(c) || c == '-':
		l.lexNumber(start)

	case c == '"':
		if l.pos+2 < len(l.body) && l.body[l.pos+1] == '"' && l.body[l.pos+2] == '"' {
			l.lexBlockString(start)
		} else {
			l.lexString(start)
		}

	default:
		l.pos++
		l.errorToken(start, "unexpected character")
	}
}

func (l *lexer) errorToken(start int, reason string) {
	l.emit(token.Error, start, l.src.Slice(start, l.pos))
	l.diags = append(l.diags, diagnostic.New(diagnostic.CodeUnexpectedToken, l.span(start), reason))
}

func (l *lexer) lexName(start int) {
	for l.pos < len(l.body) && isNameContinue(l.body[l.pos]) {
		l.pos++
	}
	l.emit(token.Name, start, l.src.Slice(start, l.pos))
}

// lexNumber implements maximal-munch (§3.2): a numeric literal immediately
// followed by a name-start character is a single Error token, not two
// tokens, and Float takes priority over Int whenever a `.` or exponent
// follows the integer part.
func (l *lexer) lexNumber(start int) {
	if l.body[l.pos] == '-' {
		l.pos++
	}
	if l.pos >= len(l.body) || !isDigit(l.body[l.pos]) {
		l.errorToken(start, "invalid number literal")
		return
	}
	if l.body[l.pos] == '0' {
		l.pos++
		if l.pos < len(l.body) && isDigit(l.body[l.pos]) {
			l.consumeDigitsAndFail(start)
			return
		}
	} else {
		l.consumeDigits()
	}

	isFloat := false
	if l.pos < len(l.body) && l.body[l.pos] == '.' {
		isFloat = true
		l.pos++
		if l.pos >= len(l.body) || !isDigit(l.body[l.pos]) {
			l.errorToken(start, "invalid number literal")
			return
		}
		l.consumeDigits()
	}
	if l.pos < len(l.body) && (l.body[l.pos] == 'e' || l.body[l.pos] == 'E') {
		isFloat = true
		l.pos++
		if l.pos < len(l.body) && (l.body[l.pos] == '+' || l.body[l.pos] == '-') {
			l.pos++
		}
		if l.pos >= len(l.body) || !isDigit(l.body[l.pos]) {
			l.errorToken(start, "invalid number literal")
			return
		}
		l.consumeDigits()
	}

	if l.pos < len(l.body) && isNameStart(l.body[l.pos]) {
		l.consumeDigitsAndFail(start)
		return
	}

	if isFloat {
		l.emit(token.FloatValue, start, l.src.Slice(start, l.pos))
	} else {
		l.emit(token.IntValue, start, l.src.Slice(start, l.pos))
	}
}

func (l *lexer) consumeDigits() {
	for l.pos < len(l.body) && isDigit(l.body[l.pos]) {
		l.pos++
	}
}

func (l *lexer) consumeDigitsAndFail(start int) {
	for l.pos < len(l.body) && isNameContinue(l.body[l.pos]) {
		l.pos++
	}
	l.errorToken(start, "a number literal cannot be immediately followed by a name")
}

func (l *lexer) lexString(start int) {
	l.pos++ // opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.body) {
			l.diags = append(l.diags, diagnostic.New(diagnostic.CodeUnterminatedString, l.span(start), "unterminated string literal"))
			l.emit(token.StringValue, start, b.String())
			return
		}
		c := l.body[l.pos]
		if c == '"' {
			l.pos++
			l.emit(token.StringValue, start, b.String())
			return
		}
		if c == '\n' || c == '\r' {
			l.diags = append(l.diags, diagnostic.New(diagnostic.CodeUnterminatedString, l.span(start), "unterminated string literal"))
			l.emit(token.StringValue, start, b.String())
			return
		}
		if c == '\\' {
			l.pos++
			if l.pos >= len(l.body) {
				break
			}
			esc := l.body[l.pos]
			switch esc {
			case '"', '\\', '/':
				b.WriteByte(esc)
				l.pos++
			case 'b':
				b.WriteByte('\b')
				l.pos++
			case 'f':
				b.WriteByte('\f')
				l.pos++
			case 'n':
				b.WriteByte('\n')
				l.pos++
			case 'r':
				b.WriteByte('\r')
				l.pos++
			case 't':
				b.WriteByte('\t')
				l.pos++
			case 'u':
				if l.pos+4 < len(l.body) {
					r := uniCharCode(l.body[l.pos+1], l.body[l.pos+2], l.body[l.pos+3], l.body[l.pos+4])
					if r >= 0 {
						b.WriteRune(r)
						l.pos += 5
						continue
					}
				}
				l.diags = append(l.diags, diagnostic.New(diagnostic.CodeInvalidEscapeSequence, l.span(l.pos), "invalid unicode escape sequence"))
				l.pos++
			default:
				l.diags = append(l.diags, diagnostic.New(diagnostic.CodeInvalidEscapeSequence, l.span(l.pos), "invalid escape sequence"))
				l.pos++
			}
			continue
		}
		b.WriteByte(c)
		l.pos++
	}
}

func (l *lexer) lexBlockString(start int) {
	l.pos += 3
	var raw strings.Builder
	for {
		if l.pos+2 >= len(l.body) {
			l.diags = append(l.diags, diagnostic.New(diagnostic.CodeUnterminatedBlockString, l.span(start), "unterminated block string literal"))
			l.emit(token.StringValue, start, dedentBlockString(raw.String()))
			return
		}
		if l.body[l.pos] == '"' && l.body[l.pos+1] == '"' && l.body[l.pos+2] == '"' {
			l.pos += 3
			tok := token.Token{
				Kind:        token.StringValue,
				Span:        l.span(start),
				Value:       dedentBlockString(raw.String()),
				BlockString: true,
			}
			l.tokens = append(l.tokens, tok)
			return
		}
		if l.body[l.pos] == '\\' && l.pos+3 < len(l.body) && l.body[l.pos+1] == '"' && l.body[l.pos+2] == '"' && l.body[l.pos+3] == '"' {
			raw.WriteString(`"""`)
			l.pos += 4
			continue
		}
		raw.WriteByte(l.body[l.pos])
		l.pos++
	}
}

// dedentBlockString strips common leading indentation and leading/trailing
// blank lines, matching the GraphQL spec's BlockStringValue algorithm.
func dedentBlockString(raw string) string {
	lines := strings.Split(raw, "\n")
	commonIndent := -1
	for i, line := range lines {
		if i == 0 {
			continue
		}
		trimmed := strings.TrimLeft(line, " \t")
		indent := len(line) - len(trimmed)
		if trimmed == "" {
			continue
		}
		if commonIndent == -1 || indent < commonIndent {
			commonIndent = indent
		}
	}
	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= commonIndent {
				lines[i] = lines[i][commonIndent:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " \t")
			}
		}
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func char2hex(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

func uniCharCode(a, b, c, d byte) rune {
	ha, hb, hc, hd := char2hex(a), char2hex(b), char2hex(c), char2hex(d)
	if ha < 0 || hb < 0 || hc < 0 || hd < 0 {
		return -1
	}
	return rune(ha<<12 | hb<<8 | hc<<4 | hd)
}
