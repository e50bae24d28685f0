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

package diagnostic

// The closed catalogue (§4.3, §6.6). Codes are grouped the same way the
// toolchain's Rust ancestor grouped them: syntax (E0001-E0058), semantic
// type-system (E0100-E0127), value coercion (E0200-E0209), and executable
// rules (E0300+). Catalogue is a map purely for Enumerate/lookup by tooling;
// call sites still construct Diagnostic values with diagnostic.New and a
// named Code constant below, never a bare string literal.
var Catalogue = map[Code]string{
	// Syntax / missing-token errors.
	CodeUnexpectedToken:        "unexpected token",
	CodeUnexpectedEOF:          "unexpected end of input",
	CodeMissingName:            "expected a name",
	CodeMissingColon:           "expected `:`",
	CodeMissingOperationType:   "expected one of `query`, `mutation` or `subscription`",
	CodeUnclosedBrace:          "unclosed `{`",
	CodeUnclosedParen:          "unclosed `(`",
	CodeUnclosedBracket:        "unclosed `[`",
	CodeMissingEquals:          "expected `=`",
	CodeMissingOn:              "expected keyword `on`",
	CodeMissingSelectionSet:    "expected a selection set",
	CodeMissingType:            "expected a type",
	CodeMissingValue:           "expected a value",
	CodeInvalidNumberLiteral:   "invalid number literal",
	CodeUnterminatedString:     "unterminated string literal",
	CodeInvalidEscapeSequence:  "invalid escape sequence",
	CodeUnterminatedBlockString: "unterminated block string literal",

	// Semantic / type-system errors.
	CodeDuplicateTypeName:          "the type `{name}` is defined more than once",
	CodeDuplicateDirectiveName:     "the directive `@{name}` is defined more than once",
	CodeUndefinedType:              "type `{name}` is not defined",
	CodeExtensionKindMismatch:      "`extend` target `{name}` is not a {kind}",
	CodeReservedName:               "names starting with `__` are reserved for introspection",
	CodeFieldNotOutputType:         "the type of field `{field}` must be an output type",
	CodeInputValueNotInputType:     "the type of input value `{name}` must be an input type",
	CodeInterfaceNotImplemented:    "`{type}` claims to implement interface `{interface}` but is missing field(s)",
	CodeMissingInterfaceField:      "interface `{interface}` requires field `{field}`, not found on `{type}`",
	CodeMissingInterfaceArgument:   "interface field `{interface}.{field}` requires argument `{argument}`",
	CodeArgumentTypeMismatch:       "argument `{argument}` on `{type}.{field}` must have the same type as the interface it implements",
	CodeExtraRequiredArgument:      "field `{type}.{field}` adds required argument `{argument}` not present on the interface it implements",
	CodeFieldNotCovariant:          "field `{type}.{field}` type is not a valid covariant override of the interface field's type",
	CodeTransitiveInterfaceMissing: "`{type}` must also implement `{interface}` transitively",
	CodeUnionNoMembers:             "union `{name}` must declare at least one member type",
	CodeUnionDuplicateMember:       "union `{name}` lists member `{member}` more than once",
	CodeUnionMemberNotObject:       "union member `{member}` of `{name}` is not an object type",
	CodeEnumNoValues:               "enum `{name}` must declare at least one value",
	CodeEnumDuplicateValue:         "enum `{name}` lists value `{value}` more than once",
	CodeInputObjectCycle:           "input object `{name}` is part of a non-null reference cycle",
	CodeDirectiveLocationNotAllowed: "directive `@{name}` is not allowed at this location",
	CodeUndefinedDirective:         "directive `@{name}` is not defined",
	CodeDuplicateFieldName:         "field `{field}` is defined more than once on type `{name}`",

	// Value coercion errors.
	CodeNullIntoNonNull:      "null cannot be used for a non-null value of type `{type}`",
	CodeValueShapeMismatch:   "{value} is not a valid `{type}`",
	CodeUndeclaredEnumValue:  "`{value}` is not a member of enum `{type}`",
	CodeMissingRequiredField: "input object `{type}` is missing required field `{field}`",
	CodeUnknownInputField:    "`{field}` is not a field of input object `{type}`",
	CodeListShapeMismatch:    "expected a list for type `{type}`",
	CodeDuplicateInputField:  "input object field `{field}` is provided more than once",
	CodeInvalidLiteralKind:   "a {kind} literal cannot be coerced into `{type}`",
	CodeVariableNotDefined:   "variable `${name}` is not defined in this operation",
	CodeUsedUndefinedVar:     "variable `${name}` is used but never declared",

	// Executable rule errors.
	CodeDuplicateOperationName:  "the operation name `{name}` is not unique",
	CodeLoneAnonymousOperation:  "this anonymous operation must be the only defined operation",
	CodeFieldMergeConflict:      "fields at response key `{key}` cannot be merged: {reason}",
	CodeUndefinedField:          "field `{field}` is not defined on type `{type}`",
	CodeDuplicateArgument:       "argument `{name}` is provided more than once",
	CodeUndefinedArgument:       "argument `{name}` is not defined on `{type}.{field}`",
	CodeMissingRequiredArgument: "required argument `{name}` of `{type}.{field}` is not provided",
	CodeRequiredSubselection:    "field `{field}` of type `{type}` must have a selection set",
	CodeNoSubselectionAllowed:   "field `{field}` of leaf type `{type}` must not have a selection set",
	CodeDuplicateFragmentName:   "the fragment name `{name}` is not unique",
	CodeUndefinedFragment:       "fragment `{name}` is not defined",
	CodeFragmentOnNonComposite:  "fragment `{name}` cannot condition on non-composite type `{type}`",
	CodeUnusedFragment:          "fragment `{name}` is never used",
	CodeFragmentCycle:           "fragment `{name}` is part of a spread cycle",
	CodeFragmentSpreadImpossible: "fragment `{name}` can never be spread here: no overlap between `{parent}` and `{condition}`",
	CodeDuplicateVariable:       "the variable `${name}` is declared more than once",
	CodeVariableNotInputType:   "variable `${name}` must have an input type",
	CodeUnusedVariable:         "variable `${name}` is never used",
	CodeVariableTypeMismatch:   "variable `${name}` of type `{varType}` cannot be used where `{locType}` is expected",
}

const (
	CodeUnexpectedToken          Code = "E0001"
	CodeUnexpectedEOF            Code = "E0002"
	CodeMissingName              Code = "E0003"
	CodeMissingColon             Code = "E0004"
	CodeMissingOperationType     Code = "E0005"
	CodeUnclosedBrace            Code = "E0006"
	CodeUnclosedParen            Code = "E0007"
	CodeUnclosedBracket          Code = "E0008"
	CodeMissingEquals            Code = "E0009"
	CodeMissingOn                Code = "E0010"
	CodeMissingSelectionSet      Code = "E0011"
	CodeMissingType              Code = "E0012"
	CodeMissingValue             Code = "E0013"
	CodeInvalidNumberLiteral     Code = "E0014"
	CodeUnterminatedString       Code = "E0015"
	CodeInvalidEscapeSequence    Code = "E0016"
	CodeUnterminatedBlockString  Code = "E0017"

	CodeDuplicateTypeName          Code = "E0100"
	CodeDuplicateDirectiveName     Code = "E0101"
	CodeUndefinedType              Code = "E0102"
	CodeExtensionKindMismatch      Code = "E0103"
	CodeReservedName               Code = "E0104"
	CodeFieldNotOutputType         Code = "E0105"
	CodeInputValueNotInputType     Code = "E0106"
	CodeInterfaceNotImplemented    Code = "E0107"
	CodeMissingInterfaceField      Code = "E0108"
	CodeMissingInterfaceArgument   Code = "E0109"
	CodeArgumentTypeMismatch       Code = "E0110"
	CodeExtraRequiredArgument      Code = "E0111"
	CodeFieldNotCovariant          Code = "E0112"
	CodeTransitiveInterfaceMissing Code = "E0113"
	CodeUnionNoMembers             Code = "E0114"
	CodeUnionDuplicateMember       Code = "E0115"
	CodeUnionMemberNotObject       Code = "E0116"
	CodeEnumNoValues               Code = "E0117"
	CodeEnumDuplicateValue         Code = "E0118"
	CodeInputObjectCycle           Code = "E0119"
	CodeDirectiveLocationNotAllowed Code = "E0120"
	CodeUndefinedDirective         Code = "E0121"
	CodeDuplicateFieldName         Code = "E0122"

	CodeNullIntoNonNull      Code = "E0200"
	CodeValueShapeMismatch   Code = "E0201"
	CodeUndeclaredEnumValue  Code = "E0202"
	CodeMissingRequiredField Code = "E0203"
	CodeUnknownInputField    Code = "E0204"
	CodeListShapeMismatch    Code = "E0205"
	CodeDuplicateInputField  Code = "E0206"
	CodeInvalidLiteralKind   Code = "E0207"
	CodeVariableNotDefined   Code = "E0208"
	CodeUsedUndefinedVar     Code = "E0209"

	CodeDuplicateOperationName   Code = "E0300"
	CodeLoneAnonymousOperation   Code = "E0301"
	CodeFieldMergeConflict       Code = "E0302"
	CodeUndefinedField           Code = "E0303"
	CodeDuplicateArgument        Code = "E0304"
	CodeUndefinedArgument        Code = "E0305"
	CodeMissingRequiredArgument  Code = "E0306"
	CodeRequiredSubselection     Code = "E0307"
	CodeNoSubselectionAllowed    Code = "E0308"
	CodeDuplicateFragmentName    Code = "E0309"
	CodeUndefinedFragment        Code = "E0310"
	CodeFragmentOnNonComposite   Code = "E0311"
	CodeUnusedFragment           Code = "E0312"
	CodeFragmentCycle            Code = "E0313"
	CodeFragmentSpreadImpossible Code = "E0314"
	CodeDuplicateVariable        Code = "E0315"
	CodeVariableNotInputType     Code = "E0316"
	CodeUnusedVariable           Code = "E0317"
	CodeVariableTypeMismatch     Code = "E0318"
)
