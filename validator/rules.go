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

package validator

import (
	"sort"
	"strings"

	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/db"
	"github.com/latticeql/lattice/diagnostic"
	"github.com/latticeql/lattice/internal/util"
)

// UniqueOperationNames flags a second operation reusing a name already seen
// in this document (cross-document collisions are the indexer's job).
type UniqueOperationNames struct {
	seen map[string]bool
}

func (r *UniqueOperationNames) CheckOperation(ctx *Context, op *cst.OperationDefinition) {
	if op.Name == nil {
		return
	}
	if r.seen == nil {
		r.seen = make(map[string]bool)
	}
	if r.seen[op.Name.Value] {
		ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeDuplicateOperationName, op.Name.Span(),
			"the operation name `"+op.Name.Value+"` is not unique"))
		return
	}
	r.seen[op.Name.Value] = true
}

// LoneAnonymousOperation flags an anonymous operation sharing a document
// with any other operation.
type LoneAnonymousOperation struct {
	count     int
	anonymous []*cst.OperationDefinition
}

func (r *LoneAnonymousOperation) CheckOperation(ctx *Context, op *cst.OperationDefinition) {
	r.count++
	if op.Name == nil {
		r.anonymous = append(r.anonymous, op)
	}
	if r.count > 1 {
		for _, a := range r.anonymous {
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeLoneAnonymousOperation, a.Span(),
				"this anonymous operation must be the only defined operation"))
		}
		r.anonymous = nil
	}
}

// FieldsOnKnownType flags a selection against a field the parent type
// doesn't define (skipping __typename and the case where the parent type
// itself couldn't be resolved, which other rules already flag).
type FieldsOnKnownType struct{}

func (FieldsOnKnownType) CheckField(ctx *Context, field *cst.Field, parent *db.TypeEntry, parentName string) {
	if parent == nil || parent.Def == nil {
		return
	}
	name, ok := field.Name.Get()
	if !ok || name.Value == "__typename" {
		return
	}
	known := make([]string, 0, len(parent.Fields()))
	for _, fd := range parent.Fields() {
		if n, ok := fd.Name.Get(); ok {
			if n.Value == name.Value {
				return
			}
			known = append(known, n.Value)
		}
	}
	message := "field `" + name.Value + "` is not defined on type `" + parentName + "`"
	if suggestions := util.SuggestionList(name.Value, known); len(suggestions) > 0 {
		message += didYouMean(suggestions)
	}
	ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeUndefinedField, name.Span(), message))
}

// didYouMean formats a suggestion list the way the teacher's own
// graphql/util/suggestion_list.go-backed error messages do.
func didYouMean(suggestions []string) string {
	msg := " Did you mean "
	for i, s := range suggestions {
		if i > 0 {
			if i == len(suggestions)-1 {
				msg += " or "
			} else {
				msg += ", "
			}
		}
		msg += "`" + s + "`"
	}
	return msg + "?"
}

// ScalarLeafs flags a leaf-typed field with a selection set, or a
// composite-typed field without one, grounded on botobag/artemis's
// graphql/validator/rules/scalar_leafs.go.
type ScalarLeafs struct{}

func (ScalarLeafs) CheckField(ctx *Context, field *cst.Field, parent *db.TypeEntry, parentName string) {
	if parent == nil || parent.Def == nil {
		return
	}
	name, ok := field.Name.Get()
	if !ok {
		return
	}
	var fieldType cst.Type
	for _, fd := range parent.Fields() {
		if n, ok := fd.Name.Get(); ok && n.Value == name.Value {
			fieldType, _ = fd.Type.Get()
			break
		}
	}
	if fieldType == nil {
		return
	}
	leaf := isLeafTypeName(ctx.DB, cst.TypeName(fieldType))
	switch {
	case leaf && field.SelectionSet != nil:
		ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeNoSubselectionAllowed, field.SelectionSet.Span(),
			"field `"+name.Value+"` of leaf type must not have a selection set"))
	case !leaf && field.SelectionSet == nil:
		ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeRequiredSubselection, name.Span(),
			"field `"+name.Value+"` of composite type must have a selection set"))
	}
}

func isLeafTypeName(database *db.Database, name string) bool {
	switch name {
	case "Int", "Float", "String", "Boolean", "ID":
		return true
	}
	entry := database.Type(name)
	if entry == nil || entry.Def == nil {
		return false
	}
	switch entry.Def.DefKind() {
	case cst.KindScalar, cst.KindEnum:
		return true
	}
	return false
}

// KnownArguments flags an argument name the field definition doesn't
// declare; directive arguments are not checked.
type KnownArguments struct{}

func (KnownArguments) CheckField(ctx *Context, field *cst.Field, parent *db.TypeEntry, parentName string) {
	if parent == nil || parent.Def == nil {
		return
	}
	name, ok := field.Name.Get()
	if !ok {
		return
	}
	var fieldDef *cst.FieldDefinition
	for _, fd := range parent.Fields() {
		if n, ok := fd.Name.Get(); ok && n.Value == name.Value {
			fieldDef = fd
			break
		}
	}
	if fieldDef == nil {
		return
	}
	for _, arg := range field.Arguments {
		argName, ok := arg.Name.Get()
		if !ok {
			continue
		}
		found := false
		known := make([]string, 0, len(fieldDef.Arguments))
		for _, def := range fieldDef.Arguments {
			if n, ok := def.Name.Get(); ok {
				known = append(known, n.Value)
			}
			if n, ok := def.Name.Get(); ok && n.Value == argName.Value {
				found = true
				break
			}
		}
		if !found {
			message := "argument `" + argName.Value + "` is not defined on `" + parentName + "." + name.Value + "`"
			if suggestions := util.SuggestionList(argName.Value, known); len(suggestions) > 0 {
				message += didYouMean(suggestions)
			}
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeUndefinedArgument, argName.Span(), message))
		}
	}
}

// ProvidedRequiredArguments flags a field missing a non-null argument with
// no default value.
type ProvidedRequiredArguments struct{}

func (ProvidedRequiredArguments) CheckField(ctx *Context, field *cst.Field, parent *db.TypeEntry, parentName string) {
	if parent == nil || parent.Def == nil {
		return
	}
	name, ok := field.Name.Get()
	if !ok {
		return
	}
	var fieldDef *cst.FieldDefinition
	for _, fd := range parent.Fields() {
		if n, ok := fd.Name.Get(); ok && n.Value == name.Value {
			fieldDef = fd
			break
		}
	}
	if fieldDef == nil {
		return
	}
	for _, def := range fieldDef.Arguments {
		argName, ok := def.Name.Get()
		if !ok {
			continue
		}
		typ, ok := def.Type.Get()
		if !ok || !cst.IsNonNull(typ) || def.DefaultValue != nil {
			continue
		}
		provided := false
		for _, arg := range field.Arguments {
			if n, ok := arg.Name.Get(); ok && n.Value == argName.Value {
				provided = true
				break
			}
		}
		if !provided {
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeMissingRequiredArgument, name.Span(),
				"required argument `"+argName.Value+"` of `"+parentName+"."+name.Value+"` is not provided"))
		}
	}
}

// UniqueArgumentNames flags the same argument supplied twice on one field.
type UniqueArgumentNames struct{}

func (UniqueArgumentNames) CheckField(ctx *Context, field *cst.Field, parent *db.TypeEntry, parentName string) {
	seen := make(map[string]bool, len(field.Arguments))
	for _, arg := range field.Arguments {
		name, ok := arg.Name.Get()
		if !ok {
			continue
		}
		if seen[name.Value] {
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeDuplicateArgument, name.Span(),
				"argument `"+name.Value+"` is provided more than once"))
			continue
		}
		seen[name.Value] = true
	}
}

// KnownFragmentNames flags a `...name` spread naming a fragment never defined.
// Only spreads inside operation selection sets are checked; spreads written
// inside fragment definitions are not.
type KnownFragmentNames struct{}

func (KnownFragmentNames) CheckField(ctx *Context, field *cst.Field, parent *db.TypeEntry, parentName string) {
}

func (r KnownFragmentNames) CheckDocument(ctx *Context, doc *cst.Document) {
	var walk func(ss *cst.SelectionSet)
	walk = func(ss *cst.SelectionSet) {
		if ss == nil {
			return
		}
		for _, sel := range ss.Selections {
			switch s := sel.(type) {
			case *cst.Field:
				walk(s.SelectionSet)
			case *cst.InlineFragment:
				if set, ok := s.SelectionSet.Get(); ok {
					walk(set)
				}
			case *cst.FragmentSpread:
				name, ok := s.FragmentName.Get()
				if !ok {
					continue
				}
				if _, found := ctx.DB.Fragment(name.Value); !found {
					ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeUndefinedFragment, name.Span(),
						"fragment `"+name.Value+"` is not defined"))
				}
			}
		}
	}
	for _, def := range doc.Definitions {
		if def.Operation != nil {
			if set, ok := def.Operation.SelectionSet.Get(); ok {
				walk(set)
			}
		}
	}
}

// FragmentsOnCompositeTypes flags a fragment whose type condition names a
// scalar, enum, or input-object type.
type FragmentsOnCompositeTypes struct{}

func (FragmentsOnCompositeTypes) CheckFragment(ctx *Context, frag *cst.FragmentDefinition) {
	tc, ok := frag.TypeCondition.Get()
	if !ok {
		return
	}
	name := cst.TypeName(tc)
	entry := ctx.DB.Type(name)
	if entry == nil || entry.Def == nil {
		return
	}
	switch entry.Def.DefKind() {
	case cst.KindScalar, cst.KindEnum, cst.KindInputObject:
		ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeFragmentOnNonComposite, tc.Span(),
			"fragment `"+fragName(frag)+"` cannot condition on non-composite type `"+name+"`"))
	}
}

func fragName(f *cst.FragmentDefinition) string {
	if n, ok := f.FragmentName.Get(); ok {
		return n.Value
	}
	return ""
}

// NoUnusedFragments flags a fragment definition no operation ever spreads,
// transitively.
type NoUnusedFragments struct{}

func (NoUnusedFragments) CheckDocument(ctx *Context, doc *cst.Document) {
	used := make(map[string]bool)
	var markSet func(ss *cst.SelectionSet)
	markSet = func(ss *cst.SelectionSet) {
		if ss == nil {
			return
		}
		for _, sel := range ss.Selections {
			switch s := sel.(type) {
			case *cst.Field:
				markSet(s.SelectionSet)
			case *cst.InlineFragment:
				if set, ok := s.SelectionSet.Get(); ok {
					markSet(set)
				}
			case *cst.FragmentSpread:
				name, ok := s.FragmentName.Get()
				if !ok || used[name.Value] {
					continue
				}
				used[name.Value] = true
				if frag, ok := ctx.DB.Fragment(name.Value); ok {
					if set, ok := frag.Def.SelectionSet.Get(); ok {
						markSet(set)
					}
				}
			}
		}
	}
	for _, def := range doc.Definitions {
		if def.Operation != nil {
			if set, ok := def.Operation.SelectionSet.Get(); ok {
				markSet(set)
			}
		}
	}
	for _, def := range doc.Definitions {
		if def.Fragment == nil {
			continue
		}
		name, ok := def.Fragment.FragmentName.Get()
		if !ok || used[name.Value] {
			continue
		}
		ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeUnusedFragment, name.Span(),
			"fragment `"+name.Value+"` is never used").AsWarning())
	}
}

// NoFragmentCycles flags a fragment that spreads itself, directly or
// transitively.
type NoFragmentCycles struct{}

func (NoFragmentCycles) CheckFragment(ctx *Context, frag *cst.FragmentDefinition) {
	name, ok := frag.FragmentName.Get()
	if !ok {
		return
	}
	visiting := map[string]bool{name.Value: true}
	var walk func(ss *cst.SelectionSet) bool
	walk = func(ss *cst.SelectionSet) bool {
		if ss == nil {
			return false
		}
		for _, sel := range ss.Selections {
			switch s := sel.(type) {
			case *cst.Field:
				if walk(s.SelectionSet) {
					return true
				}
			case *cst.InlineFragment:
				if set, ok := s.SelectionSet.Get(); ok && walk(set) {
					return true
				}
			case *cst.FragmentSpread:
				spreadName, ok := s.FragmentName.Get()
				if !ok {
					continue
				}
				if visiting[spreadName.Value] {
					return true
				}
				other, ok := ctx.DB.Fragment(spreadName.Value)
				if !ok {
					continue
				}
				visiting[spreadName.Value] = true
				set, ok := other.Def.SelectionSet.Get()
				cycle := ok && walk(set)
				delete(visiting, spreadName.Value)
				if cycle {
					return true
				}
			}
		}
		return false
	}
	if set, ok := frag.SelectionSet.Get(); ok && walk(set) {
		ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeFragmentCycle, name.Span(),
			"fragment `"+name.Value+"` is part of a spread cycle"))
	}
}

// UniqueVariableNames flags the same `$name` declared twice on one operation.
type UniqueVariableNames struct{}

func (UniqueVariableNames) CheckOperation(ctx *Context, op *cst.OperationDefinition) {
	seen := make(map[string]bool)
	for _, v := range op.VariableDefinitions {
		name, ok := v.Variable.Get()
		if !ok {
			continue
		}
		if seen[name.Value] {
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeDuplicateVariable, name.Span(),
				"the variable `$"+name.Value+"` is declared more than once"))
			continue
		}
		seen[name.Value] = true
	}
}

// KnownDirectives flags an `@name` application naming an undefined directive.
type KnownDirectives struct{}

func (r KnownDirectives) checkDirectives(ctx *Context, dirs []*cst.Directive) {
	for _, d := range dirs {
		name, ok := d.Name.Get()
		if !ok {
			continue
		}
		if _, builtin := builtinDirectives[name.Value]; builtin {
			continue
		}
		if _, ok := ctx.DB.Directive(name.Value); !ok {
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeUndefinedDirective, name.Span(),
				"directive `@"+name.Value+"` is not defined"))
		}
	}
}

var builtinDirectives = map[string]bool{
	"skip": true, "include": true, "deprecated": true, "specifiedBy": true,
}

func (r KnownDirectives) CheckField(ctx *Context, field *cst.Field, parent *db.TypeEntry, parentName string) {
	r.checkDirectives(ctx, field.Directives)
}

func (r KnownDirectives) CheckOperation(ctx *Context, op *cst.OperationDefinition) {
	r.checkDirectives(ctx, op.Directives)
}

func (r KnownDirectives) CheckFragment(ctx *Context, frag *cst.FragmentDefinition) {
	r.checkDirectives(ctx, frag.Directives)
}

// OverlappingFieldsCanBeMerged flags two fields at the same response key in
// one selection set that name different fields or disagree on arguments,
// since a response object can't hold two values for one key. It only
// compares Field selections written directly in the same selection set —
// fields a sibling fragment spread contributes to the same merged set are
// out of scope; see DESIGN.md.
type OverlappingFieldsCanBeMerged struct{}

func (OverlappingFieldsCanBeMerged) CheckSelectionSet(ctx *Context, fields []*cst.Field, parentTypeName string) {
	byKey := make(map[string][]*cst.Field)
	for _, f := range fields {
		key := f.ResponseKey()
		if key == "" {
			continue
		}
		byKey[key] = append(byKey[key], f)
	}
	for key, group := range byKey {
		if len(group) < 2 {
			continue
		}
		first := group[0]
		firstName, ok := first.Name.Get()
		if !ok {
			continue
		}
		for _, other := range group[1:] {
			otherName, ok := other.Name.Get()
			if !ok {
				continue
			}
			if otherName.Value != firstName.Value {
				ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeFieldMergeConflict, other.Span(),
					"fields at response key `"+key+"` cannot be merged: `"+firstName.Value+"` and `"+otherName.Value+"` are different fields"))
				continue
			}
			if !sameArguments(first, other) {
				ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeFieldMergeConflict, other.Span(),
					"fields at response key `"+key+"` cannot be merged: they have different arguments"))
			}
		}
	}
}

func sameArguments(a, b *cst.Field) bool {
	if len(a.Arguments) != len(b.Arguments) {
		return false
	}
	av := argumentValueTexts(a.Arguments)
	bv := argumentValueTexts(b.Arguments)
	if len(av) != len(bv) {
		return false
	}
	for name, text := range av {
		other, ok := bv[name]
		if !ok || other != text {
			return false
		}
	}
	return true
}

func argumentValueTexts(args []*cst.Argument) map[string]string {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		name, ok := arg.Name.Get()
		if !ok {
			continue
		}
		v, _ := arg.Value.Get()
		out[name.Value] = valueText(v)
	}
	return out
}

// valueText renders v as a canonical string for comparison purposes — not a
// serialization format, just stable enough that two syntactically equal
// literals produce the same text.
func valueText(v cst.Value) string {
	switch val := v.(type) {
	case nil:
		return "<missing>"
	case *cst.IntValue:
		return "int:" + val.Raw
	case *cst.FloatValue:
		return "float:" + val.Raw
	case *cst.StringValue:
		return "string:" + val.Value
	case *cst.BooleanValue:
		if val.Value {
			return "bool:true"
		}
		return "bool:false"
	case *cst.NullValue:
		return "null"
	case *cst.EnumValue:
		return "enum:" + val.Name
	case *cst.VariableValue:
		return "var:" + val.Name
	case *cst.ListValue:
		parts := make([]string, len(val.Values))
		for i, elem := range val.Values {
			parts[i] = valueText(elem)
		}
		return "list:[" + strings.Join(parts, ",") + "]"
	case *cst.ObjectValue:
		parts := make([]string, 0, len(val.Fields))
		for _, f := range val.Fields {
			n, ok := f.Name.Get()
			if !ok {
				continue
			}
			fv, _ := f.Value.Get()
			parts = append(parts, n.Value+":"+valueText(fv))
		}
		sort.Strings(parts)
		return "object:{" + strings.Join(parts, ",") + "}"
	}
	return "<unknown>"
}

// FragmentSpreadIsPossible flags a fragment spread or inline fragment whose
// type condition can never overlap with the type of the selection set it's
// nested in — e.g. conditioning on a sibling object type, or on a union
// with no object type in common with an interface being selected against.
type FragmentSpreadIsPossible struct{}

func (FragmentSpreadIsPossible) CheckSpread(ctx *Context, parentTypeName, conditionTypeName string, spread cst.Node) {
	if parentTypeName == "" || conditionTypeName == "" || parentTypeName == conditionTypeName {
		return
	}
	parentEntry := ctx.DB.Type(parentTypeName)
	condEntry := ctx.DB.Type(conditionTypeName)
	if parentEntry == nil || parentEntry.Def == nil || condEntry == nil || condEntry.Def == nil {
		return
	}
	parentTypes := possibleTypeNames(ctx.DB, parentTypeName, parentEntry)
	condTypes := possibleTypeNames(ctx.DB, conditionTypeName, condEntry)
	if !setsOverlap(parentTypes, condTypes) {
		ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeFragmentSpreadImpossible, spread.Span(),
			"fragment cannot be spread here: no overlap between `"+parentTypeName+"` and `"+conditionTypeName+"`"))
	}
}

// possibleTypeNames returns the concrete object-type names name could
// resolve to at runtime: itself for an object type, every implementing
// object for an interface, and every member for a union.
func possibleTypeNames(database *db.Database, name string, entry *db.TypeEntry) map[string]bool {
	out := make(map[string]bool)
	switch entry.Def.DefKind() {
	case cst.KindObject:
		out[name] = true
	case cst.KindInterface:
		for _, candidate := range database.TypeNames() {
			if database.ImplementsInterface(candidate, name) {
				out[candidate] = true
			}
		}
	case cst.KindUnion:
		for _, m := range entry.Members() {
			out[cst.TypeName(m)] = true
		}
	}
	return out
}

func setsOverlap(a, b map[string]bool) bool {
	if len(a) == 0 || len(b) == 0 {
		return true // unresolvable either side: don't report a false conflict
	}
	for name := range a {
		if b[name] {
			return true
		}
	}
	return false
}

// VariablesInAllowedPosition flags a variable used at an argument position
// whose declared type the variable's type (with its default value factored
// in) isn't compatible with — e.g. a nullable `$id: ID` passed where the
// schema requires `ID!` with no default supplying the missing non-null
// guarantee.
type VariablesInAllowedPosition struct{}

func (VariablesInAllowedPosition) CheckOperation(ctx *Context, op *cst.OperationDefinition) {
	varTypes := make(map[string]cst.Type, len(op.VariableDefinitions))
	varHasNonNullDefault := make(map[string]bool, len(op.VariableDefinitions))
	for _, vd := range op.VariableDefinitions {
		name, ok := vd.Variable.Get()
		if !ok {
			continue
		}
		t, ok := vd.Type.Get()
		if !ok {
			continue
		}
		varTypes[name.Value] = t
		if vd.DefaultValue != nil {
			if _, isNull := vd.DefaultValue.(*cst.NullValue); !isNull {
				varHasNonNullDefault[name.Value] = true
			}
		}
	}
	if len(varTypes) == 0 {
		return
	}
	set, ok := op.SelectionSet.Get()
	if !ok {
		return
	}
	rootType := rootTypeName(ctx.DB, op.OperationType)
	visiting := make(map[string]bool)
	walkVariableUsages(ctx, set, rootType, varTypes, varHasNonNullDefault, visiting)
}

func walkVariableUsages(
	ctx *Context,
	ss *cst.SelectionSet,
	typeName string,
	varTypes map[string]cst.Type,
	varHasNonNullDefault map[string]bool,
	visiting map[string]bool,
) {
	if ss == nil {
		return
	}
	parentType := ctx.DB.Type(typeName)
	for _, sel := range ss.Selections {
		switch s := sel.(type) {
		case *cst.Field:
			name, ok := s.Name.Get()
			if !ok {
				continue
			}
			var fieldDef *cst.FieldDefinition
			if parentType != nil {
				for _, fd := range parentType.Fields() {
					if n, ok := fd.Name.Get(); ok && n.Value == name.Value {
						fieldDef = fd
						break
					}
				}
			}
			if fieldDef != nil {
				for _, arg := range s.Arguments {
					argName, ok := arg.Name.Get()
					if !ok {
						continue
					}
					val, ok := arg.Value.Get()
					if !ok {
						continue
					}
					varRef, ok := val.(*cst.VariableValue)
					if !ok {
						continue
					}
					varType, declared := varTypes[varRef.Name]
					if !declared {
						continue
					}
					var locType cst.Type
					for _, def := range fieldDef.Arguments {
						if n, ok := def.Name.Get(); ok && n.Value == argName.Value {
							locType, _ = def.Type.Get()
							break
						}
					}
					if locType == nil {
						continue
					}
					if !variableUsageCompatible(varType, varHasNonNullDefault[varRef.Name], locType) {
						ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeVariableTypeMismatch, varRef.Span(),
							"variable `$"+varRef.Name+"` of type `"+cst.TypeName(varType)+"` cannot be used where `"+cst.TypeName(locType)+"` is expected"))
					}
				}
			}
			fieldType := resolveFieldType(parentType, name.Value)
			if s.SelectionSet != nil {
				walkVariableUsages(ctx, s.SelectionSet, fieldType, varTypes, varHasNonNullDefault, visiting)
			}
		case *cst.InlineFragment:
			cond := typeName
			if s.TypeCondition != nil {
				cond = cst.TypeName(s.TypeCondition)
			}
			if set, ok := s.SelectionSet.Get(); ok {
				walkVariableUsages(ctx, set, cond, varTypes, varHasNonNullDefault, visiting)
			}
		case *cst.FragmentSpread:
			name, ok := s.FragmentName.Get()
			if !ok || visiting[name.Value] {
				continue
			}
			frag, ok := ctx.DB.Fragment(name.Value)
			if !ok {
				continue
			}
			tc, ok := frag.Def.TypeCondition.Get()
			if !ok {
				continue
			}
			set, ok := frag.Def.SelectionSet.Get()
			if !ok {
				continue
			}
			visiting[name.Value] = true
			walkVariableUsages(ctx, set, cst.TypeName(tc), varTypes, varHasNonNullDefault, visiting)
			delete(visiting, name.Value)
		}
	}
}

// variableUsageCompatible implements the variable-usage compatibility rule:
// a variable may be used at a location whose type is the variable's type,
// optionally with one fewer layer of non-null-ness supplied by a non-null
// default value.
func variableUsageCompatible(varType cst.Type, varHasNonNullDefault bool, locType cst.Type) bool {
	if locNN, ok := locType.(*cst.NonNullType); ok {
		if varNN, ok := varType.(*cst.NonNullType); ok {
			return variableUsageCompatible(varNN.Inner, false, locNN.Inner)
		}
		if !varHasNonNullDefault {
			return false
		}
		return variableUsageCompatible(varType, false, locNN.Inner)
	}
	if varNN, ok := varType.(*cst.NonNullType); ok {
		varType = varNN.Inner
	}
	switch lt := locType.(type) {
	case *cst.ListType:
		vlt, ok := varType.(*cst.ListType)
		if !ok {
			return false
		}
		velem, ok1 := vlt.ElemType.Get()
		lelem, ok2 := lt.ElemType.Get()
		if !ok1 || !ok2 {
			return false
		}
		return variableUsageCompatible(velem, false, lelem)
	case *cst.NamedType:
		vnt, ok := varType.(*cst.NamedType)
		if !ok {
			return false
		}
		return cst.TypeName(vnt) == cst.TypeName(lt)
	}
	return false
}
