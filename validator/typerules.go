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
	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/db"
	"github.com/latticeql/lattice/diagnostic"
)

// TypeRule inspects one merged type-entry (own definition plus every
// extension), the whole-schema counterpart to FieldRule/OperationRule for
// §4.6.2's type-system checks.
type TypeRule interface {
	CheckType(ctx *Context, name string, entry *db.TypeEntry)
}

// DefaultTypeRules returns a representative subset of §4.6.2's rule
// catalogue — see DESIGN.md for which were cut and why.
func DefaultTypeRules() []interface{} {
	return []interface{}{
		&UniqueFieldNames{},
		&UniqueInputFieldNames{},
		&NonEmptyUnion{},
		&UniqueUnionMembers{},
		&NonEmptyEnum{},
		&UniqueEnumValues{},
		&InterfaceImplementation{},
	}
}

// ValidateTypeSystem runs every TypeRule over every type name in database,
// independent of which document(s) contributed to it (§4.6.2). Called once
// per compiler.Shell.Rebuild rather than per-document, since a merged type
// entry can span definitions from more than one source.
func ValidateTypeSystem(database *db.Database, rules []interface{}) []diagnostic.Diagnostic {
	ctx := &Context{DB: database}
	for _, name := range database.TypeNames() {
		entry := database.Type(name)
		if entry == nil {
			continue
		}
		for _, r := range rules {
			if tr, ok := r.(TypeRule); ok {
				tr.CheckType(ctx, name, entry)
			}
		}
	}
	return ctx.Diags
}

// UniqueFieldNames flags a field name repeated across a type's own
// definition and its extensions (§4.6.2, testable-properties scenario 6).
type UniqueFieldNames struct{}

func (r *UniqueFieldNames) CheckType(ctx *Context, name string, entry *db.TypeEntry) {
	seen := make(map[string]*cst.FieldDefinition)
	for _, f := range entry.Fields() {
		fname, ok := f.Name.Get()
		if !ok {
			continue
		}
		if prior, dup := seen[fname.Value]; dup {
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeDuplicateFieldName, f.Span(),
				"field `"+fname.Value+"` is defined more than once on type `"+name+"`").
				WithLabel(prior.Span(), "first defined here"))
			continue
		}
		seen[fname.Value] = f
	}
}

// UniqueInputFieldNames is UniqueFieldNames for input-object fields.
type UniqueInputFieldNames struct{}

func (r *UniqueInputFieldNames) CheckType(ctx *Context, name string, entry *db.TypeEntry) {
	seen := make(map[string]*cst.InputValueDefinition)
	for _, f := range entry.InputFields() {
		fname, ok := f.Name.Get()
		if !ok {
			continue
		}
		if prior, dup := seen[fname.Value]; dup {
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeDuplicateInputField, f.Span(),
				"input field `"+fname.Value+"` is defined more than once on type `"+name+"`").
				WithLabel(prior.Span(), "first defined here"))
			continue
		}
		seen[fname.Value] = f
	}
}

// NonEmptyUnion flags a union with no members.
type NonEmptyUnion struct{}

func (r *NonEmptyUnion) CheckType(ctx *Context, name string, entry *db.TypeEntry) {
	if entry.Def == nil || entry.Def.DefKind() != cst.KindUnion {
		return
	}
	if len(entry.Members()) == 0 {
		ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeUnionNoMembers, entry.Def.Span(),
			"union `"+name+"` must define at least one member type"))
	}
}

// UniqueUnionMembers flags a member type listed more than once on a union.
type UniqueUnionMembers struct{}

func (r *UniqueUnionMembers) CheckType(ctx *Context, name string, entry *db.TypeEntry) {
	seen := make(map[string]bool)
	for _, m := range entry.Members() {
		mname, ok := m.Name.Get()
		if !ok {
			continue
		}
		if seen[mname.Value] {
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeUnionDuplicateMember, m.Span(),
				"union `"+name+"` lists member `"+mname.Value+"` more than once"))
			continue
		}
		seen[mname.Value] = true
	}
}

// NonEmptyEnum flags an enum with no values.
type NonEmptyEnum struct{}

func (r *NonEmptyEnum) CheckType(ctx *Context, name string, entry *db.TypeEntry) {
	if entry.Def == nil || entry.Def.DefKind() != cst.KindEnum {
		return
	}
	if len(entry.Values()) == 0 {
		ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeEnumNoValues, entry.Def.Span(),
			"enum `"+name+"` must define at least one value"))
	}
}

// UniqueEnumValues flags a value name listed more than once on an enum.
type UniqueEnumValues struct{}

func (r *UniqueEnumValues) CheckType(ctx *Context, name string, entry *db.TypeEntry) {
	seen := make(map[string]bool)
	for _, v := range entry.Values() {
		vname, ok := v.Name.Get()
		if !ok {
			continue
		}
		if seen[vname.Value] {
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeEnumDuplicateValue, v.Span(),
				"enum `"+name+"` lists value `"+vname.Value+"` more than once"))
			continue
		}
		seen[vname.Value] = true
	}
}

// InterfaceImplementation checks the three structural rules §4.6.2 names for
// `type T implements I`: every inherited interface field must appear on the
// implementor, with an invariant argument set and a covariant result type.
// Transitively inherited interfaces (I implements J) are not expanded here —
// each direct `implements` edge is checked independently, which is
// sufficient as long as every interface also declares the interfaces it
// itself implements (checked by recursing into that interface's own entry).
type InterfaceImplementation struct{}

func (r *InterfaceImplementation) CheckType(ctx *Context, name string, entry *db.TypeEntry) {
	if entry.Def == nil {
		return
	}
	kind := entry.Def.DefKind()
	if kind != cst.KindObject && kind != cst.KindInterface {
		return
	}
	fields := entry.Fields()
	for _, iface := range entry.Implements() {
		ifaceName, ok := iface.Name.Get()
		if !ok {
			continue
		}
		ifaceEntry := ctx.DB.Type(ifaceName.Value)
		if ifaceEntry == nil || ifaceEntry.Def == nil {
			continue
		}
		for _, ifField := range ifaceEntry.Fields() {
			ifFieldName, ok := ifField.Name.Get()
			if !ok {
				continue
			}
			impl := findField(fields, ifFieldName.Value)
			if impl == nil {
				ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeMissingInterfaceField, entry.Def.Span(),
					"type `"+name+"` must define field `"+ifFieldName.Value+"` to implement interface `"+ifaceName.Value+"`"))
				continue
			}
			checkArgumentsInvariant(ctx, name, ifaceName.Value, ifField, impl)
			checkResultCovariant(ctx, name, ifaceName.Value, ifField, impl)
		}
	}
}

func findField(fields []*cst.FieldDefinition, name string) *cst.FieldDefinition {
	for _, f := range fields {
		if n, ok := f.Name.Get(); ok && n.Value == name {
			return f
		}
	}
	return nil
}

func checkArgumentsInvariant(ctx *Context, typeName, ifaceName string, ifField, implField *cst.FieldDefinition) {
	implArgs := make(map[string]*cst.InputValueDefinition)
	for _, a := range implField.Arguments {
		if n, ok := a.Name.Get(); ok {
			implArgs[n.Value] = a
		}
	}
	for _, ifArg := range ifField.Arguments {
		argName, ok := ifArg.Name.Get()
		if !ok {
			continue
		}
		implArg, present := implArgs[argName.Value]
		if !present {
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeMissingInterfaceArgument, implField.Span(),
				"field `"+typeName+"."+fieldNameOf(implField)+"` is missing argument `"+argName.Value+"` required by interface `"+ifaceName+"`"))
			continue
		}
		ifType, ifOK := ifArg.Type.Get()
		implType, implOK := implArg.Type.Get()
		if ifOK && implOK && cst.TypeName(ifType) != cst.TypeName(implType) {
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeArgumentTypeMismatch, implArg.Span(),
				"argument `"+argName.Value+"` on `"+typeName+"."+fieldNameOf(implField)+"` must have the same type as interface `"+ifaceName+"`"))
		}
	}
	for name, implArg := range implArgs {
		if !hasArg(ifField.Arguments, name) && cst.IsNonNull(typeOrNil(implArg)) && implArg.DefaultValue == nil {
			ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeExtraRequiredArgument, implArg.Span(),
				"field `"+typeName+"."+fieldNameOf(implField)+"` may not require extra argument `"+name+"` not declared by interface `"+ifaceName+"`"))
		}
	}
}

func hasArg(args []*cst.InputValueDefinition, name string) bool {
	for _, a := range args {
		if n, ok := a.Name.Get(); ok && n.Value == name {
			return true
		}
	}
	return false
}

func typeOrNil(v *cst.InputValueDefinition) cst.Type {
	if t, ok := v.Type.Get(); ok {
		return t
	}
	return nil
}

func fieldNameOf(f *cst.FieldDefinition) string {
	if n, ok := f.Name.Get(); ok {
		return n.Value
	}
	return ""
}

// checkResultCovariant allows the implementation to tighten a nullable
// interface-field type to non-null but requires the named leaf/list
// structure to otherwise agree (§4.6.2: named types invariant at the leaf).
func checkResultCovariant(ctx *Context, typeName, ifaceName string, ifField, implField *cst.FieldDefinition) {
	ifType, ifOK := ifField.Type.Get()
	implType, implOK := implField.Type.Get()
	if !ifOK || !implOK {
		return
	}
	if !covariant(implType, ifType) {
		ctx.Diags = append(ctx.Diags, diagnostic.New(diagnostic.CodeFieldNotCovariant, implField.Span(),
			"field `"+typeName+"."+fieldNameOf(implField)+"` is not a covariant override of interface `"+ifaceName+"`'s field"))
	}
}

// covariant reports whether impl may stand in for iface: impl may be
// non-null where iface is nullable, and must otherwise match structurally
// with invariant named-type leaves.
func covariant(impl, iface cst.Type) bool {
	if nn, ok := impl.(*cst.NonNullType); ok {
		if ifaceNN, ok := iface.(*cst.NonNullType); ok {
			return covariant(nn.Inner, ifaceNN.Inner)
		}
		return covariant(nn.Inner, iface)
	}
	if _, ok := iface.(*cst.NonNullType); ok {
		// iface requires non-null but impl is nullable: not covariant.
		return false
	}
	switch i := impl.(type) {
	case *cst.ListType:
		il, ok := iface.(*cst.ListType)
		if !ok {
			return false
		}
		implElem, implOK := i.ElemType.Get()
		ifaceElem, ifaceOK := il.ElemType.Get()
		return implOK && ifaceOK && covariant(implElem, ifaceElem)
	case *cst.NamedType:
		in, ok := iface.(*cst.NamedType)
		return ok && cst.TypeName(i) == cst.TypeName(in)
	}
	return false
}
