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

// Package validator implements the rule-based executable-document checks
// (§4.6.1), generalizing botobag/artemis's graphql/validator package: each
// Rule is a small single-method interface a visitor dispatches to, the
// same shape as the teacher's FieldRule/OperationRule family in
// graphql/validator/rule.go, adapted to walk the fault-tolerant cst tree
// (a Missing slot simply isn't visited) against a db.Database instead of
// the teacher's strict in-memory schema graph.
package validator

import (
	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/db"
	"github.com/latticeql/lattice/diagnostic"
)

// OperationRule inspects one operation definition.
type OperationRule interface {
	CheckOperation(ctx *Context, op *cst.OperationDefinition)
}

// FragmentRule inspects one fragment definition.
type FragmentRule interface {
	CheckFragment(ctx *Context, frag *cst.FragmentDefinition)
}

// FieldRule inspects one field selection, together with the type it's
// selected against (nil if the parent type itself couldn't be resolved).
type FieldRule interface {
	CheckField(ctx *Context, field *cst.Field, parentType *db.TypeEntry, parentName string)
}

// DocumentRule inspects the whole document once, for checks that aren't
// naturally scoped to a single definition (e.g. unused fragments).
type DocumentRule interface {
	CheckDocument(ctx *Context, doc *cst.Document)
}

// SelectionSetRule inspects the Field selections directly inside one
// selection set as a group, for checks that compare siblings rather than
// judge one field in isolation (field-selection merging).
type SelectionSetRule interface {
	CheckSelectionSet(ctx *Context, fields []*cst.Field, parentTypeName string)
}

// SpreadRule inspects one fragment spread or inline fragment's type
// condition against the type of the selection set it appears in.
type SpreadRule interface {
	CheckSpread(ctx *Context, parentTypeName, conditionTypeName string, spread cst.Node)
}

// Context is threaded through every rule invocation: the database the
// rules check against, plus the accumulated diagnostics.
type Context struct {
	DB    *db.Database
	Diags []diagnostic.Diagnostic
}

// Rules is the ordered set of checks Validate runs. DefaultRules returns a
// representative subset of §4.6.1's rule catalogue rather than every named
// rule — see DESIGN.md for which were cut and why.
func DefaultRules() []interface{} {
	return []interface{}{
		&UniqueOperationNames{},
		&LoneAnonymousOperation{},
		&FieldsOnKnownType{},
		&KnownArguments{},
		&ProvidedRequiredArguments{},
		&UniqueArgumentNames{},
		&ScalarLeafs{},
		&KnownFragmentNames{},
		&NoUnusedFragments{},
		&FragmentsOnCompositeTypes{},
		&NoFragmentCycles{},
		&UniqueVariableNames{},
		&KnownDirectives{},
		&OverlappingFieldsCanBeMerged{},
		&FragmentSpreadIsPossible{},
		&VariablesInAllowedPosition{},
	}
}

// Validate walks doc's executable definitions, invoking every applicable
// rule, and returns the accumulated diagnostics.
func Validate(database *db.Database, doc *cst.Document, rules []interface{}) []diagnostic.Diagnostic {
	ctx := &Context{DB: database}

	for _, r := range rules {
		if dr, ok := r.(DocumentRule); ok {
			dr.CheckDocument(ctx, doc)
		}
	}

	for _, def := range doc.Definitions {
		switch {
		case def.Operation != nil:
			for _, r := range rules {
				if or, ok := r.(OperationRule); ok {
					or.CheckOperation(ctx, def.Operation)
				}
			}
			walkSelectionSetFields(ctx, def.Operation.SelectionSet, rootTypeName(database, def.Operation.OperationType), rules, map[string]bool{})
		case def.Fragment != nil:
			for _, r := range rules {
				if fr, ok := r.(FragmentRule); ok {
					fr.CheckFragment(ctx, def.Fragment)
				}
			}
			if tc, ok := def.Fragment.TypeCondition.Get(); ok {
				visiting := map[string]bool{}
				if name, ok := def.Fragment.FragmentName.Get(); ok {
					visiting[name.Value] = true
				}
				walkSelectionSetFields(ctx, def.Fragment.SelectionSet, cst.TypeName(tc), rules, visiting)
			}
		}
	}
	return ctx.Diags
}

func rootTypeName(database *db.Database, opType cst.OperationType) string {
	return database.RootOperationType(opType)
}

// walkSelectionSetFields recursively applies every FieldRule to each field
// in the selection set, descending into sub-selections with the field's
// result type name when the database can resolve it. visiting tracks the
// fragment names on the current spread path, the same guard
// NoFragmentCycles.CheckFragment uses, so a self-referential or mutually
// recursive fragment spread stops descending instead of recursing forever —
// NoFragmentCycles still reports the cycle itself; this guard only keeps
// Validate from crashing ahead of (or independent of) that report.
func walkSelectionSetFields(ctx *Context, ss cst.Recoverable[*cst.SelectionSet], typeName string, rules []interface{}, visiting map[string]bool) {
	set, ok := ss.Get()
	if !ok {
		return
	}
	parentType := ctx.DB.Type(typeName)

	var directFields []*cst.Field
	for _, sel := range set.Selections {
		if f, ok := sel.(*cst.Field); ok {
			directFields = append(directFields, f)
		}
	}
	for _, r := range rules {
		if sr, ok := r.(SelectionSetRule); ok {
			sr.CheckSelectionSet(ctx, directFields, typeName)
		}
	}

	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *cst.Field:
			for _, r := range rules {
				if fr, ok := r.(FieldRule); ok {
					fr.CheckField(ctx, s, parentType, typeName)
				}
			}
			fieldType := resolveFieldType(parentType, fieldName(s))
			if s.SelectionSet != nil {
				walkSelectionSetFields(ctx, cst.Present(s.SelectionSet.Span(), s.SelectionSet), fieldType, rules, visiting)
			}
		case *cst.InlineFragment:
			cond := typeName
			if s.TypeCondition != nil {
				cond = cst.TypeName(s.TypeCondition)
				for _, r := range rules {
					if spr, ok := r.(SpreadRule); ok {
						spr.CheckSpread(ctx, typeName, cond, s)
					}
				}
			}
			walkSelectionSetFields(ctx, s.SelectionSet, cond, rules, visiting)
		case *cst.FragmentSpread:
			name, ok := s.FragmentName.Get()
			if !ok || visiting[name.Value] {
				continue
			}
			frag, ok := ctx.DB.Fragment(name.Value)
			if !ok {
				continue
			}
			if tc, ok := frag.Def.TypeCondition.Get(); ok {
				condName := cst.TypeName(tc)
				for _, r := range rules {
					if spr, ok := r.(SpreadRule); ok {
						spr.CheckSpread(ctx, typeName, condName, s)
					}
				}
				visiting[name.Value] = true
				walkSelectionSetFields(ctx, frag.Def.SelectionSet, condName, rules, visiting)
				delete(visiting, name.Value)
			}
		}
	}
}

func fieldName(f *cst.Field) string {
	if n, ok := f.Name.Get(); ok {
		return n.Value
	}
	return ""
}

func resolveFieldType(parent *db.TypeEntry, name string) string {
	if parent == nil || name == "" {
		return ""
	}
	if name == "__typename" {
		return "String"
	}
	for _, fd := range parent.Fields() {
		if n, ok := fd.Name.Get(); ok && n.Value == name {
			return cst.TypeName(fieldTypeOrNil(fd))
		}
	}
	return ""
}

func fieldTypeOrNil(fd *cst.FieldDefinition) cst.Type {
	if t, ok := fd.Type.Get(); ok {
		return t
	}
	return nil
}
