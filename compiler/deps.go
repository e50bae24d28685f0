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

package compiler

import (
	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/depgraph"
	"github.com/latticeql/lattice/lexer"
	"github.com/latticeql/lattice/source"
	"github.com/latticeql/lattice/token"
)

// lexText lexes raw document text into a token stream carrying id, so the
// shell's callers deal only in (id, text) pairs rather than constructing a
// source.Source themselves.
func lexText(id source.ID, text string) []token.Token {
	src := source.New(text, source.WithID(id))
	tokens, _ := lexer.Lex(src)
	return tokens
}

// productOf reports the Dependency identity def contributes to the graph —
// what some other definition's Consume call would name to depend on def.
// Operations don't produce anything nameable (nothing spreads an operation
// by name), so they report ok == false.
func productOf(def *cst.Definition) (depgraph.Dependency, bool) {
	switch {
	case def.Fragment != nil:
		name, ok := def.Fragment.FragmentName.Get()
		if !ok {
			return depgraph.Dependency{}, false
		}
		return depgraph.Fragment_(name.Value), true
	case def.TypeDef != nil:
		name, ok := def.TypeDef.TypeName().Get()
		if !ok {
			return depgraph.Dependency{}, false
		}
		return depgraph.Type_(name.Value), true
	case def.TypeExt != nil:
		return depgraph.Type_(def.TypeExt.ExtendedTypeName()), true
	case def.DirectiveDef != nil:
		name, ok := def.DirectiveDef.Name.Get()
		if !ok {
			return depgraph.Dependency{}, false
		}
		return depgraph.Directive_(name.Value), true
	case def.Schema != nil, def.SchemaExt != nil:
		return depgraph.SchemaDep, true
	}
	return depgraph.Dependency{}, false
}

// depOf is productOf without the ok flag, for call sites that only use the
// result to drive Invalidate and treat "nothing produced" as "nothing to do".
func depOf(def *cst.Definition) depgraph.Dependency {
	dep, _ := productOf(def)
	return dep
}

// depCollector accumulates the Dependency set one definition's analysis read,
// deduped, in first-seen order (order is cosmetic here; Consume is a set add).
type depCollector struct {
	seen map[depgraph.Dependency]struct{}
	out  []depgraph.Dependency
}

func (c *depCollector) add(dep depgraph.Dependency) {
	if _, ok := c.seen[dep]; ok {
		return
	}
	c.seen[dep] = struct{}{}
	c.out = append(c.out, dep)
}

func (c *depCollector) addType(t cst.Type) {
	if name := cst.TypeName(t); name != "" {
		c.add(depgraph.Type_(name))
	}
}

func (c *depCollector) addNamedType(t *cst.NamedType) {
	if t == nil {
		return
	}
	if name, ok := t.Name.Get(); ok {
		c.add(depgraph.Type_(name.Value))
	}
}

func (c *depCollector) addDirectives(dirs []*cst.Directive) {
	for _, d := range dirs {
		if name, ok := d.Name.Get(); ok {
			c.add(depgraph.Directive_(name.Value))
		}
	}
}

// consumesOf computes the full set of Dependency values def's semantics read
// from the rest of the database — everything that, if it changed, would
// require def to be re-validated (§4.8).
func consumesOf(doc *cst.Document, def *cst.Definition) []depgraph.Dependency {
	c := &depCollector{seen: make(map[depgraph.Dependency]struct{})}

	switch {
	case def.Operation != nil:
		consumesOperation(c, def.Operation)
	case def.Fragment != nil:
		consumesFragment(c, def.Fragment)
	case def.TypeDef != nil:
		consumesTypeDefinition(c, def.TypeDef)
	case def.TypeExt != nil:
		consumesTypeExtension(c, def.TypeExt)
	case def.DirectiveDef != nil:
		for _, arg := range def.DirectiveDef.Arguments {
			if t, ok := arg.Type.Get(); ok {
				c.addType(t)
			}
		}
	case def.Schema != nil:
		consumesRootTypes(c, def.Schema.RootOperationTypes)
		c.addDirectives(def.Schema.Directives)
	case def.SchemaExt != nil:
		consumesRootTypes(c, def.SchemaExt.RootOperationTypes)
		c.addDirectives(def.SchemaExt.Directives)
	}
	return c.out
}

func consumesRootTypes(c *depCollector, roots []*cst.RootOperationTypeDefinition) {
	for _, r := range roots {
		switch r.OperationType {
		case cst.OperationTypeQuery:
			c.add(depgraph.QueryDep)
		case cst.OperationTypeMutation:
			c.add(depgraph.MutationDep)
		case cst.OperationTypeSubscription:
			c.add(depgraph.SubscriptionDep)
		}
		if named, ok := r.Type.Get(); ok {
			c.addNamedType(named)
		}
	}
}

func consumesOperation(c *depCollector, op *cst.OperationDefinition) {
	switch op.OperationType {
	case cst.OperationTypeQuery:
		c.add(depgraph.QueryDep)
	case cst.OperationTypeMutation:
		c.add(depgraph.MutationDep)
	case cst.OperationTypeSubscription:
		c.add(depgraph.SubscriptionDep)
	}
	for _, v := range op.VariableDefinitions {
		if t, ok := v.Type.Get(); ok {
			c.addType(t)
		}
		c.addDirectives(v.Directives)
	}
	c.addDirectives(op.Directives)
	if set, ok := op.SelectionSet.Get(); ok {
		consumesSelectionSet(c, set)
	}
}

func consumesFragment(c *depCollector, frag *cst.FragmentDefinition) {
	if cond, ok := frag.TypeCondition.Get(); ok {
		c.addNamedType(cond)
	}
	c.addDirectives(frag.Directives)
	if set, ok := frag.SelectionSet.Get(); ok {
		consumesSelectionSet(c, set)
	}
}

func consumesSelectionSet(c *depCollector, set *cst.SelectionSet) {
	if set == nil {
		return
	}
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *cst.Field:
			c.addDirectives(s.Directives)
			consumesSelectionSet(c, s.SelectionSet)
		case *cst.FragmentSpread:
			if name, ok := s.FragmentName.Get(); ok {
				c.add(depgraph.Fragment_(name.Value))
			}
			c.addDirectives(s.Directives)
		case *cst.InlineFragment:
			c.addNamedType(s.TypeCondition)
			c.addDirectives(s.Directives)
			if inner, ok := s.SelectionSet.Get(); ok {
				consumesSelectionSet(c, inner)
			}
		}
	}
}

func consumesFieldDefinitions(c *depCollector, fields []*cst.FieldDefinition) {
	for _, f := range fields {
		if t, ok := f.Type.Get(); ok {
			c.addType(t)
		}
		for _, arg := range f.Arguments {
			if t, ok := arg.Type.Get(); ok {
				c.addType(t)
			}
			c.addDirectives(arg.Directives)
		}
		c.addDirectives(f.Directives)
	}
}

func consumesInputFields(c *depCollector, fields []*cst.InputValueDefinition) {
	for _, f := range fields {
		if t, ok := f.Type.Get(); ok {
			c.addType(t)
		}
		c.addDirectives(f.Directives)
	}
}

func consumesTypeDefinition(c *depCollector, def cst.TypeDefinition) {
	c.addDirectives(def.GetDirectives())
	switch d := def.(type) {
	case *cst.ObjectTypeDefinition:
		for _, i := range d.Implements {
			c.addNamedType(i)
		}
		consumesFieldDefinitions(c, d.Fields)
	case *cst.InterfaceTypeDefinition:
		for _, i := range d.Implements {
			c.addNamedType(i)
		}
		consumesFieldDefinitions(c, d.Fields)
	case *cst.UnionTypeDefinition:
		for _, m := range d.Members {
			c.addNamedType(m)
		}
	case *cst.InputObjectTypeDefinition:
		consumesInputFields(c, d.Fields)
	case *cst.EnumTypeDefinition:
		for _, v := range d.Values {
			c.addDirectives(v.Directives)
		}
	case *cst.ScalarTypeDefinition:
		// no further references
	}
}

func consumesTypeExtension(c *depCollector, ext cst.TypeExtension) {
	c.addDirectives(ext.GetDirectives())
	switch e := ext.(type) {
	case *cst.ObjectTypeExtension:
		for _, i := range e.Implements {
			c.addNamedType(i)
		}
		consumesFieldDefinitions(c, e.Fields)
	case *cst.InterfaceTypeExtension:
		for _, i := range e.Implements {
			c.addNamedType(i)
		}
		consumesFieldDefinitions(c, e.Fields)
	case *cst.UnionTypeExtension:
		for _, m := range e.Members {
			c.addNamedType(m)
		}
	case *cst.InputObjectTypeExtension:
		consumesInputFields(c, e.Fields)
	case *cst.EnumTypeExtension:
		for _, v := range e.Values {
			c.addDirectives(v.Directives)
		}
	case *cst.ScalarTypeExtension:
		// no further references
	}
}
