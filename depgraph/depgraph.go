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

// Package depgraph tracks which definitions a definition's analysis
// consumed, so that when a definition is replaced or removed only the
// definitions whose analysis actually read it get invalidated (§4.4),
// grounded on original_source/litho-compiler/src/dependency.rs's
// Dependency/Producer/Consumer/Tracker design, ported from its Rust
// enum-of-variants into a small tagged struct since Go has no sum types.
package depgraph

import "github.com/latticeql/lattice/cst"

// Kind is the category of thing a Dependency names.
type Kind uint8

const (
	Query Kind = iota
	Mutation
	Subscription
	Schema
	Type
	Directive
	Fragment
)

// Dependency names one producer: either a singleton (Query/Mutation/
// Subscription/Schema — there is at most one root operation type and one
// schema per database) or a named Type/Directive/Fragment.
type Dependency struct {
	Kind Kind
	Name string // unused for the four singleton kinds
}

func Type_(name string) Dependency      { return Dependency{Kind: Type, Name: name} }
func Directive_(name string) Dependency { return Dependency{Kind: Directive, Name: name} }
func Fragment_(name string) Dependency  { return Dependency{Kind: Fragment, Name: name} }

var (
	QueryDep        = Dependency{Kind: Query}
	MutationDep     = Dependency{Kind: Mutation}
	SubscriptionDep = Dependency{Kind: Subscription}
	SchemaDep       = Dependency{Kind: Schema}
)

// Graph is a bipartite producer→consumer edge set: each definition ID
// records the set of Dependency values its analysis pass read, and each
// Dependency records the set of definition IDs that read it.
type Graph struct {
	consumes map[cst.DefinitionID]map[Dependency]struct{}
	consumers map[Dependency]map[cst.DefinitionID]struct{}
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		consumes:  make(map[cst.DefinitionID]map[Dependency]struct{}),
		consumers: make(map[Dependency]map[cst.DefinitionID]struct{}),
	}
}

// Consume records that def's analysis read dep.
func (g *Graph) Consume(def cst.DefinitionID, dep Dependency) {
	if g.consumes[def] == nil {
		g.consumes[def] = make(map[Dependency]struct{})
	}
	g.consumes[def][dep] = struct{}{}
	if g.consumers[dep] == nil {
		g.consumers[dep] = make(map[cst.DefinitionID]struct{})
	}
	g.consumers[dep][def] = struct{}{}
}

// Remove forgets every edge def was party to, as either consumer or
// (implicitly, via the caller re-adding fresh Produce calls) producer.
func (g *Graph) Remove(def cst.DefinitionID) {
	for dep := range g.consumes[def] {
		delete(g.consumers[dep], def)
	}
	delete(g.consumes, def)
}

// Invalidate returns the transitive closure of definitions that consumed
// dep, directly or (because one consumer's own identity is itself a
// Dependency, e.g. Fragment(name)) transitively through another consumer's
// dependency edges. The worklist never revisits an accumulated definition,
// so cycles (two fragments spreading each other) terminate.
func (g *Graph) Invalidate(dep Dependency, nameOf func(cst.DefinitionID) (Dependency, bool)) []cst.DefinitionID {
	seen := make(map[cst.DefinitionID]struct{})
	var result []cst.DefinitionID
	worklist := []Dependency{dep}
	visitedDeps := make(map[Dependency]struct{})

	for len(worklist) > 0 {
		d := worklist[0]
		worklist = worklist[1:]
		if _, ok := visitedDeps[d]; ok {
			continue
		}
		visitedDeps[d] = struct{}{}

		for def := range g.consumers[d] {
			if _, ok := seen[def]; ok {
				continue
			}
			seen[def] = struct{}{}
			result = append(result, def)
			if asDep, ok := nameOf(def); ok {
				worklist = append(worklist, asDep)
			}
		}
	}
	return result
}
