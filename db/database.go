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

// Package db implements the incremental semantic database (§4.5): by-name
// tables over every definition a compiler shell has indexed, split into
// a `definitions` half and an `extensions` half that are merged by
// chaining at query time, grounded on
// original_source/litho-types/src/database.rs.
package db

import (
	"sync"

	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/depgraph"
)

// TypeEntry merges a type's single definition (nil if never defined) with
// all extensions targeting it, in source order. Mirrors the bifurcated
// definitions/extensions tables chained on lookup in the Rust ancestor
// rather than eagerly merging on every write.
type TypeEntry struct {
	Def        cst.TypeDefinition
	DefID      cst.DefinitionID
	Extensions []cst.TypeExtension
	ExtIDs     []cst.DefinitionID
}

// Fields returns the entry's own fields followed by every extension's
// fields, in the order extensions were added — the merged view a resolver
// or validator actually wants.
func (e *TypeEntry) Fields() []*cst.FieldDefinition {
	var fields []*cst.FieldDefinition
	if obj, ok := e.Def.(*cst.ObjectTypeDefinition); ok {
		fields = append(fields, obj.Fields...)
	}
	if iface, ok := e.Def.(*cst.InterfaceTypeDefinition); ok {
		fields = append(fields, iface.Fields...)
	}
	for _, ext := range e.Extensions {
		switch x := ext.(type) {
		case *cst.ObjectTypeExtension:
			fields = append(fields, x.Fields...)
		case *cst.InterfaceTypeExtension:
			fields = append(fields, x.Fields...)
		}
	}
	return fields
}

// Implements returns the entry's own implements list plus every
// extension's, merged in source order.
func (e *TypeEntry) Implements() []*cst.NamedType {
	var out []*cst.NamedType
	if obj, ok := e.Def.(*cst.ObjectTypeDefinition); ok {
		out = append(out, obj.Implements...)
	}
	if iface, ok := e.Def.(*cst.InterfaceTypeDefinition); ok {
		out = append(out, iface.Implements...)
	}
	for _, ext := range e.Extensions {
		switch x := ext.(type) {
		case *cst.ObjectTypeExtension:
			out = append(out, x.Implements...)
		case *cst.InterfaceTypeExtension:
			out = append(out, x.Implements...)
		}
	}
	return out
}

// Members returns a union type entry's own members plus every extension's.
func (e *TypeEntry) Members() []*cst.NamedType {
	var out []*cst.NamedType
	if u, ok := e.Def.(*cst.UnionTypeDefinition); ok {
		out = append(out, u.Members...)
	}
	for _, ext := range e.Extensions {
		if x, ok := ext.(*cst.UnionTypeExtension); ok {
			out = append(out, x.Members...)
		}
	}
	return out
}

// Values returns an enum type entry's own values plus every extension's.
func (e *TypeEntry) Values() []*cst.EnumValueDefinition {
	var out []*cst.EnumValueDefinition
	if en, ok := e.Def.(*cst.EnumTypeDefinition); ok {
		out = append(out, en.Values...)
	}
	for _, ext := range e.Extensions {
		if x, ok := ext.(*cst.EnumTypeExtension); ok {
			out = append(out, x.Values...)
		}
	}
	return out
}

// InputFields returns an input-object type entry's own fields plus every
// extension's.
func (e *TypeEntry) InputFields() []*cst.InputValueDefinition {
	var out []*cst.InputValueDefinition
	if in, ok := e.Def.(*cst.InputObjectTypeDefinition); ok {
		out = append(out, in.Fields...)
	}
	for _, ext := range e.Extensions {
		if x, ok := ext.(*cst.InputObjectTypeExtension); ok {
			out = append(out, x.Fields...)
		}
	}
	return out
}

// OperationEntry indexes one named or anonymous operation.
type OperationEntry struct {
	Def   *cst.OperationDefinition
	DefID cst.DefinitionID
}

// FragmentEntry indexes one fragment definition.
type FragmentEntry struct {
	Def   *cst.FragmentDefinition
	DefID cst.DefinitionID
}

// Database is the merged view over every document a compiler.Shell has
// indexed (§4.5). All reads and writes are internally synchronized so a
// Shell can run resolvers against it from multiple goroutines (package
// executor) while a Rebuild is not in flight.
type Database struct {
	mu sync.RWMutex

	types      map[string]*TypeEntry
	directives map[string]*cst.DirectiveDefinition
	directiveIDs map[string]cst.DefinitionID

	schema    *cst.SchemaDefinition
	schemaID  cst.DefinitionID
	schemaExt []*cst.SchemaExtension

	operations map[string][]*OperationEntry // "" holds anonymous operations
	fragments  map[string]*FragmentEntry

	Graph *depgraph.Graph
}

// New returns an empty Database.
func New() *Database {
	return &Database{
		types:        make(map[string]*TypeEntry),
		directives:   make(map[string]*cst.DirectiveDefinition),
		directiveIDs: make(map[string]cst.DefinitionID),
		operations:   make(map[string][]*OperationEntry),
		fragments:    make(map[string]*FragmentEntry),
		Graph:        depgraph.New(),
	}
}

// Type looks up the merged entry for a named type, or nil if never defined.
func (db *Database) Type(name string) *TypeEntry {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.types[name]
}

// TypeNames returns every type name the database has an entry for (even one
// contributed only by an extension with no base definition), in no
// particular order — used to drive whole-schema type-system rules.
func (db *Database) TypeNames() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	names := make([]string, 0, len(db.types))
	for name := range db.types {
		names = append(names, name)
	}
	return names
}

// Directive looks up a directive definition by name.
func (db *Database) Directive(name string) (*cst.DirectiveDefinition, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	d, ok := db.directives[name]
	return d, ok
}

// Schema returns the single schema definition, if one was indexed.
func (db *Database) Schema() *cst.SchemaDefinition {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.schema
}

// RootOperationType returns the object type name bound to opType, falling
// back to the conventional Query/Mutation/Subscription names when no
// explicit schema definition names one (§4.5).
func (db *Database) RootOperationType(opType cst.OperationType) string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	roots := map[cst.OperationType]string{}
	if db.schema != nil {
		for _, r := range db.schema.RootOperationTypes {
			if n, ok := r.Type.Get(); ok {
				if name, ok := n.Name.Get(); ok {
					roots[r.OperationType] = name.Value
				}
			}
		}
	}
	for _, ext := range db.schemaExt {
		for _, r := range ext.RootOperationTypes {
			if n, ok := r.Type.Get(); ok {
				if name, ok := n.Name.Get(); ok {
					roots[r.OperationType] = name.Value
				}
			}
		}
	}
	if name, ok := roots[opType]; ok {
		return name
	}
	switch opType {
	case cst.OperationTypeQuery:
		return "Query"
	case cst.OperationTypeMutation:
		return "Mutation"
	case cst.OperationTypeSubscription:
		return "Subscription"
	}
	return ""
}

// Operation looks up a named operation, or the sole anonymous operation
// when name is "".
func (db *Database) Operation(name string) (*OperationEntry, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	entries := db.operations[name]
	if len(entries) == 0 {
		return nil, false
	}
	return entries[0], true
}

// Fragment looks up a fragment definition by name.
func (db *Database) Fragment(name string) (*FragmentEntry, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	f, ok := db.fragments[name]
	return f, ok
}

// ImplementsInterface reports whether typeName's merged Implements list
// names interfaceName, directly — transitive closure is computed by the
// caller walking this relation, since the database only stores one hop.
func (db *Database) ImplementsInterface(typeName, interfaceName string) bool {
	entry := db.Type(typeName)
	if entry == nil {
		return false
	}
	for _, i := range entry.Implements() {
		if cst.TypeName(i) == interfaceName {
			return true
		}
	}
	return false
}

// IsUnionMember reports whether unionName's merged Members list names typeName.
func (db *Database) IsUnionMember(unionName, typeName string) bool {
	entry := db.Type(unionName)
	if entry == nil {
		return false
	}
	for _, m := range entry.Members() {
		if cst.TypeName(m) == typeName {
			return true
		}
	}
	return false
}
