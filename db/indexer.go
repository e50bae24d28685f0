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

package db

import (
	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/diagnostic"
)

// Index walks doc's top-level definitions into the database's tables,
// reporting a diagnostic for any name collision instead of refusing the
// document — indexing never fails, it just narrows what later passes can
// trust about uniqueness (§4.5, grounded on
// original_source/litho-types/src/indexer.rs).
func (db *Database) Index(doc *cst.Document) []diagnostic.Diagnostic {
	db.mu.Lock()
	defer db.mu.Unlock()

	var diags []diagnostic.Diagnostic
	for _, def := range doc.Definitions {
		switch {
		case def.Operation != nil:
			diags = append(diags, db.indexOperation(def.Operation, def.ID)...)
		case def.Fragment != nil:
			diags = append(diags, db.indexFragment(def.Fragment, def.ID)...)
		case def.Schema != nil:
			db.schema = def.Schema
			db.schemaID = def.ID
		case def.SchemaExt != nil:
			db.schemaExt = append(db.schemaExt, def.SchemaExt)
		case def.TypeDef != nil:
			diags = append(diags, db.indexTypeDefinition(def.TypeDef, def.ID)...)
		case def.TypeExt != nil:
			db.indexTypeExtension(def.TypeExt, def.ID)
		case def.DirectiveDef != nil:
			diags = append(diags, db.indexDirectiveDefinition(def.DirectiveDef, def.ID)...)
		}
	}
	return diags
}

func (db *Database) indexOperation(op *cst.OperationDefinition, id cst.DefinitionID) []diagnostic.Diagnostic {
	name := ""
	if op.Name != nil {
		name = op.Name.Value
	}
	var diags []diagnostic.Diagnostic
	if existing := db.operations[name]; len(existing) > 0 {
		if name == "" {
			diags = append(diags, diagnostic.New(diagnostic.CodeLoneAnonymousOperation, op.Span(),
				"an anonymous operation must be the only operation in the document"))
		} else {
			diags = append(diags, diagnostic.New(diagnostic.CodeDuplicateOperationName, op.Span(),
				"the operation name `"+name+"` is not unique"))
		}
	}
	db.operations[name] = append(db.operations[name], &OperationEntry{Def: op, DefID: id})
	return diags
}

func (db *Database) indexFragment(frag *cst.FragmentDefinition, id cst.DefinitionID) []diagnostic.Diagnostic {
	name, ok := frag.FragmentName.Get()
	if !ok {
		return nil
	}
	var diags []diagnostic.Diagnostic
	if _, exists := db.fragments[name.Value]; exists {
		diags = append(diags, diagnostic.New(diagnostic.CodeDuplicateFragmentName, frag.Span(),
			"the fragment name `"+name.Value+"` is not unique"))
	}
	db.fragments[name.Value] = &FragmentEntry{Def: frag, DefID: id}
	return diags
}

func (db *Database) indexTypeDefinition(def cst.TypeDefinition, id cst.DefinitionID) []diagnostic.Diagnostic {
	name, ok := def.TypeName().Get()
	if !ok {
		return nil
	}
	var diags []diagnostic.Diagnostic
	entry, exists := db.types[name.Value]
	if !exists {
		entry = &TypeEntry{}
		db.types[name.Value] = entry
	}
	if entry.Def != nil {
		diags = append(diags, diagnostic.New(diagnostic.CodeDuplicateTypeName, def.Span(),
			"the type `"+name.Value+"` is defined more than once"))
	}
	entry.Def = def
	entry.DefID = id
	return diags
}

func (db *Database) indexTypeExtension(ext cst.TypeExtension, id cst.DefinitionID) {
	name := ext.ExtendedTypeName()
	entry, exists := db.types[name]
	if !exists {
		entry = &TypeEntry{}
		db.types[name] = entry
	}
	entry.Extensions = append(entry.Extensions, ext)
	entry.ExtIDs = append(entry.ExtIDs, id)
}

func (db *Database) indexDirectiveDefinition(def *cst.DirectiveDefinition, id cst.DefinitionID) []diagnostic.Diagnostic {
	name, ok := def.Name.Get()
	if !ok {
		return nil
	}
	var diags []diagnostic.Diagnostic
	if _, exists := db.directives[name.Value]; exists {
		diags = append(diags, diagnostic.New(diagnostic.CodeDuplicateDirectiveName, def.Span(),
			"the directive `@"+name.Value+"` is defined more than once"))
	}
	db.directives[name.Value] = def
	db.directiveIDs[name.Value] = id
	return diags
}

// Remove drops every table entry contributed by def, the counterpart to
// Index used when a compiler.Shell replaces or deletes a document (§4.5).
func (db *Database) Remove(doc *cst.Document) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, def := range doc.Definitions {
		db.Graph.Remove(def.ID)
		switch {
		case def.Operation != nil:
			name := ""
			if def.Operation.Name != nil {
				name = def.Operation.Name.Value
			}
			db.operations[name] = removeByID(db.operations[name], def.ID)
		case def.Fragment != nil:
			if name, ok := def.Fragment.FragmentName.Get(); ok {
				if f, ok := db.fragments[name.Value]; ok && f.DefID == def.ID {
					delete(db.fragments, name.Value)
				}
			}
		case def.Schema != nil:
			if db.schemaID == def.ID {
				db.schema = nil
			}
		case def.TypeDef != nil:
			if name, ok := def.TypeDef.TypeName().Get(); ok {
				if entry, ok := db.types[name.Value]; ok && entry.DefID == def.ID {
					entry.Def = nil
				}
			}
		case def.TypeExt != nil:
			name := def.TypeExt.ExtendedTypeName()
			if entry, ok := db.types[name]; ok {
				entry.Extensions, entry.ExtIDs = removeExtByID(entry.Extensions, entry.ExtIDs, def.ID)
			}
		case def.DirectiveDef != nil:
			if name, ok := def.DirectiveDef.Name.Get(); ok {
				if db.directiveIDs[name.Value] == def.ID {
					delete(db.directives, name.Value)
					delete(db.directiveIDs, name.Value)
				}
			}
		}
	}
}

func removeByID(entries []*OperationEntry, id cst.DefinitionID) []*OperationEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.DefID != id {
			out = append(out, e)
		}
	}
	return out
}

func removeExtByID(exts []cst.TypeExtension, ids []cst.DefinitionID, id cst.DefinitionID) ([]cst.TypeExtension, []cst.DefinitionID) {
	var outExt []cst.TypeExtension
	var outID []cst.DefinitionID
	for i, e := range exts {
		if ids[i] != id {
			outExt = append(outExt, e)
			outID = append(outID, ids[i])
		}
	}
	return outExt, outID
}
