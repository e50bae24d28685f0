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

// Package compiler implements the incremental compiler shell (§4.8):
// AddDocument/RemoveDocument/ReplaceDocument maintain a set of parsed
// documents, a db.Database indexed over all of them, and a depgraph.Graph
// recording which definition's validation consumed which product, so a
// Rebuild only re-validates definitions whose cache entry went stale.
// Grounded on original_source/litho-compiler/src/compiler.rs's Compiler<T>,
// translated from its HashMap<SourceId, (Document, bool)> plus
// invalidate(definition_ids) -> HashSet<SourceId> shape into Go maps guarded
// by a single mutex (§5: the shell is single-threaded with respect to one
// document set).
package compiler

import (
	"sync"

	"go.uber.org/zap"

	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/db"
	"github.com/latticeql/lattice/depgraph"
	"github.com/latticeql/lattice/diagnostic"
	"github.com/latticeql/lattice/parser"
	"github.com/latticeql/lattice/source"
	"github.com/latticeql/lattice/validator"
)

type documentEntry struct {
	doc      *cst.Document
	isImport bool
	diags    []diagnostic.Diagnostic // parse-time diagnostics
}

// Shell is the compiler's incremental front end (§4.8, §6.2).
type Shell struct {
	mu sync.Mutex

	log *zap.Logger

	documents         map[source.ID]*documentEntry
	definitionSources map[cst.DefinitionID]source.ID
	definitionDiags   map[cst.DefinitionID][]diagnostic.Diagnostic

	database  *db.Database
	rules     []interface{}
	typeRules []interface{}
}

// Option configures a Shell at construction.
type Option func(*Shell)

// WithLogger attaches a zap.Logger the shell reports rebuild/invalidation
// activity through; the default is zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(s *Shell) { s.log = log }
}

// WithRules overrides the validator rule set DefaultRules() otherwise supplies.
func WithRules(rules []interface{}) Option {
	return func(s *Shell) { s.rules = rules }
}

// WithTypeRules overrides the type-system rule set DefaultTypeRules()
// otherwise supplies.
func WithTypeRules(rules []interface{}) Option {
	return func(s *Shell) { s.typeRules = rules }
}

// New returns an empty Shell.
func New(opts ...Option) *Shell {
	s := &Shell{
		log:               zap.NewNop(),
		documents:         make(map[source.ID]*documentEntry),
		definitionSources: make(map[cst.DefinitionID]source.ID),
		definitionDiags:   make(map[cst.DefinitionID][]diagnostic.Diagnostic),
		database:          db.New(),
		rules:             validator.DefaultRules(),
		typeRules:         validator.DefaultTypeRules(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Database returns the shell's merged semantic database (§6.2).
func (s *Shell) Database() *db.Database {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.database
}

// Document returns the parsed CST for sourceID, if it is currently loaded.
func (s *Shell) Document(id source.ID) (*cst.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.documents[id]
	if !ok {
		return nil, false
	}
	return entry.doc, true
}

// AddDocument parses text, indexes its definitions, and returns the set of
// source ids whose diagnostics are now stale (§4.8).
func (s *Shell) AddDocument(id source.ID, text string, isImport bool) []source.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addDocumentLocked(id, text, isImport)
}

func (s *Shell) addDocumentLocked(id source.ID, text string, isImport bool) []source.ID {
	doc, diags := parser.ParseAny(id, lexText(id, text))

	indexDiags := s.database.Index(doc)
	diags = append(diags, indexDiags...)

	stale := make(map[cst.DefinitionID]struct{})
	for _, def := range doc.Definitions {
		s.definitionSources[def.ID] = id
		dep, ok := productOf(def)
		if ok {
			for _, invalidated := range s.database.Graph.Invalidate(dep, s.nameOf) {
				stale[invalidated] = struct{}{}
			}
		}
		for _, consumed := range consumesOf(doc, def) {
			s.database.Graph.Consume(def.ID, consumed)
		}
	}

	s.documents[id] = &documentEntry{doc: doc, isImport: isImport, diags: diags}

	sourceIDs := s.invalidateLocked(stale)
	s.log.Debug("added document", zap.String("source", string(id)), zap.Int("stale_sources", len(sourceIDs)))
	return sourceIDs
}

// RemoveDocument drops sourceID's CST, invalidates its transitive consumers,
// and returns the stale source ids (§4.8).
func (s *Shell) RemoveDocument(id source.ID) []source.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeDocumentLocked(id)
}

func (s *Shell) removeDocumentLocked(id source.ID) []source.ID {
	entry, ok := s.documents[id]
	if !ok {
		return nil
	}

	stale := make(map[cst.DefinitionID]struct{})
	for _, def := range entry.doc.Definitions {
		for _, invalidated := range s.database.Graph.Invalidate(depOf(def), s.nameOf) {
			stale[invalidated] = struct{}{}
		}
		s.database.Graph.Remove(def.ID)
	}

	s.database.Remove(entry.doc)
	delete(s.documents, id)

	sourceIDs := s.invalidateLocked(stale)

	for _, def := range entry.doc.Definitions {
		delete(s.definitionSources, def.ID)
	}

	s.log.Debug("removed document", zap.String("source", string(id)))
	return sourceIDs
}

// ReplaceDocument is Remove followed by Add (§4.8).
func (s *Shell) ReplaceDocument(id source.ID, text string, isImport bool) []source.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	sourceIDs := s.removeDocumentLocked(id)
	sourceIDs = append(sourceIDs, s.addDocumentLocked(id, text, isImport)...)
	return dedupSourceIDs(sourceIDs)
}

func (s *Shell) invalidateLocked(definitionIDs map[cst.DefinitionID]struct{}) []source.ID {
	var sourceIDs []source.ID
	seen := make(map[source.ID]struct{})
	for defID := range definitionIDs {
		delete(s.definitionDiags, defID)
		if srcID, ok := s.definitionSources[defID]; ok {
			if _, dup := seen[srcID]; !dup {
				seen[srcID] = struct{}{}
				sourceIDs = append(sourceIDs, srcID)
			}
		}
	}
	return sourceIDs
}

// Rebuild discards the database's tables (keeping its dependency graph, so
// later edits still invalidate their consumers), re-indexes every loaded document, and
// re-validates any definition whose cache entry is missing (§4.8). Type-
// system rules (§4.6.2) run once against the whole merged database, since a
// type's definition and its extensions may live in different documents;
// executable rules (§4.6.1) run once per document, since they're already
// scoped that way.
func (s *Shell) Rebuild() {
	s.mu.Lock()
	defer s.mu.Unlock()

	graph := s.database.Graph
	s.database = db.New()
	s.database.Graph = graph
	for _, entry := range s.documents {
		s.database.Index(entry.doc)
	}

	typeDiags := validator.ValidateTypeSystem(s.database, s.typeRules)

	for id, entry := range s.documents {
		var execDiags []diagnostic.Diagnostic
		needsExec := false
		for _, def := range entry.doc.Definitions {
			if def.IsExecutable() {
				if _, cached := s.definitionDiags[def.ID]; !cached {
					needsExec = true
				}
			}
		}
		if needsExec {
			execDiags = validator.Validate(s.database, entry.doc, s.rules)
		}

		for _, def := range entry.doc.Definitions {
			if _, cached := s.definitionDiags[def.ID]; cached {
				continue
			}
			var pool []diagnostic.Diagnostic
			if def.IsExecutable() {
				pool = execDiags
			} else {
				pool = typeDiags
			}
			s.definitionDiags[def.ID] = diagnosticsWithin(pool, def.Span())
			s.definitionSources[def.ID] = id
		}
	}
	s.log.Info("rebuilt", zap.Int("documents", len(s.documents)))
}

// diagnosticsWithin filters all to the diagnostics whose span falls inside
// span — how a whole-document or whole-database validation pass's output
// gets attributed back to the single definition that produced it.
func diagnosticsWithin(all []diagnostic.Diagnostic, span source.Span) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, d := range all {
		if d.Span.SourceID == span.SourceID && d.Span.Start >= span.Start && d.Span.End <= span.End {
			out = append(out, d)
		}
	}
	return out
}

// Diagnostics streams sourceID's parse diagnostics concatenated with the
// cached per-definition validation diagnostics of every definition in that
// source (§4.8).
func (s *Shell) Diagnostics(id source.ID) []diagnostic.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.documents[id]
	if !ok {
		return nil
	}
	diags := append([]diagnostic.Diagnostic(nil), entry.diags...)
	for _, def := range entry.doc.Definitions {
		diags = append(diags, s.definitionDiags[def.ID]...)
	}
	return diags
}

func (s *Shell) nameOf(id cst.DefinitionID) (depgraph.Dependency, bool) {
	for _, entry := range s.documents {
		for _, def := range entry.doc.Definitions {
			if def.ID != id {
				continue
			}
			return depOf(def), true
		}
	}
	return depgraph.Dependency{}, false
}

func dedupSourceIDs(ids []source.ID) []source.ID {
	seen := make(map[source.ID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
