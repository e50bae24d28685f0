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

// Command latticectl loads a schema directory and a query file, reports any
// diagnostics, and otherwise executes the query against a toy resolver built
// over map[string]interface{} loaded from a JSON fixture (§6.7). It exists
// because every complete systems-language repo in the corpus ships at least
// one driver binary exercising its library surface; the teacher itself has
// none, so this plays the role original_source's litho-cli would have.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/latticeql/lattice/compiler"
	"github.com/latticeql/lattice/executor"
	"github.com/latticeql/lattice/resolver"
	"github.com/latticeql/lattice/source"
)

func main() {
	schemaDir := flag.String("schema", "", "directory of .graphql schema files")
	queryFile := flag.String("query", "", "path to the query document to execute")
	dataFile := flag.String("data", "", "path to a JSON fixture used as the toy resolver's root value")
	operationName := flag.String("operation", "", "operation name to execute when the query document defines more than one")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			log = l
		}
	}

	if *schemaDir == "" || *queryFile == "" {
		fmt.Fprintln(os.Stderr, "usage: latticectl -schema <dir> -query <file> [-data <file>] [-operation <name>]")
		os.Exit(2)
	}

	if err := run(*schemaDir, *queryFile, *dataFile, *operationName, log); err != nil {
		fmt.Fprintln(os.Stderr, "latticectl:", err)
		os.Exit(1)
	}
}

func run(schemaDir, queryFile, dataFile, operationName string, log *zap.Logger) error {
	shell := compiler.New(compiler.WithLogger(log))

	schemaFiles, err := filepath.Glob(filepath.Join(schemaDir, "*.graphql"))
	if err != nil {
		return errors.Wrap(err, "globbing schema directory")
	}
	if len(schemaFiles) == 0 {
		return fmt.Errorf("no .graphql files found under %s", schemaDir)
	}
	for _, path := range schemaFiles {
		text, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading %s", path)
		}
		shell.AddDocument(source.NewID(), string(text), true)
	}

	queryText, err := os.ReadFile(queryFile)
	if err != nil {
		return errors.Wrapf(err, "reading %s", queryFile)
	}
	queryID := source.NewID()
	shell.AddDocument(queryID, string(queryText), false)

	shell.Rebuild()

	var hadDiagnostics bool
	for _, d := range shell.Diagnostics(queryID) {
		hadDiagnostics = true
		fmt.Fprintf(os.Stderr, "%s: %s\n", d.Code, d.Message)
	}
	if hadDiagnostics {
		return fmt.Errorf("query document failed validation")
	}

	doc, _ := shell.Document(queryID)

	root := make(map[string]interface{})
	if dataFile != "" {
		raw, err := os.ReadFile(dataFile)
		if err != nil {
			return errors.Wrapf(err, "reading %s", dataFile)
		}
		if err := json.Unmarshal(raw, &root); err != nil {
			return errors.Wrapf(err, "parsing %s as JSON", dataFile)
		}
	}

	res := &mapResolver{root: root}
	resp, err := executor.Execute(context.Background(), executor.Request{
		OperationName: operationName,
		Document:      doc,
		Variables:     nil,
	}, shell.Database(), res)
	if err != nil {
		return errors.Wrap(err, "executing")
	}

	return resp.WriteTo(os.Stdout)
}

// mapResolver is the toy resolver named in §6.7: every object-shaped value
// is a map[string]interface{}, every list-shaped value is a []interface{},
// and leaves are whatever encoding/json decoded them into.
type mapResolver struct {
	root map[string]interface{}
}

var (
	_ resolver.Resolver = (*mapResolver)(nil)
	_ resolver.Root     = (*mapResolver)(nil)
	_ resolver.Typename = (*mapResolver)(nil)
)

func (r *mapResolver) Query() interface{}       { return r.root }
func (r *mapResolver) Mutation() interface{}     { return r.root }
func (r *mapResolver) Subscription() interface{} { return r.root }

func (r *mapResolver) Typename(ctx context.Context, value interface{}) string {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return ""
	}
	name, _ := obj["__typename"].(string)
	return name
}

func (r *mapResolver) CanResolve(ctx context.Context, value interface{}, fieldName string) bool {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return false
	}
	_, exists := obj[fieldName]
	return exists
}

func (r *mapResolver) Resolve(ctx context.Context, value interface{}, fieldName string, args map[string]interface{}) (resolver.Intermediate, error) {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return resolver.Null(), nil
	}
	return wrap(obj[fieldName]), nil
}

// wrap classifies a decoded JSON value into the Intermediate shape the
// executor expects, recursing into list elements.
func wrap(v interface{}) resolver.Intermediate {
	switch val := v.(type) {
	case nil:
		return resolver.Null()
	case map[string]interface{}:
		return resolver.Object(val)
	case []interface{}:
		items := make([]resolver.Intermediate, len(val))
		for i, item := range val {
			items[i] = wrap(item)
		}
		return resolver.Collection(items)
	default:
		return resolver.Value(val)
	}
}
