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

// Package executor runs a request's selected operation to completion against
// a resolver.Resolver (§4.7), generalizing botobag/artemis's graphql/executor
// package: the teacher walks a fully-typed schema graph (graphql.Object,
// graphql.Field with a bound Resolver per field) and dispatches through a
// pluggable concurrent/sequential Dispatcher with a sync.Pool-recycled task
// type; this toolchain's schema is a db.Database of untyped CST definitions
// and the "what resolves this field" decision is pushed entirely to the
// single application-supplied Resolver, so the field-level task/dispatcher
// machinery collapses into one recursive function using
// golang.org/x/sync/errgroup for the concurrent fan-out (§5).
package executor

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/latticeql/lattice/cst"
	"github.com/latticeql/lattice/db"
	"github.com/latticeql/lattice/resolver"
)

// Request is one execution request (§3.6, §6.4).
type Request struct {
	OperationName string
	Document      *cst.Document
	Variables     map[string]interface{}
}

// ResponseError is one entry of a Response's "errors" array.
type ResponseError struct {
	Message string
	Path    []interface{}
}

// Response is the top-level execution result (§3.6).
type Response struct {
	Data   *OrderedMap
	Errors []ResponseError
}

// requestError is returned by Execute itself (not recorded as a field
// error) for the GetOperation failures named in §4.7 step 1.
type requestError struct{ message string }

func (e *requestError) Error() string { return e.message }

// errObjectWithoutSelection marks a resolver breaking the Intermediate
// contract (§4.7: an Object intermediate requires a field with a
// sub-selection) — a programming error in the supplied resolver.Resolver,
// not a data-dependent field failure, so it aborts Execute with a wrapped
// error instead of being recorded as one more ResponseError.
var errObjectWithoutSelection = errors.New("resolver returned an Object intermediate for a field with no sub-selection")

func missingOperation() error { return &requestError{"missing_operation: the document defines no operation"} }
func unspecifiedOperation() error {
	return &requestError{"unspecified_operation: document defines multiple operations, operationName is required"}
}
func unknownOperation(name string, known []string) error {
	return &requestError{fmt.Sprintf("unknown_operation: %q not found among %v", name, known)}
}

// execState carries the read-only context threaded through one Execute call.
type execState struct {
	ctx       context.Context
	database  *db.Database
	resolver  resolver.Resolver
	document  *cst.Document
	fragments map[string]*cst.FragmentDefinition
	variables map[string]interface{}
	mutation  bool // true for a mutation operation: siblings run sequentially
}

// Execute runs req's selected operation to completion (§4.7).
func Execute(ctx context.Context, req Request, database *db.Database, res resolver.Resolver) (*Response, error) {
	op, err := getOperation(req)
	if err != nil {
		return nil, err
	}

	fragments := collectFragments(req.Document)

	variables, varErrs := coerceVariableValues(op, req.Variables)

	state := &execState{
		ctx:       ctx,
		database:  database,
		resolver:  res,
		document:  req.Document,
		fragments: fragments,
		variables: variables,
		mutation:  op.OperationType == cst.OperationTypeMutation,
	}

	resp := &Response{}
	resp.Errors = append(resp.Errors, varErrs...)

	rootValue, rootTypeName := rootValueFor(op.OperationType, res, database)

	selectionSet, ok := op.SelectionSet.Get()
	if !ok {
		return resp, nil
	}

	data, fieldErrs, err := state.executeSelectionSet(selectionSet, rootValue, rootTypeName, nil)
	if err != nil {
		return nil, errors.Wrap(err, "executing selection set")
	}
	resp.Data = data
	resp.Errors = append(resp.Errors, fieldErrs...)
	return resp, nil
}

func rootValueFor(opType cst.OperationType, res resolver.Resolver, database *db.Database) (interface{}, string) {
	typeName := database.RootOperationType(opType)
	root, ok := res.(resolver.Root)
	if !ok {
		return nil, typeName
	}
	switch opType {
	case cst.OperationTypeMutation:
		return root.Mutation(), typeName
	case cst.OperationTypeSubscription:
		return root.Subscription(), typeName
	default:
		return root.Query(), typeName
	}
}

// getOperation implements §4.7 step 1.
func getOperation(req Request) (*cst.OperationDefinition, error) {
	var ops []*cst.OperationDefinition
	names := make([]string, 0)
	for _, def := range req.Document.Definitions {
		if def.Operation == nil {
			continue
		}
		ops = append(ops, def.Operation)
		if def.Operation.Name != nil {
			names = append(names, def.Operation.Name.Value)
		}
	}
	if len(ops) == 0 {
		return nil, missingOperation()
	}
	if req.OperationName == "" {
		if len(ops) > 1 {
			return nil, unspecifiedOperation()
		}
		return ops[0], nil
	}
	for _, op := range ops {
		if op.Name != nil && op.Name.Value == req.OperationName {
			return op, nil
		}
	}
	return nil, unknownOperation(req.OperationName, names)
}

func collectFragments(doc *cst.Document) map[string]*cst.FragmentDefinition {
	out := make(map[string]*cst.FragmentDefinition)
	for _, def := range doc.Definitions {
		if def.Fragment == nil {
			continue
		}
		if name, ok := def.Fragment.FragmentName.Get(); ok {
			out[name.Value] = def.Fragment
		}
	}
	return out
}

// coerceVariableValues implements §4.7 step 2.
func coerceVariableValues(op *cst.OperationDefinition, provided map[string]interface{}) (map[string]interface{}, []ResponseError) {
	values := make(map[string]interface{}, len(op.VariableDefinitions))
	var errs []ResponseError
	for _, def := range op.VariableDefinitions {
		name, ok := def.Variable.Get()
		if !ok {
			continue
		}
		if v, present := provided[name.Value]; present {
			values[name.Value] = v
			continue
		}
		if def.DefaultValue != nil {
			values[name.Value] = coerceLiteral(def.DefaultValue, provided)
			continue
		}
		if typ, ok := def.Type.Get(); ok && cst.IsNonNull(typ) {
			errs = append(errs, ResponseError{
				Message: fmt.Sprintf("variable $%s of required type is not provided", name.Value),
			})
		}
	}
	return values, errs
}

// coerceLiteral turns a cst.Value into a JSON-shaped runtime value,
// resolving Variable references against vars (absent if unbound, per §4.7
// step 3.1).
func coerceLiteral(v cst.Value, vars map[string]interface{}) interface{} {
	switch n := v.(type) {
	case *cst.IntValue:
		if i, err := strconv.ParseInt(n.Raw, 10, 64); err == nil {
			return i
		}
		return n.Raw
	case *cst.FloatValue:
		if f, err := strconv.ParseFloat(n.Raw, 64); err == nil {
			return f
		}
		return n.Raw
	case *cst.StringValue:
		return n.Value
	case *cst.BooleanValue:
		return n.Value
	case *cst.NullValue:
		return nil
	case *cst.EnumValue:
		return n.Name
	case *cst.VariableValue:
		val, _ := vars[n.Name]
		return val
	case *cst.ListValue:
		out := make([]interface{}, len(n.Values))
		for i, elem := range n.Values {
			out[i] = coerceLiteral(elem, vars)
		}
		return out
	case *cst.ObjectValue:
		out := make(map[string]interface{}, len(n.Fields))
		for _, f := range n.Fields {
			name, ok := f.Name.Get()
			if !ok {
				continue
			}
			val, ok := f.Value.Get()
			if !ok {
				continue
			}
			out[name.Value] = coerceLiteral(val, vars)
		}
		return out
	}
	return nil
}

// coerceArguments resolves a field's or directive's argument list into a
// runtime map, following §4.7 step 3.1's rule that a bare Variable(name)
// with no binding is simply absent from the map (not present-with-nil).
func (s *execState) coerceArguments(args []*cst.Argument) map[string]interface{} {
	out := make(map[string]interface{}, len(args))
	for _, arg := range args {
		name, ok := arg.Name.Get()
		if !ok {
			continue
		}
		val, ok := arg.Value.Get()
		if !ok {
			continue
		}
		if vv, isVar := val.(*cst.VariableValue); isVar {
			if v, bound := s.variables[vv.Name]; bound {
				out[name.Value] = v
			}
			continue
		}
		out[name.Value] = coerceLiteral(val, s.variables)
	}
	return out
}

// selectedField pairs a response key with the ordered occurrences of a
// field under that key in one selection set (§4.7 step 3, field grouping).
type selectedField struct {
	key        string
	selections []*cst.Field
}

// collectFields implements §4.7 step 3's CollectFields: flattening fragment
// spreads and inline fragments, applying DoesFragmentApply, grouped by
// response key in first-appearance order.
func (s *execState) collectFields(set *cst.SelectionSet, parentTypeName string, visited map[string]bool) []selectedField {
	if visited == nil {
		visited = make(map[string]bool)
	}
	var order []string
	grouped := make(map[string]*selectedField)

	for _, sel := range set.Selections {
		switch node := sel.(type) {
		case *cst.Field:
			if _, ok := node.Name.Get(); !ok {
				continue
			}
			key := node.ResponseKey()
			entry, exists := grouped[key]
			if !exists {
				entry = &selectedField{key: key}
				grouped[key] = entry
				order = append(order, key)
			}
			entry.selections = append(entry.selections, node)
		case *cst.InlineFragment:
			if node.TypeCondition != nil && !s.doesFragmentApply(cst.TypeName(node.TypeCondition), parentTypeName) {
				continue
			}
			inner, ok := node.SelectionSet.Get()
			if !ok {
				continue
			}
			for _, f := range s.collectFields(inner, parentTypeName, visited) {
				s.mergeInto(grouped, &order, f)
			}
		case *cst.FragmentSpread:
			name, ok := node.FragmentName.Get()
			if !ok || visited[name.Value] {
				continue
			}
			visited[name.Value] = true
			frag, ok := s.fragments[name.Value]
			if !ok {
				continue
			}
			cond, ok := frag.TypeCondition.Get()
			if ok && !s.doesFragmentApply(cst.TypeName(cond), parentTypeName) {
				continue
			}
			inner, ok := frag.SelectionSet.Get()
			if !ok {
				continue
			}
			for _, f := range s.collectFields(inner, parentTypeName, visited) {
				s.mergeInto(grouped, &order, f)
			}
		}
	}

	result := make([]selectedField, 0, len(order))
	for _, key := range order {
		result = append(result, *grouped[key])
	}
	return result
}

func (s *execState) mergeInto(grouped map[string]*selectedField, order *[]string, f selectedField) {
	entry, exists := grouped[f.key]
	if !exists {
		entry = &selectedField{key: f.key}
		grouped[f.key] = entry
		*order = append(*order, f.key)
	}
	entry.selections = append(entry.selections, f.selections...)
}

// doesFragmentApply is the default DoesFragmentApply test named in §4.7: a
// type condition applies when its name equals the runtime parent type name.
// A Resolver wanting abstract-type refinement (interfaces/unions) can widen
// this via the database's possible-types relation, consulted here so that a
// fragment on an interface/union still matches an implementing object.
func (s *execState) doesFragmentApply(condition, parentTypeName string) bool {
	if condition == parentTypeName {
		return true
	}
	entry := s.database.Type(condition)
	if entry == nil || entry.Def == nil {
		return false
	}
	switch entry.Def.DefKind() {
	case cst.KindInterface:
		return s.database.ImplementsInterface(parentTypeName, condition)
	case cst.KindUnion:
		return s.database.IsUnionMember(condition, parentTypeName)
	}
	return false
}

// executeSelectionSet implements the bulk of §4.7 step 3: collect fields,
// then execute each group, writing results into an OrderedMap that
// preserves selection order regardless of resolution interleaving.
func (s *execState) executeSelectionSet(set *cst.SelectionSet, parentValue interface{}, parentTypeName string, path []interface{}) (*OrderedMap, []ResponseError, error) {
	fields := s.collectFields(set, parentTypeName, nil)
	result := NewOrderedMap(len(fields))
	values := make([]interface{}, len(fields))
	errLists := make([][]ResponseError, len(fields))

	run := func(i int) error {
		f := fields[i]
		fieldPath := append(append([]interface{}{}, path...), f.key)
		v, errs, err := s.executeField(f, parentValue, parentTypeName, fieldPath)
		values[i] = v
		errLists[i] = errs
		return err
	}

	if s.mutation {
		for i := range fields {
			if err := run(i); err != nil {
				return result, nil, err
			}
		}
	} else {
		g, _ := errgroup.WithContext(s.ctx)
		for i := range fields {
			i := i
			g.Go(func() error {
				select {
				case <-s.ctx.Done():
					return s.ctx.Err()
				default:
				}
				return run(i)
			})
		}
		if err := g.Wait(); err != nil {
			if errors.Is(err, errObjectWithoutSelection) {
				return result, nil, err
			}
			return result, []ResponseError{{Message: err.Error(), Path: path}}, nil
		}
	}

	var errs []ResponseError
	for i, f := range fields {
		result.Set(f.key, values[i])
		errs = append(errs, errLists[i]...)
	}
	return result, errs, nil
}

// executeField implements §4.7 step 3's ExecuteField + CompleteValue.
func (s *execState) executeField(f selectedField, parentValue interface{}, parentTypeName string, path []interface{}) (interface{}, []ResponseError, error) {
	primary := f.selections[0]

	if f.key == "__typename" {
		if tn, ok := s.resolver.(resolver.Typename); ok {
			return tn.Typename(s.ctx, parentValue), nil, nil
		}
		return parentTypeName, nil, nil
	}

	name, ok := primary.Name.Get()
	if !ok {
		return nil, nil, nil
	}

	if !s.resolver.CanResolve(s.ctx, parentValue, name.Value) {
		return nil, []ResponseError{{
			Message: fmt.Sprintf("unknown_field: %s.%s", parentTypeName, name.Value),
			Path:    path,
		}}, nil
	}

	args := s.coerceArguments(primary.Arguments)
	intermediate, err := s.resolver.Resolve(s.ctx, parentValue, name.Value, args)
	if err != nil {
		return nil, []ResponseError{{Message: err.Error(), Path: path}}, nil
	}

	return s.completeValue(intermediate, primary, path)
}

// completeValue implements §4.7 step 3.4's CompleteValue.
func (s *execState) completeValue(v resolver.Intermediate, field *cst.Field, path []interface{}) (interface{}, []ResponseError, error) {
	switch v.Kind {
	case resolver.KindValue:
		return v.Value, nil, nil

	case resolver.KindCollection:
		out := make([]interface{}, len(v.Collection))
		var errs []ResponseError
		for i, item := range v.Collection {
			itemPath := append(append([]interface{}{}, path...), i)
			val, itemErrs, err := s.completeValue(item, field, itemPath)
			if err != nil {
				return nil, nil, err
			}
			out[i] = val
			errs = append(errs, itemErrs...)
		}
		return out, errs, nil

	case resolver.KindObject:
		if field.SelectionSet == nil {
			fieldName := ""
			if name, ok := field.Name.Get(); ok {
				fieldName = name.Value
			}
			return nil, nil, errors.Wrapf(errObjectWithoutSelection, "field %q", fieldName)
		}
		typeName := parentTypeNameOf(s, v.Object, field)
		return s.executeSelectionSet(field.SelectionSet, v.Object, typeName, path)
	}
	return nil, nil, nil
}

func parentTypeNameOf(s *execState, value interface{}, field *cst.Field) string {
	if tn, ok := s.resolver.(resolver.Typename); ok {
		return tn.Typename(s.ctx, value)
	}
	return ""
}

// OrderedMap is a JSON object preserving field insertion order (§3.6).
type OrderedMap struct {
	keys   []string
	values map[string]interface{}
}

// NewOrderedMap returns an empty OrderedMap with room for size entries.
func NewOrderedMap(size int) *OrderedMap {
	return &OrderedMap{keys: make([]string, 0, size), values: make(map[string]interface{}, size)}
}

// Set appends key (or overwrites its value in place, if already present).
func (m *OrderedMap) Set(key string, value interface{}) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *OrderedMap) Get(key string) (interface{}, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the insertion-ordered key list. Callers must not mutate it.
func (m *OrderedMap) Keys() []string { return m.keys }
