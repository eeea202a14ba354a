// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package transform

import "github.com/nicholasgasior/docbridge/ast"

// ExtractNodes returns every node of the requested kinds in document
// order (pre-order). With no kinds it returns every node in the tree,
// the document root included.
func ExtractNodes(doc *ast.Document, kinds ...ast.Kind) []ast.Node {
	if len(kinds) == 0 {
		return ast.Collect(doc, func(ast.Node) bool { return true })
	}
	want := make(map[ast.Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	return ast.Collect(doc, func(n ast.Node) bool { return want[n.Kind()] })
}

// FilterNodes builds a new document keeping only nodes for which pred
// holds. The root is kept unconditionally. Rejecting a container removes
// its entire subtree; children are never promoted upward.
func FilterNodes(doc *ast.Document, pred func(ast.Node) bool) *ast.Document {
	out, err := Apply(doc, Func(func(n ast.Node) (ast.Node, error) {
		if _, ok := n.(*ast.Document); ok {
			return n, nil
		}
		if !pred(n) {
			return nil, nil
		}
		return n, nil
	}))
	if err != nil {
		// The filter transformer cannot fail.
		panic(err)
	}
	return out
}

// MetadataMerger folds the next document's metadata into the accumulated
// mapping and returns the merged result.
type MetadataMerger func(acc, next ast.Meta) ast.Meta

// LastWriteWins overwrites earlier values with later ones. It is the
// default merge policy.
func LastWriteWins(acc, next ast.Meta) ast.Meta {
	out := acc.Clone()
	if out == nil {
		out = ast.Meta{}
	}
	for k, v := range next {
		out[k] = v
	}
	return out
}

// FirstWriteWins keeps the earlier value for every key.
func FirstWriteWins(acc, next ast.Meta) ast.Meta {
	out := acc.Clone()
	if out == nil {
		out = ast.Meta{}
	}
	for k, v := range next {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// MergeLists concatenates sequence values that appear on both sides of a
// key and falls back to last-write-wins for everything else.
func MergeLists(acc, next ast.Meta) ast.Meta {
	out := acc.Clone()
	if out == nil {
		out = ast.Meta{}
	}
	for k, v := range next {
		prev, ok := out[k]
		if !ok {
			out[k] = v
			continue
		}
		pl, pok := asList(prev)
		nl, nok := asList(v)
		if pok && nok {
			out[k] = append(append([]any{}, pl...), nl...)
		} else {
			out[k] = v
		}
	}
	return out
}

func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// MergeDocuments concatenates every document's children in input order
// into one new document. Children are deep-copied so the result shares
// nothing with its inputs. Metadata is folded pairwise left to right
// through merger (nil means LastWriteWins).
func MergeDocuments(docs []*ast.Document, merger MetadataMerger) *ast.Document {
	if merger == nil {
		merger = LastWriteWins
	}
	out := &ast.Document{Meta: ast.Meta{}}
	for i, d := range docs {
		out.Children = append(out.Children, ast.CloneBlocks(d.Children)...)
		if i == 0 {
			out.Meta = d.Meta.Clone()
			if out.Meta == nil {
				out.Meta = ast.Meta{}
			}
			continue
		}
		out.Meta = merger(out.Meta, d.Meta)
	}
	return out
}
