/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package ast

/*
Visitor receives Enter/Leave callbacks during a tree Walk. Grounded on
the teacher's providerMap (interpreter/provider.go), which maps each
node Kind to a runtime constructor invoked once per node during tree
evaluation; here the same one-callback-per-node-visit shape is kept
but generalized from "build a runtime value" to "observe a node",
since every LSP provider (hover, definition, references, ...) needs to
walk the same tree without evaluating it.

Enter returning false skips the node's children (and its matching
Leave call never happens); Leave is always called when Enter returned
true, even if a later sibling or descendant was skipped.
*/
type Visitor interface {
	Enter(n *Node) bool
	Leave(n *Node)
}

/*
Walk performs a depth-first traversal of n, invoking v's Enter before
descending into children and Leave after. Nil nodes are ignored.
*/
func Walk(n *Node, v Visitor) {
	if n == nil {
		return
	}
	if !v.Enter(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, v)
	}
	v.Leave(n)
}

/*
VisitorFunc adapts a pair of plain functions into a Visitor, for
callers that only need one side of the pair (pass nil for the other).
*/
type VisitorFunc struct {
	EnterFunc func(n *Node) bool
	LeaveFunc func(n *Node)
}

func (f VisitorFunc) Enter(n *Node) bool {
	if f.EnterFunc == nil {
		return true
	}
	return f.EnterFunc(n)
}

func (f VisitorFunc) Leave(n *Node) {
	if f.LeaveFunc != nil {
		f.LeaveFunc(n)
	}
}

/*
Find returns the innermost node whose Location contains offset, or nil
if offset falls outside the tree entirely. Ties (zero-width nodes at
the same start) favor the most recently visited, i.e. the last child
examined, matching the teacher's last-match-wins semantics in
providerMap lookups for overlapping token ranges.
*/
func Find(root *Node, offset int) *Node {
	var found *Node
	Walk(root, VisitorFunc{
		EnterFunc: func(n *Node) bool {
			if !n.Location.ContainsOffset(offset) && n.Location.End != offset {
				return false
			}
			found = n
			return true
		},
	})
	return found
}

/*
FindPath returns the chain of nodes from root down to the innermost
node containing offset (root first), or nil if offset is outside the
tree. Used by providers that need ancestor context (e.g. "is this
identifier inside a my-declaration?").
*/
func FindPath(root *Node, offset int) []*Node {
	var path []*Node
	var walk func(n *Node) bool
	walk = func(n *Node) bool {
		if n == nil {
			return false
		}
		if !n.Location.ContainsOffset(offset) && n.Location.End != offset {
			return false
		}
		path = append(path, n)
		for _, c := range n.Children {
			if walk(c) {
				break
			}
		}
		return true
	}
	walk(root)
	return path
}
