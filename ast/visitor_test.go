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

import "testing"

// buildSampleTree builds:
//
//	root       Program   [0,20)
//	  stmt1    Statement [0,10)
//	    var1a  Variable  [2,4)
//	  stmt2    Statement [10,20)
//	    var2a  Variable  [12,14)
func buildSampleTree() (root, stmt1, var1a, stmt2, var2a *Node) {
	root = NewNode(Program, ByteSpan{Start: 0, End: 20})
	stmt1 = NewNode(Statement, ByteSpan{Start: 0, End: 10})
	var1a = NewNode(Variable, ByteSpan{Start: 2, End: 4})
	stmt1.Children = append(stmt1.Children, var1a)
	stmt2 = NewNode(Statement, ByteSpan{Start: 10, End: 20})
	var2a = NewNode(Variable, ByteSpan{Start: 12, End: 14})
	stmt2.Children = append(stmt2.Children, var2a)
	root.Children = append(root.Children, stmt1, stmt2)
	return
}

func TestWalkVisitsDepthFirstPreOrder(t *testing.T) {
	root, stmt1, var1a, stmt2, var2a := buildSampleTree()

	var entered []*Node
	var left []*Node
	Walk(root, VisitorFunc{
		EnterFunc: func(n *Node) bool { entered = append(entered, n); return true },
		LeaveFunc: func(n *Node) { left = append(left, n) },
	})

	wantEnter := []*Node{root, stmt1, var1a, stmt2, var2a}
	if len(entered) != len(wantEnter) {
		t.Fatalf("entered %d nodes, want %d", len(entered), len(wantEnter))
	}
	for i, n := range wantEnter {
		if entered[i] != n {
			t.Fatalf("entered[%d] = %p, want %p", i, entered[i], n)
		}
	}

	// Leave order is the mirror: deepest node leaves before its parent.
	wantLeave := []*Node{var1a, stmt1, var2a, stmt2, root}
	if len(left) != len(wantLeave) {
		t.Fatalf("left %d nodes, want %d", len(left), len(wantLeave))
	}
	for i, n := range wantLeave {
		if left[i] != n {
			t.Fatalf("left[%d] = %p, want %p", i, left[i], n)
		}
	}
}

func TestWalkEnterFalseSkipsChildrenButNotSiblings(t *testing.T) {
	root, stmt1, _, stmt2, var2a := buildSampleTree()

	var entered []*Node
	var leftStmt1 bool
	Walk(root, VisitorFunc{
		EnterFunc: func(n *Node) bool {
			entered = append(entered, n)
			return n != stmt1 // skip stmt1's children
		},
		LeaveFunc: func(n *Node) {
			if n == stmt1 {
				leftStmt1 = true
			}
		},
	})

	for _, n := range entered {
		if n.Location.Start == 2 && n.Location.End == 4 {
			t.Fatal("expected stmt1's child to never be entered once Enter(stmt1) returned false")
		}
	}
	if leftStmt1 {
		t.Fatal("expected Leave(stmt1) to never fire since Enter(stmt1) returned false")
	}
	// stmt2's subtree is unaffected by stmt1's skip.
	foundVar2a := false
	for _, n := range entered {
		if n == var2a {
			foundVar2a = true
		}
	}
	if !foundVar2a {
		t.Fatal("expected stmt2's child to still be visited")
	}
	_ = stmt2
}

func TestWalkNilNodeIsNoop(t *testing.T) {
	called := false
	Walk(nil, VisitorFunc{EnterFunc: func(n *Node) bool { called = true; return true }})
	if called {
		t.Fatal("expected Walk(nil, ...) to never invoke the visitor")
	}
}

// §8.2/§8.3-adjacent: Find resolves the innermost node containing an
// offset, and also matches a position exactly at a leaf's End (so a
// cursor right after a token still resolves to it).
func TestFindResolvesInnermostNode(t *testing.T) {
	root, _, var1a, _, _ := buildSampleTree()

	if got := Find(root, 2); got != var1a {
		t.Fatalf("Find(2) = %v, want var1a", got)
	}
	if got := Find(root, 3); got != var1a {
		t.Fatalf("Find(3) = %v, want var1a", got)
	}
	// Exactly at var1a's End (4): half-open containment alone would
	// miss it, but Find's End-equality special case should still land
	// on var1a rather than resolving only to stmt1.
	if got := Find(root, 4); got != var1a {
		t.Fatalf("Find(4) = %v, want var1a (End-of-span match)", got)
	}
}

func TestFindOutsideTreeReturnsNil(t *testing.T) {
	root, _, _, _, _ := buildSampleTree()
	if got := Find(root, 25); got != nil {
		t.Fatalf("Find(25) = %v, want nil", got)
	}
	if got := Find(root, -1); got != nil {
		t.Fatalf("Find(-1) = %v, want nil", got)
	}
}

// §8.2: FindPath returns root first, innermost last.
func TestFindPathReturnsRootFirstInnermostLast(t *testing.T) {
	root, stmt1, var1a, _, _ := buildSampleTree()

	path := FindPath(root, 3)
	want := []*Node{root, stmt1, var1a}
	if len(path) != len(want) {
		t.Fatalf("FindPath returned %d nodes, want %d", len(path), len(want))
	}
	for i, n := range want {
		if path[i] != n {
			t.Fatalf("path[%d] = %v, want %v", i, path[i], n)
		}
	}
}

func TestFindPathOutsideTreeReturnsEmpty(t *testing.T) {
	root, _, _, _, _ := buildSampleTree()
	if path := FindPath(root, 100); len(path) != 0 {
		t.Fatalf("FindPath(100) = %v, want empty", path)
	}
}

func TestAddChildIgnoresNil(t *testing.T) {
	n := NewNode(Program, ByteSpan{Start: 0, End: 1})
	n.AddChild(nil)
	if len(n.Children) != 0 {
		t.Fatalf("expected AddChild(nil) to be a no-op, got %d children", len(n.Children))
	}
	child := NewNode(Statement, ByteSpan{Start: 0, End: 1})
	n.AddChild(child)
	if len(n.Children) != 1 || n.Children[0] != child {
		t.Fatalf("expected AddChild to append the non-nil child, got %v", n.Children)
	}
}
