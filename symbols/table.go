/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package symbols

import "github.com/perltooling/perl-lsp/ast"

/*
Table is a single document's symbol table: a tree of lexical scopes
built by one walk of the document's AST (§3).
*/
type Table struct {
	URI  string
	root *lexScope
}

/*
Build walks root and produces a Table for uri. Subroutine bodies and
bare blocks each introduce a new lexical scope; `my`/`our`/`local`/
`state` declarations, subroutine names, package names, and `use
constant` names are recorded as symbols in the scope active when they
are declared.
*/
func Build(root *ast.Node, uri string) *Table {
	rootScope := newRootScope("file", root.Location)
	t := &Table{URI: uri, root: rootScope}

	stack := []*lexScope{rootScope}
	top := func() *lexScope { return stack[len(stack)-1] }

	ast.Walk(root, ast.VisitorFunc{
		EnterFunc: func(n *ast.Node) bool {
			switch n.Kind {
			case ast.Package:
				if name := barewordChild(n); name != "" {
					top().declare(&Symbol{
						Name:            name,
						Kind:            KindPackage,
						DeclarationSpan: n.Location,
						ScopeChain:      top().chain(),
					})
				}

			case ast.Subroutine:
				name := barewordChild(n)
				if name != "" {
					top().declare(&Symbol{
						Name:            name,
						Kind:            KindSubroutine,
						DeclarationSpan: n.Location,
						ScopeChain:      top().chain(),
					})
				}
				stack = append(stack, top().newChild("sub "+name, n.Location))

			case ast.Block:
				stack = append(stack, top().newChild("block", n.Location))

			case ast.VariableDeclaration:
				for _, target := range declarationTargets(n) {
					top().declare(&Symbol{
						Name:            string(target.Sigil) + target.Text,
						Kind:            KindVariable,
						DeclarationSpan: target.Location,
						ScopeChain:      top().chain(),
					})
				}

			case ast.Use:
				if usesConstantPragma(n) {
					for _, name := range constantNames(n) {
						top().declare(&Symbol{
							Name:            name,
							Kind:            KindConstant,
							DeclarationSpan: n.Location,
							ScopeChain:      top().chain(),
						})
					}
				} else if name := barewordChild(n); name != "" {
					top().declare(&Symbol{
						Name:            name,
						Kind:            KindImport,
						DeclarationSpan: n.Location,
						ScopeChain:      top().chain(),
					})
				}
			}
			return true
		},
		LeaveFunc: func(n *ast.Node) {
			switch n.Kind {
			case ast.Subroutine, ast.Block:
				stack = stack[:len(stack)-1]
			}
		},
	})

	return t
}

func barewordChild(n *ast.Node) string {
	for _, c := range n.Children {
		if c.Kind == ast.Bareword {
			return c.Text
		}
	}
	return ""
}

/*
declarationTargets flattens a VariableDeclaration's target(s), covering
both the single-variable form (`my $x`) and the list form
(`my ($a, $b)`, parsed as a parenthesized List child).
*/
func declarationTargets(n *ast.Node) []*ast.Node {
	var out []*ast.Node
	var walk func(c *ast.Node)
	walk = func(c *ast.Node) {
		if c == nil {
			return
		}
		if c.Kind == ast.List {
			for _, gc := range c.Children {
				walk(gc)
			}
			return
		}
		if c.Kind == ast.Variable {
			out = append(out, c)
		}
	}
	for _, c := range n.Children {
		walk(c)
	}
	return out
}

func usesConstantPragma(n *ast.Node) bool {
	return barewordChild(n) == "constant"
}

/*
constantNames walks a `use constant` statement's argument expression,
the same even-index/KeyValue walk the parser itself performs in
recordConstantDeclaration, reapplied here over the already-built tree
since the parser's own bookkeeping map isn't retained on the Table.
*/
func constantNames(n *ast.Node) []string {
	var names []string
	var args *ast.Node
	for _, c := range n.Children {
		if c.Kind != ast.Bareword {
			args = c
		}
	}
	if args == nil {
		return names
	}

	collect := func(c *ast.Node) {
		if c.Kind == ast.Bareword || c.Kind == ast.String {
			names = append(names, c.Text)
		}
	}

	switch args.Kind {
	case ast.HashLiteral, ast.List:
		for i, c := range args.Children {
			if i%2 == 0 {
				collect(c)
			}
		}
	case ast.KeyValue:
		if len(args.Children) > 0 {
			collect(args.Children[0])
		}
	default:
		collect(args)
	}
	return names
}

/*
LookupAtOffset resolves name at offset, walking from the innermost
scope containing offset up through its parents (§3 shadowing rule).
*/
func (t *Table) LookupAtOffset(name string, offset int) (*Symbol, bool) {
	return t.root.scopeAt(offset).lookup(name, offset)
}

/*
All returns every symbol declared anywhere in the document, used to
populate Document Symbol and to seed the workspace index.
*/
func (t *Table) All() []*Symbol {
	return t.root.all()
}
