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

import (
	"sort"

	"github.com/perltooling/perl-lsp/ast"
)

/*
PragmaState tracks which of `strict vars/subs/refs` and `warnings` are
active at a byte offset (§3).
*/
type PragmaState struct {
	StrictVars bool
	StrictSubs bool
	StrictRefs bool
	Warnings   bool
}

/*
pragmaPoint is one entry of the range-indexed pragma sequence
`[(span, state)]` sorted by span.Start (§3).
*/
type pragmaPoint struct {
	start int
	state PragmaState
}

/*
PragmaTrack is the range-indexed pragma sequence for one document.
Lookup at offset o returns the last state whose start <= o.
*/
type PragmaTrack struct {
	points []pragmaPoint
}

/*
BuildPragmaTrack walks root's top-level statements and every block,
accumulating pragma state the way `use strict`/`use warnings`/`no
strict` mutate scope-wide flags from their declaration point onward,
for as long as the enclosing block lasts.
*/
func BuildPragmaTrack(root *ast.Node) *PragmaTrack {
	track := &PragmaTrack{}
	var walk func(n *ast.Node, state PragmaState)
	walk = func(n *ast.Node, state PragmaState) {
		track.points = append(track.points, pragmaPoint{start: n.Location.Start, state: state})

		for _, c := range n.Children {
			if c.Kind == ast.Use || c.Kind == ast.No {
				state = applyPragma(c, state)
				track.points = append(track.points, pragmaPoint{start: c.Location.End, state: state})
				continue
			}
			walk(c, state)
		}
	}
	walk(root, PragmaState{})
	sort.SliceStable(track.points, func(i, j int) bool {
		return track.points[i].start < track.points[j].start
	})
	return track
}

func applyPragma(n *ast.Node, state PragmaState) PragmaState {
	name := barewordChild(n)
	enable := n.Kind == ast.Use

	switch name {
	case "strict":
		state.StrictVars, state.StrictSubs, state.StrictRefs = enable, enable, enable
	case "warnings":
		state.Warnings = enable
	}
	return state
}

/*
At returns the pragma state in effect at offset: the last recorded
state whose start <= offset.
*/
func (t *PragmaTrack) At(offset int) PragmaState {
	var state PragmaState
	for _, p := range t.points {
		if p.start > offset {
			break
		}
		state = p.state
	}
	return state
}
