/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

// Package ast defines the tagged-union AST produced by the Perl parser.
package ast

import "fmt"

/*
ByteSpan is a half-open [Start, End) byte range into the source buffer.
*/
type ByteSpan struct {
	Start int
	End   int
}

/*
Empty returns true if the span covers zero bytes.
*/
func (s ByteSpan) Empty() bool {
	return s.Start >= s.End
}

/*
Contains returns true if other is fully inside s.
*/
func (s ByteSpan) Contains(other ByteSpan) bool {
	return s.Start <= other.Start && other.End <= s.End
}

/*
ContainsOffset returns true if o falls within [Start, End).
*/
func (s ByteSpan) ContainsOffset(o int) bool {
	return s.Start <= o && o < s.End
}

/*
Union returns the smallest span containing both s and other.
*/
func (s ByteSpan) Union(other ByteSpan) ByteSpan {
	u := s
	if other.Start < u.Start {
		u.Start = other.Start
	}
	if other.End > u.End {
		u.End = other.End
	}
	return u
}

/*
String renders the span as "[start,end)".
*/
func (s ByteSpan) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
