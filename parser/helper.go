/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package parser

import (
	"fmt"

	"devt.de/krotik/common/datautil"
	"devt.de/krotik/common/errorutil"
	"github.com/perltooling/perl-lsp/ast"
)

/*
ParseErrorKind classifies a recovered parse failure (§4.3, §7).
*/
type ParseErrorKind int

const (
	ErrUnclosedString ParseErrorKind = iota
	ErrUnclosedRegex
	ErrUnclosedBrace
	ErrUnclosedParen
	ErrUnclosedBracket
	ErrUnterminatedHeredoc
	ErrMissingSemicolon
	ErrMissingOperator
	ErrUnexpectedToken
	ErrUnexpectedEOF
	ErrInvalidVariableName
	ErrInvalidSyntax
	ErrRecursionLimit
)

var parseErrorKindNames = map[ParseErrorKind]string{
	ErrUnclosedString:      "unclosed string",
	ErrUnclosedRegex:       "unclosed regex",
	ErrUnclosedBrace:       "unclosed brace",
	ErrUnclosedParen:       "unclosed paren",
	ErrUnclosedBracket:     "unclosed bracket",
	ErrUnterminatedHeredoc: "unterminated heredoc",
	ErrMissingSemicolon:    "missing semicolon",
	ErrMissingOperator:     "missing operator",
	ErrUnexpectedToken:     "unexpected token",
	ErrUnexpectedEOF:       "unexpected end of file",
	ErrInvalidVariableName: "invalid variable name",
	ErrInvalidSyntax:       "invalid syntax",
	ErrRecursionLimit:      "recursion limit exceeded",
}

func (k ParseErrorKind) String() string {
	if s, ok := parseErrorKindNames[k]; ok {
		return s
	}
	return "unknown parse error"
}

/*
ParseError is a recovered (non-fatal) parse failure. The parser never
returns an error from Parse; every ParseError is instead recorded in
the returned list (§4.3, §7 "recovery, never a panic"). Unexpected
tokens, invalid variables and the recursion limit also leave an Error
node in the tree; a failed expect (a missing ';' or closing delimiter)
and an unterminated heredoc are recorded only in the list.
*/
type ParseError struct {
	Kind    ParseErrorKind
	Span    ast.ByteSpan
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%v at %v: %v", e.Kind, e.Span, e.Message)
}

/*
tokenBuffer is a small lookahead ring over a Lexer's token stream.
Grounded on the teacher's LABuffer (parser/helper.go), which wrapped a
`chan LexToken` with a datautil.RingBuffer; here the channel is
replaced by direct pull calls into Lexer.Next() since the lexer is no
longer goroutine-fed, but the ring-buffer-backed lookahead shape is
kept as-is.
*/
type tokenBuffer struct {
	lexer *Lexer
	ring  *datautil.RingBuffer
	size  int
}

func newTokenBuffer(lexer *Lexer, size int) *tokenBuffer {
	if size < 2 {
		size = 2
	}
	tb := &tokenBuffer{lexer: lexer, ring: datautil.NewRingBuffer(size), size: size}
	for tb.ring.Size() < size {
		tb.ring.Add(lexer.Next())
	}
	return tb
}

/*
next consumes and returns the next token, refilling the ring from the
underlying lexer.
*/
func (tb *tokenBuffer) next() Token {
	v := tb.ring.Poll()
	tb.ring.Add(tb.lexer.Next())
	if v == nil {
		return Token{Kind: TokenEOF}
	}
	return v.(Token)
}

/*
peek looks n tokens ahead without consuming (0 = the next token to be
returned by next()).
*/
func (tb *tokenBuffer) peek(n int) Token {
	if n >= tb.ring.Size() {
		return Token{Kind: TokenEOF}
	}
	v := tb.ring.Get(n)
	if v == nil {
		return Token{Kind: TokenEOF}
	}
	return v.(Token)
}

/*
assertTrue is the parser's internal-invariant guard (teacher idiom:
devt.de/krotik/common/errorutil.AssertTrue, used throughout
engine/taskqueue.go and engine/rule.go for conditions that indicate a
bug rather than malformed input). Malformed input is never routed
through this - it goes through ParseError/error-recovery instead.
*/
func assertTrue(cond bool, msg string) {
	errorutil.AssertTrue(cond, "perl-lsp/parser: "+msg)
}
