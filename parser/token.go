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

import "fmt"

/*
TokenKind enumerates the lexical classes the scanner can emit. Mirrors
the teacher's LexTokenID scheme (a flat integer enum with grouped
ranges for symbols vs. keywords) generalized to Perl's token set:
keywords, sigils, operators (including word operators and file-test
operators), delimiters, literals, identifiers, and the trailing
Unknown/EOF.
*/
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenUnknown
	TokenError

	// Literals

	TokenNumber
	TokenString       // single-quoted or double-quoted string body
	TokenRegex        // m// or bare //
	TokenSubstitution // s///
	TokenTransliteration
	TokenHeredocStart
	TokenHeredocBody
	TokenQwList

	// Identifiers / barewords

	TokenIdentifier
	TokenBareword

	// Sigils

	TokenSigilScalar // $
	TokenSigilArray  // @
	TokenSigilHash   // %
	TokenSigilSub    // &
	TokenSigilGlob   // *

	// Grouping / delimiters

	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket

	// Separators

	TokenSemicolon
	TokenComma
	TokenFatComma // =>
	TokenArrow    // ->
	TokenColon
	TokenDoubleColon // ::

	// Operators

	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenPower // **
	TokenDot   // .
	TokenDotDot
	TokenDotDotDot
	TokenAssign
	TokenOpAssign // += -= .= etc, text carries the operator
	TokenEq
	TokenNe
	TokenLt
	TokenGt
	TokenLe
	TokenGe
	TokenCmp // <=>
	TokenStrEq
	TokenStrNe
	TokenStrLt
	TokenStrGt
	TokenStrLe
	TokenStrGe
	TokenStrCmp // cmp
	TokenAndAnd
	TokenOrOr
	TokenDefinedOr // //
	TokenNot       // !
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShiftLeft
	TokenShiftRight
	TokenMatchBind  // =~
	TokenNotMatch   // !~
	TokenBackslash  // reference operator
	TokenIncrement  // ++
	TokenDecrement  // --
	TokenQuestion
	TokenFileTest // -e, -f, -d, ...

	// Word operators (low precedence)

	TokenWordAnd
	TokenWordOr
	TokenWordNot
	TokenWordXor

	// Keywords

	TokenKeywordMy
	TokenKeywordOur
	TokenKeywordLocal
	TokenKeywordState
	TokenKeywordSub
	TokenKeywordPackage
	TokenKeywordUse
	TokenKeywordNo
	TokenKeywordIf
	TokenKeywordUnless
	TokenKeywordElsif
	TokenKeywordElse
	TokenKeywordWhile
	TokenKeywordUntil
	TokenKeywordFor
	TokenKeywordForeach
	TokenKeywordDo
	TokenKeywordReturn
	TokenKeywordLast
	TokenKeywordNext
	TokenKeywordRedo
	TokenKeywordContinue

	// Comments / POD

	TokenComment
	TokenPod
)

/*
Token is a positioned, classified lexeme. Text is a slice of the
source buffer (Go strings already share backing storage on
sub-slicing, so lookahead cloning - required by §4.1 - never
allocates).
*/
type Token struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int
	Line  int // 0-based line of Start

	// Set only for TokenHeredocStart: the declared quoting and
	// indent-stripping mode, consumed by the parser when it builds the
	// corresponding Heredoc node (§4.2).
	HeredocQuote    HeredocQuoteKind
	HeredocIndented bool
}

/*
String renders a token for diagnostics, in the teacher's
"v:"value-prefixed quoting style for LexToken.String().
*/
func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return fmt.Sprintf("Error: %s", t.Text)
	}
	if len(t.Text) > 20 {
		return fmt.Sprintf("%.17q...", t.Text)
	}
	return fmt.Sprintf("%q", t.Text)
}

/*
IsSignificant reports whether a token counts as the "last significant
token" for slash disambiguation (§4.1): comments and whitespace never
reach the token stream, so in practice every emitted token is
significant except Unknown/Error placeholders used only for recovery.
*/
func (t Token) IsSignificant() bool {
	return t.Kind != TokenError && t.Kind != TokenUnknown
}

/*
regexPrecedingKeywords lists keywords that, as the previous significant
token, make a following '/' the start of a regex (§4.1): "if, while,
unless, until, and, or, not, return, ..." plus named list operators.
*/
var regexPrecedingKeywords = map[string]bool{
	"if": true, "unless": true, "while": true, "until": true,
	"and": true, "or": true, "not": true, "xor": true,
	"return": true, "split": true, "grep": true, "map": true,
	"print": true, "push": true, "join": true, "die": true,
}

/*
Keywords is the set of reserved words recognized by the lexer.
*/
var Keywords = map[string]TokenKind{
	"my":       TokenKeywordMy,
	"our":      TokenKeywordOur,
	"local":    TokenKeywordLocal,
	"state":    TokenKeywordState,
	"sub":      TokenKeywordSub,
	"package":  TokenKeywordPackage,
	"use":      TokenKeywordUse,
	"no":       TokenKeywordNo,
	"if":       TokenKeywordIf,
	"unless":   TokenKeywordUnless,
	"elsif":    TokenKeywordElsif,
	"else":     TokenKeywordElse,
	"while":    TokenKeywordWhile,
	"until":    TokenKeywordUntil,
	"for":      TokenKeywordFor,
	"foreach":  TokenKeywordForeach,
	"do":       TokenKeywordDo,
	"return":   TokenKeywordReturn,
	"last":     TokenKeywordLast,
	"next":     TokenKeywordNext,
	"redo":     TokenKeywordRedo,
	"continue": TokenKeywordContinue,
	"and":      TokenWordAnd,
	"or":       TokenWordOr,
	"not":      TokenWordNot,
	"xor":      TokenWordXor,
	"cmp":      TokenStrCmp,
	"eq":       TokenStrEq,
	"ne":       TokenStrNe,
	"lt":       TokenStrLt,
	"gt":       TokenStrGt,
	"le":       TokenStrLe,
	"ge":       TokenStrGe,
	"x":        TokenStar, // list repetition operator, reuses '*' precedence slot
}

/*
fileTestLetters is the set of single letters valid after a unary '-'
file test operator (-e, -f, -d, -r, -w, -x, -s, -z, -l, ...).
*/
var fileTestLetters = map[byte]bool{
	'e': true, 'f': true, 'd': true, 'r': true, 'w': true, 'x': true,
	's': true, 'z': true, 'l': true, 'p': true, 'S': true, 'b': true,
	'c': true, 't': true, 'u': true, 'g': true, 'k': true, 'T': true,
	'B': true, 'A': true, 'M': true, 'C': true, 'o': true, 'O': true,
	'R': true, 'W': true, 'X': true,
}
