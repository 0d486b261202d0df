/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package providers

import (
	"strings"

	"github.com/perltooling/perl-lsp/lsp"
	"github.com/perltooling/perl-lsp/parser"
	"github.com/perltooling/perl-lsp/position"
)

/*
semanticTokenTypes is the legend perl-lsp advertises and indexes into:
position in this slice is the tokenType integer each token in
SemanticTokens.Data carries (§4.7 "keywords, operators, sigils,
variables, subroutines, strings, numbers, comments, regex, POD"). Two
of the ten named categories are folded into a neighbor rather than
given their own slot: a sigil is highlighted as part of the variable
token it prefixes (the lexer already scans "$name" as one token - see
parser/lexer.go's lexSigilOrOperator - so there is no separate sigil
span to tag), and POD is tagged "comment" with the "documentation"
modifier set, since LSP's standard semantic token legend has no
distinct documentation-block type.
*/
var semanticTokenTypes = []string{
	"keyword", "operator", "variable", "function", "string", "number", "comment", "regexp",
}

var semanticTokenModifiers = []string{"declaration", "documentation"}

const (
	stKeyword = iota
	stOperator
	stVariable
	stFunction
	stString
	stNumber
	stComment
	stRegexp
)

const (
	modDeclaration  = 1 << 0
	modDocumentation = 1 << 1
)

/*
semanticTokensLegend returns the {tokenTypes, tokenModifiers} pair
advertised in the `semanticTokensProvider` capability, so the index
values baked into SemanticTokens.Data and the legend the client decodes
them with never drift apart.
*/
func semanticTokensLegend() map[string]interface{} {
	return map[string]interface{}{
		"tokenTypes":     semanticTokenTypes,
		"tokenModifiers": semanticTokenModifiers,
	}
}

type rawSemanticToken struct {
	start, end       int
	tokenType        int
	tokenModifiers   int
}

/*
SemanticTokens re-lexes text token-by-token (the AST drops exactly the
information this needs - raw keyword/operator spans, comment and POD
text - so classifying the parser's own Lexer output is simpler and more
accurate than reconstructing it from the tree) and returns the
delta-encoded {line, startChar, length, tokenType, tokenModifiers}
quintuples §4.7 specifies, covering the whole document. SemanticTokens
(full) and SemanticTokensRange share the same scan; SemanticTokensRange
filters the scanned tokens to rng before encoding them.
*/
func SemanticTokens(text string, cache *position.LineStartsCache) lsp.SemanticTokens {
	return lsp.SemanticTokens{Data: encodeSemanticTokens(scanSemanticTokens(text), cache)}
}

/*
SemanticTokensRange is semanticTokens/range: same scan, filtered to
tokens whose span overlaps rng before delta-encoding (deltas are
relative to the previous *emitted* token, so filtering must happen
before encoding, not after).
*/
func SemanticTokensRange(text string, cache *position.LineStartsCache, rng lsp.Range) lsp.SemanticTokens {
	rawStart := lsp.ToOffset(cache, rng.Start)
	rawEnd := lsp.ToOffset(cache, rng.End)
	all := scanSemanticTokens(text)
	var filtered []rawSemanticToken
	for _, t := range all {
		if t.end > rawStart && t.start < rawEnd {
			filtered = append(filtered, t)
		}
	}
	return lsp.SemanticTokens{Data: encodeSemanticTokens(filtered, cache)}
}

func encodeSemanticTokens(tokens []rawSemanticToken, cache *position.LineStartsCache) []int {
	data := make([]int, 0, len(tokens)*5)
	prevLine, prevChar := 0, 0
	for _, t := range tokens {
		if t.end <= t.start {
			continue
		}
		pos := cache.OffsetToPosition(t.start)
		deltaLine := pos.Line - prevLine
		deltaChar := pos.Column
		if deltaLine == 0 {
			deltaChar = pos.Column - prevChar
		}
		data = append(data, deltaLine, deltaChar, t.end-t.start, t.tokenType, t.tokenModifiers)
		prevLine, prevChar = pos.Line, pos.Column
	}
	return data
}

/*
scanSemanticTokens drives a Lexer over the whole file, classifying each
significant token it emits and additionally recovering the comment/POD
spans the lexer itself swallows as whitespace (skipWhitespaceAndComments
never returns them as tokens, so the gap between two consecutive real
tokens is re-scanned here with the same rules it uses).
*/
func scanSemanticTokens(src string) []rawSemanticToken {
	lx := parser.NewLexer(src)
	var out []rawSemanticToken
	prevEnd := 0
	var pendingFuncDecl bool

	for {
		tok := lx.Next()
		out = append(out, scanTrivia(src, prevEnd, tok.Start)...)

		switch {
		case tok.Kind == parser.TokenEOF:
			return out
		case isKeywordKind(tok.Kind):
			out = append(out, rawSemanticToken{start: tok.Start, end: tok.End, tokenType: stKeyword})
			pendingFuncDecl = tok.Kind == parser.TokenKeywordSub
		case isSigilKind(tok.Kind):
			out = append(out, rawSemanticToken{start: tok.Start, end: tok.End, tokenType: stVariable})
		case tok.Kind == parser.TokenNumber:
			out = append(out, rawSemanticToken{start: tok.Start, end: tok.End, tokenType: stNumber})
		case tok.Kind == parser.TokenString || tok.Kind == parser.TokenQwList || tok.Kind == parser.TokenHeredocStart:
			out = append(out, rawSemanticToken{start: tok.Start, end: tok.End, tokenType: stString})
		case tok.Kind == parser.TokenRegex || tok.Kind == parser.TokenSubstitution || tok.Kind == parser.TokenTransliteration:
			out = append(out, rawSemanticToken{start: tok.Start, end: tok.End, tokenType: stRegexp})
		case tok.Kind == parser.TokenIdentifier || tok.Kind == parser.TokenBareword:
			if pendingFuncDecl {
				out = append(out, rawSemanticToken{start: tok.Start, end: tok.End, tokenType: stFunction, tokenModifiers: modDeclaration})
			} else if lookaheadIsCall(src, tok.End) {
				out = append(out, rawSemanticToken{start: tok.Start, end: tok.End, tokenType: stFunction})
			}
			pendingFuncDecl = false
		case isOperatorKind(tok.Kind):
			out = append(out, rawSemanticToken{start: tok.Start, end: tok.End, tokenType: stOperator})
			pendingFuncDecl = false
		default:
			pendingFuncDecl = false
		}

		prevEnd = tok.End
	}
}

/*
lookaheadIsCall reports whether a bareword ending at pos is immediately
(modulo whitespace) followed by '(', i.e. is being called ("foo(...)").
The main scan's Lexer has no pushback, so this spins up a throwaway
Lexer over the remaining source rather than disturbing the main scan's
position - acceptable here since this is a best-effort highlighting
heuristic, not parsing: a wrong guess only costs a missed color, never
correctness elsewhere.
*/
func lookaheadIsCall(src string, pos int) bool {
	probe := parser.NewLexer(src[pos:])
	return probe.Next().Kind == parser.TokenLParen
}

func isKeywordKind(k parser.TokenKind) bool {
	return k >= parser.TokenKeywordMy && k <= parser.TokenKeywordContinue
}

func isSigilKind(k parser.TokenKind) bool {
	switch k {
	case parser.TokenSigilScalar, parser.TokenSigilArray, parser.TokenSigilHash, parser.TokenSigilSub, parser.TokenSigilGlob:
		return true
	}
	return false
}

func isOperatorKind(k parser.TokenKind) bool {
	switch k {
	case parser.TokenPlus, parser.TokenMinus, parser.TokenStar, parser.TokenSlash, parser.TokenPercent,
		parser.TokenPower, parser.TokenDot, parser.TokenDotDot, parser.TokenDotDotDot,
		parser.TokenAssign, parser.TokenOpAssign,
		parser.TokenEq, parser.TokenNe, parser.TokenLt, parser.TokenGt, parser.TokenLe, parser.TokenGe, parser.TokenCmp,
		parser.TokenStrEq, parser.TokenStrNe, parser.TokenStrLt, parser.TokenStrGt, parser.TokenStrLe, parser.TokenStrGe, parser.TokenStrCmp,
		parser.TokenAndAnd, parser.TokenOrOr, parser.TokenDefinedOr, parser.TokenNot,
		parser.TokenBitAnd, parser.TokenBitOr, parser.TokenBitXor, parser.TokenBitNot,
		parser.TokenShiftLeft, parser.TokenShiftRight, parser.TokenMatchBind, parser.TokenNotMatch,
		parser.TokenBackslash, parser.TokenIncrement, parser.TokenDecrement, parser.TokenQuestion, parser.TokenFileTest,
		parser.TokenArrow, parser.TokenWordAnd, parser.TokenWordOr, parser.TokenWordNot, parser.TokenWordXor:
		return true
	}
	return false
}

/*
scanTrivia recovers the comment/POD spans swallowed between two real
tokens, mirroring Lexer.skipWhitespaceAndComments' own rules exactly
(a '#' runs to end of line; a '=' at line start followed by a letter
opens a POD block that runs to the line containing the next "=cut", or
to the end of the gap if none exists) - never string content, since by
construction this gap is exactly what the real lexer classified as
whitespace.
*/
func scanTrivia(src string, from, to int) []rawSemanticToken {
	var out []rawSemanticToken
	pos := from
	for pos < to {
		c := src[pos]
		switch {
		case c == '#':
			start := pos
			for pos < to && src[pos] != '\n' {
				pos++
			}
			out = append(out, rawSemanticToken{start: start, end: pos, tokenType: stComment})
		case c == '=' && (pos == 0 || src[pos-1] == '\n') && pos+1 < len(src) && isLetter(src[pos+1]):
			start := pos
			idx := strings.Index(src[pos:], "\n=cut")
			var end int
			if idx == -1 {
				end = to
				pos = to
			} else {
				end = pos + idx + 1
				for end < len(src) && src[end] != '\n' {
					end++
				}
				pos = end
			}
			out = append(out, rawSemanticToken{start: start, end: end, tokenType: stComment, tokenModifiers: modDocumentation})
		default:
			pos++
		}
	}
	return out
}

func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
