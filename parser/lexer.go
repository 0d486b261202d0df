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
	"strings"

	"github.com/perltooling/perl-lsp/ast"
)

/*
Lexer scans Perl source into a Token stream. Unlike the teacher's
channel-fed lexer (a goroutine pumping a `chan LexToken`), this lexer
is a synchronous pull scanner: the parser must steer it mid-scan
(slash disambiguation needs the last significant token; heredoc bodies
must be collected the moment a declaring line's newline is reached),
which a one-directional channel cannot support.
*/
type Lexer struct {
	src  string
	pos  int
	line int

	lastKind TokenKind
	lastText string
	hasLast  bool

	pending   []PendingHeredoc
	completed []HeredocContent
}

/*
NewLexer creates a lexer over src.
*/
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

/*
queueHeredoc registers a pending heredoc to be collected at the next
newline, in declaration order (§4.2, §3 "Pending heredoc"). Queueing
happens here, at scan time, rather than when the parser later consumes
the TokenHeredocStart token: the parser's lookahead buffer reads ahead
of what it has consumed, so by the time it would see the token the
scanner may already be past the declaring newline. Self-queueing keeps
declaration and collection in the same linear pass; the parser
retrieves results afterwards with PopCompletedHeredoc, in the same
FIFO order the TokenHeredocStart tokens were emitted.
*/
func (l *Lexer) queueHeredoc(p PendingHeredoc) {
	l.pending = append(l.pending, p)
}

/*
PopCompletedHeredoc returns the next collected heredoc body, matched by
FIFO declaration order to TokenHeredocStart token emission order.
*/
func (l *Lexer) PopCompletedHeredoc() (HeredocContent, bool) {
	if len(l.completed) == 0 {
		return HeredocContent{}, false
	}
	c := l.completed[0]
	l.completed = l.completed[1:]
	return c, true
}

/*
Pos returns the lexer's current byte offset.
*/
func (l *Lexer) Pos() int { return l.pos }

/*
Next scans and returns the next token, advancing the lexer.
*/
func (l *Lexer) Next() Token {
	l.skipWhitespaceAndComments()

	if l.pos >= len(l.src) {
		return l.emit(TokenEOF, l.pos, l.pos)
	}

	start := l.pos
	c := l.src[l.pos]

	var tok Token
	switch {
	case isDigit(c):
		tok = l.lexNumber()
	case c == '$' || c == '@' || c == '%' || c == '&' || c == '*':
		tok = l.lexSigilOrOperator()
	case isIdentStart(c):
		tok = l.lexIdentifierOrKeyword()
	case c == '\'' || c == '"' || c == '`':
		tok = l.lexQuotedString(c)
	case c == '/':
		tok = l.lexSlash()
	case c == '<':
		tok = l.lexLessThanOrHeredoc()
	default:
		tok = l.lexOperatorOrDelimiter()
	}

	if tok.Start == 0 && tok.End == 0 && start != 0 {
		// Defensive: a scanner branch failed to advance. Never panic;
		// surface it as Unknown covering one byte (§7 failure mode).
		tok = l.emit(TokenUnknown, start, start+1)
		l.pos = start + 1
	}

	if tok.IsSignificant() {
		l.lastKind = tok.Kind
		l.lastText = tok.Text
		l.hasLast = true
	}

	return tok
}

/*
LastSignificant returns the previous significant token's kind and text,
and whether any has been seen yet. Used by the parser for slash
disambiguation and indirect-object recognition (§4.1).
*/
func (l *Lexer) LastSignificant() (TokenKind, string, bool) {
	return l.lastKind, l.lastText, l.hasLast
}

/*
DrainHeredocs is invoked when the lexer's whitespace-skip crosses the
newline that ends the heredoc-declaring line. It runs the heredoc
collector over every queued pending heredoc in FIFO order and queues
each result for PopCompletedHeredoc; the parser's resolveHeredocs then
fills in the associated AST nodes.
*/
func (l *Lexer) DrainHeredocs() {
	if len(l.pending) == 0 {
		return
	}

	contents, next := CollectHeredocs(l.src, l.pos, l.pending)
	l.completed = append(l.completed, contents...)
	l.pos = next
	l.pending = nil
}

/*
HasPendingHeredocs reports whether any heredocs are still queued.
*/
func (l *Lexer) HasPendingHeredocs() bool {
	return len(l.pending) > 0
}

func (l *Lexer) emit(kind TokenKind, start, end int) Token {
	return Token{Kind: kind, Text: l.src[start:end], Start: start, End: end, Line: l.line}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.pos++
			l.line++
			if l.HasPendingHeredocs() {
				l.DrainHeredocs()
			}
		case c == ' ' || c == '\t' || c == '\r':
			l.pos++
		case c == '#':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
		case c == '=' && l.atLineStart() && l.podStart():
			l.skipPod()
		default:
			return
		}
	}
}

func (l *Lexer) atLineStart() bool {
	return l.pos == 0 || l.src[l.pos-1] == '\n'
}

/*
podStart reports whether the '=' at l.pos begins a POD directive
("=pod", "=head1", ...) rather than an operator.
*/
func (l *Lexer) podStart() bool {
	rest := l.src[l.pos:]
	return len(rest) > 1 && isIdentStart(rest[1])
}

func (l *Lexer) skipPod() {
	idx := strings.Index(l.src[l.pos:], "\n=cut")
	if idx == -1 {
		l.pos = len(l.src)
		return
	}
	l.pos += idx + 1 // position at "=cut"
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func (l *Lexer) lexNumber() Token {
	start := l.pos
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		l.pos++
		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	return l.emit(TokenNumber, start, l.pos)
}

/*
lexSigilOrOperator handles $, @, %, &, * which are sigils when
immediately followed by an identifier, '{' or another sigil (refs),
and standalone operator tokens (%, &, *) otherwise (§4.1 "Sigils").
*/
func (l *Lexer) lexSigilOrOperator() Token {
	start := l.pos
	c := l.src[l.pos]
	l.pos++

	attaches := l.pos < len(l.src) && (isIdentStart(l.src[l.pos]) || l.src[l.pos] == '{' || l.src[l.pos] == '$' || l.src[l.pos] == '@')

	if !attaches {
		switch c {
		case '$', '@':
			return l.emit(TokenUnknown, start, l.pos)
		case '%':
			if l.pos < len(l.src) && l.src[l.pos] == '=' {
				l.pos++
				return l.emit(TokenOpAssign, start, l.pos)
			}
			return l.emit(TokenPercent, start, l.pos)
		case '&':
			if l.pos < len(l.src) && l.src[l.pos] == '&' {
				l.pos++
				return l.emit(TokenAndAnd, start, l.pos)
			}
			return l.emit(TokenBitAnd, start, l.pos)
		case '*':
			if l.pos < len(l.src) && l.src[l.pos] == '*' {
				l.pos++
				return l.emit(TokenPower, start, l.pos)
			}
			return l.emit(TokenStar, start, l.pos)
		}
	}

	// Consume nested sigils for refs like $$x, @$x.
	for l.pos < len(l.src) && (l.src[l.pos] == '$' || l.src[l.pos] == '@') {
		l.pos++
	}

	if l.pos < len(l.src) && l.src[l.pos] == '{' {
		// ${...} braced variable name: consume the identifier-like
		// content so the parser sees one Variable token; the braces
		// themselves are not part of Text.
		depth := 1
		nameStart := l.pos + 1
		p := l.pos + 1
		for p < len(l.src) && depth > 0 {
			if l.src[p] == '{' {
				depth++
			} else if l.src[p] == '}' {
				depth--
			}
			p++
		}
		nameEnd := p - 1
		l.pos = p
		tok := l.emit(sigilKind(c), start, l.pos)
		if nameEnd > nameStart {
			tok.Text = l.src[nameStart:nameEnd]
		}
		return tok
	}

	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	for l.pos+1 < len(l.src) && l.src[l.pos] == ':' && l.src[l.pos+1] == ':' {
		l.pos += 2
		for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
			l.pos++
		}
	}

	tok := l.emit(sigilKind(c), start, l.pos)
	if l.pos > start+1 {
		tok.Text = l.src[start+1 : l.pos]
	} else {
		tok.Text = ""
	}
	return tok
}

func sigilKind(c byte) TokenKind {
	switch c {
	case '$':
		return TokenSigilScalar
	case '@':
		return TokenSigilArray
	case '%':
		return TokenSigilHash
	case '&':
		return TokenSigilSub
	case '*':
		return TokenSigilGlob
	}
	return TokenUnknown
}

/*
quoteLikeOperators lists keywords that introduce a quote-like body and
the number of bodies each expects.
*/
var quoteLikeOperators = map[string]int{
	"q": 1, "qq": 1, "qw": 1, "qr": 1, "qx": 1,
	"m": 1, "s": 2, "tr": 2, "y": 2,
}

func (l *Lexer) lexIdentifierOrKeyword() Token {
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	for l.pos+1 < len(l.src) && l.src[l.pos] == ':' && l.src[l.pos+1] == ':' {
		l.pos += 2
		for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
			l.pos++
		}
	}
	word := l.src[start:l.pos]

	if bodyCount, ok := quoteLikeOperators[word]; ok && l.peekQuoteLikeDelimiter() {
		return l.lexQuoteLikeKeyword(start, word, bodyCount)
	}

	if word == "__DATA__" || word == "__END__" {
		tok := l.emit(TokenHeredocBody, start, len(l.src))
		l.pos = len(l.src)
		return tok
	}

	if kind, ok := Keywords[word]; ok {
		return l.emit(kind, start, l.pos)
	}

	if isUpperInitial(word) {
		return l.emit(TokenBareword, start, l.pos)
	}

	return l.emit(TokenIdentifier, start, l.pos)
}

func isUpperInitial(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}

/*
peekQuoteLikeDelimiter reports whether the byte immediately after the
current identifier-scanning position (skipping intervening
whitespace) begins a quote-like operator body: a non-identifier,
non-"=>"-starting byte is required so that e.g. "s" used as a
bareword hash key ("s => 1") is not mistaken for the substitution
operator.
*/
func (l *Lexer) peekQuoteLikeDelimiter() bool {
	p := l.pos
	for p < len(l.src) && (l.src[p] == ' ' || l.src[p] == '\t') {
		p++
	}
	if p >= len(l.src) {
		return false
	}
	c := l.src[p]
	if isIdentStart(c) || isDigit(c) {
		return false
	}
	if c == '=' && p+1 < len(l.src) && l.src[p+1] == '>' {
		return false
	}
	switch c {
	case ',', ';', ')', '}', ']':
		return false
	}
	return true
}

func (l *Lexer) lexQuoteLikeKeyword(start int, word string, bodyCount int) Token {
	p := l.pos
	for p < len(l.src) && (l.src[p] == ' ' || l.src[p] == '\t') {
		p++
	}
	result := ExtractQuoteLike(l.src, p, bodyCount)
	l.pos = result.End

	kind := TokenRegex
	switch word {
	case "s":
		kind = TokenSubstitution
	case "tr", "y":
		kind = TokenTransliteration
	case "qw":
		kind = TokenQwList
	case "q", "qq", "qx":
		kind = TokenString
	case "qr", "m":
		kind = TokenRegex
	}

	tok := l.emit(kind, start, l.pos)
	tok.Text = word
	return tok
}

func (l *Lexer) lexQuotedString(quote byte) Token {
	start := l.pos
	l.pos++ // opening quote
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '\\' && l.pos+1 < len(l.src) {
			l.pos += 2
			continue
		}
		if c == quote {
			l.pos++
			return l.emit(TokenString, start, l.pos)
		}
		l.pos++
	}
	// Unterminated string: emit what was scanned as an Error token (§4.1 failure).
	return l.emit(TokenError, start, l.pos)
}

/*
lexSlash disambiguates '/' as regex-start vs. division per §4.1: regex
when the previous significant token is an operator/keyword/opening
bracket/comma/semicolon/colon or beginning-of-file.
*/
func (l *Lexer) lexSlash() Token {
	start := l.pos
	if l.regexAllowedHere() {
		result := ExtractQuoteLike(l.src, l.pos, 1)
		l.pos = result.End
		return l.emit(TokenRegex, start, l.pos)
	}

	l.pos++
	if l.pos < len(l.src) && l.src[l.pos] == '/' {
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '=' {
			l.pos++
			return l.emit(TokenOpAssign, start, l.pos)
		}
		return l.emit(TokenDefinedOr, start, l.pos)
	}
	if l.pos < len(l.src) && l.src[l.pos] == '=' {
		l.pos++
		return l.emit(TokenOpAssign, start, l.pos)
	}
	return l.emit(TokenSlash, start, l.pos)
}

func (l *Lexer) regexAllowedHere() bool {
	kind, text, has := l.LastSignificant()
	if !has {
		return true
	}
	switch kind {
	case TokenAssign, TokenOpAssign, TokenComma, TokenFatComma,
		TokenLParen, TokenLBrace, TokenLBracket, TokenColon, TokenSemicolon,
		TokenEq, TokenNe, TokenLt, TokenGt, TokenLe, TokenGe, TokenCmp,
		TokenAndAnd, TokenOrOr, TokenDefinedOr, TokenNot,
		TokenPlus, TokenMinus, TokenStar, TokenPercent,
		TokenKeywordIf, TokenKeywordUnless, TokenKeywordWhile, TokenKeywordUntil,
		TokenKeywordReturn, TokenWordAnd, TokenWordOr, TokenWordNot, TokenWordXor,
		TokenMatchBind, TokenNotMatch:
		return true
	case TokenIdentifier:
		return regexPrecedingKeywords[text]
	}
	return false
}

/*
lexLessThanOrHeredoc handles '<<' (heredoc start, §4.1/§4.2), '<=>',
'<=' and '<'.
*/
func (l *Lexer) lexLessThanOrHeredoc() Token {
	start := l.pos
	if strings.HasPrefix(l.src[l.pos:], "<<") && l.heredocFollows() {
		return l.lexHeredocStart(start)
	}
	l.pos++
	if l.pos < len(l.src) && l.src[l.pos] == '=' {
		l.pos++
		if l.pos < len(l.src) && l.src[l.pos] == '>' {
			l.pos++
			return l.emit(TokenCmp, start, l.pos)
		}
		return l.emit(TokenLe, start, l.pos)
	}
	if l.pos < len(l.src) && l.src[l.pos] == '<' {
		l.pos++
		return l.emit(TokenShiftLeft, start, l.pos)
	}
	return l.emit(TokenLt, start, l.pos)
}

/*
heredocFollows reports whether "<<" is followed by a valid heredoc
declaration: optional '~', optional space, then an identifier or a
quoted label. This disambiguates "<<" (heredoc) from shift-left on an
unquoted bareword, resolved the same conservative way Perl itself does.
*/
func (l *Lexer) heredocFollows() bool {
	p := l.pos + 2
	if p < len(l.src) && l.src[p] == '~' {
		p++
	}
	for p < len(l.src) && (l.src[p] == ' ' || l.src[p] == '\t') {
		p++
	}
	if p >= len(l.src) {
		return false
	}
	return isIdentStart(l.src[p]) || l.src[p] == '"' || l.src[p] == '\'' || l.src[p] == '`'
}

func (l *Lexer) lexHeredocStart(start int) Token {
	l.pos += 2
	allowIndent := false
	if l.pos < len(l.src) && l.src[l.pos] == '~' {
		allowIndent = true
		l.pos++
	}
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t') {
		l.pos++
	}

	var label string
	quoteKind := HeredocBare

	if l.pos < len(l.src) && (l.src[l.pos] == '"' || l.src[l.pos] == '\'' || l.src[l.pos] == '`') {
		q := l.src[l.pos]
		quoteKind = heredocQuoteKindFor(q)
		l.pos++
		labelStart := l.pos
		for l.pos < len(l.src) && l.src[l.pos] != q {
			l.pos++
		}
		label = l.src[labelStart:l.pos]
		if l.pos < len(l.src) {
			l.pos++ // closing quote
		}
	} else {
		labelStart := l.pos
		for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
			l.pos++
		}
		label = l.src[labelStart:l.pos]
	}

	tok := l.emit(TokenHeredocStart, start, l.pos)
	tok.Text = label
	tok.HeredocQuote = quoteKind
	tok.HeredocIndented = allowIndent

	l.queueHeredoc(PendingHeredoc{
		Label:       label,
		QuoteKind:   quoteKind,
		AllowIndent: allowIndent,
		DeclSpan:    ast.ByteSpan{Start: start, End: l.pos},
	})

	return tok
}

/*
heredocQuoteKindFor derives a PendingHeredoc's quote kind from the
opening delimiter byte observed at decl time (bare and double-quoted
labels interpolate; single-quoted ones don't, per §4.2). Unexported;
the lexer's own heredoc-start scan calls it with the delimiter byte it
reads.
*/
func heredocQuoteKindFor(delim byte) HeredocQuoteKind {
	switch delim {
	case '\'':
		return HeredocSingle
	case '`':
		return HeredocBacktick
	case '"':
		return HeredocDouble
	}
	return HeredocDouble
}

func (l *Lexer) lexOperatorOrDelimiter() Token {
	start := l.pos
	c := l.src[l.pos]

	two := ""
	if l.pos+1 < len(l.src) {
		two = l.src[l.pos : l.pos+2]
	}

	switch {
	case c == '(':
		l.pos++
		return l.emit(TokenLParen, start, l.pos)
	case c == ')':
		l.pos++
		return l.emit(TokenRParen, start, l.pos)
	case c == '{':
		l.pos++
		return l.emit(TokenLBrace, start, l.pos)
	case c == '}':
		l.pos++
		return l.emit(TokenRBrace, start, l.pos)
	case c == '[':
		l.pos++
		return l.emit(TokenLBracket, start, l.pos)
	case c == ']':
		l.pos++
		return l.emit(TokenRBracket, start, l.pos)
	case c == ';':
		l.pos++
		return l.emit(TokenSemicolon, start, l.pos)
	case c == ',':
		l.pos++
		return l.emit(TokenComma, start, l.pos)
	case two == "=>":
		l.pos += 2
		return l.emit(TokenFatComma, start, l.pos)
	case two == "->":
		l.pos += 2
		return l.emit(TokenArrow, start, l.pos)
	case two == "::":
		l.pos += 2
		return l.emit(TokenDoubleColon, start, l.pos)
	case c == ':':
		l.pos++
		return l.emit(TokenColon, start, l.pos)
	case two == "==":
		l.pos += 2
		return l.emit(TokenEq, start, l.pos)
	case two == "!=":
		l.pos += 2
		return l.emit(TokenNe, start, l.pos)
	case two == "<=":
		l.pos += 2
		return l.emit(TokenLe, start, l.pos)
	case two == ">=":
		l.pos += 2
		return l.emit(TokenGe, start, l.pos)
	case c == '>':
		if two == ">>" {
			l.pos += 2
			return l.emit(TokenShiftRight, start, l.pos)
		}
		l.pos++
		return l.emit(TokenGt, start, l.pos)
	case two == "=~":
		l.pos += 2
		return l.emit(TokenMatchBind, start, l.pos)
	case two == "!~":
		l.pos += 2
		return l.emit(TokenNotMatch, start, l.pos)
	case c == '!':
		l.pos++
		return l.emit(TokenNot, start, l.pos)
	case c == '=':
		l.pos++
		return l.emit(TokenAssign, start, l.pos)
	case two == "++":
		l.pos += 2
		return l.emit(TokenIncrement, start, l.pos)
	case two == "--":
		l.pos += 2
		return l.emit(TokenDecrement, start, l.pos)
	case c == '+':
		return l.lexArithOrAssign(start, TokenPlus)
	case c == '-':
		if isFileTestStart(l.src, l.pos) {
			return l.lexFileTest(start)
		}
		return l.lexArithOrAssign(start, TokenMinus)
	case c == '.':
		if two == ".." {
			if strings.HasPrefix(l.src[l.pos:], "...") {
				l.pos += 3
				return l.emit(TokenDotDotDot, start, l.pos)
			}
			l.pos += 2
			return l.emit(TokenDotDot, start, l.pos)
		}
		return l.lexArithOrAssign(start, TokenDot)
	case c == '|':
		if two == "||" {
			l.pos += 2
			return l.emit(TokenOrOr, start, l.pos)
		}
		l.pos++
		return l.emit(TokenBitOr, start, l.pos)
	case c == '^':
		l.pos++
		return l.emit(TokenBitXor, start, l.pos)
	case c == '~':
		l.pos++
		return l.emit(TokenBitNot, start, l.pos)
	case c == '\\':
		l.pos++
		return l.emit(TokenBackslash, start, l.pos)
	case c == '?':
		l.pos++
		return l.emit(TokenQuestion, start, l.pos)
	}

	l.pos++
	return l.emit(TokenUnknown, start, l.pos)
}

func (l *Lexer) lexArithOrAssign(start int, kind TokenKind) Token {
	l.pos++
	if l.pos < len(l.src) && l.src[l.pos] == '=' {
		l.pos++
		return l.emit(TokenOpAssign, start, l.pos)
	}
	return l.emit(kind, start, l.pos)
}

func isFileTestStart(src string, pos int) bool {
	if pos+1 >= len(src) {
		return false
	}
	if !fileTestLetters[src[pos+1]] {
		return false
	}
	if pos+2 < len(src) && isIdentCont(src[pos+2]) {
		return false
	}
	return true
}

func (l *Lexer) lexFileTest(start int) Token {
	l.pos += 2
	return l.emit(TokenFileTest, start, l.pos)
}
