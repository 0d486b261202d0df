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
	"github.com/perltooling/perl-lsp/ast"
)

/*
maxRecursionDepth bounds expression/statement recursion so that
adversarial or deeply nested input (e.g. thousands of open parens)
fails as a recorded ParseError rather than exhausting the goroutine
stack (§4.3, §7 "RecursionLimit").
*/
const maxRecursionDepth = 256

/*
Parser turns a token stream into an AST using recursive descent for
statements and precedence-climbing (Pratt-style) for expressions.
Grounded on the teacher's astNodeMap + run(rightBinding) climbing loop
(parser/parser.go in ECAL): a token -> binding-power table drives the
same left/right-denotation dispatch here, generalized from ECAL's
~25-token grammar to Perl's full operator set, with a statement layer
grafted on in the same recursive-descent idiom since ECAL's grammar
has no analogous statement forms (if/while/for/sub/package).

Unlike the teacher, Parse never returns a Go error: malformed input is
recovered via one of three strategies (§4.3), so every input - however
broken - produces a tree. Some failures leave an Error node in the
tree; others are recorded only in the returned ParseError list (see
ParseError).
*/
type Parser struct {
	lexer *Lexer
	buf   *tokenBuffer

	errors []ParseError
	depth  int

	constants map[string]ast.ByteSpan // names declared via `use constant`

	// pendingHeredocs holds every Heredoc node created so far, in the
	// same left-to-right declaration order the lexer queues and drains
	// their bodies. Resolved in one pass by resolveHeredocs once the
	// whole file has been scanned (see parseHeredocTerm).
	pendingHeredocs []*ast.Node
}

/*
NewParser creates a parser over Perl source text.
*/
func NewParser(src string) *Parser {
	lx := NewLexer(src)
	return &Parser{
		lexer:     lx,
		buf:       newTokenBuffer(lx, 4),
		constants: make(map[string]ast.ByteSpan),
	}
}

/*
Parse parses src and returns the resulting Program node together with
every recovered error. The returned tree is never nil.
*/
func Parse(src string) (*ast.Node, []ParseError) {
	p := NewParser(src)
	root := p.parseProgram()
	p.resolveHeredocs()
	widenSpans(root)
	return root, p.errors
}

/*
resolveHeredocs assigns collected heredoc bodies to their declaring
nodes once the whole file has been scanned (guaranteed by the time
parseProgram returns, since the token lookahead buffer only stops
pulling once it reaches EOF).

Heredoc content can only be collected once the lexer's scan crosses
the declaring line's newline (Lexer.DrainHeredocs, triggered from
inside the lexer's own whitespace skip), which happens at a point
entirely driven by how far the token lookahead buffer has read ahead -
not by when the parser visits the "<<LABEL" token. For two heredocs
declared on one line ("print(<<A, <<B);"), that drain can land between
the two PopCompletedHeredoc calls a naive single-pass parser would
make, handing A's body to B. Parser.pendingHeredocs and the lexer's
completed-heredoc queue are both strict FIFOs populated in the same
left-to-right source order, so pairing them up only once, after every
heredoc in the file has necessarily been both declared and drained,
removes the timing dependency entirely (§4.2, §8.10).
*/
func (p *Parser) resolveHeredocs() {
	for _, n := range p.pendingHeredocs {
		content, ok := p.lexer.PopCompletedHeredoc()
		if !ok {
			n.Terminated = false
			p.recordError(ErrUnterminatedHeredoc, n.Location, "unterminated heredoc <<"+n.Text)
			continue
		}
		n.Segments = content.Segments
		n.Terminated = content.Terminated
		if content.FullSpan.End > n.Location.End {
			n.Location.End = content.FullSpan.End
		}
		if !content.Terminated {
			p.recordError(ErrUnterminatedHeredoc, n.Location, "unterminated heredoc <<"+n.Text)
		}
	}
	p.pendingHeredocs = nil
}

/*
widenSpans re-establishes span containment bottom-up: resolveHeredocs
extends a Heredoc node's span to cover its body well after every
ancestor node's own span was already fixed at parse time, so without
this pass an enclosing statement's span could end before a heredoc
body nested inside it.
*/
func widenSpans(n *ast.Node) {
	for _, c := range n.Children {
		widenSpans(c)
		if c.Location.Start < n.Location.Start {
			n.Location.Start = c.Location.Start
		}
		if c.Location.End > n.Location.End {
			n.Location.End = c.Location.End
		}
	}
}

func (p *Parser) cur() Token   { return p.buf.peek(0) }
func (p *Parser) peek1() Token { return p.buf.peek(1) }

func (p *Parser) advance() Token { return p.buf.next() }

func (p *Parser) at(kind TokenKind) bool { return p.cur().Kind == kind }

func (p *Parser) atEOF() bool { return p.cur().Kind == TokenEOF }

/*
expect consumes the current token if it matches kind; otherwise
records a recovered error (strategy: synthesize the missing token and
continue, §4.3 recovery strategy 1) and returns the current token
unconsumed.
*/
func (p *Parser) expect(kind TokenKind, errKind ParseErrorKind) Token {
	if p.at(kind) {
		return p.advance()
	}
	tok := p.cur()
	p.recordError(errKind, ast.ByteSpan{Start: tok.Start, End: tok.Start}, "expected token, found "+tok.String())
	return Token{Kind: kind, Start: tok.Start, End: tok.Start}
}

func (p *Parser) recordError(kind ParseErrorKind, span ast.ByteSpan, msg string) {
	p.errors = append(p.errors, ParseError{Kind: kind, Span: span, Message: msg})
}

/*
errorNode builds a terminal Error node covering span, carrying the raw
source text it replaces (§3 "Error" node, §7).
*/
func (p *Parser) errorNode(span ast.ByteSpan, rawText, message string) *ast.Node {
	n := ast.NewNode(ast.Error, span)
	n.RawText = rawText
	n.Message = message
	return n
}

/*
enter guards recursive descent against runaway depth. Call at the top
of every recursive parse function; call the returned done() on every
return path (deferred).
*/
func (p *Parser) enter() (done func(), limited bool) {
	p.depth++
	done = func() {
		p.depth--
		assertTrue(p.depth >= 0, "recursion depth underflow: enter/done called unbalanced")
	}
	return done, p.depth > maxRecursionDepth
}

// ---------------------------------------------------------------------
// Program / statements
// ---------------------------------------------------------------------

func (p *Parser) parseProgram() *ast.Node {
	start := p.cur().Start
	prog := ast.NewNode(ast.Program, ast.ByteSpan{Start: start, End: start})

	for !p.atEOF() {
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		prog.AddChild(stmt)
	}

	end := p.cur().Start
	prog.Location.End = end
	return prog
}

func (p *Parser) parseBlock() *ast.Node {
	done, limited := p.enter()
	defer done()

	start := p.cur().Start
	block := ast.NewNode(ast.Block, ast.ByteSpan{Start: start, End: start})

	if limited {
		p.recordError(ErrRecursionLimit, ast.ByteSpan{Start: start, End: start}, "block nesting too deep")
		return block
	}

	p.expect(TokenLBrace, ErrUnclosedBrace)

	for !p.at(TokenRBrace) && !p.atEOF() {
		stmt := p.parseStatement()
		if stmt == nil {
			break
		}
		block.AddChild(stmt)
	}

	end := p.cur().End
	if p.at(TokenRBrace) {
		p.advance()
	} else {
		p.recordError(ErrUnclosedBrace, ast.ByteSpan{Start: start, End: end}, "unterminated block")
	}
	block.Location.End = end
	return block
}

/*
parseStatement dispatches on the leading token. Every branch consumes
exactly one statement (including its trailing modifier, if any, and
terminating semicolon).
*/
func (p *Parser) parseStatement() *ast.Node {
	done, limited := p.enter()
	defer done()

	start := p.cur()
	if limited {
		p.recordError(ErrRecursionLimit, ast.ByteSpan{Start: start.Start, End: start.Start}, "statement nesting too deep")
		return p.skipToStatementBoundary(start)
	}

	switch start.Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenSemicolon:
		p.advance()
		return ast.NewNode(ast.Statement, ast.ByteSpan{Start: start.Start, End: start.End})
	case TokenKeywordIf, TokenKeywordUnless:
		return p.parseIf()
	case TokenKeywordWhile, TokenKeywordUntil:
		return p.parseWhile()
	case TokenKeywordFor, TokenKeywordForeach:
		return p.parseFor()
	case TokenKeywordSub:
		return p.parseSub()
	case TokenKeywordPackage:
		return p.parsePackage()
	case TokenKeywordUse, TokenKeywordNo:
		return p.parseUseNo()
	case TokenKeywordReturn:
		return p.parseReturnLike(ast.Return, "return")
	case TokenKeywordLast:
		return p.parseReturnLike(ast.Last, "last")
	case TokenKeywordNext:
		return p.parseReturnLike(ast.Next, "next")
	default:
		return p.parseExpressionStatement()
	}
}

/*
skipToStatementBoundary is the second of the three §4.3 recovery
strategies: when a construct can't be salvaged (here, depth-limited),
skip tokens until a statement boundary (';' or '}') and wrap the
skipped span as an Error node.
*/
func (p *Parser) skipToStatementBoundary(start Token) *ast.Node {
	for !p.atEOF() && !p.at(TokenSemicolon) && !p.at(TokenRBrace) {
		p.advance()
	}
	end := p.cur().Start
	if p.at(TokenSemicolon) {
		end = p.advance().End
	}
	return p.errorNode(ast.ByteSpan{Start: start.Start, End: end}, "", "recursion limit exceeded")
}

/*
parseStatementModifier wraps a simple statement with a trailing
postfix if/unless/while/until/for modifier, if one is present (§4.3
"statement modifiers").
*/
func (p *Parser) parseStatementModifier(stmt *ast.Node, start int) *ast.Node {
	kind := p.cur().Kind
	var modKind string
	switch kind {
	case TokenKeywordIf:
		modKind = "if"
	case TokenKeywordUnless:
		modKind = "unless"
	case TokenKeywordWhile:
		modKind = "while"
	case TokenKeywordUntil:
		modKind = "until"
	case TokenKeywordFor, TokenKeywordForeach:
		modKind = "for"
	default:
		return p.finishSimpleStatement(stmt, start)
	}
	p.advance()
	cond := p.parseExpr(0)

	mod := ast.NewNode(ast.StatementModifier, ast.ByteSpan{Start: start, End: p.cur().End})
	mod.Modifiers = modKind
	mod.AddChild(stmt)
	mod.AddChild(cond)
	return p.finishSimpleStatement(mod, start)
}

func (p *Parser) finishSimpleStatement(stmt *ast.Node, start int) *ast.Node {
	end := p.cur().End
	if p.at(TokenSemicolon) {
		end = p.advance().End
	} else if !p.at(TokenRBrace) && !p.atEOF() {
		p.recordError(ErrMissingSemicolon, ast.ByteSpan{Start: end, End: end}, "missing ';'")
	}
	stmt.Location = ast.ByteSpan{Start: start, End: end}
	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.Node {
	start := p.cur().Start
	expr := p.parseExpr(0)
	outer := ast.NewNode(ast.ExpressionStatement, ast.ByteSpan{Start: start, End: start})
	outer.AddChild(expr)
	return p.parseStatementModifier(outer, start)
}

func (p *Parser) parseReturnLike(kind ast.Kind, _ string) *ast.Node {
	start := p.advance() // consume keyword
	n := ast.NewNode(kind, ast.ByteSpan{Start: start.Start, End: start.End})
	if !p.at(TokenSemicolon) && !p.at(TokenRBrace) && !p.atEOF() &&
		p.cur().Kind != TokenKeywordIf && p.cur().Kind != TokenKeywordUnless {
		n.AddChild(p.parseExpr(0))
	}
	return p.parseStatementModifier(n, start.Start)
}

// ---------------------------------------------------------------------
// Control structures
// ---------------------------------------------------------------------

func (p *Parser) parseIf() *ast.Node {
	start := p.advance() // if/unless
	negated := start.Kind == TokenKeywordUnless

	kind := ast.If
	p.expect(TokenLParen, ErrUnclosedParen)
	cond := p.parseExpr(0)
	p.expect(TokenRParen, ErrUnclosedParen)
	if negated {
		unary := ast.NewNode(ast.Unary, cond.Location)
		unary.Text = "!"
		unary.AddChild(cond)
		cond = unary
	}

	n := ast.NewNode(kind, ast.ByteSpan{Start: start.Start, End: start.End})
	n.AddChild(cond)
	n.AddChild(p.parseBlock())

	for p.at(TokenKeywordElsif) {
		estart := p.advance()
		p.expect(TokenLParen, ErrUnclosedParen)
		econd := p.parseExpr(0)
		p.expect(TokenRParen, ErrUnclosedParen)
		elsif := ast.NewNode(ast.Elsif, ast.ByteSpan{Start: estart.Start, End: estart.End})
		elsif.AddChild(econd)
		elsif.AddChild(p.parseBlock())
		n.AddChild(elsif)
	}

	if p.at(TokenKeywordElse) {
		p.advance()
		n.AddChild(p.parseBlock())
	}

	n.Location.End = p.cur().Start
	return n
}

func (p *Parser) parseWhile() *ast.Node {
	start := p.advance()
	negated := start.Kind == TokenKeywordUntil

	p.expect(TokenLParen, ErrUnclosedParen)
	cond := p.parseExpr(0)
	p.expect(TokenRParen, ErrUnclosedParen)
	if negated {
		unary := ast.NewNode(ast.Unary, cond.Location)
		unary.Text = "!"
		unary.AddChild(cond)
		cond = unary
	}

	n := ast.NewNode(ast.While, ast.ByteSpan{Start: start.Start, End: start.End})
	n.AddChild(cond)
	n.AddChild(p.parseBlock())
	n.Location.End = p.cur().Start
	return n
}

/*
parseFor handles both C-style ("for (init; cond; step) {...}") and
list-style ("foreach my $x (@list) {...}") loops (§4.3).
*/
func (p *Parser) parseFor() *ast.Node {
	start := p.advance() // for/foreach

	if p.at(TokenKeywordMy) || (p.at(TokenSigilScalar) && p.peek1().Kind == TokenLParen) {
		return p.parseForeachFrom(start)
	}

	p.expect(TokenLParen, ErrUnclosedParen)

	// Disambiguate C-style vs list-style: C-style when the init clause
	// is empty (a ';' right after the paren) or when looksLikeForInit
	// finds a ';' within the buffered lookahead window; anything else
	// parses as a list-style foreach.
	if p.at(TokenSemicolon) || p.looksLikeForInit() {
		return p.parseCStyleFor(start)
	}

	n := ast.NewNode(ast.Foreach, ast.ByteSpan{Start: start.Start, End: start.End})
	list := p.parseExpr(0)
	n.AddChild(list)
	p.expect(TokenRParen, ErrUnclosedParen)
	n.AddChild(p.parseBlock())
	n.Location.End = p.cur().Start
	return n
}

/*
looksLikeForInit is a shallow lookahead heuristic: C-style for-loops
begin with an expression followed by ';' before the loop's closing
paren is reachable within lookahead range. Since full unbounded
lookahead isn't available, this only recognizes the unambiguous case
where a ';' appears within the buffered lookahead window; anything
else is parsed as a list-style foreach, matching the common case.
*/
func (p *Parser) looksLikeForInit() bool {
	for i := 1; i < p.buf.size; i++ {
		switch p.buf.peek(i).Kind {
		case TokenSemicolon:
			return true
		case TokenRParen, TokenLBrace, TokenEOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseCStyleFor(start Token) *ast.Node {
	n := ast.NewNode(ast.For, ast.ByteSpan{Start: start.Start, End: start.End})

	if !p.at(TokenSemicolon) {
		n.AddChild(p.parseExpr(0))
	} else {
		n.AddChild(ast.NewNode(ast.Statement, ast.ByteSpan{Start: p.cur().Start, End: p.cur().Start}))
	}
	p.expect(TokenSemicolon, ErrMissingSemicolon)

	if !p.at(TokenSemicolon) {
		n.AddChild(p.parseExpr(0))
	} else {
		n.AddChild(ast.NewNode(ast.Statement, ast.ByteSpan{Start: p.cur().Start, End: p.cur().Start}))
	}
	p.expect(TokenSemicolon, ErrMissingSemicolon)

	if !p.at(TokenRParen) {
		n.AddChild(p.parseExpr(0))
	} else {
		n.AddChild(ast.NewNode(ast.Statement, ast.ByteSpan{Start: p.cur().Start, End: p.cur().Start}))
	}
	p.expect(TokenRParen, ErrUnclosedParen)

	n.AddChild(p.parseBlock())
	n.Location.End = p.cur().Start
	return n
}

func (p *Parser) parseForeachFrom(start Token) *ast.Node {
	n := ast.NewNode(ast.Foreach, ast.ByteSpan{Start: start.Start, End: start.End})

	if p.at(TokenKeywordMy) {
		p.advance()
		n.AddChild(p.parseVariableTerm("my"))
	} else {
		n.AddChild(p.parseVariableTerm(""))
	}

	p.expect(TokenLParen, ErrUnclosedParen)
	n.AddChild(p.parseExpr(0))
	p.expect(TokenRParen, ErrUnclosedParen)
	n.AddChild(p.parseBlock())
	n.Location.End = p.cur().Start
	return n
}

// ---------------------------------------------------------------------
// Subroutines, packages, use/no
// ---------------------------------------------------------------------

func (p *Parser) parseSub() *ast.Node {
	start := p.advance() // 'sub'
	n := ast.NewNode(ast.Subroutine, ast.ByteSpan{Start: start.Start, End: start.End})

	if p.at(TokenIdentifier) || p.at(TokenBareword) {
		nameTok := p.advance()
		name := ast.NewNode(ast.Bareword, ast.ByteSpan{Start: nameTok.Start, End: nameTok.End})
		name.Text = nameTok.Text
		n.AddChild(name)
	}

	// Prototype/signature, e.g. sub foo ($x, $y) { ... }: recognized
	// as a parenthesized parameter list and attached as a child, not
	// distinguished from a true signature (§4.3's scope does not
	// require prototype-vs-signature semantics).
	if p.at(TokenLParen) {
		n.AddChild(p.parseParenList())
	}

	if p.at(TokenSemicolon) {
		// Forward declaration.
		end := p.advance().End
		n.Location.End = end
		return n
	}

	n.AddChild(p.parseBlock())
	n.Location.End = p.cur().Start
	return n
}

func (p *Parser) parseParenList() *ast.Node {
	start := p.advance() // '('
	n := ast.NewNode(ast.List, ast.ByteSpan{Start: start.Start, End: start.End})
	for !p.at(TokenRParen) && !p.atEOF() {
		n.AddChild(p.parseExpr(assignBP + 1))
		if p.at(TokenComma) || p.at(TokenFatComma) {
			p.advance()
			continue
		}
		break
	}
	end := p.cur().End
	if p.at(TokenRParen) {
		end = p.advance().End
	} else {
		p.recordError(ErrUnclosedParen, ast.ByteSpan{Start: start.Start, End: end}, "unterminated parameter list")
	}
	n.Location.End = end
	return n
}

func (p *Parser) parsePackage() *ast.Node {
	start := p.advance()
	n := ast.NewNode(ast.Package, ast.ByteSpan{Start: start.Start, End: start.End})

	if p.at(TokenIdentifier) || p.at(TokenBareword) {
		nameTok := p.advance()
		name := ast.NewNode(ast.Bareword, ast.ByteSpan{Start: nameTok.Start, End: nameTok.End})
		name.Text = nameTok.Text
		n.AddChild(name)
	}

	if p.at(TokenLBrace) {
		n.AddChild(p.parseBlock())
		n.Location.End = p.cur().Start
		return n
	}

	return p.finishSimpleStatement(n, start.Start)
}

/*
parseUseNo recognizes `use`/`no` pragmas, including all three forms of
`use constant` (§9 supplemented feature: single NAME => VALUE,
hash-of-constants, and `use constant { ... }`).
*/
func (p *Parser) parseUseNo() *ast.Node {
	start := p.advance() // use/no
	kind := ast.Use
	if start.Kind == TokenKeywordNo {
		kind = ast.No
	}
	n := ast.NewNode(kind, ast.ByteSpan{Start: start.Start, End: start.End})

	isConstant := false
	if p.at(TokenIdentifier) || p.at(TokenBareword) {
		nameTok := p.advance()
		name := ast.NewNode(ast.Bareword, ast.ByteSpan{Start: nameTok.Start, End: nameTok.End})
		name.Text = nameTok.Text
		n.AddChild(name)
		isConstant = nameTok.Text == "constant"
	}

	if !p.at(TokenSemicolon) && !p.atEOF() {
		args := p.parseExpr(0)
		n.AddChild(args)
		if isConstant {
			p.recordConstantDeclaration(args)
		}
	}

	return p.finishSimpleStatement(n, start.Start)
}

/*
recordConstantDeclaration walks the `use constant` argument expression
and records every declared constant name, covering all three forms:
"use constant NAME => VALUE", "use constant NAME1 => V1, NAME2 => V2",
and "use constant { NAME1 => V1, NAME2 => V2 }".
*/
func (p *Parser) recordConstantDeclaration(args *ast.Node) {
	collect := func(n *ast.Node) {
		if n.Kind == ast.Bareword || n.Kind == ast.String {
			p.constants[n.Text] = n.Location
		}
	}

	var walk func(n *ast.Node, takeEveryOther bool)
	walk = func(n *ast.Node, takeEveryOther bool) {
		if n == nil {
			return
		}
		switch n.Kind {
		case ast.HashLiteral, ast.List:
			for i, c := range n.Children {
				if i%2 == 0 {
					collect(c)
				}
				_ = c
			}
		case ast.KeyValue:
			if len(n.Children) > 0 {
				collect(n.Children[0])
			}
		default:
			if takeEveryOther {
				collect(n)
			}
		}
	}
	walk(args, true)
}

// ---------------------------------------------------------------------
// Expressions: precedence-climbing
// ---------------------------------------------------------------------

/*
Binding powers, lowest to highest, following §4.3's precedence table.
Grouped in decades so that word-level and symbolic variants of the
same semantic level (e.g. "or"/"||") can share comparisons.
*/
const (
	wordOrBP = 10 + iota*10
	wordAndBP
	wordNotBP
	commaBP
	assignBP
	ternaryBP
	rangeBP
	logicalOrBP
	logicalAndBP
	bitOrBP
	bitAndBP
	equalityBP
	relationalBP
	shiftBP
	additiveBP
	multiplicativeBP
	matchBindBP
	unaryBP
	powerBP
	incrementBP
	arrowBP
)

/*
infixBP returns the left-binding power of kind as an infix/postfix
operator, or 0 if kind never appears in that role.
*/
func infixBP(kind TokenKind) int {
	switch kind {
	case TokenWordOr, TokenWordXor:
		return wordOrBP
	case TokenWordAnd:
		return wordAndBP
	case TokenComma, TokenFatComma:
		return commaBP
	case TokenAssign, TokenOpAssign:
		return assignBP
	case TokenQuestion:
		return ternaryBP
	case TokenDotDot, TokenDotDotDot:
		return rangeBP
	case TokenOrOr, TokenDefinedOr:
		return logicalOrBP
	case TokenAndAnd:
		return logicalAndBP
	case TokenBitOr, TokenBitXor:
		return bitOrBP
	case TokenBitAnd:
		return bitAndBP
	case TokenEq, TokenNe, TokenCmp, TokenStrEq, TokenStrNe, TokenStrCmp:
		return equalityBP
	case TokenLt, TokenGt, TokenLe, TokenGe, TokenStrLt, TokenStrGt, TokenStrLe, TokenStrGe:
		return relationalBP
	case TokenShiftLeft, TokenShiftRight:
		return shiftBP
	case TokenPlus, TokenMinus, TokenDot:
		return additiveBP
	case TokenStar, TokenSlash, TokenPercent:
		return multiplicativeBP
	case TokenMatchBind, TokenNotMatch:
		return matchBindBP
	case TokenPower:
		return powerBP
	case TokenIncrement, TokenDecrement:
		return incrementBP
	case TokenArrow, TokenLBracket, TokenLBrace:
		return arrowBP
	}
	return 0
}

func isRightAssoc(kind TokenKind) bool {
	switch kind {
	case TokenAssign, TokenOpAssign, TokenPower, TokenQuestion:
		return true
	}
	return false
}

/*
parseExpr implements precedence climbing: parse one primary (with
prefix/unary handling), then repeatedly fold in infix/postfix operators
whose binding power exceeds minBP.
*/
func (p *Parser) parseExpr(minBP int) *ast.Node {
	done, limited := p.enter()
	defer done()

	if limited {
		tok := p.cur()
		p.recordError(ErrRecursionLimit, ast.ByteSpan{Start: tok.Start, End: tok.Start}, "expression nesting too deep")
		return p.errorNode(ast.ByteSpan{Start: tok.Start, End: tok.Start}, "", "recursion limit exceeded")
	}

	left := p.parseUnary()

	for {
		kind := p.cur().Kind
		bp := infixBP(kind)
		if bp == 0 || bp <= minBP {
			break
		}

		switch kind {
		case TokenLBracket:
			left = p.parseIndex(left)
			continue
		case TokenLBrace:
			left = p.parseHashIndex(left)
			continue
		case TokenArrow:
			left = p.parseArrow(left)
			continue
		case TokenIncrement, TokenDecrement:
			op := p.advance()
			n := ast.NewNode(ast.Unary, ast.ByteSpan{Start: left.Location.Start, End: op.End})
			n.Text = op.Text + "(postfix)"
			n.AddChild(left)
			left = n
			continue
		case TokenQuestion:
			left = p.parseTernary(left)
			continue
		}

		if kind == TokenComma || kind == TokenFatComma {
			// Left-associative and n-ary: flatten "a, b, c" into one
			// List node rather than nesting List(List(a,b),c), so
			// consumers (e.g. `use constant` recognition) can walk a
			// flat child slice.
			p.advance()
			var list *ast.Node
			if left.Kind == ast.List {
				list = left
			} else {
				list = ast.NewNode(ast.List, left.Location)
				list.AddChild(left)
			}
			if p.canStartTerm() {
				next := p.parseExpr(commaBP)
				list.AddChild(next)
				list.Location.End = next.Location.End
			}
			left = list
			continue
		}

		op := p.advance()
		nextMin := bp
		if isRightAssoc(kind) {
			nextMin = bp - 1
		}
		right := p.parseExpr(nextMin)

		var node *ast.Node
		if kind == TokenAssign || kind == TokenOpAssign {
			node = ast.NewNode(ast.Assignment, ast.ByteSpan{Start: left.Location.Start, End: right.Location.End})
			node.Text = op.Text
		} else if kind == TokenDotDot || kind == TokenDotDotDot {
			node = ast.NewNode(ast.Range, ast.ByteSpan{Start: left.Location.Start, End: right.Location.End})
		} else {
			node = ast.NewNode(ast.Binary, ast.ByteSpan{Start: left.Location.Start, End: right.Location.End})
			node.Text = op.Text
			if op.Text == "" {
				node.Text = opText(op.Kind)
			}
		}
		node.AddChild(left)
		node.AddChild(right)
		left = node
	}

	return left
}

func opText(kind TokenKind) string {
	switch kind {
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenPercent:
		return "%"
	case TokenDot:
		return "."
	case TokenEq:
		return "=="
	case TokenNe:
		return "!="
	case TokenLt:
		return "<"
	case TokenGt:
		return ">"
	case TokenLe:
		return "<="
	case TokenGe:
		return ">="
	case TokenCmp:
		return "<=>"
	case TokenStrEq:
		return "eq"
	case TokenStrNe:
		return "ne"
	case TokenStrLt:
		return "lt"
	case TokenStrGt:
		return "gt"
	case TokenStrLe:
		return "le"
	case TokenStrGe:
		return "ge"
	case TokenStrCmp:
		return "cmp"
	case TokenAndAnd:
		return "&&"
	case TokenOrOr:
		return "||"
	case TokenDefinedOr:
		return "//"
	case TokenWordAnd:
		return "and"
	case TokenWordOr:
		return "or"
	case TokenWordXor:
		return "xor"
	case TokenBitAnd:
		return "&"
	case TokenBitOr:
		return "|"
	case TokenBitXor:
		return "^"
	case TokenShiftLeft:
		return "<<"
	case TokenShiftRight:
		return ">>"
	case TokenMatchBind:
		return "=~"
	case TokenNotMatch:
		return "!~"
	case TokenPower:
		return "**"
	}
	return ""
}

func (p *Parser) parseTernary(cond *ast.Node) *ast.Node {
	p.advance() // '?'
	thenExpr := p.parseExpr(assignBP)
	p.expect(TokenColon, ErrMissingOperator)
	elseExpr := p.parseExpr(ternaryBP - 1)

	n := ast.NewNode(ast.Ternary, ast.ByteSpan{Start: cond.Location.Start, End: elseExpr.Location.End})
	n.AddChild(cond)
	n.AddChild(thenExpr)
	n.AddChild(elseExpr)
	return n
}

func (p *Parser) parseIndex(left *ast.Node) *ast.Node {
	open := p.advance() // '['
	idx := p.parseExpr(0)
	end := p.cur().End
	if p.at(TokenRBracket) {
		end = p.advance().End
	} else {
		p.recordError(ErrUnclosedBracket, ast.ByteSpan{Start: open.Start, End: end}, "unterminated subscript")
	}
	n := ast.NewNode(ast.Index, ast.ByteSpan{Start: left.Location.Start, End: end})
	n.AddChild(left)
	n.AddChild(idx)
	return n
}

func (p *Parser) parseHashIndex(left *ast.Node) *ast.Node {
	open := p.advance() // '{'
	key := p.parseHashKeyExpr()
	end := p.cur().End
	if p.at(TokenRBrace) {
		end = p.advance().End
	} else {
		p.recordError(ErrUnclosedBrace, ast.ByteSpan{Start: open.Start, End: end}, "unterminated hash subscript")
	}
	n := ast.NewNode(ast.Index, ast.ByteSpan{Start: left.Location.Start, End: end})
	n.AddChild(left)
	n.AddChild(key)
	return n
}

/*
parseHashKeyExpr recognizes the bareword-autoquoting special case:
$h{key} treats an unquoted identifier immediately followed by '}' as a
string, not a function call (§4.3 "hash key disambiguation").
*/
func (p *Parser) parseHashKeyExpr() *ast.Node {
	if (p.at(TokenIdentifier) || p.at(TokenBareword)) && p.peek1().Kind == TokenRBrace {
		tok := p.advance()
		n := ast.NewNode(ast.HashKey, ast.ByteSpan{Start: tok.Start, End: tok.End})
		n.Text = tok.Text
		return n
	}
	return p.parseExpr(0)
}

func (p *Parser) parseArrow(left *ast.Node) *ast.Node {
	arrow := p.advance() // '->'

	switch p.cur().Kind {
	case TokenLBracket:
		open := p.advance()
		idx := p.parseExpr(0)
		end := p.cur().End
		if p.at(TokenRBracket) {
			end = p.advance().End
		} else {
			p.recordError(ErrUnclosedBracket, ast.ByteSpan{Start: open.Start, End: end}, "unterminated subscript")
		}
		n := ast.NewNode(ast.Index, ast.ByteSpan{Start: left.Location.Start, End: end})
		n.AddChild(left)
		n.AddChild(idx)
		return n
	case TokenLBrace:
		open := p.advance()
		key := p.parseHashKeyExpr()
		end := p.cur().End
		if p.at(TokenRBrace) {
			end = p.advance().End
		} else {
			p.recordError(ErrUnclosedBrace, ast.ByteSpan{Start: open.Start, End: end}, "unterminated hash subscript")
		}
		n := ast.NewNode(ast.Index, ast.ByteSpan{Start: left.Location.Start, End: end})
		n.AddChild(left)
		n.AddChild(key)
		return n
	case TokenLParen:
		args := p.parseParenList()
		n := ast.NewNode(ast.FunctionCall, ast.ByteSpan{Start: left.Location.Start, End: args.Location.End})
		n.AddChild(left)
		n.AddChild(args)
		return n
	case TokenIdentifier, TokenBareword:
		methodTok := p.advance()
		method := ast.NewNode(ast.Bareword, ast.ByteSpan{Start: methodTok.Start, End: methodTok.End})
		method.Text = methodTok.Text

		n := ast.NewNode(ast.MethodCall, ast.ByteSpan{Start: left.Location.Start, End: methodTok.End})
		n.AddChild(left)
		n.AddChild(method)

		if p.at(TokenLParen) {
			args := p.parseParenList()
			n.AddChild(args)
			n.Location.End = args.Location.End
		}
		return n
	case TokenSigilSub:
		// `$obj->&method` glob-style call: treat the sub name as the
		// called method, same shape as the bareword case.
		methodTok := p.advance()
		method := ast.NewNode(ast.Bareword, ast.ByteSpan{Start: methodTok.Start, End: methodTok.End})
		method.Text = methodTok.Text
		n := ast.NewNode(ast.MethodCall, ast.ByteSpan{Start: left.Location.Start, End: methodTok.End})
		n.AddChild(left)
		n.AddChild(method)
		return n
	}

	p.recordError(ErrUnexpectedToken, ast.ByteSpan{Start: arrow.Start, End: arrow.End}, "expected subscript, call, or method name after '->'")
	return left
}

// ---------------------------------------------------------------------
// Unary / primary
// ---------------------------------------------------------------------

func (p *Parser) parseUnary() *ast.Node {
	tok := p.cur()

	switch tok.Kind {
	case TokenNot, TokenWordNot:
		p.advance()
		operand := p.parseExpr(wordNotBP)
		n := ast.NewNode(ast.Unary, ast.ByteSpan{Start: tok.Start, End: operand.Location.End})
		n.Text = "!"
		n.AddChild(operand)
		return n
	case TokenMinus:
		p.advance()
		operand := p.parseExpr(unaryBP)
		n := ast.NewNode(ast.Unary, ast.ByteSpan{Start: tok.Start, End: operand.Location.End})
		n.Text = "-"
		n.AddChild(operand)
		return n
	case TokenPlus:
		p.advance()
		if p.at(TokenLBrace) {
			// "+{...}" forces a hash literal even when the contents
			// would otherwise read as a block (§4.3 disambiguation).
			return p.parseHashLiteral()
		}
		return p.parseExpr(unaryBP)
	case TokenBitNot:
		p.advance()
		operand := p.parseExpr(unaryBP)
		n := ast.NewNode(ast.Unary, ast.ByteSpan{Start: tok.Start, End: operand.Location.End})
		n.Text = "~"
		n.AddChild(operand)
		return n
	case TokenBackslash:
		p.advance()
		operand := p.parseExpr(unaryBP)
		n := ast.NewNode(ast.Unary, ast.ByteSpan{Start: tok.Start, End: operand.Location.End})
		n.Text = "\\"
		n.AddChild(operand)
		return n
	case TokenIncrement, TokenDecrement:
		p.advance()
		operand := p.parseExpr(incrementBP)
		n := ast.NewNode(ast.Unary, ast.ByteSpan{Start: tok.Start, End: operand.Location.End})
		n.Text = tok.Text + "(prefix)"
		n.AddChild(operand)
		return n
	case TokenFileTest:
		p.advance()
		operand := p.parseExpr(unaryBP)
		n := ast.NewNode(ast.FileTest, ast.ByteSpan{Start: tok.Start, End: operand.Location.End})
		n.Text = tok.Text
		n.AddChild(operand)
		return n
	case TokenKeywordMy, TokenKeywordOur, TokenKeywordLocal, TokenKeywordState:
		return p.parseVariableDeclaration()
	case TokenKeywordDo:
		p.advance()
		block := p.parseBlock()
		n := ast.NewNode(ast.Block, block.Location)
		n.Children = block.Children
		return n
	}

	return p.parsePrimary()
}

var declaratorText = map[TokenKind]string{
	TokenKeywordMy:    "my",
	TokenKeywordOur:   "our",
	TokenKeywordLocal: "local",
	TokenKeywordState: "state",
}

func (p *Parser) parseVariableDeclaration() *ast.Node {
	kw := p.advance()
	declarator := declaratorText[kw.Kind]

	var target *ast.Node
	if p.at(TokenLParen) {
		target = p.parseParenList()
	} else {
		target = p.parseVariableTerm(declarator)
	}

	n := ast.NewNode(ast.VariableDeclaration, ast.ByteSpan{Start: kw.Start, End: target.Location.End})
	n.Declarator = declarator
	n.AddChild(target)
	return n
}

/*
parseVariableTerm parses a single sigiled variable and tags it with
declarator (empty string for an ordinary use, non-empty inside a
declaration or a foreach loop variable).
*/
func (p *Parser) parseVariableTerm(declarator string) *ast.Node {
	tok := p.cur()
	switch tok.Kind {
	case TokenSigilScalar, TokenSigilArray, TokenSigilHash, TokenSigilSub, TokenSigilGlob:
		p.advance()
		n := ast.NewNode(ast.Variable, ast.ByteSpan{Start: tok.Start, End: tok.End})
		n.Text = tok.Text
		n.Sigil = sigilChar(tok.Kind)
		n.Declarator = declarator
		return n
	}
	p.recordError(ErrInvalidVariableName, ast.ByteSpan{Start: tok.Start, End: tok.End}, "expected a variable")
	return p.errorNode(ast.ByteSpan{Start: tok.Start, End: tok.End}, tok.Text, "expected a variable")
}

func sigilChar(kind TokenKind) byte {
	switch kind {
	case TokenSigilScalar:
		return '$'
	case TokenSigilArray:
		return '@'
	case TokenSigilHash:
		return '%'
	case TokenSigilSub:
		return '&'
	case TokenSigilGlob:
		return '*'
	}
	return 0
}

/*
parsePrimary parses a terminal or a parenthesized/bracketed
sub-expression, including function calls (bareword or sigiled),
indirect-object calls, and literals.
*/
func (p *Parser) parsePrimary() *ast.Node {
	tok := p.cur()

	switch tok.Kind {
	case TokenNumber:
		p.advance()
		n := ast.NewNode(ast.Number, ast.ByteSpan{Start: tok.Start, End: tok.End})
		n.Text = tok.Text
		return n
	case TokenString:
		p.advance()
		n := ast.NewNode(ast.String, ast.ByteSpan{Start: tok.Start, End: tok.End})
		n.Text = tok.Text
		n.Interpolated = len(tok.Text) > 0 && tok.Text[0] == '"'
		return n
	case TokenRegex:
		p.advance()
		n := ast.NewNode(ast.Regex, ast.ByteSpan{Start: tok.Start, End: tok.End})
		n.Text = tok.Text
		return n
	case TokenSubstitution:
		p.advance()
		n := ast.NewNode(ast.Substitution, ast.ByteSpan{Start: tok.Start, End: tok.End})
		n.Text = tok.Text
		return n
	case TokenTransliteration:
		p.advance()
		n := ast.NewNode(ast.Transliteration, ast.ByteSpan{Start: tok.Start, End: tok.End})
		n.Text = tok.Text
		return n
	case TokenQwList:
		p.advance()
		n := ast.NewNode(ast.QwList, ast.ByteSpan{Start: tok.Start, End: tok.End})
		return n
	case TokenHeredocStart:
		return p.parseHeredocTerm()
	case TokenSigilScalar, TokenSigilArray, TokenSigilHash, TokenSigilSub, TokenSigilGlob:
		return p.parseVariableTerm("")
	case TokenLParen:
		return p.parseParenExprOrList()
	case TokenLBracket:
		return p.parseArrayLiteral()
	case TokenLBrace:
		return p.parseBraceTerm()
	case TokenIdentifier, TokenBareword:
		return p.parseCallOrBareword()
	}

	p.advance()
	p.recordError(ErrUnexpectedToken, ast.ByteSpan{Start: tok.Start, End: tok.End}, "unexpected token "+tok.String())
	return p.errorNode(ast.ByteSpan{Start: tok.Start, End: tok.End}, tok.Text, "unexpected token")
}

/*
parseHeredocTerm consumes a "<<LABEL" token and creates its Heredoc
node, but never tries to read the body here: the lexer hasn't
necessarily drained it yet (see resolveHeredocs). The node is queued
on p.pendingHeredocs and filled in once the whole file has been
scanned.
*/
func (p *Parser) parseHeredocTerm() *ast.Node {
	tok := p.advance()
	n := ast.NewNode(ast.Heredoc, ast.ByteSpan{Start: tok.Start, End: tok.End})
	n.Text = tok.Text
	n.QuoteKind = string(tok.HeredocQuote)
	n.Indented = tok.HeredocIndented
	n.Interpolated = tok.HeredocQuote != HeredocSingle

	p.pendingHeredocs = append(p.pendingHeredocs, n)
	return n
}

/*
parseParenExprOrList parses "(expr)" or "(expr, expr, ...)"; the
latter always yields a List node even with one trailing comma, the
former yields the inner expression directly (parens don't themselves
produce a node, matching how they're invisible in the AST once
grouping is resolved by the precedence climb).
*/
func (p *Parser) parseParenExprOrList() *ast.Node {
	start := p.advance() // '('
	if p.at(TokenRParen) {
		end := p.advance().End
		return ast.NewNode(ast.List, ast.ByteSpan{Start: start.Start, End: end})
	}

	first := p.parseExpr(commaBP)
	if p.at(TokenComma) {
		list := ast.NewNode(ast.List, ast.ByteSpan{Start: start.Start, End: start.End})
		list.AddChild(first)
		for p.at(TokenComma) {
			p.advance()
			if p.at(TokenRParen) {
				break
			}
			list.AddChild(p.parseExpr(commaBP))
		}
		end := p.cur().End
		if p.at(TokenRParen) {
			end = p.advance().End
		} else {
			p.recordError(ErrUnclosedParen, ast.ByteSpan{Start: start.Start, End: end}, "unterminated list")
		}
		list.Location.End = end
		return list
	}

	end := p.cur().End
	if p.at(TokenRParen) {
		end = p.advance().End
	} else {
		p.recordError(ErrUnclosedParen, ast.ByteSpan{Start: start.Start, End: end}, "unterminated parenthesized expression")
	}
	first.Location = ast.ByteSpan{Start: start.Start, End: end}
	return first
}

func (p *Parser) parseArrayLiteral() *ast.Node {
	start := p.advance() // '['
	n := ast.NewNode(ast.ArrayLiteral, ast.ByteSpan{Start: start.Start, End: start.End})
	for !p.at(TokenRBracket) && !p.atEOF() {
		n.AddChild(p.parseExpr(commaBP))
		if p.at(TokenComma) || p.at(TokenFatComma) {
			p.advance()
			continue
		}
		break
	}
	end := p.cur().End
	if p.at(TokenRBracket) {
		end = p.advance().End
	} else {
		p.recordError(ErrUnclosedBracket, ast.ByteSpan{Start: start.Start, End: end}, "unterminated array literal")
	}
	n.Location.End = end
	return n
}

/*
parseBraceTerm disambiguates a `{` in term position between a hash
literal and a bare block, one of §4.3's four named "critical
disambiguations": an empty `{}`, a `key => ...` pair, or a
"string, ..." pair reads as a hash; a leading `;` forces a block
(Perl's own `{; ...}` idiom); anything else defaults to a block. The
`+{...}` form that always forces a hash is handled by the TokenPlus
case in parseUnary, one level up, before this is ever reached.
*/
func (p *Parser) parseBraceTerm() *ast.Node {
	if p.looksLikeHashLiteral() {
		return p.parseHashLiteral()
	}
	return p.parseBlock()
}

/*
looksLikeHashLiteral peeks at most two tokens past the opening `{`,
which the 4-token lookahead buffer always has in hand at this point.
*/
func (p *Parser) looksLikeHashLiteral() bool {
	inner := p.peek1()
	switch inner.Kind {
	case TokenRBrace:
		return true
	case TokenSemicolon:
		return false
	}
	after := p.buf.peek(2)
	if after.Kind == TokenFatComma {
		return true
	}
	if inner.Kind == TokenString && after.Kind == TokenComma {
		return true
	}
	return false
}

func (p *Parser) parseHashLiteral() *ast.Node {
	start := p.advance() // '{'
	n := ast.NewNode(ast.HashLiteral, ast.ByteSpan{Start: start.Start, End: start.End})
	for !p.at(TokenRBrace) && !p.atEOF() {
		n.AddChild(p.parseExpr(commaBP))
		if p.at(TokenComma) || p.at(TokenFatComma) {
			p.advance()
			continue
		}
		break
	}
	end := p.cur().End
	if p.at(TokenRBrace) {
		end = p.advance().End
	} else {
		p.recordError(ErrUnclosedBrace, ast.ByteSpan{Start: start.Start, End: end}, "unterminated hash literal")
	}
	n.Location.End = end
	return n
}

/*
parseCallOrBareword handles every form rooted at a bareword: a plain
function call ("foo(...)"), a call with no parens ("foo @args" /
"foo"), an indirect-object call ("new Class(...)", "print FH list"),
or a plain bareword value (used as a hash key or string, §4.3's
conservative indirect-object heuristic, §9 Open Question).
*/
/*
blockTakingBuiltins lists the builtins whose first unparenthesized
argument is a bare BLOCK, not a hash literal or an ordinary expression
("map { $_ * 2 } @list", "sort { $a <=> $b } @list", §4.3).
*/
var blockTakingBuiltins = map[string]bool{
	"map": true, "grep": true, "sort": true,
}

func (p *Parser) parseCallOrBareword() *ast.Node {
	tok := p.advance()
	name := ast.NewNode(ast.Bareword, ast.ByteSpan{Start: tok.Start, End: tok.End})
	name.Text = tok.Text

	if p.at(TokenLParen) {
		args := p.parseParenList()
		n := ast.NewNode(ast.FunctionCall, ast.ByteSpan{Start: tok.Start, End: args.Location.End})
		n.AddChild(name)
		n.AddChild(args)
		return n
	}

	if blockTakingBuiltins[tok.Text] && p.at(TokenLBrace) {
		return p.parseBlockBuiltinCall(tok, name)
	}

	if p.isIndirectObjectCall(tok) {
		return p.parseIndirectCall(tok, name)
	}

	if p.startsBareCallArgs() {
		args := p.parseExpr(wordNotBP)
		n := ast.NewNode(ast.FunctionCall, ast.ByteSpan{Start: tok.Start, End: args.Location.End})
		n.AddChild(name)
		n.AddChild(args)
		return n
	}

	return name
}

/*
parseBlockBuiltinCall parses "BUILTIN { ... } LIST", resolving the
hash-vs-block ambiguity before the general heuristic in parseBraceTerm
ever runs: for these builtins a leading `{` is always a block.
*/
func (p *Parser) parseBlockBuiltinCall(tok Token, name *ast.Node) *ast.Node {
	block := p.parseBlock()
	n := ast.NewNode(ast.FunctionCall, ast.ByteSpan{Start: tok.Start, End: block.Location.End})
	n.AddChild(name)
	n.AddChild(block)
	if p.startsBareCallArgs() {
		list := p.parseExpr(commaBP)
		n.AddChild(list)
		n.Location.End = list.Location.End
	}
	return n
}

/*
isIndirectObjectCall recognizes the conservative forms named in §9:
"new ClassName ...", "print FILEHANDLE ...", and the scalar-then-term
form called out explicitly in §4.3 ("print $fh $x" IS indirect) -
a sigiled scalar immediately followed by another term-starting token,
distinguishing it from an ordinary "print $x" call with a single
argument.
*/
func (p *Parser) isIndirectObjectCall(tok Token) bool {
	if tok.Text != "new" && tok.Text != "print" && tok.Text != "printf" {
		return false
	}
	nxt := p.cur()
	switch nxt.Kind {
	case TokenIdentifier, TokenBareword:
		return isUpperInitial(nxt.Text) || tok.Text != "new"
	case TokenSigilScalar:
		return tok.Text != "new" && startsTerm(p.peek1().Kind)
	}
	return false
}

func (p *Parser) parseIndirectCall(tok Token, name *ast.Node) *ast.Node {
	var target *ast.Node
	if p.at(TokenSigilScalar) {
		target = p.parseVariableTerm("")
	} else {
		targetTok := p.advance()
		target = ast.NewNode(ast.Bareword, ast.ByteSpan{Start: targetTok.Start, End: targetTok.End})
		target.Text = targetTok.Text
	}

	n := ast.NewNode(ast.IndirectCall, ast.ByteSpan{Start: tok.Start, End: target.Location.End})
	n.AddChild(name)
	n.AddChild(target)

	if p.startsBareCallArgs() {
		args := p.parseExpr(commaBP)
		n.AddChild(args)
		n.Location.End = args.Location.End
	}

	return n
}

/*
canStartTerm reports whether the current token can begin another
expression (used after a comma to detect a trailing comma vs. another
list element).
*/
func (p *Parser) canStartTerm() bool {
	switch p.cur().Kind {
	case TokenRParen, TokenRBrace, TokenRBracket, TokenSemicolon, TokenEOF, TokenComma, TokenFatComma:
		return false
	}
	return true
}

/*
startsTerm reports whether a token of the given kind can begin an
expression, independent of parser state - usable against any buffered
token, not just the current one (e.g. isIndirectObjectCall's one-token
lookahead past the scalar it's examining).
*/
func startsTerm(kind TokenKind) bool {
	switch kind {
	case TokenSemicolon, TokenRParen, TokenRBrace, TokenRBracket, TokenComma, TokenFatComma,
		TokenEOF, TokenColon, TokenQuestion,
		TokenKeywordIf, TokenKeywordUnless, TokenKeywordWhile, TokenKeywordUntil, TokenKeywordFor, TokenKeywordForeach,
		TokenWordAnd, TokenWordOr, TokenWordXor, TokenAndAnd, TokenOrOr:
		return false
	}
	return infixBP(kind) == 0
}

/*
startsBareCallArgs reports whether the current token can begin a
paren-less call's argument list. Conservative: only tokens that
unambiguously start an expression qualify, so a bareword followed by
an infix operator or statement terminator is never mistaken for the
start of an argument list.
*/
func (p *Parser) startsBareCallArgs() bool {
	return startsTerm(p.cur().Kind)
}
