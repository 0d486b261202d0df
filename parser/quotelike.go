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

import "github.com/perltooling/perl-lsp/ast"

/*
pairedDelimiters maps an opening paired delimiter to its closer. Every
other rune is treated as a non-paired delimiter whose closer is
itself (§4.1).
*/
var pairedDelimiters = map[rune]rune{
	'(': ')',
	'[': ']',
	'{': '}',
	'<': '>',
}

/*
QuoteBody is one delimited body extracted by the quote-like extractor,
along with the delimiters that bounded it.
*/
type QuoteBody struct {
	Content    ast.ByteSpan // span of the body, delimiters excluded
	Terminated bool
}

/*
QuoteLikeResult is the outcome of extracting a quote-like operator's
bodies (one for q/qq/qw/qr/qx/m, two for s/tr/y) plus trailing
modifier letters.
*/
type QuoteLikeResult struct {
	Bodies    []QuoteBody
	Modifiers string
	End       int // offset immediately past modifiers
}

/*
ExtractQuoteLike scans a quote-like operator body starting at
delimStart, the offset of the opening delimiter byte. bodyCount is 1
for q/qq/qw/qr/qx/m, 2 for s/tr/y. It is a pure function over the
source buffer so it can be unit-tested in isolation (§9) over every
delimiter choice (§8.8-9).

Zero-length/truncated input is handled gracefully: the function never
panics, and reports Terminated=false when a body runs off the end of
the source.
*/
func ExtractQuoteLike(src string, delimStart int, bodyCount int) QuoteLikeResult {
	if delimStart >= len(src) {
		return QuoteLikeResult{End: delimStart}
	}

	opener := rune(src[delimStart])
	closer, paired := pairedDelimiters[opener]
	if !paired {
		closer = opener
	}

	pos := delimStart + 1
	bodies := make([]QuoteBody, 0, bodyCount)

	for i := 0; i < bodyCount; i++ {
		if paired && i > 0 {
			// Each paired body may use a different delimiter pair; skip
			// whitespace and re-read the opener (§4.1).
			pos = skipInterBodyWhitespace(src, pos)
			if pos >= len(src) {
				bodies = append(bodies, QuoteBody{Content: ast.ByteSpan{Start: pos, End: pos}, Terminated: false})
				continue
			}
			opener = rune(src[pos])
			closer, paired = pairedDelimiters[opener]
			if !paired {
				closer = opener
			}
			pos++
		}

		bodyStart := pos
		bodyEnd, nextPos, terminated := scanDelimitedBody(src, pos, opener, closer, paired)
		bodies = append(bodies, QuoteBody{Content: ast.ByteSpan{Start: bodyStart, End: bodyEnd}, Terminated: terminated})
		pos = nextPos

		if !paired && i == 0 && bodyCount == 2 {
			// Non-paired delimiters: the same delimiter separates both
			// bodies, already consumed by scanDelimitedBody's closer.
		}
	}

	modStart := pos
	for pos < len(src) && isModifierLetter(src[pos]) {
		pos++
	}

	return QuoteLikeResult{Bodies: bodies, Modifiers: src[modStart:pos], End: pos}
}

/*
scanDelimitedBody scans from pos (just after the opener) to the
matching closer, honoring nesting depth for paired delimiters and
backslash escapes for both. Returns the body's end offset (delimiter
excluded), the offset just past the closing delimiter, and whether a
closer was found.
*/
func scanDelimitedBody(src string, pos int, opener, closer rune, paired bool) (bodyEnd, nextPos int, terminated bool) {
	depth := 1

	for pos < len(src) {
		c := rune(src[pos])

		switch {
		case c == '\\' && pos+1 < len(src):
			// Escaped delimiter or backslash: skip both bytes (§4.1 b).
			pos += 2
			continue

		case paired && c == opener:
			depth++
			pos++
			continue

		case c == closer:
			depth--
			pos++
			if depth == 0 {
				return pos - 1, pos, true
			}
			continue
		}

		pos++
	}

	return pos, pos, false
}

func skipInterBodyWhitespace(src string, pos int) int {
	for pos < len(src) {
		switch src[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
			continue
		}
		return pos
	}
	return pos
}

func isModifierLetter(b byte) bool {
	switch b {
	case 'g', 'i', 'm', 's', 'x', 'o', 'e', 'r', 'c', 'd', 'n', 'p', 'u', 'a', 'l':
		return true
	}
	return false
}
