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
HeredocQuoteKind mirrors the pending heredoc's declared quoting, which
controls interpolation the way single/double/backtick quotes do for
ordinary strings.
*/
type HeredocQuoteKind string

const (
	HeredocBare     HeredocQuoteKind = "bare"
	HeredocSingle   HeredocQuoteKind = "single"
	HeredocDouble   HeredocQuoteKind = "double"
	HeredocBacktick HeredocQuoteKind = "backtick"
)

/*
PendingHeredoc is queued when the lexer observes "<<LABEL" on a line;
drained in FIFO order at the next newline (§3 "Pending heredoc", §4.2).
*/
type PendingHeredoc struct {
	Label       string
	QuoteKind   HeredocQuoteKind
	AllowIndent bool // "<<~LABEL"
	DeclSpan    ast.ByteSpan
}

/*
HeredocContent is the result of collecting one heredoc's body.
*/
type HeredocContent struct {
	Segments   []ast.ByteSpan
	FullSpan   ast.ByteSpan
	Terminated bool
}

/*
CollectHeredocs gathers the bodies of all pending heredocs starting at
offset (the byte just after the declaring line's newline), in FIFO
declaration order (§4.2, §8.10), and returns the offset immediately
past the last terminator's newline.

This is a pure function over (src, offset, pending) per §9's design
note that the extractor should be separable from the lexer for
isolated testing.
*/
func CollectHeredocs(src string, offset int, pending []PendingHeredoc) ([]HeredocContent, int) {
	results := make([]HeredocContent, 0, len(pending))

	for _, ph := range pending {
		content, next := collectOneHeredoc(src, offset, ph)
		results = append(results, content)
		offset = next
	}

	return results, offset
}

/*
bodyLine is one physical content line collected before the terminator
(and its "<<~" baseline, if any) is known.
*/
type bodyLine struct {
	trimmed   string
	lineStart int
}

/*
collectOneHeredoc scans in two passes rather than one: "<<~"'s strip
prefix is the *terminator* line's own indentation (§4.2 step 3), which
isn't known until the terminator is actually reached, so every content
line must be buffered first and only stripped once the terminator
line has been read. A single combined pass would have to apply
baseline before it is known, stripping nothing.
*/
func collectOneHeredoc(src string, offset int, ph PendingHeredoc) (HeredocContent, int) {
	var lines []bodyLine
	pos := offset
	baseline := ""
	terminated := false

	for pos <= len(src) {
		lineStart := pos
		lineEnd := lineStart
		for lineEnd < len(src) && src[lineEnd] != '\n' {
			lineEnd++
		}

		// lineEnd points at '\n' or len(src) (EOF with no trailing newline).
		rawLine := src[lineStart:lineEnd]
		trimmed := stripCR(rawLine)

		indent := leadingWhitespace(trimmed)
		candidate := trimmed[len(indent):]

		if (ph.AllowIndent && candidate == ph.Label) || (!ph.AllowIndent && trimmed == ph.Label) {
			terminated = true
			if ph.AllowIndent {
				baseline = indent
			}

			if lineEnd < len(src) {
				pos = lineEnd + 1 // consume terminator line's newline
			} else {
				pos = lineEnd
			}
			break
		}

		if lineEnd >= len(src) && rawLine == "" && lineStart == lineEnd {
			// Genuine EOF with nothing left to read.
			break
		}

		lines = append(lines, bodyLine{trimmed: trimmed, lineStart: lineStart})

		if lineEnd >= len(src) {
			// Hit EOF without finding the terminator.
			pos = lineEnd
			break
		}
		pos = lineEnd + 1
	}

	segments := make([]ast.ByteSpan, 0, len(lines))
	firstLineStart := -1
	lastLineEnd := offset
	for _, ln := range lines {
		segStart := ln.lineStart
		if baseline != "" {
			stripLen := commonBytePrefixLen(ln.trimmed, baseline)
			segStart = ln.lineStart + stripLen
		}
		segEnd := ln.lineStart + len(ln.trimmed)

		if firstLineStart == -1 {
			firstLineStart = segStart
		}
		segments = append(segments, ast.ByteSpan{Start: segStart, End: segEnd})
		lastLineEnd = segEnd
	}

	full := ast.ByteSpan{Start: offset, End: offset}
	if firstLineStart != -1 {
		full = ast.ByteSpan{Start: firstLineStart, End: lastLineEnd}
	}

	return HeredocContent{Segments: segments, FullSpan: full, Terminated: terminated}, pos
}

/*
stripCR removes a single trailing '\r' used only for terminator
comparison; the '\r' itself is never part of a yielded segment span.
*/
func stripCR(line string) string {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		return line[:len(line)-1]
	}
	return line
}

func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}

/*
commonBytePrefixLen returns the length of the longest byte-for-byte
common prefix between s and baseline (§4.2 step 3: "strip the longest
common byte prefix with the baseline indent"). No unicode normalization.
*/
func commonBytePrefixLen(s, baseline string) int {
	n := 0
	for n < len(s) && n < len(baseline) && s[n] == baseline[n] {
		n++
	}
	return n
}
