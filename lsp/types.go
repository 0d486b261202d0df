/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

// Package lsp holds the wire-facing result types shared by every
// feature provider in lsp/providers, and the helpers that translate
// between byte offsets (the AST's coordinate system) and LSP's
// line/UTF-16-column positions (§4.4, §4.7).
package lsp

import "github.com/perltooling/perl-lsp/position"

/*
Position is an LSP position: zero-based line and UTF-16 column.
*/
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

/*
Range is a half-open [Start, End) span in Position coordinates.
*/
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

/*
Location names a Range within a document.
*/
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

/*
ToRange converts a byte-offset span into an LSP Range using cache.
*/
func ToRange(cache *position.LineStartsCache, startOffset, endOffset int) Range {
	s := cache.OffsetToPosition(startOffset)
	e := cache.OffsetToPosition(endOffset)
	return Range{
		Start: Position{Line: s.Line, Character: s.Column},
		End:   Position{Line: e.Line, Character: e.Column},
	}
}

/*
Hover is the result of the Hover provider: a markup string with the
symbol kind, declaration location, and (if documented) its extracted
doc comment, anchored to the range of the hovered token (§4.7).
*/
type Hover struct {
	Contents string `json:"contents"`
	Range    Range  `json:"range"`
}

/*
DiagnosticSeverity follows LSP severity levels (§4.7 Diagnostics).
*/
type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = 1
	SeverityWarn  DiagnosticSeverity = 2
	SeverityInfo  DiagnosticSeverity = 3
	SeverityHint  DiagnosticSeverity = 4
)

/*
Diagnostic is one issue surfaced by the Diagnostics provider. Carries
severity, code, source="perl-lsp", span, and optional suggestion text
(§4.7).
*/
type Diagnostic struct {
	Range      Range              `json:"range"`
	Severity   DiagnosticSeverity `json:"severity"`
	Code       string             `json:"code"`
	Source     string             `json:"source"`
	Message    string             `json:"message"`
	Suggestion string             `json:"suggestion,omitempty"`
}

/*
SymbolKind mirrors the LSP SymbolKind enumeration used by Document
Symbol and workspace/symbol results.
*/
type SymbolKind int

const (
	SKFile SymbolKind = iota + 1
	SKModule
	SKNamespace
	SKPackage
	SKClass
	SKMethod
	SKProperty
	SKField
	SKConstructor
	SKEnum
	SKInterface
	SKFunction
	SKVariable
	SKConstant
)

/*
DocumentSymbol is one node of the hierarchical tree Document Symbol
returns: packages contain subroutines, subroutines contain nested
variables (§4.7).
*/
type DocumentSymbol struct {
	Name           string           `json:"name"`
	Kind           SymbolKind       `json:"kind"`
	Range          Range            `json:"range"`
	SelectionRange Range            `json:"selectionRange"`
	Children       []DocumentSymbol `json:"children,omitempty"`
}

/*
WorkspaceSymbol is one workspace/symbol search hit.
*/
type WorkspaceSymbol struct {
	Name     string     `json:"name"`
	Kind     SymbolKind `json:"kind"`
	Location Location   `json:"location"`
}

/*
CompletionItem is one completion/signature-help suggestion (§4.7).
*/
type CompletionItem struct {
	Label         string `json:"label"`
	Kind          int    `json:"kind"`
	Detail        string `json:"detail,omitempty"`
	Documentation string `json:"documentation,omitempty"`
	InsertText    string `json:"insertText,omitempty"`
}

/*
SemanticTokens is `textDocument/semanticTokens/full`'s (and `/range`'s)
result: Data is a flat run of delta-encoded quintuples
(deltaLine, deltaStartChar, length, tokenType, tokenModifiers) per the
LSP semantic tokens wire format (§4.7).
*/
type SemanticTokens struct {
	Data []int `json:"data"`
}

/*
TextEdit is a single replace-range-with-text edit.
*/
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

/*
WorkspaceEdit groups TextEdits by document URI, the result shape
Rename returns.
*/
type WorkspaceEdit struct {
	Changes map[string][]TextEdit `json:"changes"`
}

/*
FoldingRange marks a foldable block of lines.
*/
type FoldingRange struct {
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Kind      string `json:"kind,omitempty"`
}

/*
SelectionRange is one node of the selection-range expansion chain.
*/
type SelectionRange struct {
	Range  Range           `json:"range"`
	Parent *SelectionRange `json:"parent,omitempty"`
}

/*
DocumentLink resolves a `use`/`require` statement to a module or file
location (§4.7). Data carries enough to resolve lazily.
*/
type DocumentLink struct {
	Range  Range        `json:"range"`
	Target string       `json:"target,omitempty"`
	Data   DocumentLinkData `json:"data"`
}

/*
DocumentLinkData is the deferred-resolution payload for a DocumentLink
(§4.7 "return a deferred link with data = { type: module|file, name,
baseUri }").
*/
type DocumentLinkData struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	BaseURI string `json:"baseUri"`
}

/*
HighlightKind distinguishes Read/Write/Text occurrences (§4.7 Document
Highlight).
*/
type HighlightKind int

const (
	HighlightText HighlightKind = iota + 1
	HighlightRead
	HighlightWrite
)

/*
DocumentHighlight is one occurrence returned by the Document Highlight
provider.
*/
type DocumentHighlight struct {
	Range Range         `json:"range"`
	Kind  HighlightKind `json:"kind"`
}

/*
ParameterInformation names one parameter of a SignatureInformation.
*/
type ParameterInformation struct {
	Label string `json:"label"`
}

/*
SignatureInformation is one known signature for a call, with its
parameter list (§4.7 Signature Help).
*/
type SignatureInformation struct {
	Label      string                 `json:"label"`
	Parameters []ParameterInformation `json:"parameters,omitempty"`
}

/*
SignatureHelp is the result of the Signature Help provider: the
candidate signatures for the enclosing call and which parameter is
active, found by counting commas at the call's argument depth (§4.7).
*/
type SignatureHelp struct {
	Signatures      []SignatureInformation `json:"signatures"`
	ActiveSignature int                    `json:"activeSignature"`
	ActiveParameter int                    `json:"activeParameter"`
}

/*
CodeAction is one quick fix or refactoring offered for a range plus its
diagnostics (§4.7 Code Actions).
*/
type CodeAction struct {
	Title       string         `json:"title"`
	Kind        string         `json:"kind"`
	Diagnostics []Diagnostic   `json:"diagnostics,omitempty"`
	Edit        *WorkspaceEdit `json:"edit,omitempty"`
}
