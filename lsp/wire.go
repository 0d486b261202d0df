/*
 * perl-lsp
 *
 * Copyright 2024 The perl-lsp authors. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package lsp

import "encoding/json"

/*
TextDocumentIdentifier names an open document by URI.
*/
type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

/*
TextDocumentPositionParams is the common shape of every
position-anchored request (hover, definition, ...).
*/
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

/*
DidOpenTextDocumentParams is `textDocument/didOpen`'s payload.
*/
type DidOpenTextDocumentParams struct {
	TextDocument struct {
		URI     string `json:"uri"`
		Version int    `json:"version"`
		Text    string `json:"text"`
	} `json:"textDocument"`
}

/*
TextDocumentContentChangeEvent is one incremental (or full, if Range is
nil) edit within `textDocument/didChange`.
*/
type TextDocumentContentChangeEvent struct {
	Range *Range `json:"range,omitempty"`
	Text  string `json:"text"`
}

/*
DidChangeTextDocumentParams is `textDocument/didChange`'s payload.
*/
type DidChangeTextDocumentParams struct {
	TextDocument struct {
		URI     string `json:"uri"`
		Version int    `json:"version"`
	} `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

/*
DidCloseTextDocumentParams is `textDocument/didClose`'s payload.
*/
type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

/*
ReferenceParams extends TextDocumentPositionParams with the
includeDeclaration context flag.
*/
type ReferenceParams struct {
	TextDocumentPositionParams
	Context struct {
		IncludeDeclaration bool `json:"includeDeclaration"`
	} `json:"context"`
}

/*
RenameParams is `textDocument/rename`'s payload.
*/
type RenameParams struct {
	TextDocumentPositionParams
	NewName string `json:"newName"`
}

/*
DocumentSymbolParams, FoldingRangeParams, DocumentLinkParams, and
DiagnosticParams all carry only a TextDocumentIdentifier.
*/
type DocumentSymbolParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}
type FoldingRangeParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}
type DocumentLinkParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}
type DiagnosticParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

/*
SemanticTokensParams is `textDocument/semanticTokens/full`'s payload.
*/
type SemanticTokensParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

/*
SemanticTokensRangeParams is `textDocument/semanticTokens/range`'s
payload.
*/
type SemanticTokensRangeParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
}

/*
WorkspaceSymbolParams is `workspace/symbol`'s payload.
*/
type WorkspaceSymbolParams struct {
	Query string `json:"query"`
}

/*
ExecuteCommandParams is `workspace/executeCommand`'s payload: a command
id plus opaque per-command arguments (§4.6, §9 supplemented feature).
*/
type ExecuteCommandParams struct {
	Command   string            `json:"command"`
	Arguments []json.RawMessage `json:"arguments,omitempty"`
}

/*
OrganizeImportsArgs is perl-lsp.organizeImports' single argument: the
document to sort `use` statements in.
*/
type OrganizeImportsArgs struct {
	URI string `json:"uri"`
}

/*
ExtractSubroutineArgs is perl-lsp.extractSubroutine's single argument:
the document, the statement range to lift out, and the new
subroutine's name.
*/
type ExtractSubroutineArgs struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
	Name  string `json:"name"`
}

/*
CodeActionParams is `textDocument/codeAction`'s payload: a range plus
the diagnostics the client already has for it.
*/
type CodeActionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
	Context      struct {
		Diagnostics []Diagnostic `json:"diagnostics"`
	} `json:"context"`
}

/*
InitializeParams is `initialize`'s payload. Only the fields perl-lsp
actually reads are modeled; unknown fields are ignored by
encoding/json, per the LSP spec's forward-compatibility requirement.
*/
type InitializeParams struct {
	RootURI string `json:"rootUri"`
}

/*
ServerCapabilities is `initialize`'s result, advertising the subset of
§6's capability list that perl-lsp implements.
*/
type ServerCapabilities struct {
	TextDocumentSync                 int                    `json:"textDocumentSync"`
	HoverProvider                    bool                   `json:"hoverProvider"`
	DefinitionProvider                bool                  `json:"definitionProvider"`
	DeclarationProvider               bool                  `json:"declarationProvider"`
	ReferencesProvider                bool                  `json:"referencesProvider"`
	DocumentHighlightProvider         bool                  `json:"documentHighlightProvider"`
	DocumentSymbolProvider            bool                  `json:"documentSymbolProvider"`
	WorkspaceSymbolProvider           bool                  `json:"workspaceSymbolProvider"`
	CompletionProvider                map[string]interface{} `json:"completionProvider"`
	SignatureHelpProvider             map[string]interface{} `json:"signatureHelpProvider"`
	CodeActionProvider                bool                  `json:"codeActionProvider"`
	DocumentLinkProvider              map[string]interface{} `json:"documentLinkProvider"`
	RenameProvider                    map[string]interface{} `json:"renameProvider"`
	SelectionRangeProvider            bool                  `json:"selectionRangeProvider"`
	FoldingRangeProvider              bool                  `json:"foldingRangeProvider"`
	DiagnosticProvider                map[string]interface{} `json:"diagnosticProvider"`
	SemanticTokensProvider            map[string]interface{} `json:"semanticTokensProvider,omitempty"`
	ExecuteCommandProvider            map[string]interface{} `json:"executeCommandProvider,omitempty"`
}

/*
InitializeResult is `initialize`'s full result envelope.
*/
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"serverInfo"`
}
