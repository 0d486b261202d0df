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
	"context"
	"encoding/json"
	"sort"

	"github.com/perltooling/perl-lsp/ast"
	"github.com/perltooling/perl-lsp/document"
	"github.com/perltooling/perl-lsp/logging"
	"github.com/perltooling/perl-lsp/lsp"
	"github.com/perltooling/perl-lsp/lsprouter"
	"github.com/perltooling/perl-lsp/position"
	"github.com/perltooling/perl-lsp/symbols"
)

/*
Server owns the open-document store and workspace symbol index and
wires every provider function onto a *lsprouter.Router's method table
(§4.7). Grounded on `theRebelliousNerd-codenerd/internal/mangle/lsp.go`'s
LSPServer: one struct holding documents + derived indexes, one method
per LSP request.
*/
type Server struct {
	store    *document.Store
	index    *symbols.Index
	log      *logging.Logger
	shutdown bool
}

/*
NewServer creates a Server with the given bounded cache sizes.
*/
func NewServer(astCacheSize, searchCacheSize int, log *logging.Logger) (*Server, error) {
	store, err := document.NewStore(astCacheSize)
	if err != nil {
		return nil, err
	}
	index, err := symbols.NewIndex(searchCacheSize)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Server{store: store, index: index, log: log}, nil
}

/*
Index exposes the workspace symbol index so cmd/perl-lsp can wire it
into the background workspace.Watcher.
*/
func (s *Server) Index() *symbols.Index {
	return s.index
}

/*
IsOpen reports whether uri is currently open in the editor, so the
workspace.Watcher can skip reindexing documents the store already
tracks live.
*/
func (s *Server) IsOpen(uri string) bool {
	_, ok := s.store.Get(uri)
	return ok
}

func (s *Server) cacheFor(uri string) (*position.LineStartsCache, bool) {
	d, ok := s.store.Get(uri)
	if !ok {
		return nil, false
	}
	return d.LineCache(), true
}

func (s *Server) reindex(uri string) {
	root, _, err := s.store.AST(uri)
	if err != nil {
		return
	}
	s.index.Update(symbols.Build(root, uri))
}

/*
RegisterHandlers wires every provider method onto router, plus the
didOpen/didChange/didClose notifications that keep the store and
workspace index current.
*/
func (s *Server) RegisterHandlers(router *lsprouter.Router) {
	router.Handle("initialize", s.initialize)
	router.Handle("initialized", s.noop)
	router.Handle("shutdown", s.shutdownHandler)
	router.Handle("exit", s.noop)

	router.Handle("textDocument/didOpen", s.didOpen)
	router.Handle("textDocument/didChange", s.didChange)
	router.Handle("textDocument/didClose", s.didClose)

	router.Handle("textDocument/hover", s.hover)
	router.Handle("textDocument/definition", s.definition)
	router.Handle("textDocument/declaration", s.definition)
	router.Handle("textDocument/references", s.references)
	router.Handle("textDocument/documentHighlight", s.documentHighlight)
	router.Handle("textDocument/documentSymbol", s.documentSymbol)
	router.Handle("textDocument/completion", s.completion)
	router.Handle("textDocument/diagnostic", s.diagnostic)
	router.Handle("textDocument/prepareRename", s.prepareRename)
	router.Handle("textDocument/rename", s.rename)
	router.Handle("textDocument/documentLink", s.documentLink)
	router.Handle("textDocument/foldingRange", s.foldingRange)
	router.Handle("textDocument/selectionRange", s.selectionRange)
	router.Handle("textDocument/signatureHelp", s.signatureHelp)
	router.Handle("textDocument/codeAction", s.codeAction)
	router.Handle("textDocument/semanticTokens/full", s.semanticTokensFull)
	router.Handle("textDocument/semanticTokens/range", s.semanticTokensRange)
	router.Handle("workspace/symbol", s.workspaceSymbol)
	router.Handle("workspace/executeCommand", s.executeCommand)

	router.SetStalenessCheck(s.isStale)
}

/*
initialize advertises perl-lsp's capabilities (§6). The client's
workspace roots aren't needed here: cmd/perl-lsp already points the
workspace.Watcher at the configured root independently of this call.
*/
func (s *Server) initialize(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	return lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync:          2, // incremental
			HoverProvider:             true,
			DefinitionProvider:        true,
			DeclarationProvider:       true,
			ReferencesProvider:        true,
			DocumentHighlightProvider: true,
			DocumentSymbolProvider:    true,
			WorkspaceSymbolProvider:   true,
			CompletionProvider:        map[string]interface{}{"triggerCharacters": []string{">", ":", "$", "@", "%", "&"}},
			SignatureHelpProvider:     map[string]interface{}{"triggerCharacters": []string{"(", ","}},
			CodeActionProvider:        true,
			DocumentLinkProvider:      map[string]interface{}{"resolveProvider": true},
			RenameProvider:            map[string]interface{}{"prepareProvider": true},
			SelectionRangeProvider:    true,
			FoldingRangeProvider:      true,
			DiagnosticProvider:        map[string]interface{}{"interFileDependencies": false, "workspaceDiagnostics": false},
			SemanticTokensProvider:    map[string]interface{}{"legend": semanticTokensLegend(), "full": true, "range": true},
			ExecuteCommandProvider:    map[string]interface{}{"commands": SupportedCommands},
		},
	}, nil
}

func (s *Server) noop(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	return nil, nil
}

func (s *Server) shutdownHandler(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	s.shutdown = true
	return nil, nil
}

/*
isStale implements §5's implicit staleness cancellation: a request
carrying a document version older than the store's current version is
rejected before its handler runs. Requests without a textDocument
(e.g. workspace/symbol) are never stale.
*/
func (s *Server) isStale(method string, params json.RawMessage) (string, bool) {
	var p struct {
		TextDocument struct {
			URI     string `json:"uri"`
			Version int    `json:"version"`
		} `json:"textDocument"`
	}
	if err := json.Unmarshal(params, &p); err != nil || p.TextDocument.URI == "" {
		return "", false
	}
	if p.TextDocument.Version == 0 {
		return "", false
	}
	d, ok := s.store.Get(p.TextDocument.URI)
	if !ok {
		return "", false
	}
	return p.TextDocument.URI, p.TextDocument.Version < d.Version()
}

func (s *Server) didOpen(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.DidOpenTextDocumentParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	s.store.Open(p.TextDocument.URI, p.TextDocument.Text, p.TextDocument.Version)
	s.reindex(p.TextDocument.URI)
	return nil, nil
}

func (s *Server) didChange(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.DidChangeTextDocumentParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}

	if len(p.ContentChanges) == 1 && p.ContentChanges[0].Range == nil {
		if err := s.store.ChangeFull(p.TextDocument.URI, p.ContentChanges[0].Text, p.TextDocument.Version); err != nil {
			return nil, err
		}
	} else {
		edits := make([]document.Edit, 0, len(p.ContentChanges))
		for _, c := range p.ContentChanges {
			if c.Range == nil {
				continue
			}
			edits = append(edits, document.Edit{
				StartLine: c.Range.Start.Line, StartColumn: c.Range.Start.Character,
				EndLine: c.Range.End.Line, EndColumn: c.Range.End.Character,
				NewText: c.Text,
			})
		}
		if err := s.store.ChangeIncremental(p.TextDocument.URI, edits, p.TextDocument.Version); err != nil {
			return nil, err
		}
	}

	s.reindex(p.TextDocument.URI)
	return nil, nil
}

func (s *Server) didClose(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.DidCloseTextDocumentParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	s.store.Close(p.TextDocument.URI)
	s.index.Remove(p.TextDocument.URI)
	return nil, nil
}

func (s *Server) hover(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.TextDocumentPositionParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	table, ok := s.index.Table(p.TextDocument.URI)
	if !ok {
		table = symbols.Build(root, p.TextDocument.URI)
	}
	h, ok := Hover(root, d.LineCache(), table, p.Position)
	if !ok {
		return nil, nil
	}
	return h, nil
}

func (s *Server) definition(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.TextDocumentPositionParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	table, ok := s.index.Table(p.TextDocument.URI)
	if !ok {
		table = symbols.Build(root, p.TextDocument.URI)
	}
	return Definition(root, d.LineCache(), table, s.index, p.TextDocument.URI, p.Position, s.cacheFor), nil
}

func (s *Server) references(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.ReferenceParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	table, ok := s.index.Table(p.TextDocument.URI)
	if !ok {
		table = symbols.Build(root, p.TextDocument.URI)
	}
	return References(root, d.LineCache(), table, s.index, p.TextDocument.URI, p.Position, p.Context.IncludeDeclaration, s.cacheFor), nil
}

func (s *Server) documentHighlight(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.TextDocumentPositionParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	return DocumentHighlight(root, d.LineCache(), p.Position), nil
}

func (s *Server) documentSymbol(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.DocumentSymbolParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	return DocumentSymbol(root, d.LineCache()), nil
}

func (s *Server) completion(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.TextDocumentPositionParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	table, ok := s.index.Table(p.TextDocument.URI)
	if !ok {
		table = symbols.Build(root, p.TextDocument.URI)
	}
	return Completion(root, d.LineCache(), table, p.Position), nil
}

func (s *Server) diagnostic(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.DiagnosticParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, errs, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	table, ok := s.index.Table(p.TextDocument.URI)
	if !ok {
		table = symbols.Build(root, p.TextDocument.URI)
	}
	return Diagnostics(root, d.LineCache(), errs, table), nil
}

func (s *Server) prepareRename(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.TextDocumentPositionParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	r, err := PrepareRename(root, d.LineCache(), p.Position)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Server) rename(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.RenameParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	table, ok := s.index.Table(p.TextDocument.URI)
	if !ok {
		table = symbols.Build(root, p.TextDocument.URI)
	}
	return Rename(root, d.LineCache(), table, s.index, p.TextDocument.URI, p.NewName, p.Position, s.cacheFor)
}

func (s *Server) documentLink(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.DocumentLinkParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	return DocumentLinks(root, d.LineCache(), p.TextDocument.URI), nil
}

func (s *Server) foldingRange(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.FoldingRangeParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	return FoldingRanges(root, d.LineCache()), nil
}

func (s *Server) selectionRange(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.TextDocumentPositionParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	return SelectionRange(root, d.LineCache(), p.Position), nil
}

func (s *Server) signatureHelp(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.TextDocumentPositionParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	table, ok := s.index.Table(p.TextDocument.URI)
	if !ok {
		table = symbols.Build(root, p.TextDocument.URI)
	}
	return SignatureHelp(root, d.LineCache(), table, p.Position), nil
}

func (s *Server) codeAction(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.CodeActionParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	root, _, err := s.store.AST(p.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	d, _ := s.store.Get(p.TextDocument.URI)
	return CodeActions(root, d.LineCache(), p.TextDocument.URI, p.Range, p.Context.Diagnostics), nil
}

func (s *Server) semanticTokensFull(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.SemanticTokensParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	d, ok := s.store.Get(p.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return SemanticTokens(d.Text(), d.LineCache()), nil
}

func (s *Server) semanticTokensRange(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.SemanticTokensRangeParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	d, ok := s.store.Get(p.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return SemanticTokensRange(d.Text(), d.LineCache(), p.Range), nil
}

func (s *Server) workspaceSymbol(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.WorkspaceSymbolParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	var out []lsp.WorkspaceSymbol
	for _, sym := range s.index.Search(p.Query) {
		locs := s.index.Lookup(sym.Name)
		var uri string
		var rng lsp.Range
		if len(locs) > 0 {
			uri = locs[0].URI
			if cache, ok := s.cacheFor(uri); ok {
				rng = lsp.ToRange(cache, locs[0].Span.Start, locs[0].Span.End)
			}
		}
		out = append(out, lsp.WorkspaceSymbol{
			Name:     sym.Name,
			Kind:     symbolKindToLSP(sym.Kind),
			Location: lsp.Location{URI: uri, Range: rng},
		})
	}
	return out, nil
}

/*
executeCommand dispatches perl-lsp's two workspace/executeCommand
commands (§9 supplemented feature). Both commands compute a
WorkspaceEdit and apply it to the in-memory document directly (there is
no server-initiated workspace/applyEdit round trip in this router), so
the edit is both the command's result and already reflected in the
document store by the time it returns.
*/
func (s *Server) executeCommand(ctx context.Context, raw json.RawMessage) (interface{}, error) {
	var p lsp.ExecuteCommandParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}

	switch p.Command {
	case CommandOrganizeImports:
		var args lsp.OrganizeImportsArgs
		if len(p.Arguments) == 0 || json.Unmarshal(p.Arguments[0], &args) != nil || args.URI == "" {
			return nil, lsprouter.NewProtocolError(-32602, "organizeImports requires a {uri} argument")
		}
		return s.applyServerEdit(args.URI, OrganizeImports)

	case CommandExtractSubroutine:
		var args lsp.ExtractSubroutineArgs
		if len(p.Arguments) == 0 || json.Unmarshal(p.Arguments[0], &args) != nil || args.URI == "" || args.Name == "" {
			return nil, lsprouter.NewProtocolError(-32602, "extractSubroutine requires {uri, range, name} arguments")
		}
		return s.applyServerEdit(args.URI, func(root *ast.Node, cache *position.LineStartsCache, text, uri string) *lsp.WorkspaceEdit {
			return ExtractSubroutine(root, cache, text, uri, args.Range, args.Name)
		})

	default:
		return nil, lsprouter.ErrMethodNotFound(p.Command)
	}
}

/*
applyServerEdit runs compute against uri's current AST/text, and if it
produces a non-nil edit, applies it to the store as a full-document
change (bumping the version) before returning it as the command result.
*/
func (s *Server) applyServerEdit(uri string, compute func(root *ast.Node, cache *position.LineStartsCache, text, uri string) *lsp.WorkspaceEdit) (*lsp.WorkspaceEdit, error) {
	root, _, err := s.store.AST(uri)
	if err != nil {
		return nil, err
	}
	d, ok := s.store.Get(uri)
	if !ok {
		return nil, lsprouter.NewProtocolError(-32602, "unknown document: "+uri)
	}

	edit := compute(root, d.LineCache(), d.Text(), uri)
	if edit == nil {
		return nil, nil
	}

	newText, err := applyTextEdits(d.Text(), d.LineCache(), edit.Changes[uri])
	if err != nil {
		return nil, err
	}
	if err := s.store.ChangeFull(uri, newText, d.Version()+1); err != nil {
		return nil, err
	}
	s.reindex(uri)
	return edit, nil
}

/*
applyTextEdits applies non-overlapping TextEdits to src in descending
offset order, so earlier edits' offsets stay valid while later
(higher-offset) ones are applied first.
*/
type editSpan struct {
	start, end int
	text       string
}

func applyTextEdits(src string, cache *position.LineStartsCache, edits []lsp.TextEdit) (string, error) {
	spans := make([]editSpan, len(edits))
	for i, e := range edits {
		spans[i] = editSpan{start: lsp.ToOffset(cache, e.Range.Start), end: lsp.ToOffset(cache, e.Range.End), text: e.NewText}
	}
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start > spans[j].start
		}
		// An insert and a replace starting at the same offset: apply the
		// replace first so the inserted text ends up in front of it.
		return spans[i].end > spans[j].end
	})

	out := src
	for _, sp := range spans {
		if sp.start < 0 || sp.end > len(out) || sp.start > sp.end {
			return "", lsprouter.NewProtocolError(-32603, "edit range out of bounds")
		}
		out = out[:sp.start] + sp.text + out[sp.end:]
	}
	return out, nil
}

func symbolKindToLSP(k symbols.Kind) lsp.SymbolKind {
	switch k {
	case symbols.KindPackage:
		return lsp.SKPackage
	case symbols.KindSubroutine, symbols.KindMethod:
		return lsp.SKFunction
	case symbols.KindConstant:
		return lsp.SKConstant
	case symbols.KindClass:
		return lsp.SKClass
	default:
		return lsp.SKVariable
	}
}
