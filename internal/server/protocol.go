package server

// Wire-level LSP structures exchanged during the handshake and during
// text-document requests/notifications. Field names follow the LSP spec's
// JSON casing; positions and ranges are zero-based, translated from the
// syntax package's 1-based byte-oriented LineCol at this boundary and
// nowhere else.

type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

type TextDocumentIdentifier struct {
	URI string `json:"uri"`
}

type TextDocumentItem struct {
	URI     string `json:"uri"`
	Text    string `json:"text"`
	Version int    `json:"version"`
}

type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

type ContentChange struct {
	Text string `json:"text"`
}

type DidChangeTextDocumentParams struct {
	TextDocument   TextDocumentIdentifier `json:"textDocument"`
	ContentChanges []ContentChange        `json:"contentChanges"`
}

// Diagnostic is the wire form of one entry in a publishDiagnostics
// notification. Severity 1 is Error; the grammar and semantic layer of
// this server only ever produce errors.
type Diagnostic struct {
	Range    Range  `json:"range"`
	Severity int    `json:"severity"`
	Code     string `json:"code"`
	Source   string `json:"source"`
	Message  string `json:"message"`
}

const (
	DiagnosticSeverityError = 1
)

const (
	DiagnosticSource = "mojom-lsp"
	DiagnosticCode   = "mojom"
)

type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

type TextDocumentSyncOptions struct {
	OpenClose bool `json:"openClose"`
	Change    int  `json:"change"`
}

const TextDocumentSyncKindFull = 2

type ServerCapabilities struct {
	TextDocumentSync    TextDocumentSyncOptions `json:"textDocumentSync"`
	DefinitionProvider  bool                    `json:"definitionProvider"`
	DeclarationProvider bool                    `json:"declarationProvider"`
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   ServerInfo         `json:"serverInfo"`
}

// InitializeParams only decodes the two fields this server consults, per
// §6: "Client capabilities consumed. Only rootUri / rootPath."
type InitializeParams struct {
	RootURI  *string `json:"rootUri"`
	RootPath *string `json:"rootPath"`
}

func serverCapabilities() ServerCapabilities {
	return ServerCapabilities{
		TextDocumentSync: TextDocumentSyncOptions{
			OpenClose: true,
			Change:    TextDocumentSyncKindFull,
		},
		DefinitionProvider:  true,
		DeclarationProvider: true,
	}
}
