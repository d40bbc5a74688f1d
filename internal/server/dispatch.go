package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GoogleChromeLabs/mojom-language-support/internal/logging"
	"github.com/GoogleChromeLabs/mojom-language-support/internal/rpc"
)

const (
	serverName    = "mojom-lsp"
	serverVersion = "0.1.0"
)

type dispatchState int

const (
	stateInitialized dispatchState = iota
	stateShuttingDown
)

// dispatcher is the reader/dispatch state machine (component F, §5): it
// owns the connection's read side and routes every request and
// notification to the writer and analysis tasks, never touching document
// state directly.
type dispatcher struct {
	reader   *bufio.Reader
	writer   *writerTask
	analysis *analysisTask
	state    dispatchState
	logger   *zap.Logger
}

// Start runs the server to completion against r/w and returns the
// process exit code the caller should use. It performs the initialize
// handshake, then the main request/notification loop, then tears down
// the writer and analysis tasks in order so every pending diagnostic is
// flushed before returning.
func Start(r io.Reader, w io.Writer) (int, error) {
	sessionID := uuid.New().String()[:8]

	br := bufio.NewReader(r)
	wt := newWriterTask(w, sessionID)
	var writerGroup errgroup.Group
	writerGroup.Go(func() error {
		wt.run()
		return nil
	})

	rootPath, err := performHandshake(br, wt)
	if err != nil {
		wt.close()
		writerGroup.Wait()
		return 1, err
	}

	at := newAnalysisTask(rootPath, wt, sessionID)
	var analysisGroup errgroup.Group
	analysisGroup.Go(func() error {
		at.run()
		return nil
	})

	d := &dispatcher{
		reader:   br,
		writer:   wt,
		analysis: at,
		state:    stateInitialized,
		logger:   logging.Get(logging.CategoryDispatch).With(zap.String("session", sessionID)),
	}
	exitCode, loopErr := d.loop()

	at.Close()
	analysisGroup.Wait()
	wt.close()
	writerGroup.Wait()

	return exitCode, loopErr
}

// performHandshake enforces the fixed opening exchange §6 requires: the
// first message must be an initialize request, answered with this
// server's capabilities, and the second must be the initialized
// notification. Any deviation is a fatal protocol error — the server
// never guesses its way past a malformed handshake.
func performHandshake(br *bufio.Reader, wt *writerTask) (string, error) {
	body, err := rpc.ReadFrame(br)
	if err != nil {
		return "", err
	}
	env, err := rpc.DecodeEnvelope(body)
	if err != nil {
		return "", err
	}
	kind, err := env.Classify()
	if err != nil {
		return "", err
	}
	if kind != rpc.KindRequest || env.Method != "initialize" {
		return "", fmt.Errorf("handshake: expected initialize request, got method %q", env.Method)
	}

	var params InitializeParams
	if len(env.Params) > 0 {
		if err := json.Unmarshal(env.Params, &params); err != nil {
			return "", fmt.Errorf("handshake: decoding initialize params: %w", err)
		}
	}
	rootPath := resolveWorkspaceRoot(params)

	wt.sendSuccessResponse(*env.ID, InitializeResult{
		Capabilities: serverCapabilities(),
		ServerInfo:   ServerInfo{Name: serverName, Version: serverVersion},
	})

	body, err = rpc.ReadFrame(br)
	if err != nil {
		return "", err
	}
	env, err = rpc.DecodeEnvelope(body)
	if err != nil {
		return "", err
	}
	kind, err = env.Classify()
	if err != nil {
		return "", err
	}
	if kind != rpc.KindNotification || env.Method != "initialized" {
		return "", fmt.Errorf("handshake: expected initialized notification, got method %q", env.Method)
	}

	return rootPath, nil
}

// loop is the main request/notification routing loop. It returns once a
// clean EOF, an exit, or an unrecoverable frame, decode or classification
// error ends the session.
func (d *dispatcher) loop() (int, error) {
	for {
		body, err := rpc.ReadFrame(d.reader)
		if err != nil {
			if err == io.EOF {
				return 1, nil
			}
			d.logger.Warn("reading frame", zap.Error(err))
			return 1, err
		}

		env, err := rpc.DecodeEnvelope(body)
		if err != nil {
			d.logger.Warn("decoding envelope", zap.Error(err))
			return 1, err
		}
		kind, err := env.Classify()
		if err != nil {
			d.logger.Warn("classifying envelope", zap.Error(err))
			return 1, err
		}

		switch kind {
		case rpc.KindRequest:
			if exit, code := d.handleRequest(env); exit {
				return code, nil
			}
		case rpc.KindNotification:
			if exit, code := d.handleNotification(env); exit {
				return code, nil
			}
		case rpc.KindResponse:
			d.logger.Debug("ignoring unsolicited response")
		}
	}
}

// handleRequest dispatches one request. The exit attempt request is an
// Eglot workaround (§6/§9): some clients send `exit` as a request rather
// than a notification, and it must be handled identically either way.
func (d *dispatcher) handleRequest(env rpc.Envelope) (exit bool, code int) {
	switch env.Method {
	case "initialize":
		d.writer.sendErrorResponse(*env.ID, rpc.NewResponseError(rpc.CodeServerNotInitialized, "server already initialized"))
	case "shutdown":
		d.state = stateShuttingDown
		d.writer.sendSuccessResponse(*env.ID, nil)
	case "textDocument/definition":
		d.handleDefinition(*env.ID, env.Params)
	case "exit":
		return true, d.exitCode()
	default:
		d.writer.sendErrorResponse(*env.ID, rpc.NewResponseError(rpc.CodeInternalError, "Unimplemented request"))
	}
	return false, 0
}

func (d *dispatcher) handleDefinition(id rpc.ID, rawParams json.RawMessage) {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(rawParams, &params); err != nil {
		d.writer.sendErrorResponse(id, rpc.NewResponseError(rpc.CodeInvalidParams, "invalid textDocument/definition params"))
		return
	}
	loc, found := d.analysis.GotoDefinition(params.TextDocument.URI, params.Position)
	if !found {
		d.writer.sendSuccessResponse(id, nil)
		return
	}
	d.writer.sendSuccessResponse(id, loc)
}

// handleNotification dispatches one notification. didOpen/didChange feed
// the analysis task; willSave/didSave/didChangeConfiguration are accepted
// and ignored per §6 since this server does no work on save.
func (d *dispatcher) handleNotification(env rpc.Envelope) (exit bool, code int) {
	switch env.Method {
	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams
		if err := json.Unmarshal(env.Params, &params); err != nil {
			d.logger.Warn("decoding didOpen params", zap.Error(err))
			return false, 0
		}
		d.analysis.Check(params.TextDocument.URI, params.TextDocument.Text)
	case "textDocument/didChange":
		var params DidChangeTextDocumentParams
		if err := json.Unmarshal(env.Params, &params); err != nil {
			d.logger.Warn("decoding didChange params", zap.Error(err))
			return false, 0
		}
		if len(params.ContentChanges) == 0 {
			return false, 0
		}
		var full strings.Builder
		for _, change := range params.ContentChanges {
			full.WriteString(change.Text)
		}
		d.analysis.Check(params.TextDocument.URI, full.String())
	case "exit":
		return true, d.exitCode()
	case "workspace/didChangeConfiguration", "textDocument/willSave", "textDocument/didSave":
	default:
		d.logger.Debug("ignoring notification", zap.String("method", env.Method))
	}
	return false, 0
}

func (d *dispatcher) exitCode() int {
	if d.state == stateShuttingDown {
		return 0
	}
	return 1
}
