// Package server exposes the text utilities over JSON-RPC so editor
// integrations can call them without shelling out.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/lexcodex/codeforge/codetext"
)

// Method names handled by the server.
const (
	MethodExtract   = "codeforge/extract"
	MethodMetrics   = "codeforge/metrics"
	MethodFunctions = "codeforge/functions"
)

// ExtractParams is the payload for codeforge/extract.
type ExtractParams struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// ExtractResult carries the extracted code payload.
type ExtractResult struct {
	Code string `json:"code"`
}

// MetricsParams is the payload for codeforge/metrics.
type MetricsParams struct {
	Code string `json:"code"`
}

// MetricsResult combines complexity metrics with the line breakdown.
type MetricsResult struct {
	Complexity codetext.ComplexityMetrics `json:"complexity"`
	Lines      codetext.LineBreakdown     `json:"lines"`
}

// FunctionsParams is the payload for codeforge/functions.
type FunctionsParams struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// FunctionsResult lists discovered function names in order of appearance.
type FunctionsResult struct {
	Functions []string `json:"functions"`
}

// Handler routes JSON-RPC requests to the codetext functions.
type Handler struct {
	Logger *log.Logger
}

// Handle implements jsonrpc2.Handler.
func (h *Handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	result, err := h.dispatch(req)
	if req.Notif {
		return
	}
	if err != nil {
		_ = conn.ReplyWithError(ctx, req.ID, err)
		return
	}
	_ = conn.Reply(ctx, req.ID, result)
}

func (h *Handler) dispatch(req *jsonrpc2.Request) (interface{}, *jsonrpc2.Error) {
	switch req.Method {
	case MethodExtract:
		var params ExtractParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		return ExtractResult{Code: codetext.Extract(params.Text, params.Language)}, nil
	case MethodMetrics:
		var params MetricsParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		return MetricsResult{
			Complexity: codetext.EstimateComplexity(params.Code),
			Lines:      codetext.CountLines(params.Code),
		}, nil
	case MethodFunctions:
		var params FunctionsParams
		if err := unmarshalParams(req, &params); err != nil {
			return nil, err
		}
		return FunctionsResult{Functions: codetext.FindFunctions(params.Code, params.Language)}, nil
	default:
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeMethodNotFound, Message: "method not handled: " + req.Method}
	}
}

func unmarshalParams(req *jsonrpc2.Request, out interface{}) *jsonrpc2.Error {
	if req.Params == nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "params required"}
	}
	if err := json.Unmarshal(*req.Params, out); err != nil {
		return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

// Serve runs the handler over the given transport until the peer disconnects
// or the context is cancelled.
func Serve(ctx context.Context, rwc io.ReadWriteCloser, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	handler := &Handler{Logger: logger}
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	conn := jsonrpc2.NewConn(ctx, stream, handler)
	logger.Printf("rpc server listening")
	select {
	case <-ctx.Done():
		_ = conn.Close()
		return ctx.Err()
	case <-conn.DisconnectNotify():
		return nil
	}
}

// stdioPipe bundles stdin/stdout into one ReadWriteCloser.
type stdioPipe struct {
	in  io.ReadCloser
	out io.WriteCloser
}

func (p stdioPipe) Read(b []byte) (int, error)  { return p.in.Read(b) }
func (p stdioPipe) Write(b []byte) (int, error) { return p.out.Write(b) }
func (p stdioPipe) Close() error {
	_ = p.in.Close()
	return p.out.Close()
}

// Stdio wraps a reader and writer as the server transport.
func Stdio(in io.ReadCloser, out io.WriteCloser) io.ReadWriteCloser {
	return stdioPipe{in: in, out: out}
}
