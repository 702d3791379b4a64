// Package mcp exposes the quote pipeline over a minimal MCP-compatible
// JSON-RPC 2.0 HTTP endpoint.
package mcp

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/quickquote/internal/quote"
)

const protocolVersion = "2025-03-26"

// MaxRequestBodySize caps request bodies at 1MB.
const MaxRequestBodySize = 1 << 20

// JSON-RPC 2.0 types.

// JSONRPCRequest is a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse is a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *JSONRPCError   `json:"error,omitempty"`
}

// JSONRPCError is a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Standard JSON-RPC error codes.
const (
	JSONRPCParseError     = -32700
	JSONRPCInvalidRequest = -32600
	JSONRPCMethodNotFound = -32601
	JSONRPCInvalidParams  = -32602
	JSONRPCInternalError  = -32603
)

// ToolInfo is an MCP tool definition.
type ToolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ListToolsResult is the result for tools/list.
type ListToolsResult struct {
	Tools []ToolInfo `json:"tools"`
}

// CallToolParams are the params for tools/call.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Content is one content block in a tool result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// CallToolResult is the result for tools/call.
type CallToolResult struct {
	Content           []Content `json:"content"`
	StructuredContent any       `json:"structuredContent,omitempty"`
	IsError           bool      `json:"isError,omitempty"`
}

// quickQuoteSchema is the input schema advertised for the quote tool.
var quickQuoteSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"zip_code": {"type": "string", "description": "5-digit US ZIP code", "pattern": "^[0-9]{5}$"},
		"number_of_vehicles": {"type": "integer", "minimum": 1, "maximum": 2},
		"vehicles": {
			"type": "array", "minItems": 1, "maxItems": 2,
			"items": {
				"type": "object",
				"properties": {
					"year": {"type": "integer", "minimum": 1900, "maximum": 2030},
					"make": {"type": "string"},
					"model": {"type": "string"}
				},
				"required": ["year", "make", "model"]
			}
		},
		"number_of_drivers": {"type": "integer", "minimum": 1, "maximum": 2},
		"drivers": {
			"type": "array", "minItems": 1, "maxItems": 2,
			"items": {
				"type": "object",
				"properties": {
					"age": {"type": "integer", "minimum": 16, "maximum": 100},
					"marital_status": {"type": "string", "enum": ["single", "married", "divorced", "widowed"]}
				},
				"required": ["age", "marital_status"]
			}
		},
		"coverage_type": {"type": "string", "enum": ["full_coverage", "liability_only"]},
		"accidents": {"type": "integer", "minimum": 0},
		"tickets": {"type": "integer", "minimum": 0},
		"annual_mileage": {"type": "integer", "minimum": 0},
		"credit_tier": {"type": "string"},
		"continuous_insurance": {"type": "boolean"}
	},
	"required": ["zip_code", "number_of_vehicles", "vehicles", "number_of_drivers", "drivers", "coverage_type"],
	"additionalProperties": false
}`)

// Server serves the quote pipeline to MCP clients.
type Server struct {
	pipeline *quote.Pipeline
}

// NewServer wraps a quote pipeline.
func NewServer(pipeline *quote.Pipeline) *Server {
	return &Server{pipeline: pipeline}
}

// Handler builds the HTTP handler: POST /mcp for JSON-RPC and GET /health.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Mcp-Session-Id", "Mcp-Protocol-Version"},
	}))

	r.Post("/mcp", s.handlePost)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return r
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxRequestBodySize+1))
	if err != nil {
		sendError(w, nil, JSONRPCParseError, "failed to read request body")
		return
	}
	if int64(len(body)) > MaxRequestBodySize {
		sendError(w, nil, JSONRPCInvalidRequest, "request body too large")
		return
	}

	var req JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		sendError(w, nil, JSONRPCParseError, "invalid JSON")
		return
	}
	if req.JSONRPC != "2.0" {
		sendError(w, req.ID, JSONRPCInvalidRequest, "invalid JSON-RPC version")
		return
	}

	// Notifications get a 202 and no body.
	if len(req.ID) == 0 || string(req.ID) == "null" {
		if !strings.HasPrefix(req.Method, "notifications/") {
			zap.L().Warn("mcp: notification for non-notification method", zap.String("method", req.Method))
		}
		w.WriteHeader(http.StatusAccepted)
		return
	}

	switch req.Method {
	case "initialize":
		s.handleInitialize(w, req)
	case "tools/list":
		s.handleToolsList(w, req)
	case "tools/call":
		s.handleToolsCall(w, r, req)
	default:
		sendError(w, req.ID, JSONRPCMethodNotFound, "method not found")
	}
}

func (s *Server) handleInitialize(w http.ResponseWriter, req JSONRPCRequest) {
	sendResult(w, req.ID, map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    "quickquote",
			"version": "1.0.0",
		},
	})
}

func (s *Server) handleToolsList(w http.ResponseWriter, req JSONRPCRequest) {
	sendResult(w, req.ID, ListToolsResult{
		Tools: []ToolInfo{{
			Name: quote.ToolName,
			Description: "Generate quick auto insurance premium estimates for a US ZIP code. " +
				"Returns per-carrier monthly and annual estimates with confidence ranges, " +
				"or phone contact guidance where online quoting is unavailable.",
			InputSchema: quickQuoteSchema,
		}},
	})
}

func (s *Server) handleToolsCall(w http.ResponseWriter, r *http.Request, req JSONRPCRequest) {
	var params CallToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			sendError(w, req.ID, JSONRPCInvalidParams, "invalid params")
			return
		}
	}
	if params.Name != quote.ToolName {
		sendError(w, req.ID, JSONRPCInvalidParams, "tool not found")
		return
	}

	args := map[string]any{}
	if len(params.Arguments) > 0 && string(params.Arguments) != "null" {
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			sendError(w, req.ID, JSONRPCInvalidParams, "arguments must be an object")
			return
		}
	}

	result := s.pipeline.Run(r.Context(), args)

	sendResult(w, req.ID, CallToolResult{
		Content:           []Content{{Type: "text", Text: result.Text()}},
		StructuredContent: result,
		IsError:           result.Kind == quote.KindRefusal || result.Kind == quote.KindDuplicate,
	})
}

func sendResult(w http.ResponseWriter, id json.RawMessage, result any) {
	writeResponse(w, JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result})
}

func sendError(w http.ResponseWriter, id json.RawMessage, code int, message string) {
	writeResponse(w, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	})
}

func writeResponse(w http.ResponseWriter, resp JSONRPCResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zap.L().Warn("mcp: failed to encode response", zap.Error(err))
	}
}
