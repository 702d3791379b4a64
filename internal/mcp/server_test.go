package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/quickquote/internal/dupe"
	"github.com/sells-group/quickquote/internal/location"
	"github.com/sells-group/quickquote/internal/quote"
	"github.com/sells-group/quickquote/pkg/geocode"
)

type stubGeocoder struct{}

func (stubGeocoder) ResolveZip(_ context.Context, zip string) (*geocode.Result, error) {
	if zip == "90210" {
		return &geocode.Result{City: "Beverly Hills", StateName: "California", Matched: true}, nil
	}
	return &geocode.Result{Matched: false}, nil
}

func testServer(t *testing.T) http.Handler {
	t.Helper()
	pipeline := quote.NewPipeline(
		location.NewResolver(stubGeocoder{}),
		dupe.NewGuard(5*time.Minute),
		nil,
		"",
	)
	return NewServer(pipeline).Handler()
}

func rpc(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, JSONRPCResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp JSONRPCResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestInitialize(t *testing.T) {
	h := testServer(t)
	rec, resp := rpc(t, h, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp.Error)

	result := resp.Result.(map[string]any)
	assert.Equal(t, protocolVersion, result["protocolVersion"])
	assert.Equal(t, "quickquote", result["serverInfo"].(map[string]any)["name"])
}

func TestToolsList(t *testing.T) {
	h := testServer(t)
	_, resp := rpc(t, h, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	require.Nil(t, resp.Error)

	data, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result ListToolsResult
	require.NoError(t, json.Unmarshal(data, &result))
	require.Len(t, result.Tools, 1)
	assert.Equal(t, "get_quick_quote", result.Tools[0].Name)
	assert.Contains(t, string(result.Tools[0].InputSchema), "zip_code")
}

func TestToolsCallPriced(t *testing.T) {
	h := testServer(t)
	call := map[string]any{
		"jsonrpc": "2.0", "id": 3, "method": "tools/call",
		"params": map[string]any{
			"name": "get_quick_quote",
			"arguments": map[string]any{
				"zip_code":           "90210",
				"number_of_vehicles": 1,
				"vehicles":           []any{map[string]any{"year": 2020, "make": "Honda", "model": "Accord"}},
				"number_of_drivers":  1,
				"drivers":            []any{map[string]any{"age": 30, "marital_status": "married"}},
				"coverage_type":      "full_coverage",
			},
		},
	}
	body, err := json.Marshal(call)
	require.NoError(t, err)

	_, resp := rpc(t, h, string(body))
	require.Nil(t, resp.Error)

	data, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result struct {
		Content           []Content      `json:"content"`
		StructuredContent map[string]any `json:"structuredContent"`
		IsError           bool           `json:"isError"`
	}
	require.NoError(t, json.Unmarshal(data, &result))
	assert.False(t, result.IsError)
	require.NotEmpty(t, result.Content)
	assert.Contains(t, result.Content[0].Text, "Beverly Hills")
	assert.Equal(t, true, result.StructuredContent["quote_generated"])
}

func TestToolsCallRefusal(t *testing.T) {
	h := testServer(t)
	_, resp := rpc(t, h, `{"jsonrpc":"2.0","id":4,"method":"tools/call",
		"params":{"name":"get_quick_quote","arguments":{"zip_code":"90210"}}}`)
	require.Nil(t, resp.Error)

	data, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var result struct {
		StructuredContent map[string]any `json:"structuredContent"`
		IsError           bool           `json:"isError"`
	}
	require.NoError(t, json.Unmarshal(data, &result))
	assert.True(t, result.IsError)
	assert.Equal(t, false, result.StructuredContent["success"])
	assert.NotEmpty(t, result.StructuredContent["missing_fields"])
}

func TestToolsCallUnknownTool(t *testing.T) {
	h := testServer(t)
	_, resp := rpc(t, h, `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"nope"}}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, JSONRPCInvalidParams, resp.Error.Code)
}

func TestUnknownMethod(t *testing.T) {
	h := testServer(t)
	_, resp := rpc(t, h, `{"jsonrpc":"2.0","id":6,"method":"resources/list"}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, JSONRPCMethodNotFound, resp.Error.Code)
}

func TestInvalidJSON(t *testing.T) {
	h := testServer(t)
	_, resp := rpc(t, h, `{not json`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, JSONRPCParseError, resp.Error.Code)
}

func TestWrongVersion(t *testing.T) {
	h := testServer(t)
	_, resp := rpc(t, h, `{"jsonrpc":"1.0","id":7,"method":"tools/list"}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, JSONRPCInvalidRequest, resp.Error.Code)
}

func TestNotificationAccepted(t *testing.T) {
	h := testServer(t)
	rec, _ := rpc(t, h, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Zero(t, rec.Body.Len())
}

func TestBodyTooLarge(t *testing.T) {
	h := testServer(t)
	big := bytes.Repeat([]byte("a"), MaxRequestBodySize+10)
	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewReader(big))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp JSONRPCResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, JSONRPCInvalidRequest, resp.Error.Code)
}

func TestHealth(t *testing.T) {
	h := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
