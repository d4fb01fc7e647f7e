package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-grid/internal/grid"
)

func TestNew(t *testing.T) {
	s := New()
	require.NotNil(t, s)
	assert.NotNil(t, s.cache)
	assert.Equal(t, grid.DefaultPlatform(), s.platform)
	assert.NotNil(t, s.logger)
}

func TestNewWithConfig(t *testing.T) {
	p := grid.DefaultPlatform()
	p.ContentWidth = 500
	s := NewWithConfig(Config{Platform: p, Version: "1.2.3"})

	assert.Equal(t, 500, s.platform.ContentWidth)
	assert.Equal(t, "1.2.3", s.version)
}

func TestMCPRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name       string
		json       string
		wantID     interface{}
		wantMethod string
	}{
		{
			"string id",
			`{"jsonrpc":"2.0","id":"test-1","method":"tools/list"}`,
			"test-1",
			"tools/list",
		},
		{
			"number id",
			`{"jsonrpc":"2.0","id":42,"method":"ping"}`,
			float64(42), // JSON numbers decode as float64
			"ping",
		},
		{
			"null id",
			`{"jsonrpc":"2.0","id":null,"method":"initialize"}`,
			nil,
			"initialize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req MCPRequest
			require.NoError(t, json.Unmarshal([]byte(tt.json), &req))

			assert.Equal(t, tt.wantID, req.ID)
			assert.Equal(t, tt.wantMethod, req.Method)
			assert.Equal(t, "2.0", req.JSONRPC)
		})
	}
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
	}

	resp := s.handleRequest(context.Background(), req)

	require.NotNil(t, resp)
	require.Nil(t, resp.Error)
	assert.Equal(t, 1, resp.ID)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok, "Result should be a map")
	assert.Equal(t, "2024-11-05", result["protocolVersion"])
}

func TestHandleRequest_Ping(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      "ping-1",
		Method:  "ping",
	}

	resp := s.handleRequest(context.Background(), req)

	require.NotNil(t, resp)
	require.Nil(t, resp.Error)
	assert.Equal(t, "ping-1", resp.ID)
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/list",
	}

	resp := s.handleRequest(context.Background(), req)

	require.NotNil(t, resp)
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok, "Result should be a map")

	toolsList, ok := result["tools"].([]Tool)
	require.True(t, ok, "tools should be a slice of Tool")
	assert.Len(t, toolsList, len(GetToolDefinitions()))
}

func TestHandleRequest_NotificationsInitialized(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		Method:  "notifications/initialized",
	}

	// Notifications don't get responses
	assert.Nil(t, s.handleRequest(context.Background(), req))
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "nonexistent/method",
	}

	resp := s.handleRequest(context.Background(), req)

	require.NotNil(t, resp)
	require.NotNil(t, resp.Error, "expected error for unknown method")
	assert.Equal(t, -32601, resp.Error.Code)
}

func TestHandleInitialize(t *testing.T) {
	s := NewWithConfig(Config{Version: "0.3.0"})
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      "init-1",
	}

	resp := s.handleInitialize(req)

	assert.Equal(t, "init-1", resp.ID)
	assert.Equal(t, "2.0", resp.JSONRPC)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok, "Result should be a map")

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	require.True(t, ok, "serverInfo should be a map")
	assert.Equal(t, "image-grid", serverInfo["name"])
	assert.Equal(t, "0.3.0", serverInfo["version"])
}

func TestServe(t *testing.T) {
	s := New()
	in := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
		`{"jsonrpc":"2.0","id":3,"method":"bogus"}`,
	}, "\n")
	var out bytes.Buffer

	require.NoError(t, s.Serve(context.Background(), strings.NewReader(in), &out))

	var responses []MCPResponse
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp MCPResponse
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp), "invalid response line %q", scanner.Text())
		responses = append(responses, resp)
	}

	// The notification, the blank line and the malformed line get no response
	require.Len(t, responses, 3)
	for i, want := range []float64{1, 2, 3} {
		assert.Equal(t, want, responses[i].ID, "response %d ID", i)
	}
	require.NotNil(t, responses[2].Error)
	assert.Equal(t, -32601, responses[2].Error.Code)
}

func TestServe_CanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := s.Serve(ctx, strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len(), "no response expected after cancel, got %q", out.String())
}
