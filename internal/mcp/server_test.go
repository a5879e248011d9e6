package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/2b3pro/omnifocus-mcp-cli/internal/omni"
	"github.com/2b3pro/omnifocus-mcp-cli/internal/ops"
)

type stubInvoker struct {
	alive bool
	tasks []omni.Task
	calls []string
}

func (s *stubInvoker) IsAlive(ctx context.Context) bool { return s.alive }

func (s *stubInvoker) Invoke(ctx context.Context, category, name string, args []string) (json.RawMessage, error) {
	s.calls = append(s.calls, category+"/"+name)
	if category == "read" {
		switch name {
		case "tasks":
			b, _ := json.Marshal(map[string]any{"success": true, "tasks": s.tasks})
			return b, nil
		case "projects", "folders", "tags":
			return json.RawMessage(`{"success":true,"` + name + `":[]}`), nil
		case "perspectives":
			return json.RawMessage(`{"success":true,"perspectives":[]}`), nil
		}
	}
	return json.RawMessage(`{"success":true,"message":"ok","task":{"id":"new1","name":"created"}}`), nil
}

func newTestServer(inv *stubInvoker) *Server {
	s := NewServer(ops.NewClient(inv))
	return s
}

func TestHandleInitialize(t *testing.T) {
	s := newTestServer(&stubInvoker{alive: true})
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0", ID: 1, Method: "initialize",
	})
	if resp == nil || resp.Error != nil {
		t.Fatalf("Unexpected response: %+v", resp)
	}
	result, ok := resp.Result.(InitializeResult)
	if !ok {
		t.Fatalf("Unexpected result type: %T", resp.Result)
	}
	if result.ServerInfo.Name != "omnifocus" {
		t.Errorf("Unexpected server name: %s", result.ServerInfo.Name)
	}
}

func TestHandleListTools(t *testing.T) {
	s := newTestServer(&stubInvoker{alive: true})
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0", ID: 2, Method: "tools/list",
	})
	result, ok := resp.Result.(ListToolsResult)
	if !ok {
		t.Fatalf("Unexpected result type: %T", resp.Result)
	}
	if len(result.Tools) != 5 {
		t.Fatalf("Expected 5 tools, got %d", len(result.Tools))
	}
	for _, tool := range result.Tools {
		if !strings.HasPrefix(tool.Name, "omnifocus_") {
			t.Errorf("Unexpected tool name: %s", tool.Name)
		}
	}
}

func TestHandleUnknownMethod(t *testing.T) {
	s := newTestServer(&stubInvoker{alive: true})
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0", ID: 3, Method: "bogus/method",
	})
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Fatalf("Expected method-not-found error, got %+v", resp)
	}
}

func TestNotificationHasNoResponse(t *testing.T) {
	s := newTestServer(&stubInvoker{alive: true})
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0", Method: "notifications/initialized",
	})
	if resp != nil {
		t.Fatalf("Notifications must not produce a response, got %+v", resp)
	}
}

func TestCallToolTaskList(t *testing.T) {
	inv := &stubInvoker{
		alive: true,
		tasks: []omni.Task{
			{ID: "t1", Name: "Inbox thing", InInbox: true},
		},
	}
	s := newTestServer(inv)

	params, _ := json.Marshal(CallToolParams{
		Name:      "omnifocus_task",
		Arguments: map[string]interface{}{"action": "list", "view": "inbox"},
	})
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0", ID: 4, Method: "tools/call", Params: params,
	})
	result, ok := resp.Result.(CallToolResult)
	if !ok {
		t.Fatalf("Unexpected result type: %T", resp.Result)
	}
	if result.IsError {
		t.Fatalf("Unexpected tool error: %s", result.Content[0].Text)
	}
	if !strings.Contains(result.Content[0].Text, "Inbox thing") {
		t.Errorf("Expected task in content, got %s", result.Content[0].Text)
	}
}

func TestCallToolErrorsAreInBand(t *testing.T) {
	// Tool failures surface as isError results, never as protocol errors.
	s := newTestServer(&stubInvoker{alive: true})
	params, _ := json.Marshal(CallToolParams{
		Name:      "omnifocus_task",
		Arguments: map[string]interface{}{"action": "get", "id": "ghost"},
	})
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0", ID: 5, Method: "tools/call", Params: params,
	})
	result, ok := resp.Result.(CallToolResult)
	if !ok {
		t.Fatalf("Unexpected result type: %T", resp.Result)
	}
	if !result.IsError {
		t.Fatal("Expected in-band error result")
	}
	if !strings.Contains(result.Content[0].Text, "Task not found: ghost") {
		t.Errorf("Unexpected error text: %s", result.Content[0].Text)
	}
	if resp.Error != nil {
		t.Error("Tool failure must not be a protocol error")
	}
}

func TestCallToolUnknownTool(t *testing.T) {
	s := newTestServer(&stubInvoker{alive: true})
	params, _ := json.Marshal(CallToolParams{Name: "bogus_tool"})
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0", ID: 6, Method: "tools/call", Params: params,
	})
	result := resp.Result.(CallToolResult)
	if !result.IsError || !strings.Contains(result.Content[0].Text, "unknown tool") {
		t.Errorf("Expected unknown-tool error, got %+v", result)
	}
}

func TestUtilStatus(t *testing.T) {
	h := NewToolHandler(ops.NewClient(&stubInvoker{alive: false}))
	got, err := h.Handle(context.Background(), "omnifocus_util", map[string]interface{}{"action": "status"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	status := got.(map[string]interface{})
	if status["running"] != false {
		t.Errorf("Expected running=false, got %+v", status)
	}
}

func TestTaskCreateRequiresName(t *testing.T) {
	h := NewToolHandler(ops.NewClient(&stubInvoker{alive: true}))
	_, err := h.Handle(context.Background(), "omnifocus_task", map[string]interface{}{"action": "create"})
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Fatalf("Expected name-required error, got %v", err)
	}
}
