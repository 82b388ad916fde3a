package mcpserver

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/naudiz/internal/noteservice"
	"github.com/starford/naudiz/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	db := testutil.TestStore(t)
	c, _ := testutil.TestCache(t)
	svc := noteservice.NewService(db, c, "notes", "note", time.Hour)
	return New(svc)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we invoke the tool
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "create_note":
		result, err = srv.createNote(ctx, req)
	case "update_note":
		result, err = srv.updateNote(ctx, req)
	case "delete_note":
		result, err = srv.deleteNote(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestCreateAndListNotes(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_note", map[string]interface{}{
		"creatorId": 1,
		"text":      "from the agent",
	})
	if r.IsError {
		t.Fatalf("create failed: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), `"from the agent"`) {
		t.Errorf("create result = %q", resultText(r))
	}

	r = callTool(t, srv, "list_notes", map[string]interface{}{
		"creatorId": 1,
	})
	text := resultText(r)
	if !strings.Contains(text, `"from the agent"`) {
		t.Errorf("list result = %q", text)
	}
	if !strings.Contains(text, `"hasMore": false`) {
		t.Errorf("list result missing hasMore: %q", text)
	}
}

func TestUpdateNoteMissing(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "update_note", map[string]interface{}{
		"id":   999,
		"text": "x",
	})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
	if !strings.Contains(resultText(r), "no note with id 999") {
		t.Errorf("error = %q", resultText(r))
	}
}

func TestDeleteNoteIdempotent(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "delete_note", map[string]interface{}{
		"id":        31337,
		"creatorId": 1,
	})
	if r.IsError {
		t.Fatalf("delete of unknown id should succeed: %s", resultText(r))
	}
	if resultText(r) != "deleted: 31337" {
		t.Errorf("result = %q", resultText(r))
	}
}

func TestListNotesBadCursor(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "list_notes", map[string]interface{}{
		"creatorId": 1,
		"cursor":    "yesterday",
	})
	if !r.IsError {
		t.Error("expected error for malformed cursor")
	}
}

func TestMissingRequiredArgument(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "create_note", map[string]interface{}{
		"text": "orphan",
	})
	if !r.IsError {
		t.Error("expected error for missing creatorId")
	}
}
