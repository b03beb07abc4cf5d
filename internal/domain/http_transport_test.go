package domain

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestHTTPServer(t *testing.T, handle Handler) *httptest.Server {
	t.Helper()
	transport := NewHTTPTransport("127.0.0.1", 0)
	server := httptest.NewServer(transport.Mux(handle))
	t.Cleanup(server.Close)
	return server
}

// TestHTTPTransportRootBanner verifies the liveness banner on GET /.
func TestHTTPTransportRootBanner(t *testing.T) {
	server := newTestHTTPServer(t, echoHandler)

	resp, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if got := string(body); got != "NASA MCP Server is running" {
		t.Errorf("body = %q, want running banner", got)
	}
}

// TestHTTPTransportUnknownPath verifies paths other than / and /mcp 404.
func TestHTTPTransportUnknownPath(t *testing.T) {
	server := newTestHTTPServer(t, echoHandler)

	resp, err := http.Get(server.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

// TestHTTPTransportProbe verifies the GET /mcp capability probe.
func TestHTTPTransportProbe(t *testing.T) {
	server := newTestHTTPServer(t, echoHandler)

	resp, err := http.Get(server.URL + "/mcp")
	if err != nil {
		t.Fatalf("GET /mcp failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"type": "ping"`) {
		t.Errorf("probe body = %q, want ping event", string(body))
	}
}

// TestHTTPTransportSingleFrame verifies one handler frame is returned as a
// plain JSON body with status 200.
func TestHTTPTransportSingleFrame(t *testing.T) {
	server := newTestHTTPServer(t, echoHandler)

	resp, err := http.Post(server.URL+"/mcp", "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	if err != nil {
		t.Fatalf("POST /mcp failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var frame Response
	if err := json.NewDecoder(resp.Body).Decode(&frame); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if frame.JSONRPC != "2.0" {
		t.Errorf("jsonrpc = %s, want 2.0", frame.JSONRPC)
	}
	if frame.Error != nil {
		t.Errorf("unexpected error frame: %v", frame.Error)
	}
}

// TestHTTPTransportParseError verifies invalid JSON bodies get a 400 with
// a -32700 envelope and null id.
func TestHTTPTransportParseError(t *testing.T) {
	server := newTestHTTPServer(t, echoHandler)

	resp, err := http.Post(server.URL+"/mcp", "application/json",
		strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST /mcp failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var frame Response
	if err := json.NewDecoder(resp.Body).Decode(&frame); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if frame.Error == nil || frame.Error.Code != ParseError {
		t.Fatalf("frame = %+v, want error code %d", frame, ParseError)
	}
	if frame.ID != nil {
		t.Errorf("id = %v, want null", frame.ID)
	}
}

// TestHTTPTransportNoFrames verifies a notification with no reply frames
// returns 202 with an empty body.
func TestHTTPTransportNoFrames(t *testing.T) {
	silent := func(ctx context.Context, req *Request) []*Response { return nil }
	server := newTestHTTPServer(t, silent)

	resp, err := http.Post(server.URL+"/mcp", "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
	if err != nil {
		t.Fatalf("POST /mcp failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		t.Errorf("status = %d, want 202", resp.StatusCode)
	}
}

// TestHTTPTransportStream verifies multiple handler frames upgrade the
// response to an SSE stream with one data event per frame.
func TestHTTPTransportStream(t *testing.T) {
	multi := func(ctx context.Context, req *Request) []*Response {
		return []*Response{
			NewResultResponse(req.ID, map[string]interface{}{"part": 1}),
			NewResultResponse(req.ID, map[string]interface{}{"part": 2}),
		}
	}
	server := newTestHTTPServer(t, multi)

	resp, err := http.Post(server.URL+"/mcp", "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","id":3,"method":"tools/call"}`))
	if err != nil {
		t.Fatalf("POST /mcp failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}
	if resp.Header.Get("Mcp-Session-Id") == "" {
		t.Error("missing Mcp-Session-Id header on stream response")
	}

	body, _ := io.ReadAll(resp.Body)
	events := parseSSEData(string(body))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %q", len(events), string(body))
	}
	for i, event := range events {
		var frame Response
		if err := json.Unmarshal([]byte(event), &frame); err != nil {
			t.Fatalf("event %d is not valid JSON: %v", i, err)
		}
		if frame.JSONRPC != "2.0" {
			t.Errorf("event %d jsonrpc = %s, want 2.0", i, frame.JSONRPC)
		}
	}
}

// TestHTTPTransportPanicRecovery verifies a panicking handler yields a 500
// with a -32603 envelope instead of a dropped connection.
func TestHTTPTransportPanicRecovery(t *testing.T) {
	panicking := func(ctx context.Context, req *Request) []*Response {
		panic("handler exploded")
	}
	server := newTestHTTPServer(t, panicking)

	resp, err := http.Post(server.URL+"/mcp", "application/json",
		strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/call"}`))
	if err != nil {
		t.Fatalf("POST /mcp failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}

	var frame Response
	if err := json.NewDecoder(resp.Body).Decode(&frame); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if frame.Error == nil || frame.Error.Code != InternalError {
		t.Fatalf("frame = %+v, want error code %d", frame, InternalError)
	}
	if frame.ID != nil {
		t.Errorf("id = %v, want null", frame.ID)
	}
}

// TestHTTPTransportMethodNotAllowed verifies other verbs on /mcp get 405.
func TestHTTPTransportMethodNotAllowed(t *testing.T) {
	server := newTestHTTPServer(t, echoHandler)

	req, _ := http.NewRequest(http.MethodDelete, server.URL+"/mcp", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE /mcp failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func parseSSEData(body string) []string {
	var events []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "data: ") {
			events = append(events, strings.TrimPrefix(line, "data: "))
		}
	}
	return events
}
