package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// HTTPTransport implements Transport over HTTP.
// Each POST to /mcp is one independent unit of work, processed concurrently
// with other in-flight requests. A single response frame is returned as a
// plain JSON body; multiple frames upgrade the reply to text/event-stream.
// GET /mcp is a capability probe and GET / a liveness banner.
type HTTPTransport struct {
	host   string
	port   int
	server *http.Server
	mu     sync.Mutex
	closed bool
}

// NewHTTPTransport creates a new HTTPTransport instance.
func NewHTTPTransport(host string, port int) *HTTPTransport {
	return &HTTPTransport{
		host: host,
		port: port,
	}
}

// Serve starts the HTTP server and blocks until the context is cancelled
// or the listener fails.
func (t *HTTPTransport) Serve(ctx context.Context, handle Handler) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return fmt.Errorf("transport is closed")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		t.handleMCP(w, r, handle)
	})
	mux.HandleFunc("/", t.handleRoot)

	t.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", t.host, t.port),
		Handler: mux,
	}
	server := t.server
	t.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		_ = t.Close()
		return ctx.Err()
	case err := <-errChan:
		return fmt.Errorf("http server failed: %w", err)
	}
}

// Mux returns an http.Handler bound to the given dispatcher, for tests and
// for embedding the endpoint in an existing server.
func (t *HTTPTransport) Mux(handle Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		t.handleMCP(w, r, handle)
	})
	mux.HandleFunc("/", t.handleRoot)
	return mux
}

// handleRoot serves the plain-text liveness banner.
func (t *HTTPTransport) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "NASA MCP Server is running")
}

// handleMCP processes one protocol request.
func (t *HTTPTransport) handleMCP(w http.ResponseWriter, r *http.Request, handle Handler) {
	switch r.Method {
	case http.MethodGet:
		t.handleProbe(w)
	case http.MethodPost:
		t.handlePost(w, r, handle)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleProbe answers the GET capability probe. Clients use it to confirm
// the endpoint exists before negotiating, so it succeeds regardless of
// registry state.
func (t *HTTPTransport) handleProbe(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "data: {\"type\": \"ping\"}\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// handlePost decodes one JSON-RPC request, dispatches it, and encodes the
// result as JSON or as an SSE stream when multiple frames were produced.
// Work is abandoned when the client disconnects: the request context is
// passed through to the dispatcher and the upstream calls under it.
func (t *HTTPTransport) handlePost(w http.ResponseWriter, r *http.Request, handle Handler) {
	defer func() {
		if rec := recover(); rec != nil {
			t.writeEnvelope(w, http.StatusInternalServerError,
				NewErrorResponse(nil, InternalError, "Internal error", fmt.Sprint(rec)))
		}
	}()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.writeEnvelope(w, http.StatusInternalServerError,
			NewErrorResponse(nil, InternalError, "Internal error", "failed to read request body"))
		return
	}
	defer r.Body.Close()

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		t.writeEnvelope(w, http.StatusBadRequest,
			NewErrorResponse(nil, ParseError, "Parse error", err.Error()))
		return
	}

	frames := handle(r.Context(), &req)

	switch len(frames) {
	case 0:
		// Notification with no reply frames.
		w.WriteHeader(http.StatusAccepted)
	case 1:
		t.writeEnvelope(w, http.StatusOK, frames[0])
	default:
		t.writeStream(w, frames)
	}
}

// writeEnvelope writes a single JSON-RPC frame with the given status.
func (t *HTTPTransport) writeEnvelope(w http.ResponseWriter, status int, response *Response) {
	if response.JSONRPC == "" {
		response.JSONRPC = "2.0"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

// writeStream emits every frame as a server-sent event, in generation order.
func (t *HTTPTransport) writeStream(w http.ResponseWriter, frames []*Response) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Mcp-Session-Id", uuid.NewString())
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	for _, frame := range frames {
		if frame.JSONRPC == "" {
			frame.JSONRPC = "2.0"
		}
		data, err := json.Marshal(frame)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// Close gracefully shuts down the HTTP server.
func (t *HTTPTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}

	return nil
}
