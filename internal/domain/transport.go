package domain

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Handler turns one decoded JSON-RPC request into the response frames to
// emit. Every current method produces exactly one frame; multi-frame
// results are reserved for streaming tool output.
type Handler func(ctx context.Context, req *Request) []*Response

// Transport defines the interface for MCP transport mechanisms.
// Implementations carry JSON-RPC messages between client and server over
// either stdio or HTTP.
type Transport interface {
	// Serve runs the transport until the context is cancelled or the
	// input side is exhausted, handing each decoded request to handle.
	Serve(ctx context.Context, handle Handler) error

	// Close gracefully shuts down the transport.
	Close() error
}

// StdioTransport implements Transport using stdin/stdout.
// It reads newline-delimited JSON-RPC messages and writes each response
// frame as a single line. Requests are strictly sequential: one request is
// fully resolved before the next line is read.
type StdioTransport struct {
	reader *bufio.Reader
	writer *bufio.Writer
	mu     sync.Mutex
	closed bool
}

// NewStdioTransport creates a StdioTransport over os.Stdin and os.Stdout.
func NewStdioTransport() *StdioTransport {
	return NewStdioTransportWithIO(os.Stdin, os.Stdout)
}

// NewStdioTransportWithIO creates a StdioTransport with custom IO streams.
// This is primarily used for testing.
func NewStdioTransportWithIO(reader io.Reader, writer io.Writer) *StdioTransport {
	return &StdioTransport{
		reader: bufio.NewReader(reader),
		writer: bufio.NewWriter(writer),
	}
}

// Serve reads one line at a time, dispatches it, and writes the resulting
// frames. It returns nil on EOF and the context error on cancellation.
func (t *StdioTransport) Serve(ctx context.Context, handle Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := t.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				// Flush the final line if the input did not end with a newline.
				if trimmed := strings.TrimSpace(line); trimmed != "" {
					t.dispatchLine(ctx, trimmed, handle)
				}
				return nil
			}
			return fmt.Errorf("failed to read request line: %w", err)
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		t.dispatchLine(ctx, trimmed, handle)
	}
}

// dispatchLine decodes a single request line and writes the responses.
func (t *StdioTransport) dispatchLine(ctx context.Context, line string, handle Handler) {
	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		_ = t.send(NewErrorResponse(nil, ParseError, "Parse error", err.Error()))
		return
	}

	for _, resp := range handle(ctx, &req) {
		if err := t.send(resp); err != nil {
			return
		}
	}
}

// send writes a JSON-RPC response to stdout.
// The response is serialized as a single line of JSON followed by a newline.
func (t *StdioTransport) send(response *Response) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transport is closed")
	}

	if response.JSONRPC == "" {
		response.JSONRPC = "2.0"
	}

	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	// Line-oriented framing: the encoded frame must stay on one line.
	if strings.Contains(string(data), "\n") {
		return fmt.Errorf("response contains embedded newlines")
	}

	if _, err := t.writer.WriteString(string(data) + "\n"); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	// Flush to ensure immediate delivery
	if err := t.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush response: %w", err)
	}

	return nil
}

// Close gracefully shuts down the transport.
func (t *StdioTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}

	t.closed = true
	return t.writer.Flush()
}
