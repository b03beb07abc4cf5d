package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"nasa-mcp-server/internal/domain"
)

// Server ties a transport to the dispatcher.
// The registry is frozen before Serve is called, so concurrent HTTP
// requests share it without locking.
type Server struct {
	transport  domain.Transport
	dispatcher *Dispatcher
	config     *domain.Config
	logger     *StructuredLogger
}

// NewServer creates a new MCP server instance.
func NewServer(transport domain.Transport, dispatcher *Dispatcher, config *domain.Config, logger *StructuredLogger) *Server {
	if logger == nil {
		logger = NewStructuredLogger()
	}
	return &Server{
		transport:  transport,
		dispatcher: dispatcher,
		config:     config,
		logger:     logger,
	}
}

// Serve runs the transport until the context is cancelled or the input
// side is exhausted.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.LogInfo("server started", map[string]interface{}{
		"transport_type": s.config.Transport.Type,
	})

	err := s.transport.Serve(ctx, s.dispatcher.Dispatch)
	if err != nil && err != context.Canceled {
		s.logger.LogError("transport stopped", err, map[string]interface{}{
			"transport_type": s.config.Transport.Type,
		})
		return fmt.Errorf("transport stopped: %w", err)
	}

	s.logger.LogInfo("server shutting down", nil)
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	s.logger.LogInfo("closing server", nil)
	return s.transport.Close()
}

// StructuredLogger provides structured logging with context.
// Entries go to stderr so they never interleave with stdio transport
// frames on stdout.
type StructuredLogger struct {
	logger *log.Logger
}

// NewStructuredLogger creates a new structured logger.
func NewStructuredLogger() *StructuredLogger {
	return &StructuredLogger{
		logger: log.New(os.Stderr, "", 0),
	}
}

// LogInfo logs an informational message with context.
func (l *StructuredLogger) LogInfo(message string, context map[string]interface{}) {
	l.logger.Println(l.buildLogEntry("INFO", message, nil, context))
}

// LogError logs an error message with context.
func (l *StructuredLogger) LogError(message string, err error, context map[string]interface{}) {
	l.logger.Println(l.buildLogEntry("ERROR", message, err, context))
}

// buildLogEntry constructs a structured log entry.
func (l *StructuredLogger) buildLogEntry(level, message string, err error, context map[string]interface{}) string {
	entry := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"level":     level,
		"message":   message,
	}

	if err != nil {
		entry["error"] = err.Error()
	}

	for k, v := range context {
		entry[k] = v
	}

	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"level":"ERROR","message":"failed to marshal log entry","error":"%s"}`, err.Error())
	}

	return string(jsonData)
}
