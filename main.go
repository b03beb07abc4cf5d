package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"nasa-mcp-server/internal/application"
	"nasa-mcp-server/internal/domain"
	"nasa-mcp-server/internal/infrastructure"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (optional; environment variables apply on top)")
	flag.Parse()

	// Logs go to stderr so stdout stays reserved for protocol frames.
	log.SetOutput(os.Stderr)

	config, err := domain.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully")

	// One HTTP client carries the upstream timeout for every adapter call,
	// so a slow API surfaces as an ordinary tool failure rather than a
	// hung request.
	httpClient := &http.Client{Timeout: config.Timeout()}

	nasaClient := infrastructure.NewNASAClient(config.Upstreams, config.NASA.APIKey, httpClient)
	epicClient := infrastructure.NewEPICClient(config.Upstreams.EPICBaseURL, httpClient)
	gibsClient := infrastructure.NewGIBSClient(config.Upstreams.GIBSBaseURL, httpClient)
	nwsClient := infrastructure.NewNWSClient(config.Upstreams.NWSBaseURL, httpClient)
	imageFetcher := infrastructure.NewImageFetcher(httpClient)

	// The registry is built once here and frozen before serving begins.
	// A duplicate tool name is a misconfiguration and ends the process.
	registry := application.NewRegistry()
	adapters := []domain.Adapter{
		application.NewAPODAdapter(nasaClient),
		application.NewMarsAdapter(nasaClient),
		application.NewNeoAdapter(nasaClient),
		application.NewEarthAdapter(epicClient),
		application.NewGIBSAdapter(gibsClient),
		application.NewGIBSLayersAdapter(),
		application.NewAlertsAdapter(nwsClient),
		application.NewMathAdapter(),
		application.NewImageAdapter(imageFetcher),
	}
	for _, adapter := range adapters {
		if err := registry.Register(adapter); err != nil {
			log.Fatalf("Failed to register tool: %v", err)
		}
	}
	log.Printf("Registered %d tool(s)", registry.Len())

	logger := application.NewStructuredLogger()
	dispatcher := application.NewDispatcher(registry, logger)

	var transport domain.Transport
	switch config.Transport.Type {
	case "stdio":
		log.Println("Initializing stdio transport")
		transport = domain.NewStdioTransport()
	case "http":
		log.Printf("Initializing HTTP transport on %s:%d", config.Transport.HTTP.Host, config.Transport.HTTP.Port)
		transport = domain.NewHTTPTransport(config.Transport.HTTP.Host, config.Transport.HTTP.Port)
	default:
		log.Fatalf("Invalid transport type: %s", config.Transport.Type)
	}

	server := application.NewServer(transport, dispatcher, config, logger)
	log.Println("MCP server created")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve(ctx)
	}()

	if config.Transport.Type == "stdio" {
		log.Println("MCP server started successfully (stdio transport)")
	} else {
		log.Printf("MCP server started successfully (HTTP transport on %s:%d)",
			config.Transport.HTTP.Host, config.Transport.HTTP.Port)
	}

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
		log.Println("Initiating graceful shutdown...")
		cancel()
		<-errChan
	case err := <-errChan:
		if err != nil {
			log.Printf("Server error: %v", err)
			if closeErr := server.Close(); closeErr != nil {
				log.Printf("Error closing server: %v", closeErr)
			}
			os.Exit(1)
		}
	}

	log.Println("Closing server...")
	if err := server.Close(); err != nil {
		log.Printf("Error during server shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server shutdown complete")
}
