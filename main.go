// Package main provides an HTTP service using FastHTTP that exposes an
// OpenAI-compatible chat completions endpoint and bridges it to the teacher
// backend API.
//
// The HTTP service provides the following endpoints:
//   - POST /v1/chat/completions: chat completion requests, streaming (SSE) or not
//   - GET /v1/models: static model catalog
//   - GET /health: liveness indicator
//   - GET /: service descriptor
//   - GET /metrics: Prometheus metrics
//
// Configuration is environment-supplied (TEACHER_API_URL, PORT,
// STREAM_WORD_DELAY_MS) with optional overrides through flags:
//   - Use -env to load a .env file before reading the environment
//   - Use -port to override the listen port
//   - Use -log-level and -log-pretty to tune logging
//
// Example usage:
//
//	go run . -env .env -port 8080
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/majdzarai/bridge-tavus/core"
	"github.com/majdzarai/bridge-tavus/core/schemas"
	"github.com/majdzarai/bridge-tavus/core/session"
	"github.com/majdzarai/bridge-tavus/core/teacher"
	"github.com/majdzarai/bridge-tavus/lib"
	"github.com/majdzarai/bridge-tavus/telemetry"
)

// Command line flags
var (
	port      string // Port to run the server on, overrides PORT
	envPath   string // Path to an optional .env file
	logLevel  string // Minimum log level
	logPretty bool   // Human-readable console log output
)

// init initializes command line flags with default values.
func init() {
	flag.StringVar(&port, "port", "", "Port to run the server on (overrides PORT)")
	flag.StringVar(&envPath, "env", "", "Path to a .env file to load")
	flag.StringVar(&logLevel, "log-level", string(schemas.LogLevelInfo), "Log level (debug, info, warn, error)")
	flag.BoolVar(&logPretty, "log-pretty", false, "Use human-readable console log output")
	flag.Parse()
}

// main is the entry point of the application.
// It:
// 1. Loads configuration from the environment (and an optional .env file)
// 2. Wires the session store, teacher client and bridge core
// 3. Sets up HTTP routes, CORS and metrics middleware
// 4. Starts the HTTP server on the configured port
func main() {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			log.Fatalf("failed to load env file %s: %v", envPath, err)
		}
	}

	config, err := lib.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if port != "" {
		config.Port = port
	}

	logger := core.NewDefaultLogger(schemas.LogLevel(logLevel))
	if logPretty {
		logger.SetOutputType(core.LoggerOutputTypePretty)
	}

	store := session.NewMemoryStore()
	client := teacher.NewClient(config.TeacherAPIURL, logger)
	bridge := core.NewBridge(store, client, core.DefaultFallbackPolicy(), logger)

	metrics := telemetry.NewMetrics(func() float64 {
		return float64(store.Len())
	})

	server := newServer(config, bridge, metrics, logger)

	logger.Info(fmt.Sprintf("starting %s on port %s (backend: %s)", lib.ServiceName, config.Port, config.TeacherAPIURL))
	if err := server.ListenAndServe(fmt.Sprintf(":%s", config.Port)); err != nil {
		logger.Fatal("failed to start server", err)
	}
}
