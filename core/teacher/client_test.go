package teacher

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/majdzarai/bridge-tavus/core/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string) {}
func (nopLogger) Info(msg string)  {}
func (nopLogger) Warn(msg string)  {}
func (nopLogger) Error(err error)  {}

// startBackend runs a fasthttp server on a loopback port and returns its base
// URL. The server is torn down with the test.
func startBackend(t *testing.T, handler fasthttp.RequestHandler) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := &fasthttp.Server{Handler: handler}
	go server.Serve(ln) //nolint:errcheck

	t.Cleanup(func() {
		server.Shutdown() //nolint:errcheck
	})

	return "http://" + ln.Addr().String()
}

func lessonConfig() schemas.LessonConfig {
	return schemas.LessonConfig{
		Subject:    "Physics",
		Chapter:    "General",
		Lesson:     "Waves",
		Level:      "High School",
		Language:   "en",
		Student:    "Ada",
		Competence: []string{"Understanding Waves"},
	}
}

func TestStartSession_Success(t *testing.T) {
	var gotPath string
	var gotPayload StartSessionRequest

	baseURL := startBackend(t, func(ctx *fasthttp.RequestCtx) {
		gotPath = string(ctx.Path())
		assert.NoError(t, json.Unmarshal(ctx.PostBody(), &gotPayload))

		ctx.SetStatusCode(fasthttp.StatusCreated)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"session_id": "sess-42", "initial_message": "Welcome to Waves!"}`)
	})

	client := NewClient(baseURL+"/", nopLogger{})
	resp, bridgeErr := client.StartSession(context.Background(), lessonConfig())

	require.Nil(t, bridgeErr)
	assert.Equal(t, "/api/v1/teacher/start", gotPath)
	assert.Equal(t, "sess-42", resp.SessionID)
	assert.Equal(t, "Welcome to Waves!", resp.InitialMessage)

	assert.Equal(t, "Physics", gotPayload.Subject)
	assert.Equal(t, "Ada", gotPayload.StudentName)
	assert.Equal(t, "en", gotPayload.TeacherLanguage)
	assert.Equal(t, []string{"Understanding Waves"}, gotPayload.Competence)
}

func TestStartSession_DefaultGreeting(t *testing.T) {
	baseURL := startBackend(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusCreated)
		ctx.SetBodyString(`{"session_id": "sess-43"}`)
	})

	client := NewClient(baseURL, nopLogger{})
	resp, bridgeErr := client.StartSession(context.Background(), lessonConfig())

	require.Nil(t, bridgeErr)
	assert.Equal(t, "Hello! I'm your AI teacher.", resp.InitialMessage)
}

func TestStartSession_StatusError(t *testing.T) {
	baseURL := startBackend(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusBadGateway)
		ctx.SetBodyString("upstream exploded")
	})

	client := NewClient(baseURL, nopLogger{})
	resp, bridgeErr := client.StartSession(context.Background(), lessonConfig())

	assert.Nil(t, resp)
	require.NotNil(t, bridgeErr)
	assert.False(t, bridgeErr.IsTransportError)
	require.NotNil(t, bridgeErr.StatusCode)
	assert.Equal(t, fasthttp.StatusBadGateway, *bridgeErr.StatusCode)
	assert.Equal(t, "upstream exploded", bridgeErr.RawBody)
}

func TestStartSession_RejectsNonCreatedSuccess(t *testing.T) {
	// 200 OK is not the creation status; only 201 counts as success.
	baseURL := startBackend(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString(`{"session_id": "sess-44"}`)
	})

	client := NewClient(baseURL, nopLogger{})
	_, bridgeErr := client.StartSession(context.Background(), lessonConfig())

	require.NotNil(t, bridgeErr)
	require.NotNil(t, bridgeErr.StatusCode)
	assert.Equal(t, fasthttp.StatusOK, *bridgeErr.StatusCode)
}

func TestSendMessage_Success(t *testing.T) {
	var gotPath string
	var gotPayload MessageRequest

	baseURL := startBackend(t, func(ctx *fasthttp.RequestCtx) {
		gotPath = string(ctx.Path())
		assert.NoError(t, json.Unmarshal(ctx.PostBody(), &gotPayload))

		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString(`{"teacher_message": "A wave transports energy."}`)
	})

	client := NewClient(baseURL, nopLogger{})
	resp, bridgeErr := client.SendMessage(context.Background(), "sess-42", "What is a wave?")

	require.Nil(t, bridgeErr)
	assert.Equal(t, "/api/v1/teacher/message", gotPath)
	assert.Equal(t, "A wave transports energy.", resp.TeacherMessage)
	assert.Equal(t, "sess-42", gotPayload.SessionID)
	assert.Equal(t, "What is a wave?", gotPayload.Message)
}

func TestSendMessage_StatusError(t *testing.T) {
	baseURL := startBackend(t, func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetBodyString(`{"detail": "unknown session"}`)
	})

	client := NewClient(baseURL, nopLogger{})
	resp, bridgeErr := client.SendMessage(context.Background(), "gone", "hello")

	assert.Nil(t, resp)
	require.NotNil(t, bridgeErr)
	assert.False(t, bridgeErr.IsTransportError)
	require.NotNil(t, bridgeErr.StatusCode)
	assert.Equal(t, fasthttp.StatusNotFound, *bridgeErr.StatusCode)
}

func TestSendMessage_TransportError(t *testing.T) {
	// Grab a port and close it so the dial fails.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	baseURL := "http://" + ln.Addr().String()
	require.NoError(t, ln.Close())

	client := NewClient(baseURL, nopLogger{})
	resp, bridgeErr := client.SendMessage(context.Background(), "sess-42", "hello")

	assert.Nil(t, resp)
	require.NotNil(t, bridgeErr)
	assert.True(t, bridgeErr.IsTransportError)
	assert.Nil(t, bridgeErr.StatusCode)
}

func TestSendMessage_ContextCancelled(t *testing.T) {
	baseURL := startBackend(t, func(ctx *fasthttp.RequestCtx) {
		time.Sleep(200 * time.Millisecond)
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString(`{"teacher_message": "too late"}`)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := NewClient(baseURL, nopLogger{})
	resp, bridgeErr := client.SendMessage(ctx, "sess-42", "hello")

	assert.Nil(t, resp)
	require.NotNil(t, bridgeErr)
	assert.True(t, bridgeErr.IsTransportError)
}
