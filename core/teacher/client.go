// Package teacher implements the HTTP client for the teacher backend API.
// The bridge issues exactly two backend operations: starting a session and
// sending a message to an existing session.
package teacher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/majdzarai/bridge-tavus/core/schemas"
	"github.com/valyala/fasthttp"
)

const (
	// apiPrefix is the fixed base path of the teacher API.
	apiPrefix = "/api/v1/teacher"

	// defaultTimeout bounds every backend call so a stalled backend cannot
	// block the request orchestrator indefinitely.
	defaultTimeout = 60 * time.Second

	// defaultInitialMessage is served when the backend starts a session
	// without returning a greeting.
	defaultInitialMessage = "Hello! I'm your AI teacher."
)

// StartSessionRequest is the creation payload sent to POST .../start.
type StartSessionRequest struct {
	Subject         string   `json:"subject"`
	Chapter         string   `json:"chapter"`
	Lesson          string   `json:"lesson"`
	Level           string   `json:"level"`
	StudentName     string   `json:"student_name"`
	TeacherLanguage string   `json:"teacher_language"`
	Competence      []string `json:"competence"`
}

// StartSessionResponse is the backend's reply to a successful session start.
type StartSessionResponse struct {
	SessionID      string `json:"session_id"`
	InitialMessage string `json:"initial_message,omitempty"`
}

// MessageRequest is the payload sent to POST .../message.
type MessageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// MessageResponse is the backend's reply to a successfully relayed message.
type MessageResponse struct {
	TeacherMessage string `json:"teacher_message,omitempty"`
}

// Client issues requests against the teacher backend API.
type Client struct {
	baseURL string
	client  *fasthttp.Client
	timeout time.Duration
	logger  schemas.Logger
}

// NewClient creates a teacher backend client for the given base URL.
// The underlying HTTP client is configured with bounded read/write timeouts.
func NewClient(baseURL string, logger schemas.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &fasthttp.Client{
			ReadTimeout:  defaultTimeout,
			WriteTimeout: defaultTimeout,
		},
		timeout: defaultTimeout,
		logger:  logger,
	}
}

// BaseURL returns the normalized backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StartSession starts a new teaching session on the backend with the given
// lesson configuration. The backend signals success with 201 Created; any
// other status is surfaced as a status error carrying the raw body, and
// network failures as a transport error.
func (c *Client) StartSession(ctx context.Context, config schemas.LessonConfig) (*StartSessionResponse, *schemas.BridgeError) {
	payload := StartSessionRequest{
		Subject:         config.Subject,
		Chapter:         config.Chapter,
		Lesson:          config.Lesson,
		Level:           config.Level,
		StudentName:     config.Student,
		TeacherLanguage: config.Language,
		Competence:      config.Competence,
	}

	var response StartSessionResponse
	if bridgeErr := c.post(ctx, apiPrefix+"/start", payload, fasthttp.StatusCreated, &response); bridgeErr != nil {
		return nil, bridgeErr
	}

	if response.InitialMessage == "" {
		response.InitialMessage = defaultInitialMessage
	}

	c.logger.Info(fmt.Sprintf("started teacher session %s (subject=%s, lesson=%s)", response.SessionID, config.Subject, config.Lesson))

	return &response, nil
}

// SendMessage relays the latest user text to an existing backend session.
// The backend signals success with 200 OK; other statuses and transport
// failures follow the same error taxonomy as StartSession.
func (c *Client) SendMessage(ctx context.Context, sessionID, text string) (*MessageResponse, *schemas.BridgeError) {
	payload := MessageRequest{
		SessionID: sessionID,
		Message:   text,
	}

	var response MessageResponse
	if bridgeErr := c.post(ctx, apiPrefix+"/message", payload, fasthttp.StatusOK, &response); bridgeErr != nil {
		return nil, bridgeErr
	}

	return &response, nil
}

// post marshals payload, issues the request, and decodes the response body
// into out when the backend answers with successStatus.
func (c *Client) post(ctx context.Context, path string, payload any, successStatus int, out any) *schemas.BridgeError {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return schemas.NewTransportError("failed to marshal teacher request", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(jsonBody)

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if bridgeErr := c.doRequestWithContext(reqCtx, req, resp); bridgeErr != nil {
		return bridgeErr
	}

	if resp.StatusCode() != successStatus {
		c.logger.Warn(fmt.Sprintf("teacher backend %s returned status %d: %s", path, resp.StatusCode(), resp.Body()))
		return schemas.NewStatusError(resp.StatusCode(), resp.Body())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return schemas.NewTransportError("failed to unmarshal teacher response", err)
	}

	return nil
}

// doRequestWithContext runs the fasthttp call in its own goroutine so the
// caller stops waiting when the context is done. The underlying network call
// is not cancelled; it completes or times out based on the client settings.
func (c *Client) doRequestWithContext(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) *schemas.BridgeError {
	errChan := make(chan error, 1)

	go func() {
		errChan <- c.client.Do(req, resp)
	}()

	select {
	case <-ctx.Done():
		return schemas.NewTransportError(fmt.Sprintf("teacher request cancelled or timed out: %v", ctx.Err()), ctx.Err())
	case err := <-errChan:
		if err != nil {
			return schemas.NewTransportError("teacher request failed", err)
		}
		return nil
	}
}
