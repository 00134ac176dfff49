package core

import (
	"context"
	"fmt"
	"time"

	"github.com/majdzarai/bridge-tavus/core/lesson"
	"github.com/majdzarai/bridge-tavus/core/schemas"
	"github.com/majdzarai/bridge-tavus/core/session"
	"github.com/majdzarai/bridge-tavus/core/teacher"
)

// TeacherClient is the backend surface the bridge depends on. It is satisfied
// by teacher.Client and stubbed in tests.
type TeacherClient interface {
	StartSession(ctx context.Context, config schemas.LessonConfig) (*teacher.StartSessionResponse, *schemas.BridgeError)
	SendMessage(ctx context.Context, sessionID, text string) (*teacher.MessageResponse, *schemas.BridgeError)
}

// FallbackPolicy holds the fixed phrases the bridge speaks instead of raising
// errors. The downstream avatar/voice consumer can only render text, so
// backend failures are deliberately swallowed into an apology rather than
// surfaced as HTTP errors. Keeping the phrases here gives tests and deployers
// a single substitution point.
type FallbackPolicy struct {
	// TechnicalIssue replaces the reply when any backend call fails.
	TechnicalIssue string

	// EmptyReply replaces the reply when the backend answers a relayed
	// message without a teacher_message field.
	EmptyReply string
}

// DefaultFallbackPolicy returns the stock fallback phrases.
func DefaultFallbackPolicy() FallbackPolicy {
	return FallbackPolicy{
		TechnicalIssue: "I'm having a small technical issue. Could you repeat that?",
		EmptyReply:     "I apologize, but I didn't catch that. Could you please repeat?",
	}
}

// Bridge orchestrates one inbound chat completion: extract the lesson config,
// resolve the conversation identity, look up or create the backend session,
// call the backend, and hand the reply text to response translation.
type Bridge struct {
	store    session.Store
	client   TeacherClient
	fallback FallbackPolicy
	logger   schemas.Logger
}

// NewBridge creates a Bridge using the given session store and teacher client.
func NewBridge(store session.Store, client TeacherClient, fallback FallbackPolicy, logger schemas.Logger) *Bridge {
	return &Bridge{
		store:    store,
		client:   client,
		fallback: fallback,
		logger:   logger,
	}
}

// Complete resolves the reply text for one chat completion request. It never
// fails: every backend error collapses into the technical-issue fallback
// phrase and the caller still produces a successful response.
//
// The first request of a conversation follows the CreateAndGreet transition:
// the backend session is started and its greeting is returned, without
// forwarding the user turn. Every later request follows ContinueAndRelay:
// the last user message is relayed to the stored session.
func (b *Bridge) Complete(ctx context.Context, req *schemas.ChatCompletionRequest) string {
	config := lesson.ExtractConfig(req.Messages)
	conversationID := lesson.ConversationID(req.Messages)
	userMessage := lesson.LastUserMessage(req.Messages)

	b.logger.Debug(fmt.Sprintf("chat completion for conversation %s (model=%s)", conversationID, req.Model))

	sess, created, err := b.store.GetOrCreate(ctx, conversationID, func(ctx context.Context) (*schemas.Session, error) {
		return b.createAndGreet(ctx, config)
	})
	if err != nil {
		b.logger.Error(fmt.Errorf("failed to start teacher session for conversation %s: %w", conversationID, err))
		return b.fallback.TechnicalIssue
	}

	if created {
		// First turn of the conversation: the backend greeting is the reply
		// and the user message is intentionally not forwarded.
		return sess.InitialMessage
	}

	return b.continueAndRelay(ctx, sess, userMessage)
}

// createAndGreet starts a backend session for a conversation seen for the
// first time.
func (b *Bridge) createAndGreet(ctx context.Context, config schemas.LessonConfig) (*schemas.Session, error) {
	started, bridgeErr := b.client.StartSession(ctx, config)
	if bridgeErr != nil {
		return nil, bridgeErr.AsError()
	}

	return &schemas.Session{
		BackendSessionID: started.SessionID,
		Config:           config,
		CreatedAt:        time.Now(),
		InitialMessage:   started.InitialMessage,
	}, nil
}

// continueAndRelay forwards the user text to an existing backend session and
// returns the teacher's reply, substituting the fallback phrases on an empty
// reply or a failed call.
func (b *Bridge) continueAndRelay(ctx context.Context, sess *schemas.Session, userMessage string) string {
	response, bridgeErr := b.client.SendMessage(ctx, sess.BackendSessionID, userMessage)
	if bridgeErr != nil {
		b.logger.Error(fmt.Errorf("teacher message to session %s failed: %s", sess.BackendSessionID, bridgeErr.Error.Message))
		return b.fallback.TechnicalIssue
	}

	if response.TeacherMessage == "" {
		return b.fallback.EmptyReply
	}

	return response.TeacherMessage
}
