package schemas

import "time"

// Session represents the teacher-backend conversation state held by the bridge
// for one conversation key. Sessions are created once, never mutated after
// creation, and live until the process exits.
type Session struct {
	// BackendSessionID is the opaque identifier assigned by the teacher
	// backend when the session was started. It is exclusively owned by this
	// session; creation is the only way to populate it.
	BackendSessionID string

	// Config is the lesson configuration snapshot used to start the session.
	Config LessonConfig

	// CreatedAt records when the session was started.
	CreatedAt time.Time

	// InitialMessage is the greeting returned by the backend at creation.
	// It is served verbatim as the reply to the very first bridged request
	// for this conversation.
	InitialMessage string
}
