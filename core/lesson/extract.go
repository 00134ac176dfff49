// Package lesson extracts teaching configuration and conversation identity
// from OpenAI-shaped chat messages. The avatar front ends this bridge serves
// cannot send structured session parameters, so the lesson setup travels as
// bracketed tags inside the system prompt, e.g. "[SUBJECT: Chemistry]".
package lesson

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/majdzarai/bridge-tavus/core/schemas"
)

// Tag patterns are case-sensitive on the key; the value runs up to the
// closing bracket and is trimmed. Only the first match per key is honored.
var (
	subjectPattern    = regexp.MustCompile(`\[SUBJECT:\s*([^\]]+)\]`)
	chapterPattern    = regexp.MustCompile(`\[CHAPTER:\s*([^\]]+)\]`)
	lessonPattern     = regexp.MustCompile(`\[LESSON:\s*([^\]]+)\]`)
	levelPattern      = regexp.MustCompile(`\[LEVEL:\s*([^\]]+)\]`)
	languagePattern   = regexp.MustCompile(`\[LANGUAGE:\s*([^\]]+)\]`)
	studentPattern    = regexp.MustCompile(`\[STUDENT:\s*([^\]]+)\]`)
	competencePattern = regexp.MustCompile(`\[COMPETENCE:\s*([^\]]+)\]`)
)

// systemContent returns the content of the first system-role message, or an
// empty string when the conversation carries none.
func systemContent(messages []schemas.ChatMessage) string {
	for _, msg := range messages {
		if msg.Role == schemas.ChatMessageRoleSystem {
			return msg.Content
		}
	}
	return ""
}

// matchTag returns the trimmed first capture of pattern in content, falling
// back to def when the tag is absent.
func matchTag(pattern *regexp.Regexp, content, def string) string {
	if m := pattern.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return def
}

// ExtractConfig parses the system prompt of the given messages into a fully
// populated LessonConfig. It is total: malformed or missing tags, a missing
// system message, or an empty message list all produce a config with defaults
// applied, never an error.
//
// When no [COMPETENCE: ...] tag is found, the competence list is synthesized
// from the (possibly overridden) lesson as "Understanding <lesson>".
func ExtractConfig(messages []schemas.ChatMessage) schemas.LessonConfig {
	content := systemContent(messages)

	config := schemas.LessonConfig{
		Subject:    matchTag(subjectPattern, content, schemas.DefaultSubject),
		Chapter:    matchTag(chapterPattern, content, schemas.DefaultChapter),
		Lesson:     matchTag(lessonPattern, content, schemas.DefaultLesson),
		Level:      matchTag(levelPattern, content, schemas.DefaultLevel),
		Language:   matchTag(languagePattern, content, schemas.DefaultLanguage),
		Student:    matchTag(studentPattern, content, schemas.DefaultStudent),
		Competence: []string{matchTag(competencePattern, content, schemas.DefaultCompetence)},
	}

	// A competence still equal to the sentinel means no explicit tag took
	// effect; derive one from the lesson instead. See schemas.DefaultCompetence
	// for the known ambiguity this carries.
	if config.Competence[0] == schemas.DefaultCompetence && config.Lesson != "" {
		config.Competence = []string{"Understanding " + config.Lesson}
	}

	return config
}

// ConversationID derives a deterministic conversation key from the system
// prompt of the given messages. Identical system prompts always map to the
// same key, across requests and across process restarts, so a client
// resubmitting the same prompt reaches the same logical session. User turns
// do not participate in the key.
func ConversationID(messages []schemas.ChatMessage) string {
	sum := md5.Sum([]byte(systemContent(messages)))
	return hex.EncodeToString(sum[:])
}

// LastUserMessage returns the content of the most recent user-role message,
// or an empty string when the conversation carries none.
func LastUserMessage(messages []schemas.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == schemas.ChatMessageRoleUser {
			return messages[i].Content
		}
	}
	return ""
}
