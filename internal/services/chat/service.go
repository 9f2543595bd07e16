// Package chat keeps each user's chatbot transcript and relays messages to the backend.
package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
)

// ErrEmptyMessage is returned when the message is blank after trimming.
var ErrEmptyMessage = errors.New("message is empty")

// FallbackReply is shown as the bot's answer when the backend call fails.
const FallbackReply = "Sorry, I encountered an error. Please try again."

// DefaultTranscriptLimit bounds the messages kept per user.
const DefaultTranscriptLimit = 200

// Reply is the outcome of one exchange.
type Reply struct {
	Message      models.ChatMessage `json:"message"`
	QuickActions []string           `json:"quickActions"`
	Failed       bool               `json:"failed"`
}

// Transcript is a user's conversation so far.
type Transcript struct {
	Messages     []models.ChatMessage `json:"messages"`
	QuickActions []string             `json:"quickActions"`
}

// Service relays chat messages.
type Service struct {
	client interfaces.ChatClient
	logger *common.Logger
	md     goldmark.Markdown
	limit  int
	now    func() time.Time

	mu          sync.Mutex
	transcripts map[string]*Transcript
}

// NewService creates a chat service.
func NewService(client interfaces.ChatClient, logger *common.Logger) *Service {
	return &Service{
		client:      client,
		logger:      logger,
		md:          goldmark.New(goldmark.WithRendererOptions(gmhtml.WithHardWraps())),
		limit:       DefaultTranscriptLimit,
		now:         time.Now,
		transcripts: make(map[string]*Transcript),
	}
}

// Send records the user message, asks the backend and records the reply.
// A backend failure is answered with FallbackReply rather than an error.
func (s *Service) Send(ctx context.Context, sess *common.Session, message string) (*Reply, error) {
	if !sess.Valid() {
		return nil, common.ErrNoSession
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}
	userID, err := strconv.ParseInt(sess.UserID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("chat requires a numeric user id: %w", err)
	}

	s.append(sess.Key(), s.message(models.ChatRoleUser, message), nil)

	resp, err := s.client.Chat(common.WithSession(ctx, sess), models.ChatRequest{
		UserID:       userID,
		Message:      message,
		ConsentGiven: true,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("user", sess.UserID).Msg("Chat request failed")
		bot := s.message(models.ChatRoleBot, FallbackReply)
		s.append(sess.Key(), bot, nil)
		return &Reply{Message: bot, Failed: true, QuickActions: []string{}}, nil
	}

	bot := s.message(models.ChatRoleBot, resp.Response)
	s.append(sess.Key(), bot, resp.QuickActions)

	actions := resp.QuickActions
	if actions == nil {
		actions = []string{}
	}
	return &Reply{Message: bot, QuickActions: actions}, nil
}

// Transcript returns a copy of the conversation held under a session key.
func (s *Service) Transcript(key string) Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transcripts[key]
	if !ok {
		return Transcript{Messages: []models.ChatMessage{}, QuickActions: []string{}}
	}
	return Transcript{
		Messages:     append([]models.ChatMessage{}, t.Messages...),
		QuickActions: append([]string{}, t.QuickActions...),
	}
}

// Forget drops the transcript held under a session key.
func (s *Service) Forget(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.transcripts, key)
}

// append adds a message. Non-nil quick actions replace the current set.
func (s *Service) append(key string, m models.ChatMessage, actions []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transcripts[key]
	if !ok {
		t = &Transcript{}
		s.transcripts[key] = t
	}
	t.Messages = append(t.Messages, m)
	if over := len(t.Messages) - s.limit; over > 0 {
		t.Messages = append([]models.ChatMessage(nil), t.Messages[over:]...)
	}
	if actions != nil {
		t.QuickActions = actions
	}
}

func (s *Service) message(role models.ChatRole, text string) models.ChatMessage {
	return models.ChatMessage{Role: role, Text: text, HTML: s.render(text), At: s.now()}
}

// render converts markdown to HTML. Raw HTML in the source is dropped by goldmark.
func (s *Service) render(text string) string {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(text), &buf); err != nil {
		return "<p>" + strings.ReplaceAll(html.EscapeString(text), "\n", "<br>") + "</p>"
	}
	return strings.TrimSpace(buf.String())
}
