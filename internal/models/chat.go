package models

import "time"

// ChatRequest is sent to the backend chatbot.
type ChatRequest struct {
	UserID       int64  `json:"userId"`
	Message      string `json:"message"`
	ConsentGiven bool   `json:"consentGiven"`
}

// ChatResponse is the chatbot reply.
type ChatResponse struct {
	Response        string   `json:"response"`
	RequiresConsent bool     `json:"requiresConsent"`
	QuickActions    []string `json:"quickActions,omitempty"`
	Timestamp       string   `json:"timestamp,omitempty"`
}

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleBot  ChatRole = "bot"
)

// ChatMessage is one entry of a user's chat transcript.
type ChatMessage struct {
	Role ChatRole  `json:"role"`
	Text string    `json:"text"`
	HTML string    `json:"html"`
	At   time.Time `json:"at"`
}
