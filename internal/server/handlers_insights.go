package server

import (
	"net/http"
)

// chatRequest is the body of POST /api/chat.
type chatRequest struct {
	Message string `json:"message"`
}

// handleRisk handles GET /api/risk.
func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	v, err := s.app.Risk.Analyze(r.Context(), session(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, v)
}

// handleChatSend handles POST /api/chat.
func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	reply, err := s.app.Chat.Send(r.Context(), session(r), req.Message)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, reply)
}

// handleChatTranscript handles GET /api/chat.
func (s *Server) handleChatTranscript(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.app.Chat.Transcript(session(r).Key()))
}

// handleNews handles GET /api/news.
func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	articles, err := s.app.Market.News(r.Context(), session(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, articles)
}

// handleTrending handles GET /api/market/trending.
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	stocks, err := s.app.Market.Trending(r.Context(), session(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, stocks)
}

// handleIndices handles GET /api/market/indices.
func (s *Server) handleIndices(w http.ResponseWriter, r *http.Request) {
	indices, err := s.app.Market.Indices(r.Context(), session(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, indices)
}
