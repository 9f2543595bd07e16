package server

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/folio/internal/common"
)

// sessionRequest is the body of POST /api/session.
type sessionRequest struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

// handleSessionCreate handles POST /api/session. The token is issued by the
// backend's login endpoint; this only stores it in cookies.
func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sess := &common.Session{UserID: strings.TrimSpace(req.UserID), Token: strings.TrimSpace(req.Token)}
	if !sess.Valid() {
		WriteError(w, http.StatusBadRequest, "userId and token are required")
		return
	}

	s.setSessionCookies(w, sess)
	WriteJSON(w, http.StatusOK, map[string]string{"userId": sess.UserID})
}

// handleSessionDelete handles DELETE /api/session.
func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	s.app.SignOut(session(r))
	s.clearSessionCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleLoginForm handles POST /login from the login page.
func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.pages.login(w, http.StatusBadRequest, "Invalid form")
		return
	}

	sess := &common.Session{
		UserID: strings.TrimSpace(r.PostFormValue("userId")),
		Token:  strings.TrimSpace(r.PostFormValue("token")),
	}
	if !sess.Valid() {
		s.pages.login(w, http.StatusBadRequest, "User id and token are required")
		return
	}

	s.setSessionCookies(w, sess)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogoutForm handles POST /logout.
func (s *Server) handleLogoutForm(w http.ResponseWriter, r *http.Request) {
	s.app.SignOut(session(r))
	s.clearSessionCookies(w)
	http.Redirect(w, r, s.app.Config.Session.LoginPath, http.StatusSeeOther)
}

// handleLoginPage handles GET /login.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if session(r) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	s.pages.login(w, http.StatusOK, "")
}

func (s *Server) setSessionCookies(w http.ResponseWriter, sess *common.Session) {
	cfg := s.app.Config.Session
	secure := s.app.Config.IsProduction()
	for name, value := range map[string]string{cfg.TokenCookie: sess.Token, cfg.UserCookie: sess.UserID} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (s *Server) clearSessionCookies(w http.ResponseWriter) {
	cfg := s.app.Config.Session
	for _, name := range []string{cfg.TokenCookie, cfg.UserCookie} {
		http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	}
}
