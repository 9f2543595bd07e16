package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bobmcallan/folio/internal/common"
)

// setupMiddleware installs the middleware stack, outermost first.
func (s *Server) setupMiddleware() {
	s.router.Use(recoveryMiddleware(s.logger))
	s.router.Use(middleware.RealIP)
	s.router.Use(correlationIDMiddleware)
	s.router.Use(loggingMiddleware(s.logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.app.Config.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", headerCorrelationID, headerUserID, headerDisplayCurrency},
		ExposedHeaders:   []string{headerCorrelationID},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	s.router.Use(sessionMiddleware(s.app.Config.Session))
}

// setupRoutes registers the API and page routes.
func (s *Server) setupRoutes() {
	r := s.router

	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLoginForm)
	r.Post("/logout", s.handleLogoutForm)

	r.Group(func(r chi.Router) {
		r.Use(requirePageSession(s.app.Config.Session.LoginPath))
		r.Get("/", s.handleDashboardPage)
		r.Get("/dashboard", s.handleDashboardPage)
		r.Get("/holdings", s.handleHoldingsPage)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/version", s.handleVersion)
		r.Post("/session", s.handleSessionCreate)
		r.Delete("/session", s.handleSessionDelete)

		r.Group(func(r chi.Router) {
			r.Use(requireAPISession)

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/", s.handleDashboard)
				r.Post("/refresh", s.handleDashboard)
				r.Get("/charts/{file}", s.handleChartImage)
				r.Get("/charts/{slot}/config", s.handleChartConfig)
			})

			r.Get("/holdings", s.handleHoldings)
			r.Post("/holdings/refresh", s.handleHoldings)

			r.Post("/trades/buy", s.handleBuy)
			r.Post("/trades/sell", s.handleSell)

			r.Route("/account", func(r chi.Router) {
				r.Get("/", s.handleAccountGet)
				r.Post("/", s.handleAccountCreate)
				r.Put("/", s.handleAccountUpdate)
				r.Post("/deposit", s.handleAccountDeposit)
				r.Post("/withdraw", s.handleAccountWithdraw)
			})

			r.Get("/profile", s.handleProfile)
			r.Get("/risk", s.handleRisk)
			r.Get("/chat", s.handleChatTranscript)
			r.Post("/chat", s.handleChatSend)
			r.Get("/news", s.handleNews)
			r.Get("/market/trending", s.handleTrending)
			r.Get("/market/indices", s.handleIndices)
			r.Get("/notifications", s.handleNotifications)
		})
	})
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":    common.GetVersion(),
		"build":      common.GetBuild(),
		"commit":     common.GetGitCommit(),
		"go_version": runtime.Version(),
		"uptime":     time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}
