package server

import (
	"bytes"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/dashboard"
)

// dashboardResponse is the bound state of the dashboard page.
type dashboardResponse struct {
	Surfaces      map[string]dashboard.Surface     `json:"surfaces"`
	Headers       []string                         `json:"headers"`
	Summary       *models.SummaryMetrics           `json:"summary,omitempty"`
	Charts        map[string]dashboard.ChartConfig `json:"charts"`
	Notifications []models.Notification            `json:"notifications"`
}

// holdingsResponse is the bound state of the holdings page.
type holdingsResponse struct {
	Surfaces      map[string]dashboard.Surface `json:"surfaces"`
	Headers       []string                     `json:"headers"`
	Notifications []models.Notification        `json:"notifications"`
}

// handleDashboard handles GET /api/dashboard and POST /api/dashboard/refresh.
// Loading the dashboard always refreshes it. A failed refresh still answers
// with the state that was on screen before.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	_, err := s.app.Dashboard.Refresh(r.Context(), sess)
	if err != nil && r.Context().Err() != nil {
		s.writeServiceError(w, r, err)
		return
	}

	page := s.app.Dashboard.Dashboard(sess.Key()).Main
	resp := dashboardResponse{
		Surfaces:      page.View().Snapshot(),
		Headers:       dashboard.TableHeaders,
		Charts:        make(map[string]dashboard.ChartConfig),
		Notifications: s.app.Notices.For(sess.Key()).Drain(),
	}
	if m := page.Metrics(); m != nil {
		resp.Summary = &m.Summary
	}
	for _, name := range []string{dashboard.SlotAllocation, dashboard.SlotGrowth} {
		if slot, ok := page.Slot(name); ok {
			if cfg, ok := slot.Config(); ok {
				resp.Charts[name] = cfg
			}
		}
	}

	WriteJSON(w, http.StatusOK, resp)
}

// handleHoldings handles GET /api/holdings and POST /api/holdings/refresh.
func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	_, err := s.app.Dashboard.RefreshHoldings(r.Context(), sess)
	if err != nil && r.Context().Err() != nil {
		s.writeServiceError(w, r, err)
		return
	}

	page := s.app.Dashboard.Dashboard(sess.Key()).Holdings
	WriteJSON(w, http.StatusOK, holdingsResponse{
		Surfaces:      page.View().Snapshot(),
		Headers:       dashboard.HoldingsTableHeaders,
		Notifications: s.app.Notices.For(sess.Key()).Drain(),
	})
}

// handleChartImage handles GET /api/dashboard/charts/{slot}.{png|svg}.
func (s *Server) handleChartImage(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := strings.TrimPrefix(path.Ext(file), ".")
	name := strings.TrimSuffix(file, path.Ext(file))
	if ext != dashboard.FormatPNG && ext != dashboard.FormatSVG {
		WriteError(w, http.StatusNotFound, "Unknown chart format")
		return
	}

	slot, ok := s.app.Dashboard.Dashboard(session(r).Key()).Main.Slot(name)
	if !ok {
		WriteError(w, http.StatusNotFound, "Unknown chart")
		return
	}

	var buf bytes.Buffer
	contentType, err := s.renderSlot(slot, ext, &buf)
	if err != nil {
		if errors.Is(err, dashboard.ErrNoChart) || errors.Is(err, dashboard.ErrChartDestroyed) {
			WriteError(w, http.StatusNotFound, "Chart not rendered")
			return
		}
		s.logger.Error().Err(err).Str("slot", name).Msg("Chart render failed")
		WriteError(w, http.StatusInternalServerError, "Chart render failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// renderSlot draws the live chart, or a one-off copy of it when a different format is requested.
func (s *Server) renderSlot(slot *dashboard.ChartSlot, format string, buf *bytes.Buffer) (string, error) {
	charts := s.app.Config.Charts
	if strings.EqualFold(charts.Format, format) || (format == dashboard.FormatPNG && charts.Format == "") {
		return slot.Render(buf)
	}

	cfg, ok := slot.Config()
	if !ok {
		return "", dashboard.ErrNoChart
	}
	c, err := dashboard.NewGoChartFactory(charts.Width, charts.Height, format)(cfg)
	if err != nil {
		return "", err
	}
	defer c.Destroy()
	if err := c.Render(buf); err != nil {
		return "", err
	}
	return c.ContentType(), nil
}

// handleChartConfig handles GET /api/dashboard/charts/{slot}/config.
func (s *Server) handleChartConfig(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "slot")
	slot, ok := s.app.Dashboard.Dashboard(session(r).Key()).Main.Slot(name)
	if !ok {
		WriteError(w, http.StatusNotFound, "Unknown chart")
		return
	}
	cfg, ok := slot.Config()
	if !ok {
		WriteError(w, http.StatusNotFound, "Chart not rendered")
		return
	}
	WriteJSON(w, http.StatusOK, cfg)
}

// handleNotifications handles GET /api/notifications.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.app.Notices.For(session(r).Key()).Drain())
}
