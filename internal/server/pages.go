package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageRenderer struct {
	tmpl *template.Template
}

func newPageRenderer() *pageRenderer {
	return &pageRenderer{tmpl: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

// dashboardPage is the data of the dashboard and holdings templates.
type dashboardPage struct {
	Title         string
	Surfaces      map[string]dashboard.Surface
	Headers       []string
	Rows          []dashboard.Row
	Charts        []chartImage
	Notifications []models.Notification
}

type chartImage struct {
	Name string
	URL  string
	Alt  string
}

type loginPage struct {
	Error string
}

func (p *pageRenderer) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (p *pageRenderer) login(w http.ResponseWriter, status int, message string) {
	p.render(w, status, "login.html", loginPage{Error: message})
}

// handleDashboardPage handles GET / and GET /dashboard.
func (s *Server) handleDashboardPage(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	if _, err := s.app.Dashboard.Refresh(r.Context(), sess); err != nil && r.Context().Err() != nil {
		return
	}

	page := s.app.Dashboard.Dashboard(sess.Key()).Main
	surfaces := page.View().Snapshot()
	ext := s.app.Config.Charts.Format
	if ext == "" {
		ext = dashboard.FormatPNG
	}

	var charts []chartImage
	for _, name := range []string{dashboard.SlotAllocation, dashboard.SlotGrowth} {
		if slot, ok := page.Slot(name); ok && slot.State() == dashboard.SlotRendered {
			charts = append(charts, chartImage{
				Name: name,
				URL:  "/api/dashboard/charts/" + name + "." + ext,
				Alt:  name + " chart",
			})
		}
	}

	s.pages.render(w, http.StatusOK, "dashboard.html", dashboardPage{
		Title:         "Dashboard",
		Surfaces:      surfaces,
		Headers:       dashboard.TableHeaders,
		Rows:          surfaces[dashboard.SurfaceHoldingsTable].Rows,
		Charts:        charts,
		Notifications: s.app.Notices.For(sess.Key()).Drain(),
	})
}

// handleHoldingsPage handles GET /holdings.
func (s *Server) handleHoldingsPage(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	if _, err := s.app.Dashboard.RefreshHoldings(r.Context(), sess); err != nil && r.Context().Err() != nil {
		return
	}

	surfaces := s.app.Dashboard.Dashboard(sess.Key()).Holdings.View().Snapshot()
	s.pages.render(w, http.StatusOK, "holdings.html", dashboardPage{
		Title:         "Holdings",
		Surfaces:      surfaces,
		Headers:       dashboard.HoldingsTableHeaders,
		Rows:          surfaces[dashboard.SurfaceAllHoldingsTable].Rows,
		Notifications: s.app.Notices.For(sess.Key()).Drain(),
	})
}
