package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bobmcallan/folio/internal/clients/backend"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/notify"
)

// ErrSuperseded is returned by a refresh whose result was discarded because
// a newer refresh of the same view was issued while it was in flight.
var ErrSuperseded = errors.New("refresh superseded by a newer request")

// Chart slot names.
const (
	SlotAllocation = "allocation"
	SlotGrowth     = "growth"
)

// Notification text for a failed load.
const (
	ActionLoadPortfolio = "Load portfolio"
	ActionLoadHoldings  = "Load holdings"
	ActionRenderCharts  = "Render charts"
	MsgLoadPortfolio    = "Error loading portfolio data"
	MsgLoadHoldings     = "Error loading holdings"
)

// Options configures the display side of the pipeline.
type Options struct {
	Currency    string
	LabelLength int
	SummaryRows int
	Palette     []string
}

// OptionsFromConfig maps the dashboard config section onto Options.
func OptionsFromConfig(c common.DashboardConfig) Options {
	return Options{
		Currency:    c.Currency,
		LabelLength: c.LabelLength,
		SummaryRows: c.SummaryRows,
		Palette:     c.Palette,
	}
}

// Page is one view with its chart slots and the metrics last applied to it.
type Page struct {
	view  *View
	slots map[string]*ChartSlot

	mu      sync.Mutex
	issued  uint64
	applied uint64
	metrics *models.DisplayMetrics
}

func newPage(view *View, slots ...*ChartSlot) *Page {
	p := &Page{view: view, slots: make(map[string]*ChartSlot, len(slots))}
	for _, s := range slots {
		p.slots[s.Name()] = s
	}
	return p
}

// View returns the page's surfaces.
func (p *Page) View() *View { return p.view }

// Slot returns a chart slot by name.
func (p *Page) Slot(name string) (*ChartSlot, bool) {
	s, ok := p.slots[name]
	return s, ok
}

// Metrics returns the metrics of the last applied refresh, or nil.
func (p *Page) Metrics() *models.DisplayMetrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metrics
}

// Applied returns the generation of the last applied refresh.
func (p *Page) Applied() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.applied
}

func (p *Page) issue() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.issued++
	return p.issued
}

// Dashboard holds one user's dashboard and holdings pages.
type Dashboard struct {
	Main     *Page
	Holdings *Page
}

// Service runs the refresh pipeline for every signed-in user.
type Service struct {
	fetcher interfaces.PortfolioFetcher
	notices *notify.Center
	factory ChartFactory
	binder  *Binder
	opts    Options
	logger  *common.Logger

	now        func() time.Time
	mu         sync.Mutex
	dashboards map[string]*Dashboard
	lastSeen   map[string]time.Time
}

// NewService creates a dashboard service.
func NewService(fetcher interfaces.PortfolioFetcher, notices *notify.Center, factory ChartFactory, opts Options, logger *common.Logger) *Service {
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if len(opts.Palette) == 0 {
		opts.Palette = common.DefaultPalette
	}
	return &Service{
		fetcher:    fetcher,
		notices:    notices,
		factory:    factory,
		binder:     NewBinder(opts.SummaryRows),
		opts:       opts,
		logger:     logger,
		now:        time.Now,
		dashboards: make(map[string]*Dashboard),
		lastSeen:   make(map[string]time.Time),
	}
}

// Dashboard returns the pages held under a session key (common.Session.Key),
// creating them on first use.
func (s *Service) Dashboard(key string) *Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dashboards[key]
	if !ok {
		d = &Dashboard{
			Main: newPage(
				NewView(SurfaceTotalValue, SurfaceTotalCost, SurfaceProfitLoss, SurfaceProfitLossPct, SurfaceHoldingsTable),
				NewChartSlot(SlotAllocation, s.factory),
				NewChartSlot(SlotGrowth, s.factory),
			),
			Holdings: newPage(NewView(SurfaceAllHoldingsTable)),
		}
		s.dashboards[key] = d
	}
	s.lastSeen[key] = s.now()
	return d
}

// Forget destroys the charts held under a session key and drops its pages.
func (s *Service) Forget(key string) {
	s.mu.Lock()
	d, ok := s.dashboards[key]
	delete(s.dashboards, key)
	delete(s.lastSeen, key)
	s.mu.Unlock()

	if ok {
		d.destroy()
	}
}

// Sweep forgets every session whose pages have not been used for longer than
// idle and returns their keys.
func (s *Service) Sweep(idle time.Duration) []string {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	var stale []*Dashboard
	var keys []string
	for key, seen := range s.lastSeen {
		if seen.Before(cutoff) {
			keys = append(keys, key)
			stale = append(stale, s.dashboards[key])
			delete(s.dashboards, key)
			delete(s.lastSeen, key)
		}
	}
	s.mu.Unlock()

	for _, d := range stale {
		if d != nil {
			d.destroy()
		}
	}
	return keys
}

// Active returns the number of sessions with live pages.
func (s *Service) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dashboards)
}

func (d *Dashboard) destroy() {
	for _, page := range []*Page{d.Main, d.Holdings} {
		for _, slot := range page.slots {
			slot.Destroy()
		}
	}
}

// Refresh fetches a fresh snapshot and re-binds the dashboard page.
// On failure one error notification is published and the page is left as it was.
func (s *Service) Refresh(ctx context.Context, sess *common.Session) (*models.DisplayMetrics, error) {
	if !sess.Valid() {
		return nil, common.ErrNoSession
	}
	page := s.Dashboard(sess.Key()).Main
	return s.refresh(ctx, sess, page, ActionLoadPortfolio, MsgLoadPortfolio, func(m *models.DisplayMetrics) {
		s.binder.BindSummary(page.view, m)
		s.binder.BindDashboardTable(page.view, m)
		s.replaceCharts(sess, page, m)
	})
}

// RefreshHoldings fetches a fresh snapshot and re-binds the holdings page.
func (s *Service) RefreshHoldings(ctx context.Context, sess *common.Session) (*models.DisplayMetrics, error) {
	if !sess.Valid() {
		return nil, common.ErrNoSession
	}
	page := s.Dashboard(sess.Key()).Holdings
	return s.refresh(ctx, sess, page, ActionLoadHoldings, MsgLoadHoldings, func(m *models.DisplayMetrics) {
		s.binder.BindHoldingsTable(page.view, m)
	})
}

// RefreshAll refreshes both pages, as after a trade. The first error is returned.
func (s *Service) RefreshAll(ctx context.Context, sess *common.Session) error {
	_, errMain := s.Refresh(ctx, sess)
	_, errHoldings := s.RefreshHoldings(ctx, sess)
	if errMain != nil && !errors.Is(errMain, ErrSuperseded) {
		return errMain
	}
	if errHoldings != nil && !errors.Is(errHoldings, ErrSuperseded) {
		return errHoldings
	}
	return nil
}

func (s *Service) refresh(ctx context.Context, sess *common.Session, page *Page, action, message string, bind func(*models.DisplayMetrics)) (*models.DisplayMetrics, error) {
	gen := page.issue()

	snapshot, err := s.fetcher.GetPortfolio(common.WithSession(ctx, sess), sess.UserID)

	// An aborted refresh applies nothing and reports nothing.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	page.mu.Lock()
	defer page.mu.Unlock()

	if gen != page.issued {
		s.logger.Debug().Str("user", sess.UserID).Uint64("generation", gen).Msg("Discarding superseded refresh")
		return nil, ErrSuperseded
	}

	if err != nil {
		s.logger.Warn().Err(err).Str("user", sess.UserID).Str("action", action).Msg("Portfolio fetch failed")
		s.notices.For(sess.Key()).Error(action, message)
		if backend.IsUnauthorized(err) {
			// A rejected token must not keep serving what was bound under it.
			s.Forget(sess.Key())
		}
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	m := Calculate(snapshot, FormatOptions{
		Currency:    sess.ResolveCurrency(s.opts.Currency),
		LabelLength: s.opts.LabelLength,
	})
	bind(m)
	page.applied = gen
	page.metrics = m

	s.logger.Debug().Str("user", sess.UserID).Int("holdings", len(m.Holdings)).Msg("Dashboard refreshed")
	return m, nil
}

func (s *Service) replaceCharts(sess *common.Session, page *Page, m *models.DisplayMetrics) {
	configs := map[string]ChartConfig{
		SlotAllocation: AllocationConfig(m, s.opts.Palette),
		SlotGrowth:     GrowthConfig(m),
	}
	for _, name := range []string{SlotAllocation, SlotGrowth} {
		slot, ok := page.slots[name]
		if !ok {
			continue
		}
		if err := slot.Replace(configs[name]); err != nil {
			s.logger.Warn().Err(err).Str("user", sess.UserID).Str("slot", name).Msg("Chart replace failed")
			s.notices.For(sess.Key()).Error(ActionRenderCharts, "Error rendering "+name+" chart")
		}
	}
}

// Holding looks up a position by investment id in the metrics last applied
// to either page held under the session key.
func (s *Service) Holding(key string, investmentID int64) (models.Holding, bool) {
	s.mu.Lock()
	d, ok := s.dashboards[key]
	s.mu.Unlock()
	if !ok {
		return models.Holding{}, false
	}
	for _, page := range []*Page{d.Holdings, d.Main} {
		m := page.Metrics()
		if m == nil {
			continue
		}
		for _, h := range m.Holdings {
			if h.Holding.InvestmentID == investmentID {
				return h.Holding, true
			}
		}
	}
	return models.Holding{}, false
}
