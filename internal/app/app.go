package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/folio/internal/clients/backend"
	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/services/account"
	"github.com/bobmcallan/folio/internal/services/chat"
	"github.com/bobmcallan/folio/internal/services/dashboard"
	"github.com/bobmcallan/folio/internal/services/market"
	"github.com/bobmcallan/folio/internal/services/notify"
	"github.com/bobmcallan/folio/internal/services/risk"
	"github.com/bobmcallan/folio/internal/services/trade"
)

// App holds all initialized services and the backend client.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Backend     interfaces.BackendClient
	Notices     *notify.Center
	Dashboard   *dashboard.Service
	Trades      *trade.Service
	Accounts    *account.Service
	Risk        *risk.Service
	Chat        *chat.Service
	Market      *market.Service
	StartupTime time.Time

	sweepCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp loads configuration and initializes every service.
// configPath may be empty, in which case FOLIO_CONFIG and then folio.toml
// next to the binary are tried.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "folio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folio.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(binDir, config.Logging.FilePath)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	client := backend.NewClient(
		backend.WithBaseURL(config.Backend.BaseURL),
		backend.WithLogger(logger),
		backend.WithRateLimit(config.Backend.RateLimit),
		backend.WithTimeout(config.Backend.GetTimeout()),
	)

	a := New(config, logger, client)
	a.StartupTime = startupStart

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// New wires the services around an existing backend client.
func New(config *common.Config, logger *common.Logger, client interfaces.BackendClient) *App {
	notices := notify.NewCenter(notify.DefaultQueueLimit)
	currency := config.Dashboard.Currency

	charts := dashboard.NewGoChartFactory(config.Charts.Width, config.Charts.Height, config.Charts.Format)
	dash := dashboard.NewService(client, notices, charts, dashboard.OptionsFromConfig(config.Dashboard), logger.WithService("dashboard"))

	return &App{
		Config:      config,
		Logger:      logger,
		Backend:     client,
		Notices:     notices,
		Dashboard:   dash,
		Trades:      trade.NewService(client, dash, dash, notices, logger.WithService("trade")),
		Accounts:    account.NewService(client, notices, currency, logger.WithService("account")),
		Risk:        risk.NewService(client, notices, logger.WithService("risk")),
		Chat:        chat.NewService(client, logger.WithService("chat")),
		Market:      market.NewService(client, notices, currency, logger.WithService("market")),
		StartupTime: time.Now(),
	}
}

// SignOut drops every piece of state held for the session. State bound under
// another token of the same user is left alone.
func (a *App) SignOut(sess *common.Session) {
	if !sess.Valid() {
		return
	}
	key := sess.Key()
	a.Dashboard.Forget(key)
	a.Chat.Forget(key)
	a.Notices.Forget(key)
}

// Close stops background work.
func (a *App) Close() {
	if a.sweepCancel != nil {
		a.sweepCancel()
		a.sweepCancel = nil
	}
}

// StartSweeper launches the idle state sweep, unless it is disabled in config.
func (a *App) StartSweeper() {
	interval := a.Config.Session.GetSweepInterval()
	if interval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.sweepCancel = cancel
	go startSweeper(ctx, a, interval, a.Config.Session.GetIdleTimeout())
}
