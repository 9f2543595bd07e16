// Package risk loads the backend risk analysis and formats it for display.
package risk

import (
	"context"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/models"
	"github.com/bobmcallan/folio/internal/services/notify"
)

const (
	ActionLoadPerformance = "Load performance"
	MsgLoadPerformance    = "Error loading performance data"
)

// View is the performance panel.
type View struct {
	Category             string   `json:"category"`
	VolatilityText       string   `json:"volatilityText"`
	DiversificationText  string   `json:"diversificationText"`
	MaxLossToleranceText string   `json:"maxLossToleranceText"`
	InvestmentHorizon    string   `json:"investmentHorizon,omitempty"`
	Level                string   `json:"level"`
	Recommendation       string   `json:"recommendation"`
	Factors              []string `json:"factors"`
	Suggestions          []string `json:"suggestions"`
}

// Service loads risk analyses.
type Service struct {
	client  interfaces.RiskClient
	notices *notify.Center
	logger  *common.Logger
}

// NewService creates a risk service.
func NewService(client interfaces.RiskClient, notices *notify.Center, logger *common.Logger) *Service {
	return &Service{client: client, notices: notices, logger: logger}
}

// Analyze fetches and formats the risk analysis of the session user.
func (s *Service) Analyze(ctx context.Context, sess *common.Session) (*View, error) {
	if !sess.Valid() {
		return nil, common.ErrNoSession
	}

	a, err := s.client.AnalyzeRisk(common.WithSession(ctx, sess), sess.UserID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user", sess.UserID).Msg("Risk analysis failed")
		s.notices.For(sess.Key()).Error(ActionLoadPerformance, MsgLoadPerformance)
		return nil, err
	}
	return NewView(a), nil
}

// NewView formats an analysis. Nil lists become empty.
func NewView(a *models.RiskAnalysis) *View {
	v := &View{
		Category:             a.RiskCategory,
		VolatilityText:       common.FormatScore(a.VolatilityScore),
		DiversificationText:  common.FormatScore(a.DiversificationScore),
		MaxLossToleranceText: a.MaxLossTolerance.String() + "%",
		InvestmentHorizon:    a.InvestmentHorizon,
		Level:                a.RiskLevel,
		Recommendation:       a.Recommendation,
		Factors:              a.RiskFactors,
		Suggestions:          a.Suggestions,
	}
	if v.Factors == nil {
		v.Factors = []string{}
	}
	if v.Suggestions == nil {
		v.Suggestions = []string{}
	}
	return v
}
