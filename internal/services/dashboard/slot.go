package dashboard

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrChartDestroyed is returned when a destroyed chart instance is used.
var ErrChartDestroyed = errors.New("chart instance destroyed")

// ErrNoChart is returned when a slot has never been given a chart.
var ErrNoChart = errors.New("no chart rendered")

// SlotState is the lifecycle state of a ChartSlot.
type SlotState int

const (
	SlotAbsent SlotState = iota
	SlotRendered
	SlotDestroyed
)

func (s SlotState) String() string {
	switch s {
	case SlotAbsent:
		return "absent"
	case SlotRendered:
		return "rendered"
	case SlotDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("SlotState(%d)", int(s))
	}
}

// Chart is a live chart instance bound to a slot.
type Chart interface {
	Render(w io.Writer) error
	ContentType() string
	Config() ChartConfig
	Destroy()
}

// ChartFactory creates a chart instance from a configuration.
type ChartFactory func(cfg ChartConfig) (Chart, error)

// ChartSlot owns at most one live chart. Replacing the chart destroys the
// previous instance before the new one is created.
type ChartSlot struct {
	name    string
	factory ChartFactory

	mu         sync.Mutex
	live       Chart
	state      SlotState
	generation int
}

// NewChartSlot creates an empty slot.
func NewChartSlot(name string, factory ChartFactory) *ChartSlot {
	return &ChartSlot{name: name, factory: factory}
}

// Name returns the slot name.
func (s *ChartSlot) Name() string { return s.name }

// Replace destroys the live chart, if any, then creates a new one from cfg.
// When creation fails the slot is left destroyed.
func (s *ChartSlot) Replace(cfg ChartConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.live != nil {
		s.live.Destroy()
		s.live = nil
		s.state = SlotDestroyed
	}

	c, err := s.factory(cfg)
	if err != nil {
		return fmt.Errorf("failed to create %s chart: %w", s.name, err)
	}

	s.live = c
	s.state = SlotRendered
	s.generation++
	return nil
}

// Render writes the live chart.
func (s *ChartSlot) Render(w io.Writer) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case SlotAbsent:
		return "", ErrNoChart
	case SlotDestroyed:
		return "", ErrChartDestroyed
	}
	if err := s.live.Render(w); err != nil {
		return "", fmt.Errorf("failed to render %s chart: %w", s.name, err)
	}
	return s.live.ContentType(), nil
}

// Config returns the configuration of the live chart.
func (s *ChartSlot) Config() (ChartConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live == nil {
		return ChartConfig{}, false
	}
	return s.live.Config(), true
}

// State returns the lifecycle state.
func (s *ChartSlot) State() SlotState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generation counts successful replacements.
func (s *ChartSlot) Generation() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Destroy releases the live chart.
func (s *ChartSlot) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live != nil {
		s.live.Destroy()
		s.live = nil
		s.state = SlotDestroyed
	}
}
