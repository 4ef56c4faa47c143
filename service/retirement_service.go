package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"retirement-calc/domain"
	"retirement-calc/metrics"
	"retirement-calc/repository"
)

var (
	ErrUnknownField     = errors.New("unknown field")
	ErrInvalidFrequency = errors.New("contribution frequency must be Monthly or Annually")
)

// RetirementService owns the current parameter snapshot and reruns the
// projection every time an edit changes a parameter value.
type RetirementService struct {
	mu        sync.Mutex
	store     repository.ParameterStore
	formatter *CurrencyFormatter
	logger    *slog.Logger
	metrics   *metrics.Metrics
	snapshot  domain.Snapshot
}

// NewRetirementService loads the persisted snapshot (defaults where nothing
// usable is stored) and runs the pipeline once so the outputs match it.
func NewRetirementService(
	store repository.ParameterStore,
	formatter *CurrencyFormatter,
	logger *slog.Logger,
	m *metrics.Metrics,
) *RetirementService {
	if logger == nil {
		logger = slog.Default()
	}
	if formatter == nil {
		formatter = DefaultCurrencyFormatter()
	}

	s := &RetirementService{
		store:     store,
		formatter: formatter,
		logger:    logger,
		metrics:   m,
		snapshot:  store.Load(),
	}
	s.snapshot.Parameters.CurrentAge = clampAge(float64(s.snapshot.Parameters.CurrentAge))
	s.recompute()

	return s
}

func (s *RetirementService) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot
}

// View returns the snapshot together with its display form.
func (s *RetirementService) View() domain.RetirementView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view()
}

func (s *RetirementService) view() domain.RetirementView {
	return domain.RetirementView{
		Snapshot: s.snapshot,
		Display:  s.formatter.Display(s.snapshot.Projection),
	}
}

// Schedule returns the year-by-year balances behind the current projection.
func (s *RetirementService) Schedule() []domain.YearlyBalance {
	s.mu.Lock()
	params := s.snapshot.Parameters
	s.mu.Unlock()

	return ProjectSchedule(params)
}

// Apply sets fields from raw user text. Numeric fields never fail: text
// without a leading integer is replaced by the field fallback. An unknown
// field or a frequency outside the enum rejects the whole batch.
func (s *RetirementService) Apply(edits map[string]string) (domain.RetirementView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(edits))
	for key := range edits {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	next := s.snapshot.Parameters
	for _, key := range keys {
		if err := s.applyField(&next, key, edits[key]); err != nil {
			return s.view(), err
		}
	}

	s.update(next)
	return s.view(), nil
}

// Set replaces the whole parameter set.
func (s *RetirementService) Set(params domain.Parameters) (domain.RetirementView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := domain.ParseContributionFrequency(string(params.ContributionFrequency)); !ok {
		return s.view(), fmt.Errorf("%w: %q", ErrInvalidFrequency, params.ContributionFrequency)
	}
	params.CurrentAge = clampAge(float64(params.CurrentAge))

	s.update(params)
	return s.view(), nil
}

func (s *RetirementService) applyField(p *domain.Parameters, key, raw string) error {
	if key == domain.KeyContributionFrequency {
		freq, ok := domain.ParseContributionFrequency(raw)
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidFrequency, raw)
		}
		p.ContributionFrequency = freq
		return nil
	}

	var target *float64
	switch key {
	case domain.KeyCurrentAge:
		p.CurrentAge = clampAge(s.parseNumeric(key, raw))
		return nil
	case domain.KeyCurrentSavings:
		target = &p.CurrentSavings
	case domain.KeyContributions:
		target = &p.Contributions
	case domain.KeyAnnualRetirementExpense:
		target = &p.AnnualRetirementExpense
	case domain.KeyPreRetirementReturnRate:
		target = &p.PreRetirementReturnRate
	case domain.KeyPostRetirementReturnRate:
		target = &p.PostRetirementReturnRate
	case domain.KeyInflationRate:
		target = &p.InflationRate
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}

	*target = s.parseNumeric(key, raw)
	return nil
}

func (s *RetirementService) parseNumeric(key, raw string) float64 {
	value, ok := parseLeadingInt(raw)
	if ok {
		return value
	}

	fallback := FieldFallback(key)
	s.logger.Debug("numeric input coerced", "field", key, "raw", raw, "fallback", fallback)
	s.metrics.IncCoercedInput(key)
	return fallback
}

// update solo recalcula si algún parámetro cambió de valor
func (s *RetirementService) update(next domain.Parameters) {
	if next == s.snapshot.Parameters {
		return
	}
	s.snapshot.Parameters = next
	s.recompute()
}

// recompute persists the snapshot, then derives the target amount and the
// retirement age and publishes them. The persisted derived values are the
// ones published by the previous run; startup always recomputes, so they
// are never read back as outputs.
func (s *RetirementService) recompute() {
	// Guardar el snapshot (no crítico si falla)
	if err := s.store.SaveAll(s.snapshot); err != nil {
		s.logger.Warn("failed to persist parameters", "error", err)
		s.metrics.IncPersistFailure()
	}

	// monto objetivo -> edad de retiro -> publicar
	s.snapshot.Projection = Project(s.snapshot.Parameters)
	s.metrics.ObserveRecompute(s.snapshot.Projection.ReachesTarget)

	if !s.snapshot.Projection.ReachesTarget {
		s.logger.Info("target not reached within horizon",
			"max_age", MaxRetirementAge,
			"target", roundTo2Decimals(s.snapshot.Projection.TargetRetirementAmount),
		)
	}
}
