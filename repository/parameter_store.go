package repository

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"retirement-calc/domain"
)

// ParameterStore supplies the initial snapshot and records the latest one.
type ParameterStore interface {
	Load() domain.Snapshot
	SaveAll(snapshot domain.Snapshot) error
}

// KVParameterStore maps a snapshot onto one key per field of a KeyValueStore.
type KVParameterStore struct {
	kv KeyValueStore
}

// NewParameterStore wraps kv as a ParameterStore.
func NewParameterStore(kv KeyValueStore) *KVParameterStore {
	return &KVParameterStore{kv: kv}
}

// LoadNumber returns the persisted value of key, or fallback when the key is
// missing, unparseable, non-finite or zero.
func (s *KVParameterStore) LoadNumber(key string, fallback float64) float64 {
	raw, ok := s.kv.Get(key)
	if !ok {
		return fallback
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || value == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fallback
	}
	return value
}

// LoadAge returns the persisted age truncated to an int within
// [0, math.MaxInt32], or fallback under the same rules as LoadNumber.
func (s *KVParameterStore) LoadAge(key string, fallback int) int {
	value := s.LoadNumber(key, float64(fallback))
	switch {
	case value > math.MaxInt32:
		return math.MaxInt32
	case value < 0:
		return 0
	}
	return int(value)
}

// LoadFrequency returns the persisted frequency, or fallback unless the
// stored value is exactly one of the enum values.
func (s *KVParameterStore) LoadFrequency(key string, fallback domain.ContributionFrequency) domain.ContributionFrequency {
	raw, ok := s.kv.Get(key)
	if !ok {
		return fallback
	}
	freq, ok := domain.ParseContributionFrequency(raw)
	if !ok {
		return fallback
	}
	return freq
}

// Load reads every field, applying the defaults where nothing usable is stored.
func (s *KVParameterStore) Load() domain.Snapshot {
	return domain.Snapshot{
		Parameters: domain.Parameters{
			CurrentAge:               s.LoadAge(domain.KeyCurrentAge, domain.DefaultCurrentAge),
			CurrentSavings:           s.LoadNumber(domain.KeyCurrentSavings, domain.DefaultCurrentSavings),
			Contributions:            s.LoadNumber(domain.KeyContributions, domain.DefaultContributions),
			ContributionFrequency:    s.LoadFrequency(domain.KeyContributionFrequency, domain.DefaultContributionFrequency),
			AnnualRetirementExpense:  s.LoadNumber(domain.KeyAnnualRetirementExpense, domain.DefaultAnnualRetirementExpense),
			PreRetirementReturnRate:  s.LoadNumber(domain.KeyPreRetirementReturnRate, domain.DefaultPreRetirementReturnRate),
			PostRetirementReturnRate: s.LoadNumber(domain.KeyPostRetirementReturnRate, domain.DefaultPostRetirementReturnRate),
			InflationRate:            s.LoadNumber(domain.KeyInflationRate, domain.DefaultInflationRate),
		},
		Projection: domain.Projection{
			TargetRetirementAmount: s.LoadNumber(domain.KeyTargetRetirementAmount, domain.DefaultTargetRetirementAmount),
			RetirementAge:          s.LoadAge(domain.KeyRetirementAge, domain.DefaultRetirementAge),
		},
	}
}

// SaveAll writes every field, derived outputs included. Each key is written
// independently; failures are collected and returned together.
func (s *KVParameterStore) SaveAll(snapshot domain.Snapshot) error {
	p := snapshot.Parameters
	values := []struct {
		key   string
		value string
	}{
		{domain.KeyRetirementAge, strconv.Itoa(snapshot.Projection.RetirementAge)},
		{domain.KeyTargetRetirementAmount, formatNumber(snapshot.Projection.TargetRetirementAmount)},
		{domain.KeyAnnualRetirementExpense, formatNumber(p.AnnualRetirementExpense)},
		{domain.KeyCurrentAge, strconv.Itoa(p.CurrentAge)},
		{domain.KeyCurrentSavings, formatNumber(p.CurrentSavings)},
		{domain.KeyContributions, formatNumber(p.Contributions)},
		{domain.KeyContributionFrequency, string(p.ContributionFrequency)},
		{domain.KeyPreRetirementReturnRate, formatNumber(p.PreRetirementReturnRate)},
		{domain.KeyPostRetirementReturnRate, formatNumber(p.PostRetirementReturnRate)},
		{domain.KeyInflationRate, formatNumber(p.InflationRate)},
	}

	var errs []error
	for _, v := range values {
		if err := s.kv.Set(v.key, v.value); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", v.key, err))
		}
	}
	return errors.Join(errs...)
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
