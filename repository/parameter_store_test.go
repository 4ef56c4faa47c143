package repository

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retirement-calc/domain"
)

type failingStore struct {
	*MemoryStore
	failKey string
}

func (f *failingStore) Set(key, value string) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.MemoryStore.Set(key, value)
}

func TestParameterStore_LoadDefaultsWhenEmpty(t *testing.T) {
	store := NewParameterStore(NewMemoryStore())

	snapshot := store.Load()

	assert.Equal(t, domain.DefaultParameters(), snapshot.Parameters)
	assert.Equal(t, domain.DefaultRetirementAge, snapshot.Projection.RetirementAge)
	assert.Equal(t, domain.DefaultTargetRetirementAmount, snapshot.Projection.TargetRetirementAmount)
}

func TestParameterStore_LoadNumberFallsBackOnFalsyValues(t *testing.T) {
	kv := NewMemoryStore()
	kv.Data["garbage"] = "abc"
	kv.Data["zero"] = "0"
	kv.Data["empty"] = ""
	kv.Data["nan"] = "NaN"
	kv.Data["ok"] = " 12.5 "
	store := NewParameterStore(kv)

	assert.Equal(t, 7.0, store.LoadNumber("garbage", 7))
	assert.Equal(t, 7.0, store.LoadNumber("zero", 7))
	assert.Equal(t, 7.0, store.LoadNumber("empty", 7))
	assert.Equal(t, 7.0, store.LoadNumber("nan", 7))
	assert.Equal(t, 7.0, store.LoadNumber("missing", 7))
	assert.Equal(t, 12.5, store.LoadNumber("ok", 7))
}

func TestParameterStore_LoadAgeStaysInIntRange(t *testing.T) {
	kv := NewMemoryStore()
	kv.Data[domain.KeyCurrentAge] = "1e300"
	kv.Data[domain.KeyRetirementAge] = "-1e300"
	kv.Data["fractional"] = "41.9"
	store := NewParameterStore(kv)

	assert.Equal(t, math.MaxInt32, store.LoadAge(domain.KeyCurrentAge, 35))
	assert.Equal(t, 0, store.LoadAge(domain.KeyRetirementAge, 100))
	assert.Equal(t, 41, store.LoadAge("fractional", 35))
	assert.Equal(t, 35, store.LoadAge("missing", 35))

	snapshot := store.Load()
	assert.Equal(t, math.MaxInt32, snapshot.Parameters.CurrentAge)
	assert.Equal(t, 0, snapshot.Projection.RetirementAge)
}

func TestParameterStore_LoadFrequency(t *testing.T) {
	kv := NewMemoryStore()
	store := NewParameterStore(kv)

	kv.Data[domain.KeyContributionFrequency] = "Annually"
	assert.Equal(t, domain.Annually, store.LoadFrequency(domain.KeyContributionFrequency, domain.Monthly))

	kv.Data[domain.KeyContributionFrequency] = "annually"
	assert.Equal(t, domain.Monthly, store.LoadFrequency(domain.KeyContributionFrequency, domain.Monthly))
}

func TestParameterStore_SaveAllWritesEveryKey(t *testing.T) {
	kv := NewMemoryStore()
	store := NewParameterStore(kv)

	snapshot := domain.Snapshot{
		Parameters: domain.Parameters{
			CurrentAge:               41,
			CurrentSavings:           25000.5,
			Contributions:            800,
			ContributionFrequency:    domain.Annually,
			AnnualRetirementExpense:  40000,
			PreRetirementReturnRate:  6,
			PostRetirementReturnRate: 5,
			InflationRate:            2.9,
		},
		Projection: domain.Projection{
			TargetRetirementAmount: 1904761.9047619049,
			RetirementAge:          88,
		},
	}

	require.NoError(t, store.SaveAll(snapshot))

	assert.Equal(t, map[string]string{
		domain.KeyCurrentAge:               "41",
		domain.KeyCurrentSavings:           "25000.5",
		domain.KeyContributions:            "800",
		domain.KeyContributionFrequency:    "Annually",
		domain.KeyAnnualRetirementExpense:  "40000",
		domain.KeyPreRetirementReturnRate:  "6",
		domain.KeyPostRetirementReturnRate: "5",
		domain.KeyInflationRate:            "2.9",
		domain.KeyTargetRetirementAmount:   "1904761.9047619049",
		domain.KeyRetirementAge:            "88",
	}, kv.Data)

	loaded := store.Load()
	assert.Equal(t, snapshot.Parameters, loaded.Parameters)
	assert.Equal(t, snapshot.Projection.RetirementAge, loaded.Projection.RetirementAge)
}

func TestParameterStore_SaveAllContinuesPastFailures(t *testing.T) {
	kv := &failingStore{MemoryStore: NewMemoryStore(), failKey: domain.KeyCurrentAge}
	store := NewParameterStore(kv)

	err := store.SaveAll(domain.Snapshot{Parameters: domain.DefaultParameters()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.KeyCurrentAge)
	assert.Len(t, kv.Data, 9)
}
