package service

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retirement-calc/domain"
)

func TestComputeTargetAmount_Formula(t *testing.T) {
	cases := []struct {
		expense, post, inflation float64
	}{
		{40000, 7, 2.9},
		{12000, 5, 1},
		{0, 7, 2.9},
		{25000, 10, 0},
	}

	for _, tc := range cases {
		got := ComputeTargetAmount(tc.expense, tc.post, tc.inflation)
		want := tc.expense * 100 / (tc.post - tc.inflation)
		assert.InDelta(t, want, got, 1e-6, "expense=%v post=%v inflation=%v", tc.expense, tc.post, tc.inflation)
	}
}

func TestComputeTargetAmount_ZeroNetReturnStaysFinite(t *testing.T) {
	got := ComputeTargetAmount(40000, 2.9, 2.9)

	assert.False(t, math.IsInf(got, 0))
	assert.False(t, math.IsNaN(got))
	assert.Equal(t, 40000/ZeroNetReturnEpsilon, got)
}

func TestComputeTargetAmount_NegativeNetReturn(t *testing.T) {
	got := ComputeTargetAmount(10000, 2, 5)

	assert.Less(t, got, 0.0)
}

func TestComputeRetirementAge_AlreadyReached(t *testing.T) {
	age := ComputeRetirementAge(40, 500000, 100, domain.Monthly, 7, 2.9, 400000)

	assert.Equal(t, 40, age)
}

func TestComputeRetirementAge_NegativeTargetReportsCurrentAge(t *testing.T) {
	target := ComputeTargetAmount(10000, 2, 5)
	age := ComputeRetirementAge(30, 0, 500, domain.Monthly, 7, 5, target)

	assert.Equal(t, 30, age)
}

func TestComputeRetirementAge_Scenario1(t *testing.T) {
	target := ComputeTargetAmount(40000, 7, 2.9)
	require.InDelta(t, 975609.76, target, 0.01)

	age := ComputeRetirementAge(35, 10000, 500, domain.Monthly, 7, 2.9, target)

	assert.Equal(t, 85, age)
}

func TestComputeRetirementAge_AnnualFrequencyUsesContributionAsIs(t *testing.T) {
	target := ComputeTargetAmount(40000, 7, 2.9)

	monthly := ComputeRetirementAge(35, 10000, 500, domain.Monthly, 7, 2.9, target)
	annually := ComputeRetirementAge(35, 10000, 500, domain.Annually, 7, 2.9, target)

	assert.Equal(t, 130, annually)
	assert.Greater(t, annually, monthly)
}

func TestComputeRetirementAge_Scenario2_ZeroExpense(t *testing.T) {
	target := ComputeTargetAmount(0, 7, 2.9)
	require.Equal(t, 0.0, target)

	age := ComputeRetirementAge(35, 10000, 500, domain.Monthly, 7, 2.9, target)

	assert.Equal(t, 35, age)
}

func TestComputeRetirementAge_Scenario3_ZeroNetPostReturn(t *testing.T) {
	target := ComputeTargetAmount(40000, 2.9, 2.9)
	require.False(t, math.IsInf(target, 0))

	age := ComputeRetirementAge(35, 10000, 500, domain.Monthly, 7, 2.9, target)

	assert.Greater(t, age, 35)
}

func TestComputeRetirementAge_Scenario4_HitsCeiling(t *testing.T) {
	target := ComputeTargetAmount(40000, 7, 5)

	age := ComputeRetirementAge(35, 10000, 0, domain.Monthly, 0, 5, target)

	assert.Equal(t, MaxRetirementAge+1, age)
}

func TestComputeRetirementAge_CeilingBoundsIterations(t *testing.T) {
	for _, start := range []int{0, 35, 150, 200} {
		iterations := 0
		age, reached := searchRetirementAge(start, 0, 0, domain.Monthly, 0, 5, 1, func(int, float64, float64) {
			iterations++
		})

		assert.False(t, reached)
		assert.Equal(t, MaxRetirementAge+1, age)
		assert.LessOrEqual(t, iterations, MaxRetirementAge+1)
		assert.Equal(t, MaxRetirementAge+1-start, iterations)
	}
}

func TestComputeRetirementAge_ContributionsMonotonic(t *testing.T) {
	target := ComputeTargetAmount(40000, 7, 2.9)

	prev := math.MaxInt
	for contributions := 0.0; contributions <= 5000; contributions += 250 {
		age := ComputeRetirementAge(35, 10000, contributions, domain.Monthly, 7, 2.9, target)
		assert.LessOrEqual(t, age, prev, "contributions=%v", contributions)
		prev = age
	}
}

func TestProject_FlagsUnreachedTarget(t *testing.T) {
	params := domain.DefaultParameters()
	params.AnnualRetirementExpense = 40000
	params.Contributions = 0
	params.PreRetirementReturnRate = 0
	params.InflationRate = 5

	projection := Project(params)

	assert.False(t, projection.ReachesTarget)
	assert.Greater(t, projection.RetirementAge, MaxRetirementAge)
}

func TestProject_Defaults(t *testing.T) {
	projection := Project(domain.DefaultParameters())

	assert.Equal(t, domain.Projection{
		TargetRetirementAmount: 0,
		RetirementAge:          domain.DefaultCurrentAge,
		ReachesTarget:          true,
	}, projection)
}

func TestProjectSchedule_EndsAtRetirementAge(t *testing.T) {
	params := domain.DefaultParameters()
	params.AnnualRetirementExpense = 40000

	schedule := ProjectSchedule(params)
	projection := Project(params)

	require.NotEmpty(t, schedule)
	assert.Equal(t, domain.YearlyBalance{Age: 35, Balance: 10000}, schedule[0])
	assert.Equal(t, 6000.0, schedule[1].Contribution)
	assert.InDelta(t, 16410, schedule[1].Balance, 0.01)

	last := schedule[len(schedule)-1]
	assert.Equal(t, projection.RetirementAge, last.Age)
	assert.GreaterOrEqual(t, last.Balance, roundTo2Decimals(projection.TargetRetirementAmount))
	assert.Len(t, schedule, projection.RetirementAge-params.CurrentAge+1)
}

func TestProject_HugeInputsStayFinite(t *testing.T) {
	huge, ok := parseLeadingInt("1" + strings.Repeat("0", 302))
	require.True(t, ok)

	params := domain.DefaultParameters()
	params.AnnualRetirementExpense = huge
	params.PostRetirementReturnRate = 3
	params.InflationRate = 3

	projection := Project(params)

	assert.Equal(t, math.MaxFloat64, projection.TargetRetirementAmount)
	assert.False(t, math.IsInf(projection.TargetRetirementAmount, 0))
}

func TestProjectSchedule_OverflowingBalanceStaysFinite(t *testing.T) {
	params := domain.DefaultParameters()
	params.Contributions = math.MaxFloat64 / 2
	params.AnnualRetirementExpense = math.MaxFloat64
	params.PostRetirementReturnRate = 3
	params.InflationRate = 3

	schedule := ProjectSchedule(params)

	require.NotEmpty(t, schedule)
	for _, row := range schedule {
		assert.False(t, math.IsInf(row.Balance, 0) || math.IsNaN(row.Balance), "age %d", row.Age)
		assert.False(t, math.IsInf(row.Contribution, 0) || math.IsNaN(row.Contribution), "age %d", row.Age)
	}
	assert.Equal(t, math.MaxFloat64, schedule[len(schedule)-1].Balance)
}

func TestClampFinite(t *testing.T) {
	assert.Equal(t, math.MaxFloat64, clampFinite(math.Inf(1)))
	assert.Equal(t, -math.MaxFloat64, clampFinite(math.Inf(-1)))
	assert.Equal(t, 0.0, clampFinite(math.NaN()))
	assert.Equal(t, 12.5, clampFinite(12.5))
}
