package service

import (
	"math"

	"retirement-calc/domain"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	// por encima de 2^52 no hay decimales que redondear y value*100 podría desbordar
	if math.Abs(value) >= 1<<52 {
		return value
	}
	return math.Round(value*100) / 100
}

// clampFinite acota value a ±math.MaxFloat64 para que ningún resultado sea Inf o NaN
func clampFinite(value float64) float64 {
	switch {
	case math.IsNaN(value):
		return 0
	case value > math.MaxFloat64:
		return math.MaxFloat64
	case value < -math.MaxFloat64:
		return -math.MaxFloat64
	}
	return value
}

// netReturn convierte un rendimiento nominal y una inflación en porcentaje a fracción
func netReturn(nominalRate, inflationRate float64) float64 {
	return clampFinite((nominalRate - inflationRate) / 100)
}

func annualContribution(contributions float64, frequency domain.ContributionFrequency) float64 {
	if frequency == domain.Annually {
		return contributions
	}
	return clampFinite(contributions * MonthsPerYear)
}

// ComputeTargetAmount returns the principal needed to fund annualExpense
// indefinitely at the post-retirement return net of inflation. A zero net
// return is replaced by ZeroNetReturnEpsilon and the quotient is capped at
// ±math.MaxFloat64, so the result is always finite. A negative net return
// yields a negative target.
func ComputeTargetAmount(annualExpense, postRetReturn, inflation float64) float64 {
	net := netReturn(postRetReturn, inflation)
	if net == 0 {
		net = ZeroNetReturnEpsilon
	}
	return clampFinite(annualExpense / net)
}

// ComputeRetirementAge compounds the savings once a year until they reach
// targetAmount. Ages above MaxRetirementAge mean the target is never reached.
func ComputeRetirementAge(
	currentAge int,
	currentSavings float64,
	contributions float64,
	frequency domain.ContributionFrequency,
	preRetReturn float64,
	inflation float64,
	targetAmount float64,
) int {
	age, _ := searchRetirementAge(currentAge, currentSavings, contributions, frequency, preRetReturn, inflation, targetAmount, nil)
	return age
}

// searchRetirementAge corre la simulación anual y reporta si el balance alcanzó el objetivo.
// Si visit no es nil, se llama una vez por año simulado.
func searchRetirementAge(
	currentAge int,
	currentSavings float64,
	contributions float64,
	frequency domain.ContributionFrequency,
	preRetReturn float64,
	inflation float64,
	targetAmount float64,
	visit func(age int, balance, contribution float64),
) (int, bool) {
	net := netReturn(preRetReturn, inflation)
	yearly := annualContribution(contributions, frequency)

	balance := currentSavings
	age := currentAge

	for balance < targetAmount {
		balance = clampFinite(yearly + balance*(1+net))
		age++

		if visit != nil {
			visit(age, balance, yearly)
		}

		// Límite de seguridad para evitar loops infinitos
		if age > MaxRetirementAge {
			break
		}
	}

	return age, balance >= targetAmount
}

// Project runs the full engine over a parameter snapshot.
func Project(params domain.Parameters) domain.Projection {
	target := ComputeTargetAmount(
		params.AnnualRetirementExpense,
		params.PostRetirementReturnRate,
		params.InflationRate,
	)

	age, reached := searchRetirementAge(
		params.CurrentAge,
		params.CurrentSavings,
		params.Contributions,
		params.ContributionFrequency,
		params.PreRetirementReturnRate,
		params.InflationRate,
		target,
		nil,
	)

	return domain.Projection{
		TargetRetirementAmount: target,
		RetirementAge:          age,
		ReachesTarget:          reached,
	}
}

// ProjectSchedule returns the balance at the start (current age) and after
// each simulated year. The last entry's age equals the projected retirement age.
func ProjectSchedule(params domain.Parameters) []domain.YearlyBalance {
	target := ComputeTargetAmount(
		params.AnnualRetirementExpense,
		params.PostRetirementReturnRate,
		params.InflationRate,
	)

	schedule := []domain.YearlyBalance{{
		Age:     params.CurrentAge,
		Balance: roundTo2Decimals(params.CurrentSavings),
	}}

	searchRetirementAge(
		params.CurrentAge,
		params.CurrentSavings,
		params.Contributions,
		params.ContributionFrequency,
		params.PreRetirementReturnRate,
		params.InflationRate,
		target,
		func(age int, balance, contribution float64) {
			schedule = append(schedule, domain.YearlyBalance{
				Age:          age,
				Balance:      roundTo2Decimals(balance),
				Contribution: roundTo2Decimals(contribution),
			})
		},
	)

	return schedule
}
