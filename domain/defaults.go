package domain

const (
	DefaultCurrentAge               = 35
	DefaultCurrentSavings           = 10000.0
	DefaultContributions            = 500.0
	DefaultContributionFrequency    = Monthly
	DefaultAnnualRetirementExpense  = 0.0
	DefaultPreRetirementReturnRate  = 7.0
	DefaultPostRetirementReturnRate = 7.0
	DefaultInflationRate            = 2.9

	// Derived values reported before the first recomputation.
	DefaultTargetRetirementAmount = 0.0
	DefaultRetirementAge          = 100
)

// DefaultParameters returns the parameter set used on first load.
func DefaultParameters() Parameters {
	return Parameters{
		CurrentAge:               DefaultCurrentAge,
		CurrentSavings:           DefaultCurrentSavings,
		Contributions:            DefaultContributions,
		ContributionFrequency:    DefaultContributionFrequency,
		AnnualRetirementExpense:  DefaultAnnualRetirementExpense,
		PreRetirementReturnRate:  DefaultPreRetirementReturnRate,
		PostRetirementReturnRate: DefaultPostRetirementReturnRate,
		InflationRate:            DefaultInflationRate,
	}
}
