package domain

type ContributionFrequency string

const (
	Monthly  ContributionFrequency = "Monthly"
	Annually ContributionFrequency = "Annually"
)

// Persistence keys, one per field.
const (
	KeyCurrentAge               = "currentAge"
	KeyCurrentSavings           = "currentSavings"
	KeyContributions            = "contributions"
	KeyContributionFrequency    = "contributionFrequency"
	KeyAnnualRetirementExpense  = "annualRetirementExpense"
	KeyPreRetirementReturnRate  = "preRetirementReturnRate"
	KeyPostRetirementReturnRate = "postRetirementReturnRate"
	KeyInflationRate            = "inflationRate"
	KeyTargetRetirementAmount   = "targetRetirementAmount"
	KeyRetirementAge            = "retirementAge"
)

// Parameters are the user-controlled inputs of the projection.
// Rates are percentages (7 means 7%).
type Parameters struct {
	CurrentAge               int                   `json:"currentAge"`
	CurrentSavings           float64               `json:"currentSavings"`
	Contributions            float64               `json:"contributions"`
	ContributionFrequency    ContributionFrequency `json:"contributionFrequency"`
	AnnualRetirementExpense  float64               `json:"annualRetirementExpense"`
	PreRetirementReturnRate  float64               `json:"preRetirementReturnRate"`
	PostRetirementReturnRate float64               `json:"postRetirementReturnRate"`
	InflationRate            float64               `json:"inflationRate"`
}

// Projection holds the derived outputs. ReachesTarget is false when the
// age search stopped at the horizon without reaching the target.
type Projection struct {
	TargetRetirementAmount float64 `json:"targetRetirementAmount"`
	RetirementAge          int     `json:"retirementAge"`
	ReachesTarget          bool    `json:"reachesTarget"`
}

type Snapshot struct {
	Parameters Parameters `json:"parameters"`
	Projection Projection `json:"projection"`
}

type Display struct {
	RetirementAge          int    `json:"retirementAge"`
	TargetRetirementAmount string `json:"targetRetirementAmount"`
	ReachesTarget          bool   `json:"reachesTarget"`
}

type YearlyBalance struct {
	Age          int     `json:"age"`
	Balance      float64 `json:"balance"`
	Contribution float64 `json:"contribution"`
}

type RetirementView struct {
	Snapshot
	Display Display `json:"display"`
}

// ParseContributionFrequency accepts only the exact enum values.
func ParseContributionFrequency(raw string) (ContributionFrequency, bool) {
	switch ContributionFrequency(raw) {
	case Monthly:
		return Monthly, true
	case Annually:
		return Annually, true
	}
	return "", false
}

// ParameterKeys lists the user-editable fields in display order.
var ParameterKeys = []string{
	KeyAnnualRetirementExpense,
	KeyCurrentAge,
	KeyCurrentSavings,
	KeyContributions,
	KeyContributionFrequency,
	KeyPreRetirementReturnRate,
	KeyPostRetirementReturnRate,
	KeyInflationRate,
}
