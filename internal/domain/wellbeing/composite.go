package wellbeing

import "math"

const (
	defaultMood       = 5
	defaultStress     = 5
	defaultSleepHours = 7
	targetSleepHours  = 8
)

// CompositeResult breaks a composite score into its parts.
type CompositeResult struct {
	MoodPart   float64   `json:"moodPart"`
	StressPart float64   `json:"stressPart"`
	SleepPart  float64   `json:"sleepPart"`
	Composite  int       `json:"composite"`
	RiskLevel  RiskLevel `json:"riskLevel"`
}

// ComputeComposite blends same-day mood, inverted stress and sleep into a 0-100 score.
// Missing inputs fall back to neutral defaults here only; aggregates never default.
func ComputeComposite(mood, stress, sleepHours *float64) CompositeResult {
	m := valueOr(mood, defaultMood)
	st := valueOr(stress, defaultStress)
	sl := valueOr(sleepHours, defaultSleepHours)

	moodPart := m * 10
	stressPart := (10 - st) * 10
	sleepPart := math.Min((sl/targetSleepHours)*100, 100)
	composite := int(roundHalfUp((moodPart + stressPart + sleepPart) / 3))

	return CompositeResult{
		MoodPart:   moodPart,
		StressPart: stressPart,
		SleepPart:  sleepPart,
		Composite:  composite,
		RiskLevel:  DailyRiskLevel(composite),
	}
}

// DailyRiskLevel is the four-bucket policy applied to persisted per-day scores.
func DailyRiskLevel(composite int) RiskLevel {
	switch {
	case composite >= 75:
		return RiskLow
	case composite >= 50:
		return RiskMedium
	case composite >= 30:
		return RiskHigh
	default:
		return RiskCritical
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
