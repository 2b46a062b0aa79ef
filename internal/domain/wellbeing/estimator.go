package wellbeing

import "math"

const (
	phq9Max = 27
	gad7Max = 21
)

// Severity labels.
const (
	SeverityNoData           = "No data"
	SeverityMinimal          = "Minimal"
	SeverityMild             = "Mild"
	SeverityModerate         = "Moderate"
	SeverityModeratelySevere = "Moderately Severe"
	SeveritySevere           = "Severe"
)

// EstimatePHQ9 maps a 1-10 mood (10 best) onto the 0-27 PHQ-9 range (27 worst).
func EstimatePHQ9(mood *float64) *int {
	if mood == nil {
		return nil
	}
	raw := phq9Max * (1 - (*mood-1)/9)
	score := int(roundHalfUp(clamp(raw, 0, phq9Max)))
	return &score
}

// EstimateGAD7 maps a 1-10 stress level (1 best) onto the 0-21 GAD-7 range (21 worst).
func EstimateGAD7(stress *float64) *int {
	if stress == nil {
		return nil
	}
	raw := gad7Max * (*stress - 1) / 9
	score := int(roundHalfUp(clamp(raw, 0, gad7Max)))
	return &score
}

// PHQ9Severity labels a PHQ-9 score.
func PHQ9Severity(score *int) string {
	if score == nil {
		return SeverityNoData
	}
	switch s := *score; {
	case s <= 4:
		return SeverityMinimal
	case s <= 9:
		return SeverityMild
	case s <= 14:
		return SeverityModerate
	case s <= 19:
		return SeverityModeratelySevere
	default:
		return SeveritySevere
	}
}

// GAD7Severity labels a GAD-7 score.
func GAD7Severity(score *int) string {
	if score == nil {
		return SeverityNoData
	}
	switch s := *score; {
	case s <= 4:
		return SeverityMinimal
	case s <= 9:
		return SeverityMild
	case s <= 14:
		return SeverityModerate
	default:
		return SeveritySevere
	}
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func roundOneDecimal(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
