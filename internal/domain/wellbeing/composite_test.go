package wellbeing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeComposite(t *testing.T) {
	tests := []struct {
		name      string
		mood      *float64
		stress    *float64
		sleep     *float64
		composite int
		risk      RiskLevel
	}{
		{name: "balanced day", mood: floatPtr(7), stress: floatPtr(3), sleep: floatPtr(7), composite: 76, risk: RiskLow},
		{name: "rough day", mood: floatPtr(2), stress: floatPtr(9), sleep: floatPtr(4), composite: 27, risk: RiskCritical},
		{name: "defaults", composite: 63, risk: RiskMedium},
		{name: "sleep benefit capped", mood: floatPtr(10), stress: floatPtr(1), sleep: floatPtr(12), composite: 97, risk: RiskLow},
		{name: "high risk", mood: floatPtr(4), stress: floatPtr(6), sleep: floatPtr(3), composite: 39, risk: RiskHigh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeComposite(tc.mood, tc.stress, tc.sleep)
			require.Equal(t, tc.composite, got.Composite)
			require.Equal(t, tc.risk, got.RiskLevel)
		})
	}
}

func TestComputeCompositeParts(t *testing.T) {
	got := ComputeComposite(floatPtr(7), floatPtr(3), floatPtr(7))
	require.Equal(t, 70.0, got.MoodPart)
	require.Equal(t, 70.0, got.StressPart)
	require.Equal(t, 87.5, got.SleepPart)
}

func TestComputeCompositeIsPure(t *testing.T) {
	first := ComputeComposite(floatPtr(6), floatPtr(4), floatPtr(6.5))
	for i := 0; i < 5; i++ {
		require.Equal(t, first, ComputeComposite(floatPtr(6), floatPtr(4), floatPtr(6.5)))
	}
}

func TestDailyRiskLevelBoundaries(t *testing.T) {
	require.Equal(t, RiskLow, DailyRiskLevel(75))
	require.Equal(t, RiskMedium, DailyRiskLevel(74))
	require.Equal(t, RiskMedium, DailyRiskLevel(50))
	require.Equal(t, RiskHigh, DailyRiskLevel(49))
	require.Equal(t, RiskHigh, DailyRiskLevel(30))
	require.Equal(t, RiskCritical, DailyRiskLevel(29))
}
