package wellbeing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimatePHQ9Bounds(t *testing.T) {
	require.Nil(t, EstimatePHQ9(nil))
	require.Equal(t, 27, *EstimatePHQ9(floatPtr(1)))
	require.Equal(t, 24, *EstimatePHQ9(floatPtr(2)))
	require.Equal(t, 0, *EstimatePHQ9(floatPtr(10)))
	// Out-of-range input is clamped rather than extrapolated.
	require.Equal(t, 0, *EstimatePHQ9(floatPtr(12)))
	require.Equal(t, 27, *EstimatePHQ9(floatPtr(0)))
}

func TestEstimatePHQ9IsNonIncreasing(t *testing.T) {
	prev := *EstimatePHQ9(floatPtr(1))
	for mood := 1.0; mood <= 10; mood += 0.5 {
		got := *EstimatePHQ9(floatPtr(mood))
		require.LessOrEqual(t, got, prev, "mood %.1f", mood)
		require.NotEqual(t, SeverityNoData, PHQ9Severity(&got))
		prev = got
	}
}

func TestEstimateGAD7Bounds(t *testing.T) {
	require.Nil(t, EstimateGAD7(nil))
	require.Equal(t, 0, *EstimateGAD7(floatPtr(1)))
	require.Equal(t, 21, *EstimateGAD7(floatPtr(10)))
	require.Equal(t, 2, *EstimateGAD7(floatPtr(2)))
}

func TestEstimateGAD7IsNonDecreasing(t *testing.T) {
	prev := *EstimateGAD7(floatPtr(1))
	for stress := 1.0; stress <= 10; stress += 0.5 {
		got := *EstimateGAD7(floatPtr(stress))
		require.GreaterOrEqual(t, got, prev, "stress %.1f", stress)
		prev = got
	}
}

func TestPHQ9Severity(t *testing.T) {
	cases := []struct {
		score *int
		want  string
	}{
		{nil, SeverityNoData},
		{intPtr(0), SeverityMinimal},
		{intPtr(4), SeverityMinimal},
		{intPtr(5), SeverityMild},
		{intPtr(9), SeverityMild},
		{intPtr(10), SeverityModerate},
		{intPtr(14), SeverityModerate},
		{intPtr(15), SeverityModeratelySevere},
		{intPtr(19), SeverityModeratelySevere},
		{intPtr(20), SeveritySevere},
		{intPtr(27), SeveritySevere},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, PHQ9Severity(tc.score))
	}
}

func TestGAD7Severity(t *testing.T) {
	cases := []struct {
		score *int
		want  string
	}{
		{nil, SeverityNoData},
		{intPtr(4), SeverityMinimal},
		{intPtr(9), SeverityMild},
		{intPtr(14), SeverityModerate},
		{intPtr(15), SeveritySevere},
		{intPtr(21), SeveritySevere},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, GAD7Severity(tc.score))
	}
}

func TestRoundHalfUp(t *testing.T) {
	require.Equal(t, 76.0, roundHalfUp(75.8333))
	require.Equal(t, 3.0, roundHalfUp(2.5))
	require.Equal(t, -2.0, roundHalfUp(-2.5))
	require.Equal(t, -0.1, roundOneDecimal(-0.15))
	require.Equal(t, 6.3, roundOneDecimal(6.25))
}

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}
