package wellbeing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var stable = Trend{Overall: TrendStable, Arrow: ArrowRight}

func TestGenerateRecommendationsOrder(t *testing.T) {
	declining := Trend{Overall: TrendDeclining, Arrow: ArrowDown}
	got := GenerateRecommendations(intPtr(12), intPtr(16), declining)
	require.Equal(t, []string{recPHQ9Moderate, recGAD7Severe, recDeclining}, got)
}

func TestGenerateRecommendationsBuckets(t *testing.T) {
	cases := []struct {
		phq9 *int
		gad7 *int
		want []string
	}{
		{intPtr(4), nil, []string{recPHQ9Minimal}},
		{intPtr(9), nil, []string{recPHQ9Mild}},
		{intPtr(14), nil, []string{recPHQ9Moderate}},
		{intPtr(15), nil, []string{recPHQ9Severe}},
		{nil, intPtr(0), []string{recGAD7Minimal}},
		{nil, intPtr(5), []string{recGAD7Mild}},
		{nil, intPtr(10), []string{recGAD7Moderate}},
		{nil, intPtr(15), []string{recGAD7Severe}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, GenerateRecommendations(tc.phq9, tc.gad7, stable))
	}
}

func TestGenerateRecommendationsFallback(t *testing.T) {
	require.Equal(t, []string{recNoData}, GenerateRecommendations(nil, nil, stable))

	declining := Trend{Overall: TrendDeclining, Arrow: ArrowDown}
	require.Equal(t, []string{recDeclining}, GenerateRecommendations(nil, nil, declining))
}
