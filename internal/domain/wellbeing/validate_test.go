package wellbeing

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/wellbeing/pkg/errors"
)

func TestDailySignalValidate(t *testing.T) {
	valid := func() DailySignal {
		return DailySignal{
			UserID:      uuid.New(),
			EntryDate:   "2024-06-14",
			Mood:        intPtr(7),
			StressLevel: intPtr(3),
			SleepHours:  floatPtr(7.5),
		}
	}

	tests := []struct {
		name   string
		mutate func(*DailySignal)
		ok     bool
	}{
		{name: "valid", mutate: func(*DailySignal) {}, ok: true},
		{name: "all fields absent", mutate: func(d *DailySignal) { d.Mood, d.StressLevel, d.SleepHours = nil, nil, nil }, ok: true},
		{name: "nil user", mutate: func(d *DailySignal) { d.UserID = uuid.Nil }},
		{name: "bad date", mutate: func(d *DailySignal) { d.EntryDate = "14/06/2024" }},
		{name: "mood too low", mutate: func(d *DailySignal) { d.Mood = intPtr(0) }},
		{name: "mood too high", mutate: func(d *DailySignal) { d.Mood = intPtr(11) }},
		{name: "stress too high", mutate: func(d *DailySignal) { d.StressLevel = intPtr(12) }},
		{name: "negative sleep", mutate: func(d *DailySignal) { d.SleepHours = floatPtr(-1) }},
		{name: "sleep over a day", mutate: func(d *DailySignal) { d.SleepHours = floatPtr(25) }},
		{name: "nan sentiment", mutate: func(d *DailySignal) { d.SentimentScores = []float64{math.NaN()} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			signal := valid()
			tc.mutate(&signal)
			err := signal.Validate()
			if tc.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
		})
	}
}

func TestSentimentAvg(t *testing.T) {
	require.Nil(t, DailySignal{}.SentimentAvg())
	require.Equal(t, 0.25, *DailySignal{SentimentScores: []float64{0.5, 0, 0.25}}.SentimentAvg())
}
