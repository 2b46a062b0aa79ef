package wellbeing

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	apperrors "github.com/yanqian/wellbeing/pkg/errors"
	"github.com/yanqian/wellbeing/pkg/util"
)

const maxSleepHours = 24

// Validate range-checks a signal before it reaches the scoring pipeline.
func (d DailySignal) Validate() error {
	if d.UserID == uuid.Nil {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "user id is required", nil)
	}
	if _, err := util.ParseDate(d.EntryDate); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}
	if d.Mood != nil && (*d.Mood < 1 || *d.Mood > 10) {
		return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("mood must be between 1 and 10, got %d", *d.Mood), nil)
	}
	if d.StressLevel != nil && (*d.StressLevel < 1 || *d.StressLevel > 10) {
		return apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("stress level must be between 1 and 10, got %d", *d.StressLevel), nil)
	}
	if d.SleepHours != nil {
		h := *d.SleepHours
		if math.IsNaN(h) || h < 0 || h > maxSleepHours {
			return apperrors.Wrap(apperrors.CodeInvalidInput, "sleep hours must be between 0 and 24", nil)
		}
	}
	for _, score := range d.SentimentScores {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return apperrors.Wrap(apperrors.CodeInvalidInput, "sentiment scores must be finite numbers", nil)
		}
	}
	return nil
}
