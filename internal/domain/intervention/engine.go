package intervention

import (
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/wellbeing/pkg/util"
)

const (
	phq9Threshold = 10
	phq9Urgent    = 20
	gad7Threshold = 10
	gad7High      = 15
)

const (
	textDepressionUrgent   = "Your recent check-ins suggest you may be going through a very difficult time. Please reach out to a mental health professional or a crisis line for immediate support."
	textDepressionModerate = "Your mood has been low lately. Try the guided exercises in the wellness section, and consider talking to someone you trust."
	textAnxietyHigh        = "Your stress levels have been high. A deep relaxation breathing session can help you reset right now."
	textAnxietyModerate    = "You have been feeling more anxious than usual. A short breathing exercise may help you feel calmer."
)

// Evaluate applies the depression and anxiety threshold rules to the latest clinical estimates.
// Each rule is evaluated independently, so zero, one or two interventions may be returned.
// The results are not persisted.
func Evaluate(userID uuid.UUID, date time.Time, phq9, gad7 *int) []Intervention {
	weekStart := util.FormatDate(date)
	createdAt := date.UTC()
	var out []Intervention

	if phq9 != nil && *phq9 >= phq9Threshold {
		item := newIntervention(userID, weekStart, createdAt)
		item.ActionPayload = ActionPayload{Category: CategoryDepression, Score: *phq9}
		if *phq9 >= phq9Urgent {
			item.Severity = SeverityHigh
			item.ActionType = ActionConsultation
			item.InterventionText = textDepressionUrgent
		} else {
			item.Severity = SeverityMedium
			item.ActionType = ActionWellnessExercise
			item.InterventionText = textDepressionModerate
		}
		out = append(out, item)
	}

	if gad7 != nil && *gad7 >= gad7Threshold {
		item := newIntervention(userID, weekStart, createdAt)
		item.ActionType = ActionWellnessExercise
		item.ActionPayload = ActionPayload{Category: CategoryAnxiety, Score: *gad7, Recommended: "breathing"}
		if *gad7 >= gad7High {
			item.Severity = SeverityHigh
			item.InterventionText = textAnxietyHigh
		} else {
			item.Severity = SeverityMedium
			item.InterventionText = textAnxietyModerate
		}
		out = append(out, item)
	}

	return out
}

func newIntervention(userID uuid.UUID, weekStart string, createdAt time.Time) Intervention {
	return Intervention{
		ID:            uuid.New(),
		UserID:        userID,
		WeekStartDate: weekStart,
		Status:        StatusPending,
		CreatedAt:     createdAt,
	}
}
