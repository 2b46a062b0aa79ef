package wellbeing

const (
	recPHQ9Minimal  = "Your mood has been consistently good. Keep up the routines that are working for you."
	recPHQ9Mild     = "You may be experiencing mild low mood. Try mood-boosting activities like a short walk, time outdoors or connecting with a friend."
	recPHQ9Moderate = "You are showing moderate symptoms of low mood. Consider speaking with a counselor or therapist."
	recPHQ9Severe   = "Your responses indicate significant depressive symptoms. Please seek professional help immediately."

	recGAD7Minimal  = "Your stress levels look well managed."
	recGAD7Mild     = "You are experiencing mild anxiety. Relaxation techniques such as breathing exercises or meditation may help."
	recGAD7Moderate = "Your anxiety is moderate. Try stress management strategies like regular exercise, journaling and limiting caffeine."
	recGAD7Severe   = "Your anxiety levels are high. Professional support is recommended."

	recDeclining = "Your wellbeing has been trending down. Consider reaching out to a friend, family member or professional for support."
	recNoData    = "No data available to generate recommendations yet. Keep logging your mood, sleep and stress."
)

// GenerateRecommendations maps clinical estimates and the trend to guidance, in the order
// PHQ-9, GAD-7, trend. The fallback is only used when no other rule fired.
func GenerateRecommendations(phq9, gad7 *int, trend Trend) []string {
	recs := make([]string, 0, 3)

	if phq9 != nil {
		switch s := *phq9; {
		case s <= 4:
			recs = append(recs, recPHQ9Minimal)
		case s <= 9:
			recs = append(recs, recPHQ9Mild)
		case s <= 14:
			recs = append(recs, recPHQ9Moderate)
		default:
			recs = append(recs, recPHQ9Severe)
		}
	}

	if gad7 != nil {
		switch s := *gad7; {
		case s <= 4:
			recs = append(recs, recGAD7Minimal)
		case s <= 9:
			recs = append(recs, recGAD7Mild)
		case s <= 14:
			recs = append(recs, recGAD7Moderate)
		default:
			recs = append(recs, recGAD7Severe)
		}
	}

	if trend.Overall == TrendDeclining {
		recs = append(recs, recDeclining)
	}

	if len(recs) == 0 {
		recs = append(recs, recNoData)
	}
	return recs
}
