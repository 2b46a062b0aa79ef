package wellbeing

import (
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/wellbeing/internal/domain/intervention"
)

// RiskLevel is the per-day risk bucket persisted with each composite score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// DailySignal is the raw check-in for one user and calendar date. Any field may be absent.
type DailySignal struct {
	UserID          uuid.UUID `json:"userId"`
	EntryDate       string    `json:"entryDate"`
	Mood            *int      `json:"mood"`
	SleepHours      *float64  `json:"sleepHours"`
	StressLevel     *int      `json:"stressLevel"`
	SentimentScores []float64 `json:"sentimentScores,omitempty"`
}

// SentimentAvg averages however many sentiment analyses exist for the day.
func (d DailySignal) SentimentAvg() *float64 {
	if len(d.SentimentScores) == 0 {
		return nil
	}
	var sum float64
	for _, v := range d.SentimentScores {
		sum += v
	}
	avg := sum / float64(len(d.SentimentScores))
	return &avg
}

// SignalRequest is the ingress payload for a daily check-in.
type SignalRequest struct {
	Date            string    `json:"date"`
	Mood            *int      `json:"mood"`
	SleepHours      *float64  `json:"sleepHours"`
	StressLevel     *int      `json:"stressLevel"`
	SentimentScores []float64 `json:"sentimentScores"`
}

// CompositeScore is the derived, append-only daily wellbeing row.
type CompositeScore struct {
	ID             int64     `json:"id,omitempty"`
	UserID         uuid.UUID `json:"userId"`
	EntryDate      string    `json:"entryDate"`
	MoodAvg        *float64  `json:"moodAvg"`
	StressAvg      *float64  `json:"stressAvg"`
	SleepAvg       *float64  `json:"sleepAvg"`
	SentimentAvg   *float64  `json:"sentimentAvg"`
	CompositeScore int       `json:"compositeScore"`
	RiskLevel      RiskLevel `json:"riskLevel"`
	PHQ9Score      *int      `json:"phq9Score"`
	GAD7Score      *int      `json:"gad7Score"`
	CalculatedAt   time.Time `json:"calculatedAt"`
}

// DailyResult is returned by a daily calculation.
type DailyResult struct {
	Score         CompositeScore              `json:"score"`
	Interventions []intervention.Intervention `json:"interventions"`
}

// Config holds runtime knobs for the wellbeing service.
type Config struct {
	DefaultDays int
	MaxDays     int
	CacheTTL    time.Duration
}

// JobRecalculateDaily is the queue job that recomputes a day's composite score.
const JobRecalculateDaily = "recalculate_daily"
