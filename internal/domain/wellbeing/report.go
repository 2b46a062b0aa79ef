package wellbeing

import (
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/wellbeing/pkg/util"
)

// NoDataMessage is reported when a user has no composite scores in the window.
const NoDataMessage = "No data available for this user"

// WeeklyRisk is the three-bucket risk used by reports. It differs from RiskLevel on purpose.
type WeeklyRisk string

const (
	WeeklyRiskLow     WeeklyRisk = "Low"
	WeeklyRiskMedium  WeeklyRisk = "Medium"
	WeeklyRiskHigh    WeeklyRisk = "High"
	WeeklyRiskUnknown WeeklyRisk = "Unknown"
)

// Indicator is a symbolic status colour.
type Indicator string

const (
	IndicatorGreen  Indicator = "green"
	IndicatorYellow Indicator = "yellow"
	IndicatorRed    Indicator = "red"
	IndicatorGray   Indicator = "gray"
)

// WeeklyReport aggregates a window of composite scores. It is computed on demand.
type WeeklyReport struct {
	UserID          uuid.UUID       `json:"userId"`
	Available       bool            `json:"available"`
	Message         string          `json:"message,omitempty"`
	GeneratedAt     time.Time       `json:"generatedAt"`
	ReportPeriod    ReportPeriod    `json:"reportPeriod"`
	WeeklyAverages  WeeklyAverages  `json:"weeklyAverages"`
	RiskLevel       RiskSummary     `json:"riskLevel"`
	Trends          Trend           `json:"trends"`
	Clinical        Clinical        `json:"clinical"`
	Recommendations []string        `json:"recommendations"`
	DataQuality     DataQuality     `json:"dataQuality"`
	DailyScores     []DailySnapshot `json:"dailyScores"`
}

// ReportPeriod describes the window covered by the report.
type ReportPeriod struct {
	From          string `json:"from"`
	To            string `json:"to"`
	DaysRequested int    `json:"daysRequested"`
	DaysAvailable int    `json:"daysAvailable"`
}

// WeeklyAverages are nil when no row carried the field.
type WeeklyAverages struct {
	Mood      *float64 `json:"mood"`
	Stress    *float64 `json:"stress"`
	Sleep     *float64 `json:"sleep"`
	Sentiment *float64 `json:"sentiment"`
	Composite *float64 `json:"composite"`
}

// RiskSummary pairs the weekly risk bucket with its indicator.
type RiskSummary struct {
	Level     WeeklyRisk `json:"level"`
	Indicator Indicator  `json:"indicator"`
}

// Clinical holds screening proxies estimated from weekly averages.
type Clinical struct {
	PHQ9         *int   `json:"phq9"`
	GAD7         *int   `json:"gad7"`
	PHQ9Severity string `json:"phq9Severity"`
	GAD7Severity string `json:"gad7Severity"`
}

// DataQuality counts how complete the window is.
type DataQuality struct {
	DaysWithData int          `json:"daysWithData"`
	Completeness Completeness `json:"completeness"`
}

// Completeness counts rows carrying each field.
type Completeness struct {
	Mood      int `json:"mood"`
	Stress    int `json:"stress"`
	Sleep     int `json:"sleep"`
	Sentiment int `json:"sentiment"`
}

// DailySnapshot is one row of the daily breakdown.
type DailySnapshot struct {
	Date      string    `json:"date"`
	Mood      *float64  `json:"mood"`
	Stress    *float64  `json:"stress"`
	Sleep     *float64  `json:"sleep"`
	Sentiment *float64  `json:"sentiment"`
	Composite int       `json:"composite"`
	RiskLevel RiskLevel `json:"riskLevel"`
}

// BuildReport aggregates newest-first composite rows into a report. At most days rows are used.
// An empty window yields a report with Available=false rather than an error.
func BuildReport(userID uuid.UUID, days int, rows []CompositeScore, now time.Time) WeeklyReport {
	if days > 0 && len(rows) > days {
		rows = rows[:days]
	}
	report := WeeklyReport{
		UserID:      userID,
		GeneratedAt: now.UTC(),
		ReportPeriod: ReportPeriod{
			DaysRequested: days,
			DaysAvailable: len(rows),
		},
	}
	if len(rows) == 0 {
		report.Message = NoDataMessage
		report.RiskLevel = WeeklyRiskLevel(nil)
		report.Trends = Trend{Overall: TrendStable, Arrow: ArrowRight}
		report.Clinical = Clinical{PHQ9Severity: SeverityNoData, GAD7Severity: SeverityNoData}
		return report
	}
	report.Available = true
	report.ReportPeriod.From = util.FormatDate(rows[len(rows)-1].CalculatedAt)
	report.ReportPeriod.To = util.FormatDate(rows[0].CalculatedAt)

	var (
		mood      = make([]*float64, 0, len(rows))
		stress    = make([]*float64, 0, len(rows))
		sleep     = make([]*float64, 0, len(rows))
		sentiment = make([]*float64, 0, len(rows))
		composite = make([]*float64, 0, len(rows))
		daily     = make([]DailySnapshot, 0, len(rows))
	)
	for _, row := range rows {
		c := float64(row.CompositeScore)
		mood = append(mood, row.MoodAvg)
		stress = append(stress, row.StressAvg)
		sleep = append(sleep, row.SleepAvg)
		sentiment = append(sentiment, row.SentimentAvg)
		composite = append(composite, &c)
		daily = append(daily, DailySnapshot{
			Date:      util.FormatDate(row.CalculatedAt),
			Mood:      row.MoodAvg,
			Stress:    row.StressAvg,
			Sleep:     row.SleepAvg,
			Sentiment: row.SentimentAvg,
			Composite: row.CompositeScore,
			RiskLevel: row.RiskLevel,
		})
	}

	report.WeeklyAverages = WeeklyAverages{
		Mood:      roundedMean(mood),
		Stress:    roundedMean(stress),
		Sleep:     roundedMean(sleep),
		Sentiment: roundedMean(sentiment),
		Composite: roundedMean(composite),
	}
	report.RiskLevel = WeeklyRiskLevel(report.WeeklyAverages.Composite)
	report.Trends = AnalyzeTrend(composite)

	phq9 := EstimatePHQ9(report.WeeklyAverages.Mood)
	gad7 := EstimateGAD7(report.WeeklyAverages.Stress)
	report.Clinical = Clinical{
		PHQ9:         phq9,
		GAD7:         gad7,
		PHQ9Severity: PHQ9Severity(phq9),
		GAD7Severity: GAD7Severity(gad7),
	}
	report.Recommendations = GenerateRecommendations(phq9, gad7, report.Trends)
	report.DataQuality = DataQuality{
		DaysWithData: len(rows),
		Completeness: Completeness{
			Mood:      countPresent(mood),
			Stress:    countPresent(stress),
			Sleep:     countPresent(sleep),
			Sentiment: countPresent(sentiment),
		},
	}
	report.DailyScores = daily
	return report
}

// WeeklyRiskLevel buckets a weekly composite average: >=70 Low, >=40 Medium, else High.
func WeeklyRiskLevel(composite *float64) RiskSummary {
	if composite == nil {
		return RiskSummary{Level: WeeklyRiskUnknown, Indicator: IndicatorGray}
	}
	switch c := *composite; {
	case c >= 70:
		return RiskSummary{Level: WeeklyRiskLow, Indicator: IndicatorGreen}
	case c >= 40:
		return RiskSummary{Level: WeeklyRiskMedium, Indicator: IndicatorYellow}
	default:
		return RiskSummary{Level: WeeklyRiskHigh, Indicator: IndicatorRed}
	}
}

func roundedMean(values []*float64) *float64 {
	avg := meanOf(values)
	if avg == nil {
		return nil
	}
	rounded := roundOneDecimal(*avg)
	return &rounded
}

func countPresent(values []*float64) int {
	count := 0
	for _, v := range values {
		if v != nil {
			count++
		}
	}
	return count
}
