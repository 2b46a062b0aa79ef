package wellbeing

// TrendDirection classifies how the composite score moved across a window.
type TrendDirection string

const (
	TrendImproving TrendDirection = "Improving"
	TrendDeclining TrendDirection = "Declining"
	TrendStable    TrendDirection = "Stable"
)

// TrendArrow is the symbolic arrow for a trend; the render layer maps it to a glyph.
type TrendArrow string

const (
	ArrowUp    TrendArrow = "arrow_up"
	ArrowDown  TrendArrow = "arrow_down"
	ArrowRight TrendArrow = "arrow_right"
)

const trendTolerance = 5

// Trend is the analyzer output.
type Trend struct {
	Overall TrendDirection `json:"overall"`
	Arrow   TrendArrow     `json:"arrow"`
}

// AnalyzeTrend splits newest-first scores at len/2 and compares the older half's mean
// against the newer half's mean. An older mean more than 5 points above the newer mean
// reads as Improving, more than 5 below as Declining. Recent days scoring lower than
// earlier ones therefore report Improving.
func AnalyzeTrend(scores []*float64) Trend {
	half := len(scores) / 2
	avgFirst := meanOf(scores[:half])
	avgSecond := meanOf(scores[half:])
	if avgFirst == nil || avgSecond == nil {
		return Trend{Overall: TrendStable, Arrow: ArrowRight}
	}
	switch {
	case *avgSecond > *avgFirst+trendTolerance:
		return Trend{Overall: TrendImproving, Arrow: ArrowUp}
	case *avgSecond < *avgFirst-trendTolerance:
		return Trend{Overall: TrendDeclining, Arrow: ArrowDown}
	default:
		return Trend{Overall: TrendStable, Arrow: ArrowRight}
	}
}

func meanOf(values []*float64) *float64 {
	var (
		sum   float64
		count int
	)
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		count++
	}
	if count == 0 {
		return nil
	}
	avg := sum / float64(count)
	return &avg
}
