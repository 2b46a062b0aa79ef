package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yanqian/wellbeing/internal/domain/intervention"
	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
	"github.com/yanqian/wellbeing/pkg/util"
)

type scoreOutput struct {
	Composite     int                         `json:"composite"`
	RiskLevel     wellbeing.RiskLevel         `json:"riskLevel"`
	PHQ9          *int                        `json:"phq9"`
	PHQ9Severity  string                      `json:"phq9Severity"`
	GAD7          *int                        `json:"gad7"`
	GAD7Severity  string                      `json:"gad7Severity"`
	Interventions []intervention.Intervention `json:"interventions"`
}

func newScoreCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a single check-in and list the interventions it would trigger",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(v)
			if err != nil {
				return err
			}
			now := util.NowUTC()
			signal := wellbeing.DailySignal{UserID: uuid.New(), EntryDate: util.FormatDate(now)}
			if v.IsSet("mood") {
				mood := v.GetInt("mood")
				signal.Mood = &mood
			}
			if v.IsSet("stress") {
				stress := v.GetInt("stress")
				signal.StressLevel = &stress
			}
			if v.IsSet("sleep") {
				sleep := v.GetFloat64("sleep")
				signal.SleepHours = &sleep
			}
			if err := signal.Validate(); err != nil {
				return err
			}

			score := wellbeing.ScoreSignal(signal, now)
			out := scoreOutput{
				Composite:     score.CompositeScore,
				RiskLevel:     score.RiskLevel,
				PHQ9:          score.PHQ9Score,
				PHQ9Severity:  wellbeing.PHQ9Severity(score.PHQ9Score),
				GAD7:          score.GAD7Score,
				GAD7Severity:  wellbeing.GAD7Severity(score.GAD7Score),
				Interventions: intervention.Evaluate(signal.UserID, now, score.PHQ9Score, score.GAD7Score),
			}
			return writeScore(cmd.OutOrStdout(), out, format)
		},
	}
	cmd.Flags().Int("mood", 0, "Mood rating 1-10")
	cmd.Flags().Int("stress", 0, "Stress level 1-10")
	cmd.Flags().Float64("sleep", 0, "Hours slept")
	_ = v.BindPFlag("mood", cmd.Flags().Lookup("mood"))
	_ = v.BindPFlag("stress", cmd.Flags().Lookup("stress"))
	_ = v.BindPFlag("sleep", cmd.Flags().Lookup("sleep"))
	return cmd
}

func writeScore(w io.Writer, out scoreOutput, format string) error {
	if out.Interventions == nil {
		out.Interventions = []intervention.Intervention{}
	}
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	fmt.Fprintf(w, "Composite: %d (%s)\n", out.Composite, out.RiskLevel)
	fmt.Fprintf(w, "PHQ-9:     %s (%s)\n", optionalInt(out.PHQ9), out.PHQ9Severity)
	fmt.Fprintf(w, "GAD-7:     %s (%s)\n", optionalInt(out.GAD7), out.GAD7Severity)
	if len(out.Interventions) == 0 {
		_, err := fmt.Fprintln(w, "Interventions: none")
		return err
	}
	fmt.Fprintln(w, "Interventions:")
	for _, item := range out.Interventions {
		fmt.Fprintf(w, "  [%s] %s: %s\n", item.Severity, item.ActionType, item.InterventionText)
	}
	return nil
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
