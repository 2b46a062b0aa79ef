package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
	"github.com/yanqian/wellbeing/internal/interface/render"
	"github.com/yanqian/wellbeing/pkg/util"
)

func newReportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build a weekly report from a JSON file of composite score rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(v)
			if err != nil {
				return err
			}
			rows, err := loadRows(v.GetString("input"))
			if err != nil {
				return err
			}
			userID, err := resolveUser(v.GetString("user"), rows)
			if err != nil {
				return err
			}
			days := v.GetInt("days")
			if days < 1 {
				return fmt.Errorf("days must be positive, got %d", days)
			}
			report := wellbeing.BuildReport(userID, days, latestPerDate(rows, userID), util.NowUTC())
			return writeReport(cmd.OutOrStdout(), report, format, !v.GetBool("no-color"))
		},
	}
	cmd.Flags().String("input", "", "Path to a JSON array of composite rows (- for stdin)")
	cmd.Flags().String("user", "", "User id to report on (defaults to the first row's user)")
	cmd.Flags().Int("days", 7, "Number of most recent days to include")
	_ = v.BindPFlag("input", cmd.Flags().Lookup("input"))
	_ = v.BindPFlag("user", cmd.Flags().Lookup("user"))
	_ = v.BindPFlag("days", cmd.Flags().Lookup("days"))
	return cmd
}

func loadRows(path string) ([]wellbeing.CompositeScore, error) {
	if path == "" {
		return nil, errors.New("--input is required")
	}
	var reader io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer file.Close()
		reader = file
	}
	var rows []wellbeing.CompositeScore
	if err := json.NewDecoder(reader).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	return rows, nil
}

func resolveUser(raw string, rows []wellbeing.CompositeScore) (uuid.UUID, error) {
	if raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid --user: %w", err)
		}
		return userID, nil
	}
	if len(rows) == 0 {
		return uuid.Nil, errors.New("--user is required when the input is empty")
	}
	return rows[0].UserID, nil
}

// latestPerDate mirrors the store query: one row per entry date, the latest calculation wins,
// newest date first.
func latestPerDate(rows []wellbeing.CompositeScore, userID uuid.UUID) []wellbeing.CompositeScore {
	latest := make(map[string]wellbeing.CompositeScore)
	for _, row := range rows {
		if row.UserID != userID {
			continue
		}
		if current, ok := latest[row.EntryDate]; !ok || !row.CalculatedAt.Before(current.CalculatedAt) {
			latest[row.EntryDate] = row
		}
	}
	out := make([]wellbeing.CompositeScore, 0, len(latest))
	for _, row := range latest {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EntryDate > out[j].EntryDate
	})
	return out
}

func writeReport(w io.Writer, report wellbeing.WeeklyReport, format string, color bool) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return render.Text(w, report, render.Options{Color: color})
}
