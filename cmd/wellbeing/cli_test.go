package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
	apperrors "github.com/yanqian/wellbeing/pkg/errors"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeRows(t *testing.T, rows []wellbeing.CompositeScore) string {
	t.Helper()
	data, err := json.Marshal(rows)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "rows.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestReportCommandText(t *testing.T) {
	userID := uuid.New()
	mood := 8.0
	base := time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)
	path := writeRows(t, []wellbeing.CompositeScore{
		{UserID: userID, EntryDate: "2024-06-13", MoodAvg: &mood, CompositeScore: 70, RiskLevel: wellbeing.RiskMedium, CalculatedAt: base.Add(-24 * time.Hour)},
		{UserID: userID, EntryDate: "2024-06-14", MoodAvg: &mood, CompositeScore: 60, RiskLevel: wellbeing.RiskMedium, CalculatedAt: base},
		{UserID: userID, EntryDate: "2024-06-14", MoodAvg: &mood, CompositeScore: 80, RiskLevel: wellbeing.RiskLow, CalculatedAt: base.Add(time.Hour)},
	})

	out, err := runCLI(t, "report", "--input", path, "--no-color")
	require.NoError(t, err)
	require.Contains(t, out, userID.String())
	require.Contains(t, out, "2 of 7 days")
	require.Contains(t, out, "🟢")
}

func TestReportCommandJSON(t *testing.T) {
	userID := uuid.New()
	path := writeRows(t, []wellbeing.CompositeScore{
		{UserID: userID, EntryDate: "2024-06-14", CompositeScore: 35, RiskLevel: wellbeing.RiskHigh, CalculatedAt: time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)},
	})

	out, err := runCLI(t, "report", "--input", path, "--user", userID.String(), "--days", "3", "--format", "json")
	require.NoError(t, err)

	var report wellbeing.WeeklyReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.True(t, report.Available)
	require.Equal(t, 3, report.ReportPeriod.DaysRequested)
	require.Equal(t, wellbeing.WeeklyRiskHigh, report.RiskLevel.Level)
}

func TestReportCommandNoData(t *testing.T) {
	path := writeRows(t, []wellbeing.CompositeScore{})

	out, err := runCLI(t, "report", "--input", path, "--user", uuid.NewString())
	require.NoError(t, err)
	require.Equal(t, wellbeing.NoDataMessage+"\n", out)
}

func TestReportCommandErrors(t *testing.T) {
	_, err := runCLI(t, "report")
	require.Error(t, err)

	path := writeRows(t, nil)
	_, err = runCLI(t, "report", "--input", path, "--format", "yaml", "--user", uuid.NewString())
	require.Error(t, err)
}

func TestScoreCommand(t *testing.T) {
	out, err := runCLI(t, "score", "--mood", "2", "--stress", "9", "--sleep", "4")
	require.NoError(t, err)
	require.Contains(t, out, "Composite: 27 (critical)")
	require.Contains(t, out, "PHQ-9:     24")
	require.Contains(t, out, "GAD-7:     19")
	require.Contains(t, out, "[high] consultation")
}

func TestScoreCommandDefaultsAndValidation(t *testing.T) {
	out, err := runCLI(t, "score", "--format", "json")
	require.NoError(t, err)
	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, 63, got.Composite)
	require.Nil(t, got.PHQ9)
	require.Empty(t, got.Interventions)

	_, err = runCLI(t, "score", "--mood", "12")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}
