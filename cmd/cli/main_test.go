package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"koos-service/internal/pkg/scoring"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ee *exitErr
	require.True(t, errors.As(err, &ee), "expected exitErr, got %v", err)
	return ee.code
}

func TestScore_FromStdin(t *testing.T) {
	stdout, _, err := execute(t, `{"responses": {"S1": 0, "S2": 0, "P1": 2, "P2": 2, "extra": "ignored"}}`, "score")
	require.NoError(t, err)

	var report scoring.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, "KOOS", report.QuestionnaireName)
	assert.Equal(t, 75.0, report.TotalScore)
	assert.Equal(t, "Mild problems", report.Interpretation)
	require.Len(t, report.Sections, 2)
	assert.Equal(t, scoring.SectionScore{Name: "Symptoms", Score: 100, Interpretation: "No problems"}, report.Sections[0])
	assert.Equal(t, scoring.SectionScore{Name: "Pain", Score: 50, Interpretation: "Moderate problems"}, report.Sections[1])
}

func TestScore_BareObjectFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "responses.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"P1": 4}`), 0o600))

	stdout, _, err := execute(t, "", "score", "--questionnaire", "KOOS", "--responses", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"total_score": 0`)
	assert.Contains(t, stdout, `"Severe problems"`)
}

func TestScore_FHIRResource(t *testing.T) {
	stdin := `{"resourceType":"QuestionnaireResponse","item":[{"linkId":"P1","answer":[{"valueCoding":{"code":"2"}}]}]}`
	stdout, _, err := execute(t, stdin, "score")
	require.NoError(t, err)

	var report scoring.Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Sections, 1)
	assert.Equal(t, "Pain", report.Sections[0].Name)
	assert.Equal(t, 50.0, report.TotalScore)
}

func TestScore_NoResponses(t *testing.T) {
	stdout, _, err := execute(t, `{}`, "score")
	require.NoError(t, err)
	assert.Contains(t, stdout, scoring.NoValidResponsesInterpretation)
}

func TestScore_VerboseLogsSteps(t *testing.T) {
	_, stderr, err := execute(t, `{"S1": 1}`, "score", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Scoring questionnaire")
	assert.Contains(t, stderr, "command=score")
}

func TestScore_CustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
mini:
  name: Mini
  sections:
    Only: [Q1]
  interpretation:
    0-100: Any
`), 0o600))

	stdout, _, err := execute(t, `{"Q1": 2}`, "score", "-q", "mini", "--catalog", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"interpretation": "Any"`)
}

func TestScore_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  int
	}{
		{name: "unknown questionnaire", stdin: `{}`, args: []string{"score", "-q", "womac"}, code: exitInvalidInput},
		{name: "malformed json", stdin: `{`, args: []string{"score"}, code: exitInvalidInput},
		{name: "responses not an object", stdin: `{"responses": [1]}`, args: []string{"score"}, code: exitInvalidInput},
		{name: "non-numeric answer", stdin: `{"S1": "two"}`, args: []string{"score"}, code: exitScoreFailure},
		{name: "missing catalog file", stdin: `{}`, args: []string{"score", "--catalog", "/does/not/exist.yaml"}, code: exitLoadFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCode(t, err))
		})
	}
}

func TestQuestionnaires(t *testing.T) {
	stdout, _, err := execute(t, "", "questionnaires")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "hoos\t"))
	assert.True(t, strings.HasPrefix(lines[1], "koos\tKOOS\tSymptoms, Pain, Daily Living, Sports, Quality of Life"))
}
