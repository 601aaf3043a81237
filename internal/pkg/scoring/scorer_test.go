package scoring

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func koosConfig() *Config {
	return &Config{
		Name: "KOOS",
		Sections: []Section{
			{Name: "Symptoms", Questions: []string{"S1", "S2", "S3", "S4", "S5", "S6", "S7"}},
			{Name: "Pain", Questions: []string{"P1", "P2", "P3", "P4", "P5", "P6", "P7", "P8", "P9"}},
			{Name: "Quality of Life", Questions: []string{"Q1", "Q2", "Q3", "Q4"}},
		},
		Interpretation: Bands{
			{Low: 0, High: 25, Description: "Severe problems"},
			{Low: 26, High: 50, Description: "Moderate problems"},
			{Low: 51, High: 75, Description: "Mild problems"},
			{Low: 76, High: 100, Description: "No problems"},
		},
	}
}

type recordingLogger struct {
	infos, warns, errors []string
}

func (l *recordingLogger) Info(msg string, _ ...interface{})  { l.infos = append(l.infos, msg) }
func (l *recordingLogger) Warn(msg string, _ ...interface{})  { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Error(msg string, _ ...interface{}) { l.errors = append(l.errors, msg) }

func TestCompute_WorkedExample(t *testing.T) {
	config := &Config{
		Name: "KOOS",
		Sections: []Section{
			{Name: "pain", Questions: []string{"p1", "p2"}},
			{Name: "symptoms", Questions: []string{"s1"}},
		},
		Interpretation: Bands{{Low: 0, High: 100, Description: "any"}},
	}

	report, err := NewScorer(nil).Compute(config, Responses{"p1": 2, "p2": 2, "s1": 0})
	require.NoError(t, err)

	require.Len(t, report.Sections, 2)
	assert.Equal(t, "pain", report.Sections[0].Name)
	assert.InDelta(t, 50, report.Sections[0].Score, 1e-9)
	assert.Equal(t, "symptoms", report.Sections[1].Name)
	assert.InDelta(t, 100, report.Sections[1].Score, 1e-9)
	assert.InDelta(t, 75, report.TotalScore, 1e-9)
	assert.Equal(t, "KOOS", report.QuestionnaireName)
	assert.Equal(t, "any", report.Interpretation)
}

func TestCompute_ConstantAnswers(t *testing.T) {
	config := koosConfig()
	for v := 0; v <= MaxResponseValue; v++ {
		t.Run("value "+string(rune('0'+v)), func(t *testing.T) {
			responses := Responses{}
			for id := range config.QuestionIDs() {
				responses[id] = float64(v)
			}

			report, err := NewScorer(nil).Compute(config, responses)
			require.NoError(t, err)

			expected := 100 - 25*float64(v)
			require.Len(t, report.Sections, len(config.Sections))
			for _, section := range report.Sections {
				assert.InDelta(t, expected, section.Score, 1e-9, section.Name)
			}
			assert.InDelta(t, expected, report.TotalScore, 1e-9)
		})
	}
}

func TestCompute_NoResponses(t *testing.T) {
	logger := &recordingLogger{}

	for name, responses := range map[string]Responses{
		"nil":       nil,
		"empty":     {},
		"unrelated": {"X1": 3, "unknown": 1},
	} {
		t.Run(name, func(t *testing.T) {
			report, err := NewScorer(logger).Compute(koosConfig(), responses)
			require.NoError(t, err)

			assert.Equal(t, "KOOS", report.QuestionnaireName)
			assert.NotNil(t, report.Sections)
			assert.Empty(t, report.Sections)
			assert.Equal(t, float64(0), report.TotalScore)
			assert.Equal(t, NoValidResponsesInterpretation, report.Interpretation)
		})
	}
	assert.Len(t, logger.warns, 3)
}

func TestCompute_SingleAnsweredSection(t *testing.T) {
	report, err := NewScorer(nil).Compute(koosConfig(), Responses{"P1": 1, "P4": 3})
	require.NoError(t, err)

	require.Len(t, report.Sections, 1)
	assert.Equal(t, "Pain", report.Sections[0].Name)
	assert.InDelta(t, 50, report.Sections[0].Score, 1e-9)
	assert.Equal(t, report.Sections[0].Score, report.TotalScore)
	assert.Equal(t, "Moderate problems", report.Interpretation)
}

func TestCompute_MissingAnswersAreSkipped(t *testing.T) {
	// only one of seven symptom questions answered: mean over answered only
	report, err := NewScorer(nil).Compute(koosConfig(), Responses{"S3": 4})
	require.NoError(t, err)

	require.Len(t, report.Sections, 1)
	assert.InDelta(t, 0, report.Sections[0].Score, 1e-9)
	assert.Equal(t, "Severe problems", report.Sections[0].Interpretation)
}

func TestCompute_UnknownIdentifiersIgnored(t *testing.T) {
	base := Responses{"S1": 1, "P2": 2, "Q1": 0}
	withNoise := Responses{"S1": 1, "P2": 2, "Q1": 0, "Z9": 4, "s1": 4, "": 3}

	expected, err := NewScorer(nil).Compute(koosConfig(), base)
	require.NoError(t, err)
	actual, err := NewScorer(nil).Compute(koosConfig(), withNoise)
	require.NoError(t, err)

	assert.Equal(t, expected, actual)
}

func TestCompute_SectionOrderFollowsConfig(t *testing.T) {
	config := koosConfig()
	config.Sections[0], config.Sections[2] = config.Sections[2], config.Sections[0]

	report, err := NewScorer(nil).Compute(config, Responses{"S1": 0, "P1": 0, "Q1": 0})
	require.NoError(t, err)

	names := make([]string, 0, len(report.Sections))
	for _, section := range report.Sections {
		names = append(names, section.Name)
	}
	assert.Equal(t, []string{"Quality of Life", "Pain", "Symptoms"}, names)
}

func TestCompute_ValuesOutsideScaleAreNotRejected(t *testing.T) {
	report, err := NewScorer(nil).Compute(koosConfig(), Responses{"Q1": 8})
	require.NoError(t, err)

	assert.InDelta(t, -100, report.TotalScore, 1e-9)
	assert.Equal(t, UnknownInterpretation, report.Interpretation)
}

func TestCompute_DoesNotMutateInputs(t *testing.T) {
	config := koosConfig()
	responses := Responses{"S1": 2, "X": 1}

	_, err := NewScorer(nil).Compute(config, responses)
	require.NoError(t, err)

	assert.Equal(t, koosConfig(), config)
	assert.Equal(t, Responses{"S1": 2, "X": 1}, responses)
}

func TestCompute_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{name: "nil config", config: nil},
		{name: "missing name", config: &Config{Sections: []Section{}, Interpretation: Bands{}}},
		{name: "missing sections", config: &Config{Name: "KOOS", Interpretation: Bands{}}},
		{name: "missing interpretation", config: &Config{Name: "KOOS", Sections: []Section{}}},
		{name: "unnamed section", config: &Config{Name: "KOOS", Sections: []Section{{Questions: []string{"S1"}}}, Interpretation: Bands{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			report, err := NewScorer(logger).Compute(tt.config, Responses{"S1": 1})

			assert.Nil(t, report)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrScoringFailed))
			assert.True(t, IsConfiguration(err))
			assert.False(t, IsComputation(err))
			assert.Len(t, logger.errors, 1)
		})
	}
}

func TestCompute_NonFiniteValues(t *testing.T) {
	for name, value := range map[string]float64{
		"nan":      math.NaN(),
		"inf":      math.Inf(1),
		"neg inf":  math.Inf(-1),
		"overflow": math.MaxFloat64,
	} {
		t.Run(name, func(t *testing.T) {
			responses := Responses{"S1": value}
			if name == "overflow" {
				responses["S2"] = value
			}

			report, err := NewScorer(nil).Compute(koosConfig(), responses)

			assert.Nil(t, report)
			require.Error(t, err)
			assert.True(t, IsComputation(err))
			assert.Contains(t, err.Error(), "Symptoms")
		})
	}
}

func TestCompute_EmptyBandTable(t *testing.T) {
	config := koosConfig()
	config.Interpretation = Bands{}

	report, err := NewScorer(nil).Compute(config, Responses{"S1": 0})
	require.NoError(t, err)

	assert.Equal(t, UnknownInterpretation, report.Interpretation)
	assert.Equal(t, UnknownInterpretation, report.Sections[0].Interpretation)
}

func TestInterpret(t *testing.T) {
	overlapping := Bands{
		{Low: 0, High: 50, Description: "A"},
		{Low: 40, High: 100, Description: "B"},
	}

	tests := []struct {
		name     string
		bands    Bands
		score    float64
		expected string
	}{
		{name: "first match wins on overlap", bands: overlapping, score: 45, expected: "A"},
		{name: "second band outside overlap", bands: overlapping, score: 60, expected: "B"},
		{name: "inclusive low bound", bands: overlapping, score: 0, expected: "A"},
		{name: "inclusive high bound", bands: overlapping, score: 100, expected: "B"},
		{name: "above all bands", bands: overlapping, score: 100.5, expected: UnknownInterpretation},
		{name: "gap between koos bands", bands: koosConfig().Interpretation, score: 25.5, expected: UnknownInterpretation},
		{name: "koos mild", bands: koosConfig().Interpretation, score: 62.5, expected: "Mild problems"},
		{name: "no bands", bands: nil, score: 10, expected: UnknownInterpretation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.bands.Interpret(tt.score))
			assert.Equal(t, tt.expected, Interpret(tt.bands, tt.score))
		})
	}
}

func TestDecodeResponses(t *testing.T) {
	config := koosConfig()

	t.Run("numeric kinds", func(t *testing.T) {
		responses, err := DecodeResponses(config, map[string]interface{}{
			"S1": float64(1),
			"S2": 2,
			"S3": int64(3),
			"P1": json.Number("4"),
			"Q1": float32(0.5),
		})
		require.NoError(t, err)

		assert.Equal(t, Responses{"S1": 1, "S2": 2, "S3": 3, "P1": 4, "Q1": 0.5}, responses)
	})

	t.Run("unreferenced values dropped whatever their type", func(t *testing.T) {
		responses, err := DecodeResponses(config, map[string]interface{}{
			"S1":      1,
			"comment": "knee hurts",
			"flags":   map[string]interface{}{"a": true},
		})
		require.NoError(t, err)

		assert.Equal(t, Responses{"S1": 1}, responses)
	})

	t.Run("non-numeric referenced value", func(t *testing.T) {
		for name, value := range map[string]interface{}{
			"string": "2",
			"bool":   true,
			"nil":    nil,
			"object": map[string]interface{}{},
			"number": json.Number("two"),
		} {
			t.Run(name, func(t *testing.T) {
				responses, err := DecodeResponses(config, map[string]interface{}{"S1": 1, "P2": value})

				assert.Nil(t, responses)
				require.Error(t, err)
				assert.True(t, IsComputation(err))
				assert.Contains(t, err.Error(), `"P2"`)
			})
		}
	})

	t.Run("bad config", func(t *testing.T) {
		_, err := DecodeResponses(nil, map[string]interface{}{"S1": 1})
		assert.True(t, IsConfiguration(err))
	})
}
