package scoring

import (
	"math"
	"strconv"
)

type Scorer struct {
	log Logger
}

func NewScorer(log Logger) *Scorer {
	if log == nil {
		log = NopLogger{}
	}
	return &Scorer{log: log}
}

// Compute scores responses against config. It returns either a complete
// report or a *Error, never both.
func (s *Scorer) Compute(config *Config, responses Responses) (*Report, error) {
	if err := checkConfig(config); err != nil {
		s.log.Error("Questionnaire configuration rejected", "error", err.Error())
		return nil, err
	}

	s.log.Info("Scoring questionnaire",
		"questionnaire", config.Name,
		"sections", len(config.Sections),
		"bands", len(config.Interpretation),
		"responses", len(responses),
	)

	sections := make([]SectionScore, 0, len(config.Sections))
	for _, section := range config.Sections {
		values := collect(section.Questions, responses)
		s.log.Info("Collected section responses",
			"questionnaire", config.Name,
			"section", section.Name,
			"valid_responses", values,
		)
		if len(values) == 0 {
			continue
		}

		score, err := sectionScore(values)
		if err != nil {
			err.Questionnaire = config.Name
			err.Message = "section " + section.Name + ": " + err.Message
			s.log.Error("Section score could not be computed", "error", err.Error())
			return nil, err
		}
		sections = append(sections, SectionScore{
			Name:           section.Name,
			Score:          score,
			Interpretation: config.Interpretation.Interpret(score),
		})
	}

	if len(sections) == 0 {
		s.log.Warn("No valid subscale scores calculated", "questionnaire", config.Name)
		return &Report{
			QuestionnaireName: config.Name,
			Sections:          []SectionScore{},
			TotalScore:        0,
			Interpretation:    NoValidResponsesInterpretation,
		}, nil
	}

	var sum float64
	for _, section := range sections {
		sum += section.Score
	}
	total := sum / float64(len(sections))

	report := &Report{
		QuestionnaireName: config.Name,
		Sections:          sections,
		TotalScore:        total,
		Interpretation:    config.Interpretation.Interpret(total),
	}
	s.log.Info("Questionnaire scored",
		"questionnaire", config.Name,
		"scored_sections", len(sections),
		"total_score", report.TotalScore,
		"interpretation", report.Interpretation,
	)
	return report, nil
}

// Interpret returns the description of the first band containing score.
// Bands may overlap; the earliest declared band wins.
func (b Bands) Interpret(score float64) string {
	for _, band := range b {
		if band.Low <= score && score <= band.High {
			return band.Description
		}
	}
	return UnknownInterpretation
}

// Interpret is Bands.Interpret for callers holding a plain slice.
func Interpret(bands []Band, score float64) string {
	return Bands(bands).Interpret(score)
}

func checkConfig(config *Config) *Error {
	switch {
	case config == nil:
		return configurationError("", "configuration is missing")
	case config.Name == "":
		return configurationError("", "name is missing")
	case config.Sections == nil:
		return configurationError(config.Name, "sections are missing")
	case config.Interpretation == nil:
		return configurationError(config.Name, "interpretation bands are missing")
	}
	for i, section := range config.Sections {
		if section.Name == "" {
			return configurationError(config.Name, "section at position "+strconv.Itoa(i)+" has no name")
		}
	}
	return nil
}

// collect keeps the values of answered questions in declared order.
// Unanswered questions are skipped, not treated as zero.
func collect(questions []string, responses Responses) []float64 {
	values := make([]float64, 0, len(questions))
	for _, id := range questions {
		if value, ok := responses[id]; ok {
			values = append(values, value)
		}
	}
	return values
}

// sectionScore inverts the raw severity onto a 0-100 scale, 100 being best.
func sectionScore(values []float64) (float64, *Error) {
	var severity float64
	for _, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, computationError("", "response value is not a finite number")
		}
		severity += value
	}

	score := 100 - (severity*100)/(MaxResponseValue*float64(len(values)))
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, computationError("", "score is not a finite number")
	}
	return score, nil
}
