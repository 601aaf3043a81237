package scoring

// MaxResponseValue is the highest answer a KOOS question accepts (0 = none,
// 4 = extreme). It is a property of the instrument, not of the data, so it is
// never derived from the responses being scored.
const MaxResponseValue = 4

const (
	NoValidResponsesInterpretation = "No valid responses received"
	UnknownInterpretation          = "Unable to interpret"
)

type (
	// Config describes one questionnaire. Sections and Interpretation are
	// ordered: reports follow section order and band lookup is first-match.
	Config struct {
		Name           string    `json:"name" bson:"name" validate:"required"`
		Sections       []Section `json:"sections" bson:"sections" validate:"dive"`
		Interpretation Bands     `json:"interpretation" bson:"interpretation" validate:"dive"`
	}

	Section struct {
		Name      string   `json:"name" bson:"name" validate:"required"`
		Questions []string `json:"questions" bson:"questions"`
	}

	// Band maps the inclusive range [Low, High] to a description.
	Band struct {
		Low         float64 `json:"low" bson:"low"`
		High        float64 `json:"high" bson:"high" validate:"gtefield=Low"`
		Description string  `json:"description" bson:"description"`
	}

	Bands []Band

	// Responses maps question identifiers to answered values.
	Responses map[string]float64

	SectionScore struct {
		Name           string  `json:"name"`
		Score          float64 `json:"score"`
		Interpretation string  `json:"interpretation"`
	}

	Report struct {
		QuestionnaireName string         `json:"questionnaire_name"`
		Sections          []SectionScore `json:"sections"`
		TotalScore        float64        `json:"total_score"`
		Interpretation    string         `json:"interpretation"`
	}
)

// QuestionIDs returns every identifier referenced by the configuration.
func (c *Config) QuestionIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, section := range c.Sections {
		for _, id := range section.Questions {
			ids[id] = struct{}{}
		}
	}
	return ids
}
