package fhir_dto

import "strconv"

const ResourceTypeQuestionnaireResponse = "QuestionnaireResponse"

type QuestionnaireResponse struct {
	ResourceType  string                      `json:"resourceType" validate:"required,eq=QuestionnaireResponse"`
	ID            string                      `json:"id,omitempty"`
	Status        string                      `json:"status"`
	Questionnaire string                      `json:"questionnaire,omitempty"`
	Subject       *Reference                  `json:"subject,omitempty"`
	Authored      string                      `json:"authored,omitempty"`
	Item          []QuestionnaireResponseItem `json:"item" validate:"required"`
}

type QuestionnaireResponseItem struct {
	LinkID string                            `json:"linkId"`
	Text   string                            `json:"text,omitempty"`
	Answer []QuestionnaireResponseItemAnswer `json:"answer,omitempty"`
	Item   []QuestionnaireResponseItem       `json:"item,omitempty"`
}

type QuestionnaireResponseItemAnswer struct {
	ValueInteger *int64   `json:"valueInteger,omitempty"`
	ValueDecimal *float64 `json:"valueDecimal,omitempty"`
	ValueString  *string  `json:"valueString,omitempty"`
	ValueCoding  *Coding  `json:"valueCoding,omitempty"`
	ValueBoolean *bool    `json:"valueBoolean,omitempty"`

	Item []QuestionnaireResponseItem `json:"item,omitempty"`
}

type Reference struct {
	Reference string `json:"reference,omitempty"`
	Display   string `json:"display,omitempty"`
}

type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

// Answers flattens the item tree into linkId -> first answer value. Items
// without an answer are left out so they count as missing. The first
// answered occurrence of a linkId wins, whatever its answer type.
func (qr *QuestionnaireResponse) Answers() map[string]interface{} {
	answers := make(map[string]interface{})
	collectAnswers(qr.Item, answers)
	return answers
}

func collectAnswers(items []QuestionnaireResponseItem, answers map[string]interface{}) {
	for _, item := range items {
		if _, seen := answers[item.LinkID]; !seen && item.LinkID != "" && len(item.Answer) > 0 {
			answers[item.LinkID] = item.Answer[0].value()
		}
		collectAnswers(item.Item, answers)
		for _, answer := range item.Answer {
			collectAnswers(answer.Item, answers)
		}
	}
}

// value returns the answer in the loosest form scoring can judge: numbers as
// float64, numeric coding codes parsed, anything else passed through so a
// referenced question is reported as non-numeric. Answer types without a
// field here (valueDate, valueQuantity, ...) come back as the answer itself.
func (a QuestionnaireResponseItemAnswer) value() interface{} {
	switch {
	case a.ValueInteger != nil:
		return float64(*a.ValueInteger)
	case a.ValueDecimal != nil:
		return *a.ValueDecimal
	case a.ValueCoding != nil:
		if code, err := strconv.ParseFloat(a.ValueCoding.Code, 64); err == nil {
			return code
		}
		return a.ValueCoding.Code
	case a.ValueString != nil:
		return *a.ValueString
	case a.ValueBoolean != nil:
		return *a.ValueBoolean
	default:
		return a
	}
}
