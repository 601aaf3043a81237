package exceptions

import (
	"errors"
	"testing"

	"koos-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestBuildNewCustomError(t *testing.T) {
	cause := errors.New("boom")
	err := ErrQuestionnaireNotFound(cause, "womac")

	assert.Equal(t, constvars.StatusNotFound, err.StatusCode)
	assert.Equal(t, constvars.ErrClientQuestionnaireNotFound, err.ClientMessage)
	assert.Equal(t, "questionnaire womac is not in the catalog: boom", err.DevMessage)
	assert.ErrorIs(t, err, cause)
	assert.NotZero(t, err.Location.Line)
}

func TestBuildNewCustomError_WithoutCause(t *testing.T) {
	err := ErrInvalidAPIKey(nil)

	assert.Equal(t, constvars.StatusUnauthorized, err.StatusCode)
	assert.Equal(t, constvars.ErrDevInvalidAPIKey, err.DevMessage)
	assert.Nil(t, errors.Unwrap(err))
}

func TestFormatFirstValidationError(t *testing.T) {
	type request struct {
		Responses map[string]interface{} `validate:"required,min=1"`
	}
	validate := validator.New()

	t.Run("required", func(t *testing.T) {
		err := validate.Struct(request{})
		assert.Equal(t, "responses is required", FormatFirstValidationError(err))
	})

	t.Run("with param", func(t *testing.T) {
		err := validate.Struct(request{Responses: map[string]interface{}{}})
		assert.Equal(t, "responses must contain at least 1 entries", FormatFirstValidationError(err))
	})

	t.Run("not a validation error", func(t *testing.T) {
		assert.Equal(t, constvars.ErrDevInvalidInput, FormatFirstValidationError(errors.New("x")))
	})

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, constvars.ErrClientCannotProcessRequest, FormatFirstValidationError(nil))
	})
}
