package schemas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"writer-server/internal/models"
	"writer-server/internal/schemas"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("plain object", func(t *testing.T) {
		got, err := schemas.ExtractJSONObject(`{"name":"Anna"}`)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Anna"}`, got)
	})

	t.Run("object inside markdown fences", func(t *testing.T) {
		raw := "```json\n{\"name\":\"Anna\"}\n```"
		got, err := schemas.ExtractJSONObject(raw)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Anna"}`, got)
	})

	t.Run("object with conversational preamble", func(t *testing.T) {
		raw := "Sure! Here is the character you asked for:\n{\"name\":\"Anna\"}\nHope that helps."
		got, err := schemas.ExtractJSONObject(raw)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Anna"}`, got)
	})

	t.Run("no object at all", func(t *testing.T) {
		_, err := schemas.ExtractJSONObject("I cannot produce JSON right now.")
		assert.ErrorIs(t, err, schemas.ErrNoJSONObject)
	})

	t.Run("closing brace before opening", func(t *testing.T) {
		_, err := schemas.ExtractJSONObject("} oops {")
		assert.ErrorIs(t, err, schemas.ErrNoJSONObject)
	})
}

func TestValidateCharacter(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		payload, canonical, err := schemas.ValidateCharacter(`{"name":"Anna","description":"a scientist","personality":"curious","background":"orphan","notes":null}`)
		require.NoError(t, err)
		assert.Equal(t, "Anna", payload.Name)
		require.NotNil(t, payload.Description)
		assert.Equal(t, "a scientist", *payload.Description)
		assert.Nil(t, payload.Notes)
		assert.JSONEq(t, `{"name":"Anna","description":"a scientist","personality":"curious","background":"orphan"}`, canonical)
	})

	t.Run("name only", func(t *testing.T) {
		payload, _, err := schemas.ValidateCharacter(`{"name":"Boris"}`)
		require.NoError(t, err)
		assert.Equal(t, "Boris", payload.Name)
	})

	t.Run("missing name", func(t *testing.T) {
		_, _, err := schemas.ValidateCharacter(`{"description":"nameless"}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, _, err := schemas.ValidateCharacter(`{"name":`)
		assert.Error(t, err)
	})
}

func TestValidateScript(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		payload, canonical, err := schemas.ValidateScript(`{"title":"Act I","content":"FADE IN...","analysis":"slow burn opening"}`)
		require.NoError(t, err)
		assert.Equal(t, "Act I", payload.Title)
		assert.Equal(t, "FADE IN...", payload.Content)
		assert.JSONEq(t, `{"title":"Act I","content":"FADE IN...","analysis":"slow burn opening"}`, canonical)
	})

	t.Run("missing title", func(t *testing.T) {
		_, _, err := schemas.ValidateScript(`{"content":"text"}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")
	})

	t.Run("missing content", func(t *testing.T) {
		_, _, err := schemas.ValidateScript(`{"title":"Act I"}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content")
	})
}

func TestValidateStructured(t *testing.T) {
	t.Run("character generation with fences", func(t *testing.T) {
		raw := "```json\n{\"name\":\"Anna\"}\n```"
		canonical, err := schemas.ValidateStructured(models.GenerationTypeCharacterGeneration, raw)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Anna"}`, canonical)
	})

	t.Run("wizard script", func(t *testing.T) {
		canonical, err := schemas.ValidateStructured(models.GenerationTypeWizardScript, `{"title":"T","content":"C"}`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"T","content":"C"}`, canonical)
	})

	t.Run("unstructured type has no schema", func(t *testing.T) {
		_, err := schemas.ValidateStructured(models.GenerationTypeDefault, `{"foo":1}`)
		assert.Error(t, err)
	})
}
