package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	url, err := ValidateURL("https://example.com/recipe")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/recipe", url)

	url, err = ValidateURL("  http://example.com ")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", url)

	for _, bad := range []string{"", "not a url", "ftp://example.com", "/relative/path", "example.com"} {
		_, err := ValidateURL(bad)
		require.Error(t, err, "url %q", bad)
		assert.Equal(t, ErrCodeInvalidURL, ErrorCode(err))
	}
}

func TestHostname(t *testing.T) {
	assert.Equal(t, "example.com", Hostname("https://example.com/x"))
	assert.Equal(t, "www.example.com", Hostname("https://www.example.com"))
	assert.Equal(t, "", Hostname("not a url"))
}

func TestParseJSONRejectsTrailingData(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, ParseJSON(`{"a": 1}`, &v))
	assert.Error(t, ParseJSON(`{"a": 1} trailing`, &v))
}

func TestParseJSONStrict(t *testing.T) {
	type shape struct {
		Name string `json:"name"`
	}
	var s shape
	require.NoError(t, ParseJSONStrict(`{"name": "x"}`, &s))
	assert.Error(t, ParseJSONStrict(`{"name": "x", "extra": true}`, &s))
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, ExtractJSONObject(`prose before {"a": 1} prose after`))
	assert.Equal(t, "no object", ExtractJSONObject(" no object "))
	assert.Equal(t, "} backwards {", ExtractJSONObject("} backwards {"))
}

func TestCustomErrorWrapping(t *testing.T) {
	cause := errors.New("socket closed")
	err := ErrFetchError.WithErr(cause)

	assert.Equal(t, ErrCodeFetchError, ErrorCode(err))
	assert.Equal(t, http.StatusBadGateway, ErrorStatus(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "socket closed", err.Error())

	// the shared sentinel is untouched
	assert.Nil(t, ErrFetchError.Err)

	plain := errors.New("plain")
	assert.Equal(t, ErrCodeInternalError, ErrorCode(plain))
	assert.Equal(t, http.StatusInternalServerError, ErrorStatus(plain))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("bad field")
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(errors.New("other")))
}

func TestIngredientHasMeasurement(t *testing.T) {
	assert.True(t, Ingredient{Amount: 2, Unit: "cups"}.HasMeasurement())
	assert.False(t, Ingredient{Amount: 0, Unit: UnitToTaste}.HasMeasurement())
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, IsValidCategory(c))
	}
	assert.False(t, IsValidCategory("Vegetables"))
	assert.False(t, IsValidCategory(""))
}
