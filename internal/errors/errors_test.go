package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "[INPUT_ERROR] team size", Input("team size").Error())

	err := Parsing("decoding usage", fmt.Errorf("line 3: bad indent"))
	assert.Equal(t, "[PARSING_ERROR] decoding usage: line 3: bad indent", err.Error())

	assert.Equal(t, "[NOT_FOUND] plan not found: gold", NotFound("plan", "gold").Error())
}

func TestIsTypeFollowsWrapping(t *testing.T) {
	base := Catalog("tariff has 1 validation errors")
	wrapped := fmt.Errorf("loading tariff: %w", base)

	assert.True(t, IsType(wrapped, TypeCatalog))
	assert.False(t, IsType(wrapped, TypeInput))
	assert.False(t, IsType(stderrors.New("plain"), TypeCatalog))
	assert.True(t, base.Is(TypeCatalog))
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Config("writing config", cause)

	assert.ErrorIs(t, err, cause)
}

func TestWithContext(t *testing.T) {
	err := Inputf("bad field %s", "x").WithContext("field", "x").WithContext("rule", "gte")

	assert.Equal(t, map[string]any{"field": "x", "rule": "gte"}, err.Context)
	assert.Equal(t, TypeInput, err.Type)
}
