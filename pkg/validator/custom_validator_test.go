package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Text      string `binding:"not_blank"`
	Languages string `binding:"bcp47"`
}

func TestCustomRules(t *testing.T) {
	cv := NewCustomValidator()
	require.NoError(t, Register(cv.Engine().(*validator.Validate)))

	assert.NoError(t, cv.ValidateStruct(&sample{Text: "hi", Languages: "ta-IN, hi-IN"}))
	assert.NoError(t, cv.ValidateStruct(sample{Text: "hi"}))
	assert.Error(t, cv.ValidateStruct(&sample{Text: "   "}))
	assert.Error(t, cv.ValidateStruct(&sample{Text: "hi", Languages: "ta-IN,??"}))
}

func TestValidateStruct_NonStruct(t *testing.T) {
	cv := NewCustomValidator()
	assert.NoError(t, cv.ValidateStruct(nil))
	assert.NoError(t, cv.ValidateStruct(3))
	var p *sample
	assert.NoError(t, cv.ValidateStruct(p))
}
