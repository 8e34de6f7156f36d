package code

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_WithDataDoesNotMutateRegistered(t *testing.T) {
	c := ErrorNoteNotFound.WithData(map[string]int{"id": 1})

	assert.True(t, c.HaveData())
	assert.False(t, ErrorNoteNotFound.HaveData())
	assert.Nil(t, ErrorNoteNotFound.Data())
}

func TestCode_IsMatchesCopies(t *testing.T) {
	var err error = ErrorCommandMissingID.WithDetails("no digits")

	assert.True(t, errors.Is(err, ErrorCommandMissingID))
	assert.False(t, errors.Is(err, ErrorNoteNotFound))
}

func TestCode_StatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, Success.StatusCode())
	assert.Equal(t, http.StatusBadRequest, ErrorUserEmailAlreadyExists.StatusCode())
	assert.Equal(t, http.StatusUnauthorized, ErrorInvalidUserAuthToken.StatusCode())
	assert.Equal(t, http.StatusNotFound, ErrorNoteNotFound.StatusCode())
	assert.Equal(t, http.StatusUnprocessableEntity, ErrorSpeechNotRecognized.StatusCode())
	assert.Equal(t, http.StatusServiceUnavailable, ErrorServiceUnavailable.StatusCode())
}

func TestNewError_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewError(ErrorNoteNotFound.Code(), http.StatusNotFound, lang{en: "dup"})
	})
}

func TestSetGlobalDefaultLang(t *testing.T) {
	t.Cleanup(func() { _ = SetGlobalDefaultLang("en") })

	require.NoError(t, SetGlobalDefaultLang("zh_cn"))
	assert.Equal(t, "笔记不存在", ErrorNoteNotFound.Msg())

	assert.Error(t, SetGlobalDefaultLang("fr"))
	assert.Equal(t, "Note not found", ErrorNoteNotFound.Msg())
}
