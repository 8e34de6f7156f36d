package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/haierkeys/voice-note-service/internal/middleware"
	"github.com/haierkeys/voice-note-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.TraceIDKey, "trace-1")

	ErrorResponse(c, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestErrorResponse_Code(t *testing.T) {
	w, body := respond(t, code.ErrorNoteNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, float64(code.ErrorNoteNotFound.Code()), body["code"])
	assert.Equal(t, false, body["status"])
	assert.Equal(t, "trace-1", body["traceId"])
}

func TestErrorResponse_CodeWithData(t *testing.T) {
	w, body := respond(t, code.ErrorCommandMissingID.WithData(map[string]string{"action": "DELETE"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"action": "DELETE"}, body["data"])
}

func TestErrorResponse_Unknown(t *testing.T) {
	w, body := respond(t, errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, float64(code.ErrorServerInternal.Code()), body["code"])
	assert.NotContains(t, body["message"], "disk on fire")
}

func TestConvert_WrappedAppError(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	wrapped := NewAppError(code.ErrorServiceUnavailable, cause)

	got := Convert(wrapped)
	assert.Same(t, wrapped, got)
	assert.ErrorIs(t, got, cause)
	assert.Equal(t, http.StatusServiceUnavailable, got.StatusCode())
	assert.True(t, IsAppError(wrapped))
}
