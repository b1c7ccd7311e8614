package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusAccepted, map[string]int{"n": 1})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, ContentTypeJSON, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}

type unencodable struct{}

func (unencodable) MarshalJSON() ([]byte, error) { return nil, errors.New("nope") }

func TestJSONEncodeFailure(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusCreated, unencodable{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"internal server error"}`, rec.Body.String())
}

func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		name   string
		write  func(http.ResponseWriter)
		status int
		msg    string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "bad") }, http.StatusBadRequest, "bad"},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "who") }, http.StatusUnauthorized, "who"},
		{"too large", func(w http.ResponseWriter) { TooLarge(w, "big") }, http.StatusRequestEntityTooLarge, "big"},
		{"internal", InternalError, http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.write(rec)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, `{"success":false,"error":"`+tc.msg+`"}`, rec.Body.String())
		})
	}
}

func TestRaw(t *testing.T) {
	rec := httptest.NewRecorder()

	Raw(rec, http.StatusCreated, "text/plain", []byte("hi"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "2", rec.Header().Get("Content-Length"))
	assert.Equal(t, "hi", rec.Body.String())
}
