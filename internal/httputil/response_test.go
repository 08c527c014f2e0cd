package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorWithExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusForbidden, "insufficient role", map[string]interface{}{
		"redirect": "/viewer",
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/viewer", body["redirect"])
	assert.Equal(t, "Forbidden", body["title"])
	assert.Equal(t, "insufficient role", body["detail"])
	assert.EqualValues(t, 403, body["status"])
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(rec, http.StatusCreated, map[string]string{"id": "p1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"p1"}`, rec.Body.String())
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"page=3", 3},
		{"page=0", 1},
		{"page=-2", 1},
		{"page=abc", 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			assert.Equal(t, tt.want, QueryInt(r, "page", 1))
		})
	}
}

func TestProblemExtrasCannotOverrideStandardMembers(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusConflict, "already exists", map[string]interface{}{
		"status":        200,
		"resource_type": "item",
	})

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 409, body["status"])
	assert.Equal(t, "item", body["resource_type"])
	assert.Equal(t, ProblemType(http.StatusConflict), body["type"])
}

func TestProblemType(t *testing.T) {
	assert.Contains(t, ProblemType(http.StatusBadGateway), "section-15.6.3")
	assert.Equal(t, "about:blank", ProblemType(http.StatusTeapot))
}

func TestRespondAccepted(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondAccepted(rec, "/api/exports/j-1", map[string]string{"id": "j-1"})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "/api/exports/j-1", rec.Header().Get("Location"))
	assert.JSONEq(t, `{"id":"j-1"}`, rec.Body.String())
}
