package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/vschema"
	"github.com/reoring/vschema/middleware"
)

var userSchema = vschema.Object{"id": vschema.ID(), "tags": vschema.Array{vschema.Type[string]()}}

func serve(t *testing.T, body string) (*httptest.ResponseRecorder, any) {
	t.Helper()
	var got any
	h := middleware.ValidateJSON(userSchema)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := middleware.ValueFromContext(r.Context())
		require.True(t, ok)
		got = v
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body)))
	return rec, got
}

func TestValidateJSON_Valid(t *testing.T) {
	rec, got := serve(t, `{"id": "3", "tags": ["x"]}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, map[string]any{"id": 3, "tags": []any{"x"}}, got)
}

func TestValidateJSON_Invalid(t *testing.T) {
	rec, got := serve(t, `{"id": "-1", "tags": ["x", 2]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, got)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var payload struct {
		Issues []vschema.Issue `json:"issues"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Issues, 2)
	assert.Equal(t, "body.id", payload.Issues[0].Path)
	assert.Equal(t, "body.tags[1]", payload.Issues[1].Path)
}

func TestValidateJSON_DuplicateKeysAreRejectedByDefault(t *testing.T) {
	rec, _ := serve(t, `{"id": 1, "id": 2, "tags": []}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload["error"], "duplicate keys at /id")
}

func TestValidateBody_CustomOpt(t *testing.T) {
	v, err := middleware.ValidateBody(strings.NewReader(`{"id": 1, "id": 2, "tags": []}`), userSchema, middleware.Opt{Name: "req"})
	require.NoError(t, err)
	assert.Equal(t, 2, v.(map[string]any)["id"])
}

func TestValidateBody_NonZeroOptIsUsedAsIs(t *testing.T) {
	body := `{"id": 1, "id": 2, "tags": []}`
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := middleware.ValidateBody(strings.NewReader(body), userSchema, middleware.Opt{Logger: log})
	require.NoError(t, err)

	opt := middleware.DefaultOpt()
	opt.Logger = log
	_, err = middleware.ValidateBody(strings.NewReader(body), userSchema, opt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate keys at /id")
}

func TestContextValue(t *testing.T) {
	_, ok := middleware.ValueFromContext(context.Background())
	assert.False(t, ok)

	v, ok := middleware.ValueFromContext(middleware.ContextWithValue(context.Background(), nil))
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestErrorPayload(t *testing.T) {
	iss := vschema.Issues{{Path: ".a", Code: vschema.CodeCustom}}
	assert.Equal(t, map[string]any{"issues": iss}, middleware.ErrorPayload(iss))
	assert.Equal(t, map[string]any{"error": "boom"}, middleware.ErrorPayload(assertErr("boom")))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
