package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	var v struct{ Name string }
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Name":"x"}`))
	require.NoError(t, DecodeJSON(r, 64, &v))
	assert.Equal(t, "x", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Name":"`+strings.Repeat("a", 100)+`"}`))
	assert.ErrorIs(t, DecodeJSON(r, 64, &v), ErrBodyTooLarge)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("  "))
	assert.Error(t, DecodeJSON(r, 64, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"Name":`))
	err := DecodeJSON(r, 64, &v)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBodyTooLarge)
}

func TestQueryHelpers(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/?limit=9&bad=-2&f1=YES&f2=off&f3=maybe", nil)
	assert.Equal(t, 9, QueryInt(r, "limit", 6))
	assert.Equal(t, 6, QueryInt(r, "bad", 6))
	assert.Equal(t, 6, QueryInt(r, "missing", 6))

	require.NotNil(t, QueryBool(r, "f1"))
	assert.True(t, *QueryBool(r, "f1"))
	require.NotNil(t, QueryBool(r, "f2"))
	assert.False(t, *QueryBool(r, "f2"))
	assert.Nil(t, QueryBool(r, "f3"))
	assert.Nil(t, QueryBool(r, "missing"))
}

func TestWriteErrorEnvelope(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	rec := httptest.NewRecorder()
	WriteError(ctx, rec, NewError("invalid_json", "bad\x00 body", http.StatusBadRequest).
		WithDetails(map[string]any{"field": "name", "success": true}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"error":"invalid_json","message":"bad body","request_id":"req-1","field":"name"}`, rec.Body.String())
}
