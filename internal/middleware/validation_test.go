package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "hklcompare/internal/errors"
	"hklcompare/internal/shared/testutil"
)

type compareBody struct {
	File1    string  `json:"file1" validate:"required,datafile"`
	Symmetry string  `json:"symmetry" validate:"omitempty,symmetry"`
	Cutoff   float64 `json:"sigma_cutoff" validate:"gte=0"`
}

func TestValidator_DecodeJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  string
		wantField string
	}{
		{name: "valid", body: `{"file1":"a/b.hkl","symmetry":"mmm","sigma_cutoff":1}`},
		{name: "empty body", body: "", wantCode: "INVALID_REQUEST"},
		{name: "malformed", body: `{"file1":`, wantCode: "INVALID_REQUEST"},
		{name: "unknown field", body: `{"file1":"a.hkl","extra":1}`, wantCode: "INVALID_REQUEST"},
		{name: "missing file", body: `{}`, wantCode: "VALIDATION_FAILED", wantField: "file1"},
		{name: "traversal", body: `{"file1":"../x.hkl"}`, wantCode: "VALIDATION_FAILED", wantField: "file1"},
		{name: "absolute", body: `{"file1":"/etc/x.hkl"}`, wantCode: "VALIDATION_FAILED", wantField: "file1"},
		{name: "bad extension", body: `{"file1":"x.txt"}`, wantCode: "VALIDATION_FAILED", wantField: "file1"},
		{name: "bad symmetry", body: `{"file1":"x.fco","symmetry":"p1"}`, wantCode: "VALIDATION_FAILED", wantField: "symmetry"},
		{name: "negative cutoff", body: `{"file1":"x.fco","sigma_cutoff":-1}`, wantCode: "VALIDATION_FAILED", wantField: "sigma_cutoff"},
	}

	logger, _ := testutil.NewTestLogger(t)
	v := NewValidator(logger)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst compareBody
			err := v.DecodeJSON(req, &dst)

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, "a/b.hkl", dst.File1)
				return
			}

			var apiErr *apierrors.APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
			if tt.wantField != "" {
				details, ok := apiErr.Details.(apierrors.ValidationErrors)
				require.True(t, ok)
				require.NotEmpty(t, details.Errors)
				assert.Equal(t, tt.wantField, details.Errors[0].Field)
			}
		})
	}
}

func TestValidator_DecodeJSON_TooLarge(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	v := NewValidator(logger)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"file1":"`+strings.Repeat("a", 64)+`.hkl"}`))
	req.Body = http.MaxBytesReader(rec, req.Body, 16)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, v.DecodeJSON(req, &compareBody{}), &apiErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
}

func TestQueryParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?bins=50&cutoff=2.5&ratio=spread&bad=x", nil)

	n, err := QueryInt(req, "bins", 1, 1000, 400)
	require.NoError(t, err)
	assert.Equal(t, 50, n)

	n, err = QueryInt(req, "missing", 1, 1000, 400)
	require.NoError(t, err)
	assert.Equal(t, 400, n)

	_, err = QueryInt(req, "bins", 100, 1000, 400)
	assert.Error(t, err)

	_, err = QueryInt(req, "bad", 0, 10, 0)
	assert.Error(t, err)

	f, err := QueryFloat(req, "cutoff", 0, 100, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	_, err = QueryFloat(req, "bad", 0, 1, 0)
	assert.Error(t, err)

	s, err := QueryEnum(req, "ratio", []string{"sigma", "spread"}, "sigma")
	require.NoError(t, err)
	assert.Equal(t, "spread", s)

	_, err = QueryEnum(req, "bad", []string{"sigma"}, "sigma")
	assert.Error(t, err)
}

func TestContentTypeValidator(t *testing.T) {
	h := ContentTypeValidator("application/json")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	tests := []struct {
		method, contentType string
		want                int
	}{
		{http.MethodGet, "", http.StatusAccepted},
		{http.MethodPost, "application/json; charset=utf-8", http.StatusAccepted},
		{http.MethodPost, "text/plain", http.StatusUnsupportedMediaType},
		{http.MethodPost, "", http.StatusUnsupportedMediaType},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, "/", nil)
		if tt.contentType != "" {
			req.Header.Set("Content-Type", tt.contentType)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tt.want, rec.Code, "%s %q", tt.method, tt.contentType)
	}
}
