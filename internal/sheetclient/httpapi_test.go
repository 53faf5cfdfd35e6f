package sheetclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-sheet/internal/httpapi"
	"exam-sheet/internal/sheet"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestDoJSONReturnsServiceUnavailable(t *testing.T) {
	client := NewHTTPClient("http://example.test", &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial error")
		}),
	})

	err := client.doJSON(context.Background(), http.MethodGet, "/sheet", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestDoJSONReturnsAPIErrorMessageFromBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "invalid option"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, server.Client())
	err := client.doJSON(context.Background(), http.MethodGet, "/anything", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid option", apiErr.Message)
}

func TestAPIErrorFallsBackToStatus(t *testing.T) {
	err := &APIError{StatusCode: http.StatusBadGateway}
	assert.Equal(t, "request failed with status 502", err.Error())
}

func TestNewHTTPClientNormalizesBaseURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:8080", NewHTTPClient("  ", nil).BaseURL())
	assert.Equal(t, "http://sheet.test", NewHTTPClient("http://sheet.test/", nil).BaseURL())
}

func TestSetAnswerSendsOption(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody answerRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(sheetResponse{QuestionCount: 20, OptionsPerQuestion: 4})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, server.Client())
	require.NoError(t, client.SetAnswer(context.Background(), 7, "b"))

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/sheet/answers/7", gotPath)
	assert.Equal(t, "b", gotBody.Option)
}

func TestClientAgainstRouter(t *testing.T) {
	s := sheet.New()
	server := httptest.NewServer(httpapi.NewRouter(s, httpapi.RouterOptions{}))
	defer server.Close()

	ctx := context.Background()
	client := NewHTTPClient(server.URL, server.Client())

	require.NoError(t, client.SetAnswer(ctx, 1, "a"))
	require.NoError(t, client.SetCorrectness(ctx, 1, true))
	require.NoError(t, client.SetCorrectness(ctx, 2, false))
	require.NoError(t, client.IncreaseQuestionCount(ctx))

	snapshot, err := client.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, snapshot.QuestionCount)
	assert.Equal(t, map[int]string{1: "A"}, snapshot.Answers)
	assert.Equal(t, map[int]bool{1: true, 2: false}, snapshot.Correctness)
	assert.Equal(t, s.Snapshot(), snapshot)

	err = client.SetAnswer(ctx, 30, "A")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, sheet.ErrQuestionOutOfRange.Error(), apiErr.Message)

	require.NoError(t, client.ClearCorrectness(ctx, 2))
	require.NoError(t, client.ClearAnswer(ctx, 1))
	require.NoError(t, client.DecreaseQuestionCount(ctx))
	require.NoError(t, client.SetOptionsPerQuestion(ctx, 3))

	snapshot, err = client.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, snapshot.QuestionCount)
	assert.Equal(t, 3, snapshot.OptionsPerQuestion)
	assert.Empty(t, snapshot.Answers)
	assert.Empty(t, snapshot.Correctness)

	require.NoError(t, client.SetAnswer(ctx, 2, "C"))
	var exported bytes.Buffer
	require.NoError(t, client.Export(ctx, &exported))

	var expected bytes.Buffer
	require.NoError(t, sheet.WriteExport(&expected, s.Snapshot()))
	assert.Equal(t, expected.String(), exported.String())

	require.NoError(t, client.ClearAll(ctx))
	assert.Empty(t, s.Snapshot().Answers)
}

func TestExportPropagatesAPIError(t *testing.T) {
	client := NewHTTPClient("http://example.test", &http.Client{
		Transport: roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusInternalServerError,
				Status:     "500 Internal Server Error",
				Body:       io.NopCloser(bytes.NewBufferString(`{"error":"sheet unavailable"}`)),
				Request:    r,
			}, nil
		}),
	})

	var out bytes.Buffer
	err := client.Export(context.Background(), &out)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "sheet unavailable", apiErr.Message)
	assert.Zero(t, out.Len())
}
