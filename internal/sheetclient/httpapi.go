package sheetclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"exam-sheet/internal/sheet"
)

var ErrServiceUnavailable = errors.New("sheet service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// HTTPClient drives a remote sheet-service.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

type sheetResponse struct {
	QuestionCount      int            `json:"question_count"`
	OptionsPerQuestion int            `json:"options_per_question"`
	Answers            map[int]string `json:"answers"`
	Correctness        map[int]bool   `json:"correctness"`
}

type answerRequest struct {
	Option string `json:"option"`
}

type correctnessRequest struct {
	Correct bool `json:"correct"`
}

type optionsRequest struct {
	OptionsPerQuestion int `json:"options_per_question"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Snapshot(ctx context.Context) (sheet.Snapshot, error) {
	return c.sheetCall(ctx, http.MethodGet, "/sheet", nil)
}

func (c *HTTPClient) SetAnswer(ctx context.Context, question int, option string) error {
	_, err := c.sheetCall(ctx, http.MethodPut, answerPath(question), answerRequest{Option: option})
	return err
}

func (c *HTTPClient) ClearAnswer(ctx context.Context, question int) error {
	_, err := c.sheetCall(ctx, http.MethodDelete, answerPath(question), nil)
	return err
}

func (c *HTTPClient) SetCorrectness(ctx context.Context, question int, isCorrect bool) error {
	_, err := c.sheetCall(ctx, http.MethodPut, correctnessPath(question), correctnessRequest{Correct: isCorrect})
	return err
}

func (c *HTTPClient) ClearCorrectness(ctx context.Context, question int) error {
	_, err := c.sheetCall(ctx, http.MethodDelete, correctnessPath(question), nil)
	return err
}

func (c *HTTPClient) IncreaseQuestionCount(ctx context.Context) error {
	_, err := c.sheetCall(ctx, http.MethodPost, "/sheet/questions/increase", nil)
	return err
}

func (c *HTTPClient) DecreaseQuestionCount(ctx context.Context) error {
	_, err := c.sheetCall(ctx, http.MethodPost, "/sheet/questions/decrease", nil)
	return err
}

func (c *HTTPClient) SetOptionsPerQuestion(ctx context.Context, n int) error {
	_, err := c.sheetCall(ctx, http.MethodPut, "/sheet/options", optionsRequest{OptionsPerQuestion: n})
	return err
}

func (c *HTTPClient) ClearAll(ctx context.Context) error {
	_, err := c.sheetCall(ctx, http.MethodDelete, "/sheet", nil)
	return err
}

// Export copies the server's export artifact to w unchanged.
func (c *HTTPClient) Export(ctx context.Context, w io.Writer) error {
	response, err := c.do(ctx, http.MethodGet, "/sheet/export", nil)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	_, err = io.Copy(w, response.Body)
	return err
}

func (c *HTTPClient) sheetCall(ctx context.Context, method, path string, requestBody any) (sheet.Snapshot, error) {
	var payload sheetResponse
	if err := c.doJSON(ctx, method, path, requestBody, &payload); err != nil {
		return sheet.Snapshot{}, err
	}

	snapshot := sheet.Snapshot{
		QuestionCount:      payload.QuestionCount,
		OptionsPerQuestion: payload.OptionsPerQuestion,
		Answers:            payload.Answers,
		Correctness:        payload.Correctness,
	}
	if snapshot.Answers == nil {
		snapshot.Answers = map[int]string{}
	}
	if snapshot.Correctness == nil {
		snapshot.Correctness = map[int]bool{}
	}
	return snapshot, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	response, err := c.do(ctx, method, path, requestBody)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}

// do sends the request and turns transport failures and non-2xx statuses into
// errors. On success the caller owns the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, requestBody any) (*http.Response, error) {
	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		defer response.Body.Close()
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return nil, &apiErr
	}

	return response, nil
}

func answerPath(question int) string {
	return "/sheet/answers/" + strconv.Itoa(question)
}

func correctnessPath(question int) string {
	return "/sheet/correctness/" + strconv.Itoa(question)
}
