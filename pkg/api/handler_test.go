package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"ideaforge-hq/ideaforge/pkg/gateway"
)

// stubClient returns a canned reply or error and records the prompts it
// was called with.
type stubClient struct {
	reply  string
	err    error
	calls  int
	system string
	user   string
}

func (s *stubClient) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls++
	s.system = system
	s.user = user
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

const oneIdeaReply = `{"ideas":[{"title":"Campus Fit","tagline":"fitness for students"}]}`

func validBody() string {
	return `{"domain":"fitness","audience":"students","difficulty":"beginner","mode":"hackathon"}`
}

func post(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/ideas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("body is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body["error"]
}

func TestIdeasHandler_Success(t *testing.T) {
	client := &stubClient{reply: oneIdeaReply}
	handler := NewIdeasHandler(client, nil)

	rec := post(t, handler, validBody())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var got map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}

	var want map[string]interface{}
	json.Unmarshal([]byte(oneIdeaReply), &want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reply was not returned verbatim:\ngot  %v\nwant %v", got, want)
	}

	if client.calls != 1 {
		t.Errorf("gateway called %d times", client.calls)
	}
	if !strings.Contains(client.user, "fitness") || !strings.Contains(client.user, "students") {
		t.Errorf("user prompt missing request fields: %s", client.user)
	}
}

func TestIdeasHandler_FencedReply(t *testing.T) {
	client := &stubClient{reply: "```json\n" + oneIdeaReply + "\n```"}
	handler := NewIdeasHandler(client, nil)

	rec := post(t, handler, validBody())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestIdeasHandler_EmptyBody(t *testing.T) {
	handler := NewIdeasHandler(&stubClient{reply: oneIdeaReply}, nil)

	rec := post(t, handler, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if decodeError(t, rec) != MsgInvalidBody {
		t.Errorf("error = %q", decodeError(t, rec))
	}
}

func TestIdeasHandler_MalformedBody(t *testing.T) {
	client := &stubClient{reply: oneIdeaReply}
	handler := NewIdeasHandler(client, nil)

	rec := post(t, handler, "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if client.calls != 0 {
		t.Error("gateway should not be called for a malformed body")
	}
}

func TestIdeasHandler_MissingDomain(t *testing.T) {
	client := &stubClient{reply: oneIdeaReply}
	handler := NewIdeasHandler(client, nil)

	rec := post(t, handler, `{"audience":"students","difficulty":"beginner","mode":"hackathon"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(decodeError(t, rec), "Missing required fields") {
		t.Errorf("error = %q", decodeError(t, rec))
	}
}

func TestIdeasHandler_InvalidDifficulty(t *testing.T) {
	handler := NewIdeasHandler(&stubClient{reply: oneIdeaReply}, nil)

	rec := post(t, handler, `{"domain":"fitness","audience":"students","difficulty":"expert","mode":"hackathon"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(decodeError(t, rec), "Invalid difficulty") {
		t.Errorf("error = %q", decodeError(t, rec))
	}
}

func TestIdeasHandler_GatewayRateLimited(t *testing.T) {
	handler := NewIdeasHandler(&stubClient{err: &gateway.RateLimitedError{}}, nil)

	rec := post(t, handler, validBody())
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if decodeError(t, rec) != MsgRateLimited {
		t.Errorf("error = %q", decodeError(t, rec))
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
}

func TestIdeasHandler_GatewayQuota(t *testing.T) {
	handler := NewIdeasHandler(&stubClient{err: &gateway.QuotaError{}}, nil)

	rec := post(t, handler, validBody())
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", rec.Code)
	}
	if decodeError(t, rec) != MsgQuotaExhausted {
		t.Errorf("error = %q", decodeError(t, rec))
	}
}

func TestIdeasHandler_GatewayUnavailable(t *testing.T) {
	handler := NewIdeasHandler(&stubClient{err: &gateway.UpstreamError{StatusCode: 503}}, nil)

	rec := post(t, handler, validBody())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if decodeError(t, rec) != MsgUnavailable {
		t.Errorf("error = %q", decodeError(t, rec))
	}
}

func TestIdeasHandler_UnrecoverableReply(t *testing.T) {
	handler := NewIdeasHandler(&stubClient{reply: "sorry, I cannot help with that"}, nil)

	rec := post(t, handler, validBody())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if decodeError(t, rec) != MsgRecoveryFailed {
		t.Errorf("error = %q", decodeError(t, rec))
	}
}

func TestIdeasHandler_NonPost(t *testing.T) {
	handler := NewIdeasHandler(&stubClient{reply: oneIdeaReply}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/ideas", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleError_UnknownErrorStaysGeneric(t *testing.T) {
	apiErr := HandleError(context.DeadlineExceeded)
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Message != MsgInternal {
		t.Errorf("message = %q", apiErr.Message)
	}
}
