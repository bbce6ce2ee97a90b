package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var ctx = context.Background()

// fakeGemini serves canned generateContent responses and records the last
// request body.
type fakeGemini struct {
	server   *httptest.Server
	lastBody []byte
	lastPath string
	lastKey  string
	respond  func(w http.ResponseWriter)
}

func newFakeGemini(t *testing.T, text string) *fakeGemini {
	t.Helper()
	f := &fakeGemini{}
	f.respond = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.lastBody = body
		f.lastPath = r.URL.Path
		f.lastKey = r.Header.Get("x-goog-api-key")
		f.respond(w)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGemini) client() *Client {
	return New("test-key", WithBaseURL(f.server.URL))
}

func TestSummarize(t *testing.T) {
	fake := newFakeGemini(t, "- point one\n- point two")
	c := fake.client()

	got, err := c.Summarize(ctx, "a long document")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "- point one\n- point two" {
		t.Errorf("summary = %q", got)
	}

	if !strings.Contains(fake.lastPath, "gemini-2.5-flash:generateContent") {
		t.Errorf("path = %q, want the generateContent endpoint", fake.lastPath)
	}
	if fake.lastKey != "test-key" {
		t.Errorf("api key header = %q, want test-key", fake.lastKey)
	}
	if !strings.Contains(string(fake.lastBody), "a long document") {
		t.Error("request body should carry the input text")
	}
}

func TestSummarize_Disabled(t *testing.T) {
	c := New("")

	got, err := c.Summarize(ctx, "anything")
	if err != nil {
		t.Fatalf("Summarize with no key: %v", err)
	}
	if got != DisabledMessage {
		t.Errorf("summary = %q, want DisabledMessage", got)
	}
}

func TestScheduleTask(t *testing.T) {
	fake := newFakeGemini(t, `{"task":"Call mom","dueDate":"2025-06-02T10:00"}`)
	c := fake.client()

	st, err := c.ScheduleTask(ctx, "remind me to call mom tomorrow at 10")
	if err != nil {
		t.Fatalf("ScheduleTask: %v", err)
	}
	if st.Task != "Call mom" || st.DueDate != "2025-06-02T10:00" {
		t.Errorf("scheduled = %+v", st)
	}

	// The request must constrain the response to the JSON schema.
	var req struct {
		GenerationConfig struct {
			ResponseMimeType string `json:"responseMimeType"`
			ResponseSchema   struct {
				Required []string `json:"required"`
			} `json:"responseSchema"`
		} `json:"generationConfig"`
	}
	if err := json.Unmarshal(fake.lastBody, &req); err != nil {
		t.Fatalf("parsing recorded request: %v", err)
	}
	if req.GenerationConfig.ResponseMimeType != "application/json" {
		t.Errorf("responseMimeType = %q, want application/json", req.GenerationConfig.ResponseMimeType)
	}
	if len(req.GenerationConfig.ResponseSchema.Required) != 2 {
		t.Errorf("schema required = %v, want task and dueDate", req.GenerationConfig.ResponseSchema.Required)
	}
}

func TestScheduleTask_Disabled(t *testing.T) {
	c := New("")

	_, err := c.ScheduleTask(ctx, "anything")
	if !errors.Is(err, ErrDisabled) {
		t.Errorf("err = %v, want ErrDisabled", err)
	}
}

func TestScheduleTask_MalformedModelOutput(t *testing.T) {
	fake := newFakeGemini(t, "sorry, I cannot do that")
	c := fake.client()

	if _, err := c.ScheduleTask(ctx, "anything"); err == nil {
		t.Fatal("expected error for non-JSON model output")
	}
}

func TestScheduleTask_EmptyTask(t *testing.T) {
	fake := newFakeGemini(t, `{"task":"","dueDate":"2025-06-02T10:00"}`)
	c := fake.client()

	if _, err := c.ScheduleTask(ctx, "anything"); err == nil {
		t.Fatal("expected error for empty task")
	}
}

func TestGenerate_APIError(t *testing.T) {
	fake := newFakeGemini(t, "")
	fake.respond = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid"}}`))
	}
	c := fake.client()

	_, err := c.Summarize(ctx, "anything")
	if err == nil {
		t.Fatal("expected error for API failure")
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Errorf("err = %v, want the API message surfaced", err)
	}
}

func TestGenerate_EmptyCandidates(t *testing.T) {
	fake := newFakeGemini(t, "")
	fake.respond = func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}
	c := fake.client()

	if _, err := c.Summarize(ctx, "anything"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestTranscribe_Disabled(t *testing.T) {
	c := New("")

	got, err := c.Transcribe(ctx, "data:audio/webm;base64,AAAA")
	if err != nil {
		t.Fatalf("Transcribe with no key: %v", err)
	}
	if !strings.Contains(got, "disabled") {
		t.Errorf("transcript = %q, want a disabled notice", got)
	}
}

func TestTranscribe_CancelledContext(t *testing.T) {
	c := New("test-key")

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Transcribe(cancelled, "data:audio/webm;base64,AAAA"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestGenerateDocumentation(t *testing.T) {
	fake := newFakeGemini(t, "# Project Summary\nAll good.")
	c := fake.client()

	got, err := c.GenerateDocumentation(ctx, "Launch", "## Notes\nkickoff", "Project Summary")
	if err != nil {
		t.Fatalf("GenerateDocumentation: %v", err)
	}
	if !strings.HasPrefix(got, "# Project Summary") {
		t.Errorf("doc = %q", got)
	}
	if !strings.Contains(string(fake.lastBody), "kickoff") {
		t.Error("request body should carry the project material")
	}
}

func TestWithModel(t *testing.T) {
	fake := newFakeGemini(t, "ok")
	c := New("test-key", WithBaseURL(fake.server.URL), WithModel("gemini-2.5-pro"))

	if _, err := c.Summarize(ctx, "x"); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !strings.Contains(fake.lastPath, "gemini-2.5-pro:generateContent") {
		t.Errorf("path = %q, want the overridden model", fake.lastPath)
	}

	// Empty model name keeps the default.
	c2 := New("test-key", WithBaseURL(fake.server.URL), WithModel(""))
	if _, err := c2.Summarize(ctx, "x"); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !strings.Contains(fake.lastPath, "gemini-2.5-flash:generateContent") {
		t.Errorf("path = %q, want the default model", fake.lastPath)
	}
}
