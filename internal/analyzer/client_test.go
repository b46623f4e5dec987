package analyzer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAICompleterSendsFixedParameters(t *testing.T) {
	var got map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("authorization header: got %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"REPORT"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c, err := NewOpenAICompleter("sk-test", srv.URL+"/v1", DefaultParams("ft:legal"))
	if err != nil {
		t.Fatalf("NewOpenAICompleter: %v", err)
	}

	result, err := c.Complete(context.Background(), "PROMPT")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if result != "REPORT" {
		t.Errorf("result: got %q", result)
	}

	if got["model"] != "ft:legal" {
		t.Errorf("model: got %v", got["model"])
	}
	if got["temperature"] != float64(1) || got["top_p"] != float64(1) || got["max_tokens"] != float64(2048) {
		t.Errorf("sampling params: got temperature=%v top_p=%v max_tokens=%v", got["temperature"], got["top_p"], got["max_tokens"])
	}
	msgs, _ := got["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("messages: got %v", got["messages"])
	}
	msg := msgs[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "PROMPT" {
		t.Errorf("message: got %v", msg)
	}
}

func TestOpenAICompleterSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer srv.Close()

	c, err := NewOpenAICompleter("sk-bad", srv.URL+"/v1", DefaultParams("ft:legal"))
	if err != nil {
		t.Fatalf("NewOpenAICompleter: %v", err)
	}

	_, err = c.Complete(context.Background(), "PROMPT")
	if err == nil {
		t.Fatal("expected error")
	}
	if kind := Classify(err).Kind; kind != KindCredential {
		t.Errorf("kind: got %q, want %q", kind, KindCredential)
	}
}
