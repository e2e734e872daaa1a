package llamacpp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T, reply string, seen *ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if seen != nil {
			if err := json.NewDecoder(r.Body).Decode(seen); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
}

func TestSimpleQuery(t *testing.T) {
	var seen ChatCompletionRequest
	srv := newTestServer(t, `{"choices":[{"index":0,"message":{"role":"assistant","content":"a portrait"}}]}`, &seen)
	defer srv.Close()

	c, err := NewClient(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.SimpleQuery(context.Background(), "llava", "describe", "aGVsbG8=")
	if err != nil {
		t.Fatalf("SimpleQuery failed: %v", err)
	}
	if got != "a portrait" {
		t.Errorf("got %q", got)
	}
	if seen.Model != "llava" || seen.ResponseFormat != nil {
		t.Errorf("unexpected request %+v", seen)
	}
	parts, ok := seen.Messages[0].Content.([]any)
	if !ok || len(parts) != 2 {
		t.Fatalf("expected text and image parts, got %#v", seen.Messages[0].Content)
	}
	img := parts[1].(map[string]any)["image_url"].(map[string]any)["url"].(string)
	if !strings.HasPrefix(img, "data:image/jpeg;base64,") {
		t.Errorf("unexpected image url %q", img)
	}
}

func TestJSONQuerySetsResponseFormat(t *testing.T) {
	var seen ChatCompletionRequest
	srv := newTestServer(t, `{"choices":[{"message":{"role":"assistant","content":[{"type":"text","text":"{\"subjects\":[]}"}]}}]}`, &seen)
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	got, err := c.JSONQuery(context.Background(), "m", "p", "")
	if err != nil {
		t.Fatalf("JSONQuery failed: %v", err)
	}
	if got != `{"subjects":[]}` {
		t.Errorf("got %q", got)
	}
	if seen.ResponseFormat == nil || seen.ResponseFormat.Type != "json_object" {
		t.Errorf("response_format not set: %+v", seen.ResponseFormat)
	}
}

func TestQueryErrors(t *testing.T) {
	srv := newTestServer(t, `{"choices":[]}`, nil)
	defer srv.Close()
	c, _ := NewClient(srv.URL)
	if _, err := c.SimpleQuery(context.Background(), "m", "p", ""); err == nil {
		t.Error("expected error for empty choices")
	}

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer failing.Close()
	c, _ = NewClient(failing.URL)
	if _, err := c.JSONQuery(context.Background(), "m", "p", ""); err == nil {
		t.Error("expected error for HTTP 500")
	}
}

func TestNewClientDefault(t *testing.T) {
	c, err := NewClient("")
	if err != nil {
		t.Fatal(err)
	}
	if c.baseURL != DefaultServerURL {
		t.Errorf("baseURL = %q", c.baseURL)
	}
}
