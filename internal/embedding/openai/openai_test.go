package openai

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("EMBED_TEST_KEY", "secret")
	c, err := NewClient(Config{BaseURL: srv.URL, APIKeyEnv: "EMBED_TEST_KEY", Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientMissingKey(t *testing.T) {
	t.Setenv("EMBED_TEST_KEY", "")
	if _, err := NewClient(Config{APIKeyEnv: "EMBED_TEST_KEY"}); err == nil {
		t.Fatal("expected error when the key env is empty")
	}
}

func TestEmbedOpenAIShape(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
	}))
	vec, err := c.Embed("hello")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 3 || vec[1] != 0.2 {
		t.Errorf("vec = %v, want [0.1 0.2 0.3]", vec)
	}
	if c.Dimension() != 3 {
		t.Errorf("Dimension() = %d after first embed, want 3", c.Dimension())
	}
}

func TestEmbedSingleVectorShape(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"embedding":[1,2]}`))
	}))
	vec, err := c.Embed("hello")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vec) != 2 {
		t.Errorf("vec = %v, want 2 components", vec)
	}
}

func TestEmbedEmptyTextSkipsRequest(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"data":[{"embedding":[0.5,0.5]}]}`))
	}))
	if _, err := c.Embed("warm up"); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	vec, err := c.Embed("")
	if err != nil {
		t.Fatalf("Embed(\"\"): %v", err)
	}
	if len(vec) != 2 {
		t.Errorf("empty text yields %d components, want the known dimension 2", len(vec))
	}
	for _, v := range vec {
		if v != 0 {
			t.Fatalf("empty text must embed to the zero vector, got %v", vec)
		}
	}
	if calls != 1 {
		t.Errorf("empty text made a network request (calls = %d)", calls)
	}
}

func TestEmbedRetriesServerError(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data":[{"embedding":[0.9]}]}`))
	}))
	vec, err := c.Embed("hello")
	if err != nil {
		t.Fatalf("Embed after retry: %v", err)
	}
	if len(vec) != 1 || vec[0] != 0.9 {
		t.Errorf("vec = %v, want [0.9]", vec)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (one failure, one retry)", calls)
	}
}

func TestEmbedClientErrorDoesNotRetry(t *testing.T) {
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	if _, err := c.Embed("hello"); err == nil {
		t.Fatal("expected error on 400")
	}
	if calls != 1 {
		t.Errorf("calls = %d, a client error must not be retried", calls)
	}
}
