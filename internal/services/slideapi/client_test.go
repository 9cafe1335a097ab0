package slideapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"slidedeck/internal/services"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		ExtractURL:  server.URL + "/api/extract-titles",
		FeedbackURL: server.URL + "/api/get-feedback",
		Timeout:     timeout,
	}, WithRequestIDs(func() string { return "req-1" }))
}

func TestExtractTitlesSendsMultipartFile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/extract-titles" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get(RequestIDHeader); got != "req-1" {
			t.Errorf("unexpected request id %q", got)
		}
		file, header, err := r.FormFile(FileField)
		if err != nil {
			t.Errorf("read form file: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		if header.Filename != "deck.pptx" || string(content) != "binary-deck" {
			t.Errorf("unexpected upload %q %q", header.Filename, content)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"titles": "A\nB\nC"})
	}, time.Second)

	result := client.ExtractTitles(context.Background(), "deck.pptx", []byte("binary-deck"))
	if !result.OK() {
		t.Fatalf("expected success, got %+v", result.Failure)
	}
	if result.Value != "A\nB\nC" {
		t.Fatalf("expected verbatim titles, got %q", result.Value)
	}
}

func TestGetFeedbackSendsJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/get-feedback" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["titles"] != "A\nB" || body["targetAudience"] != "investors" {
			t.Errorf("unexpected body %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"feedback": "Para1\n\nPara2"})
	}, time.Second)

	result := client.GetFeedback(context.Background(), "A\nB", "investors")
	if !result.OK() {
		t.Fatalf("expected success, got %+v", result.Failure)
	}
	if result.Value != "Para1\n\nPara2" {
		t.Fatalf("unexpected feedback %q", result.Value)
	}
}

func TestFailureCarriesServerDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"bad file"}`))
	}, time.Second)

	result := client.ExtractTitles(context.Background(), "deck.pptx", []byte("x"))
	if result.OK() {
		t.Fatal("expected failure")
	}
	if result.Failure.Kind != services.KindServer {
		t.Fatalf("expected server kind, got %q", result.Failure.Kind)
	}
	if result.Failure.Status != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", result.Failure.Status)
	}
	if result.Failure.Detail != "bad file" {
		t.Fatalf("unexpected detail %q", result.Failure.Detail)
	}
}

func TestFailureJoinsValidationDetailList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","file"],"msg":"field required"},{"msg":"bad type"}]}`))
	}, time.Second)

	result := client.ExtractTitles(context.Background(), "deck.pptx", nil)
	if result.OK() {
		t.Fatal("expected failure")
	}
	if result.Failure.Detail != "field required; bad type" {
		t.Fatalf("unexpected detail %q", result.Failure.Detail)
	}
}

func TestFailureWithoutBodyHasNoMessages(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, time.Second)

	result := client.GetFeedback(context.Background(), "A", "general audience")
	if result.OK() {
		t.Fatal("expected failure")
	}
	if result.Failure.Detail != "" || result.Failure.TransportMessage != "" {
		t.Fatalf("expected no detail or transport message, got %+v", result.Failure)
	}
}

func TestTimeoutIsNetworkFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, 50*time.Millisecond)

	result := client.ExtractTitles(context.Background(), "deck.pptx", []byte("x"))
	if result.OK() {
		t.Fatal("expected timeout failure")
	}
	if result.Failure.Kind != services.KindNetwork {
		t.Fatalf("expected network kind, got %q", result.Failure.Kind)
	}
	if result.Failure.TransportMessage == "" {
		t.Fatal("expected transport message for timeout")
	}
}

func TestUnreachableServerIsNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(Config{ExtractURL: url + "/api/extract-titles", Timeout: time.Second})
	result := client.ExtractTitles(context.Background(), "deck.pptx", []byte("x"))
	if result.OK() || result.Failure.Kind != services.KindNetwork {
		t.Fatalf("expected network failure, got %+v", result.Failure)
	}
}

func TestMalformedSuccessBodyIsServerFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>proxy page</html>"))
	}, time.Second)

	result := client.ExtractTitles(context.Background(), "deck.pptx", []byte("x"))
	if result.OK() {
		t.Fatal("expected decode failure")
	}
	if result.Failure.Kind != services.KindServer {
		t.Fatalf("expected server kind, got %q", result.Failure.Kind)
	}
	if !strings.HasPrefix(result.Failure.TransportMessage, "decode response") {
		t.Fatalf("unexpected transport message %q", result.Failure.TransportMessage)
	}
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func TestCustomDoerStillBoundedByTimeout(t *testing.T) {
	doer := doerFunc(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})
	client := NewClient(Config{FeedbackURL: "http://service.invalid/api/get-feedback", Timeout: 20 * time.Millisecond}, WithHTTPClient(doer))

	result := client.GetFeedback(context.Background(), "A", "B")
	if result.OK() {
		t.Fatal("expected failure")
	}
	if !errors.Is(result.Failure.Cause, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", result.Failure.Cause)
	}
	if client.Timeout() != 20*time.Millisecond {
		t.Fatalf("unexpected timeout %v", client.Timeout())
	}
}
