package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

const (
	// DefaultTitles is what the fake extraction endpoint returns unless overridden.
	DefaultTitles = "A\nB\nC"
	// DefaultFeedback is what the fake feedback endpoint returns unless overridden.
	DefaultFeedback = "Para1\n\nPara2"
)

// FakeService stands in for the remote extraction and feedback endpoints.
// It records what each endpoint received and counts calls.
type FakeService struct {
	Server *httptest.Server

	mu            sync.Mutex
	extract       http.HandlerFunc
	feedback      http.HandlerFunc
	extractCalls  int
	feedbackCalls int
	lastFilename  string
	lastUpload    []byte
	lastTitles    string
	lastAudience  string
}

// NewFakeService starts a server answering both endpoints with the defaults.
func NewFakeService(t testing.TB) *FakeService {
	t.Helper()
	svc := &FakeService{
		extract:  RespondJSON(http.StatusOK, map[string]string{"titles": DefaultTitles}),
		feedback: RespondJSON(http.StatusOK, map[string]string{"feedback": DefaultFeedback}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/extract-titles", svc.handleExtract)
	mux.HandleFunc("POST /api/get-feedback", svc.handleFeedback)
	svc.Server = httptest.NewServer(mux)
	t.Cleanup(svc.Server.Close)
	return svc
}

func (s *FakeService) handleExtract(w http.ResponseWriter, r *http.Request) {
	var filename string
	var upload []byte
	if file, header, err := r.FormFile("file"); err == nil {
		filename = header.Filename
		upload, _ = io.ReadAll(file)
		_ = file.Close()
	}

	s.mu.Lock()
	s.extractCalls++
	s.lastFilename = filename
	s.lastUpload = upload
	handler := s.extract
	s.mu.Unlock()
	handler(w, r)
}

func (s *FakeService) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Titles         string `json:"titles"`
		TargetAudience string `json:"targetAudience"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	s.feedbackCalls++
	s.lastTitles = body.Titles
	s.lastAudience = body.TargetAudience
	handler := s.feedback
	s.mu.Unlock()
	handler(w, r)
}

// URL returns the base URL of the fake service.
func (s *FakeService) URL() string {
	return s.Server.URL
}

// SetExtract replaces the extraction handler.
func (s *FakeService) SetExtract(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extract = h
}

// SetFeedback replaces the feedback handler.
func (s *FakeService) SetFeedback(h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = h
}

func (s *FakeService) ExtractCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.extractCalls
}

func (s *FakeService) FeedbackCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedbackCalls
}

// LastUpload returns the filename and bytes of the most recent upload.
func (s *FakeService) LastUpload() (string, []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFilename, s.lastUpload
}

func (s *FakeService) LastTitles() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTitles
}

func (s *FakeService) LastAudience() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAudience
}

// RespondJSON answers with status and payload encoded as JSON.
func RespondJSON(status int, payload any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondStatus answers with status and an empty body.
func RespondStatus(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

// Stall holds the request until the client gives up.
func Stall(w http.ResponseWriter, r *http.Request) {
	select {
	case <-r.Context().Done():
	case <-time.After(5 * time.Second):
	}
}

// Gate blocks every request until release is closed, then delegates to next.
func Gate(release <-chan struct{}, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		<-release
		next(w, r)
	}
}
