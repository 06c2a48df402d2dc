package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resumelab/internal/config"
	resumelabErrors "resumelab/internal/errors"
	"resumelab/internal/observability"
	"resumelab/internal/types"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			LogLevel:         "error",
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
			MaxFileSize:      5 * 1024 * 1024,
		},
		Store: config.StoreConfig{Backend: "memory"},
	}
}

func testServer(t *testing.T, cfg ServerConfig) *Server {
	t.Helper()

	logger := resumelabErrors.NewLogger(slog.LevelError)
	srv, err := NewServer(testConfig(), cfg, logger)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return srv
}

func testObservability(t *testing.T) *observability.ObservabilityManager {
	t.Helper()

	om, err := observability.NewObservabilityManager(
		observability.ObservabilityConfig{Enabled: false}, testConfig())
	if err != nil {
		t.Fatalf("NewObservabilityManager() error = %v", err)
	}
	return om
}

func TestNewServerAPIKeys(t *testing.T) {
	srv := testServer(t, ServerConfig{
		APIKeys: []string{"key-one", "", "key-two"},
	})

	if len(srv.APIKeys) != 2 {
		t.Errorf("APIKeys length = %d, want 2 (empty keys skipped)", len(srv.APIKeys))
	}
	if !srv.APIKeys["key-one"] || !srv.APIKeys["key-two"] {
		t.Error("configured API keys missing from lookup map")
	}
}

func TestNewServerUnknownStoreBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Store.Backend = "cassandra"

	logger := resumelabErrors.NewLogger(slog.LevelError)
	if _, err := NewServer(cfg, ServerConfig{}, logger); err == nil {
		t.Error("NewServer() with unknown store backend should fail")
	}
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		apiKeys    []string
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "no keys configured allows everything",
			apiKeys:    nil,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing key rejected",
			apiKeys:    []string{"secret-key-123"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid key rejected",
			apiKeys:    []string{"secret-key-123"},
			headers:    map[string]string{"X-API-Key": "wrong"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid key via header",
			apiKeys:    []string{"secret-key-123"},
			headers:    map[string]string{"X-API-Key": "secret-key-123"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid key via bearer token",
			apiKeys:    []string{"secret-key-123"},
			headers:    map[string]string{"Authorization": "Bearer secret-key-123"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testServer(t, ServerConfig{APIKeys: tt.apiKeys})

			handler := srv.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/improve", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestSuggestEndpoint(t *testing.T) {
	srv := testServer(t, ServerConfig{MaxRequestSize: 1024 * 1024})
	om := testObservability(t)
	mux := srv.setupRoutes(om)

	body, _ := json.Marshal(SuggestRequest{
		ResumeText: "Short resume text",
		TargetRole: "software engineer",
	})
	req := httptest.NewRequest(http.MethodPost, "/suggest", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Suggestions []types.Suggestion `json:"suggestions"`
		Count       int                `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Count == 0 || len(resp.Suggestions) == 0 {
		t.Error("expected suggestions for a short resume, got none")
	}
	for _, sug := range resp.Suggestions {
		if sug.ID == "" {
			t.Errorf("suggestion missing id: %+v", sug)
		}
	}
}

func TestSuggestEndpointValidation(t *testing.T) {
	srv := testServer(t, ServerConfig{MaxRequestSize: 1024 * 1024})
	om := testObservability(t)
	mux := srv.setupRoutes(om)

	body, _ := json.Marshal(SuggestRequest{ResumeText: "   "})
	req := httptest.NewRequest(http.MethodPost, "/suggest", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestResumesCRUD(t *testing.T) {
	srv := testServer(t, ServerConfig{MaxRequestSize: 1024 * 1024})
	om := testObservability(t)
	mux := srv.setupRoutes(om)

	// Create
	body, _ := json.Marshal(SaveResumeRequest{
		Name:       "Jordan",
		Text:       "EXPERIENCE\nBuilt things.",
		TargetRole: "software engineer",
	})
	req := httptest.NewRequest(http.MethodPost, "/resumes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created types.ResumeRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created record has no id")
	}

	// Fetch
	req = httptest.NewRequest(http.MethodGet, "/resumes/"+created.ID, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want %d", rec.Code, http.StatusOK)
	}

	var fetched types.ResumeRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("failed to decode get response: %v", err)
	}
	if fetched.Text != created.Text {
		t.Errorf("fetched text = %q, want %q", fetched.Text, created.Text)
	}

	// Delete
	req = httptest.NewRequest(http.MethodDelete, "/resumes/"+created.ID, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	// Fetch after delete
	req = httptest.NewRequest(http.MethodGet, "/resumes/"+created.ID, nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSaveResumeValidation(t *testing.T) {
	srv := testServer(t, ServerConfig{MaxRequestSize: 1024 * 1024})
	om := testObservability(t)
	mux := srv.setupRoutes(om)

	body, _ := json.Marshal(SaveResumeRequest{Name: "no text"})
	req := httptest.NewRequest(http.MethodPost, "/resumes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestExtractEndpointPlainText(t *testing.T) {
	srv := testServer(t, ServerConfig{MaxRequestSize: 1024 * 1024})
	om := testObservability(t)
	mux := srv.setupRoutes(om)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	content := "SUMMARY\nExperienced engineer.\n\nSKILLS\nGo, SQL"
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("part write error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("writer close error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/extract", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp ExtractResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(resp.Text, "Experienced engineer.") {
		t.Errorf("extracted text missing content: %q", resp.Text)
	}
	if len(resp.Sections) < 2 {
		t.Errorf("sections = %d, want at least 2 (SUMMARY, SKILLS)", len(resp.Sections))
	}
}

func TestExtractEndpointMissingFile(t *testing.T) {
	srv := testServer(t, ServerConfig{MaxRequestSize: 1024 * 1024})
	om := testObservability(t)
	mux := srv.setupRoutes(om)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("note", "no file here"); err != nil {
		t.Fatalf("WriteField() error = %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("writer close error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/extract", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid request maps to 400",
			err:        resumelabErrors.NewValidationError(resumelabErrors.ErrCodeInvalidRequest, "resume text is required", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_REQUEST",
		},
		{
			name:       "ai unavailable maps to 502",
			err:        resumelabErrors.NewAIError(resumelabErrors.ErrCodeAIUnavailable, "model timed out", nil),
			wantStatus: http.StatusBadGateway,
			wantCode:   "AI_UNAVAILABLE",
		},
		{
			name:       "malformed response maps to 502",
			err:        resumelabErrors.NewAIError(resumelabErrors.ErrCodeMalformedResponse, "not valid JSON", nil),
			wantStatus: http.StatusBadGateway,
			wantCode:   "MALFORMED_AI_RESPONSE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, "Operation failed", tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode error response: %v", err)
			}
			if resp.Error != tt.wantCode {
				t.Errorf("error code = %q, want %q", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	logger := resumelabErrors.NewLogger(slog.LevelError)
	limiter := NewRateLimiter(60, time.Minute, 2, logger)
	defer limiter.Close()

	// Burst capacity of 2 gives two immediate requests
	if !limiter.Allow("ip:10.0.0.1") {
		t.Error("first request should be allowed")
	}
	if !limiter.Allow("ip:10.0.0.1") {
		t.Error("second request within burst should be allowed")
	}
	if limiter.Allow("ip:10.0.0.1") {
		t.Error("third immediate request should exceed burst capacity")
	}

	// Independent key gets its own bucket
	if !limiter.Allow("ip:10.0.0.2") {
		t.Error("different key should have independent limiter")
	}

	stats := limiter.GetStats()
	if stats["active_limiters"] != 2 {
		t.Errorf("active_limiters = %v, want 2", stats["active_limiters"])
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		byAPIKey bool
		byIP     bool
		headers  map[string]string
		want     string
	}{
		{
			name:     "api key preferred",
			byAPIKey: true,
			byIP:     true,
			headers:  map[string]string{"X-API-Key": "abc"},
			want:     "api:abc",
		},
		{
			name:     "bearer token as api key",
			byAPIKey: true,
			headers:  map[string]string{"Authorization": "Bearer xyz"},
			want:     "api:xyz",
		},
		{
			name: "ip fallback",
			byIP: true,
			want: "ip:192.0.2.1",
		},
		{
			name: "nothing enabled",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/improve", nil)
			req.RemoteAddr = "192.0.2.1:4321"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := getRateLimitKey(req, tt.byAPIKey, tt.byIP); got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "x-forwarded-for first ip",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"},
			remote:  "10.0.0.2:80",
			want:    "203.0.113.7",
		},
		{
			name:    "x-real-ip",
			headers: map[string]string{"X-Real-IP": "203.0.113.9"},
			remote:  "10.0.0.2:80",
			want:    "203.0.113.9",
		},
		{
			name:   "remote addr fallback",
			remote: "198.51.100.4:9999",
			want:   "198.51.100.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		apiKey string
		want   string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.apiKey); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.apiKey, got, tt.want)
		}
	}
}
