package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bazarlens/bazarlens/config"
	"github.com/bazarlens/bazarlens/internal/cache"
	"github.com/bazarlens/bazarlens/internal/corpus"
	"github.com/bazarlens/bazarlens/internal/engine"
	"github.com/bazarlens/bazarlens/services"
)

const testCorpus = "# Combined Corpus (Daraz + StarTech)\n\n" +
	"## Gaming Laptop X  \n**DocID:** `daraz_101`  \n**Source:** Daraz  \n**Category:** Laptops  \n" +
	"**Price:** ৳95,000  \n**Rating:** 4.5/5 (120 ratings)  \n" +
	"**Description:**\nA powerful gaming laptop with dedicated graphics.\n\n---\n\n" +
	"## Office Chair Pro  \n**DocID:** `startech_202`  \n**Source:** StarTech  \n**Category:** Chairs  \n" +
	"**Price:** 3,000  \n" +
	"**Description:**\nErgonomic office chair with lumbar support.\n\n---\n"

func setupTestEngine(t *testing.T, corpusText string) *engine.Engine {
	t.Helper()
	settings := &config.SearchSettings{}
	settings.ApplyDefaults()

	eng, err := engine.NewEngine(settings, corpus.StaticLoader{Text: corpusText}, cache.NewMemory())
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return eng
}

func setupTestRouter(eng *engine.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, eng)
	return router
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheckHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t, testCorpus))

	w := performRequest(router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("expected status 'healthy', got %v", resp["status"])
	}
}

func TestSearchHandler(t *testing.T) {
	eng := setupTestEngine(t, testCorpus)
	if err := eng.Rebuild(); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	router := setupTestRouter(eng)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedCode   ErrorCode
	}{
		{
			name:           "valid search",
			requestBody:    SearchRequest{Query: "gaming laptop"},
			expectedStatus: http.StatusOK,
		},
		{
			name: "search with filters",
			requestBody: SearchRequest{
				Query:   "warranty chair laptop",
				Filters: &services.SearchFilters{AllowedSources: []string{"StarTech"}},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not json at all",
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidJSON,
		},
		{
			name:           "empty query",
			requestBody:    SearchRequest{Query: "   "},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeInvalidQuery,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/search", tt.requestBody)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (body: %s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedCode != "" {
				var apiErr APIError
				if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
					t.Fatalf("failed to parse error response: %v", err)
				}
				if apiErr.Code != tt.expectedCode {
					t.Errorf("expected error code %s, got %s", tt.expectedCode, apiErr.Code)
				}
				if apiErr.RequestID == "" {
					t.Error("expected a request ID on the error response")
				}
			}
		})
	}
}

func TestSearchHandler_ResultShape(t *testing.T) {
	eng := setupTestEngine(t, testCorpus)
	if err := eng.Rebuild(); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	router := setupTestRouter(eng)

	w := performRequest(router, http.MethodPost, "/search", SearchRequest{Query: "gaming laptop"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var result services.SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}
	if len(result.Hits) == 0 {
		t.Fatal("expected at least one hit")
	}
	if result.Hits[0].Chunk.ParentID != "daraz_101" {
		t.Errorf("expected top hit daraz_101, got %s", result.Hits[0].Chunk.ParentID)
	}
	if result.QueryID == "" {
		t.Error("expected a query ID")
	}
}

func TestSearchHandler_IndexNotBuilt(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t, testCorpus))

	w := performRequest(router, http.MethodPost, "/search", SearchRequest{Query: "laptop"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}

	var apiErr APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	if apiErr.Code != ErrorCodeIndexNotBuilt {
		t.Errorf("expected error code %s, got %s", ErrorCodeIndexNotBuilt, apiErr.Code)
	}
}

func TestReloadCorpusHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t, testCorpus))

	w := performRequest(router, http.MethodPost, "/corpus/reload", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body: %s)", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["document_count"].(float64) != 2 {
		t.Errorf("expected 2 documents, got %v", resp["document_count"])
	}
}

func TestReloadCorpusHandler_EmptyCorpus(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t, "no records here"))

	w := performRequest(router, http.MethodPost, "/corpus/reload", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}

	var apiErr APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	if apiErr.Code != ErrorCodeCorpusEmpty {
		t.Errorf("expected error code %s, got %s", ErrorCodeCorpusEmpty, apiErr.Code)
	}
}

func TestStatsHandler(t *testing.T) {
	eng := setupTestEngine(t, testCorpus)
	if err := eng.Rebuild(); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	router := setupTestRouter(eng)

	w := performRequest(router, http.MethodGet, "/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var stats engine.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to parse stats: %v", err)
	}
	if stats.DocumentCount != 2 {
		t.Errorf("expected 2 documents, got %d", stats.DocumentCount)
	}
	if stats.Sources["Daraz"] != 1 || stats.Sources["StarTech"] != 1 {
		t.Errorf("unexpected source facets: %v", stats.Sources)
	}
}

func TestStatsHandler_IndexNotBuilt(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t, testCorpus))

	w := performRequest(router, http.MethodGet, "/stats", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
}
