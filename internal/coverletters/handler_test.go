package coverletters

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"career-coach-backend/internal/generation"
)

func newTestRouter(svc *Service, subject string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if subject != "" {
			c.Set("subject", subject)
		}
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestCreateCoverLetterHandler(t *testing.T) {
	svc := NewService(acmeUsers(), NewMemoryRepo(), generation.Disabled())
	router := newTestRouter(svc, "google:ada")

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/cover-letters",
		strings.NewReader(`{"jobTitle":"Engineer","companyName":"Acme","jobDescription":"APIs"}`)))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var letter CoverLetter
	if err := json.Unmarshal(resp.Body.Bytes(), &letter); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if letter.Status != StatusCompleted || letter.Source != "fallback" {
		t.Fatalf("unexpected letter: %+v", letter)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cover-letters/"+letter.ID, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/v1/cover-letters/"+letter.ID, nil))
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cover-letters/"+letter.ID, nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCoverLetterHandlerErrorMapping(t *testing.T) {
	svc := NewService(acmeUsers(), NewMemoryRepo(), generation.Disabled())

	cases := []struct {
		name    string
		subject string
		body    string
		status  int
		code    string
	}{
		{"no identity", "", `{"jobTitle":"x","companyName":"y"}`, http.StatusUnauthorized, "unauthorized"},
		{"unknown user", "google:ghost", `{"jobTitle":"x","companyName":"y"}`, http.StatusNotFound, "user_not_found"},
		{"missing company", "google:ada", `{"jobTitle":"x"}`, http.StatusBadRequest, "invalid_input"},
		{"bad json", "google:ada", `{`, http.StatusBadRequest, "invalid_input"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(svc, tc.subject)
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/cover-letters", strings.NewReader(tc.body)))
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
			var payload struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if payload.Error.Code != tc.code {
				t.Fatalf("expected code %q, got %q", tc.code, payload.Error.Code)
			}
		})
	}
}

func TestCoverLetterHandlerMalformedID(t *testing.T) {
	svc := NewService(acmeUsers(), uuidColumnRepo{NewMemoryRepo()}, generation.Disabled())
	router := newTestRouter(svc, "google:ada")

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(method, "/api/v1/cover-letters/abc", nil))
		if resp.Code != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d: %s", method, resp.Code, resp.Body.String())
		}
		if !strings.Contains(resp.Body.String(), `"not_found"`) {
			t.Fatalf("%s: expected not_found code, got %s", method, resp.Body.String())
		}
	}
}
