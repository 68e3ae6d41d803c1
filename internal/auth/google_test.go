package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	sharedauth "career-coach-backend/internal/shared/auth"
	"career-coach-backend/internal/users"
)

type recordingStore struct {
	identities []users.Identity
	err        error
}

func (s *recordingStore) EnsureFromIdentity(ctx context.Context, identity users.Identity) (users.User, error) {
	if s.err != nil {
		return users.User{}, s.err
	}
	s.identities = append(s.identities, identity)
	return users.User{ID: "user-1", Subject: identity.Subject}, nil
}

func newRouter(svc *GoogleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func tokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStartRequiresConfiguration(t *testing.T) {
	svc := NewGoogleService("", "", "", "http://ui.local", nil)
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "auth_not_configured") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestStartRedirectsWithState(t *testing.T) {
	svc := NewGoogleService("client", "secret", "http://api.local/callback", "http://ui.local", nil)
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/start", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	state := loc.Query().Get("state")
	if state == "" {
		t.Fatalf("expected state in %s", loc)
	}
	if !svc.stateStore.consume(state) {
		t.Fatalf("expected state to be stored")
	}
}

func TestCallbackRejectsUnknownState(t *testing.T) {
	svc := NewGoogleService("client", "secret", "http://api.local/callback", "http://ui.local", nil)
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=nope&code=abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCallbackEnsuresUserAndRedirectsWithToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	srv := tokenServer(t)
	store := &recordingStore{}
	svc := NewGoogleService("client", "secret", "http://api.local/callback", "http://ui.local/login?next=dash", store)
	svc.oauthConfig.Endpoint = oauth2.Endpoint{TokenURL: srv.URL, AuthStyle: oauth2.AuthStyleInParams}
	svc.userInfo = func(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
		return googleUserInfo{Sub: "42", Email: "ada@example.com", Name: "Ada"}, nil
	}
	svc.stateStore.put("state-1", time.Now().Add(time.Minute))

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=state-1&code=abc", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", w.Code, w.Body.String())
	}
	if len(store.identities) != 1 || store.identities[0].Subject != "google:42" {
		t.Fatalf("unexpected identities %+v", store.identities)
	}
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if loc.Query().Get("next") != "dash" {
		t.Fatalf("expected existing query preserved, got %s", loc)
	}
	claims, err := sharedauth.VerifyJWT(loc.Query().Get("token"))
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}
	if claims.Subject != "google:42" || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestCallbackFailsWhenUserCannotBeRecorded(t *testing.T) {
	srv := tokenServer(t)
	store := &recordingStore{err: errors.New("db down")}
	svc := NewGoogleService("client", "secret", "http://api.local/callback", "http://ui.local", store)
	svc.oauthConfig.Endpoint = oauth2.Endpoint{TokenURL: srv.URL, AuthStyle: oauth2.AuthStyleInParams}
	svc.userInfo = func(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
		return googleUserInfo{Sub: "42"}, nil
	}
	svc.stateStore.put("state-1", time.Now().Add(time.Minute))

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/google/callback?state=state-1&code=abc", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestStateStoreExpires(t *testing.T) {
	store := newStateStore()
	store.put("old", time.Now().Add(-time.Second))
	if store.consume("old") {
		t.Fatalf("expected expired state to be rejected")
	}
	store.put("fresh", time.Now().Add(time.Minute))
	if !store.consume("fresh") {
		t.Fatalf("expected fresh state to be accepted")
	}
	if store.consume("fresh") {
		t.Fatalf("expected state to be single-use")
	}
}

func TestAppendTokenRequiresURL(t *testing.T) {
	if _, err := appendToken("", "tok"); err == nil {
		t.Fatalf("expected error for empty redirect")
	}
}
