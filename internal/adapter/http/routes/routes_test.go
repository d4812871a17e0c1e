package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Diilaye/batimo/internal/adapter/persistence/memory"
	"github.com/Diilaye/batimo/internal/infrastructure/auth"
	"github.com/Diilaye/batimo/internal/infrastructure/cache"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase"

	"github.com/gin-gonic/gin"
)

type testServer struct {
	router  *gin.Engine
	adminID string
	otherID string
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	admins := memory.NewAdminRepository()
	hasher := auth.NewBcryptHasher()
	tokens, err := auth.NewJWTService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("jwt service: %v", err)
	}
	adminUC := usecase.NewAdminUseCase(admins, hasher, log)

	moussa, err := adminUC.Create(context.Background(), "moussa@batimo.sn", "motdepasse1")
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	awa, err := adminUC.Create(context.Background(), "awa@batimo.sn", "motdepasse2")
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	router, err := NewRouter(Dependencies{
		Quotes:     usecase.NewQuoteUseCase(memory.NewQuoteRepository(), admins, log),
		Auth:       usecase.NewAuthUseCase(admins, tokens, hasher, log),
		Admins:     adminUC,
		Messages:   usecase.NewMessageUseCase(memory.NewMessageRepository(), log),
		Services:   usecase.NewServiceUseCase(memory.NewServiceRepository(), log),
		Limiter:    cache.NewMemoryLimiter(1, 1),
		Log:        log,
		CORSOrigin: "http://localhost:3010",
	})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	return testServer{router: router, adminID: moussa.ID, otherID: awa.ID}
}

func (s testServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s testServer) login(t *testing.T) *http.Cookie {
	t.Helper()
	w := s.do(http.MethodPost, "/api/admin/login", `{"email":"Moussa@Batimo.sn","password":"motdepasse1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatalf("login did not set the session cookie")
	return nil
}

type quoteBody struct {
	ID       string `json:"_id"`
	Status   string `json:"status"`
	Comments []struct {
		ID      string `json:"_id"`
		Content string `json:"content"`
		Author  *struct {
			Email string `json:"email"`
		} `json:"author"`
		Mentions []struct {
			Email string `json:"email"`
		} `json:"mentions"`
	} `json:"comments"`
}

func decodeQuote(t *testing.T, w *httptest.ResponseRecorder) quoteBody {
	t.Helper()
	var q quoteBody
	if err := json.Unmarshal(w.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode quote: %v (%s)", err, w.Body.String())
	}
	return q
}

func TestQuoteLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/quote",
		`{"name":"Fatou Diop","email":"fatou@example.sn","phone":"+221770000000","projectType":"villa","budget":"50M FCFA","message":"Villa R+1 à Saly"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d %s", w.Code, w.Body.String())
	}
	created := decodeQuote(t, w)
	if created.Status != "pending" || len(created.Comments) != 0 {
		t.Fatalf("unexpected created quote: %+v", created)
	}

	if w := s.do(http.MethodGet, "/api/quotes", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("list without session: expected 401, got %d", w.Code)
	}
	forged := &http.Cookie{Name: "token", Value: "not-a-jwt"}
	if w := s.do(http.MethodGet, "/api/quotes", "", forged); w.Code != http.StatusForbidden {
		t.Fatalf("list with forged session: expected 403, got %d", w.Code)
	}

	session := s.login(t)

	w = s.do(http.MethodPost, "/api/quotes/"+created.ID+"/comments",
		`{"content":"Client rappelé, visite samedi","mentions":["`+s.otherID+`"]}`, session)
	if w.Code != http.StatusOK {
		t.Fatalf("add comment: expected 200, got %d %s", w.Code, w.Body.String())
	}
	commented := decodeQuote(t, w)
	if len(commented.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(commented.Comments))
	}
	c := commented.Comments[0]
	if c.Author == nil || c.Author.Email != "moussa@batimo.sn" {
		t.Fatalf("unexpected author: %+v", c.Author)
	}
	if len(c.Mentions) != 1 || c.Mentions[0].Email != "awa@batimo.sn" {
		t.Fatalf("unexpected mentions: %+v", c.Mentions)
	}

	w = s.do(http.MethodPatch, "/api/quotes/"+created.ID+"/status", `{"status":"accepted"}`, session)
	if w.Code != http.StatusOK || decodeQuote(t, w).Status != "accepted" {
		t.Fatalf("status: unexpected response %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodDelete, "/api/quotes/"+created.ID+"/comments/"+c.ID, "", session)
	if w.Code != http.StatusOK {
		t.Fatalf("delete comment: expected 200, got %d", w.Code)
	}

	w = s.do(http.MethodGet, "/api/quotes/"+created.ID, "", session)
	got := decodeQuote(t, w)
	if w.Code != http.StatusOK || got.Status != "accepted" || len(got.Comments) != 0 {
		t.Fatalf("get: unexpected response %d %+v", w.Code, got)
	}

	if w := s.do(http.MethodDelete, "/api/quotes/"+created.ID, "", session); w.Code != http.StatusOK {
		t.Fatalf("delete quote: expected 200, got %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/quotes/"+created.ID, "", session); w.Code != http.StatusNotFound {
		t.Fatalf("get deleted: expected 404, got %d", w.Code)
	}
	if w := s.do(http.MethodDelete, "/api/quotes/"+created.ID, "", session); w.Code != http.StatusOK {
		t.Fatalf("delete twice: expected 200, got %d", w.Code)
	}
}

func TestContactFormIsRateLimited(t *testing.T) {
	s := newTestServer(t)
	body := `{"name":"Awa","email":"awa@example.sn","message":"Bonjour"}`

	if w := s.do(http.MethodPost, "/api/contact", body); w.Code != http.StatusOK {
		t.Fatalf("first contact: expected 200, got %d", w.Code)
	}
	w := s.do(http.MethodPost, "/api/contact", body)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second contact: expected 429, got %d", w.Code)
	}

	session := s.login(t)
	w = s.do(http.MethodGet, "/api/messages", "", session)
	var msgs []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &msgs); err != nil || len(msgs) != 1 {
		t.Fatalf("expected one stored message, got %s", w.Body.String())
	}
}

func TestAdminsAndServicesRequireSession(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/admins", "/api/services", "/api/messages"} {
		if w := s.do(http.MethodGet, path, ""); w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, w.Code)
		}
	}

	session := s.login(t)
	w := s.do(http.MethodGet, "/api/admins", "", session)
	var admins []map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &admins); err != nil || len(admins) != 2 {
		t.Fatalf("unexpected admins: %s", w.Body.String())
	}

	w = s.do(http.MethodPost, "/api/services", `{"title":"Gros oeuvre","description":"Fondations et élévation"}`, session)
	if w.Code != http.StatusCreated {
		t.Fatalf("create service: expected 201, got %d %s", w.Code, w.Body.String())
	}

	if w := s.do(http.MethodGet, "/api/ping", ""); w.Code != http.StatusOK {
		t.Fatalf("ping: expected 200, got %d", w.Code)
	}
}
