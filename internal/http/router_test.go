package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geocoder89/learnhub/internal/auth"
	"github.com/geocoder89/learnhub/internal/config"
	"github.com/geocoder89/learnhub/internal/db"
	apphttp "github.com/geocoder89/learnhub/internal/http"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() config.Config {
	return config.Config{
		Env:               "test",
		Port:              0,
		StoreBackend:      "memory",
		JWTSecret:         "test-secret-key",
		JWTAccessTTLHours: 1,
		FrontendURL:       "http://localhost:5000",
		AdminEmail:        "admin@example.com",
		AdminPassword:     "admin-password",
		AdminName:         "Test Admin",
	}
}

// setupRouter wires the full engine against the memory backend, with the
// admin account seeded the same way main does it.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := testConfig()

	stores := apphttp.NewStores(cfg, nil, nil)

	if err := db.EnsureAdminUser(context.Background(), stores.Users, cfg); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return apphttp.NewRouter(log, nil, cfg, nil, stores)
}

func doRequest(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request

	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func mustReadJSON[T any](t *testing.T, w *httptest.ResponseRecorder, out *T) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}
}

func login(t *testing.T, router http.Handler, email, password string) string {
	t.Helper()

	w := doRequest(router, http.MethodPost, "/api/auth/login",
		`{"email":"`+email+`","password":"`+password+`"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("login as %s failed: status %d, body=%s", email, w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}

	mustReadJSON(t, w, &resp)

	if resp.Token == "" {
		t.Fatalf("login returned empty token")
	}

	return resp.Token
}

func TestSignupLoginFlow(t *testing.T) {
	router := setupRouter(t)

	// fresh signup
	w := doRequest(router, http.MethodPost, "/api/auth/signup",
		`{"email":"a@b.com","password":"secret1","name":"A"}`, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("signup: status %d, body=%s", w.Code, w.Body.String())
	}

	var signupResp struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
	}

	mustReadJSON(t, w, &signupResp)

	if signupResp.User.Role != "learner" {
		t.Errorf("signup role = %q, want learner", signupResp.User.Role)
	}

	// duplicate email
	w = doRequest(router, http.MethodPost, "/api/auth/signup",
		`{"email":"a@b.com","password":"other","name":"B"}`, "")

	if w.Code != http.StatusConflict {
		t.Errorf("duplicate signup: status %d, want 409", w.Code)
	}

	// wrong password
	w = doRequest(router, http.MethodPost, "/api/auth/login",
		`{"email":"a@b.com","password":"wrong"}`, "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password login: status %d, want 401", w.Code)
	}

	// correct login and token use
	token := login(t, router, "a@b.com", "secret1")

	w = doRequest(router, http.MethodGet, "/api/courses", "", token)

	if w.Code != http.StatusOK {
		t.Errorf("authenticated list: status %d, want 200, body=%s", w.Code, w.Body.String())
	}
}

func TestCourseRoutesRequireAuth(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/courses", "", "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: status %d, want 401", w.Code)
	}

	// valid signature but expired
	expired := auth.NewManager(testConfig().JWTSecret, -time.Hour)
	staleToken, err := expired.GenerateToken("user-1", "a@b.com", "learner")

	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	w = doRequest(router, http.MethodGet, "/api/courses", "", staleToken)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: status %d, want 401", w.Code)
	}
}

func TestLearnerCannotWriteCatalog(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodPost, "/api/auth/signup",
		`{"email":"learner@b.com","password":"secret1","name":"L"}`, "")

	if w.Code != http.StatusCreated {
		t.Fatalf("signup: status %d, body=%s", w.Code, w.Body.String())
	}

	token := login(t, router, "learner@b.com", "secret1")

	w = doRequest(router, http.MethodPost, "/api/courses",
		`{"title":"T","description":"D","duration":"1 week","level":"beginner"}`, token)

	if w.Code != http.StatusForbidden {
		t.Fatalf("learner course create: status %d, want 403, body=%s", w.Code, w.Body.String())
	}
}

func TestAdminCatalogLifecycle(t *testing.T) {
	router := setupRouter(t)

	adminToken := login(t, router, "admin@example.com", "admin-password")

	// create
	w := doRequest(router, http.MethodPost, "/api/courses",
		`{"title":"Intro to ML","description":"D","duration":"6 weeks","level":"beginner"}`, adminToken)

	if w.Code != http.StatusCreated {
		t.Fatalf("course create: status %d, body=%s", w.Code, w.Body.String())
	}

	var createResp struct {
		Course struct {
			ID string `json:"id"`
		} `json:"course"`
	}

	mustReadJSON(t, w, &createResp)
	courseID := createResp.Course.ID

	// update
	w = doRequest(router, http.MethodPut, "/api/courses/"+courseID,
		`{"title":"Intro to ML v2","description":"D","duration":"8 weeks","level":"intermediate"}`, adminToken)

	if w.Code != http.StatusOK {
		t.Fatalf("course update: status %d, body=%s", w.Code, w.Body.String())
	}

	// lessons land out of display order
	for _, body := range []string{
		`{"title":"Evaluation","description":"D","order_number":3}`,
		`{"title":"Setup","description":"D","order_number":1}`,
		`{"title":"Training","description":"D","order_number":2}`,
	} {
		w = doRequest(router, http.MethodPost, "/api/courses/"+courseID+"/lessons", body, adminToken)

		if w.Code != http.StatusCreated {
			t.Fatalf("lesson create: status %d, body=%s", w.Code, w.Body.String())
		}
	}

	// read back sorted
	w = doRequest(router, http.MethodGet, "/api/courses/"+courseID, "", adminToken)

	if w.Code != http.StatusOK {
		t.Fatalf("course fetch: status %d, body=%s", w.Code, w.Body.String())
	}

	var getResp struct {
		Course struct {
			Title   string `json:"title"`
			Lessons []struct {
				Title       string `json:"title"`
				OrderNumber int    `json:"order_number"`
			} `json:"lessons"`
		} `json:"course"`
	}

	mustReadJSON(t, w, &getResp)

	if getResp.Course.Title != "Intro to ML v2" {
		t.Errorf("title = %q, want the updated one", getResp.Course.Title)
	}

	if len(getResp.Course.Lessons) != 3 {
		t.Fatalf("got %d lessons, want 3", len(getResp.Course.Lessons))
	}

	for i, want := range []string{"Setup", "Training", "Evaluation"} {
		if getResp.Course.Lessons[i].Title != want {
			t.Errorf("lesson %d = %q, want %q", i, getResp.Course.Lessons[i].Title, want)
		}
	}

	// missing course is a 404
	w = doRequest(router, http.MethodGet, "/api/courses/not-a-course", "", adminToken)

	if w.Code != http.StatusNotFound {
		t.Errorf("missing course fetch: status %d, want 404", w.Code)
	}

	// delete, then the course is gone
	w = doRequest(router, http.MethodDelete, "/api/courses/"+courseID, "", adminToken)

	if w.Code != http.StatusOK {
		t.Fatalf("course delete: status %d, body=%s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodGet, "/api/courses/"+courseID, "", adminToken)

	if w.Code != http.StatusNotFound {
		t.Errorf("deleted course fetch: status %d, want 404", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/courses", nil)
	req.Header.Set("Origin", "http://localhost:5000")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight: status %d, want 204", w.Code)
	}

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5000" {
		t.Errorf("allow-origin = %q, want the configured frontend", got)
	}
}

func TestNonJSONBodyRejected(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		bytes.NewBufferString("email=a@b.com"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("form body: status %d, want 415", w.Code)
	}
}
