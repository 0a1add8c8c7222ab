package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geocoder89/learnhub/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

type bindTarget struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
	Count int    `json:"count" binding:"omitempty,min=1"`
}

func bindRouter() *gin.Engine {
	r := gin.New()
	r.POST("/bind", func(c *gin.Context) {
		var out bindTarget
		if !handlers.BindJSON(c, &out) {
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

type bindErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Details struct {
			Fields []handlers.FieldError `json:"fields"`
			JSON   string                `json:"json"`
		} `json:"details"`
	} `json:"error"`
}

func TestBindJSONValidationDetails(t *testing.T) {
	r := bindRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bind", bytes.NewBufferString(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
	}

	var body bindErrorBody

	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal error body: %v", err)
	}

	if body.Error.Code != "invalid_request" {
		t.Errorf("error code = %q, want invalid_request", body.Error.Code)
	}

	rules := map[string]string{}
	for _, fe := range body.Error.Details.Fields {
		rules[fe.Field] = fe.Rule
	}

	// field names come from the json tags, not the Go names
	if rules["email"] != "email" {
		t.Errorf("expected email-rule failure on field email, got %v", rules)
	}
	if rules["name"] != "required" {
		t.Errorf("expected required failure on field name, got %v", rules)
	}
}

func TestBindJSONSyntaxAndTypeErrors(t *testing.T) {
	r := bindRouter()

	tests := []struct {
		name string
		body string
	}{
		{name: "bad_syntax", body: `{"email": `},
		{name: "bad_type", body: `{"email":"a@b.com","name":"A","count":"three"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/bind", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
			}
		})
	}
}
