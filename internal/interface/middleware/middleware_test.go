package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/plantify/pkg/apperror"
	"github.com/oksasatya/plantify/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newAuthRouter(m *helpers.JWTManager) *gin.Engine {
	r := gin.New()
	r.GET("/me", Auth(m), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxUserIDKey)+"|"+c.GetString(CtxUserEmailKey))
	})
	return r
}

func TestAuthGate(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m := helpers.NewJWTManager(helpers.TokenConfig{Secret: "s", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	m.Now = func() time.Time { return now }
	access, _, _ := m.IssueAccessToken(helpers.TokenPayload{UserID: "u-1", Email: "alice@x.com"})
	refresh, _, _ := m.IssueRefreshToken(helpers.TokenPayload{UserID: "u-1", Email: "alice@x.com"})

	tests := []struct {
		name    string
		header  string
		status  int
		code    apperror.Code
		message string
	}{
		{"missing header", "", http.StatusUnauthorized, apperror.CodeUnauthorized, "No token provided"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid authorization format"},
		{"empty token", "Bearer ", http.StatusUnauthorized, apperror.CodeUnauthorized, "Token is empty"},
		{"bare scheme", "Bearer", http.StatusUnauthorized, apperror.CodeUnauthorized, "Token is empty"},
		{"bare scheme lower case", "bearer", http.StatusUnauthorized, apperror.CodeUnauthorized, "Token is empty"},
		{"malformed", "Bearer nope", http.StatusUnauthorized, apperror.CodeMalformedToken, "Invalid token format"},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized, apperror.CodeInvalidToken, ""},
		{"valid", "Bearer " + access, http.StatusOK, "", ""},
	}
	r := newAuthRouter(m)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if tt.status == http.StatusOK {
				if w.Body.String() != "u-1|alice@x.com" {
					t.Fatalf("unexpected context values %q", w.Body.String())
				}
				return
			}
			var env envelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Success || env.Error == nil || env.Error.Code != string(tt.code) {
				t.Fatalf("unexpected envelope %+v", env)
			}
			if tt.message != "" && env.Message != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, env.Message)
			}
		})
	}
}

func TestAuthEmptyTokenOverTheWire(t *testing.T) {
	m := helpers.NewJWTManager(helpers.TokenConfig{Secret: "s", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	srv := httptest.NewServer(newAuthRouter(m))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/me", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer ")
	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.StatusCode != http.StatusUnauthorized || env.Message != "Token is empty" {
		t.Fatalf("expected 401 Token is empty, got %d %q", res.StatusCode, env.Message)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m := helpers.NewJWTManager(helpers.TokenConfig{Secret: "s", AccessTTL: time.Minute, RefreshTTL: time.Hour})
	m.Now = func() time.Time { return issued }
	tok, _, _ := m.IssueAccessToken(helpers.TokenPayload{UserID: "u-1"})
	m.Now = func() time.Time { return issued.Add(time.Hour) }

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	newAuthRouter(m).ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	if w.Code != http.StatusUnauthorized || env.Message != "Token has expired" {
		t.Fatalf("expected expired rejection, got %d %+v", w.Code, env)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Body.String() == "" || w.Header().Get(HeaderRequestID) != w.Body.String() {
		t.Fatalf("expected generated id echoed in header, got %q / %q", w.Body.String(), w.Header().Get(HeaderRequestID))
	}

	const incoming = "0b6a3c1e-8d2f-4e5b-9a7c-1f2e3d4c5b6a"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != incoming {
		t.Fatalf("expected incoming id to be kept, got %q", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() == "<script>" {
		t.Fatal("expected malformed incoming id to be replaced")
	}
}

func TestRealIPAndPrivateGate(t *testing.T) {
	r := gin.New()
	r.Use(RealIP())
	r.POST("/seed", RequireAllowed(AllowPrivateIP()), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	tests := []struct {
		name   string
		header string
		value  string
		want   int
	}{
		{"cloudflare public", "CF-Connecting-IP", "8.8.8.8", http.StatusForbidden},
		{"forwarded private", "X-Forwarded-For", "10.1.2.3, 8.8.8.8", http.StatusNoContent},
		{"forwarded public", "X-Forwarded-For", "1.1.1.1", http.StatusForbidden},
		{"loopback", "CF-Connecting-IP", "127.0.0.1", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/seed", nil)
			req.Header.Set(tt.header, tt.value)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, time.Minute, KeyByIPAndPath(), nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestRemaining(t *testing.T) {
	if remaining(10, 3) != 7 || remaining(10, 10) != 0 || remaining(10, 15) != 0 {
		t.Fatal("unexpected remaining values")
	}
}

func TestToInt(t *testing.T) {
	if toInt(int64(4)) != 4 || toInt("7") != 7 || toInt(nil) != 0 {
		t.Fatal("unexpected conversions")
	}
}
