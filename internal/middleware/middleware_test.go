package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orderpilot/internal/auth"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// TestAuthMiddleware_MissingAuthHeader tests the middleware with missing Authorization header
func TestAuthMiddleware_MissingAuthHeader(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	router := gin.New()
	router.Use(AuthMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "InvalidFormat")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")

	token, err := auth.GenerateToken(auth.Claims{
		UserID:       "test-user-id",
		Email:        "test@example.com",
		RestaurantID: "rest-1",
	})
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	var gotRestaurant string
	router := gin.New()
	router.Use(AuthMiddleware())
	router.GET("/test", func(c *gin.Context) {
		gotRestaurant = c.GetString("restaurantID")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if gotRestaurant != "rest-1" {
		t.Errorf("expected restaurantID in context, got %q", gotRestaurant)
	}
}

type countingRejecter struct{ n int }

func (r *countingRejecter) WebhookRejected() { r.n++ }

func TestWebhookAuth(t *testing.T) {
	rej := &countingRejecter{}
	reached := 0

	router := gin.New()
	router.POST("/hook", WebhookAuth("hook-secret", rej, nil), func(c *gin.Context) {
		reached++
		c.Status(http.StatusOK)
	})

	cases := []struct {
		header string
		want   int
	}{
		{"Bearer hook-secret", http.StatusOK},
		{"Bearer hook-secreT", http.StatusUnauthorized},
		{"Bearer short", http.StatusUnauthorized},
		{"", http.StatusUnauthorized},
		{"hook-secret", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/hook", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != tc.want {
			t.Errorf("header %q: expected %d, got %d", tc.header, tc.want, w.Code)
		}
	}

	if reached != 1 {
		t.Errorf("handler reached %d times, want 1", reached)
	}
	if rej.n != 4 {
		t.Errorf("expected 4 rejections, got %d", rej.n)
	}
}

func TestTimeout_SetsDeadline(t *testing.T) {
	router := gin.New()
	router.Use(Timeout(time.Second))

	var hasDeadline bool
	router.GET("/t", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))

	if !hasDeadline {
		t.Fatal("expected request context to carry a deadline")
	}
}
