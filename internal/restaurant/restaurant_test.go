package restaurant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCreateRestaurant(t *testing.T) {
	s := NewService(NewInMemoryRepository())

	r, err := s.CreateRestaurant(context.Background(), "  Luigi's  ", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ID == "" || r.Name != "Luigi's" || r.OwnerID != "user-1" {
		t.Fatalf("unexpected restaurant %+v", r)
	}

	if _, err := s.CreateRestaurant(context.Background(), "   ", "user-1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := s.CreateRestaurant(context.Background(), "No Owner", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without owner, got %v", err)
	}
}

func TestIsOwner(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewInMemoryRepository())

	r, _ := s.CreateRestaurant(ctx, "A", "user-1")

	tests := []struct {
		name         string
		restaurantID string
		userID       string
		want         bool
	}{
		{"owner", r.ID, "user-1", true},
		{"other user", r.ID, "user-2", false},
		{"no user", r.ID, "", false},
		{"unknown restaurant", "22222222-2222-2222-2222-222222222222", "user-1", false},
		{"malformed id", "not-a-uuid", "user-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.IsOwner(ctx, tt.restaurantID, tt.userID)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAttachChannel(t *testing.T) {
	ctx := context.Background()
	s := NewService(NewInMemoryRepository())

	a, _ := s.CreateRestaurant(ctx, "A", "user-1")
	b, _ := s.CreateRestaurant(ctx, "B", "user-2")

	if _, err := s.AttachChannel(ctx, a.ID, " +15550100 "); err != nil {
		t.Fatalf("attach: %v", err)
	}

	// same restaurant again is fine
	if _, err := s.AttachChannel(ctx, a.ID, "+15550100"); err != nil {
		t.Fatalf("re-attach: %v", err)
	}

	if _, err := s.AttachChannel(ctx, b.ID, "+15550100"); !errors.Is(err, ErrChannelTaken) {
		t.Fatalf("expected ErrChannelTaken, got %v", err)
	}

	if _, err := s.AttachChannel(ctx, "not-a-uuid", "+15550199"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	chs, _ := s.ListChannels(ctx, a.ID)
	if len(chs) != 1 || chs[0].DID != "+15550100" {
		t.Fatalf("unexpected channels %+v", chs)
	}
}

func TestHandler_AttachChannelConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	s := NewService(NewInMemoryRepository())
	a, _ := s.CreateRestaurant(ctx, "A", "user-1")
	b, _ := s.CreateRestaurant(ctx, "B", "user-2")
	s.AttachChannel(ctx, a.ID, "+15550100")

	h := NewHandler(s)
	r := gin.New()
	r.POST("/restaurants/:id/channels", h.AttachChannel)

	body, _ := json.Marshal(map[string]string{"did": "+15550100"})
	req := httptest.NewRequest(http.MethodPost, "/restaurants/"+b.ID+"/channels", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}
