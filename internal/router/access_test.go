package router

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"orderpilot/internal/order"
)

const otherRestaurant = "22222222-2222-2222-2222-222222222222"

func TestDashboard_ForeignRestaurantForbidden(t *testing.T) {
	e := newTestEnv(t)
	foreign := dashboardTokenFor(t, "user-2", otherRestaurant)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"manual order", http.MethodPost, "/api/orders", `{"restaurant_id":"` + testRestaurant + `","items":[{"name":"Wine"}]}`},
		{"list orders", http.MethodGet, "/api/restaurants/" + testRestaurant + "/orders", ""},
		{"read menu", http.MethodGet, "/api/restaurants/" + testRestaurant + "/menu", ""},
		{"attach channel", http.MethodPost, "/api/restaurants/" + testRestaurant + "/channels", `{"did":"+15550199"}`},
		{"list channels", http.MethodGet, "/api/restaurants/" + testRestaurant + "/channels", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := dashRequest(e.router, tt.method, tt.path, foreign, tt.body)
			if w.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	if e.orders.Writes != 0 {
		t.Fatalf("expected no order writes, got %d", e.orders.Writes)
	}
}

func TestDashboard_ForeignMenuUploadForbidden(t *testing.T) {
	e := newTestEnv(t)
	foreign := dashboardTokenFor(t, "user-2", otherRestaurant)

	w := uploadMenu(e.router, foreign, testRestaurant, "menu.txt", sampleMenuText)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}

	items, _ := e.menus.ListItems(context.Background(), testRestaurant)
	if len(items) != 0 {
		t.Fatalf("menu should be untouched, got %d items", len(items))
	}
}

func TestDashboard_ForeignStatusUpdateForbidden(t *testing.T) {
	e := newTestEnv(t)
	owner := dashboardToken(t, testRestaurant)
	foreign := dashboardTokenFor(t, "user-2", otherRestaurant)

	w := dashRequest(e.router, http.MethodPost, "/api/orders", owner, `{"items":[{"name":"Wine","unit_price":7}]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		OrderID string `json:"orderId"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	w = dashRequest(e.router, http.MethodPatch, "/api/orders/"+created.OrderID+"/status", foreign, `{"status":"cancelled"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
	if got := e.orders.Order(created.OrderID).Status; got != order.StatusPending {
		t.Fatalf("status changed to %s", got)
	}
}

func TestDashboard_OwnerReachesCreatedRestaurant(t *testing.T) {
	e := newTestEnv(t)
	owner := dashboardTokenFor(t, "user-1", testRestaurant)
	stranger := dashboardTokenFor(t, "user-2", otherRestaurant)

	w := dashRequest(e.router, http.MethodPost, "/api/restaurants", owner, `{"name":"Second Location"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID      string `json:"id"`
		OwnerID string `json:"owner_id"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.OwnerID != "user-1" {
		t.Fatalf("expected owner user-1, got %q", created.OwnerID)
	}

	// the token still names the first restaurant; ownership grants the second
	w = dashRequest(e.router, http.MethodPost, "/api/restaurants/"+created.ID+"/channels", owner, `{"did":"+15550142"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("owner: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = dashRequest(e.router, http.MethodGet, "/api/restaurants/"+created.ID+"/channels", stranger, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("stranger: expected 403, got %d", w.Code)
	}
}
