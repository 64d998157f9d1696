package order

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"

	DefaultType = "pickup"

	SourceVoice  = "voice"
	SourceManual = "manual"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusPreparing: true,
	StatusReady:     true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// MenuEntry is one row of a restaurant's menu snapshot. Read only.
type MenuEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// RequestedItem is what the caller asked for. Name is free text.
type RequestedItem struct {
	Name       string   `json:"name"`
	Quantity   Quantity `json:"quantity"`
	Notes      string   `json:"notes,omitempty"`
	UnitPrice  *float64 `json:"unit_price,omitempty"`
	MenuItemID string   `json:"menu_item_id,omitempty"`
}

// Quantity is a requested item count. Voice agents send it as a JSON
// number, possibly fractional, or as a numeric string. Fractions round to
// the nearest whole unit; null or anything non-numeric decodes as 0, which
// the line builder turns into 1.
type Quantity int

const maxQuantity = 10000

func (q *Quantity) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if s, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) {
		*q = 0
		return nil
	}

	f = math.Round(f)
	switch {
	case f > maxQuantity:
		f = maxQuantity
	case f < 0:
		f = 0
	}
	*q = Quantity(f)
	return nil
}

// ResolvedLine is a persisted order line. MenuItemID is nil when the
// requested name matched nothing on the menu.
type ResolvedLine struct {
	MenuItemID *string `json:"menu_item_id"`
	ItemName   string  `json:"item_name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Notes      string  `json:"notes,omitempty"`
}

type Order struct {
	ID            string         `json:"id"`
	RestaurantID  string         `json:"restaurant_id"`
	CustomerName  string         `json:"customer_name,omitempty"`
	CustomerPhone string         `json:"customer_phone,omitempty"`
	CustomerEmail string         `json:"customer_email,omitempty"`
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	Source        string         `json:"source"`
	TotalAmount   float64        `json:"total_amount"`
	CreatedAt     time.Time      `json:"created_at"`
	Lines         []ResolvedLine `json:"items,omitempty"`
}

// VoiceOrderRequest is the voice-agent webhook body.
type VoiceOrderRequest struct {
	RestaurantID         string          `json:"restaurant_id"`
	RestaurantIdentifier string          `json:"restaurant_identifier"`
	CustomerName         string          `json:"customer_name"`
	CustomerPhone        string          `json:"customer_phone"`
	CustomerEmail        string          `json:"customer_email"`
	Type                 string          `json:"type"`
	Items                []RequestedItem `json:"items"`
}

// ManualOrderRequest is an order keyed in from the dashboard.
type ManualOrderRequest struct {
	RestaurantID  string          `json:"restaurant_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	CustomerEmail string          `json:"customer_email"`
	Type          string          `json:"type"`
	Items         []RequestedItem `json:"items"`
}
