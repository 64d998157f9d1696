package menu

import "time"

// Item is one priced line of a restaurant menu.
type Item struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category,omitempty"`
	Price        float64 `json:"price"`
}

const (
	UploadParsed = "PARSED"
	UploadFailed = "FAILED"
)

// Upload records one menu file import.
type Upload struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	ObjectKey    string    `json:"object_key"`
	Filename     string    `json:"filename"`
	Status       string    `json:"status"`
	ItemCount    int       `json:"item_count"`
	Reason       string    `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
