package model

import "time"

// Custom request statuses. Transitions are owned by the backend; this
// client only ever reads them.
const (
	RequestStatusOpen      = "open"
	RequestStatusAccepted  = "accepted"
	RequestStatusCompleted = "completed"
	RequestStatusCancelled = "cancelled"
)

// CustomRequest represents a buyer's description of a desired arrangement,
// open for seller bids.
type CustomRequest struct {
	ID               string    `json:"id"`
	BuyerTelegramID  int64     `json:"buyer_telegram_id"`
	BuyerName        string    `json:"buyer_name"`
	ImageURL         string    `json:"image_url,omitempty"`
	Prompt           string    `json:"prompt"`
	Items            []string  `json:"items,omitempty"`
	BuyerLocationLat *float64  `json:"buyer_location_lat"`
	BuyerLocationLon *float64  `json:"buyer_location_lon"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}
