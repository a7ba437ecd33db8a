package model

import "time"

// Bid statuses.
const (
	BidStatusPending  = "pending"
	BidStatusAccepted = "accepted"
	BidStatusRejected = "rejected"
)

// Bid represents a seller's priced offer against a custom request. Bids are
// created through this client but never edited or deleted from it.
type Bid struct {
	ID              string    `json:"id"`
	CustomRequestID string    `json:"custom_request_id"`
	SellerID        string    `json:"seller_id"`
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
