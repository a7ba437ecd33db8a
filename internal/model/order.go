package model

import "time"

// Order statuses observed from the backend. The status field is a free-form
// string; unknown values must render as-is.
const (
	OrderStatusPendingPickup = "pending_pickup"
	OrderStatusConfirmed     = "confirmed"
	OrderStatusCompleted     = "completed"
)

// Order represents a confirmed transaction the seller fulfils via pickup.
// It optionally references the flower listing or bid that produced it.
type Order struct {
	ID         string     `json:"id"`
	BuyerID    string     `json:"buyer_id"`
	SellerID   string     `json:"seller_id"`
	FlowerID   string     `json:"flower_id,omitempty"`
	BouquetID  string     `json:"bouquet_id,omitempty"`
	BidID      string     `json:"bid_id,omitempty"`
	Status     string     `json:"status"`
	Price      float64    `json:"price,omitempty"`
	BuyerName  string     `json:"buyer_name,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
	PickupInfo string     `json:"pickup_info,omitempty"`
	PickupTime *time.Time `json:"pickup_time,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// HasPickup reports whether a pickup time has already been attached. Once
// set, the pickup time is not editable again from this client.
func (o *Order) HasPickup() bool {
	return o.PickupTime != nil && !o.PickupTime.IsZero()
}

// StatusLabel returns the display label for an order status. Unknown
// statuses are passed through unchanged.
func (o *Order) StatusLabel() string {
	switch o.Status {
	case OrderStatusPendingPickup:
		return "Pending"
	case OrderStatusConfirmed:
		return "Confirmed"
	case OrderStatusCompleted:
		return "Completed"
	default:
		return o.Status
	}
}
