package model

// Flower listing statuses.
const (
	FlowerStatusActive   = "active"
	FlowerStatusInactive = "inactive"
	FlowerStatusSold     = "sold"
)

// Flower represents a seller's product listing.
type Flower struct {
	ID          string   `json:"id"`
	SellerID    string   `json:"seller_id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"image_url,omitempty"`
	ImagePath   string   `json:"image_path,omitempty"`
	Status      string   `json:"status,omitempty"`
	Items       []string `json:"items,omitempty"`
}
