package model

// Seller represents an authenticated flower seller profile.
type Seller struct {
	ID          string   `json:"id"`
	TelegramID  int64    `json:"telegram_id"`
	ShopName    string   `json:"shop_name"`
	Address     string   `json:"address"`
	LocationLat *float64 `json:"location_lat"`
	LocationLon *float64 `json:"location_lon"`
}
