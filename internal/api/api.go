package api

import (
	"context"
	"io"
	"time"

	"flowy-seller/internal/model"
)

// Gateway operation names, carried on RequestFailed errors.
const (
	OpAuthenticate       = "authenticate"
	OpListFlowers        = "list_flowers"
	OpListCustomRequests = "list_custom_requests"
	OpListOrders         = "list_orders"
	OpSubmitBid          = "submit_bid"
	OpSchedulePickup     = "schedule_pickup"
	OpCreateFlower       = "create_flower"
	OpUpdateFlower       = "update_flower"
	OpDeleteFlower       = "delete_flower"
	OpCreateOrder        = "create_order"
)

// PickupTimeFormat is the wire format for pickup timestamps, matching the
// backend's expectation of millisecond-precision UTC.
const PickupTimeFormat = "2006-01-02T15:04:05.000Z"

// FormatPickupTime renders a pickup timestamp in the backend wire format.
func FormatPickupTime(t time.Time) string {
	return t.UTC().Format(PickupTimeFormat)
}

// ImageAttachment is a binary image carried in a multipart listing payload.
type ImageAttachment struct {
	Filename string
	Reader   io.Reader
}

// FlowerPayload is the validated form state for creating or updating a
// listing. Callers validate; the gateway performs no additional checks.
type FlowerPayload struct {
	SellerID    string
	Name        string
	Description string
	Price       float64
	Items       []string
	Image       *ImageAttachment
}

// Gateway is the single point of contact with the marketplace backend.
// One operation per backend capability, exactly one network call per
// invocation, no caching and no retries.
type Gateway interface {
	// Authenticate exchanges an opaque identity token for a seller
	// profile. A missing profile in the response is a NotFound outcome.
	Authenticate(ctx context.Context, token string) (*model.Seller, error)

	// ListFlowers retrieves the seller's listings.
	ListFlowers(ctx context.Context, sellerID string) ([]model.Flower, error)

	// ListCustomRequests retrieves the open custom requests. The
	// collection is globally scoped, not keyed by seller.
	ListCustomRequests(ctx context.Context) ([]model.CustomRequest, error)

	// ListOrders retrieves the seller's orders.
	ListOrders(ctx context.Context, sellerID string) ([]model.Order, error)

	// SubmitBid places a priced offer against a custom request.
	SubmitBid(ctx context.Context, sellerID, requestID string, price float64) (*model.Bid, error)

	// SchedulePickup attaches a pickup timestamp to an order.
	SchedulePickup(ctx context.Context, orderID string, pickupTime time.Time) (*model.Order, error)

	// CreateFlower creates a listing from a multipart payload.
	CreateFlower(ctx context.Context, payload FlowerPayload) (*model.Flower, error)

	// UpdateFlower replaces a listing with the full current form state.
	UpdateFlower(ctx context.Context, flowerID string, payload FlowerPayload) (*model.Flower, error)

	// DeleteFlower deletes a listing, passing the seller id for the
	// backend's ownership check.
	DeleteFlower(ctx context.Context, flowerID, sellerID string) error

	// CreateOrder records a direct listing purchase as an order.
	CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error)
}
