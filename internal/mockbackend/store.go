package mockbackend

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"flowy-seller/internal/model"

	"github.com/google/uuid"
)

// Store is the in-memory state behind the mock marketplace backend. All
// access goes through the RWMutex; the store outlives individual requests.
type Store struct {
	mu       sync.RWMutex
	tokens   map[string]string // auth token -> seller id
	sellers  map[string]model.Seller
	flowers  map[string]model.Flower
	requests map[string]model.CustomRequest
	bids     map[string]model.Bid
	orders   map[string]model.Order
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		tokens:   make(map[string]string),
		sellers:  make(map[string]model.Seller),
		flowers:  make(map[string]model.Flower),
		requests: make(map[string]model.CustomRequest),
		bids:     make(map[string]model.Bid),
		orders:   make(map[string]model.Order),
	}
}

// AddSeller registers a seller reachable through the given auth token.
func (s *Store) AddSeller(token string, seller model.Seller) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = seller.ID
	s.sellers[seller.ID] = seller
}

// SellerByToken resolves an auth token to a seller profile.
func (s *Store) SellerByToken(token string) (model.Seller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokens[token]
	if !ok {
		return model.Seller{}, false
	}
	seller, ok := s.sellers[id]
	return seller, ok
}

// AddFlower stores a listing, assigning an id when absent.
func (s *Store) AddFlower(flower model.Flower) model.Flower {
	s.mu.Lock()
	defer s.mu.Unlock()
	if flower.ID == "" {
		flower.ID = uuid.New().String()
	}
	if flower.Status == "" {
		flower.Status = model.FlowerStatusActive
	}
	s.flowers[flower.ID] = flower
	return flower
}

// UpdateFlower replaces a listing's mutable fields, keeping id and status.
func (s *Store) UpdateFlower(id string, flower model.Flower) (model.Flower, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.flowers[id]
	if !ok {
		return model.Flower{}, false
	}
	flower.ID = existing.ID
	if flower.SellerID == "" {
		flower.SellerID = existing.SellerID
	}
	if flower.Status == "" {
		flower.Status = existing.Status
	}
	s.flowers[id] = flower
	return flower, true
}

// DeleteFlower removes a listing after an ownership check.
func (s *Store) DeleteFlower(id, sellerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	flower, ok := s.flowers[id]
	if !ok {
		return errFlowerNotFound
	}
	if flower.SellerID != sellerID {
		return errNotOwner
	}
	delete(s.flowers, id)
	return nil
}

// FlowersBySeller returns the seller's listings ordered by name for stable
// responses.
func (s *Store) FlowersBySeller(sellerID string) []model.Flower {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Flower, 0)
	for _, f := range s.flowers {
		if f.SellerID == sellerID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AddRequest stores a custom request, assigning an id when absent.
func (s *Store) AddRequest(req model.CustomRequest) model.CustomRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if req.Status == "" {
		req.Status = model.RequestStatusOpen
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	s.requests[req.ID] = req
	return req
}

// RequestByID looks up a custom request.
func (s *Store) RequestByID(id string) (model.CustomRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.requests[id]
	return req, ok
}

// Requests returns every custom request, newest first.
func (s *Store) Requests() []model.CustomRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.CustomRequest, 0, len(s.requests))
	for _, r := range s.requests {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// AddBid stores a bid against a custom request.
func (s *Store) AddBid(sellerID, requestID string, price float64) model.Bid {
	s.mu.Lock()
	defer s.mu.Unlock()
	bid := model.Bid{
		ID:              uuid.New().String(),
		CustomRequestID: requestID,
		SellerID:        sellerID,
		Price:           price,
		Status:          model.BidStatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	s.bids[bid.ID] = bid
	return bid
}

// AddOrder stores an order, assigning an id when absent.
func (s *Store) AddOrder(order model.Order) model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPendingPickup
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	s.orders[order.ID] = order
	return order
}

// OrdersBySeller returns the seller's orders, newest first.
func (s *Store) OrdersBySeller(sellerID string) []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, 0)
	for _, o := range s.orders {
		if o.SellerID == sellerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// SetPickup attaches a pickup time to an order and confirms it.
func (s *Store) SetPickup(orderID string, pickupTime time.Time) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return model.Order{}, false
	}
	t := pickupTime.UTC()
	order.PickupTime = &t
	order.PickupInfo = t.Format("2006-01-02T15:04:05.000Z")
	order.Status = model.OrderStatusConfirmed
	s.orders[orderID] = order
	return order, true
}

var (
	errFlowerNotFound = fmt.Errorf("flower not found")
	errNotOwner       = fmt.Errorf("flower does not belong to seller")
)

// Seed populates the store with a sample seller, listings, requests and
// orders for local development.
func (s *Store) Seed() {
	lat, lon := 52.52, 13.405
	seller := model.Seller{
		ID:          "seller-1",
		TelegramID:  100001,
		ShopName:    "Rosa's Flower Corner",
		Address:     "12 Market Lane",
		LocationLat: &lat,
		LocationLon: &lon,
	}
	s.AddSeller("demo-token", seller)

	s.AddFlower(model.Flower{
		SellerID:    seller.ID,
		Name:        "Spring Medley",
		Description: "Seasonal mix with tulips and daffodils",
		Price:       24.5,
		Status:      model.FlowerStatusActive,
		Items:       []string{"tulip", "daffodil", "eucalyptus"},
		ImageURL:    "https://images.example/flowers/spring-medley.jpg",
	})
	s.AddFlower(model.Flower{
		SellerID:    seller.ID,
		Name:        "Red Rose Dozen",
		Description: "Classic dozen long-stem roses",
		Price:       39.0,
		Status:      model.FlowerStatusActive,
		Items:       []string{"rose"},
		ImageURL:    "https://images.example/flowers/red-rose-dozen.jpg",
	})

	s.AddRequest(model.CustomRequest{
		BuyerTelegramID: 200001,
		BuyerName:       "Anna",
		Prompt:          "Something pastel for a birthday, no lilies please",
		Items:           []string{"peony", "ranunculus"},
		ImageURL:        "https://images.example/requests/pastel.jpg",
	})

	s.AddOrder(model.Order{
		BuyerID:   "buyer-7",
		SellerID:  seller.ID,
		BuyerName: "Mikhail",
		Price:     39.0,
		Status:    model.OrderStatusPendingPickup,
		ImageURL:  "https://images.example/flowers/red-rose-dozen.jpg",
	})
}
