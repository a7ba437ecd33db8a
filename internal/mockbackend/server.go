// Package mockbackend implements an in-memory stand-in for the marketplace
// backend, mirroring the wire contract the client depends on. It exists for
// local development and integration tests; the real backend is out of
// scope.
package mockbackend

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"flowy-seller/internal/model"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// Server exposes the mock backend's HTTP surface.
type Server struct {
	store  *Store
	logger zerolog.Logger
}

// NewServer creates a mock backend server over the given store.
func NewServer(store *Store, logger zerolog.Logger) *Server {
	return &Server{
		store:  store,
		logger: logger.With().Str("component", "mockbackend").Logger(),
	}
}

// Router builds the route table mirroring the real backend under /api/v1.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/seller/authenticate", s.authenticate).Methods(http.MethodPost)
	v1.HandleFunc("/seller/flowers", s.listFlowers).Methods(http.MethodGet)
	v1.HandleFunc("/seller/flowers", s.createFlower).Methods(http.MethodPost)
	v1.HandleFunc("/seller/flowers/{id}", s.updateFlower).Methods(http.MethodPut)
	v1.HandleFunc("/seller/flowers/{id}", s.deleteFlower).Methods(http.MethodDelete)
	v1.HandleFunc("/seller/custom_requests", s.listRequests).Methods(http.MethodGet)
	v1.HandleFunc("/seller/bids", s.submitBid).Methods(http.MethodPost)
	v1.HandleFunc("/seller/orders", s.listOrders).Methods(http.MethodGet)
	v1.HandleFunc("/seller/orders", s.createOrder).Methods(http.MethodPost)
	v1.HandleFunc("/seller/orders/{id}/pickup", s.setPickup).Methods(http.MethodPost)

	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}

func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Auth string `json:"auth"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	seller, ok := s.store.SellerByToken(body.Auth)
	if !ok {
		// An unknown token is still a 200: the explicit not-found
		// signal is the absent profile.
		s.writeJSON(w, http.StatusOK, map[string]interface{}{"profile": nil})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"profile": seller})
}

func (s *Server) listFlowers(w http.ResponseWriter, r *http.Request) {
	sellerID := r.URL.Query().Get("seller_id")
	s.writeJSON(w, http.StatusOK, s.store.FlowersBySeller(sellerID))
}

func (s *Server) createFlower(w http.ResponseWriter, r *http.Request) {
	flower, ok := s.parseFlowerForm(w, r)
	if !ok {
		return
	}
	created := s.store.AddFlower(flower)
	s.logger.Info().Str("flower_id", created.ID).Msg("listing created")
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateFlower(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	flower, ok := s.parseFlowerForm(w, r)
	if !ok {
		return
	}
	updated, found := s.store.UpdateFlower(id, flower)
	if !found {
		s.writeError(w, http.StatusNotFound, "flower not found")
		return
	}
	s.logger.Info().Str("flower_id", id).Msg("listing updated")
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteFlower(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	// net/http only parses form bodies for POST/PUT/PATCH, so read the
	// DELETE body explicitly.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	form, err := url.ParseQuery(string(body))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	sellerID := form.Get("seller_id")

	err = s.store.DeleteFlower(id, sellerID)
	switch {
	case errors.Is(err, errFlowerNotFound):
		s.writeError(w, http.StatusNotFound, "flower not found")
	case errors.Is(err, errNotOwner):
		s.writeError(w, http.StatusForbidden, "flower does not belong to seller")
	case err != nil:
		s.writeError(w, http.StatusInternalServerError, "failed to delete flower")
	default:
		s.logger.Info().Str("flower_id", id).Msg("listing deleted")
		s.writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func (s *Server) listRequests(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.Requests())
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	sellerID := r.URL.Query().Get("seller_id")
	s.writeJSON(w, http.StatusOK, s.store.OrdersBySeller(sellerID))
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var order model.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	created := s.store.AddOrder(order)
	s.logger.Info().Str("order_id", created.ID).Msg("order created")
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) submitBid(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SellerID  string  `json:"seller_id"`
		BouquetID string  `json:"bouquet_id"`
		Price     float64 `json:"price"`
		Lang      string  `json:"lang"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if body.Price <= 0 {
		s.writeError(w, http.StatusBadRequest, "price must be greater than zero")
		return
	}

	if _, ok := s.store.RequestByID(body.BouquetID); !ok {
		s.writeError(w, http.StatusNotFound, "custom request not found")
		return
	}

	bid := s.store.AddBid(body.SellerID, body.BouquetID, body.Price)
	s.logger.Info().
		Str("bid_id", bid.ID).
		Str("request_id", body.BouquetID).
		Float64("price", body.Price).
		Msg("bid submitted")
	s.writeJSON(w, http.StatusCreated, bid)
}

func (s *Server) setPickup(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var body struct {
		PickupInfo string `json:"pickup_info"`
		Lang       string `json:"lang"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pickupTime, err := time.Parse("2006-01-02T15:04:05.000Z", body.PickupInfo)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid pickup timestamp")
		return
	}

	order, ok := s.store.SetPickup(id, pickupTime)
	if !ok {
		s.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	s.logger.Info().Str("order_id", id).Time("pickup_time", pickupTime).Msg("pickup scheduled")
	s.writeJSON(w, http.StatusOK, order)
}

// parseFlowerForm reads the multipart listing payload shared by create and
// update. The image part is stored by filename only; there is no real media
// storage behind the mock.
func (s *Server) parseFlowerForm(w http.ResponseWriter, r *http.Request) (model.Flower, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart body")
		return model.Flower{}, false
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil || price <= 0 {
		s.writeError(w, http.StatusBadRequest, "invalid price")
		return model.Flower{}, false
	}

	flower := model.Flower{
		SellerID:    r.FormValue("seller_id"),
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       price,
		Items:       r.MultipartForm.Value["items"],
	}

	if file, header, err := r.FormFile("image"); err == nil {
		file.Close()
		flower.ImagePath = "/uploads/" + header.Filename
		flower.ImageURL = "https://images.example/uploads/" + header.Filename
	}

	return flower, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.logger.Warn().Int("status", status).Str("error", message).Msg("request rejected")
	s.writeJSON(w, status, map[string]string{"error": message})
}
