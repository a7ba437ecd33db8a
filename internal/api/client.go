package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"flowy-seller/internal/model"

	"github.com/rs/zerolog"
)

// Client is the HTTP implementation of Gateway.
type Client struct {
	baseURL    string
	lang       string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a gateway client for the backend at baseURL. The lang
// value is forwarded on bid and pickup submissions so the backend can
// localise buyer notifications.
func NewClient(baseURL string, timeout time.Duration, lang string, logger zerolog.Logger) *Client {
	if lang == "" {
		lang = "en"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		lang:    lang,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// Authenticate exchanges the opaque identity token for a seller profile.
func (c *Client) Authenticate(ctx context.Context, token string) (*model.Seller, error) {
	if strings.TrimSpace(token) == "" || strings.ContainsAny(token, " \t\r\n") {
		return nil, model.NewInvalidTokenError("authentication token is missing or malformed")
	}

	c.logger.Info().Msg("authenticating seller")

	body, err := json.Marshal(map[string]string{"auth": token})
	if err != nil {
		return nil, model.NewRequestFailed(OpAuthenticate, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/seller/authenticate", bytes.NewReader(body))
	if err != nil {
		return nil, model.NewRequestFailed(OpAuthenticate, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var authResp struct {
		Profile *model.Seller `json:"profile"`
	}
	if err := c.send(req, OpAuthenticate, false, &authResp); err != nil {
		return nil, err
	}

	if authResp.Profile == nil || authResp.Profile.ID == "" {
		c.logger.Warn().Msg("no seller profile for token")
		return nil, model.NewNotFound(OpAuthenticate, "seller not found")
	}

	c.logger.Info().Str("seller_id", authResp.Profile.ID).Msg("seller authenticated")
	return authResp.Profile, nil
}

// ListFlowers retrieves the seller's listings.
func (c *Client) ListFlowers(ctx context.Context, sellerID string) ([]model.Flower, error) {
	c.logger.Debug().Str("seller_id", sellerID).Msg("fetching listings")

	endpoint := c.baseURL + "/seller/flowers?seller_id=" + url.QueryEscape(sellerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, model.NewRequestFailed(OpListFlowers, err)
	}

	var flowers []model.Flower
	if err := c.send(req, OpListFlowers, false, &flowers); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(flowers)).Msg("retrieved listings")
	return flowers, nil
}

// ListCustomRequests retrieves the open custom requests.
func (c *Client) ListCustomRequests(ctx context.Context) ([]model.CustomRequest, error) {
	c.logger.Debug().Msg("fetching custom requests")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/seller/custom_requests", nil)
	if err != nil {
		return nil, model.NewRequestFailed(OpListCustomRequests, err)
	}

	var requests []model.CustomRequest
	if err := c.send(req, OpListCustomRequests, false, &requests); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(requests)).Msg("retrieved custom requests")
	return requests, nil
}

// ListOrders retrieves the seller's orders.
func (c *Client) ListOrders(ctx context.Context, sellerID string) ([]model.Order, error) {
	c.logger.Debug().Str("seller_id", sellerID).Msg("fetching orders")

	endpoint := c.baseURL + "/seller/orders?seller_id=" + url.QueryEscape(sellerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, model.NewRequestFailed(OpListOrders, err)
	}

	var orders []model.Order
	if err := c.send(req, OpListOrders, false, &orders); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(orders)).Msg("retrieved orders")
	return orders, nil
}

// SubmitBid places a priced offer against a custom request.
func (c *Client) SubmitBid(ctx context.Context, sellerID, requestID string, price float64) (*model.Bid, error) {
	c.logger.Info().
		Str("seller_id", sellerID).
		Str("request_id", requestID).
		Float64("price", price).
		Msg("submitting bid")

	body, err := json.Marshal(map[string]interface{}{
		"seller_id":  sellerID,
		"bouquet_id": requestID,
		"price":      price,
		"lang":       c.lang,
	})
	if err != nil {
		return nil, model.NewRequestFailed(OpSubmitBid, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/seller/bids", bytes.NewReader(body))
	if err != nil {
		return nil, model.NewRequestFailed(OpSubmitBid, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var bid model.Bid
	if err := c.send(req, OpSubmitBid, false, &bid); err != nil {
		return nil, err
	}

	c.logger.Info().Str("bid_id", bid.ID).Msg("bid submitted")
	return &bid, nil
}

// SchedulePickup attaches a pickup timestamp to an order. A 404 from the
// backend maps to NotFound rather than a generic transport failure.
func (c *Client) SchedulePickup(ctx context.Context, orderID string, pickupTime time.Time) (*model.Order, error) {
	c.logger.Info().
		Str("order_id", orderID).
		Time("pickup_time", pickupTime).
		Msg("scheduling pickup")

	body, err := json.Marshal(map[string]string{
		"pickup_info": FormatPickupTime(pickupTime),
		"lang":        c.lang,
	})
	if err != nil {
		return nil, model.NewRequestFailed(OpSchedulePickup, err)
	}

	endpoint := c.baseURL + "/seller/orders/" + url.PathEscape(orderID) + "/pickup"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, model.NewRequestFailed(OpSchedulePickup, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var order model.Order
	if err := c.send(req, OpSchedulePickup, true, &order); err != nil {
		return nil, err
	}

	c.logger.Info().Str("order_id", order.ID).Msg("pickup scheduled")
	return &order, nil
}

// CreateFlower creates a listing from a multipart payload.
func (c *Client) CreateFlower(ctx context.Context, payload FlowerPayload) (*model.Flower, error) {
	c.logger.Info().Str("name", payload.Name).Msg("creating listing")

	body, contentType, err := encodeFlowerForm(payload)
	if err != nil {
		return nil, model.NewRequestFailed(OpCreateFlower, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/seller/flowers", body)
	if err != nil {
		return nil, model.NewRequestFailed(OpCreateFlower, err)
	}
	req.Header.Set("Content-Type", contentType)

	var flower model.Flower
	if err := c.send(req, OpCreateFlower, false, &flower); err != nil {
		return nil, err
	}

	c.logger.Info().Str("flower_id", flower.ID).Msg("listing created")
	return &flower, nil
}

// UpdateFlower replaces a listing with the full current form state.
func (c *Client) UpdateFlower(ctx context.Context, flowerID string, payload FlowerPayload) (*model.Flower, error) {
	c.logger.Info().Str("flower_id", flowerID).Msg("updating listing")

	body, contentType, err := encodeFlowerForm(payload)
	if err != nil {
		return nil, model.NewRequestFailed(OpUpdateFlower, err)
	}

	endpoint := c.baseURL + "/seller/flowers/" + url.PathEscape(flowerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return nil, model.NewRequestFailed(OpUpdateFlower, err)
	}
	req.Header.Set("Content-Type", contentType)

	var flower model.Flower
	if err := c.send(req, OpUpdateFlower, true, &flower); err != nil {
		return nil, err
	}

	c.logger.Info().Str("flower_id", flower.ID).Msg("listing updated")
	return &flower, nil
}

// DeleteFlower deletes a listing. The seller id travels in the body for the
// backend's ownership check.
func (c *Client) DeleteFlower(ctx context.Context, flowerID, sellerID string) error {
	c.logger.Info().Str("flower_id", flowerID).Msg("deleting listing")

	form := url.Values{}
	form.Set("seller_id", sellerID)

	endpoint := c.baseURL + "/seller/flowers/" + url.PathEscape(flowerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return model.NewRequestFailed(OpDeleteFlower, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := c.send(req, OpDeleteFlower, true, nil); err != nil {
		return err
	}

	c.logger.Info().Str("flower_id", flowerID).Msg("listing deleted")
	return nil
}

// CreateOrder records a direct listing purchase as an order.
func (c *Client) CreateOrder(ctx context.Context, order *model.Order) (*model.Order, error) {
	c.logger.Info().Str("seller_id", order.SellerID).Msg("creating order")

	body, err := json.Marshal(order)
	if err != nil {
		return nil, model.NewRequestFailed(OpCreateOrder, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/seller/orders", bytes.NewReader(body))
	if err != nil {
		return nil, model.NewRequestFailed(OpCreateOrder, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var created model.Order
	if err := c.send(req, OpCreateOrder, false, &created); err != nil {
		return nil, err
	}

	c.logger.Info().Str("order_id", created.ID).Msg("order created")
	return &created, nil
}

// send issues the request and decodes a 2xx JSON response into out. When
// mapNotFound is set, a 404 becomes a semantic NotFound error; every other
// non-2xx is a RequestFailed tagged with op. Exactly one attempt is made.
func (c *Client) send(req *http.Request, op string, mapNotFound bool, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("op", op).Msg("request failed")
		return model.NewRequestFailed(op, err)
	}
	defer resp.Body.Close()

	if mapNotFound && resp.StatusCode == http.StatusNotFound {
		return model.NewNotFound(op, "resource not found")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error().Int("status", resp.StatusCode).Str("op", op).Msg("backend returned error status")
		return model.NewRequestFailed(op, fmt.Errorf("backend returned status %d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error().Err(err).Str("op", op).Msg("failed to decode response")
		return model.NewRequestFailed(op, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

// encodeFlowerForm assembles the multipart body shared by create and
// update: structured fields plus the binary image, when attached.
func encodeFlowerForm(payload FlowerPayload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"seller_id":   payload.SellerID,
		"name":        payload.Name,
		"description": payload.Description,
		"price":       strconv.FormatFloat(payload.Price, 'f', -1, 64),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	for _, item := range payload.Items {
		if err := w.WriteField("items", item); err != nil {
			return nil, "", fmt.Errorf("failed to write items field: %w", err)
		}
	}

	if payload.Image != nil {
		part, err := w.CreateFormFile("image", payload.Image.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := io.Copy(part, payload.Image.Reader); err != nil {
			return nil, "", fmt.Errorf("failed to copy image bytes: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalise multipart body: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
