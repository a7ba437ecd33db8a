package flow

import (
	"context"
	"sync"

	"flowy-seller/internal/api"
	"flowy-seller/internal/model"

	"github.com/rs/zerolog"
)

// BidFlow validates and submits a seller's price offer against an open
// custom request.
type BidFlow struct {
	gateway  api.Gateway
	sellerID string
	requests Refetcher
	logger   zerolog.Logger

	mu         sync.Mutex
	submitting bool
}

// NewBidFlow creates a bid flow for the authenticated seller. The requests
// refetcher must be the controller owning the custom-requests collection.
func NewBidFlow(gateway api.Gateway, sellerID string, requests Refetcher, logger zerolog.Logger) *BidFlow {
	return &BidFlow{
		gateway:  gateway,
		sellerID: sellerID,
		requests: requests,
		logger:   logger.With().Str("flow", "bid").Logger(),
	}
}

// Submit validates the free-text price and submits a bid against the given
// request. Validation failures never reach the gateway. On success the
// custom-requests collection is refetched exactly once; a transport failure
// is returned as-is so the caller can keep the form populated and retry.
func (f *BidFlow) Submit(ctx context.Context, requestID, priceInput string) (*model.Bid, error) {
	price, err := ParsePrice(priceInput)
	if err != nil {
		return nil, err
	}

	if !f.begin() {
		return nil, model.NewValidationError("a bid submission is already in progress")
	}
	defer f.end()

	bid, err := f.gateway.SubmitBid(ctx, f.sellerID, requestID, price)
	if err != nil {
		f.logger.Warn().Err(err).Str("request_id", requestID).Msg("bid submission failed")
		return nil, err
	}

	if err := f.requests.Refetch(ctx); err != nil {
		// The bid went through; refetch failure only means a stale view.
		f.logger.Warn().Err(err).Msg("custom-requests refetch failed after bid")
	}

	return bid, nil
}

// begin marks a submission in progress, guarding against duplicate bids
// from repeated triggers while a call is in flight.
func (f *BidFlow) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return false
	}
	f.submitting = true
	return true
}

func (f *BidFlow) end() {
	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()
}
