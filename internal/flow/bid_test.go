package flow

import (
	"context"
	"errors"
	"testing"

	"flowy-seller/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBidFlow_Submit_Success(t *testing.T) {
	gateway := new(MockGateway)
	requests := new(MockRefetcher)

	submitted := &model.Bid{ID: "b1", CustomRequestID: "r1", SellerID: "seller-1", Price: 25}
	gateway.On("SubmitBid", mock.Anything, "seller-1", "r1", float64(25)).Return(submitted, nil).Once()
	requests.On("Refetch", mock.Anything).Return(nil).Once()

	bidFlow := NewBidFlow(gateway, "seller-1", requests, zerolog.Nop())

	bid, err := bidFlow.Submit(context.Background(), "r1", "25.00")

	require.NoError(t, err)
	assert.Equal(t, "b1", bid.ID)

	// The owning custom-requests controller refetches exactly once.
	gateway.AssertExpectations(t)
	requests.AssertExpectations(t)
	requests.AssertNumberOfCalls(t, "Refetch", 1)
}

func TestBidFlow_Submit_InvalidPrice_NoNetworkCall(t *testing.T) {
	tests := []struct {
		name  string
		price string
	}{
		{name: "Zero", price: "0"},
		{name: "Negative", price: "-5"},
		{name: "Not a number", price: "abc"},
		{name: "Empty", price: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := new(MockGateway)
			requests := new(MockRefetcher)
			bidFlow := NewBidFlow(gateway, "seller-1", requests, zerolog.Nop())

			bid, err := bidFlow.Submit(context.Background(), "r1", tt.price)

			require.Error(t, err)
			assert.Nil(t, bid)
			assert.True(t, model.IsValidation(err))
			gateway.AssertNotCalled(t, "SubmitBid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			requests.AssertNotCalled(t, "Refetch", mock.Anything)
		})
	}
}

func TestBidFlow_Submit_GatewayFailure_NoRefetch(t *testing.T) {
	gateway := new(MockGateway)
	requests := new(MockRefetcher)

	cause := model.NewRequestFailed("submit_bid", errors.New("backend returned status 500"))
	gateway.On("SubmitBid", mock.Anything, "seller-1", "r1", float64(25)).Return(nil, cause).Once()

	bidFlow := NewBidFlow(gateway, "seller-1", requests, zerolog.Nop())

	bid, err := bidFlow.Submit(context.Background(), "r1", "25")

	require.Error(t, err)
	assert.Nil(t, bid)
	assert.True(t, model.IsRequestFailed(err))
	requests.AssertNotCalled(t, "Refetch", mock.Anything)
}

func TestBidFlow_Submit_RefetchFailureDoesNotFailSubmission(t *testing.T) {
	gateway := new(MockGateway)
	requests := new(MockRefetcher)

	submitted := &model.Bid{ID: "b1"}
	gateway.On("SubmitBid", mock.Anything, "seller-1", "r1", float64(18)).Return(submitted, nil).Once()
	requests.On("Refetch", mock.Anything).Return(errors.New("refetch boom")).Once()

	bidFlow := NewBidFlow(gateway, "seller-1", requests, zerolog.Nop())

	bid, err := bidFlow.Submit(context.Background(), "r1", "18")

	// The bid went through; a failed refetch only leaves the view stale.
	require.NoError(t, err)
	assert.Equal(t, "b1", bid.ID)
}

func TestBidFlow_Submit_RejectsConcurrentSubmission(t *testing.T) {
	gateway := new(MockGateway)
	requests := new(MockRefetcher)

	bidFlow := NewBidFlow(gateway, "seller-1", requests, zerolog.Nop())
	bidFlow.submitting = true

	bid, err := bidFlow.Submit(context.Background(), "r1", "25")

	require.Error(t, err)
	assert.Nil(t, bid)
	assert.True(t, model.IsValidation(err))
	gateway.AssertNotCalled(t, "SubmitBid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
