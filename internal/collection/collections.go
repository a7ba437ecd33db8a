package collection

import (
	"context"

	"flowy-seller/internal/api"
	"flowy-seller/internal/model"

	"github.com/rs/zerolog"
)

// Flowers creates the controller for a seller's listings.
func Flowers(gw api.Gateway, sellerID string, logger zerolog.Logger) *Controller[model.Flower] {
	return NewController("listings", func(ctx context.Context) ([]model.Flower, error) {
		return gw.ListFlowers(ctx, sellerID)
	}, logger)
}

// CustomRequests creates the controller for the open custom requests.
// The collection is globally scoped, so no key is needed.
func CustomRequests(gw api.Gateway, logger zerolog.Logger) *Controller[model.CustomRequest] {
	return NewController("custom_requests", func(ctx context.Context) ([]model.CustomRequest, error) {
		return gw.ListCustomRequests(ctx)
	}, logger)
}

// Orders creates the controller for a seller's orders.
func Orders(gw api.Gateway, sellerID string, logger zerolog.Logger) *Controller[model.Order] {
	return NewController("orders", func(ctx context.Context) ([]model.Order, error) {
		return gw.ListOrders(ctx, sellerID)
	}, logger)
}
