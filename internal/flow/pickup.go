package flow

import (
	"context"
	"sync"
	"time"

	"flowy-seller/internal/api"
	"flowy-seller/internal/model"

	"github.com/rs/zerolog"
)

// OrderSource is the view of the orders collection the pickup flow needs:
// the current items for the set-once gate plus the refetch hook.
type OrderSource interface {
	Refetcher
	Items() []model.Order
}

// PickupFlow validates and submits a pickup date/time pair against an
// order that lacks one. The pickup time is set at most once per order;
// Schedule refuses an order whose pickup is already present in the orders
// collection.
type PickupFlow struct {
	gateway api.Gateway
	orders  OrderSource
	loc     *time.Location
	logger  zerolog.Logger

	mu         sync.Mutex
	submitting bool
}

// NewPickupFlow creates a pickup flow. loc is the seller's local time zone
// used to interpret the date/time inputs; nil means time.Local.
func NewPickupFlow(gateway api.Gateway, orders OrderSource, loc *time.Location, logger zerolog.Logger) *PickupFlow {
	if loc == nil {
		loc = time.Local
	}
	return &PickupFlow{
		gateway: gateway,
		orders:  orders,
		loc:     loc,
		logger:  logger.With().Str("flow", "pickup").Logger(),
	}
}

// Schedule combines the date and time inputs into a single timestamp and
// submits it for the order. Both inputs are required, and an order whose
// pickup time is already set is refused without a network call. On success
// the orders collection is refetched exactly once.
func (f *PickupFlow) Schedule(ctx context.Context, orderID, date, timeOfDay string) (*model.Order, error) {
	if date == "" || timeOfDay == "" {
		return nil, model.NewValidationError("please select both date and time")
	}

	pickupTime, err := CombinePickupTime(date, timeOfDay, f.loc)
	if err != nil {
		return nil, err
	}

	for _, o := range f.orders.Items() {
		if o.ID == orderID && o.HasPickup() {
			return nil, model.NewValidationError("a pickup is already scheduled for this order")
		}
	}

	if !f.begin() {
		return nil, model.NewValidationError("a pickup submission is already in progress")
	}
	defer f.end()

	order, err := f.gateway.SchedulePickup(ctx, orderID, pickupTime)
	if err != nil {
		f.logger.Warn().Err(err).Str("order_id", orderID).Msg("pickup scheduling failed")
		return nil, err
	}

	if err := f.orders.Refetch(ctx); err != nil {
		f.logger.Warn().Err(err).Msg("orders refetch failed after pickup scheduling")
	}

	return order, nil
}

func (f *PickupFlow) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return false
	}
	f.submitting = true
	return true
}

func (f *PickupFlow) end() {
	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()
}
