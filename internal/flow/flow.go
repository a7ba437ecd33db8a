// Package flow implements the seller's mutation workflows: bid submission,
// pickup scheduling and listing create/update/delete. Each flow validates
// locally before any network call, submits through the API gateway, and on
// success signals the owning collection controller to refetch. The refetch
// signal is fire-and-forget: its outcome never affects the mutation's own
// success path.
package flow

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"flowy-seller/internal/model"
)

// Refetcher is the refresh capability a flow is allowed to call after a
// successful mutation. Each flow is constructed with an explicit reference
// to exactly the collection it may refresh.
type Refetcher interface {
	Refetch(ctx context.Context) error
}

// ParsePrice validates a free-text price input. It accepts iff the input
// parses to a finite number strictly greater than zero.
func ParsePrice(input string) (float64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, model.NewValidationError("price is required")
	}

	price, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, model.NewValidationError("price must be a valid number")
	}

	if price <= 0 {
		return 0, model.NewValidationError("price must be greater than zero")
	}

	return price, nil
}

// CombinePickupTime combines a calendar date (2006-01-02) and a time of day
// (15:04) into a single timestamp in loc. The gateway converts it to UTC on
// the wire.
func CombinePickupTime(date, timeOfDay string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, loc)
	if err != nil {
		return time.Time{}, model.NewValidationError("invalid pickup date or time")
	}

	return t, nil
}
