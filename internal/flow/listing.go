package flow

import (
	"context"
	"errors"
	"strings"
	"sync"

	"flowy-seller/internal/api"
	"flowy-seller/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ListingForm is the full current form state for a listing. Create and
// update both send every field; there is no partial-field update contract.
type ListingForm struct {
	Name        string `validate:"required"`
	Description string
	Price       string   `validate:"required"`
	Items       []string `validate:"required,min=1,dive,required"`
	Image       *api.ImageAttachment
}

// ListingFlow handles create, update and delete of a seller's listings.
type ListingFlow struct {
	gateway  api.Gateway
	sellerID string
	listings Refetcher
	validate *validator.Validate
	logger   zerolog.Logger

	mu         sync.Mutex
	submitting bool
}

// NewListingFlow creates a listing flow for the authenticated seller. The
// listings refetcher must be the controller owning the listings collection.
func NewListingFlow(gateway api.Gateway, sellerID string, listings Refetcher, logger zerolog.Logger) *ListingFlow {
	return &ListingFlow{
		gateway:  gateway,
		sellerID: sellerID,
		listings: listings,
		validate: validator.New(),
		logger:   logger.With().Str("flow", "listing").Logger(),
	}
}

// Create validates the form and creates a new listing. On success the
// listings collection is refetched exactly once.
func (f *ListingFlow) Create(ctx context.Context, form ListingForm) (*model.Flower, error) {
	payload, err := f.buildPayload(form)
	if err != nil {
		return nil, err
	}

	if !f.begin() {
		return nil, model.NewValidationError("a listing submission is already in progress")
	}
	defer f.end()

	flower, err := f.gateway.CreateFlower(ctx, payload)
	if err != nil {
		f.logger.Warn().Err(err).Str("name", form.Name).Msg("listing creation failed")
		return nil, err
	}

	if err := f.listings.Refetch(ctx); err != nil {
		f.logger.Warn().Err(err).Msg("listings refetch failed after create")
	}

	return flower, nil
}

// Update validates the form and replaces an existing listing with it. On
// success the listings collection is refetched exactly once.
func (f *ListingFlow) Update(ctx context.Context, flowerID string, form ListingForm) (*model.Flower, error) {
	payload, err := f.buildPayload(form)
	if err != nil {
		return nil, err
	}

	if !f.begin() {
		return nil, model.NewValidationError("a listing submission is already in progress")
	}
	defer f.end()

	flower, err := f.gateway.UpdateFlower(ctx, flowerID, payload)
	if err != nil {
		f.logger.Warn().Err(err).Str("flower_id", flowerID).Msg("listing update failed")
		return nil, err
	}

	if err := f.listings.Refetch(ctx); err != nil {
		f.logger.Warn().Err(err).Msg("listings refetch failed after update")
	}

	return flower, nil
}

// Delete removes a listing after the caller's yes/no confirmation gate.
// When confirmed is false no network call is made and the listing stays
// untouched; the returned bool reports whether a deletion happened.
func (f *ListingFlow) Delete(ctx context.Context, flowerID string, confirmed bool) (bool, error) {
	if !confirmed {
		f.logger.Debug().Str("flower_id", flowerID).Msg("deletion declined")
		return false, nil
	}

	if err := f.gateway.DeleteFlower(ctx, flowerID, f.sellerID); err != nil {
		f.logger.Warn().Err(err).Str("flower_id", flowerID).Msg("listing deletion failed")
		return false, err
	}

	if err := f.listings.Refetch(ctx); err != nil {
		f.logger.Warn().Err(err).Msg("listings refetch failed after delete")
	}

	return true, nil
}

// buildPayload runs the two-stage validation: required-field presence first
// (one aggregated message), then the numeric price check. Any failure
// blocks submission before a request is built.
func (f *ListingFlow) buildPayload(form ListingForm) (api.FlowerPayload, error) {
	missing := f.missingFields(form)
	if len(missing) > 0 {
		return api.FlowerPayload{}, model.NewValidationError(
			"please fill in all required fields: " + strings.Join(missing, ", "))
	}

	price, err := ParsePrice(form.Price)
	if err != nil {
		return api.FlowerPayload{}, err
	}

	return api.FlowerPayload{
		SellerID:    f.sellerID,
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Items:       form.Items,
		Image:       form.Image,
	}, nil
}

// missingFields returns the lowercased, deduplicated names of the required
// fields the form is lacking.
func (f *ListingFlow) missingFields(form ListingForm) []string {
	var missing []string
	seen := map[string]bool{}

	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
	}

	if err := f.validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				name := strings.ToLower(fe.Field())
				if i := strings.IndexByte(name, '['); i >= 0 {
					name = name[:i]
				}
				add(name)
			}
		} else {
			add("form")
		}
	}

	if form.Image == nil {
		add("image")
	}

	return missing
}

func (f *ListingFlow) begin() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return false
	}
	f.submitting = true
	return true
}

func (f *ListingFlow) end() {
	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()
}
