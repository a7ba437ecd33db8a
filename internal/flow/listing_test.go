package flow

import (
	"context"
	"errors"
	"strings"
	"testing"

	"flowy-seller/internal/api"
	"flowy-seller/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validForm() ListingForm {
	return ListingForm{
		Name:        "Spring Medley",
		Description: "Seasonal mix",
		Price:       "24.50",
		Items:       []string{"tulip", "daffodil"},
		Image: &api.ImageAttachment{
			Filename: "medley.jpg",
			Reader:   strings.NewReader("fake image bytes"),
		},
	}
}

func TestListingFlow_Create_Success(t *testing.T) {
	gateway := new(MockGateway)
	listings := new(MockRefetcher)

	created := &model.Flower{ID: "f1", Name: "Spring Medley"}
	gateway.On("CreateFlower", mock.Anything, mock.MatchedBy(func(p api.FlowerPayload) bool {
		return p.SellerID == "seller-1" &&
			p.Name == "Spring Medley" &&
			p.Price == 24.5 &&
			len(p.Items) == 2 &&
			p.Image != nil
	})).Return(created, nil).Once()
	listings.On("Refetch", mock.Anything).Return(nil).Once()

	listingFlow := NewListingFlow(gateway, "seller-1", listings, zerolog.Nop())

	flower, err := listingFlow.Create(context.Background(), validForm())

	require.NoError(t, err)
	assert.Equal(t, "f1", flower.ID)
	gateway.AssertExpectations(t)
	listings.AssertNumberOfCalls(t, "Refetch", 1)
}

func TestListingFlow_Create_MissingFields_NoNetworkCall(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ListingForm)
		missing string
	}{
		{
			name:    "Missing name",
			mutate:  func(f *ListingForm) { f.Name = "" },
			missing: "name",
		},
		{
			name:    "Missing price",
			mutate:  func(f *ListingForm) { f.Price = "" },
			missing: "price",
		},
		{
			name:    "No items",
			mutate:  func(f *ListingForm) { f.Items = nil },
			missing: "items",
		},
		{
			name:    "Blank item entry",
			mutate:  func(f *ListingForm) { f.Items = []string{"tulip", ""} },
			missing: "items",
		},
		{
			name:    "Missing image",
			mutate:  func(f *ListingForm) { f.Image = nil },
			missing: "image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := new(MockGateway)
			listings := new(MockRefetcher)
			listingFlow := NewListingFlow(gateway, "seller-1", listings, zerolog.Nop())

			form := validForm()
			tt.mutate(&form)

			flower, err := listingFlow.Create(context.Background(), form)

			require.Error(t, err)
			assert.Nil(t, flower)
			assert.True(t, model.IsValidation(err))
			assert.Contains(t, err.Error(), "required fields")
			assert.Contains(t, err.Error(), tt.missing)
			gateway.AssertNotCalled(t, "CreateFlower", mock.Anything, mock.Anything)
			listings.AssertNotCalled(t, "Refetch", mock.Anything)
		})
	}
}

func TestListingFlow_Create_AggregatesMissingFields(t *testing.T) {
	gateway := new(MockGateway)
	listings := new(MockRefetcher)
	listingFlow := NewListingFlow(gateway, "seller-1", listings, zerolog.Nop())

	_, err := listingFlow.Create(context.Background(), ListingForm{})

	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
	for _, field := range []string{"name", "price", "items", "image"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestListingFlow_Create_InvalidPrice(t *testing.T) {
	gateway := new(MockGateway)
	listings := new(MockRefetcher)
	listingFlow := NewListingFlow(gateway, "seller-1", listings, zerolog.Nop())

	form := validForm()
	form.Price = "free"

	_, err := listingFlow.Create(context.Background(), form)

	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
	assert.Contains(t, err.Error(), "price")
	gateway.AssertNotCalled(t, "CreateFlower", mock.Anything, mock.Anything)
}

func TestListingFlow_Create_GatewayFailure_NoRefetch(t *testing.T) {
	gateway := new(MockGateway)
	listings := new(MockRefetcher)

	cause := model.NewRequestFailed("create_flower", errors.New("backend returned status 500"))
	gateway.On("CreateFlower", mock.Anything, mock.Anything).Return(nil, cause).Once()

	listingFlow := NewListingFlow(gateway, "seller-1", listings, zerolog.Nop())

	flower, err := listingFlow.Create(context.Background(), validForm())

	require.Error(t, err)
	assert.Nil(t, flower)
	assert.True(t, model.IsRequestFailed(err))
	listings.AssertNotCalled(t, "Refetch", mock.Anything)
}

func TestListingFlow_Update_Success(t *testing.T) {
	gateway := new(MockGateway)
	listings := new(MockRefetcher)

	updated := &model.Flower{ID: "f1", Name: "Spring Medley"}
	gateway.On("UpdateFlower", mock.Anything, "f1", mock.Anything).Return(updated, nil).Once()
	listings.On("Refetch", mock.Anything).Return(nil).Once()

	listingFlow := NewListingFlow(gateway, "seller-1", listings, zerolog.Nop())

	flower, err := listingFlow.Update(context.Background(), "f1", validForm())

	require.NoError(t, err)
	assert.Equal(t, "f1", flower.ID)
	listings.AssertNumberOfCalls(t, "Refetch", 1)
}

func TestListingFlow_Update_ValidatesBeforeNetwork(t *testing.T) {
	gateway := new(MockGateway)
	listings := new(MockRefetcher)
	listingFlow := NewListingFlow(gateway, "seller-1", listings, zerolog.Nop())

	form := validForm()
	form.Name = ""

	_, err := listingFlow.Update(context.Background(), "f1", form)

	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
	gateway.AssertNotCalled(t, "UpdateFlower", mock.Anything, mock.Anything, mock.Anything)
}

func TestListingFlow_Delete_Confirmed(t *testing.T) {
	gateway := new(MockGateway)
	listings := new(MockRefetcher)

	gateway.On("DeleteFlower", mock.Anything, "f1", "seller-1").Return(nil).Once()
	listings.On("Refetch", mock.Anything).Return(nil).Once()

	listingFlow := NewListingFlow(gateway, "seller-1", listings, zerolog.Nop())

	deleted, err := listingFlow.Delete(context.Background(), "f1", true)

	require.NoError(t, err)
	assert.True(t, deleted)
	gateway.AssertExpectations(t)
	listings.AssertNumberOfCalls(t, "Refetch", 1)
}

func TestListingFlow_Delete_Declined_NoCall(t *testing.T) {
	gateway := new(MockGateway)
	listings := new(MockRefetcher)
	listingFlow := NewListingFlow(gateway, "seller-1", listings, zerolog.Nop())

	deleted, err := listingFlow.Delete(context.Background(), "f1", false)

	require.NoError(t, err)
	assert.False(t, deleted)
	gateway.AssertNotCalled(t, "DeleteFlower", mock.Anything, mock.Anything, mock.Anything)
	listings.AssertNotCalled(t, "Refetch", mock.Anything)
}

func TestListingFlow_Delete_GatewayFailure(t *testing.T) {
	gateway := new(MockGateway)
	listings := new(MockRefetcher)

	cause := model.NewNotFound("delete_flower", "resource not found")
	gateway.On("DeleteFlower", mock.Anything, "missing", "seller-1").Return(cause).Once()

	listingFlow := NewListingFlow(gateway, "seller-1", listings, zerolog.Nop())

	deleted, err := listingFlow.Delete(context.Background(), "missing", true)

	require.Error(t, err)
	assert.False(t, deleted)
	assert.True(t, model.IsNotFound(err))
	listings.AssertNotCalled(t, "Refetch", mock.Anything)
}
