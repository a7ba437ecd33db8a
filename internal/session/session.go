// Package session holds the process-wide authenticated seller identity.
// It is established exactly once at startup from the token exchange and is
// never mutated afterwards; a fresh process is the only way to switch
// sellers.
package session

import (
	"context"

	"flowy-seller/internal/model"

	"github.com/rs/zerolog"
)

// Authenticator is the slice of the gateway the session needs.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Seller, error)
}

// Session is the immutable authenticated seller context shared by every
// screen and flow.
type Session struct {
	seller model.Seller
}

// Establish exchanges the opaque identity token for a seller profile. A
// missing or malformed token fails with InvalidToken before any network
// call; an unknown token fails with NotFound ("seller not found"). Both
// are terminal for the session.
func Establish(ctx context.Context, gateway Authenticator, token string, logger zerolog.Logger) (*Session, error) {
	log := logger.With().Str("component", "session").Logger()

	seller, err := gateway.Authenticate(ctx, token)
	if err != nil {
		log.Error().Err(err).Msg("session establishment failed")
		return nil, err
	}

	log.Info().Str("seller_id", seller.ID).Str("shop_name", seller.ShopName).Msg("session established")
	return &Session{seller: *seller}, nil
}

// Seller returns a copy of the authenticated seller profile.
func (s *Session) Seller() model.Seller {
	return s.seller
}

// SellerID returns the immutable seller identifier.
func (s *Session) SellerID() string {
	return s.seller.ID
}
