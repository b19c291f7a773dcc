package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"crypto-checkout/internal/core/domain"
	"crypto-checkout/internal/core/ports"
	"crypto-checkout/pkg/apperror"

	"github.com/rs/zerolog"
)

var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// usCountryNames are the accepted spellings for a US destination,
// compared case-insensitively after trimming.
var usCountryNames = map[string]struct{}{
	"united states": {},
	"usa":           {},
	"us":            {},
}

// ShippingServiceImpl implements ports.ShippingService.
type ShippingServiceImpl struct {
	geocoder ports.Geocoder
	log      zerolog.Logger
}

// NewShippingService creates a new ShippingServiceImpl.
func NewShippingService(geocoder ports.Geocoder, log zerolog.Logger) *ShippingServiceImpl {
	return &ShippingServiceImpl{geocoder: geocoder, log: log}
}

// Quote validates a US destination address, geocodes it and prices
// shipping by great-circle distance from the warehouse.
func (s *ShippingServiceImpl) Quote(ctx context.Context, req ports.ShippingQuoteRequest) (*ports.ShippingQuoteResult, error) {
	if strings.TrimSpace(req.Address1) == "" ||
		strings.TrimSpace(req.City) == "" ||
		strings.TrimSpace(req.State) == "" ||
		strings.TrimSpace(req.Zip) == "" ||
		strings.TrimSpace(req.Country) == "" {
		return nil, apperror.ErrMissingAddressFields()
	}

	country := strings.ToLower(strings.TrimSpace(req.Country))
	if _, ok := usCountryNames[country]; !ok {
		return nil, apperror.ErrNonUSAddress()
	}

	zip := strings.TrimSpace(req.Zip)
	if !zipPattern.MatchString(zip) {
		return nil, apperror.ErrInvalidZip()
	}

	query := strings.TrimSpace(fmt.Sprintf("%s %s, %s, %s %s, %s",
		req.Address1, req.Address2, req.City, req.State, zip, req.Country))

	lat, lon, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		s.log.Warn().Err(err).Str("query", query).Msg("geocode failed")
		return nil, apperror.ErrGeocodeFailed()
	}

	miles := domain.HaversineMiles(domain.ShippingOrigin.Lat, domain.ShippingOrigin.Lon, lat, lon)
	amount := domain.ShippingTier(miles)

	s.log.Info().
		Float64("distance_miles", miles).
		Int("amount_usd", amount).
		Msg("shipping quoted")

	return &ports.ShippingQuoteResult{
		Amount:        amount,
		DistanceMiles: math.Round(miles*100) / 100,
		Origin:        domain.ShippingOrigin.Label,
	}, nil
}
