package service

import (
	"context"
	"errors"
	"testing"

	"crypto-checkout/internal/core/domain"
	"crypto-checkout/internal/core/ports"
	"crypto-checkout/internal/core/ports/mocks"
	"crypto-checkout/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type shippingTestDeps struct {
	svc      *ShippingServiceImpl
	geocoder *mocks.MockGeocoder
	ctrl     *gomock.Controller
}

func setupShippingService(t *testing.T) *shippingTestDeps {
	ctrl := gomock.NewController(t)
	d := &shippingTestDeps{
		geocoder: mocks.NewMockGeocoder(ctrl),
		ctrl:     ctrl,
	}
	d.svc = NewShippingService(d.geocoder, zerolog.Nop())
	return d
}

func validQuoteRequest() ports.ShippingQuoteRequest {
	return ports.ShippingQuoteRequest{
		Address1: "1600 Pennsylvania Ave NW",
		City:     "Washington",
		State:    "DC",
		Zip:      "20500",
		Country:  "United States",
	}
}

func TestShippingService_Quote_Success(t *testing.T) {
	d := setupShippingService(t)
	defer d.ctrl.Finish()

	d.geocoder.EXPECT().
		Geocode(gomock.Any(), "1600 Pennsylvania Ave NW , Washington, DC 20500, United States").
		Return(38.8977, -77.0365, nil)

	res, err := d.svc.Quote(context.Background(), validQuoteRequest())
	require.NoError(t, err)

	// Kapolei to DC is ~4840 mi, the top pricing tier.
	assert.Equal(t, 45, res.Amount)
	assert.InDelta(t, 4839.75, res.DistanceMiles, 1)
	assert.Equal(t, domain.ShippingOrigin.Label, res.Origin)
}

func TestShippingService_Quote_LocalTier(t *testing.T) {
	d := setupShippingService(t)
	defer d.ctrl.Finish()

	// A few miles from the warehouse.
	d.geocoder.EXPECT().Geocode(gomock.Any(), gomock.Any()).Return(21.39, -157.97, nil)

	req := validQuoteRequest()
	req.City = "Honolulu"
	req.State = "HI"
	req.Zip = "96815"

	res, err := d.svc.Quote(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Amount)
	assert.Less(t, res.DistanceMiles, 25.0)
}

func TestShippingService_Quote_CountrySpellings(t *testing.T) {
	d := setupShippingService(t)
	defer d.ctrl.Finish()

	for _, country := range []string{"US", "usa", "  United States  ", "UNITED STATES"} {
		d.geocoder.EXPECT().Geocode(gomock.Any(), gomock.Any()).Return(40.0, -75.0, nil)

		req := validQuoteRequest()
		req.Country = country
		_, err := d.svc.Quote(context.Background(), req)
		assert.NoError(t, err, "country %q", country)
	}
}

func TestShippingService_Quote_MissingFields(t *testing.T) {
	d := setupShippingService(t)
	defer d.ctrl.Finish()

	blank := func(mutate func(*ports.ShippingQuoteRequest)) ports.ShippingQuoteRequest {
		req := validQuoteRequest()
		mutate(&req)
		return req
	}

	cases := map[string]ports.ShippingQuoteRequest{
		"address1": blank(func(r *ports.ShippingQuoteRequest) { r.Address1 = "" }),
		"city":     blank(func(r *ports.ShippingQuoteRequest) { r.City = " " }),
		"state":    blank(func(r *ports.ShippingQuoteRequest) { r.State = "" }),
		"zip":      blank(func(r *ports.ShippingQuoteRequest) { r.Zip = "" }),
		"country":  blank(func(r *ports.ShippingQuoteRequest) { r.Country = "" }),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := d.svc.Quote(context.Background(), req)
			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.CodeMissingAddress, appErr.Code)
		})
	}
}

func TestShippingService_Quote_NonUSCountry(t *testing.T) {
	d := setupShippingService(t)
	defer d.ctrl.Finish()

	req := validQuoteRequest()
	req.Country = "Canada"

	_, err := d.svc.Quote(context.Background(), req)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeNonUSAddress, appErr.Code)
}

func TestShippingService_Quote_InvalidZip(t *testing.T) {
	d := setupShippingService(t)
	defer d.ctrl.Finish()

	for _, zip := range []string{"1234", "123456", "abcde", "12345-67", "12345-67890"} {
		req := validQuoteRequest()
		req.Zip = zip

		_, err := d.svc.Quote(context.Background(), req)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr, "zip %q", zip)
		assert.Equal(t, apperror.CodeInvalidZip, appErr.Code, "zip %q", zip)
	}
}

func TestShippingService_Quote_ZipPlusFour(t *testing.T) {
	d := setupShippingService(t)
	defer d.ctrl.Finish()

	d.geocoder.EXPECT().Geocode(gomock.Any(), gomock.Any()).Return(40.0, -75.0, nil)

	req := validQuoteRequest()
	req.Zip = "20500-0001"

	_, err := d.svc.Quote(context.Background(), req)
	assert.NoError(t, err)
}

func TestShippingService_Quote_GeocodeFailure(t *testing.T) {
	d := setupShippingService(t)
	defer d.ctrl.Finish()

	d.geocoder.EXPECT().Geocode(gomock.Any(), gomock.Any()).Return(0.0, 0.0, errors.New("no results"))

	_, err := d.svc.Quote(context.Background(), validQuoteRequest())
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeGeocodeFailed, appErr.Code)
}
