package domain

import "math"

const earthRadiusMiles = 3958.8

// Location is a labelled coordinate pair.
type Location struct {
	Label string
	Lat   float64
	Lon   float64
}

// ShippingOrigin is the warehouse all shipments leave from.
var ShippingOrigin = Location{
	Label: "91-609 Puamaeole Street, #34 R, Kapolei, HI",
	Lat:   21.3362,
	Lon:   -158.0846,
}

// HaversineMiles returns the great-circle distance between two points in
// miles.
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// ShippingTier maps distance to a flat USD shipping price.
func ShippingTier(distanceMiles float64) int {
	switch {
	case distanceMiles <= 25:
		return 6
	case distanceMiles <= 100:
		return 12
	case distanceMiles <= 500:
		return 18
	case distanceMiles <= 1500:
		return 25
	case distanceMiles <= 3000:
		return 35
	default:
		return 45
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
