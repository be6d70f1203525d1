package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// DistanceKm returns the great-circle distance in kilometers between two
// coordinates. orb.Point is [lng, lat].
func DistanceKm(aLat, aLng, bLat, bLng float64) float64 {
	return orbgeo.Distance(orb.Point{aLng, aLat}, orb.Point{bLng, bLat}) / 1000.0
}
