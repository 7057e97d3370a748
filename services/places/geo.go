package places

import (
	"fmt"
	"math"

	"buscalocal/models"
)

const earthRadiusKm = 6371

// HaversineDistanceKm returns the great-circle distance in kilometres
// between two WGS84 points.
func HaversineDistanceKm(from, to models.Coordinates) float64 {
	dLat := toRad(to.Latitude - from.Latitude)
	dLon := toRad(to.Longitude - from.Longitude)
	lat1 := toRad(from.Latitude)
	lat2 := toRad(to.Latitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// FormatDistance renders a distance for display: whole metres below one
// kilometre, otherwise kilometres with one decimal.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1fkm", km)
}

func finiteCoordinates(c models.Coordinates) bool {
	return !math.IsNaN(c.Latitude) && !math.IsInf(c.Latitude, 0) &&
		!math.IsNaN(c.Longitude) && !math.IsInf(c.Longitude, 0)
}
