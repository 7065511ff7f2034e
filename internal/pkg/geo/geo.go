package geo

import "math"

const earthRadiusMeters = 6371000.0

// HaversineMeters вычисляет расстояние по дуге большого круга в метрах.
// Все расстояния, отдаваемые наружу, считаются этой формулой.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lng float64) bool {
	return IsFinite(lat, lng) && lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// IsFinite проверяет, что обе координаты конечны (не NaN и не Inf)
func IsFinite(lat, lng float64) bool {
	return !math.IsNaN(lat) && !math.IsInf(lat, 0) &&
		!math.IsNaN(lng) && !math.IsInf(lng, 0)
}
