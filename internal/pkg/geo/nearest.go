package geo

import (
	"math"

	"github.com/parking-microservice/internal/domain"
)

// Поиск ближайшей точки границы ведётся в локальной планарной аппроксимации:
// долгота масштабируется на cos(широты), чтобы компенсировать сжатие градуса
// долготы вдали от экватора. Аппроксимация корректна на городских масштабах
// (единицы километров); итоговое расстояние всегда пересчитывается гаверсинусом.

// NearestPointOnSegment - проекция точки p на отрезок [a, b] в планарной
// аппроксимации. Вырожденный отрезок схлопывается в точку a.
func NearestPointOnSegment(p, a, b domain.Point) domain.Point {
	scale := math.Cos(p.Lat * math.Pi / 180.0)

	// Система координат с началом в p
	ax := (a.Lng - p.Lng) * scale
	ay := a.Lat - p.Lat
	bx := (b.Lng - p.Lng) * scale
	by := b.Lat - p.Lat

	dx := bx - ax
	dy := by - ay
	lengthSq := dx*dx + dy*dy
	if lengthSq < 1e-20 {
		return a
	}

	t := -(ax*dx + ay*dy) / lengthSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return domain.Point{
		Lat: a.Lat + t*(b.Lat-a.Lat),
		Lng: a.Lng + t*(b.Lng-a.Lng),
	}
}

// NearestPointOnRing - ближайшая точка контура к p. Второй результат false
// для контура без вершин.
func NearestPointOnRing(p domain.Point, ring domain.LinearRing) (domain.Point, bool) {
	n := len(ring)
	if n == 0 {
		return p, false
	}

	best := ring[0]
	bestDist := planarDistSq(p, best)

	j := n - 1
	for i := 0; i < n; i++ {
		candidate := NearestPointOnSegment(p, ring[i], ring[j])
		if d := planarDistSq(p, candidate); d < bestDist {
			best = candidate
			bestDist = d
		}
		j = i
	}

	return best, true
}

// NearestPointOnPolygon - точка внутри полигона является ближайшей сама себе;
// иначе минимум по всем контурам, включая отверстия (точка внутри отверстия
// ближе всего к границе отверстия).
func NearestPointOnPolygon(p domain.Point, polygon domain.Polygon) (domain.Point, bool) {
	if PointInPolygon(p.Lng, p.Lat, polygon) {
		return p, true
	}

	found := false
	var best domain.Point
	var bestDist float64

	for _, ring := range polygon {
		candidate, ok := NearestPointOnRing(p, ring)
		if !ok {
			continue
		}
		if d := planarDistSq(p, candidate); !found || d < bestDist {
			best = candidate
			bestDist = d
			found = true
		}
	}

	if !found {
		return p, false
	}
	return best, true
}

// NearestPointOnGeometry - минимум по всем полигонам геометрии
func NearestPointOnGeometry(p domain.Point, g domain.Geometry) (domain.Point, bool) {
	if !IsFinite(p.Lat, p.Lng) {
		return p, false
	}
	if PointInGeometry(p.Lng, p.Lat, g) {
		return p, true
	}

	found := false
	var best domain.Point
	var bestDist float64

	for _, poly := range g.Polygons {
		candidate, ok := NearestPointOnPolygon(p, poly)
		if !ok {
			continue
		}
		if d := planarDistSq(p, candidate); !found || d < bestDist {
			best = candidate
			bestDist = d
			found = true
		}
	}

	if !found {
		return p, false
	}
	return best, true
}

// planarDistSq - квадрат планарного расстояния, только для сравнения кандидатов
func planarDistSq(p, q domain.Point) float64 {
	scale := math.Cos(p.Lat * math.Pi / 180.0)
	dx := (q.Lng - p.Lng) * scale
	dy := q.Lat - p.Lat
	return dx*dx + dy*dy
}
