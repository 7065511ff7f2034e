package geo

import (
	"math"

	"github.com/parking-microservice/internal/domain"
)

// boundaryEpsilon - допуск для проверки "точка лежит на ребре". GPS-фиксы
// часто привязаны к осевой линии дороги, совпадающей с границей зоны, поэтому
// граница считается внутренностью.
const boundaryEpsilon = 1e-10

// PointInRing - проверка вхождения точки в контур методом ray casting.
// Точка ровно на ребре или вершине считается внутри. Обход рёбер циклический:
// контур не обязан быть явно замкнут.
func PointInRing(lng, lat float64, ring domain.LinearRing) bool {
	n := len(ring)
	if n == 0 {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := ring[i].Lng, ring[i].Lat
		xj, yj := ring[j].Lng, ring[j].Lat

		if pointOnSegment(lng, lat, xi, yi, xj, yj) {
			return true
		}

		if (yi > lat) != (yj > lat) &&
			lng < (xj-xi)*(lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}

	return inside
}

// PointInPolygon - внутри внешнего контура и вне всех отверстий.
// Точка на границе отверстия считается внутри полигона.
func PointInPolygon(lng, lat float64, polygon domain.Polygon) bool {
	if len(polygon) == 0 {
		return false
	}
	if !PointInRing(lng, lat, polygon[0]) {
		return false
	}
	for _, hole := range polygon[1:] {
		if pointStrictlyInRing(lng, lat, hole) {
			return false
		}
	}
	return true
}

// PointInGeometry - внутри хотя бы одного полигона геометрии
func PointInGeometry(lng, lat float64, g domain.Geometry) bool {
	if !IsFinite(lat, lng) {
		return false
	}
	for _, poly := range g.Polygons {
		if PointInPolygon(lng, lat, poly) {
			return true
		}
	}
	return false
}

// pointStrictlyInRing - как PointInRing, но граница контура не считается
// внутренностью. Используется для отверстий: точка на границе отверстия
// принадлежит полигону.
func pointStrictlyInRing(lng, lat float64, ring domain.LinearRing) bool {
	n := len(ring)
	if n == 0 {
		return false
	}

	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := ring[i].Lng, ring[i].Lat
		xj, yj := ring[j].Lng, ring[j].Lat

		if pointOnSegment(lng, lat, xi, yi, xj, yj) {
			return false
		}

		if (yi > lat) != (yj > lat) &&
			lng < (xj-xi)*(lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}

	return inside
}

// pointOnSegment - коллинеарность плюс попадание проекции в границы отрезка
func pointOnSegment(px, py, ax, ay, bx, by float64) bool {
	cross := (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	if math.Abs(cross) > boundaryEpsilon {
		return false
	}

	dot := (px-ax)*(bx-ax) + (py-ay)*(by-ay)
	if dot < -boundaryEpsilon {
		return false
	}

	lengthSq := (bx-ax)*(bx-ax) + (by-ay)*(by-ay)
	if dot > lengthSq+boundaryEpsilon {
		return false
	}

	return true
}
