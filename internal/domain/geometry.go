package domain

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BoundingBox - ограничивающий прямоугольник геометрии
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// Center - центр ограничивающего прямоугольника
func (b BoundingBox) Center() Point {
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}

// LinearRing - контур полигона. Исходные данные не гарантируют замыкание
// (первая точка == последняя), обход рёбер всегда циклический.
type LinearRing []Point

// Polygon - полигон: первый контур внешний, остальные - отверстия
type Polygon []LinearRing

// Geometry - геометрия зоны: один или несколько полигонов (MultiPolygon)
type Geometry struct {
	Polygons []Polygon
}

// IsEmpty - геометрия без единой вершины
func (g Geometry) IsEmpty() bool {
	for _, poly := range g.Polygons {
		for _, ring := range poly {
			if len(ring) > 0 {
				return false
			}
		}
	}
	return true
}

// Bounds - вычисление ограничивающего прямоугольника по всем вершинам
func (g Geometry) Bounds() (BoundingBox, bool) {
	var box BoundingBox
	found := false

	for _, poly := range g.Polygons {
		for _, ring := range poly {
			for _, pt := range ring {
				if !found {
					box = BoundingBox{MinLat: pt.Lat, MinLng: pt.Lng, MaxLat: pt.Lat, MaxLng: pt.Lng}
					found = true
					continue
				}
				if pt.Lat < box.MinLat {
					box.MinLat = pt.Lat
				}
				if pt.Lat > box.MaxLat {
					box.MaxLat = pt.Lat
				}
				if pt.Lng < box.MinLng {
					box.MinLng = pt.Lng
				}
				if pt.Lng > box.MaxLng {
					box.MaxLng = pt.Lng
				}
			}
		}
	}

	return box, found
}
