package zoneindex

import (
	"sort"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/pkg/geo"
)

// Границы клампа количества рекомендаций: запрошенный лимит всегда приводится
// к этому диапазону на стороне сервера.
const (
	MinRecommendations = 1
	MaxRecommendations = 5
)

// Recommendation - одна рекомендация: зона, точка границы для маркера на
// карте и гаверсинусное расстояние до неё. DistanceMeters всегда >= 0,
// NearestPoint лежит на границе зоны или совпадает с запросом внутри зоны.
type Recommendation[A any] struct {
	Zone           *Record[A]
	DistanceMeters float64
	NearestPoint   domain.Point
}

// RecommendOptions - параметры ранжирования
type RecommendOptions[A any] struct {
	// Limit - максимум результатов, клампится в [MinRecommendations, MaxRecommendations]
	Limit int
	// Filter - опциональный предикат отбора записей (nil - все записи)
	Filter func(*Record[A]) bool
	// DedupKey - ключ дедупликации; фрагменты геометрии с одним ключом
	// схлопываются в одну (ближайшую) рекомендацию. nil - дедупликация по ID.
	DedupKey func(*Record[A]) string
}

// Recommend - ранжированный список зон вблизи координаты. Для каждой зоны
// ищется ближайшая точка границы (планарная аппроксимация), расстояние до неё
// пересчитывается гаверсинусом, список сортируется по расстоянию стабильно
// (при равенстве побеждает порядок построения индекса), дедуплицируется и
// обрезается до лимита.
func (idx *Index[A]) Recommend(lat, lng float64, opts RecommendOptions[A]) []Recommendation[A] {
	if !geo.IsFinite(lat, lng) {
		return []Recommendation[A]{}
	}

	query := domain.Point{Lat: lat, Lng: lng}
	candidates := make([]Recommendation[A], 0, len(idx.records))

	for i := range idx.records {
		rec := &idx.records[i]
		if opts.Filter != nil && !opts.Filter(rec) {
			continue
		}

		nearest, ok := geo.NearestPointOnGeometry(query, rec.Geometry)
		if !ok {
			continue
		}

		candidates = append(candidates, Recommendation[A]{
			Zone:           rec,
			DistanceMeters: geo.HaversineMeters(lat, lng, nearest.Lat, nearest.Lng),
			NearestPoint:   nearest,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistanceMeters < candidates[j].DistanceMeters
	})

	dedupKey := opts.DedupKey
	if dedupKey == nil {
		dedupKey = func(r *Record[A]) string { return r.ID }
	}

	limit := clampLimit(opts.Limit)
	seen := make(map[string]struct{}, limit)
	result := make([]Recommendation[A], 0, limit)

	for _, c := range candidates {
		key := dedupKey(c.Zone)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		result = append(result, c)
		if len(result) == limit {
			break
		}
	}

	return result
}

func clampLimit(limit int) int {
	if limit < MinRecommendations {
		return MinRecommendations
	}
	if limit > MaxRecommendations {
		return MaxRecommendations
	}
	return limit
}
