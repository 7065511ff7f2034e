package zoneindex

import (
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/pkg/geo"
)

// LookupResult - результат классификации координаты.
// Инварианты: Match==inside <=> Distance==0 и Zone!=nil;
// Match==none <=> Zone==nil (Distance при этом может быть заполнен -
// расстояние до ближайшей зоны за пределами радиуса).
type LookupResult[A any] struct {
	Match          domain.MatchType
	DistanceMeters *float64
	Zone           *Record[A]
}

// Classify - классификация координаты против индекса.
// Содержащая зона ищется линейным сканом, побеждает первая запись в порядке
// построения (датасеты считаются непересекающимися, это не валидируется).
// Без вхождения и с fallbackRadiusMeters < 0 возвращается none без расстояния.
// Иначе ищется минимальное гаверсинусное расстояние до bbox-центров зон:
// в пределах радиуса - nearest, за пределами - none с заполненным расстоянием
// (полезно для сообщений вида "ближайшая зона в 340 м").
func (idx *Index[A]) Classify(lat, lng, fallbackRadiusMeters float64) LookupResult[A] {
	if !geo.IsFinite(lat, lng) {
		return LookupResult[A]{Match: domain.MatchNone}
	}

	for i := range idx.records {
		if geo.PointInGeometry(lng, lat, idx.records[i].Geometry) {
			zero := 0.0
			return LookupResult[A]{
				Match:          domain.MatchInside,
				DistanceMeters: &zero,
				Zone:           &idx.records[i],
			}
		}
	}

	if fallbackRadiusMeters < 0 || len(idx.records) == 0 {
		return LookupResult[A]{Match: domain.MatchNone}
	}

	// Первая запись с минимальным расстоянием побеждает: порядок построения
	// фиксирован, результат детерминирован.
	nearest := -1
	var nearestDist float64
	for i := range idx.records {
		d := idx.records[i].haversineTo(lat, lng)
		if nearest < 0 || d < nearestDist {
			nearest = i
			nearestDist = d
		}
	}

	if nearestDist <= fallbackRadiusMeters {
		return LookupResult[A]{
			Match:          domain.MatchNearest,
			DistanceMeters: &nearestDist,
			Zone:           &idx.records[nearest],
		}
	}

	return LookupResult[A]{
		Match:          domain.MatchNone,
		DistanceMeters: &nearestDist,
	}
}
