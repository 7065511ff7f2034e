// Package zoneindex реализует неизменяемый индекс парковочных зон: построение
// из статических записей, классификацию координаты и ранжирование рекомендаций.
// Один обобщённый индекс обслуживает и платный, и резидентный наборы данных.
package zoneindex

import (
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/pkg/geo"
)

// Source - входная запись набора данных до индексации
type Source[A any] struct {
	ID         string
	Geometry   domain.Geometry
	Attributes A
}

// Resolver - разрешение вторичного кода по атрибутам записи (кроссвок).
// ok=false означает, что правило не найдено и классификация предварительная.
type Resolver[A any] func(attrs A) (code, label string, ok bool)

// Record - проиндексированная зона. Неизменяема после построения индекса.
type Record[A any] struct {
	ID                string
	Geometry          domain.Geometry
	Center            domain.Point
	Code              string
	CodeLabel         string
	Provisional       bool
	ProvisionalReason string
	Attributes        A
}

// Index - полный неизменяемый набор зон одного датасета. Строится один раз
// при старте процесса; все запросы только читают и потокобезопасны без
// синхронизации.
type Index[A any] struct {
	name    string
	records []Record[A]
}

// Build - построение индекса: записи с пустой геометрией исключаются целиком
// (логируются один раз при загрузке, не на каждый запрос), для остальных
// вычисляется центр ограничивающего прямоугольника и разрешается вторичный
// код. resolve может быть nil для датасетов без кроссвока.
func Build[A any](name string, sources []Source[A], resolve Resolver[A], logger *zap.Logger) *Index[A] {
	records := make([]Record[A], 0, len(sources))

	for _, src := range sources {
		bounds, ok := src.Geometry.Bounds()
		if !ok || src.Geometry.IsEmpty() {
			logger.Warn("Zone excluded from index: no usable geometry",
				zap.String("dataset", name),
				zap.String("zone_id", src.ID),
			)
			continue
		}

		rec := Record[A]{
			ID:         src.ID,
			Geometry:   src.Geometry,
			Center:     bounds.Center(),
			Attributes: src.Attributes,
		}

		if resolve != nil {
			code, label, found := resolve(src.Attributes)
			if found {
				rec.Code = code
				rec.CodeLabel = label
			} else {
				rec.Provisional = true
				rec.ProvisionalReason = ProvisionalNoRateRule
			}
		}

		records = append(records, rec)
	}

	logger.Info("Zone index built",
		zap.String("dataset", name),
		zap.Int("zones", len(records)),
		zap.Int("excluded", len(sources)-len(records)),
	)

	return &Index[A]{name: name, records: records}
}

// ProvisionalNoRateRule - стабильная причина предварительной классификации
const ProvisionalNoRateRule = "no pay-by-phone rate rule for zone"

// Name - имя датасета
func (idx *Index[A]) Name() string {
	return idx.name
}

// Len - количество зон в индексе
func (idx *Index[A]) Len() int {
	return len(idx.records)
}

// Records - все записи в порядке построения
func (idx *Index[A]) Records() []Record[A] {
	return idx.records
}

// haversineTo - расстояние от записи (её bbox-центра) до точки в метрах
func (r *Record[A]) haversineTo(lat, lng float64) float64 {
	return geo.HaversineMeters(lat, lng, r.Center.Lat, r.Center.Lng)
}
