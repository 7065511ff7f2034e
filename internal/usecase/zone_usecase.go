package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/geo"
	"github.com/parking-microservice/internal/usecase/dto"
	"github.com/parking-microservice/internal/zoneindex"
)

// ZoneUseCase - use case классификации координаты: одиночный lookup
// ("в какой зоне я стою") и чек-ин "я припарковался"
type ZoneUseCase struct {
	paidIndex   *zoneindex.Index[domain.PaidZoneAttributes]
	permitIndex *zoneindex.Index[domain.PermitZoneAttributes]
	policy      config.PolicyConfig
	logger      *zap.Logger
}

// NewZoneUseCase - создание нового ZoneUseCase
func NewZoneUseCase(
	paidIndex *zoneindex.Index[domain.PaidZoneAttributes],
	permitIndex *zoneindex.Index[domain.PermitZoneAttributes],
	policy config.PolicyConfig,
	logger *zap.Logger,
) *ZoneUseCase {
	return &ZoneUseCase{
		paidIndex:   paidIndex,
		permitIndex: permitIndex,
		policy:      policy,
		logger:      logger,
	}
}

// Classify - классификация координаты. Платные зоны имеют приоритет:
// вхождение в платную зону побеждает вхождение в резидентную; без вхождения
// берётся ближайшая зона из обоих датасетов в пределах радиуса.
func (uc *ZoneUseCase) Classify(ctx context.Context, req dto.ClassifyRequest) (*dto.ClassifyResponse, error) {
	if !geo.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	radius := uc.policy.DefaultFallbackRadiusMeters
	if req.FallbackRadiusMeters != nil {
		radius = *req.FallbackRadiusMeters
	}

	resp := uc.classify(req.Lat, req.Lng, radius)

	uc.logger.Debug("Coordinate classified",
		zap.Float64("lat", req.Lat),
		zap.Float64("lng", req.Lng),
		zap.String("match", string(resp.Match)),
	)
	return resp, nil
}

// CheckIn - классификация при чек-ине. Радиус поиска выводится из точности
// GPS-фикса (удвоенная точность, с верхней границей из конфигурации).
func (uc *ZoneUseCase) CheckIn(ctx context.Context, req dto.CheckInRequest) (*dto.CheckInResponse, error) {
	if !geo.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	radius := req.AccuracyMeters * 2
	if radius <= 0 || radius > uc.policy.CheckInRadiusCapMeters {
		radius = uc.policy.CheckInRadiusCapMeters
	}

	classified := uc.classify(req.Lat, req.Lng, radius)

	uc.logger.Debug("Check-in classified",
		zap.Float64("lat", req.Lat),
		zap.Float64("lng", req.Lng),
		zap.Float64("radius", radius),
		zap.String("match", string(classified.Match)),
	)

	return &dto.CheckInResponse{
		Match:               classified.Match,
		DistanceMeters:      classified.DistanceMeters,
		Zone:                classified.Zone,
		AppliedRadiusMeters: radius,
	}, nil
}

func (uc *ZoneUseCase) classify(lat, lng, radius float64) *dto.ClassifyResponse {
	paid := uc.paidIndex.Classify(lat, lng, radius)
	if paid.Match == domain.MatchInside {
		zone := dto.ConvertPaidZone(paid.Zone)
		return &dto.ClassifyResponse{Match: paid.Match, DistanceMeters: paid.DistanceMeters, Zone: &zone}
	}

	permit := uc.permitIndex.Classify(lat, lng, radius)
	if permit.Match == domain.MatchInside {
		zone := dto.ConvertPermitZone(permit.Zone)
		return &dto.ClassifyResponse{Match: permit.Match, DistanceMeters: permit.DistanceMeters, Zone: &zone}
	}

	// Ни одного вхождения: ближайший кандидат из обоих датасетов.
	// При равных расстояниях побеждает платная зона.
	best := &dto.ClassifyResponse{Match: domain.MatchNone}
	if paid.DistanceMeters != nil {
		best = &dto.ClassifyResponse{Match: paid.Match, DistanceMeters: paid.DistanceMeters}
		if paid.Zone != nil {
			zone := dto.ConvertPaidZone(paid.Zone)
			best.Zone = &zone
		}
	}
	if permit.DistanceMeters != nil &&
		(best.DistanceMeters == nil || *permit.DistanceMeters < *best.DistanceMeters) {
		best = &dto.ClassifyResponse{Match: permit.Match, DistanceMeters: permit.DistanceMeters}
		if permit.Zone != nil {
			zone := dto.ConvertPermitZone(permit.Zone)
			best.Zone = &zone
		}
	}

	return best
}
