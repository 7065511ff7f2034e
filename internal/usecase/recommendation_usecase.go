package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/parking-microservice/internal/config"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/pkg/geo"
	"github.com/parking-microservice/internal/usecase/dto"
	"github.com/parking-microservice/internal/zoneindex"
)

// WarnNoResidentialZones - стабильная строка предупреждения: отсутствие
// резидентных кандидатов не ошибка, но список не должен быть пустым без
// объяснения
const WarnNoResidentialZones = "no residential permit zones within residential search radius"

// RecommendationUseCase - политика рекомендаций: платные зоны в приоритете,
// резидентные дополняют список в меньшем радиусе, пороги расстояний из
// конфигурации. Кеширование ответов - ответственность этого слоя, не ядра.
type RecommendationUseCase struct {
	paidIndex   *zoneindex.Index[domain.PaidZoneAttributes]
	permitIndex *zoneindex.Index[domain.PermitZoneAttributes]
	cacheRepo   repository.CacheRepository
	policy      config.PolicyConfig
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewRecommendationUseCase - создание нового RecommendationUseCase.
// cacheRepo может быть nil: сервис работает без кеша.
func NewRecommendationUseCase(
	paidIndex *zoneindex.Index[domain.PaidZoneAttributes],
	permitIndex *zoneindex.Index[domain.PermitZoneAttributes],
	cacheRepo repository.CacheRepository,
	policy config.PolicyConfig,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *RecommendationUseCase {
	return &RecommendationUseCase{
		paidIndex:   paidIndex,
		permitIndex: permitIndex,
		cacheRepo:   cacheRepo,
		policy:      policy,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Recommend - ранжированные рекомендации парковки у точки назначения.
// Отказы политики (нет платных зон; назначение слишком далеко при жёстком
// режиме) возвращаются типизированными ошибками; пустой резидентный список -
// нормальный результат с предупреждением.
func (uc *RecommendationUseCase) Recommend(ctx context.Context, req dto.RecommendationRequest) (*dto.RecommendationResponse, error) {
	if !geo.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	limit := req.Limit
	if limit == 0 {
		limit = uc.policy.DefaultLimit
	}

	cacheKey := uc.recommendationKey(req, limit)
	if cached := uc.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	var filter func(*zoneindex.Record[domain.PaidZoneAttributes]) bool
	if req.ConfirmedOnly {
		filter = func(r *zoneindex.Record[domain.PaidZoneAttributes]) bool {
			return !r.Provisional
		}
	}

	paid := uc.paidIndex.Recommend(req.Lat, req.Lng, zoneindex.RecommendOptions[domain.PaidZoneAttributes]{
		Limit:  limit,
		Filter: filter,
		// Фрагменты геометрии одного тарифного кода схлопываются в одну
		// рекомендацию; предварительные зоны дедуплицируются по ID
		DedupKey: func(r *zoneindex.Record[domain.PaidZoneAttributes]) string {
			if r.Code != "" {
				return r.Code
			}
			return r.ID
		},
	})

	if len(paid) == 0 {
		uc.logger.Warn("No paid zone candidates for destination",
			zap.Float64("lat", req.Lat),
			zap.Float64("lng", req.Lng),
		)
		return nil, errors.ErrNoPaidZones
	}

	nearestPaid := paid[0].DistanceMeters
	withinDowntown := nearestPaid <= uc.policy.DowntownCapMeters
	if !withinDowntown && req.FailWhenTooFar {
		return nil, errors.ErrDestinationTooFar.WithDetails(map[string]interface{}{
			"nearest_paid_meters": nearestPaid,
			"downtown_cap_meters": uc.policy.DowntownCapMeters,
		})
	}

	residential := uc.permitIndex.Recommend(req.Lat, req.Lng, zoneindex.RecommendOptions[domain.PermitZoneAttributes]{
		Limit: limit,
		DedupKey: func(r *zoneindex.Record[domain.PermitZoneAttributes]) string {
			if r.Attributes.Area != "" {
				return r.Attributes.Area
			}
			return r.ID
		},
	})

	resp := &dto.RecommendationResponse{
		Paid:                   make([]dto.RecommendationItem, 0, len(paid)),
		Residential:            make([]dto.RecommendationItem, 0, len(residential)),
		WithinDowntownDistance: withinDowntown,
		NearestPaidMeters:      nearestPaid,
	}

	for _, rec := range paid {
		resp.Paid = append(resp.Paid, dto.RecommendationItem{
			Zone:           dto.ConvertPaidZone(rec.Zone),
			DistanceMeters: rec.DistanceMeters,
			NearestPoint:   rec.NearestPoint,
		})
	}

	// Резидентные зоны ограничены собственным, меньшим радиусом
	for _, rec := range residential {
		if rec.DistanceMeters > uc.policy.ResidentialCapMeters {
			break
		}
		resp.Residential = append(resp.Residential, dto.RecommendationItem{
			Zone:           dto.ConvertPermitZone(rec.Zone),
			DistanceMeters: rec.DistanceMeters,
			NearestPoint:   rec.NearestPoint,
		})
	}

	if len(resp.Residential) == 0 {
		resp.Warnings = append(resp.Warnings, WarnNoResidentialZones)
	}

	uc.toCache(ctx, cacheKey, resp)
	return resp, nil
}

// recommendationKey - координаты округляются до 5 знаков (~1 м), чтобы
// близкие GPS-фиксы попадали в одну запись кеша
func (uc *RecommendationUseCase) recommendationKey(req dto.RecommendationRequest, limit int) string {
	return fmt.Sprintf("rec:%.5f:%.5f:%d:%t:%t",
		req.Lat, req.Lng, limit, req.ConfirmedOnly, req.FailWhenTooFar)
}

func (uc *RecommendationUseCase) fromCache(ctx context.Context, key string) *dto.RecommendationResponse {
	if uc.cacheRepo == nil {
		return nil
	}

	data, err := uc.cacheRepo.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}

	var resp dto.RecommendationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		uc.logger.Warn("Failed to decode cached recommendation", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &resp
}

// toCache - best effort: ошибка кеша не валит запрос
func (uc *RecommendationUseCase) toCache(ctx context.Context, key string, resp *dto.RecommendationResponse) {
	if uc.cacheRepo == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := uc.cacheRepo.Set(ctx, key, data, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache recommendation", zap.String("key", key), zap.Error(err))
	}
}
